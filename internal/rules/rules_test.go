package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRuleFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入测试规则文件失败: %v", err)
	}
	return path
}

func TestLoad_DirectMode(t *testing.T) {
	path := writeRuleFile(t, "rules.json", `{
		"redactions": [
			{"original": "张三", "replacement": "李四", "type": "person_name"},
			{"original": "北京市朝阳区", "replacement": "【地址1】", "type": "address"}
		]
	}`)

	ruleSet, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if ruleSet.Mode != ModeDirect {
		t.Errorf("Mode = %v, expected direct", ruleSet.Mode)
	}
	if len(ruleSet.Directs) != 2 {
		t.Fatalf("len(Directs) = %d, expected 2", len(ruleSet.Directs))
	}
	if ruleSet.Directs[0].Original != "张三" || ruleSet.Directs[0].Type != "person_name" {
		t.Errorf("unexpected first rule: %+v", ruleSet.Directs[0])
	}
}

func TestLoad_PatternMode(t *testing.T) {
	path := writeRuleFile(t, "rules.json", `{
		"rules": [
			{"patterns": ["1[3-9]\\d{9}"], "priority": 10, "category": "phone", "replacement": "【电话${index}】"},
			{"patterns": ["[A-Za-z0-9.]+@[A-Za-z0-9.]+"], "priority": 90, "category": "email"}
		]
	}`)

	ruleSet, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if ruleSet.Mode != ModePattern {
		t.Errorf("Mode = %v, expected pattern", ruleSet.Mode)
	}
	if len(ruleSet.Patterns) != 2 {
		t.Fatalf("len(Patterns) = %d, expected 2", len(ruleSet.Patterns))
	}
	// 按优先级降序排列
	if ruleSet.Patterns[0].Category != "email" {
		t.Errorf("first pattern category = %s, expected email", ruleSet.Patterns[0].Category)
	}
	// 未指定模板时使用默认占位
	if ruleSet.Patterns[0].Template != DefaultTemplate {
		t.Errorf("template = %s, expected default", ruleSet.Patterns[0].Template)
	}
	if ruleSet.Patterns[1].Template != "【电话${index}】" {
		t.Errorf("template = %s", ruleSet.Patterns[1].Template)
	}
}

func TestLoad_DisabledRuleExcluded(t *testing.T) {
	path := writeRuleFile(t, "rules.json", `{
		"rules": [
			{"patterns": ["a+"], "priority": 10, "category": "keep"},
			{"patterns": ["b+"], "priority": 20, "enabled": false, "category": "drop"}
		]
	}`)

	ruleSet, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(ruleSet.Patterns) != 1 || ruleSet.Patterns[0].Category != "keep" {
		t.Errorf("disabled rule not excluded: %+v", ruleSet.Patterns)
	}
}

func TestLoad_InvalidRegexDropped(t *testing.T) {
	path := writeRuleFile(t, "rules.json", `{
		"rules": [
			{"patterns": ["[invalid", "1[3-9]\\d{9}"], "priority": 10, "category": "phone"}
		]
	}`)

	ruleSet, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// 无效正则被丢弃并记入警告，其余正则继续生效
	if len(ruleSet.Patterns) != 1 {
		t.Errorf("len(Patterns) = %d, expected 1", len(ruleSet.Patterns))
	}
	if len(ruleSet.Warnings) != 1 {
		t.Errorf("len(Warnings) = %d, expected 1", len(ruleSet.Warnings))
	}
}

func TestLoad_AllRegexInvalid(t *testing.T) {
	path := writeRuleFile(t, "rules.json", `{
		"rules": [{"patterns": ["[invalid"], "priority": 10, "category": "phone"}]
	}`)

	if _, err := Load(path); err == nil {
		t.Error("expected error when no usable pattern remains")
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeRuleFile(t, "rules.yaml", `
rules:
  - patterns:
      - "1[3-9]\\d{9}"
    priority: 10
    category: phone
    replacement: "【电话${index}】"
`)

	ruleSet, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ruleSet.Mode != ModePattern || len(ruleSet.Patterns) != 1 {
		t.Fatalf("unexpected rule set: %+v", ruleSet)
	}
	if ruleSet.Patterns[0].Template != "【电话${index}】" {
		t.Errorf("template = %s", ruleSet.Patterns[0].Template)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"invalid json", "rules.json", `{invalid`},
		{"empty config", "rules.json", `{}`},
		{"empty original", "rules.json", `{"redactions": [{"original": "", "replacement": "x"}]}`},
		{"invalid yaml", "rules.yaml", "rules: ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeRuleFile(t, tt.file, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestLoad_MixedFilePrefersDirect(t *testing.T) {
	path := writeRuleFile(t, "rules.json", `{
		"redactions": [{"original": "张三", "replacement": "李四", "type": "person_name"}],
		"rules": [{"patterns": ["a+"], "priority": 1, "category": "x"}]
	}`)

	ruleSet, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if ruleSet.Mode != ModeDirect {
		t.Errorf("Mode = %v, expected direct", ruleSet.Mode)
	}
	if len(ruleSet.Patterns) != 0 {
		t.Errorf("patterns should be empty in direct mode")
	}
}

package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// DefaultTemplate 未指定替换模板时使用的占位文本
const DefaultTemplate = "【脱敏内容】"

// Mode 表示规则文件的运行模式
type Mode int

const (
	// ModeDirect 直接替换模式：前端导出的 原文→替换 对
	ModeDirect Mode = iota
	// ModePattern 正则模式：带优先级与捕获组的模式规则
	ModePattern
)

// String 返回模式名称
func (m Mode) String() string {
	if m == ModeDirect {
		return "direct"
	}
	return "pattern"
}

// DirectRule 表示一条前端导出的直接替换规则
type DirectRule struct {
	Original    string `json:"original" yaml:"original"`
	Replacement string `json:"replacement" yaml:"replacement"`
	Type        string `json:"type" yaml:"type"`
}

// PatternRule 表示规则文件中的一条正则规则
type PatternRule struct {
	Patterns        []string `json:"patterns" yaml:"patterns"`
	Priority        int      `json:"priority" yaml:"priority"`
	Enabled         *bool    `json:"enabled" yaml:"enabled"`
	UseCaptureGroup bool     `json:"useCaptureGroup" yaml:"useCaptureGroup"`
	Category        string   `json:"category" yaml:"category"`
	Replacement     string   `json:"replacement" yaml:"replacement"`
}

// enabled 返回规则是否启用，未指定时默认启用
func (r *PatternRule) enabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// CompiledPattern 表示一条编译完成的正则规则。
// 同一条 PatternRule 的每个 pattern 各自展开为一条记录。
type CompiledPattern struct {
	Regex           *regexp.Regexp
	Priority        int
	UseCaptureGroup bool
	Category        string
	Template        string
}

// RuleSet 表示加载并整理后的完整规则集，加载后不再修改
type RuleSet struct {
	Mode     Mode
	Directs  []DirectRule
	Patterns []CompiledPattern
	// Warnings 记录加载阶段被丢弃的无效正则
	Warnings []string
}

// ruleFile 规则文件的两种结构共用的载体
type ruleFile struct {
	Redactions []DirectRule  `json:"redactions" yaml:"redactions"`
	Rules      []PatternRule `json:"rules" yaml:"rules"`
}

// Load 从文件加载规则集。
// 支持 JSON（默认）与 YAML（.yaml/.yml 扩展名）两种格式；
// 文件缺失或格式错误返回致命错误，单条正则编译失败只记入
// Warnings 并跳过该条，不中断整体加载。
func Load(filePath string) (*RuleSet, error) {
	if filePath == "" {
		return nil, fmt.Errorf("规则文件路径不能为空")
	}

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("规则文件不存在: %s", filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("读取规则文件失败: %w", err)
	}

	var file ruleFile
	switch filepath.Ext(filePath) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("解析规则文件失败: %w", err)
		}
	default:
		// 先用 gjson 探测文件结构，避免对整个文件做两次反序列化
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("解析规则文件失败: 不是有效的 JSON")
		}
		if gjson.GetBytes(data, "redactions").Exists() {
			if err := json.Unmarshal(data, &file); err != nil {
				return nil, fmt.Errorf("解析规则文件失败: %w", err)
			}
			file.Rules = nil
		} else if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("解析规则文件失败: %w", err)
		}
	}

	return build(&file)
}

// build 将规则文件内容整理为不可变的规则集
func build(file *ruleFile) (*RuleSet, error) {
	// 含 redactions 的文件视为直接替换模式，authoring 工具不会两者混用
	if len(file.Redactions) > 0 {
		for i, rule := range file.Redactions {
			if rule.Original == "" {
				return nil, fmt.Errorf("第 %d 条替换规则的 original 不能为空", i+1)
			}
		}
		return &RuleSet{Mode: ModeDirect, Directs: file.Redactions}, nil
	}

	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("规则文件中没有 redactions 或 rules 配置")
	}

	// 按优先级降序排序一次，同优先级保持文件内顺序
	sorted := make([]PatternRule, len(file.Rules))
	copy(sorted, file.Rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority > sorted[j].Priority
	})

	ruleSet := &RuleSet{Mode: ModePattern}
	for _, rule := range sorted {
		if !rule.enabled() {
			continue
		}
		template := rule.Replacement
		if template == "" {
			template = DefaultTemplate
		}
		for _, pattern := range rule.Patterns {
			regex, err := regexp.Compile(pattern)
			if err != nil {
				ruleSet.Warnings = append(ruleSet.Warnings,
					fmt.Sprintf("正则表达式错误 %s - %v", pattern, err))
				continue
			}
			ruleSet.Patterns = append(ruleSet.Patterns, CompiledPattern{
				Regex:           regex,
				Priority:        rule.Priority,
				UseCaptureGroup: rule.UseCaptureGroup,
				Category:        rule.Category,
				Template:        template,
			})
		}
	}

	if len(ruleSet.Patterns) == 0 {
		return nil, fmt.Errorf("没有可用的正则规则")
	}

	return ruleSet, nil
}

package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Basic(t *testing.T) {
	content := `# 脱敏比对文档

| 序号 | 原文 | 替换 | 类型 | 位置 |
| --- | --- | --- | --- | --- |
| 1 | 张三 | 【人名1】 | person_name | paragraph:1 |
| 2 | 北京市朝阳区幸福路1号 | 【地址1】 | address | table:1,row:1,cell:1,para:1 |
`

	mapping := Parse(content)

	require.Len(t, mapping, 2)
	assert.Equal(t, "张三", mapping["【人名1】"])
	assert.Equal(t, "北京市朝阳区幸福路1号", mapping["【地址1】"])
}

func TestParse_SkipsHeaderRow(t *testing.T) {
	// 表头行中的列标题不能进入映射
	content := `| 1 | 原文 | 替换 | 类型 |
| 2 | 张三 | 【人名1】 | person_name |
`
	mapping := Parse(content)

	require.Len(t, mapping, 1)
	assert.Equal(t, "张三", mapping["【人名1】"])
}

func TestParse_OnlyBracketedReplacements(t *testing.T) {
	// 未被【】包裹的替换列属于普通表格，不是脱敏映射
	content := `| 1 | 甲方 | 乙方 | 其他 |
| 2 | 张三 | 【人名1】 | person_name |
| 3 | 李四 | 【人名2 | person_name |
`
	mapping := Parse(content)

	require.Len(t, mapping, 1)
	assert.Equal(t, "张三", mapping["【人名1】"])
}

func TestParse_NormalizesOriginal(t *testing.T) {
	tests := []struct {
		name     string
		original string
		expected string
	}{
		{"bare", "a@b.com", "a@b.com"},
		{"code span", "`a@b.com`", "a@b.com"},
		{"markdown link", "[a@b.com](mailto:a@b.com)", "a@b.com"},
		{"autolink", "<a@b.com>", "a@b.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := "| 1 | " + tt.original + " | 【邮箱1】 | email |\n"
			mapping := Parse(content)
			require.Len(t, mapping, 1)
			assert.Equal(t, tt.expected, mapping["【邮箱1】"])
		})
	}
}

func TestParse_LastRowWins(t *testing.T) {
	content := `| 1 | 张三 | 【人名1】 | person_name |
| 2 | 李四 | 【人名1】 | person_name |
`
	mapping := Parse(content)

	require.Len(t, mapping, 1)
	assert.Equal(t, "李四", mapping["【人名1】"])
}

func TestParse_NoTables(t *testing.T) {
	assert.Empty(t, Parse("没有表格的普通文档"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "比对.md")
	content := "| 1 | 张三 | 【人名1】 | person_name |\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	mapping, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "张三", mapping["【人名1】"])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "不存在.md"))
	assert.Error(t, err)
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)
}

package mapping

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// 比对文档表格行格式: | 序号 | 原文 | 替换 | 类型 | 位置 |
var (
	tableRowPattern  = regexp.MustCompile(`\|\s*\d+\s*\|\s*([^|]+)\s*\|\s*([^|]+)\s*\|`)
	codeSpanPattern  = regexp.MustCompile("^`(.+)`$")
	linkTextPattern  = regexp.MustCompile(`^\[([^\]]+)\]`)
)

// Load 从文件加载比对文档并解析为反向映射
func Load(filePath string) (map[string]string, error) {
	if filePath == "" {
		return nil, fmt.Errorf("比对文档路径不能为空")
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("读取比对文档失败: %w", err)
	}

	return Parse(string(data)), nil
}

// Parse 从比对文档内容中提取 替换标记→原文 的映射。
//
// 只接受替换列被【】包裹的行，借此过滤普通表格；表头行按
// 列标题文本识别并跳过；重复标记后出现的行覆盖先出现的行。
// 原文列在存储前做规范化，去掉 Markdown 渲染引入的包装。
func Parse(content string) map[string]string {
	mapping := make(map[string]string)

	for _, match := range tableRowPattern.FindAllStringSubmatch(content, -1) {
		original := strings.TrimSpace(match[1])
		replacement := strings.TrimSpace(match[2])

		// 跳过表头
		if original == "原文" || replacement == "替换" {
			continue
		}

		if !strings.HasPrefix(replacement, "【") || !strings.HasSuffix(replacement, "】") {
			continue
		}

		mapping[replacement] = normalizeOriginal(original)
	}

	return mapping
}

// normalizeOriginal 将原文列的多种 Markdown 编码还原为裸文本，
// 按 代码块、链接、自动链接 的顺序尝试，首个命中生效：
//
//	`a@b.com`                    -> a@b.com
//	[a@b.com](mailto:a@b.com)    -> a@b.com
//	<a@b.com>                    -> a@b.com
func normalizeOriginal(original string) string {
	if m := codeSpanPattern.FindStringSubmatch(original); m != nil {
		return m[1]
	}
	if strings.HasPrefix(original, "[") && strings.Contains(original, "](") {
		if m := linkTextPattern.FindStringSubmatch(original); m != nil {
			return m[1]
		}
		return original
	}
	if strings.HasPrefix(original, "<") && strings.HasSuffix(original, ">") {
		return original[1 : len(original)-1]
	}
	return original
}

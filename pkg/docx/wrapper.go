package docx

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

// DocxWrapper 包装 nguyenthenguyen/docx 库，
// 用于文档校验与纯文本提取
type DocxWrapper struct {
	doc      *docx.ReplaceDocx
	filePath string
}

// OpenDocument 打开 DOCX 文档
func (dw *DocxWrapper) OpenDocument(filePath string) error {
	doc, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return fmt.Errorf("打开文档失败: %w", err)
	}

	dw.doc = doc
	dw.filePath = filePath
	return nil
}

// Close 关闭文档
func (dw *DocxWrapper) Close() error {
	if dw.doc == nil {
		return nil
	}
	err := dw.doc.Close()
	dw.doc = nil
	return err
}

// ExtractText 提取正文的纯文本内容（用于校验与调试输出）
func (dw *DocxWrapper) ExtractText() (string, error) {
	if dw.doc == nil {
		return "", fmt.Errorf("文档未打开")
	}
	return extractTextFromXML(dw.doc.Editable().GetContent()), nil
}

// ValidateDocument 校验文档能否作为有效的 DOCX 打开
func ValidateDocument(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("输入路径不能为空")
	}

	wrapper := &DocxWrapper{}
	if err := wrapper.OpenDocument(filePath); err != nil {
		return fmt.Errorf("无法打开文档: %w", err)
	}
	return wrapper.Close()
}

var textNodePattern = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

// extractTextFromXML 提取所有 w:t 节点的文本并拼接
func extractTextFromXML(xmlContent string) string {
	matches := textNodePattern.FindAllStringSubmatch(xmlContent, -1)

	var parts []string
	for _, match := range matches {
		if len(match) > 1 {
			parts = append(parts, unescapeXML(match[1]))
		}
	}
	return strings.Join(parts, "")
}

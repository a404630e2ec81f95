package processor

import (
	"fmt"
	"log"
	"strings"

	"github.com/allanpk716/docx_redactor/internal/engine"
	"github.com/allanpk716/docx_redactor/pkg/docx"
)

// Restorer 还原处理器：用比对文档的反向映射恢复脱敏内容
type Restorer struct {
	mapping map[string]string
	verbose bool
}

// NewRestorer 创建还原处理器
func NewRestorer(mapping map[string]string, verbose bool) (*Restorer, error) {
	if len(mapping) == 0 {
		return nil, fmt.Errorf("比对文档中没有有效的替换映射")
	}
	return &Restorer{mapping: mapping, verbose: verbose}, nil
}

// ProcessDocument 还原单个文档并保存到输出路径，返回还原次数。
// 遍历范围为正文段落与表格（含嵌套）；页眉页脚不在还原范围内，
// 与比对文档的生成路径保持相同假设。
func (r *Restorer) ProcessDocument(inputPath, outputPath string) (int, error) {
	if err := docx.ValidateDocument(inputPath); err != nil {
		return 0, fmt.Errorf("文档验证失败: %w", err)
	}
	if outputPath == "" {
		return 0, fmt.Errorf("输出路径不能为空")
	}

	doc, err := docx.Open(inputPath)
	if err != nil {
		return 0, fmt.Errorf("无法读取文件 %s: %w", inputPath, err)
	}

	count := 0
	for _, para := range doc.Body().Paragraphs() {
		count += r.restoreParagraph(para)
	}
	for _, table := range doc.Body().Tables() {
		count += r.restoreTable(table)
	}

	if r.verbose {
		r.reportRemaining(doc)
	}

	if err := doc.Save(outputPath); err != nil {
		return 0, fmt.Errorf("无法保存文件 %s: %w", outputPath, err)
	}

	return count, nil
}

// restoreTable 递归还原表格及其嵌套表格
func (r *Restorer) restoreTable(table *docx.Table) int {
	count := 0
	for _, row := range table.Rows {
		for _, cell := range row.Cells {
			for _, para := range cell.Paragraphs() {
				count += r.restoreParagraph(para)
			}
			for _, nested := range cell.Tables() {
				count += r.restoreTable(nested)
			}
		}
	}
	return count
}

func (r *Restorer) restoreParagraph(para *docx.Paragraph) int {
	count := engine.RestoreParagraph(para, r.mapping)
	if count > 0 && r.verbose {
		log.Printf("[DEBUG] 还原 %d 处: %s", count, para.Text())
	}
	return count
}

// reportRemaining 检查遍历范围之外是否仍残留替换标记，
// 页眉页脚不在还原范围内，残留时在调试输出中提示
func (r *Restorer) reportRemaining(doc *docx.Document) {
	for sectionIdx, section := range doc.Sections() {
		for _, kinds := range headerFooterKinds {
			for _, part := range []*docx.Part{section.Header(kinds.kind), section.Footer(kinds.kind)} {
				if part == nil {
					continue
				}
				for _, para := range part.Paragraphs() {
					text := para.Text()
					for key := range r.mapping {
						if strings.Contains(text, key) {
							log.Printf("[DEBUG] 第 %d 节页眉页脚中残留替换标记: %s", sectionIdx+1, key)
						}
					}
				}
			}
		}
	}
}

package processor

import (
	"fmt"
	"log"

	"github.com/allanpk716/docx_redactor/internal/engine"
	"github.com/allanpk716/docx_redactor/internal/report"
	"github.com/allanpk716/docx_redactor/internal/rules"
	"github.com/allanpk716/docx_redactor/pkg/docx"
)

// Redactor 脱敏处理器：按固定顺序遍历文档并应用规则集
type Redactor struct {
	engine  *engine.Engine
	verbose bool
}

// NewRedactor 创建脱敏处理器
func NewRedactor(ruleSet *rules.RuleSet, verbose bool) *Redactor {
	return &Redactor{
		engine:  engine.New(ruleSet, verbose),
		verbose: verbose,
	}
}

// ProcessDocument 对单个文档执行脱敏并保存到输出路径，
// 返回本次运行的处理日志。
// 文档在内存中完成全部改写后才执行保存，保存失败不产生
// 部分写入的输出文件。
func (r *Redactor) ProcessDocument(inputPath, outputPath string) (*report.AuditLog, error) {
	if err := docx.ValidateDocument(inputPath); err != nil {
		return nil, fmt.Errorf("文档验证失败: %w", err)
	}
	if outputPath == "" {
		return nil, fmt.Errorf("输出路径不能为空")
	}

	doc, err := docx.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("无法读取文件 %s: %w", inputPath, err)
	}

	auditLog := report.New(inputPath, outputPath)
	r.redactDocument(doc, auditLog)

	if err := doc.Save(outputPath); err != nil {
		return nil, fmt.Errorf("无法保存文件 %s: %w", outputPath, err)
	}

	return auditLog, nil
}

// 页眉页脚的遍历顺序与位置标识前缀
var headerFooterKinds = []struct {
	kind        string
	headerLabel string
	footerLabel string
}{
	{"default", "header", "footer"},
	{"first", "first_header", "first_footer"},
	{"even", "even_header", "even_footer"},
}

// redactDocument 按固定顺序遍历：正文段落、表格（含嵌套）、
// 各节的页眉页脚变体
func (r *Redactor) redactDocument(doc *docx.Document, auditLog *report.AuditLog) {
	body := doc.Body()

	for i, para := range body.Paragraphs() {
		r.redactParagraph(para, fmt.Sprintf("paragraph:%d", i+1), auditLog)
	}

	for i, table := range body.Tables() {
		r.redactTable(table, fmt.Sprintf("table:%d", i+1), auditLog)
	}

	for sectionIdx, section := range doc.Sections() {
		for _, kinds := range headerFooterKinds {
			if part := section.Header(kinds.kind); part != nil {
				r.redactPart(part, kinds.headerLabel, sectionIdx+1, auditLog)
			}
			if part := section.Footer(kinds.kind); part != nil {
				r.redactPart(part, kinds.footerLabel, sectionIdx+1, auditLog)
			}
		}
	}
}

// redactPart 处理单个页眉或页脚部件的全部段落与表格
func (r *Redactor) redactPart(part *docx.Part, label string, sectionIdx int, auditLog *report.AuditLog) {
	for i, para := range part.Paragraphs() {
		location := fmt.Sprintf("%s:section:%d,para:%d", label, sectionIdx, i+1)
		r.redactParagraph(para, location, auditLog)
	}
	for i, table := range part.Tables() {
		prefix := fmt.Sprintf("%s:section:%d,table:%d", label, sectionIdx, i+1)
		r.redactTable(table, prefix, auditLog)
	}
}

// redactTable 递归处理表格及其嵌套表格，行优先、单元格次序
func (r *Redactor) redactTable(table *docx.Table, prefix string, auditLog *report.AuditLog) {
	for rowIdx, row := range table.Rows {
		for cellIdx, cell := range row.Cells {
			base := fmt.Sprintf("%s,row:%d,cell:%d", prefix, rowIdx+1, cellIdx+1)
			for paraIdx, para := range cell.Paragraphs() {
				r.redactParagraph(para, fmt.Sprintf("%s,para:%d", base, paraIdx+1), auditLog)
			}
			for nestedIdx, nested := range cell.Tables() {
				r.redactTable(nested, fmt.Sprintf("%s,nested_table:%d", base, nestedIdx+1), auditLog)
			}
		}
	}
}

// redactParagraph 对单个段落应用规则并记录生效的操作
func (r *Redactor) redactParagraph(para *docx.Paragraph, location string, auditLog *report.AuditLog) {
	applied := r.engine.RedactParagraph(para, location)
	if len(applied) > 0 {
		if r.verbose {
			log.Printf("[DEBUG] %s: %d 处脱敏", location, len(applied))
		}
		auditLog.Append(applied...)
	}
}

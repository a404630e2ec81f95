package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/width"

	"github.com/allanpk716/docx_redactor/internal/domain"
)

// AuditLog 一次脱敏运行的处理日志，按遍历顺序累积
type AuditLog struct {
	RunID           string               `json:"runId"`
	InputFile       string               `json:"inputFile"`
	OutputFile      string               `json:"outputFile"`
	ProcessTime     string               `json:"processTime"`
	TotalRedactions int                  `json:"totalRedactions"`
	Redactions      []domain.RedactionOp `json:"redactions"`
}

// New 创建处理日志
func New(inputFile, outputFile string) *AuditLog {
	return &AuditLog{
		RunID:       uuid.NewString(),
		InputFile:   inputFile,
		OutputFile:  outputFile,
		ProcessTime: time.Now().Format(time.RFC3339),
	}
}

// Append 追加已生效的脱敏操作
func (l *AuditLog) Append(ops ...domain.RedactionOp) {
	l.Redactions = append(l.Redactions, ops...)
	l.TotalRedactions = len(l.Redactions)
}

// Count 返回已记录的操作数量
func (l *AuditLog) Count() int {
	return len(l.Redactions)
}

// SaveJSON 将处理日志写入 JSON 文件
func (l *AuditLog) SaveJSON(filePath string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("序列化处理日志失败: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("写入处理日志失败: %w", err)
	}
	return nil
}

// 比对文档表头，与 mapping 包解析的格式一致
var markdownHeader = []string{"序号", "原文", "替换", "类型", "位置"}

// Markdown 生成供人工复核的比对文档表格。
// 列宽按显示宽度对齐，中日韩全角字符计 2 列。
func (l *AuditLog) Markdown() string {
	rows := make([][]string, 0, len(l.Redactions))
	for i, op := range l.Redactions {
		rows = append(rows, []string{
			strconv.Itoa(i + 1), op.Original, op.Replacement, op.Category, op.Location,
		})
	}

	widths := make([]int, len(markdownHeader))
	for i, cell := range markdownHeader {
		widths[i] = displayWidth(cell)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := displayWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var builder strings.Builder
	builder.WriteString("# 脱敏比对文档\n\n")
	builder.WriteString(fmt.Sprintf("- 源文件: %s\n", l.InputFile))
	builder.WriteString(fmt.Sprintf("- 输出文件: %s\n", l.OutputFile))
	builder.WriteString(fmt.Sprintf("- 处理时间: %s\n", l.ProcessTime))
	builder.WriteString(fmt.Sprintf("- 脱敏总数: %d\n\n", l.TotalRedactions))

	writeRow(&builder, markdownHeader, widths)
	separator := make([]string, len(markdownHeader))
	for i := range separator {
		separator[i] = strings.Repeat("-", widths[i])
	}
	writeRow(&builder, separator, widths)
	for _, row := range rows {
		writeRow(&builder, row, widths)
	}

	return builder.String()
}

// SaveMarkdown 将比对文档写入文件
func (l *AuditLog) SaveMarkdown(filePath string) error {
	if err := os.WriteFile(filePath, []byte(l.Markdown()), 0644); err != nil {
		return fmt.Errorf("写入比对文档失败: %w", err)
	}
	return nil
}

// writeRow 输出一行表格，按列宽补齐空格
func writeRow(builder *strings.Builder, cells []string, widths []int) {
	builder.WriteString("|")
	for i, cell := range cells {
		padding := widths[i] - displayWidth(cell)
		if padding < 0 {
			padding = 0
		}
		builder.WriteString(" ")
		builder.WriteString(cell)
		builder.WriteString(strings.Repeat(" ", padding))
		builder.WriteString(" |")
	}
	builder.WriteString("\n")
}

// displayWidth 计算终端显示宽度，全角字符计 2 列
func displayWidth(s string) int {
	total := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			total += 2
		default:
			total++
		}
	}
	return total
}

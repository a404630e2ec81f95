package docx

import (
	"sort"
	"strings"

	"github.com/allanpk716/docx_redactor/internal/domain"
)

// Part 表示一个持有文本内容的 XML 部件
// （word/document.xml 或页眉页脚部件）。
// 解析时只记录各 run 文本节点的字节位置，渲染时按位置拼接，
// 未被改写的字节原样输出。
type Part struct {
	name     string
	content  string
	blocks   []Block
	runs     []*Run
	modified bool
}

// Block 表示部件或单元格中的一个顶层内容块，
// Paragraph 与 Table 恰有一个非空
type Block struct {
	Paragraph *Paragraph
	Table     *Table
}

// Table 表示一个表格
type Table struct {
	Rows []*Row
}

// Row 表示表格中的一行
type Row struct {
	Cells []*Cell
}

// Cell 表示表格单元格，内容块中可能包含嵌套表格
type Cell struct {
	Blocks []Block
}

// Paragraphs 返回单元格内的段落（不含嵌套表格中的）
func (c *Cell) Paragraphs() []*Paragraph {
	return paragraphsOf(c.Blocks)
}

// Tables 返回单元格内的嵌套表格
func (c *Cell) Tables() []*Table {
	return tablesOf(c.Blocks)
}

// Paragraph 表示一个持有有序 run 序列的段落
type Paragraph struct {
	runs []*Run
}

// Segments 按顺序返回段落的全部片段
func (p *Paragraph) Segments() []domain.Segment {
	segments := make([]domain.Segment, len(p.runs))
	for i, run := range p.runs {
		segments[i] = run
	}
	return segments
}

// Text 返回所有 run 文本按顺序拼接的结果
func (p *Paragraph) Text() string {
	var builder strings.Builder
	for _, run := range p.runs {
		builder.WriteString(run.text)
	}
	return builder.String()
}

// Run 表示段落中一个格式一致的文本片段，
// 各偏移量均指向所属部件的原始内容
type Run struct {
	part *Part

	rInnerStart  int // <w:r> 开始标签之后的位置
	prInnerStart int // <w:rPr> 开始标签之后的位置，无 rPr 时为 -1
	prHighlight  bool

	tTagStart  int // <w:t> 的 '<' 位置，无文本节点时为 -1
	tOpenEnd   int // <w:t> 开始标签之后的位置
	tInnerEnd  int // </w:t> 的 '<' 位置
	tSelfClose bool

	text      string
	modified  bool
	highlight bool
}

// Text 返回 run 当前的文本内容
func (r *Run) Text() string {
	return r.text
}

// SetText 替换 run 的文本内容
func (r *Run) SetText(text string) {
	if text == r.text {
		return
	}
	r.text = text
	r.modified = true
	r.part.modified = true
}

// Mark 为 run 添加黄色高亮，已有高亮时不重复添加
func (r *Run) Mark() {
	if r.highlight || r.prHighlight {
		return
	}
	r.highlight = true
	r.part.modified = true
}

// newPart 解析 XML 部件内容
func newPart(name, content string) *Part {
	part := &Part{name: name, content: content}
	part.blocks = part.scanBlocks(0, len(content))
	return part
}

// Name 返回部件在容器中的路径
func (p *Part) Name() string {
	return p.name
}

// Blocks 返回部件的顶层内容块
func (p *Part) Blocks() []Block {
	return p.blocks
}

// Paragraphs 返回部件的顶层段落（不含表格内的）
func (p *Part) Paragraphs() []*Paragraph {
	return paragraphsOf(p.blocks)
}

// Tables 返回部件的顶层表格
func (p *Part) Tables() []*Table {
	return tablesOf(p.blocks)
}

// Modified 返回部件内容是否被改写过
func (p *Part) Modified() bool {
	return p.modified
}

// scanBlocks 按文档顺序扫描 [from, end) 内的段落与表格。
// 表格整体元素先于其内部段落出现，扫过表格后跳到元素末尾，
// 表格内的段落因此不会被重复收为顶层段落。
func (p *Part) scanBlocks(from, end int) []Block {
	var blocks []Block
	pos := from
	for {
		pPos := nextTag(p.content, pos, end, "w:p")
		tblPos := nextTag(p.content, pos, end, "w:tbl")
		if pPos == -1 && tblPos == -1 {
			return blocks
		}

		if tblPos != -1 && (pPos == -1 || tblPos < pPos) {
			elem, ok := findElement(p.content, tblPos, end, "w:tbl")
			if !ok {
				return blocks
			}
			blocks = append(blocks, Block{Table: p.scanTable(elem)})
			pos = elem.end
			continue
		}

		elem, ok := findElement(p.content, pPos, end, "w:p")
		if !ok {
			return blocks
		}
		blocks = append(blocks, Block{Paragraph: p.scanParagraph(elem)})
		pos = elem.end
	}
}

// scanTable 扫描表格的行与单元格，单元格内容递归扫描，
// 嵌套表格由此自然展开
func (p *Part) scanTable(table element) *Table {
	result := &Table{}
	pos := table.innerStart
	for {
		row, ok := findElement(p.content, pos, table.innerEnd, "w:tr")
		if !ok {
			return result
		}
		r := &Row{}
		cellPos := row.innerStart
		for {
			cell, ok := findElement(p.content, cellPos, row.innerEnd, "w:tc")
			if !ok {
				break
			}
			r.Cells = append(r.Cells, &Cell{Blocks: p.scanBlocks(cell.innerStart, cell.innerEnd)})
			cellPos = cell.end
		}
		result.Rows = append(result.Rows, r)
		pos = row.end
	}
}

// scanParagraph 扫描段落内的 run 序列。
// 文本框（w:drawing 内嵌套的 w:p）属于内层段落，其 run 不计入
// 当前段落。
func (p *Part) scanParagraph(para element) *Paragraph {
	result := &Paragraph{}
	pos := para.innerStart
	for {
		rPos := nextTag(p.content, pos, para.innerEnd, "w:r")
		if rPos == -1 {
			return result
		}

		// 嵌套段落出现在下一个 run 之前时，整体跳过
		if pPos := nextTag(p.content, pos, para.innerEnd, "w:p"); pPos != -1 && pPos < rPos {
			nested, ok := findElement(p.content, pPos, para.innerEnd, "w:p")
			if !ok {
				return result
			}
			pos = nested.end
			continue
		}

		elem, ok := findElement(p.content, rPos, para.innerEnd, "w:r")
		if !ok {
			return result
		}
		if !elem.selfClosed {
			run := p.scanRun(elem)
			result.runs = append(result.runs, run)
			p.runs = append(p.runs, run)
		}
		pos = elem.end
	}
}

// scanRun 解析单个 run 的属性与文本节点位置
func (p *Part) scanRun(r element) *Run {
	run := &Run{
		part:         p,
		rInnerStart:  r.innerStart,
		prInnerStart: -1,
		tTagStart:    -1,
	}

	if pr, ok := findElement(p.content, r.innerStart, r.innerEnd, "w:rPr"); ok && !pr.selfClosed {
		run.prInnerStart = pr.innerStart
		run.prHighlight = nextTag(p.content, pr.innerStart, pr.innerEnd, "w:highlight") != -1
	}

	t, ok := findElement(p.content, r.innerStart, r.innerEnd, "w:t")
	if !ok {
		return run
	}
	// 文本节点落在 run 内嵌套的段落（文本框内容）中时不属于本 run
	if pPos := nextTag(p.content, r.innerStart, r.innerEnd, "w:p"); pPos != -1 && pPos < t.start {
		return run
	}

	run.tTagStart = t.start
	run.tOpenEnd = t.openEnd
	run.tInnerEnd = t.innerEnd
	run.tSelfClose = t.selfClosed
	run.text = unescapeXML(p.content[t.innerStart:t.innerEnd])
	return run
}

// splice 表示渲染时的一处字节替换
type splice struct {
	start int
	end   int
	text  string
}

// Render 输出部件内容：被改写的 run 在记录的位置上拼接，
// 其余字节与原始内容完全一致
func (p *Part) Render() string {
	if !p.modified {
		return p.content
	}

	var splices []splice
	for _, run := range p.runs {
		// 高亮插入点可能与文本节点起点重合（run 无 rPr 且 w:t 紧随
		// <w:r> 时），先收集高亮保证稳定排序后插入在前
		if run.highlight {
			if run.prInnerStart >= 0 {
				splices = append(splices, splice{
					start: run.prInnerStart,
					end:   run.prInnerStart,
					text:  `<w:highlight w:val="yellow"/>`,
				})
			} else {
				splices = append(splices, splice{
					start: run.rInnerStart,
					end:   run.rInnerStart,
					text:  `<w:rPr><w:highlight w:val="yellow"/></w:rPr>`,
				})
			}
		}
		if run.modified && run.tTagStart >= 0 {
			escaped := escapeXML(run.text)
			if run.tSelfClose {
				splices = append(splices, splice{
					start: run.tTagStart,
					end:   run.tOpenEnd,
					text:  `<w:t xml:space="preserve">` + escaped + `</w:t>`,
				})
			} else {
				// 保留原有的 </w:t> 结束标签
				splices = append(splices, splice{
					start: run.tTagStart,
					end:   run.tInnerEnd,
					text:  `<w:t xml:space="preserve">` + escaped,
				})
			}
		}
	}

	sort.SliceStable(splices, func(i, j int) bool {
		return splices[i].start < splices[j].start
	})

	var builder strings.Builder
	builder.Grow(len(p.content))
	prev := 0
	for _, s := range splices {
		builder.WriteString(p.content[prev:s.start])
		builder.WriteString(s.text)
		prev = s.end
	}
	builder.WriteString(p.content[prev:])
	return builder.String()
}

func paragraphsOf(blocks []Block) []*Paragraph {
	var paragraphs []*Paragraph
	for _, block := range blocks {
		if block.Paragraph != nil {
			paragraphs = append(paragraphs, block.Paragraph)
		}
	}
	return paragraphs
}

func tablesOf(blocks []Block) []*Table {
	var tables []*Table
	for _, block := range blocks {
		if block.Table != nil {
			tables = append(tables, block.Table)
		}
	}
	return tables
}

package engine

import "github.com/allanpk716/docx_redactor/internal/domain"

// Rewrite 按 Resolve 的结果改写片段文本，使拼接结果中被匹配的
// 区间变为 replacement，区间外的字符保持不变。
//
// 单片段情形：目标完全落在一个片段内，前后缀原样保留。
// 跨片段情形：首片段保留前缀并接上替换文本，中间片段清空
// （格式保留、内容消失），尾片段只保留后缀。
// mark 为 true 时仅标记承载替换文本的首片段。
//
// entries 必须是 Resolve 对同一段落的输出（非空、按片段顺序），
// 调用方负责保证这一前提。
func Rewrite(entries []domain.OverlapEntry, replacement string, mark bool) {
	if len(entries) == 0 {
		return
	}

	if len(entries) == 1 {
		entry := entries[0]
		text := entry.Segment.Text()
		entry.Segment.SetText(text[:entry.LocalStart] + replacement + text[entry.LocalEnd:])
		if mark {
			entry.Segment.Mark()
		}
		return
	}

	first := entries[0]
	last := entries[len(entries)-1]

	prefix := first.Segment.Text()[:first.LocalStart]
	suffix := last.Segment.Text()[last.LocalEnd:]

	first.Segment.SetText(prefix + replacement)
	if mark {
		first.Segment.Mark()
	}

	for _, entry := range entries[1 : len(entries)-1] {
		entry.Segment.SetText("")
	}

	last.Segment.SetText(suffix)
}

package engine

import (
	"strings"
	"unicode/utf8"

	"github.com/allanpk716/docx_redactor/internal/domain"
)

// Resolve 在片段序列中定位目标文本的第一次出现。
//
// 先按顺序拼接片段文本重建段落逻辑文本，同时记录每个片段的
// 偏移窗口；然后取目标文本最左侧的出现位置，与各片段窗口求交，
// 为每个有重叠的片段生成一条 OverlapEntry（按片段顺序）。
//
// 目标不存在、或去除首尾空白后字符数低于 minLength 时返回 nil。
// 本函数只读，不修改任何片段。
func Resolve(segments []domain.Segment, target string, minLength int) []domain.OverlapEntry {
	if target == "" {
		return nil
	}
	if utf8.RuneCountInString(strings.TrimSpace(target)) < minLength {
		return nil
	}

	var builder strings.Builder
	windows := make([]domain.Span, len(segments))
	for i, seg := range segments {
		start := builder.Len()
		builder.WriteString(seg.Text())
		windows[i] = domain.Span{Start: start, End: builder.Len()}
	}

	fullText := builder.String()
	pos := strings.Index(fullText, target)
	if pos == -1 {
		return nil
	}
	span := domain.Span{Start: pos, End: pos + len(target)}

	var entries []domain.OverlapEntry
	for i, seg := range segments {
		overlapStart := max(span.Start, windows[i].Start)
		overlapEnd := min(span.End, windows[i].End)
		if overlapStart >= overlapEnd {
			continue
		}
		entries = append(entries, domain.OverlapEntry{
			Segment:    seg,
			LocalStart: overlapStart - windows[i].Start,
			LocalEnd:   overlapEnd - windows[i].Start,
			AbsStart:   overlapStart,
			AbsEnd:     overlapEnd,
		})
	}

	return entries
}

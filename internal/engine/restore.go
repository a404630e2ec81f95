package engine

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/allanpk716/docx_redactor/internal/domain"
)

// RestoreParagraph 用反向映射（替换标记→原文）还原段落，
// 返回还原次数。
//
// 映射键按字符数降序尝试，长标记优先，避免短标记先命中长
// 标记的一部分。每个标记的所有出现都会被还原，重复还原同一
// 段落因此是无操作。
func RestoreParagraph(para domain.Paragraph, mapping map[string]string) int {
	keys := sortedKeys(mapping)

	count := 0
	for _, key := range keys {
		original := mapping[key]
		for strings.Contains(para.Text(), key) {
			entries := Resolve(para.Segments(), key, 0)
			if entries == nil {
				break
			}
			Rewrite(entries, original, false)
			count++
			// 原文中包含标记本身时只还原一次，防止死循环
			if strings.Contains(original, key) {
				break
			}
		}
	}
	return count
}

// sortedKeys 返回按字符数降序、同长度按字典序排列的映射键
func sortedKeys(mapping map[string]string) []string {
	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(keys[i]), utf8.RuneCountInString(keys[j])
		if li != lj {
			return li > lj
		}
		return keys[i] < keys[j]
	})
	return keys
}

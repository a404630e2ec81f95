package docx

import (
	"strconv"
	"strings"
)

// element 描述原始 XML 内容中一个元素的字节位置
type element struct {
	start      int // '<' 的位置
	openEnd    int // 开始标签 '>' 之后的位置
	innerStart int
	innerEnd   int // 结束标签 '<' 的位置，自闭合时等于 innerStart
	end        int // 整个元素之后的位置
	selfClosed bool
}

// isTagBoundary 判断标签名后的字符是否构成完整标签名。
// 避免 w:p 误匹配 w:pPr、w:tbl 误匹配 w:tblPr 这类前缀冲突。
func isTagBoundary(c byte) bool {
	switch c {
	case '>', '/', ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

// nextTag 查找 [from, end) 内下一个名为 name 的开始标签，
// 返回 '<' 的位置，找不到返回 -1
func nextTag(content string, from, end int, name string) int {
	needle := "<" + name
	for from < end {
		idx := strings.Index(content[from:end], needle)
		if idx == -1 {
			return -1
		}
		pos := from + idx
		after := pos + len(needle)
		if after < len(content) && isTagBoundary(content[after]) {
			return pos
		}
		from = after
	}
	return -1
}

// findElement 定位 [from, end) 内下一个名为 name 的完整元素。
// 同名元素可以嵌套（如单元格内的嵌套表格、文本框内的段落），
// 通过深度计数找到配对的结束标签；自闭合标签直接返回。
func findElement(content string, from, end int, name string) (element, bool) {
	start := nextTag(content, from, end, name)
	if start == -1 {
		return element{}, false
	}

	gt := strings.IndexByte(content[start:end], '>')
	if gt == -1 {
		return element{}, false
	}
	openEnd := start + gt + 1

	if content[openEnd-2] == '/' {
		return element{
			start: start, openEnd: openEnd,
			innerStart: openEnd, innerEnd: openEnd, end: openEnd,
			selfClosed: true,
		}, true
	}

	closeTag := "</" + name + ">"
	depth := 1
	pos := openEnd
	for depth > 0 {
		closeIdx := strings.Index(content[pos:end], closeTag)
		if closeIdx == -1 {
			return element{}, false
		}
		closeAbs := pos + closeIdx

		openAbs := nextTag(content, pos, end, name)
		if openAbs != -1 && openAbs < closeAbs {
			innerGt := strings.IndexByte(content[openAbs:end], '>')
			if innerGt == -1 {
				return element{}, false
			}
			nestedOpenEnd := openAbs + innerGt + 1
			if content[nestedOpenEnd-2] != '/' {
				depth++
			}
			pos = nestedOpenEnd
			continue
		}

		depth--
		if depth == 0 {
			return element{
				start: start, openEnd: openEnd,
				innerStart: openEnd, innerEnd: closeAbs,
				end: closeAbs + len(closeTag),
			}, true
		}
		pos = closeAbs + len(closeTag)
	}

	return element{}, false
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// escapeXML 转义写回 w:t 文本节点的内容
func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}

// unescapeXML 还原 w:t 文本节点中的实体引用，
// 支持命名实体与十进制/十六进制数值引用
func unescapeXML(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}

	var builder strings.Builder
	builder.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '&' {
			builder.WriteByte(s[i])
			i++
			continue
		}
		semi := strings.IndexByte(s[i:], ';')
		if semi == -1 {
			builder.WriteByte(s[i])
			i++
			continue
		}
		entity := s[i+1 : i+semi]
		switch entity {
		case "amp":
			builder.WriteByte('&')
		case "lt":
			builder.WriteByte('<')
		case "gt":
			builder.WriteByte('>')
		case "quot":
			builder.WriteByte('"')
		case "apos":
			builder.WriteByte('\'')
		default:
			if r, ok := parseCharRef(entity); ok {
				builder.WriteRune(r)
			} else {
				// 未知实体原样保留
				builder.WriteString(s[i : i+semi+1])
			}
		}
		i += semi + 1
	}
	return builder.String()
}

// parseCharRef 解析 #NNN 或 #xHHH 形式的数值字符引用
func parseCharRef(entity string) (rune, bool) {
	if !strings.HasPrefix(entity, "#") {
		return 0, false
	}
	body := entity[1:]
	base := 10
	if strings.HasPrefix(body, "x") || strings.HasPrefix(body, "X") {
		body = body[1:]
		base = 16
	}
	n, err := strconv.ParseInt(body, base, 32)
	if err != nil || n < 0 {
		return 0, false
	}
	return rune(n), true
}

package docx

import "testing"

func TestNextTag_Boundary(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		tag      string
		expected int
	}{
		{"exact tag", `<w:p><w:r></w:r></w:p>`, "w:p", 0},
		{"skips prefix collision", `<w:pPr></w:pPr><w:p>`, "w:p", 15},
		{"tbl vs tblPr", `<w:tblPr/><w:tbl>`, "w:tbl", 10},
		{"self closing", `<w:p/>`, "w:p", 0},
		{"with attributes", `<w:t xml:space="preserve">x</w:t>`, "w:t", 0},
		{"not found", `<w:r></w:r>`, "w:p", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextTag(tt.content, 0, len(tt.content), tt.tag)
			if got != tt.expected {
				t.Errorf("nextTag() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestFindElement_Nested(t *testing.T) {
	// 单元格内的嵌套表格：外层元素必须匹配到最外层的结束标签
	content := `<w:tbl><w:tr><w:tc><w:tbl><w:tr/></w:tbl></w:tc></w:tr></w:tbl><w:p/>`

	elem, ok := findElement(content, 0, len(content), "w:tbl")
	if !ok {
		t.Fatal("findElement() failed")
	}
	if elem.start != 0 {
		t.Errorf("start = %d", elem.start)
	}
	if content[elem.innerEnd:elem.end] != "</w:tbl>" {
		t.Errorf("unexpected closing tag position: %q", content[elem.innerEnd:elem.end])
	}
	if elem.end != len(content)-len("<w:p/>") {
		t.Errorf("end = %d, expected %d", elem.end, len(content)-len("<w:p/>"))
	}
}

func TestFindElement_SelfClosed(t *testing.T) {
	content := `<w:p/><w:p><w:r/></w:p>`

	elem, ok := findElement(content, 0, len(content), "w:p")
	if !ok {
		t.Fatal("findElement() failed")
	}
	if !elem.selfClosed {
		t.Error("expected self-closed element")
	}
	if elem.end != 6 {
		t.Errorf("end = %d, expected 6", elem.end)
	}

	second, ok := findElement(content, elem.end, len(content), "w:p")
	if !ok {
		t.Fatal("second findElement() failed")
	}
	if second.selfClosed {
		t.Error("second element should not be self-closed")
	}
	if content[second.innerStart:second.innerEnd] != "<w:r/>" {
		t.Errorf("inner = %q", content[second.innerStart:second.innerEnd])
	}
}

func TestFindElement_Unclosed(t *testing.T) {
	if _, ok := findElement(`<w:p><w:r>`, 0, 10, "w:p"); ok {
		t.Error("expected failure for unclosed element")
	}
}

func TestUnescapeXML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "hello", "hello"},
		{"named entities", "a &amp; b &lt;c&gt; &quot;d&quot; &apos;e&apos;", `a & b <c> "d" 'e'`},
		{"decimal ref", "&#20013;&#25991;", "中文"},
		{"hex ref", "&#x4E2D;", "中"},
		{"unknown entity kept", "&unknown;", "&unknown;"},
		{"bare ampersand", "a & b", "a & b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := unescapeXML(tt.input); got != tt.expected {
				t.Errorf("unescapeXML(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEscapeXML(t *testing.T) {
	if got := escapeXML(`a & b < c > d`); got != "a &amp; b &lt; c &gt; d" {
		t.Errorf("escapeXML() = %q", got)
	}
}

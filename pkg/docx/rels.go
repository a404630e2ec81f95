package docx

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"
)

const documentRelsPart = "word/_rels/document.xml.rels"

// relationships document.xml.rels 的结构，只读解析，无需回写
type relationships struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Relationships []relationship `xml:"Relationship"`
}

type relationship struct {
	ID     string `xml:"Id,attr"`
	Type   string `xml:"Type,attr"`
	Target string `xml:"Target,attr"`
}

// 节属性中的页眉页脚引用，如
// <w:headerReference w:type="default" r:id="rId8"/>
var (
	hfReferencePattern = regexp.MustCompile(`<w:(header|footer)Reference\b[^>]*>`)
	typeAttrPattern    = regexp.MustCompile(`w:type="([^"]*)"`)
	idAttrPattern      = regexp.MustCompile(`r:id="([^"]*)"`)
)

// resolveSections 扫描正文中的节属性（w:sectPr），通过关系表把
// 页眉页脚引用解析为具体部件并按需解析部件内容
func (d *Document) resolveSections() error {
	relTargets, err := d.loadRelationships()
	if err != nil {
		return err
	}

	content := d.body.content
	pos := 0
	for {
		sectPr, ok := findElement(content, pos, len(content), "w:sectPr")
		if !ok {
			return nil
		}
		section := &Section{
			headers: make(map[string]*Part),
			footers: make(map[string]*Part),
		}

		inner := content[sectPr.innerStart:sectPr.innerEnd]
		for _, ref := range hfReferencePattern.FindAllStringSubmatch(inner, -1) {
			kind := "default"
			if m := typeAttrPattern.FindStringSubmatch(ref[0]); m != nil {
				kind = m[1]
			}
			idMatch := idAttrPattern.FindStringSubmatch(ref[0])
			if idMatch == nil {
				continue
			}
			target, found := relTargets[idMatch[1]]
			if !found {
				continue
			}
			part := d.part(partName(target))
			if part == nil {
				continue
			}
			if ref[1] == "header" {
				section.headers[kind] = part
			} else {
				section.footers[kind] = part
			}
		}

		d.sections = append(d.sections, section)
		pos = sectPr.end
	}
}

// loadRelationships 解析正文关系表，返回 关系ID→目标路径 的映射
func (d *Document) loadRelationships() (map[string]string, error) {
	targets := make(map[string]string)

	entry := d.entry(documentRelsPart)
	if entry == nil {
		return targets, nil
	}

	var rels relationships
	if err := xml.Unmarshal(entry.data, &rels); err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", documentRelsPart, err)
	}
	for _, rel := range rels.Relationships {
		targets[rel.ID] = rel.Target
	}
	return targets, nil
}

// partName 将关系目标规范化为容器内的部件路径
func partName(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return "word/" + target
}

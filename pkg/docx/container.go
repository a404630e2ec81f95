package docx

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
)

const documentPart = "word/document.xml"

// Document 表示一个完整载入内存的 docx 容器。
// 所有部件按原始顺序持有，保存时未改写的部件字节原样写回。
type Document struct {
	path    string
	entries []*zipEntry
	parts   map[string]*Part
	body    *Part
	// sections 按文档顺序排列的节，每节持有页眉页脚部件引用
	sections []*Section
}

// zipEntry 容器中的一个原始文件
type zipEntry struct {
	header zip.FileHeader
	data   []byte
}

// Section 表示文档的一个节及其页眉页脚部件
type Section struct {
	headers map[string]*Part
	footers map[string]*Part
}

// Header 返回指定类型的页眉部件（default/first/even），不存在时为 nil
func (s *Section) Header(kind string) *Part {
	return s.headers[kind]
}

// Footer 返回指定类型的页脚部件，不存在时为 nil
func (s *Section) Footer(kind string) *Part {
	return s.footers[kind]
}

// Open 打开 docx 文件并解析全部文本部件
func Open(filePath string) (*Document, error) {
	reader, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("打开DOCX文件失败: %w", err)
	}
	defer reader.Close()

	doc := &Document{
		path:  filePath,
		parts: make(map[string]*Part),
	}

	for _, file := range reader.File {
		fileReader, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("打开文件 %s 失败: %w", file.Name, err)
		}
		data, err := io.ReadAll(fileReader)
		fileReader.Close()
		if err != nil {
			return nil, fmt.Errorf("读取文件 %s 失败: %w", file.Name, err)
		}
		doc.entries = append(doc.entries, &zipEntry{header: file.FileHeader, data: data})
	}

	body := doc.entry(documentPart)
	if body == nil {
		return nil, fmt.Errorf("无效的DOCX文件: 缺少 %s", documentPart)
	}
	doc.body = newPart(documentPart, string(body.data))
	doc.parts[documentPart] = doc.body

	if err := doc.resolveSections(); err != nil {
		return nil, err
	}

	return doc, nil
}

// Body 返回正文部件
func (d *Document) Body() *Part {
	return d.body
}

// Sections 按文档顺序返回所有节
func (d *Document) Sections() []*Section {
	return d.sections
}

// Path 返回文档的来源路径
func (d *Document) Path() string {
	return d.path
}

// Save 将文档写入新文件。
// 未改写的部件按原始字节写回，保证输出与输入逐字节等价，
// 被替换的文本区间与新增的高亮标记除外。
func (d *Document) Save(outputPath string) error {
	outputFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("创建输出文件失败: %w", err)
	}
	defer outputFile.Close()

	zipWriter := zip.NewWriter(outputFile)
	defer zipWriter.Close()

	for _, entry := range d.entries {
		data := entry.data
		if part, ok := d.parts[entry.header.Name]; ok && part.Modified() {
			data = []byte(part.Render())
		}

		writer, err := zipWriter.CreateHeader(&entry.header)
		if err != nil {
			return fmt.Errorf("创建ZIP文件头失败: %w", err)
		}
		if _, err := writer.Write(data); err != nil {
			return fmt.Errorf("写入文件内容失败: %w", err)
		}
	}

	return nil
}

// entry 按名称查找容器内的原始文件
func (d *Document) entry(name string) *zipEntry {
	for _, e := range d.entries {
		if e.header.Name == name {
			return e
		}
	}
	return nil
}

// part 按名称解析文本部件，同一部件只解析一次
func (d *Document) part(name string) *Part {
	if part, ok := d.parts[name]; ok {
		return part
	}
	entry := d.entry(name)
	if entry == nil {
		return nil
	}
	part := newPart(name, string(entry.data))
	d.parts[name] = part
	return part
}

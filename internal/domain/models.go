package domain

// Segment 表示段落中一个格式一致的文本片段（docx 中的 run）。
// 引擎只读写片段文本，格式信息由文档模型持有。
type Segment interface {
	// Text 返回片段当前的文本内容
	Text() string
	// SetText 替换片段的文本内容，片段本身不会被删除
	SetText(text string)
	// Mark 将片段标记为已脱敏（添加高亮，不移除已有格式属性）
	Mark()
}

// Paragraph 表示持有有序片段序列的段落
type Paragraph interface {
	// Segments 按顺序返回段落的所有片段
	Segments() []Segment
	// Text 返回所有片段文本按顺序拼接的结果
	Text() string
}

// Span 表示段落逻辑文本中的半开区间 [Start, End)，单位为字节
type Span struct {
	Start int
	End   int
}

// OverlapEntry 表示单个片段与目标区间的重叠部分
type OverlapEntry struct {
	// Segment 被覆盖的片段
	Segment Segment
	// LocalStart 重叠在片段文本内的起始偏移
	LocalStart int
	// LocalEnd 重叠在片段文本内的结束偏移
	LocalEnd int
	// AbsStart 重叠在段落逻辑文本中的起始偏移
	AbsStart int
	// AbsEnd 重叠在段落逻辑文本中的结束偏移
	AbsEnd int
}

// RedactionOp 表示一条已定位到段落的具体脱敏操作
type RedactionOp struct {
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	Category    string `json:"type"`
	Location    string `json:"location"`
}

// PersonNameCategory 人名类别，最小匹配长度与其他类别不同
const PersonNameCategory = "person_name"

// MinLength 返回指定类别的最小匹配长度（按字符数计）。
// 人名最小为 2，其他类别为 4，避免常见短子串被误替换。
func MinLength(category string) int {
	if category == PersonNameCategory {
		return 2
	}
	return 4
}

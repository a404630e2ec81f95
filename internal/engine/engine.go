package engine

import (
	"log"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/allanpk716/docx_redactor/internal/domain"
	"github.com/allanpk716/docx_redactor/internal/rules"
)

// Engine 规则引擎：逐段落产出并应用脱敏操作
type Engine struct {
	ruleSet *rules.RuleSet
	verbose bool
}

// New 创建规则引擎
func New(ruleSet *rules.RuleSet, verbose bool) *Engine {
	return &Engine{ruleSet: ruleSet, verbose: verbose}
}

// RedactParagraph 对单个段落应用规则集，返回实际生效的操作列表。
// 先按当前模式收集全部候选操作，再统一按原文长度降序应用，
// 保证嵌套在长匹配内的短匹配不会先被独立破坏。
func (e *Engine) RedactParagraph(para domain.Paragraph, location string) []domain.RedactionOp {
	var ops []domain.RedactionOp
	if e.ruleSet.Mode == rules.ModeDirect {
		ops = e.collectDirectOps(para, location)
	} else {
		ops = e.collectPatternOps(para, location)
	}
	if len(ops) == 0 {
		return nil
	}

	// 正则模式添加高亮标记，直接替换模式保持原样
	mark := e.ruleSet.Mode == rules.ModePattern
	return e.applyOps(para, ops, mark)
}

// collectDirectOps 收集直接替换操作，按规则文件顺序逐条检查
func (e *Engine) collectDirectOps(para domain.Paragraph, location string) []domain.RedactionOp {
	text := para.Text()

	var ops []domain.RedactionOp
	for _, rule := range e.ruleSet.Directs {
		minLength := domain.MinLength(rule.Type)
		if utf8.RuneCountInString(strings.TrimSpace(rule.Original)) < minLength {
			if e.verbose {
				log.Printf("[DEBUG] 跳过（长度<%d）: '%s'", minLength, rule.Original)
			}
			continue
		}
		if !strings.Contains(text, rule.Original) {
			continue
		}
		ops = append(ops, domain.RedactionOp{
			Original:    rule.Original,
			Replacement: rule.Replacement,
			Category:    rule.Type,
			Location:    location,
		})
	}
	return ops
}

// collectPatternOps 收集正则匹配操作。
// 规则已在加载时按优先级降序排好；每条正则取全部互不重叠的
// 匹配，${index} 为段落内的连续序号，跨规则共享。
func (e *Engine) collectPatternOps(para domain.Paragraph, location string) []domain.RedactionOp {
	text := para.Text()

	var ops []domain.RedactionOp
	for _, pattern := range e.ruleSet.Patterns {
		matches := pattern.Regex.FindAllStringSubmatchIndex(text, -1)
		for _, match := range matches {
			matched := text[match[0]:match[1]]
			// 启用捕获组且第一个捕获组有内容时，以捕获组为准
			if pattern.UseCaptureGroup && len(match) >= 4 && match[2] >= 0 {
				matched = text[match[2]:match[3]]
			}
			ops = append(ops, domain.RedactionOp{
				Original:    matched,
				Replacement: expandTemplate(pattern.Template, len(ops)+1, pattern.Category),
				Category:    pattern.Category,
				Location:    location,
			})
		}
	}
	return ops
}

// applyOps 按原文字符数降序应用操作，返回实际生效的子集。
// 原文已被更早的长替换消耗的操作静默跳过。
func (e *Engine) applyOps(para domain.Paragraph, ops []domain.RedactionOp, mark bool) []domain.RedactionOp {
	sort.SliceStable(ops, func(i, j int) bool {
		return utf8.RuneCountInString(ops[i].Original) > utf8.RuneCountInString(ops[j].Original)
	})

	var applied []domain.RedactionOp
	for _, op := range ops {
		entries := Resolve(para.Segments(), op.Original, domain.MinLength(op.Category))
		if entries == nil {
			if e.verbose {
				log.Printf("[DEBUG] 跳过（已被更长替换消耗）: '%s'", op.Original)
			}
			continue
		}
		Rewrite(entries, op.Replacement, mark)
		applied = append(applied, op)
	}
	return applied
}

// expandTemplate 展开替换模板中的 ${index} 与 ${category}
func expandTemplate(template string, index int, category string) string {
	replacement := strings.ReplaceAll(template, "${index}", strconv.Itoa(index))
	return strings.ReplaceAll(replacement, "${category}", category)
}

package processor

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// BatchResult 批量处理的汇总结果
type BatchResult struct {
	ProcessedFiles  int
	TotalRedactions int
	Errors          []error
}

// ProcessDirectory 批量脱敏目录中的全部 docx 文件。
// 只处理 .docx 扩展名，跳过 Office 临时文件（~$ 前缀）；
// 单个文件失败不中断整批，错误汇总在结果中返回。
func (r *Redactor) ProcessDirectory(inputDir, outputDir string) (*BatchResult, error) {
	info, err := os.Stat(inputDir)
	if err != nil {
		return nil, fmt.Errorf("输入目录不可用: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("输入路径不是目录: %s", inputDir)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("读取输入目录失败: %w", err)
	}

	result := &BatchResult{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), ".docx") {
			continue
		}
		if strings.HasPrefix(name, "~$") {
			continue
		}

		inputPath := filepath.Join(inputDir, name)
		outputPath := filepath.Join(outputDir, name)

		log.Printf("正在处理: %s", inputPath)
		auditLog, err := r.ProcessDocument(inputPath, outputPath)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", name, err))
			log.Printf("处理失败: %s - %v", name, err)
			continue
		}

		result.ProcessedFiles++
		result.TotalRedactions += auditLog.Count()
	}

	return result, nil
}

package cmd

import (
	"flag"
	"fmt"
	"strings"
)

// AppVersion 工具版本号
const AppVersion = "1.0.0"

// RedactArgs 脱敏工具的命令行参数
type RedactArgs struct {
	RulesFile   string
	InputFile   string
	OutputFile  string
	InputDir    string
	OutputDir   string
	LogFile     string
	ReportFile  string
	ShowVersion bool
	ShowHelp    bool
	Verbose     bool
}

// ParseRedactArgs 解析脱敏工具的命令行参数
func ParseRedactArgs() *RedactArgs {
	args := &RedactArgs{}

	flag.StringVar(&args.RulesFile, "rules", "", "脱敏规则文件路径（JSON 或 YAML）")
	flag.StringVar(&args.InputFile, "input", "", "输入 DOCX 文件路径")
	flag.StringVar(&args.OutputFile, "output", "", "输出 DOCX 文件路径（默认：输入文件名_脱敏.docx）")
	flag.StringVar(&args.InputDir, "input-dir", "", "输入目录路径（批量处理）")
	flag.StringVar(&args.OutputDir, "output-dir", "", "输出目录路径（批量处理）")
	flag.StringVar(&args.LogFile, "log", "", "处理日志 JSON 输出路径")
	flag.StringVar(&args.ReportFile, "report", "", "比对文档 Markdown 输出路径")
	flag.BoolVar(&args.ShowVersion, "version", false, "显示版本信息")
	flag.BoolVar(&args.ShowHelp, "help", false, "显示帮助信息")
	flag.BoolVar(&args.Verbose, "verbose", false, "启用调试输出")

	flag.Parse()

	return args
}

// ValidateRedactArgs 验证脱敏参数并补全默认输出路径
func ValidateRedactArgs(args *RedactArgs) error {
	if args.RulesFile == "" {
		return fmt.Errorf("规则文件路径不能为空")
	}

	hasSingleFile := args.InputFile != "" || args.OutputFile != ""
	hasBatchMode := args.InputDir != "" || args.OutputDir != ""

	if !hasSingleFile && !hasBatchMode {
		return fmt.Errorf("必须指定输入文件或输入目录")
	}
	if hasSingleFile && hasBatchMode {
		return fmt.Errorf("不能同时指定单文件和批量处理模式")
	}

	if hasSingleFile {
		if args.InputFile == "" {
			return fmt.Errorf("单文件模式下必须指定输入文件")
		}
		if args.OutputFile == "" {
			args.OutputFile = GenerateOutputFileName(args.InputFile, "脱敏")
		}
	}

	if hasBatchMode {
		if args.InputDir == "" {
			return fmt.Errorf("批量模式下必须指定输入目录")
		}
		if args.OutputDir == "" {
			args.OutputDir = args.InputDir + "_脱敏"
		}
	}

	return nil
}

// RestoreArgs 还原工具的命令行参数
type RestoreArgs struct {
	MappingFile string
	InputFile   string
	OutputFile  string
	ShowVersion bool
	ShowHelp    bool
	Verbose     bool
}

// ParseRestoreArgs 解析还原工具的命令行参数
func ParseRestoreArgs() *RestoreArgs {
	args := &RestoreArgs{}

	flag.StringVar(&args.MappingFile, "mapping", "", "比对文档路径（Markdown）")
	flag.StringVar(&args.InputFile, "input", "", "脱敏后的 DOCX 文件路径")
	flag.StringVar(&args.OutputFile, "output", "", "输出 DOCX 文件路径（默认：输入文件名_还原.docx）")
	flag.BoolVar(&args.ShowVersion, "version", false, "显示版本信息")
	flag.BoolVar(&args.ShowHelp, "help", false, "显示帮助信息")
	flag.BoolVar(&args.Verbose, "verbose", false, "启用调试输出")

	flag.Parse()

	return args
}

// ValidateRestoreArgs 验证还原参数并补全默认输出路径
func ValidateRestoreArgs(args *RestoreArgs) error {
	if args.MappingFile == "" {
		return fmt.Errorf("比对文档路径不能为空")
	}
	if args.InputFile == "" {
		return fmt.Errorf("必须指定输入文件")
	}
	if args.OutputFile == "" {
		args.OutputFile = GenerateOutputFileName(args.InputFile, "还原")
	}
	return nil
}

// GenerateOutputFileName 生成带后缀的输出文件名，
// 如 input.docx -> input_脱敏.docx
func GenerateOutputFileName(inputFile, suffix string) string {
	if strings.HasSuffix(inputFile, ".docx") {
		return strings.TrimSuffix(inputFile, ".docx") + "_" + suffix + ".docx"
	}
	return inputFile + "_" + suffix + ".docx"
}

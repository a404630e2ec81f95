package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"

	"github.com/allanpk716/docx_redactor/internal/cmd"
	"github.com/allanpk716/docx_redactor/internal/processor"
	"github.com/allanpk716/docx_redactor/internal/rules"
)

const appName = "docx-redactor"

func main() {
	args := cmd.ParseRedactArgs()

	if args.ShowVersion {
		fmt.Printf("%s v%s\n", appName, cmd.AppVersion)
		return
	}
	if args.ShowHelp {
		showUsage()
		return
	}

	if args.Verbose {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	if err := cmd.ValidateRedactArgs(args); err != nil {
		log.Fatalf("参数验证失败: %v", err)
	}

	ruleSet, err := rules.Load(args.RulesFile)
	if err != nil {
		log.Fatalf("加载规则文件失败: %v", err)
	}
	for _, warning := range ruleSet.Warnings {
		color.Yellow("警告: %s", warning)
	}

	log.Printf("成功加载规则文件: %s (模式: %s)", args.RulesFile, ruleSet.Mode)

	redactor := processor.NewRedactor(ruleSet, args.Verbose)

	if args.InputDir != "" {
		runBatch(redactor, args)
		return
	}
	runSingle(redactor, args)
}

// runSingle 处理单个文件并按需输出处理日志与比对文档
func runSingle(redactor *processor.Redactor, args *cmd.RedactArgs) {
	log.Printf("正在处理: %s", args.InputFile)

	auditLog, err := redactor.ProcessDocument(args.InputFile, args.OutputFile)
	if err != nil {
		log.Fatalf("处理失败: %v", err)
	}

	color.Green("成功: 脱敏文件已保存到 %s", args.OutputFile)
	fmt.Printf("共处理 %d 处脱敏\n", auditLog.Count())

	if args.LogFile != "" {
		if err := auditLog.SaveJSON(args.LogFile); err != nil {
			log.Fatalf("保存处理日志失败: %v", err)
		}
		log.Printf("处理日志已保存到: %s", args.LogFile)
	}
	if args.ReportFile != "" {
		if err := auditLog.SaveMarkdown(args.ReportFile); err != nil {
			log.Fatalf("保存比对文档失败: %v", err)
		}
		log.Printf("比对文档已保存到: %s", args.ReportFile)
	}
}

// runBatch 批量处理目录
func runBatch(redactor *processor.Redactor, args *cmd.RedactArgs) {
	if args.LogFile != "" || args.ReportFile != "" {
		color.Yellow("警告: 批量模式下忽略 -log 与 -report 参数")
	}

	result, err := redactor.ProcessDirectory(args.InputDir, args.OutputDir)
	if err != nil {
		log.Fatalf("批量处理失败: %v", err)
	}

	color.Green("批量处理完成: %d 个文件, %d 处脱敏", result.ProcessedFiles, result.TotalRedactions)
	if len(result.Errors) > 0 {
		color.Red("失败 %d 个文件:", len(result.Errors))
		for _, procErr := range result.Errors {
			color.Red("  %v", procErr)
		}
		os.Exit(1)
	}
}

func showUsage() {
	fmt.Printf("%s v%s - 法律文件脱敏工具\n\n", appName, cmd.AppVersion)
	fmt.Println("用法:")
	fmt.Printf("  %s -rules rules.json -input input.docx [-output output.docx]\n", appName)
	fmt.Printf("  %s -rules rules.json -input-dir 输入目录 [-output-dir 输出目录]\n\n", appName)
	fmt.Println("参数:")
	flag.PrintDefaults()
}

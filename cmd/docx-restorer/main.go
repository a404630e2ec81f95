package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/fatih/color"

	"github.com/allanpk716/docx_redactor/internal/cmd"
	"github.com/allanpk716/docx_redactor/internal/mapping"
	"github.com/allanpk716/docx_redactor/internal/processor"
)

const appName = "docx-restorer"

func main() {
	args := cmd.ParseRestoreArgs()

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

	if err := cmd.ValidateRestoreArgs(args); err != nil {
		log.Fatalf("参数验证失败: %v", err)
	}

	reverseMapping, err := mapping.Load(args.MappingFile)
	if err != nil {
		log.Fatalf("加载比对文档失败: %v", err)
	}
	log.Printf("从比对文档中读取了 %d 条替换映射", len(reverseMapping))

	restorer, err := processor.NewRestorer(reverseMapping, args.Verbose)
	if err != nil {
		log.Fatalf("创建还原器失败: %v", err)
	}

	log.Printf("正在处理: %s", args.InputFile)
	count, err := restorer.ProcessDocument(args.InputFile, args.OutputFile)
	if err != nil {
		log.Fatalf("处理失败: %v", err)
	}

	color.Green("成功: 还原文件已保存到 %s", args.OutputFile)
	fmt.Printf("共还原 %d 处内容\n", count)
}

func showUsage() {
	fmt.Printf("%s v%s - 法律文件还原工具\n\n", appName, cmd.AppVersion)
	fmt.Println("用法:")
	fmt.Printf("  %s -mapping 比对.md -input 脱敏.docx [-output 还原.docx]\n\n", appName)
	fmt.Println("参数:")
	flag.PrintDefaults()
}

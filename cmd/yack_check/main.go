// yack_check 检查对话脚本
//
// 用法：
//
//	go run ./cmd/yack_check [-v] data/dialogs/*.yack
//
// 解析每个文件，打印标签（-v 时打印全部语句），并检查跳转目标是否存在。
// 遇到第一个内容错误时以状态 1 退出。
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gonewx/yack/internal/yack"
)

func main() {
	verbose := flag.Bool("v", false, "打印每条语句")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		matches, _ := filepath.Glob("data/dialogs/*.yack")
		files = matches
	}
	if len(files) == 0 {
		fmt.Println("❌ 没有找到 .yack 文件")
		os.Exit(1)
	}

	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Printf("❌ 读取文件失败: %v\n", err)
			os.Exit(1)
		}
		if err := check(os.Stdout, filepath.Base(file), data, *verbose); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
	}
}

// check 解析一个对话文件并输出摘要
// 返回解析错误；缺失的跳转目标只输出警告
func check(w io.Writer, name string, data []byte, verbose bool) error {
	cu, err := yack.Parse(name, data)
	if err != nil {
		return err
	}

	statements := 0
	for _, label := range cu.Labels {
		statements += len(label.Statements)
	}
	fmt.Fprintf(w, "✅ %s: %d 个标签, %d 条语句\n", name, len(cu.Labels), statements)

	for _, label := range cu.Labels {
		fmt.Fprintf(w, "  :%s (第 %d 行)\n", label.Name, label.Line)
		for _, stmt := range label.Statements {
			if verbose {
				fmt.Fprintf(w, "    %4d  %s%s\n", stmt.Line, describe(stmt.Expr), describeConditions(stmt.Conditions))
			}
			if g := gotoOf(stmt.Expr); g != nil && cu.FindLabel(g.Line, g.Name) < 0 {
				fmt.Fprintf(w, "  ⚠️  第 %d 行: 跳转目标 %q 不存在\n", stmt.Line, g.Name)
			}
		}
	}
	return nil
}

func gotoOf(expr yack.Expression) *yack.Goto {
	switch e := expr.(type) {
	case *yack.Goto:
		return e
	case *yack.Choice:
		return &e.Goto
	}
	return nil
}

// describe 把表达式格式化为一行文字
func describe(expr yack.Expression) string {
	switch e := expr.(type) {
	case *yack.Say:
		return fmt.Sprintf("say %s %q", e.Actor, e.Text)
	case *yack.Goto:
		return "goto " + e.Name
	case *yack.Choice:
		return fmt.Sprintf("choice %d %q -> %s", e.Number, e.Text, e.Goto.Name)
	case *yack.Pause:
		return fmt.Sprintf("pause %.2f", e.Seconds)
	case *yack.Parrot:
		return fmt.Sprintf("parrot %v", e.Active)
	case *yack.Dialog:
		return "dialog " + e.Actor
	case *yack.Override:
		return "override " + e.Node
	case *yack.AllowObjects:
		return fmt.Sprintf("allowobjects %v", e.Active)
	case *yack.Limit:
		return fmt.Sprintf("limit %d", e.Max)
	case *yack.WaitWhile:
		return "waitwhile " + e.Cond
	case *yack.WaitFor:
		return "waitfor " + e.Actor
	case *yack.Shutup:
		return "shutup"
	case *yack.CodeExp:
		return "code " + e.Code
	}
	return fmt.Sprintf("%T", expr)
}

func describeConditions(conds []yack.Condition) string {
	if len(conds) == 0 {
		return ""
	}
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		switch c := c.(type) {
		case *yack.Once:
			parts = append(parts, "once")
		case *yack.ShowOnce:
			parts = append(parts, "showonce")
		case *yack.OnceEver:
			parts = append(parts, "onceever")
		case *yack.TempOnce:
			parts = append(parts, "temponce")
		case *yack.CodeCond:
			parts = append(parts, c.Code)
		}
	}
	return " [" + strings.Join(parts, "] [") + "]"
}

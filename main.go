package main

import (
	"flag"
	"log"

	"github.com/gonewx/yack/pkg/app"
	"github.com/gonewx/yack/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	dialogName := flag.String("dialog", "guard", "按 T 时开始的对话（data/dialogs/<name>.yack）")
	slot := flag.String("slot", "slot1", "对话存档槽")
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:  *verbose,
		Dialog:   *dialogName,
		SaveSlot: *slot,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("yack - dialogue & animation demo")

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}

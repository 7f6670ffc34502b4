// Package app 提供演示应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
//
// 演示场景：一名玩家角色（ray）和一名守卫（guard）站在石地与木桥上。
//   - 鼠标点击地面：玩家走过去
//   - Tab：切换玩家控制的角色（角色名条件按选中的角色求值）
//   - T：与守卫对话（对话中用鼠标选择选项）
//   - A：攻击，C：施法召唤幽灵
//   - F5 / F9：保存 / 读取对话进度，F11：切换全屏
package app

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"log"

	"github.com/gonewx/yack/pkg/anim"
	"github.com/gonewx/yack/pkg/components"
	"github.com/gonewx/yack/pkg/config"
	"github.com/gonewx/yack/pkg/dialog"
	"github.com/gonewx/yack/pkg/ecs"
	"github.com/gonewx/yack/pkg/embedded"
	"github.com/gonewx/yack/pkg/game"
	"github.com/gonewx/yack/pkg/process"
	"github.com/gonewx/yack/pkg/scripting"
	"github.com/gonewx/yack/pkg/systems"
	"github.com/gonewx/yack/pkg/types"
	"github.com/gonewx/yack/pkg/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quasilyte/gdata/v2"
	lua "github.com/yuin/gopher-lua"
	"golang.org/x/image/font/gofont/goregular"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 800
	ScreenHeight = 600
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Dialog 按 T 时开始的对话名称
	Dialog string
	// SaveSlot 对话存档槽
	SaveSlot string
}

// App 演示应用，实现 ebiten.Game 接口
type App struct {
	em       *ecs.EntityManager
	world    *world.BoxWorld
	kernel   *process.Kernel
	animator *anim.Animator
	motors   *systems.MotorSystem

	dialog *dialog.Dialog
	target *game.ActorDialogTarget
	script *scripting.Executor
	saves  *game.DialogSaveManager
	face   text.Face

	player ecs.EntityID // 当前控制的角色
	ray    ecs.EntityID
	guard  ecs.EntityID
	walk   *anim.WalkTo

	dialogName string
	saveSlot   string
	verbose    bool
}

// NewApp 创建并初始化演示应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	if cfg.Dialog == "" {
		cfg.Dialog = "guard"
	}
	if cfg.SaveSlot == "" {
		cfg.SaveSlot = "slot1"
	}

	data, err := embedded.Sub("data")
	if err != nil {
		return nil, fmt.Errorf("数据目录加载失败: %w", err)
	}

	dialogCfg, err := loadDialogConfig()
	if err != nil {
		return nil, err
	}
	actions, err := loadAnimActions()
	if err != nil {
		return nil, err
	}
	texts, err := game.NewTextStrings(data, "text/en.txt")
	if err != nil {
		return nil, fmt.Errorf("文本加载失败: %w", err)
	}

	// 存档：gdata 不可用时降级为仅内存
	gdataManager, err := gdata.Open(gdata.Config{AppName: "yack"})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, saves disabled: %v", err)
		gdataManager = nil
	}
	settings := game.NewSettingsManager(gdataManager)

	audioManager := game.NewAudioManager(audio.NewContext(48000), data, settings)
	audioManager.PreloadSounds([]string{"footstep", "footstep_stone", "footstep_wood", "swing", "summon"})

	a := &App{
		em:         ecs.NewEntityManager(),
		kernel:     process.NewKernel(),
		saves:      game.NewDialogSaveManager(gdataManager),
		dialogName: cfg.Dialog,
		saveSlot:   cfg.SaveSlot,
		verbose:    cfg.Verbose,
	}
	a.world = world.NewBoxWorld(a.em)
	a.motors = systems.NewMotorSystem(a.em)

	a.animator = anim.NewAnimator(a.em, a.world, actions, a.kernel, anim.Hooks{})
	effects := systems.NewSpecialEffectSystem(a.em, a.world, audioManager, a.motors)
	effects.SetFootstepsEnabled(settings.GetSettings().FootstepsEnabled)
	a.animator.SetHooks(anim.Hooks{
		Special: effects,
		Hit:     systems.NewCombatSystem(a.em, a.animator),
		Sound:   audioManager,
	})

	a.script, err = newScript(data, audioManager)
	if err != nil {
		return nil, err
	}

	resources := game.NewResourceLoader(data)
	a.target = game.NewActorDialogTarget(a.em, dialogCfg, texts, resources, a.script)
	a.dialog = dialog.NewDialog(dialogCfg, a.target, resources)
	a.dialog.SetScriptHost(a.script)
	a.dialog.SetTextResolver(texts)
	a.dialog.SetPointer(dialog.EbitenPointer{})

	source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("字体加载失败: %w", err)
	}
	a.face = &text.GoTextFace{Source: source, Size: 14}
	a.dialog.SetMeasurer(dialog.FaceMeasurer{Face: a.face})

	if err := a.buildScene(); err != nil {
		return nil, err
	}
	a.selectActor(a.player)
	log.Printf("[App] Initialized: %d dialogs available", len(dialogNames(resources)))
	return a, nil
}

func loadDialogConfig() (*config.DialogConfig, error) {
	raw, err := embedded.ReadFile("data/dialog_config.yaml")
	if err != nil {
		log.Printf("[Config] Warning: dialog_config.yaml not found, using defaults")
		return config.DefaultDialogConfig(), nil
	}
	cfg, err := config.ParseDialogConfig(raw)
	if err != nil {
		return nil, fmt.Errorf("对话配置加载失败: %w", err)
	}
	return cfg, nil
}

func loadAnimActions() (*config.AnimActionConfig, error) {
	raw, err := embedded.ReadFile("data/anim_actions.yaml")
	if err != nil {
		return nil, fmt.Errorf("动画动作配置读取失败: %w", err)
	}
	actions, err := config.ParseAnimActionConfig(raw)
	if err != nil {
		return nil, fmt.Errorf("动画动作配置加载失败: %w", err)
	}
	log.Printf("[Config] 成功加载 %d 个外形的动画动作", len(actions.Shapes))
	return actions, nil
}

// newScript 创建脚本执行器，加载演示脚本并注册宿主函数
func newScript(data fs.FS, am *game.AudioManager) (*scripting.Executor, error) {
	exec := scripting.NewExecutor()
	exec.RegisterFunc("play_sound", func(L *lua.LState) int {
		L.Push(lua.LBool(am.PlaySound(L.CheckString(1))))
		return 1
	})

	src, err := fs.ReadFile(data, "scripts/demo.lua")
	if err != nil {
		exec.Close()
		return nil, fmt.Errorf("脚本读取失败: %w", err)
	}
	if err := exec.Load("demo.lua", string(src)); err != nil {
		exec.Close()
		return nil, err
	}
	return exec, nil
}

func dialogNames(rl *game.ResourceLoader) []string {
	names, err := rl.DialogNames()
	if err != nil {
		log.Printf("[App] Warning: %v", err)
	}
	return names
}

// buildScene 创建地面和角色
// 左侧为石地，右侧为木桥，两者顶面都在 z=0
func (a *App) buildScene() error {
	a.addFloor(0, 480, "stone")
	a.addFloor(480, ScreenWidth-480, "wood")

	var err error
	a.ray, err = a.addActor("ray", 120, 300, types.DirEast,
		color.RGBA{R: 0x80, G: 0xc0, B: 0xff, A: 0xff}, color.RGBA{R: 0xff, G: 0xff, B: 0x80, A: 0xff})
	if err != nil {
		return err
	}
	a.guard, err = a.addActor("guard", 420, 300, types.DirWest,
		color.RGBA{R: 0xff, G: 0xa0, B: 0x80, A: 0xff}, color.RGBA{})
	if err != nil {
		return err
	}
	a.player = a.ray

	a.world.UpdateFastArea(types.Box{
		Pos:  types.Point3{X: 0, Y: 0, Z: -64},
		Dims: types.Point3{X: ScreenWidth, Y: ScreenHeight, Z: 256},
	})
	return nil
}

func (a *App) addFloor(x, width float64, material string) {
	id := a.em.CreateEntity()
	ecs.AddComponent(a.em, id, &components.PositionComponent{X: x, Y: 0, Z: -8})
	ecs.AddComponent(a.em, id, &components.CollisionComponent{
		Dims:     types.Point3{X: width, Y: ScreenHeight, Z: 8},
		Solid:    true,
		Floor:    true,
		Material: material,
	})
}

func (a *App) addActor(key string, x, y float64, dir types.Direction, talk, hover color.RGBA) (ecs.EntityID, error) {
	id, err := a.em.CreateEntityOfKind(ecs.KindActor)
	if err != nil {
		return 0, fmt.Errorf("failed to create actor %s: %w", key, err)
	}
	ecs.AddComponent(a.em, id, &components.ActorComponent{
		Key:        key,
		Shape:      "avatar",
		Dir:        dir,
		LastAnim:   types.AnimStand,
		TalkColor:  talk,
		HoverColor: hover,
	})
	ecs.AddComponent(a.em, id, &components.PositionComponent{X: x, Y: y, Z: 0})
	ecs.AddComponent(a.em, id, &components.CollisionComponent{Dims: types.Point3{X: 32, Y: 32, Z: 40}, Solid: true})
	ecs.AddComponent(a.em, id, &components.HealthComponent{CurrentHealth: 30, MaxHealth: 30})
	ecs.AddComponent(a.em, id, components.NewVisualComponent())
	return id, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	const deltaTime = 1.0 / 60.0

	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	a.handleInput()

	a.kernel.RunProcesses()
	a.motors.Update(deltaTime)
	a.dialog.Update(deltaTime)
	a.em.RemoveMarkedEntities()
	return nil
}

func (a *App) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		if err := a.saves.Save(a.saveSlot, a.dialog); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		if _, err := a.saves.Load(a.saveSlot, a.dialog); err != nil {
			log.Printf("[App] Warning: %v", err)
		}
	}

	// 对话进行中只响应选项点击（由对话引擎处理）和 Esc
	if a.dialog.IsActive() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			a.target.Shutup()
			a.dialog.Stop()
		}
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		a.stopWalking()
		if a.player == a.guard {
			a.selectActor(a.ray)
		} else {
			a.selectActor(a.guard)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		if err := a.dialog.Start(a.target.SelectedActor(), a.dialogName, "start"); err != nil {
			log.Printf("[App] Warning: Failed to start dialog %s: %v", a.dialogName, err)
		}
		return
	}
	if !ecs.HasComponent[*components.ActorComponent](a.em, a.player) {
		return
	}
	actor, _ := ecs.GetComponent[*components.ActorComponent](a.em, a.player)

	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		a.stopWalking()
		a.animator.DoAnim(a.player, types.AnimAttack, actor.Dir, 0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		a.stopWalking()
		a.animator.DoAnim(a.player, types.AnimCast, actor.Dir, 0)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.stopWalking()
		a.walk = a.animator.NewWalkTo(a.player, types.Point3{X: float64(x), Y: float64(y)})
		a.motors.Add(a.player, a.walk)
	}
}

// selectActor 切换玩家控制的角色
func (a *App) selectActor(id ecs.EntityID) {
	actor, ok := ecs.GetComponent[*components.ActorComponent](a.em, id)
	if !ok {
		return
	}
	a.player = id
	a.target.SelectActor(actor.Key)
	log.Printf("[App] Selected actor %s", actor.Key)
}

func (a *App) stopWalking() {
	if a.walk != nil {
		a.walk.Disable()
		a.walk = nil
	}
}

// Draw 绘制画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0x20, G: 0x24, B: 0x30, A: 0xff})

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.CollisionComponent](a.em) {
		col, _ := ecs.GetComponent[*components.CollisionComponent](a.em, id)
		if !col.Floor {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](a.em, id)
		clr := color.RGBA{R: 0x50, G: 0x50, B: 0x58, A: 0xff}
		if col.Material == "wood" {
			clr = color.RGBA{R: 0x6a, G: 0x4a, B: 0x2a, A: 0xff}
		}
		vector.DrawFilledRect(screen, float32(pos.X), float32(pos.Y), float32(col.Dims.X), float32(col.Dims.Y), clr, false)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.VisualComponent](a.em) {
		a.drawEntity(screen, id)
	}

	a.dialog.Draw(screen, a.face)

	if !a.dialog.IsActive() {
		op := &text.DrawOptions{}
		op.GeoM.Translate(8, 8)
		text.Draw(screen, "click: walk   Tab: switch   T: talk   A: attack   C: cast   F5/F9: save/load", a.face, op)
	}
}

// drawEntity 绘制角色或幽灵：z 越高画得越靠上
func (a *App) drawEntity(screen *ebiten.Image, id ecs.EntityID) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](a.em, id)
	visual, _ := ecs.GetComponent[*components.VisualComponent](a.em, id)

	w, h := float32(32), float32(40)
	clr := color.RGBA{R: 0xc0, G: 0xc0, B: 0xff, A: 0xff}
	actor, isActor := ecs.GetComponent[*components.ActorComponent](a.em, id)
	if isActor {
		clr = a.target.ActorColor(actor.Key)
	}
	alpha := uint8(visual.Alpha * 0xff)
	clr.R = uint8(uint16(clr.R) * uint16(alpha) / 0xff)
	clr.G = uint8(uint16(clr.G) * uint16(alpha) / 0xff)
	clr.B = uint8(uint16(clr.B) * uint16(alpha) / 0xff)
	clr.A = alpha

	x := float32(pos.X + visual.OffsetX)
	y := float32(pos.Y+visual.OffsetY-pos.Z) - h
	vector.DrawFilledRect(screen, x, y, w, h, clr, false)

	if !isActor {
		return
	}
	if health, ok := ecs.GetComponent[*components.HealthComponent](a.em, id); ok && health.Dead {
		return
	}
	talking, ok := ecs.GetComponent[*components.TalkingComponent](a.em, id)
	if !ok || !talking.Active {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y)-20)
	op.ColorScale.ScaleWithColor(a.target.ActorColor(actor.Key))
	text.Draw(screen, talking.Text, a.face, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Close 释放脚本虚拟机
func (a *App) Close() {
	if a.script != nil {
		a.script.Close()
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

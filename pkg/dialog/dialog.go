// Package dialog 实现对话引擎
//
// Dialog 逐条执行编译后的对话脚本：评估守卫条件、把 Choice 放入选项槽位、
// 把有副作用的表达式交给 Target 执行，并用马达表示阻塞动作（说话、暂停、等待）。
//
// 状态机：Idle → Active ⇄ WaitingForChoice → Idle
package dialog

import (
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/gonewx/yack/internal/yack"
	"github.com/gonewx/yack/pkg/config"
	"github.com/gonewx/yack/pkg/motor"
)

// State 对话引擎状态
type State int

const (
	// StateIdle 没有正在执行的标签
	StateIdle State = iota
	// StateActive 正在执行语句或等待阻塞动作
	StateActive
	// StateWaitingForChoice 选项已显示，等待玩家选择
	StateWaitingForChoice
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	case StateWaitingForChoice:
		return "waitingForChoice"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Context 对话运行时上下文，每次 Start 重新创建
type Context struct {
	Actor      string `yaml:"actor"`
	DialogName string `yaml:"dialog"`
	Parrot     bool   `yaml:"parrot"`
	Limit      int    `yaml:"limit"`
}

// Slot 一个选项槽位
type Slot struct {
	Valid bool
	Text  string // 渲染文字（已解析文本 ID、去掉注释、加上前缀）
	Stmt  *yack.Statement
	X, Y  float64
	Width float64
	Hover bool
}

// 选项文字中不显示的部分：(...) 和 {...}
var hiddenText = regexp.MustCompile(`\([^)]*\)|\{[^}]*\}`)

// Dialog 对话引擎
type Dialog struct {
	cfg      *config.DialogConfig
	target   Target
	loader   Loader
	script   ScriptHost
	texts    TextResolver
	pointer  PointerInput
	measurer TextMeasurer

	ledger *Ledger
	ctx    Context
	state  State

	unit    *yack.CompilationUnit
	label   int // 当前标签下标，-1 表示没有
	current int // 下一条要执行的语句

	action motor.Motor
	slots  []Slot
	shown  []Record // 本帧显示中的选项对应的 ShowOnce/TempOnce 记录
}

// NewDialog 创建对话引擎
//
// 参数:
//   - cfg: 对话配置，nil 时使用默认配置
//   - target: 执行说话、暂停、条件求值的外部对象
//   - loader: 按名称读取对话文件
func NewDialog(cfg *config.DialogConfig, target Target, loader Loader) *Dialog {
	if cfg == nil {
		cfg = config.DefaultDialogConfig()
	}
	return &Dialog{
		cfg:    cfg,
		target: target,
		loader: loader,
		ledger: NewLedger(),
		label:  -1,
		slots:  make([]Slot, cfg.MaxChoices),
	}
}

// SetScriptHost 设置脚本执行器（CodeExp 和 onChoiceClick）
func (d *Dialog) SetScriptHost(s ScriptHost) { d.script = s }

// SetTextResolver 设置文本 ID 解析器
func (d *Dialog) SetTextResolver(r TextResolver) { d.texts = r }

// SetPointer 设置指针输入
func (d *Dialog) SetPointer(p PointerInput) { d.pointer = p }

// SetMeasurer 设置文字测量器
func (d *Dialog) SetMeasurer(m TextMeasurer) { d.measurer = m }

// Ledger 条件账本
func (d *Dialog) Ledger() *Ledger { return d.ledger }

// Context 当前上下文
func (d *Dialog) Context() Context { return d.ctx }

// SetContext 恢复上下文（读档）
func (d *Dialog) SetContext(ctx Context) { d.ctx = ctx }

// State 当前状态
func (d *Dialog) State() State { return d.state }

// IsActive 是否有对话正在进行
func (d *Dialog) IsActive() bool { return d.state != StateIdle }

// Slots 选项槽位（只读）
func (d *Dialog) Slots() []Slot { return d.slots }

// Action 当前阻塞动作，没有时返回 nil
func (d *Dialog) Action() motor.Motor { return d.action }

// CurrentLabel 当前标签，没有时返回 nil
func (d *Dialog) CurrentLabel() *yack.Label {
	if d.unit == nil || d.label < 0 {
		return nil
	}
	return d.unit.Labels[d.label]
}

// Start 开始一段对话
//
// 参数:
//   - actor: 选项归属的角色键名
//   - name: 对话名称（由 Loader 解析为文件）
//   - node: 入口标签
//
// 返回:
//   - error: 读取或解析失败；此时引擎保持 Idle
func (d *Dialog) Start(actor, name, node string) error {
	d.Stop()

	data, err := d.loader.ReadDialog(name)
	if err != nil {
		return fmt.Errorf("failed to load dialog %s: %w", name, err)
	}
	unit, err := yack.Parse(name+".yack", data)
	if err != nil {
		return fmt.Errorf("failed to parse dialog %s: %w", name, err)
	}
	d.StartUnit(actor, name, node, unit)
	return nil
}

// StartUnit 用已解析的编译单元开始对话
func (d *Dialog) StartUnit(actor, name, node string, unit *yack.CompilationUnit) {
	d.Stop()
	if d.cfg.PruneTempOnceOnStart {
		d.ledger.PruneTempOnce()
	}
	d.unit = unit
	d.ctx = Context{
		Actor:      actor,
		DialogName: name,
		Parrot:     true,
		Limit:      d.cfg.StartLimit(),
	}
	log.Printf("[Dialog] Start %s at %s (actor %s)", name, node, actor)
	d.SelectLabel(0, node)
	d.Update(0)
}

// Stop 结束对话并清空所有状态（账本保留）
func (d *Dialog) Stop() {
	if d.action != nil {
		d.action.Disable()
		d.action = nil
	}
	d.clearSlots()
	d.label = -1
	d.current = 0
	d.state = StateIdle
}

// SelectLabel 跳转到 minLine 之后的第一个同名标签
// 找不到标签时对话静默进入 Idle。
func (d *Dialog) SelectLabel(minLine int, name string) {
	d.clearSlots()
	d.current = 0
	d.label = d.unit.FindLabel(minLine, name)
	if d.label < 0 {
		log.Printf("[Dialog] Warning: label %q not found in %s", name, d.ctx.DialogName)
		d.state = StateIdle
		return
	}
	d.state = StateActive
}

// gotoNextLabel 按文件顺序进入下一个标签
func (d *Dialog) gotoNextLabel() {
	d.clearSlots()
	d.current = 0
	if d.label >= 0 && d.label+1 < len(d.unit.Labels) {
		d.label++
		d.state = StateActive
		return
	}
	d.label = -1
	d.state = StateIdle
}

// Update 推进一帧
func (d *Dialog) Update(dt float64) {
	switch d.state {
	case StateActive:
		d.running(dt)
	case StateWaitingForChoice:
		d.waiting(dt)
	}
}

func (d *Dialog) running(dt float64) {
	if d.action != nil {
		if d.action.IsEnabled() {
			d.action.Update(dt)
			return
		}
		d.action = nil
	}

	lbl := d.CurrentLabel()
	if lbl == nil {
		d.state = StateIdle
		return
	}
	if d.current >= len(lbl.Statements) {
		d.gotoNextLabel()
		return
	}

	for d.state == StateActive {
		lbl = d.CurrentLabel()
		if lbl == nil || d.current >= len(lbl.Statements) {
			break
		}
		stmt := lbl.Statements[d.current]
		if !d.acceptConditions(stmt) {
			d.current++
			continue
		}
		if _, ok := stmt.Expr.(*yack.Choice); ok {
			d.addSlot(stmt)
			d.current++
			continue
		}
		if d.choicesReady() {
			break
		}
		d.current++
		if d.execute(stmt.Expr) {
			return
		}
	}

	if d.state == StateActive && d.choicesReady() {
		d.state = StateWaitingForChoice
	}
}

// execute 执行一个表达式
// 返回: 是否停止本帧的语句迭代（跳转或安装了阻塞动作）
func (d *Dialog) execute(expr yack.Expression) bool {
	switch e := expr.(type) {
	case *yack.CodeExp:
		d.exec(e.Code)
	case *yack.Goto:
		d.SelectLabel(e.Line, e.Name)
		return true
	case *yack.Shutup:
		d.target.Shutup()
	case *yack.Pause:
		d.action = d.target.Pause(e.Seconds)
	case *yack.WaitFor:
		log.Printf("[Dialog] waitfor %q not implemented", e.Actor)
	case *yack.Parrot:
		d.ctx.Parrot = e.Active
	case *yack.Dialog:
		d.ctx.Actor = e.Actor
	case *yack.Override:
		log.Printf("[Dialog] override %q not implemented", e.Node)
	case *yack.AllowObjects:
		log.Printf("[Dialog] allowobjects %v not implemented", e.Active)
	case *yack.WaitWhile:
		d.action = d.target.WaitWhile(e.Cond)
	case *yack.Limit:
		d.ctx.Limit = e.Max
	case *yack.Say:
		d.action = d.target.Say(e.Actor, e.Text)
	default:
		log.Printf("[Dialog] Warning: unexpected expression %T", expr)
	}
	return d.action != nil
}

func (d *Dialog) exec(code string) {
	if d.script == nil {
		log.Printf("[Dialog] Warning: no script host for %q", code)
		return
	}
	d.script.Exec(code)
}

// acceptConditions 所有守卫条件都通过时返回 true（遇到第一个失败即停止）
func (d *Dialog) acceptConditions(stmt *yack.Statement) bool {
	for _, cond := range stmt.Conditions {
		if !d.accept(cond) {
			return false
		}
	}
	return true
}

func (d *Dialog) accept(cond yack.Condition) bool {
	switch c := cond.(type) {
	case *yack.CodeCond:
		return d.IsCond(c.Code)
	case *yack.Once:
		return d.IsOnce(c.Line)
	case *yack.ShowOnce:
		return d.IsShowOnce(c.Line)
	case *yack.OnceEver:
		return d.IsOnceEver(c.Line)
	case *yack.TempOnce:
		return d.IsTempOnce(c.Line)
	}
	return false
}

// IsOnce 当前角色在当前对话中还没选择过 line 处的选项
func (d *Dialog) IsOnce(line int) bool {
	return d.ledger.IsOnce(d.ctx.Actor, d.ctx.DialogName, line)
}

// IsShowOnce 当前角色在当前对话中还没看到过 line 处的选项
func (d *Dialog) IsShowOnce(line int) bool {
	return d.ledger.IsShowOnce(d.ctx.Actor, d.ctx.DialogName, line)
}

// IsOnceEver 任何角色都还没选择过 line 处的选项
func (d *Dialog) IsOnceEver(line int) bool {
	return d.ledger.IsOnceEver(d.ctx.DialogName, line)
}

// IsTempOnce 本次会话还没显示过 line 处的选项
func (d *Dialog) IsTempOnce(line int) bool {
	return d.ledger.IsTempOnce(d.ctx.Actor, d.ctx.DialogName, line)
}

// IsCond 求值代码条件
func (d *Dialog) IsCond(code string) bool {
	return d.target.ExecCond(code)
}

// record 按条件类型生成账本记录：choose 为 true 时只有 Once/OnceEver 产生记录，
// 否则只有 ShowOnce/TempOnce 产生记录
func (d *Dialog) record(cond yack.Condition, choose bool) (Record, bool) {
	r := Record{Actor: d.ctx.Actor, Dialog: d.ctx.DialogName, Line: cond.SourceLine()}
	switch cond.(type) {
	case *yack.Once:
		r.Mode = ModeOnce
		return r, choose
	case *yack.OnceEver:
		r.Mode = ModeOnceEver
		return r, choose
	case *yack.ShowOnce:
		r.Mode = ModeShowOnce
		return r, !choose
	case *yack.TempOnce:
		r.Mode = ModeTempOnce
		return r, !choose
	}
	return r, false
}

func (d *Dialog) numSlots() int {
	n := 0
	for i := range d.slots {
		if d.slots[i].Valid {
			n++
		}
	}
	return n
}

func (d *Dialog) choicesReady() bool {
	return d.numSlots() > 0
}

// addSlot 把 Choice 放入第 N-1 个槽位
// 槽位已被占用或可见选项已达上限时跳过。
func (d *Dialog) addSlot(stmt *yack.Statement) {
	choice := stmt.Expr.(*yack.Choice)
	i := choice.Number - 1
	if i < 0 || i >= len(d.slots) {
		log.Printf("[Dialog] Warning: choice %d out of range in %s", choice.Number, d.ctx.DialogName)
		return
	}
	if d.slots[i].Valid || d.numSlots() >= d.ctx.Limit {
		return
	}
	d.slots[i] = Slot{
		Valid: true,
		Text:  d.choiceText(choice.Text),
		Stmt:  stmt,
		X:     d.cfg.SlotMargin,
	}
}

// choiceText 生成选项显示文字
func (d *Dialog) choiceText(text string) string {
	if d.texts != nil {
		text = d.texts.Resolve(text)
	}
	text = strings.TrimSpace(hiddenText.ReplaceAllString(text, ""))
	return d.cfg.ChoicePrefix + text
}

// clearSlots 清空所有槽位，并提交本次显示产生的记录
func (d *Dialog) clearSlots() {
	for _, r := range d.shown {
		d.ledger.Add(r)
	}
	d.shown = d.shown[:0]
	for i := range d.slots {
		d.slots[i] = Slot{}
	}
}

// waiting 等待选择：先重新校验显示守卫，再处理悬停、滑动和点击
func (d *Dialog) waiting(dt float64) {
	d.shown = d.shown[:0]
	for i := range d.slots {
		slot := &d.slots[i]
		if slot.Valid && !d.acceptConditions(slot.Stmt) {
			*slot = Slot{}
		}
	}
	if !d.choicesReady() {
		d.state = StateActive
		return
	}
	for i := range d.slots {
		if !d.slots[i].Valid {
			continue
		}
		for _, cond := range d.slots[i].Stmt.Conditions {
			if r, ok := d.record(cond, false); ok {
				d.shown = append(d.shown, r)
			}
		}
	}

	var px, py float64
	clicked := false
	if d.pointer != nil {
		px, py = d.pointer.Position()
		clicked = d.pointer.JustClicked()
	}

	y := d.cfg.ChoiceTop
	for i := range d.slots {
		slot := &d.slots[i]
		if !slot.Valid {
			continue
		}
		slot.Y = y
		slot.Width = d.measure(slot.Text)
		slot.Hover = px >= slot.X && px <= slot.X+slot.Width && py >= y && py < y+d.cfg.LineHeight
		d.slide(slot, dt)
		if slot.Hover && clicked {
			d.Choose(i)
			return
		}
		y += d.cfg.LineHeight
	}
}

// slide 超宽选项的水平滑动：悬停时向左露出右侧文字，离开后滑回边距
func (d *Dialog) slide(slot *Slot, dt float64) {
	margin := d.cfg.SlotMargin
	visible := d.cfg.ScreenWidth - margin
	if slot.Width+margin <= visible {
		return
	}
	if slot.Hover {
		if slot.X+slot.Width > visible {
			slot.X -= d.cfg.SlidingSpeed * dt
			if slot.X+slot.Width < visible {
				slot.X = visible - slot.Width
			}
		}
		return
	}
	if slot.X < margin {
		slot.X += d.cfg.SlidingSpeed * dt
		if slot.X > margin {
			slot.X = margin
		}
	}
}

func (d *Dialog) measure(s string) float64 {
	if d.measurer == nil {
		return float64(len([]rune(s))) * d.cfg.LineHeight / 2
	}
	return d.measurer.Measure(s)
}

// Choose 选择第 i 个槽位
//
// 通知脚本 onChoiceClick，记录 Once/OnceEver，然后跳转；
// 复述模式下先让角色说出选项文字再跳转。
func (d *Dialog) Choose(i int) {
	if i < 0 || i >= len(d.slots) || !d.slots[i].Valid {
		return
	}
	slot := d.slots[i]
	if d.script != nil {
		d.script.Call("onChoiceClick")
	}
	for _, cond := range slot.Stmt.Conditions {
		if r, ok := d.record(cond, true); ok {
			d.ledger.Add(r)
		}
	}

	choice := slot.Stmt.Expr.(*yack.Choice)
	if d.ctx.Parrot {
		d.clearSlots()
		d.state = StateActive
		d.action = motor.NewSerial(
			d.target.Say(d.ctx.Actor, choice.Text),
			motor.NewCallback(func() { d.SelectLabel(choice.Goto.Line, choice.Goto.Name) }),
		)
		return
	}
	d.SelectLabel(choice.Goto.Line, choice.Goto.Name)
}

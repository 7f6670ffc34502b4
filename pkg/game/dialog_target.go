package game

import (
	"image/color"
	"log"
	"unicode/utf8"

	"github.com/gonewx/yack/pkg/components"
	"github.com/gonewx/yack/pkg/config"
	"github.com/gonewx/yack/pkg/ecs"
	"github.com/gonewx/yack/pkg/motor"
)

// CondEvaluator 条件代码求值器（通常为 *scripting.Executor）
type CondEvaluator interface {
	EvalBool(expr string) bool
}

// LipSource 口型数据来源（通常为 *ResourceLoader）
type LipSource interface {
	LipSync(actor, id string) *LipSync
}

// 未配置颜色的角色使用的默认颜色
var (
	defaultTalkColor  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	defaultHoverColor = color.RGBA{R: 0xff, G: 0xe0, B: 0x40, A: 0xff}
)

// ActorDialogTarget 默认的对话目标
// 通过 ActorComponent.Key 在实体中查找角色，让角色说话、等待条件、暂停。
//
// 台词时长：
//   - 文本引用 "@id" 且存在 <actor>_<id>.lip 时使用口型时长
//   - 否则为 SayBaseDuration + 字符数 × SayDurationPerChar
type ActorDialogTarget struct {
	em       *ecs.EntityManager
	cfg      *config.DialogConfig
	texts    *TextStrings  // 可为 nil
	lips     LipSource     // 可为 nil
	script   CondEvaluator // 可为 nil，此时脚本条件一律为 false
	selected string        // 当前选中（玩家控制）的角色键名，用于角色名条件
	talks    []*talkMotor  // 正在进行的台词
}

// NewActorDialogTarget 创建对话目标
//
// 参数：
//   - em: 实体管理器
//   - cfg: 对话配置（台词时长）
//   - texts: 文本表，可为 nil
//   - lips: 口型数据来源，可为 nil
//   - script: 条件求值器，可为 nil
func NewActorDialogTarget(em *ecs.EntityManager, cfg *config.DialogConfig, texts *TextStrings, lips LipSource, script CondEvaluator) *ActorDialogTarget {
	if cfg == nil {
		cfg = config.DefaultDialogConfig()
	}
	return &ActorDialogTarget{
		em:     em,
		cfg:    cfg,
		texts:  texts,
		lips:   lips,
		script: script,
	}
}

// SelectActor 设置当前选中的角色
func (t *ActorDialogTarget) SelectActor(key string) {
	t.selected = key
}

// SelectedActor 当前选中的角色键名
func (t *ActorDialogTarget) SelectedActor() string {
	return t.selected
}

// FindActor 按键名查找角色实体
func (t *ActorDialogTarget) FindActor(key string) (ecs.EntityID, *components.ActorComponent, bool) {
	for _, id := range ecs.GetEntitiesWith1[*components.ActorComponent](t.em) {
		actor, _ := ecs.GetComponent[*components.ActorComponent](t.em, id)
		if actor.Key == key {
			return id, actor, true
		}
	}
	return 0, nil, false
}

// ActorColor 角色对白颜色
func (t *ActorDialogTarget) ActorColor(actor string) color.RGBA {
	if _, comp, ok := t.FindActor(actor); ok && comp.TalkColor.A != 0 {
		return comp.TalkColor
	}
	return defaultTalkColor
}

// ActorColorHover 角色对话选项的悬停颜色
func (t *ActorDialogTarget) ActorColorHover(actor string) color.RGBA {
	if _, comp, ok := t.FindActor(actor); ok && comp.HoverColor.A != 0 {
		return comp.HoverColor
	}
	return defaultHoverColor
}

// Say 让角色说一句台词
// 返回的马达在台词时长结束后停止；找不到角色时仍按时长等待
func (t *ActorDialogTarget) Say(actor, text string) motor.Motor {
	display := text
	if t.texts != nil {
		display = t.texts.Resolve(text)
	}
	duration := t.SayDuration(actor, text, display)

	m := &talkMotor{
		pause: motor.NewPause(duration),
	}
	if id, _, ok := t.FindActor(actor); ok {
		talking, exists := ecs.GetComponent[*components.TalkingComponent](t.em, id)
		if !exists {
			talking = &components.TalkingComponent{}
			ecs.AddComponent(t.em, id, talking)
		}
		for _, prev := range t.talks {
			if prev.talking == talking {
				prev.Disable()
			}
		}
		talking.Text = display
		talking.Remaining = duration
		talking.Active = true
		m.talking = talking
	} else {
		log.Printf("[ActorDialogTarget] Warning: Actor %s not found, line %q has no speaker", actor, display)
	}

	t.talks = append(t.talks, m)
	return m
}

// SayDuration 计算台词时长
func (t *ActorDialogTarget) SayDuration(actor, text, display string) float64 {
	if id, ok := TextID(text); ok && t.lips != nil {
		if lip := t.lips.LipSync(actor, id); lip != nil && lip.Duration() > 0 {
			return lip.Duration()
		}
	}
	return t.cfg.SayBaseDuration + float64(utf8.RuneCountInString(display))*t.cfg.SayDurationPerChar
}

// Shutup 打断所有正在进行的台词
func (t *ActorDialogTarget) Shutup() {
	for _, m := range t.talks {
		m.Disable()
	}
	t.talks = t.talks[:0]
}

// IsTalking 是否有角色正在说话
func (t *ActorDialogTarget) IsTalking() bool {
	n := 0
	for _, m := range t.talks {
		if m.IsEnabled() {
			t.talks[n] = m
			n++
		}
	}
	t.talks = t.talks[:n]
	return n > 0
}

// WaitWhile 条件为真时一直等待
func (t *ActorDialogTarget) WaitWhile(cond string) motor.Motor {
	return motor.NewWaitWhile(func() bool {
		return t.ExecCond(cond)
	})
}

// Pause 暂停指定秒数
func (t *ActorDialogTarget) Pause(seconds float64) motor.Motor {
	return motor.NewPause(seconds)
}

// ExecCond 求值条件
// 条件为角色键名时，当且仅当该角色是当前选中的角色才为真（与对话上下文中的角色无关）；
// 否则作为脚本表达式求值，失败时为假
func (t *ActorDialogTarget) ExecCond(code string) bool {
	if _, _, ok := t.FindActor(code); ok {
		return t.selected == code
	}
	if t.script == nil {
		log.Printf("[ActorDialogTarget] Warning: No script host, condition %q is false", code)
		return false
	}
	return t.script.EvalBool(code)
}

// talkMotor 台词马达：计时并同步角色的说话状态
type talkMotor struct {
	pause   *motor.Pause
	talking *components.TalkingComponent
}

func (m *talkMotor) Update(dt float64) {
	if !m.pause.IsEnabled() {
		return
	}
	m.pause.Update(dt)
	if m.talking != nil {
		m.talking.Remaining = m.pause.Remaining()
	}
	if !m.pause.IsEnabled() {
		m.stop()
	}
}

func (m *talkMotor) IsEnabled() bool {
	return m.pause.IsEnabled()
}

func (m *talkMotor) Disable() {
	m.pause.Disable()
	m.stop()
}

func (m *talkMotor) stop() {
	if m.talking != nil {
		m.talking.Active = false
		m.talking.Remaining = 0
		m.talking = nil
	}
}

package anim

import (
	"log"

	"github.com/gonewx/yack/pkg/components"
	"github.com/gonewx/yack/pkg/ecs"
	"github.com/gonewx/yack/pkg/process"
	"github.com/gonewx/yack/pkg/types"
	"github.com/gonewx/yack/pkg/world"
)

// Animator 创建动画驱动进程和下落进程的入口
type Animator struct {
	em      *ecs.EntityManager
	world   world.CollisionWorld
	actions ActionSource
	kernel  *process.Kernel
	hooks   Hooks
}

// NewAnimator 创建动画入口
//
// 参数:
//   - em: 实体管理器
//   - w: 碰撞世界
//   - actions: 动画动作数据
//   - kernel: 进程内核，新进程加入其中
//   - hooks: 特殊效果、命中和音效钩子
func NewAnimator(em *ecs.EntityManager, w world.CollisionWorld, actions ActionSource, kernel *process.Kernel, hooks Hooks) *Animator {
	return &Animator{em: em, world: w, actions: actions, kernel: kernel, hooks: hooks}
}

// SetHooks 替换钩子（系统初始化顺序需要时使用）
func (a *Animator) SetHooks(hooks Hooks) {
	a.hooks = hooks
}

// DoAnim 让角色播放一次动画
// 参数:
//   - steps: 最多播放的帧数，0 表示播放到结束
//
// 返回: 进程编号；初始化失败不会在这里报告，进程会在第一帧静默结束
func (a *Animator) DoAnim(actor ecs.EntityID, seq types.AnimSequence, dir types.Direction, steps int) process.PID {
	return a.kernel.AddProcess(newActorAnimProcess(a, actor, seq, dir, steps))
}

// DoAnimAfter 在 after 进程结束后播放动画
func (a *Animator) DoAnimAfter(actor ecs.EntityID, seq types.AnimSequence, dir types.Direction, after process.PID) process.PID {
	p := newActorAnimProcess(a, actor, seq, dir, 0)
	p.WaitFor(after)
	return a.kernel.AddProcess(p)
}

// Die 让角色面向 dir 播放死亡动画
//
// 角色的其他动画驱动进程被中止（下落进程保留），死亡动画已在播放时返回该进程；
// 角色正在下落时，死亡动画在落地后开始。角色已播放过死亡动画时返回 0。
func (a *Animator) Die(actor ecs.EntityID, dir types.Direction) process.PID {
	var dying process.PID
	for _, p := range a.kernel.FindProcesses(actor, ActorAnimProcessType) {
		if ap, ok := p.(*ActorAnimProcess); ok && ap.seq == types.AnimDie {
			dying = ap.PID()
			continue
		}
		p.Info().MarkFailed()
		p.Terminate()
	}
	if dying != 0 {
		return dying
	}

	if comp, ok := ecs.GetComponent[*components.ActorComponent](a.em, actor); ok && comp.LastAnim == types.AnimDie {
		return 0
	}
	if fall := a.kernel.FindProcess(actor, FallProcessType); fall != nil {
		return a.DoAnimAfter(actor, types.AnimDie, dir, fall.Info().PID())
	}
	return a.DoAnim(actor, types.AnimDie, dir, 0)
}

// IsAnimating 角色是否有正在运行的动画驱动进程
func (a *Animator) IsAnimating(actor ecs.EntityID) bool {
	return a.kernel.FindProcess(actor, ActorAnimProcessType) != nil
}

// Hurl 以初速度 vel 抛出角色
// 角色已在下落时合并速度，返回已有下落进程的编号。
func (a *Animator) Hurl(actor ecs.EntityID, vel types.Point3, gravity float64) process.PID {
	if existing := a.kernel.FindProcess(actor, FallProcessType); existing != nil {
		if fp, ok := existing.(*FallProcess); ok {
			fp.vel = fp.vel.Add(vel)
		}
		return existing.Info().PID()
	}
	return a.kernel.AddProcess(NewFallProcess(a.em, a.world, actor, vel, gravity))
}

// Fall 让角色以零初速度下落
func (a *Animator) Fall(actor ecs.EntityID) process.PID {
	return a.Hurl(actor, types.Point3{}, fallGravity)
}

// WalkTo 走向目标点的马达
//
// 每次当前动画结束后朝目标重新选择方向并播放一次 walk；
// 距离目标不足一步、或上一次行走没有产生位移时播放 stand 并停止。
type WalkTo struct {
	anim   *Animator
	actor  ecs.EntityID
	target types.Point3

	current  process.PID
	lastPos  types.Point3
	started  bool
	disabled bool
}

// arriveDistance 认为已到达目标的距离
const arriveDistance = 2 * StepDistance

// NewWalkTo 创建行走马达
func (a *Animator) NewWalkTo(actor ecs.EntityID, target types.Point3) *WalkTo {
	return &WalkTo{anim: a, actor: actor, target: target}
}

// Update 实现 motor.Motor
func (w *WalkTo) Update(dt float64) {
	if w.disabled {
		return
	}
	if w.current != 0 && w.anim.kernel.GetProcess(w.current) != nil {
		return
	}
	w.current = 0

	pos, ok := ecs.GetComponent[*components.PositionComponent](w.anim.em, w.actor)
	if !ok {
		w.Disable()
		return
	}
	here := pos.Point()
	flat := types.Point3{X: w.target.X - here.X, Y: w.target.Y - here.Y}
	stalled := w.started && here == w.lastPos

	dir := types.DirectionTowards(here, w.target)
	if flat.Length() <= arriveDistance || !dir.Valid() || stalled {
		if stalled {
			log.Printf("[WalkTo] actor %d stalled at (%.0f, %.0f)", w.actor, here.X, here.Y)
		}
		standDir := dir
		if !standDir.Valid() {
			if actor, ok := ecs.GetComponent[*components.ActorComponent](w.anim.em, w.actor); ok {
				standDir = actor.Dir
			}
		}
		w.anim.DoAnim(w.actor, types.AnimStand, standDir, 0)
		w.Disable()
		return
	}

	w.started = true
	w.lastPos = here
	w.current = w.anim.DoAnim(w.actor, types.AnimWalk, dir, 0)
}

// IsEnabled 实现 motor.Motor
func (w *WalkTo) IsEnabled() bool { return !w.disabled }

// Disable 实现 motor.Motor
func (w *WalkTo) Disable() { w.disabled = true }

package anim

import (
	"context"
	"log"

	"github.com/gonewx/yack/pkg/components"
	"github.com/gonewx/yack/pkg/config"
	"github.com/gonewx/yack/pkg/ecs"
	"github.com/gonewx/yack/pkg/process"
	"github.com/gonewx/yack/pkg/types"
	"github.com/looplab/fsm"
)

// 进程类型
const (
	ActorAnimProcessType uint16 = 0x00F0
	FallProcessType      uint16 = 0x00F1
	DestroyProcessType   uint16 = 0x00F2
)

// 驱动进程生命周期状态
const (
	StateUninitialized = "uninitialized"
	StatePlaying       = "playing"
	StateTerminated    = "terminated"

	eventStart     = "start"
	eventTerminate = "terminate"
)

// 下落重力
const (
	hurlGravity = 2.0
	fallGravity = 4.0
)

// ActorAnimProcess 驱动一个角色播放一次动画
//
// 第一帧初始化追踪器；失败时进程静默结束，不播放任何帧。
// 初始化成功后角色被锁定，直到进程结束。
type ActorAnimProcess struct {
	process.Base

	anim  *Animator
	seq   types.AnimSequence
	dir   types.Direction
	steps int

	tracker           *AnimationTracker
	repeatCounter     int
	currentStep       int
	aborted           bool
	attackedSomething bool

	lifecycle *fsm.FSM
}

func newActorAnimProcess(anim *Animator, actor ecs.EntityID, seq types.AnimSequence, dir types.Direction, steps int) *ActorAnimProcess {
	p := &ActorAnimProcess{
		Base:  process.NewBase(actor, ActorAnimProcessType),
		anim:  anim,
		seq:   seq,
		dir:   dir,
		steps: steps,
	}
	p.lifecycle = fsm.NewFSM(
		StateUninitialized,
		fsm.Events{
			{Name: eventStart, Src: []string{StateUninitialized}, Dst: StatePlaying},
			{Name: eventTerminate, Src: []string{StateUninitialized, StatePlaying}, Dst: StateTerminated},
		},
		fsm.Callbacks{},
	)
	return p
}

// State 当前生命周期状态
func (p *ActorAnimProcess) State() string {
	return p.lifecycle.Current()
}

// Sequence 播放的动画序列
func (p *ActorAnimProcess) Sequence() types.AnimSequence {
	return p.seq
}

// Tracker 正在使用的追踪器（初始化前为 nil）
func (p *ActorAnimProcess) Tracker() *AnimationTracker {
	return p.tracker
}

func (p *ActorAnimProcess) init() bool {
	if !p.dir.Valid() {
		return false
	}
	em := p.anim.em
	actor, ok := ecs.GetComponent[*components.ActorComponent](em, p.ItemNum())
	if !ok {
		return false
	}
	if !actor.InFastArea || actor.AnimLocked {
		return false
	}

	tracker := NewAnimationTracker(em, p.anim.world, p.anim.actions)
	if !tracker.Init(p.ItemNum(), p.seq, p.dir, nil) {
		return false
	}

	p.tracker = tracker
	actor.AnimLocked = true
	actor.LastAnim = p.seq
	actor.Dir = p.dir
	return true
}

// Run 执行一帧
func (p *ActorAnimProcess) Run() {
	ctx := context.Background()

	if p.lifecycle.Is(StateUninitialized) {
		if !p.init() {
			p.MarkFailed()
			p.Terminate()
			return
		}
		if err := p.lifecycle.Event(ctx, eventStart); err != nil {
			log.Printf("[ActorAnimProcess] Warning: %v", err)
		}
	}
	if !p.lifecycle.Is(StatePlaying) {
		return
	}

	if p.aborted {
		p.Terminate()
		return
	}

	em := p.anim.em
	id := p.ItemNum()
	actor, ok := ecs.GetComponent[*components.ActorComponent](em, id)
	if !ok || em.IsMarkedForDestroy(id) {
		p.Terminate()
		return
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		p.Terminate()
		return
	}
	if !actor.InFastArea {
		p.Terminate()
		return
	}

	if p.repeatCounter == 0 {
		if p.steps > 0 && p.currentStep >= p.steps {
			p.Terminate()
			return
		}

		stepped := p.tracker.StepFrom(pos.Point())
		p.tracker.UpdateActorFlags()
		p.currentStep++

		if !stepped {
			if p.tracker.IsDone() {
				if p.tracker.IsUnsupported() {
					p.anim.Hurl(id, p.tracker.Speed(), hurlGravity)
				}
				p.Terminate()
				return
			}

			if p.tracker.IsBlocked() && !p.tracker.Action().HasFlags(config.ActionUnstoppable) {
				p.Terminate()
				return
			}

			if p.tracker.IsUnsupported() {
				// 下落从追踪器最后到达的位置开始
				pos.Set(p.tracker.Position())
				p.aborted = true
				pid := p.anim.Hurl(id, p.tracker.Speed(), hurlGravity)
				p.WaitFor(pid)
				return
			}
		}

		if f := p.tracker.AnimFrame(); f != nil {
			if f.Sfx != "" && p.anim.hooks.Sound != nil {
				p.anim.hooks.Sound.PlaySFX(id, f.Sfx)
			}
			if f.Is(config.FrameSpecial) && p.anim.hooks.Special != nil {
				p.anim.hooks.Special.DoSpecial(id, p.tracker.Action(), f)
			}
		}

		if hit := p.tracker.HitObject(); hit != 0 && !p.attackedSomething {
			p.attackedSomething = true
			if p.anim.hooks.Hit != nil {
				p.anim.hooks.Hit.ReceiveHit(hit, id, p.dir)
			}
		}
	}

	pos.Set(p.tracker.GetInterpolatedPosition(p.repeatCounter + 1))

	p.repeatCounter++
	if p.repeatCounter > p.tracker.Action().FrameRepeat {
		p.repeatCounter = 0
	}
}

// Terminate 结束进程
// 只有成功初始化（持有锁）的进程才会解锁角色；
// 带 destroyactor 标记的动作会另起一个进程销毁角色。
func (p *ActorAnimProcess) Terminate() {
	if p.lifecycle.Is(StateTerminated) {
		return
	}
	if err := p.lifecycle.Event(context.Background(), eventTerminate); err != nil {
		log.Printf("[ActorAnimProcess] Warning: %v", err)
	}

	if p.tracker != nil {
		if actor, ok := ecs.GetComponent[*components.ActorComponent](p.anim.em, p.ItemNum()); ok {
			actor.AnimLocked = false
		}
		if p.tracker.Action().HasFlags(config.ActionDestroyActor) {
			p.anim.kernel.AddProcess(NewDestroyProcess(p.anim.em, p.ItemNum()))
		}
	}
	p.Base.Terminate()
}

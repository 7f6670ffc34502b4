// Package anim 实现角色动画追踪器和动画驱动进程
//
// AnimationTracker 每次 Step 推进一帧，并把角色位移与碰撞世界对齐；
// ActorAnimProcess 在多帧之间持有一个追踪器，处理结束、阻挡、下落、命中和特殊效果。
package anim

import (
	"math"

	"github.com/gonewx/yack/pkg/components"
	"github.com/gonewx/yack/pkg/config"
	"github.com/gonewx/yack/pkg/ecs"
	"github.com/gonewx/yack/pkg/types"
	"github.com/gonewx/yack/pkg/world"
)

const (
	// StepDistance 每个方向位移单位对应的世界距离
	StepDistance = 4.0

	// attackReach 攻击范围一格对应的世界距离
	attackReach = 32.0

	// sweepMargin 位移小于碰撞盒尺寸减去该值时只做单点检测
	sweepMargin = 8.0

	// maxTargetDZ 目标模式下允许分摊的最大垂直偏差
	maxTargetDZ = 16.0
)

// ActionSource 按外形和序列查找动画动作数据
// *config.AnimActionConfig 实现了该接口。
type ActionSource interface {
	Action(shape string, seq types.AnimSequence) *config.AnimAction
}

// TrackerMode 追踪器模式
type TrackerMode int

const (
	// ModeNormal 按帧数据位移
	ModeNormal TrackerMode = iota
	// ModeTarget 把到目标点的剩余位移分摊到离地帧上
	ModeTarget
)

// TrackerState 动画衔接用的状态快照
// 一个动画交接给下一个动画（如 walk → stand）时，用快照代替角色的实时状态。
type TrackerState struct {
	Pos       types.Point3
	Dir       types.Direction
	LastAnim  types.AnimSequence
	FirstStep bool
	Flipped   bool
}

// AnimationTracker 一次动画播放的逐帧追踪器
type AnimationTracker struct {
	em      *ecs.EntityManager
	world   world.CollisionWorld
	actions ActionSource

	actor  ecs.EntityID
	action *config.AnimAction
	dir    types.Direction
	dims   types.Point3

	startFrame   int
	endFrame     int
	currentFrame int
	shapeFrame   int
	firstFrame   bool

	flipped   bool
	firstStep bool

	done        bool
	blocked     bool
	unsupported bool
	hitObject   ecs.EntityID

	pos  types.Point3
	prev types.Point3

	mode                TrackerMode
	targetDelta         types.Point3
	targetOffGroundLeft int
}

// NewAnimationTracker 创建追踪器
// 参数:
//   - em: 实体管理器（读取角色组件）
//   - w: 碰撞世界
//   - actions: 动画动作数据
func NewAnimationTracker(em *ecs.EntityManager, w world.CollisionWorld, actions ActionSource) *AnimationTracker {
	return &AnimationTracker{em: em, world: w, actions: actions}
}

// Init 为一次播放初始化追踪器
//
// 参数:
//   - actor: 角色实体（需要 ActorComponent、PositionComponent、CollisionComponent）
//   - seq: 动画序列
//   - dir: 播放方向
//   - state: 可选的衔接快照；为 nil 时使用角色的实时状态
//
// 返回:
//   - bool: 角色缺少组件、外形没有该动作或动作没有该方向时返回 false
func (t *AnimationTracker) Init(actor ecs.EntityID, seq types.AnimSequence, dir types.Direction, state *TrackerState) bool {
	actorComp, ok := ecs.GetComponent[*components.ActorComponent](t.em, actor)
	if !ok {
		return false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](t.em, actor)
	if !ok {
		return false
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](t.em, actor)
	if !ok {
		return false
	}

	action := t.actions.Action(actorComp.Shape, seq)
	if action == nil || !action.HasDir(dir) {
		return false
	}

	t.actor = actor
	t.action = action
	t.dir = dir
	t.dims = col.Dims

	if state == nil {
		t.pos = pos.Point()
		t.flipped = actorComp.Flipped
		t.firstStep = actorComp.FirstStep
		t.startFrame, t.endFrame = action.AnimRange(actorComp.LastAnim, actorComp.Dir, actorComp.FirstStep, dir)
	} else {
		t.pos = state.Pos
		t.flipped = state.Flipped
		t.firstStep = state.FirstStep
		t.startFrame, t.endFrame = action.AnimRange(state.LastAnim, state.Dir, state.FirstStep, dir)
	}
	t.prev = t.pos
	t.currentFrame = t.startFrame
	t.shapeFrame = 0
	t.firstFrame = true
	t.done = false
	t.blocked = false
	t.unsupported = false
	t.hitObject = 0
	t.mode = ModeNormal
	t.targetDelta = types.Point3{}
	t.targetOffGroundLeft = 0
	return true
}

// nextFrame 计算下一帧编号
// 到达结束帧时返回结束帧；越过动作末尾时循环动画回到第 1 帧，否则回到第 0 帧。
func (t *AnimationTracker) nextFrame(frame int) int {
	frame++
	if frame == t.endFrame {
		return t.endFrame
	}
	if frame >= t.action.Size() {
		if t.action.HasFlags(config.ActionLooping) {
			frame = 1
		} else {
			frame = 0
		}
	}
	return frame
}

// Step 推进一帧
//
// 返回:
//   - bool: 成功移动到下一帧返回 true；结束、被阻挡或失去支撑时返回 false
func (t *AnimationTracker) Step() bool {
	if t.done {
		return false
	}

	if t.firstFrame {
		t.currentFrame = t.startFrame
	} else {
		t.currentFrame = t.nextFrame(t.currentFrame)
	}

	if t.currentFrame == t.endFrame {
		t.done = true
		if t.action.HasFlags(config.ActionTwoStep) {
			t.firstStep = !t.firstStep
		} else {
			t.firstStep = true
		}
		return false
	}

	t.prev = t.pos
	t.blocked = false
	t.unsupported = false
	t.firstFrame = false

	f := t.action.Frame(t.dir, t.currentFrame)
	t.shapeFrame = f.Frame
	t.flipped = f.Is(config.FrameFlipped)

	d := types.Point3{
		X: StepDistance * t.dir.XFactor() * float64(f.DeltaDir),
		Y: StepDistance * t.dir.YFactor() * float64(f.DeltaDir),
		Z: float64(f.DeltaZ),
	}

	if t.mode == ModeTarget && !f.Is(config.FrameOnGround) && t.targetOffGroundLeft > 0 {
		share := t.targetDelta.Scale(1 / float64(t.targetOffGroundLeft))
		d = d.Add(share)
		t.targetDelta = t.targetDelta.Sub(share)
		t.targetOffGroundLeft--
	}

	target := t.pos.Add(d)

	// 只有大步位移才做完整扫掠
	large := t.largeStep(d)
	if large {
		for _, hit := range t.world.SweepTest(t.pos, target, t.dims, t.actor) {
			if !hit.Touching && hit.Blocking {
				t.pos = hit.InterpolatedCoords(t.pos, target)
				t.blocked = true
				return false
			}
		}
	}

	info := t.world.PositionInfo(target, t.dims, t.actor)
	if !info.Valid && !large {
		t.blocked = true
		return false
	}

	if f.Is(config.FrameOnGround) && !info.Supported {
		adjusted, ok := t.world.ScanForValidPosition(target, t.dims, t.actor)
		if !ok {
			t.unsupported = true
			t.pos = target
			return false
		}
		target = adjusted
	}

	if t.action.HasFlags(config.ActionAttack) && t.hitObject == 0 && f.AttackRange > 0 {
		t.checkWeaponHit(target, f.AttackRange)
	}

	t.pos = target
	return true
}

func (t *AnimationTracker) largeStep(d types.Point3) bool {
	return math.Abs(d.X) >= t.dims.X-sweepMargin ||
		math.Abs(d.Y) >= t.dims.Y-sweepMargin ||
		math.Abs(d.Z) >= t.dims.Z-sweepMargin
}

// checkWeaponHit 把角色碰撞盒沿朝向前推 range 格，记录第一个相交的其他角色
func (t *AnimationTracker) checkWeaponHit(at types.Point3, reach int) {
	shift := types.Point3{
		X: t.dir.XFactor() * attackReach * float64(reach),
		Y: t.dir.YFactor() * attackReach * float64(reach),
	}
	box := types.Box{Pos: at, Dims: t.dims}.Translate(shift)
	hits := t.world.OverlappingActors(box, t.actor)
	if len(hits) > 0 {
		t.hitObject = hits[0]
	}
}

// StepFrom 从指定位置推进一帧（角色可能被其他进程移动过）
func (t *AnimationTracker) StepFrom(pos types.Point3) bool {
	t.pos = pos
	return t.Step()
}

// SetTargetedMode 让剩余动画结束在 target 附近
//
// 计算整段动画的自然位移，把与目标点的差值分摊到所有离地帧上；
// 垂直差值限制在 ±16 以内。没有离地帧时保持普通模式。
func (t *AnimationTracker) SetTargetedMode(target types.Point3) {
	var totalDir, totalZ float64
	offGround := 0
	for i, n := t.startFrame, 0; i != t.endFrame && n <= t.action.Size(); i, n = t.nextFrame(i), n+1 {
		f := t.action.Frame(t.dir, i)
		if f == nil {
			break
		}
		totalDir += float64(f.DeltaDir)
		totalZ += float64(f.DeltaZ)
		if !f.Is(config.FrameOnGround) {
			offGround++
		}
	}
	if offGround == 0 {
		return
	}

	end := types.Point3{
		X: StepDistance * t.dir.XFactor() * totalDir,
		Y: StepDistance * t.dir.YFactor() * totalDir,
		Z: totalZ,
	}
	t.mode = ModeTarget
	t.targetOffGroundLeft = offGround
	t.targetDelta = target.Sub(t.pos).Sub(end)
	t.targetDelta.Z = math.Max(-maxTargetDZ, math.Min(maxTargetDZ, t.targetDelta.Z))
}

// GetInterpolatedPosition 在上一帧与当前帧位置之间插值
// 参数:
//   - fc: 当前帧已显示的重复 tick 数（0..frameRepeat+1）
func (t *AnimationTracker) GetInterpolatedPosition(fc int) types.Point3 {
	repeat := float64(t.action.FrameRepeat + 1)
	d := t.pos.Sub(t.prev)
	return t.prev.Add(d.Scale(float64(fc) / repeat))
}

// Speed 最近一帧的位移（下落时作为初速度）
func (t *AnimationTracker) Speed() types.Point3 {
	return t.pos.Sub(t.prev)
}

// UpdateActorFlags 把翻转和步态标记写回角色
func (t *AnimationTracker) UpdateActorFlags() {
	actor, ok := ecs.GetComponent[*components.ActorComponent](t.em, t.actor)
	if !ok {
		return
	}
	actor.Flipped = t.flipped
	actor.FirstStep = t.firstStep
	actor.Frame = t.shapeFrame
}

// UpdateState 把当前状态写入快照，供下一个动画衔接
func (t *AnimationTracker) UpdateState(state *TrackerState) {
	state.Pos = t.pos
	state.Dir = t.dir
	state.LastAnim = t.action.Sequence
	state.FirstStep = t.firstStep
	state.Flipped = t.flipped
}

// AnimFrame 当前帧数据；尚未推进或已结束时返回 nil
func (t *AnimationTracker) AnimFrame() *config.AnimFrame {
	if t.firstFrame || t.done {
		return nil
	}
	return t.action.Frame(t.dir, t.currentFrame)
}

// Action 正在播放的动作
func (t *AnimationTracker) Action() *config.AnimAction { return t.action }

// Position 当前提交的位置
func (t *AnimationTracker) Position() types.Point3 { return t.pos }

// CurrentFrame 当前帧编号
func (t *AnimationTracker) CurrentFrame() int { return t.currentFrame }

// ShapeFrame 当前外形帧
func (t *AnimationTracker) ShapeFrame() int { return t.shapeFrame }

// IsFlipped 当前帧是否翻转
func (t *AnimationTracker) IsFlipped() bool { return t.flipped }

// IsDone 动画是否已播放完毕（一旦为 true 不再改变）
func (t *AnimationTracker) IsDone() bool { return t.done }

// IsBlocked 最近一帧是否被阻挡
func (t *AnimationTracker) IsBlocked() bool { return t.blocked }

// IsUnsupported 最近一帧是否失去支撑
func (t *AnimationTracker) IsUnsupported() bool { return t.unsupported }

// HitObject 本次播放命中的角色，0 表示未命中
func (t *AnimationTracker) HitObject() ecs.EntityID { return t.hitObject }

// Mode 当前模式
func (t *AnimationTracker) Mode() TrackerMode { return t.mode }

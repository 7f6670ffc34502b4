package anim

import (
	"github.com/gonewx/yack/pkg/components"
	"github.com/gonewx/yack/pkg/ecs"
	"github.com/gonewx/yack/pkg/process"
	"github.com/gonewx/yack/pkg/types"
	"github.com/gonewx/yack/pkg/world"
)

// maxFallTicks 下落进程的最长运行帧数，超过后强制结束
const maxFallTicks = 600

// FallProcess 角色受重力下落（或被抛出）
//
// 每帧先施加重力，再把速度限制到 MaxSpeed，然后沿速度做扫掠；
// 落到有支撑的位置后结束。
type FallProcess struct {
	process.Base

	em      *ecs.EntityManager
	world   world.CollisionWorld
	vel     types.Point3
	gravity float64
	ticks   int
}

// NewFallProcess 创建下落进程
// 参数:
//   - vel: 初速度（每帧位移）
//   - gravity: 每帧垂直速度的减少量
func NewFallProcess(em *ecs.EntityManager, w world.CollisionWorld, actor ecs.EntityID, vel types.Point3, gravity float64) *FallProcess {
	return &FallProcess{
		Base:    process.NewBase(actor, FallProcessType),
		em:      em,
		world:   w,
		vel:     vel,
		gravity: gravity,
	}
}

// Velocity 当前速度
func (p *FallProcess) Velocity() types.Point3 {
	return p.vel
}

// Run 执行一帧
func (p *FallProcess) Run() {
	id := p.ItemNum()
	pos, ok := ecs.GetComponent[*components.PositionComponent](p.em, id)
	if !ok {
		p.Terminate()
		return
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](p.em, id)
	if !ok {
		p.Terminate()
		return
	}

	p.ticks++
	p.vel.Z -= p.gravity
	p.vel = ClampSpeed(p.vel, MaxSpeed)

	start := pos.Point()
	end := start.Add(p.vel)
	for _, hit := range p.world.SweepTest(start, end, col.Dims, id) {
		if hit.Touching || !hit.Blocking {
			continue
		}
		at := hit.InterpolatedCoords(start, end)
		pos.Set(at)
		if p.world.PositionInfo(at, col.Dims, id).Supported {
			p.Terminate()
			return
		}
		// 撞墙后只保留垂直速度
		p.vel.X, p.vel.Y = 0, 0
		return
	}

	pos.Set(end)
	if p.vel.Z <= 0 && p.world.PositionInfo(end, col.Dims, id).Supported {
		p.Terminate()
		return
	}
	if p.ticks >= maxFallTicks {
		p.Terminate()
	}
}

// DestroyProcess 在下一帧销毁实体（延迟到进程展开之后）
type DestroyProcess struct {
	process.Base
	em *ecs.EntityManager
}

// NewDestroyProcess 创建销毁进程
func NewDestroyProcess(em *ecs.EntityManager, item ecs.EntityID) *DestroyProcess {
	return &DestroyProcess{Base: process.NewBase(item, DestroyProcessType), em: em}
}

// Run 标记实体待删除并结束
func (p *DestroyProcess) Run() {
	p.em.DestroyEntity(p.ItemNum())
	p.Terminate()
}

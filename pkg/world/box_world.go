package world

import (
	"math"
	"sort"

	"github.com/gonewx/yack/pkg/components"
	"github.com/gonewx/yack/pkg/ecs"
	"github.com/gonewx/yack/pkg/types"
)

// DefaultStepHeight 落地扫描的默认上下范围
const DefaultStepHeight = 16.0

const epsilon = 1e-6

// BoxWorld 以实体碰撞盒构成的世界
//
// 参与碰撞的实体需要 PositionComponent + CollisionComponent；
// 位置为碰撞盒最小角。
type BoxWorld struct {
	em *ecs.EntityManager

	// StepHeight 落地扫描时上下搜索的最大高度差
	StepHeight float64
}

// NewBoxWorld 创建碰撞世界
func NewBoxWorld(em *ecs.EntityManager) *BoxWorld {
	return &BoxWorld{em: em, StepHeight: DefaultStepHeight}
}

type collider struct {
	id  ecs.EntityID
	box types.Box
	col *components.CollisionComponent
}

// colliders 返回除 self 外的所有碰撞体，按 ID 升序
func (w *BoxWorld) colliders(self ecs.EntityID) []collider {
	ids := ecs.GetEntitiesWith2[*components.PositionComponent, *components.CollisionComponent](w.em)
	result := make([]collider, 0, len(ids))
	for _, id := range ids {
		if id == self {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
		col, _ := ecs.GetComponent[*components.CollisionComponent](w.em, id)
		result = append(result, collider{
			id:  id,
			box: types.Box{Pos: pos.Point(), Dims: col.Dims},
			col: col,
		})
	}
	return result
}

// EntityBox 返回实体的世界碰撞盒
func (w *BoxWorld) EntityBox(id ecs.EntityID) (types.Box, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](w.em, id)
	if !ok {
		return types.Box{}, false
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](w.em, id)
	if !ok {
		return types.Box{}, false
	}
	return types.Box{Pos: pos.Point(), Dims: col.Dims}, true
}

// PositionInfo 实现 CollisionWorld
func (w *BoxWorld) PositionInfo(pos, dims types.Point3, self ecs.EntityID) PositionInfo {
	box := types.Box{Pos: pos, Dims: dims}
	info := PositionInfo{Valid: true}
	for _, c := range w.colliders(self) {
		if c.col.Solid && box.Overlaps(c.box) {
			info.Valid = false
		}
		if !info.Supported && supports(c, box) {
			info.Supported = true
			info.Land = c.id
		}
	}
	return info
}

// supports 检查 c 的顶面是否托住 box
func supports(c collider, box types.Box) bool {
	if !c.col.Floor {
		return false
	}
	top := c.box.Max().Z
	if math.Abs(top-box.Pos.Z) > epsilon {
		return false
	}
	bm, cm := box.Max(), c.box.Max()
	return box.Pos.X < cm.X && bm.X > c.box.Pos.X &&
		box.Pos.Y < cm.Y && bm.Y > c.box.Pos.Y
}

// SweepTest 实现 CollisionWorld
func (w *BoxWorld) SweepTest(start, end, dims types.Point3, self ecs.EntityID) []SweepHit {
	moving := types.Box{Pos: start, Dims: dims}
	delta := end.Sub(start)

	var hits []SweepHit
	for _, c := range w.colliders(self) {
		enter, exit, strict, ok := sweepBox(moving, delta, c.box)
		if !ok {
			continue
		}
		hits = append(hits, SweepHit{
			Item:     c.id,
			HitTime:  enter,
			EndTime:  exit,
			Touching: !strict,
			Blocking: c.col.Solid,
		})
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].HitTime < hits[j].HitTime })
	return hits
}

// sweepBox 对移动盒与静止盒做分离轴扫掠
// 返回接触区间 [enter, exit]，以及区间内是否真正相交（而非仅贴边）
func sweepBox(a types.Box, d types.Point3, b types.Box) (enter, exit float64, strict, ok bool) {
	enter, exit = 0, 1
	strict = true

	axes := [3][4]float64{
		{a.Pos.X, a.Dims.X, b.Pos.X, b.Dims.X},
		{a.Pos.Y, a.Dims.Y, b.Pos.Y, b.Dims.Y},
		{a.Pos.Z, a.Dims.Z, b.Pos.Z, b.Dims.Z},
	}
	vel := [3]float64{d.X, d.Y, d.Z}

	for i, ax := range axes {
		a0, ad, b0, bd := ax[0], ax[1], ax[2], ax[3]
		v := vel[i]
		if math.Abs(v) < epsilon {
			// 静止轴：闭区间判断接触，开区间判断相交
			if a0 > b0+bd+epsilon || a0+ad < b0-epsilon {
				return 0, 0, false, false
			}
			if a0 >= b0+bd-epsilon || a0+ad <= b0+epsilon {
				strict = false
			}
			continue
		}
		t1 := (b0 - ad - a0) / v
		t2 := (b0 + bd - a0) / v
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		enter = math.Max(enter, t1)
		exit = math.Min(exit, t2)
	}

	if enter > exit+epsilon {
		return 0, 0, false, false
	}
	if exit-enter < epsilon {
		strict = false
	}
	return enter, exit, strict, true
}

// ScanForValidPosition 实现 CollisionWorld
//
// 候选高度为 pos 上下 StepHeight 范围内所有地面的顶面，
// 按与 pos.Z 的距离排序（距离相同时先向上），返回第一个合法位置。
func (w *BoxWorld) ScanForValidPosition(pos, dims types.Point3, self ecs.EntityID) (types.Point3, bool) {
	footprint := types.Box{Pos: pos, Dims: dims}
	var heights []float64
	for _, c := range w.colliders(self) {
		if !c.col.Floor {
			continue
		}
		top := c.box.Max().Z
		if math.Abs(top-pos.Z) > w.StepHeight+epsilon {
			continue
		}
		resting := footprint
		resting.Pos.Z = top
		if supports(c, resting) {
			heights = append(heights, top)
		}
	}

	sort.Slice(heights, func(i, j int) bool {
		di, dj := math.Abs(heights[i]-pos.Z), math.Abs(heights[j]-pos.Z)
		if math.Abs(di-dj) > epsilon {
			return di < dj
		}
		return heights[i] > heights[j]
	})

	for _, z := range heights {
		candidate := types.Point3{X: pos.X, Y: pos.Y, Z: z}
		info := w.PositionInfo(candidate, dims, self)
		if info.Valid && info.Supported {
			return candidate, true
		}
	}
	return pos, false
}

// OverlappingActors 实现 CollisionWorld
func (w *BoxWorld) OverlappingActors(box types.Box, self ecs.EntityID) []ecs.EntityID {
	var result []ecs.EntityID
	for _, c := range w.colliders(self) {
		if !ecs.HasComponent[*components.ActorComponent](w.em, c.id) {
			continue
		}
		if box.Overlaps(c.box) {
			result = append(result, c.id)
		}
	}
	return result
}

// FloorMaterialAt 实现 CollisionWorld
func (w *BoxWorld) FloorMaterialAt(pos, dims types.Point3, self ecs.EntityID) string {
	box := types.Box{Pos: pos, Dims: dims}
	for _, c := range w.colliders(self) {
		if supports(c, box) {
			return c.col.Material
		}
	}
	return ""
}

// UpdateFastArea 根据模拟区域刷新每个角色的 InFastArea 标记
func (w *BoxWorld) UpdateFastArea(area types.Box) {
	for _, id := range ecs.GetEntitiesWith2[*components.ActorComponent, *components.PositionComponent](w.em) {
		actor, _ := ecs.GetComponent[*components.ActorComponent](w.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
		actor.InFastArea = area.Touches(types.Box{Pos: pos.Point()})
	}
}

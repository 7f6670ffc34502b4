// Package world 提供动画追踪器依赖的碰撞世界
//
// CollisionWorld 是追踪器和下落进程看到的全部世界接口；
// BoxWorld 是基于 ECS 实体碰撞盒的实现。
package world

import (
	"github.com/gonewx/yack/pkg/ecs"
	"github.com/gonewx/yack/pkg/types"
)

// PositionInfo 单点位置检测结果
type PositionInfo struct {
	Valid     bool         // 该位置不与任何实体相交
	Supported bool         // 底面有可站立的实体
	Land      ecs.EntityID // 支撑实体（Supported 为 false 时为 0）
}

// SweepHit 扫掠检测的一次命中
//
// HitTime/EndTime 是沿扫掠路径的参数 [0, 1]：
// 0 表示起点，1 表示终点。
type SweepHit struct {
	Item     ecs.EntityID
	HitTime  float64 // 开始接触的时刻
	EndTime  float64 // 脱离接触的时刻
	Touching bool    // 只是贴边接触，没有真正相交
	Blocking bool    // 命中对象是否阻挡移动
}

// InterpolatedCoords 返回命中时刻的位置
func (h SweepHit) InterpolatedCoords(start, end types.Point3) types.Point3 {
	return start.Lerp(end, h.HitTime)
}

// CollisionWorld 动画追踪器使用的碰撞世界
type CollisionWorld interface {
	// PositionInfo 检测 self 以 dims 尺寸放在 pos 时是否合法、是否有支撑
	PositionInfo(pos, dims types.Point3, self ecs.EntityID) PositionInfo

	// SweepTest 从 start 扫掠到 end，返回按 HitTime 升序排列的命中
	SweepTest(start, end, dims types.Point3, self ecs.EntityID) []SweepHit

	// ScanForValidPosition 在 pos 上下有限范围内寻找合法且有支撑的位置
	ScanForValidPosition(pos, dims types.Point3, self ecs.EntityID) (types.Point3, bool)

	// OverlappingActors 返回与 box 相交的角色（排除 self），按 ID 升序
	OverlappingActors(box types.Box, self ecs.EntityID) []ecs.EntityID

	// FloorMaterialAt 返回支撑该位置的地面材质，无支撑时返回 ""
	FloorMaterialAt(pos, dims types.Point3, self ecs.EntityID) string
}

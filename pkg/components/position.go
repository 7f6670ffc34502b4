package components

import "github.com/gonewx/yack/pkg/types"

// PositionComponent 世界坐标
// 对于带 CollisionComponent 的实体，坐标为碰撞盒最小角。
type PositionComponent struct {
	X, Y, Z float64
}

// Point 以 Point3 形式返回坐标
func (p *PositionComponent) Point() types.Point3 {
	return types.Point3{X: p.X, Y: p.Y, Z: p.Z}
}

// Set 设置坐标
func (p *PositionComponent) Set(pt types.Point3) {
	p.X, p.Y, p.Z = pt.X, pt.Y, pt.Z
}

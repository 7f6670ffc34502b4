// Package types 定义共享的基础类型
package types

import "math"

// Point3 世界坐标（x 向右，y 向下/向屏幕内，z 向上）
type Point3 struct {
	X, Y, Z float64
}

// Add 向量相加
func (p Point3) Add(o Point3) Point3 {
	return Point3{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

// Sub 向量相减
func (p Point3) Sub(o Point3) Point3 {
	return Point3{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}

// Scale 按标量缩放
func (p Point3) Scale(s float64) Point3 {
	return Point3{p.X * s, p.Y * s, p.Z * s}
}

// Length 向量长度
func (p Point3) Length() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// Lerp 在 p 与 o 之间线性插值，t ∈ [0, 1]
func (p Point3) Lerp(o Point3, t float64) Point3 {
	return Point3{
		p.X + (o.X-p.X)*t,
		p.Y + (o.Y-p.Y)*t,
		p.Z + (o.Z-p.Z)*t,
	}
}

// Box 轴对齐包围盒
//
// 位置为盒子的最小角（x, y, z 最小的那个角），
// 与 world.BoxWorld 的碰撞约定一致。
type Box struct {
	Pos  Point3
	Dims Point3
}

// Max 返回盒子的最大角
func (b Box) Max() Point3 {
	return b.Pos.Add(b.Dims)
}

// Translate 返回平移后的盒子
func (b Box) Translate(d Point3) Box {
	return Box{Pos: b.Pos.Add(d), Dims: b.Dims}
}

// Overlaps 检查两个盒子是否相交（贴边不算相交）
func (b Box) Overlaps(o Box) bool {
	bm, om := b.Max(), o.Max()
	return b.Pos.X < om.X && bm.X > o.Pos.X &&
		b.Pos.Y < om.Y && bm.Y > o.Pos.Y &&
		b.Pos.Z < om.Z && bm.Z > o.Pos.Z
}

// Touches 检查两个盒子是否相交或贴边
func (b Box) Touches(o Box) bool {
	bm, om := b.Max(), o.Max()
	return b.Pos.X <= om.X && bm.X >= o.Pos.X &&
		b.Pos.Y <= om.Y && bm.Y >= o.Pos.Y &&
		b.Pos.Z <= om.Z && bm.Z >= o.Pos.Z
}

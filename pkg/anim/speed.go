package anim

import "github.com/gonewx/yack/pkg/types"

// MaxSpeed 下落和抛射速度的上限（每帧世界距离）
const MaxSpeed = 32.0

// ClampSpeed 把速度向量的长度限制在 limit 以内
// 按比例整体缩放，方向不变；不会逐分量截断。
func ClampSpeed(v types.Point3, limit float64) types.Point3 {
	length := v.Length()
	if length <= limit || length == 0 {
		return v
	}
	return v.Scale(limit / length)
}

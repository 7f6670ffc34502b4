package components

import "github.com/gonewx/yack/pkg/types"

// CollisionComponent 定义实体的三维碰撞盒
// 用于碰撞世界的扫掠检测、落地检测和攻击判定。
type CollisionComponent struct {
	Dims     types.Point3 // 碰撞盒尺寸（x 宽, y 深, z 高）
	Solid    bool         // 是否阻挡其他实体移动
	Floor    bool         // 顶面是否可以站立
	Material string       // 地面材质（"stone"、"wood"...），用于脚步声选择
}

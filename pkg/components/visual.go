package components

// VisualComponent 渲染相关的可补间属性
// AlphaTo、RotateTo、ScaleTo、OffsetTo 等马达直接修改这些字段。
type VisualComponent struct {
	Alpha    float64 // 透明度 [0, 1]
	Rotation float64 // 旋转角度（度）
	Scale    float64 // 统一缩放
	OffsetX  float64 // 渲染偏移（不影响碰撞）
	OffsetY  float64
}

// NewVisualComponent 创建默认可见的视觉组件
func NewVisualComponent() *VisualComponent {
	return &VisualComponent{Alpha: 1, Scale: 1}
}

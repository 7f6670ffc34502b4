package motor

import "github.com/gonewx/yack/pkg/types"

// Positioner 可读写世界坐标的对象（如 *components.PositionComponent）
type Positioner interface {
	Point() types.Point3
	Set(types.Point3)
}

// MoveTo 把对象移动到绝对坐标 to
func MoveTo(target Positioner, to types.Point3, duration float64, method InterpolationMethod) Motor {
	tw := NewTween(target.Point(), to, duration, method, LerpPoint)
	return NewTweenMotor(tw, target.Set)
}

// OffsetTo 把对象相对当前位置移动 delta
func OffsetTo(target Positioner, delta types.Point3, duration float64, method InterpolationMethod) Motor {
	from := target.Point()
	tw := NewTween(from, from.Add(delta), duration, method, LerpPoint)
	return NewTweenMotor(tw, target.Set)
}

// floatTo 对 float64 字段补间
func floatTo(field *float64, to, duration float64, method InterpolationMethod) Motor {
	tw := NewTween(*field, to, duration, method, Lerp)
	return NewTweenMotor(tw, func(v float64) { *field = v })
}

// AlphaTo 透明度补间，目标值限制在 [0, 1]
func AlphaTo(alpha *float64, to, duration float64, method InterpolationMethod) Motor {
	return floatTo(alpha, clamp01(to), duration, method)
}

// RotateTo 旋转角度补间（度）
func RotateTo(rotation *float64, to, duration float64, method InterpolationMethod) Motor {
	return floatTo(rotation, to, duration, method)
}

// ScaleTo 缩放补间
func ScaleTo(scale *float64, to, duration float64, method InterpolationMethod) Motor {
	return floatTo(scale, to, duration, method)
}

package motor

import "math"

// InterpolationKind 缓动曲线类型
type InterpolationKind int

const (
	Linear InterpolationKind = iota
	EaseIn
	EaseInOut
	EaseOut
	SlowEaseIn
	SlowEaseOut
)

// InterpolationMethod 缓动方式
// Loop 到达终点后从头再来；Swing 到达终点后往回走（乒乓）。
type InterpolationMethod struct {
	Kind  InterpolationKind
	Loop  bool
	Swing bool
}

// Ease 对进度 t ∈ [0, 1] 应用缓动曲线
func (m InterpolationMethod) Ease(t float64) float64 {
	switch m.Kind {
	case EaseIn:
		// f(t) = t³
		return t * t * t
	case EaseOut:
		// f(t) = 1 - (1-t)³
		return 1 - math.Pow(1-t, 3)
	case EaseInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 3)/2
	case SlowEaseIn:
		// f(t) = 1 - cos(tπ/2)
		return 1 - math.Cos(t*math.Pi/2)
	case SlowEaseOut:
		// f(t) = sin(tπ/2)
		return math.Sin(t * math.Pi / 2)
	}
	return t
}

// ParseInterpolation 解析脚本中的缓动方式编号
// 低 4 位为曲线类型，0x10 为循环，0x20 为往返。
func ParseInterpolation(v int) InterpolationMethod {
	return InterpolationMethod{
		Kind:  InterpolationKind(v & 0x0F),
		Loop:  v&0x10 != 0,
		Swing: v&0x20 != 0,
	}
}

// Lerp 线性插值，t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

package motor

import "github.com/gonewx/yack/pkg/types"

// Tween 在 From 与 To 之间按时长插值
//
// 非循环补间在时长结束后停止；Loop/Swing 补间永不停止，只能被外部禁用。
type Tween[T any] struct {
	From, To T
	Value    T

	duration float64
	elapsed  float64
	method   InterpolationMethod
	lerp     func(a, b T, t float64) T
	forward  bool
}

// NewTween 创建补间
// 参数:
//   - from, to: 起止值
//   - duration: 时长（秒）
//   - method: 缓动方式
//   - lerp: 值类型的线性插值函数
func NewTween[T any](from, to T, duration float64, method InterpolationMethod, lerp func(a, b T, t float64) T) *Tween[T] {
	return &Tween[T]{
		From:     from,
		To:       to,
		Value:    from,
		duration: duration,
		method:   method,
		lerp:     lerp,
		forward:  true,
	}
}

// Running 补间是否仍在进行
func (tw *Tween[T]) Running() bool {
	if tw.method.Loop || tw.method.Swing {
		return true
	}
	return tw.elapsed < tw.duration
}

// Update 推进 dt 秒并刷新 Value
func (tw *Tween[T]) Update(dt float64) {
	if !tw.Running() {
		return
	}
	tw.elapsed += dt

	f := 1.0
	if tw.duration > 0 {
		f = clamp01(tw.elapsed / tw.duration)
	}
	if !tw.forward {
		f = 1 - f
	}
	if tw.elapsed > tw.duration && (tw.method.Loop || tw.method.Swing) {
		tw.elapsed -= tw.duration
		if tw.method.Swing {
			tw.forward = !tw.forward
		}
	}
	tw.Value = tw.lerp(tw.From, tw.To, tw.method.Ease(f))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// LerpPoint Point3 的线性插值
func LerpPoint(a, b types.Point3, t float64) types.Point3 {
	return a.Lerp(b, t)
}

// tweenMotor 把补间包装成马达，每帧把当前值写回
type tweenMotor[T any] struct {
	state
	tween *Tween[T]
	apply func(T)
}

// NewTweenMotor 创建补间马达
// 参数:
//   - tween: 补间
//   - apply: 每帧把 tween.Value 写回目标
func NewTweenMotor[T any](tween *Tween[T], apply func(T)) Motor {
	return &tweenMotor[T]{tween: tween, apply: apply}
}

func (m *tweenMotor[T]) Update(dt float64) {
	if m.disabled {
		return
	}
	m.tween.Update(dt)
	if m.apply != nil {
		m.apply(m.tween.Value)
	}
	if !m.tween.Running() {
		m.Disable()
	}
}

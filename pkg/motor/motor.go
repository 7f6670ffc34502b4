// Package motor 提供可恢复、可取消的定时任务（马达）
//
// 马达每帧由宿主以 dt 调用 Update 推进；完成后 IsEnabled 返回 false。
// Disable 可以在任何时刻调用，只修改马达自身状态，不会回调拥有者。
package motor

// Motor 一个按帧推进的定时任务
type Motor interface {
	// Update 推进 dt 秒
	Update(dt float64)
	// IsEnabled 是否仍在运行
	IsEnabled() bool
	// Disable 停止马达
	Disable()
}

// state 内嵌到各个马达中，提供 IsEnabled/Disable
type state struct {
	disabled bool
}

func (s *state) IsEnabled() bool { return !s.disabled }
func (s *state) Disable()        { s.disabled = true }

// Pause 计时马达：运行指定秒数后停止
type Pause struct {
	state
	duration float64
	elapsed  float64
}

// NewPause 创建计时马达
// 参数:
//   - seconds: 持续时间，<= 0 时第一次 Update 即结束
func NewPause(seconds float64) *Pause {
	return &Pause{duration: seconds}
}

// Update 推进计时
func (p *Pause) Update(dt float64) {
	if p.disabled {
		return
	}
	p.elapsed += dt
	if p.elapsed >= p.duration {
		p.Disable()
	}
}

// Remaining 剩余时间（秒）
func (p *Pause) Remaining() float64 {
	if p.elapsed >= p.duration {
		return 0
	}
	return p.duration - p.elapsed
}

// WaitWhile 条件等待马达：每帧轮询一次条件，条件为假时停止
type WaitWhile struct {
	state
	cond func() bool
}

// NewWaitWhile 创建条件等待马达
func NewWaitWhile(cond func() bool) *WaitWhile {
	return &WaitWhile{cond: cond}
}

// Update 轮询条件
func (w *WaitWhile) Update(dt float64) {
	if w.disabled {
		return
	}
	if w.cond == nil || !w.cond() {
		w.Disable()
	}
}

// Callback 回调马达：第一次 Update 时执行回调并结束
type Callback struct {
	state
	fn func()
}

// NewCallback 创建回调马达
func NewCallback(fn func()) *Callback {
	return &Callback{fn: fn}
}

// Update 执行回调
func (c *Callback) Update(dt float64) {
	if c.disabled {
		return
	}
	c.Disable()
	if c.fn != nil {
		c.fn()
	}
}

// Serial 顺序马达：依次运行子马达，全部结束后停止
type Serial struct {
	state
	motors []Motor
	index  int
}

// NewSerial 创建顺序马达，nil 子马达会被忽略
func NewSerial(motors ...Motor) *Serial {
	s := &Serial{}
	for _, m := range motors {
		if m != nil {
			s.motors = append(s.motors, m)
		}
	}
	return s
}

// Update 推进当前子马达；子马达结束后下一帧切换到下一个
func (s *Serial) Update(dt float64) {
	if s.disabled {
		return
	}
	if s.index >= len(s.motors) {
		s.Disable()
		return
	}
	current := s.motors[s.index]
	current.Update(dt)
	if !current.IsEnabled() {
		s.index++
		if s.index >= len(s.motors) {
			s.Disable()
		}
	}
}

// Disable 停止顺序马达及当前子马达
func (s *Serial) Disable() {
	if s.disabled {
		return
	}
	s.disabled = true
	if s.index < len(s.motors) {
		s.motors[s.index].Disable()
	}
}

// Current 当前正在运行的子马达，全部结束时返回 nil
func (s *Serial) Current() Motor {
	if s.index >= len(s.motors) {
		return nil
	}
	return s.motors[s.index]
}

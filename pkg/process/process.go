// Package process 提供协作式、按帧驱动的进程内核
//
// 每个进程每帧被调用一次 Run；进程通过 Terminate 结束，
// 通过 WaitFor 等待另一个进程结束后再继续运行。没有线程，没有协程。
package process

import "github.com/gonewx/yack/pkg/ecs"

// PID 进程编号，0 表示无效
type PID uint16

// Process 内核调度的进程
type Process interface {
	// Run 执行一帧
	Run()
	// Terminate 结束进程，可在任何时刻重复调用
	Terminate()
	// Info 返回进程的公共状态
	Info() *Base
}

// Base 进程公共状态，嵌入到具体进程中
type Base struct {
	pid        PID
	itemNum    ecs.EntityID
	ptype      uint16
	terminated bool
	failed     bool
	waitingFor PID
}

// NewBase 创建进程公共状态
// 参数:
//   - item: 进程作用的实体
//   - ptype: 进程类型，用于 FindProcess
func NewBase(item ecs.EntityID, ptype uint16) Base {
	return Base{itemNum: item, ptype: ptype}
}

// Info 实现 Process
func (b *Base) Info() *Base { return b }

// PID 进程编号（加入内核后才有效）
func (b *Base) PID() PID { return b.pid }

// ItemNum 进程作用的实体
func (b *Base) ItemNum() ecs.EntityID { return b.itemNum }

// Type 进程类型
func (b *Base) Type() uint16 { return b.ptype }

// Terminate 标记进程结束
// 需要清理的进程类型应覆盖 Terminate，并在最后调用 Base.Terminate。
func (b *Base) Terminate() { b.terminated = true }

// IsTerminated 进程是否已结束
func (b *Base) IsTerminated() bool { return b.terminated }

// MarkFailed 标记进程失败（不结束进程，由调用方随后 Terminate）
func (b *Base) MarkFailed() { b.failed = true }

// IsFailed 进程是否以失败结束
func (b *Base) IsFailed() bool { return b.failed }

// WaitFor 在 pid 结束前暂停本进程
func (b *Base) WaitFor(pid PID) { b.waitingFor = pid }

// WaitingFor 正在等待的进程，0 表示不等待
func (b *Base) WaitingFor() PID { return b.waitingFor }

// CallbackProcess 运行一次回调后结束的进程
type CallbackProcess struct {
	Base
	fn func()
}

// NewCallbackProcess 创建回调进程
func NewCallbackProcess(item ecs.EntityID, ptype uint16, fn func()) *CallbackProcess {
	return &CallbackProcess{Base: NewBase(item, ptype), fn: fn}
}

// Run 执行回调并结束
func (p *CallbackProcess) Run() {
	if p.fn != nil {
		p.fn()
	}
	p.Terminate()
}

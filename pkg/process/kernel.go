package process

import (
	"log"

	"github.com/gonewx/yack/pkg/ecs"
)

// AnyType FindProcess 中匹配任意进程类型
const AnyType uint16 = 0xFFFF

// PIDAllocator 分配进程编号，回收已结束进程的编号
type PIDAllocator struct {
	used map[PID]bool
	next PID
}

// NewPIDAllocator 创建编号分配器，编号从 1 开始
func NewPIDAllocator() *PIDAllocator {
	return &PIDAllocator{used: make(map[PID]bool), next: 1}
}

// Allocate 分配一个未使用的编号；全部用尽时返回 0
func (a *PIDAllocator) Allocate() PID {
	for i := 0; i < 0xFFFF; i++ {
		pid := a.next
		a.next++
		if a.next == 0 {
			a.next = 1
		}
		if !a.used[pid] {
			a.used[pid] = true
			return pid
		}
	}
	return 0
}

// Release 归还编号
func (a *PIDAllocator) Release(pid PID) {
	delete(a.used, pid)
}

// Kernel 进程调度器
type Kernel struct {
	procs []Process
	pids  *PIDAllocator
	tick  uint64
}

// NewKernel 创建内核
func NewKernel() *Kernel {
	return &Kernel{pids: NewPIDAllocator()}
}

// AddProcess 加入进程，返回分配的编号
// 新进程从下一帧开始运行。
func (k *Kernel) AddProcess(p Process) PID {
	pid := k.pids.Allocate()
	if pid == 0 {
		log.Printf("[Kernel] Warning: out of process ids, dropping process type %#x", p.Info().Type())
		p.Info().MarkFailed()
		p.Terminate()
		return 0
	}
	p.Info().pid = pid
	k.procs = append(k.procs, p)
	return pid
}

// RunProcesses 运行一帧：依次运行所有未结束、未处于等待的进程，然后回收已结束的进程
func (k *Kernel) RunProcesses() {
	k.tick++
	count := len(k.procs)
	for i := 0; i < count; i++ {
		p := k.procs[i]
		info := p.Info()
		if info.terminated {
			continue
		}
		if info.waitingFor != 0 {
			if k.alive(info.waitingFor) {
				continue
			}
			info.waitingFor = 0
		}
		p.Run()
	}
	k.reap()
}

// reap 移除已结束的进程
func (k *Kernel) reap() {
	kept := k.procs[:0]
	for _, p := range k.procs {
		if p.Info().terminated {
			k.pids.Release(p.Info().pid)
			continue
		}
		kept = append(kept, p)
	}
	for i := len(kept); i < len(k.procs); i++ {
		k.procs[i] = nil
	}
	k.procs = kept
}

func (k *Kernel) alive(pid PID) bool {
	p := k.GetProcess(pid)
	return p != nil && !p.Info().terminated
}

// GetProcess 按编号查找进程
func (k *Kernel) GetProcess(pid PID) Process {
	for _, p := range k.procs {
		if p.Info().pid == pid {
			return p
		}
	}
	return nil
}

// FindProcess 查找作用于 item、类型为 ptype 的第一个未结束进程
// item 为 0 时匹配任意实体，ptype 为 AnyType 时匹配任意类型。
func (k *Kernel) FindProcess(item ecs.EntityID, ptype uint16) Process {
	for _, p := range k.procs {
		if matches(p.Info(), item, ptype) {
			return p
		}
	}
	return nil
}

// FindProcesses 按加入顺序返回所有匹配的未结束进程
func (k *Kernel) FindProcesses(item ecs.EntityID, ptype uint16) []Process {
	var found []Process
	for _, p := range k.procs {
		if matches(p.Info(), item, ptype) {
			found = append(found, p)
		}
	}
	return found
}

func matches(info *Base, item ecs.EntityID, ptype uint16) bool {
	if info.terminated {
		return false
	}
	if item != 0 && info.itemNum != item {
		return false
	}
	return ptype == AnyType || info.ptype == ptype
}

// KillProcesses 结束作用于 item、类型为 ptype 的所有进程
func (k *Kernel) KillProcesses(item ecs.EntityID, ptype uint16) {
	for _, p := range k.FindProcesses(item, ptype) {
		p.Terminate()
	}
}

// NumProcesses 未结束进程数
func (k *Kernel) NumProcesses() int {
	n := 0
	for _, p := range k.procs {
		if !p.Info().terminated {
			n++
		}
	}
	return n
}

// Tick 已运行的帧数
func (k *Kernel) Tick() uint64 {
	return k.tick
}

// Package scripting 提供对话和游戏逻辑使用的 Lua 脚本执行器
//
// 所有入口都不会把脚本错误抛给调用方：失败时记录日志并返回 false。
// 执行器只能在游戏循环所在的 goroutine 中使用。
package scripting

import (
	"fmt"
	"log"

	lua "github.com/yuin/gopher-lua"
)

// GlobalTable 脚本共享状态所在的全局表名（对话条件中写作 g.xxx）
const GlobalTable = "g"

// Executor 封装一个 gopher-lua 虚拟机
type Executor struct {
	vm *lua.LState
}

// NewExecutor 创建执行器，并创建空的全局状态表 g
func NewExecutor() *Executor {
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal(GlobalTable, vm.NewTable())
	return &Executor{vm: vm}
}

// Close 关闭虚拟机
func (e *Executor) Close() {
	e.vm.Close()
}

// Load 执行一段初始化脚本（定义函数、设置初始状态）
//
// 参数:
//   - name: 脚本名称，仅用于错误信息
//   - src: 脚本源码
//
// 返回:
//   - error: 编译或运行失败
func (e *Executor) Load(name, src string) error {
	fn, err := e.vm.LoadString(src)
	if err != nil {
		return fmt.Errorf("failed to compile script %s: %w", name, err)
	}
	e.vm.Push(fn)
	if err := e.vm.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("failed to run script %s: %w", name, err)
	}
	return nil
}

// Exec 执行代码片段
// 返回: 成功返回 true；编译或运行失败时记录日志并返回 false
func (e *Executor) Exec(code string) bool {
	if err := e.vm.DoString(code); err != nil {
		log.Printf("[Executor] Warning: failed to exec %q: %v", code, err)
		return false
	}
	return true
}

// eval 求值表达式，返回结果值
func (e *Executor) eval(expr string) (lua.LValue, bool) {
	fn, err := e.vm.LoadString("return " + expr)
	if err != nil {
		log.Printf("[Executor] Warning: failed to compile %q: %v", expr, err)
		return lua.LNil, false
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}); err != nil {
		log.Printf("[Executor] Warning: failed to eval %q: %v", expr, err)
		return lua.LNil, false
	}
	v := e.vm.Get(-1)
	e.vm.Pop(1)
	return v, true
}

// EvalBool 求值条件表达式
// nil 和 false 为假，数字 0 也视为假；求值失败返回 false
func (e *Executor) EvalBool(expr string) bool {
	v, ok := e.eval(expr)
	if !ok {
		return false
	}
	if n, isNum := v.(lua.LNumber); isNum {
		return n != 0
	}
	return lua.LVAsBool(v)
}

// EvalInt 求值整数表达式
// 返回: 结果不是数字或求值失败时 ok 为 false
func (e *Executor) EvalInt(expr string) (int, bool) {
	v, ok := e.eval(expr)
	if !ok {
		return 0, false
	}
	n, isNum := v.(lua.LNumber)
	if !isNum {
		return 0, false
	}
	return int(n), true
}

// Call 调用无参数的全局函数
// 返回: 函数不存在或运行失败时返回 false
func (e *Executor) Call(name string) bool {
	return e.CallWith(name)
}

// CallWith 带参数调用全局函数（忽略返回值）
func (e *Executor) CallWith(name string, args ...lua.LValue) bool {
	fn := e.vm.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return false
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, args...); err != nil {
		log.Printf("[Executor] Warning: failed to call %s: %v", name, err)
		return false
	}
	return true
}

// RegisterFunc 注册一个可被脚本调用的 Go 函数
func (e *Executor) RegisterFunc(name string, fn lua.LGFunction) {
	e.vm.SetGlobal(name, e.vm.NewFunction(fn))
}

// SetGlobal 设置全局变量
func (e *Executor) SetGlobal(name string, v lua.LValue) {
	e.vm.SetGlobal(name, v)
}

// SetState 设置全局状态表 g 中的字段
func (e *Executor) SetState(key string, v lua.LValue) {
	if t, ok := e.vm.GetGlobal(GlobalTable).(*lua.LTable); ok {
		t.RawSetString(key, v)
	}
}

// State 读取全局状态表 g 中的字段
func (e *Executor) State(key string) lua.LValue {
	if t, ok := e.vm.GetGlobal(GlobalTable).(*lua.LTable); ok {
		return t.RawGetString(key)
	}
	return lua.LNil
}

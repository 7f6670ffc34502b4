package dialog

import (
	"image/color"

	"github.com/gonewx/yack/pkg/motor"
)

// Target 对话引擎驱动的外部对象（通常是场景中的角色）
//
// Say、WaitWhile、Pause 返回的马达会成为对话的阻塞动作，
// 直到马达停止对话才继续执行。
type Target interface {
	ActorColor(actor string) color.RGBA
	ActorColorHover(actor string) color.RGBA
	Say(actor, text string) motor.Motor
	WaitWhile(cond string) motor.Motor
	Shutup()
	Pause(seconds float64) motor.Motor
	// ExecCond 求值条件代码；求值失败必须返回 false
	ExecCond(code string) bool
}

// ScriptHost 执行对话中的脚本代码
type ScriptHost interface {
	// Exec 执行代码片段，失败时返回 false（不会 panic）
	Exec(code string) bool
	// Call 调用全局函数，函数不存在时返回 false
	Call(name string) bool
}

// Loader 按名称读取对话文件
type Loader interface {
	ReadDialog(name string) ([]byte, error)
}

// TextResolver 把文本 ID（"@12345"）解析为显示文字
type TextResolver interface {
	Resolve(text string) string
}

// PointerInput 选项悬停和点击所需的指针输入
type PointerInput interface {
	Position() (x, y float64)
	JustClicked() bool
}

// TextMeasurer 测量文字渲染宽度
type TextMeasurer interface {
	Measure(s string) float64
}

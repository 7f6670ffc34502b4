package components

import (
	"image/color"

	"github.com/gonewx/yack/pkg/types"
)

// ActorComponent 可动画、可说话的角色数据
// 动画驱动进程读写其中的朝向、锁定、上一个动画等状态，用于动画之间的衔接。
type ActorComponent struct {
	Key   string // 角色键名，对话脚本中以此称呼角色，如 "ray"
	Shape string // 外形名称，与动画序列组合定位动画动作数据

	Dir       types.Direction    // 当前朝向
	Frame     int                // 当前外形帧
	Flipped   bool               // 当前帧是否水平翻转
	FirstStep bool               // 两步步态的左右脚交替标记
	LastAnim  types.AnimSequence // 上一次播放的动画序列

	AnimLocked bool // 已被某个动画驱动进程占用（同一时刻只允许一个驱动）
	InFastArea bool // 是否位于全精度模拟区域内

	TalkColor  color.RGBA // 对白文字颜色
	HoverColor color.RGBA // 对话选项悬停颜色
}

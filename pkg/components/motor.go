package components

import "github.com/gonewx/yack/pkg/motor"

// MotorComponent 挂在实体上的马达列表
// 由 MotorSystem 每帧推进，禁用的马达会被移除。
type MotorComponent struct {
	Motors []motor.Motor
}

// Add 追加一个马达
func (m *MotorComponent) Add(mt motor.Motor) {
	m.Motors = append(m.Motors, mt)
}

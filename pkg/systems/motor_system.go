package systems

import (
	"github.com/gonewx/yack/pkg/components"
	"github.com/gonewx/yack/pkg/ecs"
	"github.com/gonewx/yack/pkg/motor"
)

// MotorSystem 推进实体上挂载的马达
// 停止的马达在同一帧被移除；马达列表为空的组件保留，方便再次添加
type MotorSystem struct {
	entityManager *ecs.EntityManager
}

// NewMotorSystem 创建马达系统
func NewMotorSystem(em *ecs.EntityManager) *MotorSystem {
	return &MotorSystem{
		entityManager: em,
	}
}

// Add 给实体挂载一个马达，实体没有 MotorComponent 时自动添加
func (s *MotorSystem) Add(id ecs.EntityID, m motor.Motor) {
	mc, ok := ecs.GetComponent[*components.MotorComponent](s.entityManager, id)
	if !ok {
		mc = &components.MotorComponent{}
		ecs.AddComponent(s.entityManager, id, mc)
	}
	mc.Add(m)
}

// Update 推进所有马达 deltaTime 秒
func (s *MotorSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.MotorComponent](s.entityManager)

	for _, id := range entities {
		if s.entityManager.IsMarkedForDestroy(id) {
			continue
		}
		mc, ok := ecs.GetComponent[*components.MotorComponent](s.entityManager, id)
		if !ok {
			continue
		}

		// 马达在 Update 中可能给同一实体添加新马达，先取快照
		current := mc.Motors
		mc.Motors = nil
		kept := current[:0]
		for _, m := range current {
			if m.IsEnabled() {
				m.Update(deltaTime)
			}
			if m.IsEnabled() {
				kept = append(kept, m)
			}
		}
		mc.Motors = append(kept, mc.Motors...)
	}
}

// Count 实体上正在运行的马达数量
func (s *MotorSystem) Count(id ecs.EntityID) int {
	mc, ok := ecs.GetComponent[*components.MotorComponent](s.entityManager, id)
	if !ok {
		return 0
	}
	return len(mc.Motors)
}

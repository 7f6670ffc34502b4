package ecs

import (
	"fmt"
	"reflect"
	"sort"
)

// EntityID 是实体的唯一标识符
//
// 实体 ID 按类别落在固定区间内（参见 ids.go），
// 角色、房间、物体等都通过这个小整数句柄引用，不持有彼此的指针。
type EntityID uint64

// EntityManager 管理所有实体和组件
type EntityManager struct {
	ids *IDAllocator
	// 实体-组件映射: EntityID -> ComponentType -> Component实例
	components map[EntityID]map[reflect.Type]interface{}
	// 待删除的实体ID列表
	entitiesToDestroy []EntityID
}

// NewEntityManager 创建一个新的 EntityManager 实例
// 每个管理器拥有独立的 ID 分配器，测试之间互不影响。
func NewEntityManager() *EntityManager {
	return &EntityManager{
		ids:               NewIDAllocator(),
		components:        make(map[EntityID]map[reflect.Type]interface{}),
		entitiesToDestroy: make([]EntityID, 0),
	}
}

// CreateEntity 创建一个普通物体实体
// 返回: EntityID - 物体区间内的新 ID；区间耗尽时返回 0
func (em *EntityManager) CreateEntity() EntityID {
	id, err := em.CreateEntityOfKind(KindObject)
	if err != nil {
		return 0
	}
	return id
}

// CreateEntityOfKind 在指定类别的 ID 区间内创建实体
// 参数:
//   - kind: 实体类别（角色、房间、物体...）
//
// 返回:
//   - EntityID: 新实体 ID
//   - error: 该类别 ID 区间已耗尽
func (em *EntityManager) CreateEntityOfKind(kind IDKind) (EntityID, error) {
	id, err := em.ids.Next(kind)
	if err != nil {
		return 0, fmt.Errorf("failed to create entity: %w", err)
	}
	em.components[id] = make(map[reflect.Type]interface{})
	return id, nil
}

// Exists 检查实体是否仍然存在（包括已标记但尚未清理的实体）
func (em *EntityManager) Exists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// DestroyEntity 标记实体待删除(不立即删除)
func (em *EntityManager) DestroyEntity(id EntityID) {
	em.entitiesToDestroy = append(em.entitiesToDestroy, id)
}

// IsMarkedForDestroy 检查实体是否已被标记删除
func (em *EntityManager) IsMarkedForDestroy(id EntityID) bool {
	for _, marked := range em.entitiesToDestroy {
		if marked == id {
			return true
		}
	}
	return false
}

// AddComponent 为实体添加组件
func (em *EntityManager) AddComponent(id EntityID, component interface{}) {
	componentType := reflect.TypeOf(component)
	if compMap, exists := em.components[id]; exists {
		compMap[componentType] = component
	}
}

// RemoveComponent 从实体移除指定类型的组件
func (em *EntityManager) RemoveComponent(id EntityID, componentType reflect.Type) {
	if compMap, exists := em.components[id]; exists {
		delete(compMap, componentType)
	}
}

// GetComponent 获取实体的特定类型组件
func (em *EntityManager) GetComponent(id EntityID, componentType reflect.Type) (interface{}, bool) {
	if compMap, exists := em.components[id]; exists {
		if comp, found := compMap[componentType]; found {
			return comp, true
		}
	}
	return nil, false
}

// HasComponent 检查实体是否拥有特定类型组件
func (em *EntityManager) HasComponent(id EntityID, componentType reflect.Type) bool {
	if compMap, exists := em.components[id]; exists {
		_, found := compMap[componentType]
		return found
	}
	return false
}

// RemoveMarkedEntities 清理所有标记删除的实体
func (em *EntityManager) RemoveMarkedEntities() {
	for _, id := range em.entitiesToDestroy {
		delete(em.components, id)
	}
	em.entitiesToDestroy = em.entitiesToDestroy[:0] // 清空切片
}

// GetEntitiesWith 查询拥有指定组件类型组合的所有实体
// 参数: componentTypes ...reflect.Type - 需要的组件类型列表
// 返回: []EntityID - 满足条件的实体ID列表，按 ID 升序
func (em *EntityManager) GetEntitiesWith(componentTypes ...reflect.Type) []EntityID {
	result := make([]EntityID, 0)

	for id, compMap := range em.components {
		hasAll := true
		for _, ct := range componentTypes {
			if _, found := compMap[ct]; !found {
				hasAll = false
				break
			}
		}
		if hasAll {
			result = append(result, id)
		}
	}

	// map 遍历顺序不固定，碰撞检测等需要稳定的"第一个"结果
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 普通实体落在物体区间
	if !IsObject(id1) || !IsObject(id2) {
		t.Errorf("CreateEntity should allocate object ids, got %d, %d", id1, id2)
	}
	if id2 != id1+1 {
		t.Errorf("Object ids should be sequential, got %d then %d", id1, id2)
	}
}

func TestCreateEntityOfKind(t *testing.T) {
	em := NewEntityManager()

	actor, err := em.CreateEntityOfKind(KindActor)
	if err != nil {
		t.Fatalf("CreateEntityOfKind(KindActor) failed: %v", err)
	}
	room, err := em.CreateEntityOfKind(KindRoom)
	if err != nil {
		t.Fatalf("CreateEntityOfKind(KindRoom) failed: %v", err)
	}

	if !IsActor(actor) || IsRoom(actor) {
		t.Errorf("actor id %d classified wrongly", actor)
	}
	if !IsRoom(room) || IsActor(room) {
		t.Errorf("room id %d classified wrongly", room)
	}
	if !em.Exists(actor) || !em.Exists(room) {
		t.Error("created entities should exist")
	}
}

func TestIDAllocatorIndependent(t *testing.T) {
	// 两个管理器互不共享计数
	a := NewEntityManager()
	b := NewEntityManager()
	if a.CreateEntity() != b.CreateEntity() {
		t.Error("separate managers should allocate the same first id")
	}
}

func TestIDAllocatorExhausted(t *testing.T) {
	a := NewIDAllocator()
	a.next[KindActor] = idRanges[KindActor].end - 1

	if _, err := a.Next(KindActor); err != nil {
		t.Fatalf("last id in range should be allocated: %v", err)
	}
	if _, err := a.Next(KindActor); err == nil {
		t.Error("expected exhaustion error")
	}
	if _, err := a.Next(IDKind(99)); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		id   EntityID
		want IDKind
		ok   bool
	}{
		{"角色区间起点", 1000, KindActor, true},
		{"角色区间终点前", 1999, KindActor, true},
		{"房间区间起点", 2000, KindRoom, true},
		{"物体", 5000, KindObject, true},
		{"声音", 250000, KindSound, true},
		{"回调", 9000000, KindCallback, true},
		{"无效ID", 0, 0, false},
		{"超出所有区间", 10000000, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := KindOf(tt.id)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("KindOf(%d) = (%v, %v), want (%v, %v)", tt.id, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	pos := &testPositionComponent{X: 100, Y: 200}
	em.AddComponent(id, pos)

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestGenericComponentAPI(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 3, Y: 4})

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok || pos.X != 3 || pos.Y != 4 {
		t.Fatalf("GetComponent returned (%v, %v)", pos, ok)
	}
	if !HasComponent[*testPositionComponent](em, id) {
		t.Error("HasComponent should be true")
	}
	if HasComponent[*testVelocityComponent](em, id) {
		t.Error("HasComponent should be false for missing component")
	}

	RemoveComponent[*testPositionComponent](em, id)
	if _, ok := GetComponent[*testPositionComponent](em, id); ok {
		t.Error("component should be removed")
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Entity should still exist before cleanup")
	}
	if !em.IsMarkedForDestroy(id) {
		t.Error("Entity should be marked for destroy")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.IsMarkedForDestroy(id) {
		t.Error("Destroy list should be cleared")
	}
}

func TestGetEntitiesWithSorted(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	AddComponent(em, id1, &testPositionComponent{})
	AddComponent(em, id1, &testVelocityComponent{})

	id2 := em.CreateEntity()
	AddComponent(em, id2, &testPositionComponent{})

	id3 := em.CreateEntity()
	AddComponent(em, id3, &testVelocityComponent{})

	both := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("Expected [%d], got %v", id1, both)
	}

	withPos := GetEntitiesWith1[*testPositionComponent](em)
	if len(withPos) != 2 || withPos[0] != id1 || withPos[1] != id2 {
		t.Errorf("Expected [%d %d] in id order, got %v", id1, id2, withPos)
	}
}

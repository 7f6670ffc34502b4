package ecs

import "fmt"

// IDKind 实体类别，每个类别占用一段固定的 ID 区间
type IDKind int

const (
	KindActor IDKind = iota
	KindRoom
	KindObject
	KindLight
	KindSound
	KindThread
	KindCallback
	kindCount
)

// idRange 半开区间 [start, end)
type idRange struct {
	start EntityID
	end   EntityID
}

// idRanges 唯一的 ID 区间表，IsActor/IsRoom 等判断都以此为准
var idRanges = [kindCount]idRange{
	KindActor:    {1000, 2000},
	KindRoom:     {2000, 3000},
	KindObject:   {3000, 100000},
	KindLight:    {100000, 200000},
	KindSound:    {200000, 300000},
	KindThread:   {300000, 8000000},
	KindCallback: {8000000, 10000000},
}

var kindNames = [kindCount]string{"actor", "room", "object", "light", "sound", "thread", "callback"}

// String 返回类别名称
func (k IDKind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("IDKind(%d)", int(k))
	}
	return kindNames[k]
}

// IDAllocator 按类别分配实体 ID
//
// 分配器是普通值对象，由 EntityManager 持有，不存在进程级的全局计数器。
type IDAllocator struct {
	next [kindCount]EntityID
}

// NewIDAllocator 创建分配器，每个类别从区间起点开始
func NewIDAllocator() *IDAllocator {
	a := &IDAllocator{}
	for k := range a.next {
		a.next[k] = idRanges[k].start
	}
	return a
}

// Next 分配指定类别的下一个 ID
// 返回: 区间耗尽或类别非法时返回错误
func (a *IDAllocator) Next(kind IDKind) (EntityID, error) {
	if kind < 0 || kind >= kindCount {
		return 0, fmt.Errorf("unknown id kind %d", int(kind))
	}
	id := a.next[kind]
	if id >= idRanges[kind].end {
		return 0, fmt.Errorf("%s id range exhausted", kind)
	}
	a.next[kind]++
	return id, nil
}

// KindOf 返回 ID 所属的类别
func KindOf(id EntityID) (IDKind, bool) {
	for k, r := range idRanges {
		if id >= r.start && id < r.end {
			return IDKind(k), true
		}
	}
	return 0, false
}

// IsActor 判断 ID 是否属于角色区间
func IsActor(id EntityID) bool { return in(id, KindActor) }

// IsRoom 判断 ID 是否属于房间区间
func IsRoom(id EntityID) bool { return in(id, KindRoom) }

// IsObject 判断 ID 是否属于物体区间
func IsObject(id EntityID) bool { return in(id, KindObject) }

// IsLight 判断 ID 是否属于灯光区间
func IsLight(id EntityID) bool { return in(id, KindLight) }

// IsSound 判断 ID 是否属于声音区间
func IsSound(id EntityID) bool { return in(id, KindSound) }

func in(id EntityID, kind IDKind) bool {
	r := idRanges[kind]
	return id >= r.start && id < r.end
}

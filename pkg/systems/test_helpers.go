package systems

import (
	"github.com/gonewx/yack/pkg/components"
	"github.com/gonewx/yack/pkg/ecs"
	"github.com/gonewx/yack/pkg/process"
	"github.com/gonewx/yack/pkg/types"
)

// fakeSound 记录播放过的音效
// missing 中的音效视为不存在
type fakeSound struct {
	played  []string
	missing map[string]bool
}

func (f *fakeSound) PlaySound(soundID string) bool {
	if f.missing[soundID] {
		return false
	}
	f.played = append(f.played, soundID)
	return true
}

func (f *fakeSound) Has(soundID string) bool {
	return !f.missing[soundID]
}

// animCall 一次动画请求
type animCall struct {
	actor ecs.EntityID
	seq   types.AnimSequence
	dir   types.Direction
	hurl  bool
	vel   types.Point3
}

// fakeAnimator 记录动画请求
type fakeAnimator struct {
	calls []animCall
}

func (f *fakeAnimator) Die(actor ecs.EntityID, dir types.Direction) process.PID {
	f.calls = append(f.calls, animCall{actor: actor, seq: types.AnimDie, dir: dir})
	return process.PID(len(f.calls))
}

func (f *fakeAnimator) Hurl(actor ecs.EntityID, vel types.Point3, gravity float64) process.PID {
	f.calls = append(f.calls, animCall{actor: actor, hurl: true, vel: vel})
	return process.PID(len(f.calls))
}

// createTestActor 创建站在 (x, y, 0) 的测试角色
func createTestActor(em *ecs.EntityManager, x, y float64, dir types.Direction) ecs.EntityID {
	id, err := em.CreateEntityOfKind(ecs.KindActor)
	if err != nil {
		panic(err)
	}
	ecs.AddComponent(em, id, &components.ActorComponent{Key: "ray", Dir: dir})
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y, Z: 0})
	ecs.AddComponent(em, id, &components.CollisionComponent{Dims: types.Point3{X: 32, Y: 32, Z: 40}})
	return id
}

// createTestFloor 创建顶面在 z=0 的地面
func createTestFloor(em *ecs.EntityManager, x, width float64, material string) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: 0, Z: -8})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Dims:     types.Point3{X: width, Y: 500, Z: 8},
		Solid:    true,
		Floor:    true,
		Material: material,
	})
	return id
}

package systems

import (
	"testing"

	"github.com/gonewx/yack/pkg/anim"
	"github.com/gonewx/yack/pkg/components"
	"github.com/gonewx/yack/pkg/config"
	"github.com/gonewx/yack/pkg/ecs"
	"github.com/gonewx/yack/pkg/process"
	"github.com/gonewx/yack/pkg/types"
	"github.com/gonewx/yack/pkg/world"
)

func TestCombatReceiveHit(t *testing.T) {
	tests := []struct {
		name       string
		health     int
		wantHealth int
		wantDead   bool
		wantCall   animCall
	}{
		{"击退", 25, 15, false, animCall{hurl: true, vel: types.Point3{X: 4, Y: 0, Z: 6}}},
		{"死亡", 10, 0, true, animCall{seq: types.AnimDie, dir: types.DirWest}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			em := ecs.NewEntityManager()
			animator := &fakeAnimator{}
			system := NewCombatSystem(em, animator)

			attacker := createTestActor(em, 0, 0, types.DirEast)
			target := createTestActor(em, 40, 0, types.DirWest)
			health := &components.HealthComponent{CurrentHealth: tt.health, MaxHealth: 100}
			ecs.AddComponent(em, target, health)

			system.ReceiveHit(target, attacker, types.DirEast)

			if health.CurrentHealth != tt.wantHealth || health.Dead != tt.wantDead || health.HitCount != 1 {
				t.Errorf("health = %+v", health)
			}
			if len(animator.calls) != 1 {
				t.Fatalf("expected 1 anim call, got %v", animator.calls)
			}
			got := animator.calls[0]
			tt.wantCall.actor = target
			if got != tt.wantCall {
				t.Errorf("anim call = %+v, want %+v", got, tt.wantCall)
			}
		})
	}
}

func TestCombatIgnoresDeadAndHealthless(t *testing.T) {
	em := ecs.NewEntityManager()
	animator := &fakeAnimator{}
	system := NewCombatSystem(em, animator)

	attacker := createTestActor(em, 0, 0, types.DirEast)
	dead := createTestActor(em, 40, 0, types.DirWest)
	health := &components.HealthComponent{CurrentHealth: 0, MaxHealth: 100, Dead: true}
	ecs.AddComponent(em, dead, health)
	rock := em.CreateEntity()

	system.ReceiveHit(dead, attacker, types.DirEast)
	system.ReceiveHit(rock, attacker, types.DirEast)

	if health.HitCount != 0 || len(animator.calls) != 0 {
		t.Errorf("dead targets and entities without health must be ignored: %+v %v", health, animator.calls)
	}
}

func TestCombatWithoutAnimator(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewCombatSystem(em, nil)
	system.HitDamage = 30

	target := createTestActor(em, 40, 0, types.DirWest)
	health := &components.HealthComponent{CurrentHealth: 50, MaxHealth: 50}
	ecs.AddComponent(em, target, health)

	system.ReceiveHit(target, 0, types.DirNorth)
	system.ReceiveHit(target, 0, types.DirNorth)
	if !health.Dead || health.CurrentHealth != 0 || health.HitCount != 2 {
		t.Errorf("health = %+v", health)
	}
}

// addGroundAction 注册一个每帧前进 deltaDir、所有方向相同的落地动作
func addGroundAction(t *testing.T, actions *config.AnimActionConfig, seq types.AnimSequence, frames, deltaDir int) {
	t.Helper()
	list := make([]config.AnimFrame, frames)
	for i := range list {
		list[i] = config.AnimFrame{Frame: i, DeltaDir: deltaDir}
		list[i].SetFlags(config.FrameOnGround)
	}
	byDir := make(map[types.Direction][]config.AnimFrame)
	for d := types.DirNorth; d < types.DirInvalid; d++ {
		byDir[d] = list
	}
	action, err := config.NewAnimAction("avatar", seq, 0, 0, byDir)
	if err != nil {
		t.Fatal(err)
	}
	actions.AddAction(action)
}

func TestCombatLethalHitInterruptsWalk(t *testing.T) {
	em := ecs.NewEntityManager()
	createTestFloor(em, 0, 1000, "stone")
	actions := &config.AnimActionConfig{}
	addGroundAction(t, actions, types.AnimWalk, 8, 2)
	addGroundAction(t, actions, types.AnimDie, 3, 0)
	kernel := process.NewKernel()
	animator := anim.NewAnimator(em, world.NewBoxWorld(em), actions, kernel, anim.Hooks{})
	system := NewCombatSystem(em, animator)

	target := createTestActor(em, 100, 100, types.DirEast)
	actor, _ := ecs.GetComponent[*components.ActorComponent](em, target)
	actor.Shape = "avatar"
	actor.InFastArea = true
	actor.LastAnim = types.AnimStand
	health := &components.HealthComponent{CurrentHealth: 10, MaxHealth: 10}
	ecs.AddComponent(em, target, health)

	animator.DoAnim(target, types.AnimWalk, types.DirEast, 0)
	kernel.RunProcesses()
	if !actor.AnimLocked || actor.LastAnim != types.AnimWalk {
		t.Fatalf("walk should be playing, actor = %+v", actor)
	}

	system.ReceiveHit(target, 0, types.DirWest)
	for i := 0; i < 40; i++ {
		kernel.RunProcesses()
	}

	if !health.Dead {
		t.Fatal("target should be dead")
	}
	if actor.LastAnim != types.AnimDie || actor.Dir != types.DirEast {
		t.Errorf("expected die facing east, got %s/%s", actor.LastAnim, actor.Dir)
	}
	if actor.AnimLocked {
		t.Error("lock should be released after the death animation")
	}
	if kernel.NumProcesses() != 0 {
		t.Errorf("expected no processes, got %d", kernel.NumProcesses())
	}
}

package systems

import (
	"log"

	"github.com/gonewx/yack/pkg/components"
	"github.com/gonewx/yack/pkg/ecs"
	"github.com/gonewx/yack/pkg/process"
	"github.com/gonewx/yack/pkg/types"
)

// ActorAnimator 战斗系统需要的动画接口（通常为 *anim.Animator）
type ActorAnimator interface {
	Die(actor ecs.EntityID, dir types.Direction) process.PID
	Hurl(actor ecs.EntityID, vel types.Point3, gravity float64) process.PID
}

// 默认战斗参数
const (
	DefaultHitDamage = 10
	knockbackSpeed   = 4.0 // 水平击退速度（每 tick）
	knockbackLift    = 6.0 // 击退时的上抛速度
	knockbackGravity = 2.0
)

// CombatSystem 处理攻击动画的命中
// 被命中的实体扣减生命值；未死亡的角色被击退，死亡的角色面向攻击者播放死亡动画
type CombatSystem struct {
	entityManager *ecs.EntityManager
	animator      ActorAnimator // 可为 nil，此时只扣血

	// HitDamage 每次命中的伤害
	HitDamage int
}

// NewCombatSystem 创建战斗系统
func NewCombatSystem(em *ecs.EntityManager, animator ActorAnimator) *CombatSystem {
	return &CombatSystem{
		entityManager: em,
		animator:      animator,
		HitDamage:     DefaultHitDamage,
	}
}

// ReceiveHit 动画驱动进程在攻击帧命中 target 时调用
// dir 为攻击者的朝向
func (s *CombatSystem) ReceiveHit(target, attacker ecs.EntityID, dir types.Direction) {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, target)
	if !ok {
		log.Printf("[CombatSystem] Entity %d hit by %d has no health", target, attacker)
		return
	}
	if health.Dead {
		return
	}

	health.HitCount++
	health.CurrentHealth -= s.HitDamage
	log.Printf("[CombatSystem] Entity %d hit by %d: health %d/%d", target, attacker, health.CurrentHealth, health.MaxHealth)

	if health.CurrentHealth <= 0 {
		health.CurrentHealth = 0
		health.Dead = true
		log.Printf("[CombatSystem] Entity %d died", target)
		if s.animator != nil && ecs.IsActor(target) {
			s.animator.Die(target, dir.Opposite())
		}
		return
	}

	if s.animator != nil && ecs.IsActor(target) && dir.Valid() {
		vel := types.Point3{
			X: dir.XFactor() * knockbackSpeed,
			Y: dir.YFactor() * knockbackSpeed,
			Z: knockbackLift,
		}
		s.animator.Hurl(target, vel, knockbackGravity)
	}
}

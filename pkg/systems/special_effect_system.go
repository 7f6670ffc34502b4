package systems

import (
	"log"

	"github.com/gonewx/yack/pkg/components"
	"github.com/gonewx/yack/pkg/config"
	"github.com/gonewx/yack/pkg/ecs"
	"github.com/gonewx/yack/pkg/motor"
	"github.com/gonewx/yack/pkg/types"
	"github.com/gonewx/yack/pkg/world"
)

// SoundPlayer 播放音效（通常为 *game.AudioManager）
type SoundPlayer interface {
	PlaySound(soundID string) bool
	Has(soundID string) bool
}

// 特殊帧的音效 ID
const (
	defaultFootstep = "footstep"
	weaponDrawSound = "sword_draw"
	weaponSheathe   = "sword_sheathe"
	summonSound     = "summon"
)

// 召唤出的幽灵
const (
	ghostDistance = 32.0 // 出现在施法者前方的距离
	ghostFadeTime = 1.5  // 淡出时长（秒）
)

// SpecialEffectSystem 处理动画中带 special 标记的帧
//
// 根据动画序列选择效果：
//   - walk/run/advance/retreat: 按脚下地面材质播放脚步声（footstep_<材质>，没有该音效时为 footstep）
//   - readyWeapon/unreadyWeapon: 拔剑/收剑声
//   - cast: 在施法者前方召唤一个淡出的幽灵
type SpecialEffectSystem struct {
	entityManager *ecs.EntityManager
	world         world.CollisionWorld
	sound         SoundPlayer // 可为 nil
	motors        *MotorSystem

	footsteps bool
}

// NewSpecialEffectSystem 创建特殊效果系统
//
// 参数：
//   - em: 实体管理器
//   - w: 碰撞世界（查询地面材质）
//   - sound: 音效播放器，可为 nil
//   - motors: 马达系统（幽灵淡出）
func NewSpecialEffectSystem(em *ecs.EntityManager, w world.CollisionWorld, sound SoundPlayer, motors *MotorSystem) *SpecialEffectSystem {
	return &SpecialEffectSystem{
		entityManager: em,
		world:         w,
		sound:         sound,
		motors:        motors,
		footsteps:     true,
	}
}

// SetFootstepsEnabled 开关脚步声
func (s *SpecialEffectSystem) SetFootstepsEnabled(enabled bool) {
	s.footsteps = enabled
}

// DoSpecial 动画驱动进程在特殊帧调用
func (s *SpecialEffectSystem) DoSpecial(actor ecs.EntityID, action *config.AnimAction, frame *config.AnimFrame) {
	switch action.Sequence {
	case types.AnimWalk, types.AnimRun, types.AnimAdvance, types.AnimRetreat:
		if s.footsteps {
			s.play(s.FootstepSound(actor))
		}
	case types.AnimReadyWeapon:
		s.play(weaponDrawSound)
	case types.AnimUnreadyWeapon:
		s.play(weaponSheathe)
	case types.AnimCast:
		s.SummonGhost(actor)
	default:
		log.Printf("[SpecialEffectSystem] No special effect for %s frame %d", action.Sequence, frame.Frame)
	}
}

// FootstepSound 根据角色脚下的地面材质选择脚步声
func (s *SpecialEffectSystem) FootstepSound(actor ecs.EntityID) string {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, actor)
	if !ok {
		return defaultFootstep
	}
	var dims types.Point3
	if col, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, actor); ok {
		dims = col.Dims
	}
	material := s.world.FloorMaterialAt(pos.Point(), dims, actor)
	if material == "" {
		return defaultFootstep
	}
	sound := defaultFootstep + "_" + material
	if s.sound != nil && !s.sound.Has(sound) {
		return defaultFootstep
	}
	return sound
}

// SummonGhost 在角色前方生成一个幽灵，淡出后销毁
//
// 返回：
//   - ecs.EntityID: 幽灵实体，角色没有位置时返回 0
func (s *SpecialEffectSystem) SummonGhost(actor ecs.EntityID) ecs.EntityID {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, actor)
	if !ok {
		return 0
	}
	dir := types.DirSouth
	if a, ok := ecs.GetComponent[*components.ActorComponent](s.entityManager, actor); ok && a.Dir.Valid() {
		dir = a.Dir
	}

	ghost, err := s.entityManager.CreateEntityOfKind(ecs.KindObject)
	if err != nil {
		log.Printf("[SpecialEffectSystem] Warning: Failed to summon ghost: %v", err)
		return 0
	}
	ecs.AddComponent(s.entityManager, ghost, &components.PositionComponent{
		X: pos.X + dir.XFactor()*ghostDistance,
		Y: pos.Y + dir.YFactor()*ghostDistance,
		Z: pos.Z,
	})
	visual := components.NewVisualComponent()
	ecs.AddComponent(s.entityManager, ghost, visual)

	s.motors.Add(ghost, motor.NewSerial(
		motor.AlphaTo(&visual.Alpha, 0, ghostFadeTime, motor.InterpolationMethod{Kind: motor.EaseOut}),
		motor.NewCallback(func() { s.entityManager.DestroyEntity(ghost) }),
	))
	s.play(summonSound)

	log.Printf("[SpecialEffectSystem] Actor %d summoned ghost %d", actor, ghost)
	return ghost
}

func (s *SpecialEffectSystem) play(soundID string) {
	if s.sound != nil {
		s.sound.PlaySound(soundID)
	}
}

package anim

import (
	"github.com/gonewx/yack/pkg/config"
	"github.com/gonewx/yack/pkg/ecs"
	"github.com/gonewx/yack/pkg/types"
)

// SpecialHook 处理带 special 标记的帧（脚步声、拔剑声、召唤...）
type SpecialHook interface {
	DoSpecial(actor ecs.EntityID, action *config.AnimAction, frame *config.AnimFrame)
}

// HitHandler 攻击命中时通知被击中的实体
type HitHandler interface {
	ReceiveHit(target, attacker ecs.EntityID, dir types.Direction)
}

// SoundPlayer 播放帧音效
type SoundPlayer interface {
	PlaySFX(actor ecs.EntityID, sfx string)
}

// Hooks 动画驱动进程的外部钩子，任意字段可以为 nil
type Hooks struct {
	Special SpecialHook
	Hit     HitHandler
	Sound   SoundPlayer
}

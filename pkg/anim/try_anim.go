package anim

import (
	"github.com/gonewx/yack/pkg/config"
	"github.com/gonewx/yack/pkg/ecs"
	"github.com/gonewx/yack/pkg/types"
	"github.com/gonewx/yack/pkg/world"
)

// AnimResult 模拟播放的结果
type AnimResult int

const (
	// AnimFailure 无法播放，或被阻挡而中断
	AnimFailure AnimResult = iota
	// AnimSuccess 可以完整播放
	AnimSuccess
	// AnimEndOffLand 可以播放，但结束时悬空
	AnimEndOffLand
)

func (r AnimResult) String() string {
	switch r {
	case AnimSuccess:
		return "success"
	case AnimEndOffLand:
		return "end-off-land"
	}
	return "failure"
}

// TryAnim 在不移动角色的前提下模拟一次播放
//
// 参数:
//   - steps: 最多模拟的帧数，0 表示模拟到结束
//   - state: 可选的衔接快照；非 nil 时从快照开始模拟，并写回模拟结束时的状态
//
// 结束位置没有支撑时返回 AnimEndOffLand，即使动作没有落地帧。
func TryAnim(em *ecs.EntityManager, w world.CollisionWorld, actions ActionSource, actor ecs.EntityID, seq types.AnimSequence, dir types.Direction, steps int, state *TrackerState) AnimResult {
	tracker := NewAnimationTracker(em, w, actions)
	if !tracker.Init(actor, seq, dir, state) {
		return AnimFailure
	}

	for n := 0; (steps == 0 || n < steps) && tracker.Step(); n++ {
	}

	if tracker.IsBlocked() && !tracker.Action().HasFlags(config.ActionUnstoppable) {
		return AnimFailure
	}
	if state != nil {
		tracker.UpdateState(state)
	}
	if tracker.IsUnsupported() {
		return AnimEndOffLand
	}
	if !w.PositionInfo(tracker.Position(), tracker.dims, actor).Supported {
		return AnimEndOffLand
	}
	return AnimSuccess
}

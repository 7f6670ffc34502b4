package config

import (
	"strings"
	"testing"

	"github.com/gonewx/yack/pkg/types"
)

const testAnimYAML = `
shapes:
  avatar:
    walk:
      frameRepeat: 1
      flags: [looping, twostep]
      frames:
        e:
          - {frame: 0, deltaDir: 2, flags: [onground]}
          - {frame: 1, deltaDir: 2, flags: [onground, special]}
          - {frame: 2, deltaDir: 2, flags: [onground]}
          - {frame: 3, deltaDir: 2, flags: [onground, special]}
        w:
          - {frame: 4, deltaDir: 2, flags: [onground]}
          - {frame: 5, deltaDir: 2, flags: [onground, special]}
          - {frame: 6, deltaDir: 2, flags: [onground]}
          - {frame: 7, deltaDir: 2, flags: [onground, special]}
    attack:
      flags: [attack]
      frames:
        e:
          - {frame: 10}
          - {frame: 11, attackRange: 2, sfx: swing}
          - {frame: 12}
`

func TestParseAnimActionConfig(t *testing.T) {
	cfg, err := ParseAnimActionConfig([]byte(testAnimYAML))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	walk := cfg.Action("avatar", types.AnimWalk)
	if walk == nil {
		t.Fatal("walk action not found")
	}
	if walk.Size() != 4 || walk.FrameRepeat != 1 {
		t.Errorf("walk size=%d repeat=%d", walk.Size(), walk.FrameRepeat)
	}
	if !walk.HasFlags(ActionLooping) || !walk.HasFlags(ActionTwoStep) || walk.HasFlags(ActionAttack) {
		t.Error("walk flags mismatch")
	}
	if !walk.HasDir(types.DirEast) || walk.HasDir(types.DirNorth) {
		t.Error("walk direction table mismatch")
	}
	f := walk.Frame(types.DirWest, 1)
	if f == nil || f.Frame != 5 || !f.Is(FrameOnGround) || !f.Is(FrameSpecial) || f.Is(FrameFlipped) {
		t.Errorf("unexpected frame %+v", f)
	}
	if walk.Frame(types.DirWest, 4) != nil || walk.Frame(types.DirNorth, 0) != nil {
		t.Error("out-of-range frames should be nil")
	}

	attack := cfg.Action("avatar", types.AnimAttack)
	if attack == nil || !attack.HasFlags(ActionAttack) {
		t.Fatal("attack action missing or not flagged")
	}
	if af := attack.Frame(types.DirEast, 1); af.AttackRange != 2 || af.Sfx != "swing" {
		t.Errorf("attack frame = %+v", af)
	}

	if cfg.Action("avatar", types.AnimDie) != nil || cfg.Action("ghost", types.AnimWalk) != nil {
		t.Error("missing actions should be nil")
	}
}

func TestParseAnimActionConfigErrors(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		errContains string
	}{
		{"未知序列", "shapes:\n  a:\n    fly:\n      frames: {}\n", "unknown animation sequence"},
		{"未知方向", "shapes:\n  a:\n    walk:\n      frames:\n        up: [{frame: 0}]\n", "unknown direction"},
		{"未知动作标记", "shapes:\n  a:\n    walk:\n      flags: [bouncy]\n", "unknown action flag"},
		{"未知帧标记", "shapes:\n  a:\n    walk:\n      frames:\n        e: [{frame: 0, flags: [wet]}]\n", "unknown frame flag"},
		{"帧数不一致", "shapes:\n  a:\n    walk:\n      frames:\n        e: [{frame: 0}]\n        w: [{frame: 0}, {frame: 1}]\n", "frames, expected"},
		{"负重复数", "shapes:\n  a:\n    walk:\n      frameRepeat: -1\n", "frameRepeat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnimActionConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("expected error containing %q, got %v", tt.errContains, err)
			}
		})
	}
}

func makeAction(t *testing.T, seq types.AnimSequence, size int, flags ActionFlag) *AnimAction {
	t.Helper()
	frames := make([]AnimFrame, size)
	for i := range frames {
		frames[i].Frame = i
	}
	a, err := NewAnimAction("avatar", seq, 0, flags, map[types.Direction][]AnimFrame{types.DirEast: frames})
	if err != nil {
		t.Fatalf("NewAnimAction failed: %v", err)
	}
	return a
}

func TestAnimRange(t *testing.T) {
	walk := makeAction(t, types.AnimWalk, 8, ActionTwoStep|ActionLooping)
	stand := makeAction(t, types.AnimStand, 4, 0)
	single := makeAction(t, types.AnimStand, 1, 0)

	tests := []struct {
		name      string
		action    *AnimAction
		lastAnim  types.AnimSequence
		lastDir   types.Direction
		firstStep bool
		dir       types.Direction
		start     int
		end       int
	}{
		{"两步步态第一步", walk, types.AnimStand, types.DirEast, true, types.DirEast, 0, 4},
		{"两步步态第二步", walk, types.AnimWalk, types.DirEast, false, types.DirEast, 4, 8},
		{"重复同一动画跳过首帧", stand, types.AnimStand, types.DirEast, true, types.DirEast, 1, 4},
		{"换方向从首帧开始", stand, types.AnimStand, types.DirWest, true, types.DirEast, 0, 4},
		{"换动画从首帧开始", stand, types.AnimWalk, types.DirEast, true, types.DirEast, 0, 4},
		{"单帧动画不跳帧", single, types.AnimStand, types.DirEast, true, types.DirEast, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.action.AnimRange(tt.lastAnim, tt.lastDir, tt.firstStep, tt.dir)
			if start != tt.start || end != tt.end {
				t.Errorf("AnimRange = [%d, %d), 期望 [%d, %d)", start, end, tt.start, tt.end)
			}
		})
	}
}

func TestNewAnimActionMismatchedFrames(t *testing.T) {
	_, err := NewAnimAction("a", types.AnimWalk, 0, 0, map[types.Direction][]AnimFrame{
		types.DirEast: make([]AnimFrame, 2),
		types.DirWest: make([]AnimFrame, 3),
	})
	if err == nil {
		t.Error("expected frame count mismatch error")
	}
}

package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// AnimSequence 动画序列编号（walk、stand、attack...）
// 与角色外形组合后才能定位到具体的动画动作数据。
type AnimSequence int

const (
	AnimWalk AnimSequence = iota
	AnimRun
	AnimStand
	AnimJumpUp
	AnimReadyWeapon
	AnimUnreadyWeapon
	AnimAttack
	AnimAdvance
	AnimRetreat
	AnimDie
	AnimFallBackwards
	AnimTalk
	AnimCast
	animSequenceCount
)

var animSequenceNames = [animSequenceCount]string{
	"walk", "run", "stand", "jumpUp", "readyWeapon", "unreadyWeapon",
	"attack", "advance", "retreat", "die", "fallBackwards", "talk", "cast",
}

// String 返回序列名称
func (a AnimSequence) String() string {
	if a < 0 || a >= animSequenceCount {
		return fmt.Sprintf("anim(%d)", int(a))
	}
	return animSequenceNames[a]
}

// ParseAnimSequence 按名称查找动画序列
func ParseAnimSequence(name string) (AnimSequence, error) {
	for i, n := range animSequenceNames {
		if n == name {
			return AnimSequence(i), nil
		}
	}
	return 0, fmt.Errorf("unknown animation sequence %q", name)
}

// UnmarshalYAML 允许配置文件中用名称书写动画序列
func (a *AnimSequence) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	seq, err := ParseAnimSequence(name)
	if err != nil {
		return err
	}
	*a = seq
	return nil
}

// MarshalYAML 以名称输出动画序列
func (a AnimSequence) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}

package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/gonewx/yack/pkg/types"
	"gopkg.in/yaml.v3"
)

// ActionFlag 动画动作标记
type ActionFlag uint32

const (
	// ActionLooping 循环动画：越过末帧后回到第 1 帧
	ActionLooping ActionFlag = 1 << iota
	// ActionTwoStep 两步步态：一次播放只走一半帧，左右脚交替
	ActionTwoStep
	// ActionUnstoppable 被阻挡时不中断
	ActionUnstoppable
	// ActionDestroyActor 播放完毕后销毁角色
	ActionDestroyActor
	// ActionAttack 攻击动画：按帧的攻击范围做命中判定
	ActionAttack
)

var actionFlagNames = map[string]ActionFlag{
	"looping":      ActionLooping,
	"twostep":      ActionTwoStep,
	"unstoppable":  ActionUnstoppable,
	"destroyactor": ActionDestroyActor,
	"attack":       ActionAttack,
}

// FrameFlag 单帧标记
type FrameFlag uint32

const (
	// FrameOnGround 本帧必须站在地面上
	FrameOnGround FrameFlag = 1 << iota
	// FrameFlipped 本帧水平翻转
	FrameFlipped
	// FrameSpecial 本帧触发特殊效果钩子（脚步声、拔剑声、召唤...）
	FrameSpecial
)

var frameFlagNames = map[string]FrameFlag{
	"onground": FrameOnGround,
	"flipped":  FrameFlipped,
	"special":  FrameSpecial,
}

// AnimFrame 动画动作中一个方向上的一帧
type AnimFrame struct {
	// Frame 外形帧编号
	Frame int `yaml:"frame"`

	// DeltaDir 沿朝向的位移（乘以每步 4 个单位）
	DeltaDir int `yaml:"deltaDir"`

	// DeltaZ 垂直位移（不缩放）
	DeltaZ int `yaml:"deltaZ"`

	// AttackRange 攻击范围（以 32 单位为一格），0 表示本帧不判定
	AttackRange int `yaml:"attackRange"`

	// Sfx 本帧播放的音效 ID，空表示无
	Sfx string `yaml:"sfx"`

	// Flags 帧标记名称列表
	Flags []string `yaml:"flags"`

	flags FrameFlag
}

// Is 检查帧标记
func (f *AnimFrame) Is(flag FrameFlag) bool {
	return f.flags&flag != 0
}

// SetFlags 直接设置帧标记（用于代码构造的动作数据）
func (f *AnimFrame) SetFlags(flags FrameFlag) {
	f.flags = flags
}

// AnimAction 一个外形的一个动画序列
//
// 每个方向有相同数量的帧；方向缺失的动作不能在该方向播放。
type AnimAction struct {
	Shape    string             `yaml:"-"`
	Sequence types.AnimSequence `yaml:"-"`

	// FrameRepeat 每帧额外重复显示的 tick 数
	FrameRepeat int `yaml:"frameRepeat"`

	// Flags 动作标记名称列表
	Flags []string `yaml:"flags"`

	// Frames 方向名称 → 帧序列
	Frames map[string][]AnimFrame `yaml:"frames"`

	flags  ActionFlag
	byDir  [types.DirInvalid][]AnimFrame
	frames int
}

// NewAnimAction 用代码构造动画动作（测试和工具使用）
// 参数:
//   - frames: 方向 → 帧序列，各方向帧数必须一致
func NewAnimAction(shape string, seq types.AnimSequence, repeat int, flags ActionFlag, frames map[types.Direction][]AnimFrame) (*AnimAction, error) {
	a := &AnimAction{Shape: shape, Sequence: seq, FrameRepeat: repeat, flags: flags}
	a.frames = -1
	for dir, fs := range frames {
		if !dir.Valid() {
			return nil, fmt.Errorf("invalid direction %d", dir)
		}
		if a.frames >= 0 && len(fs) != a.frames {
			return nil, fmt.Errorf("direction %s has %d frames, expected %d", dir, len(fs), a.frames)
		}
		a.frames = len(fs)
		a.byDir[dir] = fs
	}
	if a.frames < 0 {
		a.frames = 0
	}
	return a, nil
}

// HasFlags 检查动作标记
func (a *AnimAction) HasFlags(flag ActionFlag) bool {
	return a.flags&flag != 0
}

// Size 每个方向的帧数
func (a *AnimAction) Size() int {
	return a.frames
}

// HasDir 动作是否定义了该方向
func (a *AnimAction) HasDir(dir types.Direction) bool {
	return dir.Valid() && len(a.byDir[dir]) > 0
}

// Frame 返回指定方向的第 i 帧；越界返回 nil
func (a *AnimAction) Frame(dir types.Direction, i int) *AnimFrame {
	if !dir.Valid() || i < 0 || i >= len(a.byDir[dir]) {
		return nil
	}
	return &a.byDir[dir][i]
}

// AnimRange 计算本次播放的帧区间 [start, end)
//
// 两步步态：第一步播放前半段，第二步播放后半段。
// 其他动画：与上一次动画、方向都相同时跳过第 0 帧（衔接重复播放）。
//
// 参数:
//   - lastAnim, lastDir: 上一次播放的序列和方向
//   - firstStep: 两步步态当前是否为第一步
//   - dir: 本次播放方向
func (a *AnimAction) AnimRange(lastAnim types.AnimSequence, lastDir types.Direction, firstStep bool, dir types.Direction) (start, end int) {
	start, end = 0, a.frames
	if a.HasFlags(ActionTwoStep) {
		if firstStep {
			if a.frames > 1 {
				end = a.frames / 2
			}
		} else {
			start = a.frames / 2
		}
		return start, end
	}
	if lastAnim == a.Sequence && lastDir == dir && a.frames > 1 {
		start = 1
	}
	return start, end
}

// AnimActionConfig 全部外形的动画动作数据
//
// 配置文件位置: data/anim_actions.yaml
//
//	shapes:
//	  avatar:
//	    walk:
//	      frameRepeat: 1
//	      flags: [looping, twostep]
//	      frames:
//	        e: [{frame: 0, deltaDir: 2, flags: [onground]}, ...]
type AnimActionConfig struct {
	Shapes map[string]map[string]*AnimAction `yaml:"shapes"`
}

// LoadAnimActionConfig 加载动画动作配置
func LoadAnimActionConfig(path string) (*AnimActionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read anim action config: %w", err)
	}
	return ParseAnimActionConfig(data)
}

// ParseAnimActionConfig 从 YAML 数据解析动画动作配置
func ParseAnimActionConfig(data []byte) (*AnimActionConfig, error) {
	var config AnimActionConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse anim action config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid anim action config: %w", err)
	}
	return &config, nil
}

// Validate 验证配置并建立按方向索引的帧表
//
// 检查项：
//   - 序列名、方向名、标记名都必须可识别
//   - 同一动作各方向帧数一致
//   - frameRepeat 不能为负
func (c *AnimActionConfig) Validate() error {
	shapes := make([]string, 0, len(c.Shapes))
	for shape := range c.Shapes {
		shapes = append(shapes, shape)
	}
	sort.Strings(shapes)

	for _, shape := range shapes {
		for seqName, action := range c.Shapes[shape] {
			if action == nil {
				return fmt.Errorf("%s/%s: empty action", shape, seqName)
			}
			if err := action.build(shape, seqName); err != nil {
				return fmt.Errorf("%s/%s: %w", shape, seqName, err)
			}
		}
	}
	return nil
}

func (a *AnimAction) build(shape, seqName string) error {
	seq, err := types.ParseAnimSequence(seqName)
	if err != nil {
		return err
	}
	a.Shape = shape
	a.Sequence = seq

	if a.FrameRepeat < 0 {
		return fmt.Errorf("frameRepeat must not be negative, got %d", a.FrameRepeat)
	}

	a.flags = 0
	for _, name := range a.Flags {
		flag, ok := actionFlagNames[name]
		if !ok {
			return fmt.Errorf("unknown action flag %q", name)
		}
		a.flags |= flag
	}

	a.frames = -1
	a.byDir = [types.DirInvalid][]AnimFrame{}
	for dirName, frames := range a.Frames {
		dir, err := types.ParseDirection(dirName)
		if err != nil {
			return err
		}
		if a.frames >= 0 && len(frames) != a.frames {
			return fmt.Errorf("direction %s has %d frames, expected %d", dirName, len(frames), a.frames)
		}
		a.frames = len(frames)
		for i := range frames {
			frames[i].flags = 0
			for _, name := range frames[i].Flags {
				flag, ok := frameFlagNames[name]
				if !ok {
					return fmt.Errorf("direction %s frame %d: unknown frame flag %q", dirName, i, name)
				}
				frames[i].flags |= flag
			}
		}
		a.byDir[dir] = frames
	}
	if a.frames < 0 {
		a.frames = 0
	}
	return nil
}

// Action 查找外形的动画动作
// 返回: 不存在时返回 nil
func (c *AnimActionConfig) Action(shape string, seq types.AnimSequence) *AnimAction {
	actions, ok := c.Shapes[shape]
	if !ok {
		return nil
	}
	return actions[seq.String()]
}

// AddAction 注册一个代码构造的动画动作
func (c *AnimActionConfig) AddAction(a *AnimAction) {
	if c.Shapes == nil {
		c.Shapes = make(map[string]map[string]*AnimAction)
	}
	if c.Shapes[a.Shape] == nil {
		c.Shapes[a.Shape] = make(map[string]*AnimAction)
	}
	c.Shapes[a.Shape][a.Sequence.String()] = a
}

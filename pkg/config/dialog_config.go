package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DialogConfig 对话引擎配置
//
// 控制选项槽位数量、选项滑动、布局和台词时长估算。
//
// 配置文件位置: data/dialog_config.yaml
type DialogConfig struct {
	// MaxChoices 同时可见的最大选项数（槽位数量）
	MaxChoices int `yaml:"maxChoices"`

	// SlotMargin 选项文字左侧边距（像素），滑动时也以此为限
	SlotMargin float64 `yaml:"slotMargin"`

	// SlidingSpeed 选项文字超宽时的水平滑动速度（像素/秒）
	SlidingSpeed float64 `yaml:"slidingSpeed"`

	// ScreenWidth 可见宽度（像素）
	ScreenWidth float64 `yaml:"screenWidth"`

	// ChoiceTop 第一个选项的 Y 坐标
	ChoiceTop float64 `yaml:"choiceTop"`

	// LineHeight 选项行高
	LineHeight float64 `yaml:"lineHeight"`

	// DefaultLimit 每次开始对话时的可见选项上限（!limit 可在对话中修改）
	// 0 表示取 MaxChoices；大于 MaxChoices 时按 MaxChoices 处理
	DefaultLimit int `yaml:"defaultLimit"`

	// ChoicePrefix 选项文字前缀
	ChoicePrefix string `yaml:"choicePrefix"`

	// PruneTempOnceOnStart 开始对话时是否清除 TempOnce 记录
	// 默认 false：保留跨对话的 TempOnce 记录
	PruneTempOnceOnStart bool `yaml:"pruneTempOnceOnStart"`

	// SayBaseDuration 台词基础时长（秒），无口型数据时使用
	SayBaseDuration float64 `yaml:"sayBaseDuration"`

	// SayDurationPerChar 每个字符追加的时长（秒）
	SayDurationPerChar float64 `yaml:"sayDurationPerChar"`
}

// DefaultDialogConfig 返回默认对话配置
func DefaultDialogConfig() *DialogConfig {
	return &DialogConfig{
		MaxChoices:         9,
		SlotMargin:         8,
		SlidingSpeed:       25,
		ScreenWidth:        1280,
		ChoiceTop:          560,
		LineHeight:         18,
		ChoicePrefix:       "● ",
		SayBaseDuration:    1.0,
		SayDurationPerChar: 0.05,
	}
}

// LoadDialogConfig 加载对话配置
//
// 参数:
//   - path: 配置文件路径（如 "data/dialog_config.yaml"）
//
// 返回:
//   - *DialogConfig: 配置；文件中缺省的字段取默认值
//   - error: 读取、解析或验证失败
func LoadDialogConfig(path string) (*DialogConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dialog config: %w", err)
	}
	return ParseDialogConfig(data)
}

// ParseDialogConfig 从 YAML 数据解析对话配置（用于嵌入资源）
func ParseDialogConfig(data []byte) (*DialogConfig, error) {
	config := DefaultDialogConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse dialog config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dialog config: %w", err)
	}
	return config, nil
}

// Validate 验证配置有效性
func (c *DialogConfig) Validate() error {
	if c.MaxChoices < 1 {
		return fmt.Errorf("maxChoices must be positive, got %d", c.MaxChoices)
	}
	if c.DefaultLimit < 0 {
		return fmt.Errorf("defaultLimit must not be negative, got %d", c.DefaultLimit)
	}
	if c.SlidingSpeed <= 0 {
		return fmt.Errorf("slidingSpeed must be positive, got %.1f", c.SlidingSpeed)
	}
	if c.ScreenWidth <= 2*c.SlotMargin {
		return fmt.Errorf("screenWidth(%.1f) must exceed twice slotMargin(%.1f)", c.ScreenWidth, c.SlotMargin)
	}
	if c.LineHeight <= 0 {
		return fmt.Errorf("lineHeight must be positive, got %.1f", c.LineHeight)
	}
	if c.SayBaseDuration < 0 || c.SayDurationPerChar < 0 {
		return fmt.Errorf("say durations must not be negative")
	}
	return nil
}

// StartLimit 开始对话时使用的选项上限
func (c *DialogConfig) StartLimit() int {
	if c.DefaultLimit <= 0 || c.DefaultLimit > c.MaxChoices {
		return c.MaxChoices
	}
	return c.DefaultLimit
}

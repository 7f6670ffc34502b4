package components

// TalkingComponent 角色当前的说话状态
type TalkingComponent struct {
	Text      string  // 正在说的台词（已解析文本 ID）
	Remaining float64 // 剩余时长（秒）
	Active    bool
}

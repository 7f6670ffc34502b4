package dialog

import "fmt"

// Mode 条件记录的类型
type Mode int

const (
	// ModeOnce 选项被选择过（按角色区分）
	ModeOnce Mode = iota
	// ModeShowOnce 选项被显示过（按角色区分）
	ModeShowOnce
	// ModeOnceEver 选项被任意角色选择过
	ModeOnceEver
	// ModeTempOnce 选项在本次会话中被显示过
	ModeTempOnce
)

var modeChars = [...]byte{'O', 'S', 'E', 'T'}

// Char 存档中使用的单字符编码
func (m Mode) Char() byte {
	if m < ModeOnce || m > ModeTempOnce {
		return '?'
	}
	return modeChars[m]
}

// String 返回模式名称
func (m Mode) String() string {
	switch m {
	case ModeOnce:
		return "once"
	case ModeShowOnce:
		return "showonce"
	case ModeOnceEver:
		return "onceever"
	case ModeTempOnce:
		return "temponce"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseModeChar 解析单字符编码
func ParseModeChar(c byte) (Mode, error) {
	for i, mc := range modeChars {
		if mc == c {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown condition mode %q", c)
}

// Record 一条条件记录
// OnceEver 记录不区分角色，Actor 字段仅作保存用途。
type Record struct {
	Mode   Mode
	Actor  string
	Dialog string
	Line   int
}

// Ledger 条件状态账本
//
// 记录哪些带守卫的对话行已经被选择或显示过。
// 查询是纯函数；只有 Add 会修改账本，且重复添加同一条记录不产生新条目。
type Ledger struct {
	records []Record
}

// NewLedger 创建空账本
func NewLedger() *Ledger {
	return &Ledger{}
}

// Has 是否存在匹配的记录；ModeOnceEver 忽略角色
func (l *Ledger) Has(mode Mode, actor, dialog string, line int) bool {
	for _, r := range l.records {
		if r.Mode != mode || r.Dialog != dialog || r.Line != line {
			continue
		}
		if mode == ModeOnceEver || r.Actor == actor {
			return true
		}
	}
	return false
}

// Add 追加记录（已存在时忽略）
func (l *Ledger) Add(r Record) {
	if l.Has(r.Mode, r.Actor, r.Dialog, r.Line) {
		return
	}
	l.records = append(l.records, r)
}

// IsOnce 选项是否尚未被该角色选择过
func (l *Ledger) IsOnce(actor, dialog string, line int) bool {
	return !l.Has(ModeOnce, actor, dialog, line)
}

// IsShowOnce 选项是否尚未被该角色看到过
func (l *Ledger) IsShowOnce(actor, dialog string, line int) bool {
	return !l.Has(ModeShowOnce, actor, dialog, line)
}

// IsOnceEver 选项是否尚未被任何角色选择过
func (l *Ledger) IsOnceEver(dialog string, line int) bool {
	return !l.Has(ModeOnceEver, "", dialog, line)
}

// IsTempOnce 选项在本次会话中是否尚未显示过
func (l *Ledger) IsTempOnce(actor, dialog string, line int) bool {
	return !l.Has(ModeTempOnce, actor, dialog, line)
}

// PruneTempOnce 删除所有 TempOnce 记录
func (l *Ledger) PruneTempOnce() {
	kept := l.records[:0]
	for _, r := range l.records {
		if r.Mode != ModeTempOnce {
			kept = append(kept, r)
		}
	}
	l.records = kept
}

// Records 返回所有记录的副本（按添加顺序）
func (l *Ledger) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Restore 用存档中的记录替换账本内容
func (l *Ledger) Restore(records []Record) {
	l.records = l.records[:0]
	for _, r := range records {
		l.Add(r)
	}
}

// Len 记录数
func (l *Ledger) Len() int {
	return len(l.records)
}

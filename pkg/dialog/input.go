package dialog

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// EbitenPointer 使用 ebiten 鼠标状态的指针输入
type EbitenPointer struct{}

// Position 光标位置
func (EbitenPointer) Position() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

// JustClicked 本帧是否按下左键
func (EbitenPointer) JustClicked() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

// FaceMeasurer 用字体测量文字宽度
type FaceMeasurer struct {
	Face text.Face
}

// Measure 文字的水平前进宽度
func (m FaceMeasurer) Measure(s string) float64 {
	if m.Face == nil {
		return 0
	}
	return text.Advance(s, m.Face)
}

// Draw 绘制可见选项
// 悬停中的选项使用角色的悬停颜色。
func (d *Dialog) Draw(screen *ebiten.Image, face text.Face) {
	if d.state != StateWaitingForChoice || face == nil {
		return
	}
	normal := d.target.ActorColor(d.ctx.Actor)
	hover := d.target.ActorColorHover(d.ctx.Actor)
	for i := range d.slots {
		slot := &d.slots[i]
		if !slot.Valid {
			continue
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(slot.X, slot.Y)
		if slot.Hover {
			op.ColorScale.ScaleWithColor(hover)
		} else {
			op.ColorScale.ScaleWithColor(normal)
		}
		text.Draw(screen, slot.Text, face, op)
	}
}

package portfolio

import (
	"github.com/phanxgames/folio"
)

const cursorSize = 20.0

// cursorSection draws a soft glow that trails the pointer and swells over
// anything interactive.
type cursorSection struct {
	theme Theme
}

func (s *cursorSection) Name() string { return "cursor" }

func (s *cursorSection) build(l *layout) {
	glow := folio.NewPanel("cursor-glow", cursorSize, cursorSize, s.theme.Cyan.WithAlpha(0.35))
	glow.SetZIndex(1 << 19)
	glow.CenterPivot()
	glow.Visible = false
	l.overlay.AddChild(glow)
}

func (s *cursorSection) Mount(m *folio.Mounter) {
	glow := m.Find("cursor-glow")
	if glow == nil {
		return
	}
	follow := newFollower(m, glow)
	grow := newFollower(m, glow)

	m.Pointer(func(off folio.PointerOffset) {
		if !glow.Visible {
			glow.Visible = true
			glow.SetPosition(off.ScreenX-cursorSize/2, off.ScreenY-cursorSize/2)
		}
		follow.to(folio.Props{
			folio.PropX: off.ScreenX - cursorSize/2,
			folio.PropY: off.ScreenY - cursorSize/2,
		}, 0.1, easeOut)
	})

	enter := m.Stage().OnPointerEnter(func(folio.PointerContext) {
		grow.to(folio.Props{}.Scale(1.5), 0.3, easeOut)
	})
	leave := m.Stage().OnPointerLeave(func(folio.PointerContext) {
		grow.to(folio.Props{}.Scale(1), 0.3, easeOut)
	})
	m.Defer(enter.Remove)
	m.Defer(leave.Remove)
	m.Defer(func() { glow.Visible = false })
}

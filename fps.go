package folio

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// NewFPSWidget adds a node to the overlay that displays the current FPS and
// TPS, refreshed about every half second. Remove the returned handle and
// dispose the node to take it down.
func NewFPSWidget(s *Stage) (*Node, CallbackHandle) {
	bg := NewPanel("fps_widget", 110, 40, Color{0, 0, 0, 0.5})
	bg.ZIndex = 1 << 20
	label := NewText("fps_label", "", DefaultFont(13))
	label.SetPosition(6, 4)
	bg.AddChild(label)
	s.overlay.AddChild(bg)

	var since float32 = 0.5
	h := s.OnTick(func(dt float32) {
		since += dt
		if since < 0.5 {
			return
		}
		since = 0
		label.SetText(fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	})
	return bg, h
}

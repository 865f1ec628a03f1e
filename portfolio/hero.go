package portfolio

import (
	"github.com/phanxgames/folio"
	"github.com/tanema/gween/ease"
)

// heroSection is the full-height intro: name, headline and two call to
// action buttons.
type heroSection struct {
	profile Profile
	theme   Theme
}

func (s *heroSection) Name() string { return "hero" }

func (s *heroSection) build(l *layout) {
	t := s.theme
	sec := l.section("hero")
	h := l.vh

	bg := panel(sec, "hero-bg", 0, 0, l.width, h, t.Purple.WithAlpha(0.08))
	bg.CenterPivot()

	first := folio.NewText("hero-first", s.profile.FirstName, folio.BoldFont(t.Display))
	first.TextBlock.Color = t.Blue
	last := folio.NewText("hero-last", s.profile.LastName, folio.DefaultFont(t.Display*0.6))
	last.TextBlock.Color = t.Text

	titleW := first.Width
	if last.Width > titleW {
		titleW = last.Width
	}
	titleH := first.Height + 8 + last.Height

	sub := folio.NewText("hero-subtitle", s.profile.Headline, folio.DefaultFont(t.Heading))
	sub.TextBlock.Color = t.Muted
	sub.TextBlock.Align = folio.TextAlignCenter
	sub.SetWrapWidth(minf(672, l.contentWidth()))

	const btnW, btnH, btnGap = 220.0, 60.0, 24.0
	blockH := titleH + 24 + sub.Height + 48 + btnH
	y := (h - blockH) / 2

	wrap := folio.NewContainer("hero-title-wrap")
	wrap.SetPosition(0, y)
	wrap.SetSize(l.width, titleH)
	wrap.CenterPivot()
	sec.AddChild(wrap)

	title := folio.NewContainer("hero-title")
	title.SetSize(l.width, titleH)
	title.CenterPivot()
	wrap.AddChild(title)
	first.SetPosition((l.width-first.Width)/2, 0)
	last.SetPosition((l.width-last.Width)/2, first.Height+8)
	title.AddChild(first)
	title.AddChild(last)
	y += titleH + 24

	sub.SetPosition((l.width-sub.Width)/2, y)
	sub.CenterPivot()
	sec.AddChild(sub)
	y += sub.Height + 48

	btns := folio.NewContainer("hero-buttons")
	btns.SetPosition((l.width-2*btnW-btnGap)/2, y)
	btns.SetSize(2*btnW+btnGap, btnH)
	btns.CenterPivot()
	sec.AddChild(btns)
	font := folio.DefaultFont(t.Body)
	button(btns, "hero-work", "View My Work", font, t, 0, 0, btnW, btnH)
	button(btns, "hero-contact", "Get In Touch", font, t, btnW+btnGap, 0, btnW, btnH)

	l.finish(sec, h)
}

func (s *heroSection) Mount(m *folio.Mounter) {
	sec := m.Find("hero")
	bg := m.Find("hero-bg")
	wrap := m.Find("hero-title-wrap")
	title := m.Find("hero-title")
	sub := m.Find("hero-subtitle")
	btns := m.Find("hero-buttons")

	var titleY float64
	if title != nil {
		titleY = title.Y
	}

	b := folio.NewTimelineBuilder()
	b.FromTo(bg, folio.Props{folio.PropAlpha: 0}.Scale(1.2), folio.Props{folio.PropAlpha: 1}.Scale(1), 2, easeOut, 0)
	if title != nil {
		b.FromTo(title,
			folio.Props{folio.PropY: titleY + 100, folio.PropAlpha: 0},
			folio.Props{folio.PropY: titleY, folio.PropAlpha: 1},
			1.5, easeOut3, -1.5)
	}
	if sub != nil {
		b.FromTo(sub,
			folio.Props{folio.PropY: sub.Y + 50, folio.PropAlpha: 0}.Scale(0.8),
			folio.Props{folio.PropY: sub.Y, folio.PropAlpha: 1}.Scale(1),
			1, easeBack, -1)
	}
	if btns != nil {
		b.FromTo(btns,
			folio.Props{folio.PropY: btns.Y + 30, folio.PropAlpha: 0}.Scale(0.9),
			folio.Props{folio.PropY: btns.Y, folio.PropAlpha: 1}.Scale(1),
			0.8, easeBack, -0.5)
	}
	intro := b.Build()

	if title != nil {
		float := folio.NewTimelineBuilder().
			To(title, folio.Props{folio.PropY: titleY - 10}, 3, easeInOut, 0).
			Build().SetRepeat(-1).SetYoyo(true)
		m.Track(float)
		intro.OnComplete(func() {
			float.Play()
			m.Drive(float)
		})
	}
	m.Play(intro)

	// Scrolling out of the hero drifts the background down and lifts the
	// title away with a slight tilt.
	scrollOut := folio.MustParseWindow("top top", "bottom top")
	parallax := folio.NewTimelineBuilder()
	if bg != nil {
		parallax.FromTo(bg, folio.Props{folio.PropY: bg.Y}, folio.Props{folio.PropY: bg.Y + 100}, 1, ease.Linear, 0)
	}
	if wrap != nil {
		parallax.FromTo(wrap,
			folio.Props{folio.PropY: wrap.Y, folio.PropRotation: 0},
			folio.Props{folio.PropY: wrap.Y - 50, folio.PropRotation: deg(5)},
			1, ease.Linear, -1)
	}
	scrolled := parallax.Build()
	if m.ScrubTimeline(sec, scrollOut, scrolled) != nil {
		m.Defer(func() { scrolled.SetProgress(0) })
	}

	// The intro also scales the background, so its scroll zoom follows
	// with a tween instead of being seeked.
	bgF := newFollower(m, bg)
	m.Scrub(sec, scrollOut, func(p float64) {
		bgF.to(folio.Props{}.Scale(1+p*0.1), 0.3, easeOut)
	})

	vp := m.Viewport()
	for _, target := range []struct{ button, section string }{
		{"hero-work", "projects"},
		{"hero-contact", "contact"},
	} {
		btn := m.Find(target.button)
		hoverScale(m, btn, 1.05, 0.3)
		section := target.section
		m.OnClick(btn, func(folio.PointerContext) {
			vp.ScrollToNode(m.Find(section), 0, 1, easeInOut)
		})
	}
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

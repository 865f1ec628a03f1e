package portfolio

import (
	"github.com/phanxgames/folio"
	"go.uber.org/zap"
)

var navItems = []struct{ id, caption string }{
	{"hero", "Home"},
	{"about", "About"},
	{"experience", "Experience"},
	{"projects", "Projects"},
	{"contact", "Contact"},
}

const (
	navTop   = 24.0
	navProbe = 100.0 // screen line that decides the active section
)

// navSection is the fixed pill bar at the top of the screen. It highlights
// the section under the probe line and scrolls to a section when clicked.
type navSection struct {
	theme  Theme
	active string
	items  map[string]*folio.Node
}

func (s *navSection) Name() string { return "nav" }

// Active returns the id of the highlighted section.
func (s *navSection) Active() string { return s.active }

func (s *navSection) build(l *layout) {
	t := s.theme
	font := folio.DefaultFont(t.Small + 1)
	const padX, itemH, spacing, barPad = 16.0, 36.0, 8.0, 8.0

	bar := folio.NewPanel("nav", 0, itemH+2*barPad, t.Glass)
	bar.SetZIndex(1 << 18)
	l.overlay.AddChild(bar)

	s.items = make(map[string]*folio.Node, len(navItems))
	x := barPad
	for _, it := range navItems {
		w, _ := font.MeasureString(it.caption)
		item := button(bar, "nav-"+it.id, it.caption, font, t, x, barPad, w+2*padX, itemH)
		item.Color = folio.Color{}
		s.items[it.id] = item
		x += w + 2*padX + spacing
	}
	barW := x - spacing + barPad
	bar.SetSize(barW, itemH+2*barPad)
	bar.SetPosition((l.width-barW)/2, navTop)
	bar.CenterPivot()

	s.active = navItems[0].id
	s.highlight()
}

func (s *navSection) highlight() {
	for id, item := range s.items {
		caption := item.Children()[0]
		if id == s.active {
			item.Color = s.theme.GlassActive
			caption.TextBlock.Color = s.theme.Text
		} else {
			item.Color = folio.Color{}
			caption.TextBlock.Color = s.theme.Muted
		}
	}
}

// track marks the first section whose bounds cross the probe line.
func (s *navSection) track(vp *folio.Viewport, targets map[string]*folio.Node) {
	probe := vp.ScrollY + navProbe
	for _, it := range navItems {
		n := targets[it.id]
		if n == nil {
			continue
		}
		b := n.WorldBounds()
		if b.Y <= probe && b.Bottom() >= probe {
			if s.active != it.id {
				s.active = it.id
				s.highlight()
			}
			return
		}
	}
}

func (s *navSection) Mount(m *folio.Mounter) {
	bar := m.Find("nav")
	if bar == nil {
		return
	}
	baseY := navTop
	bar.SetPosition(bar.X, baseY)
	bar.SetScale(1, 1)

	m.Play(folio.NewTimelineBuilder().
		FromTo(bar,
			folio.Props{folio.PropY: baseY - 100, folio.PropAlpha: 0},
			folio.Props{folio.PropY: baseY, folio.PropAlpha: 1},
			1, easeOut3, 0).
		Build())

	settle := newFollower(m, bar)
	m.Observe(m.Stage().Document(), folio.MustParseWindow("top top", "bottom bottom"), func(p float64, dir folio.ScrollDirection) {
		if dir == folio.ScrollLeave {
			return
		}
		if p > 0.1 {
			settle.to(folio.Props{folio.PropY: baseY}.Scale(1), 0.3, easeOut)
		} else {
			settle.to(folio.Props{folio.PropY: baseY - 20}.Scale(0.95), 0.3, easeOut)
		}
	})

	vp := m.Viewport()
	targets := make(map[string]*folio.Node, len(navItems))
	for _, it := range navItems {
		target := m.Find(it.id)
		targets[it.id] = target
		item := m.Find("nav-" + it.id)
		hoverScale(m, item, 1.1, 0.3)
		if target == nil {
			continue
		}
		id := it.id
		m.OnClick(item, func(folio.PointerContext) {
			m.Logger().Debug("navigate", zap.String("section", id))
			vp.ScrollToNode(target, 0, 1, easeInOut)
		})
	}
	s.track(vp, targets)
	m.OnTick(func(float32) { s.track(vp, targets) })
}

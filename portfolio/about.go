package portfolio

import (
	"github.com/phanxgames/folio"
	"go.uber.org/zap"
)

// About card tabs.
const (
	TabOverview  = "overview"
	TabEducation = "education"
	TabSkills    = "skills"
)

var aboutTabs = []struct{ id, caption string }{
	{TabOverview, "Overview"},
	{TabEducation, "Education"},
	{TabSkills, "Skills"},
}

const tabContentHeight = 320.0

// aboutSection shows the bio, headline stats and a tabbed detail panel.
type aboutSection struct {
	content *Content
	theme   Theme
	tabs    *folio.TabController
	chips   map[string]*folio.Node
}

func (s *aboutSection) Name() string { return "about" }

// Tabs returns the tab controller of the current mount.
func (s *aboutSection) Tabs() *folio.TabController { return s.tabs }

func (s *aboutSection) build(l *layout) {
	t := s.theme
	p := s.content.Profile
	sec := l.section("about")
	y := l.heading(sec, "about-heading", "About Me", sectionPadding)

	cw := l.contentWidth()
	card := panel(sec, "about-card", l.contentX(), y, cw, 0, t.Glass)
	colW := (cw - 3*cardPadding) / 2

	// Left column: role, bio, stats.
	ly := cardPadding
	role := label(card, "about-role", p.Role, folio.BoldFont(t.Heading), t.Text, cardPadding, ly)
	ly += role.Height + 16
	body := folio.DefaultFont(t.Body)
	for _, para := range p.Bio {
		n := paragraph(card, "about-bio", para, body, t.Muted, cardPadding, ly, colW)
		ly += n.Height + 16
	}
	statW := (colW - gap) / 2
	for i, st := range p.Stats {
		x := cardPadding + float64(i%2)*(statW+gap)
		sy := ly + float64(i/2)*(80+gap)
		box := panel(card, "about-stat", x, sy, statW, 80, t.Glass)
		v := label(box, "about-stat-value", st.Value, folio.BoldFont(t.Heading), t.Blue, 0, 12)
		v.SetPosition((statW-v.Width)/2, 12)
		lb := label(box, "about-stat-label", st.Label, folio.DefaultFont(t.Small), t.Muted, 0, 0)
		lb.SetPosition((statW-lb.Width)/2, 80-12-lb.Height)
	}
	if n := len(p.Stats); n > 0 {
		ly += float64((n+1)/2)*(80+gap) - gap
	}

	// Right column: tab chips above the swappable content.
	rx := 2*cardPadding + colW
	s.chips = make(map[string]*folio.Node, len(aboutTabs))
	chipFont := folio.DefaultFont(t.Small)
	for i, tab := range aboutTabs {
		chip := button(card, "about-tab-"+tab.id, tab.caption, chipFont, t, rx+float64(i)*(112+8), cardPadding, 112, 36)
		s.chips[tab.id] = chip
	}
	content := folio.NewContainer("about-tab-content")
	content.SetPosition(rx, cardPadding+36+24)
	content.SetSize(colW, tabContentHeight)
	card.AddChild(content)
	s.renderTab(content, TabOverview)
	s.highlight(TabOverview)

	ry := cardPadding + 36 + 24 + tabContentHeight
	cardH := ly
	if ry > cardH {
		cardH = ry
	}
	cardH += cardPadding
	card.SetSize(cw, cardH)

	l.finish(sec, y+cardH+sectionPadding)
}

// renderTab replaces the children of content with the panel for id.
func (s *aboutSection) renderTab(content *folio.Node, id string) {
	clearChildren(content)
	t := s.theme
	w := content.Width
	small := folio.DefaultFont(t.Small)
	body := folio.DefaultFont(t.Body)
	y := 0.0

	switch id {
	case TabOverview:
		p := s.content.Profile
		n := label(content, "tab-label", "Location", small, t.Subtle, 0, y)
		y += n.Height + 4
		n = label(content, "tab-value", p.Location, body, t.Text, 0, y)
		y += n.Height + 16
		n = label(content, "tab-label", "Focus", small, t.Subtle, 0, y)
		y += n.Height + 4
		paragraph(content, "tab-value", p.Headline, body, t.Text, 0, y, w)

	case TabEducation:
		for _, e := range s.content.Education {
			n := paragraph(content, "tab-degree", e.Degree, folio.BoldFont(t.Body), t.Text, 0, y, w)
			y += n.Height + 4
			n = label(content, "tab-institution", e.Institution, small, t.Blue, 0, y)
			y += n.Height + 4
			period := e.Period
			if e.Grade != "" {
				period += "  ·  " + e.Grade
			}
			n = label(content, "tab-period", period, small, t.Subtle, 0, y)
			y += n.Height + 16
		}

	case TabSkills:
		for _, g := range s.content.Skills {
			n := label(content, "tab-group", g.Name, small, t.Subtle, 0, y)
			y += n.Height + 6
			y += tags(content, "tab-skill", g.Items, t, 0, y, w) + 14
		}
	}
}

func (s *aboutSection) highlight(selected string) {
	for id, chip := range s.chips {
		caption := chip.Children()[0]
		if id == selected {
			chip.Color = s.theme.GlassActive
			caption.TextBlock.Color = s.theme.Blue
		} else {
			chip.Color = s.theme.Glass
			caption.TextBlock.Color = s.theme.Muted
		}
	}
}

func (s *aboutSection) Mount(m *folio.Mounter) {
	sec := m.Find("about")
	reveal(m, sec, []*folio.Node{m.Find("about-card")}, 0.8, 0)

	content := m.Find("about-tab-content")
	if content == nil {
		return
	}
	baseY := content.Y
	content.SetAlpha(1)
	s.renderTab(content, TabOverview)
	s.highlight(TabOverview)

	tabs := s.tabs
	if tabs == nil {
		tabs = folio.NewTabController(TabOverview)
	} else {
		// A switch cut short by the last unmount never settled.
		tabs.Reset(TabOverview)
	}
	tabs.Exit = func(string) *folio.Timeline {
		return folio.NewTimelineBuilder().
			To(content, folio.Props{folio.PropAlpha: 0, folio.PropY: baseY + 10}, 0.2, easeIn, 0).
			Build()
	}
	tabs.Enter = func(string) *folio.Timeline {
		return folio.NewTimelineBuilder().
			FromTo(content,
				folio.Props{folio.PropAlpha: 0, folio.PropY: baseY - 10},
				folio.Props{folio.PropAlpha: 1, folio.PropY: baseY},
				0.3, easeOut, 0).
			Build()
	}
	tabs.Swap = func(_, to string) {
		s.renderTab(content, to)
		s.highlight(to)
	}
	tabs.Run = func(tl *folio.Timeline) { m.PlayOnce(tl) }
	tabs.OnSettled = func(id string) {
		m.Logger().Debug("tab selected", zap.String("tab", id))
	}
	s.tabs = tabs
	m.Defer(func() {
		content.SetPosition(content.X, baseY)
		content.SetAlpha(1)
	})

	for _, tab := range aboutTabs {
		id := tab.id
		chip := m.Find("about-tab-" + id)
		hoverScale(m, chip, 1.05, 0.2)
		m.OnClick(chip, func(folio.PointerContext) { tabs.RequestTransition(id) })
	}
}

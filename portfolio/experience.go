package portfolio

import (
	"github.com/phanxgames/folio"
)

// experienceSection is the vertical timeline of positions and degrees.
type experienceSection struct {
	content *Content
	theme   Theme
}

func (s *experienceSection) Name() string { return "experience" }

func (s *experienceSection) build(l *layout) {
	t := s.theme
	sec := l.section("experience")
	y := l.heading(sec, "experience-heading", "Experience & Education", sectionPadding)

	cw := l.contentWidth()
	list := folio.NewContainer("experience-list")
	list.SetPosition(l.contentX(), y)
	sec.AddChild(list)

	const indent = 80.0
	cardW := cw - indent
	ly := 0.0

	ly = s.group(list, "Professional Experience", t.Blue, ly, indent)
	for _, e := range s.content.Experience {
		ly += s.card(list, cardW, indent, ly, e.Title, e.Company, e.Period, e.Description, e.Technologies, t.Blue) + gap
	}
	ly += 24
	ly = s.group(list, "Education", t.Purple, ly, indent)
	for _, e := range s.content.Education {
		desc := ""
		if e.Grade != "" {
			desc = "CGPA: " + e.Grade
		}
		ly += s.card(list, cardW, indent, ly, e.Degree, e.Institution, e.Period, desc, nil, t.Purple) + gap
	}
	ly -= gap

	line := panel(list, "experience-line", 31, 0, 2, ly, t.Blue.WithAlpha(0.5))
	line.SetZIndex(-1)
	list.SetSize(cw, ly)

	l.finish(sec, y+ly+sectionPadding)
}

// group draws a subheading with its timeline dot and returns the y below it.
func (s *experienceSection) group(list *folio.Node, title string, dot folio.Color, y, indent float64) float64 {
	h := label(list, "experience-group", title, folio.BoldFont(s.theme.Heading), s.theme.Text, indent, y)
	d := panel(list, "experience-dot", 24, y+(h.Height-16)/2, 16, 16, dot)
	d.SetZIndex(1)
	return y + h.Height + 32
}

// card draws one entry and returns its height.
func (s *experienceSection) card(list *folio.Node, w, x, y float64, title, org, period, desc string, techs []string, accent folio.Color) float64 {
	t := s.theme
	c := panel(list, "experience-card", x, y, w, 0, t.Glass)
	inner := w - 2*cardPadding

	p := label(c, "experience-period", period, folio.DefaultFont(t.Small), t.Subtle, 0, cardPadding)
	p.SetPosition(w-cardPadding-p.Width, cardPadding)

	cy := cardPadding
	n := paragraph(c, "experience-title", title, folio.BoldFont(t.Heading*0.9), t.Text, cardPadding, cy, inner-p.Width-gap)
	cy += n.Height + 4
	n = label(c, "experience-org", org, folio.DefaultFont(t.Body), accent, cardPadding, cy)
	cy += n.Height + 16
	if desc != "" {
		n = paragraph(c, "experience-description", desc, folio.DefaultFont(t.Body), t.Muted, cardPadding, cy, inner)
		cy += n.Height + 16
	}
	if len(techs) > 0 {
		cy += tags(c, "experience-tag", techs, t, cardPadding, cy, inner) + 16
	}
	h := cy - 16 + cardPadding
	c.SetSize(w, h)
	return h
}

func (s *experienceSection) Mount(m *folio.Mounter) {
	list := m.Find("experience-list")
	reveal(m, m.Find("experience"), []*folio.Node{list}, 0.8, 0)
	if list == nil {
		return
	}

	glass, active := s.theme.Glass, s.theme.GlassActive
	for _, card := range list.FindAll("experience-card", nil) {
		m.OnHover(card,
			func(folio.PointerContext) { card.Color = active },
			func(folio.PointerContext) { card.Color = glass },
		)
	}
}

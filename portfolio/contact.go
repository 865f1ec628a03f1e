package portfolio

import (
	"github.com/phanxgames/folio"
)

// contactSection closes the page with where to find the owner and a way
// back to the top.
type contactSection struct {
	profile Profile
	theme   Theme
}

func (s *contactSection) Name() string { return "contact" }

func (s *contactSection) build(l *layout) {
	t := s.theme
	p := s.profile
	sec := l.section("contact")
	y := l.heading(sec, "contact-heading", "Get In Touch", sectionPadding)

	w := minf(672, l.contentWidth())
	card := panel(sec, "contact-card", (l.width-w)/2, y, w, 0, t.Glass)
	inner := w - 2*cardPadding

	cy := cardPadding
	name := label(card, "contact-name", p.FirstName+" "+p.LastName, folio.BoldFont(t.Heading), t.Text, 0, cy)
	name.SetPosition((w-name.Width)/2, cy)
	cy += name.Height + 8
	for _, line := range []struct {
		text string
		c    folio.Color
	}{
		{p.Role, t.Blue},
		{p.Location, t.Muted},
	} {
		if line.text == "" {
			continue
		}
		n := paragraph(card, "contact-line", line.text, folio.DefaultFont(t.Body), line.c, cardPadding, cy, inner)
		n.TextBlock.Align = folio.TextAlignCenter
		cy += n.Height + 8
	}
	cy += 16
	button(card, "contact-top", "Back to Top", folio.DefaultFont(t.Body), t, (w-200)/2, cy, 200, 52)
	cy += 52 + cardPadding
	card.SetSize(w, cy)

	l.finish(sec, y+cy+sectionPadding)
}

func (s *contactSection) Mount(m *folio.Mounter) {
	reveal(m, m.Find("contact"), []*folio.Node{m.Find("contact-card")}, 0.8, 0)

	top := m.Find("contact-top")
	hoverScale(m, top, 1.05, 0.3)
	hero := m.Find("hero")
	vp := m.Viewport()
	m.OnClick(top, func(folio.PointerContext) {
		if hero != nil {
			vp.ScrollToNode(hero, 0, 1.2, easeInOut)
		} else {
			vp.ScrollTo(0, 1.2, easeInOut)
		}
	})
}

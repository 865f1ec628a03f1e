package portfolio

import (
	"math"
	"strings"

	"github.com/phanxgames/folio"
	"go.uber.org/zap"
)

const projectCardHeight = 300.0

// projectsSection is the filterable project grid followed by the skill
// groups.
type projectsSection struct {
	content *Content
	theme   Theme

	active  string
	visible []Project
	chips   map[string]*folio.Node
	cols    int
	cardW   float64

	m        *folio.Mounter
	grid     *folio.Node
	filterTL *folio.Timeline
	hovers   map[*folio.Node]*follower
}

func (s *projectsSection) Name() string { return "projects" }

// Filter returns the active category.
func (s *projectsSection) Filter() string { return s.active }

// Visible returns the projects currently shown in the grid.
func (s *projectsSection) Visible() []Project { return s.visible }

// categoryLabel turns a category key into a chip caption.
func categoryLabel(c string) string {
	switch {
	case c == CategoryAll:
		return "All"
	case len(c) <= 2:
		return strings.ToUpper(c)
	}
	return strings.ToUpper(c[:1]) + c[1:]
}

func columns(width float64) int {
	switch {
	case width >= 900:
		return 3
	case width >= 600:
		return 2
	}
	return 1
}

func (s *projectsSection) build(l *layout) {
	t := s.theme
	sec := l.section("projects")
	y := l.heading(sec, "projects-heading", "Featured Projects", sectionPadding)
	cw := l.contentWidth()

	// Filter chips, centered.
	chipFont := folio.DefaultFont(t.Small)
	cats := Categories(s.content.Projects)
	widths := make([]float64, len(cats))
	total := 0.0
	for i, c := range cats {
		w, _ := chipFont.MeasureString(categoryLabel(c))
		widths[i] = w + 32
		total += widths[i]
	}
	total += float64(len(cats)-1) * 8
	filters := folio.NewContainer("projects-filters")
	filters.SetPosition((l.width-total)/2, y)
	filters.SetSize(total, 36)
	sec.AddChild(filters)
	s.chips = make(map[string]*folio.Node, len(cats))
	x := 0.0
	for i, c := range cats {
		s.chips[c] = button(filters, "filter-"+c, categoryLabel(c), chipFont, t, x, 0, widths[i], 36)
		x += widths[i] + 8
	}
	y += 36 + 40

	// The grid keeps the height of the unfiltered list so filtering never
	// moves the sections below it.
	s.cols = columns(cw)
	s.cardW = (cw - float64(s.cols-1)*gap) / float64(s.cols)
	rows := int(math.Ceil(float64(len(s.content.Projects)) / float64(s.cols)))
	gridH := float64(rows)*(projectCardHeight+gap) - gap
	if rows == 0 {
		gridH = 0
	}
	grid := folio.NewContainer("projects-grid")
	grid.SetPosition(l.contentX(), y)
	grid.SetSize(cw, gridH)
	sec.AddChild(grid)
	s.active = CategoryAll
	s.renderGrid(grid, s.content.Projects)
	s.highlight()
	y += gridH + sectionPadding

	y = s.buildSkills(sec, l, y)
	l.finish(sec, y+sectionPadding)
}

func (s *projectsSection) buildSkills(sec *folio.Node, l *layout, y float64) float64 {
	t := s.theme
	h := label(sec, "skills-heading", "Technical Skills", folio.BoldFont(t.Heading*1.2), t.Text, 0, y)
	h.SetPosition((l.width-h.Width)/2, y)
	y += h.Height + 32

	cw := l.contentWidth()
	cols := columns(cw) + 1
	if cols > len(s.content.Skills) {
		cols = len(s.content.Skills)
	}
	if cols == 0 {
		return y
	}
	w := (cw - float64(cols-1)*gap) / float64(cols)
	skills := folio.NewContainer("skills-grid")
	skills.SetPosition(l.contentX(), y)
	sec.AddChild(skills)

	rowY, rowH := 0.0, 0.0
	for i, g := range s.content.Skills {
		col := i % cols
		if col == 0 && i > 0 {
			rowY += rowH + gap
			rowH = 0
		}
		card := panel(skills, "skill-card", float64(col)*(w+gap), rowY, w, 0, t.Glass)
		n := label(card, "skill-group", g.Name, folio.BoldFont(t.Body), t.Accent(i), cardPadding, cardPadding)
		ch := cardPadding + n.Height + 12
		ch += tags(card, "skill-tag", g.Items, t, cardPadding, ch, w-2*cardPadding) + cardPadding
		card.SetSize(w, ch)
		if ch > rowH {
			rowH = ch
		}
	}
	skills.SetSize(cw, rowY+rowH)
	return y + rowY + rowH
}

// renderGrid replaces the grid's cards with one card per project.
func (s *projectsSection) renderGrid(grid *folio.Node, list []Project) {
	for _, f := range s.hovers {
		f.stop()
	}
	s.hovers = nil
	clearChildren(grid)
	s.visible = list

	t := s.theme
	inner := s.cardW - 2*cardPadding
	for i, p := range list {
		x := float64(i%s.cols) * (s.cardW + gap)
		y := float64(i/s.cols) * (projectCardHeight + gap)
		card := panel(grid, "project-card", x, y, s.cardW, projectCardHeight, t.Glass)
		card.Interactable = true
		card.CenterPivot()

		year := label(card, "project-year", p.Year, folio.DefaultFont(t.Small), t.Subtle, 0, cardPadding)
		year.SetPosition(s.cardW-cardPadding-year.Width, cardPadding)

		cy := cardPadding
		n := paragraph(card, "project-title", p.Title, folio.BoldFont(t.Heading*0.85), t.Text, cardPadding, cy, inner-year.Width-gap)
		cy += n.Height + 12
		n = paragraph(card, "project-description", p.Description, folio.DefaultFont(t.Small), t.Muted, cardPadding, cy, inner)
		cy += n.Height + 12

		status := p.Status
		if p.Published() {
			status += " · " + p.Publication
		}
		color := t.Subtle
		if p.Published() {
			color = t.Cyan
		}
		label(card, "project-status", status, folio.DefaultFont(t.Small), color, cardPadding, cy)

		tagFont := folio.DefaultFont(t.Small)
		tagH := tagFont.LineHeight() + 10
		tags(card, "project-tag", p.Technologies, t, cardPadding, projectCardHeight-cardPadding-tagH, inner)
	}
}

func (s *projectsSection) highlight() {
	for c, chip := range s.chips {
		caption := chip.Children()[0]
		if c == s.active {
			chip.Color = s.theme.GlassActive
			caption.TextBlock.Color = s.theme.Blue
		} else {
			chip.Color = s.theme.Glass
			caption.TextBlock.Color = s.theme.Muted
		}
	}
}

// SetFilter shows only the projects in category and plays the card intro
// again. It reports whether the grid changed.
func (s *projectsSection) SetFilter(category string) bool {
	if s.m == nil || s.grid == nil || category == s.active {
		return false
	}
	s.active = category
	s.renderGrid(s.grid, FilterProjects(s.content.Projects, category))
	s.highlight()

	if s.filterTL != nil {
		s.filterTL.Kill()
	}
	s.filterTL = staggerFadeUp(s.grid.Children(), 30, 0.4, 0.08, easeOut)
	s.m.PlayOnce(s.filterTL)
	s.m.Logger().Debug("projects filtered",
		zap.String("category", category),
		zap.Int("visible", len(s.visible)),
	)
	return true
}

func (s *projectsSection) hover(card *folio.Node, scale float64) {
	if s.hovers == nil {
		s.hovers = make(map[*folio.Node]*follower)
	}
	f := s.hovers[card]
	if f == nil {
		f = &follower{anim: s.m.Stage().Animator(), node: card}
		s.hovers[card] = f
	}
	f.to(folio.Props{}.Scale(scale), 0.3, easeOut)
}

func (s *projectsSection) Mount(m *folio.Mounter) {
	grid := m.Find("projects-grid")
	if grid == nil {
		return
	}
	s.m, s.grid = m, grid
	if s.active != CategoryAll {
		s.active = CategoryAll
		s.renderGrid(grid, s.content.Projects)
		s.highlight()
	}
	m.Defer(func() {
		for _, f := range s.hovers {
			f.stop()
		}
		if s.filterTL != nil {
			s.filterTL.Kill()
			s.filterTL = nil
		}
		s.m = nil
	})

	cards := append([]*folio.Node(nil), grid.Children()...)
	reveal(m, m.Find("projects"), cards, 0.6, 0.2)

	// Cards are rebuilt on every filter change, so hover is handled once
	// for the whole grid rather than per card.
	enter := m.Stage().OnPointerEnter(func(ctx folio.PointerContext) {
		if ctx.Node != nil && ctx.Node.Parent == grid {
			s.hover(ctx.Node, 1.05)
		}
	})
	leave := m.Stage().OnPointerLeave(func(ctx folio.PointerContext) {
		if ctx.Node != nil && ctx.Node.Parent == grid {
			s.hover(ctx.Node, 1)
		}
	})
	m.Defer(enter.Remove)
	m.Defer(leave.Remove)

	for c := range s.chips {
		category := c
		chip := m.Find("filter-" + c)
		hoverScale(m, chip, 1.05, 0.2)
		m.OnClick(chip, func(folio.PointerContext) { s.SetFilter(category) })
	}
}

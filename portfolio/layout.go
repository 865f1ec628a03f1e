package portfolio

import (
	"github.com/phanxgames/folio"
)

const (
	maxContentWidth = 1152.0
	sectionPadding  = 80.0
	cardPadding     = 24.0
	gap             = 24.0
)

// layout places nodes top to bottom down the document. Every section's
// build method appends its subtree at l.y and advances l.y.
type layout struct {
	doc     *folio.Node
	overlay *folio.Node
	width   float64
	vh      float64
	y       float64
	theme   Theme
}

func newLayout(stage *folio.Stage, theme Theme) *layout {
	w, h := stage.ViewportSize()
	return &layout{
		doc:     stage.Document(),
		overlay: stage.Overlay(),
		width:   w,
		vh:      h,
		theme:   theme,
	}
}

// contentX and contentWidth give the centered column.
func (l *layout) contentWidth() float64 {
	w := l.width - 2*gap
	if w > maxContentWidth {
		w = maxContentWidth
	}
	return w
}

func (l *layout) contentX() float64 {
	return (l.width - l.contentWidth()) / 2
}

// section starts a full-width section container at the cursor.
func (l *layout) section(name string) *folio.Node {
	n := folio.NewContainer(name)
	n.SetPosition(0, l.y)
	l.doc.AddChild(n)
	return n
}

// finish sizes sec to height and advances the cursor past it.
func (l *layout) finish(sec *folio.Node, height float64) {
	sec.SetSize(l.width, height)
	l.y += height
}

func panel(parent *folio.Node, name string, x, y, w, h float64, c folio.Color) *folio.Node {
	n := folio.NewPanel(name, w, h, c)
	n.SetPosition(x, y)
	parent.AddChild(n)
	return n
}

func label(parent *folio.Node, name, content string, font folio.Font, c folio.Color, x, y float64) *folio.Node {
	n := folio.NewText(name, content, font)
	n.TextBlock.Color = c
	n.SetPosition(x, y)
	parent.AddChild(n)
	return n
}

func paragraph(parent *folio.Node, name, content string, font folio.Font, c folio.Color, x, y, wrap float64) *folio.Node {
	n := label(parent, name, content, font, c, x, y)
	n.SetWrapWidth(wrap)
	return n
}

// button is a glass panel with a centered caption, pivoted at its center so
// hover scaling grows it in place.
func button(parent *folio.Node, name, caption string, font folio.Font, t Theme, x, y, w, h float64) *folio.Node {
	b := panel(parent, name, x, y, w, h, t.Glass)
	txt := folio.NewText(name+"-label", caption, font)
	txt.TextBlock.Color = t.Text
	txt.SetPosition((w-txt.Width)/2, (h-txt.Height)/2)
	b.AddChild(txt)
	b.CenterPivot()
	return b
}

// heading draws a centered section title with an accent underline and
// returns the y just below it.
func (l *layout) heading(sec *folio.Node, name, title string, y float64) float64 {
	font := folio.DefaultFont(l.theme.Title)
	h := label(sec, name, title, font, l.theme.Text, 0, y)
	h.SetPosition((l.width-h.Width)/2, y)
	y += h.Height + 16
	panel(sec, name+"-rule", (l.width-96)/2, y, 96, 4, l.theme.Blue)
	return y + 4 + 64
}

// tags lays out technology pills left to right, wrapping at maxW, and
// returns the total height used.
func tags(parent *folio.Node, name string, items []string, t Theme, x, y, maxW float64) float64 {
	if len(items) == 0 {
		return 0
	}
	font := folio.DefaultFont(t.Small)
	const padX, padY, spacing = 12.0, 5.0, 8.0
	cx, cy := x, y
	rowH := 0.0
	for i, item := range items {
		w, _ := font.MeasureString(item)
		pw := w + 2*padX
		ph := font.LineHeight() + 2*padY
		if cx > x && cx+pw > x+maxW {
			cx = x
			cy += rowH + spacing
		}
		pill := panel(parent, name, cx, cy, pw, ph, t.Accent(i).WithAlpha(0.2))
		label(pill, name+"-label", item, font, t.Accent(i), padX, padY)
		cx += pw + spacing
		if ph > rowH {
			rowH = ph
		}
	}
	return cy + rowH - y
}

// clearChildren disposes every child of n.
func clearChildren(n *folio.Node) {
	for n.NumChildren() > 0 {
		kids := n.Children()
		kids[len(kids)-1].Dispose()
	}
}

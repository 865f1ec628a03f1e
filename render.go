package folio

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// commandType identifies the kind of render command.
type commandType uint8

const (
	commandPanel commandType = iota // scaled white pixel tinted with Color
	commandText                     // text/v2 draw per wrapped line
)

// renderCommand is a single draw instruction emitted during traversal.
type renderCommand struct {
	kind      commandType
	transform [6]float64 // view * world
	color     Color      // tint with world alpha folded into A
	node      *Node
}

// whitePixel is the source image for every panel.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// Draw renders the document through the viewport, then the overlay.
func (s *Stage) Draw(screen *ebiten.Image) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	screen.Fill(s.ClearColor.toRGBA())
	s.collectCommands()

	if s.debug {
		stats.traverseTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		t0 = time.Now()
	}

	s.submit(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLog(stats)
	}
}

// collectCommands rebuilds the command list for the current scroll offset:
// document nodes first, shifted by the viewport, then overlay nodes.
func (s *Stage) collectCommands() {
	s.commands = s.commands[:0]
	view := [6]float64{1, 0, 0, 1, 0, -s.viewport.ScrollY}
	bounds := Rect{Width: s.viewport.Width, Height: s.viewport.Height}
	s.traverse(s.document, view, bounds, identityTransform, 1, false)
	s.traverse(s.overlay, identityTransform, bounds, identityTransform, 1, false)
}

// traverse walks the tree depth-first, updating transforms and emitting
// commands for visible panels and text that intersect bounds.
func (s *Stage) traverse(n *Node, view [6]float64, bounds Rect, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	if !n.Visible {
		return
	}

	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	if n.worldAlpha > 0 && n.Type != NodeTypeContainer {
		m := multiplyAffine(view, n.worldTransform)
		if !shouldCull(n, m, bounds) {
			s.commands = append(s.commands, renderCommand{
				kind:      commandForType(n.Type),
				transform: m,
				color:     Color{n.Color.R, n.Color.G, n.Color.B, n.Color.A * n.worldAlpha},
				node:      n,
			})
		}
	}

	for _, child := range sortedChildren(n) {
		s.traverse(child, view, bounds, n.worldTransform, n.worldAlpha, recompute)
	}
}

func commandForType(t NodeType) commandType {
	if t == NodeTypeText {
		return commandText
	}
	return commandPanel
}

// submit draws the collected commands in order.
func (s *Stage) submit(screen *ebiten.Image) {
	for i := range s.commands {
		cmd := &s.commands[i]
		switch cmd.kind {
		case commandPanel:
			drawPanel(screen, cmd)
		case commandText:
			drawText(screen, cmd)
		}
	}
}

func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

func drawPanel(screen *ebiten.Image, cmd *renderCommand) {
	n := cmd.node
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(n.Width, n.Height)
	op.GeoM.Concat(geoM(cmd.transform))
	c := cmd.color
	op.ColorScale.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
	screen.DrawImage(ensureWhitePixel(), op)
}

func drawText(screen *ebiten.Image, cmd *renderCommand) {
	tb := cmd.node.TextBlock
	if tb == nil {
		return
	}
	f, ok := tb.Font.(*TTFFont)
	if !ok {
		return
	}
	lines := tb.layout()
	lh := tb.lineHeight()
	boxW := tb.measuredW
	if tb.WrapWidth > 0 {
		boxW = tb.WrapWidth
	}
	c := cmd.color
	tc := tb.Color
	for i, line := range lines {
		if line.text == "" {
			continue
		}
		var x float64
		switch tb.Align {
		case TextAlignCenter:
			x = (boxW - line.width) / 2
		case TextAlignRight:
			x = boxW - line.width
		}
		op := &text.DrawOptions{}
		op.GeoM.Translate(x, float64(i)*lh)
		op.GeoM.Concat(geoM(cmd.transform))
		a := c.A * tc.A
		op.ColorScale.Scale(float32(c.R*tc.R*a), float32(c.G*tc.G*a), float32(c.B*tc.B*a), float32(a))
		text.Draw(screen, line.text, f.Face(), op)
	}
}

// --- Ordering ---

// sortedChildren returns n's children in ZIndex order, rebuilding the
// cached order when it is stale.
func sortedChildren(n *Node) []*Node {
	if len(n.children) == 0 {
		return nil
	}
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		return n.sortedChildren
	}
	return n.children
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for a node.
// Uses insertion sort: zero allocations, stable, and optimal for the typical
// case of few children that are nearly sorted.
func rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// --- Culling ---

// worldAABB computes the axis-aligned bounding box for a rectangle of size
// (w, h) transformed by the given affine matrix.
func worldAABB(transform [6]float64, w, h float64) Rect {
	a, b, cc, d, tx, ty := transform[0], transform[2], transform[1], transform[3], transform[4], transform[5]

	x0, y0 := tx, ty
	x1, y1 := a*w+tx, cc*w+ty
	x2, y2 := a*w+b*h+tx, cc*w+d*h+ty
	x3, y3 := b*h+tx, d*h+ty

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// shouldCull reports whether n, drawn with transform m, lies outside bounds.
// Nodes without a size are never culled.
func shouldCull(n *Node, m [6]float64, bounds Rect) bool {
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return !worldAABB(m, n.Width, n.Height).Intersects(bounds)
}

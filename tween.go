package folio

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Property names one animatable float64 field of a Node.
type Property uint8

const (
	PropX Property = iota
	PropY
	PropScaleX
	PropScaleY
	PropRotation
	PropAlpha
	propCount
)

var propertyNames = [propCount]string{"x", "y", "scaleX", "scaleY", "rotation", "alpha"}

func (p Property) String() string {
	if p < propCount {
		return propertyNames[p]
	}
	return "unknown"
}

// field returns a pointer to the node field backing p.
func (p Property) field(n *Node) *float64 {
	switch p {
	case PropX:
		return &n.X
	case PropY:
		return &n.Y
	case PropScaleX:
		return &n.ScaleX
	case PropScaleY:
		return &n.ScaleY
	case PropRotation:
		return &n.Rotation
	case PropAlpha:
		return &n.Alpha
	}
	return nil
}

// Props is a set of target values keyed by property.
type Props map[Property]float64

// Scale returns a copy of p with PropScaleX and PropScaleY both set to s.
func (p Props) Scale(s float64) Props {
	out := p.clone()
	out[PropScaleX] = s
	out[PropScaleY] = s
	return out
}

func (p Props) clone() Props {
	out := make(Props, len(p)+2)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// keys returns the properties present in p in declaration order so
// iteration is deterministic.
func (p Props) keys() []Property {
	keys := make([]Property, 0, len(p))
	for prop := Property(0); prop < propCount; prop++ {
		if _, ok := p[prop]; ok {
			keys = append(keys, prop)
		}
	}
	return keys
}

// TweenGroup animates any number of float64 fields on a Node simultaneously.
// Create one via TweenTo or the convenience constructors and either call
// Update(dt) each frame or hand it to a Stage's Animator. The group
// auto-applies values and marks the node dirty. If the target node is
// disposed, the group stops immediately.
type TweenGroup struct {
	tweens []*gween.Tween
	fields []*float64
	target *Node
	Done   bool
}

// TweenTo creates a TweenGroup that animates each property in to from its
// current value over duration seconds using fn.
func TweenTo(node *Node, to Props, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	if fn == nil {
		fn = ease.Linear
	}
	for _, prop := range to.keys() {
		f := prop.field(node)
		g.tweens = append(g.tweens, gween.New(float32(*f), float32(to[prop]), duration, fn))
		g.fields = append(g.fields, f)
	}
	if len(g.tweens) == 0 {
		g.Done = true
	}
	return g
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Cancel stops the group where it is. Fields keep their current values.
func (g *TweenGroup) Cancel() {
	g.Done = true
}

// Target returns the node the group animates.
func (g *TweenGroup) Target() *Node {
	return g.target
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenTo(node, Props{PropX: toX, PropY: toY}, duration, fn)
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY to
// the given target values over the specified duration using the easing function.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenTo(node, Props{PropScaleX: toSX, PropScaleY: toSY}, duration, fn)
}

// TweenAlpha creates a TweenGroup that animates node.Alpha to the target value
// over the specified duration using the easing function.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenTo(node, Props{PropAlpha: to}, duration, fn)
}

// TweenColor creates a TweenGroup that animates all four components of
// node.Color (R, G, B, A) to the target color over the specified duration.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{target: node}
	from := [4]float64{node.Color.R, node.Color.G, node.Color.B, node.Color.A}
	dest := [4]float64{to.R, to.G, to.B, to.A}
	fields := [4]*float64{&node.Color.R, &node.Color.G, &node.Color.B, &node.Color.A}
	for i := range fields {
		g.tweens = append(g.tweens, gween.New(float32(from[i]), float32(dest[i]), duration, fn))
		g.fields = append(g.fields, fields[i])
	}
	return g
}

// TweenRotation creates a TweenGroup that animates node.Rotation to the target
// value over the specified duration using the easing function.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return TweenTo(node, Props{PropRotation: to}, duration, fn)
}

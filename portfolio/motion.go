package portfolio

import (
	"math"

	"github.com/phanxgames/folio"
	"github.com/tanema/gween/ease"
)

// follower eases one node toward a moving target. Each call to to replaces
// the running tween, so rapid pointer or scroll updates never stack up
// registrations. A nil follower ignores every call.
type follower struct {
	anim *folio.Animator
	node *folio.Node
	tw   *folio.TweenGroup
}

// newFollower binds a follower to node for the lifetime of the mount.
// It returns nil when node is nil.
func newFollower(m *folio.Mounter, node *folio.Node) *follower {
	if node == nil {
		return nil
	}
	f := &follower{anim: m.Stage().Animator(), node: node}
	m.Defer(f.stop)
	return f
}

func (f *follower) to(props folio.Props, duration float32, fn ease.TweenFunc) {
	if f == nil || f.node.IsDisposed() {
		return
	}
	f.stop()
	f.tw = folio.TweenTo(f.node, props, duration, fn)
	f.anim.Add(f.tw)
}

func (f *follower) stop() {
	if f == nil || f.tw == nil {
		return
	}
	f.tw.Cancel()
	f.anim.Remove(f.tw)
	f.tw = nil
}

// hoverScale grows node to scale while the pointer is over it.
func hoverScale(m *folio.Mounter, node *folio.Node, scale float64, duration float32) {
	f := newFollower(m, node)
	if f == nil {
		return
	}
	m.OnHover(node,
		func(folio.PointerContext) { f.to(folio.Props{}.Scale(scale), duration, easeOut) },
		func(folio.PointerContext) { f.to(folio.Props{}.Scale(1), duration, easeOut) },
	)
}

// Frequently used curves.
var (
	easeOut   = folio.EaseByName("power2.out")
	easeIn    = folio.EaseByName("power2.in")
	easeInOut = folio.EaseByName("power2.inOut")
	easeOut3  = folio.EaseByName("power3.out")
	easeBack  = folio.EaseByName("back.out(1.7)")
	easeSine  = folio.EaseByName("sine.inOut")
)

func deg(d float64) float64 { return d * math.Pi / 180 }

// fadeUp is the from-state shared by every reveal-on-scroll card.
func fadeUp(n *folio.Node, dy float64) (from, to folio.Props) {
	return folio.Props{folio.PropAlpha: 0, folio.PropY: n.Y + dy},
		folio.Props{folio.PropAlpha: 1, folio.PropY: n.Y}
}

// revealWindow is where reveal-on-scroll content plays: from the trigger's
// top reaching 80% of the viewport until its bottom passes 20%.
var revealWindow = folio.MustParseWindow("top 80%", "bottom 20%")

// reveal fades nodes up into place, each starting each seconds after the
// previous one, when trigger scrolls into revealWindow. Scrolling back
// above the window reverses it.
func reveal(m *folio.Mounter, trigger *folio.Node, nodes []*folio.Node, duration, each float32) *folio.Timeline {
	tl := staggerFadeUp(nodes, 50, duration, each, easeOut)
	m.ScrollPlay(trigger, revealWindow, tl, folio.DefaultToggleActions)
	return tl
}

// staggerFadeUp builds a timeline that fades each node up from dy below
// its current position.
func staggerFadeUp(nodes []*folio.Node, dy float64, duration, each float32, fn ease.TweenFunc) *folio.Timeline {
	b := folio.NewTimelineBuilder()
	for i, n := range nodes {
		if n == nil {
			continue
		}
		var offset float32
		if i > 0 {
			offset = each - duration
		}
		from, to := fadeUp(n, dy)
		b.FromTo(n, from, to, duration, fn, offset)
	}
	return b.Build()
}

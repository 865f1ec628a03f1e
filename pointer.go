package folio

import (
	"github.com/tanema/gween/ease"
)

// PointerSource delivers raw pointer moves. A Stage is a PointerSource.
type PointerSource interface {
	OnPointerMove(fn func(PointerContext)) CallbackHandle
	ViewportSize() (w, h float64)
}

// PointerOffset is the pointer position relative to the viewport center,
// normalized so each axis runs from -1 at one edge to 1 at the other.
type PointerOffset struct {
	X, Y float64
	// ScreenX and ScreenY are the raw coordinates the offset came from.
	ScreenX, ScreenY float64
}

// Normalize maps v in [0, size] to [-1, 1]. A non-positive size yields 0.
func Normalize(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	return clamp((v/size-0.5)*2, -1, 1)
}

type pointerSub struct {
	fn      func(PointerOffset)
	removed bool
}

// PointerTracker shares one pointer-move listener among any number of
// subscribers. The listener is attached on the first subscription and
// removed with the last one.
type PointerTracker struct {
	src      PointerSource
	handle   CallbackHandle
	attached bool
	subs     []*pointerSub
	buf      []*pointerSub
	last     PointerOffset
}

// NewPointerTracker creates a tracker fed by src.
func NewPointerTracker(src PointerSource) *PointerTracker {
	return &PointerTracker{src: src}
}

// Subscribe registers fn for every pointer move. The returned function
// unsubscribes; calling it again is a no-op.
func (t *PointerTracker) Subscribe(fn func(PointerOffset)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	sub := &pointerSub{fn: fn}
	t.subs = append(t.subs, sub)
	if !t.attached {
		t.handle = t.src.OnPointerMove(t.onMove)
		t.attached = true
	}
	return func() { t.unsubscribe(sub) }
}

func (t *PointerTracker) unsubscribe(sub *pointerSub) {
	if sub.removed {
		return
	}
	sub.removed = true
	for i, s := range t.subs {
		if s == sub {
			copy(t.subs[i:], t.subs[i+1:])
			t.subs[len(t.subs)-1] = nil
			t.subs = t.subs[:len(t.subs)-1]
			break
		}
	}
	if len(t.subs) == 0 && t.attached {
		t.handle.Remove()
		t.handle = CallbackHandle{}
		t.attached = false
	}
}

// onMove is the single listener attached to the source.
func (t *PointerTracker) onMove(ctx PointerContext) {
	w, h := t.src.ViewportSize()
	off := PointerOffset{
		X:       Normalize(ctx.GlobalX, w),
		Y:       Normalize(ctx.GlobalY, h),
		ScreenX: ctx.GlobalX,
		ScreenY: ctx.GlobalY,
	}
	t.Broadcast(off)
}

// Broadcast delivers off to every subscriber. Subscribers removed during
// the broadcast are skipped. Subscribers must not depend on each other's
// order.
func (t *PointerTracker) Broadcast(off PointerOffset) {
	t.last = off
	t.buf = append(t.buf[:0], t.subs...)
	for _, s := range t.buf {
		if s.removed {
			continue
		}
		s.fn(off)
	}
	for i := range t.buf {
		t.buf[i] = nil
	}
}

// Listeners returns 1 while the source listener is attached and 0 otherwise.
func (t *PointerTracker) Listeners() int {
	if t.attached {
		return 1
	}
	return 0
}

// Subscribers returns the number of live subscriptions.
func (t *PointerTracker) Subscribers() int {
	return len(t.subs)
}

// Last returns the most recent offset broadcast.
func (t *PointerTracker) Last() PointerOffset {
	return t.last
}

// Parallax eases a node toward its base position shifted by the pointer
// offset scaled by Depth and Range. Each move replaces the previous tween.
type Parallax struct {
	Node     *Node
	BaseX    float64
	BaseY    float64
	Depth    float64
	Range    float64
	Duration float32
	Ease     ease.TweenFunc
	// Run hands each new tween to whatever drives it, usually an Animator.
	Run func(*TweenGroup)

	tween *TweenGroup
}

// NewParallax captures node's current position as its base.
func NewParallax(node *Node, depth, rng float64, duration float32, run func(*TweenGroup)) *Parallax {
	return &Parallax{
		Node:     node,
		BaseX:    node.X,
		BaseY:    node.Y,
		Depth:    depth,
		Range:    rng,
		Duration: duration,
		Ease:     ease.OutCubic,
		Run:      run,
	}
}

// Handle is a PointerTracker subscriber.
func (p *Parallax) Handle(off PointerOffset) {
	if p.Node == nil || p.Node.IsDisposed() {
		return
	}
	if p.tween != nil {
		p.tween.Cancel()
	}
	x := p.BaseX + off.X*p.Depth*p.Range
	y := p.BaseY + off.Y*p.Depth*p.Range
	p.tween = TweenPosition(p.Node, x, y, p.Duration, p.Ease)
	if p.Run != nil {
		p.Run(p.tween)
	}
}

// Stop cancels the running tween, if any.
func (p *Parallax) Stop() {
	if p.tween != nil {
		p.tween.Cancel()
		p.tween = nil
	}
}

// Tween returns the tween started by the last Handle call.
func (p *Parallax) Tween() *TweenGroup {
	return p.tween
}

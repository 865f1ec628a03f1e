package folio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ScrollDirection tells a scroll callback how progress changed.
type ScrollDirection uint8

const (
	// ScrollEnter reports progress moving forward inside the window.
	ScrollEnter ScrollDirection = iota
	// ScrollReverse reports progress moving backward inside the window.
	ScrollReverse
	// ScrollLeave follows the last Enter or Reverse of a crossing; progress
	// is 1 for a forward exit and 0 for a backward one.
	ScrollLeave
)

func (d ScrollDirection) String() string {
	switch d {
	case ScrollEnter:
		return "enter"
	case ScrollReverse:
		return "reverse"
	case ScrollLeave:
		return "leave"
	}
	return "unknown"
}

// Marker pins a point on the trigger element to a point in the viewport.
// Each side is a fraction of the respective height plus a pixel offset.
type Marker struct {
	Element    float64
	ElementPx  float64
	Viewport   float64
	ViewportPx float64
}

// Window is the scroll range during which a binding's progress runs from
// 0 to 1: progress is 0 when Start is met and 1 when End is met.
type Window struct {
	Start Marker
	End   Marker
}

// DefaultWindow runs from the element's top meeting the viewport bottom to
// its bottom meeting the viewport top.
func DefaultWindow() Window {
	return Window{
		Start: Marker{Element: 0, Viewport: 1},
		End:   Marker{Element: 1, Viewport: 0},
	}
}

// ParseMarker parses "<element> <viewport>" where each side is one of top,
// center, bottom, N% or Npx. "top 80%" means the element's top edge meets
// the line 80% down the viewport.
func ParseMarker(s string) (Marker, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Marker{}, fmt.Errorf("marker %q: want two positions", s)
	}
	ef, epx, err := parsePosition(fields[0])
	if err != nil {
		return Marker{}, fmt.Errorf("marker %q: %w", s, err)
	}
	vf, vpx, err := parsePosition(fields[1])
	if err != nil {
		return Marker{}, fmt.Errorf("marker %q: %w", s, err)
	}
	return Marker{Element: ef, ElementPx: epx, Viewport: vf, ViewportPx: vpx}, nil
}

func parsePosition(s string) (frac, px float64, err error) {
	switch s {
	case "top":
		return 0, 0, nil
	case "center":
		return 0.5, 0, nil
	case "bottom":
		return 1, 0, nil
	}
	if v, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("bad percentage %q", s)
		}
		return f / 100, 0, nil
	}
	if v, ok := strings.CutSuffix(s, "px"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("bad pixel offset %q", s)
		}
		return 0, f, nil
	}
	return 0, 0, fmt.Errorf("unknown position %q", s)
}

// ParseWindow parses start and end markers such as "top 80%" and "bottom 20%".
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseMarker(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseMarker(end)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: s, End: e}, nil
}

// MustParseWindow is ParseWindow for literals; it panics on a bad marker.
func MustParseWindow(start, end string) Window {
	w, err := ParseWindow(start, end)
	if err != nil {
		panic("folio: " + err.Error())
	}
	return w
}

// scrollFor returns the scroll offset at which m is met for an element
// occupying [top, top+height) in a viewport of height vh.
func (m Marker) scrollFor(top, height, vh float64) float64 {
	return top + m.Element*height + m.ElementPx - m.Viewport*vh - m.ViewportPx
}

// ScrollBinding is one Observe registration. Release it to stop callbacks.
type ScrollBinding struct {
	vp       *Viewport
	trigger  *Node
	window   Window
	fn       func(progress float64, dir ScrollDirection)
	progress float64
	removed  bool
}

// Release stops the binding. No callback fires after Release returns;
// releasing twice is a no-op.
func (b *ScrollBinding) Release() {
	if b == nil || b.removed {
		return
	}
	b.vp.Unobserve(b)
}

// Released reports whether the binding has been released.
func (b *ScrollBinding) Released() bool { return b == nil || b.removed }

// Progress returns the last progress delivered to the callback.
func (b *ScrollBinding) Progress() float64 { return b.progress }

// Trigger returns the observed node.
func (b *ScrollBinding) Trigger() *Node { return b.trigger }

// Viewport is the visible slice of a vertically scrolling document. It owns
// the scroll offset and evaluates scroll bindings once per frame.
type Viewport struct {
	// Width and Height are the visible size in pixels.
	Width, Height float64
	// ScrollY is the document offset at the top of the viewport.
	ScrollY float64
	// ContentHeight is the full document height; scrolling is clamped to it.
	ContentHeight float64

	bindings []*ScrollBinding
	buf      []*ScrollBinding

	scrollTween *gween.Tween
}

// NewViewport creates a Viewport of the given size.
func NewViewport(w, h float64) *Viewport {
	return &Viewport{Width: w, Height: h, ContentHeight: h}
}

// MaxScroll returns the largest valid ScrollY.
func (v *Viewport) MaxScroll() float64 {
	if v.ContentHeight <= v.Height {
		return 0
	}
	return v.ContentHeight - v.Height
}

// PageProgress returns ScrollY as a fraction of MaxScroll.
func (v *Viewport) PageProgress() float64 {
	m := v.MaxScroll()
	if m <= 0 {
		return 0
	}
	return clamp01(v.ScrollY / m)
}

// SetScroll jumps to y, clamped to the document, and cancels any animated
// scroll.
func (v *Viewport) SetScroll(y float64) {
	v.scrollTween = nil
	v.ScrollY = clamp(y, 0, v.MaxScroll())
}

// ScrollBy moves the scroll offset by dy pixels.
func (v *Viewport) ScrollBy(dy float64) {
	v.SetScroll(v.ScrollY + dy)
}

// ScrollTo animates the scroll offset to y over duration seconds.
func (v *Viewport) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	y = clamp(y, 0, v.MaxScroll())
	if duration <= 0 {
		v.SetScroll(y)
		return
	}
	if easeFn == nil {
		easeFn = ease.InOutCubic
	}
	v.scrollTween = gween.New(float32(v.ScrollY), float32(y), duration, easeFn)
}

// ScrollToNode animates so that n's top sits offset pixels below the
// viewport top.
func (v *Viewport) ScrollToNode(n *Node, offset float64, duration float32, easeFn ease.TweenFunc) {
	if n == nil || n.IsDisposed() {
		return
	}
	n.UpdateTransforms()
	v.ScrollTo(n.WorldBounds().Y-offset, duration, easeFn)
}

// IsScrolling reports whether an animated scroll is in progress.
func (v *Viewport) IsScrolling() bool {
	return v.scrollTween != nil
}

// Observe registers fn to receive trigger's progress through w. Bindings
// are evaluated once per frame in registration order, using the scroll
// offset of that frame. Returns nil when trigger is nil.
func (v *Viewport) Observe(trigger *Node, w Window, fn func(progress float64, dir ScrollDirection)) *ScrollBinding {
	if trigger == nil || fn == nil {
		return nil
	}
	b := &ScrollBinding{vp: v, trigger: trigger, window: w, fn: fn}
	v.bindings = append(v.bindings, b)
	return b
}

// Unobserve removes b. It is safe to call from inside a callback and on a
// binding that was already removed.
func (v *Viewport) Unobserve(b *ScrollBinding) {
	if b == nil || b.removed {
		return
	}
	b.removed = true
	for i, x := range v.bindings {
		if x == b {
			copy(v.bindings[i:], v.bindings[i+1:])
			v.bindings[len(v.bindings)-1] = nil
			v.bindings = v.bindings[:len(v.bindings)-1]
			return
		}
	}
}

// Bindings returns the number of live bindings.
func (v *Viewport) Bindings() int {
	return len(v.bindings)
}

// Update advances an animated scroll by dt, clamps the offset and
// evaluates every binding.
func (v *Viewport) Update(dt float32) {
	if v.scrollTween != nil {
		val, done := v.scrollTween.Update(dt)
		v.ScrollY = float64(val)
		if done {
			v.scrollTween = nil
		}
	}
	v.ScrollY = clamp(v.ScrollY, 0, v.MaxScroll())
	v.evaluate()
}

// evaluate delivers progress changes to every binding. Bindings released
// during the pass receive nothing further.
func (v *Viewport) evaluate() {
	v.buf = append(v.buf[:0], v.bindings...)
	var lastRoot *Node
	for _, b := range v.buf {
		if b.removed {
			continue
		}
		if b.trigger.IsDisposed() {
			continue
		}
		root := rootOf(b.trigger)
		if root != lastRoot {
			root.UpdateTransforms()
			lastRoot = root
		}
		v.deliver(b, v.progressOf(b))
	}
	for i := range v.buf {
		v.buf[i] = nil
	}
}

// progressOf maps the current scroll offset through b's window.
func (v *Viewport) progressOf(b *ScrollBinding) float64 {
	r := b.trigger.WorldBounds()
	start := b.window.Start.scrollFor(r.Y, r.Height, v.Height)
	end := b.window.End.scrollFor(r.Y, r.Height, v.Height)
	if end <= start {
		if v.ScrollY >= start {
			return 1
		}
		return 0
	}
	return clamp01((v.ScrollY - start) / (end - start))
}

func (v *Viewport) deliver(b *ScrollBinding, p float64) {
	prev := b.progress
	if p == prev {
		return
	}
	b.progress = p
	dir := ScrollEnter
	if p < prev {
		dir = ScrollReverse
	}
	b.fn(p, dir)
	if b.removed {
		return
	}
	if (dir == ScrollEnter && p >= 1) || (dir == ScrollReverse && p <= 0) {
		b.fn(p, ScrollLeave)
	}
}

func rootOf(n *Node) *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// --- Toggle actions ---

// ToggleAction is what a scroll-driven timeline does at a window crossing.
type ToggleAction uint8

const (
	ActionNone ToggleAction = iota
	ActionPlay
	ActionPause
	ActionResume
	ActionReverse
	ActionRestart
	ActionReset
	ActionComplete
)

var toggleActionNames = map[string]ToggleAction{
	"none":     ActionNone,
	"play":     ActionPlay,
	"pause":    ActionPause,
	"resume":   ActionResume,
	"reverse":  ActionReverse,
	"restart":  ActionRestart,
	"reset":    ActionReset,
	"complete": ActionComplete,
}

// ToggleActions maps the four window crossings to timeline actions.
type ToggleActions struct {
	OnEnter     ToggleAction
	OnLeave     ToggleAction
	OnEnterBack ToggleAction
	OnLeaveBack ToggleAction
}

// DefaultToggleActions plays on enter and rewinds when scrolled back above
// the window.
var DefaultToggleActions = ToggleActions{OnEnter: ActionPlay, OnLeaveBack: ActionReverse}

// ParseToggleActions parses four space-separated action names in the order
// enter, leave, enterBack, leaveBack, e.g. "play none none reverse".
func ParseToggleActions(s string) (ToggleActions, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return ToggleActions{}, fmt.Errorf("toggle actions %q: want 4 names, got %d", s, len(fields))
	}
	var out [4]ToggleAction
	for i, f := range fields {
		a, ok := toggleActionNames[f]
		if !ok {
			return ToggleActions{}, fmt.Errorf("toggle actions %q: unknown action %q", s, f)
		}
		out[i] = a
	}
	return ToggleActions{OnEnter: out[0], OnLeave: out[1], OnEnterBack: out[2], OnLeaveBack: out[3]}, nil
}

// Apply performs a on tl.
func (a ToggleAction) Apply(tl *Timeline) {
	switch a {
	case ActionPlay:
		tl.Play()
	case ActionPause:
		tl.Pause()
	case ActionResume:
		tl.Resume()
	case ActionReverse:
		tl.Reverse()
	case ActionRestart:
		tl.Restart()
	case ActionReset:
		tl.Seek(0).Pause()
	case ActionComplete:
		tl.Complete()
	}
}

// ToggleHandler returns a scroll callback that applies actions to tl at each
// crossing and then hands tl to run, typically an Animator's Add.
func ToggleHandler(tl *Timeline, actions ToggleActions, run func(*Timeline)) func(float64, ScrollDirection) {
	inside := false
	return func(p float64, dir ScrollDirection) {
		var act ToggleAction
		switch {
		case dir == ScrollLeave:
			if !inside {
				return
			}
			inside = false
			if p >= 1 {
				act = actions.OnLeave
			} else {
				act = actions.OnLeaveBack
			}
		case !inside:
			inside = true
			if dir == ScrollEnter {
				act = actions.OnEnter
			} else {
				act = actions.OnEnterBack
			}
		default:
			return
		}
		act.Apply(tl)
		if run != nil {
			run(tl)
		}
	}
}

package folio

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	wheelStep    = 60.0 // pixels per wheel notch
	arrowStep    = 80.0 // pixels per arrow key press
	pageFraction = 0.9  // fraction of the viewport scrolled by page keys
)

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type tickHandler struct {
	id uint32
	fn func(dt float32)
}

type handlerRegistry struct {
	pointerMove  []pointerHandler
	pointerEnter []pointerHandler
	pointerLeave []pointerHandler
	click        []pointerHandler
	wheel        []pointerHandler
	tick         []tickHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered stage-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Removing a handle
// twice, or the zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	case EventPointerEnter:
		h.reg.pointerEnter = removePointerHandler(h.reg.pointerEnter, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removePointerHandler(h.reg.pointerLeave, h.id)
	case EventClick:
		h.reg.click = removePointerHandler(h.reg.click, h.id)
	case EventWheel:
		h.reg.wheel = removePointerHandler(h.reg.wheel, h.id)
	case EventTick:
		for i := range h.reg.tick {
			if h.reg.tick[i].id == h.id {
				h.reg.tick = append(h.reg.tick[:i], h.reg.tick[i+1:]...)
				return
			}
		}
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func (r *handlerRegistry) add(list *[]pointerHandler, event EventType, fn func(PointerContext)) CallbackHandle {
	r.nextID++
	*list = append(*list, pointerHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

// count returns the number of registered handlers for event.
func (r *handlerRegistry) count(event EventType) int {
	switch event {
	case EventPointerMove:
		return len(r.pointerMove)
	case EventPointerEnter:
		return len(r.pointerEnter)
	case EventPointerLeave:
		return len(r.pointerLeave)
	case EventClick:
		return len(r.click)
	case EventWheel:
		return len(r.wheel)
	case EventTick:
		return len(r.tick)
	}
	return 0
}

// dispatch calls every handler in a snapshot of list, skipping handlers
// removed earlier in the same pass.
func dispatch(list []pointerHandler, current func() []pointerHandler, ctx PointerContext) {
	if len(list) == 0 {
		return
	}
	snap := make([]pointerHandler, len(list))
	copy(snap, list)
	for _, h := range snap {
		if !containsHandler(current(), h.id) {
			continue
		}
		h.fn(ctx)
	}
}

func containsHandler(list []pointerHandler, id uint32) bool {
	for i := range list {
		if list[i].id == id {
			return true
		}
	}
	return false
}

func containsTick(list []tickHandler, id uint32) bool {
	for i := range list {
		if list[i].id == id {
			return true
		}
	}
	return false
}

// --- Stage-level event registration ---

// OnPointerMove registers a stage-level callback for pointer move events.
// GlobalX and GlobalY are screen coordinates.
func (s *Stage) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(&s.handlers.pointerMove, EventPointerMove, fn)
}

// OnPointerEnter registers a stage-level callback fired when the pointer
// moves over a new interactable node.
func (s *Stage) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(&s.handlers.pointerEnter, EventPointerEnter, fn)
}

// OnPointerLeave registers a stage-level callback fired when the pointer
// leaves an interactable node.
func (s *Stage) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(&s.handlers.pointerLeave, EventPointerLeave, fn)
}

// OnClick registers a stage-level callback for click events.
func (s *Stage) OnClick(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(&s.handlers.click, EventClick, fn)
}

// OnWheel registers a stage-level callback fired after the page scrolls by
// wheel or keyboard.
func (s *Stage) OnWheel(fn func(PointerContext)) CallbackHandle {
	return s.handlers.add(&s.handlers.wheel, EventWheel, fn)
}

// OnTick registers a callback run once per frame after animations and
// scroll bindings have been updated.
func (s *Stage) OnTick(fn func(dt float32)) CallbackHandle {
	s.handlers.nextID++
	s.handlers.tick = append(s.handlers.tick, tickHandler{id: s.handlers.nextID, fn: fn})
	return CallbackHandle{id: s.handlers.nextID, reg: &s.handlers, event: EventTick}
}

// HandlerCount returns how many stage-level callbacks are registered for event.
func (s *Stage) HandlerCount(event EventType) int {
	return s.handlers.count(event)
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's
// Width x Height rectangle.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending interactable nodes to buf. Invisible subtrees are skipped.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if n.Interactable && (n.Width > 0 || n.Height > 0) {
		buf = append(buf, n)
	}
	for _, child := range sortedChildren(n) {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node under the screen point
// (sx, sy). Overlay nodes sit above the document. The returned world
// coordinates are in the hit node's layer space.
func (s *Stage) hitTest(sx, sy float64) (*Node, float64, float64) {
	s.hitBuf = collectInteractable(s.overlay, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(sx, sy)
		if nodeContainsLocal(n, lx, ly) {
			return n, sx, sy
		}
	}

	dx, dy := s.ScreenToDocument(sx, sy)
	s.hitBuf = collectInteractable(s.document, s.hitBuf[:0])
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(dx, dy)
		if nodeContainsLocal(n, lx, ly) {
			return n, dx, dy
		}
	}
	return nil, sx, sy
}

// --- Input processing ---

// processInput reads the mouse, wheel and scroll keys from Ebitengine.
// Injected events take precedence over real input for the frame.
func (s *Stage) processInput() {
	if s.processInjectedInput() {
		return
	}

	_, wy := ebiten.Wheel()
	dy := -wy * wheelStep
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		dy += arrowStep
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		dy -= arrowStep
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		dy += s.viewport.Height * pageFraction
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		dy -= s.viewport.Height * pageFraction
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		dy = -s.viewport.ScrollY
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		dy = s.viewport.MaxScroll() - s.viewport.ScrollY
	}
	if dy != 0 {
		s.processWheel(dy)
	}

	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	s.processPointer(float64(mx), float64(my), pressed)
}

// processWheel scrolls the page by dy pixels and notifies wheel handlers.
func (s *Stage) processWheel(dy float64) {
	s.viewport.ScrollBy(dy)
	ctx := PointerContext{GlobalX: s.ptr.lastX, GlobalY: s.ptr.lastY, WheelY: dy}
	dispatch(s.handlers.wheel, func() []pointerHandler { return s.handlers.wheel }, ctx)
}

// processPointer runs the pointer state machine for screen point (sx, sy).
func (s *Stage) processPointer(sx, sy float64, pressed bool) {
	ps := &s.ptr

	if ps.hoverNode != nil && ps.hoverNode.IsDisposed() {
		ps.hoverNode = nil
	}
	if ps.hitNode != nil && ps.hitNode.IsDisposed() {
		ps.hitNode = nil
	}

	target, wx, wy := s.hitTest(sx, sy)

	if target != ps.hoverNode {
		if ps.hoverNode != nil {
			s.firePointer(EventPointerLeave, ps.hoverNode, sx, sy)
		}
		if target != nil {
			s.fireAt(EventPointerEnter, target, sx, sy, wx, wy)
		}
		ps.hoverNode = target
	}

	if sx != ps.lastX || sy != ps.lastY {
		ps.lastX = sx
		ps.lastY = sy
		s.fireAt(EventPointerMove, target, sx, sy, wx, wy)
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.hitNode = target
	case !pressed && ps.down:
		if ps.hitNode != nil && ps.hitNode == target {
			s.fireAt(EventClick, target, sx, sy, wx, wy)
		}
		ps.down = false
		ps.hitNode = nil
	}
}

// firePointer dispatches event for node, converting the screen point into
// the node's layer.
func (s *Stage) firePointer(event EventType, node *Node, sx, sy float64) {
	wx, wy := sx, sy
	if node != nil && s.inDocument(node) {
		wx, wy = s.ScreenToDocument(sx, sy)
	}
	s.fireAt(event, node, sx, sy, wx, wy)
}

func (s *Stage) fireAt(event EventType, node *Node, sx, sy, wx, wy float64) {
	ctx := PointerContext{Node: node, GlobalX: sx, GlobalY: sy}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
	}

	var current func() []pointerHandler
	var perNode func(PointerContext)
	switch event {
	case EventPointerMove:
		current = func() []pointerHandler { return s.handlers.pointerMove }
	case EventPointerEnter:
		current = func() []pointerHandler { return s.handlers.pointerEnter }
		if node != nil {
			perNode = node.OnPointerEnter
		}
	case EventPointerLeave:
		current = func() []pointerHandler { return s.handlers.pointerLeave }
		if node != nil {
			perNode = node.OnPointerLeave
		}
	case EventClick:
		current = func() []pointerHandler { return s.handlers.click }
		if node != nil {
			perNode = node.OnClick
		}
	default:
		return
	}

	// Stage-level handlers first.
	dispatch(current(), current, ctx)
	// Per-node callback.
	if perNode != nil && !node.IsDisposed() {
		perNode(ctx)
	}
}

// inDocument reports whether n is attached under the document root.
func (s *Stage) inDocument(n *Node) bool {
	return rootOf(n) == s.document
}

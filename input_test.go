package folio

import (
	"testing"
)

// newInputStage returns a stage with one 100x100 interactable button at
// document (50, 50).
func newInputStage() (*Stage, *Node) {
	s := NewStage(800, 600)
	s.Viewport().ContentHeight = 2000
	btn := NewPanel("btn", 100, 100, ColorWhite)
	btn.SetPosition(50, 50)
	btn.Interactable = true
	s.Document().AddChild(btn)
	return s, btn
}

func TestNodeContainsLocal(t *testing.T) {
	n := NewPanel("n", 100, 50, ColorWhite)
	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 25, true},
		{"top-left corner", 0, 0, true},
		{"bottom-right corner", 100, 50, true},
		{"outside left", -1, 25, false},
		{"outside bottom", 50, 51, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nodeContainsLocal(n, tt.x, tt.y); got != tt.want {
				t.Errorf("nodeContainsLocal(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
	if nodeContainsLocal(NewContainer("c"), 0, 0) {
		t.Error("sizeless node should never contain a point")
	}
}

func TestHitTestTopmost(t *testing.T) {
	s, btn := newInputStage()
	top := NewPanel("top", 20, 20, ColorWhite)
	top.SetPosition(60, 60)
	top.Interactable = true
	s.Document().AddChild(top)
	s.refreshTransforms()

	if got, _, _ := s.hitTest(65, 65); got != top {
		t.Errorf("hit = %v, want top", got)
	}
	if got, _, _ := s.hitTest(120, 120); got != btn {
		t.Errorf("hit = %v, want btn", got)
	}
	if got, _, _ := s.hitTest(500, 500); got != nil {
		t.Errorf("hit = %v, want nil", got)
	}
}

func TestHitTestOverlayAboveDocument(t *testing.T) {
	s, _ := newInputStage()
	bar := NewPanel("nav", 800, 80, ColorWhite)
	bar.Interactable = true
	s.Overlay().AddChild(bar)
	s.refreshTransforms()

	if got, _, _ := s.hitTest(60, 60); got != bar {
		t.Errorf("hit = %v, want the overlay bar", got)
	}
}

func TestHitTestFollowsScroll(t *testing.T) {
	s, btn := newInputStage()
	s.Viewport().SetScroll(40)
	s.refreshTransforms()

	// Document (60, 60) is now on screen at (60, 20).
	got, wx, wy := s.hitTest(60, 20)
	if got != btn {
		t.Fatalf("hit = %v, want btn", got)
	}
	if wx != 60 || wy != 60 {
		t.Errorf("document point = (%v, %v), want (60, 60)", wx, wy)
	}
}

func TestHitTestSkipsNonInteractable(t *testing.T) {
	s, btn := newInputStage()
	btn.Interactable = false
	s.refreshTransforms()
	if got, _, _ := s.hitTest(60, 60); got != nil {
		t.Errorf("hit = %v, want nil", got)
	}
}

func TestHoverEnterLeave(t *testing.T) {
	s, btn := newInputStage()
	var events []string
	btn.OnPointerEnter = func(PointerContext) { events = append(events, "enter") }
	btn.OnPointerLeave = func(PointerContext) { events = append(events, "leave") }

	s.refreshTransforms()
	s.processPointer(60, 60, false)
	s.processPointer(70, 70, false)
	s.processPointer(400, 400, false)

	if len(events) != 2 || events[0] != "enter" || events[1] != "leave" {
		t.Errorf("events = %v, want [enter leave]", events)
	}
}

func TestClickRequiresSameNode(t *testing.T) {
	s, btn := newInputStage()
	clicks := 0
	btn.OnClick = func(PointerContext) { clicks++ }
	s.refreshTransforms()

	s.processPointer(60, 60, true)
	s.processPointer(60, 60, false)
	if clicks != 1 {
		t.Fatalf("clicks = %d, want 1", clicks)
	}

	s.processPointer(60, 60, true)
	s.processPointer(500, 500, false)
	if clicks != 1 {
		t.Errorf("release off the node should not click, clicks = %d", clicks)
	}
}

func TestClickLocalCoordinates(t *testing.T) {
	s, btn := newInputStage()
	var ctx PointerContext
	btn.OnClick = func(c PointerContext) { ctx = c }
	s.refreshTransforms()

	s.processPointer(75, 80, true)
	s.processPointer(75, 80, false)
	if ctx.LocalX != 25 || ctx.LocalY != 30 {
		t.Errorf("local = (%v, %v), want (25, 30)", ctx.LocalX, ctx.LocalY)
	}
	if ctx.GlobalX != 75 || ctx.GlobalY != 80 {
		t.Errorf("global = (%v, %v), want (75, 80)", ctx.GlobalX, ctx.GlobalY)
	}
}

func TestPointerMoveOnlyWhenMoved(t *testing.T) {
	s, _ := newInputStage()
	moves := 0
	s.OnPointerMove(func(PointerContext) { moves++ })
	s.refreshTransforms()

	s.processPointer(0, 0, false)
	s.processPointer(10, 10, false)
	s.processPointer(10, 10, false)
	if moves != 1 {
		t.Errorf("moves = %d, want 1", moves)
	}
}

func TestStageHandlersFireBeforeNodeCallback(t *testing.T) {
	s, btn := newInputStage()
	var order []string
	s.OnClick(func(PointerContext) { order = append(order, "stage") })
	btn.OnClick = func(PointerContext) { order = append(order, "node") }
	s.refreshTransforms()

	s.processPointer(60, 60, true)
	s.processPointer(60, 60, false)
	if len(order) != 2 || order[0] != "stage" || order[1] != "node" {
		t.Errorf("order = %v, want [stage node]", order)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	s := NewStage(800, 600)
	calls := 0
	h := s.OnPointerMove(func(PointerContext) { calls++ })
	if s.HandlerCount(EventPointerMove) != 1 {
		t.Fatalf("HandlerCount = %d, want 1", s.HandlerCount(EventPointerMove))
	}
	h.Remove()
	h.Remove()
	CallbackHandle{}.Remove()

	s.processPointer(5, 5, false)
	if calls != 0 {
		t.Errorf("removed handler fired %d times", calls)
	}
	if s.HandlerCount(EventPointerMove) != 0 {
		t.Errorf("HandlerCount = %d, want 0", s.HandlerCount(EventPointerMove))
	}
}

func TestHandlerRemovedMidDispatchSkipped(t *testing.T) {
	s := NewStage(800, 600)
	var second CallbackHandle
	secondCalls := 0
	s.OnPointerMove(func(PointerContext) { second.Remove() })
	second = s.OnPointerMove(func(PointerContext) { secondCalls++ })

	s.processPointer(5, 5, false)
	if secondCalls != 0 {
		t.Errorf("handler removed earlier in the pass fired %d times", secondCalls)
	}
}

func TestWheelScrollsAndNotifies(t *testing.T) {
	s, _ := newInputStage()
	var delta float64
	s.OnWheel(func(ctx PointerContext) { delta = ctx.WheelY })

	s.processWheel(120)
	if s.Viewport().ScrollY != 120 {
		t.Errorf("ScrollY = %v, want 120", s.Viewport().ScrollY)
	}
	if delta != 120 {
		t.Errorf("WheelY = %v, want 120", delta)
	}

	s.processWheel(-500)
	if s.Viewport().ScrollY != 0 {
		t.Errorf("ScrollY = %v, want clamped 0", s.Viewport().ScrollY)
	}
}

func TestDisposedHoverNodeForgotten(t *testing.T) {
	s, btn := newInputStage()
	leaves := 0
	s.OnPointerLeave(func(PointerContext) { leaves++ })
	s.refreshTransforms()

	s.processPointer(60, 60, false)
	btn.Dispose()
	s.processPointer(61, 61, false)
	if leaves != 0 {
		t.Errorf("disposed node should not receive leave, got %d", leaves)
	}
	if s.ptr.hoverNode != nil {
		t.Error("hoverNode should be cleared")
	}
}

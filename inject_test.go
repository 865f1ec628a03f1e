package folio

import "testing"

func TestInjectClick(t *testing.T) {
	s, btn := newInputStage()
	clicks := 0
	btn.OnClick = func(PointerContext) { clicks++ }

	s.InjectClick(60, 60)
	if s.PendingInput() != 2 {
		t.Fatalf("PendingInput = %d, want 2", s.PendingInput())
	}
	s.Step(1.0 / 60)
	if clicks != 0 {
		t.Fatal("click should not fire on press")
	}
	s.Step(1.0 / 60)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if s.PendingInput() != 0 {
		t.Errorf("PendingInput = %d, want 0", s.PendingInput())
	}
}

func TestInjectMoveCarriesButtonState(t *testing.T) {
	s, btn := newInputStage()
	clicks := 0
	btn.OnClick = func(PointerContext) { clicks++ }

	s.InjectPress(60, 60)
	s.InjectMove(70, 70)
	s.InjectRelease(70, 70)
	for s.PendingInput() > 0 {
		s.Step(1.0 / 60)
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1 for a press-move-release on the node", clicks)
	}
}

func TestInjectQueueOrder(t *testing.T) {
	s := NewStage(800, 600)
	var xs []float64
	s.OnPointerMove(func(ctx PointerContext) { xs = append(xs, ctx.GlobalX) })

	s.InjectMove(10, 0)
	s.InjectMove(20, 0)
	s.InjectMove(30, 0)
	for i := 0; i < 3; i++ {
		s.Step(1.0 / 60)
	}
	want := []float64{10, 20, 30}
	if len(xs) != len(want) {
		t.Fatalf("moves = %v, want %v", xs, want)
	}
	for i := range want {
		if xs[i] != want[i] {
			t.Errorf("move %d = %v, want %v", i, xs[i], want[i])
		}
	}
}

func TestInjectScroll(t *testing.T) {
	s, _ := newInputStage()
	s.InjectScroll(300)
	s.Step(1.0 / 60)
	if s.Viewport().ScrollY != 300 {
		t.Errorf("ScrollY = %v, want 300", s.Viewport().ScrollY)
	}
}

func TestProcessInjectedInput_EmptyQueue(t *testing.T) {
	s := NewStage(800, 600)
	if s.processInjectedInput() {
		t.Error("empty queue should report no event consumed")
	}
}

package folio

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestScheduleStepsOverlaps(t *testing.T) {
	steps := []Step{
		{Duration: 2},
		{Duration: 1.5, Offset: -1.5},
		{Duration: 1, Offset: -1},
		{Duration: 1, Offset: -0.5},
	}
	starts, end := ScheduleSteps(steps)
	want := []float32{0, 0.5, 1, 1.5}
	for i := range want {
		if starts[i] != want[i] {
			t.Errorf("start[%d] = %f, want %f", i, starts[i], want[i])
		}
	}
	if end != 2.5 {
		t.Errorf("end = %f, want 2.5", end)
	}
}

func TestScheduleStepsClampsNegativeStart(t *testing.T) {
	starts, end := ScheduleSteps([]Step{{Duration: 1, Offset: -3}, {Duration: 1, Offset: 0.5}})
	if starts[0] != 0 {
		t.Errorf("first start = %f, want 0", starts[0])
	}
	if starts[1] != 1.5 {
		t.Errorf("second start = %f, want 1.5", starts[1])
	}
	if end != 2.5 {
		t.Errorf("end = %f, want 2.5", end)
	}
}

func TestTimelineDurationIsLatestEnd(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	tl := NewTimelineBuilder().
		To(a, Props{PropX: 10}, 3, ease.Linear, 0).
		To(b, Props{PropX: 10}, 1, ease.Linear, -2.5).
		Build()
	if tl.Duration() != 3 {
		t.Errorf("Duration = %f, want 3", tl.Duration())
	}
}

func TestEmptyTimelineCompletesOnFirstTick(t *testing.T) {
	tl := BuildTimeline(nil)
	fired := 0
	tl.OnComplete(func() { fired++ })

	tl.Update(0.016)
	if fired != 0 {
		t.Fatal("paused timeline should not complete")
	}

	tl.Play()
	tl.Update(0.016)
	if fired != 1 {
		t.Fatalf("OnComplete fired %d times, want 1", fired)
	}
	if !tl.IsComplete() || tl.IsPlaying() {
		t.Error("empty timeline should be complete and stopped")
	}
	if tl.Progress() != 1 {
		t.Errorf("Progress = %f, want 1", tl.Progress())
	}
}

func TestNilTargetDroppedKeepsSchedule(t *testing.T) {
	node := NewContainer("card")
	tl := BuildTimeline([]Step{
		{Target: nil, To: Props{PropX: 50}, Duration: 1},
		{Target: node, From: Props{PropX: 0}, To: Props{PropX: 100}, Duration: 1, Ease: ease.Linear},
	})
	if tl.Len() != 1 {
		t.Fatalf("Len = %d, want 1", tl.Len())
	}
	if tl.Duration() != 2 {
		t.Errorf("Duration = %f, want 2", tl.Duration())
	}

	tl.Play()
	tl.Update(1.5)
	if !approx(node.X, 50, 0.01) {
		t.Errorf("X = %f, want 50", node.X)
	}
	tl.Update(0.5)
	if !approx(node.X, 100, 0.01) {
		t.Errorf("X = %f, want 100", node.X)
	}
}

func TestTrailingNilTargetDoesNotExtendDuration(t *testing.T) {
	node := NewContainer("card")
	steps := []Step{
		{Target: node, To: Props{PropX: 100}, Duration: 1},
		{Target: nil, To: Props{PropX: 50}, Duration: 2},
	}
	_, end := ScheduleSteps(steps)
	if end != 3 {
		t.Errorf("schedule end = %f, want 3", end)
	}
	tl := BuildTimeline(steps)
	if tl.Duration() != 1 {
		t.Errorf("Duration = %f, want 1", tl.Duration())
	}

	tl.Play()
	tl.Update(1)
	if !tl.IsComplete() {
		t.Error("timeline should complete at the end of its last surviving step")
	}

	empty := BuildTimeline([]Step{{Target: nil, Duration: 1}})
	if empty.Duration() != 0 || empty.Len() != 0 {
		t.Errorf("all-dropped timeline: Duration = %f, Len = %d", empty.Duration(), empty.Len())
	}
}

func TestFromRenderedAtBuild(t *testing.T) {
	node := NewPanel("title", 100, 20, ColorWhite)
	NewTimelineBuilder().
		FromTo(node, Props{PropAlpha: 0, PropY: 30}, Props{PropAlpha: 1, PropY: 0}, 1, ease.Linear, 0).
		FromTo(node, Props{PropAlpha: 0.5}, Props{PropAlpha: 0.2}, 1, ease.Linear, 0).
		Build()

	if node.Alpha != 0 {
		t.Errorf("Alpha = %f, want 0 (earliest From wins)", node.Alpha)
	}
	if node.Y != 30 {
		t.Errorf("Y = %f, want 30", node.Y)
	}
}

func TestTimelineSeekRendersState(t *testing.T) {
	node := NewContainer("n")
	tl := NewTimelineBuilder().
		FromTo(node, Props{PropX: 0}, Props{PropX: 100}, 1, ease.Linear, 0).
		Build()

	tl.Seek(0.5)
	if !approx(node.X, 50, 0.01) {
		t.Errorf("X after Seek(0.5) = %f, want 50", node.X)
	}
	tl.SetProgress(1)
	if !approx(node.X, 100, 0.01) {
		t.Errorf("X after SetProgress(1) = %f, want 100", node.X)
	}
	tl.Seek(0)
	if !approx(node.X, 0, 0.01) {
		t.Errorf("X after Seek(0) = %f, want 0", node.X)
	}
	if tl.IsPlaying() {
		t.Error("Seek should not start playback")
	}
}

func TestTimelineLaterStepWinsWhileActive(t *testing.T) {
	node := NewContainer("n")
	tl := NewTimelineBuilder().
		FromTo(node, Props{PropX: 0}, Props{PropX: 100}, 1, ease.Linear, 0).
		FromTo(node, Props{PropX: 500}, Props{PropX: 600}, 1, ease.Linear, -0.5).
		Build()

	tl.Seek(0.75)
	if !approx(node.X, 525, 0.01) {
		t.Errorf("X at 0.75 = %f, want 525", node.X)
	}
	tl.Seek(0.25)
	if !approx(node.X, 25, 0.01) {
		t.Errorf("X at 0.25 = %f, want 25", node.X)
	}
}

func TestToStepCapturesStartWhenItBegins(t *testing.T) {
	node := NewContainer("n")
	node.X = 10
	tl := NewTimelineBuilder().To(node, Props{PropX: 110}, 1, ease.Linear, 0).Build()

	node.X = 20
	tl.Play()
	tl.Update(0.5)
	if !approx(node.X, 65, 0.01) {
		t.Errorf("X = %f, want 65", node.X)
	}
}

func TestTimelineReverseToStart(t *testing.T) {
	node := NewContainer("n")
	tl := NewTimelineBuilder().
		FromTo(node, Props{PropAlpha: 0}, Props{PropAlpha: 1}, 1, ease.Linear, 0).
		Build()
	reversed := 0
	tl.OnReverseComplete(func() { reversed++ })

	tl.Play()
	tl.Update(1)
	if !tl.IsComplete() {
		t.Fatal("expected complete")
	}

	tl.Reverse()
	tl.Update(0.5)
	if !approx(node.Alpha, 0.5, 0.01) {
		t.Errorf("Alpha mid-reverse = %f, want 0.5", node.Alpha)
	}
	tl.Update(0.5)
	if reversed != 1 {
		t.Errorf("OnReverseComplete fired %d times, want 1", reversed)
	}
	if node.Alpha != 0 {
		t.Errorf("Alpha = %f, want 0", node.Alpha)
	}

	// Reversing again at 0 does nothing.
	tl.Reverse()
	if tl.IsPlaying() {
		t.Error("Reverse at time 0 should not play")
	}
}

func TestTimelineKillSilencesCallbacks(t *testing.T) {
	node := NewContainer("n")
	tl := NewTimelineBuilder().To(node, Props{PropX: 100}, 1, ease.Linear, 0).Build()
	fired := 0
	tl.OnComplete(func() { fired++ })

	tl.Play()
	tl.Update(0.5)
	tl.Kill()
	x := node.X
	tl.Update(1)
	tl.Play()
	tl.Update(1)

	if fired != 0 {
		t.Errorf("OnComplete fired %d times after Kill", fired)
	}
	if node.X != x {
		t.Errorf("X changed after Kill: %f -> %f", x, node.X)
	}
	if tl.Active() {
		t.Error("killed timeline should not be active")
	}
}

func TestTimelineRepeatYoyo(t *testing.T) {
	node := NewContainer("float")
	tl := NewTimelineBuilder().
		FromTo(node, Props{PropY: 0}, Props{PropY: 100}, 1, ease.Linear, 0).
		Build().
		SetRepeat(1).
		SetYoyo(true)

	tl.Play()
	tl.Update(1.5)
	if !approx(node.Y, 50, 0.01) {
		t.Errorf("Y = %f, want 50 on the way back", node.Y)
	}
	tl.Update(0.25)
	if !approx(node.Y, 25, 0.01) {
		t.Errorf("Y = %f, want 25", node.Y)
	}
	tl.Update(0.25)
	if !tl.IsComplete() {
		t.Fatal("expected completion after the repeat")
	}
	if !approx(node.Y, 0, 0.01) {
		t.Errorf("Y = %f, want 0 after yoyo", node.Y)
	}
}

func TestTimelineRepeatForever(t *testing.T) {
	node := NewContainer("n")
	tl := NewTimelineBuilder().To(node, Props{PropX: 10}, 1, ease.Linear, 0).Build().SetRepeat(-1)
	tl.Play()
	for i := 0; i < 10; i++ {
		tl.Update(0.5)
	}
	if tl.IsComplete() || !tl.IsPlaying() {
		t.Error("repeat -1 should never complete")
	}
}

func TestTimelinePlayAfterCompleteIsNoop(t *testing.T) {
	node := NewContainer("n")
	tl := NewTimelineBuilder().To(node, Props{PropX: 10}, 1, ease.Linear, 0).Build()
	fired := 0
	tl.OnComplete(func() { fired++ })

	tl.Play()
	tl.Update(1)
	tl.Play()
	tl.Update(1)
	if fired != 1 {
		t.Errorf("OnComplete fired %d times, want 1", fired)
	}

	tl.Restart()
	tl.Update(1)
	if fired != 2 {
		t.Errorf("OnComplete fired %d times after Restart, want 2", fired)
	}
}

func TestTimelinePauseResume(t *testing.T) {
	node := NewContainer("n")
	tl := NewTimelineBuilder().
		FromTo(node, Props{PropX: 0}, Props{PropX: 100}, 1, ease.Linear, 0).
		Build()
	tl.Play()
	tl.Update(0.25)
	tl.Pause()
	tl.Update(0.5)
	if !approx(node.X, 25, 0.01) {
		t.Errorf("X = %f, want 25 while paused", node.X)
	}
	tl.Resume()
	tl.Update(0.25)
	if !approx(node.X, 50, 0.01) {
		t.Errorf("X = %f, want 50 after resume", node.X)
	}
}

func TestTimelineSkipsDisposedTarget(t *testing.T) {
	gone := NewContainer("gone")
	kept := NewContainer("kept")
	tl := NewTimelineBuilder().
		FromTo(gone, Props{PropX: 0}, Props{PropX: 100}, 1, ease.Linear, 0).
		FromTo(kept, Props{PropX: 0}, Props{PropX: 100}, 1, ease.Linear, 0).
		Build()

	gone.Dispose()
	tl.Play()
	tl.Update(1)

	if gone.X != 0 {
		t.Errorf("disposed target X = %f, want 0", gone.X)
	}
	if !approx(kept.X, 100, 0.01) {
		t.Errorf("sibling X = %f, want 100", kept.X)
	}
}

func TestStaggerSpacing(t *testing.T) {
	cards := []*Node{NewContainer("a"), NewContainer("b"), NewContainer("c")}
	b := NewTimelineBuilder().Stagger(cards, Props{PropAlpha: 0}, Props{PropAlpha: 1}, 1, ease.Linear, 0.2, 0)
	starts, end := ScheduleSteps(b.steps)

	want := []float64{0, 0.2, 0.4}
	for i := range want {
		if !approx(float64(starts[i]), want[i], 1e-5) {
			t.Errorf("start[%d] = %f, want %f", i, starts[i], want[i])
		}
	}
	if !approx(float64(end), 1.4, 1e-5) {
		t.Errorf("end = %f, want 1.4", end)
	}
	for _, c := range cards {
		if c.Alpha != 1 {
			t.Errorf("%s Alpha = %f before Build, want 1", c.Name, c.Alpha)
		}
	}
	b.Build()
	for _, c := range cards {
		if c.Alpha != 0 {
			t.Errorf("%s Alpha = %f after Build, want 0", c.Name, c.Alpha)
		}
	}
}

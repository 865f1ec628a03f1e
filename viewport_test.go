package folio

import (
	"testing"

	"github.com/tanema/gween/ease"
)

// newScrollFixture returns a 1000px viewport over a 5000px document with a
// 500px card at y=2000.
func newScrollFixture() (*Viewport, *Node) {
	root := NewContainer("document")
	card := NewPanel("card", 300, 500, ColorWhite)
	card.Y = 2000
	root.AddChild(card)
	vp := NewViewport(800, 1000)
	vp.ContentHeight = 5000
	return vp, card
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("top 80%", "bottom 20%")
	if err != nil {
		t.Fatal(err)
	}
	if w.Start != (Marker{Element: 0, Viewport: 0.8}) {
		t.Errorf("Start = %+v", w.Start)
	}
	if w.End != (Marker{Element: 1, Viewport: 0.2}) {
		t.Errorf("End = %+v", w.End)
	}

	w, err = ParseWindow("center center", "100px top")
	if err != nil {
		t.Fatal(err)
	}
	if w.Start != (Marker{Element: 0.5, Viewport: 0.5}) || w.End != (Marker{ElementPx: 100}) {
		t.Errorf("unexpected window %+v", w)
	}
}

func TestParseWindowErrors(t *testing.T) {
	bad := [][2]string{
		{"top", "bottom top"},
		{"top 80%", "middle top"},
		{"top x%", "bottom top"},
		{"top 80%", "bottom zpx"},
	}
	for _, pair := range bad {
		if _, err := ParseWindow(pair[0], pair[1]); err == nil {
			t.Errorf("ParseWindow(%q, %q) should fail", pair[0], pair[1])
		}
	}
}

func TestObserveProgress(t *testing.T) {
	vp, card := newScrollFixture()
	var got []float64
	vp.Observe(card, MustParseWindow("top 80%", "bottom 20%"), func(p float64, dir ScrollDirection) {
		if dir != ScrollLeave {
			got = append(got, p)
		}
	})

	// start = 2000 - 800 = 1200, end = 2500 - 200 = 2300
	for _, y := range []float64{0, 1200, 1750, 2300} {
		vp.SetScroll(y)
		vp.Update(0)
	}
	want := []float64{0.5, 1}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if !approx(got[i], want[i], 1e-9) {
			t.Errorf("progress[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}

func TestObserveMonotonicWithFeed(t *testing.T) {
	vp, card := newScrollFixture()
	type event struct {
		p   float64
		dir ScrollDirection
	}
	var events []event
	vp.Observe(card, MustParseWindow("top 80%", "bottom 20%"), func(p float64, dir ScrollDirection) {
		events = append(events, event{p, dir})
	})

	feed := []float64{1000, 1300, 1500, 1800, 2100, 2400, 2200, 1900, 1400, 1100}
	for _, y := range feed {
		vp.SetScroll(y)
		vp.Update(0.016)
	}

	peak := -1
	for i, e := range events {
		if e.p == 1 && e.dir == ScrollLeave {
			peak = i
		}
	}
	if peak < 0 {
		t.Fatalf("no forward leave in %v", events)
	}
	for i := 1; i <= peak; i++ {
		if events[i].p < events[i-1].p {
			t.Errorf("forward phase not monotonic at %d: %v", i, events)
		}
	}
	for i := peak + 1; i < len(events); i++ {
		if events[i].p > events[i-1].p {
			t.Errorf("backward phase not monotonic at %d: %v", i, events)
		}
		if events[i].dir == ScrollEnter {
			t.Errorf("enter reported while scrolling back at %d", i)
		}
	}
	last := events[len(events)-1]
	if last.p != 0 || last.dir != ScrollLeave {
		t.Errorf("last event = %+v, want backward leave", last)
	}
}

func TestObserveLastWriteWins(t *testing.T) {
	vp, card := newScrollFixture()
	var got []float64
	vp.Observe(card, MustParseWindow("top 80%", "bottom 20%"), func(p float64, dir ScrollDirection) {
		got = append(got, p)
	})

	// Several writes inside one frame deliver only the last one.
	vp.SetScroll(1500)
	vp.SetScroll(2000)
	vp.SetScroll(1750)
	vp.Update(0)

	if len(got) != 1 || !approx(got[0], 0.5, 1e-9) {
		t.Errorf("got %v, want [0.5]", got)
	}
}

func TestObserveRegistrationOrder(t *testing.T) {
	vp, card := newScrollFixture()
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		vp.Observe(card, DefaultWindow(), func(float64, ScrollDirection) {
			order = append(order, i)
		})
	}
	vp.SetScroll(1500)
	vp.Update(0)
	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Errorf("order = %v, want [0 1 2]", order)
	}
}

func TestReleaseStopsCallbacks(t *testing.T) {
	vp, card := newScrollFixture()
	calls := 0
	var b *ScrollBinding
	b = vp.Observe(card, DefaultWindow(), func(float64, ScrollDirection) {
		calls++
		b.Release()
	})

	vp.SetScroll(1500)
	vp.Update(0)
	vp.SetScroll(1600)
	vp.Update(0)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if vp.Bindings() != 0 {
		t.Errorf("Bindings = %d, want 0", vp.Bindings())
	}
	b.Release()
	vp.Unobserve(b)
	if !b.Released() {
		t.Error("binding should report released")
	}
}

func TestObserveNilTrigger(t *testing.T) {
	vp := NewViewport(800, 600)
	if b := vp.Observe(nil, DefaultWindow(), func(float64, ScrollDirection) {}); b != nil {
		t.Error("Observe(nil) should return nil")
	}
	var b *ScrollBinding
	b.Release() // nil-safe
}

func TestScrollClampAndAnimate(t *testing.T) {
	vp := NewViewport(800, 1000)
	vp.ContentHeight = 3000

	vp.SetScroll(-50)
	if vp.ScrollY != 0 {
		t.Errorf("ScrollY = %f, want 0", vp.ScrollY)
	}
	vp.ScrollBy(5000)
	if vp.ScrollY != 2000 {
		t.Errorf("ScrollY = %f, want 2000", vp.ScrollY)
	}
	if vp.PageProgress() != 1 {
		t.Errorf("PageProgress = %f, want 1", vp.PageProgress())
	}

	vp.ScrollTo(1000, 1, ease.Linear)
	vp.Update(0.5)
	if !approx(vp.ScrollY, 1500, 0.5) {
		t.Errorf("ScrollY mid-animation = %f, want 1500", vp.ScrollY)
	}
	vp.Update(0.5)
	if !approx(vp.ScrollY, 1000, 0.5) || vp.IsScrolling() {
		t.Errorf("ScrollY = %f scrolling=%v, want 1000 and done", vp.ScrollY, vp.IsScrolling())
	}
}

func TestScrollToNode(t *testing.T) {
	vp, card := newScrollFixture()
	vp.ScrollToNode(card, 100, 0, nil)
	if vp.ScrollY != 1900 {
		t.Errorf("ScrollY = %f, want 1900", vp.ScrollY)
	}
}

func TestParseToggleActions(t *testing.T) {
	a, err := ParseToggleActions("play none none reverse")
	if err != nil {
		t.Fatal(err)
	}
	if a != DefaultToggleActions {
		t.Errorf("got %+v, want %+v", a, DefaultToggleActions)
	}
	if _, err := ParseToggleActions("play none"); err == nil {
		t.Error("short action list should fail")
	}
	if _, err := ParseToggleActions("play none none rewind"); err == nil {
		t.Error("unknown action should fail")
	}
}

func TestToggleHandlerPlaysAndReverses(t *testing.T) {
	vp, card := newScrollFixture()
	card.Alpha = 1
	tl := NewTimelineBuilder().
		FromTo(card, Props{PropAlpha: 0}, Props{PropAlpha: 1}, 1, ease.Linear, 0).
		Build()
	anim := NewAnimator()
	vp.Observe(card, MustParseWindow("top 80%", "bottom 20%"), ToggleHandler(tl, DefaultToggleActions, func(tl *Timeline) { anim.Add(tl) }))

	vp.SetScroll(1300)
	vp.Update(0)
	if !tl.IsPlaying() {
		t.Fatal("entering the window should play")
	}
	anim.Update(1)
	if card.Alpha != 1 {
		t.Errorf("Alpha = %f, want 1", card.Alpha)
	}

	// Leaving forward does nothing, coming back does nothing.
	vp.SetScroll(2400)
	vp.Update(0)
	vp.SetScroll(2000)
	vp.Update(0)
	if tl.IsPlaying() {
		t.Error("leave/enterBack should not restart the timeline")
	}

	// Scrolling above the window reverses.
	vp.SetScroll(0)
	vp.Update(0)
	if !tl.IsReversed() || !tl.IsPlaying() {
		t.Fatal("leaveBack should reverse")
	}
	anim.Update(1)
	if card.Alpha != 0 {
		t.Errorf("Alpha = %f, want 0 after reverse", card.Alpha)
	}
}

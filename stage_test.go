package folio

import (
	"strings"
	"testing"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewStageDefaults(t *testing.T) {
	s := NewStage(1280, 800)
	if w, h := s.ViewportSize(); w != 1280 || h != 800 {
		t.Errorf("ViewportSize = %vx%v, want 1280x800", w, h)
	}
	if s.Document() == nil || s.Overlay() == nil {
		t.Fatal("layers should exist")
	}
	if s.Logger() == nil {
		t.Error("default logger should be a no-op logger, not nil")
	}
	if s.Pointer().Listeners() != 0 {
		t.Error("pointer tracker should start detached")
	}
}

func TestStageFindSearchesBothLayers(t *testing.T) {
	s := NewStage(800, 600)
	card := NewContainer("card")
	nav := NewContainer("nav")
	s.Document().AddChild(card)
	s.Overlay().AddChild(nav)

	if s.Find("card") != card || s.Find("nav") != nav {
		t.Error("Find should search document then overlay")
	}
	if s.Find("missing") != nil {
		t.Error("Find should return nil for unknown names")
	}
}

func TestResizeClampsScroll(t *testing.T) {
	s := NewStage(800, 600)
	s.Viewport().ContentHeight = 1000
	s.Viewport().SetScroll(400)
	s.Resize(800, 900)
	if s.Viewport().ScrollY != 100 {
		t.Errorf("ScrollY = %v, want 100", s.Viewport().ScrollY)
	}
}

func TestScreenToDocument(t *testing.T) {
	s := NewStage(800, 600)
	s.Viewport().ContentHeight = 3000
	s.Viewport().SetScroll(250)
	x, y := s.ScreenToDocument(10, 20)
	if x != 10 || y != 270 {
		t.Errorf("ScreenToDocument = (%v, %v), want (10, 270)", x, y)
	}
}

func TestStepOrder(t *testing.T) {
	s, card := newSectionStage()
	var order []string
	s.Animator().Add(&funcAnimation{fn: func() { order = append(order, "anim") }})
	s.Viewport().Observe(card, DefaultWindow(), func(float64, ScrollDirection) {
		order = append(order, "scroll")
	})
	s.OnTick(func(float32) { order = append(order, "tick") })
	s.Viewport().SetScroll(1500)

	s.Step(frame)
	want := []string{"anim", "scroll", "tick"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", order, want)
	}
	if s.Frame() != 1 {
		t.Errorf("Frame = %d, want 1", s.Frame())
	}
}

func TestTickHandlerRemovedDuringTick(t *testing.T) {
	s := NewStage(800, 600)
	calls := 0
	var h CallbackHandle
	h = s.OnTick(func(float32) {
		calls++
		h.Remove()
	})
	s.Step(frame)
	s.Step(frame)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestTickHandlerOfSectionUnmountedDuringTick(t *testing.T) {
	s := NewStage(800, 600)
	var b *SectionController
	bCalls := 0
	s.Mount(&funcSection{name: "a", mount: func(m *Mounter) {
		m.OnTick(func(float32) { b.Unmount() })
	}})
	b, _ = s.Mount(&funcSection{name: "b", mount: func(m *Mounter) {
		m.OnTick(func(float32) {
			if b.State() != StateActive {
				t.Errorf("tick fired in state %v", b.State())
			}
			bCalls++
		})
	}})

	s.Step(frame)
	s.Step(frame)
	if bCalls != 0 {
		t.Errorf("b ticks = %d, want 0", bCalls)
	}
	if b.State() != StateUnmounted {
		t.Errorf("b state = %v, want unmounted", b.State())
	}
}

func TestAnimatedScrollDrivesBindings(t *testing.T) {
	s, card := newSectionStage()
	var last float64
	s.Viewport().Observe(card, MustParseWindow("top 80%", "bottom 20%"), func(p float64, _ ScrollDirection) {
		last = p
	})
	s.Viewport().ScrollTo(2300, 0.5, ease.Linear)
	for i := 0; i < 40; i++ {
		s.Step(frame)
	}
	if s.Viewport().ScrollY != 2300 {
		t.Errorf("ScrollY = %v, want 2300", s.Viewport().ScrollY)
	}
	if last != 1 {
		t.Errorf("progress = %v, want 1", last)
	}
}

func TestClearDisposesAndUnmounts(t *testing.T) {
	s, card := newSectionStage()
	c, _ := s.Mount(&funcSection{name: "a", mount: func(m *Mounter) {
		m.OnTick(func(float32) {})
	}})
	s.Viewport().SetScroll(300)

	s.Clear()

	if c.State() != StateUnmounted {
		t.Error("sections should be unmounted")
	}
	if len(s.Sections()) != 0 {
		t.Error("sections should be forgotten")
	}
	if !card.IsDisposed() || s.Document().NumChildren() != 0 {
		t.Error("document children should be disposed")
	}
	if s.Viewport().ScrollY != 0 {
		t.Error("scroll should reset")
	}
	if s.HandlerCount(EventTick) != 0 {
		t.Error("tick handlers should be released")
	}
}

func TestSetLoggerNil(t *testing.T) {
	s := NewStage(800, 600)
	s.SetLogger(nil)
	s.Logger().Info("discarded")
}

func TestSectionLifecycleLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewStage(800, 600)
	s.SetLogger(zap.New(core))

	c, _ := s.Mount(&funcSection{name: "hero", mount: func(m *Mounter) {
		m.Find("ghost")
	}})
	c.Unmount()

	if logs.FilterMessage("target not found").Len() != 1 {
		t.Error("missing target should be logged")
	}
	mounted := logs.FilterMessage("section mounted").All()
	if len(mounted) != 1 || mounted[0].ContextMap()["section"] != "hero" {
		t.Errorf("mount log = %+v", mounted)
	}
	if logs.FilterMessage("section unmounted").Len() != 1 {
		t.Error("unmount should be logged")
	}
}

func TestFPSWidgetUpdatesOnTick(t *testing.T) {
	s := NewStage(800, 600)
	w, h := NewFPSWidget(s)
	if w.Parent != s.Overlay() {
		t.Fatal("widget should live in the overlay")
	}
	s.Step(frame)
	label := w.Find("fps_label")
	if label == nil || !strings.HasPrefix(label.TextBlock.Content, "FPS:") {
		t.Fatal("label should be filled on the first tick")
	}
	h.Remove()
	if s.HandlerCount(EventTick) != 0 {
		t.Error("handle should remove the tick handler")
	}
}

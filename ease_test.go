package folio

import (
	"math"
	"testing"
)

func TestParseEaseKnownNames(t *testing.T) {
	names := []string{
		"", "none", "linear", "power1", "power2.out", "power3.in", "power4.inOut",
		"sine.inOut", "expo.out", "circ.in", "elastic.out", "bounce.out",
		"back.out(1.7)", "back.in(2)", "back.inOut(1.2)",
	}
	for _, name := range names {
		fn, err := ParseEase(name)
		if err != nil {
			t.Errorf("ParseEase(%q) error: %v", name, err)
			continue
		}
		if fn == nil {
			t.Errorf("ParseEase(%q) returned nil", name)
		}
	}
}

func TestParseEaseRejectsUnknown(t *testing.T) {
	for _, name := range []string{"wobble", "power2.sideways", "sine.out(3)", "back.out(x)", "back.out(1"} {
		if _, err := ParseEase(name); err == nil {
			t.Errorf("ParseEase(%q) should fail", name)
		}
	}
}

func TestEaseEndpoints(t *testing.T) {
	for _, name := range []string{"power1.out", "power3.inOut", "sine.inOut", "back.out(1.7)", "back.in(1.7)", "back.inOut(1.7)"} {
		fn := EaseByName(name)
		if v := fn(0, 10, 90, 2); math.Abs(float64(v)-10) > 1e-3 {
			t.Errorf("%s at t=0 = %f, want 10", name, v)
		}
		if v := fn(2, 10, 90, 2); math.Abs(float64(v)-100) > 1e-3 {
			t.Errorf("%s at t=d = %f, want 100", name, v)
		}
	}
}

func TestBackOutOvershoots(t *testing.T) {
	fn := EaseByName("back.out(1.7)")
	peak := float32(0)
	for i := 0; i <= 100; i++ {
		if v := fn(float32(i)/100, 0, 1, 1); v > peak {
			peak = v
		}
	}
	if peak <= 1 {
		t.Errorf("back.out peak = %f, want > 1", peak)
	}
}

func TestEaseByNameFallsBack(t *testing.T) {
	fn := EaseByName("nonsense")
	want := DefaultEase(0.5, 0, 1, 1)
	if got := fn(0.5, 0, 1, 1); got != want {
		t.Errorf("fallback = %f, want DefaultEase value %f", got, want)
	}
}

package folio

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
)

// DefaultEase is used when a step or tween does not name one.
var DefaultEase ease.TweenFunc = ease.OutQuad

// easeFamilies maps a curve family to its in, out and inOut variants.
// The powerN names follow the usual animation-library convention where
// power1 is quadratic and power4 is quintic.
var easeFamilies = map[string][3]ease.TweenFunc{
	"power1":  {ease.InQuad, ease.OutQuad, ease.InOutQuad},
	"quad":    {ease.InQuad, ease.OutQuad, ease.InOutQuad},
	"power2":  {ease.InCubic, ease.OutCubic, ease.InOutCubic},
	"cubic":   {ease.InCubic, ease.OutCubic, ease.InOutCubic},
	"power3":  {ease.InQuart, ease.OutQuart, ease.InOutQuart},
	"quart":   {ease.InQuart, ease.OutQuart, ease.InOutQuart},
	"power4":  {ease.InQuint, ease.OutQuint, ease.InOutQuint},
	"quint":   {ease.InQuint, ease.OutQuint, ease.InOutQuint},
	"sine":    {ease.InSine, ease.OutSine, ease.InOutSine},
	"expo":    {ease.InExpo, ease.OutExpo, ease.InOutExpo},
	"circ":    {ease.InCirc, ease.OutCirc, ease.InOutCirc},
	"elastic": {ease.InElastic, ease.OutElastic, ease.InOutElastic},
	"bounce":  {ease.InBounce, ease.OutBounce, ease.InOutBounce},
	"back":    {ease.InBack, ease.OutBack, ease.InOutBack},
}

// ParseEase resolves names such as "power2.out", "sine.inOut", "back.out(1.7)"
// or "none". A family without a variant defaults to its out curve.
func ParseEase(name string) (ease.TweenFunc, error) {
	name = strings.TrimSpace(name)
	switch name {
	case "":
		return DefaultEase, nil
	case "none", "linear", "power0":
		return ease.Linear, nil
	}

	var param string
	if i := strings.IndexByte(name, '('); i >= 0 {
		if !strings.HasSuffix(name, ")") {
			return nil, fmt.Errorf("ease %q: unterminated parameter", name)
		}
		param = name[i+1 : len(name)-1]
		name = name[:i]
	}

	family, variant, _ := strings.Cut(name, ".")
	funcs, ok := easeFamilies[family]
	if !ok {
		return nil, fmt.Errorf("ease %q: unknown family %q", name, family)
	}

	idx := 1
	switch variant {
	case "in":
		idx = 0
	case "", "out":
		idx = 1
	case "inOut":
		idx = 2
	default:
		return nil, fmt.Errorf("ease %q: unknown variant %q", name, variant)
	}

	if param == "" {
		return funcs[idx], nil
	}
	if family != "back" {
		return nil, fmt.Errorf("ease %q: parameters are only supported for back", name)
	}
	s, err := strconv.ParseFloat(param, 32)
	if err != nil {
		return nil, fmt.Errorf("ease %q: bad overshoot: %w", name, err)
	}
	return backEase(idx, float32(s)), nil
}

// EaseByName is ParseEase that falls back to DefaultEase on unknown names.
func EaseByName(name string) ease.TweenFunc {
	fn, err := ParseEase(name)
	if err != nil {
		return DefaultEase
	}
	return fn
}

// backEase returns a back curve with overshoot s.
func backEase(variant int, s float32) ease.TweenFunc {
	switch variant {
	case 0:
		return func(t, b, c, d float32) float32 {
			t /= d
			return c*t*t*((s+1)*t-s) + b
		}
	case 2:
		s2 := s * 1.525
		return func(t, b, c, d float32) float32 {
			t = t / d * 2
			if t < 1 {
				return c/2*(t*t*((s2+1)*t-s2)) + b
			}
			t -= 2
			return c/2*(t*t*((s2+1)*t+s2)+2) + b
		}
	}
	return func(t, b, c, d float32) float32 {
		t = t/d - 1
		return c*(t*t*((s+1)*t+s)+1) + b
	}
}

package folio

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Font is the interface for text measurement and layout.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
}

// --- TextBlock ---

// TextBlock holds text content, formatting, and cached layout state.
type TextBlock struct {
	Content    string
	Font       Font
	Align      TextAlign
	WrapWidth  float64
	Color      Color
	LineHeight float64 // override; 0 = use Font.LineHeight()

	// Cached layout (unexported)
	layoutDirty bool
	measuredW   float64
	measuredH   float64
	lines       []textLine
}

// textLine stores one wrapped line.
type textLine struct {
	text  string
	width float64
}

// lineHeight returns the effective line height for this text block.
func (tb *TextBlock) lineHeight() float64 {
	if tb.LineHeight > 0 {
		return tb.LineHeight
	}
	if tb.Font != nil {
		return tb.Font.LineHeight()
	}
	return 0
}

// Lines returns the wrapped lines of the block.
func (tb *TextBlock) Lines() []string {
	tb.layout()
	out := make([]string, len(tb.lines))
	for i, l := range tb.lines {
		out[i] = l.text
	}
	return out
}

// layout recomputes line breaks if dirty. Returns the cached lines.
func (tb *TextBlock) layout() []textLine {
	if !tb.layoutDirty {
		return tb.lines
	}
	tb.layoutDirty = false
	tb.lines = tb.lines[:0]
	tb.measuredW = 0
	tb.measuredH = 0

	if tb.Font == nil || tb.Content == "" {
		return tb.lines
	}

	for _, para := range strings.Split(tb.Content, "\n") {
		tb.wrapParagraph(para)
	}
	for _, l := range tb.lines {
		if l.width > tb.measuredW {
			tb.measuredW = l.width
		}
	}
	tb.measuredH = float64(len(tb.lines)) * tb.lineHeight()
	return tb.lines
}

// wrapParagraph greedily breaks para at spaces so no line exceeds
// WrapWidth. A single word wider than WrapWidth gets a line of its own.
func (tb *TextBlock) wrapParagraph(para string) {
	if tb.WrapWidth <= 0 {
		w, _ := tb.Font.MeasureString(para)
		tb.lines = append(tb.lines, textLine{text: para, width: w})
		return
	}
	words := strings.Fields(para)
	if len(words) == 0 {
		tb.lines = append(tb.lines, textLine{})
		return
	}
	cur := words[0]
	curW, _ := tb.Font.MeasureString(cur)
	for _, word := range words[1:] {
		candidate := cur + " " + word
		cw, _ := tb.Font.MeasureString(candidate)
		if cw <= tb.WrapWidth {
			cur, curW = candidate, cw
			continue
		}
		tb.lines = append(tb.lines, textLine{text: cur, width: curW})
		cur = word
		curW, _ = tb.Font.MeasureString(word)
	}
	tb.lines = append(tb.lines, textLine{text: cur, width: curW})
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("folio: failed to parse TTF data: %w", err)
	}
	return newTTFFont(source, size), nil
}

func newTTFFont(source *text.GoTextFaceSource, size float64) *TTFFont {
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
	}
}

// WithSize returns a font sharing this font's source at another size.
func (f *TTFFont) WithSize(size float64) *TTFFont {
	return newTTFFont(f.source, size)
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// --- Bundled fonts ---

var (
	goRegularOnce sync.Once
	goRegular     *text.GoTextFaceSource
	goBoldOnce    sync.Once
	goBold        *text.GoTextFaceSource
)

func mustSource(data []byte) *text.GoTextFaceSource {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		panic("folio: bundled font: " + err.Error())
	}
	return src
}

// DefaultFont returns Go Regular at size pixels.
func DefaultFont(size float64) *TTFFont {
	goRegularOnce.Do(func() { goRegular = mustSource(goregular.TTF) })
	return newTTFFont(goRegular, size)
}

// BoldFont returns Go Bold at size pixels.
func BoldFont(size float64) *TTFFont {
	goBoldOnce.Do(func() { goBold = mustSource(gobold.TTF) })
	return newTTFFont(goBold, size)
}

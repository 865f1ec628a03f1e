package portfolio

import "github.com/phanxgames/folio"

// Theme holds the site palette and type scale.
type Theme struct {
	Background  folio.Color
	Glass       folio.Color
	GlassActive folio.Color
	Text        folio.Color
	Muted       folio.Color
	Subtle      folio.Color
	Blue        folio.Color
	Purple      folio.Color
	Pink        folio.Color
	Cyan        folio.Color

	Display float64 // hero name
	Title   float64 // section headings
	Heading float64 // card titles
	Body    float64
	Small   float64
}

// DefaultTheme is the dark neon palette.
func DefaultTheme() Theme {
	return Theme{
		Background:  folio.RGB(0x111827),
		Glass:       folio.RGB(0x1f2937).WithAlpha(0.6),
		GlassActive: folio.RGB(0x374151).WithAlpha(0.8),
		Text:        folio.RGB(0xffffff),
		Muted:       folio.RGB(0xd1d5db),
		Subtle:      folio.RGB(0x9ca3af),
		Blue:        folio.RGB(0x00d4ff),
		Purple:      folio.RGB(0xa855f7),
		Pink:        folio.RGB(0xec4899),
		Cyan:        folio.RGB(0x22d3ee),

		Display: 72,
		Title:   44,
		Heading: 22,
		Body:    16,
		Small:   13,
	}
}

// Accent cycles through the three neon colors.
func (t Theme) Accent(i int) folio.Color {
	switch i % 3 {
	case 0:
		return t.Blue
	case 1:
		return t.Purple
	}
	return t.Pink
}

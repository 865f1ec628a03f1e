// Package folio is a scroll-reactive presentation engine for [Ebitengine].
//
// A [Stage] holds two node trees: the document, which scrolls under a
// [Viewport], and the overlay, which stays fixed on screen. Pages are split
// into sections; each [Section] is mounted by a [SectionController] that
// hands it a [Mounter] and releases everything it registered when the
// section unmounts.
//
// # Quick start
//
//	stage := folio.NewStage(1280, 800)
//	card := folio.NewPanel("card", 400, 240, folio.RGB(0x1e293b))
//	card.SetPosition(440, 1200)
//	stage.Document().AddChild(card)
//	stage.Viewport().ContentHeight = 3000
//
//	stage.Mount(mySection{})
//	folio.Run(stage, folio.RunConfig{Title: "Portfolio", Width: 1280, Height: 800})
//
// # Timelines
//
// [TimelineBuilder] sequences [Step]s: each step starts where its
// predecessor ends, shifted by its Offset, so a negative offset overlaps
// the two. Every step is driven by a [gween] tween.
//
//	tl := folio.NewTimelineBuilder().
//		FromTo(title, folio.Props{folio.PropAlpha: 0, folio.PropY: 80},
//			folio.Props{folio.PropAlpha: 1, folio.PropY: 40}, 1.2, ease.OutCubic, 0).
//		To(subtitle, folio.Props{folio.PropAlpha: 1}, 1, ease.OutCubic, -0.6).
//		Build()
//
// # Scroll bindings
//
// [Viewport.Observe] reports a node's progress through a [Window] of
// scroll positions, written the way CSS-in-JS scroll libraries write it:
//
//	w := folio.MustParseWindow("top 80%", "bottom 20%")
//	m.ScrollPlay(card, w, tl, folio.DefaultToggleActions)
//
// # Pointer
//
// The stage owns one [PointerTracker]. It listens to the stage only while
// at least one subscriber is live and broadcasts the pointer position
// normalized to [-1, 1] on each axis.
//
// Nothing in this package is safe for concurrent use; drive a stage from the
// Ebitengine game loop.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package folio

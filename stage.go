package folio

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Stage is the top-level object that owns the scrolling document, the fixed
// overlay, the viewport, input state, the pointer tracker, the animator and
// the mounted sections.
//
// A Stage is driven from a single goroutine: Update (or Step in tests) then
// Draw, once per frame.
type Stage struct {
	document *Node
	overlay  *Node
	viewport *Viewport
	pointer  *PointerTracker
	animator *Animator
	sections []*SectionController

	// ClearColor fills the screen before the document is drawn.
	ClearColor Color

	log   *zap.Logger
	debug bool
	frame uint64

	// Input state
	handlers      handlerRegistry
	ptr           pointerState
	hitBuf        []*Node
	injectQueue   []syntheticEvent
	injectPressed bool

	// Render state
	commands []renderCommand
}

// NewStage creates a stage whose viewport is w x h pixels.
func NewStage(w, h float64) *Stage {
	s := &Stage{
		document:   NewContainer("document"),
		overlay:    NewContainer("overlay"),
		viewport:   NewViewport(w, h),
		animator:   NewAnimator(),
		ClearColor: RGB(0x0f172a),
		log:        zap.NewNop(),
	}
	s.pointer = NewPointerTracker(s)
	return s
}

// Document returns the root of the scrolling layer.
func (s *Stage) Document() *Node { return s.document }

// Overlay returns the root of the fixed layer drawn above the document.
func (s *Stage) Overlay() *Node { return s.overlay }

// Viewport returns the stage's viewport.
func (s *Stage) Viewport() *Viewport { return s.viewport }

// Pointer returns the stage's shared pointer tracker.
func (s *Stage) Pointer() *PointerTracker { return s.pointer }

// Animator returns the animator driven by Update.
func (s *Stage) Animator() *Animator { return s.animator }

// Logger returns the stage logger.
func (s *Stage) Logger() *zap.Logger { return s.log }

// SetLogger replaces the stage logger. A nil logger silences logging.
func (s *Stage) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

// SetDebugMode enables per-frame debug stats at Debug level.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// ViewportSize implements PointerSource.
func (s *Stage) ViewportSize() (w, h float64) {
	return s.viewport.Width, s.viewport.Height
}

// Resize changes the viewport size and clamps the scroll offset.
func (s *Stage) Resize(w, h float64) {
	if s.viewport.Width == w && s.viewport.Height == h {
		return
	}
	s.viewport.Width = w
	s.viewport.Height = h
	s.viewport.ScrollY = clamp(s.viewport.ScrollY, 0, s.viewport.MaxScroll())
	s.log.Debug("viewport resized", zap.Float64("width", w), zap.Float64("height", h))
}

// ScreenToDocument converts a screen point to document coordinates.
func (s *Stage) ScreenToDocument(x, y float64) (float64, float64) {
	return x, y + s.viewport.ScrollY
}

// Find looks up a node by name or slash path in the document, then the
// overlay. Returns nil when absent.
func (s *Stage) Find(path string) *Node {
	if n := s.document.Find(path); n != nil {
		return n
	}
	return s.overlay.Find(path)
}

// Update reads real input and advances one fixed tick. It is called from
// the Ebitengine game loop.
func (s *Stage) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))
	s.refreshTransforms()
	s.processInput()
	s.advance(dt)
}

// Step advances one frame of dt seconds without reading real input.
// Injected events are still consumed.
func (s *Stage) Step(dt float32) {
	s.refreshTransforms()
	s.processInjectedInput()
	s.advance(dt)
}

func (s *Stage) refreshTransforms() {
	updateWorldTransform(s.document, identityTransform, 1.0, false)
	updateWorldTransform(s.overlay, identityTransform, 1.0, false)
}

// advance runs animations, then scroll bindings, then tick handlers.
func (s *Stage) advance(dt float32) {
	s.frame++
	s.animator.Update(dt)
	s.refreshTransforms()
	s.viewport.Update(dt)

	if len(s.handlers.tick) > 0 {
		snap := make([]tickHandler, len(s.handlers.tick))
		copy(snap, s.handlers.tick)
		for _, h := range snap {
			if !containsTick(s.handlers.tick, h.id) {
				continue
			}
			h.fn(dt)
		}
	}
}

// Frame returns the number of frames advanced so far.
func (s *Stage) Frame() uint64 { return s.frame }

// --- Sections ---

// Mount creates a controller for sec and mounts it. The controller is
// returned even when mounting fails so the caller can retry.
func (s *Stage) Mount(sec Section) (*SectionController, error) {
	c := NewSectionController(s, sec)
	s.sections = append(s.sections, c)
	return c, c.Mount()
}

// Sections returns the controllers created by Mount. The returned slice
// MUST NOT be mutated.
func (s *Stage) Sections() []*SectionController {
	return s.sections
}

// UnmountAll unmounts every section in reverse mount order.
func (s *Stage) UnmountAll() {
	for i := len(s.sections) - 1; i >= 0; i-- {
		s.sections[i].Unmount()
	}
}

// RemountAll unmounts every section and mounts them again in order.
// Mount errors are combined.
func (s *Stage) RemountAll() error {
	s.UnmountAll()
	var err error
	for _, c := range s.sections {
		err = multierr.Append(err, c.Mount())
	}
	return err
}

// Clear unmounts every section, forgets them and disposes both layers'
// children.
func (s *Stage) Clear() {
	s.UnmountAll()
	s.sections = nil
	for _, root := range []*Node{s.document, s.overlay} {
		for len(root.children) > 0 {
			root.children[len(root.children)-1].Dispose()
		}
	}
	s.ptr = pointerState{lastX: s.ptr.lastX, lastY: s.ptr.lastY}
	s.viewport.SetScroll(0)
}

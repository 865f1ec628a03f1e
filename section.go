package folio

import (
	"fmt"

	"go.uber.org/zap"
)

// SectionState is a section controller's lifecycle state.
type SectionState uint8

const (
	StateUnmounted SectionState = iota
	StateMounting
	StateActive
	StateUnmounting
)

func (s SectionState) String() string {
	switch s {
	case StateUnmounted:
		return "unmounted"
	case StateMounting:
		return "mounting"
	case StateActive:
		return "active"
	case StateUnmounting:
		return "unmounting"
	}
	return "unknown"
}

// Section is one visual region of the page. Mount builds its animations
// and registers them through m; everything registered through m is released
// when the section unmounts.
type Section interface {
	Name() string
	Mount(m *Mounter)
}

// Unmounter is implemented by sections that need a hook before their
// registrations are released.
type Unmounter interface {
	Unmount()
}

// SectionController owns one section's lifecycle:
// Unmounted -> Mounting -> Active -> Unmounting -> Unmounted.
type SectionController struct {
	section  Section
	stage    *Stage
	state    SectionState
	gen      uint32
	releases []registration
	log      *zap.Logger
}

// NewSectionController creates an unmounted controller for sec on stage.
func NewSectionController(stage *Stage, sec Section) *SectionController {
	return &SectionController{
		section: sec,
		stage:   stage,
		log:     stage.log.With(zap.String("section", sec.Name())),
	}
}

// Name returns the section name.
func (c *SectionController) Name() string { return c.section.Name() }

// State returns the current lifecycle state.
func (c *SectionController) State() SectionState { return c.state }

// registration is one release handle. A registration whose spent func
// reports true no longer needs releasing and is dropped on the next
// registration.
type registration struct {
	release func()
	spent   func() bool
}

func (r registration) isSpent() bool { return r.spent != nil && r.spent() }

// Registrations returns the number of live registrations.
func (c *SectionController) Registrations() int {
	n := 0
	for _, r := range c.releases {
		if !r.isSpent() {
			n++
		}
	}
	return n
}

// prune forgets spent registrations.
func (c *SectionController) prune() {
	kept := c.releases[:0]
	for _, r := range c.releases {
		if !r.isSpent() {
			kept = append(kept, r)
		}
	}
	for i := len(kept); i < len(c.releases); i++ {
		c.releases[i] = registration{}
	}
	c.releases = kept
}

// Mount runs the section's Mount. Calling it while the section is mounting
// or active does nothing. If the section panics, whatever it registered so
// far is released and the panic is returned as an error.
func (c *SectionController) Mount() (err error) {
	if c.state != StateUnmounted {
		return nil
	}
	c.state = StateMounting
	c.gen++
	m := &Mounter{c: c, gen: c.gen}

	defer func() {
		if r := recover(); r != nil {
			c.releaseAll()
			c.state = StateUnmounted
			err = fmt.Errorf("mount section %q: %v", c.section.Name(), r)
			c.log.Error("mount failed", zap.Error(err))
		}
	}()

	c.section.Mount(m)
	c.state = StateActive
	c.log.Debug("section mounted", zap.Int("registrations", len(c.releases)))
	return nil
}

// Unmount releases every registration the section made, newest first, and
// kills its timelines. Only the first call after a mount does anything.
func (c *SectionController) Unmount() {
	if c.state != StateActive {
		return
	}
	c.state = StateUnmounting
	if u, ok := c.section.(Unmounter); ok {
		u.Unmount()
	}
	n := len(c.releases)
	c.releaseAll()
	c.state = StateUnmounted
	c.log.Debug("section unmounted", zap.Int("released", n))
}

func (c *SectionController) releaseAll() {
	for len(c.releases) > 0 {
		last := len(c.releases) - 1
		r := c.releases[last]
		c.releases[last] = registration{}
		c.releases = c.releases[:last]
		r.release()
	}
}

// Mounter is the registration API handed to Section.Mount. It stays valid
// while the section is active, so handlers may register follow-up
// animations; after unmount every method is a no-op returning nil.
type Mounter struct {
	c   *SectionController
	gen uint32
}

func (m *Mounter) live() bool {
	return m.gen == m.c.gen && (m.c.state == StateMounting || m.c.state == StateActive)
}

func (m *Mounter) track(release func()) {
	m.trackUntil(release, nil)
}

// trackUntil registers release like track; once spent reports true the
// registration is forgotten without being called.
func (m *Mounter) trackUntil(release func(), spent func() bool) {
	done := false
	m.c.prune()
	m.c.releases = append(m.c.releases, registration{
		release: func() {
			if done {
				return
			}
			done = true
			release()
		},
		spent: spent,
	})
}

// Stage returns the stage the section is mounted on.
func (m *Mounter) Stage() *Stage { return m.c.stage }

// Viewport returns the stage viewport.
func (m *Mounter) Viewport() *Viewport { return m.c.stage.viewport }

// Logger returns the section's logger.
func (m *Mounter) Logger() *zap.Logger { return m.c.log }

// Find looks up a node by name or slash path. A missing node is logged at
// Debug and nil is returned; every Mounter method skips nil targets.
func (m *Mounter) Find(path string) *Node {
	n := m.c.stage.Find(path)
	if n == nil {
		m.c.log.Debug("target not found", zap.String("path", path))
	}
	return n
}

func (m *Mounter) skip(what string) {
	m.c.log.Debug("skipped registration", zap.String("kind", what))
}

// Track ties tl to the section so it is killed at unmount, without playing it.
func (m *Mounter) Track(tl *Timeline) *Timeline {
	if tl == nil || !m.live() {
		return nil
	}
	anim := m.c.stage.animator
	m.track(func() {
		tl.Kill()
		anim.Remove(tl)
	})
	return tl
}

// Play tracks tl and starts it.
func (m *Mounter) Play(tl *Timeline) *Timeline {
	if m.Track(tl) == nil {
		return nil
	}
	m.c.stage.animator.Add(tl.Play())
	return tl
}

// PlayOnce plays tl like Play but forgets it once it completes or is
// killed, so timelines started from click handlers do not accumulate over
// the life of the section. A timeline played this way is not replayed.
func (m *Mounter) PlayOnce(tl *Timeline) *Timeline {
	if tl == nil || !m.live() {
		return nil
	}
	anim := m.c.stage.animator
	m.trackUntil(func() {
		tl.Kill()
		anim.Remove(tl)
	}, func() bool {
		return tl.killed || tl.completed
	})
	anim.Add(tl.Play())
	return tl
}

// Drive hands an already tracked timeline back to the animator after its
// playback state changed, e.g. in a click handler.
func (m *Mounter) Drive(tl *Timeline) {
	if tl == nil || !m.live() {
		return
	}
	m.c.stage.animator.Add(tl)
}

// Run tracks tw and drives it until it finishes.
func (m *Mounter) Run(tw *TweenGroup) *TweenGroup {
	if tw == nil || !m.live() {
		return nil
	}
	anim := m.c.stage.animator
	m.track(func() {
		tw.Cancel()
		anim.Remove(tw)
	})
	anim.Add(tw)
	return tw
}

// Tween starts a tween of node toward to.
func (m *Mounter) Tween(node *Node, to Props, duration float32, easeName string) *TweenGroup {
	if node == nil {
		m.skip("tween")
		return nil
	}
	return m.Run(TweenTo(node, to, duration, EaseByName(easeName)))
}

// Observe registers a scroll binding released at unmount.
func (m *Mounter) Observe(trigger *Node, w Window, fn func(progress float64, dir ScrollDirection)) *ScrollBinding {
	if trigger == nil {
		m.skip("observe")
		return nil
	}
	if !m.live() {
		return nil
	}
	b := m.c.stage.viewport.Observe(trigger, w, fn)
	m.track(b.Release)
	return b
}

// ScrollPlay drives tl from scroll crossings of trigger through w.
func (m *Mounter) ScrollPlay(trigger *Node, w Window, tl *Timeline, actions ToggleActions) *ScrollBinding {
	if trigger == nil || tl == nil {
		m.skip("scroll play")
		return nil
	}
	if m.Track(tl) == nil {
		return nil
	}
	anim := m.c.stage.animator
	return m.Observe(trigger, w, ToggleHandler(tl, actions, func(tl *Timeline) { anim.Add(tl) }))
}

// Scrub calls fn with trigger's progress through w whenever it changes.
func (m *Mounter) Scrub(trigger *Node, w Window, fn func(progress float64)) *ScrollBinding {
	if fn == nil {
		return nil
	}
	return m.Observe(trigger, w, func(p float64, dir ScrollDirection) {
		if dir != ScrollLeave {
			fn(p)
		}
	})
}

// ScrubTimeline seeks tl to trigger's progress through w.
func (m *Mounter) ScrubTimeline(trigger *Node, w Window, tl *Timeline) *ScrollBinding {
	if tl == nil || m.Track(tl) == nil {
		return nil
	}
	return m.Scrub(trigger, w, func(p float64) { tl.SetProgress(p) })
}

// Pointer subscribes fn to the stage pointer tracker until unmount.
func (m *Mounter) Pointer(fn func(PointerOffset)) (unsubscribe func()) {
	if fn == nil || !m.live() {
		return func() {}
	}
	unsub := m.c.stage.pointer.Subscribe(fn)
	m.track(unsub)
	return unsub
}

// OnHover makes node interactable and calls enter and leave as the pointer
// crosses it. Either callback may be nil.
func (m *Mounter) OnHover(node *Node, enter, leave func(PointerContext)) {
	if node == nil {
		m.skip("hover")
		return
	}
	if !m.live() {
		return
	}
	node.Interactable = true
	if enter != nil {
		h := m.c.stage.OnPointerEnter(func(ctx PointerContext) {
			if ctx.Node == node {
				enter(ctx)
			}
		})
		m.track(h.Remove)
	}
	if leave != nil {
		h := m.c.stage.OnPointerLeave(func(ctx PointerContext) {
			if ctx.Node == node {
				leave(ctx)
			}
		})
		m.track(h.Remove)
	}
}

// OnClick makes node interactable and calls fn when it is clicked.
func (m *Mounter) OnClick(node *Node, fn func(PointerContext)) {
	if node == nil || fn == nil {
		m.skip("click")
		return
	}
	if !m.live() {
		return
	}
	node.Interactable = true
	h := m.c.stage.OnClick(func(ctx PointerContext) {
		if ctx.Node == node {
			fn(ctx)
		}
	})
	m.track(h.Remove)
}

// OnTick calls fn every frame until unmount.
func (m *Mounter) OnTick(fn func(dt float32)) {
	if fn == nil || !m.live() {
		return
	}
	h := m.c.stage.OnTick(fn)
	m.track(h.Remove)
}

// Defer runs fn at unmount, before anything registered earlier is released.
func (m *Mounter) Defer(fn func()) {
	if fn == nil || !m.live() {
		return
	}
	m.track(fn)
}

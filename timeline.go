package folio

import (
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Step is one scheduled property transition inside a Timeline.
//
// From is optional: properties listed in To but not in From start from
// whatever value the node holds when the step begins. Offset is measured from
// the end of the previous step, so a negative Offset overlaps it.
type Step struct {
	Target   *Node
	From     Props
	To       Props
	Duration float32
	Ease     ease.TweenFunc
	Offset   float32
}

// ScheduleSteps returns the start time of every step and the end of the
// latest step. A step starts at its predecessor's end plus its Offset,
// clamped to zero.
func ScheduleSteps(steps []Step) (starts []float32, end float32) {
	starts = make([]float32, len(steps))
	var prevEnd float32
	for i, s := range steps {
		start := prevEnd + s.Offset
		if start < 0 {
			start = 0
		}
		starts[i] = start
		prevEnd = start + maxf(s.Duration, 0)
		if prevEnd > end {
			end = prevEnd
		}
	}
	return starts, end
}

// TimelineBuilder accumulates steps and produces a Timeline.
type TimelineBuilder struct {
	steps []Step
}

// NewTimelineBuilder returns an empty builder.
func NewTimelineBuilder() *TimelineBuilder {
	return &TimelineBuilder{}
}

// Add appends s.
func (b *TimelineBuilder) Add(s Step) *TimelineBuilder {
	b.steps = append(b.steps, s)
	return b
}

// FromTo appends a step that animates target from one state to another.
func (b *TimelineBuilder) FromTo(target *Node, from, to Props, duration float32, fn ease.TweenFunc, offset float32) *TimelineBuilder {
	return b.Add(Step{Target: target, From: from, To: to, Duration: duration, Ease: fn, Offset: offset})
}

// To appends a step that animates target from its current state.
func (b *TimelineBuilder) To(target *Node, to Props, duration float32, fn ease.TweenFunc, offset float32) *TimelineBuilder {
	return b.Add(Step{Target: target, To: to, Duration: duration, Ease: fn, Offset: offset})
}

// Stagger appends one from-to step per target, each starting each seconds
// after the previous one. The first target starts offset after the
// current last step.
func (b *TimelineBuilder) Stagger(targets []*Node, from, to Props, duration float32, fn ease.TweenFunc, each, offset float32) *TimelineBuilder {
	for i, t := range targets {
		off := offset
		if i > 0 {
			off = each - duration
		}
		b.FromTo(t, from, to, duration, fn, off)
	}
	return b
}

// Len returns the number of steps added so far.
func (b *TimelineBuilder) Len() int {
	return len(b.steps)
}

// Build produces the Timeline. The builder may be reused afterwards.
func (b *TimelineBuilder) Build() *Timeline {
	return BuildTimeline(b.steps)
}

// track is a scheduled step with its resolved fields and tweens.
type track struct {
	target   *Node
	start    float32
	duration float32
	ease     ease.TweenFunc
	props    []Property
	fields   []*float64
	from     []float64
	hasFrom  []bool
	to       []float64
	tweens   []*gween.Tween
	captured bool
}

// capture resolves start values the first time the step begins.
func (tr *track) capture() {
	if tr.captured {
		return
	}
	tr.captured = true
	tr.tweens = tr.tweens[:0]
	for i, f := range tr.fields {
		if !tr.hasFrom[i] {
			tr.from[i] = *f
		}
		tr.tweens = append(tr.tweens, gween.New(float32(tr.from[i]), float32(tr.to[i]), tr.duration, tr.ease))
	}
}

func (tr *track) apply(local float32) {
	for i, f := range tr.fields {
		if tr.duration <= 0 {
			*f = tr.to[i]
			continue
		}
		v, _ := tr.tweens[i].Set(local)
		*f = float64(v)
	}
	tr.target.MarkDirty()
}

func (tr *track) revert() {
	for i, f := range tr.fields {
		*f = tr.from[i]
	}
	tr.target.MarkDirty()
}

// BuildTimeline schedules steps into a paused Timeline.
//
// Steps with a nil target are dropped but keep their slot in the schedule,
// so later steps start where they would have. Duration covers only the
// surviving steps: a trailing nil-target step does not extend it, and a
// timeline whose steps were all dropped has duration 0. ScheduleSteps, by
// contrast, reports the end of every step.
// From values are written to their targets immediately; when several steps
// give a From for the same node property, the earliest one wins.
func BuildTimeline(steps []Step) *Timeline {
	starts, _ := ScheduleSteps(steps)
	tl := &Timeline{}

	for i, s := range steps {
		if s.Target == nil {
			continue
		}
		fn := s.Ease
		if fn == nil {
			fn = DefaultEase
		}
		tr := &track{target: s.Target, start: starts[i], duration: maxf(s.Duration, 0), ease: fn}
		props := Props{}
		for k, v := range s.To {
			props[k] = v
		}
		for _, p := range props.keys() {
			tr.props = append(tr.props, p)
			tr.fields = append(tr.fields, p.field(s.Target))
			tr.to = append(tr.to, s.To[p])
			fv, ok := s.From[p]
			tr.from = append(tr.from, fv)
			tr.hasFrom = append(tr.hasFrom, ok)
		}
		if end := tr.start + tr.duration; end > tl.duration {
			tl.duration = end
		}
		tl.tracks = append(tl.tracks, tr)
	}

	sort.SliceStable(tl.tracks, func(i, j int) bool {
		return tl.tracks[i].start < tl.tracks[j].start
	})

	type key struct {
		n *Node
		p Property
	}
	seen := map[key]bool{}
	for _, tr := range tl.tracks {
		for i, p := range tr.props {
			k := key{tr.target, p}
			if seen[k] {
				continue
			}
			seen[k] = true
			if tr.hasFrom[i] {
				*tr.fields[i] = tr.from[i]
				tr.target.MarkDirty()
			}
		}
	}
	return tl
}

// Timeline plays a set of scheduled steps. It is driven by Update(dt),
// usually through a Stage's Animator. A new Timeline is paused at time 0.
type Timeline struct {
	tracks   []*track
	duration float32

	total     float32 // playhead within the current iteration
	iteration int
	repeat    int
	yoyo      bool

	playing   bool
	reversed  bool
	completed bool
	killed    bool

	onComplete        func()
	onReverseComplete func()
}

// Duration returns the length of one iteration in seconds.
func (tl *Timeline) Duration() float32 { return tl.duration }

// Time returns the playhead position within the current iteration.
func (tl *Timeline) Time() float32 { return tl.total }

// Progress returns the playhead as a fraction of Duration. An empty timeline
// reports 1 once it has completed.
func (tl *Timeline) Progress() float64 {
	if tl.duration <= 0 {
		if tl.completed {
			return 1
		}
		return 0
	}
	return float64(tl.total / tl.duration)
}

// IsPlaying reports whether Update currently advances the playhead.
func (tl *Timeline) IsPlaying() bool { return tl.playing && !tl.killed }

// IsReversed reports whether the playhead moves backwards.
func (tl *Timeline) IsReversed() bool { return tl.reversed }

// IsComplete reports whether the timeline reached its end playing forward.
func (tl *Timeline) IsComplete() bool { return tl.completed }

// IsKilled reports whether Kill has been called.
func (tl *Timeline) IsKilled() bool { return tl.killed }

// Active reports whether the timeline still needs Update calls.
func (tl *Timeline) Active() bool { return tl.IsPlaying() }

// Len returns the number of steps that survived the build.
func (tl *Timeline) Len() int { return len(tl.tracks) }

// OnComplete sets the callback fired when forward playback reaches the end.
func (tl *Timeline) OnComplete(fn func()) *Timeline {
	tl.onComplete = fn
	return tl
}

// OnReverseComplete sets the callback fired when reverse playback reaches 0.
func (tl *Timeline) OnReverseComplete(fn func()) *Timeline {
	tl.onReverseComplete = fn
	return tl
}

// SetRepeat sets how many extra iterations play after the first; -1 repeats
// forever.
func (tl *Timeline) SetRepeat(n int) *Timeline {
	tl.repeat = n
	return tl
}

// SetYoyo makes odd iterations play backwards.
func (tl *Timeline) SetYoyo(yoyo bool) *Timeline {
	tl.yoyo = yoyo
	return tl
}

// Play starts or resumes forward playback. It is a no-op on a completed or
// killed timeline; use Restart to replay.
func (tl *Timeline) Play() *Timeline {
	if tl.killed || tl.completed {
		return tl
	}
	tl.reversed = false
	tl.playing = true
	return tl
}

// Pause stops the playhead where it is.
func (tl *Timeline) Pause() *Timeline {
	tl.playing = false
	return tl
}

// Resume continues playback in the current direction.
func (tl *Timeline) Resume() *Timeline {
	if tl.killed {
		return tl
	}
	if tl.reversed {
		return tl.Reverse()
	}
	return tl.Play()
}

// Reverse plays backwards toward time 0. It is a no-op when already at 0.
func (tl *Timeline) Reverse() *Timeline {
	if tl.killed {
		return tl
	}
	tl.reversed = true
	tl.completed = false
	tl.playing = tl.total > 0 || tl.iteration > 0
	return tl
}

// Restart rewinds to time 0 and plays forward.
func (tl *Timeline) Restart() *Timeline {
	if tl.killed {
		return tl
	}
	tl.iteration = 0
	tl.total = 0
	tl.reversed = false
	tl.completed = false
	tl.render()
	tl.playing = true
	return tl
}

// Seek moves the playhead to t seconds and renders every step at that time.
// Playback state is unchanged.
func (tl *Timeline) Seek(t float32) *Timeline {
	if tl.killed {
		return tl
	}
	tl.total = clampf(t, 0, tl.duration)
	tl.completed = false
	tl.render()
	return tl
}

// SetProgress seeks to p * Duration.
func (tl *Timeline) SetProgress(p float64) *Timeline {
	return tl.Seek(float32(clamp01(p)) * tl.duration)
}

// Complete jumps to the end and stops without firing OnComplete.
func (tl *Timeline) Complete() *Timeline {
	if tl.killed {
		return tl
	}
	tl.Seek(tl.duration)
	tl.playing = false
	tl.completed = true
	return tl
}

// Kill stops the timeline for good. No callback fires after Kill returns.
func (tl *Timeline) Kill() {
	tl.killed = true
	tl.playing = false
	tl.onComplete = nil
	tl.onReverseComplete = nil
}

// Update advances the playhead by dt seconds and renders.
func (tl *Timeline) Update(dt float32) {
	if tl.killed || !tl.playing {
		return
	}
	if tl.reversed {
		tl.stepBackward(dt)
	} else {
		tl.stepForward(dt)
	}
}

func (tl *Timeline) canRepeat() bool {
	return tl.repeat < 0 || tl.iteration < tl.repeat
}

func (tl *Timeline) stepForward(dt float32) {
	tl.total += dt
	if tl.duration <= 0 {
		tl.total = 0
		tl.render()
		tl.finish()
		return
	}
	for tl.total >= tl.duration && tl.canRepeat() {
		tl.total -= tl.duration
		tl.iteration++
	}
	if tl.total >= tl.duration {
		tl.total = tl.duration
		tl.render()
		tl.finish()
		return
	}
	tl.render()
}

func (tl *Timeline) stepBackward(dt float32) {
	tl.total -= dt
	for tl.total < 0 && tl.iteration > 0 && tl.duration > 0 {
		tl.total += tl.duration
		tl.iteration--
	}
	if tl.total <= 0 {
		tl.total = 0
		tl.render()
		tl.playing = false
		if fn := tl.onReverseComplete; fn != nil && !tl.killed {
			fn()
		}
		return
	}
	tl.render()
}

func (tl *Timeline) finish() {
	tl.playing = false
	tl.completed = true
	if fn := tl.onComplete; fn != nil && !tl.killed {
		fn()
	}
}

// renderTime maps the iteration playhead onto step time, mirroring odd
// iterations when yoyo is set.
func (tl *Timeline) renderTime() float32 {
	if tl.yoyo && tl.iteration%2 == 1 {
		return tl.duration - tl.total
	}
	return tl.total
}

// render writes every step's value at the current time. Steps that have not
// started are first restored to their start values, latest first, so that
// earlier steps on the same property win; started steps are then applied in
// start order so the later-started one wins.
func (tl *Timeline) render() {
	t := tl.renderTime()
	for i := len(tl.tracks) - 1; i >= 0; i-- {
		tr := tl.tracks[i]
		if t < tr.start && tr.captured && !tr.target.IsDisposed() {
			tr.revert()
		}
	}
	for _, tr := range tl.tracks {
		if t < tr.start || tr.target.IsDisposed() {
			continue
		}
		tr.capture()
		tr.apply(t - tr.start)
	}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

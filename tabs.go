package folio

// TabController switches between named panels with an exit animation, a
// content swap and an enter animation. Only one switch runs at a time;
// requests made while one is running are dropped.
type TabController struct {
	selected      string
	transitioning bool

	// Exit returns the timeline that hides the panel being left. Nil or a
	// nil result means no exit animation.
	Exit func(from string) *Timeline
	// Enter returns the timeline that reveals the new panel.
	Enter func(to string) *Timeline
	// Swap replaces the visible content. It runs after Exit completes and
	// before Enter starts.
	Swap func(from, to string)
	// Run drives a timeline after it has been started, usually by handing
	// it to an Animator.
	Run func(*Timeline)
	// OnSettled is called when a switch has fully finished.
	OnSettled func(selected string)
}

// NewTabController starts with initial selected.
func NewTabController(initial string) *TabController {
	return &TabController{selected: initial}
}

// Selected returns the visible selection.
func (t *TabController) Selected() string { return t.selected }

// IsTransitioning reports whether a switch is in flight.
func (t *TabController) IsTransitioning() bool { return t.transitioning }

// RequestTransition starts a switch to id. It returns false, doing nothing,
// when a switch is already running or id is already selected.
func (t *TabController) RequestTransition(id string) bool {
	if t.transitioning || id == t.selected {
		return false
	}
	t.transitioning = true
	from := t.selected

	exit := t.timeline(t.Exit, from)
	exit.OnComplete(func() {
		t.selected = id
		if t.Swap != nil {
			t.Swap(from, id)
		}
		enter := t.timeline(t.Enter, id)
		enter.OnComplete(func() {
			t.transitioning = false
			if t.OnSettled != nil {
				t.OnSettled(id)
			}
		})
		t.start(enter)
	})
	t.start(exit)
	return true
}

// Reset forces the selection to id and clears any in-flight switch. Use it
// when the owning section remounts.
func (t *TabController) Reset(id string) {
	t.selected = id
	t.transitioning = false
}

func (t *TabController) timeline(build func(string) *Timeline, id string) *Timeline {
	if build != nil {
		if tl := build(id); tl != nil {
			return tl
		}
	}
	return BuildTimeline(nil)
}

func (t *TabController) start(tl *Timeline) {
	tl.Play()
	if t.Run != nil {
		t.Run(tl)
	}
}

package folio

// Animation is anything the Animator can drive once per frame.
type Animation interface {
	Update(dt float32)
	Active() bool
}

// Active reports whether the group still has frames to play.
func (g *TweenGroup) Active() bool { return !g.Done }

// Animator drives a set of animations each frame and drops them once they
// go idle. Adding an animation that is already present is a no-op.
type Animator struct {
	items []Animation
	index map[Animation]struct{}
	buf   []Animation
}

// NewAnimator returns an empty Animator.
func NewAnimator() *Animator {
	return &Animator{index: make(map[Animation]struct{})}
}

// Add starts driving a. Idle animations are ignored.
func (a *Animator) Add(anim Animation) {
	if anim == nil || !anim.Active() {
		return
	}
	if _, ok := a.index[anim]; ok {
		return
	}
	a.index[anim] = struct{}{}
	a.items = append(a.items, anim)
}

// Remove stops driving anim without touching its state.
func (a *Animator) Remove(anim Animation) {
	if _, ok := a.index[anim]; !ok {
		return
	}
	delete(a.index, anim)
	for i, it := range a.items {
		if it == anim {
			a.items = append(a.items[:i], a.items[i+1:]...)
			return
		}
	}
}

// Update advances every animation by dt. Animations added during the pass
// start on the next frame.
func (a *Animator) Update(dt float32) {
	a.buf = append(a.buf[:0], a.items...)
	for _, anim := range a.buf {
		if _, ok := a.index[anim]; !ok {
			continue
		}
		if anim.Active() {
			anim.Update(dt)
		}
	}
	kept := a.items[:0]
	for _, anim := range a.items {
		if anim.Active() {
			kept = append(kept, anim)
		} else {
			delete(a.index, anim)
		}
	}
	for i := len(kept); i < len(a.items); i++ {
		a.items[i] = nil
	}
	a.items = kept
	for i := range a.buf {
		a.buf[i] = nil
	}
}

// Len returns the number of animations being driven.
func (a *Animator) Len() int {
	return len(a.items)
}

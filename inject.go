package folio

type injectKind uint8

const (
	injectPointer injectKind = iota
	injectScroll
)

// syntheticEvent represents a single injected input event in screen
// coordinates. It is fed through the same path as real input.
type syntheticEvent struct {
	kind             injectKind
	screenX, screenY float64
	pressed          bool
	scrollY          float64
}

// InjectMove queues a pointer move to the given screen coordinates. The
// button state carries over from the last queued press or release.
// The event is consumed on the next frame.
func (s *Stage) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: injectPointer, screenX: x, screenY: y, pressed: s.injectPressed,
	})
}

// InjectPress queues a left button press at the given screen coordinates.
func (s *Stage) InjectPress(x, y float64) {
	s.injectPressed = true
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: injectPointer, screenX: x, screenY: y, pressed: true,
	})
}

// InjectRelease queues a left button release at the given screen coordinates.
func (s *Stage) InjectRelease(x, y float64) {
	s.injectPressed = false
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: injectPointer, screenX: x, screenY: y, pressed: false,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same screen coordinates. Consumes two frames.
func (s *Stage) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectScroll queues a page scroll of dy pixels, as a wheel would.
func (s *Stage) InjectScroll(dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: injectScroll, scrollY: dy})
}

// PendingInput returns the number of queued synthetic events.
func (s *Stage) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the regular input path. Returns true if an event was consumed
// (real input should be skipped).
func (s *Stage) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case injectScroll:
		s.processWheel(evt.scrollY)
	default:
		s.processPointer(evt.screenX, evt.screenY, evt.pressed)
	}
	return true
}

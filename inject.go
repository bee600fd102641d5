package backdrop

// syntheticPointerEvent is a single injected pointer sample, in screen
// coordinates, routed through the same state machine as real mouse input.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
}

// InjectMove queues a hover sample at (x, y). Each queued sample is consumed
// by one update; use InjectMoves to deliver several within a single update.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectPress queues a left-button press at (x, y).
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a release at (x, y).
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release at (x, y). Consumes two updates.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectSweep queues frames hover samples evenly spaced from (fromX, fromY)
// to (toX, toY) inclusive, one per update.
func (s *Scene) InjectSweep(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// InjectMoves feeds every point as a hover sample immediately, as if the
// platform delivered a burst of pointer events between two frames.
func (s *Scene) InjectMoves(points ...Vec2) {
	for _, p := range points {
		s.processPointer(0, p.X, p.Y, false, MouseButtonLeft)
	}
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one queued event and feeds it to pointer 0.
// It reports whether an event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.processPointer(0, evt.x, evt.y, evt.pressed, MouseButtonLeft)
	return true
}

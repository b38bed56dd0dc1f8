package alienkitty

// syntheticPointerEvent is a queued injected event in logical pixels.
type syntheticPointerEvent struct {
	kind PointerKind
	x, y float64
}

// InjectMove queues a pointer move to (x, y). Injected events are consumed
// one per frame, after that frame's real input.
func (a *App) InjectMove(x, y float64) {
	a.injectQueue = append(a.injectQueue, syntheticPointerEvent{kind: PointerMove, x: x, y: y})
}

// InjectPress queues a move to (x, y) followed by a press.
func (a *App) InjectPress(x, y float64) {
	a.InjectMove(x, y)
	a.injectQueue = append(a.injectQueue, syntheticPointerEvent{kind: PointerDown, x: x, y: y})
}

// InjectRelease queues a move to (x, y) followed by a release.
func (a *App) InjectRelease(x, y float64) {
	a.InjectMove(x, y)
	a.injectQueue = append(a.injectQueue, syntheticPointerEvent{kind: PointerUp, x: x, y: y})
}

// InjectClick queues a press and a release at the same position.
func (a *App) InjectClick(x, y float64) {
	a.InjectPress(x, y)
	a.injectQueue = append(a.injectQueue, syntheticPointerEvent{kind: PointerUp, x: x, y: y})
}

// InjectDrag queues a press at (fromX, fromY), frames-2 interpolated moves,
// and a release at (toX, toY). Minimum frames is 2.
func (a *App) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	a.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		a.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	a.InjectRelease(toX, toY)
}

// PendingInjections returns the number of queued synthetic events.
func (a *App) PendingInjections() int {
	return len(a.injectQueue)
}

// popInjected appends the next synthetic event to buf. Returns false when
// the queue is empty.
func (a *App) popInjected(ft FrameTime, buf []PointerEvent) ([]PointerEvent, bool) {
	if len(a.injectQueue) == 0 {
		return buf, false
	}
	evt := a.injectQueue[0]
	copy(a.injectQueue, a.injectQueue[1:])
	a.injectQueue = a.injectQueue[:len(a.injectQueue)-1]

	return append(buf, PointerEvent{
		Kind:        evt.kind,
		X:           evt.x,
		Y:           evt.y,
		TimestampMs: ft.Ms(),
	}), true
}

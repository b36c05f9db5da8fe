package navigation

import (
	"log"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/input"
)

// registration is one attached listener and the closure that detaches it.
type registration struct {
	target input.EventTarget
	typ    input.EventType
	remove func()
}

// inputDispatcher adapts platform events into GestureEvents. Press, wheel and touch listeners go
// on the canvas; move, release, keys and focus loss go on the window because a drag may leave
// the canvas.
type inputDispatcher struct {
	canvas input.EventTarget
	window input.EventTarget
	logger *log.Logger

	disabled func() bool
	clock    Clock
	handle   func(GestureEvent) GestureResult
	onTap    func(x, y float32)
	onStep   func(dir int)

	ledger  []registration
	dropped bool

	lastX, lastY float32
	touchID      int
	touching     bool
	pinching     bool
	pinchDist    float32
}

func newInputDispatcher(canvas, window input.EventTarget, logger *log.Logger) *inputDispatcher {
	if canvas == nil {
		canvas = window
	}
	if window == nil {
		window = canvas
	}
	return &inputDispatcher{canvas: canvas, window: window, logger: logger}
}

// bind attaches every listener and records it in the ledger. Binding twice is a no-op.
func (d *inputDispatcher) bind() {
	if len(d.ledger) > 0 || d.canvas == nil {
		return
	}
	d.listen(d.canvas, input.EventPointerDown, d.onPointerDown)
	d.listen(d.canvas, input.EventWheel, d.onWheel)
	d.listen(d.canvas, input.EventTouchStart, d.onTouchStart)
	d.listen(d.canvas, input.EventTouchMove, d.onTouchMove)
	d.listen(d.canvas, input.EventTouchEnd, d.onTouchEnd)
	d.listen(d.canvas, input.EventTouchCancel, d.onCancel)
	d.listen(d.window, input.EventPointerMove, d.onPointerMove)
	d.listen(d.window, input.EventPointerUp, d.onPointerUp)
	d.listen(d.window, input.EventKeyDown, d.onKeyDown)
	d.listen(d.window, input.EventKeyUp, d.onKeyUp)
	d.listen(d.window, input.EventBlur, d.onCancel)
	d.logger.Printf("[Navigation] bound %d input listeners", len(d.ledger))
}

func (d *inputDispatcher) listen(target input.EventTarget, typ input.EventType, fn input.Listener) {
	remove := target.AddEventListener(typ, func(e *input.Event) {
		if !d.gateOpen() {
			d.dropped = true
			return
		}
		fn(e)
	})
	d.ledger = append(d.ledger, registration{target: target, typ: typ, remove: remove})
}

// gateOpen reports whether the disabled gate is clear. Input swallowed while it was set may have
// held the release of a press, so the first check after it clears cancels the current gesture.
func (d *inputDispatcher) gateOpen() bool {
	if d.disabled != nil && d.disabled() {
		return false
	}
	if d.dropped {
		d.dropped = false
		d.onCancel(nil)
	}
	return true
}

// dispose detaches every listener in the ledger and forgets gesture state.
func (d *inputDispatcher) dispose() {
	if len(d.ledger) > 0 {
		d.logger.Printf("[Navigation] detaching %d input listeners", len(d.ledger))
	}
	for _, r := range d.ledger {
		r.remove()
	}
	d.ledger = nil
	d.dropped = false
	d.touching = false
	d.pinching = false
}

func (d *inputDispatcher) listenerCount() int {
	return len(d.ledger)
}

func (d *inputDispatcher) dispatch(ev GestureEvent) GestureResult {
	if d.clock != nil {
		ev.At = d.clock.Now()
	}
	res := d.handle(ev)
	if res.Tap && d.onTap != nil {
		d.onTap(ev.X, ev.Y)
	}
	if res.Step != 0 && d.onStep != nil {
		d.onStep(res.Step)
	}
	return res
}

func (d *inputDispatcher) onPointerDown(e *input.Event) {
	if e.Button != common.MouseButtonPrimary {
		return
	}
	d.lastX, d.lastY = e.X, e.Y
	d.dispatch(GestureEvent{Kind: GesturePress, X: e.X, Y: e.Y})
}

func (d *inputDispatcher) onPointerMove(e *input.Event) {
	dx, dy := e.X-d.lastX, e.Y-d.lastY
	d.lastX, d.lastY = e.X, e.Y
	d.dispatch(GestureEvent{Kind: GestureMove, DX: dx, DY: dy, X: e.X, Y: e.Y})
}

func (d *inputDispatcher) onPointerUp(e *input.Event) {
	if e.Button != common.MouseButtonPrimary {
		return
	}
	d.dispatch(GestureEvent{Kind: GestureRelease, X: e.X, Y: e.Y})
}

func (d *inputDispatcher) onWheel(e *input.Event) {
	if res := d.dispatch(GestureEvent{Kind: GestureWheel, Delta: e.DeltaY}); res.Consumed {
		e.PreventDefault()
	}
}

func (d *inputDispatcher) onTouchStart(e *input.Event) {
	switch len(e.Touches) {
	case 1:
		t := e.Touches[0]
		d.touchID = t.ID
		d.touching = true
		d.lastX, d.lastY = t.X, t.Y
		d.dispatch(GestureEvent{Kind: GesturePress, X: t.X, Y: t.Y})
	case 2:
		d.pinching = true
		d.pinchDist = touchDistance(e.Touches[0], e.Touches[1])
		if res := d.dispatch(GestureEvent{Kind: GesturePinchStart}); res.Consumed {
			e.PreventDefault()
		}
	}
}

func (d *inputDispatcher) onTouchMove(e *input.Event) {
	if d.pinching && len(e.Touches) >= 2 {
		dist := touchDistance(e.Touches[0], e.Touches[1])
		delta := dist - d.pinchDist
		d.pinchDist = dist
		if res := d.dispatch(GestureEvent{Kind: GesturePinch, Delta: delta}); res.Consumed {
			e.PreventDefault()
		}
		return
	}
	if !d.touching {
		return
	}
	for _, t := range e.Touches {
		if t.ID != d.touchID {
			continue
		}
		dx, dy := t.X-d.lastX, t.Y-d.lastY
		d.lastX, d.lastY = t.X, t.Y
		if res := d.dispatch(GestureEvent{Kind: GestureMove, DX: dx, DY: dy, X: t.X, Y: t.Y}); res.Consumed {
			e.PreventDefault()
		}
		return
	}
}

func (d *inputDispatcher) onTouchEnd(e *input.Event) {
	if d.pinching && len(e.Touches) < 2 {
		d.pinching = false
	}
	if len(e.Touches) > 0 || !d.touching {
		return
	}
	d.touching = false
	d.dispatch(GestureEvent{Kind: GestureRelease, X: d.lastX, Y: d.lastY})
}

func (d *inputDispatcher) onCancel(*input.Event) {
	d.touching = false
	d.pinching = false
	d.dispatch(GestureEvent{Kind: GestureCancel})
}

func (d *inputDispatcher) onKeyDown(e *input.Event) {
	if e.Key == common.KeyO {
		d.dispatch(GestureEvent{Kind: GestureToggle})
		e.PreventDefault()
		return
	}
	if res := d.dispatch(GestureEvent{Kind: GestureKeyDown, Key: e.Key}); res.Consumed {
		e.PreventDefault()
	}
}

func (d *inputDispatcher) onKeyUp(e *input.Event) {
	d.dispatch(GestureEvent{Kind: GestureKeyUp, Key: e.Key})
}

func touchDistance(a, b input.Touch) float32 {
	return math32.Hypot(a.X-b.X, a.Y-b.Y)
}

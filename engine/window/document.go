package window

import (
	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/input"
)

func (w *engineWindow) ScrollOffset() float32 {
	return w.scrollOffset
}

func (w *engineWindow) ScrollTo(offset float32) {
	w.scrollOffset = common.Clamp(offset, 0, w.maxScroll())
}

func (w *engineWindow) SetContentLength(length float32) {
	w.contentLength = max(length, 0)
	w.ScrollTo(w.scrollOffset)
}

func (w *engineWindow) ContentLength() float32 {
	return max(w.contentLength, float32(w.height))
}

func (w *engineWindow) maxScroll() float32 {
	return max(w.ContentLength()-float32(w.height), 0)
}

// The handle* methods translate native callbacks into dispatched events. They run on the
// thread polling the platform.

func (w *engineWindow) handleMouseButton(button int, pressed bool) {
	typ := input.EventPointerUp
	if pressed {
		typ = input.EventPointerDown
	}
	w.Dispatch(&input.Event{Type: typ, X: w.cursorX, Y: w.cursorY, Button: button})
}

func (w *engineWindow) handleCursor(x, y float32) {
	w.cursorX, w.cursorY = x, y
	w.Dispatch(&input.Event{Type: input.EventPointerMove, X: x, Y: y})
}

// handleWheel dispatches a wheel event and scrolls the document unless a listener prevented it.
// Native offsets are positive for scrolling up; event deltas are positive for scrolling down.
func (w *engineWindow) handleWheel(yoff float32) {
	e := &input.Event{Type: input.EventWheel, X: w.cursorX, Y: w.cursorY, DeltaY: -yoff * w.wheelStep}
	w.Dispatch(e)
	if !e.DefaultPrevented() {
		w.ScrollTo(w.scrollOffset + e.DeltaY)
	}
}

func (w *engineWindow) handleKey(key int, pressed bool) {
	typ := input.EventKeyUp
	if pressed {
		typ = input.EventKeyDown
	}
	w.Dispatch(&input.Event{Type: typ, Key: key})
}

func (w *engineWindow) handleFocus(focused bool) {
	if !focused {
		w.Dispatch(&input.Event{Type: input.EventBlur})
	}
}

func (w *engineWindow) handleResize(width, height int) {
	w.width = width
	w.height = height
	w.ScrollTo(w.scrollOffset)
	if w.onResize != nil {
		w.onResize(width, height)
	}
	w.Dispatch(&input.Event{Type: input.EventResize, Width: width, Height: height})
}

package window

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/input"
)

func TestScrollDocumentClamps(t *testing.T) {
	w := newEngineWindow(WithHeight(800))

	w.ScrollTo(500)
	assert.Equal(t, float32(0), w.ScrollOffset(), "a one-viewport document cannot scroll")
	assert.Equal(t, float32(800), w.ContentLength())

	w.SetContentLength(7200)
	w.ScrollTo(9000)
	assert.Equal(t, float32(6400), w.ScrollOffset())
	w.ScrollTo(-5)
	assert.Equal(t, float32(0), w.ScrollOffset())

	w.ScrollTo(3000)
	w.SetContentLength(0)
	assert.Equal(t, float32(0), w.ScrollOffset(), "shrinking the document pulls the offset back")
}

func TestWheelScrollsUnlessPrevented(t *testing.T) {
	w := newEngineWindow(WithHeight(800), WithWheelStep(50))
	w.SetContentLength(4000)

	w.handleWheel(-2)
	assert.Equal(t, float32(100), w.ScrollOffset())

	var seen float32
	remove := w.AddEventListener(input.EventWheel, func(e *input.Event) {
		seen = e.DeltaY
		e.PreventDefault()
	})
	w.handleWheel(-2)
	assert.Equal(t, float32(100), seen)
	assert.Equal(t, float32(100), w.ScrollOffset())

	remove()
	w.handleWheel(1)
	assert.Equal(t, float32(50), w.ScrollOffset())
}

func TestPointerEventsCarryCursor(t *testing.T) {
	w := newEngineWindow()
	var events []input.Event
	record := func(e *input.Event) { events = append(events, *e) }
	w.AddEventListener(input.EventPointerDown, record)
	w.AddEventListener(input.EventPointerMove, record)
	w.AddEventListener(input.EventPointerUp, record)

	w.handleCursor(10, 20)
	w.handleMouseButton(common.MouseButtonPrimary, true)
	w.handleCursor(15, 25)
	w.handleMouseButton(common.MouseButtonPrimary, false)

	if assert.Len(t, events, 4) {
		assert.Equal(t, input.EventPointerDown, events[1].Type)
		assert.Equal(t, float32(10), events[1].X)
		assert.Equal(t, input.EventPointerUp, events[3].Type)
		assert.Equal(t, float32(25), events[3].Y)
	}
}

func TestKeyFocusAndResizeEvents(t *testing.T) {
	w := newEngineWindow(WithHeight(800))
	w.SetContentLength(2000)
	w.ScrollTo(1200)

	var types []input.EventType
	for _, typ := range []input.EventType{input.EventKeyDown, input.EventKeyUp, input.EventBlur, input.EventResize} {
		w.AddEventListener(typ, func(e *input.Event) { types = append(types, e.Type) })
	}
	var resized [2]int
	w.SetResizeCallback(func(width, height int) { resized = [2]int{width, height} })

	w.handleKey(common.KeyEsc, true)
	w.handleKey(common.KeyEsc, false)
	w.handleFocus(true)
	w.handleFocus(false)
	w.handleResize(640, 1000)

	assert.Equal(t, []input.EventType{input.EventKeyDown, input.EventKeyUp, input.EventBlur, input.EventResize}, types)
	assert.Equal(t, [2]int{640, 1000}, resized)
	assert.Equal(t, 1000, w.Height())
	assert.Equal(t, float32(1000), w.ScrollOffset(), "offset clamped to the taller viewport")
}

func TestTitleWithoutPlatformWindow(t *testing.T) {
	w := newEngineWindow(WithTitle("Tour"))
	assert.Equal(t, "Tour", w.Title())
	w.SetTitle("Tour · About")
	assert.Equal(t, "Tour · About", w.Title())
}

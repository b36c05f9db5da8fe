// Package input defines the platform-neutral input events the engine delivers and the event
// targets that listeners attach to. Platform windows translate their native callbacks into
// Events and dispatch them on a Target; consumers register listeners and keep the returned
// unsubscribe functions.
package input

// EventType identifies the kind of an input Event.
type EventType string

const (
	EventPointerDown EventType = "pointerdown"
	EventPointerMove EventType = "pointermove"
	EventPointerUp   EventType = "pointerup"
	EventWheel       EventType = "wheel"
	EventTouchStart  EventType = "touchstart"
	EventTouchMove   EventType = "touchmove"
	EventTouchEnd    EventType = "touchend"
	EventTouchCancel EventType = "touchcancel"
	EventKeyDown     EventType = "keydown"
	EventKeyUp       EventType = "keyup"
	EventResize      EventType = "resize"
	EventBlur        EventType = "blur"
)

// Touch is a single active contact point of a touch event.
type Touch struct {
	// ID is stable for the lifetime of the contact.
	ID int
	// X and Y are the contact position in pixels relative to the window's client area.
	X, Y float32
}

// Event is a single input event. Only the fields relevant to Type are populated.
type Event struct {
	Type EventType

	// X and Y are the pointer position in pixels (pointer events).
	X, Y float32

	// Button is the pointer button index (pointer down/up); 0 is the primary button.
	Button int

	// DeltaY is the wheel delta in pixels; positive scrolls down (wheel events).
	DeltaY float32

	// Key is the virtual key code (key events), see common.Key*.
	Key int

	// Touches holds all contacts currently on the surface (touch events).
	Touches []Touch

	// Width and Height carry the new client size in pixels (resize events).
	Width, Height int

	defaultPrevented bool
}

// PreventDefault marks the event as consumed so the platform skips its default action
// (for wheel events, scrolling the page).
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
//
// Returns:
//   - bool: true if the default action must be skipped
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

package navigation

import "time"

// GestureKind identifies a normalized input gesture.
type GestureKind int

const (
	// GesturePress is a primary pointer press or single-finger touch start.
	GesturePress GestureKind = iota
	// GestureMove is pointer or single-finger movement by DX, DY pixels.
	GestureMove
	// GestureRelease ends a press at X, Y.
	GestureRelease
	// GestureCancel ends a press without a position, e.g. on focus loss or touch cancel.
	GestureCancel
	// GestureWheel is a wheel step of Delta.
	GestureWheel
	// GesturePinchStart is a second finger landing, turning the touch into a pinch.
	GesturePinchStart
	// GesturePinch is a change of Delta pixels in the distance between two fingers.
	GesturePinch
	// GestureKeyDown is a key press of Key.
	GestureKeyDown
	// GestureKeyUp is a key release of Key.
	GestureKeyUp
	// GestureToggle is an explicit request to switch orbit mode on or off.
	GestureToggle
)

var gestureKindNames = [...]string{
	GesturePress:      "press",
	GestureMove:       "move",
	GestureRelease:    "release",
	GestureCancel:     "cancel",
	GestureWheel:      "wheel",
	GesturePinchStart: "pinchstart",
	GesturePinch:      "pinch",
	GestureKeyDown:    "keydown",
	GestureKeyUp:      "keyup",
	GestureToggle:     "toggle",
}

func (k GestureKind) String() string {
	if k >= 0 && int(k) < len(gestureKindNames) {
		return gestureKindNames[k]
	}
	return "unknown"
}

// GestureEvent is the single input type the orbit mode state machine consumes. Device adapters
// fill in only the fields their kind uses.
type GestureEvent struct {
	Kind   GestureKind
	DX, DY float32
	X, Y   float32
	Delta  float32
	Key    int
	At     time.Time
}

// GestureResult tells the device adapter what the state machine did with a gesture.
type GestureResult struct {
	// Consumed means the platform default action (page scroll) must be suppressed.
	Consumed bool
	// Tap is set when a press was released before it became a drag.
	Tap bool
	// Step is +1 or -1 when a key asked to move to the next or previous POI.
	Step int
}

package navigation

import (
	"log"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/input"
)

// NavigatorOption is a functional option for configuring a Navigator.
type NavigatorOption func(*navigatorImpl)

// WithInputTargets sets the event targets the navigator binds its listeners to. Press, wheel
// and touch listeners go on canvas; move, release, key and blur listeners go on window. Either
// may be nil to use the other for everything. Without targets the navigator is driven
// programmatically only.
//
// Parameters:
//   - canvas: target receiving presses over the scene
//   - window: target receiving window-wide events
//
// Returns:
//   - NavigatorOption: functional option to set the input targets
func WithInputTargets(canvas, window input.EventTarget) NavigatorOption {
	return func(n *navigatorImpl) {
		n.canvas = canvas
		n.window = window
	}
}

// WithDisabled sets the predicate consulted at the top of every tick and input handler. While
// it reports true nothing moves and no mode changes, timers included.
//
// Parameters:
//   - disabled: returns true while navigation must freeze, e.g. while a modal is open
//
// Returns:
//   - NavigatorOption: functional option to set the disabled gate
func WithDisabled(disabled func() bool) NavigatorOption {
	return func(n *navigatorImpl) {
		n.disabled = disabled
	}
}

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(logger *log.Logger) NavigatorOption {
	return func(n *navigatorImpl) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// WithClock sets the time source for timers and pivot drift. Defaults to SystemClock().
func WithClock(clock Clock) NavigatorOption {
	return func(n *navigatorImpl) {
		if clock != nil {
			n.clock = clock
		}
	}
}

// WithViewport sets the initial viewport size so the scroll cycle exists before the first Resize.
//
// Parameters:
//   - width: viewport width in pixels
//   - height: viewport height in pixels
//
// Returns:
//   - NavigatorOption: functional option to set the viewport
func WithViewport(width, height int) NavigatorOption {
	return func(n *navigatorImpl) {
		if width > 0 && height > 0 {
			n.viewportWidth = width
			n.viewportHeight = height
		}
	}
}

// WithPathOptions sets options forwarded to BuildPath on every mount.
func WithPathOptions(options ...PathOption) NavigatorOption {
	return func(n *navigatorImpl) {
		n.pathOpts = append(n.pathOpts, options...)
	}
}

// WithLens sets the field-of-view range in degrees.
//
// Parameters:
//   - nearFov: field of view at each POI
//   - farFov: field of view mid-segment
//
// Returns:
//   - NavigatorOption: functional option to set the lens
func WithLens(nearFov, farFov float32) NavigatorOption {
	return func(n *navigatorImpl) {
		n.lens = Lens{NearFov: nearFov, FarFov: farFov}
	}
}

// WithOrbitOptions sets options for the orbit controller: radius bounds, speeds and pole epsilon.
func WithOrbitOptions(options ...camera.OrbitControllerOption) NavigatorOption {
	return func(n *navigatorImpl) {
		n.orbitOpts = append(n.orbitOpts, options...)
	}
}

// WithActivateDelay sets how long a press is held before it becomes an orbit drag.
func WithActivateDelay(delay time.Duration) NavigatorOption {
	return func(n *navigatorImpl) {
		if delay > 0 {
			n.orbitCfg.activateDelay = delay
		}
	}
}

// WithMoveSlop sets the cumulative movement in pixels that turns a press into an orbit drag.
func WithMoveSlop(slop float32) NavigatorOption {
	return func(n *navigatorImpl) {
		if slop >= 0 {
			n.orbitCfg.moveSlop = slop
		}
	}
}

// WithSuppressWindow sets how long clicks stay suppressed after a drag ends.
func WithSuppressWindow(window time.Duration) NavigatorOption {
	return func(n *navigatorImpl) {
		if window >= 0 {
			n.orbitCfg.suppressWindow = window
		}
	}
}

// WithResizeDebounce sets the delay between a resize and the scroll cycle recomputation.
func WithResizeDebounce(debounce time.Duration) NavigatorOption {
	return func(n *navigatorImpl) {
		if debounce >= 0 {
			n.resizeDebounce = debounce
		}
	}
}

// WithScrollEpsilon sets how far inside the cycle a boundary teleport lands.
func WithScrollEpsilon(epsilon float32) NavigatorOption {
	return func(n *navigatorImpl) {
		if epsilon > 0 {
			n.scrollEpsilon = epsilon
		}
	}
}

// WithPivotDrift enables or disables the slow wander of the orbit pivot. Enabled by default.
func WithPivotDrift(enabled bool) NavigatorOption {
	return func(n *navigatorImpl) {
		n.pivotDrift = enabled
	}
}

// WithModeListener sets the callback told about every mode change. orbitActive drives the
// orbit banner and toggle button; a final call with orbitActive false follows every reset.
//
// Parameters:
//   - fn: receives the new mode and whether orbit UI must be shown
//
// Returns:
//   - NavigatorOption: functional option to set the mode listener
func WithModeListener(fn func(mode Mode, orbitActive bool)) NavigatorOption {
	return func(n *navigatorImpl) {
		n.onMode = fn
	}
}

// WithTapHandler sets the callback receiving presses released before they became a drag,
// for hit testing.
//
// Parameters:
//   - fn: receives the release position in pixels
//
// Returns:
//   - NavigatorOption: functional option to set the tap handler
func WithTapHandler(fn func(x, y float32)) NavigatorOption {
	return func(n *navigatorImpl) {
		n.onTap = fn
	}
}

// WithPOIListener sets the callback told when the POI nearest to the camera changes.
func WithPOIListener(fn func(index int, poi POI)) NavigatorOption {
	return func(n *navigatorImpl) {
		n.onPOI = fn
	}
}

package navigation

import (
	"log"
	"time"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
)

const (
	// DefaultActivateDelay is how long a press must be held before it becomes an orbit drag.
	DefaultActivateDelay = 180 * time.Millisecond
	// DefaultMoveSlop is the cumulative |dx|+|dy| in pixels that turns a press into an orbit drag.
	DefaultMoveSlop float32 = 4
	// DefaultDragSlop is the per-move |dx|+|dy| above which an orbit drag counts as moved.
	DefaultDragSlop float32 = 2
	// DefaultSuppressWindow is how long clicks stay suppressed after a drag ends.
	DefaultSuppressWindow = 50 * time.Millisecond
)

// Mode is the navigation mode.
type Mode int

const (
	// ModeFollowing derives the camera pose from the scroll-coupled path parameter.
	ModeFollowing Mode = iota
	// ModePendingOrbit means a press is held but not yet classified as tap or drag.
	ModePendingOrbit
	// ModeOrbiting derives the camera pose from free spherical coordinates.
	ModeOrbiting
)

func (m Mode) String() string {
	switch m {
	case ModeFollowing:
		return "following"
	case ModePendingOrbit:
		return "pending-orbit"
	case ModeOrbiting:
		return "orbiting"
	default:
		return "unknown"
	}
}

// orbitKeys maps held keys to per-tick orbit nudges.
var orbitKeys = map[int]func(camera.OrbitController){
	common.KeyW: camera.OrbitController.OrbitUp,
	common.KeyS: camera.OrbitController.OrbitDown,
	common.KeyA: camera.OrbitController.OrbitLeft,
	common.KeyD: camera.OrbitController.OrbitRight,
	common.KeyQ: camera.OrbitController.DollyOut,
	common.KeyE: camera.OrbitController.DollyIn,
}

var stepKeys = map[int]int{
	common.KeySpace:    1,
	common.KeyDown:     1,
	common.KeyRight:    1,
	common.KeyPageDown: 1,
	common.KeyUp:       -1,
	common.KeyLeft:     -1,
	common.KeyPageUp:   -1,
}

type orbitModeConfig struct {
	activateDelay  time.Duration
	moveSlop       float32
	dragSlop       float32
	suppressWindow time.Duration
}

// orbitModeController arbitrates between path following and free orbit.
//
// A press moves Following to PendingOrbit and arms the promotion timer. The press becomes an
// orbit drag when the timer fires with the pointer still down, or earlier when cumulative
// movement exceeds the slop. Releasing before that is a tap. Orbit entered by a drag ends with
// the drag; orbit entered by a toggle stays until Escape or another toggle.
type orbitModeController struct {
	cfg       orbitModeConfig
	orbit     camera.OrbitController
	scheduler *Scheduler
	logger    *log.Logger

	// cameraPosition supplies the pose orbit starts from.
	cameraPosition func() common.Vec3
	onChange       func(from, to Mode)

	mode        Mode
	pointerDown bool
	dragging    bool
	dragMoved   bool
	sticky      bool
	travel      float32
	held        map[int]bool

	suppressClick bool
	promoteTask   *Task
	suppressTask  *Task
}

func newOrbitModeController(cfg orbitModeConfig, orbit camera.OrbitController, scheduler *Scheduler, logger *log.Logger, cameraPosition func() common.Vec3) *orbitModeController {
	return &orbitModeController{
		cfg:            cfg,
		orbit:          orbit,
		scheduler:      scheduler,
		logger:         logger,
		cameraPosition: cameraPosition,
		held:           make(map[int]bool),
	}
}

// handle feeds one gesture through the state machine. Every kind is defined in every mode;
// kinds a mode does not care about leave it unchanged.
func (c *orbitModeController) handle(ev GestureEvent) GestureResult {
	switch ev.Kind {
	case GestureKeyUp:
		delete(c.held, ev.Key)
		return GestureResult{}
	case GestureToggle:
		if c.mode == ModeOrbiting {
			c.exit()
		} else {
			c.enter(true)
		}
		return GestureResult{}
	}

	switch c.mode {
	case ModePendingOrbit:
		return c.handlePending(ev)
	case ModeOrbiting:
		return c.handleOrbiting(ev)
	default:
		return c.handleFollowing(ev)
	}
}

func (c *orbitModeController) handleFollowing(ev GestureEvent) GestureResult {
	switch ev.Kind {
	case GesturePress:
		c.pointerDown = true
		c.travel = 0
		c.setMode(ModePendingOrbit)
		c.armPromotion()
	case GestureRelease, GestureCancel:
		// A release without a press, e.g. after focus loss.
		c.pointerDown = false
		c.dragging = false
	case GestureKeyDown:
		if dir, ok := stepKeys[ev.Key]; ok {
			return GestureResult{Consumed: true, Step: dir}
		}
	}
	return GestureResult{}
}

func (c *orbitModeController) handlePending(ev GestureEvent) GestureResult {
	switch ev.Kind {
	case GesturePress:
		// A second press without a release restarts classification.
		c.travel = 0
		c.armPromotion()
	case GestureMove:
		c.travel += math32.Abs(ev.DX) + math32.Abs(ev.DY)
		if c.travel > c.cfg.moveSlop {
			c.enter(false)
			c.drag(ev.DX, ev.DY)
			return GestureResult{Consumed: true}
		}
	case GestureRelease:
		c.pointerDown = false
		c.cancelPromotion()
		c.setMode(ModeFollowing)
		return GestureResult{Tap: true}
	case GestureCancel, GesturePinchStart:
		c.pointerDown = false
		c.cancelPromotion()
		c.setMode(ModeFollowing)
	case GestureKeyDown:
		if ev.Key == common.KeyEsc {
			c.pointerDown = false
			c.cancelPromotion()
			c.setMode(ModeFollowing)
		}
	}
	return GestureResult{}
}

func (c *orbitModeController) handleOrbiting(ev GestureEvent) GestureResult {
	switch ev.Kind {
	case GesturePress:
		c.pointerDown = true
		c.dragging = true
		c.dragMoved = false
	case GestureMove:
		if c.dragging {
			c.drag(ev.DX, ev.DY)
			return GestureResult{Consumed: true}
		}
	case GestureRelease, GestureCancel:
		c.pointerDown = false
		c.dragging = false
		if !c.sticky {
			c.exit()
		} else if c.dragMoved {
			c.armSuppression()
		}
	case GesturePinchStart:
		c.dragging = false
		return GestureResult{Consumed: true}
	case GestureWheel:
		c.orbit.Zoom(ev.Delta)
		return GestureResult{Consumed: true}
	case GesturePinch:
		c.orbit.Pinch(ev.Delta)
		return GestureResult{Consumed: true}
	case GestureKeyDown:
		if ev.Key == common.KeyEsc {
			c.exit()
			return GestureResult{Consumed: true}
		}
		if _, ok := orbitKeys[ev.Key]; ok {
			c.held[ev.Key] = true
			return GestureResult{Consumed: true}
		}
	}
	return GestureResult{}
}

// tick applies held orbit keys once. It reports whether the orbit changed.
func (c *orbitModeController) tick() bool {
	if c.mode != ModeOrbiting || len(c.held) == 0 {
		return false
	}
	for key := range c.held {
		orbitKeys[key](c.orbit)
	}
	return true
}

// enter switches to Orbiting, deriving the spherical coordinates from the current camera
// position so the view does not jump.
func (c *orbitModeController) enter(sticky bool) {
	if c.mode == ModeOrbiting {
		return
	}
	c.cancelPromotion()
	c.orbit.SetFromPosition(c.cameraPosition())
	c.sticky = sticky
	c.dragging = c.pointerDown && !sticky
	c.dragMoved = false
	c.setMode(ModeOrbiting)
	c.logger.Printf("[Navigation] orbit entered: radius %.2f azimuth %.3f polar %.3f",
		c.orbit.Radius(), c.orbit.Azimuth(), c.orbit.Polar())
}

func (c *orbitModeController) exit() {
	if c.mode != ModeOrbiting {
		return
	}
	c.dragging = false
	c.sticky = false
	clear(c.held)
	c.setMode(ModeFollowing)
	c.armSuppression()
}

func (c *orbitModeController) drag(dx, dy float32) {
	if !c.dragMoved && math32.Abs(dx)+math32.Abs(dy) > c.cfg.dragSlop {
		c.dragMoved = true
		c.suppressClick = true
		c.suppressTask.Cancel()
		c.suppressTask = nil
	}
	c.orbit.Drag(dx, dy)
}

func (c *orbitModeController) armPromotion() {
	c.promoteTask.Cancel()
	c.promoteTask = c.scheduler.After(c.cfg.activateDelay, c.promote)
}

func (c *orbitModeController) cancelPromotion() {
	c.promoteTask.Cancel()
	c.promoteTask = nil
}

// promote is the promotion timer callback. It is a no-op if the press already ended.
func (c *orbitModeController) promote() {
	c.promoteTask = nil
	if c.mode != ModePendingOrbit || !c.pointerDown {
		return
	}
	c.enter(false)
}

// armSuppression raises suppressClick and lowers it once the window has passed.
func (c *orbitModeController) armSuppression() {
	c.suppressClick = true
	c.suppressTask.Cancel()
	c.suppressTask = c.scheduler.After(c.cfg.suppressWindow, func() {
		c.suppressTask = nil
		c.suppressClick = false
		c.dragMoved = false
	})
}

func (c *orbitModeController) setMode(to Mode) {
	from := c.mode
	if from == to {
		return
	}
	c.mode = to
	if c.onChange != nil {
		c.onChange(from, to)
	}
}

// reset returns to Following with no press, no held keys, no timers and the orbit at its
// initial coordinates.
func (c *orbitModeController) reset() {
	c.cancelPromotion()
	c.suppressTask.Cancel()
	c.suppressTask = nil
	c.pointerDown = false
	c.dragging = false
	c.dragMoved = false
	c.sticky = false
	c.travel = 0
	c.suppressClick = false
	clear(c.held)
	c.orbit.Reset()
	c.setMode(ModeFollowing)
}

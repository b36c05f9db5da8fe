// Package navigation drives a camera around a closed tour of points of interest.
//
// In Following mode the host's scroll offset is mapped onto a wrapping path parameter and the
// camera pose is sampled from an eased Bezier path. A press-and-drag, a held press or a toggle
// switches to Orbiting, where the camera circles a pivot under pointer, wheel, pinch and key
// control. All state is owned by a Navigator and mutated only from its Tick and from input
// listeners running on the same goroutine.
package navigation

import (
	"fmt"
	"log"
	"time"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/input"
)

// pivotDriftRate converts clock milliseconds into pivot drift phase.
const pivotDriftRate = 0.00015

// CameraRig is the camera the navigator poses. camera.Camera satisfies it.
type CameraRig interface {
	Position() common.Vec3
	SetPose(position, target common.Vec3, roll float32)
	SetFov(fov float32)
	SetAspect(aspect float32)
	Frustum() common.Frustum
}

// Navigator is the camera path navigator and orbit mode controller for one mounted scene.
//
// A Navigator is not safe for concurrent use. Tick, the input listeners it binds and every
// method must run on the same goroutine, normally the window's main loop.
type Navigator interface {
	// Tick runs due timers, applies held orbit keys and updates the camera from the active
	// source. Panics inside a tick are recovered and logged.
	//
	// Parameters:
	//   - deltaTime: seconds since the previous tick
	Tick(deltaTime float32)

	// UpdateFromScroll poses the camera from the scroll offset. It is a no-op unless the
	// navigator is mounted, enabled and not Orbiting.
	UpdateFromScroll()

	// UpdateFromOrbit poses the camera from the orbit coordinates. It is a no-op unless the
	// navigator is enabled and Orbiting.
	UpdateFromOrbit()

	// EnterOrbitMode switches to Orbiting from the current camera pose. Orbit entered this way
	// persists after a drag ends; Escape or ExitOrbitMode leaves it.
	EnterOrbitMode()

	// ExitOrbitMode returns to Following.
	ExitOrbitMode()

	// ToggleOrbitMode enters orbit when Following and leaves it when Orbiting.
	ToggleOrbitMode()

	// OrbitMode returns the current navigation mode.
	//
	// Returns:
	//   - Mode: Following, PendingOrbit or Orbiting
	OrbitMode() Mode

	// SuppressClick reports whether a click arriving now is the tail of a drag and must be
	// ignored by picking.
	//
	// Returns:
	//   - bool: true while clicks must be ignored
	SuppressClick() bool

	// Resize updates the camera aspect immediately and the scroll cycle after a debounce.
	// It is harmless after Dispose.
	//
	// Parameters:
	//   - width: viewport width in pixels
	//   - height: viewport height in pixels
	Resize(width, height int)

	// SetPOIs rebuilds the path from a new POI list and mounts it, resetting all navigation state.
	//
	// Parameters:
	//   - pois: ordered points of interest
	//
	// Returns:
	//   - error: path configuration error, or ErrNavigatorDisposed
	SetPOIs(pois []POI) error

	// SetTour rebuilds the path from a new POI list with new path options and lens, then mounts
	// it. Nothing changes if the new path is invalid.
	//
	// Parameters:
	//   - pois: ordered points of interest
	//   - lens: field of view range in degrees
	//   - options: path builder options replacing the current ones
	//
	// Returns:
	//   - error: path configuration error, or ErrNavigatorDisposed
	SetTour(pois []POI, lens Lens, options ...PathOption) error

	// NextPOI scrolls one segment forward.
	NextPOI()

	// PreviousPOI scrolls one segment back.
	PreviousPOI()

	// CurrentPOI returns the POI nearest to the current path parameter.
	//
	// Returns:
	//   - POI: the nearest POI
	//   - bool: false when no path is mounted
	CurrentPOI() (POI, bool)

	// VisiblePOIs returns the POIs whose position lies inside the camera frustum, in tour order.
	VisiblePOIs() []POI

	// Path returns the mounted path, or nil.
	Path() *Path

	// ListenerCount returns the number of input listeners currently attached.
	ListenerCount() int

	// ResetState forces Following, clears orbit state and timers, detaches all input listeners
	// and hides orbit UI. The navigator stays unmounted until SetPOIs. It is idempotent.
	ResetState()

	// Dispose resets the navigator and releases it permanently.
	Dispose()
}

type navigatorImpl struct {
	rig       CameraRig
	host      ScrollHost
	canvas    input.EventTarget
	window    input.EventTarget
	clock     Clock
	logger    *log.Logger
	disabled  func() bool
	pathOpts  []PathOption
	lens      Lens
	orbitOpts []camera.OrbitControllerOption

	orbitCfg       orbitModeConfig
	scrollEpsilon  float32
	resizeDebounce time.Duration
	pivotDrift     bool
	viewportWidth  int
	viewportHeight int

	onMode func(mode Mode, orbitActive bool)
	onTap  func(x, y float32)
	onPOI  func(index int, poi POI)

	scheduler  *Scheduler
	scroll     *scrollCoupler
	orbitMode  *orbitModeController
	dispatcher *inputDispatcher
	orbit      camera.OrbitController

	path       *Path
	mounted    bool
	disposed   bool
	poiIndex   int
	driftEpoch time.Time
}

var _ Navigator = &navigatorImpl{}

// NewNavigator creates a Navigator and mounts a tour through pois.
//
// Parameters:
//   - rig: the camera to pose
//   - host: the scroll document coupled to the path
//   - pois: ordered points of interest, at least two
//   - options: functional options to configure the navigator
//
// Returns:
//   - Navigator: the mounted navigator
//   - error: path configuration error; nothing is bound when it is non-nil
func NewNavigator(rig CameraRig, host ScrollHost, pois []POI, options ...NavigatorOption) (Navigator, error) {
	n := &navigatorImpl{
		rig:            rig,
		host:           host,
		clock:          SystemClock(),
		logger:         log.Default(),
		lens:           DefaultLens(),
		scrollEpsilon:  DefaultScrollEpsilon,
		resizeDebounce: DefaultResizeDebounce,
		pivotDrift:     true,
		orbitCfg: orbitModeConfig{
			activateDelay:  DefaultActivateDelay,
			moveSlop:       DefaultMoveSlop,
			dragSlop:       DefaultDragSlop,
			suppressWindow: DefaultSuppressWindow,
		},
		poiIndex: -1,
	}

	for _, opt := range options {
		opt(n)
	}

	if rig == nil || host == nil {
		return nil, fmt.Errorf("new navigator: camera and scroll host are required")
	}

	n.driftEpoch = n.clock.Now()
	n.scheduler = NewScheduler(n.clock)
	n.orbit = camera.NewOrbitController(n.orbitOpts...)
	n.scroll = newScrollCoupler(host, n.scheduler, n.logger, n.scrollEpsilon, n.resizeDebounce)
	n.orbitMode = newOrbitModeController(n.orbitCfg, n.orbit, n.scheduler, n.logger, rig.Position)
	n.orbitMode.onChange = n.modeChanged
	n.dispatcher = newInputDispatcher(n.canvas, n.window, n.logger)
	n.dispatcher.disabled = n.isDisabled
	n.dispatcher.clock = n.clock
	n.dispatcher.handle = n.orbitMode.handle
	n.dispatcher.onTap = n.tap
	n.dispatcher.onStep = n.scroll.step

	if n.viewportWidth > 0 && n.viewportHeight > 0 {
		rig.SetAspect(float32(n.viewportWidth) / float32(n.viewportHeight))
	}

	if err := n.mount(pois); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *navigatorImpl) mount(pois []POI) error {
	path, err := BuildPath(pois, n.pathOpts...)
	if err != nil {
		return fmt.Errorf("mount tour: %w", err)
	}
	n.path = path
	n.mounted = true
	n.poiIndex = -1
	n.scroll.configure(path.Len(), float32(n.viewportHeight))
	n.dispatcher.bind()
	n.logger.Printf("[Navigation] mounted tour of %d points", path.Len())
	return nil
}

func (n *navigatorImpl) isDisabled() bool {
	return n.disabled != nil && n.disabled()
}

func (n *navigatorImpl) active() bool {
	return n.mounted && !n.disposed && !n.isDisabled()
}

func (n *navigatorImpl) Tick(deltaTime float32) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Printf("[Navigation] tick recovered from panic: %v", r)
		}
	}()

	if !n.active() {
		return
	}
	n.dispatcher.gateOpen()
	n.scheduler.RunDue()
	n.orbitMode.tick()

	if n.orbitMode.mode == ModeOrbiting {
		n.UpdateFromOrbit()
	} else {
		n.UpdateFromScroll()
	}
}

func (n *navigatorImpl) UpdateFromScroll() {
	if !n.active() || n.orbitMode.mode == ModeOrbiting {
		return
	}
	u, ok := n.scroll.update()
	if !ok {
		return
	}
	pose := n.path.Sample(u, n.lens)
	n.rig.SetFov(pose.Fov)
	n.rig.SetPose(pose.Position, pose.LookAt, pose.Roll)
	n.trackPOI(u)
}

func (n *navigatorImpl) UpdateFromOrbit() {
	if !n.active() || n.orbitMode.mode != ModeOrbiting {
		return
	}
	n.rig.SetPose(n.orbit.Position(), n.pivot(), 0)
}

// pivot is the look-at point while orbiting. With drift enabled it wanders slowly around the
// orbit center.
func (n *navigatorImpl) pivot() common.Vec3 {
	center := n.orbit.Center()
	if !n.pivotDrift {
		return center
	}
	ms := float64(n.clock.Now().Sub(n.driftEpoch)) / float64(time.Millisecond)
	t := float32(ms * pivotDriftRate)
	return center.Add(common.Vec3{
		math32.Sin(t) * 0.8,
		math32.Cos(t*0.7) * 0.5,
		math32.Cos(t*1.2) * 0.6,
	})
}

func (n *navigatorImpl) trackPOI(u float32) {
	count := n.path.Len()
	idx := int(math32.Round(u*float32(count))) % count
	if idx == n.poiIndex {
		return
	}
	n.poiIndex = idx
	if n.onPOI != nil {
		n.onPOI(idx, n.path.POI(idx))
	}
}

func (n *navigatorImpl) EnterOrbitMode() {
	if !n.active() {
		return
	}
	n.orbitMode.enter(true)
	n.UpdateFromOrbit()
}

func (n *navigatorImpl) ExitOrbitMode() {
	if !n.active() {
		return
	}
	n.orbitMode.exit()
}

func (n *navigatorImpl) ToggleOrbitMode() {
	if !n.active() {
		return
	}
	n.orbitMode.handle(GestureEvent{Kind: GestureToggle, At: n.clock.Now()})
	n.UpdateFromOrbit()
}

func (n *navigatorImpl) OrbitMode() Mode {
	return n.orbitMode.mode
}

func (n *navigatorImpl) SuppressClick() bool {
	return n.orbitMode.suppressClick
}

func (n *navigatorImpl) Resize(width, height int) {
	if n.disposed || width <= 0 || height <= 0 {
		return
	}
	n.viewportWidth, n.viewportHeight = width, height
	n.rig.SetAspect(float32(width) / float32(height))
	n.scroll.resize(float32(height))
}

func (n *navigatorImpl) SetPOIs(pois []POI) error {
	if n.disposed {
		return ErrNavigatorDisposed
	}
	// Validate before tearing down so a bad list leaves the current tour running.
	if _, err := BuildPath(pois, n.pathOpts...); err != nil {
		return fmt.Errorf("set points of interest: %w", err)
	}
	n.ResetState()
	return n.mount(pois)
}

func (n *navigatorImpl) SetTour(pois []POI, lens Lens, options ...PathOption) error {
	if n.disposed {
		return ErrNavigatorDisposed
	}
	if _, err := BuildPath(pois, options...); err != nil {
		return fmt.Errorf("set tour: %w", err)
	}
	n.pathOpts = options
	n.lens = lens
	n.ResetState()
	return n.mount(pois)
}

func (n *navigatorImpl) NextPOI() {
	if n.active() && n.orbitMode.mode == ModeFollowing {
		n.scroll.step(1)
	}
}

func (n *navigatorImpl) PreviousPOI() {
	if n.active() && n.orbitMode.mode == ModeFollowing {
		n.scroll.step(-1)
	}
}

func (n *navigatorImpl) CurrentPOI() (POI, bool) {
	if !n.mounted || n.path == nil {
		return POI{}, false
	}
	count := n.path.Len()
	idx := int(math32.Round(n.scroll.lastU*float32(count))) % count
	return n.path.POI(idx), true
}

func (n *navigatorImpl) VisiblePOIs() []POI {
	if !n.mounted || n.path == nil {
		return nil
	}
	frustum := n.rig.Frustum()
	var visible []POI
	for i := range n.path.Len() {
		poi := n.path.POI(i)
		if frustum.ContainsSphere(poi.Position, 0) {
			visible = append(visible, poi)
		}
	}
	return visible
}

func (n *navigatorImpl) Path() *Path {
	if !n.mounted {
		return nil
	}
	return n.path
}

func (n *navigatorImpl) ListenerCount() int {
	if n.dispatcher == nil {
		return 0
	}
	return n.dispatcher.listenerCount()
}

func (n *navigatorImpl) ResetState() {
	if n.dispatcher != nil {
		n.dispatcher.dispose()
	}
	if n.orbitMode != nil {
		n.orbitMode.reset()
	}
	if n.scroll != nil {
		n.scroll.reset()
	}
	if n.scheduler != nil {
		n.scheduler.CancelAll()
	}
	// Orbit UI is hidden even if the mode did not change.
	if n.onMode != nil {
		n.onMode(ModeFollowing, false)
	}
	n.mounted = false
	n.path = nil
	n.poiIndex = -1
}

func (n *navigatorImpl) Dispose() {
	if n.disposed {
		return
	}
	n.ResetState()
	n.disposed = true
	n.logger.Printf("[Navigation] disposed")
}

func (n *navigatorImpl) modeChanged(from, to Mode) {
	n.logger.Printf("[Navigation] mode %s -> %s", from, to)
	if n.onMode != nil {
		n.onMode(to, to == ModeOrbiting)
	}
}

func (n *navigatorImpl) tap(x, y float32) {
	if n.onTap != nil && !n.orbitMode.suppressClick {
		n.onTap(x, y)
	}
}

package navigation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Carmen-Shannon/oxy-tour/common"
	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/input"
)

func TestNewNavigatorRejectsBadTour(t *testing.T) {
	canvas := input.NewTarget()
	_, err := NewNavigator(camera.NewCamera(), &fakeHost{}, tourPOIs()[:1],
		WithLogger(quietLogger()), WithInputTargets(canvas, canvas))
	assert.ErrorIs(t, err, ErrTooFewPOIs)
	assert.Equal(t, 0, canvas.ListenerCount(), "nothing is bound for a failed mount")
}

func TestNavigatorFollowsScroll(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)

	assert.Equal(t, float32(7200), h.host.length)
	assert.Equal(t, float32(1.5), h.cam.Aspect())

	h.host.offset = 0.5 / 8 * 6400
	h.nav.Tick(0.016)

	want := h.nav.Path().Sample(0.0625, DefaultLens())
	assert.Equal(t, want.Position, h.cam.Position())
	assert.Equal(t, want.LookAt, h.cam.Target())
	assert.Equal(t, want.Fov, h.cam.Fov())
	assert.Equal(t, want.Roll, h.cam.Roll())
}

func TestNavigatorWrapsAtTheTop(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)

	h.host.offset = 0
	h.nav.Tick(0.016)
	assert.Equal(t, float32(6399), h.host.offset)

	poi, ok := h.nav.CurrentPOI()
	require.True(t, ok)
	assert.Equal(t, "about", poi.ID)
}

// Pointer down, move 10px within 50ms: promoted by slop before the timer.
func TestNavigatorPromotesOnDrag(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)
	h.host.offset = 400
	h.nav.Tick(0.016)
	before := h.cam.Position()

	h.pointerDown(100, 100)
	assert.Equal(t, ModePendingOrbit, h.nav.OrbitMode())
	h.clock.Advance(50 * time.Millisecond)
	h.pointerMove(110, 100)
	assert.Equal(t, ModeOrbiting, h.nav.OrbitMode())
	assert.Equal(t, []bool{false, true}, h.banner)

	h.clock.Advance(200 * time.Millisecond)
	h.nav.Tick(0.016)
	assert.Equal(t, ModeOrbiting, h.nav.OrbitMode())
	assert.Equal(t, 0, h.nav.scheduler.Len())

	// The drag rotated the orbit away from the entry pose by 10px worth of azimuth only.
	assert.InDelta(t, before.Length(), h.cam.Position().Length(), 1e-3)
	assert.Equal(t, common.Vec3{}, h.cam.Target(), "orbit looks at the pivot")

	h.pointerUp(110, 100)
	assert.Equal(t, ModeFollowing, h.nav.OrbitMode())
	assert.True(t, h.nav.SuppressClick())
	assert.Empty(t, h.taps)
	assert.Equal(t, false, h.banner[len(h.banner)-1])
}

// Pointer down, hold 200ms without moving: promoted by the timer.
func TestNavigatorPromotesOnHold(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)
	h.nav.Tick(0.016)
	entry := h.cam.Position()

	h.pointerDown(100, 100)
	h.clock.Advance(200 * time.Millisecond)
	h.nav.Tick(0.016)

	assert.Equal(t, ModeOrbiting, h.nav.OrbitMode())
	got := h.cam.Position()
	assert.InDeltaSlice(t, entry[:], got[:], 1e-3, "orbit starts where following left off")
}

// Pointer down, move 2px, release at 50ms: a tap, no promotion and no timer left behind.
func TestNavigatorTap(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)

	h.pointerDown(100, 100)
	h.pointerMove(102, 100)
	h.clock.Advance(50 * time.Millisecond)
	h.pointerUp(102, 100)

	assert.Equal(t, ModeFollowing, h.nav.OrbitMode())
	assert.Equal(t, [][2]float32{{102, 100}}, h.taps)
	assert.Equal(t, 0, h.nav.scheduler.Len())
	assert.False(t, h.nav.SuppressClick())

	h.clock.Advance(time.Second)
	h.nav.Tick(0.016)
	assert.Equal(t, ModeFollowing, h.nav.OrbitMode())
}

// Disabled mid-drag: the pose freezes and the state machine holds until re-enabled.
func TestNavigatorDisabledFreezes(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)
	h.nav.Tick(0.016)

	h.pointerDown(100, 100)
	h.pointerMove(120, 100)
	h.nav.Tick(0.016)
	require.Equal(t, ModeOrbiting, h.nav.OrbitMode())
	frozen := h.cam.Position()
	azimuth := h.nav.orbit.Azimuth()

	h.disabled = true
	h.pointerMove(200, 150)
	h.wheel(500)
	h.key(input.EventKeyDown, common.KeyD)
	h.nav.Tick(0.016)
	h.pointerUp(200, 150)
	h.nav.ExitOrbitMode()
	h.nav.Tick(0.016)

	assert.Equal(t, frozen, h.cam.Position())
	assert.Equal(t, azimuth, h.nav.orbit.Azimuth())
	assert.Equal(t, ModeOrbiting, h.nav.OrbitMode())

	h.disabled = false
	h.pointerUp(200, 150)
	assert.Equal(t, ModeFollowing, h.nav.OrbitMode())
}

func TestNavigatorDisabledHoldsPromotionTimer(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)

	h.pointerDown(100, 100)
	h.disabled = true
	h.clock.Advance(time.Second)
	h.nav.Tick(0.016)
	assert.Equal(t, ModePendingOrbit, h.nav.OrbitMode())

	h.disabled = false
	h.nav.Tick(0.016)
	assert.Equal(t, ModeOrbiting, h.nav.OrbitMode())
}

func TestNavigatorWheelConsumedOnlyWhileOrbiting(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)

	h.nav.Tick(0.016)
	e := h.wheel(120)
	assert.False(t, e.DefaultPrevented())

	h.nav.EnterOrbitMode()
	radius := h.nav.orbit.Radius()
	e = h.wheel(120)
	assert.True(t, e.DefaultPrevented())
	assert.InDelta(t, radius+0.3, h.nav.orbit.Radius(), 1e-5)
}

func TestNavigatorPinchZoom(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)
	h.nav.Tick(0.016)
	h.nav.EnterOrbitMode()
	radius := h.nav.orbit.Radius()

	h.canvas.Dispatch(&input.Event{Type: input.EventTouchStart, Touches: []input.Touch{{ID: 1, X: 0, Y: 0}}})
	h.canvas.Dispatch(&input.Event{Type: input.EventTouchStart, Touches: []input.Touch{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 100, Y: 0}}})
	move := &input.Event{Type: input.EventTouchMove, Touches: []input.Touch{{ID: 1, X: 0, Y: 0}, {ID: 2, X: 150, Y: 0}}}
	h.canvas.Dispatch(move)

	assert.True(t, move.DefaultPrevented())
	assert.InDelta(t, radius-0.2, h.nav.orbit.Radius(), 1e-5)

	h.canvas.Dispatch(&input.Event{Type: input.EventTouchEnd, Touches: []input.Touch{{ID: 1, X: 0, Y: 0}}})
	h.canvas.Dispatch(&input.Event{Type: input.EventTouchEnd})
	assert.Equal(t, ModeOrbiting, h.nav.OrbitMode(), "toggled orbit survives the gesture")
}

func TestNavigatorTouchDragPromotes(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)

	h.canvas.Dispatch(&input.Event{Type: input.EventTouchStart, Touches: []input.Touch{{ID: 7, X: 50, Y: 50}}})
	assert.Equal(t, ModePendingOrbit, h.nav.OrbitMode())

	move := &input.Event{Type: input.EventTouchMove, Touches: []input.Touch{{ID: 7, X: 50, Y: 70}}}
	h.canvas.Dispatch(move)
	assert.Equal(t, ModeOrbiting, h.nav.OrbitMode())
	assert.True(t, move.DefaultPrevented())

	h.canvas.Dispatch(&input.Event{Type: input.EventTouchEnd})
	assert.Equal(t, ModeFollowing, h.nav.OrbitMode())
}

func TestNavigatorStepKeys(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)
	h.host.offset = 100

	e := h.key(input.EventKeyDown, common.KeySpace)
	assert.True(t, e.DefaultPrevented())
	assert.Equal(t, float32(900), h.host.offset)

	h.key(input.EventKeyDown, common.KeyPageUp)
	assert.Equal(t, float32(100), h.host.offset)

	h.nav.NextPOI()
	h.nav.NextPOI()
	h.nav.PreviousPOI()
	assert.Equal(t, float32(900), h.host.offset)
}

func TestNavigatorOrbitKeys(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)
	h.nav.Tick(0.016)
	h.nav.ToggleOrbitMode()
	require.Equal(t, ModeOrbiting, h.nav.OrbitMode())
	polar := h.nav.orbit.Polar()

	h.key(input.EventKeyDown, common.KeyS)
	h.nav.Tick(0.016)
	h.nav.Tick(0.016)
	h.key(input.EventKeyUp, common.KeyS)
	h.nav.Tick(0.016)
	assert.InDelta(t, polar+0.04, h.nav.orbit.Polar(), 1e-5)

	h.key(input.EventKeyDown, common.KeyEsc)
	assert.Equal(t, ModeFollowing, h.nav.OrbitMode())
	assert.True(t, h.nav.SuppressClick())
	h.clock.Advance(DefaultSuppressWindow)
	h.nav.Tick(0.016)
	assert.False(t, h.nav.SuppressClick())
}

func TestNavigatorBlurCancelsPress(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)

	h.pointerDown(10, 10)
	h.window.Dispatch(&input.Event{Type: input.EventBlur})
	assert.Equal(t, ModeFollowing, h.nav.OrbitMode())
	assert.Empty(t, h.taps)

	// A release with no matching press is tolerated.
	h.pointerUp(10, 10)
	assert.Equal(t, ModeFollowing, h.nav.OrbitMode())
}

func TestNavigatorIgnoresSecondaryButton(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)

	h.canvas.Dispatch(&input.Event{Type: input.EventPointerDown, Button: common.MouseButtonSecondary})
	assert.Equal(t, ModeFollowing, h.nav.OrbitMode())
}

func TestNavigatorPOIListener(t *testing.T) {
	var seen []string
	h, err := newHarness(WithPOIListener(func(_ int, poi POI) { seen = append(seen, poi.ID) }))
	require.NoError(t, err)

	h.host.offset = 1600
	h.nav.Tick(0.016)
	h.nav.Tick(0.016)
	h.host.offset = 1700
	h.nav.Tick(0.016)
	h.host.offset = 2100
	h.nav.Tick(0.016)

	assert.Equal(t, []string{"patterns", "assistant"}, seen)
}

func TestNavigatorVisiblePOIs(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)
	h.nav.Tick(0.016)

	visible := h.nav.VisiblePOIs()
	ids := make([]string, 0, len(visible))
	for _, poi := range visible {
		ids = append(ids, poi.ID)
	}
	assert.Contains(t, ids, "about")
}

func TestNavigatorPivotDrift(t *testing.T) {
	h, err := newHarness(WithPivotDrift(true))
	require.NoError(t, err)
	h.nav.Tick(0.016)
	h.nav.EnterOrbitMode()

	first := h.cam.Target()
	assert.InDeltaSlice(t, []float32{0, 0.5, 0.6}, first[:], 1e-6)

	h.clock.Advance(10 * time.Second)
	h.nav.Tick(0.016)
	assert.NotEqual(t, first, h.cam.Target())
}

func TestNavigatorResize(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)

	h.nav.Resize(1000, 1000)
	assert.Equal(t, float32(1), h.cam.Aspect())
	assert.Equal(t, float32(7200), h.host.length, "cycle waits for the debounce")

	h.clock.Advance(DefaultResizeDebounce)
	h.nav.Tick(0.016)
	assert.Equal(t, float32(9000), h.host.length)
}

func TestNavigatorSetPOIs(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)
	h.nav.EnterOrbitMode()

	err = h.nav.SetPOIs(tourPOIs()[:1])
	assert.ErrorIs(t, err, ErrTooFewPOIs)
	assert.Equal(t, ModeOrbiting, h.nav.OrbitMode(), "a rejected tour leaves the current one running")
	assert.Equal(t, 8, h.nav.Path().Len())

	require.NoError(t, h.nav.SetPOIs(tourPOIs()[:3]))
	assert.Equal(t, ModeFollowing, h.nav.OrbitMode())
	assert.Equal(t, 3, h.nav.Path().Len())
	assert.Equal(t, float32(3200), h.host.length)
	assert.Equal(t, 11, h.listeners())
}

func TestNavigatorResetState(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)
	assert.Equal(t, 11, h.listeners())
	assert.Equal(t, 11, h.nav.ListenerCount())

	h.nav.EnterOrbitMode()
	h.pointerDown(1, 1)

	h.nav.ResetState()
	h.nav.ResetState()

	assert.Equal(t, ModeFollowing, h.nav.OrbitMode())
	assert.Equal(t, 0, h.listeners())
	assert.Equal(t, 0, h.nav.scheduler.Len())
	assert.False(t, h.banner[len(h.banner)-1])
	assert.Equal(t, float32(0), h.host.length)
	assert.Nil(t, h.nav.Path())
	_, ok := h.nav.CurrentPOI()
	assert.False(t, ok)

	pose := h.cam.Position()
	h.nav.Tick(0.016)
	assert.Equal(t, pose, h.cam.Position(), "unmounted navigator does not move the camera")
}

func TestNavigatorDispose(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)
	h.pointerDown(1, 1)

	h.nav.Dispose()
	h.nav.Dispose()
	assert.Equal(t, 0, h.listeners())
	assert.Equal(t, 0, h.nav.scheduler.Len())

	aspect := h.cam.Aspect()
	assert.NotPanics(t, func() { h.nav.Resize(300, 100) })
	assert.Equal(t, aspect, h.cam.Aspect())
	assert.ErrorIs(t, h.nav.SetPOIs(tourPOIs()), ErrNavigatorDisposed)
	assert.NotPanics(t, func() { h.nav.Tick(0.016) })
}

type panickyRig struct {
	camera.Camera
}

func (panickyRig) SetPose(common.Vec3, common.Vec3, float32) { panic("boom") }

func TestNavigatorTickRecovers(t *testing.T) {
	nav, err := NewNavigator(panickyRig{camera.NewCamera()}, &fakeHost{}, tourPOIs(),
		WithLogger(quietLogger()), WithViewport(800, 600))
	require.NoError(t, err)
	assert.NotPanics(t, func() { nav.Tick(0.016) })
}

func TestNavigatorArrowKeysAndToggleKey(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)
	h.host.offset = 100

	h.key(input.EventKeyDown, common.KeyRight)
	assert.Equal(t, float32(900), h.host.offset)
	h.key(input.EventKeyDown, common.KeyLeft)
	assert.Equal(t, float32(100), h.host.offset)

	h.nav.Tick(0.016)
	e := h.key(input.EventKeyDown, common.KeyO)
	assert.True(t, e.DefaultPrevented())
	assert.Equal(t, ModeOrbiting, h.nav.OrbitMode())

	h.key(input.EventKeyUp, common.KeyO)
	h.pointerUp(10, 10)
	assert.Equal(t, ModeOrbiting, h.nav.OrbitMode(), "toggled orbit survives a stray release")

	h.key(input.EventKeyDown, common.KeyO)
	assert.Equal(t, ModeFollowing, h.nav.OrbitMode())
	assert.Equal(t, []bool{true, false}, h.banner[len(h.banner)-2:])
}

func TestNavigatorStepsAcrossTheSeam(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)
	h.nav.Tick(0.016)
	require.Equal(t, float32(6399), h.host.offset)
	poi, _ := h.nav.CurrentPOI()
	require.Equal(t, "about", poi.ID)

	h.nav.NextPOI()
	h.nav.Tick(0.016)
	poi, _ = h.nav.CurrentPOI()
	assert.Equal(t, "basics", poi.ID)

	h.nav.PreviousPOI()
	h.nav.Tick(0.016)
	poi, _ = h.nav.CurrentPOI()
	assert.Equal(t, "about", poi.ID)

	h.nav.PreviousPOI()
	h.nav.Tick(0.016)
	poi, _ = h.nav.CurrentPOI()
	assert.Equal(t, "marketplace", poi.ID)

	h.host.offset = DefaultScrollEpsilon
	h.nav.Tick(0.016)
	h.key(input.EventKeyDown, common.KeyPageUp)
	h.nav.Tick(0.016)
	poi, _ = h.nav.CurrentPOI()
	assert.Equal(t, "marketplace", poi.ID)
}

func TestNavigatorReleaseLostWhileDisabled(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)
	h.nav.Tick(0.016)

	h.pointerDown(100, 100)
	h.pointerMove(120, 100)
	require.Equal(t, ModeOrbiting, h.nav.OrbitMode())

	h.disabled = true
	h.pointerUp(120, 100)
	h.disabled = false

	azimuth := h.nav.orbit.Azimuth()
	h.pointerMove(300, 100)
	assert.Equal(t, ModeFollowing, h.nav.OrbitMode())
	assert.Equal(t, azimuth, h.nav.orbit.Azimuth(), "hover after the gate must not orbit")
	assert.False(t, h.banner[len(h.banner)-1])
}

func TestNavigatorGateClearsOnTick(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)
	h.nav.Tick(0.016)

	h.pointerDown(100, 100)
	h.pointerMove(120, 100)
	require.Equal(t, ModeOrbiting, h.nav.OrbitMode())

	h.disabled = true
	h.pointerUp(120, 100)
	h.nav.Tick(0.016)
	assert.Equal(t, ModeOrbiting, h.nav.OrbitMode())

	h.disabled = false
	h.nav.Tick(0.016)
	assert.Equal(t, ModeFollowing, h.nav.OrbitMode())

	h.nav.ToggleOrbitMode()
	h.disabled = true
	h.key(input.EventKeyDown, common.KeyD)
	h.disabled = false
	h.nav.Tick(0.016)
	assert.Equal(t, ModeOrbiting, h.nav.OrbitMode(), "a toggled orbit survives the gate")
}

func TestNavigatorSetTour(t *testing.T) {
	h, err := newHarness()
	require.NoError(t, err)
	h.nav.Tick(0.016)

	err = h.nav.SetTour(tourPOIs()[:1], Lens{NearFov: 20, FarFov: 60}, WithStandoff(1))
	assert.ErrorIs(t, err, ErrTooFewPOIs)
	assert.Equal(t, 8, h.nav.Path().Len())
	assert.Equal(t, DefaultLens(), h.nav.lens)

	pois := tourPOIs()[:3]
	require.NoError(t, h.nav.SetTour(pois, Lens{NearFov: 20, FarFov: 60}, WithStandoff(1)))
	want, err := BuildPath(pois, WithStandoff(1))
	require.NoError(t, err)
	assert.Equal(t, want.Segments(), h.nav.Path().Segments())

	h.nav.Tick(0.016)
	assert.Equal(t, DefaultScrollEpsilon, h.host.offset)
	assert.InDelta(t, 20*common.DegToRad, h.cam.Fov(), 1e-3)
}

package navigation

import (
	"io"
	"log"
	"time"

	"github.com/Carmen-Shannon/oxy-tour/engine/camera"
	"github.com/Carmen-Shannon/oxy-tour/engine/input"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeHost struct {
	offset  float32
	length  float32
	lengths []float32
	scrolls int
}

func (h *fakeHost) ScrollOffset() float32 { return h.offset }

func (h *fakeHost) ScrollTo(offset float32) {
	h.offset = offset
	h.scrolls++
}

func (h *fakeHost) SetContentLength(length float32) {
	h.length = length
	h.lengths = append(h.lengths, length)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// tourPOIs is the eight-node tour laid out on a shell.
func tourPOIs() []POI {
	return []POI{
		SphericalPOI("about", "About", 0, 0, 3.5),
		SphericalPOI("basics", "Basics", 45, 30, 4.0),
		SphericalPOI("patterns", "Patterns", 90, -25, 4.5),
		SphericalPOI("assistant", "Assistant", 135, 35, 4.0),
		SphericalPOI("prompts", "Prompts", 180, -30, 4.5),
		SphericalPOI("operations", "Operations", 225, 25, 4.0),
		SphericalPOI("security", "Security", 270, -20, 4.5),
		SphericalPOI("marketplace", "Marketplace", 315, 40, 4.0),
	}
}

type harness struct {
	nav      *navigatorImpl
	cam      camera.Camera
	host     *fakeHost
	clock    *fakeClock
	canvas   *input.Target
	window   *input.Target
	disabled bool
	taps     [][2]float32
	modes    []Mode
	banner   []bool
}

func newHarness(options ...NavigatorOption) (*harness, error) {
	h := &harness{
		cam:    camera.NewCamera(),
		host:   &fakeHost{},
		clock:  newFakeClock(),
		canvas: input.NewTarget(),
		window: input.NewTarget(),
	}
	opts := []NavigatorOption{
		WithLogger(quietLogger()),
		WithClock(h.clock),
		WithViewport(1200, 800),
		WithInputTargets(h.canvas, h.window),
		WithPivotDrift(false),
		WithDisabled(func() bool { return h.disabled }),
		WithTapHandler(func(x, y float32) { h.taps = append(h.taps, [2]float32{x, y}) }),
		WithModeListener(func(mode Mode, orbitActive bool) {
			h.modes = append(h.modes, mode)
			h.banner = append(h.banner, orbitActive)
		}),
	}
	nav, err := NewNavigator(h.cam, h.host, tourPOIs(), append(opts, options...)...)
	if err != nil {
		return nil, err
	}
	h.nav = nav.(*navigatorImpl)
	return h, nil
}

func (h *harness) pointerDown(x, y float32) {
	h.canvas.Dispatch(&input.Event{Type: input.EventPointerDown, X: x, Y: y})
}

func (h *harness) pointerMove(x, y float32) {
	h.window.Dispatch(&input.Event{Type: input.EventPointerMove, X: x, Y: y})
}

func (h *harness) pointerUp(x, y float32) {
	h.window.Dispatch(&input.Event{Type: input.EventPointerUp, X: x, Y: y})
}

func (h *harness) key(t input.EventType, key int) *input.Event {
	e := &input.Event{Type: t, Key: key}
	h.window.Dispatch(e)
	return e
}

func (h *harness) wheel(delta float32) *input.Event {
	e := &input.Event{Type: input.EventWheel, DeltaY: delta}
	h.canvas.Dispatch(e)
	return e
}

func (h *harness) listeners() int {
	return h.canvas.ListenerCount() + h.window.ListenerCount()
}

package navigation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCoupler(segments int, viewport float32) (*scrollCoupler, *fakeHost, *fakeClock, *Scheduler) {
	clock := newFakeClock()
	scheduler := NewScheduler(clock)
	host := &fakeHost{}
	s := newScrollCoupler(host, scheduler, quietLogger(), DefaultScrollEpsilon, DefaultResizeDebounce)
	s.configure(segments, viewport)
	return s, host, clock, scheduler
}

func TestScrollCouplerInertWithoutCycle(t *testing.T) {
	s, host, _, _ := newTestCoupler(0, 800)
	_, ok := s.update()
	assert.False(t, ok)
	assert.Zero(t, host.scrolls)

	s, _, _, _ = newTestCoupler(8, 0)
	_, ok = s.update()
	assert.False(t, ok)
}

func TestScrollCouplerContentLength(t *testing.T) {
	s, host, _, _ := newTestCoupler(8, 800)
	assert.Equal(t, float32(6400), s.cycleLength)
	assert.Equal(t, float32(7200), host.length)
}

func TestScrollCouplerMapsOffset(t *testing.T) {
	s, host, _, _ := newTestCoupler(8, 800)

	host.offset = 1600
	u, ok := s.update()
	require.True(t, ok)
	assert.Equal(t, float32(0.25), u)
	assert.Zero(t, host.scrolls)
}

func TestScrollCouplerTeleportIsSeamless(t *testing.T) {
	for _, segments := range []int{2, 3, 8, 13} {
		s, host, _, _ := newTestCoupler(segments, 800)
		cycle := s.cycleLength

		// Approaching the end from below and stepping onto 0 land on the same u.
		host.offset = cycle - DefaultScrollEpsilon
		nearEnd, _ := s.update()
		host.offset = 0
		fromZero, _ := s.update()
		assert.Equal(t, nearEnd, fromZero, "segments=%d", segments)
		assert.Equal(t, cycle-DefaultScrollEpsilon, host.offset)

		host.offset = 0
		again, _ := s.update()
		assert.Equal(t, fromZero, again, "teleport is idempotent")

		host.offset = DefaultScrollEpsilon
		nearStart, _ := s.update()
		host.offset = cycle
		fromEnd, _ := s.update()
		assert.Equal(t, nearStart, fromEnd, "segments=%d", segments)
		assert.Equal(t, DefaultScrollEpsilon, host.offset)

		host.offset = cycle + 5000
		beyond, _ := s.update()
		assert.Equal(t, nearStart, beyond)
	}
}

func TestScrollCouplerStep(t *testing.T) {
	s, host, _, _ := newTestCoupler(8, 800)

	host.offset = 100
	s.step(1)
	assert.Equal(t, float32(900), host.offset)

	s.step(-1)
	s.step(-1)
	assert.Equal(t, float32(5700), host.offset, "wraps back past the start")

	host.offset = 6000
	s.step(1)
	assert.Equal(t, float32(400), host.offset, "wraps forward past the end")

	u, _ := s.update()
	assert.Equal(t, float32(0.0625), u)
}

func TestScrollCouplerStepFromSeam(t *testing.T) {
	s, host, _, _ := newTestCoupler(8, 800)

	host.offset = 6400 - DefaultScrollEpsilon
	s.step(1)
	assert.Equal(t, float32(799), host.offset)

	host.offset = DefaultScrollEpsilon
	s.step(-1)
	assert.Equal(t, float32(5601), host.offset)

	host.offset = 800
	s.step(-1)
	assert.Equal(t, float32(6400), host.offset, "landing on the start hands over to the teleport")
	u, _ := s.update()
	assert.Equal(t, DefaultScrollEpsilon/6400, u)
}

func TestScrollCouplerResizeIsDebounced(t *testing.T) {
	s, host, clock, scheduler := newTestCoupler(8, 800)

	s.resize(900)
	s.resize(1000)
	assert.Equal(t, float32(6400), s.cycleLength)
	assert.Equal(t, 1, scheduler.Len())

	clock.Advance(DefaultResizeDebounce - time.Millisecond)
	scheduler.RunDue()
	assert.Equal(t, float32(6400), s.cycleLength)

	clock.Advance(time.Millisecond)
	scheduler.RunDue()
	assert.Equal(t, float32(8000), s.cycleLength)
	assert.Equal(t, float32(9000), host.length)
}

func TestScrollCouplerFirstViewportAppliesImmediately(t *testing.T) {
	s, host, _, scheduler := newTestCoupler(8, 0)
	s.resize(500)
	assert.Equal(t, float32(4000), s.cycleLength)
	assert.Equal(t, float32(4500), host.length)
	assert.Equal(t, 0, scheduler.Len())
}

func TestScrollCouplerReset(t *testing.T) {
	s, host, _, scheduler := newTestCoupler(8, 800)
	s.resize(1000)

	s.reset()
	assert.Equal(t, 0, scheduler.Len())
	assert.Equal(t, float32(0), host.length)
	_, ok := s.update()
	assert.False(t, ok)

	s.reset()
	assert.Equal(t, []float32{7200, 0}, host.lengths, "a second reset leaves the host alone")
}

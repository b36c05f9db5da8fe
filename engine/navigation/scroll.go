package navigation

import (
	"log"
	"time"

	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

const (
	// DefaultScrollEpsilon is how far inside the cycle a boundary teleport lands.
	DefaultScrollEpsilon float32 = 1
	// DefaultResizeDebounce delays cycle length recomputation after a resize.
	DefaultResizeDebounce = 150 * time.Millisecond
)

// ScrollHost is the scrollable document the tour is coupled to, usually the window.
type ScrollHost interface {
	// ScrollOffset returns the current scroll offset.
	ScrollOffset() float32
	// ScrollTo moves the scroll offset.
	ScrollTo(offset float32)
	// SetContentLength sets the scrollable document length; 0 restores the host's own length.
	SetContentLength(length float32)
}

// scrollCoupler maps the host scroll offset onto a wrapping path parameter. The virtual document
// is one viewport per segment plus a trailing viewport so the last segment can be scrolled through.
type scrollCoupler struct {
	host      ScrollHost
	scheduler *Scheduler
	logger    *log.Logger

	epsilon  float32
	debounce time.Duration

	segments    int
	viewport    float32
	cycleLength float32
	lastU       float32

	resizeTask *Task
}

func newScrollCoupler(host ScrollHost, scheduler *Scheduler, logger *log.Logger, epsilon float32, debounce time.Duration) *scrollCoupler {
	return &scrollCoupler{
		host:      host,
		scheduler: scheduler,
		logger:    logger,
		epsilon:   epsilon,
		debounce:  debounce,
	}
}

// configure sets the segment count and viewport extent and recomputes immediately.
func (s *scrollCoupler) configure(segments int, viewport float32) {
	s.segments = segments
	if viewport > 0 {
		s.viewport = viewport
	}
	s.resizeTask.Cancel()
	s.resizeTask = nil
	s.recompute()
}

// resize records a new viewport extent and recomputes after the debounce window.
func (s *scrollCoupler) resize(viewport float32) {
	if viewport <= 0 {
		return
	}
	s.viewport = viewport
	if s.segments == 0 {
		return
	}
	if s.cycleLength == 0 {
		// First viewport for a mounted path.
		s.recompute()
		return
	}
	s.resizeTask.Cancel()
	s.resizeTask = s.scheduler.After(s.debounce, func() {
		s.resizeTask = nil
		s.recompute()
	})
}

func (s *scrollCoupler) recompute() {
	s.cycleLength = s.viewport * float32(s.segments)
	if s.cycleLength <= 0 {
		s.cycleLength = 0
		return
	}
	s.host.SetContentLength(s.cycleLength + s.viewport)
	s.logger.Printf("[Navigation] scroll cycle %.0f over %d segments", s.cycleLength, s.segments)
}

// update teleports the host offset away from the loop boundaries and returns the path parameter.
// It reports false while there is no cycle to map onto.
func (s *scrollCoupler) update() (float32, bool) {
	if s.cycleLength <= 0 {
		return 0, false
	}

	y := s.host.ScrollOffset()
	switch {
	case y <= 0:
		s.host.ScrollTo(s.cycleLength - s.epsilon)
		y = s.host.ScrollOffset()
	case y >= s.cycleLength:
		s.host.ScrollTo(s.epsilon)
		y = s.host.ScrollOffset()
	}

	c := s.cycleLength
	yc := common.Clamp(y, 0, c)
	virtual := math32.Mod(math32.Mod(yc, c)+c, c)
	s.lastU = virtual / c
	return s.lastU, true
}

// step scrolls exactly one segment forward (dir > 0) or back (dir < 0). Targets past either end
// of the cycle wrap around it, so a step taken at the seam still lands on the neighbouring POI.
func (s *scrollCoupler) step(dir int) {
	if s.cycleLength <= 0 || s.segments == 0 || dir == 0 {
		return
	}
	stride := s.cycleLength / float32(s.segments)
	if dir < 0 {
		stride = -stride
	}
	target := s.host.ScrollOffset() + stride
	if target >= s.cycleLength {
		target -= s.cycleLength
	}
	if target <= 0 {
		target += s.cycleLength
	}
	s.host.ScrollTo(target)
}

// reset drops the cycle and hands the document length back to the host.
func (s *scrollCoupler) reset() {
	s.resizeTask.Cancel()
	s.resizeTask = nil
	hadCycle := s.cycleLength > 0
	s.segments = 0
	s.cycleLength = 0
	s.lastU = 0
	if hadCycle {
		s.host.SetContentLength(0)
	}
}

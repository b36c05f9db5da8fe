package navigation

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

const (
	// DefaultStandoff is how far the camera waypoint sits beyond each POI, away from the origin.
	DefaultStandoff float32 = 2.0
	// DefaultBow is the control point offset as a fraction of the segment chord length.
	DefaultBow float32 = 0.3
	// DefaultRollAmplitude is the peak bank angle in radians reached mid-segment.
	DefaultRollAmplitude float32 = 0.3
)

// Segment is one arc of the closed tour, from the waypoint of POI i to the waypoint of POI i+1.
type Segment struct {
	// Start and End are the camera waypoints at either end of the arc.
	Start, End common.Vec3
	// Control is the quadratic Bezier control point bowing the arc off its chord.
	Control common.Vec3
	// LookStart and LookEnd are the POI positions the camera looks at.
	LookStart, LookEnd common.Vec3
	// RollAmplitude is the signed peak bank angle in radians.
	RollAmplitude float32
}

// Path is an immutable closed tour through an ordered list of POIs. A new Path is built whenever
// the POI list changes.
type Path struct {
	pois     []POI
	segments []Segment
}

type pathConfig struct {
	standoff      float32
	bow           float32
	rollAmplitude float32
}

// PathOption is a functional option for BuildPath.
type PathOption func(*pathConfig)

// WithStandoff sets the camera standoff distance k.
//
// Parameters:
//   - k: distance added along the POI direction from the origin
//
// Returns:
//   - PathOption: functional option to set the standoff
func WithStandoff(k float32) PathOption {
	return func(c *pathConfig) {
		c.standoff = k
	}
}

// WithBow sets how far control points sit off the chord, as a fraction of the chord length.
//
// Parameters:
//   - bow: chord fraction, applied with alternating sign per segment
//
// Returns:
//   - PathOption: functional option to set the bow factor
func WithBow(bow float32) PathOption {
	return func(c *pathConfig) {
		c.bow = bow
	}
}

// WithRollAmplitude sets the peak bank angle.
//
// Parameters:
//   - amplitude: radians, applied with alternating sign per segment
//
// Returns:
//   - PathOption: functional option to set the roll amplitude
func WithRollAmplitude(amplitude float32) PathOption {
	return func(c *pathConfig) {
		c.rollAmplitude = amplitude
	}
}

// BuildPath turns an ordered POI list into a closed tour of len(pois) segments, the last one
// wrapping back to the first POI.
//
// Control points and roll amplitudes alternate sign by segment parity, so consecutive arcs
// bow to opposite sides regardless of the POI layout.
//
// Parameters:
//   - pois: ordered points of interest, at least two
//   - options: functional options overriding standoff, bow and roll amplitude
//
// Returns:
//   - *Path: the built tour
//   - error: ErrTooFewPOIs, ErrDuplicatePOI or ErrInvalidPOI, wrapped with detail
func BuildPath(pois []POI, options ...PathOption) (*Path, error) {
	cfg := pathConfig{
		standoff:      DefaultStandoff,
		bow:           DefaultBow,
		rollAmplitude: DefaultRollAmplitude,
	}
	for _, opt := range options {
		opt(&cfg)
	}

	n := len(pois)
	if n < 2 {
		return nil, fmt.Errorf("build path from %d points: %w", n, ErrTooFewPOIs)
	}

	seen := make(map[string]int, n)
	for i, poi := range pois {
		if !finite(poi.Position) {
			return nil, fmt.Errorf("point %d (%q) has position %v: %w", i, poi.ID, poi.Position, ErrInvalidPOI)
		}
		if poi.ID == "" {
			continue
		}
		if j, ok := seen[poi.ID]; ok {
			return nil, fmt.Errorf("id %q at points %d and %d: %w", poi.ID, j, i, ErrDuplicatePOI)
		}
		seen[poi.ID] = i
	}

	waypoints := make([]common.Vec3, n)
	for i, poi := range pois {
		waypoints[i] = poi.Position.Add(poi.Position.Normalize().Scale(cfg.standoff))
	}

	segments := make([]Segment, n)
	for i := range n {
		next := (i + 1) % n
		start, end := waypoints[i], waypoints[next]

		sign := float32(1)
		if i%2 == 1 {
			sign = -1
		}

		mid := start.Add(end).Scale(0.5)
		normal := start.Cross(end).Normalize()
		chord := start.Distance(end)

		segments[i] = Segment{
			Start:         start,
			End:           end,
			Control:       mid.Add(normal.Scale(chord * cfg.bow * sign)),
			LookStart:     pois[i].Position,
			LookEnd:       pois[next].Position,
			RollAmplitude: cfg.rollAmplitude * sign,
		}
	}

	return &Path{
		pois:     append([]POI(nil), pois...),
		segments: segments,
	}, nil
}

// Len returns the number of segments, which equals the number of POIs.
//
// Returns:
//   - int: segment count
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.segments)
}

// Segment returns segment i.
//
// Parameters:
//   - i: segment index in [0, Len())
//
// Returns:
//   - Segment: a copy of the segment
func (p *Path) Segment(i int) Segment {
	return p.segments[i]
}

// Segments returns a copy of all segments in tour order.
func (p *Path) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// POI returns the point of interest at index i.
func (p *Path) POI(i int) POI {
	return p.pois[i]
}

// POIs returns a copy of the POI list the path was built from.
func (p *Path) POIs() []POI {
	return append([]POI(nil), p.pois...)
}

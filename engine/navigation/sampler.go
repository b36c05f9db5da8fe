package navigation

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

const (
	// DefaultNearFov is the field of view in degrees while the camera dwells at a POI.
	DefaultNearFov float32 = 35
	// DefaultFarFov is the field of view in degrees reached mid-transit.
	DefaultFarFov float32 = 75
)

// Lens holds the field-of-view range the sampler sweeps through on every segment.
type Lens struct {
	// NearFov is the field of view at either end of a segment, in degrees.
	NearFov float32
	// FarFov is the field of view mid-segment, in degrees.
	FarFov float32
}

// DefaultLens returns the 35°/75° lens.
func DefaultLens() Lens {
	return Lens{NearFov: DefaultNearFov, FarFov: DefaultFarFov}
}

// Pose is a sampled camera pose.
type Pose struct {
	Position common.Vec3
	LookAt   common.Vec3
	// Fov is the vertical field of view in radians.
	Fov float32
	// Roll is the bank angle around the view axis in radians.
	Roll float32
	// Segment and T locate the pose on the path: T is the eased local parameter.
	Segment int
	T       float32
}

// Ease is a cubic ease-in/ease-out on [0, 1]. It is monotonic with Ease(0)=0, Ease(0.5)=0.5
// and Ease(1)=1, so the camera dwells near each POI and speeds up between them.
//
// Parameters:
//   - t: local segment parameter
//
// Returns:
//   - float32: the eased parameter
func Ease(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := -2*t + 2
	return 1 - f*f*f/2
}

// Locate maps a path parameter onto a segment index and local parameter. u is wrapped into
// [0, 1) first, so any real value is accepted.
//
// Parameters:
//   - u: path parameter
//
// Returns:
//   - int: segment index floor(u·N)
//   - float32: local parameter frac(u·N)
func (p *Path) Locate(u float32) (int, float32) {
	n := len(p.segments)
	seg := common.Wrap01(u) * float32(n)
	idx := int(math32.Floor(seg))
	t := seg - float32(idx)
	if idx >= n {
		// u just below 1 can round up to N in float32.
		return n - 1, 1
	}
	return idx, t
}

// Sample computes the camera pose at path parameter u. It is a pure function of the path,
// the lens and u.
//
// Parameters:
//   - u: path parameter, wrapped into [0, 1)
//   - lens: field of view range
//
// Returns:
//   - Pose: position, look-at target, fov and roll
func (p *Path) Sample(u float32, lens Lens) Pose {
	idx, t := p.Locate(u)
	seg := p.segments[idx]
	et := Ease(t)

	swell := math32.Sin(math32.Pi * et)
	fov := lens.NearFov + (lens.FarFov-lens.NearFov)*swell

	return Pose{
		Position: common.QuadraticBezier(seg.Start, seg.Control, seg.End, et),
		LookAt:   seg.LookStart.Lerp(seg.LookEnd, et),
		Fov:      fov * common.DegToRad,
		Roll:     seg.RollAmplitude * swell,
		Segment:  idx,
		T:        et,
	}
}

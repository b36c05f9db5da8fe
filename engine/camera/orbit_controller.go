package camera

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

// OrbitController holds free-orbit inspection state as spherical coordinates around a fixed center.
//
// Conventions: polar is measured from the +Y axis, azimuth is measured in the XZ plane from +X
// toward +Z, so a position relative to the center is
// (r·sin(polar)·cos(azimuth), r·cos(polar), r·sin(polar)·sin(azimuth)).
//
// Every mutation re-applies the clamps: polar stays strictly inside (0, π) by PolarEpsilon and
// radius stays inside [MinRadius, MaxRadius]. Azimuth is unbounded.
//
// An OrbitController is not safe for concurrent use; it is owned by a single tick loop.
type OrbitController interface {
	// Position returns the world-space position described by the current spherical coordinates.
	//
	// Returns:
	//   - common.Vec3: center + spherical offset
	Position() common.Vec3

	// Center returns the fixed orbit center.
	//
	// Returns:
	//   - common.Vec3: world-space orbit center
	Center() common.Vec3

	// SetFromPosition derives radius, azimuth and polar from a world-space position so that
	// Position() reproduces it (up to the radius and polar clamps).
	//
	// Parameters:
	//   - p: world-space position, usually the camera's current position
	SetFromPosition(p common.Vec3)

	// Drag rotates by a pointer delta: azimuth -= dx·RotateSpeed, polar -= dy·RotateSpeed.
	//
	// Parameters:
	//   - dx: horizontal pointer delta in pixels
	//   - dy: vertical pointer delta in pixels
	Drag(dx, dy float32)

	// Zoom changes the radius by delta·ZoomSpeed. Positive delta moves away from the center,
	// matching wheel deltaY where scrolling down is positive.
	//
	// Parameters:
	//   - delta: wheel delta
	Zoom(delta float32)

	// Pinch changes the radius by -distanceDelta·PinchZoomSpeed, so spreading two fingers
	// (positive delta) moves closer.
	//
	// Parameters:
	//   - distanceDelta: change in distance between two touch points in pixels
	Pinch(distanceDelta float32)

	// OrbitLeft rotates the azimuth by -KeyRotateSpeed.
	OrbitLeft()

	// OrbitRight rotates the azimuth by +KeyRotateSpeed.
	OrbitRight()

	// OrbitUp tilts toward the +Y pole by KeyRotateSpeed, clamped.
	OrbitUp()

	// OrbitDown tilts toward the -Y pole by KeyRotateSpeed, clamped.
	OrbitDown()

	// DollyIn reduces the radius by KeyZoomSpeed, clamped.
	DollyIn()

	// DollyOut increases the radius by KeyZoomSpeed, clamped.
	DollyOut()

	// Reset restores the initial spherical coordinates the controller was built with.
	Reset()

	// Radius returns the current distance from the center.
	Radius() float32

	// Azimuth returns the current azimuth in radians.
	Azimuth() float32

	// Polar returns the current polar angle in radians.
	Polar() float32

	// MinRadius returns the minimum allowed radius.
	MinRadius() float32

	// MaxRadius returns the maximum allowed radius.
	MaxRadius() float32

	// PolarEpsilon returns the minimum distance the polar angle keeps from either pole.
	PolarEpsilon() float32
}

type orbitControllerImpl struct {
	center common.Vec3

	radius  float32
	azimuth float32
	polar   float32

	initialRadius  float32
	initialAzimuth float32
	initialPolar   float32

	minRadius    float32
	maxRadius    float32
	polarEpsilon float32

	rotateSpeed    float32
	zoomSpeed      float32
	pinchZoomSpeed float32
	keyRotateSpeed float32
	keyZoomSpeed   float32
}

var _ OrbitController = &orbitControllerImpl{}

const (
	// DefaultMinRadius is the closest the orbit may get to its center.
	DefaultMinRadius float32 = 1.6
	// DefaultMaxRadius is the farthest the orbit may get from its center.
	DefaultMaxRadius float32 = 12
)

// NewOrbitController creates an OrbitController with the defaults used by the tour:
// radius bounds [1.6, 12], polar epsilon 0.001 and pointer/wheel/pinch/key speeds tuned for
// pixel deltas.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerOption) OrbitController {
	oc := &orbitControllerImpl{
		radius:  6.5,
		azimuth: 0,
		polar:   math32.Pi / 2,

		minRadius:    DefaultMinRadius,
		maxRadius:    DefaultMaxRadius,
		polarEpsilon: 0.001,

		rotateSpeed:    0.006,
		zoomSpeed:      0.0025,
		pinchZoomSpeed: 0.004,
		keyRotateSpeed: 0.02,
		keyZoomSpeed:   0.05,
	}
	for _, option := range options {
		option(oc)
	}
	if oc.minRadius > oc.maxRadius {
		oc.minRadius, oc.maxRadius = oc.maxRadius, oc.minRadius
	}
	oc.clamp()
	oc.initialRadius, oc.initialAzimuth, oc.initialPolar = oc.radius, oc.azimuth, oc.polar
	return oc
}

// clamp enforces the radius bounds and keeps polar off the poles.
func (oc *orbitControllerImpl) clamp() {
	oc.polar = common.Clamp(oc.polar, oc.polarEpsilon, math32.Pi-oc.polarEpsilon)
	oc.radius = common.Clamp(oc.radius, oc.minRadius, oc.maxRadius)
}

func (oc *orbitControllerImpl) Position() common.Vec3 {
	sinPolar, cosPolar := math32.Sincos(oc.polar)
	sinAz, cosAz := math32.Sincos(oc.azimuth)
	return oc.center.Add(common.Vec3{
		oc.radius * sinPolar * cosAz,
		oc.radius * cosPolar,
		oc.radius * sinPolar * sinAz,
	})
}

func (oc *orbitControllerImpl) Center() common.Vec3 {
	return oc.center
}

func (oc *orbitControllerImpl) SetFromPosition(p common.Vec3) {
	rel := p.Sub(oc.center)
	oc.radius = rel.Length()
	oc.azimuth = math32.Atan2(rel[2], rel[0])
	oc.polar = math32.Atan2(math32.Sqrt(rel[0]*rel[0]+rel[2]*rel[2]), rel[1])
	oc.clamp()
}

func (oc *orbitControllerImpl) Drag(dx, dy float32) {
	oc.azimuth -= dx * oc.rotateSpeed
	oc.polar -= dy * oc.rotateSpeed
	oc.clamp()
}

func (oc *orbitControllerImpl) Zoom(delta float32) {
	oc.radius += delta * oc.zoomSpeed
	oc.clamp()
}

func (oc *orbitControllerImpl) Pinch(distanceDelta float32) {
	oc.radius -= distanceDelta * oc.pinchZoomSpeed
	oc.clamp()
}

func (oc *orbitControllerImpl) OrbitLeft() {
	oc.azimuth -= oc.keyRotateSpeed
}

func (oc *orbitControllerImpl) OrbitRight() {
	oc.azimuth += oc.keyRotateSpeed
}

func (oc *orbitControllerImpl) OrbitUp() {
	oc.polar -= oc.keyRotateSpeed
	oc.clamp()
}

func (oc *orbitControllerImpl) OrbitDown() {
	oc.polar += oc.keyRotateSpeed
	oc.clamp()
}

func (oc *orbitControllerImpl) DollyIn() {
	oc.radius -= oc.keyZoomSpeed
	oc.clamp()
}

func (oc *orbitControllerImpl) DollyOut() {
	oc.radius += oc.keyZoomSpeed
	oc.clamp()
}

func (oc *orbitControllerImpl) Reset() {
	oc.radius, oc.azimuth, oc.polar = oc.initialRadius, oc.initialAzimuth, oc.initialPolar
}

func (oc *orbitControllerImpl) Radius() float32       { return oc.radius }
func (oc *orbitControllerImpl) Azimuth() float32      { return oc.azimuth }
func (oc *orbitControllerImpl) Polar() float32        { return oc.polar }
func (oc *orbitControllerImpl) MinRadius() float32    { return oc.minRadius }
func (oc *orbitControllerImpl) MaxRadius() float32    { return oc.maxRadius }
func (oc *orbitControllerImpl) PolarEpsilon() float32 { return oc.polarEpsilon }

package camera

import "github.com/Carmen-Shannon/oxy-tour/common"

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithCenter sets the fixed point the controller orbits around.
//
// Parameters:
//   - center: world-space orbit center
//
// Returns:
//   - OrbitControllerOption: functional option to set the center
func WithCenter(center common.Vec3) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.center = center
	}
}

// WithRadius sets the initial orbit radius.
//
// Parameters:
//   - radius: distance from the orbit center
//
// Returns:
//   - OrbitControllerOption: functional option to set the radius
func WithRadius(radius float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.radius = radius
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - OrbitControllerOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.minRadius = min
		oc.maxRadius = max
	}
}

// WithPolarEpsilon sets how close the polar angle may get to either pole.
// Non-positive values are ignored; polar must never reach 0 or π.
//
// Parameters:
//   - epsilon: minimum distance from the poles in radians
//
// Returns:
//   - OrbitControllerOption: functional option to set the polar epsilon
func WithPolarEpsilon(epsilon float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		if epsilon > 0 {
			oc.polarEpsilon = epsilon
		}
	}
}

// WithRotateSpeed sets the pointer drag speed in radians per pixel.
//
// Parameters:
//   - speed: radians per pixel of pointer movement
//
// Returns:
//   - OrbitControllerOption: functional option to set rotate speed
func WithRotateSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.rotateSpeed = speed
	}
}

// WithZoomSpeed sets the wheel zoom speed in radius units per wheel delta unit.
//
// Parameters:
//   - speed: multiplier for wheel delta
//
// Returns:
//   - OrbitControllerOption: functional option to set zoom speed
func WithZoomSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.zoomSpeed = speed
	}
}

// WithPinchZoomSpeed sets the pinch zoom speed in radius units per pixel of finger spread.
//
// Parameters:
//   - speed: multiplier for pinch distance delta
//
// Returns:
//   - OrbitControllerOption: functional option to set pinch zoom speed
func WithPinchZoomSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.pinchZoomSpeed = speed
	}
}

// WithKeyRotateSpeed sets the per-tick rotation applied while an orbit key is held.
//
// Parameters:
//   - speed: radians per tick
//
// Returns:
//   - OrbitControllerOption: functional option to set key rotate speed
func WithKeyRotateSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.keyRotateSpeed = speed
	}
}

// WithKeyZoomSpeed sets the per-tick radius change applied while a dolly key is held.
//
// Parameters:
//   - speed: radius units per tick
//
// Returns:
//   - OrbitControllerOption: functional option to set key zoom speed
func WithKeyZoomSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.keyZoomSpeed = speed
	}
}

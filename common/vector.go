package common

import (
	"github.com/chewxy/math32"
)

// Vec3 is a plain 3-component float32 vector. It is a value type; every helper returns a new vector.
type Vec3 [3]float32

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2]
}

// Cross returns the cross product v x o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Distance returns the Euclidean distance between v and o.
func (v Vec3) Distance(o Vec3) float32 {
	return v.Sub(o).Length()
}

// Normalize returns v scaled to unit length.
// The zero vector (or one too short to normalize safely) is returned unchanged as the zero vector.
//
// Returns:
//   - Vec3: the unit vector, or the zero vector when v has no direction
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < 1e-8 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Lerp linearly interpolates from v to o by t.
//
// Parameters:
//   - o: the end vector
//   - t: interpolation factor (0 = v, 1 = o)
//
// Returns:
//   - Vec3: the interpolated vector
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return Vec3{
		v[0] + (o[0]-v[0])*t,
		v[1] + (o[1]-v[1])*t,
		v[2] + (o[2]-v[2])*t,
	}
}

// QuadraticBezier evaluates the quadratic Bezier curve through start, control and end at t:
// (1-t)²·start + 2(1-t)t·control + t²·end.
//
// Parameters:
//   - start: curve start point (t = 0)
//   - control: control point
//   - end: curve end point (t = 1)
//   - t: curve parameter in [0, 1]
//
// Returns:
//   - Vec3: the point on the curve
func QuadraticBezier(start, control, end Vec3, t float32) Vec3 {
	omt := 1 - t
	return start.Scale(omt * omt).
		Add(control.Scale(2 * omt * t)).
		Add(end.Scale(t * t))
}

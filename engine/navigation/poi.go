package navigation

import (
	"github.com/chewxy/math32"

	"github.com/Carmen-Shannon/oxy-tour/common"
)

// POI is a named point of interest the tour visits.
type POI struct {
	// ID is the stable identifier of the point; it must be unique within a tour when set.
	ID string
	// Label is a human readable name.
	Label string
	// Position is the world-space location of the point.
	Position common.Vec3
}

// SphericalPOI creates a POI from spherical coordinates given in degrees, the way scene content
// usually lays nodes out on a shell: theta is measured in the XZ plane from +X, phi is the
// elevation above the XZ plane.
//
// Parameters:
//   - id: stable identifier
//   - label: display name
//   - thetaDeg: azimuth in degrees
//   - phiDeg: elevation in degrees
//   - radius: distance from the origin
//
// Returns:
//   - POI: the point of interest at the cartesian equivalent position
func SphericalPOI(id, label string, thetaDeg, phiDeg, radius float32) POI {
	sinTheta, cosTheta := math32.Sincos(thetaDeg * common.DegToRad)
	sinPhi, cosPhi := math32.Sincos(phiDeg * common.DegToRad)
	return POI{
		ID:    id,
		Label: label,
		Position: common.Vec3{
			cosPhi * cosTheta * radius,
			sinPhi * radius,
			cosPhi * sinTheta * radius,
		},
	}
}

func finite(v common.Vec3) bool {
	for _, c := range v {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}

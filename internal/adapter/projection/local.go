// Package projection provides a locally flat metric frame for scale bar
// placement and viewport measurement.
package projection

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const earthRadiusMeters = 6371000.0

// Local projects geographic coordinates onto a plane tangent at an origin
// point: meters east and north of the origin, with the longitudinal scale
// corrected by the origin's latitude. Accurate at city scale; not a
// general map projection.
type Local struct {
	originLon float64
	originLat float64
	cosLat    float64
}

// NewLocal centers the frame on (lon, lat) degrees.
func NewLocal(lon, lat float64) *Local {
	return &Local{
		originLon: lon,
		originLat: lat,
		cosLat:    math.Cos(lat * math.Pi / 180),
	}
}

// Forward implements domain.Projector.
func (l *Local) Forward(lon, lat float64) (x, y float64) {
	x = (lon - l.originLon) * math.Pi / 180 * earthRadiusMeters * l.cosLat
	y = (lat - l.originLat) * math.Pi / 180 * earthRadiusMeters
	return x, y
}

// Distance returns the great-circle distance in meters between two
// geographic points.
func Distance(lon1, lat1, lon2, lat2 float64) float64 {
	p1 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lon1))
	p2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lon2))

	angle := s1.Angle(s2.ChordAngleBetweenPoints(p1, p2).Angle())
	return angle.Radians() * earthRadiusMeters
}

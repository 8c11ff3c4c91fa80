package domain

import "math"

// Extent is a padded bounding rectangle around a set of rings. Field
// naming follows the downstream plotting contract rather than geographic
// convention: Bottom and Top bound longitude while Left and Right bound
// latitude, and the tuple order (Bottom, Top, Left, Right) is load-bearing
// for consumers.
type Extent struct {
	Bottom float64 // padded minimum longitude
	Top    float64 // padded maximum longitude
	Left   float64 // padded minimum latitude
	Right  float64 // padded maximum latitude
}

// LonSpan returns the padded longitude span.
func (e Extent) LonSpan() float64 { return e.Top - e.Bottom }

// LatSpan returns the padded latitude span.
func (e Extent) LatSpan() float64 { return e.Right - e.Left }

// ComputeExtent scans every point of every ring once and returns the
// bounding rectangle padded by bufferRatio. The padding magnitude derives
// from the longitude span alone and is applied to both axes.
func ComputeExtent(rings []Ring, bufferRatio float64) (Extent, error) {
	if len(rings) == 0 {
		return Extent{}, &EmptyInputError{Op: "compute extent"}
	}

	lonMin, lonMax := math.Inf(1), math.Inf(-1)
	latMin, latMax := math.Inf(1), math.Inf(-1)
	points := 0
	for _, ring := range rings {
		for _, p := range ring {
			lonMin = math.Min(lonMin, p[0])
			lonMax = math.Max(lonMax, p[0])
			latMin = math.Min(latMin, p[1])
			latMax = math.Max(latMax, p[1])
		}
		points += len(ring)
	}
	if points == 0 {
		return Extent{}, &EmptyInputError{Op: "compute extent"}
	}

	buffer := math.Abs(lonMax-lonMin) * bufferRatio
	return Extent{
		Bottom: lonMin - buffer,
		Top:    lonMax + buffer,
		Left:   latMin - buffer,
		Right:  latMax + buffer,
	}, nil
}

package domain

import (
	"strconv"
	"strings"
)

// RangeSpec carries one or more isoline range magnitudes. Construct it
// with SingleRange or MultiRange so request builders never have to guess
// the shape of their input.
type RangeSpec struct {
	values []float64
}

// SingleRange wraps one range magnitude.
func SingleRange(v float64) RangeSpec {
	return RangeSpec{values: []float64{v}}
}

// MultiRange wraps a sequence of range magnitudes.
func MultiRange(vs ...float64) RangeSpec {
	return RangeSpec{values: append([]float64(nil), vs...)}
}

// Values returns the magnitudes in construction order.
func (r RangeSpec) Values() []float64 {
	return append([]float64(nil), r.values...)
}

// IsEmpty reports whether no magnitudes were supplied.
func (r RangeSpec) IsEmpty() bool { return len(r.values) == 0 }

// Encode joins the magnitudes with commas, the form the routing API
// expects for range[values].
func (r RangeSpec) Encode() string {
	parts := make([]string, len(r.values))
	for i, v := range r.values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// IsolineRequest describes one isoline routing call. The adapter turns it
// into the upstream wire request.
type IsolineRequest struct {
	OriginLat     float64
	OriginLon     float64
	TransportMode string // "car", "pedestrian", ...
	RangeType     string // "time" or "distance"
	Ranges        RangeSpec

	// DepartureTime is an RFC 3339 timestamp enabling traffic-aware
	// routing; empty ignores traffic.
	DepartureTime string

	// Reverse treats the origin as a destination and DepartureTime as an
	// arrival time.
	Reverse bool
}

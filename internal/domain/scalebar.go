package domain

import (
	"math"
	"strconv"
)

// maxNiceIterations bounds the leading-digit walk. A one-significant-figure
// value can need at most nine subtractions of its decade step before it
// either hits a nice digit or leaves the decade.
const maxNiceIterations = 9

// PickScaleLength turns a metric viewport span into a round scale bar
// length in kilometers. The candidate is a fifth of the span; it is
// rounded to one significant figure, then stepped down by its decade until
// the leading digit is 1, 2, or 5.
func PickScaleLength(spanMeters float64) (float64, error) {
	candidate := spanMeters / 5000 // a fifth of the span, expressed in km
	if candidate <= 0 || math.IsInf(candidate, 0) || math.IsNaN(candidate) {
		return 0, &DegenerateSpanError{SpanMeters: spanMeters}
	}

	step := math.Pow(10, math.Floor(math.Log10(candidate)))
	length := math.Round(candidate/step) * step

	for i := 0; i < maxNiceIterations && length > 0; i++ {
		if niceLeadingDigit(length, step) {
			return length, nil
		}
		length -= step
	}
	return 0, &DegenerateSpanError{SpanMeters: spanMeters}
}

// niceLeadingDigit reports whether length, a multiple of step, leads with
// 1, 2, or 5.
func niceLeadingDigit(length, step float64) bool {
	k := int(math.Round(length / step))
	for k >= 10 && k%10 == 0 {
		k /= 10
	}
	return k == 1 || k == 2 || k == 5
}

// Projector converts geographic coordinates into a locally flat metric
// frame. Implementations live outside the core; the scale bar only needs
// the forward transform.
type Projector interface {
	// Forward projects (lon, lat) degrees to (x, y) meters.
	Forward(lon, lat float64) (x, y float64)
}

// MetricViewport is the map extent projected into the scale bar's flat
// frame, in meters.
type MetricViewport struct {
	X0, X1 float64
	Y0, Y1 float64
}

// ScaleBarLocation places the bar in fractional viewport coordinates;
// (0.5, 0.05) is bottom-center.
type ScaleBarLocation struct {
	X, Y float64
}

// ScaleBarSpec positions a distance scale bar in a locally flat projected
// frame. Frame carries the projected extent so a rendering surface can map
// the endpoints back into its own pixel space.
type ScaleBarSpec struct {
	LengthKm float64
	X0, Y0   float64 // left endpoint, meters
	X1, Y1   float64 // right endpoint, meters
	Label    string
	Frame    MetricViewport
}

// ComputeScaleBar derives a scale bar for the given extent. An explicitKm
// greater than zero bypasses the length selection entirely; otherwise the
// length comes from PickScaleLength over the projected longitude span.
func ComputeScaleBar(extent Extent, proj Projector, loc ScaleBarLocation, explicitKm float64) (ScaleBarSpec, error) {
	barLat := extent.Left + extent.LatSpan()*loc.Y
	x0, _ := proj.Forward(extent.Bottom, barLat)
	x1, _ := proj.Forward(extent.Top, barLat)
	_, y0 := proj.Forward(extent.Bottom, extent.Left)
	_, y1 := proj.Forward(extent.Bottom, extent.Right)

	length := explicitKm
	if length <= 0 {
		var err error
		length, err = PickScaleLength(x1 - x0)
		if err != nil {
			return ScaleBarSpec{}, err
		}
	}

	sbx := x0 + (x1-x0)*loc.X
	sby := y0 + (y1-y0)*loc.Y
	half := length * 500 // half the bar, in meters

	return ScaleBarSpec{
		LengthKm: length,
		X0:       sbx - half,
		Y0:       sby,
		X1:       sbx + half,
		Y1:       sby,
		Label:    strconv.FormatFloat(length, 'f', -1, 64) + " km",
		Frame:    MetricViewport{X0: x0, X1: x1, Y0: y0, Y1: y1},
	}, nil
}

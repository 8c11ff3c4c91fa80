package domain

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
)

// PolylineDecoder decodes a compressed polyline string into (lon, lat)
// points. The wire format is the decoder's concern; the core only consumes
// the coordinate sequence.
type PolylineDecoder interface {
	Decode(encoded string) ([]orb.Point, error)
}

// IsolineResponse mirrors the isoline routing API response. Only the
// fields the renderer consumes are declared.
type IsolineResponse struct {
	Isolines []IsolineEntry `json:"isolines"`
}

// IsolineEntry is one isoline in the response: its range magnitude and its
// polygon list.
type IsolineEntry struct {
	Range    RangeSection     `json:"range"`
	Polygons []PolygonSection `json:"polygons"`
}

// RangeSection carries the declared range type and magnitude.
type RangeSection struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// PolygonSection holds one compressed outer boundary.
type PolygonSection struct {
	Outer string `json:"outer"`
}

// IsolineSet maps each reported range value to its decoded outer ring.
// It is immutable once built; range values are consumed in ascending
// order, never in response order.
type IsolineSet struct {
	rings  map[float64]Ring
	values []float64
}

// DecodeIsolines decodes each entry's first outer polygon and keys it by
// the entry's declared range value. Isolines with holes or disconnected
// parts are reduced to their first outer ring.
func DecodeIsolines(resp IsolineResponse, dec PolylineDecoder) (IsolineSet, error) {
	rings := make(map[float64]Ring, len(resp.Isolines))
	for _, iso := range resp.Isolines {
		if _, dup := rings[iso.Range.Value]; dup {
			return IsolineSet{}, &DuplicateRangeValueError{Value: iso.Range.Value}
		}
		if len(iso.Polygons) == 0 {
			return IsolineSet{}, fmt.Errorf("isoline %g: no polygons in response", iso.Range.Value)
		}
		pts, err := dec.Decode(iso.Polygons[0].Outer)
		if err != nil {
			return IsolineSet{}, fmt.Errorf("decode isoline %g: %w", iso.Range.Value, err)
		}
		rings[iso.Range.Value] = Ring(pts)
	}

	values := make([]float64, 0, len(rings))
	for v := range rings {
		values = append(values, v)
	}
	sort.Float64s(values)

	return IsolineSet{rings: rings, values: values}, nil
}

// Len returns the number of isolines in the set.
func (s IsolineSet) Len() int { return len(s.values) }

// Values returns the range values in ascending order.
func (s IsolineSet) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// Ring returns the ring decoded for a range value.
func (s IsolineSet) Ring(value float64) (Ring, bool) {
	r, ok := s.rings[value]
	return r, ok
}

// Rings returns the rings ordered by ascending range value.
func (s IsolineSet) Rings() []Ring {
	out := make([]Ring, len(s.values))
	for i, v := range s.values {
		out[i] = s.rings[v]
	}
	return out
}

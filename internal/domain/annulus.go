package domain

import "github.com/paulmach/orb"

// Ring is a closed polygon boundary. Points follow the orb convention:
// index 0 is longitude, index 1 is latitude. Closure back to the first
// point is implicit.
type Ring = orb.Ring

// PathVerb marks how a path point is reached.
type PathVerb uint8

const (
	// MoveTo starts a new sub-boundary at the point.
	MoveTo PathVerb = iota
	// LineTo draws a segment from the previous point.
	LineTo
)

// CompoundPath is a flat point sequence with one verb per point. Every
// sub-boundary opens with a MoveTo; the consuming surface closes each one
// back to its MoveTo point. Sub-boundaries are never joined by a segment.
type CompoundPath struct {
	Points []orb.Point
	Verbs  []PathVerb
}

func (p *CompoundPath) appendBoundary(ring Ring) {
	for i, pt := range ring {
		verb := LineTo
		if i == 0 {
			verb = MoveTo
		}
		p.Points = append(p.Points, pt)
		p.Verbs = append(p.Verbs, verb)
	}
}

// AnnulusRegion is one renderable band: an outer boundary in its natural
// winding and, for all but the innermost region, the previous ring with
// its point order reversed so a winding-aware fill rule treats it as a
// hole.
type AnnulusRegion struct {
	Outer Ring
	Inner Ring // reversed previous ring; nil for the innermost region

	// FillIntensity is an evenly spaced color-scale sample in (0, 1),
	// computed as 1 - (i+0.5)/n for region i of n.
	FillIntensity float64
}

// Path flattens the region into one compound path.
func (r AnnulusRegion) Path() CompoundPath {
	p := CompoundPath{
		Points: make([]orb.Point, 0, len(r.Outer)+len(r.Inner)),
		Verbs:  make([]PathVerb, 0, len(r.Outer)+len(r.Inner)),
	}
	p.appendBoundary(r.Outer)
	if len(r.Inner) > 0 {
		p.appendBoundary(r.Inner)
	}
	return p
}

// BuildAnnuli converts rings sorted ascending by range value into disjoint
// renderable regions. Region 0 is the innermost ring filled whole; every
// later region pairs its ring with the previous one reversed, so the fill
// covers only the band between them. The subtraction is realized purely
// through path winding, not polygon Boolean operations.
//
// Correctness depends on each ring containing the previous one. Only
// bounding-box containment is verified here; rings that pass the box check
// but overlap geometrically will produce self-intersecting fills.
func BuildAnnuli(ordered []Ring) ([]AnnulusRegion, error) {
	if len(ordered) == 0 {
		return nil, &InsufficientRingsError{Count: 0}
	}

	n := len(ordered)
	regions := make([]AnnulusRegion, 0, n)
	for i, ring := range ordered {
		region := AnnulusRegion{
			Outer:         ring,
			FillIntensity: 1 - (float64(i)+0.5)/float64(n),
		}
		if i > 0 {
			prev := ordered[i-1]
			if !containsBound(ring, prev) {
				return nil, &NonNestedRingsError{Index: i}
			}
			region.Inner = reversed(prev)
		}
		regions = append(regions, region)
	}
	return regions, nil
}

// containsBound reports whether outer's bounding box contains inner's.
func containsBound(outer, inner Ring) bool {
	ob, ib := outer.Bound(), inner.Bound()
	return ob.Contains(ib.Min) && ob.Contains(ib.Max)
}

func reversed(ring Ring) Ring {
	out := make(Ring, len(ring))
	for i, pt := range ring {
		out[len(ring)-1-i] = pt
	}
	return out
}

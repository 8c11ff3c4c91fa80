package domain

import (
	"strconv"
	"time"
)

// PlanOptions are the recognized settings on the rendering entry point.
type PlanOptions struct {
	Units         string  // unit token of the source range values
	AxisUnits     string  // unit token used for labels
	LabelRounding int     // decimal places in labels
	ContourWidth  float64 // outline width; 0 disables outlines
	Alpha         float64 // fill opacity in [0, 1]
	BufferRatio   float64 // extent padding ratio
}

// RegionRecord is one draw instruction for the vector canvas: a compound
// path, a color-scale sample, and its style attributes.
type RegionRecord struct {
	Path          CompoundPath
	FillIntensity float64
	Label         string
	Opacity       float64
	LineWidth     float64
}

// RenderPlan is the full set of draw instructions for one isoline set.
type RenderPlan struct {
	Regions     []RegionRecord
	Extent      Extent
	AxisUnit    Unit
	GeneratedAt time.Time
}

// BuildPlan validates and converts units, builds the annulus regions,
// sizes the viewport, and labels each region with the half-open numeric
// interval it covers.
func BuildPlan(set IsolineSet, opts PlanOptions) (*RenderPlan, error) {
	srcUnit, axisUnit, err := ValidatePair(opts.Units, opts.AxisUnits)
	if err != nil {
		return nil, err
	}
	converted := ConvertValues(set.Values(), srcUnit, axisUnit)

	rings := set.Rings()
	regions, err := BuildAnnuli(rings)
	if err != nil {
		return nil, err
	}
	extent, err := ComputeExtent(rings, opts.BufferRatio)
	if err != nil {
		return nil, err
	}

	records := make([]RegionRecord, len(regions))
	for i, region := range regions {
		lo := 0.0
		if i > 0 {
			lo = converted[i-1]
		}
		records[i] = RegionRecord{
			Path:          region.Path(),
			FillIntensity: region.FillIntensity,
			Label:         formatInterval(lo, converted[i], opts.LabelRounding, axisUnit),
			Opacity:       opts.Alpha,
			LineWidth:     opts.ContourWidth,
		}
	}

	return &RenderPlan{
		Regions:     records,
		Extent:      extent,
		AxisUnit:    axisUnit,
		GeneratedAt: clock.Now(),
	}, nil
}

// formatInterval renders "<lo>-<hi> <unit>" with fixed decimal rounding.
func formatInterval(lo, hi float64, decimals int, unit Unit) string {
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(lo, 'f', decimals, 64) +
		"-" + strconv.FormatFloat(hi, 'f', decimals, 64) +
		" " + unit.Token
}

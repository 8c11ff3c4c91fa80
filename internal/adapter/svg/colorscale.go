package svg

import "github.com/lucasb-eyer/go-colorful"

// ColorScale maps a fill intensity in [0, 1] to a color.
type ColorScale interface {
	At(t float64) colorful.Color
}

// GradientScale interpolates between anchor colors placed along [0, 1].
type GradientScale struct {
	keypoints []gradientKeypoint
}

type gradientKeypoint struct {
	col colorful.Color
	pos float64
}

// Viridis returns the default perceptually uniform scale, sampled at nine
// anchor points.
func Viridis() *GradientScale {
	return &GradientScale{keypoints: []gradientKeypoint{
		{mustHex("#440154"), 0.000},
		{mustHex("#46327e"), 0.125},
		{mustHex("#365c8d"), 0.250},
		{mustHex("#277f8e"), 0.375},
		{mustHex("#1fa187"), 0.500},
		{mustHex("#4ac16d"), 0.625},
		{mustHex("#a0da39"), 0.750},
		{mustHex("#d0e11c"), 0.875},
		{mustHex("#fde725"), 1.000},
	}}
}

// At blends between the flanking keypoints in CIE-Luv space. Inputs
// outside [0, 1] clamp to the end colors.
func (g *GradientScale) At(t float64) colorful.Color {
	if t <= g.keypoints[0].pos {
		return g.keypoints[0].col
	}
	for i := 0; i < len(g.keypoints)-1; i++ {
		a, b := g.keypoints[i], g.keypoints[i+1]
		if t <= b.pos {
			frac := (t - a.pos) / (b.pos - a.pos)
			return a.col.BlendLuv(b.col, frac).Clamped()
		}
	}
	return g.keypoints[len(g.keypoints)-1].col
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

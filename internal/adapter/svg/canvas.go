// Package svg renders isochrone plans to standalone SVG documents.
package svg

import (
	"bytes"
	"fmt"
	"strings"

	svgo "github.com/ajstarks/svgo"

	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/domain"
)

// Canvas draws a render plan onto a fixed-size SVG surface.
type Canvas struct {
	width  int
	height int
	scale  ColorScale
}

// NewCanvas builds a canvas with the given pixel dimensions. A nil scale
// falls back to the viridis gradient.
func NewCanvas(width, height int, scale ColorScale) *Canvas {
	if scale == nil {
		scale = Viridis()
	}
	return &Canvas{width: width, height: height, scale: scale}
}

// viewport converts geographic coordinates into pixel coordinates. The
// y axis flips so that larger latitudes sit higher on the canvas.
type viewport struct {
	lonMin, lonMax float64
	latMin, latMax float64
	width, height  int
}

func (v viewport) toPixel(lon, lat float64) (float64, float64) {
	x := (lon - v.lonMin) / (v.lonMax - v.lonMin) * float64(v.width)
	y := (1 - (lat-v.latMin)/(v.latMax-v.latMin)) * float64(v.height)
	return x, y
}

// Render writes the plan as an SVG document. A nil bar skips the scale
// bar overlay.
func (c *Canvas) Render(plan *domain.RenderPlan, bar *domain.ScaleBarSpec) ([]byte, error) {
	if plan == nil || len(plan.Regions) == 0 {
		return nil, &domain.EmptyInputError{Op: "render"}
	}

	vp := viewport{
		lonMin: plan.Extent.Bottom, lonMax: plan.Extent.Top,
		latMin: plan.Extent.Left, latMax: plan.Extent.Right,
		width: c.width, height: c.height,
	}

	var buf bytes.Buffer
	doc := svgo.New(&buf)
	doc.Start(c.width, c.height)
	doc.Rect(0, 0, c.width, c.height, "fill:white")

	for _, region := range plan.Regions {
		col := c.scale.At(region.FillIntensity)
		style := fmt.Sprintf("fill:%s;fill-opacity:%.3f", col.Hex(), region.Opacity)
		if region.LineWidth > 0 {
			style += fmt.Sprintf(";stroke:%s;stroke-width:%.2f", col.Hex(), region.LineWidth)
		} else {
			style += ";stroke:none"
		}
		doc.Path(pathData(region.Path, vp), style, `fill-rule="evenodd"`)
	}

	c.drawLegend(doc, plan)
	if bar != nil {
		c.drawScaleBar(doc, vp, bar)
	}

	doc.End()
	return buf.Bytes(), nil
}

// pathData serializes a compound path as SVG path commands, closing each
// subpath before the next one starts.
func pathData(path domain.CompoundPath, vp viewport) string {
	var sb strings.Builder
	for i, verb := range path.Verbs {
		pt := path.Points[i]
		x, y := vp.toPixel(pt[0], pt[1])
		switch verb {
		case domain.MoveTo:
			if i > 0 {
				sb.WriteString("Z ")
			}
			fmt.Fprintf(&sb, "M %.2f %.2f ", x, y)
		case domain.LineTo:
			fmt.Fprintf(&sb, "L %.2f %.2f ", x, y)
		}
	}
	sb.WriteString("Z")
	return sb.String()
}

func (c *Canvas) drawLegend(doc *svgo.SVG, plan *domain.RenderPlan) {
	const (
		swatch  = 14
		pad     = 6
		textOff = 4
	)
	x := pad
	y := pad
	for _, region := range plan.Regions {
		col := c.scale.At(region.FillIntensity)
		doc.Rect(x, y, swatch, swatch,
			fmt.Sprintf("fill:%s;stroke:#333;stroke-width:0.5", col.Hex()))
		doc.Text(x+swatch+pad, y+swatch-textOff, region.Label,
			"font-family:sans-serif;font-size:11px;fill:#222")
		y += swatch + pad
	}
}

// drawScaleBar maps the bar's metric frame onto the pixel viewport and
// draws the bar with its length label.
func (c *Canvas) drawScaleBar(doc *svgo.SVG, vp viewport, bar *domain.ScaleBarSpec) {
	frameW := bar.Frame.X1 - bar.Frame.X0
	frameH := bar.Frame.Y1 - bar.Frame.Y0
	if frameW == 0 || frameH == 0 {
		return
	}
	toPx := func(mx, my float64) (int, int) {
		x := (mx - bar.Frame.X0) / frameW * float64(vp.width)
		y := (1 - (my-bar.Frame.Y0)/frameH) * float64(vp.height)
		return int(x), int(y)
	}
	x0, y0 := toPx(bar.X0, bar.Y0)
	x1, y1 := toPx(bar.X1, bar.Y1)

	const tick = 5
	doc.Line(x0, y0, x1, y1, "stroke:#111;stroke-width:2")
	doc.Line(x0, y0-tick, x0, y0+tick, "stroke:#111;stroke-width:2")
	doc.Line(x1, y1-tick, x1, y1+tick, "stroke:#111;stroke-width:2")
	doc.Text((x0+x1)/2, y0-2*tick,
		bar.Label, "font-family:sans-serif;font-size:11px;fill:#111;text-anchor:middle")
}

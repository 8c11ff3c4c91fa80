package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Deyika/Isochrones-with-HERE-and-python/internal/domain"
)

func squareRing(half float64) domain.Ring {
	return domain.Ring{
		{-half, -half}, {half, -half}, {half, half}, {-half, half}, {-half, -half},
	}
}

func testPlan(t *testing.T) *domain.RenderPlan {
	t.Helper()
	regions, err := domain.BuildAnnuli([]domain.Ring{squareRing(1), squareRing(2)})
	require.NoError(t, err)

	extent, err := domain.ComputeExtent([]domain.Ring{squareRing(2)}, 0.1)
	require.NoError(t, err)

	plan := &domain.RenderPlan{Extent: extent, AxisUnit: domain.Minutes}
	labels := []string{"0.0-10.0 minutes", "10.0-20.0 minutes"}
	for i, region := range regions {
		plan.Regions = append(plan.Regions, domain.RegionRecord{
			Path:          region.Path(),
			FillIntensity: region.FillIntensity,
			Label:         labels[i],
			Opacity:       0.3,
		})
	}
	return plan
}

func TestCanvasRender(t *testing.T) {
	canvas := NewCanvas(640, 480, nil)

	out, err := canvas.Render(testPlan(t), nil)
	require.NoError(t, err)

	doc := string(out)
	assert.Contains(t, doc, `width="640"`)
	assert.Contains(t, doc, "<path")
	assert.Contains(t, doc, "fill-opacity:0.300")
	assert.Contains(t, doc, `fill-rule="evenodd"`)
	assert.Contains(t, doc, "0.0-10.0 minutes")
	assert.Contains(t, doc, "10.0-20.0 minutes")
	assert.Contains(t, doc, "</svg>")
}

func TestCanvasRenderScaleBar(t *testing.T) {
	canvas := NewCanvas(640, 480, Viridis())

	bar := &domain.ScaleBarSpec{
		LengthKm: 2,
		X0:       -1000, Y0: 500, X1: 1000, Y1: 500,
		Label: "2 km",
		Frame: domain.MetricViewport{X0: -5000, X1: 5000, Y0: -4000, Y1: 4000},
	}
	out, err := canvas.Render(testPlan(t), bar)
	require.NoError(t, err)

	doc := string(out)
	assert.Contains(t, doc, "2 km")
	assert.Contains(t, doc, "<line")
}

func TestCanvasRenderEmptyPlan(t *testing.T) {
	canvas := NewCanvas(640, 480, nil)

	_, err := canvas.Render(&domain.RenderPlan{}, nil)
	var emptyErr *domain.EmptyInputError
	assert.ErrorAs(t, err, &emptyErr)
}

func TestCanvasRenderStroke(t *testing.T) {
	plan := testPlan(t)
	for i := range plan.Regions {
		plan.Regions[i].LineWidth = 1.5
	}
	canvas := NewCanvas(640, 480, nil)

	out, err := canvas.Render(plan, nil)
	require.NoError(t, err)
	assert.Contains(t, string(out), "stroke-width:1.50")
}

func TestViridisEndpoints(t *testing.T) {
	scale := Viridis()
	assert.Equal(t, "#440154", scale.At(0).Hex())
	assert.Equal(t, "#fde725", scale.At(1).Hex())
	assert.Equal(t, "#440154", scale.At(-0.5).Hex())
	assert.Equal(t, "#fde725", scale.At(1.5).Hex())

	mid := scale.At(0.5)
	assert.Equal(t, "#1fa187", mid.Hex())
}

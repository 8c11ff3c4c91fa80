package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// square returns an axis-aligned square ring centered on the origin.
func square(halfSide float64) Ring {
	return Ring{
		{-halfSide, -halfSide},
		{halfSide, -halfSide},
		{halfSide, halfSide},
		{-halfSide, halfSide},
	}
}

func TestBuildAnnuli(t *testing.T) {
	t.Run("one region per ring", func(t *testing.T) {
		rings := []Ring{square(1), square(2), square(3)}
		regions, err := BuildAnnuli(rings)
		require.NoError(t, err)
		require.Len(t, regions, 3)

		assert.Nil(t, regions[0].Inner)
		assert.Equal(t, rings[0], regions[0].Outer)
		for i := 1; i < len(regions); i++ {
			assert.Equal(t, rings[i], regions[i].Outer)
			require.Len(t, regions[i].Inner, len(rings[i-1]))
		}
	})

	t.Run("inner boundary is the previous ring reversed", func(t *testing.T) {
		inner := square(1)
		regions, err := BuildAnnuli([]Ring{inner, square(2)})
		require.NoError(t, err)

		got := regions[1].Inner
		require.Len(t, got, len(inner))
		for i, pt := range inner {
			assert.Equal(t, pt, got[len(inner)-1-i])
		}
	})

	t.Run("fill intensities follow 1-(i+0.5)/n", func(t *testing.T) {
		regions, err := BuildAnnuli([]Ring{square(1), square(2), square(3), square(4)})
		require.NoError(t, err)

		want := []float64{0.875, 0.625, 0.375, 0.125}
		for i, region := range regions {
			assert.InDelta(t, want[i], region.FillIntensity, 1e-12)
		}
	})

	t.Run("single ring", func(t *testing.T) {
		regions, err := BuildAnnuli([]Ring{square(1)})
		require.NoError(t, err)
		require.Len(t, regions, 1)
		assert.Nil(t, regions[0].Inner)
		assert.InDelta(t, 0.5, regions[0].FillIntensity, 1e-12)
	})

	t.Run("no rings", func(t *testing.T) {
		_, err := BuildAnnuli(nil)
		var insufficient *InsufficientRingsError
		require.ErrorAs(t, err, &insufficient)
	})

	t.Run("non-nested rings rejected", func(t *testing.T) {
		disjoint := Ring{{10, 10}, {11, 10}, {11, 11}, {10, 11}}
		_, err := BuildAnnuli([]Ring{square(1), disjoint})
		var nonNested *NonNestedRingsError
		require.ErrorAs(t, err, &nonNested)
		assert.Equal(t, 1, nonNested.Index)
	})
}

func TestAnnulusRegionPath(t *testing.T) {
	t.Run("simple region", func(t *testing.T) {
		region := AnnulusRegion{Outer: square(1)}
		path := region.Path()

		require.Len(t, path.Points, 4)
		require.Len(t, path.Verbs, 4)
		assert.Equal(t, MoveTo, path.Verbs[0])
		for _, v := range path.Verbs[1:] {
			assert.Equal(t, LineTo, v)
		}
	})

	t.Run("compound region restarts the move marker", func(t *testing.T) {
		outer, inner := square(2), square(1)
		regions, err := BuildAnnuli([]Ring{inner, outer})
		require.NoError(t, err)

		path := regions[1].Path()
		require.Len(t, path.Points, len(outer)+len(inner))

		// One MoveTo per boundary so the two sub-boundaries are never
		// joined by a segment.
		assert.Equal(t, MoveTo, path.Verbs[0])
		assert.Equal(t, MoveTo, path.Verbs[len(outer)])
		moves := 0
		for _, v := range path.Verbs {
			if v == MoveTo {
				moves++
			}
		}
		assert.Equal(t, 2, moves)

		// Outer points first in natural order, then the reversed inner.
		assert.Equal(t, outer[0], path.Points[0])
		assert.Equal(t, inner[len(inner)-1], path.Points[len(outer)])
	})
}

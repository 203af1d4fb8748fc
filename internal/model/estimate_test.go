package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRegion_Empty(t *testing.T) {
	est := EstimateRegion(nil, 10, 15)

	assert.Zero(t, est.ItemCount)
	assert.Zero(t, est.SuggestedWidth)
	assert.Zero(t, est.Utilization)
}

func TestEstimateRegion_SquareSuggestion(t *testing.T) {
	items := []Item{
		{Width: 100, Height: 100},
		{Width: 100, Height: 100},
	}

	est := EstimateRegion(items, 0, 0)

	require.Equal(t, 2, est.ItemCount)
	assert.Equal(t, 20000.0, est.TotalItemArea)
	assert.Equal(t, 20000.0, est.TotalPaddedArea)
	expected := math.Sqrt(20000.0)
	assert.InDelta(t, expected, est.SuggestedWidth, 0.001)
	assert.InDelta(t, expected, est.SuggestedHeight, 0.001)
	assert.InDelta(t, 100.0, est.Utilization, 0.001)
}

func TestEstimateRegion_SpacingAndWaste(t *testing.T) {
	items := []Item{{Width: 90, Height: 40}}

	est := EstimateRegion(items, 10, 20)

	assert.Equal(t, 3600.0, est.TotalItemArea)
	assert.Equal(t, 5000.0, est.TotalPaddedArea)
	// side = sqrt(6000) ~ 77.46, but the padded footprint is 100x50 so the
	// width axis is floored at 100.
	assert.Equal(t, 100.0, est.SuggestedWidth)
	assert.InDelta(t, math.Sqrt(5000.0*1.2), est.SuggestedHeight, 0.001)
	assert.Equal(t, 20.0, est.WastePercent)
}

func TestEstimateRegion_WideItemStretchesAxis(t *testing.T) {
	// A single long strip: the suggestion must be at least as wide as the
	// item footprint even though the square side would be much smaller.
	items := []Item{{Width: 2000, Height: 10}}

	est := EstimateRegion(items, 0, 0)

	assert.Equal(t, 2000.0, est.SuggestedWidth)
	assert.Less(t, est.SuggestedHeight, 2000.0)
	assert.GreaterOrEqual(t, est.SuggestedHeight, 10.0)
}

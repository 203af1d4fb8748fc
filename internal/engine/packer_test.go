package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsert_FirstItemAtOrigin(t *testing.T) {
	gp := NewGuillotinePacker(1000, 1000, 0)

	x, y, ok := gp.Insert(100, 50)

	require.True(t, ok)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestInsert_SplitGeometry(t *testing.T) {
	gp := NewGuillotinePacker(100, 100, 0)

	_, _, ok := gp.Insert(40, 30)
	require.True(t, ok)

	// Guillotine cut: right remainder spans the full height, bottom
	// remainder spans the footprint width.
	require.Len(t, gp.freeRects, 2)
	assert.Equal(t, rect{x: 40, y: 0, w: 60, h: 100}, gp.freeRects[0])
	assert.Equal(t, rect{x: 0, y: 30, w: 40, h: 70}, gp.freeRects[1])
}

func TestInsert_ExactFitLeavesNoRemainders(t *testing.T) {
	gp := NewGuillotinePacker(100, 100, 0)

	_, _, ok := gp.Insert(100, 100)
	require.True(t, ok)
	assert.Empty(t, gp.freeRects)
}

func TestInsert_BestShortSideFit(t *testing.T) {
	// Two free rects: a roomy one and a tight one. BSSF must pick the rect
	// with the smaller leftover on its short side.
	gp := &GuillotinePacker{
		freeRects: []rect{
			{x: 0, y: 0, w: 100, h: 100},  // short-side leftover 70
			{x: 100, y: 0, w: 35, h: 40},  // short-side leftover 5
		},
	}

	x, y, ok := gp.Insert(30, 30)

	require.True(t, ok)
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 0.0, y)
}

func TestInsert_TieBreakFirstCandidate(t *testing.T) {
	gp := &GuillotinePacker{
		freeRects: []rect{
			{x: 0, y: 0, w: 50, h: 50},
			{x: 200, y: 0, w: 50, h: 50},
		},
	}

	x, _, ok := gp.Insert(40, 40)

	require.True(t, ok)
	assert.Equal(t, 0.0, x, "equal scores should keep the first candidate")
}

func TestInsert_NoFitLeavesStateUntouched(t *testing.T) {
	gp := NewGuillotinePacker(100, 100, 0)
	before := make([]rect, len(gp.freeRects))
	copy(before, gp.freeRects)

	_, _, ok := gp.Insert(200, 50)

	assert.False(t, ok)
	assert.Equal(t, before, gp.freeRects)
}

func TestInsert_SpacingPadsFootprint(t *testing.T) {
	gp := NewGuillotinePacker(100, 100, 10)

	// 95+10 exceeds the region, 90+10 fits exactly
	_, _, ok := gp.Insert(95, 95)
	assert.False(t, ok)

	x, y, ok := gp.Insert(90, 90)
	require.True(t, ok)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestInsert_SubsequentItemGoesToRemainder(t *testing.T) {
	gp := NewGuillotinePacker(100, 100, 0)

	_, _, ok := gp.Insert(60, 100)
	require.True(t, ok)

	x, y, ok := gp.Insert(10, 10)
	require.True(t, ok)
	assert.Equal(t, 60.0, x)
	assert.Equal(t, 0.0, y)
}

func TestPruneContained(t *testing.T) {
	rects := []rect{
		{x: 0, y: 0, w: 100, h: 100},
		{x: 10, y: 10, w: 20, h: 20}, // inside the first
		{x: 150, y: 0, w: 50, h: 50},
	}

	kept := pruneContained(rects)

	require.Len(t, kept, 2)
	assert.Equal(t, rects[0], kept[0])
	assert.Equal(t, rects[2], kept[1])
}

func TestContainsRect(t *testing.T) {
	outer := rect{x: 0, y: 0, w: 100, h: 100}

	assert.True(t, containsRect(outer, rect{x: 10, y: 10, w: 50, h: 50}))
	assert.True(t, containsRect(outer, outer))
	assert.False(t, containsRect(outer, rect{x: 90, y: 90, w: 20, h: 20}))
}

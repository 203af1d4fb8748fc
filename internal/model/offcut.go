package model

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Offcut represents a usable rectangular remnant of the region left over
// after nesting.
type Offcut struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the area of the offcut in square units.
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// MinOffcutDimension is the minimum width or height for a remnant to be
// considered a usable offcut. Remnants smaller than this are waste.
const MinOffcutDimension = 50.0

// MinOffcutArea is the minimum area for a remnant to be considered usable.
const MinOffcutArea = 10000.0

// DetectOffcuts analyzes a nest result and identifies rectangular remnant
// areas of the final region that are large enough to be reused. It looks at
// the strips to the right of and below all placed items.
func DetectOffcuts(result NestResult, spacing float64) []Offcut {
	regionW := result.Region.Width
	regionH := result.Region.Height

	if len(result.Placements) == 0 {
		if regionW <= 0 || regionH <= 0 {
			return nil
		}
		return []Offcut{{
			ID:     uuid.New().String()[:8],
			X:      0,
			Y:      0,
			Width:  regionW,
			Height: regionH,
		}}
	}

	// Bounding box of all placed footprints, spacing included
	var maxRight, maxBottom float64
	for _, p := range result.Placements {
		right := p.X + p.Width + spacing
		bottom := p.Y + p.Height + spacing
		if right > maxRight {
			maxRight = right
		}
		if bottom > maxBottom {
			maxBottom = bottom
		}
	}

	var offcuts []Offcut

	// Right strip: area to the right of all items, full region height
	rightStripW := regionW - maxRight
	if rightStripW >= MinOffcutDimension && regionH >= MinOffcutDimension && rightStripW*regionH >= MinOffcutArea {
		offcuts = append(offcuts, Offcut{
			ID:     uuid.New().String()[:8],
			X:      maxRight,
			Y:      0,
			Width:  rightStripW,
			Height: regionH,
		})
	}

	// Bottom strip: area below all items, up to the items' right edge so it
	// does not overlap the right strip
	bottomStripH := regionH - maxBottom
	usableBottomW := math.Min(maxRight, regionW)
	if bottomStripH >= MinOffcutDimension && usableBottomW >= MinOffcutDimension && bottomStripH*usableBottomW >= MinOffcutArea {
		offcuts = append(offcuts, Offcut{
			ID:     uuid.New().String()[:8],
			X:      0,
			Y:      maxBottom,
			Width:  usableBottomW,
			Height: bottomStripH,
		})
	}

	// Sort by area descending (largest offcuts first)
	sort.Slice(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})

	return offcuts
}

// TotalOffcutArea returns the total area of all offcuts in square units.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}

// Package engine implements the 2D rectangle nesting algorithm: a guillotine
// free-rectangle packer for a fixed-size region, and a nesting engine that
// orchestrates sorting, rotation and region expansion on top of it.
package engine

import "math"

// eps is the tolerance used for all geometric comparisons.
const eps = 0.001

// rect is an axis-aligned rectangle in the region's local frame.
type rect struct {
	x, y, w, h float64
}

// FreeSpaceIndex tracks the unallocated area of one fixed-size region and
// answers single-footprint placement queries. The guillotine free-rect list
// is the default implementation; a stricter maximal-rectangles index can be
// swapped in without touching the engine.
type FreeSpaceIndex interface {
	// Insert reserves a w x h item footprint and returns its top-left
	// corner. ok is false when the footprint fits nowhere; the index is
	// unchanged in that case.
	Insert(w, h float64) (x, y float64, ok bool)
}

// GuillotinePacker maintains the free area of one fixed-size region as a
// list of free rectangles. On every successful insert the chosen rectangle
// is split along the two edges of the placed footprint (the guillotine cut)
// and rectangles wholly contained in another are pruned. Free rectangles may
// overlap; the search re-validates fit against every candidate on each
// insert, so overlap costs efficiency, not correctness.
type GuillotinePacker struct {
	freeRects []rect
	spacing   float64
}

var _ FreeSpaceIndex = (*GuillotinePacker)(nil)

// NewGuillotinePacker creates a packer for a width x height region. Spacing
// is the uniform margin added to each item footprint on insertion.
func NewGuillotinePacker(width, height, spacing float64) *GuillotinePacker {
	return &GuillotinePacker{
		freeRects: []rect{{0, 0, width, height}},
		spacing:   spacing,
	}
}

// Insert tries to place an item of the given raw dimensions. The effective
// footprint is padded by the spacing margin. Free rectangles are scored by
// Best Short Side Fit: the candidate with the smallest leftover on its
// shorter side wins, first candidate winning ties.
func (gp *GuillotinePacker) Insert(w, h float64) (float64, float64, bool) {
	fw := w + gp.spacing
	fh := h + gp.spacing

	bestIdx := -1
	bestScore := 0.0
	for i, r := range gp.freeRects {
		if fw <= r.w+eps && fh <= r.h+eps {
			score := math.Min(r.w-fw, r.h-fh)
			if bestIdx < 0 || score < bestScore {
				bestIdx = i
				bestScore = score
			}
		}
	}

	if bestIdx < 0 {
		return 0, 0, false
	}

	chosen := gp.freeRects[bestIdx]
	gp.split(bestIdx, fw, fh)
	return chosen.x, chosen.y, true
}

// split replaces the free rectangle at idx with the guillotine remainders of
// placing a fw x fh footprint in its top-left corner: a right remainder
// spanning the full height, and a bottom remainder spanning the footprint
// width. Degenerate remainders are dropped, then contained rects are pruned.
func (gp *GuillotinePacker) split(idx int, fw, fh float64) {
	chosen := gp.freeRects[idx]
	gp.freeRects = append(gp.freeRects[:idx], gp.freeRects[idx+1:]...)

	if chosen.w-fw > eps {
		gp.freeRects = append(gp.freeRects, rect{
			x: chosen.x + fw,
			y: chosen.y,
			w: chosen.w - fw,
			h: chosen.h,
		})
	}
	if chosen.h-fh > eps {
		gp.freeRects = append(gp.freeRects, rect{
			x: chosen.x,
			y: chosen.y + fh,
			w: fw,
			h: chosen.h - fh,
		})
	}

	gp.freeRects = pruneContained(gp.freeRects)
}

// pruneContained removes any rect that is fully contained within another.
// This bounds the growth of the free list; it does not reclaim geometric
// unions of partially overlapping rects.
func pruneContained(rects []rect) []rect {
	if len(rects) <= 1 {
		return rects
	}
	kept := make([]rect, 0, len(rects))
	for i, a := range rects {
		contained := false
		for j, b := range rects {
			if i != j && containsRect(b, a) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

// containsRect returns true if outer fully contains inner.
func containsRect(outer, inner rect) bool {
	return outer.x <= inner.x+eps && outer.y <= inner.y+eps &&
		outer.x+outer.w >= inner.x+inner.w-eps &&
		outer.y+outer.h >= inner.y+inner.h-eps
}

package engine

import (
	"math"
	"sort"

	"github.com/nestcut/nestcut/internal/model"
)

// ExpandMargin is the fixed slack added around the placement bounding box
// when the region grows after a failed attempt.
const ExpandMargin = 100.0

// Engine nests items into a single growable region.
type Engine struct {
	Settings model.NestSettings
}

func New(settings model.NestSettings) *Engine {
	return &Engine{Settings: settings}
}

// Nest places as many items as possible into the target region, growing the
// region and retrying from scratch while anything is left over. Retries are
// an iterative loop bounded by MaxAttempts and MaxDimension, so pathological
// inputs terminate. Placements come back in placement order (area-descending
// for the greedy algorithm), not input order; items that still do not fit
// when growth is exhausted are reported in UnplacedIDs.
func (e *Engine) Nest(items []model.Item) (model.NestResult, error) {
	if err := e.Settings.Validate(); err != nil {
		return model.NestResult{}, err
	}
	if len(items) == 0 {
		return model.NestResult{}, nil
	}

	curW := e.Settings.TargetWidth
	curH := e.Settings.TargetHeight

	var attempt int
	for {
		attempt++

		var placements []model.Placement
		var unplaced []model.Item
		if e.Settings.Algorithm == model.AlgorithmGenetic {
			placements, unplaced = nestGenetic(e.Settings, items, curW, curH)
		} else {
			placements, unplaced = nestGreedy(e.Settings, items, curW, curH)
		}

		if len(unplaced) == 0 || attempt >= e.Settings.MaxAttempts {
			return buildResult(placements, unplaced, curW, curH, attempt), nil
		}

		nextW, nextH, grown := e.expand(placements, unplaced, curW, curH)
		if !grown {
			return buildResult(placements, unplaced, curW, curH, attempt), nil
		}
		curW, curH = nextW, nextH
	}
}

// nestGreedy packs items into one fixed-size region, largest area first.
// Each item is tried in its given orientation; when rotation is enabled and
// the item is not square, the swapped orientation is the fallback. A failed
// item leaves the packer untouched.
func nestGreedy(settings model.NestSettings, items []model.Item, regionW, regionH float64) ([]model.Placement, []model.Item) {
	sorted := make([]model.Item, len(items))
	copy(sorted, items)
	// Stable: equal areas keep input order
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Area() > sorted[j].Area()
	})

	packer := NewGuillotinePacker(regionW, regionH, settings.Spacing)

	var placements []model.Placement
	var unplaced []model.Item

	for _, it := range sorted {
		if p, ok := placeItem(packer, settings, it, false); ok {
			placements = append(placements, p)
		} else {
			unplaced = append(unplaced, it)
		}
	}
	return placements, unplaced
}

// placeItem attempts both orientations of one item against the packer.
// preferRotated flips the trial order; the fallback orientation is only
// tried when rotation is allowed and the item is not square.
func placeItem(packer *GuillotinePacker, settings model.NestSettings, it model.Item, preferRotated bool) (model.Placement, bool) {
	canRotate := settings.AllowRotation && it.Width != it.Height

	orientations := []bool{false}
	if canRotate {
		if preferRotated {
			orientations = []bool{true, false}
		} else {
			orientations = []bool{false, true}
		}
	}

	for _, rotated := range orientations {
		w, h := it.Width, it.Height
		if rotated {
			w, h = h, w
		}
		if x, y, ok := packer.Insert(w, h); ok {
			return model.Placement{
				ItemID:  it.ID,
				Label:   it.Label,
				X:       x,
				Y:       y,
				Width:   w,
				Height:  h,
				Rotated: rotated,
				Payload: it.Payload,
			}, true
		}
	}
	return model.Placement{}, false
}

// expand computes the next region size after a failed attempt. The region
// grows to the placement bounding box plus the fixed margin; when that
// formula stalls (always the case when nothing was placed) it is forced
// forward by the largest unplaced footprint instead, so expansion happens
// whenever anything is left over. Growth is clamped by MaxDimension; grown
// is false when the clamp leaves both axes unchanged, which ends the retry
// loop.
func (e *Engine) expand(placements []model.Placement, unplaced []model.Item, curW, curH float64) (float64, float64, bool) {
	var boundW, boundH float64
	for _, p := range placements {
		if r := p.X + p.Width + e.Settings.Spacing; r > boundW {
			boundW = r
		}
		if b := p.Y + p.Height + e.Settings.Spacing; b > boundH {
			boundH = b
		}
	}

	nextW := math.Max(curW, boundW+ExpandMargin)
	nextH := math.Max(curH, boundH+ExpandMargin)

	if nextW <= curW+eps && nextH <= curH+eps {
		var footW, footH float64
		for _, it := range unplaced {
			if fw := it.Width + e.Settings.Spacing; fw > footW {
				footW = fw
			}
			if fh := it.Height + e.Settings.Spacing; fh > footH {
				footH = fh
			}
		}
		nextW = curW + footW + ExpandMargin
		nextH = curH + footH + ExpandMargin
	}

	nextW = math.Min(nextW, e.Settings.MaxDimension)
	nextH = math.Min(nextH, e.Settings.MaxDimension)

	grown := nextW > curW+eps || nextH > curH+eps
	return nextW, nextH, grown
}

func buildResult(placements []model.Placement, unplaced []model.Item, regionW, regionH float64, attempts int) model.NestResult {
	result := model.NestResult{
		Placements: placements,
		Region:     model.Region{Width: regionW, Height: regionH},
		Attempts:   attempts,
	}
	for _, it := range unplaced {
		result.UnplacedIDs = append(result.UnplacedIDs, it.ID)
	}
	return result
}

package model

import "math"

// RegionEstimate holds the results of a pre-nest region sizing calculation.
type RegionEstimate struct {
	ItemCount       int     `json:"item_count"`
	TotalItemArea   float64 `json:"total_item_area"`   // Sum of raw item areas
	TotalPaddedArea float64 `json:"total_padded_area"` // Sum of spacing-padded footprints
	SuggestedWidth  float64 `json:"suggested_width"`   // Recommended initial region width
	SuggestedHeight float64 `json:"suggested_height"`  // Recommended initial region height
	WastePercent    float64 `json:"waste_percent"`     // Waste factor applied (e.g. 15 for 15%)
	Utilization     float64 `json:"utilization"`       // Forecast item coverage of the suggested region, percent
}

// EstimateRegion computes a suggested initial target region for a set of
// items. Each item is padded by the spacing margin, the total is inflated by
// the waste factor, and the suggestion is the smallest square that covers it.
// Both axes are widened as needed so the largest single footprint fits
// without any expansion round.
func EstimateRegion(items []Item, spacing, wastePercent float64) RegionEstimate {
	est := RegionEstimate{
		ItemCount:    len(items),
		WastePercent: wastePercent,
	}
	if len(items) == 0 {
		return est
	}

	var maxFootW, maxFootH float64
	for _, it := range items {
		est.TotalItemArea += it.Area()
		fw := it.Width + spacing
		fh := it.Height + spacing
		est.TotalPaddedArea += fw * fh
		if fw > maxFootW {
			maxFootW = fw
		}
		if fh > maxFootH {
			maxFootH = fh
		}
	}

	wasteFactor := 1.0 + wastePercent/100.0
	side := math.Sqrt(est.TotalPaddedArea * wasteFactor)

	est.SuggestedWidth = math.Max(side, maxFootW)
	est.SuggestedHeight = math.Max(side, maxFootH)

	suggested := est.SuggestedWidth * est.SuggestedHeight
	if suggested > 0 {
		est.Utilization = (est.TotalItemArea / suggested) * 100.0
	}
	return est
}

package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Item represents a single rectangle to be nested. Width and height are
// caller-defined units; the engine never converts them. Payload is opaque
// caller data carried through to the resulting placement untouched.
type Item struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Payload any     `json:"payload,omitempty"`
}

func NewItem(label string, w, h float64) Item {
	return Item{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Width:  w,
		Height: h,
	}
}

// Area returns the item area in square units.
func (it Item) Area() float64 {
	return it.Width * it.Height
}

// Algorithm represents the nesting algorithm to use.
type Algorithm string

const (
	AlgorithmGreedy  Algorithm = "greedy"  // Area-descending greedy heuristic (fast)
	AlgorithmGenetic Algorithm = "genetic" // Genetic order search (slower, often tighter)
)

// NestSettings holds engine configuration.
type NestSettings struct {
	TargetWidth   float64   `json:"target_width"`   // Initial region width
	TargetHeight  float64   `json:"target_height"`  // Initial region height
	Spacing       float64   `json:"spacing"`        // Uniform gap reserved around each placed item
	AllowRotation bool      `json:"allow_rotation"` // Enable the single 90-degree rotation fallback
	Algorithm     Algorithm `json:"algorithm"`      // Nesting algorithm: "greedy" or "genetic"
	MaxAttempts   int       `json:"max_attempts"`   // Upper bound on region expansion rounds
	MaxDimension  float64   `json:"max_dimension"`  // Upper bound on either region axis
}

func DefaultSettings() NestSettings {
	return NestSettings{
		TargetWidth:   1000,
		TargetHeight:  1000,
		Spacing:       10,
		AllowRotation: false,
		Algorithm:     AlgorithmGreedy,
		MaxAttempts:   16,
		MaxDimension:  100000,
	}
}

// Validate checks the settings for values that would produce nonsensical
// geometry or an unbounded expansion loop.
func (s NestSettings) Validate() error {
	if s.TargetWidth <= 0 || s.TargetHeight <= 0 {
		return fmt.Errorf("target region must be positive, got %.2f x %.2f", s.TargetWidth, s.TargetHeight)
	}
	if s.Spacing < 0 {
		return fmt.Errorf("spacing must not be negative, got %.2f", s.Spacing)
	}
	if s.MaxAttempts < 1 {
		return fmt.Errorf("max attempts must be at least 1, got %d", s.MaxAttempts)
	}
	if s.MaxDimension < s.TargetWidth || s.MaxDimension < s.TargetHeight {
		return fmt.Errorf("max dimension %.2f is smaller than the initial target region", s.MaxDimension)
	}
	switch s.Algorithm {
	case AlgorithmGreedy, AlgorithmGenetic, "":
	default:
		return fmt.Errorf("unknown algorithm %q", s.Algorithm)
	}
	return nil
}

// Placement represents one item placed in the region. X and Y are the
// top-left corner in the region's local frame (origin top-left, y growing
// downward). Width and height are the as-placed item dimensions, swapped
// when rotated; spacing is never included in them, it only widens the gap
// the packer reserves between items.
type Placement struct {
	ItemID  string  `json:"item_id"`
	Label   string  `json:"label"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Rotated bool    `json:"rotated"`
	Payload any     `json:"payload,omitempty"`
}

// Region is the rectangular area a nest run packed into. It starts at the
// configured target size and may have grown through expansion.
type Region struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the region area in square units.
func (r Region) Area() float64 {
	return r.Width * r.Height
}

// NestResult holds the outcome of one nest run.
type NestResult struct {
	Placements  []Placement `json:"placements"`
	Region      Region      `json:"region"`
	Attempts    int         `json:"attempts"`
	UnplacedIDs []string    `json:"unplaced_ids,omitempty"`
}

// UsedArea returns the total area covered by placed items.
func (r NestResult) UsedArea() float64 {
	var total float64
	for _, p := range r.Placements {
		total += p.Width * p.Height
	}
	return total
}

// Efficiency returns the region usage percentage.
func (r NestResult) Efficiency() float64 {
	ra := r.Region.Area()
	if ra == 0 {
		return 0
	}
	return (r.UsedArea() / ra) * 100.0
}

// Project ties everything together for save/load.
type Project struct {
	Name     string       `json:"name"`
	Items    []Item       `json:"items"`
	Settings NestSettings `json:"settings"`
	Result   *NestResult  `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Items:    []Item{},
		Settings: DefaultSettings(),
	}
}

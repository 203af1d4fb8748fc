package engine

import (
	"fmt"

	"github.com/nestcut/nestcut/internal/model"
)

// Scenario defines a named set of settings to compare.
type Scenario struct {
	Name     string
	Settings model.NestSettings
}

// ScenarioResult holds the nest result and computed statistics for a single
// scenario.
type ScenarioResult struct {
	Scenario      Scenario
	Result        model.NestResult
	PlacedCount   int
	WastePercent  float64
	UnplacedCount int
}

// CompareScenarios runs the engine for each scenario and returns the
// results in scenario order. This enables side-by-side comparison of
// different nesting parameters (spacing, rotation, algorithm).
func CompareScenarios(scenarios []Scenario, items []model.Item) ([]ScenarioResult, error) {
	results := make([]ScenarioResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := New(scenario.Settings).Nest(items)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		results = append(results, ScenarioResult{
			Scenario:      scenario,
			Result:        result,
			PlacedCount:   len(result.Placements),
			WastePercent:  100.0 - result.Efficiency(),
			UnplacedCount: len(result.UnplacedIDs),
		})
	}
	return results, nil
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.NestSettings) []Scenario {
	scenarios := []Scenario{
		{Name: "Current Settings", Settings: baseSettings},
	}

	// Scenario: toggle rotation
	altRotation := baseSettings
	altRotation.AllowRotation = !baseSettings.AllowRotation
	if altRotation.AllowRotation {
		scenarios = append(scenarios, Scenario{Name: "With Rotation", Settings: altRotation})
	} else {
		scenarios = append(scenarios, Scenario{Name: "Without Rotation", Settings: altRotation})
	}

	// Scenario: try the other algorithm
	altAlgo := baseSettings
	if baseSettings.Algorithm == model.AlgorithmGenetic {
		altAlgo.Algorithm = model.AlgorithmGreedy
		scenarios = append(scenarios, Scenario{Name: "Greedy Algorithm", Settings: altAlgo})
	} else {
		altAlgo.Algorithm = model.AlgorithmGenetic
		scenarios = append(scenarios, Scenario{Name: "Genetic Algorithm", Settings: altAlgo})
	}

	// Scenario: pack without spacing
	if baseSettings.Spacing > 0 {
		altSpacing := baseSettings
		altSpacing.Spacing = 0
		scenarios = append(scenarios, Scenario{Name: "No Spacing", Settings: altSpacing})
	}

	return scenarios
}

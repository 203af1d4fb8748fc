package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nestcut/nestcut/internal/engine"
	"github.com/nestcut/nestcut/internal/model"
)

// newCompareCmd creates the compare command, which runs the nest under
// several setting variations and reports the results side by side.
func newCompareCmd() *cobra.Command {
	var (
		width   float64
		height  float64
		spacing float64
		rotate  bool
	)

	defaults := model.DefaultSettings()

	cmd := &cobra.Command{
		Use:   "compare [file]",
		Short: "Compare nesting results across setting scenarios",
		Long:  `Compare imports an item list and nests it under several setting variations (rotation toggled, alternate algorithm, no spacing) so the trade-offs are visible at a glance.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := defaults
			settings.TargetWidth = width
			settings.TargetHeight = height
			settings.Spacing = spacing
			settings.AllowRotation = rotate
			return runCompare(cmd.Context(), args[0], settings)
		},
	}

	cmd.Flags().Float64VarP(&width, "width", "W", defaults.TargetWidth, "target region width in mm")
	cmd.Flags().Float64VarP(&height, "height", "H", defaults.TargetHeight, "target region height in mm")
	cmd.Flags().Float64VarP(&spacing, "spacing", "s", defaults.Spacing, "spacing between items in mm")
	cmd.Flags().BoolVarP(&rotate, "rotate", "r", false, "allow 90 degree rotation in the base scenario")

	return cmd
}

func runCompare(ctx context.Context, input string, settings model.NestSettings) error {
	logger := loggerFromContext(ctx)

	items, err := importItems(ctx, input)
	if err != nil {
		return err
	}

	scenarios := engine.BuildDefaultScenarios(settings)
	prog := newProgress(logger)
	results, err := engine.CompareScenarios(scenarios, items)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Compared %d scenarios", len(results)))

	best := 0
	for i, r := range results {
		if r.PlacedCount > results[best].PlacedCount ||
			(r.PlacedCount == results[best].PlacedCount && r.WastePercent < results[best].WastePercent) {
			best = i
		}
	}

	for i, r := range results {
		marker := ""
		if i == best {
			marker = " (best)"
		}
		logger.Info(r.Scenario.Name+marker,
			"placed", fmt.Sprintf("%d/%d", r.PlacedCount, len(items)),
			"region", fmt.Sprintf("%.0fx%.0f", r.Result.Region.Width, r.Result.Region.Height),
			"waste", fmt.Sprintf("%.1f%%", r.WastePercent),
			"attempts", r.Result.Attempts)
	}
	return nil
}

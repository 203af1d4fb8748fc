package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nestcut/nestcut/internal/model"
)

// newEstimateCmd creates the estimate command, which suggests an initial
// region size for an item list without running the full nest.
func newEstimateCmd() *cobra.Command {
	var (
		spacing float64
		waste   float64
	)

	cmd := &cobra.Command{
		Use:   "estimate [file]",
		Short: "Estimate the region size needed for an item list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd.Context(), args[0], spacing, waste)
		},
	}

	cmd.Flags().Float64VarP(&spacing, "spacing", "s", model.DefaultSettings().Spacing, "spacing between items in mm")
	cmd.Flags().Float64Var(&waste, "waste", 15, "waste allowance percent")

	return cmd
}

func runEstimate(ctx context.Context, input string, spacing, waste float64) error {
	logger := loggerFromContext(ctx)

	items, err := importItems(ctx, input)
	if err != nil {
		return err
	}

	est := model.EstimateRegion(items, spacing, waste)

	logger.Info("Region estimate",
		"items", est.ItemCount,
		"suggested", fmt.Sprintf("%.0fx%.0f mm", est.SuggestedWidth, est.SuggestedHeight),
		"item_area", fmt.Sprintf("%.0f mm2", est.TotalItemArea),
		"padded_area", fmt.Sprintf("%.0f mm2", est.TotalPaddedArea),
		"utilization", fmt.Sprintf("%.1f%%", est.Utilization))
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nestcut/nestcut/internal/engine"
	"github.com/nestcut/nestcut/internal/export"
	"github.com/nestcut/nestcut/internal/importer"
	"github.com/nestcut/nestcut/internal/model"
	"github.com/nestcut/nestcut/internal/project"
)

// nestOpts holds the command-line flags for the nest command.
type nestOpts struct {
	width        float64 // target region width in mm
	height       float64 // target region height in mm
	spacing      float64 // spacing between items in mm
	rotate       bool    // allow 90 degree rotation
	algorithm    string  // placement algorithm: greedy or genetic
	maxAttempts  int     // maximum expansion attempts
	maxDimension float64 // region growth cap in mm
	pdfPath      string  // layout PDF output path
	labelsPath   string  // QR label PDF output path
	xlsxPath     string  // spreadsheet output path
	jsonPath     string  // raw result JSON output path
	projectPath  string  // project file save path
	projectName  string  // project name used when saving
}

// newNestCmd creates the nest command. Flag defaults come from the saved
// application config so repeated runs inherit the user's preferences.
func newNestCmd() *cobra.Command {
	settings := model.DefaultSettings()
	if cfg, err := project.LoadAppConfig(project.DefaultConfigPath()); err == nil {
		cfg.ApplyToSettings(&settings)
	}

	opts := nestOpts{
		width:        settings.TargetWidth,
		height:       settings.TargetHeight,
		spacing:      settings.Spacing,
		rotate:       settings.AllowRotation,
		algorithm:    string(settings.Algorithm),
		maxAttempts:  settings.MaxAttempts,
		maxDimension: settings.MaxDimension,
	}

	cmd := &cobra.Command{
		Use:   "nest [file]",
		Short: "Nest an item list into a target region",
		Long:  `Nest imports an item list (CSV, Excel, or DXF), packs the items into the target region, and reports the resulting layout. The region grows in bounded steps when items do not fit.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNest(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().Float64VarP(&opts.width, "width", "W", opts.width, "target region width in mm")
	cmd.Flags().Float64VarP(&opts.height, "height", "H", opts.height, "target region height in mm")
	cmd.Flags().Float64VarP(&opts.spacing, "spacing", "s", opts.spacing, "spacing between items in mm")
	cmd.Flags().BoolVarP(&opts.rotate, "rotate", "r", opts.rotate, "allow 90 degree rotation")
	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", opts.algorithm, "placement algorithm: greedy or genetic")
	cmd.Flags().IntVar(&opts.maxAttempts, "max-attempts", opts.maxAttempts, "maximum region expansion attempts")
	cmd.Flags().Float64Var(&opts.maxDimension, "max-dimension", opts.maxDimension, "region growth cap in mm")
	cmd.Flags().StringVarP(&opts.pdfPath, "output", "o", "", "write a layout PDF to this path")
	cmd.Flags().StringVar(&opts.labelsPath, "labels", "", "write a QR label PDF to this path")
	cmd.Flags().StringVar(&opts.xlsxPath, "xlsx", "", "write a placement spreadsheet to this path")
	cmd.Flags().StringVar(&opts.jsonPath, "json", "", "write the raw nesting result as JSON to this path")
	cmd.Flags().StringVar(&opts.projectPath, "save-project", "", "save the project (items, settings, result) to this path")
	cmd.Flags().StringVar(&opts.projectName, "name", "", "project name used with --save-project")

	return cmd
}

// runNest imports the item list, runs the nesting engine, and writes any
// requested export files.
func runNest(ctx context.Context, input string, opts *nestOpts) error {
	logger := loggerFromContext(ctx)

	items, err := importItems(ctx, input)
	if err != nil {
		return err
	}

	settings := model.NestSettings{
		TargetWidth:   opts.width,
		TargetHeight:  opts.height,
		Spacing:       opts.spacing,
		AllowRotation: opts.rotate,
		Algorithm:     model.Algorithm(opts.algorithm),
		MaxAttempts:   opts.maxAttempts,
		MaxDimension:  opts.maxDimension,
	}

	prog := newProgress(logger)
	result, err := engine.New(settings).Nest(items)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Nested %d of %d items", len(result.Placements), len(items)))

	reportResult(logger, result, settings)

	if opts.pdfPath != "" {
		if err := export.ExportPDF(opts.pdfPath, result, settings); err != nil {
			return fmt.Errorf("failed to export PDF: %w", err)
		}
		logger.Info("Wrote layout PDF", "path", opts.pdfPath)
	}
	if opts.labelsPath != "" {
		if err := export.ExportLabels(opts.labelsPath, result); err != nil {
			return fmt.Errorf("failed to export labels: %w", err)
		}
		logger.Info("Wrote label PDF", "path", opts.labelsPath)
	}
	if opts.xlsxPath != "" {
		if err := export.ExportSpreadsheet(opts.xlsxPath, result, settings); err != nil {
			return fmt.Errorf("failed to export spreadsheet: %w", err)
		}
		logger.Info("Wrote spreadsheet", "path", opts.xlsxPath)
	}
	if opts.jsonPath != "" {
		if err := writeResultJSON(opts.jsonPath, result); err != nil {
			return fmt.Errorf("failed to write result JSON: %w", err)
		}
		logger.Info("Wrote result JSON", "path", opts.jsonPath)
	}
	if opts.projectPath != "" {
		if err := saveProject(opts, items, settings, result); err != nil {
			return err
		}
		logger.Info("Saved project", "path", opts.projectPath)
	}

	if len(result.UnplacedIDs) > 0 {
		return fmt.Errorf("%d items could not be placed: %v", len(result.UnplacedIDs), result.UnplacedIDs)
	}
	return nil
}

// importItems loads the item list from the input file and logs any
// warnings. Row-level errors are logged but do not abort the import as
// long as at least one item was read.
func importItems(ctx context.Context, input string) ([]model.Item, error) {
	logger := loggerFromContext(ctx)

	res := importer.ImportFile(input)
	for _, w := range res.Warnings {
		logger.Debug(w)
	}
	for _, e := range res.Errors {
		logger.Warn(e)
	}
	if len(res.Items) == 0 {
		return nil, fmt.Errorf("no items imported from %s", input)
	}
	logger.Info("Imported items", "count", len(res.Items), "file", input)
	return res.Items, nil
}

// reportResult logs the layout summary and per-placement details.
func reportResult(logger *log.Logger, result model.NestResult, settings model.NestSettings) {
	logger.Info("Layout complete",
		"region", fmt.Sprintf("%.0fx%.0f", result.Region.Width, result.Region.Height),
		"efficiency", fmt.Sprintf("%.1f%%", result.Efficiency()),
		"attempts", result.Attempts)

	for _, p := range result.Placements {
		logger.Debug("Placed",
			"item", p.Label,
			"at", fmt.Sprintf("(%.0f, %.0f)", p.X, p.Y),
			"size", fmt.Sprintf("%.0fx%.0f", p.Width, p.Height),
			"rotated", p.Rotated)
	}

	offcuts := model.DetectOffcuts(result, settings.Spacing)
	for _, oc := range offcuts {
		logger.Debug("Reusable offcut",
			"at", fmt.Sprintf("(%.0f, %.0f)", oc.X, oc.Y),
			"size", fmt.Sprintf("%.0fx%.0f", oc.Width, oc.Height))
	}
	if len(offcuts) > 0 {
		logger.Info("Reusable offcuts", "count", len(offcuts),
			"area", fmt.Sprintf("%.0f mm2", model.TotalOffcutArea(offcuts)))
	}
	if len(result.UnplacedIDs) > 0 {
		logger.Warn("Unplaced items", "ids", result.UnplacedIDs)
	}
}

// writeResultJSON dumps the full nesting result for downstream tooling.
func writeResultJSON(path string, result model.NestResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// saveProject persists the nest as a project file and records it in the
// recent-projects list of the application config.
func saveProject(opts *nestOpts, items []model.Item, settings model.NestSettings, result model.NestResult) error {
	p := model.NewProject()
	if opts.projectName != "" {
		p.Name = opts.projectName
	}
	p.Items = items
	p.Settings = settings
	p.Result = &result

	if err := project.Save(opts.projectPath, p); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}

	cfgPath := project.DefaultConfigPath()
	cfg, err := project.LoadAppConfig(cfgPath)
	if err != nil {
		cfg = model.DefaultAppConfig()
	}
	cfg.AddRecentProject(opts.projectPath)
	return project.SaveAppConfig(cfgPath, cfg)
}

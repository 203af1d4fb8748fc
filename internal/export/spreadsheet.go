package export

import (
	"fmt"

	"github.com/nestcut/nestcut/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	placementsSheet = "Placements"
	summarySheet    = "Summary"
)

// ExportSpreadsheet writes the nesting result to an Excel workbook with a
// placement list sheet and a summary sheet.
func ExportSpreadsheet(path string, result model.NestResult, settings model.NestSettings) error {
	if len(result.Placements) == 0 {
		return fmt.Errorf("no placements to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	// Rename the default sheet and add the summary
	if err := f.SetSheetName(f.GetSheetName(0), placementsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	if err := writePlacements(f, result); err != nil {
		return err
	}
	if err := writeSummary(f, result, settings); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writePlacements(f *excelize.File, result model.NestResult) error {
	headers := []interface{}{"#", "ID", "Label", "X (mm)", "Y (mm)", "Width (mm)", "Height (mm)", "Rotated"}
	if err := f.SetSheetRow(placementsSheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, p := range result.Placements {
		row := []interface{}{i + 1, p.ItemID, p.Label, p.X, p.Y, p.Width, p.Height, p.Rotated}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(placementsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write placement row %d: %w", i+1, err)
		}
	}
	return nil
}

func writeSummary(f *excelize.File, result model.NestResult, settings model.NestSettings) error {
	offcuts := model.DetectOffcuts(result, settings.Spacing)

	rows := [][]interface{}{
		{"Region Width (mm)", result.Region.Width},
		{"Region Height (mm)", result.Region.Height},
		{"Items Placed", len(result.Placements)},
		{"Unplaced Items", len(result.UnplacedIDs)},
		{"Used Area (mm2)", result.UsedArea()},
		{"Efficiency (%)", result.Efficiency()},
		{"Attempts", result.Attempts},
		{"Reusable Offcut Area (mm2)", model.TotalOffcutArea(offcuts)},
		{"Spacing (mm)", settings.Spacing},
		{"Rotation Allowed", settings.AllowRotation},
		{"Algorithm", string(settings.Algorithm)},
	}

	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}
	return nil
}

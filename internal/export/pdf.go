// Package export provides functionality for exporting nesting results
// to various file formats.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/nestcut/nestcut/internal/model"
)

// itemColor represents an RGB color for a placed item.
type itemColor struct {
	R, G, B int
}

// itemColors is the rotating color scheme for placement rectangles.
var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document containing the nesting result.
// The layout diagram is rendered on the first page with reusable offcut
// zones hatched, followed by a summary page with statistics.
func ExportPDF(path string, result model.NestResult, settings model.NestSettings) error {
	if len(result.Placements) == 0 {
		return fmt.Errorf("no placements to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, result, settings)

	pdf.AddPage()
	renderSummaryPage(pdf, result, settings)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the nested region layout on the current PDF page.
func renderLayoutPage(pdf *fpdf.Fpdf, result model.NestResult, settings model.NestSettings) {
	region := result.Region

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Nested Layout (%.0f x %.0f mm)", region.Width, region.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d | Used area: %.0f mm² | Region area: %.0f mm² | Efficiency: %.1f%% | Attempts: %d",
		len(result.Placements), result.UsedArea(), region.Area(), result.Efficiency(), result.Attempts)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Calculate drawing area
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	// Calculate scale to fit the region within the drawing area
	scaleX := drawWidth / region.Width
	scaleY := drawHeight / region.Height
	scale := math.Min(scaleX, scaleY)

	canvasW := region.Width * scale
	canvasH := region.Height * scale

	// Center the drawing horizontally
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Region background
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Hatch the reusable offcut zones
	drawOffcuts(pdf, result, settings, scale, offsetX, offsetY)

	// Draw placed items
	for i, p := range result.Placements {
		col := itemColors[i%len(itemColors)]
		pw := p.Width * scale
		ph := p.Height * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		// Item fill
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// Item label (only if rectangle is large enough)
		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Label
			dims := fmt.Sprintf("%.0fx%.0f", p.Width, p.Height)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			// First line: label
			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}

			// Second line: dimensions
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	// Dimension annotations along the edges
	drawDimensionAnnotations(pdf, region, offsetX, offsetY, canvasW, canvasH)

	// Item legend at bottom of page
	drawItemLegend(pdf, result.Placements, offsetY+canvasH+5)
}

// drawOffcuts renders the detected reusable offcut zones with hatching.
func drawOffcuts(pdf *fpdf.Fpdf, result model.NestResult, settings model.NestSettings, scale, offsetX, offsetY float64) {
	offcuts := model.DetectOffcuts(result, settings.Spacing)

	for _, oc := range offcuts {
		zx := offsetX + oc.X*scale
		zy := offsetY + oc.Y*scale
		zw := oc.Width * scale
		zh := oc.Height * scale

		pdf.SetFillColor(230, 245, 230)
		pdf.SetDrawColor(0, 140, 0)
		pdf.SetLineWidth(0.3)
		pdf.Rect(zx, zy, zw, zh, "FD")

		drawHatchPattern(pdf, zx, zy, zw, zh)

		// Label for larger zones
		if zw > 20 && zh > 8 {
			pdf.SetFont("Helvetica", "B", 6)
			pdf.SetTextColor(0, 120, 0)
			label := fmt.Sprintf("OFFCUT %.0fx%.0f", oc.Width, oc.Height)
			labelW := pdf.GetStringWidth(label)
			pdf.SetXY(zx+(zw-labelW)/2, zy+zh/2-2)
			pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
		}
	}

	// Reset text color
	pdf.SetTextColor(0, 0, 0)
}

// drawHatchPattern draws diagonal lines inside a rectangle.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(0, 140, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	maxDist := w + h

	for d := spacing; d < maxDist; d += spacing {
		// Line from bottom-left to top-right diagonal
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)

		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations adds width and height labels outside the region rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, region model.Region, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the region)
	widthLabel := fmt.Sprintf("%.0f mm", region.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Height annotation (to the left of the region, rotated)
	heightLabel := fmt.Sprintf("%.0f mm", region.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	// Reset text color
	pdf.SetTextColor(0, 0, 0)
}

// drawItemLegend renders a compact legend of placed items at the bottom of the page.
func drawItemLegend(pdf *fpdf.Fpdf, placements []model.Placement, startY float64) {
	if len(placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Items placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range placements {
		col := itemColors[i%len(itemColors)]
		label := fmt.Sprintf("%s (%.0fx%.0f)", p.Label, p.Width, p.Height)
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		// Wrap to next line if needed
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		// Color swatch
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		// Label text
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.NestResult, settings model.NestSettings) {
	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Nesting Summary", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	// Overall statistics
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	offcuts := model.DetectOffcuts(result, settings.Spacing)
	summaryItems := []struct {
		label string
		value string
	}{
		{"Region Size", fmt.Sprintf("%.0f x %.0f mm", result.Region.Width, result.Region.Height)},
		{"Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency())},
		{"Items Placed", fmt.Sprintf("%d", len(result.Placements))},
		{"Unplaced Items", fmt.Sprintf("%d", len(result.UnplacedIDs))},
		{"Attempts", fmt.Sprintf("%d", result.Attempts)},
		{"Reusable Offcut Area", fmt.Sprintf("%.0f mm²", model.TotalOffcutArea(offcuts))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Placement breakdown table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Placement Breakdown", "", 0, "L", false, 0, "")
	y += 9

	// Table header
	colWidths := []float64{15, 80, 50, 50, 30}
	headers := []string{"#", "Item", "Position", "Dimensions", "Rotated"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	// Table rows
	pdf.SetFont("Helvetica", "", 9)
	for i, p := range result.Placements {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}

		xPos = marginLeft
		rotated := "-"
		if p.Rotated {
			rotated = "yes"
		}
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			p.Label,
			fmt.Sprintf("(%.0f, %.0f)", p.X, p.Y),
			fmt.Sprintf("%.0f x %.0f mm", p.Width, p.Height),
			rotated,
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Unplaced items warning
	if len(result.UnplacedIDs) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Items", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(200, 5, "IDs: "+strings.Join(result.UnplacedIDs, ", "), "", 0, "L", false, 0, "")
		y += 5
	}

	// Settings summary
	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Nest Settings", "", 0, "L", false, 0, "")
	y += 9

	rotation := "disabled"
	if settings.AllowRotation {
		rotation = "enabled"
	}
	settingsItems := []struct {
		label string
		value string
	}{
		{"Target Region", fmt.Sprintf("%.0f x %.0f mm", settings.TargetWidth, settings.TargetHeight)},
		{"Spacing", fmt.Sprintf("%.1f mm", settings.Spacing)},
		{"Rotation", rotation},
		{"Algorithm", string(settings.Algorithm)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by NestCut - Rectangle Nesting Optimizer", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Label,Width,Height,Qty\nShelf,600,300,2\nDoor,400,800,1\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Label;Width;Height;Qty\nShelf;600;300;2\nDoor;400;800;1\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Label\tWidth\tHeight\tQty\nShelf\t600\t300\t2\nDoor\t400\t800\t1\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Label|Width|Height|Qty\nShelf|600|300|2\nDoor|400|800|1\n")
	got := DetectCSVDelimiter(data)
	if got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Label", "Width", "Height", "Quantity"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 {
		t.Errorf("expected Label at 0, got %d", mapping.Label)
	}
	if mapping.Width != 1 {
		t.Errorf("expected Width at 1, got %d", mapping.Width)
	}
	if mapping.Height != 2 {
		t.Errorf("expected Height at 2, got %d", mapping.Height)
	}
	if mapping.Quantity != 3 {
		t.Errorf("expected Quantity at 3, got %d", mapping.Quantity)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	row := []string{"Part Name", "W", "H", "Pcs"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Label != 0 {
		t.Errorf("expected Label at 0, got %d", mapping.Label)
	}
	if mapping.Width != 1 {
		t.Errorf("expected Width at 1, got %d", mapping.Width)
	}
	if mapping.Height != 2 {
		t.Errorf("expected Height at 2, got %d", mapping.Height)
	}
	if mapping.Quantity != 3 {
		t.Errorf("expected Quantity at 3, got %d", mapping.Quantity)
	}
}

func TestDetectColumns_ReorderedColumns(t *testing.T) {
	row := []string{"Qty", "Height", "Width", "Label"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Quantity != 0 {
		t.Errorf("expected Quantity at 0, got %d", mapping.Quantity)
	}
	if mapping.Height != 1 {
		t.Errorf("expected Height at 1, got %d", mapping.Height)
	}
	if mapping.Width != 2 {
		t.Errorf("expected Width at 2, got %d", mapping.Width)
	}
	if mapping.Label != 3 {
		t.Errorf("expected Label at 3, got %d", mapping.Label)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	row := []string{"Shelf", "600", "300", "2"}
	mapping, isHeader := DetectColumns(row)

	if isHeader {
		t.Error("expected no header detection for numeric data")
	}
	// Should fall back to positional
	if mapping.Label != 0 || mapping.Width != 1 || mapping.Height != 2 || mapping.Quantity != 3 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,600,300,1\nDoor,400,800,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}

	if result.Items[0].Label != "Shelf" {
		t.Errorf("expected label 'Shelf', got '%s'", result.Items[0].Label)
	}
	if result.Items[0].Width != 600 {
		t.Errorf("expected width 600, got %f", result.Items[0].Width)
	}
	if result.Items[0].Height != 300 {
		t.Errorf("expected height 300, got %f", result.Items[0].Height)
	}
	if result.Items[1].Label != "Door" {
		t.Errorf("expected label 'Door', got '%s'", result.Items[1].Label)
	}
}

func TestImportCSVFromReader_QuantityExpansion(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,600,300,3\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items from quantity 3, got %d", len(result.Items))
	}
	for i, it := range result.Items {
		if it.Label != "Shelf" {
			t.Errorf("item %d: expected label 'Shelf', got '%s'", i, it.Label)
		}
		if it.Width != 600 || it.Height != 300 {
			t.Errorf("item %d: expected 600x300, got %fx%f", i, it.Width, it.Height)
		}
	}
	if result.Items[0].ID == result.Items[1].ID {
		t.Error("expanded items must have distinct IDs")
	}
}

func TestImportCSVFromReader_QuantityDefaultsToOne(t *testing.T) {
	data := "Label,Width,Height\nShelf,600,300\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item without quantity column, got %d", len(result.Items))
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Shelf,600,300,2\nDoor,400,800,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items, got %d (errors: %v)", len(result.Items), result.Errors)
	}
	if result.Items[0].Label != "Shelf" {
		t.Errorf("expected label 'Shelf', got '%s'", result.Items[0].Label)
	}
	if result.Items[2].Label != "Door" {
		t.Errorf("expected label 'Door', got '%s'", result.Items[2].Label)
	}
}

func TestImportCSVFromReader_SemicolonDelimiter(t *testing.T) {
	data := "Label;Width;Height;Quantity\nShelf;600;300;1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ';')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	if result.Items[0].Label != "Shelf" {
		t.Errorf("expected label 'Shelf', got '%s'", result.Items[0].Label)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

func TestImportCSVFromReader_InvalidWidth(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,abc,300,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for invalid width")
	}
	if len(result.Items) != 0 {
		t.Errorf("expected 0 items, got %d", len(result.Items))
	}
}

func TestImportCSVFromReader_NegativeValues(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,-600,300,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for negative width")
	}
}

func TestImportCSVFromReader_ZeroQuantity(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,600,300,0\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for zero quantity")
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Label,Width,Height,Quantity\nGood,600,300,2\nBad,abc,300,2\nAlsoGood,400,200,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 3 {
		t.Errorf("expected 3 valid items, got %d", len(result.Items))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %d", len(result.Errors))
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	data := "Label,Width,Height,Quantity\nShelf,600,300,1\n\n\nDoor,400,800,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 2 {
		t.Errorf("expected 2 items (skipping empty rows), got %d (errors: %v)", len(result.Items), result.Errors)
	}
}

func TestImportCSVFromReader_EmptyLabel(t *testing.T) {
	data := "Label,Width,Height,Quantity\n,600,300,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	if result.Items[0].Label != "Item 1" {
		t.Errorf("expected auto-generated label 'Item 1', got '%s'", result.Items[0].Label)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	data := "Label,Width,Qty\nShelf,600,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 {
		t.Error("expected error for missing Height column")
	}
	foundMissing := false
	for _, e := range result.Errors {
		if strings.Contains(e, "Required columns not found") {
			foundMissing = true
		}
	}
	if !foundMissing {
		t.Errorf("expected 'Required columns not found' error, got: %v", result.Errors)
	}
}

// ─── CSV File Import Tests ──────────────────────────────────

func TestImportCSV_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.csv")
	content := "Label,Width,Height,Quantity\nShelf,600,300,2\nDoor,400,800,1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(result.Items))
	}
}

func TestImportCSV_SemicolonFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.csv")
	content := "Label;Width;Height;Quantity\nShelf;600;300;1\nDoor;400;800;1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Items) != 2 {
		t.Errorf("expected 2 items, got %d (errors: %v)", len(result.Items), result.Errors)
	}

	// Should have a warning about semicolon delimiter
	hasSemicolonWarning := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "semicolon") {
			hasSemicolonWarning = true
		}
	}
	if !hasSemicolonWarning {
		t.Error("expected warning about semicolon delimiter detection")
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/file.csv")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.csv")
	if err := os.WriteFile(path, []byte(""), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportCSV(path)

	if len(result.Errors) == 0 {
		t.Error("expected error for empty file")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "items.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			cellName, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to build cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cellName, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save test Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Label", "Width", "Height", "Quantity"},
		{"Shelf", 600, 300, 2},
		{"Door", 400, 800, 1},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(result.Items))
	}
	if result.Items[0].Label != "Shelf" {
		t.Errorf("expected label 'Shelf', got '%s'", result.Items[0].Label)
	}
	if result.Items[0].Width != 600 {
		t.Errorf("expected width 600, got %f", result.Items[0].Width)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/path/file.xlsx")

	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

// ─── ImportFile Dispatch Tests ─────────────────────────────

func TestImportFile_CSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.csv")
	content := "Label,Width,Height,Quantity\nShelf,600,300,1\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportFile(path)

	if len(result.Items) != 1 {
		t.Errorf("expected 1 item, got %d (errors: %v)", len(result.Items), result.Errors)
	}
}

func TestImportFile_UnsupportedExtension(t *testing.T) {
	result := ImportFile("items.pdf")

	if len(result.Errors) == 0 {
		t.Error("expected error for unsupported extension")
	}
	if !strings.Contains(result.Errors[0], "Unsupported file type") {
		t.Errorf("expected unsupported file type error, got: %v", result.Errors)
	}
}

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
	data := []byte("Label,Length,Width,Height,Qty\nMug,6,4,4,2\nBook,9,6,1,1\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Label;Length;Width;Height;Qty\nMug;6;4;4;2\nBook;9;6;1;1\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Label\tLength\tWidth\tHeight\tQty\nMug\t6\t4\t4\t2\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Label|Length|Width|Height|Qty\nMug|6|4|4|2\n")
	if got := DetectCSVDelimiter(data); got != '|' {
		t.Errorf("expected pipe delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Label", "Length", "Width", "Height", "Quantity"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Label: 0, Length: 1, Width: 2, Height: 3, Quantity: 4}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"QTY", "h", "SKU", "W", "L"})
	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Label: 2, Length: 4, Width: 3, Height: 1, Quantity: 0}
	if mapping != want {
		t.Errorf("expected %+v, got %+v", want, mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Mug", "6", "4", "4", "2"})
	if isHeader {
		t.Error("expected no header")
	}
	if mapping.Length != 1 || mapping.Quantity != 4 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── Item Import Tests ─────────────────────────────────────

func TestImportItemsCSVFromReader_WithHeaders(t *testing.T) {
	csv := "Name,Length,Width,Height,Qty\nMug,6,4,4,2\nBook,9,6,1.5,1\n"
	result := ImportItemsCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	mug := result.Items[0]
	if mug.Label != "Mug" || mug.L != 6 || mug.W != 4 || mug.H != 4 || mug.Quantity != 2 {
		t.Errorf("unexpected item %+v", mug)
	}
	if result.Items[1].H != 1.5 {
		t.Errorf("expected height 1.5, got %f", result.Items[1].H)
	}
	if mug.ID == "" {
		t.Error("expected a generated ID")
	}
}

func TestImportItemsCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportItemsCSVFromReader(strings.NewReader("Mug,6,4,4,2\nBook,9,6,1,3\n"), ',')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 || result.Items[1].Quantity != 3 {
		t.Errorf("unexpected items %+v", result.Items)
	}
}

func TestImportItemsCSVFromReader_UnknownHeaderSkipped(t *testing.T) {
	result := ImportItemsCSVFromReader(strings.NewReader("Thing,Long side,Mid,Short,How many\nMug,6,4,4,2\n"), ',')
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d (errors %v)", len(result.Items), result.Errors)
	}
}

func TestImportItemsCSVFromReader_MissingQuantityDefaultsToOne(t *testing.T) {
	result := ImportItemsCSVFromReader(strings.NewReader("Label,Length,Width,Height\nMug,6,4,4\n"), ',')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Items[0].Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", result.Items[0].Quantity)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "defaulting to 1") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a quantity warning, got %v", result.Warnings)
	}
}

func TestImportItemsCSVFromReader_RowErrors(t *testing.T) {
	csv := "Label,Length,Width,Height,Qty\n" +
		"Good,1,1,1,1\n" +
		"BadLength,abc,1,1,1\n" +
		"Negative,1,-1,1,1\n" +
		"ZeroQty,1,1,1,0\n" +
		"BadQty,1,1,1,two\n" +
		"NoHeight,1,1,,1\n"
	result := ImportItemsCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Items) != 1 {
		t.Errorf("expected 1 valid item, got %d", len(result.Items))
	}
	if len(result.Errors) != 5 {
		t.Fatalf("expected 5 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	if !strings.HasPrefix(result.Errors[0], "Line 3:") {
		t.Errorf("expected error on line 3, got %q", result.Errors[0])
	}
}

func TestImportItemsCSVFromReader_MissingRequiredColumn(t *testing.T) {
	result := ImportItemsCSVFromReader(strings.NewReader("Label,Length,Qty\nMug,6,1\n"), ',')
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Width, Height") {
		t.Errorf("expected missing column error, got %v", result.Errors)
	}
}

func TestImportItemsCSVFromReader_EmptyLabelAndRows(t *testing.T) {
	result := ImportItemsCSVFromReader(strings.NewReader("Label,Length,Width,Height,Qty\n,1,1,1,1\n\n,,,,\n"), ',')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 1 || result.Items[0].Label != "Item 1" {
		t.Errorf("unexpected items %+v", result.Items)
	}
}

func TestImportItemsCSVFromReader_EmptyInput(t *testing.T) {
	result := ImportItemsCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) != 1 {
		t.Errorf("expected one error, got %v", result.Errors)
	}
}

func TestImportItemsCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.csv")
	if err := os.WriteFile(path, []byte("Label;Length;Width;Height;Qty\nMug;6;4;4;2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportItems(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	if result.Warnings[0] != "Detected semicolon delimiter" {
		t.Errorf("unexpected warnings %v", result.Warnings)
	}
}

func TestImportItemsCSV_FileNotFound(t *testing.T) {
	result := ImportItemsCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) != 1 || !strings.HasPrefix(result.Errors[0], "Cannot open file") {
		t.Errorf("unexpected errors %v", result.Errors)
	}
}

// ─── Box Import Tests ──────────────────────────────────────

func TestImportBoxesCSVFromReader(t *testing.T) {
	csv := "Box,L,W,H\nMailer,8,6,4\n,12,10,8\n"
	result := ImportBoxesCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Boxes) != 2 {
		t.Fatalf("expected 2 boxes, got %d", len(result.Boxes))
	}
	if result.Boxes[0].Label != "Mailer" || result.Boxes[0].L != 8 {
		t.Errorf("unexpected box %+v", result.Boxes[0])
	}
	if result.Boxes[1].Label != "Candidate 2" {
		t.Errorf("expected default label, got %q", result.Boxes[1].Label)
	}
	if len(result.Items) != 0 {
		t.Error("box import must not produce items")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "list.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportItemsExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Item", "Length", "Width", "Height", "Qty"},
		{"Mug", 6, 4, 4, 2},
		{"Book", 9.5, 6, 1, 1},
	})

	result := ImportItems(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[1].L != 9.5 {
		t.Errorf("expected length 9.5, got %f", result.Items[1].L)
	}
}

func TestImportBoxesExcel(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "Length", "Width", "Height"},
		{"Shipper", 12, 10, 8},
	})

	result := ImportBoxes(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Boxes) != 1 || result.Boxes[0].H != 8 {
		t.Errorf("unexpected boxes %+v", result.Boxes)
	}
}

func TestImportItemsExcel_FileNotFound(t *testing.T) {
	result := ImportItemsExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) != 1 {
		t.Errorf("expected one error, got %v", result.Errors)
	}
}

package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/BoxFit/internal/engine"
	"github.com/piwi3910/BoxFit/internal/model"
)

// buildTestResult packs a small mixed load into a 12 x 10 x 8 box.
func buildTestResult(t *testing.T) model.PackResult {
	t.Helper()
	items := []model.Item{
		{ID: "mug", Label: "Mug", L: 6, W: 4, H: 4, Quantity: 3},
		{ID: "book", Label: "Book", L: 9, W: 6, H: 1, Quantity: 2},
		{ID: "die", Label: "Die", L: 2, W: 2, H: 2, Quantity: 4},
	}
	result, err := engine.New(engine.Settings{}).Pack(model.Dims{L: 12, W: 10, H: 8}, items)
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	return result
}

func assertPDF(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if len(data) < 500 {
		t.Fatalf("PDF file seems too small: %d bytes", len(data))
	}
	if string(data[:5]) != "%PDF-" {
		t.Errorf("missing PDF header, got %q", data[:5])
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pack.pdf")

	if err := ExportPDF(path, buildTestResult(t), model.UnitCentimetre); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertPDF(t, path)
}

func TestExportPDF_WithUnplacedItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unplaced.pdf")

	items := []model.Item{{ID: "cube", Label: "Cube", L: 3, W: 3, H: 3, Quantity: 40}}
	result, err := engine.New(engine.Settings{}).Pack(model.Dims{L: 10, W: 10, H: 10}, items)
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	if result.Success {
		t.Fatal("expected some cubes to be left over")
	}

	if err := ExportPDF(path, result, model.UnitInch); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertPDF(t, path)
}

func TestExportPDF_NothingPlaced(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	items := []model.Item{{Label: "Huge", L: 50, W: 50, H: 50, Quantity: 1}}
	result, err := engine.New(engine.Settings{}).Pack(model.Dims{L: 10, W: 10, H: 10}, items)
	if err != nil {
		t.Fatalf("pack failed: %v", err)
	}
	if err := ExportPDF(path, result, model.UnitCentimetre); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
	assertPDF(t, path)
}

func TestExportPDF_InvalidContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pdf")
	if err := ExportPDF(path, model.PackResult{}, model.UnitCentimetre); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestExportFinderPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finder.pdf")

	candidates := []model.Box{
		{Label: "Tiny", L: 4, W: 4, H: 4},
		{Label: "Medium", L: 10, W: 8, H: 6},
		{Label: "Large", L: 12, W: 10, H: 8},
	}
	items := []model.Item{{Label: "Mug", L: 6, W: 4, H: 4, Quantity: 1}}
	result, err := engine.New(engine.Settings{}).FindSmallest(context.Background(), candidates, items)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}

	if err := ExportFinderPDF(path, result, model.UnitInch); err != nil {
		t.Fatalf("ExportFinderPDF returned error: %v", err)
	}
	assertPDF(t, path)
}

func TestExportFinderPDF_NoCandidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finder.pdf")
	if err := ExportFinderPDF(path, model.FinderResult{}, model.UnitInch); err == nil {
		t.Fatal("expected error for empty ranking, got nil")
	}
}

func TestColorIndexStableByFirstAppearance(t *testing.T) {
	idx := colorIndex([]model.Placement{{ItemID: "b"}, {ItemID: "a"}, {ItemID: "b"}})
	if idx["b"] != 0 || idx["a"] != 1 {
		t.Errorf("unexpected colour slots %v", idx)
	}
}

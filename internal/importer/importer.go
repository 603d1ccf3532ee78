// Package importer reads packing lists and candidate box lists from CSV and
// Excel files. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/BoxFit/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation. Only one of Items
// and Boxes is filled, depending on what was imported.
type ImportResult struct {
	Items    []model.Item
	Boxes    []model.Box
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label    int
	Length   int
	Width    int
	Height   int
	Quantity int
}

// rowKind selects what a data row turns into.
type rowKind int

const (
	itemRows rowKind = iota
	boxRows
)

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "item", "item name", "box", "description", "desc", "product", "sku"},
	"length":   {"length", "l", "len", "long", "x"},
	"width":    {"width", "w", "wide", "y"},
	"height":   {"height", "h", "depth", "d", "tall", "z"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		records, err := newCSVReader(bytes.NewReader(data), delim).ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

func newCSVReader(r io.Reader, delimiter rune) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	return reader
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping Label, Length, Width, Height, Quantity and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Length: -1, Width: -1, Height: -1, Quantity: -1}
	roles := map[string]*int{
		"label":    &mapping.Label,
		"length":   &mapping.Length,
		"width":    &mapping.Width,
		"height":   &mapping.Height,
		"quantity": &mapping.Quantity,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if idx := roles[role]; *idx == -1 {
					*idx = i
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Label: 0, Length: 1, Width: 2, Height: 3, Quantity: 4}, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseMeasure(row []string, idx int, name, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	if !(v > 0) {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, strings.ToUpper(name[:1])+name[1:])
	}
	return v, ""
}

// parseRow appends the item or box described by row to result.
func parseRow(row []string, mapping ColumnMapping, kind rowKind, rowLabel string, result *ImportResult) {
	var dims [3]float64
	for i, m := range []struct {
		idx  int
		name string
	}{{mapping.Length, "length"}, {mapping.Width, "width"}, {mapping.Height, "height"}} {
		v, errMsg := parseMeasure(row, m.idx, m.name, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			return
		}
		dims[i] = v
	}
	label := getCell(row, mapping.Label)

	if kind == boxRows {
		if label == "" {
			label = fmt.Sprintf("Candidate %d", len(result.Boxes)+1)
		}
		result.Boxes = append(result.Boxes, model.NewBox(label, dims[0], dims[1], dims[2]))
		return
	}

	if label == "" {
		label = fmt.Sprintf("Item %d", len(result.Items)+1)
	}
	qty := 1
	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Missing quantity, defaulting to 1", rowLabel))
	} else {
		n, err := strconv.Atoi(qtyStr)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr))
			return
		}
		if n <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Quantity must be positive", rowLabel))
			return
		}
		qty = n
	}
	result.Items = append(result.Items, model.NewItem(label, dims[0], dims[1], dims[2], qty))
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportItemsCSV imports a packing list from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportItemsCSV(path string) ImportResult {
	return importCSVFile(path, itemRows)
}

// ImportBoxesCSV imports candidate boxes from a CSV file. A quantity
// column, if present, is ignored.
func ImportBoxesCSV(path string) ImportResult {
	return importCSVFile(path, boxRows)
}

// ImportItemsCSVFromReader imports a packing list from a CSV reader with a
// known delimiter.
func ImportItemsCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	return importCSVReader(reader, delimiter, itemRows)
}

// ImportBoxesCSVFromReader imports candidate boxes from a CSV reader with a
// known delimiter.
func ImportBoxesCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	return importCSVReader(reader, delimiter, boxRows)
}

func importCSVFile(path string, kind rowKind) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := newCSVReader(bytes.NewReader(data), delimiter).ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, kind, "Line", warnings)
}

func importCSVReader(reader io.Reader, delimiter rune, kind rowKind) ImportResult {
	result := ImportResult{}

	records, err := newCSVReader(reader, delimiter).ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, kind, "Line", nil)
}

// ImportItemsExcel imports a packing list from the first sheet of an Excel file.
func ImportItemsExcel(path string) ImportResult {
	return importExcel(path, itemRows)
}

// ImportBoxesExcel imports candidate boxes from the first sheet of an Excel file.
func ImportBoxesExcel(path string) ImportResult {
	return importExcel(path, boxRows)
}

func importExcel(path string, kind rowKind) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, kind, "Row", nil)
}

// ImportItems picks the CSV or Excel importer by file extension.
func ImportItems(path string) ImportResult {
	if isExcel(path) {
		return ImportItemsExcel(path)
	}
	return ImportItemsCSV(path)
}

// ImportBoxes picks the CSV or Excel importer by file extension.
func ImportBoxes(path string) ImportResult {
	if isExcel(path) {
		return ImportBoxesExcel(path)
	}
	return ImportBoxesCSV(path)
}

func isExcel(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".xlsx") || strings.HasSuffix(lower, ".xlsm") || strings.HasSuffix(lower, ".xls")
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, kind rowKind, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 4 {
		// An unrecognised header still has text where the length should be.
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		parseRow(row, mapping, kind, fmt.Sprintf("%s %d", rowPrefix, i+1), &result)
	}

	return result
}

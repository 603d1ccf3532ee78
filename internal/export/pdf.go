// Package export writes packing results to PDF reports, QR label sheets and
// DXF drawings. Results are measured in centimetres; every exporter takes
// the unit to present them in.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BoxFit/internal/model"
)

// itemColor represents an RGB fill for one item type.
type itemColor struct {
	R, G, B int
}

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
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	rowHeight    = 6.0
)

const footerText = "Generated by BoxFit - 3D Box Packing Planner"

// colorIndex assigns each item ID a stable palette slot in order of first
// appearance.
func colorIndex(placements []model.Placement) map[string]int {
	idx := map[string]int{}
	for _, p := range placements {
		if _, ok := idx[p.ItemID]; !ok {
			idx[p.ItemID] = len(idx)
		}
	}
	return idx
}

// ExportPDF writes a packing report: one top-down page per layer of the
// container followed by a summary page listing every placement.
func ExportPDF(path string, result model.PackResult, unit model.Unit) error {
	if !result.Container.Valid() {
		return fmt.Errorf("no container to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	renderPackPages(pdf, result, unit, "Container")

	pdf.AddPage()
	renderSummaryPage(pdf, result, unit)

	return pdf.OutputFileAndClose(path)
}

// ExportFinderPDF writes the candidate ranking followed by the layer pages
// of the best fitting box, if any.
func ExportFinderPDF(path string, result model.FinderResult, unit model.Unit) error {
	if len(result.Ranked) == 0 {
		return fmt.Errorf("no candidates to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderRankingPage(pdf, result, unit)

	if result.Best != nil {
		renderPackPages(pdf, result.Best.Result, unit, result.Best.Label)
	}

	return pdf.OutputFileAndClose(path)
}

func renderPackPages(pdf *fpdf.Fpdf, result model.PackResult, unit model.Unit, title string) {
	colors := colorIndex(result.Placements)
	layers := result.Layers()
	if len(layers) == 0 {
		// Still show the empty floor.
		layers = []float64{0}
	}
	for i, z := range layers {
		pdf.AddPage()
		renderLayerPage(pdf, result, unit, colors, title, i+1, len(layers), z)
	}
}

// renderLayerPage draws the container floor plan at height z, with every
// placement crossing that height.
func renderLayerPage(pdf *fpdf.Fpdf, result model.PackResult, unit model.Unit, colors map[string]int, title string, layerNum, layerCount int, z float64) {
	c := result.Container

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	heading := fmt.Sprintf("%s %s - Layer %d of %d (z = %s %s)",
		title, model.FormatDims(c, unit), layerNum, layerCount, model.FormatLength(z, unit), unit)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, heading, "", 0, "L", false, 0, "")

	layer := result.PlacementsInLayer(z)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Pieces in layer: %d | Placed: %d of %d | Efficiency: %.1f%%",
		len(layer), result.PlacedCount, result.TotalItems, result.Efficiency)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(drawWidth/c.L, drawHeight/c.W)

	canvasW := c.L * scale
	canvasH := c.W * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Cardboard floor
	pdf.SetFillColor(222, 196, 150)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, p := range layer {
		col := itemColors[colors[p.ItemID]%len(itemColors)]
		pw := p.Size.L * scale
		ph := p.Size.W * scale
		px := offsetX + p.Position.X*scale
		py := offsetY + p.Position.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// Pieces that started below this layer are hatched.
		if p.Position.Z < z {
			drawHatchPattern(pdf, px, py, pw, ph)
		}

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := fmt.Sprintf("%s #%d", p.Label, p.CopyIndex)
			labelW := pdf.GetStringWidth(label)
			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}

			height := "h " + model.FormatLength(p.Size.H, unit)
			heightW := pdf.GetStringWidth(height)
			if ph > 14 && heightW < pw-2 {
				pdf.SetXY(px+(pw-heightW)/2, py+ph/2)
				pdf.CellFormat(heightW, 4, height, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, c, unit, offsetX, offsetY, canvasW, canvasH)
	drawLegend(pdf, layer, colors, unit, offsetY+canvasH+6)
}

// drawHatchPattern draws diagonal lines inside a rectangle.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawDimensionAnnotations labels the container length below the floor plan
// and its width to the left.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, c model.Dims, unit model.Unit, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	lengthLabel := fmt.Sprintf("%s %s", model.FormatLength(c.L, unit), unit)
	lw := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX+(canvasW-lw)/2, offsetY+canvasH+1)
	pdf.CellFormat(lw, 4, lengthLabel, "", 0, "C", false, 0, "")

	widthLabel := fmt.Sprintf("%s %s", model.FormatLength(c.W, unit), unit)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	ww := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX-3-ww/2, offsetY+canvasH/2-2)
	pdf.CellFormat(ww, 4, widthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawLegend lists the item types visible in a layer.
func drawLegend(pdf *fpdf.Fpdf, layer []model.Placement, colors map[string]int, unit model.Unit, startY float64) {
	if len(layer) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Items in layer:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight
	seen := map[string]bool{}

	for _, p := range layer {
		if seen[p.ItemID] {
			continue
		}
		seen[p.ItemID] = true

		col := itemColors[colors[p.ItemID]%len(itemColors)]
		label := fmt.Sprintf("%s (%s)", p.Label, model.FormatDims(p.OriginalSize, unit))
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")
		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws overall statistics and the placement table,
// continuing onto extra pages when needed.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PackResult, unit model.Unit) {
	y := drawPageTitle(pdf, "Packing Summary")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	status := "All items packed"
	if !result.Success {
		status = "Some items did not fit"
	}
	summaryItems := []struct {
		label string
		value string
	}{
		{"Result", status},
		{"Container", model.FormatDims(result.Container, unit)},
		{"Container Volume", model.FormatVolume(result.ContainerVolume, unit)},
		{"Used Volume", model.FormatVolume(result.UsedVolume, unit)},
		{"Unused Volume", model.FormatVolume(result.UnusedVolume, unit)},
		{"Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency)},
		{"Items Placed", fmt.Sprintf("%d of %d", result.PlacedCount, result.TotalItems)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Placements", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{12, 60, 12, 65, 65, 53}
	headers := []string{"#", "Item", "Copy", "Position (x, y, z)", "Oriented Size", "Original Size"}
	y = drawTableHeader(pdf, y, colWidths, headers)

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range result.Placements {
		if y+rowHeight > pageHeight-marginBottom-6 {
			drawFooter(pdf)
			pdf.AddPage()
			y = drawTableHeader(pdf, marginTop, colWidths, headers)
			pdf.SetFont("Helvetica", "", 9)
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			p.Label,
			fmt.Sprintf("%d", p.CopyIndex),
			fmt.Sprintf("%s, %s, %s", model.FormatLength(p.Position.X, unit), model.FormatLength(p.Position.Y, unit), model.FormatLength(p.Position.Z, unit)),
			model.FormatDims(p.Size, unit),
			model.FormatDims(p.OriginalSize, unit),
		}
		y = drawTableRow(pdf, y, i, colWidths, row)
	}

	if len(result.Unplaced) > 0 {
		y += 8
		if y+16 > pageHeight-marginBottom-6 {
			drawFooter(pdf)
			pdf.AddPage()
			y = marginTop
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Items", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, pc := range result.Unplaced {
			if y+5 > pageHeight-marginBottom-6 {
				drawFooter(pdf)
				pdf.AddPage()
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s #%d: %s (padded %s)", pc.Label, pc.CopyIndex, model.FormatDims(pc.Original, unit), model.FormatDims(pc.Dims, unit))
			pdf.CellFormat(250, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	drawFooter(pdf)
}

// renderRankingPage draws the candidate ranking table.
func renderRankingPage(pdf *fpdf.Fpdf, result model.FinderResult, unit model.Unit) {
	y := drawPageTitle(pdf, "Smallest Box Search")

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	best := "No candidate holds every item"
	if result.Best != nil {
		best = fmt.Sprintf("Best fit: %s (%s)", result.Best.Label, model.FormatDims(result.Best.Candidate, unit))
	}
	pdf.CellFormat(200, 7, best, "", 0, "L", false, 0, "")
	y += 10

	colWidths := []float64{12, 65, 65, 45, 25, 25, 30}
	headers := []string{"Rank", "Candidate", "Dimensions", "Volume", "Fits", "Placed", "Efficiency"}
	y = drawTableHeader(pdf, y, colWidths, headers)

	pdf.SetFont("Helvetica", "", 9)
	for i, e := range result.Ranked {
		if y+rowHeight > pageHeight-marginBottom-6 {
			drawFooter(pdf)
			pdf.AddPage()
			y = drawTableHeader(pdf, marginTop, colWidths, headers)
			pdf.SetFont("Helvetica", "", 9)
		}
		fits := "no"
		if e.Fits {
			fits = "yes"
		}
		row := []string{
			fmt.Sprintf("%d", i+1),
			e.Label,
			model.FormatDims(e.Candidate, unit),
			model.FormatVolume(e.Volume, unit),
			fits,
			fmt.Sprintf("%d/%d", e.Result.PlacedCount, e.Result.TotalItems),
			fmt.Sprintf("%.1f%%", e.Result.Efficiency),
		}
		y = drawTableRow(pdf, y, i, colWidths, row)
	}

	drawFooter(pdf)
}

func drawPageTitle(pdf *fpdf.Fpdf, title string) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, title, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)
	return marginTop + 18
}

func drawTableHeader(pdf *fpdf.Fpdf, y float64, colWidths []float64, headers []string) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	return y + rowHeight
}

func drawTableRow(pdf *fpdf.Fpdf, y float64, i int, colWidths []float64, cells []string) float64 {
	if i%2 == 0 {
		pdf.SetFillColor(245, 245, 245)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	xPos := marginLeft
	for j, cell := range cells {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[j], rowHeight, cell, "1", 0, "C", true, 0, "")
		xPos += colWidths[j]
	}
	return y + rowHeight
}

func drawFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, footerText, "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
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

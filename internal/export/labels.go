package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BoxFit/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each piece label's QR code.
// Lengths are in Unit.
type LabelInfo struct {
	ItemID      string     `json:"item_id"`
	Label       string     `json:"label"`
	Copy        int        `json:"copy"`
	Unit        model.Unit `json:"unit"`
	Size        model.Dims `json:"size"`
	Orientation model.Dims `json:"orientation"` // Size as it sits in the box
	Rotated     bool       `json:"rotated"`
	X           float64    `json:"x"`
	Y           float64    `json:"y"`
	Z           float64    `json:"z"`
	Step        int        `json:"step"` // 1-based packing order
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// ExportLabels generates a PDF of QR-coded labels, one per placed piece in
// packing order, laid out on Avery 5160 sheets (3 x 10 on US Letter).
func ExportLabels(path string, result model.PackResult, unit model.Unit) error {
	labels := CollectLabelInfos(result, unit)
	if len(labels) == 0 {
		return fmt.Errorf("no pieces placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		x := labelMarginLeft + float64(posOnPage%labelCols)*labelWidth
		y := labelMarginTop + float64(posOnPage/labelCols)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Label, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", info.Step)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	title := fmt.Sprintf("%s #%d", info.Label, info.Copy)
	if pdf.GetStringWidth(title) > textW {
		for len(title) > 0 && pdf.GetStringWidth(title+"...") > textW {
			title = title[:len(title)-1]
		}
		title += "..."
	}
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%s %s", info.Size, info.Unit), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("Step %d @ (%.2f, %.2f, %.2f)", info.Step, info.X, info.Y, info.Z), "", 1, "L", false, 0, "")

	if info.Rotated {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Turn to "+info.Orientation.String(), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts label data for every placement, in packing
// order, converted to unit and rounded to hundredths.
func CollectLabelInfos(result model.PackResult, unit model.Unit) []LabelInfo {
	var labels []LabelInfo
	for i, p := range result.Placements {
		// Padding is the same on every axis, so stripping it from the
		// oriented size gives the bare item as it sits in the box.
		pad2 := p.InflatedSize.L - p.OriginalSize.L
		oriented := model.Dims{L: p.Size.L - pad2, W: p.Size.W - pad2, H: p.Size.H - pad2}
		labels = append(labels, LabelInfo{
			ItemID:      p.ItemID,
			Label:       p.Label,
			Copy:        p.CopyIndex,
			Unit:        unit,
			Size:        roundDims(model.DimsFromCm(p.OriginalSize, unit)),
			Orientation: roundDims(model.DimsFromCm(oriented, unit)),
			Rotated:     p.Size != p.InflatedSize,
			X:           round2(model.FromCm(p.Position.X, unit)),
			Y:           round2(model.FromCm(p.Position.Y, unit)),
			Z:           round2(model.FromCm(p.Position.Z, unit)),
			Step:        i + 1,
		})
	}
	return labels
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func roundDims(d model.Dims) model.Dims {
	return model.Dims{L: round2(d.L), W: round2(d.W), H: round2(d.H)}
}

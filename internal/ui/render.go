package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/piwi3910/BoxFit/internal/model"
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(MutedStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCellStyle
			}
			return cellStyle
		})
}

func field(label, value string) string {
	return LabelStyle.Render(label) + ValueStyle.Render(value)
}

func dimWeightText(lb, divisor float64) string {
	return fmt.Sprintf("%.2f lb (divisor %g in^3/lb)", lb, divisor)
}

func status(ok bool, pass, fail string) string {
	if ok {
		return PassStyle.Render(IconPass + " " + pass)
	}
	return FailStyle.Render(IconFail + " " + fail)
}

// RenderPack writes the summary of a single-container run: fit status,
// volumes, efficiency and, when divisor is positive, the dimensional weight
// of the container. divisor is in cubic inches per pound for every unit. Lengths in r are centimetres.
func RenderPack(w io.Writer, r model.PackResult, unit model.Unit, divisor float64) error {
	lines := []string{
		HeadingStyle.Render("Packing result"),
		status(r.Success, "All items fit", fmt.Sprintf("%d of %d pieces did not fit", r.UnplacedCount, r.TotalItems)),
		"",
		field("Container", model.FormatDims(r.Container, unit)),
		field("Container volume", model.FormatVolume(r.ContainerVolume, unit)),
		field("Used volume", model.FormatVolume(r.UsedVolume, unit)),
		field("Unused volume", model.FormatVolume(r.UnusedVolume, unit)),
		field("Efficiency", fmt.Sprintf("%.2f%%", r.Efficiency)),
		field("Placed", fmt.Sprintf("%d / %d", r.PlacedCount, r.TotalItems)),
		field("Free spaces", strconv.Itoa(r.FreeSpaceCount)),
	}
	if dw, ok := model.DimWeightFromCm3(r.ContainerVolume, divisor); ok {
		lines = append(lines, field("Dim. weight", dimWeightText(dw, divisor)))
	}

	if len(r.Unplaced) > 0 {
		lines = append(lines, "", WarnStyle.Render(IconWarn+" Unplaced"))
		for _, pc := range r.Unplaced {
			lines = append(lines, MutedStyle.Render(fmt.Sprintf("  %s #%d  %s", pc.Label, pc.CopyIndex, model.FormatDims(pc.Original, unit))))
		}
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// RenderPlacements writes one table row per placed piece, in packing order.
func RenderPlacements(w io.Writer, r model.PackResult, unit model.Unit) error {
	if len(r.Placements) == 0 {
		_, err := fmt.Fprintln(w, MutedStyle.Render("No pieces placed."))
		return err
	}

	t := newTable("#", "Item", "Copy", "X", "Y", "Z", "Oriented ("+string(unit)+")")
	for i, p := range r.Placements {
		t.Row(
			strconv.Itoa(i+1),
			p.Label,
			strconv.Itoa(p.CopyIndex),
			model.FormatLength(p.Position.X, unit),
			model.FormatLength(p.Position.Y, unit),
			model.FormatLength(p.Position.Z, unit),
			strings.TrimSuffix(model.FormatDims(p.Size, unit), " "+string(unit)),
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// RenderRanking writes the candidate boxes in ranked order and marks the
// best fit.
func RenderRanking(w io.Writer, fr model.FinderResult, unit model.Unit, divisor float64) error {
	t := newTable("Rank", "Box", "Dimensions", "Volume", "Fits", "Placed", "Efficiency")
	for i, e := range fr.Ranked {
		fits := FailStyle.Render(IconFail)
		if e.Fits {
			fits = PassStyle.Render(IconPass)
		}
		t.Row(
			strconv.Itoa(i+1),
			e.Label,
			model.FormatDims(e.Candidate, unit),
			model.FormatVolume(e.Volume, unit),
			fits,
			fmt.Sprintf("%d/%d", e.Result.PlacedCount, e.Result.TotalItems),
			fmt.Sprintf("%.2f%%", e.Result.Efficiency),
		)
	}

	lines := []string{HeadingStyle.Render("Smallest box search"), t.Render()}
	if fr.Best != nil {
		best := fmt.Sprintf("%s %s (%s)", IconPass, fr.Best.Label, model.FormatDims(fr.Best.Candidate, unit))
		lines = append(lines, PassStyle.Render("Best fit: "+best))
		if dw, ok := model.DimWeightFromCm3(fr.Best.Volume, divisor); ok {
			lines = append(lines, field("Dim. weight", dimWeightText(dw, divisor)))
		}
	} else {
		lines = append(lines, FailStyle.Render(IconFail+" No candidate box holds every item"))
	}

	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// RenderPresets lists box presets converted to unit.
func RenderPresets(w io.Writer, store model.PresetStore, unit model.Unit) error {
	t := newTable("ID", "Name", "Dimensions", "Original")
	for _, p := range store.Boxes {
		b := p.Box(unit)
		orig := p.Unit
		if orig == "" {
			orig = model.UnitInch
		}
		t.Row(
			p.ID,
			p.Name,
			fmt.Sprintf("%.2f x %.2f x %.2f %s", b.L, b.W, b.H, unit),
			fmt.Sprintf("%g x %g x %g %s", p.L, p.W, p.H, orig),
		)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// RenderIssues writes import warnings and errors, one per line.
func RenderIssues(w io.Writer, source string, warnings, errs []string) error {
	var lines []string
	for _, m := range warnings {
		lines = append(lines, WarnStyle.Render(fmt.Sprintf("%s %s: %s", IconWarn, source, m)))
	}
	for _, m := range errs {
		lines = append(lines, FailStyle.Render(fmt.Sprintf("%s %s: %s", IconFail, source, m)))
	}
	if len(lines) == 0 {
		return nil
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

// RenderEstimate writes the volume-only check of a load against one box.
func RenderEstimate(w io.Writer, est model.VolumeEstimate, unit model.Unit) error {
	fill := fmt.Sprintf("%.2f%%", est.FillPercent)
	if est.FillPercent > 100 {
		fill = WarnStyle.Render(fill + " " + IconWarn)
	}
	lines := []string{
		HeadingStyle.Render("Volume estimate"),
		field("Item volume", model.FormatVolume(est.TotalItemVolume, unit)),
		field("Box volume", model.FormatVolume(est.BoxVolume, unit)),
		field("Fill", fill),
		field("Boxes (min)", strconv.Itoa(est.BoxesNeededMin)),
	}
	_, err := fmt.Fprintln(w, strings.Join(lines, "\n"))
	return err
}

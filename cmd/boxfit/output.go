package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/piwi3910/BoxFit/internal/export"
	"github.com/piwi3910/BoxFit/internal/model"
	"github.com/piwi3910/BoxFit/internal/ui"
)

// outputFlags are the report and export options shared by pack and find.
type outputFlags struct {
	json       bool
	placements bool
	pdf        string
	labels     string
	dxf        string
	strict     bool
}

// withSuffix returns a copy whose export paths carry "-suffix" before the
// extension, e.g. layout.pdf becomes layout-pack.pdf.
func (of outputFlags) withSuffix(suffix string) outputFlags {
	of.pdf = suffixPath(of.pdf, suffix)
	of.labels = suffixPath(of.labels, suffix)
	of.dxf = suffixPath(of.dxf, suffix)
	return of
}

func suffixPath(path, suffix string) string {
	if path == "" {
		return ""
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + suffix + ext
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// exportPack writes the requested files for a single-container result.
func (a *app) exportPack(of outputFlags, r model.PackResult, unit model.Unit) error {
	if of.pdf != "" {
		if err := export.ExportPDF(of.pdf, r, unit); err != nil {
			return fmt.Errorf("failed to export PDF: %w", err)
		}
		a.log.Info("wrote PDF", "path", of.pdf)
	}
	if of.labels != "" {
		if err := export.ExportLabels(of.labels, r, unit); err != nil {
			return fmt.Errorf("failed to export labels: %w", err)
		}
		a.log.Info("wrote labels", "path", of.labels)
	}
	if of.dxf != "" {
		if err := export.ExportDXF(of.dxf, r, unit); err != nil {
			return fmt.Errorf("failed to export DXF: %w", err)
		}
		a.log.Info("wrote DXF", "path", of.dxf)
	}
	return nil
}

// exportFind writes the ranking PDF and the labels and DXF of the best box.
func (a *app) exportFind(of outputFlags, fr model.FinderResult, unit model.Unit) error {
	if of.pdf != "" {
		if err := export.ExportFinderPDF(of.pdf, fr, unit); err != nil {
			return fmt.Errorf("failed to export PDF: %w", err)
		}
		a.log.Info("wrote PDF", "path", of.pdf)
	}
	if fr.Best == nil {
		return nil
	}
	best := of
	best.pdf = ""
	return a.exportPack(best, fr.Best.Result, unit)
}

// printPack writes a single-container result as text, or as JSON with
// --json.
func (a *app) printPack(of outputFlags, r model.PackResult, unit model.Unit) error {
	if of.json {
		return writeJSON(a.out, r.ToUnit(unit))
	}
	if err := ui.RenderPack(a.out, r, unit, a.cfg.DimWeightDivisor); err != nil {
		return err
	}
	if of.placements {
		return ui.RenderPlacements(a.out, r, unit)
	}
	return nil
}

func (a *app) printFind(of outputFlags, fr model.FinderResult, unit model.Unit) error {
	if of.json {
		return writeJSON(a.out, fr.ToUnit(unit))
	}
	if err := ui.RenderRanking(a.out, fr, unit, a.cfg.DimWeightDivisor); err != nil {
		return err
	}
	if of.placements && fr.Best != nil {
		return ui.RenderPlacements(a.out, fr.Best.Result, unit)
	}
	return nil
}

func (a *app) reportPack(of outputFlags, r model.PackResult, unit model.Unit) error {
	if err := a.printPack(of, r, unit); err != nil {
		return err
	}
	if err := a.exportPack(of, r, unit); err != nil {
		return err
	}
	if of.strict && !r.Success {
		return errDidNotFit
	}
	return nil
}

func (a *app) reportFind(of outputFlags, fr model.FinderResult, unit model.Unit) error {
	if err := a.printFind(of, fr, unit); err != nil {
		return err
	}
	if err := a.exportFind(of, fr, unit); err != nil {
		return err
	}
	if of.strict && !fr.AnyFit {
		return errDidNotFit
	}
	return nil
}

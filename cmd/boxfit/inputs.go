package main

import (
	"fmt"

	"github.com/piwi3910/BoxFit/internal/importer"
	"github.com/piwi3910/BoxFit/internal/model"
	"github.com/piwi3910/BoxFit/internal/ui"
)

// collectItems merges --item specs and an optional items file. Lengths stay
// in the user's unit.
func (a *app) collectItems(specs []string, file string) ([]model.Item, error) {
	var items []model.Item
	for i, s := range specs {
		it, err := parseItemSpec(s, i+1)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	if file != "" {
		res := importer.ImportItems(file)
		if err := ui.RenderIssues(a.errOut, file, res.Warnings, res.Errors); err != nil {
			return nil, err
		}
		if len(res.Errors) > 0 {
			return nil, fmt.Errorf("failed to import items from %s: %d error(s)", file, len(res.Errors))
		}
		a.log.Debug("imported items", "file", file, "count", len(res.Items))
		items = append(items, res.Items...)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("no items given: use --item or --items")
	}
	return items, nil
}

// collectCandidates merges --candidate specs, a candidates file and box
// presets, in that order. Preset sizes are converted into unit.
func (a *app) collectCandidates(specs []string, file string, allPresets bool, presetIDs []string, unit model.Unit) ([]model.Box, error) {
	var boxes []model.Box
	for i, s := range specs {
		b, err := parseCandidateSpec(s, i+1)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, b)
	}

	if file != "" {
		res := importer.ImportBoxes(file)
		if err := ui.RenderIssues(a.errOut, file, res.Warnings, res.Errors); err != nil {
			return nil, err
		}
		if len(res.Errors) > 0 {
			return nil, fmt.Errorf("failed to import candidates from %s: %d error(s)", file, len(res.Errors))
		}
		boxes = append(boxes, res.Boxes...)
	}

	if allPresets || len(presetIDs) > 0 {
		store, err := a.loadPresets()
		if err != nil {
			return nil, err
		}
		if allPresets {
			boxes = append(boxes, store.AsBoxes(unit)...)
		}
		for _, id := range presetIDs {
			p := store.FindByID(id)
			if p == nil {
				return nil, fmt.Errorf("preset %q not found", id)
			}
			boxes = append(boxes, p.Box(unit))
		}
	}

	if len(boxes) == 0 {
		return nil, fmt.Errorf("no candidate boxes given: use --candidate, --candidates, --presets or --preset")
	}
	return boxes, nil
}

// resolveContainer reads the container from --container or --preset.
func (a *app) resolveContainer(dims, presetID string, unit model.Unit) (model.Box, error) {
	switch {
	case dims != "" && presetID != "":
		return model.Box{}, fmt.Errorf("use either --container or --preset, not both")
	case dims != "":
		d, err := parseDims(dims)
		if err != nil {
			return model.Box{}, err
		}
		return model.NewBox("Container", d.L, d.W, d.H), nil
	case presetID != "":
		store, err := a.loadPresets()
		if err != nil {
			return model.Box{}, err
		}
		p := store.FindByID(presetID)
		if p == nil {
			return model.Box{}, fmt.Errorf("preset %q not found", presetID)
		}
		return p.Box(unit), nil
	default:
		return model.Box{}, fmt.Errorf("no container given: use --container or --preset")
	}
}

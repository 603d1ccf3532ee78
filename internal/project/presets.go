package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/BoxFit/internal/model"
	"gopkg.in/yaml.v3"
)

// DefaultPresetsPath returns the default file path for box presets,
// ~/.boxfit/boxes.json.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "boxes.json")
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// SavePresets writes the preset store as {"boxes": [...]}, in YAML when the
// path ends in .yaml or .yml and JSON otherwise.
func SavePresets(path string, store model.PresetStore) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(store)
	} else {
		data, err = json.MarshalIndent(store, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to encode presets: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPresets reads a preset store. A missing file yields the built-in
// presets; a file that cannot be parsed or lists no boxes is an error.
func LoadPresets(path string) (model.PresetStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultPresets(), nil
		}
		return model.PresetStore{}, err
	}

	var store model.PresetStore
	if isYAML(path) {
		err = yaml.Unmarshal(data, &store)
	} else {
		err = json.Unmarshal(data, &store)
	}
	if err != nil {
		return model.PresetStore{}, fmt.Errorf("failed to parse presets %s: %w", path, err)
	}
	if len(store.Boxes) == 0 {
		return model.PresetStore{}, fmt.Errorf("presets file %s lists no boxes", path)
	}

	for i, b := range store.Boxes {
		if b.ID == "" {
			return model.PresetStore{}, fmt.Errorf("preset %d in %s has no id", i+1, path)
		}
		if b.Unit == "" {
			store.Boxes[i].Unit = model.UnitInch
		} else if _, err := model.ParseUnit(string(b.Unit)); err != nil {
			return model.PresetStore{}, fmt.Errorf("preset %s: %w", b.ID, err)
		}
		if !(model.Dims{L: b.L, W: b.W, H: b.H}).Valid() {
			return model.PresetStore{}, fmt.Errorf("preset %s has invalid dimensions", b.ID)
		}
	}
	return store, nil
}

// LoadPresetsOrDefault loads presets from path, or from the default
// location when path is empty.
func LoadPresetsOrDefault(path string) (model.PresetStore, error) {
	if path == "" {
		path = DefaultPresetsPath()
	}
	return LoadPresets(path)
}

// ExportPreset writes a single preset to a JSON file for sharing.
func ExportPreset(path string, preset model.BoxPreset) error {
	data, err := json.MarshalIndent(preset, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportPreset reads a single preset written by ExportPreset.
func ImportPreset(path string) (model.BoxPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.BoxPreset{}, err
	}
	var p model.BoxPreset
	if err := json.Unmarshal(data, &p); err != nil {
		return model.BoxPreset{}, fmt.Errorf("failed to parse preset: %w", err)
	}
	if p.Name == "" || !(model.Dims{L: p.L, W: p.W, H: p.H}).Valid() {
		return model.BoxPreset{}, fmt.Errorf("invalid preset in %s", path)
	}
	if p.ID == "" {
		p.ID = model.NewBoxPreset(p.Name, p.L, p.W, p.H, p.Unit).ID
	}
	return p, nil
}

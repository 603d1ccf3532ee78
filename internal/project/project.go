package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/BoxFit/internal/model"
)

// ProjectExt is the conventional extension for saved projects.
const ProjectExt = ".boxfit.json"

// SaveProject writes a project to a JSON file.
func SaveProject(path string, p model.Project) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadProject reads a project from a JSON file.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, err
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project %s: %w", path, err)
	}
	if p.Unit == "" {
		p.Unit = model.UnitInch
	}
	if _, err := model.ParseUnit(string(p.Unit)); err != nil {
		return model.Project{}, fmt.Errorf("project %s: %w", path, err)
	}
	if p.Items == nil {
		p.Items = []model.Item{}
	}
	if p.Candidates == nil {
		p.Candidates = []model.Box{}
	}
	return p, nil
}

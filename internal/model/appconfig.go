package model

// maxRecentProjects bounds AppConfig.RecentProjects.
const maxRecentProjects = 10

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new runs
	DefaultUnit      Unit    `json:"default_unit" mapstructure:"default_unit"`
	DefaultPadding   float64 `json:"default_padding" mapstructure:"default_padding"`     // in DefaultUnit
	DimWeightDivisor float64 `json:"dim_weight_divisor" mapstructure:"dim_weight_divisor"` // in^3 per lb in every unit, 0 = don't report

	// Engine
	Workers int `json:"workers" mapstructure:"workers"` // parallel candidate runs in find, <=1 = sequential

	// Files
	PresetsPath    string   `json:"presets_path" mapstructure:"presets_path"` // "" = built-in presets
	RecentProjects []string `json:"recent_projects" mapstructure:"recent_projects"`

	Log LogConfig `json:"log" mapstructure:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Format string `json:"format" mapstructure:"format"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultUnit:      UnitInch,
		DefaultPadding:   0,
		DimWeightDivisor: 139, // in^3 per lb, common US carrier divisor
		Workers:          1,
		PresetsPath:      "",
		RecentProjects:   []string{},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// AddRecentProject moves path to the front of the recent list, dropping
// duplicates and anything past the limit.
func (c *AppConfig) AddRecentProject(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentProjects {
		recent = recent[:maxRecentProjects]
	}
	c.RecentProjects = recent
}

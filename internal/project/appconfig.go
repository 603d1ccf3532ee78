// Package project persists BoxFit's files: the user config, box presets,
// saved projects and backup bundles.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/BoxFit/internal/model"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. BOXFIT_DEFAULT_UNIT=cm or
// BOXFIT_LOG_LEVEL=debug.
const EnvPrefix = "BOXFIT"

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.boxfit/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".boxfit")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from path (JSON, YAML or TOML, chosen by
// extension) layered over DefaultAppConfig, then applies BOXFIT_*
// environment overrides. A missing file or empty path yields the defaults.
func LoadAppConfig(path string) (model.AppConfig, error) {
	def := model.DefaultAppConfig()

	v := viper.New()
	v.SetDefault("default_unit", string(def.DefaultUnit))
	v.SetDefault("default_padding", def.DefaultPadding)
	v.SetDefault("dim_weight_divisor", def.DimWeightDivisor)
	v.SetDefault("workers", def.Workers)
	v.SetDefault("presets_path", def.PresetsPath)
	v.SetDefault("recent_projects", def.RecentProjects)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return model.AppConfig{}, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return model.AppConfig{}, err
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg model.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	unit, err := model.ParseUnit(string(cfg.DefaultUnit))
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("invalid default_unit: %w", err)
	}
	cfg.DefaultUnit = unit
	// Ensure RecentProjects is never nil
	if cfg.RecentProjects == nil {
		cfg.RecentProjects = []string{}
	}
	return cfg, nil
}

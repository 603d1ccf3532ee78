package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxFit/internal/model"
	"github.com/piwi3910/BoxFit/internal/project"
	"github.com/piwi3910/BoxFit/internal/ui"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage BoxFit configuration",
		Long: `Manage BoxFit configuration.

Settings are read from ~/.boxfit/config.json (or --config) and can be
overridden with BOXFIT_* environment variables, e.g. BOXFIT_DEFAULT_UNIT=cm.`,
	}
	cmd.AddCommand(
		newConfigInitCmd(a),
		newConfigShowCmd(a),
		newConfigExportCmd(a),
		newConfigImportCmd(a),
	)
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(a.configPath); err == nil && !force {
				return fmt.Errorf("config %s already exists (use --force to overwrite)", a.configPath)
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := project.SaveAppConfig(a.configPath, model.DefaultAppConfig()); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintln(a.out, ui.PassStyle.Render(fmt.Sprintf("%s Wrote %s", ui.IconPass, a.configPath)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(a.out, a.cfg)
		},
	}
}

func newConfigExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Back up the configuration and box presets to one file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadPresets()
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], a.cfg, store); err != nil {
				return err
			}
			fmt.Fprintln(a.out, ui.PassStyle.Render(fmt.Sprintf("%s Exported config and %d presets to %s", ui.IconPass, len(store.Boxes), args[0])))
			return nil
		},
	}
}

func newConfigImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Restore the configuration and box presets from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			if _, err := model.ParseUnit(string(backup.Config.DefaultUnit)); err != nil {
				return fmt.Errorf("invalid backup: %w", err)
			}
			if err := project.SaveAppConfig(a.configPath, backup.Config); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			a.cfg = backup.Config
			if err := project.SavePresets(a.presetsPath(), backup.Presets); err != nil {
				return fmt.Errorf("failed to write presets: %w", err)
			}
			fmt.Fprintln(a.out, ui.PassStyle.Render(fmt.Sprintf("%s Imported config and %d presets from %s", ui.IconPass, len(backup.Presets.Boxes), args[0])))
			return nil
		},
	}
}

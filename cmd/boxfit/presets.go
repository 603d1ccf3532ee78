package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxFit/internal/model"
	"github.com/piwi3910/BoxFit/internal/project"
	"github.com/piwi3910/BoxFit/internal/ui"
)

func newPresetsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "presets",
		Aliases: []string{"preset"},
		Short:   "Manage box presets",
		Long: `Manage the library of reusable box sizes.

Presets live in ~/.boxfit/boxes.json unless presets_path is set in the
config. Until the file exists the built-in shipping sizes are used.`,
	}
	cmd.AddCommand(
		newPresetsListCmd(a),
		newPresetsAddCmd(a),
		newPresetsRemoveCmd(a),
		newPresetsExportCmd(a),
		newPresetsImportCmd(a),
	)
	return cmd
}

func newPresetsListCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List box presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := a.unit()
			if err != nil {
				return err
			}
			store, err := a.loadPresets()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(a.out, store)
			}
			return ui.RenderPresets(a.out, store, unit)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print presets as JSON")
	return cmd
}

func newPresetsAddCmd(a *app) *cobra.Command {
	var id string
	cmd := &cobra.Command{
		Use:   "add NAME LxWxH",
		Short: "Add a box preset",
		Example: `  boxfit presets add "Wine box" 14x5x5
  boxfit presets add "Euro crate" 40x30x25 --unit cm --id crate-40`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			unit, err := a.unit()
			if err != nil {
				return err
			}
			d, err := parseDims(args[1])
			if err != nil {
				return err
			}
			store, err := a.loadPresets()
			if err != nil {
				return err
			}

			p := model.NewBoxPreset(args[0], d.L, d.W, d.H, unit)
			if id != "" {
				p.ID = id
			}
			if store.FindByID(p.ID) != nil {
				return fmt.Errorf("preset %q already exists", p.ID)
			}
			store.Add(p)
			if err := project.SavePresets(a.presetsPath(), store); err != nil {
				return fmt.Errorf("failed to save presets: %w", err)
			}
			fmt.Fprintln(a.out, ui.PassStyle.Render(fmt.Sprintf("%s Added preset %s (%s)", ui.IconPass, p.ID, p.Name)))
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Preset ID (default generated)")
	return cmd
}

func newPresetsRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a box preset",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadPresets()
			if err != nil {
				return err
			}
			if store.FindByID(args[0]) != nil && len(store.Boxes) == 1 {
				return fmt.Errorf("cannot remove the last preset")
			}
			if !store.Remove(args[0]) {
				return fmt.Errorf("preset %q not found", args[0])
			}
			if err := project.SavePresets(a.presetsPath(), store); err != nil {
				return fmt.Errorf("failed to save presets: %w", err)
			}
			fmt.Fprintln(a.out, ui.PassStyle.Render(fmt.Sprintf("%s Removed preset %s", ui.IconPass, args[0])))
			return nil
		},
	}
}

func newPresetsExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export ID FILE",
		Short: "Export one preset to a JSON file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.loadPresets()
			if err != nil {
				return err
			}
			p := store.FindByID(args[0])
			if p == nil {
				return fmt.Errorf("preset %q not found", args[0])
			}
			if err := project.ExportPreset(args[1], *p); err != nil {
				return fmt.Errorf("failed to export preset: %w", err)
			}
			fmt.Fprintln(a.out, ui.PassStyle.Render(fmt.Sprintf("%s Exported preset %s to %s", ui.IconPass, p.ID, args[1])))
			return nil
		},
	}
}

func newPresetsImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import a preset from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.ImportPreset(args[0])
			if err != nil {
				return fmt.Errorf("failed to import preset: %w", err)
			}
			store, err := a.loadPresets()
			if err != nil {
				return err
			}
			if store.FindByID(p.ID) != nil {
				return fmt.Errorf("preset %q already exists", p.ID)
			}
			store.Add(p)
			if err := project.SavePresets(a.presetsPath(), store); err != nil {
				return fmt.Errorf("failed to save presets: %w", err)
			}
			fmt.Fprintln(a.out, ui.PassStyle.Render(fmt.Sprintf("%s Imported preset %s (%s)", ui.IconPass, p.ID, p.Name)))
			return nil
		},
	}
}

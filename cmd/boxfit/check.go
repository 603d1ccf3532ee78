package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxFit/internal/engine"
	"github.com/piwi3910/BoxFit/internal/model"
	"github.com/piwi3910/BoxFit/internal/ui"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Check a saved pack result for overlaps and out-of-bounds pieces",
		Long: `Check a pack result written by "boxfit pack --json".

Every placement must lie inside the container and no two placements may
share volume. Exits with an error when the layout has issues.`,
		Example: `  boxfit pack -c 12x10x8 -i 6x4x4:2 --json > layout.json
  boxfit check layout.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var r model.PackResult
			if err := json.Unmarshal(data, &r); err != nil {
				return fmt.Errorf("failed to parse pack result %s: %w", args[0], err)
			}
			if !r.Container.Valid() {
				return fmt.Errorf("%s has no valid container", args[0])
			}

			issues := engine.CheckLayout(r)
			if len(issues) == 0 {
				fmt.Fprintln(a.out, ui.PassStyle.Render(fmt.Sprintf("%s %d placements, no issues", ui.IconPass, len(r.Placements))))
				return nil
			}
			if err := ui.RenderIssues(a.out, args[0], nil, engine.FormatLayoutIssues(issues)); err != nil {
				return err
			}
			return fmt.Errorf("layout has %d issue(s)", len(issues))
		},
	}
}

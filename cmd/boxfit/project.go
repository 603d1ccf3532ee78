package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxFit/internal/model"
	"github.com/piwi3910/BoxFit/internal/project"
	"github.com/piwi3910/BoxFit/internal/ui"
)

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Save and re-run packing projects",
	}
	cmd.AddCommand(
		newProjectSaveCmd(a),
		newProjectRunCmd(a),
		newProjectRecentCmd(a),
	)
	return cmd
}

type projectSaveOptions struct {
	name           string
	container      string
	preset         string
	items          []string
	itemsFile      string
	candidates     []string
	candidatesFile string
	allPresets     bool
	presetIDs      []string
	padding        float64
}

func newProjectSaveCmd(a *app) *cobra.Command {
	var opts projectSaveOptions

	cmd := &cobra.Command{
		Use:   "save FILE",
		Short: "Save items, container and candidates to a project file",
		Example: `  boxfit project save order-1042` + project.ProjectExt + ` --container 12x10x8 --item 6x4x4:2:Book
  boxfit project save order-1042` + project.ProjectExt + ` --presets --items order.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProjectSave(cmd, args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.name, "name", "", "Project name (default from file name)")
	f.StringVarP(&opts.container, "container", "c", "", "Container size LxWxH")
	f.StringVar(&opts.preset, "container-preset", "", "Use a box preset as the container")
	f.StringArrayVarP(&opts.items, "item", "i", nil, "Item LxWxH[:QTY[:LABEL]] (repeatable)")
	f.StringVar(&opts.itemsFile, "items", "", "Import items from a CSV or Excel file")
	f.StringArrayVar(&opts.candidates, "candidate", nil, "Candidate box LxWxH[:LABEL] (repeatable)")
	f.StringVar(&opts.candidatesFile, "candidates", "", "Import candidate boxes from a CSV or Excel file")
	f.BoolVar(&opts.allPresets, "presets", false, "Add every box preset as a candidate")
	f.StringArrayVar(&opts.presetIDs, "preset", nil, "Add one box preset as a candidate (repeatable)")
	f.Float64VarP(&opts.padding, "padding", "p", 0, "Padding added to every item face (default from config)")
	return cmd
}

func (a *app) runProjectSave(cmd *cobra.Command, path string, opts projectSaveOptions) error {
	unit, err := a.unit()
	if err != nil {
		return err
	}

	p := model.NewProject()
	p.Unit = unit
	p.Name = opts.name
	if p.Name == "" {
		p.Name = projectNameFromPath(path)
	}
	if cmd.Flags().Changed("padding") {
		p.Padding = opts.padding
	} else {
		p.Padding = model.ConvertLength(a.cfg.DefaultPadding, a.cfg.DefaultUnit, unit)
	}

	if p.Items, err = a.collectItems(opts.items, opts.itemsFile); err != nil {
		return err
	}
	if opts.container != "" || opts.preset != "" {
		box, err := a.resolveContainer(opts.container, opts.preset, unit)
		if err != nil {
			return err
		}
		p.Container = &box
	}
	if len(opts.candidates) > 0 || opts.candidatesFile != "" || opts.allPresets || len(opts.presetIDs) > 0 {
		if p.Candidates, err = a.collectCandidates(opts.candidates, opts.candidatesFile, opts.allPresets, opts.presetIDs, unit); err != nil {
			return err
		}
	}
	if err := p.Validate(); err != nil {
		return err
	}

	if err := project.SaveProject(path, p); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	a.rememberProject(path)
	fmt.Fprintln(a.out, ui.PassStyle.Render(fmt.Sprintf("%s Saved project %q to %s", ui.IconPass, p.Name, path)))
	return nil
}

// rememberProject records path in the recent list. Failing to update the
// config never fails the command.
func (a *app) rememberProject(path string) {
	a.cfg.AddRecentProject(path)
	if err := project.SaveAppConfig(a.configPath, a.cfg); err != nil {
		a.log.Warn("failed to update recent projects", "error", err)
	}
}

func projectNameFromPath(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), project.ProjectExt)
	base = strings.TrimSuffix(base, ".json")
	if base == "" || base == "." {
		return "Untitled"
	}
	return base
}

type projectRunOptions struct {
	mode     string
	estimate bool
	out      outputFlags
}

func newProjectRunCmd(a *app) *cobra.Command {
	var opts projectRunOptions

	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a saved project",
		Long: `Run a saved project.

A project with a container is packed into it; a project with candidate boxes
is searched for the smallest box. With both, both run unless --mode picks one.
Reports use the project's unit unless --unit is given.

The output flags apply to every mode that runs. With --json the result is a
single object with "pack" and "find" keys; a mode that did not run is left
out. When both modes run, export files get a -pack or -find suffix before
the extension, so --pdf layout.pdf writes layout-pack.pdf and
layout-find.pdf. --strict fails when either mode leaves items unpacked.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runProject(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.mode, "mode", "auto", "What to run: auto, pack or find")
	cmd.Flags().BoolVar(&opts.estimate, "estimate", false, "Also show the volume-only estimate")
	addOutputFlags(cmd, &opts.out)
	return cmd
}

func (a *app) runProject(cmd *cobra.Command, path string, opts projectRunOptions) error {
	p, err := project.LoadProject(path)
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}
	if err := p.Validate(); err != nil {
		return err
	}

	unit := p.Unit
	if a.unitFlag != "" {
		if unit, err = a.unit(); err != nil {
			return err
		}
	}

	runPack := p.Container != nil
	runFind := len(p.Candidates) > 0
	switch opts.mode {
	case "auto":
	case "pack":
		if !runPack {
			return fmt.Errorf("project %q has no container", p.Name)
		}
		runFind = false
	case "find":
		if !runFind {
			return fmt.Errorf("project %q has no candidate boxes", p.Name)
		}
		runPack = false
	default:
		return fmt.Errorf("unknown mode %q (expected auto, pack or find)", opts.mode)
	}

	a.log.Debug("running project", "name", p.Name, "pack", runPack, "find", runFind)
	items := itemsToCm(p.Items, p.Unit)
	paddingCm := model.ToCm(p.Padding, p.Unit)

	var out projectRunOutput
	if runPack {
		container := model.DimsToCm(p.Container.Dims(), p.Unit)
		r, err := a.packCm(container, items, paddingCm)
		if err != nil {
			return err
		}
		out.Pack = &r
		if opts.estimate {
			if err := a.renderEstimate(opts.out, container, items, paddingCm, unit); err != nil {
				return err
			}
		}
	}
	if runFind {
		fr, err := a.packer(paddingCm).FindSmallest(cmd.Context(), boxesToCm(p.Candidates, p.Unit), items)
		if err != nil {
			return err
		}
		out.Find = &fr
	}

	if err := a.reportProject(opts.out, out, unit); err != nil {
		return err
	}
	a.rememberProject(path)
	if opts.out.strict && !out.success() {
		return errDidNotFit
	}
	return nil
}

// projectRunOutput is the --json document of "project run". A mode that did
// not run is omitted.
type projectRunOutput struct {
	Pack *model.PackResult   `json:"pack,omitempty"`
	Find *model.FinderResult `json:"find,omitempty"`
}

func (o projectRunOutput) success() bool {
	if o.Pack != nil && !o.Pack.Success {
		return false
	}
	if o.Find != nil && !o.Find.AnyFit {
		return false
	}
	return true
}

// reportProject prints the results and writes exports. When both modes ran
// the export files get a -pack or -find suffix so neither overwrites the
// other.
func (a *app) reportProject(of outputFlags, out projectRunOutput, unit model.Unit) error {
	packOF, findOF := of, of
	if out.Pack != nil && out.Find != nil {
		packOF, findOF = of.withSuffix("pack"), of.withSuffix("find")
	}

	if of.json {
		doc := projectRunOutput{}
		if out.Pack != nil {
			r := out.Pack.ToUnit(unit)
			doc.Pack = &r
		}
		if out.Find != nil {
			fr := out.Find.ToUnit(unit)
			doc.Find = &fr
		}
		if err := writeJSON(a.out, doc); err != nil {
			return err
		}
	}

	if out.Pack != nil {
		if !of.json {
			if err := a.printPack(of, *out.Pack, unit); err != nil {
				return err
			}
		}
		if err := a.exportPack(packOF, *out.Pack, unit); err != nil {
			return err
		}
	}
	if out.Find != nil {
		if !of.json {
			if err := a.printFind(of, *out.Find, unit); err != nil {
				return err
			}
		}
		if err := a.exportFind(findOF, *out.Find, unit); err != nil {
			return err
		}
	}
	return nil
}

func newProjectRecentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently used projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(a.cfg.RecentProjects) == 0 {
				fmt.Fprintln(a.out, ui.MutedStyle.Render("No recent projects."))
				return nil
			}
			for i, p := range a.cfg.RecentProjects {
				fmt.Fprintf(a.out, "%2d. %s\n", i+1, p)
			}
			return nil
		},
	}
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/BoxFit/internal/engine"
	"github.com/piwi3910/BoxFit/internal/model"
	"github.com/piwi3910/BoxFit/internal/ui"
)

type packOptions struct {
	container string
	preset    string
	items     []string
	itemsFile string
	padding   float64
	estimate  bool
	out       outputFlags
}

func newPackCmd(a *app) *cobra.Command {
	var opts packOptions

	cmd := &cobra.Command{
		Use:   "pack",
		Short: "Pack items into a single container",
		Long: `Pack items into a single container and report where every piece goes.

Items are packed largest first. The first piece that fits nowhere ends the
run: it and every piece after it are reported as unplaced.`,
		Example: `  boxfit pack --container 12x10x8 --item 6x4x4:2:Book --item 3x3x3
  boxfit pack --preset ship-12-10-8 --items order.csv --padding 0.25 --pdf layout.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPack(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.container, "container", "c", "", "Container size LxWxH")
	f.StringVar(&opts.preset, "preset", "", "Use a box preset as the container")
	f.StringArrayVarP(&opts.items, "item", "i", nil, "Item LxWxH[:QTY[:LABEL]] (repeatable)")
	f.StringVar(&opts.itemsFile, "items", "", "Import items from a CSV or Excel file")
	f.Float64VarP(&opts.padding, "padding", "p", 0, "Padding added to every item face (default from config)")
	f.BoolVar(&opts.estimate, "estimate", false, "Also show the volume-only estimate")
	addOutputFlags(cmd, &opts.out)
	return cmd
}

func addOutputFlags(cmd *cobra.Command, of *outputFlags) {
	f := cmd.Flags()
	f.BoolVar(&of.json, "json", false, "Print the result as JSON")
	f.BoolVar(&of.placements, "placements", false, "List every placement")
	f.StringVar(&of.pdf, "pdf", "", "Write a PDF layout report")
	f.StringVar(&of.labels, "labels", "", "Write a PDF sheet of QR labels")
	f.StringVar(&of.dxf, "dxf", "", "Write a 3D wireframe DXF")
	f.BoolVar(&of.strict, "strict", false, "Exit with status 2 when not every item fits")
}

// paddingCm returns the padding flag in centimetres, falling back to the
// configured default when the flag was not set.
func (a *app) paddingCm(cmd *cobra.Command, flag float64, unit model.Unit) float64 {
	if cmd.Flags().Changed("padding") {
		return model.ToCm(flag, unit)
	}
	return model.ToCm(a.cfg.DefaultPadding, a.cfg.DefaultUnit)
}

func (a *app) runPack(cmd *cobra.Command, opts packOptions) error {
	unit, err := a.unit()
	if err != nil {
		return err
	}
	box, err := a.resolveContainer(opts.container, opts.preset, unit)
	if err != nil {
		return err
	}
	items, err := a.collectItems(opts.items, opts.itemsFile)
	if err != nil {
		return err
	}
	container := model.DimsToCm(box.Dims(), unit)
	cmItems := itemsToCm(items, unit)
	paddingCm := a.paddingCm(cmd, opts.padding, unit)

	result, err := a.packCm(container, cmItems, paddingCm)
	if err != nil {
		return err
	}
	if opts.estimate {
		if err := a.renderEstimate(opts.out, container, cmItems, paddingCm, unit); err != nil {
			return err
		}
	}
	return a.reportPack(opts.out, result, unit)
}

// packCm runs a single-container pack. Every length is in centimetres.
func (a *app) packCm(container model.Dims, cmItems []model.Item, paddingCm float64) (model.PackResult, error) {
	result, err := a.packer(paddingCm).Pack(container, cmItems)
	if err != nil {
		return model.PackResult{}, err
	}
	for _, msg := range engine.FormatLayoutIssues(engine.CheckLayout(result)) {
		a.log.Warn("layout check failed", "issue", msg)
	}
	return result, nil
}

// renderEstimate prints the volume-only check unless the output is JSON.
func (a *app) renderEstimate(of outputFlags, container model.Dims, cmItems []model.Item, paddingCm float64, unit model.Unit) error {
	if of.json {
		return nil
	}
	est := model.EstimateVolume(cmItems, container, paddingCm, 0)
	return ui.RenderEstimate(a.out, est, unit)
}

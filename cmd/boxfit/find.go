package main

import (
	"github.com/spf13/cobra"
)

type findOptions struct {
	candidates     []string
	candidatesFile string
	allPresets     bool
	presetIDs      []string
	items          []string
	itemsFile      string
	padding        float64
	out            outputFlags
}

func newFindCmd(a *app) *cobra.Command {
	var opts findOptions

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find the smallest box that holds every item",
		Long: `Pack the items into every candidate box and rank the boxes by volume.

The best box is the smallest one that holds every item. Ties are broken by
length, width, height and then the order the candidates were given in.`,
		Example: `  boxfit find --presets --item 6x4x4:2 --item 3x3x3
  boxfit find --candidate 8x6x4:Mailer --candidate 12x10x8 --items order.xlsx --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFind(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringArrayVar(&opts.candidates, "candidate", nil, "Candidate box LxWxH[:LABEL] (repeatable)")
	f.StringVar(&opts.candidatesFile, "candidates", "", "Import candidate boxes from a CSV or Excel file")
	f.BoolVar(&opts.allPresets, "presets", false, "Add every box preset as a candidate")
	f.StringArrayVar(&opts.presetIDs, "preset", nil, "Add one box preset as a candidate (repeatable)")
	f.StringArrayVarP(&opts.items, "item", "i", nil, "Item LxWxH[:QTY[:LABEL]] (repeatable)")
	f.StringVar(&opts.itemsFile, "items", "", "Import items from a CSV or Excel file")
	f.Float64VarP(&opts.padding, "padding", "p", 0, "Padding added to every item face (default from config)")
	addOutputFlags(cmd, &opts.out)
	return cmd
}

func (a *app) runFind(cmd *cobra.Command, opts findOptions) error {
	unit, err := a.unit()
	if err != nil {
		return err
	}
	boxes, err := a.collectCandidates(opts.candidates, opts.candidatesFile, opts.allPresets, opts.presetIDs, unit)
	if err != nil {
		return err
	}
	items, err := a.collectItems(opts.items, opts.itemsFile)
	if err != nil {
		return err
	}
	fr, err := a.packer(a.paddingCm(cmd, opts.padding, unit)).FindSmallest(cmd.Context(), boxesToCm(boxes, unit), itemsToCm(items, unit))
	if err != nil {
		return err
	}
	return a.reportFind(opts.out, fr, unit)
}

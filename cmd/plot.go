package cmd

import (
	"github.com/digigeolab/parkphotos/internal/ioplot"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getPlotCmd returns the plot command.
func getPlotCmd() *cobra.Command {
	var inSnapshot, outDir string

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "Render the descriptive figures",
		Long: `Render the descriptive figures of an enriched snapshot:
the coordinate scatter by visitor origin, photos per season and mean
object counts per visitor group.

Figures whose columns are absent from the snapshot are skipped.

Examples:
  parkphotos plot --in reduced.gob --out-dir ./figures`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(inSnapshot, outDir)
		},
	}

	plotCmd.Flags().StringVar(&inSnapshot, "in", "",
		"input snapshot file")
	plotCmd.Flags().StringVar(&outDir, "out-dir", "",
		"directory the figures are written into")
	plotCmd.MarkFlagRequired("in")
	plotCmd.MarkFlagRequired("out-dir")

	return plotCmd
}

func runPlot(inSnapshot, outDir string) error {
	p := ioplot.New()
	if err := p.Plot(inSnapshot, outDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

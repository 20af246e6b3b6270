package cmd

import (
	"context"

	"github.com/digigeolab/parkphotos/internal/ioreduce"
	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getReduceCmd returns the reduce command.
func getReduceCmd() *cobra.Command {
	var inSnapshot, outSnapshot, colorBy, plotPath string

	reduceCmd := &cobra.Command{
		Use:   "reduce",
		Short: "Project content vectors to plotting coordinates",
		Long: `Project the content vectors of a snapshot down to two
coordinates with the manifold-learning endpoint of the model server,
and append them to each record.

The rows are shuffled with a fixed seed before the projection and
persisted in that order, so the park-by-park grouping of the archive
never reaches the downstream stages. With --plot a scatter of the
coordinates is saved as a sanity check, colored by the --color-by
column.

The projection parameters come from the reduce section of the
configuration; the flags below override them for one run.

Examples:
  parkphotos reduce --in joined.gob --out reduced.gob
  parkphotos reduce --in joined.gob --out reduced.gob -n 40 -r 7
  parkphotos reduce --in joined.gob --out reduced.gob --plot proj.png --color-by region`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReduce(cmd, inSnapshot, outSnapshot, colorBy, plotPath)
		},
	}

	reduceCmd.Flags().StringVar(&inSnapshot, "in", "",
		"input snapshot file")
	reduceCmd.Flags().StringVar(&outSnapshot, "out", "",
		"output snapshot file")
	reduceCmd.Flags().StringVar(&colorBy, "color-by", "origin",
		"grouping column coloring the sanity-check scatter")
	reduceCmd.Flags().StringVar(&plotPath, "plot", "",
		"save a sanity-check scatter to this file")
	reduceCmd.Flags().IntP("components", "c", 0,
		"override the reduce.components setting")
	reduceCmd.Flags().IntP("neighbors", "n", 0,
		"override the reduce.neighbors setting")
	reduceCmd.Flags().Float64P("min-dist", "d", 0,
		"override the reduce.min_dist setting")
	reduceCmd.Flags().Int64P("seed", "r", 0,
		"override the reduce.seed setting")
	reduceCmd.MarkFlagRequired("in")
	reduceCmd.MarkFlagRequired("out")

	return reduceCmd
}

// reduceFlagOpts collects the projection tunables that were explicitly
// set on the command line.
func reduceFlagOpts(cmd *cobra.Command) []config.Option {
	var opts []config.Option
	fl := cmd.Flags()

	if fl.Changed("components") {
		v, _ := fl.GetInt("components")
		opts = append(opts, config.OptReduceComponents(v))
	}
	if fl.Changed("neighbors") {
		v, _ := fl.GetInt("neighbors")
		opts = append(opts, config.OptReduceNeighbors(v))
	}
	if fl.Changed("min-dist") {
		v, _ := fl.GetFloat64("min-dist")
		opts = append(opts, config.OptReduceMinDist(v))
	}
	if fl.Changed("seed") {
		v, _ := fl.GetInt64("seed")
		opts = append(opts, config.OptReduceSeed(v))
	}
	return opts
}

func runReduce(
	cmd *cobra.Command,
	inSnapshot, outSnapshot, colorBy, plotPath string,
) error {
	if opts := reduceFlagOpts(cmd); len(opts) > 0 {
		cfg.Update(opts)
	}

	r := ioreduce.New(cfg)
	err := r.Reduce(
		context.Background(), inSnapshot, outSnapshot, colorBy, plotPath,
	)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

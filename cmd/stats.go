package cmd

import (
	"github.com/digigeolab/parkphotos/internal/iostats"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getStatsCmd returns the stats command with its subcommands.
func getStatsCmd() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Run the hypothesis tests of the study",
		Long: `Run the hypothesis tests of the study over an enriched
snapshot and write their result tables.

  objects    rank-sum comparison of object counts between groups
  scenes     rank-sum comparison of per-visitor scene counts
  permanova  permutational ANOVA over the reduced coordinates`,
	}

	statsCmd.AddCommand(
		getStatsObjectsCmd(),
		getStatsScenesCmd(),
		getStatsPermanovaCmd(),
	)
	return statsCmd
}

func getStatsObjectsCmd() *cobra.Command {
	var inSnapshot, outTable string

	objectsCmd := &cobra.Command{
		Use:   "objects",
		Short: "Compare object counts between visitor groups",
		Long: `Compare the per-photo count of each object class of
interest between domestic and foreign visitors with a two-sided
rank-sum test. Only photos containing the class enter its comparison.

Examples:
  parkphotos stats objects --in joined.gob --out object_tests.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := iostats.New(cfg)
			if err := s.ObjectTests(inSnapshot, outTable); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return nil
		},
	}

	objectsCmd.Flags().StringVar(&inSnapshot, "in", "",
		"input snapshot file")
	objectsCmd.Flags().StringVar(&outTable, "out", "",
		"result table (CSV)")
	objectsCmd.MarkFlagRequired("in")
	objectsCmd.MarkFlagRequired("out")

	return objectsCmd
}

func getStatsScenesCmd() *cobra.Command {
	var inSnapshot, outTable string

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "Compare scene counts between visitor groups",
		Long: `Compare how many photos dominated by each scene of
interest a visitor took, between domestic and foreign visitors, with
a two-sided rank-sum test. The unit of observation is the visitor.

Examples:
  parkphotos stats scenes --in joined.gob --out scene_tests.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := iostats.New(cfg)
			if err := s.SceneTests(inSnapshot, outTable); err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return nil
		},
	}

	scenesCmd.Flags().StringVar(&inSnapshot, "in", "",
		"input snapshot file")
	scenesCmd.Flags().StringVar(&outTable, "out", "",
		"result table (CSV)")
	scenesCmd.MarkFlagRequired("in")
	scenesCmd.MarkFlagRequired("out")

	return scenesCmd
}

func getStatsPermanovaCmd() *cobra.Command {
	var inSnapshot, outTable, groupBy string

	permanovaCmd := &cobra.Command{
		Use:   "permanova",
		Short: "Test coordinate separation between groups",
		Long: `Test whether the reduced coordinates differ between the
groups of a column with a permutational ANOVA over the Euclidean
distance matrix. The permutation count comes from the
stats.permutations setting.

Examples:
  parkphotos stats permanova --in reduced.gob --out permanova.csv
  parkphotos stats permanova --in reduced.gob --out permanova.csv --group-by region`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := iostats.New(cfg)
			err := s.Permanova(inSnapshot, groupBy, outTable)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return nil
		},
	}

	permanovaCmd.Flags().StringVar(&inSnapshot, "in", "",
		"input snapshot file")
	permanovaCmd.Flags().StringVar(&outTable, "out", "",
		"result table (CSV)")
	permanovaCmd.Flags().StringVar(&groupBy, "group-by", "origin",
		"grouping column of the test")
	permanovaCmd.MarkFlagRequired("in")
	permanovaCmd.MarkFlagRequired("out")

	return permanovaCmd
}

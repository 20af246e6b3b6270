package cmd

import (
	"github.com/digigeolab/parkphotos/internal/iocombine"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getCombineCmd returns the combine command.
func getCombineCmd() *cobra.Command {
	var newTable, oldTable, outTable string

	combineCmd := &cobra.Command{
		Use:   "combine",
		Short: "Unify two metadata harvests into one table",
		Long: `Unify two differently-shaped metadata tables into one
table with the unified column set.

The newer harvest identifies photos by filename, the older one by a
photoid column with its own header names. Both are mapped onto the
unified schema, concatenated and deduplicated; on a duplicate photo
identifier the newer row wins.

Examples:
  parkphotos combine --new harvest2019.csv --old harvest2016.csv --out posts.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombine(newTable, oldTable, outTable)
		},
	}

	combineCmd.Flags().StringVar(&newTable, "new", "",
		"newer harvest table (CSV)")
	combineCmd.Flags().StringVar(&oldTable, "old", "",
		"older harvest table (CSV)")
	combineCmd.Flags().StringVar(&outTable, "out", "",
		"unified output table (CSV)")
	combineCmd.MarkFlagRequired("new")
	combineCmd.MarkFlagRequired("old")
	combineCmd.MarkFlagRequired("out")

	return combineCmd
}

func runCombine(newTable, oldTable, outTable string) error {
	c := iocombine.New()
	if err := c.Combine(newTable, oldTable, outTable); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

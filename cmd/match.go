package cmd

import (
	"github.com/digigeolab/parkphotos/internal/iomatch"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getMatchCmd returns the match command.
func getMatchCmd() *cobra.Command {
	var inTable, imagesDir, outTable string

	matchCmd := &cobra.Command{
		Use:   "match",
		Short: "Drop metadata rows without a downloaded image",
		Long: `Keep only the metadata rows whose photo identifier has a
matching image file under the archive root.

Both sides derive the identifier the same way, so the intersection is
by value and survives renames, re-downloads and reordered tables.

Examples:
  parkphotos match --in posts.csv --images ./images --out matched.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMatch(inTable, imagesDir, outTable)
		},
	}

	matchCmd.Flags().StringVar(&inTable, "in", "",
		"metadata table to filter (CSV)")
	matchCmd.Flags().StringVar(&imagesDir, "images", "",
		"root directory of the image archive")
	matchCmd.Flags().StringVar(&outTable, "out", "",
		"filtered output table (CSV)")
	matchCmd.MarkFlagRequired("in")
	matchCmd.MarkFlagRequired("images")
	matchCmd.MarkFlagRequired("out")

	return matchCmd
}

func runMatch(inTable, imagesDir, outTable string) error {
	m := iomatch.New()
	if err := m.Match(inTable, imagesDir, outTable); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

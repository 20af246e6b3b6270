package cmd

import (
	"context"

	"github.com/digigeolab/parkphotos/internal/iodownload"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getDownloadCmd returns the download command.
func getDownloadCmd() *cobra.Command {
	var inTable, imagesDir, outTable string

	downloadCmd := &cobra.Command{
		Use:   "download",
		Short: "Fetch the photos of a metadata table",
		Long: `Fetch the largest standard variant of every photo in a
metadata table into a park-keyed directory tree.

Files already on disk are kept, so an interrupted run can simply be
restarted. Failed fetches are journaled and their rows dropped from
the output table; every attempt is recorded in a SQLite manifest next
to the images.

Examples:
  parkphotos download --in posts.csv --images ./images --out downloaded.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(inTable, imagesDir, outTable)
		},
	}

	downloadCmd.Flags().StringVar(&inTable, "in", "",
		"metadata table to fetch photos for (CSV)")
	downloadCmd.Flags().StringVar(&imagesDir, "images", "",
		"root directory of the image archive")
	downloadCmd.Flags().StringVar(&outTable, "out", "",
		"output table trimmed to fetched photos (CSV)")
	downloadCmd.MarkFlagRequired("in")
	downloadCmd.MarkFlagRequired("images")
	downloadCmd.MarkFlagRequired("out")

	return downloadCmd
}

func runDownload(inTable, imagesDir, outTable string) error {
	d := iodownload.New(cfg)
	err := d.Download(context.Background(), inTable, imagesDir, outTable)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

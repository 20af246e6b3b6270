package cmd

import (
	"context"

	"github.com/digigeolab/parkphotos/internal/ioresize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getResizeCmd returns the resize command.
func getResizeCmd() *cobra.Command {
	var inDir, outDir string

	resizeCmd := &cobra.Command{
		Use:   "resize",
		Short: "Prepare images for the pretrained models",
		Long: `Shrink every archive image to a 900 px bound and crop it
square, into a directory tree mirroring the archive layout.

Already prepared images are skipped, so the stage can be re-run after
adding photos to the archive.

Examples:
  parkphotos resize --in ./images --out ./prepared`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResize(inDir, outDir)
		},
	}

	resizeCmd.Flags().StringVar(&inDir, "in", "",
		"root directory of the image archive")
	resizeCmd.Flags().StringVar(&outDir, "out", "",
		"root directory of the prepared tree")
	resizeCmd.MarkFlagRequired("in")
	resizeCmd.MarkFlagRequired("out")

	return resizeCmd
}

func runResize(inDir, outDir string) error {
	r := ioresize.New(cfg)
	if err := r.Resize(context.Background(), inDir, outDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

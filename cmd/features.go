package cmd

import (
	"context"

	"github.com/digigeolab/parkphotos/internal/ioinfer"
	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getFeaturesCmd returns the features command.
func getFeaturesCmd() *cobra.Command {
	var imagesDir, outSnapshot string

	featuresCmd := &cobra.Command{
		Use:   "features",
		Short: "Extract content vectors from the prepared images",
		Long: `Run the pretrained feature extractor over every prepared
image and write the first snapshot of the enriched table, one record
per image with its fixed-length content vector.

The models run on an HTTP model server; its address comes from the
inference.server_url setting. The batch size comes from
inference.batch_size; --batch-size overrides it for one run.

Examples:
  parkphotos features --images ./prepared --out features.gob
  parkphotos features --images ./prepared --out features.gob -b 8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeatures(cmd, imagesDir, outSnapshot)
		},
	}

	featuresCmd.Flags().StringVar(&imagesDir, "images", "",
		"root directory of the prepared tree")
	featuresCmd.Flags().StringVar(&outSnapshot, "out", "",
		"output snapshot file")
	featuresCmd.Flags().IntP("batch-size", "b", 0,
		"override the inference.batch_size setting")
	featuresCmd.MarkFlagRequired("images")
	featuresCmd.MarkFlagRequired("out")

	return featuresCmd
}

func runFeatures(cmd *cobra.Command, imagesDir, outSnapshot string) error {
	if cmd.Flags().Changed("batch-size") {
		v, _ := cmd.Flags().GetInt("batch-size")
		cfg.Update([]config.Option{config.OptInferenceBatchSize(v)})
	}

	e := ioinfer.NewExtractor(cfg)
	err := e.Extract(context.Background(), imagesDir, outSnapshot)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

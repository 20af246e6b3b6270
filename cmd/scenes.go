package cmd

import (
	"context"

	"github.com/digigeolab/parkphotos/internal/ioinfer"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getScenesCmd returns the scenes command.
func getScenesCmd() *cobra.Command {
	var inSnapshot, labelsPath, outSnapshot string

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "Classify the scene of every photo",
		Long: `Run the pretrained scene classifier over the images of a
snapshot and append the top three scene classes with their
probabilities. The best class is promoted into its own columns.

The label file maps the classifier outputs to scene names, one per
line.

Examples:
  parkphotos scenes --in features.gob --labels categories_places.txt --out scenes.gob`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenes(inSnapshot, labelsPath, outSnapshot)
		},
	}

	scenesCmd.Flags().StringVar(&inSnapshot, "in", "",
		"input snapshot file")
	scenesCmd.Flags().StringVar(&labelsPath, "labels", "",
		"scene label file")
	scenesCmd.Flags().StringVar(&outSnapshot, "out", "",
		"output snapshot file")
	scenesCmd.MarkFlagRequired("in")
	scenesCmd.MarkFlagRequired("labels")
	scenesCmd.MarkFlagRequired("out")

	return scenesCmd
}

func runScenes(inSnapshot, labelsPath, outSnapshot string) error {
	s := ioinfer.NewScenePredictor(cfg)
	err := s.PredictScenes(
		context.Background(), inSnapshot, labelsPath, outSnapshot,
	)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

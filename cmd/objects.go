package cmd

import (
	"context"

	"github.com/digigeolab/parkphotos/internal/ioinfer"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getObjectsCmd returns the objects command.
func getObjectsCmd() *cobra.Command {
	var inSnapshot, labelsPath, outSnapshot string

	objectsCmd := &cobra.Command{
		Use:   "objects",
		Short: "Detect object instances in every photo",
		Long: `Run the pretrained object detector over the images of a
snapshot and append every detected instance with its confidence,
together with the derived count and unique-class columns.

Detection runs one image at a time; on a CPU-only model server this
is the slowest stage of the pipeline.

Examples:
  parkphotos objects --in scenes.gob --labels coco_labels.txt --out objects.gob`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runObjects(inSnapshot, labelsPath, outSnapshot)
		},
	}

	objectsCmd.Flags().StringVar(&inSnapshot, "in", "",
		"input snapshot file")
	objectsCmd.Flags().StringVar(&labelsPath, "labels", "",
		"object class label file")
	objectsCmd.Flags().StringVar(&outSnapshot, "out", "",
		"output snapshot file")
	objectsCmd.MarkFlagRequired("in")
	objectsCmd.MarkFlagRequired("labels")
	objectsCmd.MarkFlagRequired("out")

	return objectsCmd
}

func runObjects(inSnapshot, labelsPath, outSnapshot string) error {
	d := ioinfer.NewObjectDetector(cfg)
	err := d.DetectObjects(
		context.Background(), inSnapshot, labelsPath, outSnapshot,
	)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

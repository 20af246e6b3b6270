package ioinfer

import (
	"context"
	"log/slog"
	"time"

	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/digigeolab/parkphotos/pkg/dataset"
	"github.com/digigeolab/parkphotos/pkg/pipeline"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// objectDetector implements the ObjectDetector interface.
type objectDetector struct {
	cfg    *config.Config
	client *client
}

// NewObjectDetector creates an ObjectDetector backed by the model
// server of the configuration.
func NewObjectDetector(cfg *config.Config) pipeline.ObjectDetector {
	return &objectDetector{cfg: cfg, client: newClient(cfg)}
}

// DetectObjects runs the instance detector over every image of the
// snapshot, one forward pass per image, and appends every detected
// (label, confidence) pair plus the derived aggregates. No score
// thresholding or deduplication beyond what the detector itself does.
func (o *objectDetector) DetectObjects(
	ctx context.Context,
	inSnapshot, labelsPath, outSnapshot string,
) error {
	start := time.Now()

	recs, err := dataset.ReadSnapshot(inSnapshot)
	if err != nil {
		return err
	}

	labels, err := readObjectLabels(labelsPath)
	if err != nil {
		return err
	}
	gn.Info("Loaded <em>%d</em> object labels", len(labels))

	bar := newProgressBar(len(recs), "Detecting objects: ")
	defer bar.Finish()

	for i := range recs {
		dets, err := o.detectOne(ctx, recs[i].ImagePath)
		if err != nil {
			return err
		}

		preds := make([]dataset.Prediction, 0, len(dets))
		objs := make([]string, 0, len(dets))
		for _, d := range dets {
			if d.ClassID < 0 || d.ClassID >= len(labels) {
				return ShapeError("object class id", len(labels), d.ClassID)
			}
			label := labels[d.ClassID]
			preds = append(preds, dataset.Prediction{
				Label: label,
				Prob:  d.Score,
			})
			objs = append(objs, label)
		}

		recs[i].ObjPreds = preds
		recs[i].DetectedObjs = objs
		recs[i].UniqueObjs = uniqueLabels(objs)
		recs[i].ObjCount = len(objs)
		recs[i].UniqueObjCount = len(recs[i].UniqueObjs)
		bar.Increment()
	}

	if err = dataset.WriteSnapshot(outSnapshot, recs); err != nil {
		return err
	}

	slog.Info("Object detection complete",
		"images", len(recs),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info("Detected objects in <em>%s</em> images in %s",
		humanize.Comma(int64(len(recs))),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

// detectOne sends one width-512 resized image through the detector.
func (o *objectDetector) detectOne(
	ctx context.Context,
	path string,
) ([]detection, error) {
	img, err := loadDetect(path)
	if err != nil {
		return nil, ImageLoadError(path, err)
	}

	b := img.Bounds()
	req := tensorRequest{
		Shape: []int{1, b.Dy(), b.Dx(), 3},
		Data:  tensorize(img, identityNorm),
	}

	var resp detectResponse
	if err = o.client.post(ctx, "/v1/detect", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Detections, nil
}

// uniqueLabels returns the distinct labels in first-seen order.
func uniqueLabels(objs []string) []string {
	seen := make(map[string]struct{}, len(objs))
	res := make([]string, 0, len(objs))
	for _, o := range objs {
		if _, ok := seen[o]; ok {
			continue
		}
		seen[o] = struct{}{}
		res = append(res, o)
	}
	return res
}

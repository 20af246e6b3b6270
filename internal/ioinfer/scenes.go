package ioinfer

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/digigeolab/parkphotos/pkg/dataset"
	"github.com/digigeolab/parkphotos/pkg/pipeline"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// topScenes is the number of ranked scene classes kept per image.
const topScenes = 3

// scenePredictor implements the ScenePredictor interface.
type scenePredictor struct {
	cfg    *config.Config
	client *client
}

// NewScenePredictor creates a ScenePredictor backed by the model
// server of the configuration.
func NewScenePredictor(cfg *config.Config) pipeline.ScenePredictor {
	return &scenePredictor{cfg: cfg, client: newClient(cfg)}
}

// PredictScenes classifies every image of the snapshot and appends the
// ranked top-3 scene predictions, promoting the best one to dedicated
// columns. Results are attached per record, never positionally across
// tables.
func (s *scenePredictor) PredictScenes(
	ctx context.Context,
	inSnapshot, labelsPath, outSnapshot string,
) error {
	start := time.Now()

	recs, err := dataset.ReadSnapshot(inSnapshot)
	if err != nil {
		return err
	}

	labels, err := readSceneLabels(labelsPath)
	if err != nil {
		return err
	}
	gn.Info("Loaded <em>%d</em> scene labels", len(labels))

	bar := newProgressBar(len(recs), "Predicting scene categories: ")
	defer bar.Finish()

	bs := s.cfg.Inference.BatchSize
	for i := 0; i < len(recs); i += bs {
		end := min(i+bs, len(recs))
		batch := recs[i:end]

		probs, err := s.predictBatch(ctx, batch)
		if err != nil {
			return err
		}
		if len(probs) != len(batch) {
			return ShapeError("scenes", len(batch), len(probs))
		}

		for j := range batch {
			preds, err := rankScenes(probs[j], labels)
			if err != nil {
				return err
			}
			batch[j].ScenePreds = preds
			batch[j].SceneCat = preds[0].Label
			batch[j].SceneProb = preds[0].Prob
			bar.Increment()
		}
	}

	if err = dataset.WriteSnapshot(outSnapshot, recs); err != nil {
		return err
	}

	slog.Info("Scene prediction complete",
		"images", len(recs),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info("Predicted scenes for <em>%s</em> images in %s",
		humanize.Comma(int64(len(recs))),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

func (s *scenePredictor) predictBatch(
	ctx context.Context,
	batch []dataset.Record,
) ([][]float64, error) {
	req := tensorRequest{
		Shape: []int{len(batch), modelSize, modelSize, 3},
	}
	req.Data = make([]float32, 0, len(batch)*modelSize*modelSize*3)

	for i := range batch {
		img, err := loadSquare(batch[i].ImagePath)
		if err != nil {
			return nil, ImageLoadError(batch[i].ImagePath, err)
		}
		req.Data = append(req.Data, tensorize(img, caffeNorm)...)
	}

	var resp sceneResponse
	if err := s.client.post(ctx, "/v1/scenes", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Probs, nil
}

// rankScenes picks the top classes from one probability vector.
// The sort is stable and descending by probability; ties resolve to
// the lower class index. Probabilities are rounded to 3 decimals.
func rankScenes(probs []float64, labels []string) ([]dataset.Prediction, error) {
	if len(probs) == 0 || len(probs) != len(labels) {
		return nil, ShapeError("scene probabilities", len(labels), len(probs))
	}

	idx := make([]int, len(probs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return probs[idx[a]] > probs[idx[b]]
	})

	k := min(topScenes, len(idx))
	res := make([]dataset.Prediction, 0, k)
	for _, i := range idx[:k] {
		res = append(res, dataset.Prediction{
			Label: labels[i],
			Prob:  math.Round(probs[i]*1000) / 1000,
		})
	}
	return res, nil
}

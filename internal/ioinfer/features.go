package ioinfer

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/digigeolab/parkphotos/pkg/dataset"
	"github.com/digigeolab/parkphotos/pkg/pipeline"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// extractor implements the Extractor interface.
type extractor struct {
	cfg    *config.Config
	client *client
}

// NewExtractor creates a new feature Extractor backed by the model
// server of the configuration.
func NewExtractor(cfg *config.Config) pipeline.Extractor {
	return &extractor{cfg: cfg, client: newClient(cfg)}
}

// Extract runs the pretrained feature extractor over every prepared
// image under imagesDir, in batches, and writes one record per image
// with its fixed-length vector. Row order follows the sorted image
// path list; batching never reorders the rows.
func (e *extractor) Extract(
	ctx context.Context,
	imagesDir, outSnapshot string,
) error {
	start := time.Now()

	paths, err := listImages(imagesDir)
	if err != nil {
		return err
	}
	gn.Info("Found <em>%s</em> prepared images",
		humanize.Comma(int64(len(paths))))

	recs := make([]dataset.Record, 0, len(paths))
	for _, p := range paths {
		fname := filepath.Base(p)
		pid, err := dataset.PhotoIDFromFilename(fname)
		if err != nil {
			// not a pipeline image, leave it out
			slog.Warn("Skipping file without photo id", "file", fname)
			continue
		}
		recs = append(recs, dataset.Record{
			PhotoID:   pid,
			Filename:  fname,
			ImagePath: p,
		})
	}

	bar := newProgressBar(len(recs), "Extracting features: ")
	defer bar.Finish()

	bs := e.cfg.Inference.BatchSize
	dim := e.cfg.Inference.FeatureDim

	for i := 0; i < len(recs); i += bs {
		end := min(i+bs, len(recs))
		batch := recs[i:end]

		vectors, err := e.extractBatch(ctx, batch)
		if err != nil {
			return err
		}
		if len(vectors) != len(batch) {
			return ShapeError(
				"features", len(batch), len(vectors),
			)
		}

		for j := range batch {
			if len(vectors[j]) != dim {
				return ShapeError("feature vector", dim, len(vectors[j]))
			}
			batch[j].Features = vectors[j]
			bar.Increment()
		}
	}

	if err = dataset.WriteSnapshot(outSnapshot, recs); err != nil {
		return err
	}

	slog.Info("Feature extraction complete",
		"images", len(recs),
		"dim", dim,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info("Extracted features for <em>%s</em> images in %s",
		humanize.Comma(int64(len(recs))),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

// extractBatch preprocesses one batch of images, stacks them into a
// single tensor and runs one forward pass.
func (e *extractor) extractBatch(
	ctx context.Context,
	batch []dataset.Record,
) ([][]float32, error) {
	req := tensorRequest{
		Shape: []int{len(batch), modelSize, modelSize, 3},
	}
	req.Data = make([]float32, 0, len(batch)*modelSize*modelSize*3)

	for i := range batch {
		img, err := loadSquare(batch[i].ImagePath)
		if err != nil {
			return nil, ImageLoadError(batch[i].ImagePath, err)
		}
		req.Data = append(req.Data, tensorize(img, torchNorm)...)
	}

	var resp featureResponse
	if err := e.client.post(ctx, "/v1/features", &req, &resp); err != nil {
		return nil, err
	}
	return resp.Vectors, nil
}

// listImages walks the two-level category/file tree and returns every
// image path in lexical order.
func listImages(root string) ([]string, error) {
	var res []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".jpg", ".jpeg", ".png":
			res = append(res, p)
		}
		return nil
	})
	if err != nil {
		return nil, ImageLoadError(root, err)
	}
	return res, nil
}

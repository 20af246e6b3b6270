// Package ioreduce implements the dimensionality-reduction stage: the
// feature matrix is projected to a handful of coordinates by the
// manifold-learning endpoint of the model server, after a seeded row
// shuffle that keeps neighboring archive rows from biasing the fit.
package ioreduce

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/digigeolab/parkphotos/internal/ioinfer"
	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/digigeolab/parkphotos/pkg/dataset"
	"github.com/digigeolab/parkphotos/pkg/pipeline"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// featureCols is the number of feature columns fed to the projection.
// The published coordinates of the study were computed from the first
// 2047 of the 2048 extractor outputs; keeping the same width keeps new
// runs comparable with them.
const featureCols = 2047

// reducer implements the Reducer interface.
type reducer struct {
	cfg *config.Config
}

// New creates a new Reducer.
func New(cfg *config.Config) pipeline.Reducer {
	return &reducer{cfg: cfg}
}

// Reduce projects the feature matrix and appends the coordinates to
// each record. The snapshot is persisted in the shuffled row order,
// so the park-by-park grouping of the archive never reaches the
// downstream stages. With a non-empty plotPath a scatter of the
// coordinates colored by vizColumn is saved as a sanity check.
func (r *reducer) Reduce(
	ctx context.Context,
	inSnapshot, outSnapshot, vizColumn, plotPath string,
) error {
	start := time.Now()

	recs, err := dataset.ReadSnapshot(inSnapshot)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return NoFeaturesError(inSnapshot)
	}

	cols := featureCols
	for i := range recs {
		if len(recs[i].Features) == 0 {
			return NoFeaturesError(inSnapshot)
		}
		if len(recs[i].Features) < cols {
			cols = len(recs[i].Features)
		}
	}

	// identical seed, identical permutation
	rng := rand.New(rand.NewSource(r.cfg.Reduce.Seed))
	perm := rng.Perm(len(recs))

	shuffled := make([]dataset.Record, len(recs))
	data := make([][]float64, len(recs))
	for i, src := range perm {
		shuffled[i] = recs[src]
		row := make([]float64, cols)
		for j := 0; j < cols; j++ {
			row[j] = float64(recs[src].Features[j])
		}
		data[i] = row
	}

	gn.Info("Projecting <em>%s</em> rows of <em>%s</em> features",
		humanize.Comma(int64(len(data))),
		humanize.Comma(int64(cols)))

	emb, err := ioinfer.Reduce(ctx, r.cfg, data)
	if err != nil {
		return ServerError(r.cfg.Inference.ServerURL, err)
	}
	for i := range shuffled {
		shuffled[i].Embedding = emb[i]
	}

	if err = dataset.WriteSnapshot(outSnapshot, shuffled); err != nil {
		return err
	}

	if plotPath != "" {
		if err = scatterPlot(shuffled, vizColumn, plotPath); err != nil {
			return err
		}
		gn.Info("Saved projection figure to <em>%s</em>", plotPath)
	}

	slog.Info("Projection complete",
		"rows", len(recs),
		"columns", cols,
		"components", r.cfg.Reduce.Components,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info("Projected <em>%s</em> rows in %s",
		humanize.Comma(int64(len(recs))),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

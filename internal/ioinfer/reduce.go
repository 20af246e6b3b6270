package ioinfer

import (
	"context"

	"github.com/digigeolab/parkphotos/pkg/config"
)

// Reduce sends the feature matrix to the manifold-learning endpoint of
// the model server and returns one coordinate row per input row, in
// input order. Parameters come from the Reduce section of the
// configuration.
func Reduce(
	ctx context.Context,
	cfg *config.Config,
	data [][]float64,
) ([][]float64, error) {
	c := newClient(cfg)

	req := reduceRequest{
		Data:       data,
		Components: cfg.Reduce.Components,
		Neighbors:  cfg.Reduce.Neighbors,
		MinDist:    cfg.Reduce.MinDist,
		Seed:       cfg.Reduce.Seed,
	}

	var resp reduceResponse
	if err := c.post(ctx, "/v1/reduce", &req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embedding) != len(data) {
		return nil, ShapeError("embedding", len(data), len(resp.Embedding))
	}
	return resp.Embedding, nil
}

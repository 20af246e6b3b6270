// Package ioinfer implements the Extractor, ScenePredictor and
// ObjectDetector interfaces on top of an HTTP model server that hosts
// the pretrained networks. The models themselves are external
// collaborators; this package owns image preprocessing, batching,
// ranking and the per-row bookkeeping.
package ioinfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/digigeolab/parkphotos/pkg/config"
)

// client talks JSON to the model server.
type client struct {
	baseURL string
	http    *http.Client
}

func newClient(cfg *config.Config) *client {
	return &client{
		baseURL: cfg.Inference.ServerURL,
		http: &http.Client{
			Timeout: time.Duration(cfg.Inference.TimeoutSec) * time.Second,
		},
	}
}

// tensorRequest carries one stacked batch tensor in row-major order.
type tensorRequest struct {
	// Shape is [n, height, width, channels].
	Shape []int     `json:"shape"`
	Data  []float32 `json:"data"`
}

// featureResponse returns one fixed-length vector per batch image.
type featureResponse struct {
	Vectors [][]float32 `json:"vectors"`
}

// sceneResponse returns one class-probability vector per batch image.
type sceneResponse struct {
	Probs [][]float64 `json:"probs"`
}

// detection is one detected instance.
type detection struct {
	ClassID int     `json:"class_id"`
	Score   float64 `json:"score"`
}

// detectResponse returns every instance found in one image.
type detectResponse struct {
	Detections []detection `json:"detections"`
}

// reduceRequest carries the feature matrix and the manifold-learner
// parameters.
type reduceRequest struct {
	Data       [][]float64 `json:"data"`
	Components int         `json:"components"`
	Neighbors  int         `json:"neighbors"`
	MinDist    float64     `json:"min_dist"`
	Seed       int64       `json:"seed"`
}

// reduceResponse returns one coordinate row per input row.
type reduceResponse struct {
	Embedding [][]float64 `json:"embedding"`
}

func (c *client) post(ctx context.Context, path string, req, resp any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return RequestError(c.baseURL+path, err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body),
	)
	if err != nil {
		return RequestError(c.baseURL+path, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return RequestError(c.baseURL+path, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		return ResponseError(
			c.baseURL+path,
			fmt.Errorf("unexpected status %s", httpResp.Status),
		)
	}

	if err = json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return ResponseError(c.baseURL+path, err)
	}
	return nil
}

package ioreduce

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/digigeolab/parkphotos/pkg/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reduceServer answers the projection endpoint with each row's first
// two values, so the test can trace rows through the shuffle.
func reduceServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/reduce", r.URL.Path)

			var req struct {
				Data [][]float64 `json:"data"`
			}
			require.NoError(t,
				json.NewDecoder(r.Body).Decode(&req))

			emb := make([][]float64, len(req.Data))
			for i, row := range req.Data {
				emb[i] = []float64{row[0], row[1]}
			}
			json.NewEncoder(w).Encode(
				map[string]any{"embedding": emb})
		}))
}

func makeRecords(n, dim int) []dataset.Record {
	recs := make([]dataset.Record, n)
	for i := range recs {
		f := make([]float32, dim)
		for j := range f {
			f[j] = float32(i)
		}
		recs[i] = dataset.Record{
			PhotoID:  int64(i + 1),
			Features: f,
			Origin:   "National",
		}
	}
	return recs
}

func TestReduce(t *testing.T) {
	srv := reduceServer(t)
	defer srv.Close()

	dir := t.TempDir()
	inSnap := filepath.Join(dir, "in.gob")
	outSnap := filepath.Join(dir, "out.gob")
	plotPath := filepath.Join(dir, "projection.png")

	require.NoError(t, dataset.WriteSnapshot(inSnap, makeRecords(10, 8)))

	cfg := config.New()
	cfg.Inference.ServerURL = srv.URL

	r := New(cfg)
	err := r.Reduce(
		context.Background(), inSnap, outSnap, "origin", plotPath,
	)
	require.NoError(t, err)

	got, err := dataset.ReadSnapshot(outSnap)
	require.NoError(t, err)
	require.Len(t, got, 10)

	// every coordinate row stays attached to its own record
	ids := make([]int64, len(got))
	for i, rec := range got {
		require.Len(t, rec.Embedding, 2)
		assert.Equal(t, float64(rec.PhotoID-1), rec.Embedding[0])
		ids[i] = rec.PhotoID
	}

	// the rows are persisted shuffled, not in archive order
	sequential := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	assert.ElementsMatch(t, sequential, ids)
	assert.NotEqual(t, sequential, ids)

	assert.FileExists(t, plotPath)
}

func TestReduceShuffledOrderIsSeeded(t *testing.T) {
	srv := reduceServer(t)
	defer srv.Close()

	dir := t.TempDir()
	inSnap := filepath.Join(dir, "in.gob")
	require.NoError(t, dataset.WriteSnapshot(inSnap, makeRecords(10, 8)))

	cfg := config.New()
	cfg.Inference.ServerURL = srv.URL
	r := New(cfg)
	ctx := context.Background()

	out1 := filepath.Join(dir, "out1.gob")
	out2 := filepath.Join(dir, "out2.gob")
	require.NoError(t, r.Reduce(ctx, inSnap, out1, "origin", ""))
	require.NoError(t, r.Reduce(ctx, inSnap, out2, "origin", ""))

	first, err := dataset.ReadSnapshot(out1)
	require.NoError(t, err)
	second, err := dataset.ReadSnapshot(out2)
	require.NoError(t, err)

	// identical seed, identical persisted row order
	assert.Equal(t, first, second)
}

func TestReduceServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "no umap for you",
				http.StatusInternalServerError)
		}))
	defer srv.Close()

	dir := t.TempDir()
	inSnap := filepath.Join(dir, "in.gob")
	require.NoError(t, dataset.WriteSnapshot(inSnap, makeRecords(4, 4)))

	cfg := config.New()
	cfg.Inference.ServerURL = srv.URL
	r := New(cfg)
	err := r.Reduce(
		context.Background(),
		inSnap, filepath.Join(dir, "out.gob"), "origin", "",
	)
	assert.ErrorContains(t, err, "projection failed")
}

func TestReduceDeterministicShuffle(t *testing.T) {
	var first, second [][]float64

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Data [][]float64 `json:"data"`
			}
			json.NewDecoder(r.Body).Decode(&req)
			if first == nil {
				first = req.Data
			} else {
				second = req.Data
			}

			emb := make([][]float64, len(req.Data))
			for i := range emb {
				emb[i] = []float64{0, 0}
			}
			json.NewEncoder(w).Encode(
				map[string]any{"embedding": emb})
		}))
	defer srv.Close()

	dir := t.TempDir()
	inSnap := filepath.Join(dir, "in.gob")
	require.NoError(t, dataset.WriteSnapshot(inSnap, makeRecords(20, 4)))

	cfg := config.New()
	cfg.Inference.ServerURL = srv.URL
	r := New(cfg)
	ctx := context.Background()

	out1 := filepath.Join(dir, "out1.gob")
	out2 := filepath.Join(dir, "out2.gob")
	require.NoError(t, r.Reduce(ctx, inSnap, out1, "origin", ""))
	require.NoError(t, r.Reduce(ctx, inSnap, out2, "origin", ""))

	assert.Equal(t, first, second)
}

func TestReduceNoFeatures(t *testing.T) {
	dir := t.TempDir()
	inSnap := filepath.Join(dir, "in.gob")
	recs := []dataset.Record{{PhotoID: 1}}
	require.NoError(t, dataset.WriteSnapshot(inSnap, recs))

	r := New(config.New())
	err := r.Reduce(
		context.Background(),
		inSnap, filepath.Join(dir, "out.gob"), "origin", "",
	)
	assert.Error(t, err)
}

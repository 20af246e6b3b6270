package ioinfer

import (
	"context"
	"encoding/json"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/digigeolab/parkphotos/pkg/dataset"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	img := imaging.New(10, 10, color.NRGBA{R: 100, G: 150, B: 200, A: 255})
	require.NoError(t, imaging.Save(img, path))
}

func serverConfig(url string) *config.Config {
	cfg := config.New()
	cfg.Inference.ServerURL = url
	cfg.Inference.BatchSize = 2
	cfg.Inference.FeatureDim = 4
	return cfg
}

func TestExtract(t *testing.T) {
	var batches [][]int
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/features", r.URL.Path)

			var req tensorRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			batches = append(batches, req.Shape)
			require.Len(t, req.Data,
				req.Shape[0]*modelSize*modelSize*3)

			vectors := make([][]float32, req.Shape[0])
			for i := range vectors {
				vectors[i] = []float32{1, 2, 3, 4}
			}
			json.NewEncoder(w).Encode(
				map[string]any{"vectors": vectors})
		}))
	defer srv.Close()

	dir := t.TempDir()
	imagesDir := filepath.Join(dir, "prepared")
	writeImage(t, filepath.Join(imagesDir, "Kolin ", "111_a_b.jpg"))
	writeImage(t, filepath.Join(imagesDir, "Kolin ", "222_b_b.jpg"))
	writeImage(t, filepath.Join(imagesDir, "Nuuksi", "333_c_b.jpg"))
	// file without an identifier is skipped, not fatal
	writeImage(t, filepath.Join(imagesDir, "Nuuksi", "stray.jpg"))

	outSnap := filepath.Join(dir, "features.gob")
	e := NewExtractor(serverConfig(srv.URL))
	require.NoError(t, e.Extract(context.Background(), imagesDir, outSnap))

	got, err := dataset.ReadSnapshot(outSnap)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, int64(111), got[0].PhotoID)
	assert.Equal(t, int64(333), got[2].PhotoID)
	for _, rec := range got {
		assert.Equal(t, []float32{1, 2, 3, 4}, rec.Features)
	}

	// three images at batch size two means a full and a partial batch
	require.Len(t, batches, 2)
	assert.Equal(t, []int{2, modelSize, modelSize, 3}, batches[0])
	assert.Equal(t, []int{1, modelSize, modelSize, 3}, batches[1])
}

func TestExtractWrongDim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			var req tensorRequest
			json.NewDecoder(r.Body).Decode(&req)
			vectors := make([][]float32, req.Shape[0])
			for i := range vectors {
				vectors[i] = []float32{1, 2}
			}
			json.NewEncoder(w).Encode(
				map[string]any{"vectors": vectors})
		}))
	defer srv.Close()

	dir := t.TempDir()
	imagesDir := filepath.Join(dir, "prepared")
	writeImage(t, filepath.Join(imagesDir, "Kolin ", "111_a_b.jpg"))

	e := NewExtractor(serverConfig(srv.URL))
	err := e.Extract(
		context.Background(), imagesDir,
		filepath.Join(dir, "features.gob"),
	)
	assert.Error(t, err)
}

const sceneLabelFile = `/f/forest_path 0
/c/creek 1
/s/snowfield 2
`

func TestPredictScenes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/scenes", r.URL.Path)

			var req tensorRequest
			json.NewDecoder(r.Body).Decode(&req)
			probs := make([][]float64, req.Shape[0])
			for i := range probs {
				probs[i] = []float64{0.1234, 0.7654, 0.1112}
			}
			json.NewEncoder(w).Encode(
				map[string]any{"probs": probs})
		}))
	defer srv.Close()

	dir := t.TempDir()
	imgPath := filepath.Join(dir, "111_a_b.jpg")
	writeImage(t, imgPath)

	inSnap := filepath.Join(dir, "in.gob")
	recs := []dataset.Record{
		{PhotoID: 111, Filename: "111_a_b.jpg", ImagePath: imgPath},
	}
	require.NoError(t, dataset.WriteSnapshot(inSnap, recs))

	labelsPath := filepath.Join(dir, "scenes.txt")
	require.NoError(t,
		os.WriteFile(labelsPath, []byte(sceneLabelFile), 0644))

	outSnap := filepath.Join(dir, "out.gob")
	s := NewScenePredictor(serverConfig(srv.URL))
	err := s.PredictScenes(
		context.Background(), inSnap, labelsPath, outSnap,
	)
	require.NoError(t, err)

	got, err := dataset.ReadSnapshot(outSnap)
	require.NoError(t, err)
	require.Len(t, got, 1)

	rec := got[0]
	assert.Equal(t, "creek", rec.SceneCat)
	assert.Equal(t, 0.765, rec.SceneProb)
	require.Len(t, rec.ScenePreds, 3)
	assert.Equal(t, "creek", rec.ScenePreds[0].Label)
	assert.Equal(t, "forest_path", rec.ScenePreds[1].Label)
	assert.Equal(t, "snowfield", rec.ScenePreds[2].Label)
}

func TestRankScenes(t *testing.T) {
	labels := []string{"a", "b", "c", "d"}

	// tie between b and d resolves to the lower class index
	preds, err := rankScenes([]float64{0.1, 0.4, 0.1, 0.4}, labels)
	require.NoError(t, err)
	require.Len(t, preds, 3)
	assert.Equal(t, "b", preds[0].Label)
	assert.Equal(t, "d", preds[1].Label)
	assert.Equal(t, "a", preds[2].Label)

	// probabilities are rounded to three decimals
	preds, err = rankScenes([]float64{0.12345, 0.5, 0.2, 0.1}, labels)
	require.NoError(t, err)
	assert.Equal(t, 0.5, preds[0].Prob)
	assert.Equal(t, 0.2, preds[1].Prob)
	assert.Equal(t, 0.123, preds[2].Prob)

	_, err = rankScenes([]float64{0.5}, labels)
	assert.Error(t, err)
}

func TestDetectObjects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/detect", r.URL.Path)

			dets := []map[string]any{
				{"class_id": 0, "score": 0.98},
				{"class_id": 0, "score": 0.72},
				{"class_id": 1, "score": 0.55},
			}
			json.NewEncoder(w).Encode(
				map[string]any{"detections": dets})
		}))
	defer srv.Close()

	dir := t.TempDir()
	imgPath := filepath.Join(dir, "111_a_b.jpg")
	writeImage(t, imgPath)

	inSnap := filepath.Join(dir, "in.gob")
	recs := []dataset.Record{
		{PhotoID: 111, Filename: "111_a_b.jpg", ImagePath: imgPath},
	}
	require.NoError(t, dataset.WriteSnapshot(inSnap, recs))

	labelsPath := filepath.Join(dir, "objects.txt")
	require.NoError(t,
		os.WriteFile(labelsPath, []byte("person\ndog\n"), 0644))

	outSnap := filepath.Join(dir, "out.gob")
	d := NewObjectDetector(serverConfig(srv.URL))
	err := d.DetectObjects(
		context.Background(), inSnap, labelsPath, outSnap,
	)
	require.NoError(t, err)

	got, err := dataset.ReadSnapshot(outSnap)
	require.NoError(t, err)
	require.Len(t, got, 1)

	rec := got[0]
	assert.Equal(t,
		[]string{"person", "person", "dog"}, rec.DetectedObjs)
	assert.Equal(t, []string{"person", "dog"}, rec.UniqueObjs)
	assert.Equal(t, 3, rec.ObjCount)
	assert.Equal(t, 2, rec.UniqueObjCount)
	require.Len(t, rec.ObjPreds, 3)
	assert.Equal(t, 0.98, rec.ObjPreds[0].Prob)
}

func TestReadSceneLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenes.txt")
	require.NoError(t,
		os.WriteFile(path, []byte(sceneLabelFile), 0644))

	labels, err := readSceneLabels(path)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"forest_path", "creek", "snowfield"}, labels)
}

func TestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model exploded", http.StatusInternalServerError)
		}))
	defer srv.Close()

	dir := t.TempDir()
	imagesDir := filepath.Join(dir, "prepared")
	writeImage(t, filepath.Join(imagesDir, "Kolin ", "111_a_b.jpg"))

	e := NewExtractor(serverConfig(srv.URL))
	err := e.Extract(
		context.Background(), imagesDir,
		filepath.Join(dir, "features.gob"),
	)
	assert.Error(t, err)
}

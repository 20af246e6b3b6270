package ioresize

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	img := imaging.New(w, h, color.NRGBA{R: 120, G: 140, B: 90, A: 255})
	require.NoError(t, imaging.Save(img, path))
}

func TestSquareRect(t *testing.T) {
	tests := []struct {
		msg        string
		w, h       int
		wantW      int
		wantLeft   int
		wantTop    int
		wantRight  int
		wantBottom int
	}{
		{"landscape even", 900, 450, 450, 225, 0, 675, 450},
		{"portrait even", 450, 900, 450, 0, 225, 450, 675},
		{"odd margin leads large", 401, 300, 300, 51, 0, 351, 300},
		{"already square", 300, 300, 300, 0, 0, 300, 300},
	}

	for _, v := range tests {
		got := squareRect(image.Rect(0, 0, v.w, v.h))
		assert.Equal(t, v.wantW, got.Dx(), v.msg)
		assert.Equal(t, v.wantW, got.Dy(), v.msg)
		assert.Equal(t, v.wantLeft, got.Min.X, v.msg)
		assert.Equal(t, v.wantTop, got.Min.Y, v.msg)
		assert.Equal(t, v.wantRight, got.Max.X, v.msg)
		assert.Equal(t, v.wantBottom, got.Max.Y, v.msg)
	}
}

func TestResize(t *testing.T) {
	dir := t.TempDir()
	inDir := filepath.Join(dir, "raw")
	outDir := filepath.Join(dir, "prepared")

	writeImage(t,
		filepath.Join(inDir, "Nuuksi", "111_abc_b.jpg"), 1800, 900)
	writeImage(t,
		filepath.Join(inDir, "Kolin ", "222_def_b.jpg"), 400, 300)

	r := New(config.New())
	require.NoError(t, r.Resize(context.Background(), inDir, outDir))

	// oversized image shrinks to the bound, then squares
	img, err := imaging.Open(
		filepath.Join(outDir, "Nuuksi", "111_abc_b.jpg"))
	require.NoError(t, err)
	assert.Equal(t, 450, img.Bounds().Dx())
	assert.Equal(t, 450, img.Bounds().Dy())

	// small image is never upscaled, only squared
	img, err = imaging.Open(
		filepath.Join(outDir, "Kolin ", "222_def_b.jpg"))
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 300, img.Bounds().Dy())
}

func TestResizeIdempotent(t *testing.T) {
	dir := t.TempDir()
	inDir := filepath.Join(dir, "raw")
	outDir := filepath.Join(dir, "prepared")

	writeImage(t,
		filepath.Join(inDir, "Nuuksi", "111_abc_b.jpg"), 600, 600)

	r := New(config.New())
	ctx := context.Background()
	require.NoError(t, r.Resize(ctx, inDir, outDir))

	dest := filepath.Join(outDir, "Nuuksi", "111_abc_b.jpg")
	info1, err := os.Stat(dest)
	require.NoError(t, err)

	require.NoError(t, r.Resize(ctx, inDir, outDir))
	info2, err := os.Stat(dest)
	require.NoError(t, err)

	assert.Equal(t, info1.ModTime(), info2.ModTime())
}

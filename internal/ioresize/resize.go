// Package ioresize implements the image preparation stage: every
// downloaded image is shrunk to a bound and center-cropped to a
// square, into a directory tree mirroring the source layout.
package ioresize

import (
	"context"
	"image"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/digigeolab/parkphotos/pkg/pipeline"
	"github.com/disintegration/imaging"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// maxBound is the longest side of a prepared image before cropping.
const maxBound = 900

// resizer implements the Resizer interface.
type resizer struct {
	cfg *config.Config
}

// New creates a new Resizer.
func New(cfg *config.Config) pipeline.Resizer {
	return &resizer{cfg: cfg}
}

// Resize prepares every image under inDir into the mirrored tree under
// outDir. Images whose prepared copy already exists are skipped, so
// the stage is safe to re-run after adding photos to the archive.
func (r *resizer) Resize(ctx context.Context, inDir, outDir string) error {
	start := time.Now()

	paths, err := listImages(inDir)
	if err != nil {
		return err
	}
	gn.Info("Preparing <em>%s</em> images",
		humanize.Comma(int64(len(paths))))

	bar := newProgressBar(len(paths), "Preparing images: ")
	defer bar.Finish()

	var done, skipped int
	for _, p := range paths {
		if err = ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(inDir, p)
		if err != nil {
			return OpenError(p, err)
		}
		dest := filepath.Join(outDir, rel)

		if _, statErr := os.Stat(dest); statErr == nil {
			skipped++
			bar.Increment()
			continue
		}

		if err = prepareOne(p, dest); err != nil {
			return err
		}
		done++
		bar.Increment()
	}

	slog.Info("Image preparation complete",
		"prepared", done,
		"skipped", skipped,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info("Prepared <em>%s</em> images (%s already done) in %s",
		humanize.Comma(int64(done)),
		humanize.Comma(int64(skipped)),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return nil
}

// prepareOne shrinks one image to the bound, crops it square and saves
// it under dest.
func prepareOne(src, dest string) error {
	img, err := imaging.Open(src)
	if err != nil {
		return OpenError(src, err)
	}

	img = imaging.Fit(img, maxBound, maxBound, imaging.Lanczos)
	img = imaging.Crop(img, squareRect(img.Bounds()))

	if err = os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return SaveError(filepath.Dir(dest), err)
	}
	if err = imaging.Save(img, dest); err != nil {
		return SaveError(dest, err)
	}
	return nil
}

// squareRect returns the centered square crop of a bound. With an odd
// margin the leading edge takes the larger half, the trailing edge the
// smaller one, so repeated runs crop identically.
func squareRect(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	s := min(w, h)

	left := (w - s + 1) / 2
	top := (h - s + 1) / 2
	right := w - (w-s)/2
	bottom := h - (h-s)/2

	return image.Rect(left, top, right, bottom)
}

// listImages walks the park/file tree and returns every image path in
// lexical order.
func listImages(root string) ([]string, error) {
	var res []string
	err := filepath.WalkDir(root,
		func(p string, d fs.DirEntry, err error) error {
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
		return nil, OpenError(root, err)
	}
	return res, nil
}

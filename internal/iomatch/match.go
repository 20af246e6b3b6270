// Package iomatch implements the metadata/image reconciliation stage.
// Interrupted downloads and manual archive edits leave the metadata
// table and the image tree out of sync; this stage keeps only the
// metadata rows whose image is actually on disk.
package iomatch

import (
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/digigeolab/parkphotos/pkg/dataset"
	"github.com/digigeolab/parkphotos/pkg/pipeline"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// matcher implements the Matcher interface.
type matcher struct{}

// New creates a new Matcher.
func New() pipeline.Matcher {
	return &matcher{}
}

// Match intersects the metadata rows with the identifiers of the
// images found under imagesDir. Identifiers are compared by value on
// both sides, so row order and file order are irrelevant.
func (m *matcher) Match(inTable, imagesDir, outTable string) error {
	start := time.Now()

	posts, err := dataset.ReadPosts(inTable)
	if err != nil {
		return err
	}

	onDisk, err := imageIDs(imagesDir)
	if err != nil {
		return err
	}

	res := make([]dataset.Post, 0, len(posts))
	for _, p := range posts {
		if _, ok := onDisk[p.PhotoID]; ok {
			res = append(res, p)
		}
	}

	if err = dataset.WritePosts(outTable, res); err != nil {
		return err
	}

	slog.Info("Metadata matched against images",
		"rows", len(posts),
		"images", len(onDisk),
		"matched", len(res),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info(
		"Matched <em>%s</em> of <em>%s</em> rows to <em>%s</em> images",
		humanize.Comma(int64(len(res))),
		humanize.Comma(int64(len(posts))),
		humanize.Comma(int64(len(onDisk))),
	)
	return nil
}

// imageIDs walks the park/file tree and returns the set of photo
// identifiers present on disk. Files without a parseable identifier
// (journals, manifests, strays) are ignored.
func imageIDs(root string) (map[int64]struct{}, error) {
	res := make(map[int64]struct{})
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
			default:
				return nil
			}
			pid, err := dataset.PhotoIDFromFilename(d.Name())
			if err != nil {
				slog.Warn("Image without a photo id", "file", d.Name())
				return nil
			}
			res[pid] = struct{}{}
			return nil
		})
	if err != nil {
		return nil, dataset.ReadError(root, err)
	}
	return res, nil
}

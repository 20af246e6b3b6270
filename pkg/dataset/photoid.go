// Package dataset provides the tabular data model of the pipeline:
// post metadata tables (CSV snapshots) and enriched records carrying
// features and model predictions (gob snapshots). Every table is keyed
// by the numeric photo identifier derived from the source filename.
package dataset

import (
	"strconv"
	"strings"
)

// wrongSizes lists the resolution suffixes the photo service uses for
// variants other than the 1024 px one. Filenames and URLs carrying one
// of these lose 6 trailing characters; everything else loses the plain
// 4-character extension.
var wrongSizes = []string{
	"_o.jpg", "_o.png", "_o.tif", "_m.jpg", "_s.jpg",
	"_q.jpg", "_t.jpg", "_n.jpg", "_z.jpg", "_c.jpg",
}

// TrimSizeSuffix removes the resolution suffix from the tail of a
// filename or URL, leaving the photo stem.
func TrimSizeSuffix(name string) string {
	for _, size := range wrongSizes {
		if strings.Contains(name, size) {
			if len(name) >= 6 {
				return name[:len(name)-6]
			}
			return name
		}
	}
	if len(name) >= 4 {
		return name[:len(name)-4]
	}
	return name
}

// LargestVariant rewrites a photo filename or URL to request the
// largest standard resolution (the "_b" 1024 px variant).
func LargestVariant(name string) string {
	return TrimSizeSuffix(name) + "_b.jpg"
}

// PhotoIDFromFilename derives the numeric photo identifier from a
// filename: the size suffix is stripped and the segment before the
// first underscore is parsed as an integer. Both metadata rows and
// on-disk files derive their identifier through this one function, so
// the two sides always intersect by value, never by position.
func PhotoIDFromFilename(name string) (int64, error) {
	stem := TrimSizeSuffix(name)
	seg, _, _ := strings.Cut(stem, "_")
	id, err := strconv.ParseInt(seg, 10, 64)
	if err != nil {
		return 0, BadPhotoIDError(name, err)
	}
	return id, nil
}

// PhotoIDFromURL derives the numeric photo identifier from the last
// path segment of a photo URL.
func PhotoIDFromURL(url string) (int64, error) {
	return PhotoIDFromFilename(Basename(url))
}

// Basename returns the last slash-separated segment of a URL or path.
func Basename(url string) string {
	if i := strings.LastIndex(url, "/"); i >= 0 {
		return url[i+1:]
	}
	return url
}

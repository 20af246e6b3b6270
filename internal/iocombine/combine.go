// Package iocombine implements the metadata unification stage. Two
// harvests of the same photo service use different column sets; this
// stage maps both onto the unified schema and concatenates them,
// keeping the first row seen for every photo identifier.
package iocombine

import (
	"log/slog"
	"time"

	"github.com/digigeolab/parkphotos/pkg/dataset"
	"github.com/digigeolab/parkphotos/pkg/pipeline"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// oldRenames maps the column names of the earlier harvest onto the
// unified schema.
var oldRenames = map[string]string{
	"text":              "title",
	"photo_description": "description",
	"time_local":        "date_taken",
	"photourl":          "photo_url",
	"userid":            "user_id",
	"username":          "user_name",
}

// combiner implements the Combiner interface.
type combiner struct{}

// New creates a new Combiner.
func New() pipeline.Combiner {
	return &combiner{}
}

// Combine unifies the two tables. Rows of the newer table win over
// rows of the older one when both carry the same photo identifier.
func (c *combiner) Combine(newTable, oldTable, outTable string) error {
	start := time.Now()

	newer, err := dataset.ReadPosts(newTable)
	if err != nil {
		return err
	}
	older, err := dataset.ReadPostsRenamed(oldTable, oldRenames)
	if err != nil {
		return err
	}

	// the newer harvest identifies photos by filename only
	for i := range newer {
		if newer[i].PhotoID != 0 || newer[i].Filename == "" {
			continue
		}
		pid, err := dataset.PhotoIDFromFilename(newer[i].Filename)
		if err != nil {
			slog.Warn("Row without a usable photo id",
				"filename", newer[i].Filename)
			continue
		}
		newer[i].PhotoID = pid
	}

	seen := make(map[int64]struct{}, len(newer)+len(older))
	res := make([]dataset.Post, 0, len(newer)+len(older))
	var dupes, dropped int

	for _, p := range append(newer, older...) {
		if p.PhotoID == 0 {
			dropped++
			continue
		}
		if _, ok := seen[p.PhotoID]; ok {
			dupes++
			continue
		}
		seen[p.PhotoID] = struct{}{}
		res = append(res, p)
	}

	if err = dataset.WritePosts(outTable, res); err != nil {
		return err
	}

	slog.Info("Tables combined",
		"new_rows", len(newer),
		"old_rows", len(older),
		"duplicates", dupes,
		"dropped", dropped,
		"result_rows", len(res),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info(
		"Combined <em>%s</em> and <em>%s</em> rows into <em>%s</em> "+
			"(%s duplicates removed)",
		humanize.Comma(int64(len(newer))),
		humanize.Comma(int64(len(older))),
		humanize.Comma(int64(len(res))),
		humanize.Comma(int64(dupes)),
	)
	return nil
}

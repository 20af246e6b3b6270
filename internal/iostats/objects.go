package iostats

import (
	"log/slog"
	"time"

	"github.com/digigeolab/parkphotos/pkg/dataset"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// objectLabels lists the object classes the study compares between
// visitor groups.
var objectLabels = []string{
	"person", "dog", "backpack", "bicycle", "skis",
	"bench", "dining table", "potted plant", "bird",
}

// ObjectTests compares the per-photo count of each object class
// between domestic and foreign visitors. Only photos containing the
// class at least once enter its comparison.
func (t *tester) ObjectTests(inSnapshot, outTable string) error {
	start := time.Now()

	recs, err := dataset.ReadSnapshot(inSnapshot)
	if err != nil {
		return err
	}

	rows := make([]testRow, 0, len(objectLabels))
	for _, label := range objectLabels {
		var national, intl []float64
		for i := range recs {
			count := countLabel(recs[i].DetectedObjs, label)
			if count == 0 {
				continue
			}
			switch recs[i].Origin {
			case groupNational:
				national = append(national, float64(count))
			case groupInternational:
				intl = append(intl, float64(count))
			}
		}
		rows = append(rows, rankSum(label, national, intl))
	}

	if err = writeRows(outTable, "class", rows); err != nil {
		return err
	}

	slog.Info("Object comparisons written",
		"classes", len(rows),
		"records", len(recs),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info("Wrote <em>%d</em> object comparisons to <em>%s</em>",
		len(rows), outTable)
	return nil
}

// countLabel counts the occurrences of one label in a detection list.
func countLabel(objs []string, label string) int {
	var res int
	for _, o := range objs {
		if o == label {
			res++
		}
	}
	return res
}

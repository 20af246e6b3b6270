package iostats

import (
	"log/slog"
	"time"

	"github.com/digigeolab/parkphotos/pkg/dataset"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// sceneLabels lists the scene classes the study compares between
// visitor groups.
var sceneLabels = []string{
	"forest_path", "forest/broadleaf", "snowfield", "tundra",
	"ski_slope", "lake/natural", "creek", "park", "swamp", "tree_farm",
}

// SceneTests compares how many photos dominated by each scene class a
// visitor took, between domestic and foreign visitors. The unit of
// observation is the visitor, not the photo, so prolific
// photographers count once.
func (t *tester) SceneTests(inSnapshot, outTable string) error {
	start := time.Now()

	recs, err := dataset.ReadSnapshot(inSnapshot)
	if err != nil {
		return err
	}

	origins := make(map[string]string)
	for i := range recs {
		if recs[i].UserID != "" {
			origins[recs[i].UserID] = recs[i].Origin
		}
	}

	rows := make([]testRow, 0, len(sceneLabels))
	for _, scene := range sceneLabels {
		perUser := make(map[string]int)
		for i := range recs {
			if recs[i].SceneCat == scene && recs[i].UserID != "" {
				perUser[recs[i].UserID]++
			}
		}

		var national, intl []float64
		for user, count := range perUser {
			switch origins[user] {
			case groupNational:
				national = append(national, float64(count))
			case groupInternational:
				intl = append(intl, float64(count))
			}
		}
		rows = append(rows, rankSum(scene, national, intl))
	}

	if err = writeRows(outTable, "scene", rows); err != nil {
		return err
	}

	slog.Info("Scene comparisons written",
		"scenes", len(rows),
		"visitors", len(origins),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info("Wrote <em>%d</em> scene comparisons to <em>%s</em>",
		len(rows), outTable)
	return nil
}

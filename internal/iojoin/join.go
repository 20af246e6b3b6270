// Package iojoin implements the metadata enrichment stage: visitor
// survey attributes are merged onto the model-prediction snapshot by
// photo identifier, and the season, visitor origin and landscape
// region columns are derived.
package iojoin

import (
	"log/slog"
	"time"

	"github.com/digigeolab/parkphotos/pkg/dataset"
	"github.com/digigeolab/parkphotos/pkg/pipeline"
	"github.com/digigeolab/parkphotos/pkg/regions"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// seasonNames maps the meteorological season number to its label.
var seasonNames = map[int]string{
	1: "Winter",
	2: "Spring",
	3: "Summer",
	4: "Autumn",
}

// originNames maps the binary home/away flag to the origin label.
var originNames = map[int]string{
	1: "National",
	0: "International",
}

// timeLayouts lists the timestamp formats seen across the harvests.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
}

// joiner implements the Joiner interface.
type joiner struct {
	regions regions.Loader
}

// New creates a new Joiner that resolves landscape regions with the
// given loader.
func New(l regions.Loader) pipeline.Joiner {
	return &joiner{regions: l}
}

// Join keeps the snapshot records whose photo identifier appears in
// the visitor table and appends the visitor and derived columns to
// them. Records without a visitor row are dropped; the join never
// invents placeholder attributes.
func (j *joiner) Join(inSnapshot, userTable, outSnapshot string) error {
	start := time.Now()

	recs, err := dataset.ReadSnapshot(inSnapshot)
	if err != nil {
		return err
	}
	users, err := dataset.ReadUsers(userTable)
	if err != nil {
		return err
	}
	regs, err := j.regions.Load()
	if err != nil {
		return err
	}

	byID := make(map[int64]dataset.User, len(users))
	for _, u := range users {
		if u.PhotoID == 0 {
			continue
		}
		if _, ok := byID[u.PhotoID]; !ok {
			byID[u.PhotoID] = u
		}
	}

	var unknownParks int
	res := make([]dataset.Record, 0, len(recs))
	for _, rec := range recs {
		u, ok := byID[rec.PhotoID]
		if !ok {
			continue
		}

		rec.UserID = u.UserID
		rec.Country = u.Country
		rec.Gender = u.Gender
		rec.Local = u.Local
		rec.Origin = originNames[u.Local]
		rec.Park = u.Park

		rec.Date = parseWhen(u.DateTaken)
		if !rec.Date.IsZero() {
			rec.Season = season(rec.Date.Month())
			rec.SeasonName = seasonNames[rec.Season]
		}

		if region, ok := regs.Lookup(u.Park); ok {
			rec.Region = region
		} else {
			unknownParks++
		}

		res = append(res, rec)
	}

	if len(res) == 0 {
		return NoMatchesError(inSnapshot, userTable)
	}
	if unknownParks > 0 {
		slog.Warn("Records with a park outside the regions config",
			"records", unknownParks)
	}

	if err = dataset.WriteSnapshot(outSnapshot, res); err != nil {
		return err
	}

	slog.Info("Visitor metadata joined",
		"records", len(recs),
		"visitors", len(users),
		"matched", len(res),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info(
		"Joined visitor metadata onto <em>%s</em> of <em>%s</em> records",
		humanize.Comma(int64(len(res))),
		humanize.Comma(int64(len(recs))),
	)
	return nil
}

// season returns the meteorological season number of a month:
// 1 Dec-Feb, 2 Mar-May, 3 Jun-Aug, 4 Sep-Nov.
func season(m time.Month) int {
	return (int(m)%12 + 3) / 3
}

// parseWhen parses a capture timestamp leniently, trying the known
// layouts in order. The zero time marks an unparseable value.
func parseWhen(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

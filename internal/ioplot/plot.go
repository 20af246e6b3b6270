// Package ioplot renders the descriptive figures of an enriched
// snapshot: the coordinate scatter and the seasonal and object-count
// summaries the study reports alongside its tests.
package ioplot

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/digigeolab/parkphotos/pkg/dataset"
	"github.com/digigeolab/parkphotos/pkg/pipeline"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// seasonOrder fixes the category order of the seasonal figures.
var seasonOrder = []string{"Winter", "Spring", "Summer", "Autumn"}

// originOrder fixes the category order of the visitor-group figures.
var originOrder = []string{"National", "International"}

// renderer implements the Plotter interface.
type renderer struct{}

// New creates a new Plotter.
func New() pipeline.Plotter {
	return &renderer{}
}

// Plot writes the descriptive figures into outDir. Figures whose
// columns are absent from the snapshot are skipped silently; the
// snapshot decides what can be drawn.
func (p *renderer) Plot(inSnapshot, outDir string) error {
	start := time.Now()

	recs, err := dataset.ReadSnapshot(inSnapshot)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(outDir, 0755); err != nil {
		return PlotError(outDir, err)
	}

	var figures []string

	path := filepath.Join(outDir, "projection_origin.png")
	ok, err := scatterByOrigin(recs, path)
	if err != nil {
		return err
	}
	if ok {
		figures = append(figures, path)
	}

	path = filepath.Join(outDir, "posts_by_season.png")
	ok, err = postsBySeason(recs, path)
	if err != nil {
		return err
	}
	if ok {
		figures = append(figures, path)
	}

	path = filepath.Join(outDir, "objects_by_origin.png")
	ok, err = objectsByOrigin(recs, path)
	if err != nil {
		return err
	}
	if ok {
		figures = append(figures, path)
	}

	slog.Info("Figures rendered",
		"figures", len(figures),
		"records", len(recs),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info("Rendered <em>%d</em> figures into <em>%s</em>",
		len(figures), outDir)
	return nil
}

// scatterByOrigin draws the coordinate scatter colored by visitor
// origin. Returns false when the snapshot has no coordinates.
func scatterByOrigin(recs []dataset.Record, path string) (bool, error) {
	groups := make(map[string]plotter.XYs)
	for i := range recs {
		if len(recs[i].Embedding) < 2 || recs[i].Origin == "" {
			continue
		}
		groups[recs[i].Origin] = append(groups[recs[i].Origin],
			plotter.XY{
				X: recs[i].Embedding[0],
				Y: recs[i].Embedding[1],
			})
	}
	if len(groups) == 0 {
		return false, nil
	}

	pl := plot.New()
	pl.Title.Text = "Photo content by visitor origin"
	pl.X.Label.Text = "dim 1"
	pl.Y.Label.Text = "dim 2"

	for i, origin := range originOrder {
		xys, ok := groups[origin]
		if !ok {
			continue
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return false, PlotError(path, err)
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Radius = vg.Points(1.5)
		pl.Add(s)
		pl.Legend.Add(origin, s)
	}
	pl.Legend.Top = true

	if err := pl.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return false, PlotError(path, err)
	}
	return true, nil
}

// postsBySeason draws the number of photos taken in each season.
// Returns false when no record carries a season.
func postsBySeason(recs []dataset.Record, path string) (bool, error) {
	counts := make(map[string]int)
	for i := range recs {
		if recs[i].SeasonName != "" {
			counts[recs[i].SeasonName]++
		}
	}
	if len(counts) == 0 {
		return false, nil
	}

	values := make(plotter.Values, len(seasonOrder))
	for i, s := range seasonOrder {
		values[i] = float64(counts[s])
	}

	return true, barChart(
		path, "Photos per season", "photos", seasonOrder, values,
	)
}

// objectsByOrigin draws the mean detected-object count per photo for
// each visitor group. Returns false when no record carries both an
// origin and detections.
func objectsByOrigin(recs []dataset.Record, path string) (bool, error) {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := range recs {
		if recs[i].Origin == "" {
			continue
		}
		sums[recs[i].Origin] += float64(recs[i].ObjCount)
		counts[recs[i].Origin]++
	}
	if len(counts) == 0 {
		return false, nil
	}

	values := make(plotter.Values, len(originOrder))
	for i, o := range originOrder {
		if counts[o] > 0 {
			values[i] = sums[o] / float64(counts[o])
		}
	}

	return true, barChart(
		path, "Mean objects per photo", "objects", originOrder, values,
	)
}

// barChart draws one labeled bar chart.
func barChart(
	path, title, yLabel string,
	labels []string,
	values plotter.Values,
) error {
	pl := plot.New()
	pl.Title.Text = title
	pl.Y.Label.Text = yLabel

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return PlotError(path, err)
	}
	bars.Color = plotutil.Color(0)
	pl.Add(bars)
	pl.NominalX(labels...)

	if err = pl.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return PlotError(path, err)
	}
	return nil
}

package ioreduce

import (
	"sort"

	"github.com/digigeolab/parkphotos/pkg/dataset"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// scatterPlot saves a two-dimensional scatter of the coordinates, one
// color per category of the grouping column.
func scatterPlot(recs []dataset.Record, column, path string) error {
	groups := make(map[string]plotter.XYs)
	for i := range recs {
		if len(recs[i].Embedding) < 2 {
			continue
		}
		cat, err := recs[i].Category(column)
		if err != nil {
			return PlotError(path, err)
		}
		if cat == "" {
			cat = "unlabeled"
		}
		groups[cat] = append(groups[cat], plotter.XY{
			X: recs[i].Embedding[0],
			Y: recs[i].Embedding[1],
		})
	}

	cats := make([]string, 0, len(groups))
	for cat := range groups {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	p := plot.New()
	p.Title.Text = "Photo content projection"
	p.X.Label.Text = "dim 1"
	p.Y.Label.Text = "dim 2"

	for i, cat := range cats {
		s, err := plotter.NewScatter(groups[cat])
		if err != nil {
			return PlotError(path, err)
		}
		s.GlyphStyle.Color = plotutil.Color(i)
		s.GlyphStyle.Radius = vg.Points(1.5)
		p.Add(s)
		p.Legend.Add(cat, s)
	}
	p.Legend.Top = true

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return PlotError(path, err)
	}
	return nil
}

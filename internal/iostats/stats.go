// Package iostats implements the hypothesis tests of the study:
// rank-sum comparisons of object and scene content between visitor
// groups, and a permutational analysis of variance over the reduced
// coordinates.
package iostats

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"

	"github.com/aclements/go-moremath/stats"
	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/digigeolab/parkphotos/pkg/pipeline"
)

// Origin labels of the two visitor groups compared by the rank-sum
// tests.
const (
	groupNational      = "National"
	groupInternational = "International"
)

// minGroupSize is the smallest per-group sample the rank-sum test is
// run on. The test is defined for any non-empty samples; only a group
// that is empty after filtering produces a result row with an
// explanatory note instead of a p-value.
const minGroupSize = 1

// tester implements the StatsTester interface.
type tester struct {
	cfg *config.Config
}

// New creates a new StatsTester.
func New(cfg *config.Config) pipeline.StatsTester {
	return &tester{cfg: cfg}
}

// testRow is one result line of a rank-sum comparison.
type testRow struct {
	label string
	n1    int
	n2    int
	u     float64
	p     float64
	note  string
}

// rankSum compares the two samples with the Mann-Whitney U test
// against a two-sided alternative. Degenerate samples come back as a
// note, never as an error: one untestable class must not stop the
// rest of the table.
func rankSum(label string, national, intl []float64) testRow {
	row := testRow{
		label: label,
		n1:    len(national),
		n2:    len(intl),
	}

	if len(national) < minGroupSize || len(intl) < minGroupSize {
		row.note = "insufficient sample"
		return row
	}

	res, err := stats.MannWhitneyUTest(
		national, intl, stats.LocationDiffers,
	)
	if err != nil {
		row.note = err.Error()
		return row
	}

	row.u = res.U
	row.p = round7(res.P)
	return row
}

// round7 rounds a p-value to seven decimals, the precision the result
// tables are published with.
func round7(p float64) float64 {
	return math.Round(p*1e7) / 1e7
}

// writeRows writes a rank-sum result table. The first header cell
// names the tested unit (object class or scene).
func writeRows(path, unit string, rows []testRow) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		unit, "n_national", "n_international", "u", "p", "note",
	}
	if err = w.Write(header); err != nil {
		return WriteError(path, err)
	}

	for _, r := range rows {
		rec := []string{
			r.label,
			strconv.Itoa(r.n1),
			strconv.Itoa(r.n2),
			"",
			"",
			r.note,
		}
		if r.note == "" {
			rec[3] = strconv.FormatFloat(r.u, 'f', -1, 64)
			rec[4] = strconv.FormatFloat(r.p, 'f', -1, 64)
		}
		if err = w.Write(rec); err != nil {
			return WriteError(path, err)
		}
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return WriteError(path, err)
	}
	return nil
}

package iostats

import (
	"fmt"

	"github.com/digigeolab/parkphotos/pkg/errcode"
	"github.com/gnames/gn"
)

// GroupingError creates an error for a grouping that cannot support
// the requested test.
func GroupingError(column string, groups int) error {
	msg := `Grouping column does not split the data into enough groups

<em>Column:</em> %s
<em>Groups found:</em> %d

<em>How to fix:</em>
  1. Run the join stage so the grouping columns are filled
  2. Choose a column with at least two distinct values`

	vars := []any{column, groups}

	return &gn.Error{
		Code: errcode.StatsGroupingError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"column %q yields %d groups, need at least 2",
			column, groups,
		),
	}
}

// BadColumnError creates an error for a grouping column name the
// records do not carry.
func BadColumnError(column string, err error) error {
	msg := `Unknown grouping column

<em>Column:</em> %s

<em>How to fix:</em>
  1. Check the spelling of the --group-by value
  2. Use one of: origin, region, season, scene, park, country, gender`

	vars := []any{column}

	return &gn.Error{
		Code: errcode.StatsBadColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("bad grouping column %q: %w", column, err),
	}
}

// InsufficientSampleError creates an error for a test without enough
// observations.
func InsufficientSampleError(what string, n int) error {
	msg := `Not enough observations for the test

<em>Test:</em> %s
<em>Observations:</em> %d

<em>How to fix:</em>
  1. Run the earlier stages over the full archive
  2. Check the filters applied before this test`

	vars := []any{what, n}

	return &gn.Error{
		Code: errcode.StatsInsufficientSampleError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: %d observations are not enough", what, n),
	}
}

// WriteError creates an error for a result table that cannot be
// written.
func WriteError(path string, err error) error {
	msg := `Cannot write the test result table

<em>File path:</em> %s

<em>How to fix:</em>
  1. Check that the output directory is writable`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.StatsWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write results %s: %w", path, err),
	}
}

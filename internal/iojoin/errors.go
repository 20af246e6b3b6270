package iojoin

import (
	"fmt"

	"github.com/digigeolab/parkphotos/pkg/errcode"
	"github.com/gnames/gn"
)

// RegionsConfigError creates an error for a regions file that cannot
// be read or fails validation.
func RegionsConfigError(path string, err error) error {
	msg := `Cannot use the landscape regions configuration

<em>File path:</em> %s

<em>How to fix:</em>
  1. Check the YAML syntax of the regions file
  2. Remove the file to restore the bundled default`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.JoinRegionsConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("regions config %s: %w", path, err),
	}
}

// NoMatchesError creates an error for a join that produced an empty
// result.
func NoMatchesError(snapshot, table string) error {
	msg := `No photo identifiers matched between the two inputs

<em>Snapshot:</em> %s
<em>Visitor table:</em> %s

<em>Possible causes:</em>
  - The visitor table belongs to a different photo archive
  - The pid column does not carry photo identifiers

<em>How to fix:</em>
  1. Check that both inputs come from the same harvest
  2. Inspect the pid column of the visitor table`

	vars := []any{snapshot, table}

	return &gn.Error{
		Code: errcode.JoinNoMatchesError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"no matches between %s and %s", snapshot, table,
		),
	}
}

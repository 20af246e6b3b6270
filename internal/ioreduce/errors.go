package ioreduce

import (
	"fmt"

	"github.com/digigeolab/parkphotos/pkg/errcode"
	"github.com/gnames/gn"
)

// NoFeaturesError creates an error for a snapshot without usable
// feature vectors.
func NoFeaturesError(path string) error {
	msg := `Snapshot carries no feature vectors

<em>Snapshot:</em> %s

<em>How to fix:</em>
  1. Run the features stage first
  2. Point the command at its output snapshot`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ReduceNoFeaturesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no features in snapshot %s", path),
	}
}

// ServerError creates an error for a projection call the model server
// could not serve.
func ServerError(url string, err error) error {
	msg := `The model server could not project the features

<em>Server:</em> %s

<em>How to fix:</em>
  1. Check that the model server is running
  2. Check the inference.server_url setting
  3. Check the model server logs for the failed request`

	vars := []any{url}

	return &gn.Error{
		Code: errcode.ReduceServerError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("projection failed on %s: %w", url, err),
	}
}

// PlotError creates an error for a figure that cannot be produced.
func PlotError(path string, err error) error {
	msg := `Cannot produce the projection figure

<em>Figure path:</em> %s

<em>How to fix:</em>
  1. Check that the output directory is writable
  2. Check the grouping column name passed with --color-by`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ReducePlotError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot plot %s: %w", path, err),
	}
}

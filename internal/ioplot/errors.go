package ioplot

import (
	"fmt"

	"github.com/digigeolab/parkphotos/pkg/errcode"
	"github.com/gnames/gn"
)

// PlotError creates an error for a figure that cannot be produced.
func PlotError(path string, err error) error {
	msg := `Cannot render a figure

<em>Path:</em> %s

<em>How to fix:</em>
  1. Check that the output directory is writable`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ReducePlotError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot render %s: %w", path, err),
	}
}

package ioresize

import (
	"fmt"

	"github.com/digigeolab/parkphotos/pkg/errcode"
	"github.com/gnames/gn"
)

// OpenError creates an error for a source image that cannot be opened
// or decoded.
func OpenError(path string, err error) error {
	msg := `Cannot open a source image

<em>File path:</em> %s

<em>How to fix:</em>
  1. Check that the downloaded image tree is intact
  2. Remove the file and re-run the download stage`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ResizeOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open image %s: %w", path, err),
	}
}

// SaveError creates an error for a prepared image that cannot be
// written.
func SaveError(path string, err error) error {
	msg := `Cannot save a prepared image

<em>File path:</em> %s

<em>How to fix:</em>
  1. Check free disk space
  2. Check that the output directory is writable`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ResizeSaveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot save image %s: %w", path, err),
	}
}

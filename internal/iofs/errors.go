package iofs

import (
	"fmt"

	"github.com/digigeolab/parkphotos/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateDirError creates an error for a directory that cannot be made.
func CreateDirError(dir string, err error) error {
	msg := `Cannot create directory

<em>Directory:</em> %s

<em>How to fix:</em>
  1. Check permissions of the parent directory
  2. Check free disk space`

	vars := []any{dir}

	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to create directory %s: %w", dir, err),
	}
}

// CopyFileError creates an error for an embedded file that cannot be
// written to the config directory.
func CopyFileError(path string, err error) error {
	msg := `Cannot write configuration file

<em>File path:</em> %s

<em>How to fix:</em>
  1. Check permissions of the config directory
  2. Check free disk space`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to write file %s: %w", path, err),
	}
}

// ReadFileError creates an error for a file that cannot be read.
func ReadFileError(path string, err error) error {
	msg := `Cannot read file

<em>File path:</em> %s

<em>How to fix:</em>
  1. Check that the file exists
  2. Check its permissions`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read file %s: %w", path, err),
	}
}

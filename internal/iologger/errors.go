package iologger

import (
	"fmt"

	"github.com/digigeolab/parkphotos/pkg/errcode"
	"github.com/gnames/gn"
)

// CreateLogFileError creates an error for a log file that cannot be
// opened or created.
func CreateLogFileError(path string, err error) error {
	msg := `Cannot create log file

<em>File path:</em> %s

<em>How to fix:</em>
  1. Check permissions of the log directory
  2. Check free disk space
  3. Use log destination 'stderr' to bypass the file`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.CreateLogFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to create log file %s: %w", path, err),
	}
}

package dataset

import (
	"fmt"

	"github.com/digigeolab/parkphotos/pkg/errcode"
	"github.com/gnames/gn"
)

// ReadError creates an error for a snapshot that cannot be read or
// decoded.
func ReadError(path string, err error) error {
	msg := `Cannot read dataset snapshot

<em>File path:</em> %s

<em>Possible causes:</em>
  - File does not exist or permission denied
  - Snapshot written by an incompatible version
  - File is corrupted

<em>How to fix:</em>
  1. Check the path and permissions
  2. Re-run the stage that produces this snapshot`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.DatasetReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to read snapshot %s: %w", path, err),
	}
}

// WriteError creates an error for a snapshot that cannot be written.
func WriteError(path string, err error) error {
	msg := `Cannot write dataset snapshot

<em>File path:</em> %s

<em>How to fix:</em>
  1. Check that the output directory exists
  2. Check free disk space and permissions`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.DatasetWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to write snapshot %s: %w", path, err),
	}
}

// BadHeaderError creates an error for a CSV table whose header row is
// missing or unusable.
func BadHeaderError(path, detail string) error {
	msg := `Table header is missing or unusable

<em>File path:</em> %s
<em>Detail:</em> %s

<em>How to fix:</em>
  1. Check that the file is a CSV table with a header row
  2. Check the expected column names in the documentation`

	vars := []any{path, detail}

	return &gn.Error{
		Code: errcode.DatasetBadHeaderError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("bad header in %s: %s", path, detail),
	}
}

// BadPhotoIDError creates an error for a filename or URL from which no
// numeric photo identifier can be derived.
func BadPhotoIDError(name string, err error) error {
	msg := `Cannot derive a photo identifier

<em>Filename:</em> %s

The identifier is the numeric segment before the first underscore of
the filename, after the resolution suffix is stripped.`

	vars := []any{name}

	return &gn.Error{
		Code: errcode.DatasetBadPhotoIDError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot derive photo id from %q: %w", name, err),
	}
}

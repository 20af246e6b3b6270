package iodownload

import (
	"fmt"

	"github.com/digigeolab/parkphotos/pkg/errcode"
	"github.com/gnames/gn"
)

// ManifestError creates an error for a download manifest database that
// cannot be opened or written.
func ManifestError(path string, err error) error {
	msg := `Cannot use the download manifest database

<em>Database path:</em> %s

<em>How to fix:</em>
  1. Check that the images directory is writable
  2. Remove the manifest file if it is corrupted; a fresh run
     rebuilds it from the files on disk`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.DownloadManifestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("manifest %s: %w", path, err),
	}
}

// FetchError creates an error for an acquisition run in which not a
// single image could be retrieved.
func FetchError(posts int, journalPath string) error {
	msg := `No images could be fetched

<em>Posts tried:</em> %d
<em>Failure journal:</em> %s

<em>How to fix:</em>
  1. Check the network connection
  2. Check the photo_url column of the input table
  3. Read the failure journal for the per-photo errors`

	vars := []any{posts, journalPath}

	return &gn.Error{
		Code: errcode.DownloadFetchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("all %d fetches failed", posts),
	}
}

// SaveError creates an error for an image file that cannot be written
// to disk.
func SaveError(path string, err error) error {
	msg := `Cannot save a downloaded image

<em>File path:</em> %s

<em>How to fix:</em>
  1. Check free disk space
  2. Check that the images directory is writable`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.DownloadSaveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot save %s: %w", path, err),
	}
}

// JournalError creates an error for the failure journal that cannot be
// written.
func JournalError(path string, err error) error {
	msg := `Cannot write the download failure journal

<em>File path:</em> %s

<em>How to fix:</em>
  1. Check that the images directory is writable`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write journal %s: %w", path, err),
	}
}

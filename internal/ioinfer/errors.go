package ioinfer

import (
	"fmt"

	"github.com/digigeolab/parkphotos/pkg/errcode"
	"github.com/gnames/gn"
)

// RequestError creates an error for a model-server request that could
// not be built or sent.
func RequestError(target string, err error) error {
	msg := `Cannot reach the model server

<em>Target:</em> %s

<em>Possible causes:</em>
  - Model server is not running
  - Wrong server URL in configuration
  - Network problem

<em>How to fix:</em>
  1. Start the model server
  2. Check the inference.server_url setting`

	vars := []any{target}

	return &gn.Error{
		Code: errcode.InferenceRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("model server request to %s failed: %w", target, err),
	}
}

// ResponseError creates an error for a model-server reply that cannot
// be used.
func ResponseError(target string, err error) error {
	msg := `Model server returned an unusable response

<em>Target:</em> %s

<em>How to fix:</em>
  1. Check the model server logs
  2. Check that server and pipeline versions match`

	vars := []any{target}

	return &gn.Error{
		Code: errcode.InferenceResponseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("bad model server response from %s: %w", target, err),
	}
}

// ShapeError creates an error for model output whose dimensions do not
// match what the pipeline expects.
func ShapeError(what string, want, got int) error {
	msg := `Model output has an unexpected shape

<em>Output:</em> %s
<em>Expected:</em> %d
<em>Received:</em> %d

<em>How to fix:</em>
  1. Check that the served model matches the configuration
  2. Check the inference.feature_dim setting`

	vars := []any{what, want, got}

	return &gn.Error{
		Code: errcode.InferenceShapeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"unexpected %s shape: want %d, got %d", what, want, got,
		),
	}
}

// LabelsError creates an error for a label file that cannot be read.
func LabelsError(path string, err error) error {
	msg := `Cannot read model label file

<em>File path:</em> %s

<em>How to fix:</em>
  1. Check that the label file exists
  2. Pass the correct path with the --labels flag`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.InferenceLabelsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read labels %s: %w", path, err),
	}
}

// ImageLoadError creates an error for an image that cannot be opened
// or decoded for inference.
func ImageLoadError(path string, err error) error {
	msg := `Cannot load image for inference

<em>File path:</em> %s

<em>How to fix:</em>
  1. Check that the prepared image tree is intact
  2. Re-run the resize stage if files are corrupted`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.InferenceRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot load image %s: %w", path, err),
	}
}

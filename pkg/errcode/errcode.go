package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Dataset errors
	DatasetReadError
	DatasetWriteError
	DatasetBadHeaderError
	DatasetBadPhotoIDError

	// Download errors
	DownloadManifestError
	DownloadFetchError
	DownloadSaveError

	// Image preparation errors
	ResizeOpenError
	ResizeSaveError

	// Inference errors
	InferenceRequestError
	InferenceResponseError
	InferenceShapeError
	InferenceLabelsError

	// Join errors
	JoinRegionsConfigError
	JoinNoMatchesError

	// Reduce errors
	ReduceNoFeaturesError
	ReduceServerError
	ReducePlotError

	// Statistics errors
	StatsInsufficientSampleError
	StatsGroupingError
	StatsBadColumnError
	StatsWriteError
)

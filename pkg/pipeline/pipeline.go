// Package pipeline defines the interfaces of the batch stages.
// Each stage is an independently runnable job: it reads one or more
// snapshot files (and/or image files), applies one transformation, and
// writes a new snapshot or figure. Sequencing between stages is the
// operator's responsibility; there is no in-process orchestration.
package pipeline

import (
	"context"
)

// Downloader fetches image pixel content for every post of a metadata
// table into a category-keyed directory tree, and persists the table
// trimmed to the posts whose image was retrieved.
type Downloader interface {
	// Download runs the acquisition loop. Per-item fetch failures are
	// recorded and skipped; the stage never aborts on one.
	Download(ctx context.Context, inTable, imagesDir, outTable string) error
}

// Combiner unifies two differently-shaped metadata tables into one
// table with the unified column set, deduplicated by photo identifier.
type Combiner interface {
	Combine(newTable, oldTable, outTable string) error
}

// Matcher retains only metadata rows whose photo identifier has a
// matching downloaded image file. A pure set-intersection filter.
type Matcher interface {
	Match(inTable, imagesDir, outTable string) error
}

// Resizer shrinks and center-crops every image under a root into a
// mirrored directory tree, ready for model consumption.
type Resizer interface {
	Resize(ctx context.Context, inDir, outDir string) error
}

// Extractor runs the pretrained feature extractor over every prepared
// image in batches and writes the feature snapshot.
type Extractor interface {
	Extract(ctx context.Context, imagesDir, outSnapshot string) error
}

// ScenePredictor runs the pretrained scene classifier over the images
// of a snapshot and appends the ranked scene predictions.
type ScenePredictor interface {
	PredictScenes(ctx context.Context, inSnapshot, labelsPath, outSnapshot string) error
}

// ObjectDetector runs the pretrained instance detector over the images
// of a snapshot and appends the detection columns.
type ObjectDetector interface {
	DetectObjects(ctx context.Context, inSnapshot, labelsPath, outSnapshot string) error
}

// Joiner merges the visitor metadata onto the feature/prediction
// snapshot by photo identifier, deriving season, visitor origin and
// landscape region.
type Joiner interface {
	Join(inSnapshot, userTable, outSnapshot string) error
}

// Reducer projects the feature matrix to a small number of dimensions
// for visualization, with a reproducible seeded shuffle first.
type Reducer interface {
	// Reduce writes the snapshot with appended coordinates, and a
	// sanity-check scatter colored by vizColumn when plotPath is set.
	Reduce(ctx context.Context, inSnapshot, outSnapshot, vizColumn, plotPath string) error
}

// StatsTester runs the hypothesis tests of the study over an enriched
// snapshot and writes the result tables.
type StatsTester interface {
	// ObjectTests compares per-photo object counts between domestic
	// and foreign visitors, one test per object class of interest.
	ObjectTests(inSnapshot, outTable string) error

	// SceneTests compares per-visitor counts of photos dominated by
	// each scene of interest between domestic and foreign visitors.
	SceneTests(inSnapshot, outTable string) error

	// Permanova tests whether the reduced coordinates differ between
	// the groups of the given column.
	Permanova(inSnapshot, groupColumn, outTable string) error
}

// Plotter renders the descriptive figures of an enriched snapshot.
type Plotter interface {
	Plot(inSnapshot, outDir string) error
}

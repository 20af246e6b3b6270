package dataset

import (
	"fmt"
	"strings"
	"time"
)

// Prediction is one (label, confidence) pair produced by a pretrained
// model.
type Prediction struct {
	Label string
	Prob  float64
}

// Record is one row of the enriched table. It starts life in the
// feature-extraction stage with only the identification fields and the
// feature vector; each later stage appends its own columns and leaves
// the earlier ones untouched.
type Record struct {
	// PhotoID ties the record to its metadata row and image file.
	PhotoID int64

	// Filename and ImagePath locate the prepared image on disk.
	Filename  string
	ImagePath string

	// Features is the fixed-length vector from the pretrained
	// convolutional extractor. Written once, immutable after.
	Features []float32

	// ScenePreds holds the top-3 scene classes in non-increasing
	// probability order; SceneCat/SceneProb promote the first pair.
	ScenePreds []Prediction
	SceneCat   string
	SceneProb  float64

	// ObjPreds holds every detected instance with its confidence, in
	// detector output order, without thresholding or deduplication.
	ObjPreds       []Prediction
	DetectedObjs   []string
	UniqueObjs     []string
	ObjCount       int
	UniqueObjCount int

	// Columns appended by the join stage. Date keeps its zero value
	// when the source timestamp cannot be parsed.
	Date       time.Time
	Season     int
	SeasonName string
	Local      int
	Origin     string
	UserID     string
	Country    string
	Gender     string
	Park       string
	Region     string

	// Embedding holds the reduced coordinates appended by the
	// dimensionality-reduction stage.
	Embedding []float64
}

// Category returns the grouping label of the record for a named
// column. Stages that split or color records by a user-chosen column
// resolve the name through this one function.
func (r *Record) Category(column string) (string, error) {
	switch strings.ToLower(column) {
	case "origin":
		return r.Origin, nil
	case "region":
		return r.Region, nil
	case "season":
		return r.SeasonName, nil
	case "scene", "scenecat":
		return r.SceneCat, nil
	case "park", "parkname":
		return r.Park, nil
	case "country":
		return r.Country, nil
	case "gender":
		return r.Gender, nil
	}
	return "", fmt.Errorf("unknown grouping column %q", column)
}

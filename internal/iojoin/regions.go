package iojoin

import (
	"os"

	"github.com/digigeolab/parkphotos/pkg/regions"
	"github.com/gnames/gn"
	"gopkg.in/yaml.v3"
)

// loader implements the regions.Loader interface over a YAML file.
type loader struct {
	path string
}

// NewLoader creates a Loader reading the regions file at path.
func NewLoader(path string) regions.Loader {
	return &loader{path: path}
}

// Load reads and validates the regions configuration. Validation
// warnings are shown to the user but do not fail the load.
func (l *loader) Load() (*regions.Regions, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, RegionsConfigError(l.path, err)
	}

	var res regions.Regions
	if err = yaml.Unmarshal(data, &res); err != nil {
		return nil, RegionsConfigError(l.path, err)
	}

	if err = res.Validate(); err != nil {
		return nil, RegionsConfigError(l.path, err)
	}
	for _, w := range res.Warnings {
		gn.Warn("Regions config: %s", w.Message)
	}

	return &res, nil
}

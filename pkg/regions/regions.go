// Package regions provides configuration and validation for the
// landscape-region lookup used by the join stage.
//
// This package defines the schema for regions.yaml, which maps each of
// the four fixed landscape regions to the list of national parks it
// covers. The lookup replaces the mutable module-level lists of the
// original study data with an explicit, validated structure.
package regions

// Region is one landscape region and the park names belonging to it.
type Region struct {
	// Name is the region label written into the enriched table,
	// e.g. "Lapland fells".
	Name string `yaml:"name"`

	// Parks lists the park names classified into this region.
	Parks []string `yaml:"parks"`
}

// Regions represents the complete regions.yaml configuration file.
// Region order matters: a park listed under several regions resolves
// to the first region that carries it.
type Regions struct {
	Regions []Region `yaml:"regions"`

	// Warnings holds non-fatal validation findings (not serialized).
	Warnings []ValidationWarning `yaml:"-"`

	lookup map[string]string
}

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Park    string // park name that has the issue
	Regions []string // regions claiming the park
	Message string
}

// Loader loads the regions configuration from its file.
type Loader interface {
	Load() (*Regions, error)
}

// Lookup returns the region name for a park, and false when the park
// belongs to no region. There is no default or catch-all region.
func (r *Regions) Lookup(park string) (string, bool) {
	if r.lookup == nil {
		r.buildLookup()
	}
	name, ok := r.lookup[park]
	return name, ok
}

func (r *Regions) buildLookup() {
	r.lookup = make(map[string]string)
	for _, reg := range r.Regions {
		for _, park := range reg.Parks {
			// first-region-wins on duplicates; Validate reports them
			if _, ok := r.lookup[park]; !ok {
				r.lookup[park] = reg.Name
			}
		}
	}
}

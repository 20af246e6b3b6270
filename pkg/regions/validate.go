package regions

import (
	"fmt"
)

// Validate checks the configuration for errors and collects warnings.
// A park name claimed by more than one region is a warning, not an
// error: the source study data contains at least one such park, and
// resolving the conflict is a data question, not the pipeline's call.
// Lookup resolves duplicates to the first region in declared order.
func (r *Regions) Validate() error {
	if len(r.Regions) == 0 {
		return fmt.Errorf("no regions specified in configuration")
	}

	claims := make(map[string][]string)
	for _, reg := range r.Regions {
		if reg.Name == "" {
			return fmt.Errorf("region with empty name")
		}
		if len(reg.Parks) == 0 {
			return fmt.Errorf("region %q has no parks", reg.Name)
		}
		for _, park := range reg.Parks {
			claims[park] = append(claims[park], reg.Name)
		}
	}

	for _, reg := range r.Regions {
		for _, park := range reg.Parks {
			owners := claims[park]
			if len(owners) > 1 && owners[0] == reg.Name {
				r.Warnings = append(r.Warnings, ValidationWarning{
					Park:    park,
					Regions: owners,
					Message: fmt.Sprintf(
						"park %q is claimed by %d regions; %q wins by order",
						park, len(owners), owners[0],
					),
				})
			}
		}
	}

	return nil
}

package dataset

import (
	"os"

	"github.com/gnames/gnfmt"
)

// ReadSnapshot reads an enriched-table snapshot, decoding it with GOB.
// Row order is preserved exactly as written.
func ReadSnapshot(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ReadError(path, err)
	}

	enc := gnfmt.GNgob{}
	var res []Record
	if err = enc.Decode(data, &res); err != nil {
		return nil, ReadError(path, err)
	}
	return res, nil
}

// WriteSnapshot writes the enriched table as a whole-table GOB
// snapshot. The snapshot is the only state passed between stages.
func WriteSnapshot(path string, recs []Record) error {
	enc := gnfmt.GNgob{}
	data, err := enc.Encode(recs)
	if err != nil {
		return WriteError(path, err)
	}

	if err = os.WriteFile(path, data, 0644); err != nil {
		return WriteError(path, err)
	}
	return nil
}

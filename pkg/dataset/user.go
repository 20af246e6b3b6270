package dataset

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
)

// User is one row of the visitor metadata table consumed by the join
// stage: the post key plus the visitor's recorded attributes.
type User struct {
	// PhotoID is the post key ("pid" column, normalized to numeric).
	PhotoID int64

	UserID  string
	Country string
	Gender  string

	// Local is the binary home/away flag: 1 = domestic visitor,
	// 0 = foreign visitor.
	Local int

	// Park is the park name ("Nimi" in the source survey data).
	Park string

	// DateTaken is the raw capture timestamp string.
	DateTaken string
}

// userRenames maps the survey data headers to the unified names.
var userRenames = map[string]string{
	"Local": "local",
	"Nimi":  "parkname",
}

// ReadUsers reads the visitor metadata CSV. The pid column may be a
// plain number or a filename-style string; both normalize through the
// photo identifier derivation.
func ReadUsers(path string) ([]User, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, ReadError(path, err)
	}
	if len(rows) == 0 {
		return nil, BadHeaderError(path, "file is empty")
	}

	idx := make(map[string]int)
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if renamed, ok := userRenames[h]; ok {
			h = renamed
		}
		idx[h] = i
	}

	field := func(row []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	res := make([]User, 0, len(rows)-1)
	for _, row := range rows[1:] {
		u := User{
			UserID:    field(row, "user_id"),
			Country:   field(row, "country"),
			Gender:    field(row, "gender"),
			Park:      field(row, "parkname"),
			DateTaken: field(row, "date_taken"),
		}
		u.Local, _ = strconv.Atoi(strings.TrimSpace(field(row, "local")))

		pid := strings.TrimSpace(field(row, "pid"))
		if id, err := strconv.ParseInt(pid, 10, 64); err == nil {
			u.PhotoID = id
		} else if id, err := PhotoIDFromFilename(pid); err == nil {
			u.PhotoID = id
		}
		res = append(res, u)
	}
	return res, nil
}

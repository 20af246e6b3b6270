package dataset

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
)

// Post is one photograph's metadata row in the unified schema.
type Post struct {
	// ID is the source record identifier (kept verbatim, may be empty).
	ID string

	// PhotoID is the unique numeric key tying metadata, image file,
	// features and predictions together.
	PhotoID int64

	Title       string
	Description string

	// DateTaken is the raw capture timestamp string; it is parsed
	// leniently only by the join stage.
	DateTaken string

	PhotoURL string
	Lat      float64
	Lon      float64
	UserID   string
	UserName string

	// Park is the park/category label used for the image directory
	// layout and the landscape-region lookup.
	Park string

	// Filename is the source image filename when the input schema
	// carries one instead of a photo identifier.
	Filename string
}

// postColumns is the unified column set of a post table snapshot.
var postColumns = []string{
	"id", "title", "description", "date_taken", "photo_url",
	"lat", "lon", "user_id", "user_name", "photoid", "parkname",
}

// ReadPosts reads a post table CSV snapshot. Column order is free;
// columns are resolved by header name. Unknown columns are ignored.
func ReadPosts(path string) ([]Post, error) {
	return ReadPostsRenamed(path, nil)
}

// ReadPostsRenamed reads a post table whose headers differ from the
// unified schema, applying the rename map (old name → unified name)
// before resolving columns.
func ReadPostsRenamed(path string, rename map[string]string) ([]Post, error) {
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
		if renamed, ok := rename[h]; ok {
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

	res := make([]Post, 0, len(rows)-1)
	for _, row := range rows[1:] {
		p := Post{
			ID:          field(row, "id"),
			Title:       field(row, "title"),
			Description: field(row, "description"),
			DateTaken:   field(row, "date_taken"),
			PhotoURL:    field(row, "photo_url"),
			UserID:      field(row, "user_id"),
			UserName:    field(row, "user_name"),
			Park:        field(row, "parkname"),
			Filename:    field(row, "filename"),
		}
		p.Lat, _ = strconv.ParseFloat(field(row, "lat"), 64)
		p.Lon, _ = strconv.ParseFloat(field(row, "lon"), 64)
		if s := field(row, "photoid"); s != "" {
			p.PhotoID, _ = strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		}
		res = append(res, p)
	}
	return res, nil
}

// WritePosts writes a post table CSV snapshot with the unified column
// set, preserving row order.
func WritePosts(path string, posts []Post) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err = w.Write(postColumns); err != nil {
		return WriteError(path, err)
	}

	for i := range posts {
		p := &posts[i]
		row := []string{
			p.ID, p.Title, p.Description, p.DateTaken, p.PhotoURL,
			strconv.FormatFloat(p.Lat, 'f', -1, 64),
			strconv.FormatFloat(p.Lon, 'f', -1, 64),
			p.UserID, p.UserName,
			strconv.FormatInt(p.PhotoID, 10),
			p.Park,
		}
		if err = w.Write(row); err != nil {
			return WriteError(path, err)
		}
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return WriteError(path, err)
	}
	return nil
}

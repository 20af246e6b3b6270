package iocombine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/digigeolab/parkphotos/pkg/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newTableCSV = `filename,title,description,date_taken,photo_url,lat,lon,user_id,user_name,parkname
111_abc_z.jpg,Lake view,Calm morning,2019-06-12 08:15:00,http://x/111_abc_z.jpg,60.3,24.5,u1,Alice,Nuuksion kansallispuisto
222_def.jpg,Trail,,2019-07-01 12:00:00,http://x/222_def.jpg,63.1,29.3,u2,Bob,Kolin kansallispuisto
badname.jpg,Broken,,,http://x/badname.jpg,0,0,u3,Eve,Kolin kansallispuisto
`

const oldTableCSV = `photoid,text,photo_description,time_local,photourl,lat,lon,userid,username,parkname
222,Old trail,Before renaming,2016-07-01 12:00:00,http://x/222_def.jpg,63.1,29.3,u2,Bob,Kolin kansallispuisto
333,Winter,Snowy,2016-01-20 10:00:00,http://x/333_ghi.jpg,68.0,24.1,u4,Carol,Pallas-Yllästunturin kansallispuisto
`

func TestCombine(t *testing.T) {
	dir := t.TempDir()
	newTable := filepath.Join(dir, "new.csv")
	oldTable := filepath.Join(dir, "old.csv")
	outTable := filepath.Join(dir, "combined.csv")

	require.NoError(t, os.WriteFile(newTable, []byte(newTableCSV), 0644))
	require.NoError(t, os.WriteFile(oldTable, []byte(oldTableCSV), 0644))

	c := New()
	require.NoError(t, c.Combine(newTable, oldTable, outTable))

	got, err := dataset.ReadPosts(outTable)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// ids derived from filenames, newer harvest first
	assert.Equal(t, int64(111), got[0].PhotoID)
	assert.Equal(t, "Lake view", got[0].Title)

	// duplicate 222 keeps the newer row
	assert.Equal(t, int64(222), got[1].PhotoID)
	assert.Equal(t, "Trail", got[1].Title)
	assert.Equal(t, "2019-07-01 12:00:00", got[1].DateTaken)

	// renamed columns of the older harvest survive
	assert.Equal(t, int64(333), got[2].PhotoID)
	assert.Equal(t, "Winter", got[2].Title)
	assert.Equal(t, "Snowy", got[2].Description)
	assert.Equal(t, "Carol", got[2].UserName)
}

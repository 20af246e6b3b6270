package iodownload

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/digigeolab/parkphotos/pkg/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.New()
	cfg.Download.DelayMinMS = 0
	cfg.Download.DelayMaxMS = 0
	return cfg
}

func TestParkDir(t *testing.T) {
	tests := []struct {
		msg, park, want string
	}{
		{"long name", "Nuuksion kansallispuisto", "Nuuksi"},
		{"short name", "Oulu", "Oulu"},
		{"six chars", "Kolin ", "Kolin "},
		{"empty", "", ""},
	}

	for _, v := range tests {
		assert.Equal(t, v.want, parkDir(v.park), v.msg)
	}
}

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/333_ghi_b.jpg" {
				http.NotFound(w, r)
				return
			}
			w.Write([]byte("jpegbytes"))
		}))
	defer srv.Close()

	dir := t.TempDir()
	inTable := filepath.Join(dir, "posts.csv")
	outTable := filepath.Join(dir, "downloaded.csv")
	imagesDir := filepath.Join(dir, "images")

	posts := []dataset.Post{
		{
			PhotoID:  111,
			PhotoURL: srv.URL + "/111_abc_z.jpg",
			Park:     "Nuuksion kansallispuisto",
		},
		{
			PhotoID:  222,
			PhotoURL: srv.URL + "/222_def_m.jpg",
			Park:     "Kolin kansallispuisto",
		},
		{
			PhotoID:  333,
			PhotoURL: srv.URL + "/333_ghi_n.jpg",
			Park:     "Kolin kansallispuisto",
		},
	}
	require.NoError(t, dataset.WritePosts(inTable, posts))

	d := New(testConfig())
	err := d.Download(context.Background(), inTable, imagesDir, outTable)
	require.NoError(t, err)

	// failed fetch is dropped from the output table
	got, err := dataset.ReadPosts(outTable)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(111), got[0].PhotoID)
	assert.Equal(t, int64(222), got[1].PhotoID)

	// the largest variant lands in the park prefix directory
	assert.FileExists(t,
		filepath.Join(imagesDir, "Nuuksi", "111_abc_b.jpg"))
	assert.FileExists(t,
		filepath.Join(imagesDir, "Kolin ", "222_def_b.jpg"))
	assert.NoFileExists(t,
		filepath.Join(imagesDir, "Kolin ", "333_ghi_b.jpg"))

	journal, err := os.ReadFile(filepath.Join(imagesDir, journalName))
	require.NoError(t, err)
	assert.Contains(t, string(journal), "333")

	man, err := openManifest(filepath.Join(imagesDir, manifestName))
	require.NoError(t, err)
	defer man.close()

	var count int64
	err = man.db.Model(&Attempt{}).Count(&count).Error
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestDownloadAllFailed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
	defer srv.Close()

	dir := t.TempDir()
	inTable := filepath.Join(dir, "posts.csv")
	outTable := filepath.Join(dir, "downloaded.csv")
	imagesDir := filepath.Join(dir, "images")

	posts := []dataset.Post{
		{
			PhotoID:  111,
			PhotoURL: srv.URL + "/111_abc_z.jpg",
			Park:     "Nuuksion kansallispuisto",
		},
		{
			PhotoID:  222,
			PhotoURL: srv.URL + "/222_def_m.jpg",
			Park:     "Kolin kansallispuisto",
		},
	}
	require.NoError(t, dataset.WritePosts(inTable, posts))

	d := New(testConfig())
	err := d.Download(context.Background(), inTable, imagesDir, outTable)
	require.Error(t, err)
	assert.ErrorContains(t, err, "all 2 fetches failed")

	// the journal still carries every failure
	journal, err := os.ReadFile(filepath.Join(imagesDir, journalName))
	require.NoError(t, err)
	assert.Contains(t, string(journal), "111")
	assert.Contains(t, string(journal), "222")

	assert.NoFileExists(t, outTable)
}

func TestDownloadResume(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			hits++
			w.Write([]byte("jpegbytes"))
		}))
	defer srv.Close()

	dir := t.TempDir()
	inTable := filepath.Join(dir, "posts.csv")
	outTable := filepath.Join(dir, "downloaded.csv")
	imagesDir := filepath.Join(dir, "images")

	posts := []dataset.Post{
		{
			PhotoID:  111,
			PhotoURL: srv.URL + "/111_abc_z.jpg",
			Park:     "Nuuksion kansallispuisto",
		},
	}
	require.NoError(t, dataset.WritePosts(inTable, posts))

	d := New(testConfig())
	ctx := context.Background()
	require.NoError(t, d.Download(ctx, inTable, imagesDir, outTable))
	require.NoError(t, d.Download(ctx, inTable, imagesDir, outTable))

	// second run found the file on disk and skipped the fetch
	assert.Equal(t, 1, hits)

	man, err := openManifest(filepath.Join(imagesDir, manifestName))
	require.NoError(t, err)
	defer man.close()

	var cachedCount int64
	err = man.db.Model(&Attempt{}).
		Where("status = ?", statusCached).
		Count(&cachedCount).Error
	require.NoError(t, err)
	assert.Equal(t, int64(1), cachedCount)
}

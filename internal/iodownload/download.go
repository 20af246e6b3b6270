// Package iodownload implements the image acquisition stage. It walks
// a metadata table, fetches the largest standard variant of every
// photo into a park-keyed directory tree, and keeps a SQLite manifest
// of every attempt so interrupted runs can resume without re-fetching.
package iodownload

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/digigeolab/parkphotos/pkg/dataset"
	"github.com/digigeolab/parkphotos/pkg/pipeline"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/google/uuid"
)

// journalName is the per-tree failure journal, one line per failed
// fetch.
const journalName = "download_errors.txt"

// manifestName is the SQLite attempt manifest kept next to the images.
const manifestName = "manifest.db"

// downloader implements the Downloader interface.
type downloader struct {
	cfg    *config.Config
	client *http.Client
}

// New creates a new Downloader.
func New(cfg *config.Config) pipeline.Downloader {
	return &downloader{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

// Download fetches the image of every metadata row into
// imagesDir/<park prefix>/<photo filename> and writes the table
// trimmed to the rows whose image is on disk. Rows whose fetch fails
// are journaled and dropped without stopping the loop; only a run in
// which every fetch fails returns an error. Files already on disk are
// kept as is, which makes interrupted runs resumable.
func (d *downloader) Download(
	ctx context.Context,
	inTable, imagesDir, outTable string,
) error {
	start := time.Now()

	posts, err := dataset.ReadPosts(inTable)
	if err != nil {
		return err
	}
	gn.Info("Acquiring images for <em>%s</em> posts",
		humanize.Comma(int64(len(posts))))

	if err = os.MkdirAll(imagesDir, 0755); err != nil {
		return SaveError(imagesDir, err)
	}

	man, err := openManifest(filepath.Join(imagesDir, manifestName))
	if err != nil {
		return err
	}
	defer man.close()

	journalPath := filepath.Join(imagesDir, journalName)
	journal, err := os.OpenFile(
		journalPath,
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return JournalError(journalPath, err)
	}
	defer journal.Close()

	runID := uuid.NewString()
	slog.Info("Starting acquisition run",
		"run_id", runID, "posts", len(posts))

	bar := newProgressBar(len(posts), "Downloading: ")
	defer bar.Finish()

	var kept []dataset.Post
	var fetched, cached, failed int

	for i := range posts {
		if err = ctx.Err(); err != nil {
			return err
		}
		p := posts[i]

		url := dataset.LargestVariant(p.PhotoURL)
		fname := dataset.Basename(url)
		if p.PhotoID == 0 {
			p.PhotoID, _ = dataset.PhotoIDFromFilename(fname)
		}
		dest := filepath.Join(imagesDir, parkDir(p.Park), fname)

		att := Attempt{
			RunID:   runID,
			PhotoID: p.PhotoID,
			URL:     url,
			Path:    dest,
		}

		if _, statErr := os.Stat(dest); statErr == nil {
			att.Status = statusCached
			if err = man.record(&att); err != nil {
				return err
			}
			p.Filename = fname
			kept = append(kept, p)
			cached++
			bar.Increment()
			continue
		}

		if fetchErr := d.fetch(ctx, url, dest); fetchErr != nil {
			att.Status = statusFailed
			att.Error = fetchErr.Error()
			if err = man.record(&att); err != nil {
				return err
			}
			line := fmt.Sprintf(
				"%d\t%s\t%s\n", p.PhotoID, url, fetchErr,
			)
			if _, err = journal.WriteString(line); err != nil {
				return JournalError(journalPath, err)
			}
			slog.Warn("Image fetch failed",
				"photo_id", p.PhotoID, "url", url, "error", fetchErr)
			failed++
			bar.Increment()
			continue
		}

		att.Status = statusFetched
		if err = man.record(&att); err != nil {
			return err
		}
		p.Filename = fname
		kept = append(kept, p)
		fetched++
		bar.Increment()

		if err = d.pause(ctx); err != nil {
			return err
		}
	}

	// per-item failures are tolerated, a run with no image at all is not
	if len(posts) > 0 && len(kept) == 0 {
		return FetchError(len(posts), journalPath)
	}

	if err = dataset.WritePosts(outTable, kept); err != nil {
		return err
	}

	slog.Info("Acquisition run complete",
		"run_id", runID,
		"fetched", fetched,
		"cached", cached,
		"failed", failed,
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	gn.Info(
		"Acquired <em>%s</em> images (%s cached, %s failed) in %s",
		humanize.Comma(int64(fetched)),
		humanize.Comma(int64(cached)),
		humanize.Comma(int64(failed)),
		gnfmt.TimeString(time.Since(start).Seconds()),
	)
	if failed > 0 {
		gn.Warn("Failed fetches are listed in <em>%s</em>", journalPath)
	}
	return nil
}

// fetch downloads one URL to dest, creating the park directory on
// demand. A partial file is removed on failure.
func (d *downloader) fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err = os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return SaveError(filepath.Dir(dest), err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return SaveError(dest, err)
	}

	if _, err = io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return SaveError(dest, err)
	}
	return f.Close()
}

// pause sleeps a random interval between the configured bounds. The
// jitter keeps the photo service from throttling the client.
func (d *downloader) pause(ctx context.Context) error {
	lo := d.cfg.Download.DelayMinMS
	hi := d.cfg.Download.DelayMaxMS
	if hi < lo {
		hi = lo
	}

	delay := time.Duration(lo+rand.IntN(hi-lo+1)) * time.Millisecond
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// parkDir returns the directory name of a park: the first six
// characters of its name, matching the layout of the existing archive.
func parkDir(park string) string {
	r := []rune(park)
	if len(r) > 6 {
		r = r[:6]
	}
	return string(r)
}

package config_test

import (
	"path/filepath"
	"testing"

	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "parkphotos"),
		},
		{
			msg: "cache dir",
			fn:  config.CacheDir,
			res: filepath.Join(tempHome, ".cache", "parkphotos"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(
				tempHome, ".local", "share", "parkphotos", "logs",
			),
		},
		{
			msg: "regions file",
			fn:  config.RegionsFilePath,
			res: filepath.Join(
				tempHome, ".config", "parkphotos", "regions.yaml",
			),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	// Download defaults
	assert.Equal(t, 900, cfg.Download.DelayMinMS)
	assert.Equal(t, 1800, cfg.Download.DelayMaxMS)

	// Inference defaults
	assert.Equal(t, "http://localhost:8501", cfg.Inference.ServerURL)
	assert.Equal(t, 32, cfg.Inference.BatchSize)
	assert.Equal(t, 300, cfg.Inference.TimeoutSec)
	assert.Equal(t, 2048, cfg.Inference.FeatureDim)

	// Reduce defaults
	assert.Equal(t, 2, cfg.Reduce.Components)
	assert.Equal(t, 80, cfg.Reduce.Neighbors)
	assert.Equal(t, 0.0, cfg.Reduce.MinDist)
	assert.Equal(t, int64(42), cfg.Reduce.Seed)

	// Stats defaults
	assert.Equal(t, 999, cfg.Stats.Permutations)

	// Log defaults
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)
}

func TestOptionServerURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid url",
			input:    "http://models:8501",
			expected: "http://models:8501",
		},
		{
			name:     "strips trailing slash",
			input:    "http://models:8501/",
			expected: "http://models:8501",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: "http://localhost:8501",
		},
	}

	for _, v := range tests {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptInferenceServerURL(v.input),
		})
		assert.Equal(t, v.expected, cfg.Inference.ServerURL, v.name)
	}
}

func TestOptionRejectsInvalid(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptInferenceBatchSize(-5),
		config.OptReduceComponents(0),
		config.OptStatsPermutations(-1),
		config.OptLogLevel("verbose"),
		config.OptReduceMinDist(-0.5),
	})

	// invalid values are ignored, defaults survive
	assert.Equal(t, 32, cfg.Inference.BatchSize)
	assert.Equal(t, 2, cfg.Reduce.Components)
	assert.Equal(t, 999, cfg.Stats.Permutations)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 0.0, cfg.Reduce.MinDist)
}

func TestOptionSeedAcceptsAny(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptReduceSeed(0)})
	assert.Equal(t, int64(0), cfg.Reduce.Seed)

	cfg.Update([]config.Option{config.OptReduceSeed(-7)})
	assert.Equal(t, int64(-7), cfg.Reduce.Seed)
}

func TestToOptionsRoundTrip(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptInferenceServerURL("http://models:9000"),
		config.OptReduceNeighbors(15),
		config.OptLogFormat("text"),
	})

	clone := config.New()
	clone.Update(cfg.ToOptions())

	assert.Equal(t, cfg, clone)
}

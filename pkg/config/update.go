package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, per-command paths).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option

	if c.Download.DelayMinMS > 0 {
		res = append(res, OptDownloadDelayMinMS(c.Download.DelayMinMS))
	}
	if c.Download.DelayMaxMS > 0 {
		res = append(res, OptDownloadDelayMaxMS(c.Download.DelayMaxMS))
	}

	if c.Inference.ServerURL != "" {
		res = append(res, OptInferenceServerURL(c.Inference.ServerURL))
	}
	if c.Inference.BatchSize > 0 {
		res = append(res, OptInferenceBatchSize(c.Inference.BatchSize))
	}
	if c.Inference.TimeoutSec > 0 {
		res = append(res, OptInferenceTimeoutSec(c.Inference.TimeoutSec))
	}
	if c.Inference.FeatureDim > 0 {
		res = append(res, OptInferenceFeatureDim(c.Inference.FeatureDim))
	}

	if c.Reduce.Components > 0 {
		res = append(res, OptReduceComponents(c.Reduce.Components))
	}
	if c.Reduce.Neighbors > 0 {
		res = append(res, OptReduceNeighbors(c.Reduce.Neighbors))
	}
	if c.Reduce.MinDist >= 0 {
		res = append(res, OptReduceMinDist(c.Reduce.MinDist))
	}
	res = append(res, OptReduceSeed(c.Reduce.Seed))

	if c.Stats.Permutations > 0 {
		res = append(res, OptStatsPermutations(c.Stats.Permutations))
	}

	if c.Log.Format != "" {
		res = append(res, OptLogFormat(c.Log.Format))
	}
	if c.Log.Level != "" {
		res = append(res, OptLogLevel(c.Log.Level))
	}
	if c.Log.Destination != "" {
		res = append(res, OptLogDestination(c.Log.Destination))
	}

	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func warnNegative(name string, f float64) {
	gn.Warn("<em>%s</em> cannot be negative, ignoring %v", name, f)
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}

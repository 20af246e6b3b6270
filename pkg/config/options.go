package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDownloadDelayMinMS sets the lower bound of the randomized pause
// between download requests, in milliseconds.
func OptDownloadDelayMinMS(i int) Option {
	return func(c *Config) {
		if isValidInt("Download DelayMinMS", i) {
			c.Download.DelayMinMS = i
		}
	}
}

// OptDownloadDelayMaxMS sets the upper bound of the randomized pause
// between download requests, in milliseconds.
func OptDownloadDelayMaxMS(i int) Option {
	return func(c *Config) {
		if isValidInt("Download DelayMaxMS", i) {
			c.Download.DelayMaxMS = i
		}
	}
}

// OptInferenceServerURL sets the base URL of the model server.
func OptInferenceServerURL(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "/")
	return func(c *Config) {
		if isValidString("Inference ServerURL", s) {
			c.Inference.ServerURL = s
		}
	}
}

// OptInferenceBatchSize sets the number of images per forward pass.
func OptInferenceBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Inference BatchSize", i) {
			c.Inference.BatchSize = i
		}
	}
}

// OptInferenceTimeoutSec sets the per-request timeout in seconds.
func OptInferenceTimeoutSec(i int) Option {
	return func(c *Config) {
		if isValidInt("Inference TimeoutSec", i) {
			c.Inference.TimeoutSec = i
		}
	}
}

// OptInferenceFeatureDim sets the feature extractor output dimension.
func OptInferenceFeatureDim(i int) Option {
	return func(c *Config) {
		if isValidInt("Inference FeatureDim", i) {
			c.Inference.FeatureDim = i
		}
	}
}

// OptReduceComponents sets the number of dimensions to reduce to.
func OptReduceComponents(i int) Option {
	return func(c *Config) {
		if isValidInt("Reduce Components", i) {
			c.Reduce.Components = i
		}
	}
}

// OptReduceNeighbors sets the manifold learner neighborhood size.
func OptReduceNeighbors(i int) Option {
	return func(c *Config) {
		if isValidInt("Reduce Neighbors", i) {
			c.Reduce.Neighbors = i
		}
	}
}

// OptReduceMinDist sets the minimum point separation of the learner.
func OptReduceMinDist(f float64) Option {
	return func(c *Config) {
		if f < 0 {
			warnNegative("Reduce MinDist", f)
			return
		}
		c.Reduce.MinDist = f
	}
}

// OptReduceSeed sets the random seed of the shuffle and reduction.
// Any value is acceptable, including zero and negatives.
func OptReduceSeed(i int64) Option {
	return func(c *Config) {
		c.Reduce.Seed = i
	}
}

// OptStatsPermutations sets the number of PERMANOVA permutations.
func OptStatsPermutations(i int) Option {
	return func(c *Config) {
		if isValidInt("Stats Permutations", i) {
			c.Stats.Permutations = i
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache and logs.
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("HomeDir", s) {
			c.HomeDir = s
		}
	}
}

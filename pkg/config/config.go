// Package config provides configuration management for parkphotos.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Download: delay_min_ms, delay_max_ms
//   - Inference: server_url, batch_size, timeout_sec, feature_dim
//   - Reduce: components, neighbors, min_dist, seed
//   - Stats: permutations
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - per-command input/output paths
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use PARKPHOTOS_ prefix with underscores for nesting:
//
//	PARKPHOTOS_INFERENCE_SERVER_URL=http://localhost:8501
//	PARKPHOTOS_INFERENCE_BATCH_SIZE=32
//	PARKPHOTOS_LOG_LEVEL=info
package config

// Config represents the complete parkphotos configuration.
type Config struct {
	// Download contains settings for the image acquisition stage.
	Download DownloadConfig `mapstructure:"download" yaml:"download"`

	// Inference contains model-server settings shared by the
	// features, scenes and objects stages.
	Inference InferenceConfig `mapstructure:"inference" yaml:"inference"`

	// Reduce contains dimensionality-reduction parameters.
	Reduce ReduceConfig `mapstructure:"reduce" yaml:"reduce"`

	// Stats contains statistical-test settings.
	Stats StatsConfig `mapstructure:"stats" yaml:"stats"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DownloadConfig contains settings for the image acquisition stage.
type DownloadConfig struct {
	// DelayMinMS is the lower bound of the randomized pause between
	// requests, in milliseconds. The pause keeps the photo service from
	// throttling the client.
	DelayMinMS int `mapstructure:"delay_min_ms" yaml:"delay_min_ms"`

	// DelayMaxMS is the upper bound of the randomized pause between
	// requests, in milliseconds.
	DelayMaxMS int `mapstructure:"delay_max_ms" yaml:"delay_max_ms"`
}

// InferenceConfig contains model-server connection settings.
type InferenceConfig struct {
	// ServerURL is the base URL of the model server that hosts the
	// pretrained feature extractor, scene classifier, object detector
	// and the embedding-reduction routine.
	ServerURL string `mapstructure:"server_url" yaml:"server_url"`

	// BatchSize is the number of images sent per forward pass for the
	// batched models (feature extraction, scene classification).
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// TimeoutSec is the per-request timeout in seconds. Detection on a
	// CPU-only server can take a while per image.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`

	// FeatureDim is the output dimensionality of the feature extractor.
	FeatureDim int `mapstructure:"feature_dim" yaml:"feature_dim"`
}

// ReduceConfig contains dimensionality-reduction parameters.
type ReduceConfig struct {
	// Components is the number of dimensions to reduce to.
	Components int `mapstructure:"components" yaml:"components"`

	// Neighbors is the neighborhood size of the manifold learner.
	Neighbors int `mapstructure:"neighbors" yaml:"neighbors"`

	// MinDist controls how tightly the learner packs points together.
	MinDist float64 `mapstructure:"min_dist" yaml:"min_dist"`

	// Seed fixes the random state of both the row shuffle and the
	// reduction routine. Identical seed, input order and parameters
	// reproduce identical coordinates.
	Seed int64 `mapstructure:"seed" yaml:"seed"`
}

// StatsConfig contains statistical-test settings.
type StatsConfig struct {
	// Permutations is the number of label permutations for PERMANOVA.
	Permutations int `mapstructure:"permutations" yaml:"permutations"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Download: DownloadConfig{
			DelayMinMS: 900,
			DelayMaxMS: 1800,
		},
		Inference: InferenceConfig{
			ServerURL:  "http://localhost:8501",
			BatchSize:  32,
			TimeoutSec: 300,
			FeatureDim: 2048,
		},
		Reduce: ReduceConfig{
			Components: 2,
			Neighbors:  80,
			MinDist:    0.0,
			Seed:       42,
		},
		Stats: StatsConfig{
			Permutations: 999,
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
	}

	return res
}

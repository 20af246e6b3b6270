package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/digigeolab/parkphotos/internal/iofs"
	"github.com/digigeolab/parkphotos/internal/iologger"
	app "github.com/digigeolab/parkphotos/pkg"
	"github.com/digigeolab/parkphotos/pkg/config"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
	Use:     "parkphotos",
	Short:   "Analyzes visitor photography of national parks",
	Long: `parkphotos runs the stages of the park photography analysis
pipeline. Each stage is an independent command that reads the output
of the previous one:

  download  fetch geotagged photos into a park-keyed archive
  combine   unify metadata tables from different harvests
  match     drop metadata rows without a downloaded image
  resize    prepare images for the pretrained models
  features  extract content vectors with the pretrained network
  scenes    classify the scene of every photo
  objects   detect object instances in every photo
  join      merge visitor survey attributes onto the records
  reduce    project content vectors to plotting coordinates
  stats     run the hypothesis tests of the study
  plot      render the descriptive figures

Configuration precedence (highest to lowest):
  CLI flags > PARKPHOTOS_* env vars > config.yaml > defaults`,
	PersistentPreRunE: bootstrap,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	err = iologger.Init(config.LogDir(homeDir), defaultLog, false)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureRegionsFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings
	err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to
// happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Remove the automatic "parkphotos version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for parkphotos")

	rootCmd.AddCommand(
		getDownloadCmd(),
		getCombineCmd(),
		getMatchCmd(),
		getResizeCmd(),
		getFeaturesCmd(),
		getScenesCmd(),
		getObjectsCmd(),
		getJoinCmd(),
		getReduceCmd(),
		getStatsCmd(),
		getPlotCmd(),
	)
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables
	// are allowed. These match the fields included in
	// config.ToOptions(), i.e. persistent configuration that can be
	// stored in config.yaml.
	v.SetEnvPrefix("PARKPHOTOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Download configuration
	v.BindEnv("download.delay_min_ms", "DOWNLOAD_DELAY_MIN_MS")
	v.BindEnv("download.delay_max_ms", "DOWNLOAD_DELAY_MAX_MS")

	// Inference configuration
	v.BindEnv("inference.server_url", "INFERENCE_SERVER_URL")
	v.BindEnv("inference.batch_size", "INFERENCE_BATCH_SIZE")
	v.BindEnv("inference.timeout_sec", "INFERENCE_TIMEOUT_SEC")
	v.BindEnv("inference.feature_dim", "INFERENCE_FEATURE_DIM")

	// Reduce configuration
	v.BindEnv("reduce.components", "REDUCE_COMPONENTS")
	v.BindEnv("reduce.neighbors", "REDUCE_NEIGHBORS")
	v.BindEnv("reduce.min_dist", "REDUCE_MIN_DIST")
	v.BindEnv("reduce.seed", "REDUCE_SEED")

	// Stats configuration
	v.BindEnv("stats.permutations", "STATS_PERMUTATIONS")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	v.AutomaticEnv()
}

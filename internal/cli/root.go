package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/arblens/arblens/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "arblens",
	Short: "Arblens - analytics over consumer arbitration case records",
	Long: `Arblens answers free-text questions about arbitration case records:
case counts, outcome breakdowns, average awards, case listings, and
respondent analyses, resolved per arbitrator across name variants.

Questions the deterministic rules cannot classify are escalated to a
configured AI collaborator; without one, arblens asks you to rephrase.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for Arblens.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("arblens v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.arblens/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.arblens")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match ARBLENS_*
	viper.SetEnvPrefix("ARBLENS")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig layers the config file and environment over the defaults.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()

	if v := viper.GetString("store.path"); v != "" {
		cfg.Store.Path = v
	}
	if v := viper.GetString("ai.provider"); v != "" {
		cfg.AI.Provider = v
	}
	if v := viper.GetString("ai.model"); v != "" {
		cfg.AI.Model = v
	}
	if v := viper.GetString("ai.api_key"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := viper.GetString("ai.base_url"); v != "" {
		cfg.AI.BaseURL = v
	}
	if v := viper.GetInt("ai.timeout"); v > 0 {
		cfg.AI.Timeout = v
	}
	if v := viper.GetInt("ai.max_tokens"); v > 0 {
		cfg.AI.MaxTokens = v
	}
	if v := viper.GetFloat64("ai.min_trust"); v > 0 {
		cfg.AI.MinTrust = v
	}
	if v := viper.GetInt("ai.rate_per_minute"); v > 0 {
		cfg.AI.RatePerMinute = v
	}
	if viper.IsSet("cache.enabled") {
		cfg.Cache.Enabled = viper.GetBool("cache.enabled")
	}
	if v := viper.GetInt("cache.ttl_seconds"); v > 0 {
		cfg.Cache.TTLSeconds = v
	}
	if v := viper.GetInt("concurrency.aggregation_workers"); v > 0 {
		cfg.Concurrency.AggregationWorkers = v
	}

	// API keys are usually supplied through the environment
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	return cfg
}

// newLogger builds the CLI logger. Verbose mode enables debug output to
// stderr; otherwise only warnings and errors surface.
func newLogger() *zap.SugaredLogger {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"stderr"}
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	} else {
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/vocabgen/internal/logging"
	"github.com/ppiankov/vocabgen/internal/model"
)

// Version is set at build time with -ldflags "-X github.com/ppiankov/vocabgen/internal/cli.Version=..."
var Version = "v0.3.0"

var (
	cfgFile  string
	verbose  bool
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vocabgen",
	Short: "vocabgen - Vocabulary list generator",
	Long: `vocabgen turns a list of terms into a formatted vocabulary list.

Each term is looked up with Google Programmable Search. The preferred
reference site (Investopedia by default) supplies the definition from its
page description; when it has nothing, the fallback site (Wikipedia by
default) is fetched and the paragraph containing the search snippet is used.
Terms that cannot be resolved are listed under "Words not found:".`,
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
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "vocabgen %s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.vocabgen/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (same as --log-level debug)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "diagnostic log level (debug, info, warn, error)")

	// Bind flags to viper
	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("output.log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig points the global viper at the config file and environment
func initConfig() {
	configureViper(viper.GetViper(), cfgFile)
}

// configureViper sets up config file lookup, env binding and defaults on v
func configureViper(v *viper.Viper, file string) {
	if file != "" {
		// Use config file from the flag
		v.SetConfigFile(file)
	} else if dir, err := configDir(); err == nil {
		v.AddConfigPath(dir)
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	// Read in environment variables that match VOCABGEN_*
	v.SetEnvPrefix("VOCABGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credentials also come from the variables the Google tooling uses
	_ = v.BindEnv("search.api_key", "VOCABGEN_SEARCH_API_KEY", "GOOGLE_API_KEY")
	_ = v.BindEnv("search.engine_id", "VOCABGEN_SEARCH_ENGINE_ID", "GOOGLE_CSE_ID")

	setDefaults(v, model.DefaultConfig())
}

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal
func setDefaults(v *viper.Viper, cfg *model.Config) {
	v.SetDefault("search.api_key", cfg.Search.APIKey)
	v.SetDefault("search.engine_id", cfg.Search.EngineID)
	v.SetDefault("search.endpoint", cfg.Search.Endpoint)

	v.SetDefault("sources.domain", cfg.Sources.Domain)
	v.SetDefault("sources.preferred", cfg.Sources.Preferred)
	v.SetDefault("sources.fallback", cfg.Sources.Fallback)
	v.SetDefault("sources.metadata_key", cfg.Sources.MetadataKey)

	v.SetDefault("http.timeout", cfg.HTTP.Timeout)
	v.SetDefault("http.user_agent", cfg.HTTP.UserAgent)
	v.SetDefault("http.max_body_bytes", cfg.HTTP.MaxBodyBytes)
	v.SetDefault("http.http_proxy", cfg.HTTP.HTTPProxy)
	v.SetDefault("http.https_proxy", cfg.HTTP.HTTPSProxy)
	v.SetDefault("http.respect_robots", cfg.HTTP.RespectRobots)

	v.SetDefault("extract.stop_words", cfg.Extract.StopWords)

	v.SetDefault("document.output_name", cfg.Document.OutputName)
	v.SetDefault("document.header", cfg.Document.Header)
	v.SetDefault("document.font_family", cfg.Document.FontFamily)
	v.SetDefault("document.font_size", cfg.Document.FontSize)
	v.SetDefault("document.open", cfg.Document.Open)

	v.SetDefault("output.verbose", cfg.Output.Verbose)
	v.SetDefault("output.log_level", cfg.Output.LogLevel)
}

// newLogger builds the diagnostic logger on w from the output settings
func newLogger(w io.Writer, out model.OutputConfig) *slog.Logger {
	if out.Verbose {
		return logging.New(w, true)
	}
	return logging.NewWithLevel(w, out.LogLevel)
}

// loadConfig reads the config file (if any) and resolves the full configuration
func loadConfig(v *viper.Viper) (*model.Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, model.WrapError(model.ErrConfig, "read config", err)
		}
	}

	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, model.WrapError(model.ErrConfig, "decode config", err)
	}
	return cfg, nil
}

// configDir returns ~/.vocabgen
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".vocabgen"), nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/tdb/internal/config"
	"github.com/dbsmedya/tdb/internal/logger"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile     string
	dbPath      string
	profilePath string
	csvDelim    string
	csvHeader   string
	csvSample   int
	logLevel    string
	logFormat   string
)

var rootCmd = &cobra.Command{
	Use:   "tdb",
	Short: "CSV loader and integrity checker for embedded DuckDB",
	Long: `tdb loads CSV files into an embedded DuckDB database file, inspects the
resulting schemas, runs ad-hoc SQL, and validates primary/foreign key
integrity against a JSON schema profile.

Features:
  - CSV dialect sniffing and type inference delegated to the engine
  - Dependency-ordered staged builds with PK/FK constraints
  - PK duplicate/null metrics and FK orphan counts per profile
  - Machine-readable --json output on every data command`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "tdb.yaml",
		"Path to configuration file")

	// Database and profile locations
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "",
		"Override database file path")
	rootCmd.PersistentFlags().StringVar(&profilePath, "profile", "",
		"Override schema profile path")

	// CSV sniffing overrides
	rootCmd.PersistentFlags().StringVar(&csvDelim, "delim", "",
		"Override CSV delimiter (auto or a single character)")
	rootCmd.PersistentFlags().StringVar(&csvHeader, "header", "",
		"Override CSV header mode (auto, true, false)")
	rootCmd.PersistentFlags().IntVar(&csvSample, "sample", 0,
		"Override CSV sample size for sniffing")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")
}

// loadConfig loads the .env file, the config file, applies CLI overrides,
// and validates the result.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Apply(config.Overrides{
		DBPath:      dbPath,
		ProfilePath: profilePath,
		Delim:       csvDelim,
		Header:      csvHeader,
		SampleSize:  csvSample,
		LogLevel:    logLevel,
		LogFormat:   logFormat,
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the logger for a command from validated configuration.
func newLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return log, nil
}

// Package config provides configuration structures and loading for tdb.
package config

// Config represents the complete application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Profile  ProfileConfig  `yaml:"profile" mapstructure:"profile"`
	CSV      CSVConfig      `yaml:"csv" mapstructure:"csv"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// DatabaseConfig locates the embedded database file.
type DatabaseConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// ProfileConfig locates the schema profile document.
type ProfileConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// CSVConfig holds defaults for CSV dialect sniffing.
// Delim and Header accept "auto" to leave the decision to the engine.
type CSVConfig struct {
	Delim      string `yaml:"delim" mapstructure:"delim"`
	Header     string `yaml:"header" mapstructure:"header"` // auto, true, false
	SampleSize int    `yaml:"sample_size" mapstructure:"sample_size"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: ".tdb.duckdb",
		},
		Profile: ProfileConfig{
			Path: ".tdb_profile.json",
		},
		CSV: CSVConfig{
			Delim:      "auto",
			Header:     "auto",
			SampleSize: 20480,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Overrides holds CLI flag values that take precedence over the config file.
// Zero values mean "not set" and leave the file value in place.
type Overrides struct {
	DBPath      string
	ProfilePath string
	Delim       string
	Header      string
	SampleSize  int
	LogLevel    string
	LogFormat   string
}

// Apply copies non-zero override values onto the configuration.
func (c *Config) Apply(o Overrides) {
	if o.DBPath != "" {
		c.Database.Path = o.DBPath
	}
	if o.ProfilePath != "" {
		c.Profile.Path = o.ProfilePath
	}
	if o.Delim != "" {
		c.CSV.Delim = o.Delim
	}
	if o.Header != "" {
		c.CSV.Header = o.Header
	}
	if o.SampleSize > 0 {
		c.CSV.SampleSize = o.SampleSize
	}
	if o.LogLevel != "" {
		c.Logging.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Logging.Format = o.LogFormat
	}
}

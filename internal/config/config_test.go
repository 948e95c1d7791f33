package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, ".tdb.duckdb", cfg.Database.Path)
	assert.Equal(t, ".tdb_profile.json", cfg.Profile.Path)
	assert.Equal(t, "auto", cfg.CSV.Delim)
	assert.Equal(t, "auto", cfg.CSV.Header)
	assert.Equal(t, 20480, cfg.CSV.SampleSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
}

func TestApplyOverrides(t *testing.T) {
	cfg := DefaultConfig()

	cfg.Apply(Overrides{
		DBPath:     "analytics.duckdb",
		Delim:      ";",
		SampleSize: 1024,
		LogLevel:   "debug",
	})

	assert.Equal(t, "analytics.duckdb", cfg.Database.Path)
	assert.Equal(t, ";", cfg.CSV.Delim)
	assert.Equal(t, 1024, cfg.CSV.SampleSize)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Fields not overridden keep their defaults
	assert.Equal(t, ".tdb_profile.json", cfg.Profile.Path)
	assert.Equal(t, "auto", cfg.CSV.Header)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestApplyOverrides_ZeroValuesIgnored(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Apply(Overrides{})

	assert.Equal(t, DefaultConfig(), cfg)
}

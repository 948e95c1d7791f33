package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Database.Path == "" {
		errs = append(errs, ValidationError{
			Field:   "database.path",
			Message: "database path is required",
		})
	}

	if c.CSV.SampleSize <= 0 {
		errs = append(errs, ValidationError{
			Field:   "csv.sample_size",
			Message: "sample size must be positive",
		})
	}

	if c.CSV.Delim != "auto" && utf8.RuneCountInString(c.CSV.Delim) != 1 {
		errs = append(errs, ValidationError{
			Field:   "csv.delim",
			Message: fmt.Sprintf("must be %q or a single character, got %q", "auto", c.CSV.Delim),
		})
	}

	switch strings.ToLower(c.CSV.Header) {
	case "auto", "true", "false":
	default:
		errs = append(errs, ValidationError{
			Field:   "csv.header",
			Message: fmt.Sprintf("must be one of auto, true, false, got %q", c.CSV.Header),
		})
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error, got %q", c.Logging.Level),
		})
	}

	switch c.Logging.Format {
	case "", "json", "text":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("must be json or text, got %q", c.Logging.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Package sqlutil provides SQL assembly utilities for tdb.
//
// Identifiers and values are distinct escape categories: identifiers
// (table/column names coming from profiles and CSV file names) go through
// QuoteIdentifier, string values through QuoteLiteral. Nothing is ever
// spliced into SQL text unescaped.
package sqlutil

import (
	"regexp"
	"strings"
)

// QuoteIdentifier quotes a DuckDB identifier (table name, column name) with
// double quotes, escaping any embedded double quotes by doubling them.
// Example: my_table -> "my_table"
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// QuoteLiteral quotes a string value as a single-quoted SQL literal,
// escaping embedded single quotes by doubling them.
func QuoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// validIdentifierRegex matches the identifier characters tdb accepts.
// DuckDB allows almost anything inside double quotes; names that originate
// from user-supplied profiles are restricted to alphanumeric and underscore
// as a defense-in-depth measure against injection.
var validIdentifierRegex = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// IsValidIdentifier checks if a name is an acceptable identifier.
func IsValidIdentifier(name string) bool {
	return validIdentifierRegex.MatchString(name)
}

// QuoteIdentifierSafe quotes an identifier after validating it.
// Returns an error if the identifier contains invalid characters.
// Use this when identifiers might come from untrusted sources.
func QuoteIdentifierSafe(name string) (string, error) {
	if !IsValidIdentifier(name) {
		return "", &InvalidIdentifierError{Name: name}
	}
	return QuoteIdentifier(name), nil
}

// InvalidIdentifierError is returned when an identifier contains invalid characters.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier: " + e.Name + " (must contain only alphanumeric characters and underscores)"
}

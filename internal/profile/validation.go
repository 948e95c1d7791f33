package profile

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/tdb/internal/sqlutil"
)

// ValidationError represents a profile validation error.
type ValidationError struct {
	Table   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("table %q: %s", e.Table, e.Message)
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
	return fmt.Sprintf("profile validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks structural invariants of the profile: identifier safety
// for every name that will end up inside SQL, and column-count agreement
// between the two sides of every foreign key. A foreign key referencing a
// table absent from the profile is NOT an error here; the planner handles
// it via fallback ordering and reports it in its diagnostics.
func (p *Profile) Validate() error {
	var errs ValidationErrors

	for _, name := range p.TableNames() {
		spec, _ := p.Get(name)

		if !sqlutil.IsValidIdentifier(name) {
			errs = append(errs, ValidationError{Table: name, Message: "invalid table name"})
		}

		for _, col := range spec.PK {
			if !sqlutil.IsValidIdentifier(col) {
				errs = append(errs, ValidationError{
					Table:   name,
					Message: fmt.Sprintf("invalid primary key column %q", col),
				})
			}
		}

		for i, fk := range spec.FKs {
			if len(fk.Cols) == 0 {
				errs = append(errs, ValidationError{
					Table:   name,
					Message: fmt.Sprintf("fk #%d: at least one column required", i+1),
				})
			}
			if len(fk.Cols) != len(fk.RefCols) {
				errs = append(errs, ValidationError{
					Table: name,
					Message: fmt.Sprintf("fk #%d: %d local column(s) vs %d referenced column(s)",
						i+1, len(fk.Cols), len(fk.RefCols)),
				})
			}
			if !sqlutil.IsValidIdentifier(fk.RefTable) {
				errs = append(errs, ValidationError{
					Table:   name,
					Message: fmt.Sprintf("fk #%d: invalid referenced table %q", i+1, fk.RefTable),
				})
			}
			for _, col := range fk.Cols {
				if !sqlutil.IsValidIdentifier(col) {
					errs = append(errs, ValidationError{
						Table:   name,
						Message: fmt.Sprintf("fk #%d: invalid column %q", i+1, col),
					})
				}
			}
			for _, col := range fk.RefCols {
				if !sqlutil.IsValidIdentifier(col) {
					errs = append(errs, ValidationError{
						Table:   name,
						Message: fmt.Sprintf("fk #%d: invalid referenced column %q", i+1, col),
					})
				}
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

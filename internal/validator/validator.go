// Package validator computes primary key and foreign key integrity metrics
// for a loaded database against a schema profile.
package validator

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dbsmedya/tdb/internal/logger"
	"github.com/dbsmedya/tdb/internal/profile"
	"github.com/dbsmedya/tdb/internal/sqlutil"
	"github.com/dbsmedya/tdb/internal/types"
)

// Validator runs read-only integrity checks. It never mutates data and may
// run alongside other readers, but not alongside a load against the same
// database file.
type Validator struct {
	db     *sql.DB
	prof   *profile.Profile
	logger *logger.Logger
}

// New creates a validator for the given database and profile.
func New(db *sql.DB, prof *profile.Profile, log *logger.Logger) (*Validator, error) {
	if db == nil {
		return nil, fmt.Errorf("database is nil")
	}
	if prof == nil {
		return nil, fmt.Errorf("profile is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &Validator{db: db, prof: prof, logger: log}, nil
}

// Validate computes the integrity report: primary key metrics for every
// table declaring a primary key, and an orphan count for every declared
// foreign key. Tables are checked in profile declaration order.
func (v *Validator) Validate(ctx context.Context) (*types.IntegrityReport, error) {
	report := &types.IntegrityReport{}

	for _, table := range v.prof.TableNames() {
		spec, _ := v.prof.Get(table)

		if len(spec.PK) > 0 {
			check, err := v.pkCheck(ctx, table, spec.PK)
			if err != nil {
				return nil, err
			}
			report.PKChecks = append(report.PKChecks, check)
		}

		for _, fk := range spec.FKs {
			check, err := v.fkCheck(ctx, table, fk)
			if err != nil {
				return nil, err
			}
			report.FKChecks = append(report.FKChecks, check)
		}
	}

	return report, nil
}

// pkCheck computes total, distinct, null, and duplicate counts for one
// table's primary key. Composite keys compare as tuples.
func (v *Validator) pkCheck(ctx context.Context, table string, cols []string) (types.PKCheck, error) {
	check := types.PKCheck{Table: table, Columns: cols}

	query := sqlutil.PKMetricsSQL(table, cols)
	row := v.db.QueryRowContext(ctx, query)
	if err := row.Scan(&check.TotalRows, &check.Distinct, &check.NullRows, &check.Duplicate); err != nil {
		return check, fmt.Errorf("failed to compute pk metrics for %q: %w", table, err)
	}

	v.logger.WithTable(table).Debugw("pk check",
		"n", check.TotalRows, "distinct", check.Distinct,
		"null", check.NullRows, "dup", check.Duplicate)

	return check, nil
}

// fkCheck counts orphan rows for one foreign key. Rows whose source key
// contains a NULL are excluded: they reference nothing, so they cannot be
// orphans.
func (v *Validator) fkCheck(ctx context.Context, table string, fk profile.ForeignKeySpec) (types.FKCheck, error) {
	check := types.FKCheck{Description: fk.Label(table)}

	query := sqlutil.FKOrphansSQL(table, fk.Cols, fk.RefTable, fk.RefCols)
	if err := v.db.QueryRowContext(ctx, query).Scan(&check.Orphans); err != nil {
		return check, fmt.Errorf("failed to count orphans for %s: %w", check.Description, err)
	}

	v.logger.WithTable(table).Debugw("fk check", "fk", check.Description, "orphans", check.Orphans)

	return check, nil
}

// Package loader implements the staged bulk load: CSV into an untyped
// staging table, then a constrained final table materialized from it.
package loader

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dbsmedya/tdb/internal/logger"
	"github.com/dbsmedya/tdb/internal/profile"
	"github.com/dbsmedya/tdb/internal/sqlutil"
	"github.com/dbsmedya/tdb/internal/types"
)

// stagePrefix names the transient staging table for each load step.
const stagePrefix = "_stage_"

// LoadPhase coordinates staged table loads against one database handle.
type LoadPhase struct {
	db      *sql.DB
	csvOpts sqlutil.CSVOptions
	logger  *logger.Logger
}

// NewLoadPhase creates a load phase coordinator.
func NewLoadPhase(db *sql.DB, opts sqlutil.CSVOptions, log *logger.Logger) (*LoadPhase, error) {
	if db == nil {
		return nil, fmt.Errorf("database is nil")
	}
	if log == nil {
		log = logger.NewDefault()
	}
	return &LoadPhase{
		db:      db,
		csvOpts: opts,
		logger:  log,
	}, nil
}

// Load runs the staged build for every table in plan order. A re-run is a
// full replace: the previous run's tables are dropped up front, children
// before parents, because the engine refuses to drop a table while another
// table's foreign key still references it. Any failure after that is fatal
// for the rest of the run: later tables may reference earlier ones, so
// continuing past a broken step would only produce misleading constraint
// errors. Tables loaded before the failure stay in place.
func (lp *LoadPhase) Load(ctx context.Context, prof *profile.Profile, plan []string, dir string) ([]types.TableMetrics, error) {
	if prof == nil {
		return nil, fmt.Errorf("profile is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load interrupted: %w", err)
	}

	// Check the whole plan before touching the database: a missing file or
	// undeclared table must not leave a half-dropped schema behind.
	paths := make(map[string]string, len(plan))
	for _, table := range plan {
		if _, err := sqlutil.QuoteIdentifierSafe(table); err != nil {
			return nil, fmt.Errorf("table name: %w", err)
		}
		csvPath := filepath.Join(dir, table+".csv")
		if _, err := os.Stat(csvPath); err != nil {
			return nil, fmt.Errorf("source file for table %q: %w", table, err)
		}
		if _, ok := prof.Get(table); !ok {
			return nil, fmt.Errorf("table %q not declared in profile", table)
		}
		paths[table] = csvPath
	}

	lp.logger.Infof("Starting staged build for %d tables", len(plan))

	// Reverse plan order drops referencing tables before referenced ones.
	for i := len(plan) - 1; i >= 0; i-- {
		if _, err := lp.db.ExecContext(ctx, sqlutil.DropTableSQL(plan[i], true)); err != nil {
			return nil, fmt.Errorf("failed to drop previous table %q: %w", plan[i], err)
		}
	}

	metrics := make([]types.TableMetrics, 0, len(plan))
	for _, table := range plan {
		if err := ctx.Err(); err != nil {
			return metrics, fmt.Errorf("load interrupted: %w", err)
		}

		spec, _ := prof.Get(table)
		m, err := lp.loadTable(ctx, table, paths[table], spec)
		if err != nil {
			return metrics, err
		}
		metrics = append(metrics, m)

		lp.logger.WithTable(table).Infow("table loaded",
			"rows", m.Rows,
			"seconds", m.Elapsed.Seconds(),
		)
	}

	return metrics, nil
}

// loadTable runs the staging protocol for one table: stage the CSV, read
// the inferred columns, materialize the constrained table, copy, discard
// the stage.
func (lp *LoadPhase) loadTable(ctx context.Context, table, csvPath string, spec profile.TableSpec) (types.TableMetrics, error) {
	var m types.TableMetrics
	m.Table = table

	if _, err := sqlutil.QuoteIdentifierSafe(table); err != nil {
		return m, fmt.Errorf("table name: %w", err)
	}
	stage := stagePrefix + table

	log := lp.logger.WithTable(table)

	// Stage: untyped import with engine-side inference.
	log.WithStep("stage").Debugf("staging %s", csvPath)
	t0 := time.Now()
	if _, err := lp.db.ExecContext(ctx, sqlutil.DropTableSQL(stage, true)); err != nil {
		return m, fmt.Errorf("failed to drop stale staging table for %q: %w", table, err)
	}
	if _, err := lp.db.ExecContext(ctx, sqlutil.CreateFromCSVSQL(stage, csvPath, lp.csvOpts)); err != nil {
		return m, fmt.Errorf("failed to stage %s: %w", csvPath, err)
	}
	stagedRows, err := lp.countRows(ctx, stage)
	if err != nil {
		return m, err
	}
	m.StagedRows = stagedRows
	m.StagedElapsed = time.Since(t0)

	// Inferred schema of the staged relation.
	cols, err := lp.inferredColumns(ctx, stage)
	if err != nil {
		return m, err
	}

	// Materialize: typed table with declared constraints, full replace.
	log.WithStep("materialize").Debugf("creating %q with %d columns", table, len(cols))
	t1 := time.Now()
	if _, err := lp.db.ExecContext(ctx, sqlutil.DropTableSQL(table, true)); err != nil {
		return m, fmt.Errorf("failed to drop previous table %q: %w", table, err)
	}
	createSQL := sqlutil.CreateTableSQL(table, cols, spec.PK, foreignKeys(spec))
	if _, err := lp.db.ExecContext(ctx, createSQL); err != nil {
		return m, fmt.Errorf("failed to create table %q: %w", table, err)
	}
	if _, err := lp.db.ExecContext(ctx, sqlutil.InsertSelectSQL(table, stage)); err != nil {
		// Duplicate or null key, or a dangling reference. Fatal: later
		// tables depend on this one existing as declared.
		return m, fmt.Errorf("constraint violation loading %q: %w", table, err)
	}
	if _, err := lp.db.ExecContext(ctx, sqlutil.DropTableSQL(stage, false)); err != nil {
		return m, fmt.Errorf("failed to discard staging table for %q: %w", table, err)
	}

	rows, err := lp.countRows(ctx, table)
	if err != nil {
		return m, err
	}
	m.Rows = rows
	m.Elapsed = time.Since(t1)

	return m, nil
}

// ImportTable loads a single CSV as an unconstrained table, replacing any
// prior table of the same name. This is the one-shot import path; the
// staged protocol with constraints is Load.
func (lp *LoadPhase) ImportTable(ctx context.Context, table, csvPath string) (types.TableMetrics, error) {
	var m types.TableMetrics
	m.Table = table

	if _, err := sqlutil.QuoteIdentifierSafe(table); err != nil {
		return m, fmt.Errorf("table name: %w", err)
	}
	if _, err := os.Stat(csvPath); err != nil {
		return m, fmt.Errorf("source file for table %q: %w", table, err)
	}

	t0 := time.Now()
	if _, err := lp.db.ExecContext(ctx, sqlutil.DropTableSQL(table, true)); err != nil {
		return m, fmt.Errorf("failed to drop previous table %q: %w", table, err)
	}
	if _, err := lp.db.ExecContext(ctx, sqlutil.CreateFromCSVSQL(table, csvPath, lp.csvOpts)); err != nil {
		return m, fmt.Errorf("failed to import %s: %w", csvPath, err)
	}

	rows, err := lp.countRows(ctx, table)
	if err != nil {
		return m, err
	}
	m.Rows = rows
	m.Elapsed = time.Since(t0)

	lp.logger.WithTable(table).Infow("table imported", "rows", m.Rows, "seconds", m.Elapsed.Seconds())
	return m, nil
}

// countRows counts the rows of a table.
func (lp *LoadPhase) countRows(ctx context.Context, table string) (int64, error) {
	var n int64
	if err := lp.db.QueryRowContext(ctx, sqlutil.CountSQL(table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows of %q: %w", table, err)
	}
	return n, nil
}

// inferredColumns reads the staged relation's column name/type pairs in
// ordinal position order.
func (lp *LoadPhase) inferredColumns(ctx context.Context, table string) ([]sqlutil.Column, error) {
	rows, err := lp.db.QueryContext(ctx,
		"SELECT column_name, data_type FROM information_schema.columns WHERE table_schema = 'main' AND table_name = ? ORDER BY ordinal_position",
		table)
	if err != nil {
		return nil, fmt.Errorf("failed to read inferred schema of %q: %w", table, err)
	}
	defer rows.Close()

	var cols []sqlutil.Column
	for rows.Next() {
		var c sqlutil.Column
		if err := rows.Scan(&c.Name, &c.Type); err != nil {
			return nil, fmt.Errorf("failed to scan inferred schema of %q: %w", table, err)
		}
		cols = append(cols, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read inferred schema of %q: %w", table, err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("staged relation %q has no columns", table)
	}
	return cols, nil
}

// foreignKeys converts the profile's foreign key specs into DDL clauses.
func foreignKeys(spec profile.TableSpec) []sqlutil.ForeignKey {
	fks := make([]sqlutil.ForeignKey, 0, len(spec.FKs))
	for _, fk := range spec.FKs {
		fks = append(fks, sqlutil.ForeignKey{
			Columns:    fk.Cols,
			RefTable:   fk.RefTable,
			RefColumns: fk.RefCols,
		})
	}
	return fks
}

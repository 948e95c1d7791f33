package cmd

import (
	"context"
	"encoding/json"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/dbsmedya/tdb/internal/config"
	"github.com/dbsmedya/tdb/internal/database"
	"github.com/dbsmedya/tdb/internal/render"
	"github.com/dbsmedya/tdb/internal/sqlutil"
	"github.com/dbsmedya/tdb/internal/types"
)

// csvOptions maps validated configuration onto read_csv options.
func csvOptions(cfg *config.Config) sqlutil.CSVOptions {
	return sqlutil.CSVOptions{
		Delim:      cfg.CSV.Delim,
		Header:     cfg.CSV.Header,
		SampleSize: cfg.CSV.SampleSize,
	}
}

// printJSON writes v as a single JSON line to stdout. Machine mode keeps
// stdout free of everything else; logs go to stderr.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// printDBFile reports the on-disk size and location of the database file.
func printDBFile(cmd *cobra.Command, h *database.Handle) {
	cmd.Printf("DB file: %s  (%s)\n", render.FormatBytes(h.SizeBytes()), h.Path())
}

// queryResult holds the outcome of an ad-hoc query: column names plus rows
// with []byte values normalized to strings so they serialize as text.
type queryResult struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// runQuery executes a query and buffers the full result set.
func runQuery(ctx context.Context, db *sqlx.DB, query string) (*queryResult, error) {
	rows, err := db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := &queryResult{Columns: cols, Rows: [][]interface{}{}}
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		res.Rows = append(res.Rows, vals)
	}
	return res, rows.Err()
}

// cells converts one result row to display strings, NULL as empty.
func cells(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = types.ToString(v)
	}
	return out
}

// tableMetricsJSON is the machine-mode shape for one loaded table.
type tableMetricsJSON struct {
	Table         string  `json:"table"`
	Rows          int64   `json:"rows"`
	Seconds       float64 `json:"seconds"`
	RowsPerSec    float64 `json:"rows_per_sec"`
	StagedRows    int64   `json:"staged_rows"`
	StagedSeconds float64 `json:"staged_seconds"`
}

func metricsJSON(m types.TableMetrics) tableMetricsJSON {
	return tableMetricsJSON{
		Table:         m.Table,
		Rows:          m.Rows,
		Seconds:       m.ElapsedSeconds(),
		RowsPerSec:    m.RowsPerSecond(),
		StagedRows:    m.StagedRows,
		StagedSeconds: m.StagedElapsed.Seconds(),
	}
}

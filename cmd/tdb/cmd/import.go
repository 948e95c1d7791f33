package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/tdb/internal/database"
	"github.com/dbsmedya/tdb/internal/loader"
)

var (
	importTable string
	importJSON  bool
)

var importCmd = &cobra.Command{
	Use:   "import <csv>",
	Short: "Import a single CSV file into an unconstrained table",
	Long: `Import one CSV file into a table, replacing any previous contents.
Column names and types are inferred from the file; no constraints are
applied.

Example:
  tdb import data/users.csv --table users`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importTable, "table", "t", "data",
		"Destination table name")
	importCmd.Flags().BoolVar(&importJSON, "json", false,
		"Emit machine-readable JSON to stdout")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	csvPath := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := database.SetupSignalHandler()

	handle, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer handle.Close()

	phase, err := loader.NewLoadPhase(handle.DB.DB, csvOptions(cfg), log)
	if err != nil {
		return err
	}

	metrics, err := phase.ImportTable(ctx, importTable, csvPath)
	if err != nil {
		return err
	}

	if importJSON {
		return printJSON(struct {
			DB      string  `json:"db"`
			Table   string  `json:"table"`
			CSV     string  `json:"csv"`
			Rows    int64   `json:"rows"`
			Seconds float64 `json:"seconds"`
			RPS     float64 `json:"rows_per_sec"`
			DBBytes int64   `json:"db_bytes"`
		}{
			handle.Path(), metrics.Table, csvPath, metrics.Rows,
			metrics.ElapsedSeconds(), metrics.RowsPerSecond(), handle.SizeBytes(),
		})
	}

	cmd.Printf("Imported %d rows into %s\n", metrics.Rows, metrics.Table)
	cmd.Printf("%.3fs  |  %.0f rows/sec\n", metrics.ElapsedSeconds(), metrics.RowsPerSecond())
	printDBFile(cmd, handle)
	return nil
}

package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/tdb/internal/database"
	"github.com/dbsmedya/tdb/internal/loader"
	"github.com/dbsmedya/tdb/internal/render"
	"github.com/dbsmedya/tdb/internal/types"
)

var (
	importDirPath string
	importDirJSON bool
)

var importDirCmd = &cobra.Command{
	Use:   "import-dir",
	Short: "Import every CSV file in a directory as unconstrained tables",
	Long: `Import every *.csv file in a directory, one table per file, named after
the file without its extension. Files load in lexicographic order and no
constraints are applied.

Example:
  tdb import-dir --dir ./exports`,
	RunE: runImportDir,
}

func init() {
	importDirCmd.Flags().StringVarP(&importDirPath, "dir", "d", "",
		"Directory containing CSV files (required)")
	importDirCmd.MarkFlagRequired("dir")

	importDirCmd.Flags().BoolVar(&importDirJSON, "json", false,
		"Emit machine-readable JSON to stdout")

	rootCmd.AddCommand(importDirCmd)
}

func runImportDir(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	files, err := filepath.Glob(filepath.Join(importDirPath, "*.csv"))
	if err != nil {
		return fmt.Errorf("failed to list CSV files in %s: %w", importDirPath, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no CSV files found in %s", importDirPath)
	}
	sort.Strings(files)

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

	var report types.LoadReport
	for _, file := range files {
		table := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		metrics, err := phase.ImportTable(ctx, table, file)
		if err != nil {
			return err
		}
		report.Tables = append(report.Tables, metrics)
	}
	report.DBBytes = handle.SizeBytes()

	if importDirJSON {
		out := struct {
			Tables    []tableMetricsJSON `json:"tables"`
			TotalRows int64              `json:"total_rows"`
			DBBytes   int64              `json:"db_bytes"`
		}{TotalRows: report.TotalRows(), DBBytes: report.DBBytes}
		for _, m := range report.Tables {
			out.Tables = append(out.Tables, metricsJSON(m))
		}
		return printJSON(out)
	}

	tbl := render.NewTable("Imported tables", "table", "rows", "seconds", "rows/sec")
	for _, m := range report.Tables {
		tbl.AddRow(m.Table,
			fmt.Sprintf("%d", m.Rows),
			fmt.Sprintf("%.3f", m.ElapsedSeconds()),
			fmt.Sprintf("%.0f", m.RowsPerSecond()))
	}
	tbl.Fprint(cmd.OutOrStdout())

	cmd.Printf("Total: %d rows across %d tables\n", report.TotalRows(), len(report.Tables))
	printDBFile(cmd, handle)
	return nil
}

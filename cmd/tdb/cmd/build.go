package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/tdb/internal/database"
	"github.com/dbsmedya/tdb/internal/graph"
	"github.com/dbsmedya/tdb/internal/loader"
	"github.com/dbsmedya/tdb/internal/profile"
	"github.com/dbsmedya/tdb/internal/render"
	"github.com/dbsmedya/tdb/internal/types"
)

var (
	buildDir  string
	buildJSON bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Run a full staged, constrained build from a CSV directory",
	Long: `Build every table declared in the schema profile from CSV files in a
directory, in dependency order. Each table stages through an inferred
temporary table, then materializes with the profile's primary and foreign
key constraints. A missing file or a constraint violation aborts the run;
tables loaded before the failure are kept.

Example:
  tdb build --dir ./exports --profile .tdb_profile.json`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildDir, "dir", "d", "",
		"Directory containing one <table>.csv per profile table (required)")
	buildCmd.MarkFlagRequired("dir")

	buildCmd.Flags().BoolVar(&buildJSON, "json", false,
		"Emit machine-readable JSON to stdout")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	prof, err := profile.Load(cfg.Profile.Path)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	if err := prof.Validate(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	order, diag := graph.Build(prof).LoadPlan()
	if diag != nil {
		log.Warnw("Degraded load order",
			"unordered", diag.UnprocessedNodes,
			"detail", diag.Warning(),
		)
	}

	log.Infow("Starting staged build",
		"dir", buildDir,
		"tables", len(order),
		"db", cfg.Database.Path,
	)

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

	metrics, err := phase.Load(ctx, prof, order, buildDir)
	if err != nil {
		return err
	}
	report := types.LoadReport{Tables: metrics, DBBytes: handle.SizeBytes()}

	log.Infow("Build complete",
		"tables", len(report.Tables),
		"rows", report.TotalRows(),
		"db_bytes", report.DBBytes,
	)

	if buildJSON {
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

	tbl := render.NewTable("Load report", "table", "rows", "seconds", "rows/sec", "staged rows")
	for _, m := range report.Tables {
		tbl.AddRow(m.Table,
			fmt.Sprintf("%d", m.Rows),
			fmt.Sprintf("%.3f", m.ElapsedSeconds()),
			fmt.Sprintf("%.0f", m.RowsPerSecond()),
			fmt.Sprintf("%d", m.StagedRows))
	}
	tbl.Fprint(cmd.OutOrStdout())

	cmd.Printf("Total: %d rows across %d tables\n", report.TotalRows(), len(report.Tables))
	printDBFile(cmd, handle)
	return nil
}

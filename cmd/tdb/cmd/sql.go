package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/tdb/internal/database"
	"github.com/dbsmedya/tdb/internal/render"
)

// consoleRowCap limits human-readable output; --json always prints everything.
const consoleRowCap = 200

var sqlJSON bool

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run an ad-hoc SQL query",
	Long: `Run an arbitrary SQL query against the database and print the result.
Console output is capped at 200 rows; use --json for the full result set.

Example:
  tdb sql "SELECT country, COUNT(*) FROM users GROUP BY country"`,
	Args: cobra.ExactArgs(1),
	RunE: runSQL,
}

func init() {
	sqlCmd.Flags().BoolVar(&sqlJSON, "json", false,
		"Emit machine-readable JSON to stdout")

	rootCmd.AddCommand(sqlCmd)
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := database.SetupSignalHandler()

	handle, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer handle.Close()

	start := time.Now()
	res, err := runQuery(ctx, handle.DB, query)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	elapsed := time.Since(start)

	if sqlJSON {
		return printJSON(struct {
			MS      float64         `json:"ms"`
			Columns []string        `json:"columns"`
			Rows    [][]interface{} `json:"rows"`
		}{float64(elapsed.Microseconds()) / 1000.0, res.Columns, res.Rows})
	}

	tbl := render.NewTable(fmt.Sprintf("SQL (%.1f ms)", float64(elapsed.Microseconds())/1000.0), res.Columns...)
	shown := len(res.Rows)
	if shown > consoleRowCap {
		shown = consoleRowCap
	}
	for _, row := range res.Rows[:shown] {
		tbl.AddRow(cells(row)...)
	}
	tbl.Fprint(cmd.OutOrStdout())

	if len(res.Rows) > consoleRowCap {
		cmd.Printf("shown %d of %d rows\n", consoleRowCap, len(res.Rows))
	}
	return nil
}

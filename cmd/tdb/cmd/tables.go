package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/tdb/internal/database"
	"github.com/dbsmedya/tdb/internal/render"
	"github.com/dbsmedya/tdb/internal/sqlutil"
	"github.com/dbsmedya/tdb/internal/types"
)

var tablesJSON bool

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables in the database",
	RunE:  runTables,
}

func init() {
	tablesCmd.Flags().BoolVar(&tablesJSON, "json", false,
		"Emit machine-readable JSON to stdout")

	rootCmd.AddCommand(tablesCmd)
}

func runTables(cmd *cobra.Command, args []string) error {
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

	res, err := runQuery(ctx, handle.DB, sqlutil.ListTablesSQL())
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	names := make([]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		names = append(names, types.ToString(row[0]))
	}

	if tablesJSON {
		return printJSON(struct {
			Tables []string `json:"tables"`
		}{names})
	}

	tbl := render.NewTable("Tables", "table")
	for _, name := range names {
		tbl.AddRow(name)
	}
	tbl.Fprint(cmd.OutOrStdout())
	return nil
}

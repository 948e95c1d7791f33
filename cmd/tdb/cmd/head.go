package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/tdb/internal/database"
	"github.com/dbsmedya/tdb/internal/render"
	"github.com/dbsmedya/tdb/internal/sqlutil"
)

var (
	headTable string
	headN     int
	headJSON  bool
)

var headCmd = &cobra.Command{
	Use:   "head",
	Short: "Show the first rows of a table",
	RunE:  runHead,
}

func init() {
	headCmd.Flags().StringVarP(&headTable, "table", "t", "data",
		"Table to preview")
	headCmd.Flags().IntVarP(&headN, "rows", "n", 10,
		"Number of rows to show")
	headCmd.Flags().BoolVar(&headJSON, "json", false,
		"Emit machine-readable JSON to stdout")

	rootCmd.AddCommand(headCmd)
}

func runHead(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := sqlutil.QuoteIdentifierSafe(headTable); err != nil {
		return err
	}
	if headN < 0 {
		return fmt.Errorf("row count must not be negative, got %d", headN)
	}

	ctx := database.SetupSignalHandler()

	handle, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer handle.Close()

	res, err := runQuery(ctx, handle.DB, sqlutil.PreviewSQL(headTable, headN))
	if err != nil {
		return fmt.Errorf("failed to preview %s: %w", headTable, err)
	}

	if headJSON {
		records := make([]map[string]interface{}, 0, len(res.Rows))
		for _, row := range res.Rows {
			rec := make(map[string]interface{}, len(res.Columns))
			for i, col := range res.Columns {
				rec[col] = row[i]
			}
			records = append(records, rec)
		}
		return printJSON(records)
	}

	tbl := render.NewTable(fmt.Sprintf("%s (first %d)", headTable, headN), res.Columns...)
	for _, row := range res.Rows {
		tbl.AddRow(cells(row)...)
	}
	tbl.Fprint(cmd.OutOrStdout())
	return nil
}

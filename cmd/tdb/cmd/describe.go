package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/tdb/internal/database"
	"github.com/dbsmedya/tdb/internal/render"
	"github.com/dbsmedya/tdb/internal/sqlutil"
)

var (
	describeTable string
	describeJSON  bool
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Show the schema of a table",
	RunE:  runDescribe,
}

func init() {
	describeCmd.Flags().StringVarP(&describeTable, "table", "t", "data",
		"Table to describe")
	describeCmd.Flags().BoolVar(&describeJSON, "json", false,
		"Emit machine-readable JSON to stdout")

	rootCmd.AddCommand(describeCmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if _, err := sqlutil.QuoteIdentifierSafe(describeTable); err != nil {
		return err
	}

	ctx := database.SetupSignalHandler()

	handle, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer handle.Close()

	res, err := runQuery(ctx, handle.DB, sqlutil.DescribeSQL(describeTable))
	if err != nil {
		return fmt.Errorf("failed to describe %s: %w", describeTable, err)
	}

	if describeJSON {
		return printJSON(struct {
			Table   string          `json:"table"`
			Columns []string        `json:"columns"`
			Rows    [][]interface{} `json:"rows"`
		}{describeTable, res.Columns, res.Rows})
	}

	tbl := render.NewTable(fmt.Sprintf("Schema: %s", describeTable), res.Columns...)
	for _, row := range res.Rows {
		tbl.AddRow(cells(row)...)
	}
	tbl.Fprint(cmd.OutOrStdout())
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/tdb/internal/database"
)

var initJSON bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database file",
	Long: `Create the database file (and its parent directories) if it does not
exist yet, and verify it can be opened.

Example:
  tdb init --db warehouse/analytics.duckdb`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initJSON, "json", false,
		"Emit machine-readable JSON to stdout")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
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

	if initJSON {
		return printJSON(struct {
			DB      string `json:"db"`
			DBBytes int64  `json:"db_bytes"`
		}{handle.Path(), handle.SizeBytes()})
	}

	cmd.Printf("DB ready: %s\n", handle.Path())
	return nil
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/tdb/internal/database"
	"github.com/dbsmedya/tdb/internal/profile"
	"github.com/dbsmedya/tdb/internal/render"
	"github.com/dbsmedya/tdb/internal/types"
	"github.com/dbsmedya/tdb/internal/validator"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check primary and foreign key integrity against the schema profile",
	Long: `Validate the database against the schema profile: per-table primary key
metrics (total, distinct, null, duplicate rows) and per-foreign-key orphan
counts. Findings are reported, not enforced; the command fails only when a
check cannot run.

Example:
  tdb validate --profile .tdb_profile.json`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false,
		"Emit machine-readable JSON to stdout")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
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

	ctx := database.SetupSignalHandler()

	handle, err := database.Open(ctx, cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer handle.Close()

	v, err := validator.New(handle.DB.DB, prof, log)
	if err != nil {
		return err
	}

	report, err := v.Validate(ctx)
	if err != nil {
		return err
	}

	if validateJSON {
		return printJSON(struct {
			PKChecks []types.PKCheck `json:"pk_checks"`
			FKChecks []types.FKCheck `json:"fk_checks"`
			Clean    bool            `json:"clean"`
			DBBytes  int64           `json:"db_bytes"`
		}{report.PKChecks, report.FKChecks, report.Clean(), handle.SizeBytes()})
	}

	pkTbl := render.NewTable("PK checks", "table", "pk", "n", "distinct", "null", "dup")
	for _, pk := range report.PKChecks {
		pkTbl.AddRow(pk.Table,
			strings.Join(pk.Columns, ","),
			fmt.Sprintf("%d", pk.TotalRows),
			fmt.Sprintf("%d", pk.Distinct),
			fmt.Sprintf("%d", pk.NullRows),
			fmt.Sprintf("%d", pk.Duplicate))
	}
	pkTbl.Fprint(cmd.OutOrStdout())

	fkTbl := render.NewTable("FK orphan checks", "fk", "orphans")
	for _, fk := range report.FKChecks {
		fkTbl.AddRow(fk.Description, fmt.Sprintf("%d", fk.Orphans))
	}
	fkTbl.Fprint(cmd.OutOrStdout())

	printDBFile(cmd, handle)
	return nil
}

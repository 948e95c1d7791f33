package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbsmedya/tdb/internal/graph"
	"github.com/dbsmedya/tdb/internal/profile"
	"github.com/dbsmedya/tdb/internal/render"
)

var planJSON bool

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the dependency-ordered load plan for the schema profile",
	Long: `Compute the order in which profile tables would load: every referenced
table before its referencers, with the foreign keys behind each ordering
edge. Cycles and references to tables outside the profile degrade the
affected tables to lexicographic order with a warning.

Example:
  tdb plan --profile .tdb_profile.json`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&planJSON, "json", false,
		"Emit machine-readable JSON to stdout")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
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

	g := graph.Build(prof)
	order, diag := g.LoadPlan()
	if diag != nil {
		log.Warnw("Degraded load order",
			"unordered", diag.UnprocessedNodes,
			"detail", diag.Warning(),
		)
	}

	if planJSON {
		refs := make(map[string][]string)
		for _, name := range order {
			if labels := referenceLabels(g, name); len(labels) > 0 {
				refs[name] = labels
			}
		}
		out := struct {
			Order      []string            `json:"order"`
			References map[string][]string `json:"references,omitempty"`
			Degraded   bool                `json:"degraded"`
			Warning    string              `json:"warning,omitempty"`
		}{Order: order, References: refs, Degraded: diag != nil}
		if diag != nil {
			out.Warning = diag.Warning()
		}
		return printJSON(out)
	}

	tbl := render.NewTable("Load plan", "#", "table", "references")
	for i, name := range order {
		tbl.AddRow(fmt.Sprintf("%d", i+1), name, strings.Join(referenceLabels(g, name), "; "))
	}
	tbl.Fprint(cmd.OutOrStdout())
	return nil
}

// referenceLabels renders the foreign keys behind a table's ordering edges,
// one label per declared key, e.g. user_id -> users(id).
func referenceLabels(g *graph.Graph, table string) []string {
	parents := append([]string(nil), g.GetParents(table)...)
	sort.Strings(parents)

	var labels []string
	for _, parent := range parents {
		for _, meta := range g.GetEdgeMeta(parent, table) {
			labels = append(labels, fmt.Sprintf("%s -> %s(%s)",
				strings.Join(meta.Cols, ","), parent, strings.Join(meta.RefCols, ",")))
		}
	}
	return labels
}

package sqlutil

import (
	"fmt"
	"strings"
)

// CSVOptions controls how DuckDB's read_csv sniffs a source file.
// "auto" for Delim or Header leaves the decision to the engine.
type CSVOptions struct {
	Delim      string
	Header     string
	SampleSize int
}

// SQL renders the option list passed to read_csv.
// sample_size is always emitted; delim and header only when not "auto".
func (o CSVOptions) SQL() string {
	opts := []string{fmt.Sprintf("sample_size=%d", o.SampleSize)}
	if o.Delim != "" && o.Delim != "auto" {
		opts = append(opts, "delim="+QuoteLiteral(o.Delim))
	}
	if o.Header != "" && o.Header != "auto" {
		opts = append(opts, "header="+strings.ToLower(o.Header))
	}
	return strings.Join(opts, ", ")
}

// Column is an inferred column name/type pair reported by DESCRIBE.
type Column struct {
	Name string
	Type string
}

// ForeignKey describes one foreign key constraint clause.
type ForeignKey struct {
	Columns    []string
	RefTable   string
	RefColumns []string
}

// CreateFromCSVSQL builds the statement that materializes a CSV file into a
// table using the engine's dialect sniffing and type inference.
func CreateFromCSVSQL(table, csvPath string, opts CSVOptions) string {
	return fmt.Sprintf("CREATE TABLE %s AS SELECT * FROM read_csv(%s, %s)",
		QuoteIdentifier(table), QuoteLiteral(csvPath), opts.SQL())
}

// CreateTableSQL builds a typed CREATE TABLE statement with an optional
// composite primary key and any number of foreign key constraints.
func CreateTableSQL(table string, cols []Column, pk []string, fks []ForeignKey) string {
	defs := make([]string, 0, len(cols)+1+len(fks))
	for _, c := range cols {
		defs = append(defs, QuoteIdentifier(c.Name)+" "+c.Type)
	}
	if len(pk) > 0 {
		defs = append(defs, "PRIMARY KEY ("+joinIdentifiers(pk)+")")
	}
	for _, fk := range fks {
		defs = append(defs, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
			joinIdentifiers(fk.Columns), QuoteIdentifier(fk.RefTable), joinIdentifiers(fk.RefColumns)))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", QuoteIdentifier(table), strings.Join(defs, ", "))
}

// InsertSelectSQL copies all rows from src into dst.
func InsertSelectSQL(dst, src string) string {
	return fmt.Sprintf("INSERT INTO %s SELECT * FROM %s", QuoteIdentifier(dst), QuoteIdentifier(src))
}

// DropTableSQL drops a table, optionally tolerating its absence.
func DropTableSQL(table string, ifExists bool) string {
	if ifExists {
		return "DROP TABLE IF EXISTS " + QuoteIdentifier(table)
	}
	return "DROP TABLE " + QuoteIdentifier(table)
}

// DescribeSQL reports a table's column names and types.
func DescribeSQL(table string) string {
	return "DESCRIBE " + QuoteIdentifier(table)
}

// CountSQL counts the rows of a table.
func CountSQL(table string) string {
	return "SELECT COUNT(*) FROM " + QuoteIdentifier(table)
}

// PreviewSQL selects the first n rows of a table.
func PreviewSQL(table string, n int) string {
	return fmt.Sprintf("SELECT * FROM %s LIMIT %d", QuoteIdentifier(table), n)
}

// ListTablesSQL enumerates user tables in the main schema, sorted by name.
func ListTablesSQL() string {
	return "SELECT table_name FROM information_schema.tables WHERE table_schema = 'main' ORDER BY table_name"
}

// PKMetricsSQL computes total, distinct, null, and duplicate counts for the
// given primary key columns. Composite keys are compared as tuples, not
// column by column.
func PKMetricsSQL(table string, cols []string) string {
	distinct := distinctExpr(cols)
	nullConds := make([]string, len(cols))
	for i, c := range cols {
		nullConds[i] = QuoteIdentifier(c) + " IS NULL"
	}
	return fmt.Sprintf(
		"SELECT COUNT(*) AS n, %s AS distinct_n, COALESCE(SUM(%s), 0) AS null_n, COUNT(*) - %s AS dup_n FROM %s",
		distinct, strings.Join(nullConds, " OR "), distinct, QuoteIdentifier(table))
}

// FKOrphansSQL counts rows in src whose key tuple has no match in ref.
// Rows with a NULL in any source key column are excluded: a row that does
// not reference anything is not an orphan.
func FKOrphansSQL(src string, srcCols []string, ref string, refCols []string) string {
	on := make([]string, len(srcCols))
	for i := range srcCols {
		on[i] = fmt.Sprintf("r.%s = s.%s", QuoteIdentifier(refCols[i]), QuoteIdentifier(srcCols[i]))
	}
	conds := []string{fmt.Sprintf("r.%s IS NULL", QuoteIdentifier(refCols[0]))}
	for _, c := range srcCols {
		conds = append(conds, fmt.Sprintf("s.%s IS NOT NULL", QuoteIdentifier(c)))
	}
	return fmt.Sprintf("SELECT COUNT(*) FROM %s s LEFT JOIN %s r ON %s WHERE %s",
		QuoteIdentifier(src), QuoteIdentifier(ref), strings.Join(on, " AND "), strings.Join(conds, " AND "))
}

// distinctExpr builds the COUNT(DISTINCT ...) expression, wrapping composite
// keys in a row constructor so the tuple is the unit of comparison.
func distinctExpr(cols []string) string {
	if len(cols) == 1 {
		return "COUNT(DISTINCT " + QuoteIdentifier(cols[0]) + ")"
	}
	return "COUNT(DISTINCT (" + joinIdentifiers(cols) + "))"
}

func joinIdentifiers(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = QuoteIdentifier(n)
	}
	return strings.Join(quoted, ", ")
}

// Package types contains shared result types used across multiple packages to avoid import cycles.
package types

import "time"

// TableMetrics holds per-table load statistics produced by the staged loader.
type TableMetrics struct {
	Table         string        `json:"table"`
	Rows          int64         `json:"rows"`
	Elapsed       time.Duration `json:"-"`
	StagedRows    int64         `json:"staged_rows"`
	StagedElapsed time.Duration `json:"-"`
}

// ElapsedSeconds returns the materialize time in seconds for JSON output.
func (m TableMetrics) ElapsedSeconds() float64 {
	return m.Elapsed.Seconds()
}

// RowsPerSecond returns the materialize throughput, or 0 when elapsed is zero.
func (m TableMetrics) RowsPerSecond() float64 {
	secs := m.Elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(m.Rows) / secs
}

// LoadReport is the outcome of a full staged build: one metrics entry per
// table in load order, plus the on-disk size of the database artifact.
type LoadReport struct {
	Tables  []TableMetrics `json:"tables"`
	DBBytes int64          `json:"db_bytes"`
}

// TotalRows returns the sum of loaded row counts across all tables.
func (r *LoadReport) TotalRows() int64 {
	var total int64
	for _, m := range r.Tables {
		total += m.Rows
	}
	return total
}

// PKCheck holds primary key metrics for one table.
type PKCheck struct {
	Table     string   `json:"table"`
	Columns   []string `json:"pk"`
	TotalRows int64    `json:"n"`
	Distinct  int64    `json:"distinct"`
	NullRows  int64    `json:"null"`
	Duplicate int64    `json:"dup"`
}

// FKCheck holds the orphan count for one declared foreign key.
type FKCheck struct {
	Description string `json:"fk"`
	Orphans     int64  `json:"orphans"`
}

// IntegrityReport is the result of validating a database against a schema profile.
type IntegrityReport struct {
	PKChecks []PKCheck `json:"pk_checks"`
	FKChecks []FKCheck `json:"fk_checks"`
}

// Clean returns true when no check found duplicates, nulls, or orphans.
func (r *IntegrityReport) Clean() bool {
	for _, pk := range r.PKChecks {
		if pk.Duplicate > 0 || pk.NullRows > 0 {
			return false
		}
	}
	for _, fk := range r.FKChecks {
		if fk.Orphans > 0 {
			return false
		}
	}
	return true
}

// Package profile loads and validates the JSON schema profile declaring
// primary and foreign keys per table.
package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// ForeignKeySpec declares one foreign key: local columns referencing
// columns of another table. Column lists are positional pairs.
type ForeignKeySpec struct {
	Cols     []string `json:"cols"`
	RefTable string   `json:"ref_table"`
	RefCols  []string `json:"ref_cols"`
}

// Label renders the check description used in reports and logs,
// e.g. orders(user_id) -> users(id).
func (fk ForeignKeySpec) Label(table string) string {
	return fmt.Sprintf("%s(%s) -> %s(%s)",
		table, strings.Join(fk.Cols, ","), fk.RefTable, strings.Join(fk.RefCols, ","))
}

// TableSpec declares the constraints of one table. An empty PK means the
// table gets no primary key constraint.
type TableSpec struct {
	PK  []string         `json:"pk"`
	FKs []ForeignKeySpec `json:"fks"`
}

// Profile is the parsed schema profile. Table iteration follows the
// declaration order of the JSON document, so reports read in the order the
// profile author wrote.
type Profile struct {
	tables *orderedmap.OrderedMap[string, TableSpec]
}

// Load reads and parses a profile document from disk.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a profile document, preserving table declaration order.
func Parse(data []byte) (*Profile, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	p := &Profile{tables: orderedmap.NewOrderedMap[string, TableSpec]()}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		switch key {
		case "tables":
			if err := p.decodeTables(dec); err != nil {
				return nil, err
			}
		default:
			// Profiles may carry extra metadata; unknown keys are skipped.
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, err
			}
		}
	}

	return p, nil
}

// decodeTables walks the "tables" object token by token so that the
// encounter order of table names survives the decode.
func (p *Profile) decodeTables(dec *json.Decoder) error {
	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v", tok)
		}
		var spec TableSpec
		if err := dec.Decode(&spec); err != nil {
			return fmt.Errorf("table %q: %w", name, err)
		}
		if _, exists := p.tables.Get(name); exists {
			return fmt.Errorf("table %q declared twice", name)
		}
		p.tables.Set(name, spec)
	}
	// Consume the closing brace
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || rune(d) != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// TableNames returns all table names in declaration order.
func (p *Profile) TableNames() []string {
	return p.tables.Keys()
}

// Get returns the spec for a table.
func (p *Profile) Get(name string) (TableSpec, bool) {
	return p.tables.Get(name)
}

// Len returns the number of declared tables.
func (p *Profile) Len() int {
	return p.tables.Len()
}

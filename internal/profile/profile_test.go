package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Basic(t *testing.T) {
	data := []byte(`{
		"tables": {
			"users": {"pk": ["id"], "fks": []},
			"orders": {"pk": ["id"], "fks": [
				{"cols": ["user_id"], "ref_table": "users", "ref_cols": ["id"]}
			]}
		}
	}`)

	p, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, 2, p.Len())

	users, ok := p.Get("users")
	require.True(t, ok)
	assert.Equal(t, []string{"id"}, users.PK)
	assert.Empty(t, users.FKs)

	orders, ok := p.Get("orders")
	require.True(t, ok)
	require.Len(t, orders.FKs, 1)
	assert.Equal(t, []string{"user_id"}, orders.FKs[0].Cols)
	assert.Equal(t, "users", orders.FKs[0].RefTable)
	assert.Equal(t, []string{"id"}, orders.FKs[0].RefCols)
}

func TestParse_PreservesDeclarationOrder(t *testing.T) {
	data := []byte(`{"tables": {
		"zebra": {"pk": [], "fks": []},
		"apple": {"pk": [], "fks": []},
		"mango": {"pk": [], "fks": []}
	}}`)

	p, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, p.TableNames())
}

func TestParse_EmptyTables(t *testing.T) {
	p, err := Parse([]byte(`{"tables": {}}`))
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.TableNames())
}

func TestParse_MissingPKDefaultsEmpty(t *testing.T) {
	p, err := Parse([]byte(`{"tables": {"logs": {"fks": []}}}`))
	require.NoError(t, err)

	logs, ok := p.Get("logs")
	require.True(t, ok)
	assert.Empty(t, logs.PK)
}

func TestParse_UnknownTopLevelKeySkipped(t *testing.T) {
	data := []byte(`{"version": 2, "tables": {"users": {"pk": ["id"], "fks": []}}}`)
	p, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Len())
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "pk: id"},
		{name: "array root", data: `[{"tables": {}}]`},
		{name: "truncated", data: `{"tables": {"users"`},
		{name: "duplicate table", data: `{"tables": {"a": {"pk": []}, "a": {"pk": []}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "profile.json")
	content := `{"tables": {"users": {"pk": ["id"], "fks": []}}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"users"}, p.TableNames())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestForeignKeySpecLabel(t *testing.T) {
	fk := ForeignKeySpec{
		Cols:     []string{"order_id", "item_id"},
		RefTable: "order_items",
		RefCols:  []string{"order_id", "id"},
	}
	assert.Equal(t, "shipments(order_id,item_id) -> order_items(order_id,id)", fk.Label("shipments"))
}

func TestValidate_OK(t *testing.T) {
	p, err := Parse([]byte(`{"tables": {
		"users": {"pk": ["id"], "fks": []},
		"orders": {"pk": ["id"], "fks": [
			{"cols": ["user_id"], "ref_table": "users", "ref_cols": ["id"]}
		]}
	}}`))
	require.NoError(t, err)
	assert.NoError(t, p.Validate())
}

func TestValidate_DanglingRefTableAllowed(t *testing.T) {
	p, err := Parse([]byte(`{"tables": {
		"orders": {"pk": [], "fks": [
			{"cols": ["user_id"], "ref_table": "users", "ref_cols": ["id"]}
		]}
	}}`))
	require.NoError(t, err)
	assert.NoError(t, p.Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{
			name:    "invalid table name",
			data:    `{"tables": {"bad-name": {"pk": [], "fks": []}}}`,
			wantErr: "invalid table name",
		},
		{
			name:    "invalid pk column",
			data:    `{"tables": {"users": {"pk": ["id; DROP"], "fks": []}}}`,
			wantErr: "invalid primary key column",
		},
		{
			name:    "fk without columns",
			data:    `{"tables": {"orders": {"pk": [], "fks": [{"cols": [], "ref_table": "users", "ref_cols": []}]}}}`,
			wantErr: "at least one column required",
		},
		{
			name:    "fk column count mismatch",
			data:    `{"tables": {"orders": {"pk": [], "fks": [{"cols": ["a", "b"], "ref_table": "users", "ref_cols": ["id"]}]}}}`,
			wantErr: "2 local column(s) vs 1 referenced column(s)",
		},
		{
			name:    "invalid ref table",
			data:    `{"tables": {"orders": {"pk": [], "fks": [{"cols": ["a"], "ref_table": "users.archive", "ref_cols": ["id"]}]}}}`,
			wantErr: "invalid referenced table",
		},
		{
			name:    "invalid fk column",
			data:    `{"tables": {"orders": {"pk": [], "fks": [{"cols": ["user id"], "ref_table": "users", "ref_cols": ["id"]}]}}}`,
			wantErr: "invalid column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.data))
			require.NoError(t, err)

			err = p.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	p, err := Parse([]byte(`{"tables": {
		"bad-one": {"pk": [], "fks": []},
		"orders": {"pk": ["no pe"], "fks": [
			{"cols": [], "ref_table": "users", "ref_cols": []}
		]}
	}}`))
	require.NoError(t, err)

	verr := p.Validate()
	require.Error(t, verr)
	errs, ok := verr.(ValidationErrors)
	require.True(t, ok)
	assert.Len(t, errs, 3)
}

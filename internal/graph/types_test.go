package graph

import (
	"reflect"
	"testing"

	"github.com/dbsmedya/tdb/internal/profile"
)

func mustProfile(t *testing.T, data string) *profile.Profile {
	t.Helper()
	p, err := profile.Parse([]byte(data))
	if err != nil {
		t.Fatalf("failed to parse profile: %v", err)
	}
	return p
}

func TestBuild_SingleRelation(t *testing.T) {
	p := mustProfile(t, `{"tables": {
		"users": {"pk": ["id"], "fks": []},
		"orders": {"pk": ["id"], "fks": [{"cols": ["user_id"], "ref_table": "users", "ref_cols": ["id"]}]}
	}}`)

	g := Build(p)

	if g.NodeCount() != 2 {
		t.Errorf("Expected 2 nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("Expected 1 edge, got %d", g.EdgeCount())
	}
	if !reflect.DeepEqual(g.GetChildren("users"), []string{"orders"}) {
		t.Errorf("Expected users -> orders, got %v", g.GetChildren("users"))
	}
	if !reflect.DeepEqual(g.GetParents("orders"), []string{"users"}) {
		t.Errorf("Expected orders parent users, got %v", g.GetParents("orders"))
	}
}

func TestBuild_EdgeMeta(t *testing.T) {
	p := mustProfile(t, `{"tables": {
		"users": {"pk": ["id"], "fks": []},
		"orders": {"pk": [], "fks": [
			{"cols": ["user_id"], "ref_table": "users", "ref_cols": ["id"]},
			{"cols": ["approver_id"], "ref_table": "users", "ref_cols": ["id"]}
		]}
	}}`)

	g := Build(p)

	// Parallel foreign keys collapse into one edge with two meta entries.
	if g.EdgeCount() != 1 {
		t.Errorf("Expected parallel FKs to collapse into 1 edge, got %d", g.EdgeCount())
	}
	meta := g.GetEdgeMeta("users", "orders")
	if len(meta) != 2 {
		t.Fatalf("Expected 2 FK meta entries, got %d", len(meta))
	}
	if !reflect.DeepEqual(meta[0].Cols, []string{"user_id"}) {
		t.Errorf("Unexpected first FK meta: %+v", meta[0])
	}
	if !reflect.DeepEqual(meta[1].Cols, []string{"approver_id"}) {
		t.Errorf("Unexpected second FK meta: %+v", meta[1])
	}
}

func TestBuild_SelfReferenceAddsNoEdge(t *testing.T) {
	p := mustProfile(t, `{"tables": {
		"employees": {"pk": ["id"], "fks": [{"cols": ["manager_id"], "ref_table": "employees", "ref_cols": ["id"]}]}
	}}`)

	g := Build(p)

	if g.EdgeCount() != 0 {
		t.Errorf("Self-reference must not create an edge, got %d edges", g.EdgeCount())
	}
	if !g.Nodes["employees"].SelfRef {
		t.Error("Expected SelfRef flag on employees node")
	}
}

func TestBuild_MissingRefRecorded(t *testing.T) {
	p := mustProfile(t, `{"tables": {
		"orders": {"pk": [], "fks": [{"cols": ["user_id"], "ref_table": "users", "ref_cols": ["id"]}]}
	}}`)

	g := Build(p)

	if g.EdgeCount() != 0 {
		t.Errorf("Dangling ref must not create an edge, got %d edges", g.EdgeCount())
	}
	missing := g.MissingRefs()
	if len(missing) != 1 {
		t.Fatalf("Expected 1 missing ref, got %d", len(missing))
	}
	if missing[0] != (Edge{From: "users", To: "orders"}) {
		t.Errorf("Unexpected missing ref: %+v", missing[0])
	}
}

func TestAllNodes_Sorted(t *testing.T) {
	p := mustProfile(t, `{"tables": {
		"zebra": {"pk": [], "fks": []},
		"apple": {"pk": [], "fks": []},
		"mango": {"pk": [], "fks": []}
	}}`)

	g := Build(p)

	expected := []string{"apple", "mango", "zebra"}
	if !reflect.DeepEqual(g.AllNodes(), expected) {
		t.Errorf("Expected %v, got %v", expected, g.AllNodes())
	}
}

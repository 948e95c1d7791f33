// Package graph provides the table dependency graph and load-order planner for tdb.
package graph

import (
	"sort"

	"github.com/dbsmedya/tdb/internal/profile"
)

// Node represents a table in the dependency graph.
type Node struct {
	Name        string
	SelfRef     bool     // table declares a foreign key onto itself
	MissingRefs []string // referenced tables absent from the profile
}

// Edge represents a dependency: the referenced table must load before the
// referencing table.
type Edge struct {
	From string // referenced (parent) table
	To   string // referencing (child) table
}

// EdgeMeta records the foreign key columns behind an edge. Multiple foreign
// keys between the same pair of tables accumulate here.
type EdgeMeta struct {
	Cols    []string
	RefCols []string
}

// Graph represents the complete dependency structure declared by a profile.
type Graph struct {
	Nodes        map[string]*Node
	Children     map[string][]string // referenced table -> referencing tables
	Parents      map[string][]string // referencing table -> referenced tables
	edgeMetadata map[Edge][]EdgeMeta
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		Nodes:        make(map[string]*Node),
		Children:     make(map[string][]string),
		Parents:      make(map[string][]string),
		edgeMetadata: make(map[Edge][]EdgeMeta),
	}
}

// Build constructs the dependency graph from a schema profile.
// Self-referencing foreign keys are recorded on the node but add no edge:
// a table cannot block its own load. References to tables absent from the
// profile cannot become edges either; they are recorded as missing so the
// planner can report them.
func Build(p *profile.Profile) *Graph {
	g := NewGraph()

	for _, name := range p.TableNames() {
		g.AddNode(name)
	}

	for _, name := range p.TableNames() {
		spec, _ := p.Get(name)
		for _, fk := range spec.FKs {
			switch {
			case fk.RefTable == name:
				g.Nodes[name].SelfRef = true
			case g.HasNode(fk.RefTable):
				g.AddEdgeWithMeta(fk.RefTable, name, fk.Cols, fk.RefCols)
			default:
				g.Nodes[name].MissingRefs = append(g.Nodes[name].MissingRefs, fk.RefTable)
			}
		}
	}

	return g
}

// AddNode adds a table node to the graph.
func (g *Graph) AddNode(name string) {
	if _, exists := g.Nodes[name]; !exists {
		g.Nodes[name] = &Node{Name: name}
	}
}

// AddEdge adds a referenced -> referencing relationship, maintaining the
// reverse mapping for dependency checks. Parallel edges between the same
// pair collapse into one.
func (g *Graph) AddEdge(parent, child string) {
	for _, c := range g.Children[parent] {
		if c == child {
			return
		}
	}
	g.Children[parent] = append(g.Children[parent], child)
	g.Parents[child] = append(g.Parents[child], parent)
}

// AddEdgeWithMeta adds an edge and records the foreign key columns behind it.
func (g *Graph) AddEdgeWithMeta(parent, child string, cols, refCols []string) {
	g.AddEdge(parent, child)

	edge := Edge{From: parent, To: child}
	g.edgeMetadata[edge] = append(g.edgeMetadata[edge], EdgeMeta{Cols: cols, RefCols: refCols})
}

// GetChildren returns all tables that reference the given table.
func (g *Graph) GetChildren(parent string) []string {
	return g.Children[parent]
}

// GetParents returns all tables the given table references.
func (g *Graph) GetParents(child string) []string {
	return g.Parents[child]
}

// GetEdgeMeta returns the foreign keys recorded for an edge, or nil.
func (g *Graph) GetEdgeMeta(parent, child string) []EdgeMeta {
	return g.edgeMetadata[Edge{From: parent, To: child}]
}

// HasNode returns true if the graph contains a node with the given name.
func (g *Graph) HasNode(name string) bool {
	_, exists := g.Nodes[name]
	return exists
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, children := range g.Children {
		count += len(children)
	}
	return count
}

// AllNodes returns all table names, sorted for determinism.
func (g *Graph) AllNodes() []string {
	nodes := make([]string, 0, len(g.Nodes))
	for name := range g.Nodes {
		nodes = append(nodes, name)
	}
	sort.Strings(nodes)
	return nodes
}

// MissingRefs returns every dangling reference in the graph as
// "table -> missing" pairs, sorted.
func (g *Graph) MissingRefs() []Edge {
	var missing []Edge
	for _, node := range g.Nodes {
		for _, ref := range node.MissingRefs {
			missing = append(missing, Edge{From: ref, To: node.Name})
		}
	}
	sort.Slice(missing, func(i, j int) bool {
		if missing[i].To != missing[j].To {
			return missing[i].To < missing[j].To
		}
		return missing[i].From < missing[j].From
	})
	return missing
}

package graph

import (
	"fmt"
	"sort"
	"strings"
)

// CycleInfo describes why the planner could not order every table strictly:
// a reference cycle, a dangling reference, or tables blocked behind either.
type CycleInfo struct {
	TotalNodes        int
	ProcessedNodes    int
	UnprocessedNodes  []string // tables appended in fallback order
	CycleParticipants []string // subset of UnprocessedNodes forming a cycle
	CyclePath         []string // ordered path showing one cycle (e.g. [x, y, x])
	DanglingRefs      []string // "table -> missing_table" descriptions
}

// Warning renders a human-readable diagnostic for log output.
func (ci *CycleInfo) Warning() string {
	msg := fmt.Sprintf("load order degraded to lexicographic fallback for %d of %d tables",
		len(ci.UnprocessedNodes), ci.TotalNodes)

	if len(ci.CyclePath) > 0 {
		msg += fmt.Sprintf("; cycle path: %s", strings.Join(ci.CyclePath, " -> "))
	}
	if len(ci.DanglingRefs) > 0 {
		msg += fmt.Sprintf("; dangling references: %s", strings.Join(ci.DanglingRefs, ", "))
	}
	return msg
}

// LoadPlan orders the graph's tables so every referenced table precedes its
// referencers. Layered Kahn: each iteration takes every table whose
// references are satisfied, sorted lexicographically, so the result is
// deterministic regardless of map iteration order.
//
// When no table qualifies and tables remain (a cycle, or a foreign key
// pointing outside the profile), the remaining tables are appended in
// lexicographic order and the returned CycleInfo says why. This fallback is
// a policy choice, not a correctness guarantee: the resulting order may
// violate the stuck constraints, and the loader will surface that as a
// constraint error if it matters. Callers wanting strictness should treat a
// non-nil CycleInfo as fatal themselves.
func (g *Graph) LoadPlan() ([]string, *CycleInfo) {
	ordered := make(map[string]bool, len(g.Nodes))
	plan := make([]string, 0, len(g.Nodes))

	remaining := make(map[string]bool, len(g.Nodes))
	for name := range g.Nodes {
		remaining[name] = true
	}

	for len(remaining) > 0 {
		var ready []string
		for name := range remaining {
			if g.satisfied(name, ordered) {
				ready = append(ready, name)
			}
		}

		if len(ready) == 0 {
			// Stalled: cycle or dangling reference. Append the rest
			// lexicographically and report why.
			info := g.describeStall(remaining, len(plan))
			plan = append(plan, info.UnprocessedNodes...)
			return plan, info
		}

		sort.Strings(ready)
		for _, name := range ready {
			plan = append(plan, name)
			ordered[name] = true
			delete(remaining, name)
		}
	}

	return plan, nil
}

// satisfied reports whether every table the given table references has been
// ordered. Self-references were never recorded as edges, so they are
// trivially satisfied; dangling references can never be satisfied.
func (g *Graph) satisfied(name string, ordered map[string]bool) bool {
	if len(g.Nodes[name].MissingRefs) > 0 {
		return false
	}
	for _, parent := range g.Parents[name] {
		if !ordered[parent] {
			return false
		}
	}
	return true
}

// describeStall builds diagnostics for a blocked remainder: which tables
// form an actual cycle, one concrete cycle path, and which references point
// outside the profile.
func (g *Graph) describeStall(remaining map[string]bool, processed int) *CycleInfo {
	unprocessed := make([]string, 0, len(remaining))
	for name := range remaining {
		unprocessed = append(unprocessed, name)
	}
	sort.Strings(unprocessed)

	var participants []string
	for _, name := range unprocessed {
		if g.canReachSelf(name, remaining) {
			participants = append(participants, name)
		}
	}

	var cyclePath []string
	if len(participants) > 0 {
		cyclePath = g.findCyclePath(participants[0], remaining)
	}

	var dangling []string
	for _, name := range unprocessed {
		for _, ref := range g.Nodes[name].MissingRefs {
			dangling = append(dangling, fmt.Sprintf("%s -> %s", name, ref))
		}
	}

	return &CycleInfo{
		TotalNodes:        len(g.Nodes),
		ProcessedNodes:    processed,
		UnprocessedNodes:  unprocessed,
		CycleParticipants: participants,
		CyclePath:         cyclePath,
		DanglingRefs:      dangling,
	}
}

// canReachSelf checks if a node can reach itself through the subgraph
// defined by the allowed set. Uses DFS.
func (g *Graph) canReachSelf(start string, allowed map[string]bool) bool {
	visited := make(map[string]bool)
	return g.dfsCanReach(start, start, visited, allowed, true)
}

// dfsCanReach performs DFS to check if target is reachable from current.
// isStart is true only for the initial call to avoid an immediate self-match.
func (g *Graph) dfsCanReach(current, target string, visited, allowed map[string]bool, isStart bool) bool {
	if current == target && !isStart {
		return true
	}
	if visited[current] || !allowed[current] {
		return false
	}
	visited[current] = true

	for _, child := range g.GetChildren(current) {
		if g.dfsCanReach(child, target, visited, allowed, false) {
			return true
		}
	}
	return false
}

// findCyclePath finds a concrete path that forms a cycle starting from the
// given node, including the start node at both ends.
func (g *Graph) findCyclePath(start string, allowed map[string]bool) []string {
	visited := make(map[string]bool)
	path := []string{start}

	if g.dfsFindPath(start, start, visited, allowed, &path) {
		return path
	}
	return nil
}

// dfsFindPath performs DFS to find a path back to target, populating path
// via pointer and backtracking on dead ends.
func (g *Graph) dfsFindPath(current, target string, visited, allowed map[string]bool, path *[]string) bool {
	children := append([]string(nil), g.GetChildren(current)...)
	sort.Strings(children)

	for _, child := range children {
		if !allowed[child] {
			continue
		}
		if child == target {
			*path = append(*path, target)
			return true
		}
		if visited[child] {
			continue
		}

		visited[child] = true
		*path = append(*path, child)

		if g.dfsFindPath(child, target, visited, allowed, path) {
			return true
		}

		*path = (*path)[:len(*path)-1]
	}
	return false
}

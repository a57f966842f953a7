// Package dfs implements cycle detection and topological ordering
// over a scoped set of pgraph nodes — typically the sibling children
// of one dataflow parent, whose internal wiring must be a DAG. Both
// use three-color DFS marking over the links between members of the
// given node set.
package dfs

import "errors"

// Visitation states for the three-color DFS marking scheme (White =
// unvisited, Gray = on the current recursion stack, Black = finished).
const (
	White = iota
	Gray
	Black
)

// ErrCycleDetected is returned by TopologicalSort when the scoped
// subgraph contains a directed cycle.
var ErrCycleDetected = errors.New("dfs: cycle detected")

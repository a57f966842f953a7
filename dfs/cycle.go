package dfs

import "github.com/hugr-ir/hugr/pgraph"

// HasCycle reports whether the subgraph induced by nodes (restricted
// to links between two members of nodes) contains a directed cycle.
// A boolean is enough: HUGR validation only needs to reject a cyclic
// dataflow region, not enumerate every cycle in it.
func HasCycle(g *pgraph.Graph, nodes []pgraph.NodeID) bool {
	scope := nodeScope(nodes)
	state := make(map[pgraph.NodeID]int, len(nodes))

	var visit func(n pgraph.NodeID) bool
	visit = func(n pgraph.NodeID) bool {
		state[n] = Gray
		for _, nbr := range successors(g, n, scope) {
			switch state[nbr] {
			case White:
				if visit(nbr) {
					return true
				}
			case Gray:
				return true
			}
		}
		state[n] = Black

		return false
	}

	for _, n := range nodes {
		if state[n] == White {
			if visit(n) {
				return true
			}
		}
	}

	return false
}

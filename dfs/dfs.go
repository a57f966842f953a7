package dfs

import "github.com/hugr-ir/hugr/pgraph"

// successors returns the distinct nodes in scope reachable from n by
// a single outgoing link, in the order they are first met walking n's
// outgoing ports by ascending offset. Every pgraph link is
// directed, so the only filter is scope membership.
func successors(g *pgraph.Graph, n pgraph.NodeID, scope map[pgraph.NodeID]struct{}) []pgraph.NodeID {
	numIn, numOut, err := g.NumPorts(n)
	_ = numIn
	if err != nil {
		return nil
	}

	seen := make(map[pgraph.NodeID]struct{})
	var out []pgraph.NodeID
	for off := uint16(0); off < numOut; off++ {
		p := pgraph.PortID{Node: n, Offset: off, Dir: pgraph.Outgoing}
		for _, peer := range g.LinkedPorts(p) {
			if _, inScope := scope[peer.Node]; !inScope {
				continue
			}
			if _, dup := seen[peer.Node]; dup {
				continue
			}
			seen[peer.Node] = struct{}{}
			out = append(out, peer.Node)
		}
	}

	return out
}

// nodeScope builds the membership set used to restrict traversal to
// nodes, preserving nothing about their order.
func nodeScope(nodes []pgraph.NodeID) map[pgraph.NodeID]struct{} {
	scope := make(map[pgraph.NodeID]struct{}, len(nodes))
	for _, n := range nodes {
		scope[n] = struct{}{}
	}

	return scope
}

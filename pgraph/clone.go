package pgraph

// Clone returns a deep copy of g: every node, its port counts, and
// every link, with identifiers preserved. Nodes are copied first, then
// links. Complexity: O(V+E).
func (g *Graph) Clone() *Graph {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	g.muLink.RLock()
	defer g.muLink.RUnlock()

	out := NewGraph()
	for id, n := range g.nodes {
		nn := &node{
			id:       id,
			numIn:    n.numIn,
			numOut:   n.numOut,
			inLinks:  make(map[uint16]map[LinkID]struct{}, len(n.inLinks)),
			outLinks: make(map[uint16]map[LinkID]struct{}, len(n.outLinks)),
		}
		for off, set := range n.inLinks {
			cp := make(map[LinkID]struct{}, len(set))
			for lid := range set {
				cp[lid] = struct{}{}
			}
			nn.inLinks[off] = cp
		}
		for off, set := range n.outLinks {
			cp := make(map[LinkID]struct{}, len(set))
			for lid := range set {
				cp[lid] = struct{}{}
			}
			nn.outLinks[off] = cp
		}
		out.nodes[id] = nn
	}
	for id, l := range g.links {
		out.links[id] = &Link{ID: l.ID, Src: l.Src, Dst: l.Dst}
	}

	return out
}

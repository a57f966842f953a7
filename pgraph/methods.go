// File: methods.go
// Role: node/port/link lifecycle and queries.
//
// Determinism: Nodes() and Links() return identifiers sorted
// lexicographically ascending, mirroring core.Vertices()/core.Edges().
package pgraph

import (
	"fmt"
	"sort"
)

// AddNode creates a new node with the given input/output port counts
// and returns its NodeID. Complexity: O(1).
func (g *Graph) AddNode(numIn, numOut uint16) NodeID {
	g.muNode.Lock()
	defer g.muNode.Unlock()

	id := NodeID(newID())
	g.nodes[id] = &node{
		id:       id,
		numIn:    numIn,
		numOut:   numOut,
		inLinks:  make(map[uint16]map[LinkID]struct{}, numIn),
		outLinks: make(map[uint16]map[LinkID]struct{}, numOut),
	}

	return id
}

// HasNode reports whether id is present. Complexity: O(1).
func (g *Graph) HasNode(id NodeID) bool {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	_, ok := g.nodes[id]

	return ok
}

// NumPorts returns the node's (incoming, outgoing) port counts.
// Complexity: O(1).
func (g *Graph) NumPorts(id NodeID) (in, out uint16, err error) {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	n, ok := g.nodes[id]
	if !ok {
		return 0, 0, fmt.Errorf("NumPorts(%s): %w", id, ErrNodeNotFound)
	}

	return n.numIn, n.numOut, nil
}

// SetNumPorts grows or shrinks the node's port counts. Shrinking a
// dimension that still has attached links is rejected by the caller's
// own invariants — pgraph does not police this; it is a low-level
// primitive. Growing never disturbs existing links (new offsets start
// with an empty link set). Complexity: O(1).
func (g *Graph) SetNumPorts(id NodeID, numIn, numOut uint16) error {
	g.muNode.Lock()
	defer g.muNode.Unlock()
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("SetNumPorts(%s): %w", id, ErrNodeNotFound)
	}
	n.numIn = numIn
	n.numOut = numOut

	return nil
}

// RemoveNode deletes a node and every link attached to it.
// Complexity: O(links incident to id).
func (g *Graph) RemoveNode(id NodeID) error {
	g.muNode.Lock()
	defer g.muNode.Unlock()
	g.muLink.Lock()
	defer g.muLink.Unlock()

	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("RemoveNode(%s): %w", id, ErrNodeNotFound)
	}

	for _, set := range n.inLinks {
		for lid := range set {
			g.unlinkLocked(lid)
		}
	}
	for _, set := range n.outLinks {
		for lid := range set {
			g.unlinkLocked(lid)
		}
	}
	delete(g.nodes, id)

	return nil
}

// Nodes returns every NodeID in lexicographic order. Complexity:
// O(V log V).
func (g *Graph) Nodes() []NodeID {
	g.muNode.RLock()
	defer g.muNode.RUnlock()
	out := make([]NodeID, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// NodeCount returns the number of live nodes. Complexity: O(1).
func (g *Graph) NodeCount() int {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	return len(g.nodes)
}

// Connect creates a Link from an Outgoing port to an Incoming port and
// returns its LinkID. Complexity: O(1) amortized.
func (g *Graph) Connect(src, dst PortID) (LinkID, error) {
	if src.Dir != Outgoing {
		return "", fmt.Errorf("Connect: src %+v: %w", src, ErrWrongDirection)
	}
	if dst.Dir != Incoming {
		return "", fmt.Errorf("Connect: dst %+v: %w", dst, ErrWrongDirection)
	}

	g.muNode.RLock()
	srcNode, srcOK := g.nodes[src.Node]
	dstNode, dstOK := g.nodes[dst.Node]
	g.muNode.RUnlock()
	if !srcOK {
		return "", fmt.Errorf("Connect: src node %s: %w", src.Node, ErrNodeNotFound)
	}
	if !dstOK {
		return "", fmt.Errorf("Connect: dst node %s: %w", dst.Node, ErrNodeNotFound)
	}
	if src.Offset >= srcNode.numOut {
		return "", fmt.Errorf("Connect: src offset %d: %w", src.Offset, ErrPortOutOfRange)
	}
	if dst.Offset >= dstNode.numIn {
		return "", fmt.Errorf("Connect: dst offset %d: %w", dst.Offset, ErrPortOutOfRange)
	}

	g.muLink.Lock()
	defer g.muLink.Unlock()

	lid := LinkID(newID())
	g.links[lid] = &Link{ID: lid, Src: src, Dst: dst}

	if srcNode.outLinks[src.Offset] == nil {
		srcNode.outLinks[src.Offset] = make(map[LinkID]struct{})
	}
	srcNode.outLinks[src.Offset][lid] = struct{}{}

	if dstNode.inLinks[dst.Offset] == nil {
		dstNode.inLinks[dst.Offset] = make(map[LinkID]struct{})
	}
	dstNode.inLinks[dst.Offset][lid] = struct{}{}

	return lid, nil
}

// Disconnect removes a single Link by ID. Complexity: O(1).
func (g *Graph) Disconnect(id LinkID) error {
	g.muLink.Lock()
	defer g.muLink.Unlock()
	if _, ok := g.links[id]; !ok {
		return fmt.Errorf("Disconnect(%s): %w", id, ErrLinkNotFound)
	}
	g.unlinkLocked(id)

	return nil
}

// unlinkLocked removes a link from the catalog and both adjacency
// sides. Caller must hold muLink (and, since it touches node port
// maps, effectively needs no muNode — node.inLinks/outLinks are only
// ever mutated while muLink is held, see Connect/RemoveNode).
func (g *Graph) unlinkLocked(id LinkID) {
	l, ok := g.links[id]
	if !ok {
		return
	}
	delete(g.links, id)
	if srcNode, ok := g.nodes[l.Src.Node]; ok {
		if set := srcNode.outLinks[l.Src.Offset]; set != nil {
			delete(set, id)
		}
	}
	if dstNode, ok := g.nodes[l.Dst.Node]; ok {
		if set := dstNode.inLinks[l.Dst.Offset]; set != nil {
			delete(set, id)
		}
	}
}

// LinkedPorts returns the peer ports linked to the given port (for an
// Outgoing port, its targets; for an Incoming port, its sources — there
// is at most one source per Incoming port by HUGR-level convention,
// but pgraph itself does not enforce that). Complexity: O(d).
func (g *Graph) LinkedPorts(p PortID) []PortID {
	g.muNode.RLock()
	n, ok := g.nodes[p.Node]
	g.muNode.RUnlock()
	if !ok {
		return nil
	}

	g.muLink.RLock()
	defer g.muLink.RUnlock()

	var set map[LinkID]struct{}
	if p.Dir == Outgoing {
		set = n.outLinks[p.Offset]
	} else {
		set = n.inLinks[p.Offset]
	}
	out := make([]PortID, 0, len(set))
	var ids []string
	for lid := range set {
		ids = append(ids, string(lid))
	}
	sort.Strings(ids)
	for _, lid := range ids {
		l := g.links[LinkID(lid)]
		if p.Dir == Outgoing {
			out = append(out, l.Dst)
		} else {
			out = append(out, l.Src)
		}
	}

	return out
}

// IsLinked reports whether port p has at least one attached link.
// Complexity: O(1).
func (g *Graph) IsLinked(p PortID) bool {
	g.muNode.RLock()
	n, ok := g.nodes[p.Node]
	g.muNode.RUnlock()
	if !ok {
		return false
	}
	g.muLink.RLock()
	defer g.muLink.RUnlock()
	if p.Dir == Outgoing {
		return len(n.outLinks[p.Offset]) > 0
	}

	return len(n.inLinks[p.Offset]) > 0
}

// Links returns every Link sorted by LinkID. Complexity: O(E log E).
func (g *Graph) Links() []*Link {
	g.muLink.RLock()
	defer g.muLink.RUnlock()
	out := make([]*Link, 0, len(g.links))
	for _, l := range g.links {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

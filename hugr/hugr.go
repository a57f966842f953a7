package hugr

import (
	"fmt"
	"sync"

	"github.com/hugr-ir/hugr/pgraph"
)

// Hugr owns a portgraph plus a side table mapping each node to its
// OpType, and a hierarchy (parent pointer plus ordered children) on
// top of it. A Hugr is not shared across goroutines: to hand one to
// another thread, transfer ownership. The mutex here exists only so
// reads from concurrently-held HugrViews (package hugr/view) are
// race-free while a builder still holds the one mutable handle.
type Hugr struct {
	mu sync.RWMutex

	pg   *pgraph.Graph
	ops  map[pgraph.NodeID]OpType
	par  map[pgraph.NodeID]pgraph.NodeID
	kids map[pgraph.NodeID][]pgraph.NodeID

	root pgraph.NodeID
}

// New constructs a Hugr whose root is a Module node.
func New() *Hugr {
	h := &Hugr{
		pg:   pgraph.NewGraph(),
		ops:  make(map[pgraph.NodeID]OpType),
		par:  make(map[pgraph.NodeID]pgraph.NodeID),
		kids: make(map[pgraph.NodeID][]pgraph.NodeID),
	}
	h.root = h.pg.AddNode(0, 0)
	h.ops[h.root] = ModuleOp{}

	return h
}

// Root returns the root (Module) node.
func (h *Hugr) Root() pgraph.NodeID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.root
}

// GetOpType returns the OpType of n.
func (h *Hugr) GetOpType(n pgraph.NodeID) (OpType, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	op, ok := h.ops[n]
	if !ok {
		return nil, fmt.Errorf("GetOpType(%s): %w", n, ErrNodeNotFound)
	}

	return op, nil
}

// GetParent returns the parent of n, or false if n is the root.
func (h *Hugr) GetParent(n pgraph.NodeID) (pgraph.NodeID, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	p, ok := h.par[n]

	return p, ok
}

// Children returns the ordered children of n.
func (h *Hugr) Children(n pgraph.NodeID) []pgraph.NodeID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]pgraph.NodeID, len(h.kids[n]))
	copy(out, h.kids[n])

	return out
}

// NumInputs returns the node's current incoming port count (dataflow
// or control, whichever the portgraph tracks — set_num_ports is the
// single source of truth).
func (h *Hugr) NumInputs(n pgraph.NodeID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	in, _, _ := h.pg.NumPorts(n)

	return int(in)
}

// NumOutputs returns the node's current outgoing port count.
func (h *Hugr) NumOutputs(n pgraph.NodeID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, out, _ := h.pg.NumPorts(n)

	return int(out)
}

// LinkedPorts returns the peer ports linked to p.
func (h *Hugr) LinkedPorts(p pgraph.PortID) []pgraph.PortID {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.pg.LinkedPorts(p)
}

// IsLinked reports whether p has at least one link.
func (h *Hugr) IsLinked(p pgraph.PortID) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.pg.IsLinked(p)
}

// Portgraph exposes the underlying low-level graph for read-only
// inspection.
func (h *Hugr) Portgraph() *pgraph.Graph { return h.pg }

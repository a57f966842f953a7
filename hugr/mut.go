package hugr

import (
	"fmt"

	"github.com/hugr-ir/hugr/pgraph"
)

// portCounts derives the (numIn, numOut) a freshly created node should
// start with from its OpType's declared rows. BasicBlockOp overrides
// numOut to its successor count and starts numIn at 0 (numIn grows
// only via the control-flow path: SetNumPorts/branch, never by row
// length).
func portCounts(op OpType) (uint16, uint16) {
	if b, ok := op.(BasicBlockOp); ok {
		return 0, uint16(b.NumSuccessors())
	}

	return uint16(op.InputRow().Len()), uint16(op.OutputRow().Len())
}

// AddOp creates a new node with OpType op as the last child of parent.
func (h *Hugr) AddOp(parent pgraph.NodeID, op OpType) (pgraph.NodeID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.ops[parent]; !ok {
		return "", fmt.Errorf("AddOp: parent %s: %w", parent, ErrNodeNotFound)
	}

	numIn, numOut := portCounts(op)
	n := h.pg.AddNode(numIn, numOut)
	h.ops[n] = op
	h.par[n] = parent
	h.kids[parent] = append(h.kids[parent], n)

	return n, nil
}

// AddOpBefore creates a new node as op and inserts it immediately
// before anchor in anchor's parent's child order.
func (h *Hugr) AddOpBefore(anchor pgraph.NodeID, op OpType) (pgraph.NodeID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	parent, ok := h.par[anchor]
	if !ok {
		return "", fmt.Errorf("AddOpBefore: anchor %s: %w", anchor, ErrNoParent)
	}

	numIn, numOut := portCounts(op)
	n := h.pg.AddNode(numIn, numOut)
	h.ops[n] = op
	h.par[n] = parent

	siblings := h.kids[parent]
	out := make([]pgraph.NodeID, 0, len(siblings)+1)
	for _, s := range siblings {
		if s == anchor {
			out = append(out, n)
		}
		out = append(out, s)
	}
	h.kids[parent] = out

	return n, nil
}

// AddOpAfter creates a new node as op and inserts it immediately after
// anchor in anchor's parent's child order.
func (h *Hugr) AddOpAfter(anchor pgraph.NodeID, op OpType) (pgraph.NodeID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	parent, ok := h.par[anchor]
	if !ok {
		return "", fmt.Errorf("AddOpAfter: anchor %s: %w", anchor, ErrNoParent)
	}

	numIn, numOut := portCounts(op)
	n := h.pg.AddNode(numIn, numOut)
	h.ops[n] = op
	h.par[n] = parent

	siblings := h.kids[parent]
	out := make([]pgraph.NodeID, 0, len(siblings)+1)
	for _, s := range siblings {
		out = append(out, s)
		if s == anchor {
			out = append(out, n)
		}
	}
	h.kids[parent] = out

	return n, nil
}

// SetNumPorts resizes n's port counts, used by the CFG builder's
// branch() to grow a successor's incoming control-port count by one.
func (h *Hugr) SetNumPorts(n pgraph.NodeID, numIn, numOut uint16) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pg.SetNumPorts(n, numIn, numOut)
}

// Connect links src (an Outgoing port) to dst (an Incoming port).
func (h *Hugr) Connect(src, dst pgraph.PortID) (pgraph.LinkID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pg.Connect(src, dst)
}

// Disconnect removes the link id.
func (h *Hugr) Disconnect(id pgraph.LinkID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pg.Disconnect(id)
}

// SetParent reparents n to newParent, appending it to newParent's
// child order and removing it from its previous parent's.
func (h *Hugr) SetParent(n, newParent pgraph.NodeID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.ops[n]; !ok {
		return fmt.Errorf("SetParent(%s): %w", n, ErrNodeNotFound)
	}
	if _, ok := h.ops[newParent]; !ok {
		return fmt.Errorf("SetParent: new parent %s: %w", newParent, ErrNodeNotFound)
	}

	if old, ok := h.par[n]; ok {
		h.kids[old] = removeFromSlice(h.kids[old], n)
	}
	h.par[n] = newParent
	h.kids[newParent] = append(h.kids[newParent], n)

	return nil
}

func removeFromSlice(s []pgraph.NodeID, n pgraph.NodeID) []pgraph.NodeID {
	out := make([]pgraph.NodeID, 0, len(s))
	for _, x := range s {
		if x != n {
			out = append(out, x)
		}
	}

	return out
}

// RemoveNode deletes n (and every link touching it) from the HUGR. n
// must have no children; remove them first (see RemoveSubtree).
func (h *Hugr) RemoveNode(n pgraph.NodeID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.removeNodeLocked(n)
}

func (h *Hugr) removeNodeLocked(n pgraph.NodeID) error {
	if _, ok := h.ops[n]; !ok {
		return fmt.Errorf("RemoveNode(%s): %w", n, ErrNodeNotFound)
	}
	if len(h.kids[n]) != 0 {
		return fmt.Errorf("RemoveNode(%s): node has children, use RemoveSubtree: %w", n, ErrIllegalParentChild)
	}

	if err := h.pg.RemoveNode(n); err != nil {
		return fmt.Errorf("RemoveNode(%s): %w", n, err)
	}
	if p, ok := h.par[n]; ok {
		h.kids[p] = removeFromSlice(h.kids[p], n)
	}
	delete(h.ops, n)
	delete(h.par, n)
	delete(h.kids, n)

	return nil
}

// RemoveSubtree deletes n and every descendant, bottom-up.
func (h *Hugr) RemoveSubtree(n pgraph.NodeID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.removeSubtreeLocked(n)
}

func (h *Hugr) removeSubtreeLocked(n pgraph.NodeID) error {
	for _, c := range append([]pgraph.NodeID(nil), h.kids[n]...) {
		if err := h.removeSubtreeLocked(c); err != nil {
			return err
		}
	}

	return h.removeNodeLocked(n)
}

// Clone returns a deep, independent copy of h.
func (h *Hugr) Clone() *Hugr {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := &Hugr{
		pg:   h.pg.Clone(),
		ops:  make(map[pgraph.NodeID]OpType, len(h.ops)),
		par:  make(map[pgraph.NodeID]pgraph.NodeID, len(h.par)),
		kids: make(map[pgraph.NodeID][]pgraph.NodeID, len(h.kids)),
		root: h.root,
	}
	for k, v := range h.ops {
		out.ops[k] = v
	}
	for k, v := range h.par {
		out.par[k] = v
	}
	for k, v := range h.kids {
		cp := make([]pgraph.NodeID, len(v))
		copy(cp, v)
		out.kids[k] = cp
	}

	return out
}

// adopt replaces h's internal state with other's, used by ApplyRewrite
// to commit a scratch clone atomically once every step has succeeded.
func (h *Hugr) adopt(other *Hugr) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.pg = other.pg
	h.ops = other.ops
	h.par = other.par
	h.kids = other.kids
	h.root = other.root
}

// ApplyRewrite performs a transactional splice against a scratch clone
// of h: it adds newOps as children of parent, invokes wire (which may
// call Connect/Disconnect/SetParent on the scratch handle it is
// given, using host-side knowledge of the boundary), then removes
// toRemove. If any step errors, h is left completely untouched — the
// scratch clone is simply discarded.
func (h *Hugr) ApplyRewrite(parent pgraph.NodeID, newOps []OpType, wire func(scratch *Hugr, inserted []pgraph.NodeID) error, toRemove []pgraph.NodeID) ([]pgraph.NodeID, error) {
	scratch := h.Clone()

	inserted := make([]pgraph.NodeID, 0, len(newOps))
	for _, op := range newOps {
		n, err := scratch.AddOp(parent, op)
		if err != nil {
			return nil, fmt.Errorf("ApplyRewrite: insert: %w", err)
		}
		inserted = append(inserted, n)
	}

	if wire != nil {
		if err := wire(scratch, inserted); err != nil {
			return nil, fmt.Errorf("ApplyRewrite: wire: %w", err)
		}
	}

	for _, n := range toRemove {
		if err := scratch.removeSubtreeLocked(n); err != nil {
			return nil, fmt.Errorf("ApplyRewrite: remove %s: %w", n, err)
		}
	}

	h.adopt(scratch)

	return inserted, nil
}

package hugr

import (
	"fmt"

	"github.com/hugr-ir/hugr/dfs"
	"github.com/hugr-ir/hugr/extension"
	"github.com/hugr-ir/hugr/extid"
	"github.com/hugr-ir/hugr/pgraph"
	"github.com/hugr-ir/hugr/types"
)

// Validate proves well-formedness of h against reg. It traverses the
// hierarchy top-down and
// checks, per node: legal parent/child pairing, port counts matching
// signature rows, matching linked-port types with the copyability
// multiplicity rule, ExtensionOp cache agreement, dataflow-parent
// Input/Output shape, and CFG exit/entry/branch shape. It does not check
// extension-requirement monotonicity across the whole tree in one
// pass beyond the direct parent/child relationship (see
// checkExtensionMonotone).
func Validate(h *Hugr, reg *extension.Registry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	root, ok := h.ops[h.root]
	if !ok {
		return fmt.Errorf("Validate: %w", ErrNodeNotFound)
	}
	if _, ok := root.(ModuleOp); !ok {
		return fmt.Errorf("Validate: root is %s: %w", root.Tag(), ErrWrongRootKind)
	}

	return h.validateNode(h.root, reg, extid.NewSet())
}

// validateNode checks node n and recurses into its children.
// parentExts is the extension requirement in force at n's enclosing
// function: every node's requirement must be a subset of it.
func (h *Hugr) validateNode(n pgraph.NodeID, reg *extension.Registry, parentExts extid.Set) error {
	op := h.ops[n]

	if err := h.checkPortCounts(n, op); err != nil {
		return err
	}
	if err := h.checkExtensionOpCache(n, op, reg); err != nil {
		return err
	}
	if err := h.checkExtensionMonotone(n, op, parentExts); err != nil {
		return err
	}

	kids := h.kids[n]

	switch v := op.(type) {
	case FuncDefnOp:
		if err := h.checkDataflowChildren(n, v.Signature); err != nil {
			return err
		}
		parentExts = v.Signature.Extensions
	case DFGOp:
		if err := h.checkDataflowChildren(n, v.Signature); err != nil {
			return err
		}
	case CFGOp:
		if err := h.checkCFGChildren(n, v.Signature); err != nil {
			return err
		}
	case BasicBlockOp:
		if v.Kind != BlockExit {
			if err := h.checkDataflowChildren(n, types.NewFunctionType(v.InputRow(), v.OutputRow())); err != nil {
				return err
			}
		}
	}

	for _, c := range kids {
		if err := h.validateNode(c, reg, parentExts); err != nil {
			return err
		}
	}

	return h.checkLinkedPorts(n)
}

// checkPortCounts verifies n's current port counts against op's
// declared rows for every op except BasicBlockOp, whose counts are
// governed by the control-flow branch structure (checked in
// checkCFGChildren). ModuleOp/FuncDefnOp/FuncDeclOp/ConstOp, whose
// counts are fixed at creation, are checked like the rest.
func (h *Hugr) checkPortCounts(n pgraph.NodeID, op OpType) error {
	if _, ok := op.(BasicBlockOp); ok {
		return nil
	}

	in, out, _ := h.pg.NumPorts(n)
	wantIn := uint16(op.InputRow().Len())
	wantOut := uint16(op.OutputRow().Len())
	if in != wantIn || out != wantOut {
		return fmt.Errorf("Validate: node %s (%s): ports (%d,%d) != signature (%d,%d): %w",
			n, op.Tag(), in, out, wantIn, wantOut, ErrPortCountMismatch)
	}

	return nil
}

func (h *Hugr) checkExtensionOpCache(n pgraph.NodeID, op OpType, reg *extension.Registry) error {
	ext, ok := op.(ExtensionOpType)
	if !ok {
		return nil
	}
	if err := ext.Op.CheckCache(reg); err != nil {
		return fmt.Errorf("Validate: node %s: %w", n, err)
	}

	return nil
}

// checkExtensionMonotone checks invariant 6 for dataflow-parent ops
// that declare their own extension requirement: it must be a subset
// of (or equal to) what the enclosing function already requires.
func (h *Hugr) checkExtensionMonotone(n pgraph.NodeID, op OpType, parentExts extid.Set) error {
	var exts extid.Set
	switch v := op.(type) {
	case DFGOp:
		exts = v.Signature.Extensions
	case CFGOp:
		exts = v.Signature.Extensions
	default:
		return nil
	}
	if !exts.IsSubset(parentExts) {
		return fmt.Errorf("Validate: node %s: %w", n, ErrExtensionsNotMonotone)
	}

	return nil
}

// checkDataflowChildren verifies invariant 2: the first two children
// of a dataflow parent are Input(sig.Input) then Output(sig.Output).
func (h *Hugr) checkDataflowChildren(n pgraph.NodeID, sig types.Signature) error {
	kids := h.kids[n]
	if len(kids) < 2 {
		return fmt.Errorf("Validate: node %s: dataflow parent has fewer than 2 children: %w", n, ErrIllegalParentChild)
	}

	inOp, ok := h.ops[kids[0]].(InputOp)
	if !ok || !inOp.Row.Equal(sig.Input) {
		return fmt.Errorf("Validate: node %s: first child is not Input(%s): %w", n, sig.Input, ErrIllegalParentChild)
	}

	outOp, ok := h.ops[kids[1]].(OutputOp)
	if !ok || !outOp.Row.Equal(sig.Output) {
		return fmt.Errorf("Validate: node %s: second child is not Output(%s): %w", n, sig.Output, ErrIllegalParentChild)
	}

	if dfs.HasCycle(h.pg, kids) {
		return fmt.Errorf("Validate: node %s: %w", n, ErrCyclicDataflow)
	}

	return nil
}

// checkCFGChildren verifies that a CFG has exactly one exit child,
// that the entry block's input row equals the CFG's input row, and
// that every block's branch outputs match its successors' inputs.
func (h *Hugr) checkCFGChildren(n pgraph.NodeID, sig types.Signature) error {
	kids := h.kids[n]
	if len(kids) == 0 {
		return fmt.Errorf("Validate: node %s: CFG has no children: %w", n, ErrIllegalParentChild)
	}

	var exits []pgraph.NodeID
	var entry pgraph.NodeID
	haveEntry := false
	for _, c := range kids {
		b, ok := h.ops[c].(BasicBlockOp)
		if !ok {
			return fmt.Errorf("Validate: node %s: CFG child %s is not a BasicBlock: %w", n, c, ErrIllegalParentChild)
		}
		if b.Kind == BlockExit {
			exits = append(exits, c)

			continue
		}
		if !haveEntry {
			entry = c
			haveEntry = true
		}
	}
	if len(exits) != 1 {
		return fmt.Errorf("Validate: node %s: %d exit children: %w", n, len(exits), ErrDuplicateExit)
	}
	if !haveEntry {
		return fmt.Errorf("Validate: node %s: CFG has no entry block: %w", n, ErrIllegalParentChild)
	}

	entryOp := h.ops[entry].(BasicBlockOp)
	if !entryOp.InRow.Equal(sig.Input) {
		return fmt.Errorf("Validate: node %s: entry input row %s != CFG input row %s: %w", n, entryOp.InRow, sig.Input, ErrIllegalParentChild)
	}

	// Every branch carries the row its predicate variant declares
	// (plus the block's other outputs); the successor wired at that
	// branch index must declare the same input row. The Exit block's
	// input row is the CFG's own output row.
	for _, c := range kids {
		b := h.ops[c].(BasicBlockOp)
		if b.Kind == BlockExit {
			continue
		}
		for i := 0; i < b.NumSuccessors(); i++ {
			branchRow := b.PredicateVariants[i].Concat(b.OtherOutputs)
			src := pgraph.PortID{Node: c, Offset: uint16(i), Dir: pgraph.Outgoing}
			for _, peer := range h.pg.LinkedPorts(src) {
				succ, ok := h.ops[peer.Node].(BasicBlockOp)
				if !ok {
					return fmt.Errorf("Validate: node %s branch %d: successor %s is not a BasicBlock: %w", c, i, peer.Node, ErrIllegalParentChild)
				}
				succRow := succ.InRow
				if succ.Kind == BlockExit {
					succRow = sig.Output
				}
				if !branchRow.Equal(succRow) {
					return fmt.Errorf("Validate: node %s branch %d: outputs %s != successor input row %s: %w", c, i, branchRow, succRow, ErrBranchSignatureMismatch)
				}
			}
		}
	}

	return nil
}

// checkLinkedPorts verifies invariant 3 and 4 from n's outgoing ports:
// an outgoing port with more than one link must carry a copyable type,
// and every linked pair agrees in type. Each link is checked once,
// from its source node; n's incoming ports are not inspected here.
func (h *Hugr) checkLinkedPorts(n pgraph.NodeID) error {
	op := h.ops[n]
	if _, ok := op.(BasicBlockOp); ok {
		// A BasicBlock's own ports are untyped control-flow branch
		// ports (offset = predicate variant index), not a dataflow
		// row; its dataflow shape is checked via its Input/Output
		// children instead. Connect already enforces offsets stay in
		// range, so there is nothing further to check here.
		return nil
	}

	outRow := op.OutputRow()
	_, numOut, _ := h.pg.NumPorts(n)
	for off := uint16(0); off < numOut; off++ {
		p := pgraph.PortID{Node: n, Offset: off, Dir: pgraph.Outgoing}
		peers := h.pg.LinkedPorts(p)
		if len(peers) == 0 {
			continue
		}
		if len(peers) > 1 && int(off) < outRow.Len() && !types.IsCopyable(outRow.Get(int(off))) {
			return fmt.Errorf("Validate: node %s port %d: %w", n, off, ErrLinearReused)
		}
		if int(off) >= outRow.Len() {
			continue // control/state-order port: no SimpleType to check
		}
		srcType := outRow.Get(int(off))
		for _, peer := range peers {
			if err := h.checkPeerType(peer, srcType); err != nil {
				return fmt.Errorf("Validate: node %s port %d: %w", n, off, err)
			}
		}
	}

	return nil
}

func (h *Hugr) checkPeerType(peer pgraph.PortID, srcType types.SimpleType) error {
	peerOp, ok := h.ops[peer.Node]
	if !ok {
		return fmt.Errorf("%w: peer %s", ErrNodeNotFound, peer.Node)
	}
	inRow := peerOp.InputRow()
	if int(peer.Offset) >= inRow.Len() {
		return nil // control/state-order port
	}
	dstType := inRow.Get(int(peer.Offset))
	if !srcType.Equal(dstType) {
		return fmt.Errorf("%s != %s: %w", srcType, dstType, ErrDanglingEdge)
	}

	return nil
}

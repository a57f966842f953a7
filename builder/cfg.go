package builder

import (
	"fmt"

	"github.com/hugr-ir/hugr/hugr"
	"github.com/hugr-ir/hugr/pgraph"
	"github.com/hugr-ir/hugr/types"
)

// CFGBuilder owns a CFG node with a pre-created Exit block and
// records whether the entry block has been built.
type CFGBuilder struct {
	h          *hugr.Hugr
	node       pgraph.NodeID
	sig        types.Signature
	exit       pgraph.NodeID
	entryBuilt bool
}

// ContainerNode implements Container.
func (c *CFGBuilder) ContainerNode() pgraph.NodeID { return c.node }

// Base implements Container.
func (c *CFGBuilder) Base() *hugr.Hugr { return c.h }

// ExitBlock returns the CFG's distinguished Exit child.
func (c *CFGBuilder) ExitBlock() pgraph.NodeID { return c.exit }

// blockBuilder is the shared constructor behind EntryBuilder and
// BlockBuilder: create a BasicBlock child of the given input row and
// predicate variants, then open its dataflow body.
func (c *CFGBuilder) blockBuilder(inRow types.Row, predicateVariants []types.Row, otherOutputs types.Row) (*BlockBuilder, error) {
	op := hugr.BasicBlockOp{
		Kind:              hugr.BlockNormal,
		InRow:             inRow,
		PredicateVariants: predicateVariants,
		OtherOutputs:      otherOutputs,
	}
	n, err := c.h.AddOp(c.node, op)
	if err != nil {
		return nil, fmt.Errorf("blockBuilder: %w", err)
	}
	db, err := newDataflowBase(c.h, n, op.InputRow(), op.OutputRow())
	if err != nil {
		return nil, fmt.Errorf("blockBuilder: %w", err)
	}

	return &BlockBuilder{dataflowBase: db, variants: predicateVariants, otherOutputs: otherOutputs}, nil
}

// EntryBuilder opens the CFG's entry block, whose input row is fixed
// to the CFG's own input row. Fails with hugr.ErrEntryAlreadyBuilt if
// called twice.
func (c *CFGBuilder) EntryBuilder(predicateVariants []types.Row, otherOutputs types.Row) (*BlockBuilder, error) {
	if c.entryBuilt {
		return nil, fmt.Errorf("EntryBuilder(%s): %w", c.node, hugr.ErrEntryAlreadyBuilt)
	}
	bb, err := c.blockBuilder(c.sig.Input, predicateVariants, otherOutputs)
	if err != nil {
		return nil, err
	}
	c.entryBuilt = true

	return bb, nil
}

// BlockBuilder opens a non-entry basic block with the given input row
// and predicate variants.
func (c *CFGBuilder) BlockBuilder(inputs types.Row, predicateVariants []types.Row, otherOutputs types.Row) (*BlockBuilder, error) {
	return c.blockBuilder(inputs, predicateVariants, otherOutputs)
}

// emptyVariants returns n empty-row variants, used by the Simple*
// specializations for CFGs whose blocks only need to select a
// successor without carrying any predicate payload.
func emptyVariants(n int) []types.Row {
	out := make([]types.Row, n)
	for i := range out {
		out[i] = types.EmptyRow()
	}

	return out
}

// SimpleEntryBuilder specializes EntryBuilder to nCases unit variants
// and no extra outputs.
func (c *CFGBuilder) SimpleEntryBuilder(nCases int) (*BlockBuilder, error) {
	return c.EntryBuilder(emptyVariants(nCases), types.EmptyRow())
}

// SimpleBlockBuilder specializes BlockBuilder to nCases unit variants
// and no extra outputs.
func (c *CFGBuilder) SimpleBlockBuilder(inputs types.Row, nCases int) (*BlockBuilder, error) {
	return c.BlockBuilder(inputs, emptyVariants(nCases), types.EmptyRow())
}

// Branch connects pred's branchIndex-th outgoing control port to a
// fresh incoming control port on succ, growing succ's incoming port
// count by one.
func (c *CFGBuilder) Branch(pred pgraph.NodeID, branchIndex int, succ pgraph.NodeID) error {
	in := c.h.NumInputs(succ)
	out := c.h.NumOutputs(succ)
	if err := c.h.SetNumPorts(succ, uint16(in+1), uint16(out)); err != nil {
		return fmt.Errorf("Branch(%s->%s): %w", pred, succ, err)
	}
	_, err := c.h.Connect(
		pgraph.PortID{Node: pred, Offset: uint16(branchIndex), Dir: pgraph.Outgoing},
		pgraph.PortID{Node: succ, Offset: uint16(in), Dir: pgraph.Incoming},
	)
	if err != nil {
		return fmt.Errorf("Branch(%s->%s): %w", pred, succ, err)
	}

	return nil
}

// BlockBuilder is a DFG-flavoured builder whose output row is a
// predicate (selecting the successor variant) followed by any other
// outputs.
type BlockBuilder struct {
	*dataflowBase
	variants     []types.Row
	otherOutputs types.Row
}

// FinishWithOutputs wires predicate as the block's first output and
// others as the remainder, then finalizes the block.
func (b *BlockBuilder) FinishWithOutputs(predicate Wire, others []Wire) (Handle, error) {
	want := hugr.PredicateType{Variants: b.variants}
	if !predicate.Type().Equal(want) {
		return Handle{}, fmt.Errorf("BlockBuilder.FinishWithOutputs: predicate %s != %s: %w", predicate.Type(), want, ErrWireTypeMismatch)
	}

	all := make([]Wire, 0, 1+len(others))
	all = append(all, predicate)
	all = append(all, others...)

	return b.dataflowBase.FinishWithOutputs(all)
}

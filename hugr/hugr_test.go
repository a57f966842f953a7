package hugr_test

import (
	"testing"

	"github.com/hugr-ir/hugr/extension"
	"github.com/hugr-ir/hugr/hugr"
	"github.com/hugr-ir/hugr/pgraph"
	"github.com/hugr-ir/hugr/types"
	"github.com/stretchr/testify/require"
)

// branch replicates the CFG builder's branch() primitive at the
// hugr.HugrMut level: connect pred's branchIndex-th outgoing control
// port to a freshly grown incoming port on succ.
func branch(t *testing.T, h *hugr.Hugr, pred pgraph.NodeID, branchIndex int, succ pgraph.NodeID) {
	t.Helper()

	in := h.NumInputs(succ)
	out := h.NumOutputs(succ)
	require.NoError(t, h.SetNumPorts(succ, uint16(in+1), uint16(out)))
	_, err := h.Connect(
		pgraph.PortID{Node: pred, Offset: uint16(branchIndex), Dir: pgraph.Outgoing},
		pgraph.PortID{Node: succ, Offset: uint16(in), Dir: pgraph.Incoming},
	)
	require.NoError(t, err)
}

func wireDataflow(t *testing.T, h *hugr.Hugr, src pgraph.NodeID, srcPort uint16, dst pgraph.NodeID, dstPort uint16) {
	t.Helper()

	_, err := h.Connect(
		pgraph.PortID{Node: src, Offset: srcPort, Dir: pgraph.Outgoing},
		pgraph.PortID{Node: dst, Offset: dstPort, Dir: pgraph.Incoming},
	)
	require.NoError(t, err)
}

// TestBasicCFG builds a two-block CFG inside main: NAT -> NAT
// directly against the HugrMut surface (the builder package exercises
// the same shape through its typed CFGBuilder).
func TestBasicCFG(t *testing.T) {
	t.Parallel()

	nat := types.NatType{}
	h := hugr.New()
	root := h.Root()

	funcSig := types.NewFunctionType(types.NewRow(nat), types.NewRow(nat))
	funcNode, err := h.AddOp(root, hugr.FuncDefnOp{Name: "main", Signature: funcSig})
	require.NoError(t, err)

	funcIn, err := h.AddOp(funcNode, hugr.InputOp{Row: funcSig.Input})
	require.NoError(t, err)
	funcOut, err := h.AddOp(funcNode, hugr.OutputOp{Row: funcSig.Output})
	require.NoError(t, err)

	cfgNode, err := h.AddOp(funcNode, hugr.CFGOp{Signature: funcSig})
	require.NoError(t, err)

	wireDataflow(t, h, funcIn, 0, cfgNode, 0)
	wireDataflow(t, h, cfgNode, 0, funcOut, 0)

	entryPred := hugr.PredicateType{Variants: []types.Row{types.NewRow(nat), types.NewRow(nat)}}
	entryOp := hugr.BasicBlockOp{
		Kind:              hugr.BlockNormal,
		InRow:             types.NewRow(nat),
		PredicateVariants: entryPred.Variants,
		OtherOutputs:      types.EmptyRow(),
	}
	entryNode, err := h.AddOp(cfgNode, entryOp)
	require.NoError(t, err)
	entryIn, err := h.AddOp(entryNode, hugr.InputOp{Row: entryOp.InputRow()})
	require.NoError(t, err)
	entryOut, err := h.AddOp(entryNode, hugr.OutputOp{Row: entryOp.OutputRow()})
	require.NoError(t, err)
	entrySplit, err := h.AddOp(entryNode, hugr.LeafOp{
		Name:      "split_parity",
		Signature: types.NewFunctionType(types.NewRow(nat), types.NewRow(entryPred)),
	})
	require.NoError(t, err)
	wireDataflow(t, h, entryIn, 0, entrySplit, 0)
	wireDataflow(t, h, entrySplit, 0, entryOut, 0)

	middlePred := hugr.PredicateType{Variants: []types.Row{types.EmptyRow()}}
	middleOp := hugr.BasicBlockOp{
		Kind:              hugr.BlockNormal,
		InRow:             types.NewRow(nat),
		PredicateVariants: middlePred.Variants,
		OtherOutputs:      types.NewRow(nat),
	}
	middleNode, err := h.AddOp(cfgNode, middleOp)
	require.NoError(t, err)
	middleIn, err := h.AddOp(middleNode, hugr.InputOp{Row: middleOp.InputRow()})
	require.NoError(t, err)
	middleOut, err := h.AddOp(middleNode, hugr.OutputOp{Row: middleOp.OutputRow()})
	require.NoError(t, err)
	middleLeaf, err := h.AddOp(middleNode, hugr.LeafOp{
		Name:      "to_exit",
		Signature: types.NewFunctionType(types.NewRow(nat), types.NewRow(middlePred).Append(nat)),
	})
	require.NoError(t, err)
	wireDataflow(t, h, middleIn, 0, middleLeaf, 0)
	wireDataflow(t, h, middleLeaf, 0, middleOut, 0)
	wireDataflow(t, h, middleLeaf, 1, middleOut, 1)

	exitNode, err := h.AddOp(cfgNode, hugr.BasicBlockOp{Kind: hugr.BlockExit})
	require.NoError(t, err)

	branch(t, h, entryNode, 0, middleNode)
	branch(t, h, middleNode, 0, exitNode)
	branch(t, h, entryNode, 1, exitNode)

	reg, err := extension.NewRegistry()
	require.NoError(t, err)

	require.NoError(t, hugr.Validate(h, reg))

	require.Len(t, h.Children(cfgNode), 3)
	require.Equal(t, 2, h.NumInputs(exitNode))
}

// TestBranchSignatureMismatchRejected wires an entry block whose unit
// predicate variant carries no value into an exit that expects the
// CFG's NAT output row: the branch row and the successor's input row
// disagree.
func TestBranchSignatureMismatchRejected(t *testing.T) {
	t.Parallel()

	nat := types.NatType{}
	h := hugr.New()

	funcSig := types.NewFunctionType(types.NewRow(nat), types.NewRow(nat))
	funcNode, err := h.AddOp(h.Root(), hugr.FuncDefnOp{Name: "main", Signature: funcSig})
	require.NoError(t, err)

	funcIn, err := h.AddOp(funcNode, hugr.InputOp{Row: funcSig.Input})
	require.NoError(t, err)
	funcOut, err := h.AddOp(funcNode, hugr.OutputOp{Row: funcSig.Output})
	require.NoError(t, err)

	cfgNode, err := h.AddOp(funcNode, hugr.CFGOp{Signature: funcSig})
	require.NoError(t, err)
	wireDataflow(t, h, funcIn, 0, cfgNode, 0)
	wireDataflow(t, h, cfgNode, 0, funcOut, 0)

	entryPred := hugr.PredicateType{Variants: []types.Row{types.EmptyRow()}}
	entryOp := hugr.BasicBlockOp{
		Kind:              hugr.BlockNormal,
		InRow:             types.NewRow(nat),
		PredicateVariants: entryPred.Variants,
		OtherOutputs:      types.EmptyRow(),
	}
	entryNode, err := h.AddOp(cfgNode, entryOp)
	require.NoError(t, err)
	entryIn, err := h.AddOp(entryNode, hugr.InputOp{Row: entryOp.InputRow()})
	require.NoError(t, err)
	entryOut, err := h.AddOp(entryNode, hugr.OutputOp{Row: entryOp.OutputRow()})
	require.NoError(t, err)
	drop, err := h.AddOp(entryNode, hugr.LeafOp{
		Name:      "drop_to_unit",
		Signature: types.NewFunctionType(types.NewRow(nat), types.NewRow(entryPred)),
	})
	require.NoError(t, err)
	wireDataflow(t, h, entryIn, 0, drop, 0)
	wireDataflow(t, h, drop, 0, entryOut, 0)

	exitNode, err := h.AddOp(cfgNode, hugr.BasicBlockOp{Kind: hugr.BlockExit})
	require.NoError(t, err)

	// The unit branch row [] disagrees with the exit's input row [Nat].
	branch(t, h, entryNode, 0, exitNode)

	reg, err := extension.NewRegistry()
	require.NoError(t, err)

	err = hugr.Validate(h, reg)
	require.ErrorIs(t, err, hugr.ErrBranchSignatureMismatch)
}

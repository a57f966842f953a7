package subgraph_test

import (
	"testing"

	"github.com/hugr-ir/hugr/extension"
	"github.com/hugr-ir/hugr/hugr"
	"github.com/hugr-ir/hugr/hugr/view"
	"github.com/hugr-ir/hugr/pgraph"
	"github.com/hugr-ir/hugr/subgraph"
	"github.com/hugr-ir/hugr/types"
	"github.com/stretchr/testify/require"
)

func wireDataflow(t *testing.T, h *hugr.Hugr, src pgraph.NodeID, srcPort uint16, dst pgraph.NodeID, dstPort uint16) {
	t.Helper()

	_, err := h.Connect(
		pgraph.PortID{Node: src, Offset: srcPort, Dir: pgraph.Outgoing},
		pgraph.PortID{Node: dst, Offset: dstPort, Dir: pgraph.Incoming},
	)
	require.NoError(t, err)
}

// buildChain constructs Module -> FuncDefn("f", nat->nat) -> Input ->
// double -> increment -> Output, a three-leaf-op dataflow chain, and
// returns the hugr plus the relevant node IDs.
func buildChain(t *testing.T) (h *hugr.Hugr, fn, in, double, increment, out pgraph.NodeID) {
	t.Helper()

	nat := types.NatType{}
	h = hugr.New()
	sig := types.NewFunctionType(types.NewRow(nat), types.NewRow(nat))

	var err error
	fn, err = h.AddOp(h.Root(), hugr.FuncDefnOp{Name: "f", Signature: sig})
	require.NoError(t, err)

	in, err = h.AddOp(fn, hugr.InputOp{Row: sig.Input})
	require.NoError(t, err)
	out, err = h.AddOp(fn, hugr.OutputOp{Row: sig.Output})
	require.NoError(t, err)

	unary := types.NewFunctionType(types.NewRow(nat), types.NewRow(nat))
	double, err = h.AddOp(fn, hugr.LeafOp{Name: "double", Signature: unary})
	require.NoError(t, err)
	increment, err = h.AddOp(fn, hugr.LeafOp{Name: "increment", Signature: unary})
	require.NoError(t, err)

	wireDataflow(t, h, in, 0, double, 0)
	wireDataflow(t, h, double, 0, increment, 0)
	wireDataflow(t, h, increment, 0, out, 0)

	return h, fn, in, double, increment, out
}

func TestFromDataflowParentSignature(t *testing.T) {
	t.Parallel()

	h, fn, _, _, _, _ := buildChain(t)
	v := view.Whole(h)

	sg, err := subgraph.FromDataflowParent(v, fn)
	require.NoError(t, err)
	require.Len(t, sg.Nodes(), 2)

	sig, err := sg.Signature(v)
	require.NoError(t, err)
	require.Equal(t, 1, sig.Input.Len())
	require.Equal(t, 1, sig.Output.Len())
	require.True(t, sig.Input.Get(0).Equal(types.NatType{}))
	require.True(t, sig.Output.Get(0).Equal(types.NatType{}))
}

func TestFromNodeSetSingleLeaf(t *testing.T) {
	t.Parallel()

	h, fn, _, double, _, _ := buildChain(t)
	v := view.Whole(h)

	sg, err := subgraph.FromNodeSet(v, []pgraph.NodeID{double}, nil)
	require.NoError(t, err)
	require.Equal(t, fn, sg.Parent())
	require.Equal(t, []pgraph.NodeID{double}, sg.Nodes())

	sig, err := sg.Signature(v)
	require.NoError(t, err)
	require.True(t, sig.Input.Get(0).Equal(types.NatType{}))
	require.True(t, sig.Output.Get(0).Equal(types.NatType{}))
}

// buildDiamond constructs Input -> double -> {left, right} -> combine
// -> Output, so that a node set skipping exactly one of left/right
// leaves the induced subgraph and re-enters it (non-convex).
func buildDiamond(t *testing.T) (h *hugr.Hugr, fn, double, left, right, combine pgraph.NodeID) {
	t.Helper()

	nat := types.NatType{}
	h = hugr.New()
	sig := types.NewFunctionType(types.NewRow(nat), types.NewRow(nat))

	var err error
	fn, err = h.AddOp(h.Root(), hugr.FuncDefnOp{Name: "diamond", Signature: sig})
	require.NoError(t, err)

	in, err := h.AddOp(fn, hugr.InputOp{Row: sig.Input})
	require.NoError(t, err)
	out, err := h.AddOp(fn, hugr.OutputOp{Row: sig.Output})
	require.NoError(t, err)

	unary := types.NewFunctionType(types.NewRow(nat), types.NewRow(nat))
	binary := types.NewFunctionType(types.NewRow(nat, nat), types.NewRow(nat))

	double, err = h.AddOp(fn, hugr.LeafOp{Name: "double", Signature: unary})
	require.NoError(t, err)
	left, err = h.AddOp(fn, hugr.LeafOp{Name: "left", Signature: unary})
	require.NoError(t, err)
	right, err = h.AddOp(fn, hugr.LeafOp{Name: "right", Signature: unary})
	require.NoError(t, err)
	combine, err = h.AddOp(fn, hugr.LeafOp{Name: "combine", Signature: binary})
	require.NoError(t, err)

	wireDataflow(t, h, in, 0, double, 0)
	wireDataflow(t, h, double, 0, left, 0)
	wireDataflow(t, h, double, 0, right, 0)
	wireDataflow(t, h, left, 0, combine, 0)
	wireDataflow(t, h, right, 0, combine, 1)
	wireDataflow(t, h, combine, 0, out, 0)

	return h, fn, double, left, right, combine
}

func TestNonConvexNodeSetRejected(t *testing.T) {
	t.Parallel()

	h, _, double, _, _, combine := buildDiamond(t)
	v := view.Whole(h)

	// {double, combine} skips both left and right: any path from double
	// to combine necessarily passes outside the set, so it is non-convex.
	_, err := subgraph.FromNodeSet(v, []pgraph.NodeID{double, combine}, nil)
	require.ErrorIs(t, err, subgraph.ErrNonConvex)
}

func TestEmptyNodeSetRejected(t *testing.T) {
	t.Parallel()

	h, _, _, _, _, _ := buildChain(t)
	v := view.Whole(h)

	_, err := subgraph.FromNodeSet(v, nil, nil)
	require.ErrorIs(t, err, subgraph.ErrEmptySubgraph)
}

// buildSquareReplacement builds a standalone one-op DFG "square" with
// signature nat->nat, to replace the double+increment chain.
func buildSquareReplacement(t *testing.T) (repl *hugr.Hugr, dfg pgraph.NodeID) {
	t.Helper()

	nat := types.NatType{}
	repl = hugr.New()
	sig := types.NewFunctionType(types.NewRow(nat), types.NewRow(nat))

	var err error
	dfg, err = repl.AddOp(repl.Root(), hugr.DFGOp{Signature: sig})
	require.NoError(t, err)

	in, err := repl.AddOp(dfg, hugr.InputOp{Row: sig.Input})
	require.NoError(t, err)
	out, err := repl.AddOp(dfg, hugr.OutputOp{Row: sig.Output})
	require.NoError(t, err)
	square, err := repl.AddOp(dfg, hugr.LeafOp{Name: "square", Signature: sig})
	require.NoError(t, err)

	wireDataflow(t, repl, in, 0, square, 0)
	wireDataflow(t, repl, square, 0, out, 0)

	return repl, dfg
}

func TestSimpleReplacementApply(t *testing.T) {
	t.Parallel()

	h, fn, in, double, increment, out := buildChain(t)
	v := view.Whole(h)

	sg, err := subgraph.New(
		v,
		[]pgraph.NodeID{double, increment},
		[]subgraph.IncomingPorts{{pgraph.PortID{Node: double, Offset: 0, Dir: pgraph.Incoming}}},
		[]pgraph.PortID{{Node: increment, Offset: 0, Dir: pgraph.Outgoing}},
		nil,
	)
	require.NoError(t, err)
	require.Equal(t, fn, sg.Parent())

	repl, dfg := buildSquareReplacement(t)
	sr, err := subgraph.NewSimpleReplacement(v, sg, repl, dfg)
	require.NoError(t, err)

	require.NoError(t, sr.Apply(h))

	kids := h.Children(fn)
	require.Len(t, kids, 3) // Input, Output, square

	var square pgraph.NodeID
	for _, k := range kids {
		op, err := h.GetOpType(k)
		require.NoError(t, err)
		if leaf, ok := op.(hugr.LeafOp); ok && leaf.Name == "square" {
			square = k
		}
	}
	require.NotEmpty(t, square)

	peers := h.LinkedPorts(pgraph.PortID{Node: in, Offset: 0, Dir: pgraph.Outgoing})
	require.Len(t, peers, 1)
	require.Equal(t, square, peers[0].Node)

	peers = h.LinkedPorts(pgraph.PortID{Node: out, Offset: 0, Dir: pgraph.Incoming})
	require.Len(t, peers, 1)
	require.Equal(t, square, peers[0].Node)
}

func TestSimpleReplacementSignatureMismatchRejected(t *testing.T) {
	t.Parallel()

	h, fn, _, double, increment, _ := buildChain(t)
	v := view.Whole(h)

	sg, err := subgraph.FromNodeSet(v, []pgraph.NodeID{double, increment}, nil)
	require.NoError(t, err)
	require.Equal(t, fn, sg.Parent())

	nat := types.NatType{}
	repl := hugr.New()
	badSig := types.NewFunctionType(types.NewRow(nat, nat), types.NewRow(nat))
	dfg, err := repl.AddOp(repl.Root(), hugr.DFGOp{Signature: badSig})
	require.NoError(t, err)
	_, err = repl.AddOp(dfg, hugr.InputOp{Row: badSig.Input})
	require.NoError(t, err)
	_, err = repl.AddOp(dfg, hugr.OutputOp{Row: badSig.Output})
	require.NoError(t, err)

	_, err = subgraph.NewSimpleReplacement(v, sg, repl, dfg)
	require.ErrorIs(t, err, subgraph.ErrInvalidSignature)
}

// buildCXFunction constructs Module -> FuncDefn("bell", (QB,QB)->(QB,QB))
// -> Input -> cx -> Output, the smallest linear-typed dataflow body.
func buildCXFunction(t *testing.T) (h *hugr.Hugr, fn, in, cx, out pgraph.NodeID) {
	t.Helper()

	qb := types.QubitType{}
	h = hugr.New()
	sig := types.NewFunctionType(types.NewRow(qb, qb), types.NewRow(qb, qb))

	var err error
	fn, err = h.AddOp(h.Root(), hugr.FuncDefnOp{Name: "bell", Signature: sig})
	require.NoError(t, err)

	in, err = h.AddOp(fn, hugr.InputOp{Row: sig.Input})
	require.NoError(t, err)
	out, err = h.AddOp(fn, hugr.OutputOp{Row: sig.Output})
	require.NoError(t, err)
	cx, err = h.AddOp(fn, hugr.LeafOp{Name: "cx", Signature: sig})
	require.NoError(t, err)

	wireDataflow(t, h, in, 0, cx, 0)
	wireDataflow(t, h, in, 1, cx, 1)
	wireDataflow(t, h, cx, 0, out, 0)
	wireDataflow(t, h, cx, 1, out, 1)

	return h, fn, in, cx, out
}

func TestExtractSingleCX(t *testing.T) {
	t.Parallel()

	h, fn, _, cx, _ := buildCXFunction(t)
	v := view.Whole(h)

	sg, err := subgraph.FromDataflowParent(v, fn)
	require.NoError(t, err)
	require.Equal(t, []pgraph.NodeID{cx}, sg.Nodes())

	qb := types.QubitType{}
	sig, err := sg.Signature(v)
	require.NoError(t, err)
	require.True(t, sig.Equal(types.NewFunctionType(types.NewRow(qb, qb), types.NewRow(qb, qb))))
}

// TestEmptyDFGReplacement replaces the single cx with an identity DFG
// whose Input is wired straight to its Output: the node count drops by
// one, validation still succeeds, and the function signature is
// unchanged.
func TestEmptyDFGReplacement(t *testing.T) {
	t.Parallel()

	h, fn, in, _, out := buildCXFunction(t)
	v := view.Whole(h)

	sg, err := subgraph.FromDataflowParent(v, fn)
	require.NoError(t, err)

	qb := types.QubitType{}
	sig := types.NewFunctionType(types.NewRow(qb, qb), types.NewRow(qb, qb))

	repl := hugr.New()
	dfg, err := repl.AddOp(repl.Root(), hugr.DFGOp{Signature: sig})
	require.NoError(t, err)
	rin, err := repl.AddOp(dfg, hugr.InputOp{Row: sig.Input})
	require.NoError(t, err)
	rout, err := repl.AddOp(dfg, hugr.OutputOp{Row: sig.Output})
	require.NoError(t, err)
	wireDataflow(t, repl, rin, 0, rout, 0)
	wireDataflow(t, repl, rin, 1, rout, 1)

	sr, err := subgraph.NewSimpleReplacement(v, sg, repl, dfg)
	require.NoError(t, err)
	require.NoError(t, sr.Apply(h))

	require.Len(t, h.Children(fn), 2) // Input, Output only

	reg, err := extension.NewRegistry()
	require.NoError(t, err)
	require.NoError(t, hugr.Validate(h, reg))

	op, err := h.GetOpType(fn)
	require.NoError(t, err)
	require.True(t, op.(hugr.FuncDefnOp).Signature.Equal(sig))

	for off := uint16(0); off < 2; off++ {
		peers := h.LinkedPorts(pgraph.PortID{Node: in, Offset: off, Dir: pgraph.Outgoing})
		require.Len(t, peers, 1)
		require.Equal(t, out, peers[0].Node)
		require.Equal(t, off, peers[0].Offset)
	}
}

// TestCrossedBoundaryRejected supplies a boundary whose incoming set is
// the second gate's input and whose outgoing set is the first gate's
// output: the cut edge leaves the subgraph and immediately re-enters
// it.
func TestCrossedBoundaryRejected(t *testing.T) {
	t.Parallel()

	qb := types.QubitType{}
	h := hugr.New()
	sig := types.NewFunctionType(types.NewRow(qb), types.NewRow(qb))

	fn, err := h.AddOp(h.Root(), hugr.FuncDefnOp{Name: "chain", Signature: sig})
	require.NoError(t, err)
	in, err := h.AddOp(fn, hugr.InputOp{Row: sig.Input})
	require.NoError(t, err)
	out, err := h.AddOp(fn, hugr.OutputOp{Row: sig.Output})
	require.NoError(t, err)
	g1, err := h.AddOp(fn, hugr.LeafOp{Name: "h", Signature: sig})
	require.NoError(t, err)
	g2, err := h.AddOp(fn, hugr.LeafOp{Name: "t", Signature: sig})
	require.NoError(t, err)

	wireDataflow(t, h, in, 0, g1, 0)
	wireDataflow(t, h, g1, 0, g2, 0)
	wireDataflow(t, h, g2, 0, out, 0)

	v := view.Whole(h)
	_, err = subgraph.New(
		v,
		[]pgraph.NodeID{g1, g2},
		[]subgraph.IncomingPorts{{pgraph.PortID{Node: g2, Offset: 0, Dir: pgraph.Incoming}}},
		[]pgraph.PortID{{Node: g1, Offset: 0, Dir: pgraph.Outgoing}},
		nil,
	)
	require.ErrorIs(t, err, subgraph.ErrNonConvex)
}

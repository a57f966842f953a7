package hugr_test

import (
	"encoding/json"
	"testing"

	"github.com/hugr-ir/hugr/extension"
	"github.com/hugr-ir/hugr/extension/logicext"
	"github.com/hugr-ir/hugr/hugr"
	"github.com/hugr-ir/hugr/pgraph"
	"github.com/hugr-ir/hugr/types"
	"github.com/hugr-ir/hugr/types/constcheck"
	"github.com/stretchr/testify/require"
)

// TestHugrJSONRoundTrip builds a small HUGR holding a FuncDefn with a
// Const, an ExtensionOp and a LeafOp, and checks that Validate still
// accepts it after a JSON round trip, that the root and FuncDefn ops
// and the child counts are preserved, and that a second round trip
// still validates.
func TestHugrJSONRoundTrip(t *testing.T) {
	t.Parallel()

	logic, err := logicext.New()
	require.NoError(t, err)
	reg, err := extension.NewRegistry(logic)
	require.NoError(t, err)

	nat := types.NatType{}
	h := hugr.New()
	root := h.Root()

	funcSig := types.NewFunctionType(types.NewRow(nat), types.NewRow(logicext.BoolType()))
	funcNode, err := h.AddOp(root, hugr.FuncDefnOp{Name: "classify", Signature: funcSig})
	require.NoError(t, err)

	funcIn, err := h.AddOp(funcNode, hugr.InputOp{Row: funcSig.Input})
	require.NoError(t, err)
	funcOut, err := h.AddOp(funcNode, hugr.OutputOp{Row: funcSig.Output})
	require.NoError(t, err)

	constNode, err := h.AddOp(funcNode, hugr.ConstOp{
		Value: constcheck.ConstInt{Value: 1, Width: 64},
		Type:  types.IntType{Width: 64},
	})
	require.NoError(t, err)
	_ = constNode

	notOp, err := extension.Instantiate(reg, logicext.ID, "not", nil)
	require.NoError(t, err)
	notNode, err := h.AddOp(funcNode, hugr.ExtensionOpType{Op: notOp})
	require.NoError(t, err)

	boolConstNode, err := h.AddOp(funcNode, hugr.LeafOp{
		Name:      "make_bool",
		Signature: types.NewFunctionType(types.NewRow(nat), types.NewRow(logicext.BoolType())),
	})
	require.NoError(t, err)

	connect := func(src pgraph.NodeID, srcPort uint16, dst pgraph.NodeID, dstPort uint16) {
		t.Helper()
		_, err := h.Connect(
			pgraph.PortID{Node: src, Offset: srcPort, Dir: pgraph.Outgoing},
			pgraph.PortID{Node: dst, Offset: dstPort, Dir: pgraph.Incoming},
		)
		require.NoError(t, err)
	}

	connect(funcIn, 0, boolConstNode, 0)
	connect(boolConstNode, 0, notNode, 0)
	connect(notNode, 0, funcOut, 0)

	require.NoError(t, hugr.Validate(h, reg))

	data, err := json.Marshal(h)
	require.NoError(t, err)

	var h2 hugr.Hugr
	require.NoError(t, json.Unmarshal(data, &h2))

	require.NoError(t, hugr.Validate(&h2, reg))

	root2 := h2.Root()
	rootOp, err := h.GetOpType(root)
	require.NoError(t, err)
	root2Op, err := h2.GetOpType(root2)
	require.NoError(t, err)
	require.Equal(t, rootOp, root2Op)

	require.Len(t, h2.Children(root2), 1)
	funcNode2 := h2.Children(root2)[0]
	funcOp2, err := h2.GetOpType(funcNode2)
	require.NoError(t, err)
	require.Equal(t, hugr.FuncDefnOp{Name: "classify", Signature: funcSig}, funcOp2)
	require.Len(t, h2.Children(funcNode2), 5)

	data2, err := json.Marshal(&h2)
	require.NoError(t, err)

	var h3 hugr.Hugr
	require.NoError(t, json.Unmarshal(data2, &h3))
	require.NoError(t, hugr.Validate(&h3, reg))
	require.Len(t, h3.Children(h3.Root()), 1)
}

package builder

import (
	"fmt"

	"github.com/hugr-ir/hugr/hugr"
	"github.com/hugr-ir/hugr/pgraph"
	"github.com/hugr-ir/hugr/types"
	"github.com/hugr-ir/hugr/types/constcheck"
)

// Wire is a typed handle carrying (node, port offset, type).
// Connecting a wire checks type equality and copyability. A Wire is a
// plain value; consumption tracking for non-copyable wires lives in
// the dataflowBase that produced it.
type Wire struct {
	node pgraph.NodeID
	port uint16
	typ  types.SimpleType
}

// Node returns the wire's producing node.
func (w Wire) Node() pgraph.NodeID { return w.node }

// Port returns the wire's outgoing port offset on its producing node.
func (w Wire) Port() uint16 { return w.port }

// Type returns the value type flowing over the wire.
func (w Wire) Type() types.SimpleType { return w.typ }

func (w Wire) portID() pgraph.PortID {
	return pgraph.PortID{Node: w.node, Offset: w.port, Dir: pgraph.Outgoing}
}

func outputWires(node pgraph.NodeID, row types.Row) []Wire {
	out := make([]Wire, row.Len())
	for i := range out {
		out[i] = Wire{node: node, port: uint16(i), typ: row.Get(i)}
	}

	return out
}

// Handle is the typed result of finishing a builder: the node it
// produced together with its external signature, ready for downstream
// wiring.
type Handle struct {
	Node      pgraph.NodeID
	Signature types.Signature
}

// Container is the capability every builder in this package exposes:
// its own hierarchy node and the mutable HUGR it is building into.
type Container interface {
	ContainerNode() pgraph.NodeID
	Base() *hugr.Hugr
}

// dataflowBase implements the Dataflow capability shared by
// FunctionBuilder, DFGBuilder, and BlockBuilder: a dataflow
// region with its Input/Output pair already created, ready to accept
// wired children.
type dataflowBase struct {
	h      *hugr.Hugr
	node   pgraph.NodeID
	input  pgraph.NodeID
	output pgraph.NodeID

	inputRow  types.Row
	outputRow types.Row

	// consumed tracks non-copyable (node,port) pairs already wired
	// into a consumer, so a second use is a build error rather than a
	// silently duplicated link.
	consumed map[pgraph.PortID]bool
}

// newDataflowBase creates node's Input and Output children before any
// other child exists, so the first-two-children rule for dataflow
// parents holds by construction.
func newDataflowBase(h *hugr.Hugr, node pgraph.NodeID, inputRow, outputRow types.Row) (*dataflowBase, error) {
	in, err := h.AddOp(node, hugr.InputOp{Row: inputRow})
	if err != nil {
		return nil, fmt.Errorf("newDataflowBase(%s): %w", node, err)
	}
	out, err := h.AddOp(node, hugr.OutputOp{Row: outputRow})
	if err != nil {
		return nil, fmt.Errorf("newDataflowBase(%s): %w", node, err)
	}

	return &dataflowBase{
		h:         h,
		node:      node,
		input:     in,
		output:    out,
		inputRow:  inputRow,
		outputRow: outputRow,
		consumed:  make(map[pgraph.PortID]bool),
	}, nil
}

// ContainerNode implements Container.
func (db *dataflowBase) ContainerNode() pgraph.NodeID { return db.node }

// Base implements Container.
func (db *dataflowBase) Base() *hugr.Hugr { return db.h }

// InputWires returns the ordered wires produced by the region's Input
// node, one per element of its input row.
func (db *dataflowBase) InputWires() []Wire {
	return outputWires(db.input, db.inputRow)
}

// consume marks w used, failing if w is non-copyable and was already
// used once.
func (db *dataflowBase) consume(w Wire) error {
	if types.IsCopyable(w.typ) {
		return nil
	}
	if db.consumed[w.portID()] {
		return fmt.Errorf("consume(%s port %d): %w", w.node, w.port, ErrWireAlreadyConsumed)
	}
	db.consumed[w.portID()] = true

	return nil
}

// addChild creates op as a new child of the region, wiring inputs to
// its incoming ports in order. inputs must match op.InputRow() in
// count and element type.
func (db *dataflowBase) addChild(op hugr.OpType, inputs []Wire) (pgraph.NodeID, error) {
	want := op.InputRow()
	if len(inputs) != want.Len() {
		return "", fmt.Errorf("addChild(%s): got %d wires, want %d: %w", op.Tag(), len(inputs), want.Len(), ErrWireCountMismatch)
	}

	n, err := db.h.AddOp(db.node, op)
	if err != nil {
		return "", fmt.Errorf("addChild(%s): %w", op.Tag(), err)
	}

	for i, w := range inputs {
		wantType := want.Get(i)
		if !w.typ.Equal(wantType) {
			return "", fmt.Errorf("addChild(%s): input %d: %s != %s: %w", op.Tag(), i, w.typ, wantType, ErrWireTypeMismatch)
		}
		if err := db.consume(w); err != nil {
			return "", fmt.Errorf("addChild(%s): input %d: %w", op.Tag(), i, err)
		}
		if _, err := db.h.Connect(w.portID(), pgraph.PortID{Node: n, Offset: uint16(i), Dir: pgraph.Incoming}); err != nil {
			return "", fmt.Errorf("addChild(%s): input %d: %w", op.Tag(), i, err)
		}
	}

	return n, nil
}

// AddDataflowOp adds op wired from inputs and returns wires for its
// outputs.
func (db *dataflowBase) AddDataflowOp(op hugr.OpType, inputs []Wire) ([]Wire, error) {
	n, err := db.addChild(op, inputs)
	if err != nil {
		return nil, err
	}

	return outputWires(n, op.OutputRow()), nil
}

// LoadConst adds a Const node holding value (checked against typ) and
// returns the wire carrying it.
func (db *dataflowBase) LoadConst(value constcheck.Const, typ types.SimpleType) (Wire, error) {
	if err := constcheck.TypeCheck(typ, value); err != nil {
		return Wire{}, fmt.Errorf("LoadConst: %w", err)
	}
	n, err := db.h.AddOp(db.node, hugr.ConstOp{Value: value, Type: typ})
	if err != nil {
		return Wire{}, fmt.Errorf("LoadConst: %w", err)
	}

	return Wire{node: n, port: 0, typ: typ}, nil
}

// MakePredicate builds a sum value selecting variant tag from wires,
// which must match variants[tag] in count and type.
func (db *dataflowBase) MakePredicate(tag int, variants []types.Row, wires []Wire) (Wire, error) {
	if tag < 0 || tag >= len(variants) {
		return Wire{}, fmt.Errorf("MakePredicate: tag %d of %d variants: %w", tag, len(variants), ErrBadPredicateTag)
	}
	variant := variants[tag]
	predType := hugr.PredicateType{Variants: variants}
	op := hugr.LeafOp{
		Name:      fmt.Sprintf("MakePredicate#%d", tag),
		Signature: types.NewFunctionType(variant, types.NewRow(predType)),
	}
	n, err := db.addChild(op, wires)
	if err != nil {
		return Wire{}, fmt.Errorf("MakePredicate: %w", err)
	}

	return Wire{node: n, port: 0, typ: predType}, nil
}

// SetOutputs wires wires to the region's Output node, in order. wires
// must match the region's output row in count and element type.
func (db *dataflowBase) SetOutputs(wires []Wire) error {
	if len(wires) != db.outputRow.Len() {
		return fmt.Errorf("SetOutputs(%s): got %d wires, want %d: %w", db.node, len(wires), db.outputRow.Len(), ErrWireCountMismatch)
	}
	for i, w := range wires {
		want := db.outputRow.Get(i)
		if !w.typ.Equal(want) {
			return fmt.Errorf("SetOutputs(%s): output %d: %s != %s: %w", db.node, i, w.typ, want, ErrWireTypeMismatch)
		}
		if err := db.consume(w); err != nil {
			return fmt.Errorf("SetOutputs(%s): output %d: %w", db.node, i, err)
		}
		if _, err := db.h.Connect(w.portID(), pgraph.PortID{Node: db.output, Offset: uint16(i), Dir: pgraph.Incoming}); err != nil {
			return fmt.Errorf("SetOutputs(%s): output %d: %w", db.node, i, err)
		}
	}

	return nil
}

// FinishWithOutputs wires wires as the region's outputs and returns a
// Handle to the finished node.
func (db *dataflowBase) FinishWithOutputs(wires []Wire) (Handle, error) {
	if err := db.SetOutputs(wires); err != nil {
		return Handle{}, err
	}

	return Handle{Node: db.node, Signature: types.NewFunctionType(db.inputRow, db.outputRow)}, nil
}

// AddDFG nests a DFG region wired from inputs, returning its builder
// plus the wires available at the DFG node's own outer output ports.
// The outer ports and the nested Output child's ports are identified
// by construction (both are fixed to sig's rows) rather than linked,
// matching hugr.Validate's dataflow-parent check.
func (db *dataflowBase) AddDFG(sig types.Signature, inputs []Wire) (*DFGBuilder, []Wire, error) {
	n, err := db.addChild(hugr.DFGOp{Signature: sig}, inputs)
	if err != nil {
		return nil, nil, fmt.Errorf("AddDFG: %w", err)
	}
	inner, err := newDataflowBase(db.h, n, sig.Input, sig.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("AddDFG: %w", err)
	}

	return &DFGBuilder{dataflowBase: inner}, outputWires(n, sig.Output), nil
}

// AddCFG nests a CFG region wired from inputs, pre-creating its Exit
// block, and returns its builder plus the wires available at the CFG
// node's own outer output ports.
func (db *dataflowBase) AddCFG(sig types.Signature, inputs []Wire) (*CFGBuilder, []Wire, error) {
	n, err := db.addChild(hugr.CFGOp{Signature: sig}, inputs)
	if err != nil {
		return nil, nil, fmt.Errorf("AddCFG: %w", err)
	}
	exit, err := db.h.AddOp(n, hugr.BasicBlockOp{Kind: hugr.BlockExit})
	if err != nil {
		return nil, nil, fmt.Errorf("AddCFG: %w", err)
	}

	return &CFGBuilder{h: db.h, node: n, sig: sig, exit: exit}, outputWires(n, sig.Output), nil
}

package hugr

import (
	"encoding/json"
	"fmt"

	"github.com/hugr-ir/hugr/extension"
	"github.com/hugr-ir/hugr/pgraph"
	"github.com/hugr-ir/hugr/types"
	"github.com/hugr-ir/hugr/types/constcheck"
)

// opWire is the on-the-wire shape of an OpType: a kind discriminant
// plus whichever fields that variant carries.
type opWire struct {
	Kind string `json:"kind"`

	Name              *string                `json:"name,omitempty"`
	Signature         *types.Signature        `json:"signature,omitempty"`
	Value             json.RawMessage         `json:"value,omitempty"`
	Type              json.RawMessage         `json:"type,omitempty"`
	BlockKind         *BlockKind              `json:"blockKind,omitempty"`
	InRow             *types.Row              `json:"inRow,omitempty"`
	PredicateVariants []types.Row             `json:"predicateVariants,omitempty"`
	OtherOutputs      *types.Row              `json:"otherOutputs,omitempty"`
	Row               *types.Row              `json:"row,omitempty"`
	ExtOp             *extension.ExtensionOp  `json:"extOp,omitempty"`
}

func encodeOp(op OpType) (opWire, error) {
	switch v := op.(type) {
	case ModuleOp:
		return opWire{Kind: "module"}, nil
	case FuncDefnOp:
		sig := v.Signature
		return opWire{Kind: "funcDefn", Name: &v.Name, Signature: &sig}, nil
	case FuncDeclOp:
		sig := v.Signature
		return opWire{Kind: "funcDecl", Name: &v.Name, Signature: &sig}, nil
	case ConstOp:
		valRaw, err := constcheck.MarshalConst(v.Value)
		if err != nil {
			return opWire{}, fmt.Errorf("encodeOp: const value: %w", err)
		}
		typeRaw, err := types.MarshalType(v.Type)
		if err != nil {
			return opWire{}, fmt.Errorf("encodeOp: const type: %w", err)
		}

		return opWire{Kind: "const", Value: valRaw, Type: typeRaw}, nil
	case BasicBlockOp:
		kind := v.Kind
		inRow := v.InRow
		otherOutputs := v.OtherOutputs

		return opWire{
			Kind:              "basicBlock",
			BlockKind:         &kind,
			InRow:             &inRow,
			PredicateVariants: v.PredicateVariants,
			OtherOutputs:      &otherOutputs,
		}, nil
	case DFGOp:
		sig := v.Signature
		return opWire{Kind: "dfg", Signature: &sig}, nil
	case CFGOp:
		sig := v.Signature
		return opWire{Kind: "cfg", Signature: &sig}, nil
	case ConditionalOp:
		sig := v.Signature
		return opWire{Kind: "conditional", Signature: &sig}, nil
	case CaseOp:
		sig := v.Signature
		return opWire{Kind: "case", Signature: &sig}, nil
	case TailLoopOp:
		sig := v.Signature
		return opWire{Kind: "tailLoop", Signature: &sig}, nil
	case InputOp:
		row := v.Row
		return opWire{Kind: "input", Row: &row}, nil
	case OutputOp:
		row := v.Row
		return opWire{Kind: "output", Row: &row}, nil
	case LeafOp:
		sig := v.Signature
		return opWire{Kind: "leaf", Name: &v.Name, Signature: &sig}, nil
	case ExtensionOpType:
		return opWire{Kind: "extensionOp", ExtOp: v.Op}, nil
	default:
		return opWire{}, fmt.Errorf("encodeOp: unhandled OpType %T", op)
	}
}

func decodeOp(w opWire) (OpType, error) {
	switch w.Kind {
	case "module":
		return ModuleOp{}, nil
	case "funcDefn":
		return FuncDefnOp{Name: *w.Name, Signature: *w.Signature}, nil
	case "funcDecl":
		return FuncDeclOp{Name: *w.Name, Signature: *w.Signature}, nil
	case "const":
		val, err := constcheck.UnmarshalConst(w.Value)
		if err != nil {
			return nil, fmt.Errorf("decodeOp: const value: %w", err)
		}
		t, err := types.UnmarshalType(w.Type)
		if err != nil {
			return nil, fmt.Errorf("decodeOp: const type: %w", err)
		}

		return ConstOp{Value: val, Type: t}, nil
	case "basicBlock":
		return BasicBlockOp{
			Kind:              *w.BlockKind,
			InRow:             *w.InRow,
			PredicateVariants: w.PredicateVariants,
			OtherOutputs:      *w.OtherOutputs,
		}, nil
	case "dfg":
		return DFGOp{Signature: *w.Signature}, nil
	case "cfg":
		return CFGOp{Signature: *w.Signature}, nil
	case "conditional":
		return ConditionalOp{Signature: *w.Signature}, nil
	case "case":
		return CaseOp{Signature: *w.Signature}, nil
	case "tailLoop":
		return TailLoopOp{Signature: *w.Signature}, nil
	case "input":
		return InputOp{Row: *w.Row}, nil
	case "output":
		return OutputOp{Row: *w.Row}, nil
	case "leaf":
		return LeafOp{Name: *w.Name, Signature: *w.Signature}, nil
	case "extensionOp":
		return ExtensionOpType{Op: w.ExtOp}, nil
	default:
		return nil, fmt.Errorf("decodeOp(%q): %w", w.Kind, ErrUnknownOpKind)
	}
}

// nodeWire is the on-the-wire shape of one hierarchy node: its
// serialized id (remapped to a fresh pgraph.NodeID on decode, since
// NodeID is a process-unique handle rather than a stable wire value),
// current port counts (which for a BasicBlockOp can differ from what
// its OpType alone would derive, after branch() growth), its OpType,
// its parent, and its ordered children.
type nodeWire struct {
	ID        pgraph.NodeID   `json:"id"`
	NumIn     uint16          `json:"numIn"`
	NumOut    uint16          `json:"numOut"`
	Op        opWire          `json:"op"`
	Parent    pgraph.NodeID   `json:"parent,omitempty"`
	HasParent bool            `json:"hasParent"`
	Children  []pgraph.NodeID `json:"children"`
}

type linkWire struct {
	SrcNode   pgraph.NodeID `json:"srcNode"`
	SrcOffset uint16        `json:"srcOffset"`
	DstNode   pgraph.NodeID `json:"dstNode"`
	DstOffset uint16        `json:"dstOffset"`
}

type hugrWire struct {
	Root  pgraph.NodeID `json:"root"`
	Nodes []nodeWire    `json:"nodes"`
	Links []linkWire    `json:"links"`
}

// MarshalJSON implements json.Marshaler for Hugr. The serialized form
// is self-describing: the portgraph adjacency (nodes, port counts,
// links), the per-node OpType, constant values by value, and extension
// ids referenced by ExtensionOps — all reachable from the hierarchy and
// link tables without a registry.
func (h *Hugr) MarshalJSON() ([]byte, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	ids := h.pg.Nodes()
	nodes := make([]nodeWire, 0, len(ids))
	for _, id := range ids {
		op, ok := h.ops[id]
		if !ok {
			return nil, fmt.Errorf("Hugr.MarshalJSON: node %s: %w", id, ErrNodeNotFound)
		}
		ow, err := encodeOp(op)
		if err != nil {
			return nil, fmt.Errorf("Hugr.MarshalJSON: node %s: %w", id, err)
		}
		numIn, numOut, err := h.pg.NumPorts(id)
		if err != nil {
			return nil, fmt.Errorf("Hugr.MarshalJSON: node %s: %w", id, err)
		}
		parent, hasParent := h.par[id]
		children := append([]pgraph.NodeID(nil), h.kids[id]...)

		nodes = append(nodes, nodeWire{
			ID:        id,
			NumIn:     numIn,
			NumOut:    numOut,
			Op:        ow,
			Parent:    parent,
			HasParent: hasParent,
			Children:  children,
		})
	}

	pgLinks := h.pg.Links()
	links := make([]linkWire, len(pgLinks))
	for i, l := range pgLinks {
		links[i] = linkWire{
			SrcNode:   l.Src.Node,
			SrcOffset: l.Src.Offset,
			DstNode:   l.Dst.Node,
			DstOffset: l.Dst.Offset,
		}
	}

	return json.Marshal(hugrWire{Root: h.root, Nodes: nodes, Links: links})
}

// UnmarshalJSON implements json.Unmarshaler for Hugr, rebuilding an
// equivalent portgraph/hierarchy from a MarshalJSON payload. Node
// identifiers are freshly minted (NodeID is a process-unique handle,
// not a wire-stable value), but the graph's topology,
// hierarchy, port counts, and every OpType are restored exactly, so
// the canonical in-memory form round-trips.
func (h *Hugr) UnmarshalJSON(data []byte) error {
	var w hugrWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("Hugr.UnmarshalJSON: %w", err)
	}

	pg := pgraph.NewGraph()
	remap := make(map[pgraph.NodeID]pgraph.NodeID, len(w.Nodes))
	for _, nw := range w.Nodes {
		remap[nw.ID] = pg.AddNode(nw.NumIn, nw.NumOut)
	}

	ops := make(map[pgraph.NodeID]OpType, len(w.Nodes))
	par := make(map[pgraph.NodeID]pgraph.NodeID, len(w.Nodes))
	kids := make(map[pgraph.NodeID][]pgraph.NodeID, len(w.Nodes))
	for _, nw := range w.Nodes {
		op, err := decodeOp(nw.Op)
		if err != nil {
			return fmt.Errorf("Hugr.UnmarshalJSON: node %s: %w", nw.ID, err)
		}
		newID := remap[nw.ID]
		ops[newID] = op
		if nw.HasParent {
			par[newID] = remap[nw.Parent]
		}
		children := make([]pgraph.NodeID, len(nw.Children))
		for i, c := range nw.Children {
			children[i] = remap[c]
		}
		kids[newID] = children
	}

	for _, lw := range w.Links {
		src := pgraph.PortID{Node: remap[lw.SrcNode], Offset: lw.SrcOffset, Dir: pgraph.Outgoing}
		dst := pgraph.PortID{Node: remap[lw.DstNode], Offset: lw.DstOffset, Dir: pgraph.Incoming}
		if _, err := pg.Connect(src, dst); err != nil {
			return fmt.Errorf("Hugr.UnmarshalJSON: link %s->%s: %w", lw.SrcNode, lw.DstNode, err)
		}
	}

	newRoot, ok := remap[w.Root]
	if !ok {
		return fmt.Errorf("Hugr.UnmarshalJSON: root %s: %w", w.Root, ErrNodeNotFound)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.pg = pg
	h.ops = ops
	h.par = par
	h.kids = kids
	h.root = newRoot

	return nil
}

package hugr

import (
	"fmt"

	"github.com/hugr-ir/hugr/extension"
	"github.com/hugr-ir/hugr/types"
	"github.com/hugr-ir/hugr/types/constcheck"
)

// OpType is the closed tagged union every Node carries: Module,
// FuncDefn, FuncDecl, Const, BasicBlock (Block|Exit), DFG, CFG,
// Conditional, Case, TailLoop, Input, Output,
// LeafOp, ExtensionOp. Like SimpleType, it is sealed to this package
// via an unexported marker method; callers switch on the concrete
// struct type.
type OpType interface {
	isOpType()
	// Tag returns a short stable name for the variant, used in error
	// messages and the serialized tagged-union discriminant.
	Tag() string
	// InputRow and OutputRow are the dataflow ports this op's own
	// hierarchy node exposes, NOT counting any "other" (state-order or
	// control-flow) ports; those are tracked separately by the Hugr
	// since their count can grow after the node is created (branch()).
	InputRow() types.Row
	OutputRow() types.Row
}

// ModuleOp is the root of every HUGR: a container for function
// definitions, declarations, and module-level constants. It has no
// dataflow ports of its own.
type ModuleOp struct{}

func (ModuleOp) isOpType()            {}
func (ModuleOp) Tag() string          { return "Module" }
func (ModuleOp) InputRow() types.Row  { return types.EmptyRow() }
func (ModuleOp) OutputRow() types.Row { return types.EmptyRow() }

// FuncDefnOp names a function and its signature; its body is the DFG
// formed by its children (first Input, then Output, then ops).
type FuncDefnOp struct {
	Name      string
	Signature types.Signature
}

func (FuncDefnOp) isOpType()            {}
func (FuncDefnOp) Tag() string          { return "FuncDefn" }
func (FuncDefnOp) InputRow() types.Row  { return types.EmptyRow() }
func (FuncDefnOp) OutputRow() types.Row { return types.EmptyRow() }

// FuncDeclOp names a function signature with no body (an external
// declaration).
type FuncDeclOp struct {
	Name      string
	Signature types.Signature
}

func (FuncDeclOp) isOpType()            {}
func (FuncDeclOp) Tag() string          { return "FuncDecl" }
func (FuncDeclOp) InputRow() types.Row  { return types.EmptyRow() }
func (FuncDeclOp) OutputRow() types.Row { return types.EmptyRow() }

// ConstOp holds a constant value at a hierarchy node. It carries one
// outgoing port of the value's type, so loading a constant is a plain
// dataflow edge rather than a separate load op.
type ConstOp struct {
	Value constcheck.Const
	Type  types.SimpleType
}

func (ConstOp) isOpType()           {}
func (ConstOp) Tag() string         { return "Const" }
func (ConstOp) InputRow() types.Row { return types.EmptyRow() }
func (c ConstOp) OutputRow() types.Row { return types.NewRow(c.Type) }

// BlockKind distinguishes a normal basic block from the CFG's
// distinguished Exit block.
type BlockKind uint8

const (
	BlockNormal BlockKind = iota
	BlockExit
)

// BasicBlockOp is a dataflow region that is also a CFG successor. Its
// own hierarchy node's outgoing ports are fixed at creation (one per
// predicate variant, zero for Exit); its incoming ports grow by one
// per branch() targeting it. Its Input/Output children carry
// InputRow/PredicateVariants+OtherOutputs as their dataflow rows.
type BasicBlockOp struct {
	Kind              BlockKind
	InRow             types.Row
	PredicateVariants []types.Row // one row per successor variant; empty for Exit
	OtherOutputs      types.Row   // outputs besides the predicate; empty for Exit
}

func (BasicBlockOp) isOpType()   {}
func (b BasicBlockOp) Tag() string {
	if b.Kind == BlockExit {
		return "Exit"
	}

	return "Block"
}
func (b BasicBlockOp) InputRow() types.Row { return b.InRow }

func (b BasicBlockOp) OutputRow() types.Row {
	if b.Kind == BlockExit {
		return types.EmptyRow()
	}
	out := types.NewRow(b.predicateType())

	return out.Concat(b.OtherOutputs)
}

// predicateType builds the sum-of-rows predicate type selecting among
// this block's successors.
func (b BasicBlockOp) predicateType() types.SimpleType {
	return types.PredicateType{Variants: b.PredicateVariants}
}

// NumSuccessors returns how many outgoing control branches this block
// has (len(PredicateVariants), 0 for Exit).
func (b BasicBlockOp) NumSuccessors() int {
	if b.Kind == BlockExit {
		return 0
	}

	return len(b.PredicateVariants)
}

// PredicateType re-exports types.PredicateType under the hugr package
// for callers that construct a predicate value alongside other hugr
// types (builder, tests); the type itself is declared in package types
// since SimpleType is sealed there.
type PredicateType = types.PredicateType

// DFGOp is a nested dataflow region: a node whose children are
// Input, Output, and dataflow ops, with a fixed external Signature.
type DFGOp struct {
	Signature types.Signature
}

func (DFGOp) isOpType()            {}
func (DFGOp) Tag() string          { return "DFG" }
func (d DFGOp) InputRow() types.Row  { return d.Signature.Input }
func (d DFGOp) OutputRow() types.Row { return d.Signature.Output }

// CFGOp is a hierarchical control-flow region: a node whose children
// are BasicBlocks plus a distinguished Exit, with a fixed external
// Signature (same shape as a DFG from the outside).
type CFGOp struct {
	Signature types.Signature
}

func (CFGOp) isOpType()            {}
func (CFGOp) Tag() string          { return "CFG" }
func (c CFGOp) InputRow() types.Row  { return c.Signature.Input }
func (c CFGOp) OutputRow() types.Row { return c.Signature.Output }

// ConditionalOp dispatches to one of its Case children based on an
// input predicate/sum value.
type ConditionalOp struct {
	Signature types.Signature
}

func (ConditionalOp) isOpType()            {}
func (ConditionalOp) Tag() string          { return "Conditional" }
func (c ConditionalOp) InputRow() types.Row  { return c.Signature.Input }
func (c ConditionalOp) OutputRow() types.Row { return c.Signature.Output }

// CaseOp is one dataflow-region alternative of a Conditional.
type CaseOp struct {
	Signature types.Signature
}

func (CaseOp) isOpType()            {}
func (CaseOp) Tag() string          { return "Case" }
func (c CaseOp) InputRow() types.Row  { return c.Signature.Input }
func (c CaseOp) OutputRow() types.Row { return c.Signature.Output }

// TailLoopOp repeats its dataflow body while a sum-typed continue/exit
// predicate selects "continue".
type TailLoopOp struct {
	Signature types.Signature
}

func (TailLoopOp) isOpType()            {}
func (TailLoopOp) Tag() string          { return "TailLoop" }
func (t TailLoopOp) InputRow() types.Row  { return t.Signature.Input }
func (t TailLoopOp) OutputRow() types.Row { return t.Signature.Output }

// InputOp is always the first child of a dataflow parent; its
// outgoing ports are the parent's input row.
type InputOp struct {
	Row types.Row
}

func (InputOp) isOpType()            {}
func (InputOp) Tag() string          { return "Input" }
func (InputOp) InputRow() types.Row  { return types.EmptyRow() }
func (i InputOp) OutputRow() types.Row { return i.Row }

// OutputOp is always the second child of a dataflow parent; its
// incoming ports are the parent's output row.
type OutputOp struct {
	Row types.Row
}

func (OutputOp) isOpType()            {}
func (OutputOp) Tag() string          { return "Output" }
func (o OutputOp) InputRow() types.Row  { return o.Row }
func (OutputOp) OutputRow() types.Row { return types.EmptyRow() }

// LeafOp is a primitive dataflow operation with a fixed signature and
// no children; used for ops not resolved against an extension
// registry (identity, a builder-synthesized helper, etc).
type LeafOp struct {
	Name      string
	Signature types.Signature
}

func (LeafOp) isOpType()            {}
func (l LeafOp) Tag() string          { return fmt.Sprintf("Leaf(%s)", l.Name) }
func (l LeafOp) InputRow() types.Row  { return l.Signature.Input }
func (l LeafOp) OutputRow() types.Row { return l.Signature.Output }

// ExtensionOpType wraps a resolved extension.ExtensionOp as a node's
// OpType, carrying its cached signature.
type ExtensionOpType struct {
	Op *extension.ExtensionOp
}

func (ExtensionOpType) isOpType() {}
func (e ExtensionOpType) Tag() string {
	return fmt.Sprintf("ExtensionOp(%s.%s)", e.Op.Op.Extension, e.Op.Op.Name)
}
func (e ExtensionOpType) InputRow() types.Row  { return e.Op.Signature.Input }
func (e ExtensionOpType) OutputRow() types.Row { return e.Op.Signature.Output }

package builder

import (
	"fmt"

	"github.com/hugr-ir/hugr/extension"
	"github.com/hugr-ir/hugr/hugr"
	"github.com/hugr-ir/hugr/pgraph"
	"github.com/hugr-ir/hugr/types"
	"github.com/hugr-ir/hugr/types/constcheck"
)

// ModuleBuilder owns a fresh HUGR whose root is a Module and builds
// its top-level children: function declarations, function
// definitions, and constants.
type ModuleBuilder struct {
	h    *hugr.Hugr
	root pgraph.NodeID
}

// NewModule starts a new module-rooted HUGR.
func NewModule() *ModuleBuilder {
	h := hugr.New()

	return &ModuleBuilder{h: h, root: h.Root()}
}

// ContainerNode implements Container.
func (m *ModuleBuilder) ContainerNode() pgraph.NodeID { return m.root }

// Base implements Container.
func (m *ModuleBuilder) Base() *hugr.Hugr { return m.h }

// Declare adds a FuncDecl child naming sig with no body, returning a
// Handle usable with DefineFunction or DefineDeclaration.
func (m *ModuleBuilder) Declare(name string, sig types.Signature) (Handle, error) {
	n, err := m.h.AddOp(m.root, hugr.FuncDeclOp{Name: name, Signature: sig})
	if err != nil {
		return Handle{}, fmt.Errorf("Declare(%s): %w", name, err)
	}

	return Handle{Node: n, Signature: sig}, nil
}

// DefineFunction adds a FuncDefn child with decl's name and signature
// and returns a FunctionBuilder over its body, ready for
// InputWires/AddDataflowOp/FinishWithOutputs. decl must come from
// Declare on this same ModuleBuilder.
func (m *ModuleBuilder) DefineFunction(decl Handle) (*FunctionBuilder, error) {
	op, err := m.h.GetOpType(decl.Node)
	if err != nil {
		return nil, fmt.Errorf("DefineFunction: %w", err)
	}
	fd, ok := op.(hugr.FuncDeclOp)
	if !ok {
		return nil, fmt.Errorf("DefineFunction(%s): %w", decl.Node, ErrNotADeclaration)
	}

	n, err := m.h.AddOp(m.root, hugr.FuncDefnOp{Name: fd.Name, Signature: fd.Signature})
	if err != nil {
		return nil, fmt.Errorf("DefineFunction(%s): %w", fd.Name, err)
	}
	db, err := newDataflowBase(m.h, n, fd.Signature.Input, fd.Signature.Output)
	if err != nil {
		return nil, fmt.Errorf("DefineFunction(%s): %w", fd.Name, err)
	}

	return &FunctionBuilder{dataflowBase: db, Name: fd.Name}, nil
}

// DefineDeclaration finalizes decl as a body-less declaration,
// returning it unchanged. It exists so Declare/DefineDeclaration reads
// symmetrically with Declare/DefineFunction at call sites that decide
// late whether a declared function ever gets a body.
func (m *ModuleBuilder) DefineDeclaration(decl Handle) (Handle, error) {
	op, err := m.h.GetOpType(decl.Node)
	if err != nil {
		return Handle{}, fmt.Errorf("DefineDeclaration: %w", err)
	}
	if _, ok := op.(hugr.FuncDeclOp); !ok {
		return Handle{}, fmt.Errorf("DefineDeclaration(%s): %w", decl.Node, ErrNotADeclaration)
	}

	return decl, nil
}

// Constant adds a module-level Const child holding value, type-checked
// against typ.
func (m *ModuleBuilder) Constant(value constcheck.Const, typ types.SimpleType) (Handle, error) {
	if err := constcheck.TypeCheck(typ, value); err != nil {
		return Handle{}, fmt.Errorf("Constant: %w", err)
	}
	n, err := m.h.AddOp(m.root, hugr.ConstOp{Value: value, Type: typ})
	if err != nil {
		return Handle{}, fmt.Errorf("Constant: %w", err)
	}

	return Handle{Node: n, Signature: types.NewFunctionType(types.EmptyRow(), types.NewRow(typ))}, nil
}

// Finish validates the built HUGR against reg and returns it.
func (m *ModuleBuilder) Finish(reg *extension.Registry) (*hugr.Hugr, error) {
	if err := hugr.Validate(m.h, reg); err != nil {
		return nil, fmt.Errorf("Finish: %w", err)
	}

	return m.h, nil
}

package extension

import (
	"fmt"

	"github.com/hugr-ir/hugr/extid"
	"github.com/hugr-ir/hugr/types"
)

// SignatureFunc computes a concrete Signature from a legal binding of
// args to an OpDef's declared TypeParams. It is the custom-callback
// alternative to an inline function-type.
type SignatureFunc func(args []types.TypeArg) (types.Signature, error)

// TypeRef names a CustomType declared by another (or the same)
// Extension; used by OpDef/TypeDef to declare which types their
// signatures may reference, so ExtensionRegistry validation has
// something concrete to check (see Registry.validateExtension).
type TypeRef struct {
	Extension extid.ID
	Name      string
}

// OpDef declares a named, parametric operation within an Extension: a
// name, the kinds of its type parameters, and a function resolving a
// legal argument binding to a concrete Signature.
type OpDef struct {
	name       string
	params     []types.TypeParam
	sigFn      SignatureFunc
	references []TypeRef
}

// NewOpDef constructs an OpDef. references lists the CustomTypes this
// op's signatures may mention, for registry validation; pass nil if none.
func NewOpDef(name string, params []types.TypeParam, sigFn SignatureFunc, references []TypeRef) *OpDef {
	return &OpDef{name: name, params: params, sigFn: sigFn, references: references}
}

// Name returns the op's name within its extension.
func (d *OpDef) Name() string { return d.name }

// Params returns the op's declared type-parameter kinds, in order.
func (d *OpDef) Params() []types.TypeParam { return d.params }

// ComputeSignature validates args against d.Params and, if legal,
// invokes the signature function.
func (d *OpDef) ComputeSignature(args []types.TypeArg) (types.Signature, error) {
	if err := types.CheckTypeArgs(args, d.params); err != nil {
		return types.Signature{}, fmt.Errorf("OpDef(%s).ComputeSignature: %w", d.name, err)
	}

	sig, err := d.sigFn(args)
	if err != nil {
		return types.Signature{}, fmt.Errorf("OpDef(%s).ComputeSignature: %w", d.name, err)
	}

	return sig, nil
}

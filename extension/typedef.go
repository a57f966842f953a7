package extension

import (
	"fmt"

	"github.com/hugr-ir/hugr/types"
)

// BoundFunc computes the TypeBound a TypeDef's instantiation carries
// for a legal binding of args; most TypeDefs use a fixed bound
// (FixedBound) rather than a per-instantiation function.
type BoundFunc func(args []types.TypeArg) (types.TypeBound, error)

// TypeDef declares a named, parametric CustomType within an
// Extension: a name, parameter kinds, and a bound function.
type TypeDef struct {
	name       string
	params     []types.TypeParam
	boundFn    BoundFunc
	references []TypeRef
}

// FixedBound returns a BoundFunc that always yields b, for TypeDefs
// whose bound does not depend on their type arguments (the common case).
func FixedBound(b types.TypeBound) BoundFunc {
	return func([]types.TypeArg) (types.TypeBound, error) { return b, nil }
}

// NewTypeDef constructs a TypeDef.
func NewTypeDef(name string, params []types.TypeParam, boundFn BoundFunc, references []TypeRef) *TypeDef {
	return &TypeDef{name: name, params: params, boundFn: boundFn, references: references}
}

// Name returns the type's name within its extension.
func (d *TypeDef) Name() string { return d.name }

// Params returns the type's declared type-parameter kinds, in order.
func (d *TypeDef) Params() []types.TypeParam { return d.params }

// Instantiate validates args and constructs the CustomType for this
// TypeDef within parentExt.
func (d *TypeDef) Instantiate(parentExt TypeRef, args []types.TypeArg) (types.CustomType, error) {
	if err := types.CheckTypeArgs(args, d.params); err != nil {
		return types.CustomType{}, fmt.Errorf("TypeDef(%s).Instantiate: %w", d.name, err)
	}

	bound, err := d.boundFn(args)
	if err != nil {
		return types.CustomType{}, fmt.Errorf("TypeDef(%s).Instantiate: %w", d.name, err)
	}

	return types.CustomType{
		ParentExtension: parentExt.Extension,
		Name:            d.name,
		Args:            args,
		CachedBound:     bound,
	}, nil
}

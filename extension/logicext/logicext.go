// Package logicext is a worked example Extension supplying the
// classical boolean operations (and, or, not, xor) over a one-bit
// CustomType.
package logicext

import (
	"fmt"

	"github.com/hugr-ir/hugr/extension"
	"github.com/hugr-ir/hugr/extid"
	"github.com/hugr-ir/hugr/types"
)

// ID is this extension's name, "logic".
var ID = extid.MustNewID("logic")

const boolTypeName = "bool"

// BoolType returns the one-bit CustomType this extension declares.
func BoolType() types.SimpleType {
	return types.CustomType{ParentExtension: ID, Name: boolTypeName, CachedBound: types.BoundCopyable}
}

// New builds the "logic" Extension programmatically: a bool TypeDef
// and the and/or/not/xor OpDefs, all non-parametric over bool->bool
// or (bool,bool)->bool. LoadYAML builds the same four ops over Bit,
// with no TypeDef, so the two results are not equal.
func New() (*extension.Extension, error) {
	ext := extension.New(ID, extid.NewSet())

	if err := ext.AddType(extension.NewTypeDef(boolTypeName, nil, extension.FixedBound(types.BoundCopyable), nil)); err != nil {
		return nil, fmt.Errorf("logicext.New: %w", err)
	}

	unary := types.NewFunctionType(types.NewRow(BoolType()), types.NewRow(BoolType()))
	binary := types.NewFunctionType(types.NewRow(BoolType(), BoolType()), types.NewRow(BoolType()))

	ops := []struct {
		name string
		sig  types.Signature
	}{
		{"not", unary},
		{"and", binary},
		{"or", binary},
		{"xor", binary},
	}
	for _, o := range ops {
		sig := o.sig
		op := extension.NewOpDef(o.name, nil, func([]types.TypeArg) (types.Signature, error) { return sig, nil }, nil)
		if err := ext.AddOp(op); err != nil {
			return nil, fmt.Errorf("logicext.New: %w", err)
		}
	}

	return ext, nil
}

// YAML is the declarative-source equivalent of New, exercising
// extension.LoadYAML. Note LoadYAML only supports primitive type
// rows, so this variant uses Bit rather than the bool CustomType —
// the two constructions are deliberately not identical, each
// demonstrating a different construction path.
const YAML = `
name: logic
requirements: []
types: []
ops:
  - name: not
    input: [Bit]
    output: [Bit]
  - name: and
    input: [Bit, Bit]
    output: [Bit]
  - name: or
    input: [Bit, Bit]
    output: [Bit]
  - name: xor
    input: [Bit, Bit]
    output: [Bit]
`

// LoadYAML builds the declarative-source variant of this extension.
func LoadYAML() (*extension.Extension, error) {
	return extension.LoadYAML([]byte(YAML))
}

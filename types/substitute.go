package types

import (
	"fmt"

	"github.com/hugr-ir/hugr/extid"
)

// Substitution supplies concrete TypeArgs for the type variables (and,
// transitively, extension-set variables) that appear free in a
// parametric SimpleType or Signature.
type Substitution interface {
	extid.Substitution
	// ArgFor returns the TypeArg bound to type-variable index idx. ok
	// is false if idx is unbound.
	ArgFor(idx int) (TypeArg, bool)
}

// MapSubstitution is a Substitution backed by plain maps; the simplest
// way to supply bindings in builders and tests.
type MapSubstitution struct {
	Types      map[int]TypeArg
	Extensions map[int]extid.Set
}

// NewMapSubstitution returns an empty MapSubstitution ready to populate.
func NewMapSubstitution() MapSubstitution {
	return MapSubstitution{Types: map[int]TypeArg{}, Extensions: map[int]extid.Set{}}
}

// ArgFor implements Substitution.
func (m MapSubstitution) ArgFor(idx int) (TypeArg, bool) {
	a, ok := m.Types[idx]

	return a, ok
}

// ExtensionsFor implements extid.Substitution.
func (m MapSubstitution) ExtensionsFor(idx int) (extid.Set, bool) {
	s, ok := m.Extensions[idx]

	return s, ok
}

// SubstituteType replaces every VarType in t (recursively, through
// container variants) with the value bound to it by subst. Returns
// ErrFreeTypeVar if a variable has no binding, or ErrTypeVarKindMismatch
// if the bound TypeArg does not carry a SimpleType.
func SubstituteType(t SimpleType, subst Substitution) (SimpleType, error) {
	switch v := t.(type) {
	case VarType:
		arg, ok := subst.ArgFor(v.Index)
		if !ok {
			return nil, fmt.Errorf("SubstituteType: var #%d: %w", v.Index, ErrFreeTypeVar)
		}
		ta, ok := arg.(TypeArgType)
		if !ok {
			return nil, fmt.Errorf("SubstituteType: var #%d bound to %s: %w", v.Index, arg, ErrTypeVarKindMismatch)
		}

		return ta.Type, nil
	case GraphType:
		sig, err := v.Signature.Substitute(subst)
		if err != nil {
			return nil, err
		}
		exts, err := v.Resources.Substitute(subst)
		if err != nil {
			return nil, fmt.Errorf("SubstituteType: %w", err)
		}

		return GraphType{Resources: exts, Signature: sig}, nil
	case PairType:
		first, err := SubstituteType(v.First, subst)
		if err != nil {
			return nil, err
		}
		second, err := SubstituteType(v.Second, subst)
		if err != nil {
			return nil, err
		}

		return PairType{First: first, Second: second}, nil
	case ListType:
		elem, err := SubstituteType(v.Elem, subst)
		if err != nil {
			return nil, err
		}

		return ListType{Elem: elem}, nil
	case MapType:
		key, err := SubstituteType(v.Key, subst)
		if err != nil {
			return nil, err
		}
		val, err := SubstituteType(v.Value, subst)
		if err != nil {
			return nil, err
		}

		return MapType{Key: key, Value: val}, nil
	case StructType:
		fields, err := substituteRow(v.Fields, subst)
		if err != nil {
			return nil, err
		}

		return StructType{Name: v.Name, Fields: fields}, nil
	case ArrayType:
		elem, err := SubstituteType(v.Elem, subst)
		if err != nil {
			return nil, err
		}

		return ArrayType{Elem: elem, Size: v.Size}, nil
	case PredicateType:
		variants := make([]Row, len(v.Variants))
		for i, row := range v.Variants {
			r, err := substituteRow(row, subst)
			if err != nil {
				return nil, err
			}
			variants[i] = r
		}

		return PredicateType{Variants: variants}, nil
	case CustomType:
		args := make([]TypeArg, len(v.Args))
		for i, a := range v.Args {
			na, err := substituteArg(a, subst)
			if err != nil {
				return nil, err
			}
			args[i] = na
		}

		return CustomType{ParentExtension: v.ParentExtension, Name: v.Name, Args: args, CachedBound: v.CachedBound}, nil
	default:
		// NatType, IntType, BitType, QubitType, MoneyType carry no
		// nested type variables.
		return t, nil
	}
}

func substituteArg(a TypeArg, subst Substitution) (TypeArg, error) {
	switch v := a.(type) {
	case TypeArgType:
		st, err := SubstituteType(v.Type, subst)
		if err != nil {
			return nil, err
		}

		return TypeArgType{Type: st}, nil
	case TypeArgSequence:
		elems := make([]TypeArg, len(v.Elems))
		for i, e := range v.Elems {
			ne, err := substituteArg(e, subst)
			if err != nil {
				return nil, err
			}
			elems[i] = ne
		}

		return TypeArgSequence{Elems: elems}, nil
	case TypeArgExtensions:
		s, err := v.Set.Substitute(subst)
		if err != nil {
			return nil, fmt.Errorf("substituteArg: %w", err)
		}

		return TypeArgExtensions{Set: s}, nil
	default:
		return a, nil
	}
}

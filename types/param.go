package types

import (
	"fmt"

	"github.com/hugr-ir/hugr/extid"
)

// TypeParam declares the kind of value a TypeArg must supply at one
// position of a parametric OpDef/TypeDef/CustomType. Closed sum:
// a type bound, a bounded natural, a sequence, a string, or an
// extension set.
type TypeParam interface {
	isTypeParam()
	String() string
}

// TypeParamType declares that the argument must be a SimpleType with
// at least the given bound.
type TypeParamType struct{ Bound TypeBound }

func (TypeParamType) isTypeParam() {}
func (p TypeParamType) String() string { return fmt.Sprintf("Type(%s)", p.Bound) }

// TypeParamNat declares that the argument must be a natural number,
// optionally bounded above (Max == 0 means unbounded).
type TypeParamNat struct{ Max uint64 }

func (TypeParamNat) isTypeParam() {}
func (p TypeParamNat) String() string {
	if p.Max == 0 {
		return "Nat"
	}

	return fmt.Sprintf("Nat(<=%d)", p.Max)
}

// TypeParamSequence declares that the argument must be a sequence of
// args each matching Elem.
type TypeParamSequence struct{ Elem TypeParam }

func (TypeParamSequence) isTypeParam() {}
func (p TypeParamSequence) String() string { return fmt.Sprintf("List(%s)", p.Elem) }

// TypeParamString declares that the argument must be a string literal.
type TypeParamString struct{}

func (TypeParamString) isTypeParam() {}
func (TypeParamString) String() string { return "String" }

// TypeParamExtensions declares that the argument must be an ExtensionSet.
type TypeParamExtensions struct{}

func (TypeParamExtensions) isTypeParam() {}
func (TypeParamExtensions) String() string { return "Extensions" }

// TypeArg binds a concrete value to one TypeParam position. Closed
// sum mirroring TypeParam's shape.
type TypeArg interface {
	isTypeArg()
	String() string
	Equal(other TypeArg) bool
}

// TypeArgType binds a concrete SimpleType.
type TypeArgType struct{ Type SimpleType }

func (TypeArgType) isTypeArg() {}
func (a TypeArgType) String() string { return a.Type.String() }
func (a TypeArgType) Equal(o TypeArg) bool {
	oa, ok := o.(TypeArgType)

	return ok && a.Type.Equal(oa.Type)
}

// TypeArgNat binds a natural number.
type TypeArgNat struct{ Value uint64 }

func (TypeArgNat) isTypeArg() {}
func (a TypeArgNat) String() string { return fmt.Sprintf("%d", a.Value) }
func (a TypeArgNat) Equal(o TypeArg) bool {
	oa, ok := o.(TypeArgNat)

	return ok && a.Value == oa.Value
}

// TypeArgSequence binds a sequence of nested TypeArgs.
type TypeArgSequence struct{ Elems []TypeArg }

func (TypeArgSequence) isTypeArg() {}
func (a TypeArgSequence) String() string {
	s := "["
	for i, e := range a.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}

	return s + "]"
}
func (a TypeArgSequence) Equal(o TypeArg) bool {
	oa, ok := o.(TypeArgSequence)
	if !ok || len(a.Elems) != len(oa.Elems) {
		return false
	}
	for i := range a.Elems {
		if !a.Elems[i].Equal(oa.Elems[i]) {
			return false
		}
	}

	return true
}

// TypeArgString binds a string literal.
type TypeArgString struct{ Value string }

func (TypeArgString) isTypeArg() {}
func (a TypeArgString) String() string { return fmt.Sprintf("%q", a.Value) }
func (a TypeArgString) Equal(o TypeArg) bool {
	oa, ok := o.(TypeArgString)

	return ok && a.Value == oa.Value
}

// TypeArgExtensions binds an ExtensionSet.
type TypeArgExtensions struct{ Set extid.Set }

func (TypeArgExtensions) isTypeArg() {}
func (a TypeArgExtensions) String() string { return fmt.Sprintf("%v", a.Set.Sorted()) }
func (a TypeArgExtensions) Equal(o TypeArg) bool {
	oa, ok := o.(TypeArgExtensions)

	return ok && a.Set.Equal(oa.Set)
}

// TypeArgsString renders a slice of TypeArgs as an angle-bracketed,
// comma-separated list, or "" if empty.
func TypeArgsString(args []TypeArg) string {
	if len(args) == 0 {
		return ""
	}
	s := "<"
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}

	return s + ">"
}

// CheckTypeArgs validates that args binds params: arity matches and
// each arg satisfies its parameter's kind.
func CheckTypeArgs(args []TypeArg, params []TypeParam) error {
	if len(args) != len(params) {
		return fmt.Errorf("CheckTypeArgs: got %d args, want %d: %w", len(args), len(params), ErrTypeArgArity)
	}
	for i := range args {
		if err := checkOne(args[i], params[i]); err != nil {
			return fmt.Errorf("CheckTypeArgs: arg %d: %w", i, err)
		}
	}

	return nil
}

func checkOne(arg TypeArg, param TypeParam) error {
	switch p := param.(type) {
	case TypeParamType:
		a, ok := arg.(TypeArgType)
		if !ok {
			return fmt.Errorf("%w: want Type, got %s", ErrTypeArgMismatch, arg)
		}
		if p.Bound == BoundCopyable && !IsCopyable(a.Type) {
			return fmt.Errorf("%w: type %s does not satisfy bound %s", ErrWrongBound, a.Type, p.Bound)
		}

		return nil
	case TypeParamNat:
		a, ok := arg.(TypeArgNat)
		if !ok {
			return fmt.Errorf("%w: want Nat, got %s", ErrTypeArgMismatch, arg)
		}
		if p.Max != 0 && a.Value > p.Max {
			return fmt.Errorf("%w: %d exceeds max %d", ErrTypeArgMismatch, a.Value, p.Max)
		}

		return nil
	case TypeParamSequence:
		a, ok := arg.(TypeArgSequence)
		if !ok {
			return fmt.Errorf("%w: want List, got %s", ErrTypeArgMismatch, arg)
		}
		for i, e := range a.Elems {
			if err := checkOne(e, p.Elem); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}

		return nil
	case TypeParamString:
		if _, ok := arg.(TypeArgString); !ok {
			return fmt.Errorf("%w: want String, got %s", ErrTypeArgMismatch, arg)
		}

		return nil
	case TypeParamExtensions:
		if _, ok := arg.(TypeArgExtensions); !ok {
			return fmt.Errorf("%w: want Extensions, got %s", ErrTypeArgMismatch, arg)
		}

		return nil
	default:
		return fmt.Errorf("%w: unknown param kind %T", ErrTypeArgMismatch, param)
	}
}

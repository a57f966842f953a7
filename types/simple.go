package types

import (
	"fmt"

	"github.com/hugr-ir/hugr/extid"
)

// TypeBound classifies a type by what a value of that type may legally
// do: be copied/discarded, or neither. A bound rather than a boolean so
// CustomType can carry one without the package knowing its definition.
type TypeBound uint8

const (
	// BoundAny is the weakest bound: no copy/discard guarantee.
	BoundAny TypeBound = iota
	// BoundCopyable marks a type whose values may be freely duplicated
	// or dropped (classical data).
	BoundCopyable
)

// String implements fmt.Stringer.
func (b TypeBound) String() string {
	switch b {
	case BoundCopyable:
		return "Copyable"
	case BoundAny:
		return "Any"
	default:
		return fmt.Sprintf("TypeBound(%d)", uint8(b))
	}
}

// SimpleType is the closed sum of classical and quantum/linear types.
// It is implemented only by the structs in this package; callers
// outside the package may hold and compare values but may not add new
// variants.
type SimpleType interface {
	// isSimpleType is unexported so the interface is sealed to this package.
	isSimpleType()
	// Bound returns the type's copy/discard classification.
	Bound() TypeBound
	// String returns a stable, human-readable rendering used in error
	// messages and tests.
	String() string
	// Equal reports structural equality with other.
	Equal(other SimpleType) bool
}

// IsLinear reports whether t is non-copyable (quantum/linear).
func IsLinear(t SimpleType) bool { return t.Bound() != BoundCopyable }

// IsCopyable reports whether t may be duplicated or discarded freely.
func IsCopyable(t SimpleType) bool { return t.Bound() == BoundCopyable }

// ---- Classical (copyable) variants ----

// VarType is a reference to a type variable bound by an enclosing
// TypeParam declaration, identified by its DeBruijn index.
type VarType struct {
	Index int
	// Declared is the bound this variable was declared with; Bound()
	// reports it. SubstituteType does not compare it with the bound of
	// the type substituted for the variable.
	Declared TypeBound
}

func (VarType) isSimpleType()       {}
func (v VarType) Bound() TypeBound  { return v.Declared }
func (v VarType) String() string    { return fmt.Sprintf("#%d", v.Index) }
func (v VarType) Equal(o SimpleType) bool {
	ov, ok := o.(VarType)

	return ok && ov.Index == v.Index
}

// NatType is the type of unbounded natural numbers.
type NatType struct{}

func (NatType) isSimpleType()          {}
func (NatType) Bound() TypeBound       { return BoundCopyable }
func (NatType) String() string         { return "Nat" }
func (n NatType) Equal(o SimpleType) bool {
	_, ok := o.(NatType)

	return ok
}

// IntType is a fixed-width two's-complement integer.
type IntType struct {
	Width int // bit width, e.g. 32 or 64
}

func (IntType) isSimpleType()    {}
func (IntType) Bound() TypeBound { return BoundCopyable }
func (t IntType) String() string { return fmt.Sprintf("Int<%d>", t.Width) }
func (t IntType) Equal(o SimpleType) bool {
	ot, ok := o.(IntType)

	return ok && ot.Width == t.Width
}

// BitType is the type of a single classical bit; the default classical type.
type BitType struct{}

func (BitType) isSimpleType()    {}
func (BitType) Bound() TypeBound { return BoundCopyable }
func (BitType) String() string   { return "Bit" }
func (b BitType) Equal(o SimpleType) bool {
	_, ok := o.(BitType)

	return ok
}

// GraphType is the type of a nested HUGR value: a resource set the
// graph requires plus its external signature.
type GraphType struct {
	Resources extid.Set
	Signature Signature
}

func (GraphType) isSimpleType()    {}
func (GraphType) Bound() TypeBound { return BoundCopyable }
func (t GraphType) String() string { return fmt.Sprintf("Graph[%s]", t.Signature.String()) }
func (t GraphType) Equal(o SimpleType) bool {
	ot, ok := o.(GraphType)

	return ok && t.Resources.Equal(ot.Resources) && t.Signature.Equal(ot.Signature)
}

// PairType is a classical 2-tuple.
type PairType struct {
	First, Second SimpleType
}

func (PairType) isSimpleType()    {}
func (PairType) Bound() TypeBound { return BoundCopyable }
func (t PairType) String() string { return fmt.Sprintf("Pair<%s,%s>", t.First, t.Second) }
func (t PairType) Equal(o SimpleType) bool {
	ot, ok := o.(PairType)

	return ok && t.First.Equal(ot.First) && t.Second.Equal(ot.Second)
}

// ListType is a homogeneous classical list.
type ListType struct {
	Elem SimpleType
}

func (ListType) isSimpleType()    {}
func (ListType) Bound() TypeBound { return BoundCopyable }
func (t ListType) String() string { return fmt.Sprintf("List<%s>", t.Elem) }
func (t ListType) Equal(o SimpleType) bool {
	ot, ok := o.(ListType)

	return ok && t.Elem.Equal(ot.Elem)
}

// MapType is a homogeneous classical key/value map.
type MapType struct {
	Key, Value SimpleType
}

func (MapType) isSimpleType()    {}
func (MapType) Bound() TypeBound { return BoundCopyable }
func (t MapType) String() string { return fmt.Sprintf("Map<%s,%s>", t.Key, t.Value) }
func (t MapType) Equal(o SimpleType) bool {
	ot, ok := o.(MapType)

	return ok && t.Key.Equal(ot.Key) && t.Value.Equal(ot.Value)
}

// StructType is a classical named product over a Row.
type StructType struct {
	Name   string
	Fields Row
}

func (StructType) isSimpleType()    {}
func (StructType) Bound() TypeBound { return BoundCopyable }
func (t StructType) String() string { return fmt.Sprintf("Struct<%s>(%s)", t.Name, t.Fields) }
func (t StructType) Equal(o SimpleType) bool {
	ot, ok := o.(StructType)

	return ok && t.Name == ot.Name && t.Fields.Equal(ot.Fields)
}

// ---- Quantum / linear variants ----

// QubitType is the type of a single qubit; the default quantum type.
type QubitType struct{}

func (QubitType) isSimpleType()    {}
func (QubitType) Bound() TypeBound { return BoundAny }
func (QubitType) String() string   { return "Qubit" }
func (q QubitType) Equal(o SimpleType) bool {
	_, ok := o.(QubitType)

	return ok
}

// MoneyType is a linear resource token with no internal structure,
// used to model single-use capabilities (e.g. "may measure once").
type MoneyType struct{}

func (MoneyType) isSimpleType()    {}
func (MoneyType) Bound() TypeBound { return BoundAny }
func (MoneyType) String() string   { return "Money" }
func (m MoneyType) Equal(o SimpleType) bool {
	_, ok := o.(MoneyType)

	return ok
}

// ArrayType is a fixed-size array of a (necessarily linear) quantum element type.
type ArrayType struct {
	Elem SimpleType
	Size int
}

func (ArrayType) isSimpleType()    {}
func (ArrayType) Bound() TypeBound { return BoundAny }
func (t ArrayType) String() string { return fmt.Sprintf("Array<%s;%d>", t.Elem, t.Size) }
func (t ArrayType) Equal(o SimpleType) bool {
	ot, ok := o.(ArrayType)

	return ok && t.Size == ot.Size && t.Elem.Equal(ot.Elem)
}

// ---- Opaque escape hatch ----

// CustomType names a type declared by an Extension, parameterised by
// TypeArgs, with a bound cached at construction time so SimpleType
// methods need no registry lookup.
type CustomType struct {
	ParentExtension extid.ID
	Name            string
	Args            []TypeArg
	CachedBound     TypeBound
}

func (CustomType) isSimpleType()    {}
func (t CustomType) Bound() TypeBound { return t.CachedBound }
func (t CustomType) String() string {
	return fmt.Sprintf("%s.%s%s", t.ParentExtension, t.Name, TypeArgsString(t.Args))
}
func (t CustomType) Equal(o SimpleType) bool {
	ot, ok := o.(CustomType)
	if !ok || t.ParentExtension != ot.ParentExtension || t.Name != ot.Name || len(t.Args) != len(ot.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(ot.Args[i]) {
			return false
		}
	}

	return true
}

// DefName implements the CustomConcrete capability (def_name).
func (t CustomType) DefName() string { return t.Name }

// TypeArgs implements the CustomConcrete capability (type_args).
func (t CustomType) TypeArgs() []TypeArg { return t.Args }

// ParentExtensionID implements the CustomConcrete capability (parent_extension).
func (t CustomType) ParentExtensionID() extid.ID { return t.ParentExtension }

// Package constcheck type-checks constant values against SimpleTypes.
package constcheck

import (
	"errors"
	"fmt"

	"github.com/hugr-ir/hugr/types"
)

// Sentinel errors; call sites wrap with context via fmt.Errorf.
var (
	ErrIntWidthMismatch   = errors.New("constcheck: integer width mismatch")
	ErrTypeMismatch       = errors.New("constcheck: value does not match type")
	ErrTupleWrongLength   = errors.New("constcheck: tuple length mismatch")
	ErrSumTagOutOfRange   = errors.New("constcheck: sum tag out of range")
	ErrVariantRowMismatch = errors.New("constcheck: sum variant row mismatch")
)

// Const is a constant value attached to a HUGR Const node. Closed sum:
// ConstInt, ConstFloat64, ConstTuple, ConstSum.
type Const interface {
	isConst()
	String() string
}

// ConstInt is a fixed-width integer literal.
type ConstInt struct {
	Value int64
	Width int
}

func (ConstInt) isConst()      {}
func (c ConstInt) String() string { return fmt.Sprintf("%d:i%d", c.Value, c.Width) }

// ConstFloat64 is a double-precision float literal.
type ConstFloat64 struct{ Value float64 }

func (ConstFloat64) isConst()      {}
func (c ConstFloat64) String() string { return fmt.Sprintf("%gf64", c.Value) }

// ConstTuple is an ordered tuple of constants.
type ConstTuple struct{ Elems []Const }

func (ConstTuple) isConst() {}
func (c ConstTuple) String() string {
	s := "("
	for i, e := range c.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}

	return s + ")"
}

// ConstSum is a tagged sum value: Tag selects the variant, Value is
// the payload for that variant.
type ConstSum struct {
	Tag   int
	Value Const
}

func (ConstSum) isConst()      {}
func (c ConstSum) String() string { return fmt.Sprintf("Sum#%d(%s)", c.Tag, c.Value) }

// TypeCheck reports whether c is a legal value of type t. Integer
// width must match exactly, tuple lengths must match exactly, and a
// float only matches a float type.
func TypeCheck(t types.SimpleType, c Const) error {
	switch tv := t.(type) {
	case types.IntType:
		ci, ok := c.(ConstInt)
		if !ok {
			return fmt.Errorf("TypeCheck: %s against %s: %w", c, t, ErrTypeMismatch)
		}
		if ci.Width != tv.Width {
			return fmt.Errorf("TypeCheck: width %d != %d: %w", tv.Width, ci.Width, ErrIntWidthMismatch)
		}

		return nil
	case types.StructType:
		ct, ok := c.(ConstTuple)
		if !ok {
			return fmt.Errorf("TypeCheck: %s against %s: %w", c, t, ErrTypeMismatch)
		}
		if len(ct.Elems) != tv.Fields.Len() {
			return fmt.Errorf("TypeCheck: tuple has %d elems, type wants %d: %w", len(ct.Elems), tv.Fields.Len(), ErrTupleWrongLength)
		}
		for i, elem := range ct.Elems {
			if err := TypeCheck(tv.Fields.Get(i), elem); err != nil {
				return fmt.Errorf("TypeCheck: tuple element %d: %w", i, err)
			}
		}

		return nil
	case types.PairType:
		ct, ok := c.(ConstTuple)
		if !ok || len(ct.Elems) != 2 {
			return fmt.Errorf("TypeCheck: %s against %s: %w", c, t, ErrTupleWrongLength)
		}
		if err := TypeCheck(tv.First, ct.Elems[0]); err != nil {
			return err
		}

		return TypeCheck(tv.Second, ct.Elems[1])
	case types.PredicateType:
		cs, ok := c.(ConstSum)
		if !ok {
			return fmt.Errorf("TypeCheck: %s against %s: %w", c, t, ErrTypeMismatch)
		}
		if cs.Tag < 0 || cs.Tag >= len(tv.Variants) {
			return fmt.Errorf("TypeCheck: tag %d of %d variants: %w", cs.Tag, len(tv.Variants), ErrSumTagOutOfRange)
		}
		variant := tv.Variants[cs.Tag]
		switch variant.Len() {
		case 0:
			if cs.Value != nil {
				return fmt.Errorf("TypeCheck: variant %d is empty, got %s: %w", cs.Tag, cs.Value, ErrVariantRowMismatch)
			}

			return nil
		case 1:
			if err := TypeCheck(variant.Get(0), cs.Value); err != nil {
				return fmt.Errorf("TypeCheck: variant %d: %w", cs.Tag, err)
			}

			return nil
		default:
			ct, ok := cs.Value.(ConstTuple)
			if !ok || len(ct.Elems) != variant.Len() {
				return fmt.Errorf("TypeCheck: variant %d wants %d elements, got %s: %w", cs.Tag, variant.Len(), cs.Value, ErrVariantRowMismatch)
			}
			for i, elem := range ct.Elems {
				if err := TypeCheck(variant.Get(i), elem); err != nil {
					return fmt.Errorf("TypeCheck: variant %d element %d: %w", cs.Tag, i, err)
				}
			}

			return nil
		}
	case typeCheckedAsFloat:
		if _, ok := c.(ConstFloat64); !ok {
			return fmt.Errorf("TypeCheck: %s against %s: %w", c, t, ErrTypeMismatch)
		}

		return nil
	default:
		return fmt.Errorf("TypeCheck: %s against %s: %w", c, t, ErrTypeMismatch)
	}
}

// typeCheckedAsFloat is implemented by Float64Type, the wrapper for the
// well-known float64 opaque CustomType.
type typeCheckedAsFloat interface {
	types.SimpleType
	isFloat64()
}

// Float64Type is the opaque custom type used for double-precision
// float constants; arithmetic extensions declare it by this shape.
// The core type system has no built-in float variant, so it is modeled
// as a CustomType wrapper satisfying typeCheckedAsFloat.
type Float64Type struct {
	types.CustomType
}

func (Float64Type) isFloat64() {}

// NewFloat64Type wraps ext, the CustomType an arithmetic extension
// declares for float64, as a Float64Type; ext is used as given.
func NewFloat64Type(ext types.CustomType) Float64Type {
	return Float64Type{CustomType: ext}
}

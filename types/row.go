package types

import "strings"

// Row is an ordered, fixed sequence of SimpleTypes: the shape of a
// tuple, a dataflow port list, or a sum variant.
type Row struct {
	types []SimpleType
}

// NewRow constructs a Row over the given types, in order.
func NewRow(ts ...SimpleType) Row {
	cp := make([]SimpleType, len(ts))
	copy(cp, ts)

	return Row{types: cp}
}

// EmptyRow is the zero-length row, used for Input/Output of
// no-argument regions and unit predicate variants.
func EmptyRow() Row { return Row{} }

// Len returns the number of elements.
func (r Row) Len() int { return len(r.types) }

// IsEmpty reports whether the row has no elements.
func (r Row) IsEmpty() bool { return len(r.types) == 0 }

// Get returns the element at i.
func (r Row) Get(i int) SimpleType { return r.types[i] }

// Types returns the row's elements in order. The returned slice must
// not be mutated by the caller.
func (r Row) Types() []SimpleType { return r.types }

// PurelyLinear reports whether the row is non-empty and every element
// is non-copyable; an empty row is not purely linear.
func (r Row) PurelyLinear() bool {
	for _, t := range r.types {
		if IsCopyable(t) {
			return false
		}
	}

	return len(r.types) > 0
}

// PurelyClassical reports whether every element is copyable.
func (r Row) PurelyClassical() bool {
	for _, t := range r.types {
		if !IsCopyable(t) {
			return false
		}
	}

	return true
}

// Equal reports whether r and other have the same length and
// element-wise equal types.
func (r Row) Equal(other Row) bool {
	if len(r.types) != len(other.types) {
		return false
	}
	for i := range r.types {
		if !r.types[i].Equal(other.types[i]) {
			return false
		}
	}

	return true
}

// String renders the row as a comma-separated, bracketed list.
func (r Row) String() string {
	parts := make([]string, len(r.types))
	for i, t := range r.types {
		parts[i] = t.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// Append returns a new Row with t appended; r is left unmodified.
func (r Row) Append(t SimpleType) Row {
	out := make([]SimpleType, len(r.types)+1)
	copy(out, r.types)
	out[len(r.types)] = t

	return Row{types: out}
}

// Concat returns a new Row with other's elements appended after r's.
func (r Row) Concat(other Row) Row {
	out := make([]SimpleType, len(r.types)+len(other.types))
	copy(out, r.types)
	copy(out[len(r.types):], other.types)

	return Row{types: out}
}

// Package types implements the HUGR type system: a closed set of
// classical (copyable) and quantum/linear (non-copyable) SimpleTypes,
// Rows, Signatures, and the TypeParam/TypeArg machinery used to
// parameterise extension operations and types over them.
//
// Types are immutable, value-equal, and cheaply cloned. Go has no
// tagged-union sums, so the variant set is realized as a closed
// interface (SimpleType) implemented only by the structs declared in
// this package.
package types

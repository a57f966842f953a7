package types

import "errors"

// Sentinel errors for the type system. Definitions never embed the
// offending value; wrap with fmt.Errorf at the call site instead.
var (
	// ErrTypeArgArity indicates the number of TypeArgs does not match
	// the number of declared TypeParams.
	ErrTypeArgArity = errors.New("types: wrong number of type arguments")

	// ErrTypeArgMismatch indicates a TypeArg's kind does not match the
	// TypeParam it is meant to bind.
	ErrTypeArgMismatch = errors.New("types: type argument does not match parameter kind")

	// ErrFreeTypeVar indicates a VarType index has no corresponding
	// declaration in scope (or, during substitution, no bound value).
	ErrFreeTypeVar = errors.New("types: free type variable")

	// ErrWrongBound indicates a type does not satisfy the TypeBound a
	// TypeParam requires (see CheckTypeArgs).
	ErrWrongBound = errors.New("types: type bound mismatch")

	// ErrTypeVarKindMismatch indicates a type variable's cached kind
	// disagrees with its declared TypeParam.
	ErrTypeVarKindMismatch = errors.New("types: type variable kind mismatch")

	// ErrRowLengthMismatch indicates two rows expected to agree in length
	// do not.
	ErrRowLengthMismatch = errors.New("types: row length mismatch")
)

package builder

import "errors"

// Build error sentinels. hugr.ErrEntryAlreadyBuilt is reused directly
// by CFGBuilder rather than duplicated here (see cfg.go).
var (
	ErrWireCountMismatch   = errors.New("builder: wrong number of wires for this op or region")
	ErrWireTypeMismatch    = errors.New("builder: wire type does not match the expected row element")
	ErrWireAlreadyConsumed = errors.New("builder: non-copyable wire used more than once")
	ErrBadPredicateTag     = errors.New("builder: predicate tag out of range")
	ErrNotADeclaration     = errors.New("builder: handle does not refer to a function declaration")
)

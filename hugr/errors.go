package hugr

import "errors"

// Structural error sentinels.
var (
	ErrNodeNotFound            = errors.New("hugr: node not found")
	ErrNoParent                = errors.New("hugr: node has no parent (is the root)")
	ErrIllegalParentChild      = errors.New("hugr: illegal parent/child op pairing")
	ErrPortCountMismatch       = errors.New("hugr: port count does not match signature")
	ErrDanglingEdge            = errors.New("hugr: edge endpoint type mismatch")
	ErrDuplicateExit           = errors.New("hugr: more than one exit child in a CFG")
	ErrBranchSignatureMismatch = errors.New("hugr: branch outputs do not match successor's input row")
	ErrLinearReused            = errors.New("hugr: non-copyable port used more than once")
	ErrEntryAlreadyBuilt       = errors.New("hugr: CFG entry block already built")
	ErrWrongRootKind           = errors.New("hugr: root must be a Module")
	ErrNotDataflowParent       = errors.New("hugr: node is not a dataflow parent")
	ErrNotCFGParent            = errors.New("hugr: node is not a CFG")
	ErrExtensionsNotMonotone   = errors.New("hugr: extension requirements are not monotonic under hierarchy")
	ErrCyclicDataflow          = errors.New("hugr: dataflow region's sibling wiring is cyclic")
	ErrUnknownOpKind           = errors.New("hugr: unknown serialized op kind")
)

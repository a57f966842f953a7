package pgraph

import "errors"

// Sentinel errors for pgraph operations: flat, package-level, never
// stringified at definition site; callers use errors.Is to branch.
var (
	// ErrNodeNotFound indicates an operation referenced a non-existent node.
	ErrNodeNotFound = errors.New("pgraph: node not found")

	// ErrLinkNotFound indicates an operation referenced a non-existent link.
	ErrLinkNotFound = errors.New("pgraph: link not found")

	// ErrPortOutOfRange indicates a port offset exceeds the node's declared count.
	ErrPortOutOfRange = errors.New("pgraph: port offset out of range")

	// ErrWrongDirection indicates a PortID's Dir does not match the role required
	// (e.g. Link.Src must be Outgoing, Link.Dst must be Incoming).
	ErrWrongDirection = errors.New("pgraph: wrong port direction")
)

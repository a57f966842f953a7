package subgraph

import "errors"

// Subgraph error sentinels.
var (
	ErrEmptySubgraph            = errors.New("subgraph: node set is empty")
	ErrNonSharedParent          = errors.New("subgraph: nodes do not share one parent")
	ErrNonConvex                = errors.New("subgraph: induced node set is not convex")
	ErrStateOrderBoundary       = errors.New("subgraph: boundary touches an unsupported state-order port")
	ErrDuplicateIncomingPort    = errors.New("subgraph: incoming port appears in more than one partition")
	ErrEmptyPartition           = errors.New("subgraph: incoming boundary partition is empty")
	ErrPartitionTypeMismatch    = errors.New("subgraph: incoming boundary partition elements disagree in type")
	ErrNonCopyableGroup         = errors.New("subgraph: incoming boundary partition has more than one element but its type is not copyable")
	ErrNonCopyableDuplicate     = errors.New("subgraph: outgoing boundary port repeated but its type is not copyable")
	ErrWrongDirection           = errors.New("subgraph: boundary port has the wrong direction")
	ErrBoundaryNodeNotInSubgraph = errors.New("subgraph: boundary port's node is not in the subgraph")
	ErrBoundaryPeerInSubgraph   = errors.New("subgraph: boundary edge peer is inside the subgraph")
)

// Replacement error sentinels.
var (
	ErrInvalidDataflowGraph  = errors.New("subgraph: replacement root is not a DFG")
	ErrInvalidDataflowParent = errors.New("subgraph: replacement root has no Input/Output pair")
	ErrInvalidSignature      = errors.New("subgraph: replacement signature does not match the subgraph's")
)

package builder

import (
	"fmt"

	"github.com/hugr-ir/hugr/hugr"
	"github.com/hugr-ir/hugr/types"
)

// DFGBuilder builds the body of a nested DFG region; all dataflow
// methods come from the embedded dataflowBase. Also used standalone
// (root DFG of a scratch HUGR) to build the replacement argument of
// subgraph.NewSimpleReplacement.
type DFGBuilder struct {
	*dataflowBase
}

// NewReplacementDFG builds a standalone HUGR containing a single DFG
// node of signature sig as a child of a fresh Module root, suitable
// as the replacementRoot argument to subgraph.NewSimpleReplacement.
func NewReplacementDFG(sig types.Signature) (*hugr.Hugr, *DFGBuilder, error) {
	h := hugr.New()
	node, err := h.AddOp(h.Root(), hugr.DFGOp{Signature: sig})
	if err != nil {
		return nil, nil, fmt.Errorf("NewReplacementDFG: %w", err)
	}
	db, err := newDataflowBase(h, node, sig.Input, sig.Output)
	if err != nil {
		return nil, nil, fmt.Errorf("NewReplacementDFG: %w", err)
	}

	return h, &DFGBuilder{dataflowBase: db}, nil
}

package subgraph

import (
	"fmt"

	"github.com/hugr-ir/hugr/hugr"
	"github.com/hugr-ir/hugr/hugr/view"
	"github.com/hugr-ir/hugr/pgraph"
)

// SimpleReplacement pairs a SiblingSubgraph with a standalone
// replacement Hugr whose root is a dataflow parent (DFG) of matching
// signature. Applying it removes the subgraph's nodes and splices in
// the replacement's body, rewiring the boundary.
type SimpleReplacement struct {
	subgraph        *SiblingSubgraph
	replacement     *hugr.Hugr
	replacementRoot pgraph.NodeID
	repInput        pgraph.NodeID
	repOutput       pgraph.NodeID
	repBody         []pgraph.NodeID
}

// NewSimpleReplacement validates that replacementRoot is a dataflow
// parent with an Input/Output pair and that its signature matches
// sg's, as read against hostView (the view sg was extracted from).
func NewSimpleReplacement(hostView view.HugrView, sg *SiblingSubgraph, replacement *hugr.Hugr, replacementRoot pgraph.NodeID) (*SimpleReplacement, error) {
	rv := view.Whole(replacement)

	rootOp, err := rv.GetOpType(replacementRoot)
	if err != nil {
		return nil, err
	}
	if _, ok := rootOp.(hugr.DFGOp); !ok {
		return nil, fmt.Errorf("NewSimpleReplacement: %w", ErrInvalidDataflowGraph)
	}

	kids := rv.Children(replacementRoot)
	if len(kids) < 2 {
		return nil, fmt.Errorf("NewSimpleReplacement: %w", ErrInvalidDataflowParent)
	}
	repInput, repOutput := kids[0], kids[1]
	ok, err := isInputOutput(rv, repInput, repOutput)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("NewSimpleReplacement: %w", ErrInvalidDataflowParent)
	}

	wantSig, err := sg.Signature(hostView)
	if err != nil {
		return nil, err
	}
	gotSig := rootOp.(hugr.DFGOp).Signature
	if !wantSig.Equal(gotSig) {
		return nil, fmt.Errorf("NewSimpleReplacement: %w", ErrInvalidSignature)
	}

	return &SimpleReplacement{
		subgraph:        sg,
		replacement:     replacement,
		replacementRoot: replacementRoot,
		repInput:        repInput,
		repOutput:       repOutput,
		repBody:         kids[2:],
	}, nil
}

func isInputOutput(v view.HugrView, in, out pgraph.NodeID) (bool, error) {
	inOp, err := v.GetOpType(in)
	if err != nil {
		return false, err
	}
	outOp, err := v.GetOpType(out)
	if err != nil {
		return false, err
	}
	_, inOK := inOp.(hugr.InputOp)
	_, outOK := outOp.(hugr.OutputOp)

	return inOK && outOK, nil
}

// Apply performs the splice against host via host.ApplyRewrite: the
// replacement's body nodes are copied in as new children of the
// subgraph's parent, internal replacement links are recreated among
// them, the boundary is rewired against the host's still-standing
// Input/Output producers and consumers, and the subgraph's original
// nodes are removed. Either every step succeeds or host is left
// completely untouched.
func (r *SimpleReplacement) Apply(host *hugr.Hugr) error {
	rv := view.Whole(r.replacement)

	newOps := make([]hugr.OpType, len(r.repBody))
	for i, n := range r.repBody {
		op, err := rv.GetOpType(n)
		if err != nil {
			return err
		}
		newOps[i] = op
	}

	wire := func(scratch *hugr.Hugr, inserted []pgraph.NodeID) error {
		oldToNew := make(map[pgraph.NodeID]pgraph.NodeID, len(r.repBody))
		for i, old := range r.repBody {
			oldToNew[old] = inserted[i]
		}

		// Recreate every internal link between two repBody nodes.
		for i, old := range r.repBody {
			op := newOps[i]
			for off := 0; off < op.OutputRow().Len(); off++ {
				src := pgraph.PortID{Node: old, Offset: uint16(off), Dir: pgraph.Outgoing}
				for _, peer := range rv.LinkedPorts(src) {
					if _, ok := oldToNew[peer.Node]; !ok {
						continue // peer is repInput/repOutput, handled below
					}
					newSrc := pgraph.PortID{Node: oldToNew[old], Offset: src.Offset, Dir: pgraph.Outgoing}
					newDst := pgraph.PortID{Node: oldToNew[peer.Node], Offset: peer.Offset, Dir: pgraph.Incoming}
					if _, err := scratch.Connect(newSrc, newDst); err != nil {
						return err
					}
				}
			}
		}

		// Incoming boundary: wire each host producer to every
		// replacement-body consumer that repInput's matching port fed.
		repInOp, err := rv.GetOpType(r.repInput)
		if err != nil {
			return err
		}
		for k := 0; k < repInOp.OutputRow().Len(); k++ {
			if k >= len(r.subgraph.incoming) {
				break
			}
			group := r.subgraph.incoming[k]
			hostSrc, err := singlePeer(host, group[0])
			if err != nil {
				return err
			}

			src := pgraph.PortID{Node: r.repInput, Offset: uint16(k), Dir: pgraph.Outgoing}
			for _, peer := range rv.LinkedPorts(src) {
				newNode, ok := oldToNew[peer.Node]
				if !ok {
					continue
				}
				dst := pgraph.PortID{Node: newNode, Offset: peer.Offset, Dir: pgraph.Incoming}
				if _, err := scratch.Connect(hostSrc, dst); err != nil {
					return err
				}
			}
		}

		// Outgoing boundary: wire each replacement-body producer
		// feeding repOutput's matching port to the host's external
		// consumer of that outgoing boundary position.
		for j, hostProducer := range r.subgraph.outgoing {
			dst := pgraph.PortID{Node: r.repOutput, Offset: uint16(j), Dir: pgraph.Incoming}
			peers := rv.LinkedPorts(dst)
			if len(peers) != 1 {
				continue
			}

			var newSrc pgraph.PortID
			if peers[0].Node == r.repInput {
				// Pass-through wire (Input linked straight to Output,
				// e.g. an identity replacement): the host producer
				// feeding the matching incoming partition carries the
				// value out directly.
				k := int(peers[0].Offset)
				if k >= len(r.subgraph.incoming) {
					continue
				}
				hostSrc, err := singlePeer(host, r.subgraph.incoming[k][0])
				if err != nil {
					return err
				}
				newSrc = hostSrc
			} else {
				newNode, ok := oldToNew[peers[0].Node]
				if !ok {
					continue
				}
				newSrc = pgraph.PortID{Node: newNode, Offset: peers[0].Offset, Dir: pgraph.Outgoing}
			}

			hostConsumers := host.LinkedPorts(hostProducer)
			for _, hc := range hostConsumers {
				if _, inside := r.subgraph.nodeSet[hc.Node]; inside {
					continue
				}
				if _, err := scratch.Connect(newSrc, hc); err != nil {
					return err
				}
			}
		}

		return nil
	}

	_, err := host.ApplyRewrite(r.subgraph.parent, newOps, wire, r.subgraph.Nodes())

	return err
}

// singlePeer returns the one outgoing peer of incoming port p within
// host, per the precondition that each incoming boundary partition's
// ports all share one external producer.
func singlePeer(host *hugr.Hugr, p pgraph.PortID) (pgraph.PortID, error) {
	peers := host.LinkedPorts(p)
	if len(peers) != 1 {
		return pgraph.PortID{}, fmt.Errorf("singlePeer(%v): expected exactly one producer, got %d", p, len(peers))
	}

	return peers[0], nil
}

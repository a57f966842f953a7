// Package subgraph implements SiblingSubgraph extraction, convexity
// checking, and SimpleReplacement construction and application.
package subgraph

import (
	"fmt"
	"sort"

	"github.com/hugr-ir/hugr/hugr"
	"github.com/hugr-ir/hugr/hugr/view"
	"github.com/hugr-ir/hugr/pgraph"
	"github.com/hugr-ir/hugr/types"
)

// IncomingPorts is one partition of the incoming boundary: a
// non-empty group of (node, incoming port) pairs that all share type
// (one value is copied to every port in the group, which requires the
// type to be copyable when the group has more than one element).
type IncomingPorts = []pgraph.PortID

// SiblingSubgraph is a non-empty, convex, induced subset of nodes
// sharing one parent, together with its incoming and outgoing
// boundaries.
type SiblingSubgraph struct {
	parent   pgraph.NodeID
	nodes    []pgraph.NodeID
	nodeSet  map[pgraph.NodeID]struct{}
	incoming []IncomingPorts
	outgoing []pgraph.PortID
}

// Nodes returns the subgraph's node set, in deterministic (sorted) order.
func (s *SiblingSubgraph) Nodes() []pgraph.NodeID {
	out := make([]pgraph.NodeID, len(s.nodes))
	copy(out, s.nodes)

	return out
}

// Parent returns the one hierarchy parent every subgraph node shares.
func (s *SiblingSubgraph) Parent() pgraph.NodeID { return s.parent }

// IncomingBoundary returns the ordered partitions of incoming ports.
func (s *SiblingSubgraph) IncomingBoundary() []IncomingPorts { return s.incoming }

// OutgoingBoundary returns the ordered list of outgoing boundary ports.
func (s *SiblingSubgraph) OutgoingBoundary() []pgraph.PortID { return s.outgoing }

// Signature derives the subgraph's external FunctionType by reading
// the port types at the boundary in order: one representative port
// per incoming partition, then every outgoing port in its declared
// order.
func (s *SiblingSubgraph) Signature(v view.HugrView) (types.Signature, error) {
	in := make([]types.SimpleType, len(s.incoming))
	for i, group := range s.incoming {
		t, err := portType(v, group[0])
		if err != nil {
			return types.Signature{}, err
		}
		in[i] = t
	}

	out := make([]types.SimpleType, len(s.outgoing))
	for i, p := range s.outgoing {
		t, err := portTypeOut(v, p)
		if err != nil {
			return types.Signature{}, err
		}
		out[i] = t
	}

	return types.NewFunctionType(types.NewRow(in...), types.NewRow(out...)), nil
}

func portType(v view.HugrView, p pgraph.PortID) (types.SimpleType, error) {
	op, err := v.GetOpType(p.Node)
	if err != nil {
		return nil, err
	}
	row := op.InputRow()
	if int(p.Offset) >= row.Len() {
		return nil, fmt.Errorf("portType: %v: %w", p, ErrStateOrderBoundary)
	}

	return row.Get(int(p.Offset)), nil
}

func portTypeOut(v view.HugrView, p pgraph.PortID) (types.SimpleType, error) {
	op, err := v.GetOpType(p.Node)
	if err != nil {
		return nil, err
	}
	row := op.OutputRow()
	if int(p.Offset) >= row.Len() {
		return nil, fmt.Errorf("portTypeOut: %v: %w", p, ErrStateOrderBoundary)
	}

	return row.Get(int(p.Offset)), nil
}

// FromDataflowParent builds the SiblingSubgraph of parent's dataflow
// body: every child except the first two (Input, Output); the
// incoming boundary is the list of consumers of each Input port
// (grouped per port); the outgoing boundary is the list of producers
// wired to each Output port.
func FromDataflowParent(v view.HugrView, parent pgraph.NodeID) (*SiblingSubgraph, error) {
	kids := v.Children(parent)
	if len(kids) < 2 {
		return nil, fmt.Errorf("FromDataflowParent(%s): %w", parent, hugr.ErrNotDataflowParent)
	}
	inputNode, outputNode := kids[0], kids[1]
	body := kids[2:]
	if len(body) == 0 {
		return nil, fmt.Errorf("FromDataflowParent(%s): %w", parent, ErrEmptySubgraph)
	}

	inOp, err := v.GetOpType(inputNode)
	if err != nil {
		return nil, err
	}
	numInputPorts := inOp.OutputRow().Len()
	incoming := make([]IncomingPorts, 0, numInputPorts)
	for off := 0; off < numInputPorts; off++ {
		peers := v.LinkedPorts(pgraph.PortID{Node: inputNode, Offset: uint16(off), Dir: pgraph.Outgoing})
		if len(peers) == 0 {
			continue
		}
		group := make(IncomingPorts, len(peers))
		copy(group, peers)
		incoming = append(incoming, group)
	}

	outOp, err := v.GetOpType(outputNode)
	if err != nil {
		return nil, err
	}
	numOutputPorts := outOp.InputRow().Len()
	outgoing := make([]pgraph.PortID, 0, numOutputPorts)
	for off := 0; off < numOutputPorts; off++ {
		peers := v.LinkedPorts(pgraph.PortID{Node: outputNode, Offset: uint16(off), Dir: pgraph.Incoming})
		for _, p := range peers {
			outgoing = append(outgoing, p)
		}
	}

	return newValidated(v, parent, body, incoming, outgoing, nil)
}

// New builds a SiblingSubgraph from explicit incoming/outgoing
// boundary lists over nodes, validating boundary well-formedness and
// convexity.
func New(v view.HugrView, nodes []pgraph.NodeID, incoming []IncomingPorts, outgoing []pgraph.PortID, checker *pgraph.ConvexChecker) (*SiblingSubgraph, error) {
	return newValidated(v, "", nodes, incoming, outgoing, checker)
}

// FromNodeSet builds a SiblingSubgraph from a bare node set: the
// boundary is derived by inspecting which linked peers of nodes in
// the set fall outside it.
func FromNodeSet(v view.HugrView, nodes []pgraph.NodeID, checker *pgraph.ConvexChecker) (*SiblingSubgraph, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptySubgraph
	}

	set := make(map[pgraph.NodeID]struct{}, len(nodes))
	for _, n := range nodes {
		set[n] = struct{}{}
	}

	var incoming []IncomingPorts
	var outgoing []pgraph.PortID
	for _, n := range nodes {
		op, err := v.GetOpType(n)
		if err != nil {
			return nil, err
		}
		for off := 0; off < op.InputRow().Len(); off++ {
			p := pgraph.PortID{Node: n, Offset: uint16(off), Dir: pgraph.Incoming}
			peers := v.LinkedPorts(p)
			group := make(IncomingPorts, 0, len(peers))
			for _, peer := range peers {
				if _, inside := set[peer.Node]; !inside {
					group = append(group, p)
				}
			}
			if len(group) > 0 {
				incoming = append(incoming, group[:1])
			}
		}
		for off := 0; off < op.OutputRow().Len(); off++ {
			p := pgraph.PortID{Node: n, Offset: uint16(off), Dir: pgraph.Outgoing}
			peers := v.LinkedPorts(p)
			for _, peer := range peers {
				if _, inside := set[peer.Node]; !inside {
					outgoing = append(outgoing, p)
				}
			}
		}
	}

	return newValidated(v, "", nodes, incoming, outgoing, checker)
}

func newValidated(v view.HugrView, parentHint pgraph.NodeID, nodes []pgraph.NodeID, incoming []IncomingPorts, outgoing []pgraph.PortID, checker *pgraph.ConvexChecker) (*SiblingSubgraph, error) {
	if len(nodes) == 0 {
		return nil, ErrEmptySubgraph
	}

	nodeSet := make(map[pgraph.NodeID]struct{}, len(nodes))
	for _, n := range nodes {
		nodeSet[n] = struct{}{}
	}

	parent, err := sharedParent(v, nodes, parentHint)
	if err != nil {
		return nil, err
	}

	// A boundary edge that is both incoming and outgoing cuts an
	// internal wire: a path leaves the subgraph through the outgoing
	// boundary and immediately re-enters through the incoming one.
	outSet := make(map[pgraph.PortID]struct{}, len(outgoing))
	for _, p := range outgoing {
		outSet[p] = struct{}{}
	}
	for _, group := range incoming {
		for _, p := range group {
			for _, peer := range v.LinkedPorts(p) {
				if _, inside := nodeSet[peer.Node]; !inside {
					continue
				}
				if _, cut := outSet[peer]; cut {
					return nil, fmt.Errorf("subgraph: boundary cuts internal edge %v -> %v: %w", peer, p, ErrNonConvex)
				}
			}
		}
	}

	if err := validateIncoming(v, nodeSet, incoming); err != nil {
		return nil, err
	}
	if err := validateOutgoing(v, nodeSet, outgoing); err != nil {
		return nil, err
	}

	if !isConvex(v, nodeSet, checker) {
		return nil, ErrNonConvex
	}

	sorted := make([]pgraph.NodeID, len(nodes))
	copy(sorted, nodes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return &SiblingSubgraph{
		parent:   parent,
		nodes:    sorted,
		nodeSet:  nodeSet,
		incoming: incoming,
		outgoing: outgoing,
	}, nil
}

func sharedParent(v view.HugrView, nodes []pgraph.NodeID, hint pgraph.NodeID) (pgraph.NodeID, error) {
	parent := hint
	for _, n := range nodes {
		p, ok := v.GetParent(n)
		if !ok {
			return "", fmt.Errorf("sharedParent: node %s has no parent: %w", n, ErrNonSharedParent)
		}
		if parent == "" {
			parent = p

			continue
		}
		if p != parent {
			return "", fmt.Errorf("sharedParent: %w", ErrNonSharedParent)
		}
	}

	return parent, nil
}

func validateIncoming(v view.HugrView, nodeSet map[pgraph.NodeID]struct{}, incoming []IncomingPorts) error {
	seen := make(map[pgraph.PortID]struct{})
	for _, group := range incoming {
		if len(group) == 0 {
			return ErrEmptyPartition
		}
		var groupType types.SimpleType
		for _, p := range group {
			if p.Dir != pgraph.Incoming {
				return fmt.Errorf("validateIncoming: %v: %w", p, ErrWrongDirection)
			}
			if _, inside := nodeSet[p.Node]; !inside {
				return fmt.Errorf("validateIncoming: %v: %w", p, ErrBoundaryNodeNotInSubgraph)
			}
			if _, dup := seen[p]; dup {
				return fmt.Errorf("validateIncoming: %v: %w", p, ErrDuplicateIncomingPort)
			}
			seen[p] = struct{}{}

			t, err := portType(v, p)
			if err != nil {
				return err
			}
			if groupType == nil {
				groupType = t
			} else if !groupType.Equal(t) {
				return fmt.Errorf("validateIncoming: %v: %w", p, ErrPartitionTypeMismatch)
			}

			for _, peer := range v.LinkedPorts(p) {
				if _, inside := nodeSet[peer.Node]; inside {
					return fmt.Errorf("validateIncoming: %v: %w", p, ErrBoundaryPeerInSubgraph)
				}
			}
		}
		if len(group) > 1 && !types.IsCopyable(groupType) {
			return fmt.Errorf("validateIncoming: %w", ErrNonCopyableGroup)
		}
	}

	return nil
}

func validateOutgoing(v view.HugrView, nodeSet map[pgraph.NodeID]struct{}, outgoing []pgraph.PortID) error {
	counts := make(map[pgraph.PortID]int)
	for _, p := range outgoing {
		if p.Dir != pgraph.Outgoing {
			return fmt.Errorf("validateOutgoing: %v: %w", p, ErrWrongDirection)
		}
		if _, inside := nodeSet[p.Node]; !inside {
			return fmt.Errorf("validateOutgoing: %v: %w", p, ErrBoundaryNodeNotInSubgraph)
		}
		for _, peer := range v.LinkedPorts(p) {
			if _, inside := nodeSet[peer.Node]; inside {
				return fmt.Errorf("validateOutgoing: %v: %w", p, ErrBoundaryPeerInSubgraph)
			}
		}
		counts[p]++
	}
	for p, n := range counts {
		if n <= 1 {
			continue
		}
		t, err := portTypeOut(v, p)
		if err != nil {
			return err
		}
		if !types.IsCopyable(t) {
			return fmt.Errorf("validateOutgoing: %v: %w", p, ErrNonCopyableDuplicate)
		}
	}

	return nil
}

// isConvex checks convexity of nodeSet using checker if supplied,
// otherwise constructs and discards a one-shot checker over
// v.Portgraph().
func isConvex(v view.HugrView, nodeSet map[pgraph.NodeID]struct{}, checker *pgraph.ConvexChecker) bool {
	if checker != nil {
		return checker.IsConvex(nodeSet)
	}

	return pgraph.IsConvexOneShot(v.Portgraph(), nodeSet)
}

package dfs

import (
	"context"

	"github.com/hugr-ir/hugr/pgraph"
)

// TopoOption configures optional behavior for TopologicalSort.
type TopoOption func(*topoOptions)

type topoOptions struct {
	ctx context.Context
}

func defaultTopoOptions() topoOptions {
	return topoOptions{ctx: context.Background()}
}

// WithCancelContext sets the cancellation context consulted between
// visits; a nil ctx is ignored.
func WithCancelContext(ctx context.Context) TopoOption {
	return func(o *topoOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

type topoSorter struct {
	g     *pgraph.Graph
	scope map[pgraph.NodeID]struct{}
	opts  topoOptions
	state map[pgraph.NodeID]int
	order []pgraph.NodeID
}

// TopologicalSort orders nodes so that every link between two of them
// runs from an earlier to a later position, failing with
// ErrCycleDetected if the induced subgraph is cyclic. Three-color DFS
// with post-order reversal.
func TopologicalSort(g *pgraph.Graph, nodes []pgraph.NodeID, opts ...TopoOption) ([]pgraph.NodeID, error) {
	o := defaultTopoOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &topoSorter{
		g:     g,
		scope: nodeScope(nodes),
		opts:  o,
		state: make(map[pgraph.NodeID]int, len(nodes)),
		order: make([]pgraph.NodeID, 0, len(nodes)),
	}

	for _, n := range nodes {
		if s.state[n] == White {
			if err := s.visit(n); err != nil {
				return nil, err
			}
		}
	}

	for i, j := 0, len(s.order)-1; i < j; i, j = i+1, j-1 {
		s.order[i], s.order[j] = s.order[j], s.order[i]
	}

	return s.order, nil
}

func (s *topoSorter) visit(n pgraph.NodeID) error {
	select {
	case <-s.opts.ctx.Done():
		return s.opts.ctx.Err()
	default:
	}

	if s.state[n] == Gray {
		return ErrCycleDetected
	}
	if s.state[n] == Black {
		return nil
	}
	s.state[n] = Gray

	for _, nbr := range successors(s.g, n, s.scope) {
		if err := s.visit(nbr); err != nil {
			return err
		}
	}

	s.state[n] = Black
	s.order = append(s.order, n)

	return nil
}

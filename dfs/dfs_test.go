package dfs_test

import (
	"testing"

	"github.com/hugr-ir/hugr/dfs"
	"github.com/hugr-ir/hugr/pgraph"
	"github.com/stretchr/testify/require"
)

func TestHasCycleAcyclic(t *testing.T) {
	t.Parallel()

	g := pgraph.NewGraph()
	a := g.AddNode(0, 1)
	b := g.AddNode(1, 1)
	c := g.AddNode(1, 0)
	_, err := g.Connect(pgraph.PortID{Node: a, Offset: 0, Dir: pgraph.Outgoing}, pgraph.PortID{Node: b, Offset: 0, Dir: pgraph.Incoming})
	require.NoError(t, err)
	_, err = g.Connect(pgraph.PortID{Node: b, Offset: 0, Dir: pgraph.Outgoing}, pgraph.PortID{Node: c, Offset: 0, Dir: pgraph.Incoming})
	require.NoError(t, err)

	require.False(t, dfs.HasCycle(g, []pgraph.NodeID{a, b, c}))

	order, err := dfs.TopologicalSort(g, []pgraph.NodeID{c, b, a})
	require.NoError(t, err)
	require.Equal(t, []pgraph.NodeID{a, b, c}, order)
}

func TestHasCycleCyclic(t *testing.T) {
	t.Parallel()

	g := pgraph.NewGraph()
	a := g.AddNode(1, 1)
	b := g.AddNode(1, 1)
	_, err := g.Connect(pgraph.PortID{Node: a, Offset: 0, Dir: pgraph.Outgoing}, pgraph.PortID{Node: b, Offset: 0, Dir: pgraph.Incoming})
	require.NoError(t, err)
	_, err = g.Connect(pgraph.PortID{Node: b, Offset: 0, Dir: pgraph.Outgoing}, pgraph.PortID{Node: a, Offset: 0, Dir: pgraph.Incoming})
	require.NoError(t, err)

	require.True(t, dfs.HasCycle(g, []pgraph.NodeID{a, b}))

	_, err = dfs.TopologicalSort(g, []pgraph.NodeID{a, b})
	require.ErrorIs(t, err, dfs.ErrCycleDetected)
}

func TestHasCycleIgnoresOutOfScopeLinks(t *testing.T) {
	t.Parallel()

	g := pgraph.NewGraph()
	a := g.AddNode(0, 1)
	b := g.AddNode(1, 1)
	outside := g.AddNode(1, 0)
	_, err := g.Connect(pgraph.PortID{Node: a, Offset: 0, Dir: pgraph.Outgoing}, pgraph.PortID{Node: b, Offset: 0, Dir: pgraph.Incoming})
	require.NoError(t, err)
	_, err = g.Connect(pgraph.PortID{Node: b, Offset: 0, Dir: pgraph.Outgoing}, pgraph.PortID{Node: outside, Offset: 0, Dir: pgraph.Incoming})
	require.NoError(t, err)

	require.False(t, dfs.HasCycle(g, []pgraph.NodeID{a, b}))
}

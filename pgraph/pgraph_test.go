// SPDX-License-Identifier: MIT
package pgraph_test

import (
	"errors"
	"testing"

	"github.com/hugr-ir/hugr/pgraph"
	"github.com/stretchr/testify/require"
)

func TestAddNodeConnect(t *testing.T) {
	t.Parallel()

	g := pgraph.NewGraph()
	a := g.AddNode(0, 1)
	b := g.AddNode(1, 0)

	lid, err := g.Connect(pgraph.PortID{Node: a, Offset: 0, Dir: pgraph.Outgoing}, pgraph.PortID{Node: b, Offset: 0, Dir: pgraph.Incoming})
	require.NoError(t, err)
	require.NotEmpty(t, lid)

	require.True(t, g.IsLinked(pgraph.PortID{Node: a, Offset: 0, Dir: pgraph.Outgoing}))
	require.True(t, g.IsLinked(pgraph.PortID{Node: b, Offset: 0, Dir: pgraph.Incoming}))

	peers := g.LinkedPorts(pgraph.PortID{Node: a, Offset: 0, Dir: pgraph.Outgoing})
	require.Len(t, peers, 1)
	require.Equal(t, b, peers[0].Node)
}

func TestConnectWrongDirection(t *testing.T) {
	t.Parallel()

	g := pgraph.NewGraph()
	a := g.AddNode(0, 1)
	b := g.AddNode(1, 0)

	_, err := g.Connect(pgraph.PortID{Node: a, Offset: 0, Dir: pgraph.Incoming}, pgraph.PortID{Node: b, Offset: 0, Dir: pgraph.Incoming})
	require.True(t, errors.Is(err, pgraph.ErrWrongDirection))
}

func TestConnectOutOfRange(t *testing.T) {
	t.Parallel()

	g := pgraph.NewGraph()
	a := g.AddNode(0, 1)
	b := g.AddNode(1, 0)

	_, err := g.Connect(pgraph.PortID{Node: a, Offset: 5, Dir: pgraph.Outgoing}, pgraph.PortID{Node: b, Offset: 0, Dir: pgraph.Incoming})
	require.True(t, errors.Is(err, pgraph.ErrPortOutOfRange))
}

func TestRemoveNodeRemovesLinks(t *testing.T) {
	t.Parallel()

	g := pgraph.NewGraph()
	a := g.AddNode(0, 1)
	b := g.AddNode(1, 0)
	_, err := g.Connect(pgraph.PortID{Node: a, Offset: 0, Dir: pgraph.Outgoing}, pgraph.PortID{Node: b, Offset: 0, Dir: pgraph.Incoming})
	require.NoError(t, err)

	require.NoError(t, g.RemoveNode(a))
	require.False(t, g.HasNode(a))
	require.False(t, g.IsLinked(pgraph.PortID{Node: b, Offset: 0, Dir: pgraph.Incoming}))
	require.Len(t, g.Links(), 0)
}

func TestReachableAndConvex(t *testing.T) {
	t.Parallel()

	g := pgraph.NewGraph()
	a := g.AddNode(0, 1)
	b := g.AddNode(1, 1)
	c := g.AddNode(1, 0)
	d := g.AddNode(1, 0)

	mustConnect := func(src, dst pgraph.NodeID) {
		_, err := g.Connect(pgraph.PortID{Node: src, Offset: 0, Dir: pgraph.Outgoing}, pgraph.PortID{Node: dst, Offset: 0, Dir: pgraph.Incoming})
		require.NoError(t, err)
	}
	mustConnect(a, b)
	mustConnect(b, c)
	mustConnect(a, d)

	require.True(t, g.Reachable(a, c))
	require.False(t, g.Reachable(c, a))

	checker := pgraph.NewConvexChecker(g)
	// {a, b} is convex: nothing outside reaches back into it after leaving.
	require.True(t, checker.IsConvex(map[pgraph.NodeID]struct{}{a: {}, b: {}}))
	// {a, c} is not convex: a -> b -> c leaves the set at b and returns at c.
	require.False(t, checker.IsConvex(map[pgraph.NodeID]struct{}{a: {}, c: {}}))
}

func TestCloneIndependence(t *testing.T) {
	t.Parallel()

	g := pgraph.NewGraph()
	a := g.AddNode(0, 1)
	b := g.AddNode(1, 0)
	_, err := g.Connect(pgraph.PortID{Node: a, Offset: 0, Dir: pgraph.Outgoing}, pgraph.PortID{Node: b, Offset: 0, Dir: pgraph.Incoming})
	require.NoError(t, err)

	clone := g.Clone()
	require.NoError(t, g.RemoveNode(a))
	require.True(t, clone.HasNode(a))
	require.Len(t, clone.Links(), 1)
}

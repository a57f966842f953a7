// Package view implements read-only projections over a hugr.Hugr:
// the whole-HUGR view, a SiblingGraph restricted to one node and its
// direct children, and a HierarchyView re-rooted at a nested node.
// All three are zero-copy, borrowing the owning Hugr rather than
// cloning it.
package view

import (
	"github.com/hugr-ir/hugr/hugr"
	"github.com/hugr-ir/hugr/pgraph"
)

// HugrView is a read-only capability over a HUGR or a projection of
// one.
type HugrView interface {
	Root() pgraph.NodeID
	GetParent(n pgraph.NodeID) (pgraph.NodeID, bool)
	Children(n pgraph.NodeID) []pgraph.NodeID
	GetOpType(n pgraph.NodeID) (hugr.OpType, error)
	NumInputs(n pgraph.NodeID) int
	NumOutputs(n pgraph.NodeID) int
	NodeInputs(n pgraph.NodeID) []pgraph.PortID
	NodeOutputs(n pgraph.NodeID) []pgraph.PortID
	LinkedPorts(p pgraph.PortID) []pgraph.PortID
	IsLinked(p pgraph.PortID) bool
	Portgraph() *pgraph.Graph
}

// wholeView implements HugrView directly over an owning *hugr.Hugr,
// with no restriction.
type wholeView struct {
	h *hugr.Hugr
}

// Whole wraps h as a HugrView over the entire HUGR.
func Whole(h *hugr.Hugr) HugrView { return wholeView{h: h} }

func (v wholeView) Root() pgraph.NodeID { return v.h.Root() }
func (v wholeView) GetParent(n pgraph.NodeID) (pgraph.NodeID, bool) { return v.h.GetParent(n) }
func (v wholeView) Children(n pgraph.NodeID) []pgraph.NodeID        { return v.h.Children(n) }
func (v wholeView) GetOpType(n pgraph.NodeID) (hugr.OpType, error)  { return v.h.GetOpType(n) }
func (v wholeView) NumInputs(n pgraph.NodeID) int                   { return v.h.NumInputs(n) }
func (v wholeView) NumOutputs(n pgraph.NodeID) int                  { return v.h.NumOutputs(n) }
func (v wholeView) LinkedPorts(p pgraph.PortID) []pgraph.PortID     { return v.h.LinkedPorts(p) }
func (v wholeView) IsLinked(p pgraph.PortID) bool                   { return v.h.IsLinked(p) }
func (v wholeView) Portgraph() *pgraph.Graph                        { return v.h.Portgraph() }

func (v wholeView) NodeInputs(n pgraph.NodeID) []pgraph.PortID {
	return ports(v.h.NumInputs(n), n, pgraph.Incoming)
}

func (v wholeView) NodeOutputs(n pgraph.NodeID) []pgraph.PortID {
	return ports(v.h.NumOutputs(n), n, pgraph.Outgoing)
}

func ports(count int, n pgraph.NodeID, dir pgraph.Direction) []pgraph.PortID {
	out := make([]pgraph.PortID, count)
	for i := range out {
		out[i] = pgraph.PortID{Node: n, Offset: uint16(i), Dir: dir}
	}

	return out
}

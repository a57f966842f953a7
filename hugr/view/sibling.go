package view

import (
	"fmt"

	"github.com/hugr-ir/hugr/hugr"
	"github.com/hugr-ir/hugr/pgraph"
)

// ErrNotAContainer indicates SiblingGraphAt was asked to restrict the
// view to a node with no children.
var ErrNotAContainer = fmt.Errorf("view: node has no children to restrict to")

// SiblingGraph restricts a HugrView to one node's direct children: its
// Root() returns the restricting node's first child's parent (the
// node itself), and Children/GetParent are clipped to that subtree's
// top level.
type SiblingGraph struct {
	inner  HugrView
	parent pgraph.NodeID
	set    map[pgraph.NodeID]struct{}
}

// SiblingGraphAt builds a SiblingGraph restricted to parent's direct
// children within base.
func SiblingGraphAt(base HugrView, parent pgraph.NodeID) (*SiblingGraph, error) {
	kids := base.Children(parent)
	if len(kids) == 0 {
		return nil, ErrNotAContainer
	}
	set := make(map[pgraph.NodeID]struct{}, len(kids))
	for _, k := range kids {
		set[k] = struct{}{}
	}

	return &SiblingGraph{inner: base, parent: parent, set: set}, nil
}

// Root returns the node whose children this view exposes.
func (s *SiblingGraph) Root() pgraph.NodeID { return s.parent }

// GetParent returns n's parent if n is one of this view's siblings.
func (s *SiblingGraph) GetParent(n pgraph.NodeID) (pgraph.NodeID, bool) {
	if _, ok := s.set[n]; !ok {
		return "", false
	}

	return s.parent, true
}

// Children returns n's children if n is the restricting parent or one
// of its children; otherwise nil (out of view).
func (s *SiblingGraph) Children(n pgraph.NodeID) []pgraph.NodeID {
	if n != s.parent {
		if _, ok := s.set[n]; !ok {
			return nil
		}
	}

	return s.inner.Children(n)
}

func (s *SiblingGraph) GetOpType(n pgraph.NodeID) (hugr.OpType, error) { return s.inner.GetOpType(n) }
func (s *SiblingGraph) NumInputs(n pgraph.NodeID) int                  { return s.inner.NumInputs(n) }
func (s *SiblingGraph) NumOutputs(n pgraph.NodeID) int                 { return s.inner.NumOutputs(n) }
func (s *SiblingGraph) NodeInputs(n pgraph.NodeID) []pgraph.PortID     { return s.inner.NodeInputs(n) }
func (s *SiblingGraph) NodeOutputs(n pgraph.NodeID) []pgraph.PortID    { return s.inner.NodeOutputs(n) }
func (s *SiblingGraph) LinkedPorts(p pgraph.PortID) []pgraph.PortID    { return s.inner.LinkedPorts(p) }
func (s *SiblingGraph) IsLinked(p pgraph.PortID) bool                  { return s.inner.IsLinked(p) }
func (s *SiblingGraph) Portgraph() *pgraph.Graph                       { return s.inner.Portgraph() }

// Siblings returns the node set this view restricts to, in the
// parent's child order.
func (s *SiblingGraph) Siblings() []pgraph.NodeID {
	return s.inner.Children(s.parent)
}

// HierarchyView re-roots a HugrView at a nested node n: Root()
// reports n itself, and every other method delegates unchanged.
// Unlike SiblingGraph it does not restrict which nodes are visible,
// only which node Root() reports.
type HierarchyView struct {
	inner HugrView
	root  pgraph.NodeID
}

// HierarchyViewAt re-roots base at n.
func HierarchyViewAt(base HugrView, n pgraph.NodeID) *HierarchyView {
	return &HierarchyView{inner: base, root: n}
}

func (v *HierarchyView) Root() pgraph.NodeID { return v.root }
func (v *HierarchyView) GetParent(n pgraph.NodeID) (pgraph.NodeID, bool) {
	if n == v.root {
		return "", false
	}

	return v.inner.GetParent(n)
}
func (v *HierarchyView) Children(n pgraph.NodeID) []pgraph.NodeID     { return v.inner.Children(n) }
func (v *HierarchyView) GetOpType(n pgraph.NodeID) (hugr.OpType, error) { return v.inner.GetOpType(n) }
func (v *HierarchyView) NumInputs(n pgraph.NodeID) int                { return v.inner.NumInputs(n) }
func (v *HierarchyView) NumOutputs(n pgraph.NodeID) int               { return v.inner.NumOutputs(n) }
func (v *HierarchyView) NodeInputs(n pgraph.NodeID) []pgraph.PortID   { return v.inner.NodeInputs(n) }
func (v *HierarchyView) NodeOutputs(n pgraph.NodeID) []pgraph.PortID  { return v.inner.NodeOutputs(n) }
func (v *HierarchyView) LinkedPorts(p pgraph.PortID) []pgraph.PortID  { return v.inner.LinkedPorts(p) }
func (v *HierarchyView) IsLinked(p pgraph.PortID) bool                { return v.inner.IsLinked(p) }
func (v *HierarchyView) Portgraph() *pgraph.Graph                     { return v.inner.Portgraph() }

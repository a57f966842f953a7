// Package hugr implements the HUGR core: a typed, hierarchical
// program graph built from a pgraph.Graph plus a side table of
// per-node OpTypes and an explicit parent/ordered-children hierarchy,
// together with the HugrMut mutation capability and the Validate
// well-formedness checker.
//
// Mutation is confined to a small method surface (AddOp, Connect,
// Disconnect, SetParent, RemoveNode, ApplyRewrite) over an ordered
// parent/child hierarchy of typed nodes.
package hugr

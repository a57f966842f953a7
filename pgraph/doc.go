// Package pgraph provides the low-level, hierarchy-free node/port/link
// store that hugr.Hugr and friends are built on top of: nodes with
// counted ports, directed links between ports, reachability, and a
// convexity checker. Enumeration order is always deterministic.
package pgraph

// Package builder implements the typed, incremental construction
// surface over hugr: ModuleBuilder, FunctionBuilder,
// DFGBuilder, CFGBuilder and BlockBuilder, composed so that every HUGR
// they produce is well-formed by construction — the Input/Output pair
// of a dataflow region is always created before any other child, and a
// non-copyable Wire can never be connected twice.
//
// The capabilities layer by embedding rather than inheritance:
// Container, then Dataflow, then the CFG/Block specializations. A
// builder's state changes shape at each step (ModuleBuilder begets
// FunctionBuilder begets DFGBuilder), so each step returns the next
// builder in the chain rather than reconfiguring a single one.
package builder

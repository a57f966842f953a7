// Package hugr_ir (github.com/hugr-ir/hugr) is a typed, hierarchical
// portgraph intermediate representation for quantum-classical
// programs.
//
// A HUGR is a tree of regions (Module, function, DFG, CFG, Conditional,
// TailLoop) whose leaves are typed dataflow operations wired together
// by ports; every node's in/out signature is checked against its
// neighbours as it is built, and the whole structure can be validated,
// queried, and rewritten in place.
//
// Under the hood, the module is organized as:
//
//	pgraph/     — low-level node/port/link primitive, reachability, convexity
//	types/      — the closed SimpleType system, Row, Signature, substitution
//	extension/  — named parametric op/type namespaces and their registry
//	dfs/        — cycle detection and topological order over a sibling scope
//	hugr/       — the core HUGR type, mutation API, and the validator
//	hugr/view/  — read-only views over a Hugr
//	subgraph/   — sibling-subgraph extraction, convexity, and rewrite
//	builder/    — typed incremental construction (Module/Function/DFG/CFG)
//
//	go get github.com/hugr-ir/hugr
package hugr_ir

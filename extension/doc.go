// Package extension implements the named, declarative namespace layer
// that sits above the core type system: Extensions bundle OpDefs,
// TypeDefs and constant values, and an ExtensionRegistry is an
// immutable, validated, ordered collection of Extensions shared by
// reference across many HUGRs.
//
// ExtensionId and ExtensionSet themselves live in the sibling package
// extid (imported here), to avoid a cycle against the types package.
package extension

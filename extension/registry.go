package extension

import (
	"fmt"

	"github.com/hugr-ir/hugr/extid"
	"github.com/hugr-ir/hugr/types"
)

// Registry is an ordered, immutable map from ExtensionId to Extension.
// Once constructed it is safe to share by reference across many HUGRs.
// Iteration follows insertion order.
type Registry struct {
	order []extid.ID
	byID  map[extid.ID]*Extension
}

// NewRegistry builds a Registry from exts, in the given order. It
// fails with ErrDuplicateExtension on a repeated name, then validates
// every extension against the fully populated registry, failing with
// whatever the first validation error is.
//
// Validation is two-phase (types first, then operations); no perfect
// topological order exists for mutually-recursive parametric types.
func NewRegistry(exts ...*Extension) (*Registry, error) {
	r := &Registry{byID: make(map[extid.ID]*Extension, len(exts))}
	for _, e := range exts {
		if _, exists := r.byID[e.ID()]; exists {
			return nil, fmt.Errorf("NewRegistry: %s: %w", e.ID(), ErrDuplicateExtension)
		}
		r.byID[e.ID()] = e
		r.order = append(r.order, e.ID())
	}

	for _, e := range exts {
		if err := r.validateExtension(e); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Get returns the Extension registered under id.
func (r *Registry) Get(id extid.ID) (*Extension, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("Registry.Get(%s): %w", id, ErrExtensionNotFound)
	}

	return e, nil
}

// IDs returns every registered ExtensionId in insertion order.
func (r *Registry) IDs() []extid.ID {
	out := make([]extid.ID, len(r.order))
	copy(out, r.order)

	return out
}

// validateExtension checks phase one (types: every TypeDef reference
// resolves) then phase two (ops: every OpDef reference resolves).
// This is advisory: it cannot prove a signature function is well-typed
// for every legal argument pattern, only that the types it is declared
// to reference exist.
func (r *Registry) validateExtension(e *Extension) error {
	for _, ref := range e.referencedTypes() {
		target, err := r.Get(ref.Extension)
		if err != nil {
			return fmt.Errorf("validateExtension(%s): reference to %s.%s: %w", e.ID(), ref.Extension, ref.Name, err)
		}
		if _, err := target.GetType(ref.Name); err != nil {
			return fmt.Errorf("validateExtension(%s): reference to %s.%s: %w", e.ID(), ref.Extension, ref.Name, err)
		}
	}

	return nil
}

// ResolveSignature finds extName.opName in the registry and computes
// its Signature for args. Fails with ErrExtensionNotFound or
// ErrExtensionOpNotFound, or whatever ComputeSignature returns.
func (r *Registry) ResolveSignature(extName extid.ID, opName string, args []types.TypeArg) (types.Signature, error) {
	ext, err := r.Get(extName)
	if err != nil {
		return types.Signature{}, err
	}
	op, err := ext.GetOp(opName)
	if err != nil {
		return types.Signature{}, err
	}

	return op.ComputeSignature(args)
}

package extension

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hugr-ir/hugr/extid"
	"github.com/hugr-ir/hugr/types/constcheck"
)

// Value is a named constant exported by an Extension (e.g. a
// well-known angle or matrix literal).
type Value struct {
	Name  string
	Value constcheck.Const
}

// Extension is a named bundle of extension requirements, TypeDefs,
// OpDefs, and constant Values.
//
// An Extension is built up with Add* calls and then included in an
// ExtensionRegistry; inclusion does not block later Add* calls. It
// carries its own mutex so a single Extension may be safely read
// concurrently by multiple HUGRs once registered.
type Extension struct {
	mu sync.RWMutex

	name         extid.ID
	requirements extid.Set

	ops    map[string]*OpDef
	types  map[string]*TypeDef
	values map[string]*Value
}

// New constructs an empty Extension named id with the given
// cross-extension requirements.
func New(id extid.ID, requirements extid.Set) *Extension {
	return &Extension{
		name:         id,
		requirements: requirements,
		ops:          make(map[string]*OpDef),
		types:        make(map[string]*TypeDef),
		values:       make(map[string]*Value),
	}
}

// ID returns the extension's own identifier.
func (e *Extension) ID() extid.ID { return e.name }

// Requirements returns the set of extensions this one requires to coexist.
func (e *Extension) Requirements() extid.Set { return e.requirements }

// AddOp registers op under its own name. Fails with ErrDuplicateOpDef
// if the name is already taken.
func (e *Extension) AddOp(op *OpDef) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.ops[op.name]; exists {
		return fmt.Errorf("Extension(%s).AddOp(%s): %w", e.name, op.name, ErrDuplicateOpDef)
	}
	e.ops[op.name] = op

	return nil
}

// AddType registers td under its own name. Fails with
// ErrDuplicateTypeDef if the name is already taken.
func (e *Extension) AddType(td *TypeDef) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.types[td.name]; exists {
		return fmt.Errorf("Extension(%s).AddType(%s): %w", e.name, td.name, ErrDuplicateTypeDef)
	}
	e.types[td.name] = td

	return nil
}

// AddValue registers a named constant value. Fails with
// ErrDuplicateValue if the name is already taken.
func (e *Extension) AddValue(name string, val constcheck.Const) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.values[name]; exists {
		return fmt.Errorf("Extension(%s).AddValue(%s): %w", e.name, name, ErrDuplicateValue)
	}
	e.values[name] = &Value{Name: name, Value: val}

	return nil
}

// GetOp returns the OpDef named name. Fails with ErrExtensionOpNotFound.
func (e *Extension) GetOp(name string) (*OpDef, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	op, ok := e.ops[name]
	if !ok {
		return nil, fmt.Errorf("Extension(%s).GetOp(%s): %w", e.name, name, ErrExtensionOpNotFound)
	}

	return op, nil
}

// GetType returns the TypeDef named name. Fails with ErrExtensionTypeNotFound.
func (e *Extension) GetType(name string) (*TypeDef, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	td, ok := e.types[name]
	if !ok {
		return nil, fmt.Errorf("Extension(%s).GetType(%s): %w", e.name, name, ErrExtensionTypeNotFound)
	}

	return td, nil
}

// GetValue returns the Value named name. Fails with ErrExtensionTypeNotFound
// (reused: both are "not found in extension" lookups).
func (e *Extension) GetValue(name string) (*Value, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	v, ok := e.values[name]
	if !ok {
		return nil, fmt.Errorf("Extension(%s).GetValue(%s): %w", e.name, name, ErrExtensionTypeNotFound)
	}

	return v, nil
}

// Ops returns every OpDef, sorted by name for deterministic iteration.
func (e *Extension) Ops() []*OpDef {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.ops))
	for n := range e.ops {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]*OpDef, len(names))
	for i, n := range names {
		out[i] = e.ops[n]
	}

	return out
}

// Types returns every TypeDef, sorted by name.
func (e *Extension) Types() []*TypeDef {
	e.mu.RLock()
	defer e.mu.RUnlock()

	names := make([]string, 0, len(e.types))
	for n := range e.types {
		names = append(names, n)
	}
	sort.Strings(names)

	out := make([]*TypeDef, len(names))
	for i, n := range names {
		out[i] = e.types[n]
	}

	return out
}

// referencedTypes collects every TypeRef declared by this extension's
// types and then its ops, for registry validation.
func (e *Extension) referencedTypes() []TypeRef {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []TypeRef
	for _, td := range e.types {
		out = append(out, td.references...)
	}
	for _, op := range e.ops {
		out = append(out, op.references...)
	}

	return out
}

package extension

import (
	"fmt"

	"github.com/hugr-ir/hugr/extid"
	"github.com/hugr-ir/hugr/types"
)

// OpaqueOp is an uninstantiated reference to an extension operation:
// (extension, name, args), as it appears in a HUGR before its
// signature has been resolved and cached.
type OpaqueOp struct {
	Extension extid.ID
	Name      string
	Args      []types.TypeArg
}

// DefName implements the CustomConcrete capability.
func (o OpaqueOp) DefName() string { return o.Name }

// TypeArgs implements the CustomConcrete capability.
func (o OpaqueOp) TypeArgs() []types.TypeArg { return o.Args }

// ParentExtensionID implements the CustomConcrete capability.
func (o OpaqueOp) ParentExtensionID() extid.ID { return o.Extension }

// ExtensionOp is an OpaqueOp together with its resolved, cached
// Signature. The HUGR validator calls CheckCache to ensure the cache
// has not gone stale relative to the registry.
type ExtensionOp struct {
	Op        OpaqueOp
	Signature types.Signature
}

// Instantiate resolves ext.op(args) against reg and returns the
// resulting ExtensionOp with its signature cached. Fails with
// ErrExtensionNotFound, ErrExtensionOpNotFound, or whatever
// ComputeSignature returns.
func Instantiate(reg *Registry, ext extid.ID, opName string, args []types.TypeArg) (*ExtensionOp, error) {
	sig, err := reg.ResolveSignature(ext, opName, args)
	if err != nil {
		return nil, fmt.Errorf("Instantiate(%s.%s): %w", ext, opName, err)
	}

	return &ExtensionOp{
		Op:        OpaqueOp{Extension: ext, Name: opName, Args: args},
		Signature: sig,
	}, nil
}

// CheckCache recomputes the ExtensionOp's signature against reg and
// compares it to the cached value. Returns ErrTypeApplyIncorrectCache
// if they disagree.
func (x *ExtensionOp) CheckCache(reg *Registry) error {
	fresh, err := reg.ResolveSignature(x.Op.Extension, x.Op.Name, x.Op.Args)
	if err != nil {
		return err
	}
	if !fresh.Equal(x.Signature) {
		return fmt.Errorf("CheckCache(%s.%s): cached %s, recomputed %s: %w",
			x.Op.Extension, x.Op.Name, x.Signature, fresh, ErrTypeApplyIncorrectCache)
	}

	return nil
}

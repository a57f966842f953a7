package extension

import (
	"encoding/json"
	"fmt"

	"github.com/hugr-ir/hugr/extid"
	"github.com/hugr-ir/hugr/types"
)

// opaqueOpWire is the on-the-wire shape of an OpaqueOp: the canonical
// (extension, name, args) tuple. Deserialization resolves it against a
// registry; two ops are the same op iff their tuples are equal.
type opaqueOpWire struct {
	Extension extid.ID          `json:"extension"`
	Name      string            `json:"name"`
	Args      []json.RawMessage `json:"args"`
}

// MarshalJSON implements json.Marshaler for OpaqueOp.
func (o OpaqueOp) MarshalJSON() ([]byte, error) {
	args := make([]json.RawMessage, len(o.Args))
	for i, a := range o.Args {
		raw, err := types.MarshalTypeArg(a)
		if err != nil {
			return nil, fmt.Errorf("OpaqueOp.MarshalJSON: arg %d: %w", i, err)
		}
		args[i] = raw
	}

	return json.Marshal(opaqueOpWire{Extension: o.Extension, Name: o.Name, Args: args})
}

// UnmarshalJSON implements json.Unmarshaler for OpaqueOp. The resolved
// signature is not part of OpaqueOp itself; callers that need it
// re-resolve against a Registry via Instantiate, or decode the
// enclosing ExtensionOp which carries the cached signature alongside.
func (o *OpaqueOp) UnmarshalJSON(data []byte) error {
	var w opaqueOpWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("OpaqueOp.UnmarshalJSON: %w", err)
	}
	args := make([]types.TypeArg, len(w.Args))
	for i, raw := range w.Args {
		a, err := types.UnmarshalTypeArg(raw)
		if err != nil {
			return fmt.Errorf("OpaqueOp.UnmarshalJSON: arg %d: %w", i, err)
		}
		args[i] = a
	}
	o.Extension = w.Extension
	o.Name = w.Name
	o.Args = args

	return nil
}

// extensionOpWire is the on-the-wire shape of an ExtensionOp: the
// OpaqueOp tuple plus its cached signature, so a round trip does not
// require eagerly re-resolving against a Registry (Validate's
// checkExtensionOpCache does that check explicitly, independent of
// deserialization).
type extensionOpWire struct {
	Op        OpaqueOp       `json:"op"`
	Signature types.Signature `json:"signature"`
}

// MarshalJSON implements json.Marshaler for ExtensionOp.
func (x ExtensionOp) MarshalJSON() ([]byte, error) {
	return json.Marshal(extensionOpWire{Op: x.Op, Signature: x.Signature})
}

// UnmarshalJSON implements json.Unmarshaler for ExtensionOp.
func (x *ExtensionOp) UnmarshalJSON(data []byte) error {
	var w extensionOpWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("ExtensionOp.UnmarshalJSON: %w", err)
	}
	x.Op = w.Op
	x.Signature = w.Signature

	return nil
}

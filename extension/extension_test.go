package extension_test

import (
	"errors"
	"testing"

	"github.com/hugr-ir/hugr/extension"
	"github.com/hugr-ir/hugr/extid"
	"github.com/hugr-ir/hugr/types"
	"github.com/stretchr/testify/require"
)

func TestExtensionAddAndGet(t *testing.T) {
	t.Parallel()

	ext := extension.New(extid.MustNewID("quantum.tket2"), extid.NewSet())

	sig := types.NewFunctionType(types.NewRow(types.QubitType{}, types.QubitType{}), types.NewRow(types.QubitType{}, types.QubitType{}))
	op := extension.NewOpDef("cx", nil, func([]types.TypeArg) (types.Signature, error) { return sig, nil }, nil)
	require.NoError(t, ext.AddOp(op))

	got, err := ext.GetOp("cx")
	require.NoError(t, err)
	require.Equal(t, "cx", got.Name())

	_, err = ext.GetOp("missing")
	require.True(t, errors.Is(err, extension.ErrExtensionOpNotFound))

	err = ext.AddOp(op)
	require.True(t, errors.Is(err, extension.ErrDuplicateOpDef))
}

func TestRegistryDuplicateRejected(t *testing.T) {
	t.Parallel()

	a := extension.New(extid.MustNewID("prelude"), extid.NewSet())
	b := extension.New(extid.MustNewID("prelude"), extid.NewSet())

	_, err := extension.NewRegistry(a, b)
	require.True(t, errors.Is(err, extension.ErrDuplicateExtension))
}

func TestRegistryResolveSignature(t *testing.T) {
	t.Parallel()

	ext := extension.New(extid.MustNewID("quantum.tket2"), extid.NewSet())
	sig := types.NewFunctionType(types.NewRow(types.QubitType{}), types.NewRow(types.QubitType{}))
	require.NoError(t, ext.AddOp(extension.NewOpDef("h", nil, func([]types.TypeArg) (types.Signature, error) { return sig, nil }, nil)))

	reg, err := extension.NewRegistry(ext)
	require.NoError(t, err)

	got, err := reg.ResolveSignature(extid.MustNewID("quantum.tket2"), "h", nil)
	require.NoError(t, err)
	require.True(t, got.Equal(sig))

	_, err = reg.ResolveSignature(extid.MustNewID("nope"), "h", nil)
	require.True(t, errors.Is(err, extension.ErrExtensionNotFound))
}

func TestExtensionOpCacheMismatch(t *testing.T) {
	t.Parallel()

	ext := extension.New(extid.MustNewID("arithmetic"), extid.NewSet())
	sig := types.NewFunctionType(types.NewRow(types.IntType{Width: 64}), types.NewRow(types.IntType{Width: 64}))
	require.NoError(t, ext.AddOp(extension.NewOpDef("neg", nil, func([]types.TypeArg) (types.Signature, error) { return sig, nil }, nil)))

	reg, err := extension.NewRegistry(ext)
	require.NoError(t, err)

	op, err := extension.Instantiate(reg, extid.MustNewID("arithmetic"), "neg", nil)
	require.NoError(t, err)
	require.NoError(t, op.CheckCache(reg))

	op.Signature = types.NewFunctionType(types.NewRow(types.IntType{Width: 32}), types.NewRow(types.IntType{Width: 32}))
	err = op.CheckCache(reg)
	require.True(t, errors.Is(err, extension.ErrTypeApplyIncorrectCache))
}

func TestRegistryValidatesTypeReferences(t *testing.T) {
	t.Parallel()

	base := extension.New(extid.MustNewID("base"), extid.NewSet())
	require.NoError(t, base.AddType(extension.NewTypeDef("angle", nil, extension.FixedBound(types.BoundCopyable), nil)))

	dependent := extension.New(extid.MustNewID("dependent"), extid.Singleton(extid.MustNewID("base")))
	ref := []extension.TypeRef{{Extension: extid.MustNewID("base"), Name: "angle"}}
	require.NoError(t, dependent.AddType(extension.NewTypeDef("pair_of_angles", nil, extension.FixedBound(types.BoundCopyable), ref)))

	_, err := extension.NewRegistry(dependent)
	require.True(t, errors.Is(err, extension.ErrExtensionNotFound))

	_, err = extension.NewRegistry(base, dependent)
	require.NoError(t, err)
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	doc := []byte(`
name: prelude
requirements: []
types:
  - name: angle
    bound: copyable
ops:
  - name: measure
    input: [Qubit]
    output: [Bit]
`)
	ext, err := extension.LoadYAML(doc)
	require.NoError(t, err)
	require.Equal(t, extid.MustNewID("prelude"), ext.ID())

	op, err := ext.GetOp("measure")
	require.NoError(t, err)
	sig, err := op.ComputeSignature(nil)
	require.NoError(t, err)
	require.Equal(t, 1, sig.Input.Len())
	require.True(t, sig.Input.Get(0).Equal(types.QubitType{}))
	require.True(t, sig.Output.Get(0).Equal(types.BitType{}))
}

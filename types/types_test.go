package types_test

import (
	"errors"
	"testing"

	"github.com/hugr-ir/hugr/extid"
	"github.com/hugr-ir/hugr/types"
	"github.com/stretchr/testify/require"
)

func TestBoundAndCopyability(t *testing.T) {
	t.Parallel()

	require.True(t, types.IsCopyable(types.BitType{}))
	require.False(t, types.IsLinear(types.BitType{}))
	require.True(t, types.IsLinear(types.QubitType{}))
	require.False(t, types.IsCopyable(types.QubitType{}))
}

func TestRowPurity(t *testing.T) {
	t.Parallel()

	allQubits := types.NewRow(types.QubitType{}, types.QubitType{})
	require.True(t, allQubits.PurelyLinear())
	require.False(t, allQubits.PurelyClassical())

	mixed := types.NewRow(types.QubitType{}, types.BitType{})
	require.False(t, mixed.PurelyLinear())
	require.False(t, mixed.PurelyClassical())

	allClassical := types.NewRow(types.BitType{}, types.IntType{Width: 64})
	require.True(t, allClassical.PurelyClassical())
}

func TestRowEquality(t *testing.T) {
	t.Parallel()

	a := types.NewRow(types.IntType{Width: 64}, types.QubitType{})
	b := types.NewRow(types.IntType{Width: 64}, types.QubitType{})
	c := types.NewRow(types.IntType{Width: 32}, types.QubitType{})

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestSignatureEqualityAndString(t *testing.T) {
	t.Parallel()

	sig1 := types.NewFunctionType(types.NewRow(types.NatType{}), types.NewRow(types.NatType{}))
	sig2 := types.NewFunctionType(types.NewRow(types.NatType{}), types.NewRow(types.NatType{}))
	require.True(t, sig1.Equal(sig2))
	require.Contains(t, sig1.String(), "->")
}

func TestCheckTypeArgsArity(t *testing.T) {
	t.Parallel()

	params := []types.TypeParam{types.TypeParamType{Bound: types.BoundCopyable}, types.TypeParamNat{}}
	args := []types.TypeArg{types.TypeArgType{Type: types.BitType{}}}

	err := types.CheckTypeArgs(args, params)
	require.True(t, errors.Is(err, types.ErrTypeArgArity))
}

func TestCheckTypeArgsBoundViolation(t *testing.T) {
	t.Parallel()

	params := []types.TypeParam{types.TypeParamType{Bound: types.BoundCopyable}}
	args := []types.TypeArg{types.TypeArgType{Type: types.QubitType{}}}

	err := types.CheckTypeArgs(args, params)
	require.True(t, errors.Is(err, types.ErrWrongBound))
}

func TestCheckTypeArgsNatMax(t *testing.T) {
	t.Parallel()

	params := []types.TypeParam{types.TypeParamNat{Max: 4}}
	args := []types.TypeArg{types.TypeArgNat{Value: 10}}

	err := types.CheckTypeArgs(args, params)
	require.True(t, errors.Is(err, types.ErrTypeArgMismatch))
}

func TestSubstituteTypeVar(t *testing.T) {
	t.Parallel()

	subst := types.NewMapSubstitution()
	subst.Types[0] = types.TypeArgType{Type: types.IntType{Width: 32}}

	v := types.VarType{Index: 0, Declared: types.BoundCopyable}
	out, err := types.SubstituteType(v, subst)
	require.NoError(t, err)
	require.True(t, out.Equal(types.IntType{Width: 32}))
}

func TestSubstituteTypeFreeVar(t *testing.T) {
	t.Parallel()

	subst := types.NewMapSubstitution()
	v := types.VarType{Index: 3, Declared: types.BoundCopyable}
	_, err := types.SubstituteType(v, subst)
	require.True(t, errors.Is(err, types.ErrFreeTypeVar))
}

func TestSubstituteNestedContainer(t *testing.T) {
	t.Parallel()

	subst := types.NewMapSubstitution()
	subst.Types[0] = types.TypeArgType{Type: types.BitType{}}

	list := types.ListType{Elem: types.VarType{Index: 0, Declared: types.BoundCopyable}}
	out, err := types.SubstituteType(list, subst)
	require.NoError(t, err)
	require.Equal(t, types.ListType{Elem: types.BitType{}}, out)
}

func TestSignatureSubstituteExtensions(t *testing.T) {
	t.Parallel()

	subst := types.NewMapSubstitution()
	subst.Extensions[0] = extid.Singleton(extid.MustNewID("quantum.tket2"))

	sig := types.NewSignature(types.NewRow(types.NatType{}), types.NewRow(types.NatType{}), extid.TypeVar(0))
	out, err := sig.Substitute(subst)
	require.NoError(t, err)
	require.True(t, out.Extensions.Contains(extid.MustNewID("quantum.tket2")))
}

func TestCustomTypeEquality(t *testing.T) {
	t.Parallel()

	a := types.CustomType{ParentExtension: extid.MustNewID("quantum.tket2"), Name: "angle", Args: []types.TypeArg{types.TypeArgNat{Value: 4}}, CachedBound: types.BoundCopyable}
	b := types.CustomType{ParentExtension: extid.MustNewID("quantum.tket2"), Name: "angle", Args: []types.TypeArg{types.TypeArgNat{Value: 4}}, CachedBound: types.BoundCopyable}
	c := types.CustomType{ParentExtension: extid.MustNewID("quantum.tket2"), Name: "angle", Args: []types.TypeArg{types.TypeArgNat{Value: 8}}, CachedBound: types.BoundCopyable}

	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

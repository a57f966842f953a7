package constcheck_test

import (
	"errors"
	"testing"

	"github.com/hugr-ir/hugr/extid"
	"github.com/hugr-ir/hugr/types"
	"github.com/hugr-ir/hugr/types/constcheck"
	"github.com/stretchr/testify/require"
)

func float64Type() constcheck.Float64Type {
	return constcheck.NewFloat64Type(types.CustomType{
		ParentExtension: extid.MustNewID("arithmetic.float"),
		Name:            "f64",
		CachedBound:     types.BoundCopyable,
	})
}

func TestTypeCheckIntMatches(t *testing.T) {
	t.Parallel()

	err := constcheck.TypeCheck(types.IntType{Width: 64}, constcheck.ConstInt{Value: 3, Width: 64})
	require.NoError(t, err)
}

func TestTypeCheckIntWidthMismatch(t *testing.T) {
	t.Parallel()

	err := constcheck.TypeCheck(types.IntType{Width: 32}, constcheck.ConstInt{Value: 3, Width: 64})
	require.True(t, errors.Is(err, constcheck.ErrIntWidthMismatch))
}

func TestTypeCheckFloatAgainstInt(t *testing.T) {
	t.Parallel()

	err := constcheck.TypeCheck(float64Type(), constcheck.ConstInt{Value: 3, Width: 64})
	require.True(t, errors.Is(err, constcheck.ErrTypeMismatch))
}

func TestTypeCheckTupleOK(t *testing.T) {
	t.Parallel()

	tupleType := types.StructType{
		Name:   "",
		Fields: types.NewRow(types.IntType{Width: 64}, float64Type()),
	}
	val := constcheck.ConstTuple{Elems: []constcheck.Const{
		constcheck.ConstInt{Value: 7, Width: 64},
		constcheck.ConstFloat64{Value: 5.1},
	}}

	require.NoError(t, constcheck.TypeCheck(tupleType, val))
}

func TestTypeCheckTupleWrongLength(t *testing.T) {
	t.Parallel()

	tupleType := types.StructType{
		Fields: types.NewRow(types.IntType{Width: 64}, float64Type()),
	}
	val := constcheck.ConstTuple{Elems: []constcheck.Const{
		constcheck.ConstInt{Value: 7, Width: 64},
		constcheck.ConstFloat64{Value: 5.1},
		constcheck.ConstInt{Value: 1, Width: 64},
	}}

	err := constcheck.TypeCheck(tupleType, val)
	require.True(t, errors.Is(err, constcheck.ErrTupleWrongLength))
}

func TestTypeCheckSumOK(t *testing.T) {
	t.Parallel()

	sumType := types.PredicateType{Variants: []types.Row{
		types.NewRow(types.IntType{Width: 64}),
		types.EmptyRow(),
	}}

	err := constcheck.TypeCheck(sumType, constcheck.ConstSum{
		Tag:   0,
		Value: constcheck.ConstInt{Value: 3, Width: 64},
	})
	require.NoError(t, err)

	err = constcheck.TypeCheck(sumType, constcheck.ConstSum{Tag: 1})
	require.NoError(t, err)
}

func TestTypeCheckSumTagOutOfRange(t *testing.T) {
	t.Parallel()

	sumType := types.PredicateType{Variants: []types.Row{
		types.NewRow(types.IntType{Width: 64}),
	}}

	err := constcheck.TypeCheck(sumType, constcheck.ConstSum{
		Tag:   1,
		Value: constcheck.ConstInt{Value: 3, Width: 64},
	})
	require.True(t, errors.Is(err, constcheck.ErrSumTagOutOfRange))
}

func TestTypeCheckSumVariantRowMismatch(t *testing.T) {
	t.Parallel()

	sumType := types.PredicateType{Variants: []types.Row{
		types.EmptyRow(),
		types.NewRow(types.IntType{Width: 64}, types.IntType{Width: 64}),
	}}

	// Variant 0 is empty but the value carries a payload.
	err := constcheck.TypeCheck(sumType, constcheck.ConstSum{
		Tag:   0,
		Value: constcheck.ConstInt{Value: 3, Width: 64},
	})
	require.True(t, errors.Is(err, constcheck.ErrVariantRowMismatch))

	// Variant 1 wants two elements but the tuple has one.
	err = constcheck.TypeCheck(sumType, constcheck.ConstSum{
		Tag: 1,
		Value: constcheck.ConstTuple{Elems: []constcheck.Const{
			constcheck.ConstInt{Value: 3, Width: 64},
		}},
	})
	require.True(t, errors.Is(err, constcheck.ErrVariantRowMismatch))
}

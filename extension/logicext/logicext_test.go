package logicext_test

import (
	"testing"

	"github.com/hugr-ir/hugr/extension"
	"github.com/hugr-ir/hugr/extension/logicext"
	"github.com/stretchr/testify/require"
)

func TestNewProgrammaticConstruction(t *testing.T) {
	t.Parallel()

	ext, err := logicext.New()
	require.NoError(t, err)

	reg, err := extension.NewRegistry(ext)
	require.NoError(t, err)

	op, err := reg.ResolveSignature(logicext.ID, "and", nil)
	require.NoError(t, err)
	require.Equal(t, 2, op.Input.Len())
	require.Equal(t, 1, op.Output.Len())
}

func TestLoadYAMLConstruction(t *testing.T) {
	t.Parallel()

	ext, err := logicext.LoadYAML()
	require.NoError(t, err)

	_, err = extension.NewRegistry(ext)
	require.NoError(t, err)

	op, err := ext.GetOp("xor")
	require.NoError(t, err)
	sig, err := op.ComputeSignature(nil)
	require.NoError(t, err)
	require.Equal(t, 2, sig.Input.Len())
}

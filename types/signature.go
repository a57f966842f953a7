package types

import (
	"fmt"

	"github.com/hugr-ir/hugr/extid"
)

// Signature is an input row, an output row, and an extension-set
// requirement describing which extensions must be present for the
// operation to run. A FunctionType is a Signature with an empty
// extension requirement.
type Signature struct {
	Input      Row
	Output     Row
	Extensions extid.Set
}

// NewFunctionType builds a pure signature with no extension
// requirement.
func NewFunctionType(input, output Row) Signature {
	return Signature{Input: input, Output: output, Extensions: extid.NewSet()}
}

// NewSignature builds a signature with an explicit extension requirement.
func NewSignature(input, output Row, exts extid.Set) Signature {
	return Signature{Input: input, Output: output, Extensions: exts}
}

// Equal reports structural equality of input row, output row, and
// extension-set requirement.
func (s Signature) Equal(other Signature) bool {
	return s.Input.Equal(other.Input) && s.Output.Equal(other.Output) && s.Extensions.Equal(other.Extensions)
}

// String renders "input -> output" with the extension requirement
// appended when non-empty.
func (s Signature) String() string {
	if s.Extensions.IsEmpty() {
		return fmt.Sprintf("%s -> %s", s.Input, s.Output)
	}

	return fmt.Sprintf("%s -> %s [%v]", s.Input, s.Output, s.Extensions.Sorted())
}

// Substitute applies subst to every type variable appearing in the
// input/output rows and to the extension-set requirement, returning a
// fully instantiated Signature. It is total when every free variable
// is bound by subst.
func (s Signature) Substitute(subst Substitution) (Signature, error) {
	in, err := substituteRow(s.Input, subst)
	if err != nil {
		return Signature{}, err
	}
	out, err := substituteRow(s.Output, subst)
	if err != nil {
		return Signature{}, err
	}
	exts, err := s.Extensions.Substitute(subst)
	if err != nil {
		return Signature{}, fmt.Errorf("Signature.Substitute: %w", err)
	}

	return Signature{Input: in, Output: out, Extensions: exts}, nil
}

func substituteRow(r Row, subst Substitution) (Row, error) {
	out := make([]SimpleType, len(r.Types()))
	for i, t := range r.Types() {
		st, err := SubstituteType(t, subst)
		if err != nil {
			return Row{}, err
		}
		out[i] = st
	}

	return Row{types: out}, nil
}

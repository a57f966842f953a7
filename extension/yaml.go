package extension

import (
	"fmt"

	"github.com/hugr-ir/hugr/extid"
	"github.com/hugr-ir/hugr/types"
	"gopkg.in/yaml.v3"
)

// yamlFile is the on-disk declarative shape for a non-parametric
// Extension: a name, its cross-extension requirements, a list of
// opaque TypeDefs with a fixed bound, and a list of OpDefs with a
// fixed (non-parametric) signature given as input/output type-name
// rows. Only the declarative subset of Extensions is expressible;
// fully parametric OpDefs/TypeDefs still require Go code, since a
// SignatureFunc/BoundFunc is a closure YAML cannot express.
type yamlFile struct {
	Name         string            `yaml:"name"`
	Requirements []string          `yaml:"requirements"`
	Types        []yamlTypeDef     `yaml:"types"`
	Ops          []yamlOpDef       `yaml:"ops"`
}

type yamlTypeDef struct {
	Name  string `yaml:"name"`
	Bound string `yaml:"bound"` // "copyable" or "any"
}

type yamlOpDef struct {
	Name   string   `yaml:"name"`
	Input  []string `yaml:"input"`
	Output []string `yaml:"output"`
}

// LoadYAML parses data as a declarative non-parametric Extension.
// Every input/output type name must be one of the primitive type
// names recognised by PrimitiveTypeByName.
func LoadYAML(data []byte) (*Extension, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("LoadYAML: %w", err)
	}

	id, err := extid.NewID(f.Name)
	if err != nil {
		return nil, fmt.Errorf("LoadYAML: extension name %q: %w", f.Name, err)
	}

	reqs := extid.NewSet()
	for _, r := range f.Requirements {
		rid, err := extid.NewID(r)
		if err != nil {
			return nil, fmt.Errorf("LoadYAML: requirement %q: %w", r, err)
		}
		reqs.Insert(rid)
	}

	ext := New(id, reqs)

	for _, td := range f.Types {
		bound, err := boundByName(td.Bound)
		if err != nil {
			return nil, fmt.Errorf("LoadYAML: type %q: %w", td.Name, err)
		}
		if err := ext.AddType(NewTypeDef(td.Name, nil, FixedBound(bound), nil)); err != nil {
			return nil, fmt.Errorf("LoadYAML: %w", err)
		}
	}

	for _, od := range f.Ops {
		inRow, err := rowByNames(od.Input)
		if err != nil {
			return nil, fmt.Errorf("LoadYAML: op %q input: %w", od.Name, err)
		}
		outRow, err := rowByNames(od.Output)
		if err != nil {
			return nil, fmt.Errorf("LoadYAML: op %q output: %w", od.Name, err)
		}
		sig := types.NewFunctionType(inRow, outRow)
		fixed := func([]types.TypeArg) (types.Signature, error) { return sig, nil }
		if err := ext.AddOp(NewOpDef(od.Name, nil, fixed, nil)); err != nil {
			return nil, fmt.Errorf("LoadYAML: %w", err)
		}
	}

	return ext, nil
}

func boundByName(s string) (types.TypeBound, error) {
	switch s {
	case "", "any":
		return types.BoundAny, nil
	case "copyable":
		return types.BoundCopyable, nil
	default:
		return 0, fmt.Errorf("unknown bound %q", s)
	}
}

// PrimitiveTypeByName resolves one of the built-in, non-parametric
// SimpleTypes by name, for use in YAML-declared op signatures.
func PrimitiveTypeByName(name string) (types.SimpleType, error) {
	switch name {
	case "Nat":
		return types.NatType{}, nil
	case "Bit":
		return types.BitType{}, nil
	case "Qubit":
		return types.QubitType{}, nil
	case "Money":
		return types.MoneyType{}, nil
	case "Int32":
		return types.IntType{Width: 32}, nil
	case "Int64":
		return types.IntType{Width: 64}, nil
	default:
		return nil, fmt.Errorf("unknown primitive type %q", name)
	}
}

func rowByNames(names []string) (types.Row, error) {
	elems := make([]types.SimpleType, len(names))
	for i, n := range names {
		t, err := PrimitiveTypeByName(n)
		if err != nil {
			return types.Row{}, err
		}
		elems[i] = t
	}

	return types.NewRow(elems...), nil
}

package types

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hugr-ir/hugr/extid"
)

// ErrUnknownTypeKind indicates a serialized SimpleType/TypeArg carried a
// "kind" discriminant this version of the package does not recognize.
var ErrUnknownTypeKind = errors.New("types: unknown serialized kind")

// typeWire is the on-the-wire shape of a SimpleType: a kind
// discriminant plus whichever fields that variant needs. Rows of types
// appear throughout a serialized HUGR (port rows, Const types,
// CustomType args), so the encoding lives here rather than per caller.
type typeWire struct {
	Kind string `json:"kind"`

	Index    *int        `json:"index,omitempty"`
	Declared *TypeBound  `json:"declared,omitempty"`
	Width    *int        `json:"width,omitempty"`
	Resources []extid.ID `json:"resources,omitempty"`
	Signature *Signature `json:"signature,omitempty"`
	First    *typeWire   `json:"first,omitempty"`
	Second   *typeWire   `json:"second,omitempty"`
	Elem     *typeWire   `json:"elem,omitempty"`
	Key      *typeWire   `json:"key,omitempty"`
	Value    *typeWire   `json:"value,omitempty"`
	Name     *string     `json:"name,omitempty"`
	Fields   []typeWire  `json:"fields,omitempty"`
	Size     *int        `json:"size,omitempty"`

	ParentExtension *extid.ID    `json:"parentExtension,omitempty"`
	Args            []typeArgWire `json:"args,omitempty"`
	CachedBound     *TypeBound   `json:"cachedBound,omitempty"`
}

func intp(i int) *int              { return &i }
func boundp(b TypeBound) *TypeBound { return &b }
func strp(s string) *string        { return &s }
func idp(id extid.ID) *extid.ID    { return &id }

func encodeType(t SimpleType) typeWire {
	switch v := t.(type) {
	case VarType:
		return typeWire{Kind: "var", Index: intp(v.Index), Declared: boundp(v.Declared)}
	case NatType:
		return typeWire{Kind: "nat"}
	case IntType:
		return typeWire{Kind: "int", Width: intp(v.Width)}
	case BitType:
		return typeWire{Kind: "bit"}
	case GraphType:
		sig := v.Signature
		return typeWire{Kind: "graph", Resources: v.Resources.Sorted(), Signature: &sig}
	case PairType:
		f, s := encodeType(v.First), encodeType(v.Second)
		return typeWire{Kind: "pair", First: &f, Second: &s}
	case ListType:
		e := encodeType(v.Elem)
		return typeWire{Kind: "list", Elem: &e}
	case MapType:
		k, val := encodeType(v.Key), encodeType(v.Value)
		return typeWire{Kind: "map", Key: &k, Value: &val}
	case StructType:
		fields := make([]typeWire, v.Fields.Len())
		for i, f := range v.Fields.Types() {
			fields[i] = encodeType(f)
		}
		return typeWire{Kind: "struct", Name: strp(v.Name), Fields: fields}
	case QubitType:
		return typeWire{Kind: "qubit"}
	case MoneyType:
		return typeWire{Kind: "money"}
	case ArrayType:
		e := encodeType(v.Elem)
		return typeWire{Kind: "array", Elem: &e, Size: intp(v.Size)}
	case PredicateType:
		fields := make([]typeWire, len(v.Variants))
		for i, row := range v.Variants {
			rowWire := make([]typeWire, row.Len())
			for j, t2 := range row.Types() {
				rowWire[j] = encodeType(t2)
			}
			fields[i] = typeWire{Kind: "row", Fields: rowWire}
		}
		return typeWire{Kind: "predicate", Fields: fields}
	case CustomType:
		args := make([]typeArgWire, len(v.Args))
		for i, a := range v.Args {
			args[i] = encodeTypeArg(a)
		}
		return typeWire{
			Kind:            "custom",
			ParentExtension: idp(v.ParentExtension),
			Name:            strp(v.Name),
			Args:            args,
			CachedBound:     boundp(v.CachedBound),
		}
	default:
		panic(fmt.Sprintf("types: encodeType: unhandled SimpleType %T", t))
	}
}

func decodeType(w typeWire) (SimpleType, error) {
	switch w.Kind {
	case "var":
		return VarType{Index: *w.Index, Declared: *w.Declared}, nil
	case "nat":
		return NatType{}, nil
	case "int":
		return IntType{Width: *w.Width}, nil
	case "bit":
		return BitType{}, nil
	case "graph":
		res := extid.NewSet()
		for _, id := range w.Resources {
			res.Insert(id)
		}

		return GraphType{Resources: res, Signature: *w.Signature}, nil
	case "pair":
		f, err := decodeType(*w.First)
		if err != nil {
			return nil, err
		}
		s, err := decodeType(*w.Second)
		if err != nil {
			return nil, err
		}

		return PairType{First: f, Second: s}, nil
	case "list":
		e, err := decodeType(*w.Elem)
		if err != nil {
			return nil, err
		}

		return ListType{Elem: e}, nil
	case "map":
		k, err := decodeType(*w.Key)
		if err != nil {
			return nil, err
		}
		val, err := decodeType(*w.Value)
		if err != nil {
			return nil, err
		}

		return MapType{Key: k, Value: val}, nil
	case "struct":
		fields := make([]SimpleType, len(w.Fields))
		for i, fw := range w.Fields {
			t, err := decodeType(fw)
			if err != nil {
				return nil, err
			}
			fields[i] = t
		}

		return StructType{Name: *w.Name, Fields: NewRow(fields...)}, nil
	case "qubit":
		return QubitType{}, nil
	case "money":
		return MoneyType{}, nil
	case "array":
		e, err := decodeType(*w.Elem)
		if err != nil {
			return nil, err
		}

		return ArrayType{Elem: e, Size: *w.Size}, nil
	case "predicate":
		variants := make([]Row, len(w.Fields))
		for i, rw := range w.Fields {
			row := make([]SimpleType, len(rw.Fields))
			for j, tw := range rw.Fields {
				t, err := decodeType(tw)
				if err != nil {
					return nil, err
				}
				row[j] = t
			}
			variants[i] = NewRow(row...)
		}

		return PredicateType{Variants: variants}, nil
	case "custom":
		// No args decode to nil, as in a CustomType built without Args.
		var args []TypeArg
		if len(w.Args) > 0 {
			args = make([]TypeArg, len(w.Args))
		}
		for i, aw := range w.Args {
			a, err := decodeTypeArg(aw)
			if err != nil {
				return nil, err
			}
			args[i] = a
		}

		return CustomType{
			ParentExtension: *w.ParentExtension,
			Name:            *w.Name,
			Args:            args,
			CachedBound:     *w.CachedBound,
		}, nil
	default:
		return nil, fmt.Errorf("decodeType(%q): %w", w.Kind, ErrUnknownTypeKind)
	}
}

// typeArgWire is the on-the-wire shape of a TypeArg.
type typeArgWire struct {
	Kind  string        `json:"kind"`
	Type  *typeWire     `json:"type,omitempty"`
	Nat   *uint64       `json:"nat,omitempty"`
	Elems []typeArgWire `json:"elems,omitempty"`
	Str   *string       `json:"str,omitempty"`
	Set   []extid.ID    `json:"set,omitempty"`
}

func encodeTypeArg(a TypeArg) typeArgWire {
	switch v := a.(type) {
	case TypeArgType:
		t := encodeType(v.Type)
		return typeArgWire{Kind: "type", Type: &t}
	case TypeArgNat:
		n := v.Value
		return typeArgWire{Kind: "nat", Nat: &n}
	case TypeArgSequence:
		elems := make([]typeArgWire, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = encodeTypeArg(e)
		}
		return typeArgWire{Kind: "seq", Elems: elems}
	case TypeArgString:
		return typeArgWire{Kind: "str", Str: strp(v.Value)}
	case TypeArgExtensions:
		return typeArgWire{Kind: "exts", Set: v.Set.Sorted()}
	default:
		panic(fmt.Sprintf("types: encodeTypeArg: unhandled TypeArg %T", a))
	}
}

func decodeTypeArg(w typeArgWire) (TypeArg, error) {
	switch w.Kind {
	case "type":
		t, err := decodeType(*w.Type)
		if err != nil {
			return nil, err
		}

		return TypeArgType{Type: t}, nil
	case "nat":
		return TypeArgNat{Value: *w.Nat}, nil
	case "seq":
		elems := make([]TypeArg, len(w.Elems))
		for i, ew := range w.Elems {
			e, err := decodeTypeArg(ew)
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}

		return TypeArgSequence{Elems: elems}, nil
	case "str":
		return TypeArgString{Value: *w.Str}, nil
	case "exts":
		s := extid.NewSet()
		for _, id := range w.Set {
			s.Insert(id)
		}

		return TypeArgExtensions{Set: s}, nil
	default:
		return nil, fmt.Errorf("decodeTypeArg(%q): %w", w.Kind, ErrUnknownTypeKind)
	}
}

// MarshalType serializes a single SimpleType value. Exported for
// packages above types (constcheck, extension, hugr) whose own
// serialized structures embed a bare SimpleType or TypeArg field.
func MarshalType(t SimpleType) ([]byte, error) { return json.Marshal(encodeType(t)) }

// UnmarshalType deserializes a single SimpleType value produced by
// MarshalType.
func UnmarshalType(data []byte) (SimpleType, error) {
	var w typeWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("UnmarshalType: %w", err)
	}

	return decodeType(w)
}

// MarshalTypeArg serializes a single TypeArg value.
func MarshalTypeArg(a TypeArg) ([]byte, error) { return json.Marshal(encodeTypeArg(a)) }

// UnmarshalTypeArg deserializes a single TypeArg value produced by
// MarshalTypeArg.
func UnmarshalTypeArg(data []byte) (TypeArg, error) {
	var w typeArgWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("UnmarshalTypeArg: %w", err)
	}

	return decodeTypeArg(w)
}

// MarshalJSON implements json.Marshaler for Row as a plain array of
// serialized SimpleTypes.
func (r Row) MarshalJSON() ([]byte, error) {
	wires := make([]typeWire, len(r.types))
	for i, t := range r.types {
		wires[i] = encodeType(t)
	}

	return json.Marshal(wires)
}

// UnmarshalJSON implements json.Unmarshaler for Row.
func (r *Row) UnmarshalJSON(data []byte) error {
	var wires []typeWire
	if err := json.Unmarshal(data, &wires); err != nil {
		return fmt.Errorf("Row.UnmarshalJSON: %w", err)
	}
	out := make([]SimpleType, len(wires))
	for i, w := range wires {
		t, err := decodeType(w)
		if err != nil {
			return fmt.Errorf("Row.UnmarshalJSON: element %d: %w", i, err)
		}
		out[i] = t
	}
	r.types = out

	return nil
}

// signatureWire is the on-the-wire shape of a Signature.
type signatureWire struct {
	Input      Row        `json:"input"`
	Output     Row        `json:"output"`
	Extensions []extid.ID `json:"extensions"`
}

// MarshalJSON implements json.Marshaler for Signature.
func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(signatureWire{Input: s.Input, Output: s.Output, Extensions: s.Extensions.Sorted()})
}

// UnmarshalJSON implements json.Unmarshaler for Signature.
func (s *Signature) UnmarshalJSON(data []byte) error {
	var w signatureWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("Signature.UnmarshalJSON: %w", err)
	}
	exts := extid.NewSet()
	for _, id := range w.Extensions {
		exts.Insert(id)
	}
	s.Input = w.Input
	s.Output = w.Output
	s.Extensions = exts

	return nil
}

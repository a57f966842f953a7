package constcheck

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownConstKind indicates a serialized Const carried a "kind"
// discriminant this version of the package does not recognize.
var ErrUnknownConstKind = errors.New("constcheck: unknown serialized kind")

// constWire is the on-the-wire shape of a Const: a kind discriminant
// plus whichever fields that variant needs. Constants serialize by
// value.
type constWire struct {
	Kind string `json:"kind"`

	IntValue *int64      `json:"intValue,omitempty"`
	Width    *int        `json:"width,omitempty"`
	FloatValue *float64  `json:"floatValue,omitempty"`
	Elems    []constWire `json:"elems,omitempty"`
	Tag      *int        `json:"tag,omitempty"`
	Value    *constWire  `json:"value,omitempty"`
}

func encodeConst(c Const) constWire {
	switch v := c.(type) {
	case ConstInt:
		val := v.Value
		return constWire{Kind: "int", IntValue: &val, Width: &v.Width}
	case ConstFloat64:
		val := v.Value
		return constWire{Kind: "float64", FloatValue: &val}
	case ConstTuple:
		elems := make([]constWire, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = encodeConst(e)
		}

		return constWire{Kind: "tuple", Elems: elems}
	case ConstSum:
		val := encodeConst(v.Value)

		return constWire{Kind: "sum", Tag: &v.Tag, Value: &val}
	default:
		panic(fmt.Sprintf("constcheck: encodeConst: unhandled Const %T", c))
	}
}

func decodeConst(w constWire) (Const, error) {
	switch w.Kind {
	case "int":
		return ConstInt{Value: *w.IntValue, Width: *w.Width}, nil
	case "float64":
		return ConstFloat64{Value: *w.FloatValue}, nil
	case "tuple":
		elems := make([]Const, len(w.Elems))
		for i, ew := range w.Elems {
			e, err := decodeConst(ew)
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}

		return ConstTuple{Elems: elems}, nil
	case "sum":
		val, err := decodeConst(*w.Value)
		if err != nil {
			return nil, err
		}

		return ConstSum{Tag: *w.Tag, Value: val}, nil
	default:
		return nil, fmt.Errorf("decodeConst(%q): %w", w.Kind, ErrUnknownConstKind)
	}
}

// MarshalConst serializes a single Const value.
func MarshalConst(c Const) ([]byte, error) { return json.Marshal(encodeConst(c)) }

// UnmarshalConst deserializes a single Const value produced by MarshalConst.
func UnmarshalConst(data []byte) (Const, error) {
	var w constWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("UnmarshalConst: %w", err)
	}

	return decodeConst(w)
}

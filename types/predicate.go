package types

import "strings"

// PredicateType is a sum type over a fixed list of variant Rows: the
// control-flow predicate a BasicBlock's Output produces to select its
// successor. It lives in this package (rather than beside BasicBlockOp
// in package hugr) because SimpleType is sealed to types via an
// unexported marker method; only a struct declared here can satisfy it.
// Always copyable: a predicate value carries no runtime resource, only
// a tag and a row of already-copyable-or-linear payload types whose own
// bound is irrelevant to the predicate wrapper itself.
type PredicateType struct {
	Variants []Row
}

func (PredicateType) isSimpleType()    {}
func (PredicateType) Bound() TypeBound { return BoundCopyable }

func (p PredicateType) String() string {
	parts := make([]string, len(p.Variants))
	for i, v := range p.Variants {
		parts[i] = v.String()
	}

	return "Predicate(" + strings.Join(parts, " | ") + ")"
}

func (p PredicateType) Equal(o SimpleType) bool {
	op, ok := o.(PredicateType)
	if !ok || len(p.Variants) != len(op.Variants) {
		return false
	}
	for i := range p.Variants {
		if !p.Variants[i].Equal(op.Variants[i]) {
			return false
		}
	}

	return true
}

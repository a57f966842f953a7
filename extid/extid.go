// Package extid implements ExtensionId and ExtensionSet: the identifier
// algebra shared by the type system (types.Signature's extension
// requirement, types.GraphType's resource set) and the extension
// registry (extension.Extension, extension.ExtensionRegistry). It is
// split out as its own package, rather than living in either types or
// extension, because both of those packages need it and neither should
// depend on the other.
//
// A Set deliberately overloads its element space: elements whose text
// begins with an ASCII digit denote a DeBruijn index of a declared
// extension-set type variable, not a real extension. Ordinary
// identifiers cannot begin with a digit, so the two never collide;
// the reservation is enforced at identifier validation time.
package extid

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrEmptyID indicates an ExtensionId was constructed from the empty string.
var ErrEmptyID = errors.New("extid: extension id is empty")

// ErrInvalidSegment indicates a dot-separated segment of an ExtensionId
// does not begin with a letter or underscore (segments starting with an
// ASCII digit are reserved for encoded type-variable indices and are
// not legal identifiers).
var ErrInvalidSegment = errors.New("extid: invalid identifier segment")

// ErrFreeTypeVar indicates Set.Substitute encountered a type-variable
// member with no binding in the supplied Substitution.
var ErrFreeTypeVar = errors.New("extid: free type variable in extension set")

// ID is a dot-separated, non-empty identifier naming an Extension.
// Each segment must begin with a letter or underscore; segments
// beginning with an ASCII digit are reserved (see ExtensionSet).
type ID string

// NewID validates and constructs an ID from s.
func NewID(s string) (ID, error) {
	if s == "" {
		return "", ErrEmptyID
	}
	for _, seg := range splitDot(s) {
		if seg == "" {
			return "", fmt.Errorf("NewID(%q): empty segment: %w", s, ErrInvalidSegment)
		}
		c := seg[0]
		if !(c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			return "", fmt.Errorf("NewID(%q): segment %q: %w", s, seg, ErrInvalidSegment)
		}
	}

	return ID(s), nil
}

// MustNewID is NewID but panics on error; reserved for package-level
// constants where the identifier is a compile-time literal.
func MustNewID(s string) ID {
	id, err := NewID(s)
	if err != nil {
		panic(err)
	}

	return id
}

func splitDot(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])

	return out
}

// isTypeVarToken reports whether id encodes a type-variable DeBruijn
// index (first rune is an ASCII digit) and, if so, returns the index.
func isTypeVarToken(id ID) (idx int, ok bool) {
	s := string(id)
	if s == "" || s[0] < '0' || s[0] > '9' {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}

	return n, true
}

// typeVarToken encodes a type-variable DeBruijn index as the decimal
// string ExtensionSet uses to represent it.
func typeVarToken(idx int) ID {
	return ID(strconv.Itoa(idx))
}

// Set is an ordered set of ExtensionIds. The zero value is an empty set
// ready to use.
type Set struct {
	m map[ID]struct{}
}

// NewSet returns an empty Set.
func NewSet() Set {
	return Set{m: make(map[ID]struct{})}
}

// Singleton returns a Set containing exactly id.
func Singleton(id ID) Set {
	s := NewSet()
	s.Insert(id)

	return s
}

// TypeVar returns a Set containing a single type-variable placeholder
// for declared extension-set parameter idx.
func TypeVar(idx int) Set {
	return Singleton(typeVarToken(idx))
}

// Insert adds id to the set; idempotent.
func (s *Set) Insert(id ID) {
	if s.m == nil {
		s.m = make(map[ID]struct{})
	}
	s.m[id] = struct{}{}
}

// Contains reports whether id is a member.
func (s Set) Contains(id ID) bool {
	_, ok := s.m[id]

	return ok
}

// IsEmpty reports whether the set has no members.
func (s Set) IsEmpty() bool { return len(s.m) == 0 }

// Len returns the number of members.
func (s Set) Len() int { return len(s.m) }

// Sorted returns the members in ascending lexicographic order.
// Complexity: O(n log n).
func (s Set) Sorted() []ID {
	out := make([]ID, 0, len(s.m))
	for id := range s.m {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Union returns a new Set containing every member of s and other.
// Idempotent and commutative.
func (s Set) Union(other Set) Set {
	out := NewSet()
	for id := range s.m {
		out.Insert(id)
	}
	for id := range other.m {
		out.Insert(id)
	}

	return out
}

// UnionOver returns the union of an arbitrary collection of Sets.
func UnionOver(sets ...Set) Set {
	out := NewSet()
	for _, s := range sets {
		for id := range s.m {
			out.Insert(id)
		}
	}

	return out
}

// IsSubset reports whether every member of s is also a member of other.
func (s Set) IsSubset(other Set) bool {
	for id := range s.m {
		if !other.Contains(id) {
			return false
		}
	}

	return true
}

// MissingFrom returns the members of other that are not in s, so
// MissingFrom(A,B) ⊆ B and A ∪ MissingFrom(A,B) ⊇ B.
func (s Set) MissingFrom(other Set) Set {
	out := NewSet()
	for id := range other.m {
		if !s.Contains(id) {
			out.Insert(id)
		}
	}

	return out
}

// Substitution supplies concrete extension-sets for declared
// extension-set type variables during Substitute.
type Substitution interface {
	// ExtensionsFor returns the concrete Set bound to extension-set
	// parameter idx. ok is false if idx is unbound, a pre-validation
	// error; Substitute reports it as an error rather than panicking.
	ExtensionsFor(idx int) (Set, bool)
}

// Substitute replaces every type-variable member of s with the set
// bound to it by subst, leaving ordinary extension ids untouched.
// Returns ErrFreeTypeVar if a variable has no binding.
func (s Set) Substitute(subst Substitution) (Set, error) {
	out := NewSet()
	for id := range s.m {
		idx, isVar := isTypeVarToken(id)
		if !isVar {
			out.Insert(id)

			continue
		}
		bound, ok := subst.ExtensionsFor(idx)
		if !ok {
			return Set{}, fmt.Errorf("Substitute: var %d: %w", idx, ErrFreeTypeVar)
		}
		for m := range bound.m {
			out.Insert(m)
		}
	}

	return out, nil
}

// Equal reports whether s and other contain exactly the same members.
func (s Set) Equal(other Set) bool {
	if s.Len() != other.Len() {
		return false
	}

	return s.IsSubset(other)
}

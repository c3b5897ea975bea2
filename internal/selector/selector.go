package selector

import (
	"strings"

	"github.com/implicitlycorrect/graft/internal/metadata"
)

// Accessor name prefixes. Methods following the property-accessor naming
// convention are never selected standalone; the owning property's
// selection subsumes them.
const (
	getterPrefix = "get_"
	setterPrefix = "set_"
)

// CloneSet is the clone builder's registration surface. The selector
// depends only on this contract; the builder owns the pending sets
// (including any types slated before selection ran).
//
// All three methods report infrastructure faults via error. The selector
// treats any such error as fatal and stops immediately.
type CloneSet interface {
	// AddType slates a type for wholesale cloning.
	AddType(t *metadata.TypeDef) error

	// AddMember slates a member for individual cloning.
	AddMember(m metadata.Member) error

	// PendingTypes returns the current pending type set in registration
	// order.
	PendingTypes() ([]*metadata.TypeDef, error)
}

// Selector computes a selection from marker rules. The zero value is not
// usable; construct with New.
type Selector struct {
	markers metadata.MarkerSource
}

// New creates a Selector answering marker queries from src. A nil src
// falls back to the entities' own declared markers.
func New(src metadata.MarkerSource) *Selector {
	if src == nil {
		src = metadata.DeclaredMarkers{}
	}
	return &Selector{markers: src}
}

// Select walks src's types in enumeration order and registers qualifying
// types and members into set. It returns the refreshed pending type set;
// the real output is the mutated set. src is never modified.
func (s *Selector) Select(src *metadata.Module, set CloneSet) ([]*metadata.TypeDef, error) {
	if set == nil {
		return nil, &StateError{Op: "select", Message: "clone set is nil"}
	}

	for _, t := range src.AllTypes() {
		includeType := s.markers.HasMarker(t, metadata.MarkerInclude)
		if includeType {
			if err := set.AddType(t); err != nil {
				return nil, &StateError{Op: "add type", Entity: t.FullName(), Err: err}
			}
		}

		for _, f := range t.Fields {
			if err := s.selectMember(set, f, includeType); err != nil {
				return nil, err
			}
		}
		for _, e := range t.Events {
			if err := s.selectMember(set, e, includeType); err != nil {
				return nil, err
			}
		}
		for _, p := range t.Properties {
			if err := s.selectMember(set, p, includeType); err != nil {
				return nil, err
			}
		}
		for _, m := range t.Methods {
			if isAccessor(m.Name) {
				continue
			}
			if err := s.selectMember(set, m, includeType); err != nil {
				return nil, err
			}
		}
	}

	types, err := set.PendingTypes()
	if err != nil {
		return nil, &StateError{Op: "pending types", Err: err}
	}
	return types, nil
}

// selectMember applies the member inclusion rule and registers the member
// when it qualifies. A member-level include always wins; ignore only
// cancels inclusion inherited from the type.
func (s *Selector) selectMember(set CloneSet, m metadata.Member, includeType bool) error {
	include := includeType && !s.markers.HasMarker(m, metadata.MarkerIgnore) ||
		s.markers.HasMarker(m, metadata.MarkerInclude)
	if !include {
		return nil
	}
	if err := set.AddMember(m); err != nil {
		return &StateError{Op: "add member", Entity: m.MemberName(), Err: err}
	}
	return nil
}

// isAccessor reports whether a method name follows the property-accessor
// convention.
func isAccessor(name string) bool {
	return strings.HasPrefix(name, getterPrefix) || strings.HasPrefix(name, setterPrefix)
}

package metadata

import "fmt"

// GlobalTypeName is the reserved name of the synthetic container type that
// owns members with no declaring type. Every module can be asked for it;
// it is created on first use and always placed at the front of the type
// list, matching the managed-metadata convention that the global type is
// the module's first type definition.
const GlobalTypeName = "<Module>"

// Module is a managed module's member graph: an ordered set of top-level
// type definitions, at most one of which is the global-members container.
// Mutable; a merge appends into it.
type Module struct {
	Name  string     `json:"name" yaml:"name"`
	Types []*TypeDef `json:"types,omitempty" yaml:"types,omitempty"`
}

// AllTypes returns the module's type definitions in the module's own
// enumeration order. The slice is the module's backing storage; callers
// must not re-order it.
func (m *Module) AllTypes() []*TypeDef {
	return m.Types
}

// AddType appends a type definition to the module's top-level types.
func (m *Module) AddType(t *TypeDef) {
	m.Types = append(m.Types, t)
}

// GlobalType returns the global-members container, or nil if the module
// does not have one yet.
func (m *Module) GlobalType() *TypeDef {
	for _, t := range m.Types {
		if t.Name == GlobalTypeName {
			return t
		}
	}
	return nil
}

// GetOrCreateGlobalType returns the global-members container, creating it
// if absent. Idempotent: repeated calls return the same TypeDef.
func (m *Module) GetOrCreateGlobalType() *TypeDef {
	if t := m.GlobalType(); t != nil {
		return t
	}
	t := &TypeDef{Name: GlobalTypeName}
	m.Types = append([]*TypeDef{t}, m.Types...)
	return t
}

// TypeDef is a type definition owning ordered member collections.
type TypeDef struct {
	Name       string      `json:"name" yaml:"name"`
	Namespace  string      `json:"namespace,omitempty" yaml:"namespace,omitempty"`
	Markers    Markers     `json:"markers,omitempty" yaml:"markers,omitempty"`
	Fields     []*Field    `json:"fields,omitempty" yaml:"fields,omitempty"`
	Events     []*Event    `json:"events,omitempty" yaml:"events,omitempty"`
	Properties []*Property `json:"properties,omitempty" yaml:"properties,omitempty"`
	Methods    []*Method   `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// FullName returns "Namespace.Name", or just the name for types without
// a namespace (the global type never has one).
func (t *TypeDef) FullName() string {
	if t.Namespace == "" {
		return t.Name
	}
	return fmt.Sprintf("%s.%s", t.Namespace, t.Name)
}

// MarkerList implements Marked.
func (t *TypeDef) MarkerList() Markers { return t.Markers }

// AddField appends f to the type's field collection and claims ownership.
func (t *TypeDef) AddField(f *Field) {
	f.Owner = t
	t.Fields = append(t.Fields, f)
}

// AddEvent appends e to the type's event collection and claims ownership.
func (t *TypeDef) AddEvent(e *Event) {
	e.Owner = t
	t.Events = append(t.Events, e)
}

// AddProperty appends p to the type's property collection and claims
// ownership. Accessor methods referenced by p are not touched; they are
// owned wherever they were declared.
func (t *TypeDef) AddProperty(p *Property) {
	p.Owner = t
	t.Properties = append(t.Properties, p)
}

// AddMethod appends m to the type's method collection and claims ownership.
func (t *TypeDef) AddMethod(m *Method) {
	m.Owner = t
	t.Methods = append(t.Methods, m)
}

// Member is any of the four member kinds. A member belongs to exactly one
// type definition, or to none; an ownerless member (Declaring() == nil)
// is routed to the global-members container on merge.
type Member interface {
	Marked

	// MemberName returns the member's declared name.
	MemberName() string

	// Declaring returns the owning type definition, or nil.
	Declaring() *TypeDef

	// SetDeclaring rebinds the member to a new owner. Used by merge when
	// attaching ownerless clones to the global-members container.
	SetDeclaring(*TypeDef)
}

// Field is a data member.
type Field struct {
	Name    string   `json:"name" yaml:"name"`
	Type    string   `json:"type" yaml:"type"`
	Markers Markers  `json:"markers,omitempty" yaml:"markers,omitempty"`
	Owner   *TypeDef `json:"-" yaml:"-"`
}

func (f *Field) MemberName() string      { return f.Name }
func (f *Field) Declaring() *TypeDef     { return f.Owner }
func (f *Field) SetDeclaring(t *TypeDef) { f.Owner = t }
func (f *Field) MarkerList() Markers     { return f.Markers }

// Event is a subscription member.
type Event struct {
	Name    string   `json:"name" yaml:"name"`
	Type    string   `json:"type" yaml:"type"`
	Markers Markers  `json:"markers,omitempty" yaml:"markers,omitempty"`
	Owner   *TypeDef `json:"-" yaml:"-"`
}

func (e *Event) MemberName() string      { return e.Name }
func (e *Event) Declaring() *TypeDef     { return e.Owner }
func (e *Event) SetDeclaring(t *TypeDef) { e.Owner = t }
func (e *Event) MarkerList() Markers     { return e.Markers }

// Property is a get/set member. Getter and Setter reference accessor
// methods declared on the same type; either may be nil. Cloning a
// property carries its accessors along because they are reachable
// through these references.
type Property struct {
	Name    string   `json:"name" yaml:"name"`
	Type    string   `json:"type" yaml:"type"`
	Markers Markers  `json:"markers,omitempty" yaml:"markers,omitempty"`
	Getter  *Method  `json:"-" yaml:"-"`
	Setter  *Method  `json:"-" yaml:"-"`
	Owner   *TypeDef `json:"-" yaml:"-"`
}

func (p *Property) MemberName() string      { return p.Name }
func (p *Property) Declaring() *TypeDef     { return p.Owner }
func (p *Property) SetDeclaring(t *TypeDef) { p.Owner = t }
func (p *Property) MarkerList() Markers     { return p.Markers }

// Method is a function member.
type Method struct {
	Name    string   `json:"name" yaml:"name"`
	Returns string   `json:"returns,omitempty" yaml:"returns,omitempty"`
	Params  []Param  `json:"params,omitempty" yaml:"params,omitempty"`
	Markers Markers  `json:"markers,omitempty" yaml:"markers,omitempty"`
	Owner   *TypeDef `json:"-" yaml:"-"`
}

func (m *Method) MemberName() string      { return m.Name }
func (m *Method) Declaring() *TypeDef     { return m.Owner }
func (m *Method) SetDeclaring(t *TypeDef) { m.Owner = t }
func (m *Method) MarkerList() Markers     { return m.Markers }

// Param is a named method parameter.
type Param struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// KindOf resolves a member to its concrete kind name ("field", "event",
// "property", "method"), or "" for an unrecognized implementation.
func KindOf(m Member) string {
	switch m.(type) {
	case *Field:
		return "field"
	case *Event:
		return "event"
	case *Property:
		return "property"
	case *Method:
		return "method"
	default:
		return ""
	}
}

package testutil

import "github.com/implicitlycorrect/graft/internal/metadata"

// ModuleBuilder constructs module graphs tersely in tests.
type ModuleBuilder struct {
	mod *metadata.Module
}

// NewModule starts a module graph.
func NewModule(name string) *ModuleBuilder {
	return &ModuleBuilder{mod: &metadata.Module{Name: name}}
}

// Type adds a top-level type and returns its builder.
func (b *ModuleBuilder) Type(name string, markers ...metadata.Marker) *TypeBuilder {
	t := &metadata.TypeDef{Name: name, Markers: markers}
	b.mod.AddType(t)
	return &TypeBuilder{mod: b, t: t}
}

// Globals returns a builder for the module's global-members type,
// creating it if absent.
func (b *ModuleBuilder) Globals() *TypeBuilder {
	return &TypeBuilder{mod: b, t: b.mod.GetOrCreateGlobalType()}
}

// Build returns the finished module.
func (b *ModuleBuilder) Build() *metadata.Module {
	return b.mod
}

// TypeBuilder adds members to one type. Declare methods before the
// properties that reference them: Property links accessors by the
// get_/set_ naming convention against the methods present at call time.
type TypeBuilder struct {
	mod *ModuleBuilder
	t   *metadata.TypeDef
}

// Field adds a field.
func (tb *TypeBuilder) Field(name, typ string, markers ...metadata.Marker) *TypeBuilder {
	tb.t.AddField(&metadata.Field{Name: name, Type: typ, Markers: markers})
	return tb
}

// Event adds an event.
func (tb *TypeBuilder) Event(name, typ string, markers ...metadata.Marker) *TypeBuilder {
	tb.t.AddEvent(&metadata.Event{Name: name, Type: typ, Markers: markers})
	return tb
}

// Method adds a method.
func (tb *TypeBuilder) Method(name, returns string, markers ...metadata.Marker) *TypeBuilder {
	tb.t.AddMethod(&metadata.Method{Name: name, Returns: returns, Markers: markers})
	return tb
}

// Property adds a property, linking get_<name>/set_<name> accessors when
// such methods are already declared.
func (tb *TypeBuilder) Property(name, typ string, markers ...metadata.Marker) *TypeBuilder {
	p := &metadata.Property{Name: name, Type: typ, Markers: markers}
	for _, m := range tb.t.Methods {
		switch m.Name {
		case "get_" + name:
			p.Getter = m
		case "set_" + name:
			p.Setter = m
		}
	}
	tb.t.AddProperty(p)
	return tb
}

// TypeRef returns the underlying type definition.
func (tb *TypeBuilder) TypeRef() *metadata.TypeDef {
	return tb.t
}

// Module returns to the module builder for chaining.
func (tb *TypeBuilder) Module() *ModuleBuilder {
	return tb.mod
}

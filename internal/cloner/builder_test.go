package cloner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/implicitlycorrect/graft/internal/metadata"
	"github.com/implicitlycorrect/graft/internal/testutil"
)

func TestBuilderDeduplicatesAndKeepsOrder(t *testing.T) {
	a := &metadata.TypeDef{Name: "A"}
	b := &metadata.TypeDef{Name: "B"}

	builder := NewBuilder()
	require.NoError(t, builder.AddType(a))
	require.NoError(t, builder.AddType(b))
	require.NoError(t, builder.AddType(a)) // re-registration keeps first position

	types, err := builder.PendingTypes()
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Same(t, a, types[0])
	assert.Same(t, b, types[1])
}

func TestBuilderSeededTypesComeFirst(t *testing.T) {
	seeded := &metadata.TypeDef{Name: "Existing"}
	later := &metadata.TypeDef{Name: "Later"}

	builder := NewBuilder(seeded)
	require.NoError(t, builder.AddType(later))

	types, err := builder.PendingTypes()
	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Same(t, seeded, types[0])
}

func TestBuilderDeduplicatesMembers(t *testing.T) {
	f := &metadata.Field{Name: "counter", Type: "int32"}

	builder := NewBuilder()
	require.NoError(t, builder.AddMember(f))
	require.NoError(t, builder.AddMember(f))

	assert.Len(t, builder.PendingMembers(), 1)
}

func TestBuilderIgnoresNilRegistrations(t *testing.T) {
	builder := NewBuilder()
	require.NoError(t, builder.AddType(nil))
	require.NoError(t, builder.AddMember(nil))

	types, err := builder.PendingTypes()
	require.NoError(t, err)
	assert.Empty(t, types)
	assert.Empty(t, builder.PendingMembers())
}

func TestCloneProducesDistinctDeepCopies(t *testing.T) {
	mod := testutil.NewModule("Lib").
		Type("Widget").
		Field("counter", "int32").
		Module().Build()
	widget := mod.AllTypes()[0]

	builder := NewBuilder()
	require.NoError(t, builder.AddType(widget))

	res, err := builder.Clone()
	require.NoError(t, err)

	require.Len(t, res.Types, 1)
	cloned := res.Types[0]
	assert.NotSame(t, widget, cloned)
	assert.Equal(t, widget.Name, cloned.Name)
	require.Len(t, cloned.Fields, 1)
	assert.NotSame(t, widget.Fields[0], cloned.Fields[0])
	assert.Equal(t, "counter", cloned.Fields[0].Name)

	// Source untouched.
	assert.Same(t, widget, mod.AllTypes()[0])
	assert.Same(t, widget, widget.Fields[0].Declaring())
}

func TestCloneRewritesBackPointersIntoClonedGraph(t *testing.T) {
	mod := testutil.NewModule("Lib").
		Type("Widget").
		Field("counter", "int32").
		Module().Build()
	widget := mod.AllTypes()[0]
	counter := widget.Fields[0]

	builder := NewBuilder()
	require.NoError(t, builder.AddType(widget))
	require.NoError(t, builder.AddMember(counter))

	res, err := builder.Clone()
	require.NoError(t, err)

	require.Len(t, res.Members, 1)
	clonedField := res.Members[0]

	// The registered member resolves to the copy inside the cloned type,
	// not to a second copy.
	assert.Same(t, res.Types[0].Fields[0], clonedField)
	assert.Same(t, res.Types[0], clonedField.Declaring())
}

func TestCloneDetachesMembersOfUnselectedTypes(t *testing.T) {
	mod := testutil.NewModule("Lib").
		Type("Widget").
		Field("counter", "int32", metadata.MarkerInclude).
		Module().Build()
	counter := mod.AllTypes()[0].Fields[0]

	builder := NewBuilder()
	require.NoError(t, builder.AddMember(counter))

	res, err := builder.Clone()
	require.NoError(t, err)

	assert.Empty(t, res.Types)
	require.Len(t, res.Members, 1)
	assert.Nil(t, res.Members[0].Declaring(), "standalone clones come out ownerless")
	assert.NotNil(t, counter.Declaring(), "the source member keeps its owner")
}

func TestClonedPropertyCarriesAccessors(t *testing.T) {
	mod := testutil.NewModule("Lib").
		Type("Widget").
		Method("get_Value", "int32").
		Method("set_Value", "void").
		Property("Value", "int32", metadata.MarkerInclude).
		Module().Build()
	prop := mod.AllTypes()[0].Properties[0]

	builder := NewBuilder()
	require.NoError(t, builder.AddMember(prop))

	res, err := builder.Clone()
	require.NoError(t, err)

	require.Len(t, res.Members, 1)
	clonedProp, ok := res.Members[0].(*metadata.Property)
	require.True(t, ok)

	require.NotNil(t, clonedProp.Getter)
	require.NotNil(t, clonedProp.Setter)
	assert.NotSame(t, prop.Getter, clonedProp.Getter, "accessors are cloned, not shared")
	assert.Equal(t, "get_Value", clonedProp.Getter.Name)
	assert.Equal(t, "set_Value", clonedProp.Setter.Name)

	// The detach covers the accessors too: a dangling owner here would
	// point at a stray type copy that exists nowhere in the result.
	assert.Nil(t, clonedProp.Declaring())
	assert.Nil(t, clonedProp.Getter.Declaring())
	assert.Nil(t, clonedProp.Setter.Declaring())
}

func TestClonedPropertyAccessorsStayAttachedWhenTypeIsPending(t *testing.T) {
	mod := testutil.NewModule("Lib").
		Type("Widget", metadata.MarkerInclude).
		Method("get_Value", "int32").
		Property("Value", "int32").
		Module().Build()
	widget := mod.AllTypes()[0]

	builder := NewBuilder()
	require.NoError(t, builder.AddType(widget))
	require.NoError(t, builder.AddMember(widget.Properties[0]))

	res, err := builder.Clone()
	require.NoError(t, err)

	require.Len(t, res.Types, 1)
	cloned := res.Types[0]
	require.Len(t, cloned.Properties, 1)
	require.NotNil(t, cloned.Properties[0].Getter)
	assert.Same(t, cloned, cloned.Properties[0].Declaring())
	assert.Same(t, cloned, cloned.Properties[0].Getter.Declaring(),
		"accessors of a wholesale-cloned type keep their owner")
}

func TestCloneKeepsRegistrationOrder(t *testing.T) {
	mod := testutil.NewModule("Lib").
		Type("Widget").
		Field("first", "int32", metadata.MarkerInclude).
		Field("second", "int32", metadata.MarkerInclude).
		Event("third", "EventHandler", metadata.MarkerInclude).
		Module().Build()
	widget := mod.AllTypes()[0]

	builder := NewBuilder()
	require.NoError(t, builder.AddMember(widget.Fields[0]))
	require.NoError(t, builder.AddMember(widget.Fields[1]))
	require.NoError(t, builder.AddMember(widget.Events[0]))

	res, err := builder.Clone()
	require.NoError(t, err)

	require.Len(t, res.Members, 3)
	assert.Equal(t, "first", res.Members[0].MemberName())
	assert.Equal(t, "second", res.Members[1].MemberName())
	assert.Equal(t, "third", res.Members[2].MemberName())
}

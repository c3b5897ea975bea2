package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/implicitlycorrect/graft/internal/metadata"
	"github.com/implicitlycorrect/graft/internal/testutil"
)

func codes(errs []ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Code
	}
	return out
}

func TestValidateCleanModule(t *testing.T) {
	mod := testutil.NewModule("Lib").
		Type("Widget", metadata.MarkerInclude).
		Field("counter", "int32").
		Module().Build()

	assert.Empty(t, Validate(mod))
}

func TestValidateEmptyModuleName(t *testing.T) {
	mod := testutil.NewModule("  ").Build()

	errs := Validate(mod)
	assert.Contains(t, codes(errs), ErrModuleNameEmpty)
}

func TestValidateDuplicateTypeName(t *testing.T) {
	mod := testutil.NewModule("Lib").
		Type("Widget").Module().
		Type("Widget").Module().
		Build()

	errs := Validate(mod)
	assert.Contains(t, codes(errs), ErrDuplicateTypeName)
}

func TestValidateDuplicateMemberName(t *testing.T) {
	mod := testutil.NewModule("Lib").
		Type("Widget").
		Field("counter", "int32").
		Field("counter", "int64").
		Module().Build()

	errs := Validate(mod)
	assert.Contains(t, codes(errs), ErrDuplicateMember)
}

func TestValidateSameNameAcrossKindsIsFine(t *testing.T) {
	mod := testutil.NewModule("Lib").
		Type("Widget").
		Field("Value", "int32").
		Method("Value", "int32").
		Module().Build()

	assert.Empty(t, Validate(mod))
}

func TestValidateEmptyMemberName(t *testing.T) {
	mod := testutil.NewModule("Lib").
		Type("Widget").
		Field("", "int32").
		Module().Build()

	errs := Validate(mod)
	assert.Contains(t, codes(errs), ErrMemberNameEmpty)
}

func TestValidateUnknownMarker(t *testing.T) {
	mod := testutil.NewModule("Lib").
		Type("Widget", metadata.Marker("export")).
		Module().Build()

	errs := Validate(mod)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrUnknownMarker, errs[0].Code)
	assert.Contains(t, errs[0].Message, "export")
}

func TestValidateGlobalTypeMisuse(t *testing.T) {
	mod := testutil.NewModule("Lib").Build()
	globals := mod.GetOrCreateGlobalType()
	globals.Markers = metadata.Markers{metadata.MarkerInclude}

	errs := Validate(mod)
	assert.Contains(t, codes(errs), ErrReservedGlobalName)
}

func TestValidateDanglingAccessor(t *testing.T) {
	mod := testutil.NewModule("Lib").Build()
	widget := &metadata.TypeDef{Name: "Widget"}
	orphan := &metadata.Method{Name: "get_Value"}
	widget.AddProperty(&metadata.Property{Name: "Value", Type: "int32", Getter: orphan})
	mod.AddType(widget)

	errs := Validate(mod)
	assert.Contains(t, codes(errs), ErrDanglingAccessor)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	mod := testutil.NewModule("").
		Type("Widget", metadata.Marker("bogus")).
		Field("counter", "int32").
		Field("counter", "int32").
		Module().Build()

	errs := Validate(mod)
	assert.GreaterOrEqual(t, len(errs), 3, "collect-all, not fail-fast")
}

func TestValidationErrorRendering(t *testing.T) {
	err := ValidationError{Field: "types[0]", Message: "boom", Code: "E102"}
	assert.Equal(t, "[E102] types[0]: boom", err.Error())
}

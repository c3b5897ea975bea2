package manifest

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/implicitlycorrect/graft/internal/metadata"
)

// Compile parses a CUE value holding a single manifest into a module
// graph. The value should be the document root, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`module: Lib: { ... }`)
//	mod, err := manifest.Compile(v)
func Compile(v cue.Value) (*metadata.Module, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	moduleVal := v.LookupPath(cue.ParsePath("module"))
	if !moduleVal.Exists() {
		return nil, &CompileError{
			Field:   "module",
			Message: "manifest must declare exactly one module",
			Pos:     v.Pos(),
		}
	}

	iter, err := moduleVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var mod *metadata.Module
	for iter.Next() {
		if mod != nil {
			return nil, &CompileError{
				Field:   "module",
				Message: "manifest declares more than one module",
				Pos:     iter.Value().Pos(),
			}
		}
		mod = &metadata.Module{Name: iter.Label()}
		if err := compileModuleBody(iter.Value(), mod); err != nil {
			return nil, err
		}
	}
	if mod == nil {
		return nil, &CompileError{
			Field:   "module",
			Message: "manifest must declare exactly one module",
			Pos:     moduleVal.Pos(),
		}
	}

	return mod, nil
}

func compileModuleBody(v cue.Value, mod *metadata.Module) error {
	// globals materialize the global-members container first, matching
	// the convention that it is the module's first type.
	globalsVal := v.LookupPath(cue.ParsePath("globals"))
	if globalsVal.Exists() {
		globals := mod.GetOrCreateGlobalType()
		if err := compileMembers(globalsVal, globals); err != nil {
			return err
		}
	}

	typesVal := v.LookupPath(cue.ParsePath("types"))
	if !typesVal.Exists() {
		return nil
	}
	iter, err := typesVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		t, err := compileType(iter.Label(), iter.Value())
		if err != nil {
			return err
		}
		mod.AddType(t)
	}
	return nil
}

func compileType(name string, v cue.Value) (*metadata.TypeDef, error) {
	if name == metadata.GlobalTypeName {
		return nil, &CompileError{
			Field:   fmt.Sprintf("types.%s", name),
			Message: "reserved global type name; declare module-level members under globals",
			Pos:     v.Pos(),
		}
	}

	t := &metadata.TypeDef{Name: name}

	nsVal := v.LookupPath(cue.ParsePath("namespace"))
	if nsVal.Exists() {
		ns, err := nsVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		t.Namespace = ns
	}

	markers, err := compileMarkers(v)
	if err != nil {
		return nil, err
	}
	t.Markers = markers

	if err := compileMembers(v, t); err != nil {
		return nil, err
	}
	return t, nil
}

// compileMembers parses the four member collections of a type body (or of
// the globals block) and links property accessors.
func compileMembers(v cue.Value, t *metadata.TypeDef) error {
	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if fieldsVal.Exists() {
		iter, err := fieldsVal.Fields()
		if err != nil {
			return formatCUEError(err)
		}
		for iter.Next() {
			typ, markers, err := compileTypedMember(iter.Value())
			if err != nil {
				return err
			}
			t.AddField(&metadata.Field{Name: iter.Label(), Type: typ, Markers: markers})
		}
	}

	eventsVal := v.LookupPath(cue.ParsePath("events"))
	if eventsVal.Exists() {
		iter, err := eventsVal.Fields()
		if err != nil {
			return formatCUEError(err)
		}
		for iter.Next() {
			typ, markers, err := compileTypedMember(iter.Value())
			if err != nil {
				return err
			}
			t.AddEvent(&metadata.Event{Name: iter.Label(), Type: typ, Markers: markers})
		}
	}

	methodsVal := v.LookupPath(cue.ParsePath("methods"))
	if methodsVal.Exists() {
		iter, err := methodsVal.Fields()
		if err != nil {
			return formatCUEError(err)
		}
		for iter.Next() {
			m, err := compileMethod(iter.Label(), iter.Value())
			if err != nil {
				return err
			}
			t.AddMethod(m)
		}
	}

	propsVal := v.LookupPath(cue.ParsePath("properties"))
	if propsVal.Exists() {
		iter, err := propsVal.Fields()
		if err != nil {
			return formatCUEError(err)
		}
		for iter.Next() {
			p, err := compileProperty(iter.Label(), iter.Value(), t)
			if err != nil {
				return err
			}
			t.AddProperty(p)
		}
	}

	return nil
}

// compileTypedMember parses a field or event body: either a bare type
// string or {type, markers}.
func compileTypedMember(v cue.Value) (string, metadata.Markers, error) {
	if typ, err := v.String(); err == nil {
		return typ, nil, nil
	}

	typVal := v.LookupPath(cue.ParsePath("type"))
	if !typVal.Exists() {
		return "", nil, &CompileError{
			Field:   "type",
			Message: "member must be a type string or a struct with a type field",
			Pos:     v.Pos(),
		}
	}
	typ, err := typVal.String()
	if err != nil {
		return "", nil, formatCUEError(err)
	}
	markers, err := compileMarkers(v)
	if err != nil {
		return "", nil, err
	}
	return typ, markers, nil
}

func compileMethod(name string, v cue.Value) (*metadata.Method, error) {
	m := &metadata.Method{Name: name}

	retVal := v.LookupPath(cue.ParsePath("returns"))
	if retVal.Exists() {
		ret, err := retVal.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		m.Returns = ret
	}

	paramsVal := v.LookupPath(cue.ParsePath("params"))
	if paramsVal.Exists() {
		iter, err := paramsVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			typ, err := iter.Value().String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			m.Params = append(m.Params, metadata.Param{Name: iter.Label(), Type: typ})
		}
	}

	markers, err := compileMarkers(v)
	if err != nil {
		return nil, err
	}
	m.Markers = markers
	return m, nil
}

// compileProperty parses a property body and resolves its accessors
// against the methods already declared on t. Explicit getter/setter names
// win; otherwise the get_/set_ naming convention is tried.
func compileProperty(name string, v cue.Value, t *metadata.TypeDef) (*metadata.Property, error) {
	typ, markers, err := compileTypedMember(v)
	if err != nil {
		return nil, err
	}
	p := &metadata.Property{Name: name, Type: typ, Markers: markers}

	getterName := "get_" + name
	setterName := "set_" + name
	if gv := v.LookupPath(cue.ParsePath("getter")); gv.Exists() {
		if getterName, err = gv.String(); err != nil {
			return nil, formatCUEError(err)
		}
	}
	if sv := v.LookupPath(cue.ParsePath("setter")); sv.Exists() {
		if setterName, err = sv.String(); err != nil {
			return nil, formatCUEError(err)
		}
	}
	p.Getter = findMethod(t, getterName)
	p.Setter = findMethod(t, setterName)
	return p, nil
}

func findMethod(t *metadata.TypeDef, name string) *metadata.Method {
	for _, m := range t.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// compileMarkers parses the optional markers list of any entity body.
func compileMarkers(v cue.Value) (metadata.Markers, error) {
	markersVal := v.LookupPath(cue.ParsePath("markers"))
	if !markersVal.Exists() {
		return nil, nil
	}
	iter, err := markersVal.List()
	if err != nil {
		return nil, formatCUEError(err)
	}
	var markers metadata.Markers
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		markers = append(markers, metadata.Marker(strings.ToLower(s)))
	}
	return markers, nil
}

// CompileError represents a manifest compilation error with source
// position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}

package manifest

import (
	"fmt"
	"strings"

	"github.com/implicitlycorrect/graft/internal/metadata"
)

// Validation error codes (E100-E199)
const (
	ErrModuleNameEmpty    = "E101" // module name is required
	ErrDuplicateTypeName  = "E102" // duplicate type full name
	ErrDuplicateMember    = "E103" // duplicate member name within a kind
	ErrMemberNameEmpty    = "E104" // member name is required
	ErrUnknownMarker      = "E105" // marker kind has no selection semantics
	ErrReservedGlobalName = "E106" // global type misuse (namespace or markers)
	ErrDanglingAccessor   = "E107" // property accessor not declared on the type
)

// ValidationError represents a module graph validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a module graph against structural rules. Returns all
// errors found (does not fail-fast). Works on any metadata.Module, not
// just manifest-compiled ones.
func Validate(mod *metadata.Module) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(mod.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "module.name",
			Message: "module name is required and must be non-empty",
			Code:    ErrModuleNameEmpty,
		})
	}

	typeNames := make(map[string]bool)
	for i, t := range mod.AllTypes() {
		field := fmt.Sprintf("types[%d]", i)

		if typeNames[t.FullName()] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate type name: %q", t.FullName()),
				Code:    ErrDuplicateTypeName,
			})
		}
		typeNames[t.FullName()] = true

		if t.Name == metadata.GlobalTypeName {
			if t.Namespace != "" || len(t.Markers) > 0 {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: "global-members type must not carry a namespace or markers",
					Code:    ErrReservedGlobalName,
				})
			}
		}

		errs = append(errs, validateMarkers(field, t.Markers)...)
		errs = append(errs, validateTypeMembers(field, t)...)
	}

	return errs
}

func validateTypeMembers(field string, t *metadata.TypeDef) []ValidationError {
	var errs []ValidationError

	check := func(kind string, members []metadata.Member) {
		names := make(map[string]bool)
		for i, m := range members {
			mField := fmt.Sprintf("%s.%s[%d]", field, kind, i)
			name := m.MemberName()
			if strings.TrimSpace(name) == "" {
				errs = append(errs, ValidationError{
					Field:   mField,
					Message: "member name is required and must be non-empty",
					Code:    ErrMemberNameEmpty,
				})
			}
			if names[name] {
				errs = append(errs, ValidationError{
					Field:   mField,
					Message: fmt.Sprintf("duplicate %s name: %q", kind, name),
					Code:    ErrDuplicateMember,
				})
			}
			names[name] = true
			errs = append(errs, validateMarkers(mField, m.MarkerList())...)
		}
	}

	check("fields", memberSlice(t.Fields))
	check("events", memberSlice(t.Events))
	check("properties", memberSlice(t.Properties))
	check("methods", memberSlice(t.Methods))

	for i, p := range t.Properties {
		pField := fmt.Sprintf("%s.properties[%d]", field, i)
		if p.Getter != nil && findMethod(t, p.Getter.Name) == nil {
			errs = append(errs, ValidationError{
				Field:   pField,
				Message: fmt.Sprintf("getter %q is not declared on %q", p.Getter.Name, t.FullName()),
				Code:    ErrDanglingAccessor,
			})
		}
		if p.Setter != nil && findMethod(t, p.Setter.Name) == nil {
			errs = append(errs, ValidationError{
				Field:   pField,
				Message: fmt.Sprintf("setter %q is not declared on %q", p.Setter.Name, t.FullName()),
				Code:    ErrDanglingAccessor,
			})
		}
	}

	return errs
}

func validateMarkers(field string, markers metadata.Markers) []ValidationError {
	var errs []ValidationError
	for _, m := range markers {
		known := false
		for _, k := range metadata.KnownMarkers {
			if m == k {
				known = true
				break
			}
		}
		if !known {
			errs = append(errs, ValidationError{
				Field:   field + ".markers",
				Message: fmt.Sprintf("marker %q has no selection semantics", m),
				Code:    ErrUnknownMarker,
			})
		}
	}
	return errs
}

// memberSlice widens a concrete member slice to []metadata.Member.
func memberSlice[M metadata.Member](members []M) []metadata.Member {
	out := make([]metadata.Member, len(members))
	for i, m := range members {
		out[i] = m
	}
	return out
}

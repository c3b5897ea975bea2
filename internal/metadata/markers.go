package metadata

// Marker is a declarative tag attached to a type or member and consulted
// during selection. Only Include and Ignore carry semantics; unknown
// kinds are preserved but never match.
type Marker string

const (
	// MarkerInclude slates a type for wholesale cloning, or a member for
	// individual cloning regardless of its owner's status.
	MarkerInclude Marker = "include"

	// MarkerIgnore excludes a member from type-inherited inclusion. It
	// never overrides an explicit member-level include.
	MarkerIgnore Marker = "ignore"
)

// KnownMarkers lists the marker kinds with selection semantics.
var KnownMarkers = []Marker{MarkerInclude, MarkerIgnore}

// Markers is an entity's declared marker set.
type Markers []Marker

// Has reports whether the set contains the given kind.
func (ms Markers) Has(kind Marker) bool {
	for _, m := range ms {
		if m == kind {
			return true
		}
	}
	return false
}

// Marked is any entity that can carry markers: a TypeDef or a Member.
type Marked interface {
	MarkerList() Markers
}

// MarkerSource answers marker queries for the selector. The predicate is
// the whole contract: any implementation (a metadata table scan, a
// compile-time registry, the declared list below) is interchangeable.
type MarkerSource interface {
	HasMarker(e Marked, kind Marker) bool
}

// DeclaredMarkers answers marker queries from the entity's own declared
// marker list. This is the default MarkerSource.
type DeclaredMarkers struct{}

// HasMarker implements MarkerSource.
func (DeclaredMarkers) HasMarker(e Marked, kind Marker) bool {
	if e == nil {
		return false
	}
	return e.MarkerList().Has(kind)
}

package merger

import "fmt"

// UnknownKindError reports a cloned member that resolves to none of the
// four concrete kinds. Only returned in strict mode; permissive merges
// log and skip instead.
type UnknownKindError struct {
	// Index is the member's position in the clone result.
	Index int

	// Name is the member's declared name.
	Name string
}

// Error implements the error interface.
func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("merge: member %q at index %d has no recognized kind", e.Name, e.Index)
}

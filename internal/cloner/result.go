package cloner

import "github.com/implicitlycorrect/graft/internal/metadata"

// CloneResult is the output of a clone operation: deep copies of the
// selected types and members with internal references rewritten into the
// cloned graph.
//
// Types holds the cloned top-level types in registration order. Members
// holds every cloned registered member in registration order; a member
// with a non-nil declaring type is owned by one of the cloned types, a
// member with a nil declaring type needs a home in the target's
// global-members container.
type CloneResult struct {
	Types   []*metadata.TypeDef
	Members []metadata.Member
}

// Package cloner owns the pending clone sets and the deep-copy primitive.
//
// Builder satisfies selector.CloneSet: types and members are registered in
// order, de-duplicated, and exposed through typed accessors rather than
// internal state. Clone deep-copies the selected graph in a single pass so
// every internal cross-reference (member back-pointers, property accessor
// links) is rewritten to point within the cloned graph.
//
// Members whose declaring type is not in the pending set come out of the
// clone ownerless; the merger routes those into the target's
// global-members container.
package cloner

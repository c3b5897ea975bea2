// Package merger integrates a completed clone result into a target module.
//
// Cloned top-level types are appended to the target in clone-result order.
// Cloned members still owned by one of those types are already reachable
// and are skipped; ownerless members are routed by concrete kind into the
// target's global-members container, which is created on first use.
//
// Merge is a one-shot append, never a set union: running the same clone
// result into the same target twice duplicates entries. Steps apply
// greedily with no rollback; the caller invokes merge once per clone
// result.
package merger

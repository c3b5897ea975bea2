// Package selector walks a source module's type graph and decides what a
// clone operation should carry: whole types slated for wholesale cloning
// and individual members slated for standalone cloning.
//
// Selection policy, per type, in the module's own enumeration order:
//
//  1. A type with an include marker joins the pending type set. Wholesale
//     cloning carries every member of the type.
//  2. A field/event/property is registered individually when it inherits
//     inclusion from its type and carries no ignore marker, OR when it
//     carries its own include marker. A member-level include wins
//     unconditionally; ignore only cancels type-inherited inclusion.
//  3. Methods follow the same rule, except property accessors (the
//     get_/set_ naming convention) are never registered individually:
//     property selection already carries them through the clone graph.
//
// The selector registers into a caller-owned CloneSet and returns the
// refreshed pending type set for diagnostics and chaining. It never
// mutates the source module. Failures to reach or mutate the CloneSet are
// collaborator faults, not data errors, and propagate immediately as
// *StateError.
package selector

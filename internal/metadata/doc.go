// Package metadata provides the model types for a managed module's
// member graph: modules, type definitions, and the four member kinds
// (fields, events, properties, methods).
//
// This package contains type definitions and pure helpers only. All other
// internal packages import metadata; metadata imports nothing internal.
// This keeps the model the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Enumeration order is declaration order everywhere; nothing re-sorts
//   - The global-members container is an ordinary TypeDef addressed by the
//     reserved name "<Module>" and always sits at the front of the type list
//   - All JSON tags use snake_case
//   - Canonical JSON (hashing, golden files) forbids floats and nulls
package metadata

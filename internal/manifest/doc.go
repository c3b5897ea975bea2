// Package manifest compiles CUE module manifests into metadata graphs.
//
// A manifest declares one module, its types, their members, and the
// markers the selector consults:
//
//	module: Lib: {
//		types: Widget: {
//			markers: ["include"]
//			fields: counter: "int32"
//			properties: Value: {type: "int32", markers: ["include"]}
//			methods: get_Value: {returns: "int32"}
//		}
//		globals: fields: g: {type: "int64", markers: ["include"]}
//	}
//
// Member declarations accept a bare type string or a struct with type and
// markers. CUE field iteration preserves declaration order, which becomes
// the module's enumeration order; nothing downstream re-sorts.
//
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
package manifest

// Package harness runs end-to-end graft scenarios for conformance tests.
//
// A scenario is a YAML file holding inline CUE manifests for a source and
// a target module plus the expected selection. Run executes the full
// pipeline (compile, select, clone, merge); RunWithGolden additionally
// snapshots the merged module's canonical JSON against a golden file.
//
// Golden files live in testdata/golden and are regenerated with:
//
//	go test ./internal/harness -update
package harness

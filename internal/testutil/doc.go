// Package testutil provides fluent builders for constructing module
// graphs in tests without manifest round-trips.
package testutil

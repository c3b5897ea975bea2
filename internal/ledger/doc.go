// Package ledger provides a durable, append-only log of graft operations.
//
// Each completed select-clone-merge pipeline is recorded as one Operation
// row: the source and target modules, what was selected (counts plus a
// content-addressed selection fingerprint), and a UUIDv7 operation ID.
// The ledger is an audit surface for the CLI's history command; the core
// selection and merge never depend on it.
//
// Storage is SQLite with WAL mode. The connection pool is limited to a
// single connection because SQLite supports one writer at a time.
package ledger

// Package tally provides the core logic for tracking sales and expenses
// across the product lines of a small business. It is designed to be
// local-first: all records live in a single registry file, and an external
// spreadsheet can be kept as a mirror for backup.
//
// The core functionalities include:
//   - Ledger Entry Model: the two kinds of records (Sale, Expense) a
//     product's ledger can hold, with their invariants.
//   - Accounting Engine: pure functions deriving inventory, revenue, cost
//     of goods, profit, ROI and a cumulative time series from a product's
//     configuration and its full entry history.
//   - Product Registry: the owning aggregate for every product ledger,
//     persisted as a whole after each mutation.
//   - Sync Reconciler: a full-replace synchronization of the flattened
//     registry against a remote row store.
//
// The local registry is always the source of truth. The mirror is replaced
// wholesale on every sync and is never read back to reconcile local state
// automatically.
//
// This package serves as the foundational logic for the `tly` command-line
// tool.
package tally

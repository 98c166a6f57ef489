package tally

import (
	"fmt"
	"sync"
	"time"
)

// Metadata describes the remote row store, as returned by a read-only
// probe.
type Metadata struct {
	Title string
}

// RowStore is the transport port to the remote spreadsheet-like store.
//
// Configured reports whether the transport has usable credentials; when it
// returns false every reconciler operation is a benign no-op, so the whole
// application keeps working offline.
type RowStore interface {
	Configured() bool
	Clear() error
	Append(rows [][]string) error
	ReadValues() ([][]string, error)
	Metadata() (Metadata, error)
}

// SyncResult is the outcome of one reconciler operation. Remote failures
// never escape as errors; they are folded into the message.
type SyncResult struct {
	OK      bool
	Skipped bool // true when sync is not configured; not a failure
	Message string
}

// SyncState tracks one sync attempt: Idle -> InProgress -> Success|Failed.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncInProgress
	SyncSuccess
	SyncFailed
)

func (s SyncState) String() string {
	switch s {
	case SyncIdle:
		return "idle"
	case SyncInProgress:
		return "in progress"
	case SyncSuccess:
		return "success"
	case SyncFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reconciler maintains the remote mirror of the flattened registry.
//
// The only reconciliation strategy is full replace: clear the remote store,
// then write the header and all rows in one batch. Every sync is total, so
// the mirror can never accumulate duplicate or stale rows. The ordering is
// significant: a crash between clear and write leaves the mirror empty,
// never duplicated (an accepted failure mode, local state stays the source
// of truth).
//
// Concurrent FullSync calls are not serialized. The mirror holds whichever
// completed write landed last. There is no retry and no cancellation; each
// attempt is independent and caller-triggered.
type Reconciler struct {
	store RowStore

	mu    sync.Mutex
	state SyncState
	cause string
}

// NewReconciler creates a reconciler over the given transport.
func NewReconciler(store RowStore) *Reconciler {
	return &Reconciler{store: store}
}

// Configured reports whether the underlying transport is usable.
func (r *Reconciler) Configured() bool { return r.store.Configured() }

// Status returns the state of the most recent sync attempt and, when
// failed, its cause.
func (r *Reconciler) Status() (SyncState, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state, r.cause
}

func (r *Reconciler) setStatus(s SyncState, cause string) {
	r.mu.Lock()
	r.state, r.cause = s, cause
	r.mu.Unlock()
}

// FullSync replaces the whole remote mirror with 'rows'. Idempotent:
// syncing the same rows twice leaves the remote store in the same state.
func (r *Reconciler) FullSync(rows []FlatRow) SyncResult {
	if !r.store.Configured() {
		return SyncResult{Skipped: true, Message: "sync is not configured"}
	}
	r.setStatus(SyncInProgress, "")
	if err := r.store.Clear(); err != nil {
		return r.fail("clear", err)
	}
	batch := make([][]string, 0, len(rows)+1)
	batch = append(batch, RowHeader())
	for _, row := range rows {
		batch = append(batch, row.Record())
	}
	if err := r.store.Append(batch); err != nil {
		return r.fail("append", err)
	}
	r.setStatus(SyncSuccess, "")
	return SyncResult{OK: true, Message: fmt.Sprintf("synced %d rows", len(rows))}
}

func (r *Reconciler) fail(op string, err error) SyncResult {
	serr := &SyncError{Op: op, Err: err}
	r.setStatus(SyncFailed, serr.Error())
	return SyncResult{Message: serr.Error()}
}

// TestConnection probes the remote store metadata without mutating
// anything, to validate the configuration before a first sync.
func (r *Reconciler) TestConnection() SyncResult {
	if !r.store.Configured() {
		return SyncResult{Skipped: true, Message: "sync is not configured"}
	}
	md, err := r.store.Metadata()
	if err != nil {
		serr := &SyncError{Op: "probe", Err: err}
		return SyncResult{Message: serr.Error()}
	}
	return SyncResult{OK: true, Message: fmt.Sprintf("connected to %q", md.Title)}
}

// ReadAll fetches the remote rows for a manual import. The header row is
// skipped; rows with unparseable dates get 'importedAt' as timestamp. The
// local registry is never reconciled from the result automatically.
func (r *Reconciler) ReadAll(importedAt time.Time) ([]FlatRow, error) {
	if !r.store.Configured() {
		return nil, nil
	}
	values, err := r.store.ReadValues()
	if err != nil {
		return nil, &SyncError{Op: "read", Err: err}
	}
	return ImportRows(values, importedAt)
}

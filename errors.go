package tally

import (
	"fmt"
	"strings"
)

// FieldViolation describes one invalid field of a product or entry.
type FieldViolation struct {
	Field  string
	Reason string
}

func (v FieldViolation) String() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Reason)
}

// ValidationError reports every constraint violated by an input, never just
// the first one, so callers can present all of them at once. The rejected
// mutation is never partially applied.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Fields returns the names of all violated fields.
func (e *ValidationError) Fields() []string {
	fields := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		fields = append(fields, v.Field)
	}
	return fields
}

// NotFoundError reports a reference to a product or entry id that does not
// exist in the registry, typically a stale id kept by the caller.
type NotFoundError struct {
	Kind string // "product" or "entry"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// InsufficientInventoryError reports a sale whose quantity exceeds the
// product's current inventory. Expected in normal operation.
type InsufficientInventoryError struct {
	ProductID string
	Requested int64
	Available int64
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("cannot sell %d units of product %q: only %d in inventory", e.Requested, e.ProductID, e.Available)
}

// SyncError wraps a remote I/O failure. It never crosses the reconciler
// boundary as a raw error: the reconciler converts it into a SyncResult
// message.
type SyncError struct {
	Op  string
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync %s failed: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }

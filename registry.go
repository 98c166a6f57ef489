package tally

import (
	"bytes"
	"fmt"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ProductLedger is the aggregate of one product and its entry history.
//
// Entries are kept in insertion order, which is not necessarily date order.
// The ledger is owned exclusively by the registry and is only mutated
// through it.
type ProductLedger struct {
	Product *Product
	entries []Entry
}

// Entries returns a copy of the entry sequence in insertion order.
func (l *ProductLedger) Entries() []Entry {
	return slices.Clone(l.entries)
}

func (l *ProductLedger) findEntry(entryID string) (int, Entry) {
	for i, e := range l.entries {
		if e.ID() == entryID {
			return i, e
		}
	}
	return -1, nil
}

// Mirror is the port through which the registry schedules a resync of its
// full state after a mutation.
type Mirror interface {
	Configured() bool
	FullSync(rows []FlatRow) SyncResult
}

// Registry owns the mapping from product id to ledger.
//
// Every mutation rewrites the whole persisted blob (write-through) and, when
// a configured mirror is attached, fires an asynchronous full resync of the
// freshly flattened state. Concurrent resyncs are neither queued nor
// serialized: the mirror ends up holding whichever completed last.
type Registry struct {
	ledgers map[string]*ProductLedger
	order   []string // product ids in insertion order
	store   BlobStore
	mirror  Mirror
	syncs   sync.WaitGroup
}

// NewRegistry creates an empty registry persisting to 'store'.
func NewRegistry(store BlobStore) *Registry {
	return &Registry{
		ledgers: make(map[string]*ProductLedger),
		store:   store,
	}
}

// OpenRegistry hydrates a registry from 'store'. A missing or malformed
// blob yields an empty registry, never an error.
func OpenRegistry(store BlobStore) *Registry {
	r := NewRegistry(store)
	data, err := store.Load()
	if err != nil {
		// first run, or unreadable storage: start empty
		return r
	}
	ledgers, order, err := decodeRegistry(data)
	if err != nil {
		log.Printf("warning: registry blob is malformed, starting empty: %v", err)
		return r
	}
	r.ledgers, r.order = ledgers, order
	return r
}

// AttachMirror sets the mirror used to schedule resyncs after mutations.
func (r *Registry) AttachMirror(m Mirror) { r.mirror = m }

// Ledgers returns all product ledgers in product insertion order.
func (r *Registry) Ledgers() []*ProductLedger {
	out := make([]*ProductLedger, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.ledgers[id])
	}
	return out
}

// Ledger returns the ledger of the given product.
func (r *Registry) Ledger(productID string) (*ProductLedger, error) {
	l, ok := r.ledgers[productID]
	if !ok {
		return nil, &NotFoundError{Kind: "product", ID: productID}
	}
	return l, nil
}

// CreateProduct validates 'p', assigns it a fresh unique id, creates its
// empty ledger and persists. The returned product is the registry's copy.
func (r *Registry) CreateProduct(p *Product) (*Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	owned := p.Clone()
	owned.ID = uuid.NewString()
	r.ledgers[owned.ID] = &ProductLedger{Product: owned}
	r.order = append(r.order, owned.ID)
	return owned, r.afterMutation()
}

// UpdateProduct replaces the configuration of the product identified by
// p.ID. The entry sequence is untouched.
func (r *Registry) UpdateProduct(p *Product) error {
	l, ok := r.ledgers[p.ID]
	if !ok {
		return &NotFoundError{Kind: "product", ID: p.ID}
	}
	if err := p.Validate(); err != nil {
		return err
	}
	l.Product = p.Clone()
	return r.afterMutation()
}

// DeleteProduct removes the product and all its entries. Deleting an
// unknown id is a no-op. The deletion is atomic: either the whole ledger
// goes, or nothing does.
func (r *Registry) DeleteProduct(productID string) error {
	if _, ok := r.ledgers[productID]; !ok {
		return nil
	}
	delete(r.ledgers, productID)
	r.order = slices.DeleteFunc(r.order, func(id string) bool { return id == productID })
	return r.afterMutation()
}

// AddEntry appends 'e' to the product's ledger.
//
// A sale is rejected with InsufficientInventoryError when its quantity
// exceeds the inventory derived at the moment of the call. This is the one
// validation that depends on a derived value rather than on raw input.
func (r *Registry) AddEntry(productID string, e Entry) error {
	l, ok := r.ledgers[productID]
	if !ok {
		return &NotFoundError{Kind: "product", ID: productID}
	}
	switch v := e.(type) {
	case *Sale:
		if v.Quantity <= 0 {
			return &ValidationError{Violations: []FieldViolation{{"quantity", "must be positive"}}}
		}
		if available := ComputeStats(l).Inventory; v.Quantity > available {
			return &InsufficientInventoryError{ProductID: productID, Requested: v.Quantity, Available: available}
		}
	case *Expense:
		if !v.Amount.IsPositive() {
			return &ValidationError{Violations: []FieldViolation{{"amount", "must be positive"}}}
		}
	}
	if e.When().IsZero() {
		e.setWhen(time.Now())
	}
	e.setOwner(productID)
	l.entries = append(l.entries, e)
	return r.afterMutation()
}

// EntryPatch carries the optional fields of an entry edit. Nil fields are
// left unchanged. Quantity applies to sales only, Amount to expenses only.
type EntryPatch struct {
	Date        *time.Time
	Description *string
	Quantity    *int64
	Amount      *Money
}

// UpdateEntry applies 'patch' to an entry.
//
// Editing a sale's quantity reprices its amount from the product's CURRENT
// selling price, not from the price recorded when the sale was created. The
// two moments may use different prices if the configuration changed in
// between.
func (r *Registry) UpdateEntry(productID, entryID string, patch EntryPatch) error {
	l, ok := r.ledgers[productID]
	if !ok {
		return &NotFoundError{Kind: "product", ID: productID}
	}
	_, e := l.findEntry(entryID)
	if e == nil {
		return &NotFoundError{Kind: "entry", ID: entryID}
	}
	switch v := e.(type) {
	case *Sale:
		if patch.Amount != nil {
			return &ValidationError{Violations: []FieldViolation{{"amount", "a sale amount is derived from its quantity"}}}
		}
		if patch.Quantity != nil {
			if *patch.Quantity <= 0 {
				return &ValidationError{Violations: []FieldViolation{{"quantity", "must be positive"}}}
			}
			v.Quantity = *patch.Quantity
			v.Amount = l.Product.SellingPrice.MulInt(v.Quantity)
		}
	case *Expense:
		if patch.Quantity != nil {
			return &ValidationError{Violations: []FieldViolation{{"quantity", "an expense has no quantity"}}}
		}
		if patch.Amount != nil {
			if !patch.Amount.IsPositive() {
				return &ValidationError{Violations: []FieldViolation{{"amount", "must be positive"}}}
			}
			v.Amount = *patch.Amount
		}
	}
	if patch.Date != nil {
		e.setWhen(*patch.Date)
	}
	if patch.Description != nil {
		switch v := e.(type) {
		case *Sale:
			v.Description = *patch.Description
		case *Expense:
			v.Description = *patch.Description
		}
	}
	return r.afterMutation()
}

// RemoveEntry deletes an entry from the product's ledger.
func (r *Registry) RemoveEntry(productID, entryID string) error {
	l, ok := r.ledgers[productID]
	if !ok {
		return &NotFoundError{Kind: "product", ID: productID}
	}
	i, e := l.findEntry(entryID)
	if e == nil {
		return &NotFoundError{Kind: "entry", ID: entryID}
	}
	l.entries = slices.Delete(l.entries, i, i+1)
	return r.afterMutation()
}

// Restore inserts previously exported rows back into their ledgers.
//
// This is the import path: rows owned by an unknown product are skipped, as
// are rows whose entry id is already present. Inventory is NOT re-checked,
// a backup is restored as it was recorded. Returns the number of entries
// actually inserted.
func (r *Registry) Restore(rows []FlatRow) (int, error) {
	restored := 0
	for _, row := range rows {
		l, ok := r.ledgers[row.ProductID]
		if !ok {
			continue
		}
		if _, e := l.findEntry(row.ID); e != nil {
			continue
		}
		e := row.Entry()
		e.setOwner(row.ProductID)
		l.entries = append(l.entries, e)
		restored++
	}
	if restored == 0 {
		return 0, nil
	}
	return restored, r.afterMutation()
}

// afterMutation persists the whole registry and schedules a resync when a
// configured mirror is attached. The in-memory mutation stands even when
// persistence fails; the error reports the failed write.
func (r *Registry) afterMutation() error {
	var buf bytes.Buffer
	if err := EncodeRegistry(&buf, r); err != nil {
		return fmt.Errorf("cannot encode registry: %w", err)
	}
	if err := r.store.Save(buf.Bytes()); err != nil {
		return fmt.Errorf("cannot persist registry: %w", err)
	}
	if r.mirror != nil && r.mirror.Configured() {
		rows := Flatten(r)
		// unqueued on purpose: last completed sync wins on the mirror
		r.syncs.Add(1)
		go func() {
			defer r.syncs.Done()
			r.mirror.FullSync(rows)
		}()
	}
	return nil
}

// Wait blocks until every resync scheduled by past mutations has completed.
// A short-lived process must call it before exiting, otherwise the pending
// sync is torn down with the process and the mirror stays stale.
func (r *Registry) Wait() { r.syncs.Wait() }

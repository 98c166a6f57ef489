package tally

import (
	"testing"
	"time"
)

// day is a helper for tests to build a timestamp from a calendar day.
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// widgetProduct returns the reference product used across tests: a 30/600
// margin with 60 initial units bought for 1800.
func widgetProduct() *Product {
	return NewProduct("Widget", "A widget", M(30), M(600), 60, M(1800))
}

// newTestRegistry creates an empty registry over an in-memory store.
func newTestRegistry(t *testing.T) (*Registry, *MemStore) {
	t.Helper()
	store := &MemStore{}
	return NewRegistry(store), store
}

// mustCreate creates a product in the registry or fails the test.
func mustCreate(t *testing.T, r *Registry, p *Product) *Product {
	t.Helper()
	created, err := r.CreateProduct(p)
	if err != nil {
		t.Fatalf("CreateProduct(%q) failed: %v", p.Name, err)
	}
	return created
}

// mustAdd adds an entry to the registry or fails the test.
func mustAdd(t *testing.T, r *Registry, productID string, e Entry) {
	t.Helper()
	if err := r.AddEntry(productID, e); err != nil {
		t.Fatalf("AddEntry(%q) failed: %v", productID, err)
	}
}

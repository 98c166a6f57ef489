package tally

import (
	"errors"
	"slices"
	"sync"
	"testing"
	"time"
)

func TestCreateProduct_ReportsAllViolations(t *testing.T) {
	r, _ := newTestRegistry(t)

	// everything wrong at once: empty name/description, zero cost, price
	// below cost, zero units, negative investment
	p := NewProduct("", "", M(0), M(0), 0, M(-5))
	_, err := r.CreateProduct(p)
	if err == nil {
		t.Fatal("CreateProduct accepted an invalid product")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error is %T, want *ValidationError", err)
	}
	fields := verr.Fields()
	for _, want := range []string{"name", "description", "unitCost", "sellingPrice", "initialUnits", "initialInvestment"} {
		if !slices.Contains(fields, want) {
			t.Errorf("violated fields %v do not mention %q", fields, want)
		}
	}
	if len(r.Ledgers()) != 0 {
		t.Error("rejected creation left a ledger behind")
	}
}

func TestCreateProduct_AssignsFreshID(t *testing.T) {
	r, _ := newTestRegistry(t)

	p := widgetProduct()
	p.ID = "caller-supplied"
	created := mustCreate(t, r, p)
	if created.ID == "" || created.ID == "caller-supplied" {
		t.Errorf("CreateProduct kept the caller id %q, want a fresh one", created.ID)
	}
	if p.ID != "caller-supplied" {
		t.Error("CreateProduct mutated the caller's product")
	}
}

func TestAddEntry_InsufficientInventory(t *testing.T) {
	r, _ := newTestRegistry(t)
	p := mustCreate(t, r, widgetProduct())
	mustAdd(t, r, p.ID, NewSale(p, day(2026, time.March, 1), "", 50))

	l, _ := r.Ledger(p.ID)
	before := len(l.Entries())

	// 50 of 60 sold: only 10 left
	err := r.AddEntry(p.ID, NewSale(p, day(2026, time.March, 2), "", 11))
	var ierr *InsufficientInventoryError
	if !errors.As(err, &ierr) {
		t.Fatalf("error is %T (%v), want *InsufficientInventoryError", err, err)
	}
	if ierr.Available != 10 || ierr.Requested != 11 {
		t.Errorf("got requested=%d available=%d, want 11 and 10", ierr.Requested, ierr.Available)
	}
	if after := len(l.Entries()); after != before {
		t.Errorf("registry changed on rejected sale: %d entries, want %d", after, before)
	}
}

func TestUpdateEntry_RepricesSaleFromCurrentPrice(t *testing.T) {
	r, _ := newTestRegistry(t)
	p := mustCreate(t, r, widgetProduct())
	sale := NewSale(p, day(2026, time.March, 1), "", 2)
	mustAdd(t, r, p.ID, sale)
	if !sale.Amount.Equal(M(1200)) {
		t.Fatalf("creation amount = %s, want 1200 (price at creation)", sale.Amount)
	}

	// raise the selling price after the sale was recorded
	edited := p.Clone()
	edited.SellingPrice = M(650)
	if err := r.UpdateProduct(edited); err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}

	quantity := int64(3)
	if err := r.UpdateEntry(p.ID, sale.ID(), EntryPatch{Quantity: &quantity}); err != nil {
		t.Fatalf("UpdateEntry failed: %v", err)
	}

	l, _ := r.Ledger(p.ID)
	_, e := l.findEntry(sale.ID())
	s := e.(*Sale)
	// repriced from the current 650, not the 600 recorded at creation
	if !s.Amount.Equal(M(1950)) {
		t.Errorf("edited amount = %s, want 1950", s.Amount)
	}
}

func TestDeleteProduct_CascadesAndIsIdempotent(t *testing.T) {
	r, _ := newTestRegistry(t)
	keep := mustCreate(t, r, widgetProduct())
	mustAdd(t, r, keep.ID, NewSale(keep, day(2026, time.March, 1), "", 1))

	gone := mustCreate(t, r, NewProduct("Gadget", "A gadget", M(10), M(25), 40, M(400)))
	mustAdd(t, r, gone.ID, NewSale(gone, day(2026, time.March, 2), "", 3))
	mustAdd(t, r, gone.ID, NewExpense(gone.ID, day(2026, time.March, 3), "ads", M(20)))

	if err := r.DeleteProduct(gone.ID); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}
	if _, err := r.Ledger(gone.ID); err == nil {
		t.Error("deleted product still resolvable")
	}
	for _, row := range Flatten(r) {
		if row.ProductID == gone.ID {
			t.Errorf("flatten still carries entry %q of the deleted product", row.ID)
		}
	}
	if rows := Flatten(r); len(rows) != 1 || rows[0].ProductID != keep.ID {
		t.Errorf("flatten = %d rows, want only the kept product's entry", len(rows))
	}

	// deleting again is a no-op, not an error
	if err := r.DeleteProduct(gone.ID); err != nil {
		t.Errorf("second DeleteProduct returned %v, want nil", err)
	}
}

func TestRegistry_NotFound(t *testing.T) {
	r, _ := newTestRegistry(t)
	p := mustCreate(t, r, widgetProduct())

	var nferr *NotFoundError

	if err := r.AddEntry("nope", NewExpense("nope", day(2026, time.March, 1), "", M(1))); !errors.As(err, &nferr) {
		t.Errorf("AddEntry on unknown product: %T, want *NotFoundError", err)
	}
	if err := r.RemoveEntry(p.ID, "nope"); !errors.As(err, &nferr) {
		t.Errorf("RemoveEntry on unknown entry: %T, want *NotFoundError", err)
	}
	if err := r.UpdateEntry("nope", "nope", EntryPatch{}); !errors.As(err, &nferr) {
		t.Errorf("UpdateEntry on unknown product: %T, want *NotFoundError", err)
	}
	if err := r.UpdateProduct(NewProduct("X", "x", M(1), M(2), 1, M(0))); !errors.As(err, &nferr) {
		t.Errorf("UpdateProduct on unknown product: %T, want *NotFoundError", err)
	}
}

func TestRegistry_WriteThroughPersistence(t *testing.T) {
	r, store := newTestRegistry(t)
	p := mustCreate(t, r, widgetProduct())
	if store.Saves != 1 {
		t.Errorf("after create: %d saves, want 1", store.Saves)
	}
	mustAdd(t, r, p.ID, NewSale(p, day(2026, time.March, 1), "batch", 2))
	if store.Saves != 2 {
		t.Errorf("after add: %d saves, want 2", store.Saves)
	}

	// a fresh registry over the same store sees the same state
	reopened := OpenRegistry(store)
	l, err := reopened.Ledger(p.ID)
	if err != nil {
		t.Fatalf("reopened registry lost product %q: %v", p.ID, err)
	}
	if got := len(l.Entries()); got != 1 {
		t.Fatalf("reopened ledger has %d entries, want 1", got)
	}
	s, ok := l.Entries()[0].(*Sale)
	if !ok {
		t.Fatalf("reopened entry is %T, want *Sale", l.Entries()[0])
	}
	if !s.Amount.Equal(M(1200)) || s.Quantity != 2 {
		t.Errorf("reopened sale = %s x%d, want 1200 x2", s.Amount, s.Quantity)
	}
}

func TestUpdateProduct_KeepsEntries(t *testing.T) {
	r, _ := newTestRegistry(t)
	p := mustCreate(t, r, widgetProduct())
	mustAdd(t, r, p.ID, NewSale(p, day(2026, time.March, 1), "", 2))

	edited := p.Clone()
	edited.Name = "Widget Pro"
	if err := r.UpdateProduct(edited); err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}

	l, _ := r.Ledger(p.ID)
	if l.Product.Name != "Widget Pro" {
		t.Errorf("product name = %q, want %q", l.Product.Name, "Widget Pro")
	}
	if len(l.Entries()) != 1 {
		t.Errorf("entries = %d, want 1 (edit must not touch the ledger)", len(l.Entries()))
	}
}

// syncRecorder is a Mirror that records the snapshots it was asked to sync.
type syncRecorder struct {
	synced chan []FlatRow
}

func (m *syncRecorder) Configured() bool { return true }
func (m *syncRecorder) FullSync(rows []FlatRow) SyncResult {
	m.synced <- rows
	return SyncResult{OK: true}
}

func TestRegistry_MutationSchedulesResync(t *testing.T) {
	r, _ := newTestRegistry(t)
	mirror := &syncRecorder{synced: make(chan []FlatRow, 1)}
	r.AttachMirror(mirror)

	p := mustCreate(t, r, widgetProduct())

	select {
	case rows := <-mirror.synced:
		if len(rows) != 0 {
			t.Errorf("first resync carries %d rows, want 0", len(rows))
		}
	case <-time.After(time.Second):
		t.Fatal("mutation did not schedule a resync")
	}

	mustAdd(t, r, p.ID, NewSale(p, day(2026, time.March, 1), "", 1))
	select {
	case rows := <-mirror.synced:
		if len(rows) != 1 {
			t.Errorf("resync carries %d rows, want 1", len(rows))
		}
	case <-time.After(time.Second):
		t.Fatal("entry mutation did not schedule a resync")
	}
}

func TestRegistry_Restore(t *testing.T) {
	r, store := newTestRegistry(t)
	p := mustCreate(t, r, widgetProduct())
	mustAdd(t, r, p.ID, NewSale(p, day(2026, time.March, 1), "kept", 1))
	exported := Flatten(r)

	rows := append(exported, []FlatRow{
		{ // fresh expense for the same product
			ID: "x-1", Date: day(2026, time.March, 2), Kind: KindExpense,
			Amount: M(50), Description: "shipping", ProductID: p.ID, ProductName: p.Name,
		},
		{ // unknown product, skipped
			ID: "x-2", Date: day(2026, time.March, 3), Kind: KindSale,
			Amount: M(600), Quantity: 1, ProductID: "nope", ProductName: "Nope",
		},
	}...)

	saves := store.Saves
	restored, err := r.Restore(rows)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	// the already-present sale and the unknown product are skipped
	if restored != 1 {
		t.Errorf("restored = %d, want 1", restored)
	}
	if store.Saves != saves+1 {
		t.Errorf("Restore did not persist exactly once: %d saves", store.Saves-saves)
	}

	l, _ := r.Ledger(p.ID)
	if got := len(l.Entries()); got != 2 {
		t.Fatalf("ledger has %d entries, want 2", got)
	}
	s := ComputeStats(l)
	if !s.TotalExpenses.Equal(M(50)) {
		t.Errorf("TotalExpenses = %s, want 50", s.TotalExpenses)
	}

	// restoring the same rows again is a no-op, and does not persist
	saves = store.Saves
	restored, err = r.Restore(rows)
	if err != nil || restored != 0 {
		t.Errorf("second Restore = (%d, %v), want (0, nil)", restored, err)
	}
	if store.Saves != saves {
		t.Error("no-op Restore persisted")
	}
}

// gatedMirror holds each FullSync until the gate is released, so a test can
// observe the window between a mutation returning and its sync landing.
type gatedMirror struct {
	gate   chan struct{}
	mu     sync.Mutex
	synced [][]FlatRow
}

func (m *gatedMirror) Configured() bool { return true }
func (m *gatedMirror) FullSync(rows []FlatRow) SyncResult {
	<-m.gate
	m.mu.Lock()
	m.synced = append(m.synced, rows)
	m.mu.Unlock()
	return SyncResult{OK: true}
}

func (m *gatedMirror) completed() [][]FlatRow {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.synced)
}

func TestRegistry_WaitJoinsInFlightResync(t *testing.T) {
	r, _ := newTestRegistry(t)
	mirror := &gatedMirror{gate: make(chan struct{})}
	r.AttachMirror(mirror)

	p := mustCreate(t, r, widgetProduct())
	mustAdd(t, r, p.ID, NewSale(p, day(2026, time.March, 1), "", 1))

	// both mutations returned while their syncs are still gated
	if n := len(mirror.completed()); n != 0 {
		t.Fatalf("%d syncs completed before the gate opened", n)
	}

	close(mirror.gate)
	r.Wait()

	done := mirror.completed()
	if len(done) != 2 {
		t.Fatalf("completed %d syncs after Wait, want 2", len(done))
	}
	if !slices.ContainsFunc(done, func(rows []FlatRow) bool { return len(rows) == 1 }) {
		t.Error("no completed sync carries the recorded sale")
	}
}

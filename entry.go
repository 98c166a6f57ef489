package tally

import (
	"time"

	"github.com/google/uuid"
)

// EntryKind is a typed string discriminating the two kinds of ledger
// entries.
type EntryKind string

const (
	KindSale    EntryKind = "sale"
	KindExpense EntryKind = "expense"
)

// Entry defines the common interface for the two kinds of records a product
// ledger can hold. It is a closed sum type: *Sale and *Expense are the only
// implementations, and every consumer switches exhaustively over them.
type Entry interface {
	ID() string           // ID returns the opaque unique id of the entry.
	Kind() EntryKind      // Kind returns the entry discriminator ("sale" or "expense").
	When() time.Time      // When returns the date on which the entry occurred.
	Note() string         // Note returns the free-text description.
	Value() Money         // Value returns the monetary amount of the entry.
	ProductID() string    // ProductID returns the id of the owning product.
	setOwner(id string)   // ownership is registry-mediated
	setWhen(at time.Time) // used to default a zero date at insertion
}

// baseEntry holds the fields common to both entry kinds.
type baseEntry struct {
	EntryID     string    `json:"id"`
	Date        time.Time `json:"date"` // not required to be monotonic with insertion order
	Description string    `json:"description"`
	Product     string    `json:"productId"`
}

func (e *baseEntry) ID() string           { return e.EntryID }
func (e *baseEntry) When() time.Time      { return e.Date }
func (e *baseEntry) Note() string         { return e.Description }
func (e *baseEntry) ProductID() string    { return e.Product }
func (e *baseEntry) setOwner(id string)   { e.Product = id }
func (e *baseEntry) setWhen(at time.Time) { e.Date = at }

// marshal writes the common fields in their canonical order.
func (e *baseEntry) marshal(w *jsonObjectWriter, kind EntryKind) {
	w.Append("id", e.EntryID)
	w.Append("type", kind)
	w.Append("date", e.Date)
	w.Optional("description", e.Description)
	w.Append("productId", e.Product)
}

// Sale records the sale of a quantity of units of one product.
//
// Amount is a snapshot of quantity times the product's selling price at
// creation time. It is NOT recomputed when the price later changes; only an
// edit of the quantity recomputes it, and then from the price current at
// edit time.
type Sale struct {
	baseEntry
	Quantity int64 `json:"quantity"` // Quantity is the number of units sold, always > 0.
	Amount   Money `json:"amount"`
}

// NewSale creates a sale of 'quantity' units of 'p', pricing it at the
// product's current selling price.
func NewSale(p *Product, at time.Time, description string, quantity int64) *Sale {
	return &Sale{
		baseEntry: baseEntry{
			EntryID:     uuid.NewString(),
			Date:        at,
			Description: description,
			Product:     p.ID,
		},
		Quantity: quantity,
		Amount:   p.SellingPrice.MulInt(quantity),
	}
}

func (s *Sale) Kind() EntryKind { return KindSale }
func (s *Sale) Value() Money    { return s.Amount }

// MarshalJSON implements the json.Marshaler interface for Sale.
func (s *Sale) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	s.baseEntry.marshal(&w, KindSale)
	w.Append("amount", s.Amount)
	w.Append("quantity", s.Quantity)
	return w.MarshalJSON()
}

// Expense records a free-standing cost attached to one product.
type Expense struct {
	baseEntry
	Amount Money `json:"amount"` // Amount is the expense cost, always > 0.
}

// NewExpense creates an expense of 'amount' against the product 'productID'.
func NewExpense(productID string, at time.Time, description string, amount Money) *Expense {
	return &Expense{
		baseEntry: baseEntry{
			EntryID:     uuid.NewString(),
			Date:        at,
			Description: description,
			Product:     productID,
		},
		Amount: amount,
	}
}

func (e *Expense) Kind() EntryKind { return KindExpense }
func (e *Expense) Value() Money    { return e.Amount }

// MarshalJSON implements the json.Marshaler interface for Expense.
func (e *Expense) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	e.baseEntry.marshal(&w, KindExpense)
	w.Append("amount", e.Amount)
	return w.MarshalJSON()
}

package tally

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// This file contains the codec for the persisted registry blob.
//
// The blob is a single JSON object:
//
//	{"productsData": {"<productId>": {"product": {...}, "transactions": [...], "expenses": [...]}}}
//
// Sales and expenses are persisted in separate arrays, so insertion order
// across the two kinds is not durable: on load a ledger is rebuilt with its
// sales first, each kind in stored order.

// jledger is the persisted shape of one product ledger.
type jledger struct {
	Product      *Product   `json:"product"`
	Transactions []*Sale    `json:"transactions"`
	Expenses     []*Expense `json:"expenses"`
}

// jregistry is the persisted shape of the whole registry.
type jregistry struct {
	ProductsData map[string]jledger `json:"productsData"`
}

// EncodeRegistry writes the registry to 'w' as the single-blob format, with
// stable field and product ordering so identical states encode identically.
func EncodeRegistry(w io.Writer, r *Registry) error {
	var pd jsonObjectWriter
	for _, id := range r.order {
		l := r.ledgers[id]
		sales := []*Sale{}
		expenses := []*Expense{}
		for _, e := range l.entries {
			switch v := e.(type) {
			case *Sale:
				sales = append(sales, v)
			case *Expense:
				expenses = append(expenses, v)
			}
		}
		var lw jsonObjectWriter
		lw.Append("product", l.Product)
		lw.Append("transactions", sales)
		lw.Append("expenses", expenses)
		raw, err := lw.MarshalJSON()
		if err != nil {
			return fmt.Errorf("cannot marshal ledger %q: %w", id, err)
		}
		pd.Append(id, json.RawMessage(raw))
	}

	var root jsonObjectWriter
	rawpd, err := pd.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot marshal registry: %w", err)
	}
	root.Append("productsData", json.RawMessage(rawpd))
	data, err := root.MarshalJSON()
	if err != nil {
		return fmt.Errorf("cannot marshal registry: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// decodeRegistry parses the blob back into ledgers. Product listing order is
// rebuilt by product name (the blob's object order is not authoritative).
func decodeRegistry(data []byte) (map[string]*ProductLedger, []string, error) {
	var jr jregistry
	if err := json.Unmarshal(data, &jr); err != nil {
		return nil, nil, fmt.Errorf("cannot parse registry blob: %w", err)
	}

	ledgers := make(map[string]*ProductLedger, len(jr.ProductsData))
	order := make([]string, 0, len(jr.ProductsData))
	for id, jl := range jr.ProductsData {
		if jl.Product == nil {
			return nil, nil, fmt.Errorf("ledger %q has no product", id)
		}
		l := &ProductLedger{Product: jl.Product}
		for _, s := range jl.Transactions {
			s.Product = id
			l.entries = append(l.entries, s)
		}
		for _, e := range jl.Expenses {
			e.Product = id
			l.entries = append(l.entries, e)
		}
		ledgers[id] = l
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool {
		a, b := ledgers[order[i]].Product, ledgers[order[j]].Product
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return ledgers, order, nil
}

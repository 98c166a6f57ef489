package tally

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FlatRow is the denormalized, spreadsheet-ready representation of one
// ledger entry, carrying the owning product's identity.
type FlatRow struct {
	ID          string
	Date        time.Time
	Kind        EntryKind
	Amount      Money
	Quantity    int64 // 0 for expenses
	Description string
	ProductID   string
	ProductName string
}

// rowTimeLayout is the human-readable timestamp format used on the mirror.
// It does not round-trip exactly; see parseRowTime.
const rowTimeLayout = "1/2/2006, 3:04:05 PM"

// RowHeader returns the fixed column order of the mirror and of CSV
// exports.
func RowHeader() []string {
	return []string{"ID", "Date", "Type", "Amount", "Quantity", "Description", "ProductID", "ProductName"}
}

// Record renders the row as string cells in the RowHeader column order.
// Quantity is the empty string for expense rows.
func (r FlatRow) Record() []string {
	quantity := ""
	if r.Kind == KindSale {
		quantity = strconv.FormatInt(r.Quantity, 10)
	}
	return []string{
		r.ID,
		r.Date.Format(rowTimeLayout),
		string(r.Kind),
		r.Amount.String(),
		quantity,
		r.Description,
		r.ProductID,
		r.ProductName,
	}
}

// Entry rebuilds the ledger entry this row represents.
func (r FlatRow) Entry() Entry {
	base := baseEntry{
		EntryID:     r.ID,
		Date:        r.Date,
		Description: r.Description,
		Product:     r.ProductID,
	}
	switch r.Kind {
	case KindSale:
		return &Sale{baseEntry: base, Quantity: r.Quantity, Amount: r.Amount}
	default:
		return &Expense{baseEntry: base, Amount: r.Amount}
	}
}

// Flatten emits one row per entry of every ledger in the registry, sorted
// by date descending (most recent first). The ordering is a presentation
// convenience for the mirror and carries no semantic weight.
func Flatten(r *Registry) []FlatRow {
	var rows []FlatRow
	for _, l := range r.Ledgers() {
		for _, e := range l.entries {
			row := FlatRow{
				ID:          e.ID(),
				Date:        e.When(),
				Kind:        e.Kind(),
				Amount:      e.Value(),
				Description: e.Note(),
				ProductID:   l.Product.ID,
				ProductName: l.Product.Name,
			}
			if s, ok := e.(*Sale); ok {
				row.Quantity = s.Quantity
			}
			rows = append(rows, row)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.After(rows[j].Date)
	})
	return rows
}

// ExportCSV writes the manual export format: a header row followed by one
// record per row, comma-separated with double-quoted fields as needed.
func ExportCSV(w io.Writer, rows []FlatRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RowHeader()); err != nil {
		return fmt.Errorf("cannot write export header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return fmt.Errorf("cannot write export row %q: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ParseRow parses one record in the RowHeader column order.
//
// The date column is lossy by design: when it cannot be parsed back, the
// row keeps 'importedAt' as its timestamp rather than failing the import.
func ParseRow(record []string, importedAt time.Time) (FlatRow, error) {
	if len(record) < 8 {
		return FlatRow{}, fmt.Errorf("row has %d columns, expected 8", len(record))
	}
	var kind EntryKind
	switch strings.ToLower(strings.TrimSpace(record[2])) {
	case string(KindSale):
		kind = KindSale
	case string(KindExpense):
		kind = KindExpense
	default:
		return FlatRow{}, fmt.Errorf("unknown entry type %q", record[2])
	}
	amount, err := ParseMoney(strings.TrimSpace(record[3]))
	if err != nil {
		return FlatRow{}, fmt.Errorf("cannot parse amount %q: %w", record[3], err)
	}
	var quantity int64
	if q := strings.TrimSpace(record[4]); q != "" {
		quantity, err = strconv.ParseInt(q, 10, 64)
		if err != nil {
			return FlatRow{}, fmt.Errorf("cannot parse quantity %q: %w", record[4], err)
		}
	}
	return FlatRow{
		ID:          record[0],
		Date:        parseRowTime(record[1], importedAt),
		Kind:        kind,
		Amount:      amount,
		Quantity:    quantity,
		Description: record[5],
		ProductID:   record[6],
		ProductName: record[7],
	}, nil
}

// ImportRows parses a full value table. The first row is always a header
// and is skipped. Unparseable rows are dropped and their errors aggregated;
// the good rows are returned either way.
func ImportRows(values [][]string, importedAt time.Time) ([]FlatRow, error) {
	if len(values) == 0 {
		return nil, nil
	}
	var rows []FlatRow
	var errs error
	for i, record := range values[1:] {
		row, err := ParseRow(record, importedAt)
		if err != nil {
			errs = errors.Join(errs, fmt.Errorf("row %d: %w", i+2, err))
			continue
		}
		rows = append(rows, row)
	}
	return rows, errs
}

// parseRowTime parses an exported timestamp back, trying the export layout
// first, then stricter machine formats, then epoch milliseconds. On failure
// it returns the fallback.
func parseRowTime(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{rowTimeLayout, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms)
	}
	return fallback
}

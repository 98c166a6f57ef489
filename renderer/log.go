package renderer

import (
	"bytes"
	"strconv"

	md "github.com/nao1215/markdown"
	"github.com/tallyapp/tally"
)

// LogMarkdown renders flattened entries as a markdown table, in the order
// they are given (Flatten yields newest first).
func LogMarkdown(rows []tally.FlatRow, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Entry Log")

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignLeft,
		},
		Header: []string{"Date", "Product", "Type", "Amount", "Qty", "Description"},
		Rows:   [][]string{},
	}
	for _, r := range rows {
		qty := ""
		if r.Kind == tally.KindSale {
			qty = strconv.FormatInt(r.Quantity, 10)
		}
		table.Rows = append(table.Rows, []string{
			r.Date.Format("2006-01-02"),
			r.ProductName,
			string(r.Kind),
			r.Amount.Format(currency),
			qty,
			r.Description,
		})
	}
	doc.Table(table)

	return doc.String()
}

package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/tallyapp/tally"
)

// HistoryMarkdown renders a cumulative performance series as a markdown
// table, one row per entry starting at the investment origin.
func HistoryMarkdown(name string, points []tally.SeriesPoint, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("History for %s", name))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Cumulative Sales", "Cumulative Profit"},
		Rows:   [][]string{},
	}
	for _, p := range points {
		table.Rows = append(table.Rows, []string{
			p.Label,
			p.Sales.Format(currency),
			p.Profit.Format(currency),
		})
	}
	doc.Table(table)

	return doc.String()
}

// Package renderer converts ledgers and their derived figures into markdown
// reports.
//
// View structs (Dashboard, ProductReport, History) are plain data: every
// monetary field is already formatted in the reporting currency, so the
// templates only lay the values out.
package renderer

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/tallyapp/tally"
)

// Dashboard is the business-wide view: one row per product plus a totals
// line, everything formatted in the reporting currency.
type Dashboard struct {
	Date     string           `json:"date"`
	Currency string           `json:"currency"`
	Products []DashboardRow   `json:"products"`
	Totals   DashboardSummary `json:"totals"`
}

// DashboardRow carries the derived figures of one product.
type DashboardRow struct {
	Name      string        `json:"name"`
	UnitsSold int64         `json:"unitsSold"`
	Inventory int64         `json:"inventory"`
	Revenue   string        `json:"revenue"`
	COGS      string        `json:"cogs"`
	Gross     string        `json:"grossProfit"`
	Expenses  string        `json:"expenses"`
	Net       string        `json:"netProfit"`
	ROI       tally.Percent `json:"roi"`
	Margin    tally.Percent `json:"margin"`
}

// DashboardSummary aggregates the figures over all products.
type DashboardSummary struct {
	Revenue    string        `json:"revenue"`
	COGS       string        `json:"cogs"`
	Gross      string        `json:"grossProfit"`
	Expenses   string        `json:"expenses"`
	Net        string        `json:"netProfit"`
	Investment string        `json:"investment"`
	ROI        tally.Percent `json:"roi"`
}

// NewDashboard computes the dashboard view of a registry. 'currency' is the
// ISO code used for display only, amounts carry no currency of their own.
func NewDashboard(r *tally.Registry, currency string) *Dashboard {
	d := &Dashboard{
		Date:     time.Now().Format("Jan 2, 2006"),
		Currency: currency,
		Products: make([]DashboardRow, 0),
	}

	var revenue, cogs, gross, expenses, net, investment tally.Money
	for _, l := range r.Ledgers() {
		s := tally.ComputeStats(l)
		d.Products = append(d.Products, DashboardRow{
			Name:      l.Product.Name,
			UnitsSold: s.UnitsSold,
			Inventory: s.Inventory,
			Revenue:   s.TotalRevenue.Format(currency),
			COGS:      s.COGS.Format(currency),
			Gross:     s.GrossProfit.Format(currency),
			Expenses:  s.TotalExpenses.Format(currency),
			Net:       s.NetProfit.Format(currency),
			ROI:       s.ROI,
			Margin:    s.ProfitMargin,
		})
		revenue = revenue.Add(s.TotalRevenue)
		cogs = cogs.Add(s.COGS)
		gross = gross.Add(s.GrossProfit)
		expenses = expenses.Add(s.TotalExpenses)
		net = net.Add(s.NetProfit)
		investment = investment.Add(l.Product.InitialInvestment)
	}

	d.Totals = DashboardSummary{
		Revenue:    revenue.Format(currency),
		COGS:       cogs.Format(currency),
		Gross:      gross.Format(currency),
		Expenses:   expenses.Format(currency),
		Net:        net.Format(currency),
		Investment: investment.Format(currency),
	}
	if !investment.IsZero() {
		d.Totals.ROI = net.PercentOf(investment)
	}
	return d
}

const dashboardMarkdownTemplate = `# Dashboard on {{ .Date }}

{{ if .Products -}}
| Product | Sold | Stock | Revenue | COGS | Gross | Expenses | Net | ROI | Margin |
|:---|---:|---:|---:|---:|---:|---:|---:|---:|---:|
{{- range .Products }}
| {{ .Name }} | {{ .UnitsSold }} | {{ .Inventory }} | {{ .Revenue }} | {{ .COGS }} | {{ .Gross }} | {{ .Expenses }} | {{ .Net }} | {{ .ROI.SignedString }} | {{ .Margin }} |
{{- end }}
| **Total** | | | **{{ .Totals.Revenue }}** | **{{ .Totals.COGS }}** | **{{ .Totals.Gross }}** | **{{ .Totals.Expenses }}** | **{{ .Totals.Net }}** | **{{ .Totals.ROI.SignedString }}** | |

Total invested: **{{ .Totals.Investment }}**
{{- else -}}
No products yet.
{{- end }}
`

// RenderDashboard renders the Dashboard struct to a markdown string.
func RenderDashboard(d *Dashboard) string {
	tmpl := template.Must(template.New("dashboard").Parse(dashboardMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, d); err != nil {
		return fmt.Sprintf("error executing template: %v", err)
	}
	return b.String()
}

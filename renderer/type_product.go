package renderer

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/tallyapp/tally"
)

// ProductReport is the single-product view: the registered attributes and
// the figures derived from the product's entries.
type ProductReport struct {
	Name        string `json:"name"`
	ID          string `json:"id"`
	Description string `json:"description,omitempty"`

	UnitCost          string `json:"unitCost"`
	SellingPrice      string `json:"sellingPrice"`
	InitialUnits      int64  `json:"initialUnits"`
	InitialInvestment string `json:"initialInvestment"`

	UnitsSold int64         `json:"unitsSold"`
	Inventory int64         `json:"inventory"`
	Revenue   string        `json:"revenue"`
	COGS      string        `json:"cogs"`
	Gross     string        `json:"grossProfit"`
	Expenses  string        `json:"expenses"`
	Net       string        `json:"netProfit"`
	ROI       tally.Percent `json:"roi"`
	Margin    tally.Percent `json:"margin"`

	EntryCount int `json:"entryCount"`
}

// NewProductReport computes the report view of one product ledger.
func NewProductReport(l *tally.ProductLedger, currency string) *ProductReport {
	s := tally.ComputeStats(l)
	return &ProductReport{
		Name:              l.Product.Name,
		ID:                l.Product.ID,
		Description:       l.Product.Description,
		UnitCost:          l.Product.UnitCost.Format(currency),
		SellingPrice:      l.Product.SellingPrice.Format(currency),
		InitialUnits:      l.Product.InitialUnits,
		InitialInvestment: l.Product.InitialInvestment.Format(currency),
		UnitsSold:         s.UnitsSold,
		Inventory:         s.Inventory,
		Revenue:           s.TotalRevenue.Format(currency),
		COGS:              s.COGS.Format(currency),
		Gross:             s.GrossProfit.Format(currency),
		Expenses:          s.TotalExpenses.Format(currency),
		Net:               s.NetProfit.Format(currency),
		ROI:               s.ROI,
		Margin:            s.ProfitMargin,
		EntryCount:        len(l.Entries()),
	}
}

const productMarkdownTemplate = `# {{ .Name }}
{{ if .Description }}
{{ .Description }}
{{ end }}
| | |
|:---|---:|
| Unit cost | {{ .UnitCost }} |
| Selling price | {{ .SellingPrice }} |
| Initial units | {{ .InitialUnits }} |
| Initial investment | {{ .InitialInvestment }} |

## Performance

| | |
|:---|---:|
| Units sold | {{ .UnitsSold }} |
| In stock | {{ .Inventory }} |
| Revenue | {{ .Revenue }} |
| Cost of goods sold | {{ .COGS }} |
| Gross profit | {{ .Gross }} |
| Expenses | {{ .Expenses }} |
| Net profit | {{ .Net }} |
| ROI | {{ .ROI.SignedString }} |
| Margin | {{ .Margin }} |

{{ .EntryCount }} recorded entries.
`

// RenderProduct renders the ProductReport struct to a markdown string.
func RenderProduct(p *ProductReport) string {
	tmpl := template.Must(template.New("product").Parse(productMarkdownTemplate))
	var b strings.Builder
	if err := tmpl.Execute(&b, p); err != nil {
		return fmt.Sprintf("error executing template: %v", err)
	}
	return b.String()
}

package tally

import (
	"slices"
	"sort"
)

// Stats is the derived financial view of one product ledger.
//
// Every figure is recomputed from the product configuration and the full
// entry history on each call; nothing is cached or incremental.
type Stats struct {
	UnitsSold     int64
	Inventory     int64 // may be negative when oversold; never clamped
	TotalRevenue  Money
	TotalExpenses Money
	COGS          Money
	GrossProfit   Money
	NetProfit     Money
	ROI           Percent
	ProfitMargin  Percent
}

// ComputeStats derives the aggregate metrics of a product ledger.
//
// Two pricing policies coexist on purpose: a sale's amount is a snapshot of
// the selling price at the time it was recorded, while COGS always uses the
// product's current unit cost. Changing the unit cost therefore rewrites
// past profitability, changing the selling price does not.
func ComputeStats(l *ProductLedger) Stats {
	var s Stats
	for _, e := range l.entries {
		switch v := e.(type) {
		case *Sale:
			s.UnitsSold += v.Quantity
			s.TotalRevenue = s.TotalRevenue.Add(v.Amount)
		case *Expense:
			s.TotalExpenses = s.TotalExpenses.Add(v.Amount)
		}
	}
	p := l.Product
	s.Inventory = p.InitialUnits - s.UnitsSold
	s.COGS = p.UnitCost.MulInt(s.UnitsSold)
	s.GrossProfit = s.TotalRevenue.Sub(s.COGS)
	// The initial investment is charged exactly once, not amortized.
	s.NetProfit = s.GrossProfit.Sub(s.TotalExpenses).Sub(p.InitialInvestment)
	if p.InitialInvestment.IsPositive() {
		s.ROI = s.NetProfit.PercentOf(p.InitialInvestment)
	}
	if s.TotalRevenue.IsPositive() {
		s.ProfitMargin = s.GrossProfit.PercentOf(s.TotalRevenue)
	}
	return s
}

// SeriesPoint is one point of the cumulative sales/profit series.
type SeriesPoint struct {
	Label  string
	Sales  Money // cumulative revenue up to this point
	Profit Money // cumulative profit up to this point
}

// seriesTimeLabel is the label format for series points.
const seriesTimeLabel = "Jan 2, 2006"

// CumulativeSeries derives the time-ordered cumulative sales and profit
// series of a product ledger, for charting.
//
// Entries are walked in date order (stable: ties keep insertion order), on a
// copy, so the ledger's stored order is never mutated. The series starts
// with a synthetic origin point carrying the initial investment as negative
// profit, then yields one point per entry.
func CumulativeSeries(l *ProductLedger) []SeriesPoint {
	ordered := slices.Clone(l.entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].When().Before(ordered[j].When())
	})

	points := make([]SeriesPoint, 0, len(ordered)+1)
	sales := M(0)
	profit := l.Product.InitialInvestment.Neg()
	points = append(points, SeriesPoint{Label: "start", Sales: sales, Profit: profit})

	for _, e := range ordered {
		switch v := e.(type) {
		case *Sale:
			sales = sales.Add(v.Amount)
			// same policy as COGS: the current unit cost, not a snapshot
			profit = profit.Add(v.Amount.Sub(l.Product.UnitCost.MulInt(v.Quantity)))
		case *Expense:
			profit = profit.Sub(v.Amount)
		}
		points = append(points, SeriesPoint{
			Label:  e.When().Format(seriesTimeLabel),
			Sales:  sales,
			Profit: profit,
		})
	}
	return points
}

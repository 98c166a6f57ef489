package tally

import (
	"testing"
	"time"
)

func TestComputeStats(t *testing.T) {
	p := widgetProduct()
	sale := NewSale(p, day(2026, time.March, 1), "first batch", 2)
	expense := NewExpense(p.ID, day(2026, time.March, 2), "shipping", M(100))
	ledger := &ProductLedger{Product: p, entries: []Entry{sale, expense}}

	s := ComputeStats(ledger)

	if s.UnitsSold != 2 {
		t.Errorf("UnitsSold = %d, want 2", s.UnitsSold)
	}
	if s.Inventory != 58 {
		t.Errorf("Inventory = %d, want 58", s.Inventory)
	}
	if !s.TotalRevenue.Equal(M(1200)) {
		t.Errorf("TotalRevenue = %s, want 1200", s.TotalRevenue)
	}
	if !s.TotalExpenses.Equal(M(100)) {
		t.Errorf("TotalExpenses = %s, want 100", s.TotalExpenses)
	}
	if !s.COGS.Equal(M(60)) {
		t.Errorf("COGS = %s, want 60", s.COGS)
	}
	if !s.GrossProfit.Equal(M(1140)) {
		t.Errorf("GrossProfit = %s, want 1140", s.GrossProfit)
	}
	if !s.NetProfit.Equal(M(-760)) {
		t.Errorf("NetProfit = %s, want -760", s.NetProfit)
	}
	if want := Percent(-760.0 / 1800.0 * 100.0); !s.ROI.Equal(want) {
		t.Errorf("ROI = %s, want %s", s.ROI, want)
	}
	if want := Percent(1140.0 / 1200.0 * 100.0); !s.ProfitMargin.Equal(want) {
		t.Errorf("ProfitMargin = %s, want %s", s.ProfitMargin, want)
	}
}

func TestComputeStats_NetProfitIdentity(t *testing.T) {
	// netProfit = totalRevenue - cogs - totalExpenses - initialInvestment,
	// exactly, over an arbitrary mix of entries.
	p := NewProduct("Gadget", "A gadget", M(12.5), M(49.99), 200, M(2500))
	ledger := &ProductLedger{Product: p, entries: []Entry{
		NewSale(p, day(2026, time.January, 5), "", 10),
		NewExpense(p.ID, day(2026, time.January, 7), "ads", M(75.30)),
		NewSale(p, day(2026, time.January, 9), "", 3),
		NewExpense(p.ID, day(2026, time.February, 1), "fees", M(12.45)),
	}}

	s := ComputeStats(ledger)
	want := s.TotalRevenue.Sub(s.COGS).Sub(s.TotalExpenses).Sub(p.InitialInvestment)
	if !s.NetProfit.Equal(want) {
		t.Errorf("NetProfit = %s, want %s", s.NetProfit, want)
	}
}

func TestComputeStats_ZeroInvestmentROI(t *testing.T) {
	p := NewProduct("Freebie", "No upfront cost", M(10), M(20), 5, M(0))
	ledger := &ProductLedger{Product: p, entries: []Entry{
		NewSale(p, day(2026, time.May, 1), "", 5),
	}}

	s := ComputeStats(ledger)
	if !s.NetProfit.IsPositive() {
		t.Fatalf("NetProfit = %s, want positive", s.NetProfit)
	}
	// never divide by zero: roi is 0 regardless of profit
	if !s.ROI.Equal(0) {
		t.Errorf("ROI = %s, want 0", s.ROI)
	}
}

func TestComputeStats_NegativeInventory(t *testing.T) {
	// The engine never clamps: an oversold ledger reports negative
	// inventory rather than flooring it at zero.
	p := widgetProduct()
	sale := NewSale(p, day(2026, time.June, 1), "", 75)
	ledger := &ProductLedger{Product: p, entries: []Entry{sale}}

	s := ComputeStats(ledger)
	if s.Inventory != -15 {
		t.Errorf("Inventory = %d, want -15", s.Inventory)
	}
}

func TestCumulativeSeries(t *testing.T) {
	p := widgetProduct()
	// inserted out of date order on purpose
	late := NewSale(p, day(2026, time.March, 10), "late", 1)
	early := NewSale(p, day(2026, time.March, 1), "early", 2)
	expense := NewExpense(p.ID, day(2026, time.March, 5), "shipping", M(100))
	ledger := &ProductLedger{Product: p, entries: []Entry{late, early, expense}}

	points := CumulativeSeries(ledger)

	if len(points) != 4 {
		t.Fatalf("got %d points, want 4 (origin + one per entry)", len(points))
	}
	origin := points[0]
	if !origin.Sales.IsZero() {
		t.Errorf("origin Sales = %s, want 0", origin.Sales)
	}
	if !origin.Profit.Equal(M(-1800)) {
		t.Errorf("origin Profit = %s, want -1800", origin.Profit)
	}

	// date ascending: early sale, expense, late sale
	if !points[1].Sales.Equal(M(1200)) {
		t.Errorf("point 1 Sales = %s, want 1200", points[1].Sales)
	}
	if !points[2].Sales.Equal(M(1200)) {
		t.Errorf("point 2 Sales = %s, want 1200 (expense leaves sales untouched)", points[2].Sales)
	}
	if !points[2].Profit.Equal(M(-760)) {
		// -1800 + (1200 - 2*30) - 100
		t.Errorf("point 2 Profit = %s, want -760", points[2].Profit)
	}

	// final cumulative sales must equal the stats' total revenue
	final := points[len(points)-1]
	if revenue := ComputeStats(ledger).TotalRevenue; !final.Sales.Equal(revenue) {
		t.Errorf("final Sales = %s, want TotalRevenue %s", final.Sales, revenue)
	}

	// the ledger's stored order must not have been mutated
	if ledger.entries[0] != Entry(late) || ledger.entries[1] != Entry(early) {
		t.Error("CumulativeSeries mutated the ledger's stored order")
	}
}

func TestCumulativeSeries_StableTies(t *testing.T) {
	p := widgetProduct()
	at := day(2026, time.April, 1)
	first := NewSale(p, at, "first", 1)
	second := NewSale(p, at, "second", 2)
	ledger := &ProductLedger{Product: p, entries: []Entry{first, second}}

	points := CumulativeSeries(ledger)
	// same date: insertion order is kept, so the first point carries only
	// the first sale's amount
	if !points[1].Sales.Equal(M(600)) {
		t.Errorf("point 1 Sales = %s, want 600 (ties keep insertion order)", points[1].Sales)
	}
	if !points[2].Sales.Equal(M(1800)) {
		t.Errorf("point 2 Sales = %s, want 1800", points[2].Sales)
	}
}

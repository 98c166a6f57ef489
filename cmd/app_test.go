package cmd

import (
	"testing"
	"time"

	"github.com/tallyapp/tally"
)

func TestParseDateFlag(t *testing.T) {
	at, err := parseDateFlag("")
	if err != nil || !at.IsZero() {
		t.Errorf("empty date = (%v, %v), want zero time", at, err)
	}

	at, err = parseDateFlag("2026-03-01")
	if err != nil {
		t.Fatalf("parseDateFlag failed: %v", err)
	}
	if at.Year() != 2026 || at.Month() != time.March || at.Day() != 1 {
		t.Errorf("parsed %v", at)
	}

	if _, err := parseDateFlag("yesterday"); err == nil {
		t.Error("parseDateFlag accepted garbage")
	}
}

func TestFindLedger(t *testing.T) {
	r := tally.NewRegistry(&tally.MemStore{})
	p, err := r.CreateProduct(tally.NewProduct("Widget", "A widget", tally.M(30), tally.M(600), 60, tally.M(1800)))
	if err != nil {
		t.Fatal(err)
	}

	byID, err := findLedger(r, p.ID)
	if err != nil || byID.Product.ID != p.ID {
		t.Errorf("lookup by id = (%v, %v)", byID, err)
	}
	byName, err := findLedger(r, "Widget")
	if err != nil || byName.Product.ID != p.ID {
		t.Errorf("lookup by name = (%v, %v)", byName, err)
	}
	if _, err := findLedger(r, "nope"); err == nil {
		t.Error("lookup of unknown product did not fail")
	}
}

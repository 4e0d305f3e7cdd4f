package pipeline

import (
	"testing"

	"github.com/shopspring/decimal"

	"invoiceflow/internal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAllocateProportionalSplit(t *testing.T) {
	items := []internal.LineItem{
		{GroupKey: "A", NetAmt: dec("100"), Material: "2002"},
		{GroupKey: "A", NetAmt: dec("300"), Material: "1001"},
		{GroupKey: "B", NetAmt: dec("600"), Material: "3003"},
	}

	groups := Allocate(items, dec("1000.00"))
	if len(groups) != 2 {
		t.Fatalf("len=%d", len(groups))
	}

	a, b := groups[0], groups[1]
	if a.GroupKey != "A" || b.GroupKey != "B" {
		t.Fatalf("group order: %+v", groups)
	}
	if a.Share.StringFixed(4) != "0.4000" || b.Share.StringFixed(4) != "0.6000" {
		t.Fatalf("shares: %s %s", a.Share, b.Share)
	}
	if a.Allocated.StringFixed(2) != "400.00" || b.Allocated.StringFixed(2) != "600.00" {
		t.Fatalf("allocated: %s %s", a.Allocated, b.Allocated)
	}
	if a.Material != "1001" {
		t.Fatalf("representative material = %s", a.Material)
	}
	if b.Material != "3003" {
		t.Fatalf("representative material = %s", b.Material)
	}
}

func TestAllocateTieKeepsEarlierRow(t *testing.T) {
	items := []internal.LineItem{
		{GroupKey: "A", NetAmt: dec("250"), Material: "first"},
		{GroupKey: "A", NetAmt: dec("250"), Material: "second"},
	}

	groups := Allocate(items, dec("500"))
	if groups[0].Material != "first" {
		t.Fatalf("material = %s", groups[0].Material)
	}
}

func TestAllocateZeroNetTotal(t *testing.T) {
	items := []internal.LineItem{
		{GroupKey: "A", NetAmt: decimal.Zero, Material: "1001"},
		{GroupKey: "B", NetAmt: decimal.Zero, Material: "2002"},
	}

	groups := Allocate(items, dec("1000"))
	for _, g := range groups {
		if !g.Share.IsZero() || !g.Allocated.IsZero() {
			t.Fatalf("expected zero share and allocation: %+v", g)
		}
	}
}

func TestAllocateRoundedSumMatchesTotal(t *testing.T) {
	items := []internal.LineItem{
		{GroupKey: "A", NetAmt: dec("33.33"), Material: "1"},
		{GroupKey: "B", NetAmt: dec("33.33"), Material: "2"},
		{GroupKey: "C", NetAmt: dec("33.34"), Material: "3"},
	}
	total := dec("751.77")

	groups := Allocate(items, total)
	sum := decimal.Zero
	for _, g := range groups {
		sum = sum.Add(g.Allocated.Round(2))
	}
	if sum.Sub(total).Abs().GreaterThan(dec("0.01")) {
		t.Fatalf("rounded sum %s drifts from total %s", sum, total)
	}
}

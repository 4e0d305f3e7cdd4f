package pipeline

import (
	"github.com/shopspring/decimal"

	"invoiceflow/internal"
)

// Allocate groups line items by price-group key, sums net amounts per
// group and splits totalDue proportionally. Items are expected in group
// key order; group order in the result follows first appearance.
//
// When the grand total of net amounts is zero every share is zero rather
// than undefined, so a degenerate input allocates nothing instead of
// failing.
func Allocate(items []internal.LineItem, totalDue decimal.Decimal) []internal.AllocationGroup {
	order := make([]string, 0)
	byKey := map[string]*internal.AllocationGroup{}
	maxNet := map[string]decimal.Decimal{}

	for _, item := range items {
		group, ok := byKey[item.GroupKey]
		if !ok {
			group = &internal.AllocationGroup{GroupKey: item.GroupKey}
			byKey[item.GroupKey] = group
			order = append(order, item.GroupKey)
		}
		group.NetTotal = group.NetTotal.Add(item.NetAmt)

		if !ok || item.NetAmt.GreaterThan(maxNet[item.GroupKey]) {
			maxNet[item.GroupKey] = item.NetAmt
			group.Material = item.Material
		}
	}

	grand := decimal.Zero
	for _, key := range order {
		grand = grand.Add(byKey[key].NetTotal)
	}

	out := make([]internal.AllocationGroup, 0, len(order))
	for _, key := range order {
		group := byKey[key]
		if !grand.IsZero() {
			group.Share = group.NetTotal.Div(grand)
			group.Allocated = group.Share.Mul(totalDue)
		}
		out = append(out, *group)
	}
	return out
}

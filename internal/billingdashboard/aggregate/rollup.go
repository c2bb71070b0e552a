package aggregate

import "github.com/bwmarrin/snowflake"

// Totals partitions invoice amounts by lifecycle stage. Invoiced covers
// every status including DRAFT and VOID; Collected is PAID only;
// Outstanding is SENT, UNPAID, and PARTIAL; Voided is VOID. DRAFT
// contributes to Invoiced alone, so collected + outstanding + voided is
// at most invoiced, with equality exactly when no DRAFT rows exist.
type Totals struct {
	InvoicedCents    int64
	CollectedCents   int64
	OutstandingCents int64
	VoidedCents      int64
}

func (t *Totals) add(inv NormalizedInvoice) {
	t.InvoicedCents += inv.AmountCents
	switch inv.Status {
	case StatusPaid:
		t.CollectedCents += inv.AmountCents
	case StatusSent, StatusUnpaid, StatusPartial:
		t.OutstandingCents += inv.AmountCents
	case StatusVoid:
		t.VoidedCents += inv.AmountCents
	}
}

// Rollup sums normalized invoices globally and per estate.
func Rollup(invoices []NormalizedInvoice) (Totals, map[snowflake.ID]Totals) {
	var global Totals
	byEstate := make(map[snowflake.ID]Totals)

	for _, inv := range invoices {
		global.add(inv)

		estate := byEstate[inv.EstateID]
		estate.add(inv)
		byEstate[inv.EstateID] = estate
	}

	return global, byEstate
}

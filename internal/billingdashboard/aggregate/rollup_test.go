package aggregate

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
)

func inv(estate snowflake.ID, status string, cents int64) NormalizedInvoice {
	return NormalizedInvoice{EstateID: estate, Status: status, AmountCents: cents}
}

func TestRollupPartitions(t *testing.T) {
	invoices := []NormalizedInvoice{
		inv(1, StatusPaid, 10000),
		inv(1, StatusSent, 5000),
		inv(2, StatusUnpaid, 3000),
		inv(2, StatusPartial, 2000),
		inv(2, StatusVoid, 1500),
		inv(1, StatusDraft, 700),
	}

	global, byEstate := Rollup(invoices)

	assert.Equal(t, int64(22200), global.InvoicedCents)
	assert.Equal(t, int64(10000), global.CollectedCents)
	assert.Equal(t, int64(10000), global.OutstandingCents)
	assert.Equal(t, int64(1500), global.VoidedCents)

	assert.Len(t, byEstate, 2)
	assert.Equal(t, int64(15700), byEstate[1].InvoicedCents)
	assert.Equal(t, int64(5000), byEstate[1].OutstandingCents)
	assert.Equal(t, int64(6500), byEstate[2].InvoicedCents)
	assert.Equal(t, int64(1500), byEstate[2].VoidedCents)
}

// Collected + outstanding + voided never exceeds invoiced, and matches
// it exactly when no DRAFT rows are present.
func TestRollupConservation(t *testing.T) {
	withDraft := []NormalizedInvoice{
		inv(1, StatusPaid, 100),
		inv(1, StatusSent, 200),
		inv(1, StatusDraft, 50),
	}
	global, _ := Rollup(withDraft)
	accounted := global.CollectedCents + global.OutstandingCents + global.VoidedCents
	assert.Less(t, accounted, global.InvoicedCents)

	noDraft := []NormalizedInvoice{
		inv(1, StatusPaid, 100),
		inv(1, StatusVoid, 25),
		inv(1, StatusUnpaid, 200),
	}
	global, _ = Rollup(noDraft)
	accounted = global.CollectedCents + global.OutstandingCents + global.VoidedCents
	assert.Equal(t, global.InvoicedCents, accounted)
}

func TestRollupEmpty(t *testing.T) {
	global, byEstate := Rollup(nil)
	assert.Zero(t, global)
	assert.Empty(t, byEstate)
}

package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func agingInv(status string, cents int64, due time.Time) NormalizedInvoice {
	return NormalizedInvoice{Status: status, AmountCents: cents, DueBasis: due}
}

func TestAgeReceivablesBands(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	buckets := AgeReceivables([]NormalizedInvoice{
		agingInv(StatusSent, 100, now.Add(10*day)),   // not yet due
		agingInv(StatusSent, 200, now),               // due today
		agingInv(StatusUnpaid, 300, now.Add(-1*day)), // 1 day late
		agingInv(StatusUnpaid, 400, now.Add(-30*day)),
		agingInv(StatusPartial, 500, now.Add(-31*day)),
		agingInv(StatusSent, 600, now.Add(-60*day)),
		agingInv(StatusSent, 700, now.Add(-61*day)),
		agingInv(StatusSent, 800, now.Add(-90*day)),
		agingInv(StatusUnpaid, 900, now.Add(-91*day)),
		agingInv(StatusUnpaid, 1000, now.Add(-400*day)),
	}, now)

	require.Len(t, buckets, 5)
	assert.Equal(t, AgingBucket{Band: BandCurrent, TotalCents: 300, Count: 2}, buckets[0])
	assert.Equal(t, AgingBucket{Band: Band1To30, TotalCents: 700, Count: 2}, buckets[1])
	assert.Equal(t, AgingBucket{Band: Band31To60, TotalCents: 1100, Count: 2}, buckets[2])
	assert.Equal(t, AgingBucket{Band: Band61To90, TotalCents: 1500, Count: 2}, buckets[3])
	assert.Equal(t, AgingBucket{Band: Band91Plus, TotalCents: 1900, Count: 2}, buckets[4])
}

func TestAgeReceivablesSkipsNonOutstanding(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	overdue := now.Add(-45 * 24 * time.Hour)

	buckets := AgeReceivables([]NormalizedInvoice{
		agingInv(StatusPaid, 100, overdue),
		agingInv(StatusDraft, 200, overdue),
		agingInv(StatusVoid, 300, overdue),
		agingInv(StatusSent, 0, overdue), // zero amount ignored
	}, now)

	for _, b := range buckets {
		assert.Zero(t, b.TotalCents)
		assert.Zero(t, b.Count)
	}
}

// The band totals always reconstruct the outstanding figure computed
// over the same set of invoices.
func TestAgingSumsToOutstanding(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour
	invoices := []NormalizedInvoice{
		agingInv(StatusSent, 5000, now.Add(-45*day)),
		agingInv(StatusUnpaid, 1234, now.Add(-2*day)),
		agingInv(StatusPartial, 987, now.Add(3*day)),
		agingInv(StatusPaid, 10000, now.Add(-100*day)),
		agingInv(StatusDraft, 555, now.Add(-100*day)),
	}

	global, _ := Rollup(invoices)
	buckets := AgeReceivables(invoices, now)

	var sum int64
	for _, b := range buckets {
		sum += b.TotalCents
	}
	assert.Equal(t, global.OutstandingCents, sum)
}

func TestDaysPastDueFloors(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	// Due 12 hours ago is still less than a full day late.
	assert.Equal(t, 0, daysPastDue(now.Add(-12*time.Hour), now))
	// Due 12 hours from now floors to -1.
	assert.Equal(t, -1, daysPastDue(now.Add(12*time.Hour), now))
	assert.Equal(t, 1, daysPastDue(now.Add(-36*time.Hour), now))
}

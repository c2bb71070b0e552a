package aggregate

import (
	"math"
	"time"
)

const (
	BandCurrent = "CURRENT"
	Band1To30   = "AGE_1_30"
	Band31To60  = "AGE_31_60"
	Band61To90  = "AGE_61_90"
	Band91Plus  = "AGE_91_PLUS"
)

// AgingBucket is one band of the accounts-receivable aging report.
type AgingBucket struct {
	Band       string `json:"band"`
	TotalCents int64  `json:"total_cents"`
	Count      int64  `json:"count"`
}

// AgeReceivables distributes outstanding invoices with a positive
// amount across the five fixed aging bands, keyed by whole days past
// each invoice's due basis. All five bands are always returned, in
// order, zero-filled. The band totals sum to the global outstanding
// figure over the same invoice set.
func AgeReceivables(invoices []NormalizedInvoice, now time.Time) []AgingBucket {
	buckets := []AgingBucket{
		{Band: BandCurrent},
		{Band: Band1To30},
		{Band: Band31To60},
		{Band: Band61To90},
		{Band: Band91Plus},
	}

	for _, inv := range invoices {
		if !IsOutstanding(inv.Status) || inv.AmountCents <= 0 {
			continue
		}

		i := bandIndex(daysPastDue(inv.DueBasis, now))
		buckets[i].TotalCents += inv.AmountCents
		buckets[i].Count++
	}

	return buckets
}

// daysPastDue is the whole number of 24h periods between the due basis
// and now, floored so invoices due later today stay at zero or below.
func daysPastDue(due, now time.Time) int {
	return int(math.Floor(now.Sub(due).Hours() / 24))
}

func bandIndex(days int) int {
	switch {
	case days <= 0:
		return 0
	case days <= 30:
		return 1
	case days <= 60:
		return 2
	case days <= 90:
		return 3
	default:
		return 4
	}
}

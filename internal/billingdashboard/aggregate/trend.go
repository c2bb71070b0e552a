package aggregate

import (
	"time"

	"github.com/shopspring/decimal"
)

const trendMonths = 6

// MonthBucket is one calendar month of the billing trend.
type MonthBucket struct {
	Year             int    `json:"year"`
	Month            int    `json:"month"`
	Label            string `json:"label"`
	InvoicedCents    int64  `json:"invoiced_cents"`
	CollectedCents   int64  `json:"collected_cents"`
	OutstandingCents int64  `json:"outstanding_cents"`
	CollectionRate   int64  `json:"collection_rate"`
}

// MonthlyTrend buckets invoices into the 6 calendar months ending at the
// month of now, oldest first and zero-filled. Bucket boundaries depend
// only on the year and month of now, so every call within the same
// month sees identical buckets. Invoices outside the window are
// dropped; sums follow the Rollup partitioning by each invoice's
// effective date.
func MonthlyTrend(invoices []NormalizedInvoice, now time.Time) []MonthBucket {
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	buckets := make([]MonthBucket, trendMonths)
	index := make(map[time.Time]int, trendMonths)
	for i := 0; i < trendMonths; i++ {
		month := anchor.AddDate(0, i-(trendMonths-1), 0)
		buckets[i] = MonthBucket{
			Year:  month.Year(),
			Month: int(month.Month()),
			Label: month.Format("Jan 06"),
		}
		index[month] = i
	}

	for _, inv := range invoices {
		at := inv.EffectiveDate
		key := time.Date(at.Year(), at.Month(), 1, 0, 0, 0, 0, time.UTC)
		i, ok := index[key]
		if !ok {
			continue
		}

		buckets[i].InvoicedCents += inv.AmountCents
		switch inv.Status {
		case StatusPaid:
			buckets[i].CollectedCents += inv.AmountCents
		case StatusSent, StatusUnpaid, StatusPartial:
			buckets[i].OutstandingCents += inv.AmountCents
		}
	}

	for i := range buckets {
		buckets[i].CollectionRate = collectionRate(buckets[i].CollectedCents, buckets[i].InvoicedCents)
	}

	return buckets
}

// collectionRate is round(collected/invoiced*100), 0 when nothing was
// invoiced.
func collectionRate(collected, invoiced int64) int64 {
	if invoiced == 0 {
		return 0
	}
	return decimal.NewFromInt(collected).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(invoiced)).
		Round(0).
		IntPart()
}

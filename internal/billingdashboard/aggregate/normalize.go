// Package aggregate holds the pure computation core behind the billing
// dashboard: money normalization, time valuation, invoice rollups, the
// monthly trend, and receivables aging. Nothing in here touches the
// database or the wall clock.
package aggregate

import (
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

const (
	StatusDraft   = "DRAFT"
	StatusSent    = "SENT"
	StatusUnpaid  = "UNPAID"
	StatusPartial = "PARTIAL"
	StatusPaid    = "PAID"
	StatusVoid    = "VOID"
)

// centsThreshold drives the legacy-amount unit heuristic: legacy values
// above it are assumed to already be cents, values at or below it are
// dollars. The ambiguity is inherent to the legacy columns; the cutoff
// is kept as-is rather than guessed at per row.
const centsThreshold = 10_000

// InvoiceRecord is the loosely-shaped invoice row as it comes out of
// storage: the amount may live in any of four columns and the status and
// dates may be missing or garbage.
type InvoiceRecord struct {
	ID             snowflake.ID
	EstateID       snowflake.ID
	Status         string
	AmountCents    *int64
	LegacyTotal    *float64
	LegacySubtotal *float64
	LegacyAmount   *float64
	IssueDate      *time.Time
	DueDate        *time.Time
	CreatedAt      time.Time
}

// NormalizedInvoice is the fully-typed record every downstream
// computation consumes. AmountCents is never negative, Status is one of
// the six canonical values, and both dates are always set.
type NormalizedInvoice struct {
	ID            snowflake.ID
	EstateID      snowflake.ID
	Status        string
	AmountCents   int64
	EffectiveDate time.Time
	DueBasis      time.Time
}

// Normalize converts a raw invoice row into its canonical form. It never
// fails: unusable amounts become 0 and unknown statuses become DRAFT.
func Normalize(rec InvoiceRecord) NormalizedInvoice {
	return NormalizedInvoice{
		ID:            rec.ID,
		EstateID:      rec.EstateID,
		Status:        NormalizeStatus(rec.Status),
		AmountCents:   NormalizeAmountCents(rec),
		EffectiveDate: effectiveDate(rec),
		DueBasis:      dueBasis(rec),
	}
}

// NormalizeAmountCents resolves the invoice amount to integer cents.
// amount_cents wins when present; otherwise the first present legacy
// column (total, then subtotal, then amount) is consulted, with values
// above centsThreshold treated as cents and the rest as dollars.
// NaN, Inf, negative, and absent amounts all resolve to 0.
func NormalizeAmountCents(rec InvoiceRecord) int64 {
	if rec.AmountCents != nil {
		if *rec.AmountCents < 0 {
			return 0
		}
		return *rec.AmountCents
	}

	var raw float64
	switch {
	case rec.LegacyTotal != nil:
		raw = *rec.LegacyTotal
	case rec.LegacySubtotal != nil:
		raw = *rec.LegacySubtotal
	case rec.LegacyAmount != nil:
		raw = *rec.LegacyAmount
	default:
		return 0
	}

	if math.IsNaN(raw) || math.IsInf(raw, 0) || raw < 0 {
		return 0
	}

	d := decimal.NewFromFloat(raw)
	if raw > centsThreshold {
		return d.Round(0).IntPart()
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// NormalizeStatus trims and uppercases the raw status; anything outside
// the canonical set collapses to DRAFT.
func NormalizeStatus(raw string) string {
	status := strings.ToUpper(strings.TrimSpace(raw))
	switch status {
	case StatusDraft, StatusSent, StatusUnpaid, StatusPartial, StatusPaid, StatusVoid:
		return status
	}
	return StatusDraft
}

// IsOutstanding reports whether a canonical status counts toward
// receivables.
func IsOutstanding(status string) bool {
	switch status {
	case StatusSent, StatusUnpaid, StatusPartial:
		return true
	}
	return false
}

func effectiveDate(rec InvoiceRecord) time.Time {
	if rec.IssueDate != nil {
		return *rec.IssueDate
	}
	return rec.CreatedAt
}

func dueBasis(rec InvoiceRecord) time.Time {
	if rec.DueDate != nil {
		return *rec.DueDate
	}
	if rec.IssueDate != nil {
		return *rec.IssueDate
	}
	return rec.CreatedAt
}

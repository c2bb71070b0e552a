package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/internal/billingdashboard/aggregate"
)

// EstateBreakdown is one row of the per-estate dashboard table.
type EstateBreakdown struct {
	EstateID         snowflake.ID `json:"estate_id"`
	Label            string       `json:"label"`
	InvoicedCents    int64        `json:"invoiced_cents"`
	CollectedCents   int64        `json:"collected_cents"`
	OutstandingCents int64        `json:"outstanding_cents"`
	VoidedCents      int64        `json:"voided_cents"`
	UnbilledMinutes  int64        `json:"unbilled_minutes"`
	UnbilledCents    int64        `json:"unbilled_cents"`
}

// UnbilledSummary totals unbilled work across all accessible estates.
// Hours is Minutes/60 rounded to one decimal place.
type UnbilledSummary struct {
	Minutes int64   `json:"minutes"`
	Hours   float64 `json:"hours"`
	Cents   int64   `json:"cents"`
}

// Overview is the complete billing dashboard payload.
type Overview struct {
	Currency         string                  `json:"currency"`
	InvoicedCents    int64                   `json:"invoiced_cents"`
	CollectedCents   int64                   `json:"collected_cents"`
	OutstandingCents int64                   `json:"outstanding_cents"`
	VoidedCents      int64                   `json:"voided_cents"`
	Trend            []aggregate.MonthBucket `json:"trend"`
	Aging            []aggregate.AgingBucket `json:"aging"`
	Estates          []EstateBreakdown       `json:"estates"`
	Unbilled         UnbilledSummary         `json:"unbilled"`
	GeneratedAt      time.Time               `json:"generated_at"`
}

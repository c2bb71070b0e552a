package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/pkg/db/pagination"
)

type LogRequest struct {
	EstateID        snowflake.ID `json:"estate_id"`
	Description     string       `json:"description"`
	DurationMinutes int64        `json:"duration_minutes"`
	StartedAt       *time.Time   `json:"started_at"`
	StoppedAt       *time.Time   `json:"stopped_at"`
	HourlyRateCents int64        `json:"hourly_rate_cents"`
}

type UpdateRequest struct {
	Description     *string    `json:"description"`
	DurationMinutes *int64     `json:"duration_minutes"`
	StartedAt       *time.Time `json:"started_at"`
	StoppedAt       *time.Time `json:"stopped_at"`
	HourlyRateCents *int64     `json:"hourly_rate_cents"`
}

type ListFilter struct {
	EstateID *snowflake.ID
	Unbilled bool
	Page     *pagination.Pagination
}

type Service interface {
	// Log records a time entry from either an explicit duration or a
	// start/stop timestamp pair.
	Log(ctx context.Context, req LogRequest) (TimeEntry, error)
	List(ctx context.Context, filter ListFilter) ([]*TimeEntry, *pagination.PageInfo, error)
	GetByID(ctx context.Context, id snowflake.ID) (TimeEntry, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (TimeEntry, error)
	Archive(ctx context.Context, id snowflake.ID) (TimeEntry, error)
	// AttachToInvoice marks the entry billed; entries already attached to
	// an invoice are refused.
	AttachToInvoice(ctx context.Context, id, invoiceID snowflake.ID) (TimeEntry, error)
}

var (
	ErrMissingOwner    = errors.New("missing_owner")
	ErrEntryNotFound   = errors.New("time_entry_not_found")
	ErrEstateNotFound  = errors.New("estate_not_found")
	ErrInvoiceNotFound = errors.New("invoice_not_found")
	ErrMissingDuration = errors.New("missing_duration")
	ErrInvalidDuration = errors.New("invalid_duration")
	ErrInvalidRate     = errors.New("invalid_rate")
	ErrAlreadyBilled   = errors.New("already_billed")
	ErrEntryArchived   = errors.New("entry_archived")
)

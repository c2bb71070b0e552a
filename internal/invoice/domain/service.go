package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/pkg/db/pagination"
	"gorm.io/datatypes"
)

type CreateInvoiceRequest struct {
	EstateID      snowflake.ID      `json:"estate_id"`
	InvoiceNumber string            `json:"invoice_number"`
	AmountCents   int64             `json:"amount_cents"`
	Currency      string            `json:"currency"`
	IssueDate     *time.Time        `json:"issue_date"`
	DueDate       *time.Time        `json:"due_date"`
	Metadata      datatypes.JSONMap `json:"metadata"`
}

type UpdateInvoiceRequest struct {
	InvoiceNumber *string           `json:"invoice_number"`
	AmountCents   *int64            `json:"amount_cents"`
	Currency      *string           `json:"currency"`
	IssueDate     *time.Time        `json:"issue_date"`
	DueDate       *time.Time        `json:"due_date"`
	Metadata      datatypes.JSONMap `json:"metadata"`
}

type ListFilter struct {
	EstateID *snowflake.ID
	Status   string
	Page     *pagination.Pagination
}

type Service interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error)
	List(ctx context.Context, filter ListFilter) ([]*Invoice, *pagination.PageInfo, error)
	GetByID(ctx context.Context, id snowflake.ID) (Invoice, error)
	// Update edits invoice fields; only DRAFT invoices may be edited.
	Update(ctx context.Context, id snowflake.ID, req UpdateInvoiceRequest) (Invoice, error)
	UpdateStatus(ctx context.Context, id snowflake.ID, status string) (Invoice, error)
	Void(ctx context.Context, id snowflake.ID) (Invoice, error)
}

var (
	ErrMissingOwner         = errors.New("missing_owner")
	ErrInvoiceNotFound      = errors.New("invoice_not_found")
	ErrEstateNotFound       = errors.New("estate_not_found")
	ErrInvalidAmount        = errors.New("invalid_amount")
	ErrInvalidStatus        = errors.New("invalid_status")
	ErrTransitionNotAllowed = errors.New("transition_not_allowed")
	ErrNotDraft             = errors.New("invoice_not_draft")
)

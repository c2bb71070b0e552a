package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/pkg/db/pagination"
)

type CreateExpenseRequest struct {
	EstateID    snowflake.ID `json:"estate_id"`
	Description string       `json:"description"`
	AmountCents int64        `json:"amount_cents"`
	Category    string       `json:"category"`
	IncurredOn  *time.Time   `json:"incurred_on"`
	Billable    bool         `json:"billable"`
}

type UpdateExpenseRequest struct {
	Description *string    `json:"description"`
	AmountCents *int64     `json:"amount_cents"`
	Category    *string    `json:"category"`
	IncurredOn  *time.Time `json:"incurred_on"`
	Billable    *bool      `json:"billable"`
}

type ListFilter struct {
	EstateID *snowflake.ID
	Billable *bool
	Page     *pagination.Pagination
}

type Service interface {
	Create(ctx context.Context, req CreateExpenseRequest) (Expense, error)
	List(ctx context.Context, filter ListFilter) ([]*Expense, *pagination.PageInfo, error)
	GetByID(ctx context.Context, id snowflake.ID) (Expense, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateExpenseRequest) (Expense, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

var (
	ErrMissingOwner       = errors.New("missing_owner")
	ErrExpenseNotFound    = errors.New("expense_not_found")
	ErrEstateNotFound     = errors.New("estate_not_found")
	ErrInvalidAmount      = errors.New("invalid_amount")
	ErrMissingDescription = errors.New("missing_description")
	ErrExpenseBilled      = errors.New("expense_billed")
)

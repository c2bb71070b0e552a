package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/pkg/db/pagination"
)

type CreateTaskRequest struct {
	EstateID snowflake.ID `json:"estate_id"`
	Title    string       `json:"title"`
	Notes    string       `json:"notes"`
	DueDate  *time.Time   `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title   *string    `json:"title"`
	Notes   *string    `json:"notes"`
	Status  *string    `json:"status"`
	DueDate *time.Time `json:"due_date"`
}

type ListFilter struct {
	EstateID  *snowflake.ID
	Status    string
	DueBefore *time.Time
	Page      *pagination.Pagination
}

type Service interface {
	Create(ctx context.Context, req CreateTaskRequest) (Task, error)
	List(ctx context.Context, filter ListFilter) ([]*Task, *pagination.PageInfo, error)
	GetByID(ctx context.Context, id snowflake.ID) (Task, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateTaskRequest) (Task, error)
	Complete(ctx context.Context, id snowflake.ID) (Task, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

var (
	ErrMissingOwner    = errors.New("missing_owner")
	ErrTaskNotFound    = errors.New("task_not_found")
	ErrEstateNotFound  = errors.New("estate_not_found")
	ErrMissingTitle    = errors.New("missing_title")
	ErrInvalidStatus   = errors.New("invalid_status")
	ErrTaskAlreadyDone = errors.New("task_already_done")
)

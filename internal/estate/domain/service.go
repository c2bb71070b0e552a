package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/pkg/db/pagination"
	"gorm.io/datatypes"
)

type CreateEstateRequest struct {
	DisplayName  string            `json:"display_name"`
	CaseName     string            `json:"case_name"`
	CaseNumber   string            `json:"case_number"`
	DecedentName string            `json:"decedent_name"`
	DateOfDeath  *time.Time        `json:"date_of_death"`
	Metadata     datatypes.JSONMap `json:"metadata"`
}

type UpdateEstateRequest struct {
	DisplayName  *string           `json:"display_name"`
	CaseName     *string           `json:"case_name"`
	CaseNumber   *string           `json:"case_number"`
	DecedentName *string           `json:"decedent_name"`
	DateOfDeath  *time.Time        `json:"date_of_death"`
	Metadata     datatypes.JSONMap `json:"metadata"`
}

type ListFilter struct {
	Status string
	Search string
	Page   *pagination.Pagination
}

type AddCollaboratorRequest struct {
	UserID snowflake.ID `json:"user_id"`
	Role   string       `json:"role"`
}

type Service interface {
	Create(ctx context.Context, req CreateEstateRequest) (Estate, error)
	List(ctx context.Context, filter ListFilter) ([]*Estate, *pagination.PageInfo, error)
	GetByID(ctx context.Context, id snowflake.ID) (Estate, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateEstateRequest) (Estate, error)
	Close(ctx context.Context, id snowflake.ID) (Estate, error)
	AddCollaborator(ctx context.Context, estateID snowflake.ID, req AddCollaboratorRequest) (Collaborator, error)
	RemoveCollaborator(ctx context.Context, estateID, userID snowflake.ID) error
}

var (
	ErrMissingOwner           = errors.New("missing_owner")
	ErrEstateNotFound         = errors.New("estate_not_found")
	ErrMissingDisplayName     = errors.New("missing_display_name")
	ErrEstateClosed           = errors.New("estate_closed")
	ErrCollaboratorExists     = errors.New("collaborator_exists")
	ErrCollaboratorNotFound   = errors.New("collaborator_not_found")
	ErrCollaboratorIsOwner    = errors.New("collaborator_is_owner")
	ErrCollaboratorNotAllowed = errors.New("collaborator_not_allowed")
)

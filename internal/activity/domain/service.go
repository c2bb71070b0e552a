package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/pkg/db/pagination"
	"gorm.io/datatypes"
)

type RecordRequest struct {
	EstateID   *snowflake.ID
	ActorID    *snowflake.ID
	Action     string
	TargetType string
	TargetID   snowflake.ID
	Metadata   datatypes.JSONMap
}

type ListFilter struct {
	EstateID *snowflake.ID
	Action   string
	Page     *pagination.Pagination
}

type Service interface {
	Record(ctx context.Context, req RecordRequest) error
	List(ctx context.Context, filter ListFilter) ([]*Activity, *pagination.PageInfo, error)
}

var (
	ErrMissingOwner  = errors.New("missing_owner")
	ErrMissingAction = errors.New("missing_action")
)

package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/pkg/db/option"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *TimeEntry) error
	FindByID(ctx context.Context, db *gorm.DB, id, ownerID snowflake.ID) (*TimeEntry, error)
	List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter ListFilter, opts ...option.Option) ([]*TimeEntry, error)
	Update(ctx context.Context, db *gorm.DB, entry *TimeEntry) error
}

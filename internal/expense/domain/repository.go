package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/pkg/db/option"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, expense *Expense) error
	FindByID(ctx context.Context, db *gorm.DB, id, ownerID snowflake.ID) (*Expense, error)
	List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter ListFilter, opts ...option.Option) ([]*Expense, error)
	Update(ctx context.Context, db *gorm.DB, expense *Expense) error
	Delete(ctx context.Context, db *gorm.DB, id, ownerID snowflake.ID) (int64, error)
}

package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/pkg/db/option"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	FindByID(ctx context.Context, db *gorm.DB, id, ownerID snowflake.ID) (*Invoice, error)
	List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter ListFilter, opts ...option.Option) ([]*Invoice, error)
	Update(ctx context.Context, db *gorm.DB, invoice *Invoice) error
	// UpdateStatus moves the invoice to a new status only when it still has
	// the expected one, returning the number of rows changed.
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to string, updatedAt time.Time) (int64, error)
}

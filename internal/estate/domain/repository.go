package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/pkg/db/option"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, estate *Estate) error
	// FindByID returns the estate when the user owns it or collaborates on
	// it, nil when neither.
	FindByID(ctx context.Context, db *gorm.DB, id, userID snowflake.ID) (*Estate, error)
	List(ctx context.Context, db *gorm.DB, userID snowflake.ID, filter ListFilter, opts ...option.Option) ([]*Estate, error)
	Update(ctx context.Context, db *gorm.DB, estate *Estate) error
	InsertCollaborator(ctx context.Context, db *gorm.DB, collaborator *Collaborator) error
	DeleteCollaborator(ctx context.Context, db *gorm.DB, estateID, userID snowflake.ID) (int64, error)
}

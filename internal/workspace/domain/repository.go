package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	FindSettings(ctx context.Context, db *gorm.DB, ownerID snowflake.ID) (*Settings, error)
	UpsertSettings(ctx context.Context, db *gorm.DB, settings *Settings) error
}

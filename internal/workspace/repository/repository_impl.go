package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/internal/workspace/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindSettings(ctx context.Context, db *gorm.DB, ownerID snowflake.ID) (*domain.Settings, error) {
	var settings domain.Settings
	err := db.WithContext(ctx).Raw(
		`SELECT owner_id, firm_name, default_currency, default_hourly_rate_cents, created_at, updated_at
		 FROM workspace_settings WHERE owner_id = ?`,
		ownerID,
	).Scan(&settings).Error
	if err != nil {
		return nil, err
	}
	if settings.OwnerID == 0 {
		return nil, nil
	}
	return &settings, nil
}

func (r *repo) UpsertSettings(ctx context.Context, db *gorm.DB, settings *domain.Settings) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"firm_name", "default_currency", "default_hourly_rate_cents", "updated_at",
			}),
		}).
		Create(settings).Error
}

package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/internal/activity/domain"
	"github.com/legatepro/legatepro/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, activity *domain.Activity) error {
	return db.WithContext(ctx).Create(activity).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter domain.ListFilter, opts ...option.Option) ([]*domain.Activity, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Activity{}).
		Where("owner_id = ?", ownerID)

	if filter.EstateID != nil {
		stmt = stmt.Where("estate_id = ?", *filter.EstateID)
	}
	if filter.Action != "" {
		stmt = stmt.Where("action = ?", filter.Action)
	}

	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}

	var activities []*domain.Activity
	if err := stmt.Order("created_at DESC, id DESC").Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

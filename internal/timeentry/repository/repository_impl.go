package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/internal/timeentry/domain"
	"github.com/legatepro/legatepro/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, entry *domain.TimeEntry) error {
	return db.WithContext(ctx).Create(entry).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id, ownerID snowflake.ID) (*domain.TimeEntry, error) {
	var entry domain.TimeEntry
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM time_entries WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	).Scan(&entry).Error
	if err != nil {
		return nil, err
	}
	if entry.ID == 0 {
		return nil, nil
	}
	return &entry, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter domain.ListFilter, opts ...option.Option) ([]*domain.TimeEntry, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.TimeEntry{}).
		Where("owner_id = ?", ownerID)

	if filter.EstateID != nil {
		stmt = stmt.Where("estate_id = ?", *filter.EstateID)
	}
	if filter.Unbilled {
		stmt = stmt.Where("invoice_id IS NULL AND archived = ?", false)
	}

	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}

	var entries []*domain.TimeEntry
	if err := stmt.Order("created_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, entry *domain.TimeEntry) error {
	return db.WithContext(ctx).
		Model(&domain.TimeEntry{}).
		Where("id = ?", entry.ID).
		Updates(map[string]any{
			"description":       entry.Description,
			"duration_minutes":  entry.DurationMinutes,
			"started_at":        entry.StartedAt,
			"stopped_at":        entry.StoppedAt,
			"hourly_rate_cents": entry.HourlyRateCents,
			"invoice_id":        entry.InvoiceID,
			"archived":          entry.Archived,
			"updated_at":        entry.UpdatedAt,
		}).Error
}

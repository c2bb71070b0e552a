package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/internal/estate/domain"
	"github.com/legatepro/legatepro/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, estate *domain.Estate) error {
	return db.WithContext(ctx).Create(estate).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id, userID snowflake.ID) (*domain.Estate, error) {
	var estate domain.Estate
	err := db.WithContext(ctx).Raw(
		`SELECT e.* FROM estates e
		 WHERE e.id = ?
		   AND (e.owner_id = ? OR EXISTS (
		       SELECT 1 FROM estate_collaborators c
		       WHERE c.estate_id = e.id AND c.user_id = ?))`,
		id, userID, userID,
	).Scan(&estate).Error
	if err != nil {
		return nil, err
	}
	if estate.ID == 0 {
		return nil, nil
	}
	return &estate, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, userID snowflake.ID, filter domain.ListFilter, opts ...option.Option) ([]*domain.Estate, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Estate{}).
		Where(
			"owner_id = ? OR id IN (SELECT estate_id FROM estate_collaborators WHERE user_id = ?)",
			userID, userID,
		)

	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		stmt = stmt.Where(
			"display_name LIKE ? OR case_name LIKE ? OR case_number LIKE ? OR decedent_name LIKE ?",
			like, like, like, like,
		)
	}

	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}

	var estates []*domain.Estate
	if err := stmt.Order("created_at DESC, id DESC").Find(&estates).Error; err != nil {
		return nil, err
	}
	return estates, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, estate *domain.Estate) error {
	return db.WithContext(ctx).
		Model(&domain.Estate{}).
		Where("id = ?", estate.ID).
		Updates(map[string]any{
			"display_name":  estate.DisplayName,
			"case_name":     estate.CaseName,
			"case_number":   estate.CaseNumber,
			"decedent_name": estate.DecedentName,
			"status":        estate.Status,
			"date_of_death": estate.DateOfDeath,
			"metadata":      estate.Metadata,
			"updated_at":    estate.UpdatedAt,
		}).Error
}

func (r *repo) InsertCollaborator(ctx context.Context, db *gorm.DB, collaborator *domain.Collaborator) error {
	return db.WithContext(ctx).Create(collaborator).Error
}

func (r *repo) DeleteCollaborator(ctx context.Context, db *gorm.DB, estateID, userID snowflake.ID) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`DELETE FROM estate_collaborators WHERE estate_id = ? AND user_id = ?`,
		estateID, userID,
	)
	return result.RowsAffected, result.Error
}

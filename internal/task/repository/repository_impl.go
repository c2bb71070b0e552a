package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/internal/task/domain"
	"github.com/legatepro/legatepro/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, task *domain.Task) error {
	return db.WithContext(ctx).Create(task).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id, ownerID snowflake.ID) (*domain.Task, error) {
	var task domain.Task
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM tasks WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	).Scan(&task).Error
	if err != nil {
		return nil, err
	}
	if task.ID == 0 {
		return nil, nil
	}
	return &task, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter domain.ListFilter, opts ...option.Option) ([]*domain.Task, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("owner_id = ?", ownerID)

	if filter.EstateID != nil {
		stmt = stmt.Where("estate_id = ?", *filter.EstateID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.DueBefore != nil {
		stmt = stmt.Where("due_date IS NOT NULL AND due_date < ?", *filter.DueBefore)
	}

	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}

	var tasks []*domain.Task
	if err := stmt.Order("created_at DESC, id DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, task *domain.Task) error {
	return db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]any{
			"title":        task.Title,
			"notes":        task.Notes,
			"status":       task.Status,
			"due_date":     task.DueDate,
			"completed_at": task.CompletedAt,
			"updated_at":   task.UpdatedAt,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id, ownerID snowflake.ID) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`DELETE FROM tasks WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)
	return result.RowsAffected, result.Error
}

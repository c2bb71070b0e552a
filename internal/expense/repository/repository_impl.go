package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/internal/expense/domain"
	"github.com/legatepro/legatepro/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, expense *domain.Expense) error {
	return db.WithContext(ctx).Create(expense).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id, ownerID snowflake.ID) (*domain.Expense, error) {
	var expense domain.Expense
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM expenses WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	).Scan(&expense).Error
	if err != nil {
		return nil, err
	}
	if expense.ID == 0 {
		return nil, nil
	}
	return &expense, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter domain.ListFilter, opts ...option.Option) ([]*domain.Expense, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Expense{}).
		Where("owner_id = ?", ownerID)

	if filter.EstateID != nil {
		stmt = stmt.Where("estate_id = ?", *filter.EstateID)
	}
	if filter.Billable != nil {
		stmt = stmt.Where("billable = ?", *filter.Billable)
	}

	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}

	var expenses []*domain.Expense
	if err := stmt.Order("created_at DESC, id DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, expense *domain.Expense) error {
	return db.WithContext(ctx).
		Model(&domain.Expense{}).
		Where("id = ?", expense.ID).
		Updates(map[string]any{
			"description":  expense.Description,
			"amount_cents": expense.AmountCents,
			"category":     expense.Category,
			"incurred_on":  expense.IncurredOn,
			"billable":     expense.Billable,
			"invoice_id":   expense.InvoiceID,
			"updated_at":   expense.UpdatedAt,
		}).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id, ownerID snowflake.ID) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`DELETE FROM expenses WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)
	return result.RowsAffected, result.Error
}

package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/internal/invoice/domain"
	"github.com/legatepro/legatepro/pkg/db/option"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).Create(invoice).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id, ownerID snowflake.ID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := db.WithContext(ctx).Raw(
		`SELECT * FROM invoices WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}
	return &invoice, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, ownerID snowflake.ID, filter domain.ListFilter, opts ...option.Option) ([]*domain.Invoice, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("owner_id = ?", ownerID)

	if filter.EstateID != nil {
		stmt = stmt.Where("estate_id = ?", *filter.EstateID)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}

	for _, opt := range opts {
		stmt = opt.Apply(stmt)
	}

	var invoices []*domain.Invoice
	if err := stmt.Order("created_at DESC, id DESC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, invoice *domain.Invoice) error {
	return db.WithContext(ctx).
		Model(&domain.Invoice{}).
		Where("id = ?", invoice.ID).
		Updates(map[string]any{
			"invoice_number": invoice.InvoiceNumber,
			"amount_cents":   invoice.AmountCents,
			"currency":       invoice.Currency,
			"issue_date":     invoice.IssueDate,
			"due_date":       invoice.DueDate,
			"metadata":       invoice.Metadata,
			"updated_at":     invoice.UpdatedAt,
		}).Error
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, from, to string, updatedAt time.Time) (int64, error) {
	result := db.WithContext(ctx).Exec(
		`UPDATE invoices SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		to, updatedAt, id, from,
	)
	return result.RowsAffected, result.Error
}

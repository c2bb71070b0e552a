package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/internal/billingdashboard/aggregate"
	"github.com/legatepro/legatepro/internal/billingdashboard/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

// accessibleEstates narrows any estate-scoped query to the estates the
// user owns or collaborates on.
const accessibleEstates = `
	SELECT id FROM estates WHERE owner_id = ?
	UNION
	SELECT estate_id FROM estate_collaborators WHERE user_id = ?`

type invoiceRow struct {
	ID             snowflake.ID `gorm:"column:id"`
	EstateID       snowflake.ID `gorm:"column:estate_id"`
	Status         string       `gorm:"column:status"`
	AmountCents    *int64       `gorm:"column:amount_cents"`
	LegacyTotal    *float64     `gorm:"column:legacy_total"`
	LegacySubtotal *float64     `gorm:"column:legacy_subtotal"`
	LegacyAmount   *float64     `gorm:"column:legacy_amount"`
	IssueDate      *time.Time   `gorm:"column:issue_date"`
	DueDate        *time.Time   `gorm:"column:due_date"`
	CreatedAt      time.Time    `gorm:"column:created_at"`
}

func (r *repo) LoadInvoices(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]aggregate.InvoiceRecord, error) {
	var rows []invoiceRow
	err := db.WithContext(ctx).Raw(
		`SELECT id, estate_id, status, amount_cents,
		        legacy_total, legacy_subtotal, legacy_amount,
		        issue_date, due_date, created_at
		 FROM invoices
		 WHERE estate_id IN (`+accessibleEstates+`)`,
		userID, userID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]aggregate.InvoiceRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, aggregate.InvoiceRecord{
			ID:             row.ID,
			EstateID:       row.EstateID,
			Status:         row.Status,
			AmountCents:    row.AmountCents,
			LegacyTotal:    row.LegacyTotal,
			LegacySubtotal: row.LegacySubtotal,
			LegacyAmount:   row.LegacyAmount,
			IssueDate:      row.IssueDate,
			DueDate:        row.DueDate,
			CreatedAt:      row.CreatedAt,
		})
	}
	return records, nil
}

type timeEntryRow struct {
	ID              snowflake.ID `gorm:"column:id"`
	EstateID        snowflake.ID `gorm:"column:estate_id"`
	DurationMinutes int64        `gorm:"column:duration_minutes"`
	StartedAt       *time.Time   `gorm:"column:started_at"`
	StoppedAt       *time.Time   `gorm:"column:stopped_at"`
	HourlyRateCents int64        `gorm:"column:hourly_rate_cents"`
}

func (r *repo) LoadUnbilledTimeEntries(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]aggregate.TimeEntryRecord, error) {
	var rows []timeEntryRow
	err := db.WithContext(ctx).Raw(
		`SELECT id, estate_id, duration_minutes, started_at, stopped_at, hourly_rate_cents
		 FROM time_entries
		 WHERE invoice_id IS NULL AND archived = ?
		   AND estate_id IN (`+accessibleEstates+`)`,
		false, userID, userID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]aggregate.TimeEntryRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, aggregate.TimeEntryRecord{
			ID:              row.ID,
			EstateID:        row.EstateID,
			DurationMinutes: row.DurationMinutes,
			StartedAt:       row.StartedAt,
			StoppedAt:       row.StoppedAt,
			HourlyRateCents: row.HourlyRateCents,
		})
	}
	return records, nil
}

func (r *repo) LoadEstateLabels(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]domain.EstateLabel, error) {
	var labels []domain.EstateLabel
	err := db.WithContext(ctx).Raw(
		`SELECT id AS estate_id, display_name, case_name
		 FROM estates
		 WHERE id IN (`+accessibleEstates+`)`,
		userID, userID,
	).Scan(&labels).Error
	if err != nil {
		return nil, err
	}
	return labels, nil
}

func (r *repo) LoadBillingDefaults(ctx context.Context, db *gorm.DB, userID snowflake.ID) (domain.BillingDefaults, error) {
	var row struct {
		DefaultCurrency        string `gorm:"column:default_currency"`
		DefaultHourlyRateCents int64  `gorm:"column:default_hourly_rate_cents"`
		Found                  int64  `gorm:"column:found"`
	}
	err := db.WithContext(ctx).Raw(
		`SELECT default_currency, default_hourly_rate_cents, 1 AS found
		 FROM workspace_settings WHERE owner_id = ?`,
		userID,
	).Scan(&row).Error
	if err != nil {
		return domain.BillingDefaults{}, err
	}

	defaults := domain.BillingDefaults{
		Currency:        row.DefaultCurrency,
		HourlyRateCents: row.DefaultHourlyRateCents,
	}
	if row.Found == 0 || defaults.Currency == "" {
		defaults.Currency = "USD"
	}
	if defaults.HourlyRateCents < 0 {
		defaults.HourlyRateCents = 0
	}
	return defaults, nil
}

package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/internal/billingdashboard/aggregate"
	"gorm.io/gorm"
)

// EstateLabel carries the naming columns used to label dashboard rows.
type EstateLabel struct {
	EstateID    snowflake.ID `gorm:"column:estate_id"`
	DisplayName string       `gorm:"column:display_name"`
	CaseName    string       `gorm:"column:case_name"`
}

// BillingDefaults are the workspace-level fallbacks applied during time
// valuation. A missing settings row yields USD and a zero rate.
type BillingDefaults struct {
	Currency        string
	HourlyRateCents int64
}

// Repository loads raw dashboard inputs scoped to the estates the user
// owns or collaborates on.
type Repository interface {
	LoadInvoices(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]aggregate.InvoiceRecord, error)
	LoadUnbilledTimeEntries(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]aggregate.TimeEntryRecord, error)
	LoadEstateLabels(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]EstateLabel, error)
	LoadBillingDefaults(ctx context.Context, db *gorm.DB, userID snowflake.ID) (BillingDefaults, error)
}

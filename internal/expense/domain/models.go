package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Expense struct {
	ID          snowflake.ID  `json:"id" gorm:"primaryKey"`
	OwnerID     snowflake.ID  `json:"owner_id" gorm:"index"`
	EstateID    snowflake.ID  `json:"estate_id" gorm:"index"`
	Description string        `json:"description"`
	AmountCents int64         `json:"amount_cents"`
	Category    string        `json:"category"`
	IncurredOn  *time.Time    `json:"incurred_on,omitempty"`
	Billable    bool          `json:"billable"`
	InvoiceID   *snowflake.ID `json:"invoice_id,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (Expense) TableName() string {
	return "expenses"
}

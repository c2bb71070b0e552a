package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	StatusDraft   = "DRAFT"
	StatusSent    = "SENT"
	StatusUnpaid  = "UNPAID"
	StatusPartial = "PARTIAL"
	StatusPaid    = "PAID"
	StatusVoid    = "VOID"
)

// Invoice stores its amount in integer cents. The legacy columns are
// carried from an earlier schema whose unit (dollars or cents) is
// ambiguous; they are read-only and only consulted by the dashboard
// normalizer when amount_cents is NULL. New writes always set
// amount_cents.
type Invoice struct {
	ID             snowflake.ID      `json:"id" gorm:"primaryKey"`
	OwnerID        snowflake.ID      `json:"owner_id" gorm:"index"`
	EstateID       snowflake.ID      `json:"estate_id" gorm:"index"`
	InvoiceNumber  string            `json:"invoice_number"`
	Status         string            `json:"status" gorm:"index"`
	AmountCents    *int64            `json:"amount_cents"`
	LegacyTotal    *float64          `json:"-" gorm:"column:legacy_total"`
	LegacySubtotal *float64          `json:"-" gorm:"column:legacy_subtotal"`
	LegacyAmount   *float64          `json:"-" gorm:"column:legacy_amount"`
	Currency       string            `json:"currency"`
	IssueDate      *time.Time        `json:"issue_date,omitempty"`
	DueDate        *time.Time        `json:"due_date,omitempty"`
	Metadata       datatypes.JSONMap `json:"metadata,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// allowedTransitions is the invoice lifecycle. PAID and VOID are terminal.
var allowedTransitions = map[string][]string{
	StatusDraft:   {StatusSent},
	StatusSent:    {StatusUnpaid, StatusPartial, StatusPaid, StatusVoid},
	StatusUnpaid:  {StatusPartial, StatusPaid, StatusVoid},
	StatusPartial: {StatusPaid, StatusVoid},
	StatusPaid:    {},
	StatusVoid:    {},
}

// CanTransition reports whether an invoice may move between the two
// statuses.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the known invoice statuses.
func ValidStatus(s string) bool {
	_, ok := allowedTransitions[s]
	return ok
}

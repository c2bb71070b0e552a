package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// TimeEntry records billable work. DurationMinutes is 0 when the entry is
// derived from its start/stop timestamps; HourlyRateCents 0 means the
// workspace default applies at valuation time. An entry is unbilled while
// InvoiceID is NULL and it is not archived.
type TimeEntry struct {
	ID              snowflake.ID  `json:"id" gorm:"primaryKey"`
	OwnerID         snowflake.ID  `json:"owner_id" gorm:"index"`
	EstateID        snowflake.ID  `json:"estate_id" gorm:"index"`
	Description     string        `json:"description"`
	DurationMinutes int64         `json:"duration_minutes"`
	StartedAt       *time.Time    `json:"started_at,omitempty"`
	StoppedAt       *time.Time    `json:"stopped_at,omitempty"`
	HourlyRateCents int64         `json:"hourly_rate_cents"`
	InvoiceID       *snowflake.ID `json:"invoice_id,omitempty" gorm:"index"`
	Archived        bool          `json:"archived"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

// Unbilled reports whether the entry still counts toward unbilled work.
func (e TimeEntry) Unbilled() bool {
	return e.InvoiceID == nil && !e.Archived
}

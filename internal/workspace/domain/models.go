package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Settings holds per-owner workspace defaults. A row is created lazily on
// first update; readers fall back to built-in defaults when none exists.
type Settings struct {
	OwnerID                snowflake.ID `json:"owner_id" gorm:"primaryKey"`
	FirmName               string       `json:"firm_name"`
	DefaultCurrency        string       `json:"default_currency"`
	DefaultHourlyRateCents int64        `json:"default_hourly_rate_cents"`
	CreatedAt              time.Time    `json:"created_at"`
	UpdatedAt              time.Time    `json:"updated_at"`
}

func (Settings) TableName() string {
	return "workspace_settings"
}

const (
	DefaultCurrency        = "USD"
	DefaultHourlyRateCents = int64(0)
)

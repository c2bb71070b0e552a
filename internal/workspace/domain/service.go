package domain

import (
	"context"
	"errors"
)

type UpdateSettingsRequest struct {
	FirmName               *string `json:"firm_name"`
	DefaultCurrency        *string `json:"default_currency"`
	DefaultHourlyRateCents *int64  `json:"default_hourly_rate_cents"`
}

type Service interface {
	// GetSettings returns the owner's settings, with defaults applied
	// when no row has been written yet.
	GetSettings(ctx context.Context) (Settings, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (Settings, error)
}

var (
	ErrMissingOwner      = errors.New("missing_owner")
	ErrInvalidCurrency   = errors.New("invalid_currency")
	ErrInvalidHourlyRate = errors.New("invalid_hourly_rate")
)

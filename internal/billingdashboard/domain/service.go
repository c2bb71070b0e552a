package domain

import (
	"context"
	"errors"
)

type Service interface {
	// GetOverview aggregates invoices, unbilled time, and estate labels
	// for every estate the tenant owns or collaborates on. Any storage
	// failure fails the whole request; partial financials are never
	// served.
	GetOverview(ctx context.Context) (Overview, error)
}

var ErrInvalidTenant = errors.New("invalid_tenant")

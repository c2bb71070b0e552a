package service

import (
	"context"
	"strings"

	"github.com/legatepro/legatepro/internal/clock"
	"github.com/legatepro/legatepro/internal/tenantctx"
	"github.com/legatepro/legatepro/internal/workspace/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("workspace.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) GetSettings(ctx context.Context) (domain.Settings, error) {
	ownerID, ok := tenantctx.OwnerIDFromContext(ctx)
	if !ok {
		return domain.Settings{}, domain.ErrMissingOwner
	}

	settings, err := s.repo.FindSettings(ctx, s.db, ownerID)
	if err != nil {
		return domain.Settings{}, err
	}
	if settings == nil {
		return domain.Settings{
			OwnerID:                ownerID,
			DefaultCurrency:        domain.DefaultCurrency,
			DefaultHourlyRateCents: domain.DefaultHourlyRateCents,
		}, nil
	}
	if settings.DefaultCurrency == "" {
		settings.DefaultCurrency = domain.DefaultCurrency
	}
	return *settings, nil
}

func (s *Service) UpdateSettings(ctx context.Context, req domain.UpdateSettingsRequest) (domain.Settings, error) {
	current, err := s.GetSettings(ctx)
	if err != nil {
		return domain.Settings{}, err
	}

	if req.FirmName != nil {
		current.FirmName = strings.TrimSpace(*req.FirmName)
	}
	if req.DefaultCurrency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.DefaultCurrency))
		if len(currency) != 3 {
			return domain.Settings{}, domain.ErrInvalidCurrency
		}
		current.DefaultCurrency = currency
	}
	if req.DefaultHourlyRateCents != nil {
		if *req.DefaultHourlyRateCents < 0 {
			return domain.Settings{}, domain.ErrInvalidHourlyRate
		}
		current.DefaultHourlyRateCents = *req.DefaultHourlyRateCents
	}

	now := s.clock.Now()
	if current.CreatedAt.IsZero() {
		current.CreatedAt = now
	}
	current.UpdatedAt = now

	if err := s.repo.UpsertSettings(ctx, s.db, &current); err != nil {
		return domain.Settings{}, err
	}

	s.log.Info("workspace settings updated", zap.String("owner_id", current.OwnerID.String()))
	return current, nil
}

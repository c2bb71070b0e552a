package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/legatepro/legatepro/internal/activity/domain"
	"github.com/legatepro/legatepro/internal/clock"
	estatedomain "github.com/legatepro/legatepro/internal/estate/domain"
	invoicedomain "github.com/legatepro/legatepro/internal/invoice/domain"
	"github.com/legatepro/legatepro/internal/tenantctx"
	"github.com/legatepro/legatepro/internal/timeentry/domain"
	"github.com/legatepro/legatepro/pkg/db/option"
	"github.com/legatepro/legatepro/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Estate   estatedomain.Service
	Invoice  invoicedomain.Service
	Activity activitydomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	estate   estatedomain.Service
	invoice  invoicedomain.Service
	activity activitydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("timeentry.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		estate:   p.Estate,
		invoice:  p.Invoice,
		activity: p.Activity,
	}
}

func (s *Service) Log(ctx context.Context, req domain.LogRequest) (domain.TimeEntry, error) {
	ownerID, ok := tenantctx.OwnerIDFromContext(ctx)
	if !ok {
		return domain.TimeEntry{}, domain.ErrMissingOwner
	}
	if req.DurationMinutes < 0 {
		return domain.TimeEntry{}, domain.ErrInvalidDuration
	}
	if req.HourlyRateCents < 0 {
		return domain.TimeEntry{}, domain.ErrInvalidRate
	}
	if req.DurationMinutes == 0 {
		if req.StartedAt == nil || req.StoppedAt == nil {
			return domain.TimeEntry{}, domain.ErrMissingDuration
		}
		if req.StoppedAt.Before(*req.StartedAt) {
			return domain.TimeEntry{}, domain.ErrInvalidDuration
		}
	}

	estate, err := s.estate.GetByID(ctx, req.EstateID)
	if err != nil {
		if errors.Is(err, estatedomain.ErrEstateNotFound) {
			return domain.TimeEntry{}, domain.ErrEstateNotFound
		}
		return domain.TimeEntry{}, err
	}
	if estate.OwnerID != ownerID {
		return domain.TimeEntry{}, domain.ErrEstateNotFound
	}

	now := s.clock.Now()
	entry := domain.TimeEntry{
		ID:              s.genID.Generate(),
		OwnerID:         ownerID,
		EstateID:        req.EstateID,
		Description:     strings.TrimSpace(req.Description),
		DurationMinutes: req.DurationMinutes,
		StartedAt:       req.StartedAt,
		StoppedAt:       req.StoppedAt,
		HourlyRateCents: req.HourlyRateCents,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Insert(ctx, s.db, &entry); err != nil {
		return domain.TimeEntry{}, err
	}

	s.recordActivity(ctx, entry.EstateID, "time_entry.logged", entry.ID)
	return entry, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]*domain.TimeEntry, *pagination.PageInfo, error) {
	ownerID, ok := tenantctx.OwnerIDFromContext(ctx)
	if !ok {
		return nil, nil, domain.ErrMissingOwner
	}

	page := pagination.Pagination{PageSize: 25}
	if filter.Page != nil {
		page = *filter.Page
	}
	if page.PageSize <= 0 {
		page.PageSize = 25
	}

	entries, err := s.repo.List(ctx, s.db, ownerID, filter, option.ApplyPagination(page))
	if err != nil {
		return nil, nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(entries, page.PageSize, func(e *domain.TimeEntry) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        e.ID.String(),
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		})
		return token
	})
	if pageInfo.HasMore {
		entries = entries[:page.PageSize]
	}

	return entries, pageInfo, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.TimeEntry, error) {
	ownerID, ok := tenantctx.OwnerIDFromContext(ctx)
	if !ok {
		return domain.TimeEntry{}, domain.ErrMissingOwner
	}

	entry, err := s.repo.FindByID(ctx, s.db, id, ownerID)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	if entry == nil {
		return domain.TimeEntry{}, domain.ErrEntryNotFound
	}
	return *entry, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateRequest) (domain.TimeEntry, error) {
	entry, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	if entry.InvoiceID != nil {
		return domain.TimeEntry{}, domain.ErrAlreadyBilled
	}
	if entry.Archived {
		return domain.TimeEntry{}, domain.ErrEntryArchived
	}

	if req.Description != nil {
		entry.Description = strings.TrimSpace(*req.Description)
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < 0 {
			return domain.TimeEntry{}, domain.ErrInvalidDuration
		}
		entry.DurationMinutes = *req.DurationMinutes
	}
	if req.StartedAt != nil {
		entry.StartedAt = req.StartedAt
	}
	if req.StoppedAt != nil {
		entry.StoppedAt = req.StoppedAt
	}
	if entry.StartedAt != nil && entry.StoppedAt != nil && entry.StoppedAt.Before(*entry.StartedAt) {
		return domain.TimeEntry{}, domain.ErrInvalidDuration
	}
	if req.HourlyRateCents != nil {
		if *req.HourlyRateCents < 0 {
			return domain.TimeEntry{}, domain.ErrInvalidRate
		}
		entry.HourlyRateCents = *req.HourlyRateCents
	}

	entry.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &entry); err != nil {
		return domain.TimeEntry{}, err
	}

	s.recordActivity(ctx, entry.EstateID, "time_entry.updated", entry.ID)
	return entry, nil
}

func (s *Service) Archive(ctx context.Context, id snowflake.ID) (domain.TimeEntry, error) {
	entry, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	if entry.Archived {
		return domain.TimeEntry{}, domain.ErrEntryArchived
	}

	entry.Archived = true
	entry.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &entry); err != nil {
		return domain.TimeEntry{}, err
	}

	s.recordActivity(ctx, entry.EstateID, "time_entry.archived", entry.ID)
	return entry, nil
}

func (s *Service) AttachToInvoice(ctx context.Context, id, invoiceID snowflake.ID) (domain.TimeEntry, error) {
	entry, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.TimeEntry{}, err
	}
	if entry.InvoiceID != nil {
		return domain.TimeEntry{}, domain.ErrAlreadyBilled
	}
	if entry.Archived {
		return domain.TimeEntry{}, domain.ErrEntryArchived
	}

	if _, err := s.invoice.GetByID(ctx, invoiceID); err != nil {
		if errors.Is(err, invoicedomain.ErrInvoiceNotFound) {
			return domain.TimeEntry{}, domain.ErrInvoiceNotFound
		}
		return domain.TimeEntry{}, err
	}

	entry.InvoiceID = &invoiceID
	entry.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &entry); err != nil {
		return domain.TimeEntry{}, err
	}

	s.recordActivity(ctx, entry.EstateID, "time_entry.billed", entry.ID)
	s.log.Info("time entry attached to invoice",
		zap.String("time_entry_id", entry.ID.String()),
		zap.String("invoice_id", invoiceID.String()),
	)
	return entry, nil
}

func (s *Service) recordActivity(ctx context.Context, estateID snowflake.ID, action string, targetID snowflake.ID) {
	err := s.activity.Record(ctx, activitydomain.RecordRequest{
		EstateID:   &estateID,
		Action:     action,
		TargetType: "time_entry",
		TargetID:   targetID,
	})
	if err != nil {
		s.log.Warn("record activity", zap.String("action", action), zap.Error(err))
	}
}

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
	"github.com/legatepro/legatepro/internal/invoice/domain"
	"github.com/legatepro/legatepro/internal/tenantctx"
	workspacedomain "github.com/legatepro/legatepro/internal/workspace/domain"
	"github.com/legatepro/legatepro/pkg/db/option"
	"github.com/legatepro/legatepro/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      domain.Repository
	Estate    estatedomain.Service
	Workspace workspacedomain.Service
	Activity  activitydomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	estate    estatedomain.Service
	workspace workspacedomain.Service
	activity  activitydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("invoice.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		estate:    p.Estate,
		workspace: p.Workspace,
		activity:  p.Activity,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvoiceRequest) (domain.Invoice, error) {
	ownerID, ok := tenantctx.OwnerIDFromContext(ctx)
	if !ok {
		return domain.Invoice{}, domain.ErrMissingOwner
	}
	if req.AmountCents < 0 {
		return domain.Invoice{}, domain.ErrInvalidAmount
	}

	estate, err := s.estate.GetByID(ctx, req.EstateID)
	if err != nil {
		if errors.Is(err, estatedomain.ErrEstateNotFound) {
			return domain.Invoice{}, domain.ErrEstateNotFound
		}
		return domain.Invoice{}, err
	}
	if estate.OwnerID != ownerID {
		return domain.Invoice{}, domain.ErrEstateNotFound
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		settings, err := s.workspace.GetSettings(ctx)
		if err != nil {
			return domain.Invoice{}, err
		}
		currency = settings.DefaultCurrency
	}

	now := s.clock.Now()
	amount := req.AmountCents
	invoice := domain.Invoice{
		ID:            s.genID.Generate(),
		OwnerID:       ownerID,
		EstateID:      req.EstateID,
		InvoiceNumber: strings.TrimSpace(req.InvoiceNumber),
		Status:        domain.StatusDraft,
		AmountCents:   &amount,
		Currency:      currency,
		IssueDate:     req.IssueDate,
		DueDate:       req.DueDate,
		Metadata:      req.Metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, s.db, &invoice); err != nil {
		return domain.Invoice{}, err
	}

	s.recordActivity(ctx, invoice.EstateID, "invoice.created", invoice.ID)
	s.log.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.Int64("amount_cents", amount),
	)
	return invoice, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Invoice, *pagination.PageInfo, error) {
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

	invoices, err := s.repo.List(ctx, s.db, ownerID, filter, option.ApplyPagination(page))
	if err != nil {
		return nil, nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(invoices, page.PageSize, func(inv *domain.Invoice) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        inv.ID.String(),
			CreatedAt: inv.CreatedAt.UTC().Format(time.RFC3339),
		})
		return token
	})
	if pageInfo.HasMore {
		invoices = invoices[:page.PageSize]
	}

	return invoices, pageInfo, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Invoice, error) {
	ownerID, ok := tenantctx.OwnerIDFromContext(ctx)
	if !ok {
		return domain.Invoice{}, domain.ErrMissingOwner
	}

	invoice, err := s.repo.FindByID(ctx, s.db, id, ownerID)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice == nil {
		return domain.Invoice{}, domain.ErrInvoiceNotFound
	}
	return *invoice, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateInvoiceRequest) (domain.Invoice, error) {
	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if invoice.Status != domain.StatusDraft {
		return domain.Invoice{}, domain.ErrNotDraft
	}

	if req.InvoiceNumber != nil {
		invoice.InvoiceNumber = strings.TrimSpace(*req.InvoiceNumber)
	}
	if req.AmountCents != nil {
		if *req.AmountCents < 0 {
			return domain.Invoice{}, domain.ErrInvalidAmount
		}
		amount := *req.AmountCents
		invoice.AmountCents = &amount
	}
	if req.Currency != nil {
		invoice.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.IssueDate != nil {
		invoice.IssueDate = req.IssueDate
	}
	if req.DueDate != nil {
		invoice.DueDate = req.DueDate
	}
	if req.Metadata != nil {
		invoice.Metadata = req.Metadata
	}

	invoice.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &invoice); err != nil {
		return domain.Invoice{}, err
	}

	s.recordActivity(ctx, invoice.EstateID, "invoice.updated", invoice.ID)
	return invoice, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id snowflake.ID, status string) (domain.Invoice, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !domain.ValidStatus(status) {
		return domain.Invoice{}, domain.ErrInvalidStatus
	}

	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Invoice{}, err
	}
	if !domain.CanTransition(invoice.Status, status) {
		return domain.Invoice{}, domain.ErrTransitionNotAllowed
	}

	now := s.clock.Now()
	affected, err := s.repo.UpdateStatus(ctx, s.db, id, invoice.Status, status, now)
	if err != nil {
		return domain.Invoice{}, err
	}
	if affected == 0 {
		// Lost a race with a concurrent transition.
		return domain.Invoice{}, domain.ErrTransitionNotAllowed
	}

	from := invoice.Status
	invoice.Status = status
	invoice.UpdatedAt = now

	s.recordActivity(ctx, invoice.EstateID, "invoice.status_changed", invoice.ID)
	s.log.Info("invoice status changed",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("from", from),
		zap.String("to", status),
	)
	return invoice, nil
}

func (s *Service) Void(ctx context.Context, id snowflake.ID) (domain.Invoice, error) {
	return s.UpdateStatus(ctx, id, domain.StatusVoid)
}

func (s *Service) recordActivity(ctx context.Context, estateID snowflake.ID, action string, targetID snowflake.ID) {
	err := s.activity.Record(ctx, activitydomain.RecordRequest{
		EstateID:   &estateID,
		Action:     action,
		TargetType: "invoice",
		TargetID:   targetID,
	})
	if err != nil {
		s.log.Warn("record activity", zap.String("action", action), zap.Error(err))
	}
}

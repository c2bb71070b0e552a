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
	"github.com/legatepro/legatepro/internal/expense/domain"
	"github.com/legatepro/legatepro/internal/tenantctx"
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
	Activity activitydomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	estate   estatedomain.Service
	activity activitydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("expense.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		estate:   p.Estate,
		activity: p.Activity,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateExpenseRequest) (domain.Expense, error) {
	ownerID, ok := tenantctx.OwnerIDFromContext(ctx)
	if !ok {
		return domain.Expense{}, domain.ErrMissingOwner
	}
	if req.AmountCents < 0 {
		return domain.Expense{}, domain.ErrInvalidAmount
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.Expense{}, domain.ErrMissingDescription
	}

	estate, err := s.estate.GetByID(ctx, req.EstateID)
	if err != nil {
		if errors.Is(err, estatedomain.ErrEstateNotFound) {
			return domain.Expense{}, domain.ErrEstateNotFound
		}
		return domain.Expense{}, err
	}
	if estate.OwnerID != ownerID {
		return domain.Expense{}, domain.ErrEstateNotFound
	}

	now := s.clock.Now()
	expense := domain.Expense{
		ID:          s.genID.Generate(),
		OwnerID:     ownerID,
		EstateID:    req.EstateID,
		Description: description,
		AmountCents: req.AmountCents,
		Category:    strings.TrimSpace(req.Category),
		IncurredOn:  req.IncurredOn,
		Billable:    req.Billable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &expense); err != nil {
		return domain.Expense{}, err
	}

	s.recordActivity(ctx, expense.EstateID, "expense.created", expense.ID)
	return expense, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Expense, *pagination.PageInfo, error) {
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

	expenses, err := s.repo.List(ctx, s.db, ownerID, filter, option.ApplyPagination(page))
	if err != nil {
		return nil, nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(expenses, page.PageSize, func(e *domain.Expense) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        e.ID.String(),
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		})
		return token
	})
	if pageInfo.HasMore {
		expenses = expenses[:page.PageSize]
	}

	return expenses, pageInfo, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Expense, error) {
	ownerID, ok := tenantctx.OwnerIDFromContext(ctx)
	if !ok {
		return domain.Expense{}, domain.ErrMissingOwner
	}

	expense, err := s.repo.FindByID(ctx, s.db, id, ownerID)
	if err != nil {
		return domain.Expense{}, err
	}
	if expense == nil {
		return domain.Expense{}, domain.ErrExpenseNotFound
	}
	return *expense, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateExpenseRequest) (domain.Expense, error) {
	expense, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Expense{}, err
	}
	if expense.InvoiceID != nil {
		return domain.Expense{}, domain.ErrExpenseBilled
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return domain.Expense{}, domain.ErrMissingDescription
		}
		expense.Description = description
	}
	if req.AmountCents != nil {
		if *req.AmountCents < 0 {
			return domain.Expense{}, domain.ErrInvalidAmount
		}
		expense.AmountCents = *req.AmountCents
	}
	if req.Category != nil {
		expense.Category = strings.TrimSpace(*req.Category)
	}
	if req.IncurredOn != nil {
		expense.IncurredOn = req.IncurredOn
	}
	if req.Billable != nil {
		expense.Billable = *req.Billable
	}

	expense.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &expense); err != nil {
		return domain.Expense{}, err
	}

	s.recordActivity(ctx, expense.EstateID, "expense.updated", expense.ID)
	return expense, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	expense, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense.InvoiceID != nil {
		return domain.ErrExpenseBilled
	}

	ownerID, _ := tenantctx.OwnerIDFromContext(ctx)
	affected, err := s.repo.Delete(ctx, s.db, id, ownerID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrExpenseNotFound
	}

	s.recordActivity(ctx, expense.EstateID, "expense.deleted", expense.ID)
	return nil
}

func (s *Service) recordActivity(ctx context.Context, estateID snowflake.ID, action string, targetID snowflake.ID) {
	err := s.activity.Record(ctx, activitydomain.RecordRequest{
		EstateID:   &estateID,
		Action:     action,
		TargetType: "expense",
		TargetID:   targetID,
	})
	if err != nil {
		s.log.Warn("record activity", zap.String("action", action), zap.Error(err))
	}
}

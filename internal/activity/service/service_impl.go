package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/internal/activity/domain"
	"github.com/legatepro/legatepro/internal/clock"
	"github.com/legatepro/legatepro/internal/tenantctx"
	"github.com/legatepro/legatepro/pkg/db/option"
	"github.com/legatepro/legatepro/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("activity.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Record(ctx context.Context, req domain.RecordRequest) error {
	ownerID, ok := tenantctx.OwnerIDFromContext(ctx)
	if !ok {
		return domain.ErrMissingOwner
	}
	action := strings.TrimSpace(req.Action)
	if action == "" {
		return domain.ErrMissingAction
	}

	activity := domain.Activity{
		ID:         s.genID.Generate(),
		OwnerID:    ownerID,
		EstateID:   req.EstateID,
		ActorID:    req.ActorID,
		Action:     action,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Metadata:   req.Metadata,
		CreatedAt:  s.clock.Now(),
	}
	return s.repo.Insert(ctx, s.db, &activity)
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Activity, *pagination.PageInfo, error) {
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

	activities, err := s.repo.List(ctx, s.db, ownerID, filter, option.ApplyPagination(page))
	if err != nil {
		return nil, nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(activities, page.PageSize, func(a *domain.Activity) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        a.ID.String(),
			CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		})
		return token
	})
	if pageInfo.HasMore {
		activities = activities[:page.PageSize]
	}

	return activities, pageInfo, nil
}

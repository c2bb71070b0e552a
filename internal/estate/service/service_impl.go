package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	activitydomain "github.com/legatepro/legatepro/internal/activity/domain"
	"github.com/legatepro/legatepro/internal/clock"
	"github.com/legatepro/legatepro/internal/estate/domain"
	"github.com/legatepro/legatepro/internal/tenantctx"
	"github.com/legatepro/legatepro/pkg/db"
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
	Activity activitydomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	activity activitydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("estate.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		activity: p.Activity,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateEstateRequest) (domain.Estate, error) {
	ownerID, ok := tenantctx.OwnerIDFromContext(ctx)
	if !ok {
		return domain.Estate{}, domain.ErrMissingOwner
	}

	displayName := strings.TrimSpace(req.DisplayName)
	caseName := strings.TrimSpace(req.CaseName)
	if displayName == "" && caseName == "" {
		return domain.Estate{}, domain.ErrMissingDisplayName
	}

	now := s.clock.Now()
	estate := domain.Estate{
		ID:           s.genID.Generate(),
		OwnerID:      ownerID,
		DisplayName:  displayName,
		CaseName:     caseName,
		CaseNumber:   strings.TrimSpace(req.CaseNumber),
		DecedentName: strings.TrimSpace(req.DecedentName),
		Status:       domain.StatusOpen,
		DateOfDeath:  req.DateOfDeath,
		Metadata:     req.Metadata,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, s.db, &estate); err != nil {
		return domain.Estate{}, err
	}

	s.recordActivity(ctx, estate.ID, "estate.created", estate.ID)
	s.log.Info("estate created",
		zap.String("estate_id", estate.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)
	return estate, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Estate, *pagination.PageInfo, error) {
	userID, ok := tenantctx.OwnerIDFromContext(ctx)
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

	estates, err := s.repo.List(ctx, s.db, userID, filter, option.ApplyPagination(page))
	if err != nil {
		return nil, nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(estates, page.PageSize, func(e *domain.Estate) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        e.ID.String(),
			CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		})
		return token
	})
	if pageInfo.HasMore {
		estates = estates[:page.PageSize]
	}

	return estates, pageInfo, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Estate, error) {
	userID, ok := tenantctx.OwnerIDFromContext(ctx)
	if !ok {
		return domain.Estate{}, domain.ErrMissingOwner
	}

	estate, err := s.repo.FindByID(ctx, s.db, id, userID)
	if err != nil {
		return domain.Estate{}, err
	}
	if estate == nil {
		return domain.Estate{}, domain.ErrEstateNotFound
	}
	return *estate, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateEstateRequest) (domain.Estate, error) {
	estate, err := s.requireOwned(ctx, id)
	if err != nil {
		return domain.Estate{}, err
	}

	if req.DisplayName != nil {
		estate.DisplayName = strings.TrimSpace(*req.DisplayName)
	}
	if req.CaseName != nil {
		estate.CaseName = strings.TrimSpace(*req.CaseName)
	}
	if req.CaseNumber != nil {
		estate.CaseNumber = strings.TrimSpace(*req.CaseNumber)
	}
	if req.DecedentName != nil {
		estate.DecedentName = strings.TrimSpace(*req.DecedentName)
	}
	if req.DateOfDeath != nil {
		estate.DateOfDeath = req.DateOfDeath
	}
	if req.Metadata != nil {
		estate.Metadata = req.Metadata
	}
	if estate.DisplayName == "" && estate.CaseName == "" {
		return domain.Estate{}, domain.ErrMissingDisplayName
	}

	estate.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &estate); err != nil {
		return domain.Estate{}, err
	}

	s.recordActivity(ctx, estate.ID, "estate.updated", estate.ID)
	return estate, nil
}

func (s *Service) Close(ctx context.Context, id snowflake.ID) (domain.Estate, error) {
	estate, err := s.requireOwned(ctx, id)
	if err != nil {
		return domain.Estate{}, err
	}
	if estate.Status == domain.StatusClosed {
		return domain.Estate{}, domain.ErrEstateClosed
	}

	estate.Status = domain.StatusClosed
	estate.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &estate); err != nil {
		return domain.Estate{}, err
	}

	s.recordActivity(ctx, estate.ID, "estate.closed", estate.ID)
	s.log.Info("estate closed", zap.String("estate_id", estate.ID.String()))
	return estate, nil
}

func (s *Service) AddCollaborator(ctx context.Context, estateID snowflake.ID, req domain.AddCollaboratorRequest) (domain.Collaborator, error) {
	estate, err := s.requireOwned(ctx, estateID)
	if err != nil {
		return domain.Collaborator{}, err
	}
	if req.UserID == estate.OwnerID {
		return domain.Collaborator{}, domain.ErrCollaboratorIsOwner
	}

	collaborator := domain.Collaborator{
		EstateID:  estateID,
		UserID:    req.UserID,
		Role:      strings.TrimSpace(req.Role),
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.InsertCollaborator(ctx, s.db, &collaborator); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Collaborator{}, domain.ErrCollaboratorExists
		}
		return domain.Collaborator{}, err
	}

	s.recordActivity(ctx, estateID, "estate.collaborator_added", req.UserID)
	return collaborator, nil
}

func (s *Service) RemoveCollaborator(ctx context.Context, estateID, userID snowflake.ID) error {
	if _, err := s.requireOwned(ctx, estateID); err != nil {
		return err
	}

	affected, err := s.repo.DeleteCollaborator(ctx, s.db, estateID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrCollaboratorNotFound
	}

	s.recordActivity(ctx, estateID, "estate.collaborator_removed", userID)
	return nil
}

// requireOwned loads the estate and rejects collaborators; only the owner
// may mutate an estate.
func (s *Service) requireOwned(ctx context.Context, id snowflake.ID) (domain.Estate, error) {
	userID, ok := tenantctx.OwnerIDFromContext(ctx)
	if !ok {
		return domain.Estate{}, domain.ErrMissingOwner
	}

	estate, err := s.repo.FindByID(ctx, s.db, id, userID)
	if err != nil {
		return domain.Estate{}, err
	}
	if estate == nil {
		return domain.Estate{}, domain.ErrEstateNotFound
	}
	if estate.OwnerID != userID {
		return domain.Estate{}, domain.ErrCollaboratorNotAllowed
	}
	return *estate, nil
}

func (s *Service) recordActivity(ctx context.Context, estateID snowflake.ID, action string, targetID snowflake.ID) {
	err := s.activity.Record(ctx, activitydomain.RecordRequest{
		EstateID:   &estateID,
		Action:     action,
		TargetType: "estate",
		TargetID:   targetID,
	})
	if err != nil {
		s.log.Warn("record activity", zap.String("action", action), zap.Error(err))
	}
}

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
	"github.com/legatepro/legatepro/internal/task/domain"
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
		log:      p.Log.Named("task.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		estate:   p.Estate,
		activity: p.Activity,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateTaskRequest) (domain.Task, error) {
	ownerID, ok := tenantctx.OwnerIDFromContext(ctx)
	if !ok {
		return domain.Task{}, domain.ErrMissingOwner
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Task{}, domain.ErrMissingTitle
	}

	estate, err := s.estate.GetByID(ctx, req.EstateID)
	if err != nil {
		if errors.Is(err, estatedomain.ErrEstateNotFound) {
			return domain.Task{}, domain.ErrEstateNotFound
		}
		return domain.Task{}, err
	}
	if estate.OwnerID != ownerID {
		return domain.Task{}, domain.ErrEstateNotFound
	}

	now := s.clock.Now()
	task := domain.Task{
		ID:        s.genID.Generate(),
		OwnerID:   ownerID,
		EstateID:  req.EstateID,
		Title:     title,
		Notes:     strings.TrimSpace(req.Notes),
		Status:    domain.StatusOpen,
		DueDate:   req.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, s.db, &task); err != nil {
		return domain.Task{}, err
	}

	s.recordActivity(ctx, task.EstateID, "task.created", task.ID)
	return task, nil
}

func (s *Service) List(ctx context.Context, filter domain.ListFilter) ([]*domain.Task, *pagination.PageInfo, error) {
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

	tasks, err := s.repo.List(ctx, s.db, ownerID, filter, option.ApplyPagination(page))
	if err != nil {
		return nil, nil, err
	}

	pageInfo := pagination.BuildCursorPageInfo(tasks, page.PageSize, func(task *domain.Task) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{
			ID:        task.ID.String(),
			CreatedAt: task.CreatedAt.UTC().Format(time.RFC3339),
		})
		return token
	})
	if pageInfo.HasMore {
		tasks = tasks[:page.PageSize]
	}

	return tasks, pageInfo, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Task, error) {
	ownerID, ok := tenantctx.OwnerIDFromContext(ctx)
	if !ok {
		return domain.Task{}, domain.ErrMissingOwner
	}

	task, err := s.repo.FindByID(ctx, s.db, id, ownerID)
	if err != nil {
		return domain.Task{}, err
	}
	if task == nil {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return *task, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateTaskRequest) (domain.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Task{}, domain.ErrMissingTitle
		}
		task.Title = title
	}
	if req.Notes != nil {
		task.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.Status != nil {
		status := strings.ToUpper(strings.TrimSpace(*req.Status))
		if !domain.ValidStatus(status) {
			return domain.Task{}, domain.ErrInvalidStatus
		}
		if status == domain.StatusDone && task.Status != domain.StatusDone {
			now := s.clock.Now()
			task.CompletedAt = &now
		}
		if status != domain.StatusDone {
			task.CompletedAt = nil
		}
		task.Status = status
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	task.UpdatedAt = s.clock.Now()
	if err := s.repo.Update(ctx, s.db, &task); err != nil {
		return domain.Task{}, err
	}

	s.recordActivity(ctx, task.EstateID, "task.updated", task.ID)
	return task, nil
}

func (s *Service) Complete(ctx context.Context, id snowflake.ID) (domain.Task, error) {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if task.Status == domain.StatusDone {
		return domain.Task{}, domain.ErrTaskAlreadyDone
	}

	now := s.clock.Now()
	task.Status = domain.StatusDone
	task.CompletedAt = &now
	task.UpdatedAt = now
	if err := s.repo.Update(ctx, s.db, &task); err != nil {
		return domain.Task{}, err
	}

	s.recordActivity(ctx, task.EstateID, "task.completed", task.ID)
	return task, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	task, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	ownerID, _ := tenantctx.OwnerIDFromContext(ctx)
	affected, err := s.repo.Delete(ctx, s.db, id, ownerID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}

	s.recordActivity(ctx, task.EstateID, "task.deleted", task.ID)
	return nil
}

func (s *Service) recordActivity(ctx context.Context, estateID snowflake.ID, action string, targetID snowflake.ID) {
	err := s.activity.Record(ctx, activitydomain.RecordRequest{
		EstateID:   &estateID,
		Action:     action,
		TargetType: "task",
		TargetID:   targetID,
	})
	if err != nil {
		s.log.Warn("record activity", zap.String("action", action), zap.Error(err))
	}
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	activitydomain "github.com/legatepro/legatepro/internal/activity/domain"
	activityrepo "github.com/legatepro/legatepro/internal/activity/repository"
	activityservice "github.com/legatepro/legatepro/internal/activity/service"
	"github.com/legatepro/legatepro/internal/clock"
	"github.com/legatepro/legatepro/internal/estate/domain"
	"github.com/legatepro/legatepro/internal/estate/repository"
	"github.com/legatepro/legatepro/internal/tenantctx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, activitydomain.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Estate{}, &domain.Collaborator{}, &activitydomain.Activity{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fc := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	activitySvc := activityservice.New(activityservice.Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fc,
		Repo:  activityrepo.Provide(),
	})
	svc := New(Params{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    fc,
		Repo:     repository.Provide(),
		Activity: activitySvc,
	})
	return svc, activitySvc
}

func ownerCtx(id int64) context.Context {
	return tenantctx.WithOwnerID(context.Background(), snowflake.ID(id))
}

func TestCreateAndGet(t *testing.T) {
	svc, activitySvc := newTestService(t)
	ctx := ownerCtx(1)

	created, err := svc.Create(ctx, domain.CreateEstateRequest{
		DisplayName:  "Estate of Jane Doe",
		CaseNumber:   "PR-2026-0042",
		DecedentName: "Jane Doe",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusOpen, created.Status)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Estate of Jane Doe", got.DisplayName)

	feed, _, err := activitySvc.List(ctx, activitydomain.ListFilter{Action: "estate.created"})
	require.NoError(t, err)
	require.Len(t, feed, 1)
}

func TestCreateRequiresName(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(ownerCtx(1), domain.CreateEstateRequest{DecedentName: "Jane Doe"})
	require.ErrorIs(t, err, domain.ErrMissingDisplayName)
}

func TestGetByIDScopedToOwnerOrCollaborator(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(ownerCtx(1), domain.CreateEstateRequest{DisplayName: "Estate A"})
	require.NoError(t, err)

	_, err = svc.GetByID(ownerCtx(2), created.ID)
	require.ErrorIs(t, err, domain.ErrEstateNotFound)

	_, err = svc.AddCollaborator(ownerCtx(1), created.ID, domain.AddCollaboratorRequest{UserID: 2, Role: "paralegal"})
	require.NoError(t, err)

	got, err := svc.GetByID(ownerCtx(2), created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}

func TestCollaboratorCannotMutate(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(ownerCtx(1), domain.CreateEstateRequest{DisplayName: "Estate A"})
	require.NoError(t, err)
	_, err = svc.AddCollaborator(ownerCtx(1), created.ID, domain.AddCollaboratorRequest{UserID: 2})
	require.NoError(t, err)

	name := "Hijacked"
	_, err = svc.Update(ownerCtx(2), created.ID, domain.UpdateEstateRequest{DisplayName: &name})
	require.ErrorIs(t, err, domain.ErrCollaboratorNotAllowed)

	_, err = svc.Close(ownerCtx(2), created.ID)
	require.ErrorIs(t, err, domain.ErrCollaboratorNotAllowed)
}

func TestUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := ownerCtx(1)

	created, err := svc.Create(ctx, domain.CreateEstateRequest{DisplayName: "Before"})
	require.NoError(t, err)

	after := "After"
	caseNo := "PR-9"
	updated, err := svc.Update(ctx, created.ID, domain.UpdateEstateRequest{
		DisplayName: &after,
		CaseNumber:  &caseNo,
	})
	require.NoError(t, err)
	require.Equal(t, "After", updated.DisplayName)
	require.Equal(t, "PR-9", updated.CaseNumber)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "After", got.DisplayName)
}

func TestClose(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := ownerCtx(1)

	created, err := svc.Create(ctx, domain.CreateEstateRequest{DisplayName: "Estate A"})
	require.NoError(t, err)

	closed, err := svc.Close(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusClosed, closed.Status)

	_, err = svc.Close(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrEstateClosed)
}

func TestCollaboratorLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := ownerCtx(1)

	created, err := svc.Create(ctx, domain.CreateEstateRequest{DisplayName: "Estate A"})
	require.NoError(t, err)

	_, err = svc.AddCollaborator(ctx, created.ID, domain.AddCollaboratorRequest{UserID: 1})
	require.ErrorIs(t, err, domain.ErrCollaboratorIsOwner)

	_, err = svc.AddCollaborator(ctx, created.ID, domain.AddCollaboratorRequest{UserID: 2, Role: "attorney"})
	require.NoError(t, err)

	_, err = svc.AddCollaborator(ctx, created.ID, domain.AddCollaboratorRequest{UserID: 2})
	require.ErrorIs(t, err, domain.ErrCollaboratorExists)

	require.NoError(t, svc.RemoveCollaborator(ctx, created.ID, 2))
	require.ErrorIs(t, svc.RemoveCollaborator(ctx, created.ID, 2), domain.ErrCollaboratorNotFound)
}

func TestListFiltersAndSearch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := ownerCtx(1)

	a, err := svc.Create(ctx, domain.CreateEstateRequest{DisplayName: "Estate of Jane Doe"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateEstateRequest{DisplayName: "Estate of John Roe"})
	require.NoError(t, err)
	_, err = svc.Close(ctx, a.ID)
	require.NoError(t, err)

	open, _, err := svc.List(ctx, domain.ListFilter{Status: domain.StatusOpen})
	require.NoError(t, err)
	require.Len(t, open, 1)
	require.Equal(t, "Estate of John Roe", open[0].DisplayName)

	found, _, err := svc.List(ctx, domain.ListFilter{Search: "Jane"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, a.ID, found[0].ID)
}

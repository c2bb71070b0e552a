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
	estatedomain "github.com/legatepro/legatepro/internal/estate/domain"
	estaterepo "github.com/legatepro/legatepro/internal/estate/repository"
	estateservice "github.com/legatepro/legatepro/internal/estate/service"
	"github.com/legatepro/legatepro/internal/task/domain"
	"github.com/legatepro/legatepro/internal/task/repository"
	"github.com/legatepro/legatepro/internal/tenantctx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	tasks   domain.Service
	estates estatedomain.Service
	clock   *clock.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Task{},
		&estatedomain.Estate{},
		&estatedomain.Collaborator{},
		&activitydomain.Activity{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fc := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	log := zap.NewNop()

	activitySvc := activityservice.New(activityservice.Params{
		DB: db, Log: log, GenID: node, Clock: fc, Repo: activityrepo.Provide(),
	})
	estateSvc := estateservice.New(estateservice.Params{
		DB: db, Log: log, GenID: node, Clock: fc, Repo: estaterepo.Provide(), Activity: activitySvc,
	})
	taskSvc := New(Params{
		DB: db, Log: log, GenID: node, Clock: fc,
		Repo: repository.Provide(), Estate: estateSvc, Activity: activitySvc,
	})
	return &fixture{tasks: taskSvc, estates: estateSvc, clock: fc}
}

func ownerCtx(id int64) context.Context {
	return tenantctx.WithOwnerID(context.Background(), snowflake.ID(id))
}

func (f *fixture) newEstate(t *testing.T, ctx context.Context) estatedomain.Estate {
	t.Helper()
	estate, err := f.estates.Create(ctx, estatedomain.CreateEstateRequest{DisplayName: "Estate of Jane Doe"})
	require.NoError(t, err)
	return estate
}

func TestCreateAndComplete(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	task, err := f.tasks.Create(ctx, domain.CreateTaskRequest{
		EstateID: estate.ID,
		Title:    "File inventory with court",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusOpen, task.Status)
	require.Nil(t, task.CompletedAt)

	done, err := f.tasks.Complete(ctx, task.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusDone, done.Status)
	require.NotNil(t, done.CompletedAt)
	require.Equal(t, f.clock.Now(), *done.CompletedAt)

	_, err = f.tasks.Complete(ctx, task.ID)
	require.ErrorIs(t, err, domain.ErrTaskAlreadyDone)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	_, err := f.tasks.Create(ctx, domain.CreateTaskRequest{EstateID: estate.ID, Title: "  "})
	require.ErrorIs(t, err, domain.ErrMissingTitle)

	_, err = f.tasks.Create(ctx, domain.CreateTaskRequest{EstateID: 999, Title: "x"})
	require.ErrorIs(t, err, domain.ErrEstateNotFound)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	task, err := f.tasks.Create(ctx, domain.CreateTaskRequest{EstateID: estate.ID, Title: "Notify heirs"})
	require.NoError(t, err)

	status := "in_progress"
	updated, err := f.tasks.Update(ctx, task.ID, domain.UpdateTaskRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, domain.StatusInProgress, updated.Status)

	bogus := "BLOCKED"
	_, err = f.tasks.Update(ctx, task.ID, domain.UpdateTaskRequest{Status: &bogus})
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	// Reopening a completed task clears completed_at.
	done := domain.StatusDone
	updated, err = f.tasks.Update(ctx, task.ID, domain.UpdateTaskRequest{Status: &done})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)

	open := domain.StatusOpen
	updated, err = f.tasks.Update(ctx, task.ID, domain.UpdateTaskRequest{Status: &open})
	require.NoError(t, err)
	require.Nil(t, updated.CompletedAt)
}

func TestListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	soon := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	later := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	a, err := f.tasks.Create(ctx, domain.CreateTaskRequest{EstateID: estate.ID, Title: "Due soon", DueDate: &soon})
	require.NoError(t, err)
	_, err = f.tasks.Create(ctx, domain.CreateTaskRequest{EstateID: estate.ID, Title: "Due later", DueDate: &later})
	require.NoError(t, err)
	_, err = f.tasks.Create(ctx, domain.CreateTaskRequest{EstateID: estate.ID, Title: "No due date"})
	require.NoError(t, err)

	cutoff := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	due, _, err := f.tasks.List(ctx, domain.ListFilter{DueBefore: &cutoff})
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, a.ID, due[0].ID)

	open, _, err := f.tasks.List(ctx, domain.ListFilter{Status: domain.StatusOpen})
	require.NoError(t, err)
	require.Len(t, open, 3)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	task, err := f.tasks.Create(ctx, domain.CreateTaskRequest{EstateID: estate.ID, Title: "x"})
	require.NoError(t, err)

	require.NoError(t, f.tasks.Delete(ctx, task.ID))
	require.ErrorIs(t, f.tasks.Delete(ctx, task.ID), domain.ErrTaskNotFound)
}

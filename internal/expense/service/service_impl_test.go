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
	"github.com/legatepro/legatepro/internal/expense/domain"
	"github.com/legatepro/legatepro/internal/expense/repository"
	"github.com/legatepro/legatepro/internal/tenantctx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	expenses domain.Service
	estates  estatedomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Expense{},
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
	expenseSvc := New(Params{
		DB: db, Log: log, GenID: node, Clock: fc,
		Repo: repository.Provide(), Estate: estateSvc, Activity: activitySvc,
	})
	return &fixture{expenses: expenseSvc, estates: estateSvc}
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

func TestCreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	created, err := f.expenses.Create(ctx, domain.CreateExpenseRequest{
		EstateID:    estate.ID,
		Description: "Court filing fee",
		AmountCents: 43500,
		Category:    "court",
		Billable:    true,
	})
	require.NoError(t, err)

	got, err := f.expenses.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, int64(43500), got.AmountCents)
	require.True(t, got.Billable)
}

func TestCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	_, err := f.expenses.Create(ctx, domain.CreateExpenseRequest{EstateID: estate.ID, Description: "x", AmountCents: -5})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.expenses.Create(ctx, domain.CreateExpenseRequest{EstateID: estate.ID, Description: "  "})
	require.ErrorIs(t, err, domain.ErrMissingDescription)

	_, err = f.expenses.Create(ctx, domain.CreateExpenseRequest{EstateID: 999, Description: "x"})
	require.ErrorIs(t, err, domain.ErrEstateNotFound)
}

func TestUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	created, err := f.expenses.Create(ctx, domain.CreateExpenseRequest{
		EstateID: estate.ID, Description: "Appraisal", AmountCents: 20000,
	})
	require.NoError(t, err)

	amount := int64(22500)
	updated, err := f.expenses.Update(ctx, created.ID, domain.UpdateExpenseRequest{AmountCents: &amount})
	require.NoError(t, err)
	require.Equal(t, int64(22500), updated.AmountCents)

	require.NoError(t, f.expenses.Delete(ctx, created.ID))
	_, err = f.expenses.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrExpenseNotFound)
}

func TestListBillableFilterAndScoping(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	_, err := f.expenses.Create(ctx, domain.CreateExpenseRequest{EstateID: estate.ID, Description: "Postage", AmountCents: 900})
	require.NoError(t, err)
	billableExp, err := f.expenses.Create(ctx, domain.CreateExpenseRequest{EstateID: estate.ID, Description: "Filing", AmountCents: 43500, Billable: true})
	require.NoError(t, err)

	billable := true
	got, _, err := f.expenses.List(ctx, domain.ListFilter{Billable: &billable})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, billableExp.ID, got[0].ID)

	foreign, _, err := f.expenses.List(ownerCtx(2), domain.ListFilter{})
	require.NoError(t, err)
	require.Empty(t, foreign)
}

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
	invoicedomain "github.com/legatepro/legatepro/internal/invoice/domain"
	invoicerepo "github.com/legatepro/legatepro/internal/invoice/repository"
	invoiceservice "github.com/legatepro/legatepro/internal/invoice/service"
	"github.com/legatepro/legatepro/internal/tenantctx"
	"github.com/legatepro/legatepro/internal/timeentry/domain"
	"github.com/legatepro/legatepro/internal/timeentry/repository"
	workspacedomain "github.com/legatepro/legatepro/internal/workspace/domain"
	workspacerepo "github.com/legatepro/legatepro/internal/workspace/repository"
	workspaceservice "github.com/legatepro/legatepro/internal/workspace/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	entries  domain.Service
	estates  estatedomain.Service
	invoices invoicedomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.TimeEntry{},
		&invoicedomain.Invoice{},
		&estatedomain.Estate{},
		&estatedomain.Collaborator{},
		&workspacedomain.Settings{},
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
	workspaceSvc := workspaceservice.New(workspaceservice.Params{
		DB: db, Log: log, Clock: fc, Repo: workspacerepo.Provide(),
	})
	invoiceSvc := invoiceservice.New(invoiceservice.Params{
		DB: db, Log: log, GenID: node, Clock: fc,
		Repo: invoicerepo.Provide(), Estate: estateSvc, Workspace: workspaceSvc, Activity: activitySvc,
	})
	entrySvc := New(Params{
		DB: db, Log: log, GenID: node, Clock: fc,
		Repo: repository.Provide(), Estate: estateSvc, Invoice: invoiceSvc, Activity: activitySvc,
	})
	return &fixture{entries: entrySvc, estates: estateSvc, invoices: invoiceSvc}
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

func TestLogWithExplicitMinutes(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	entry, err := f.entries.Log(ctx, domain.LogRequest{
		EstateID:        estate.ID,
		Description:     "Draft petition",
		DurationMinutes: 90,
		HourlyRateCents: 25000,
	})
	require.NoError(t, err)
	require.Equal(t, int64(90), entry.DurationMinutes)
	require.True(t, entry.Unbilled())
}

func TestLogWithTimestamps(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	stopped := started.Add(95 * time.Minute)
	entry, err := f.entries.Log(ctx, domain.LogRequest{
		EstateID:  estate.ID,
		StartedAt: &started,
		StoppedAt: &stopped,
	})
	require.NoError(t, err)
	require.Zero(t, entry.DurationMinutes)
	require.NotNil(t, entry.StartedAt)
	require.NotNil(t, entry.StoppedAt)
}

func TestLogValidation(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	_, err := f.entries.Log(ctx, domain.LogRequest{EstateID: estate.ID})
	require.ErrorIs(t, err, domain.ErrMissingDuration)

	started := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	stopped := started.Add(-time.Hour)
	_, err = f.entries.Log(ctx, domain.LogRequest{EstateID: estate.ID, StartedAt: &started, StoppedAt: &stopped})
	require.ErrorIs(t, err, domain.ErrInvalidDuration)

	_, err = f.entries.Log(ctx, domain.LogRequest{EstateID: estate.ID, DurationMinutes: 30, HourlyRateCents: -1})
	require.ErrorIs(t, err, domain.ErrInvalidRate)

	_, err = f.entries.Log(ctx, domain.LogRequest{EstateID: 42, DurationMinutes: 30})
	require.ErrorIs(t, err, domain.ErrEstateNotFound)
}

func TestAttachToInvoiceRefusesDoubleBilling(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	entry, err := f.entries.Log(ctx, domain.LogRequest{EstateID: estate.ID, DurationMinutes: 60})
	require.NoError(t, err)
	invoice, err := f.invoices.Create(ctx, invoicedomain.CreateInvoiceRequest{EstateID: estate.ID, AmountCents: 100})
	require.NoError(t, err)

	billed, err := f.entries.AttachToInvoice(ctx, entry.ID, invoice.ID)
	require.NoError(t, err)
	require.NotNil(t, billed.InvoiceID)
	require.False(t, billed.Unbilled())

	other, err := f.invoices.Create(ctx, invoicedomain.CreateInvoiceRequest{EstateID: estate.ID, AmountCents: 100})
	require.NoError(t, err)
	_, err = f.entries.AttachToInvoice(ctx, entry.ID, other.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyBilled)

	_, err = f.entries.AttachToInvoice(ctx, entry.ID, 424242)
	require.ErrorIs(t, err, domain.ErrAlreadyBilled)
}

func TestAttachToInvoiceUnknownInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	entry, err := f.entries.Log(ctx, domain.LogRequest{EstateID: estate.ID, DurationMinutes: 60})
	require.NoError(t, err)

	_, err = f.entries.AttachToInvoice(ctx, entry.ID, 424242)
	require.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestArchiveRemovesFromUnbilled(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	entry, err := f.entries.Log(ctx, domain.LogRequest{EstateID: estate.ID, DurationMinutes: 60})
	require.NoError(t, err)

	archived, err := f.entries.Archive(ctx, entry.ID)
	require.NoError(t, err)
	require.True(t, archived.Archived)
	require.False(t, archived.Unbilled())

	_, err = f.entries.Archive(ctx, entry.ID)
	require.ErrorIs(t, err, domain.ErrEntryArchived)

	unbilled, _, err := f.entries.List(ctx, domain.ListFilter{Unbilled: true})
	require.NoError(t, err)
	require.Empty(t, unbilled)
}

func TestUpdateBilledEntryRefused(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	entry, err := f.entries.Log(ctx, domain.LogRequest{EstateID: estate.ID, DurationMinutes: 60})
	require.NoError(t, err)
	invoice, err := f.invoices.Create(ctx, invoicedomain.CreateInvoiceRequest{EstateID: estate.ID, AmountCents: 100})
	require.NoError(t, err)
	_, err = f.entries.AttachToInvoice(ctx, entry.ID, invoice.ID)
	require.NoError(t, err)

	minutes := int64(120)
	_, err = f.entries.Update(ctx, entry.ID, domain.UpdateRequest{DurationMinutes: &minutes})
	require.ErrorIs(t, err, domain.ErrAlreadyBilled)
}

func TestListUnbilledFilter(t *testing.T) {
	f := newFixture(t)
	ctx := ownerCtx(1)
	estate := f.newEstate(t, ctx)

	a, err := f.entries.Log(ctx, domain.LogRequest{EstateID: estate.ID, DurationMinutes: 30})
	require.NoError(t, err)
	b, err := f.entries.Log(ctx, domain.LogRequest{EstateID: estate.ID, DurationMinutes: 45})
	require.NoError(t, err)

	invoice, err := f.invoices.Create(ctx, invoicedomain.CreateInvoiceRequest{EstateID: estate.ID, AmountCents: 100})
	require.NoError(t, err)
	_, err = f.entries.AttachToInvoice(ctx, a.ID, invoice.ID)
	require.NoError(t, err)

	unbilled, _, err := f.entries.List(ctx, domain.ListFilter{Unbilled: true})
	require.NoError(t, err)
	require.Len(t, unbilled, 1)
	require.Equal(t, b.ID, unbilled[0].ID)
}

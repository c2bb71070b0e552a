package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/legatepro/legatepro/internal/activity/domain"
	"github.com/legatepro/legatepro/internal/activity/repository"
	"github.com/legatepro/legatepro/internal/clock"
	"github.com/legatepro/legatepro/internal/tenantctx"
	"github.com/legatepro/legatepro/pkg/db/pagination"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Activity{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fc := clock.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fc,
		Repo:  repository.Provide(),
	})
	return svc, fc
}

func ownerCtx(id int64) context.Context {
	return tenantctx.WithOwnerID(context.Background(), snowflake.ID(id))
}

func TestRecordAndList(t *testing.T) {
	svc, fc := newTestService(t)
	ctx := ownerCtx(7)

	estateID := snowflake.ID(42)
	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Record(ctx, domain.RecordRequest{
			EstateID:   &estateID,
			Action:     fmt.Sprintf("invoice.created.%d", i),
			TargetType: "invoice",
			TargetID:   snowflake.ID(1000 + i),
		}))
		fc.Advance(time.Minute)
	}

	activities, pageInfo, err := svc.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, activities, 3)
	require.False(t, pageInfo.HasMore)

	// Newest first.
	require.Equal(t, "invoice.created.2", activities[0].Action)
	require.Equal(t, "invoice.created.0", activities[2].Action)
}

func TestListFilters(t *testing.T) {
	svc, fc := newTestService(t)
	ctx := ownerCtx(7)

	estateA := snowflake.ID(1)
	estateB := snowflake.ID(2)
	require.NoError(t, svc.Record(ctx, domain.RecordRequest{EstateID: &estateA, Action: "estate.created", TargetType: "estate", TargetID: estateA}))
	fc.Advance(time.Minute)
	require.NoError(t, svc.Record(ctx, domain.RecordRequest{EstateID: &estateB, Action: "estate.closed", TargetType: "estate", TargetID: estateB}))

	activities, _, err := svc.List(ctx, domain.ListFilter{EstateID: &estateA})
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.Equal(t, "estate.created", activities[0].Action)

	activities, _, err = svc.List(ctx, domain.ListFilter{Action: "estate.closed"})
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.Equal(t, estateB, *activities[0].EstateID)
}

func TestListIsTenantScoped(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.Record(ownerCtx(1), domain.RecordRequest{Action: "task.created", TargetType: "task", TargetID: 9}))

	activities, _, err := svc.List(ownerCtx(2), domain.ListFilter{})
	require.NoError(t, err)
	require.Empty(t, activities)
}

func TestListPagination(t *testing.T) {
	svc, fc := newTestService(t)
	ctx := ownerCtx(7)

	for i := 0; i < 5; i++ {
		require.NoError(t, svc.Record(ctx, domain.RecordRequest{Action: "expense.created", TargetType: "expense", TargetID: snowflake.ID(i)}))
		fc.Advance(time.Second)
	}

	first, pageInfo, err := svc.List(ctx, domain.ListFilter{Page: &pagination.Pagination{PageSize: 2}})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.True(t, pageInfo.HasMore)
	require.NotEmpty(t, pageInfo.NextPageToken)

	second, _, err := svc.List(ctx, domain.ListFilter{Page: &pagination.Pagination{PageSize: 2, PageToken: pageInfo.NextPageToken}})
	require.NoError(t, err)
	require.Len(t, second, 2)
	require.NotEqual(t, first[0].ID, second[0].ID)
}

func TestRecordRequiresOwnerAndAction(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.Record(context.Background(), domain.RecordRequest{Action: "x"})
	require.ErrorIs(t, err, domain.ErrMissingOwner)

	err = svc.Record(ownerCtx(1), domain.RecordRequest{Action: "  "})
	require.ErrorIs(t, err, domain.ErrMissingAction)
}

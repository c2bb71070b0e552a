package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/internal/billingdashboard/aggregate"
	"github.com/legatepro/legatepro/internal/billingdashboard/domain"
	"github.com/legatepro/legatepro/internal/clock"
	"github.com/legatepro/legatepro/internal/tenantctx"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("billingdashboard.service"),
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// estateWork accumulates unbilled time per estate before the merge.
type estateWork struct {
	minutes int64
	cents   int64
}

func (s *Service) GetOverview(ctx context.Context) (domain.Overview, error) {
	userID, ok := tenantctx.OwnerIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.Overview{}, domain.ErrInvalidTenant
	}

	now := s.clock.Now()

	var (
		rollup       aggregate.Totals
		rollupByEst  map[snowflake.ID]aggregate.Totals
		trend        []aggregate.MonthBucket
		aging        []aggregate.AgingBucket
		currency     string
		unbilled     domain.UnbilledSummary
		workByEstate map[snowflake.ID]estateWork
		labels       map[snowflake.ID]string
	)

	g, gctx := errgroup.WithContext(ctx)

	// Invoice side: normalize once, then rollup, trend, and aging all
	// read the same normalized slice.
	g.Go(func() error {
		records, err := s.repo.LoadInvoices(gctx, s.db, userID)
		if err != nil {
			return fmt.Errorf("load invoices: %w", err)
		}

		normalized := make([]aggregate.NormalizedInvoice, 0, len(records))
		for _, rec := range records {
			normalized = append(normalized, aggregate.Normalize(rec))
		}

		rollup, rollupByEst = aggregate.Rollup(normalized)
		trend = aggregate.MonthlyTrend(normalized, now)
		aging = aggregate.AgeReceivables(normalized, now)
		return nil
	})

	// Unbilled time side: workspace defaults feed the valuation.
	g.Go(func() error {
		defaults, err := s.repo.LoadBillingDefaults(gctx, s.db, userID)
		if err != nil {
			return fmt.Errorf("load billing defaults: %w", err)
		}
		currency = defaults.Currency

		entries, err := s.repo.LoadUnbilledTimeEntries(gctx, s.db, userID)
		if err != nil {
			return fmt.Errorf("load unbilled time entries: %w", err)
		}

		workByEstate = make(map[snowflake.ID]estateWork)
		for _, entry := range entries {
			value := aggregate.ValuateTimeEntry(entry, defaults.HourlyRateCents)
			unbilled.Minutes += value.Minutes
			unbilled.Cents += value.Cents

			work := workByEstate[entry.EstateID]
			work.minutes += value.Minutes
			work.cents += value.Cents
			workByEstate[entry.EstateID] = work
		}
		return nil
	})

	g.Go(func() error {
		rows, err := s.repo.LoadEstateLabels(gctx, s.db, userID)
		if err != nil {
			return fmt.Errorf("load estate labels: %w", err)
		}
		labels = make(map[snowflake.ID]string, len(rows))
		for _, row := range rows {
			switch {
			case row.DisplayName != "":
				labels[row.EstateID] = row.DisplayName
			case row.CaseName != "":
				labels[row.EstateID] = row.CaseName
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Error("dashboard aggregation failed", zap.Error(err))
		return domain.Overview{}, err
	}

	unbilled.Hours = minutesToHours(unbilled.Minutes)

	return domain.Overview{
		Currency:         currency,
		InvoicedCents:    clamp(rollup.InvoicedCents),
		CollectedCents:   clamp(rollup.CollectedCents),
		OutstandingCents: clamp(rollup.OutstandingCents),
		VoidedCents:      clamp(rollup.VoidedCents),
		Trend:            trend,
		Aging:            aging,
		Estates:          mergeEstates(rollupByEst, workByEstate, labels),
		Unbilled:         unbilled,
		GeneratedAt:      now,
	}, nil
}

// mergeEstates joins invoice rollups and unbilled work over the union of
// their estates, attaching a label and zero-filling whichever side is
// missing.
func mergeEstates(
	rollups map[snowflake.ID]aggregate.Totals,
	work map[snowflake.ID]estateWork,
	labels map[snowflake.ID]string,
) []domain.EstateBreakdown {
	seen := make(map[snowflake.ID]struct{}, len(rollups)+len(work))
	for id := range rollups {
		seen[id] = struct{}{}
	}
	for id := range work {
		seen[id] = struct{}{}
	}

	estates := make([]domain.EstateBreakdown, 0, len(seen))
	for id := range seen {
		totals := rollups[id]
		w := work[id]
		estates = append(estates, domain.EstateBreakdown{
			EstateID:         id,
			Label:            estateLabel(labels, id),
			InvoicedCents:    clamp(totals.InvoicedCents),
			CollectedCents:   clamp(totals.CollectedCents),
			OutstandingCents: clamp(totals.OutstandingCents),
			VoidedCents:      clamp(totals.VoidedCents),
			UnbilledMinutes:  w.minutes,
			UnbilledCents:    w.cents,
		})
	}

	sort.Slice(estates, func(i, j int) bool {
		if estates[i].InvoicedCents != estates[j].InvoicedCents {
			return estates[i].InvoicedCents > estates[j].InvoicedCents
		}
		return estates[i].EstateID < estates[j].EstateID
	})
	return estates
}

// estateLabel falls back to a generic tag built from the estate ID when
// the estate has no usable name; a label miss alone never fails the
// dashboard.
func estateLabel(labels map[snowflake.ID]string, id snowflake.ID) string {
	if label, ok := labels[id]; ok {
		return label
	}
	tail := id.String()
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return "Estate " + tail
}

func minutesToHours(minutes int64) float64 {
	hours, _ := decimal.NewFromInt(minutes).
		Div(decimal.NewFromInt(60)).
		Round(1).
		Float64()
	return hours
}

func clamp(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

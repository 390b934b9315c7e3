package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
	"github.com/novavp/dashboard-gateway/internal/core/ports"
)

const defaultAggregateConcurrency = 8

// DashboardService computes the sales KPIs shown on the dashboard views.
type DashboardService struct {
	users       ports.UserRepository
	sales       ports.SaleRepository
	concurrency int
	log         zerolog.Logger
	now         func() time.Time
}

func NewDashboardService(users ports.UserRepository, sales ports.SaleRepository, concurrency int, log zerolog.Logger) *DashboardService {
	if concurrency <= 0 {
		concurrency = defaultAggregateConcurrency
	}
	return &DashboardService{
		users:       users,
		sales:       sales,
		concurrency: concurrency,
		log:         log.With().Str("component", "dashboard").Logger(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// PersonalKPIs never fails; a failed fetch renders as zeros.
func (s *DashboardService) PersonalKPIs(ctx context.Context, userID string) *ports.PersonalKPIs {
	kpis := &ports.PersonalKPIs{History: domain.SaleHistory{}}

	history, err := s.sales.History(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("fetch sale history")
		return kpis
	}

	kpis.History = history
	if latest, ok := history.Latest(); ok {
		kpis.LatestSale = latest.Value
		kpis.LatestTotalExpenses = latest.TotalExpenses
		kpis.LatestNetProfit = latest.NetProfit
		kpis.LatestRevenue = latest.Revenue
		at := latest.Date
		kpis.LatestAt = &at
	}
	return kpis
}

func (s *DashboardService) UserSales(ctx context.Context, userID string) (*ports.UserSales, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	history, err := s.sales.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("sale history %s: %w", userID, err)
	}
	return &ports.UserSales{UserID: userID, History: history, Total: history.Total()}, nil
}

// AggregateLatest fetches the history of every user holding role and
// reports the value of the most recent entry across all of them. Users whose
// history cannot be fetched are skipped.
func (s *DashboardService) AggregateLatest(ctx context.Context, role domain.Role) (*ports.AggregateSales, error) {
	users, err := s.users.List(ctx, role.Aliases()...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	histories := make([]domain.SaleHistory, len(users))
	failed := make([]bool, len(users))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, u := range users {
		g.Go(func() error {
			h, err := s.sales.History(gctx, u.ID)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.log.Debug().Err(err).Str("user_id", u.ID).Msg("skipping user in aggregate")
				failed[i] = true
				return nil
			}
			histories[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg := &ports.AggregateSales{Role: role, Users: len(users), History: domain.SaleHistory{}}
	var (
		latest domain.SaleEntry
		found  bool
	)
	for i, h := range histories {
		if failed[i] {
			agg.Skipped++
			continue
		}
		agg.History = append(agg.History, h...)
		if l, ok := h.Latest(); ok && (!found || l.Date.After(latest.Date)) {
			latest, found = l, true
		}
	}
	agg.History = agg.History.Chronological()
	if found {
		agg.LatestSale = latest.Value
		at := latest.Date
		agg.LatestAt = &at
	}
	return agg, nil
}

// RecordSale appends an entry stamped with the current time.
func (s *DashboardService) RecordSale(ctx context.Context, userID string, in ports.SaleInput) (domain.SaleHistory, error) {
	entry := domain.SaleEntry{
		Value:         in.Sale,
		TotalExpenses: in.TotalExpenses,
		NetProfit:     in.NetProfit,
		Revenue:       in.Revenue,
		Date:          s.now(),
	}
	history, err := s.sales.Append(ctx, userID, entry)
	if err != nil {
		return nil, fmt.Errorf("append sale: %w", err)
	}
	return history, nil
}

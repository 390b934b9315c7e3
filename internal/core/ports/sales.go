package ports

import (
	"context"
	"time"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
)

// SaleRepository stores per-user sale histories. History returns an empty
// history, not an error, for a user with no records.
type SaleRepository interface {
	History(ctx context.Context, userID string) (domain.SaleHistory, error)
	Append(ctx context.Context, userID string, entry domain.SaleEntry) (domain.SaleHistory, error)
}

// SaleInput is the DTO for recording a sale from the SVC view.
type SaleInput struct {
	Sale          float64
	TotalExpenses float64
	NetProfit     float64
	Revenue       float64
}

// PersonalKPIs summarises the caller's own history. Latest* fields are zero
// when the history is empty or could not be fetched.
type PersonalKPIs struct {
	History             domain.SaleHistory `json:"history"`
	LatestSale          float64            `json:"latest_sale"`
	LatestTotalExpenses float64            `json:"latest_total_expenses"`
	LatestNetProfit     float64            `json:"latest_net_profit"`
	LatestRevenue       float64            `json:"latest_revenue"`
	LatestAt            *time.Time         `json:"latest_at,omitempty"`
}

// UserSales is one user's history with the sum of its values.
type UserSales struct {
	UserID  string             `json:"user_id"`
	History domain.SaleHistory `json:"history"`
	Total   float64            `json:"total"`
}

// AggregateSales is the cross-user view used by the manager pages.
type AggregateSales struct {
	Role       domain.Role        `json:"role"`
	Users      int                `json:"users"`
	Skipped    int                `json:"skipped"`
	LatestSale float64            `json:"latest_sale"`
	LatestAt   *time.Time         `json:"latest_at,omitempty"`
	History    domain.SaleHistory `json:"history"`
}

type DashboardService interface {
	PersonalKPIs(ctx context.Context, userID string) *PersonalKPIs
	UserSales(ctx context.Context, userID string) (*UserSales, error)
	AggregateLatest(ctx context.Context, role domain.Role) (*AggregateSales, error)
	RecordSale(ctx context.Context, userID string, in SaleInput) (domain.SaleHistory, error)
}

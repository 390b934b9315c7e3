package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/novavp/dashboard-gateway/internal/core/access"
	"github.com/novavp/dashboard-gateway/internal/core/domain"
	"github.com/novavp/dashboard-gateway/internal/core/ports"
)

// ViewHandler renders the view models of guarded dashboard pages.
type ViewHandler struct {
	policy    *access.Policy
	dashboard ports.DashboardService
	log       zerolog.Logger
}

func NewViewHandler(policy *access.Policy, dashboard ports.DashboardService, log zerolog.Logger) *ViewHandler {
	return &ViewHandler{policy: policy, dashboard: dashboard, log: log}
}

// Render returns the handler for one catalogued view. It runs behind
// middleware.Guard, so the identity is present and allowed.
func (h *ViewHandler) Render(route access.Route) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := ctxIdentity(c)
		if err != nil {
			return err
		}
		ctx := c.Request().Context()

		resp := viewResponse{
			View:       route.View,
			Title:      route.Title,
			Path:       route.Path,
			Identity:   id,
			Navigation: navigation(h.policy.AllowedViews(id.Role)),
			Cards:      append([]card{}, staticCards[route.View]...),
		}

		if personalSalesViews[route.View] {
			kpis := h.dashboard.PersonalKPIs(ctx, id.UserID)
			resp.Sales = kpis
			resp.Cards = append(resp.Cards, personalCards(route.View, kpis)...)
		}

		if route.View == domain.ViewManager {
			agg, err := h.dashboard.AggregateLatest(ctx, domain.RoleAdmin)
			if err != nil {
				h.log.Warn().Err(err).Str("view", string(route.View)).Msg("aggregate sales unavailable")
				agg = &ports.AggregateSales{Role: domain.RoleAdmin, History: domain.SaleHistory{}}
			}
			resp.Aggregate = agg
			resp.Cards = append(resp.Cards, aggregateCards(agg)...)
		}

		return c.JSON(http.StatusOK, resp)
	}
}

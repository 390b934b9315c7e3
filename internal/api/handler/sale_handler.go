package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
	"github.com/novavp/dashboard-gateway/internal/core/ports"
)

type SaleHandler struct {
	dashboard ports.DashboardService
}

func NewSaleHandler(dashboard ports.DashboardService) *SaleHandler {
	return &SaleHandler{dashboard: dashboard}
}

// Mine returns the caller's sale history and latest KPIs.
//
// @Summary      Own sales
// @Tags         sales
// @Produce      json
// @Success      200  {object}  ports.PersonalKPIs
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/sales/me [get]
func (h *SaleHandler) Mine(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.dashboard.PersonalKPIs(c.Request().Context(), id.UserID))
}

// Record appends a sale entry for the caller.
//
// @Summary      Record a sale
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        body  body      saleRequest  true  "Sale entry"
// @Success      200   {object}  saleHistoryResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/v1/sales/me [put]
func (h *SaleHandler) Record(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req saleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "sale must be a number")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	history, err := h.dashboard.RecordSale(c.Request().Context(), id.UserID, ports.SaleInput{
		Sale:          *req.Sale,
		TotalExpenses: req.TotalExpenses,
		NetProfit:     req.NetProfit,
		Revenue:       req.Revenue,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saleHistoryResponse{History: history})
}

// ForUser returns one user's history and its total.
//
// @Summary      User sales
// @Tags         sales
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  ports.UserSales
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/sales/users/{id} [get]
func (h *SaleHandler) ForUser(c echo.Context) error {
	sales, err := h.dashboard.UserSales(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sales)
}

// Aggregate reports the latest sale across the users of a role.
//
// @Summary      Aggregate sales
// @Tags         sales
// @Produce      json
// @Param        role  query     string  false  "Role string (default admin)"
// @Success      200   {object}  ports.AggregateSales
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/sales/aggregate [get]
func (h *SaleHandler) Aggregate(c echo.Context) error {
	role := domain.RoleAdmin
	if raw := c.QueryParam("role"); raw != "" {
		parsed, ok := domain.ParseRole(raw)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
		}
		role = parsed
	}

	agg, err := h.dashboard.AggregateLatest(c.Request().Context(), role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, agg)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/novavp/dashboard-gateway/internal/api/middleware"
	"github.com/novavp/dashboard-gateway/internal/core/domain"
)

// ctxIdentity returns the identity the Session middleware restored. Routes
// behind Guard or Authorize always have one; the check is a fast fail for
// handlers mounted without them.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return id, nil
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/novavp/dashboard-gateway/internal/api/metrics"
	"github.com/novavp/dashboard-gateway/internal/core/access"
	"github.com/novavp/dashboard-gateway/internal/core/domain"
	"github.com/novavp/dashboard-gateway/internal/core/ports"
)

// Guard protects a view route. Allowed navigations reach next; every other
// navigation is answered with 302 Found to the decision's path. route must
// be catalogued in g's policy. audit may be nil.
func Guard(g *access.Guard, route access.Route, audit ports.AccessRecorder, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := IdentityFrom(c)
			d := g.AuthorizeView(id, route.View)

			metrics.GuardDecisionsTotal.WithLabelValues(string(route.View), string(d.Outcome)).Inc()
			if d.Fallback {
				metrics.GuardFallbacksTotal.Inc()
				log.Warn().
					Str("user_id", id.UserID).
					Str("view", string(route.View)).
					Msg("role has no home view, sending to fallback")
			}
			if audit != nil {
				audit.Record(navigationEvent(c, id, route, d))
			}

			if !d.Allowed() {
				return c.Redirect(http.StatusFound, d.RedirectTo)
			}
			return next(c)
		}
	}
}

// Authorize protects a data endpoint with the same decision as Guard but
// answers with 401 or 403 instead of redirecting.
func Authorize(g *access.Guard, required domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := IdentityFrom(c)
			switch d := g.Authorize(id, required); d.Outcome {
			case domain.OutcomeUnauthenticated:
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			case domain.OutcomeMisrouted:
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

func navigationEvent(c echo.Context, id *domain.Identity, route access.Route, d access.Decision) domain.AccessEvent {
	e := domain.AccessEvent{
		Kind:       domain.EventNavigation,
		View:       route.View,
		Path:       c.Request().URL.Path,
		Outcome:    d.Outcome,
		RedirectTo: d.RedirectTo,
		RemoteIP:   c.RealIP(),
	}
	if id != nil {
		e.UserID = id.UserID
		e.Role = id.Role
	}
	return e
}

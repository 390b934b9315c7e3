package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/novavp/dashboard-gateway/internal/api/metrics"
	"github.com/novavp/dashboard-gateway/internal/core/domain"
	"github.com/novavp/dashboard-gateway/internal/core/ports"
)

const (
	// SessionCookie carries the session token for browser navigation.
	SessionCookie = "session"

	identityKey = "identity"
	tokenKey    = "session_token"
)

// Session resolves the request's session token into an identity and stores
// both on the context. It never rejects a request: an absent or unusable
// session simply leaves no identity behind. When the handler chain reports
// domain.ErrSessionExpired the session is ended.
func Session(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := sessionToken(c)
			if token != "" {
				c.Set(tokenKey, token)
				if id, ok := sessions.Identity(c.Request().Context(), token); ok {
					c.Set(identityKey, id)
					metrics.SessionLookupsTotal.WithLabelValues("restored").Inc()
				} else {
					metrics.SessionLookupsTotal.WithLabelValues("absent").Inc()
				}
			}

			err := next(c)
			if err != nil && token != "" && errors.Is(err, domain.ErrSessionExpired) {
				sessions.Expire(c.Request().Context(), token)
				metrics.LogoutsTotal.WithLabelValues("expired").Inc()
			}
			return err
		}
	}
}

// IdentityFrom returns the identity resolved by Session, if any.
func IdentityFrom(c echo.Context) (*domain.Identity, bool) {
	id, ok := c.Get(identityKey).(*domain.Identity)
	return id, ok && id != nil && id.Authenticated
}

// TokenFrom returns the raw session token presented with the request.
func TokenFrom(c echo.Context) string {
	token, _ := c.Get(tokenKey).(string)
	return token
}

// sessionToken prefers an Authorization bearer token over the cookie. Other
// Authorization schemes are ignored.
func sessionToken(c echo.Context) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

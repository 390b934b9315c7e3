package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/novavp/dashboard-gateway/internal/api/metrics"
	"github.com/novavp/dashboard-gateway/internal/api/middleware"
	"github.com/novavp/dashboard-gateway/internal/core/access"
	"github.com/novavp/dashboard-gateway/internal/core/domain"
	"github.com/novavp/dashboard-gateway/internal/core/ports"
)

type AuthHandler struct {
	sessions     ports.SessionService
	policy       *access.Policy
	cookieSecure bool
	log          zerolog.Logger
}

func NewAuthHandler(sessions ports.SessionService, policy *access.Policy, cookieSecure bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{sessions: sessions, policy: policy, cookieSecure: cookieSecure, log: log}
}

// LoginView describes the login page.
//
// @Summary      Login view
// @Tags         views
// @Produce      json
// @Success      200  {object}  loginViewResponse
// @Router       /login [get]
func (h *AuthHandler) LoginView(c echo.Context) error {
	resp := loginViewResponse{View: domain.ViewLogin}
	if id, ok := middleware.IdentityFrom(c); ok {
		resp.IsAuthenticated = true
		resp.Home = h.home(id.Role)
	}
	return c.JSON(http.StatusOK, resp)
}

// Login authenticates the visitor and opens a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      503   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	session, err := h.sessions.Login(c.Request().Context(), domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		var ae *domain.AuthError
		if errors.As(err, &ae) {
			metrics.LoginsTotal.WithLabelValues(ae.Reason.String()).Inc()
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	id := session.Identity
	return c.JSON(http.StatusOK, loginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Identity:  &id,
		Home:      h.home(id.Role),
	})
}

// Logout ends the current session. It always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context(), middleware.TokenFrom(c)); err != nil {
		h.log.Warn().Err(err).Msg("logout")
	}
	metrics.LogoutsTotal.WithLabelValues("logout").Inc()

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.NoContent(http.StatusNoContent)
}

// Me reports the current identity.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  meResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusOK, meResponse{})
	}
	return c.JSON(http.StatusOK, meResponse{
		Identity:        id,
		IsAuthenticated: true,
		Home:            h.home(id.Role),
		Navigation:      navigation(h.policy.AllowedViews(id.Role)),
	})
}

func (h *AuthHandler) home(role domain.Role) string {
	if path, ok := h.policy.HomePath(role); ok {
		return path
	}
	return access.FallbackPath
}

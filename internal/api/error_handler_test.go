package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"bad credentials", &domain.AuthError{Reason: domain.ReasonInvalidCredentials, Err: domain.ErrUserNotFound}, http.StatusUnauthorized, "invalid credentials"},
		{"wrong password", &domain.AuthError{Reason: domain.ReasonInvalidCredentials}, http.StatusUnauthorized, "invalid credentials"},
		{"identity down", &domain.AuthError{Reason: domain.ReasonUnavailable, Err: errors.New("dial tcp: refused")}, http.StatusServiceUnavailable, "authentication unavailable"},
		{"session expired", fmt.Errorf("upstream: %w", domain.ErrSessionExpired), http.StatusUnauthorized, "session expired"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"unknown user", domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"duplicate user", domain.ErrUserExists, http.StatusConflict, "user already exists"},
		{"bad role", fmt.Errorf("%w: %q", domain.ErrInvalidRole, "Sales"), http.StatusBadRequest, `invalid role: "Sales"`},
		{"incomplete user", fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidUser), http.StatusBadRequest, "invalid user: username, email and password are required"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "sale is required"), http.StatusBadRequest, "sale is required"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/auth/login", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}

func TestHTTPErrorHandler_CommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.NoContent(http.StatusNoContent))

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

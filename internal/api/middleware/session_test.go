package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
)

type stubSessions struct {
	identities map[string]*domain.Identity
	expired    []string
}

func (s *stubSessions) Identity(_ context.Context, token string) (*domain.Identity, bool) {
	id, ok := s.identities[token]
	return id, ok
}

func (s *stubSessions) Login(context.Context, domain.Credentials) (*domain.Session, error) {
	return nil, nil
}

func (s *stubSessions) Logout(context.Context, string) error { return nil }

func (s *stubSessions) Expire(_ context.Context, token string) {
	s.expired = append(s.expired, token)
	delete(s.identities, token)
}

func newStubSessions() *stubSessions {
	return &stubSessions{identities: map[string]*domain.Identity{
		"tok-hr": {UserID: "u-hr", Role: domain.RoleHR, Authenticated: true},
	}}
}

func TestSession_RestoresFromBearer(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-hr")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *domain.Identity
	h := Session(newStubSessions())(func(c echo.Context) error {
		seen, _ = IdentityFrom(c)
		return nil
	})

	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if seen == nil || seen.UserID != "u-hr" {
		t.Fatalf("expected identity u-hr, got %+v", seen)
	}
	if TokenFrom(c) != "tok-hr" {
		t.Fatalf("expected token on context")
	}
}

func TestSession_RestoresFromCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok-hr"})
	c := e.NewContext(req, httptest.NewRecorder())

	h := Session(newStubSessions())(func(c echo.Context) error {
		if _, ok := IdentityFrom(c); !ok {
			t.Fatalf("expected identity from cookie")
		}
		return nil
	})
	_ = h(c)
}

func TestSession_CookieBehindOtherAuthScheme(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic cHJveHk6cGFzcw==")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok-hr"})
	c := e.NewContext(req, httptest.NewRecorder())

	restored := false
	h := Session(newStubSessions())(func(c echo.Context) error {
		_, restored = IdentityFrom(c)
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !restored {
		t.Fatalf("expected identity from cookie when Authorization is not a bearer token")
	}
}

func TestSession_AbsentNeverRejects(t *testing.T) {
	for _, header := range []string{"", "Bearer unknown", "Basic abc"} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		c := e.NewContext(req, httptest.NewRecorder())

		called := false
		h := Session(newStubSessions())(func(c echo.Context) error {
			called = true
			if _, ok := IdentityFrom(c); ok {
				t.Fatalf("expected no identity for %q", header)
			}
			return nil
		})
		if err := h(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if !called {
			t.Fatalf("next handler not called for %q", header)
		}
	}
}

func TestSession_ExpiredDownstreamEndsSession(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer tok-hr")
	c := e.NewContext(req, httptest.NewRecorder())

	sessions := newStubSessions()
	h := Session(sessions)(func(echo.Context) error {
		return fmt.Errorf("sales api: %w", domain.ErrSessionExpired)
	})

	_ = h(c)
	if len(sessions.expired) != 1 || sessions.expired[0] != "tok-hr" {
		t.Fatalf("expected session to be expired, got %v", sessions.expired)
	}
	if _, ok := sessions.Identity(context.Background(), "tok-hr"); ok {
		t.Fatalf("expected identity to be gone after expiry")
	}
}

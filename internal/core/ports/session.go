package ports

import (
	"context"
	"time"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
)

// SessionStore persists login sessions. Find returns domain.ErrSessionNotFound
// for a missing record and an error wrapping domain.ErrSessionCorrupt for a
// record that cannot be decoded.
type SessionStore interface {
	Save(ctx context.Context, session *domain.Session, ttl time.Duration) error
	Find(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionService owns the login state of the gateway.
type SessionService interface {
	// Identity resolves a session token. It never fails: anything that
	// prevents restoring the session reads as logged out.
	Identity(ctx context.Context, token string) (*domain.Identity, bool)
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
	Expire(ctx context.Context, token string)
}

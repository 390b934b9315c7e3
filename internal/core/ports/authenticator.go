package ports

import (
	"context"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
)

// Authenticator verifies credentials against the identity system of record.
// Implementations return an error matching domain.ErrInvalidCredentials (or
// domain.ErrUserNotFound) for rejected credentials; any other error is
// treated as the identity system being unavailable.
type Authenticator interface {
	Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Principal, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
	"github.com/novavp/dashboard-gateway/internal/core/ports"
)

// DirectoryAuthenticator checks credentials against the local user
// directory using bcrypt hashes.
type DirectoryAuthenticator struct {
	repo ports.UserRepository
	// dummyHash is compared when the email is unknown so both rejection
	// paths cost one bcrypt comparison.
	dummyHash []byte
}

func NewDirectoryAuthenticator(repo ports.UserRepository) *DirectoryAuthenticator {
	hash, _ := bcrypt.GenerateFromPassword([]byte("directory-authenticator"), bcrypt.DefaultCost)
	return &DirectoryAuthenticator{repo: repo, dummyHash: hash}
}

func (a *DirectoryAuthenticator) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Principal, error) {
	email := strings.TrimSpace(strings.ToLower(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := a.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(creds.Password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("directory lookup: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

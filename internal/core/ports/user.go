package ports

import (
	"context"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
)

// UserRepository is the directory of dashboard accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns users whose stored role is one of roles, or every user
	// when roles is empty.
	List(ctx context.Context, roles ...string) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// NewUserInput is the DTO for adding a directory account.
type NewUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type UserService interface {
	Register(ctx context.Context, in NewUserInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

package ports

import (
	"context"

	"github.com/rozgaar/marketplace/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	// AddBalance tops up the caller's account and returns the updated user.
	AddBalance(ctx context.Context, userID string, amount float64) (*domain.User, error)
}

package ports

import (
	"context"

	"github.com/rozgaar/marketplace/internal/core/domain"
)

// UserRepository defines persistence operations for marketplace accounts.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the email
	// is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Ledger is the balance capability on an account. It is the only component
// allowed to write the balance field.
type Ledger interface {
	// Credit atomically adds amount (> 0) to the account balance.
	Credit(ctx context.Context, accountID string, amount float64) error
	// Debit atomically subtracts amount (> 0) from the account balance.
	// The check and the decrement are a single storage operation: when the
	// resulting balance would be negative, no write happens and an error
	// matching domain.ErrInsufficientFunds is returned.
	Debit(ctx context.Context, accountID string, amount float64) error
}

package ports

import (
	"context"

	"github.com/rozgaar/marketplace/internal/core/domain"
)

// MessageRepository defines persistence for the append-only message log.
type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	// ListByOrder returns messages in ascending creation-time order.
	ListByOrder(ctx context.Context, orderID string) ([]*domain.Message, error)
}

package ports

import (
	"context"

	"github.com/rozgaar/marketplace/internal/core/domain"
)

// MessageDetail joins a message with its sender's display name.
type MessageDetail struct {
	Message    domain.Message
	SenderName string
}

// MessageService is the participant-restricted per-order message thread.
type MessageService interface {
	AddMessage(ctx context.Context, actor Actor, orderID string, content string) (*MessageDetail, error)
	ListMessages(ctx context.Context, actor Actor, orderID string) ([]MessageDetail, error)
}

package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rozgaar/marketplace/internal/api/metrics"
	"github.com/rozgaar/marketplace/internal/core/domain"
	"github.com/rozgaar/marketplace/internal/core/ports"
)

// MessageService implements the participant-restricted, append-only per-order
// message thread.
type MessageService struct {
	messages ports.MessageRepository
	orders   ports.OrderRepository
	users    ports.UserRepository
	logger   zerolog.Logger
}

func NewMessageService(messages ports.MessageRepository, orders ports.OrderRepository, users ports.UserRepository, logger zerolog.Logger) *MessageService {
	return &MessageService{messages: messages, orders: orders, users: users, logger: logger}
}

func (s *MessageService) AddMessage(ctx context.Context, actor ports.Actor, orderID string, content string) (*ports.MessageDetail, error) {
	if content == "" {
		return nil, domain.ErrEmptyMessage
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Participant(actor.ID) {
		return nil, domain.ErrForbidden
	}

	message := &domain.Message{
		OrderID:   orderID,
		SenderID:  actor.ID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.messages.Create(ctx, message)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to create message")
		return nil, err
	}

	metrics.MessagesCreatedTotal.Inc()
	return s.withSenderName(ctx, created), nil
}

// ListMessages returns the order's thread in ascending creation-time order,
// restricted to participants.
func (s *MessageService) ListMessages(ctx context.Context, actor ports.Actor, orderID string) ([]ports.MessageDetail, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Participant(actor.ID) {
		return nil, domain.ErrForbidden
	}

	messages, err := s.messages.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	senderNames := make(map[string]string)
	details := make([]ports.MessageDetail, 0, len(messages))
	for _, m := range messages {
		if _, seen := senderNames[m.SenderID]; !seen {
			if sender, err := s.users.FindByID(ctx, m.SenderID); err == nil {
				senderNames[m.SenderID] = sender.Name
			} else {
				senderNames[m.SenderID] = ""
			}
		}
		details = append(details, ports.MessageDetail{Message: *m, SenderName: senderNames[m.SenderID]})
	}
	return details, nil
}

func (s *MessageService) withSenderName(ctx context.Context, m *domain.Message) *ports.MessageDetail {
	detail := &ports.MessageDetail{Message: *m}
	if sender, err := s.users.FindByID(ctx, m.SenderID); err == nil {
		detail.SenderName = sender.Name
	}
	return detail
}

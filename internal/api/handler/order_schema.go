package handler

import (
	"time"

	"github.com/rozgaar/marketplace/internal/core/domain"
	"github.com/rozgaar/marketplace/internal/core/ports"
)

type createOrderRequest struct {
	GigID        string `json:"gig_id"       validate:"required"`
	Requirements string `json:"requirements"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress completed cancelled"`
}

type cancelOrderRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type addReviewRequest struct {
	Rating  int    `json:"rating"  validate:"required,gte=1,lte=5"`
	Comment string `json:"comment"`
}

type addMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type orderResponse struct {
	ID                      string         `json:"id"`
	GigID                   string         `json:"gig_id"`
	GigTitle                string         `json:"gig_title,omitempty"`
	ClientID                string         `json:"client_id"`
	ClientName              string         `json:"client_name,omitempty"`
	FreelancerID            string         `json:"freelancer_id"`
	FreelancerName          string         `json:"freelancer_name,omitempty"`
	Status                  string         `json:"status"`
	IsLate                  bool           `json:"is_late"`
	Price                   float64        `json:"price"`
	Requirements            string         `json:"requirements,omitempty"`
	DueDate                 time.Time      `json:"due_date"`
	DeliveryFile            string         `json:"delivery_file,omitempty"`
	DeliveryNotes           string         `json:"delivery_notes,omitempty"`
	CancellationReason      string         `json:"cancellation_reason,omitempty"`
	CancellationRequestedBy string         `json:"cancellation_requested_by,omitempty"`
	Review                  *domain.Review `json:"review,omitempty"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
}

type messageResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Content    string    `json:"content"`
	IsRead     bool      `json:"is_read"`
	CreatedAt  time.Time `json:"created_at"`
}

type reviewResponse struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	ClientName string    `json:"client_name,omitempty"`
	GigTitle   string    `json:"gig_title,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toOrderResponse(d ports.OrderDetail) orderResponse {
	return orderResponse{
		ID:                      d.Order.ID,
		GigID:                   d.Order.GigID,
		GigTitle:                d.GigTitle,
		ClientID:                d.Order.ClientID,
		ClientName:              d.ClientName,
		FreelancerID:            d.Order.FreelancerID,
		FreelancerName:          d.FreelancerName,
		Status:                  d.Status,
		IsLate:                  d.IsLate,
		Price:                   d.Order.Price,
		Requirements:            d.Order.Requirements,
		DueDate:                 d.Order.DueDate,
		DeliveryFile:            d.Order.DeliveryFile,
		DeliveryNotes:           d.Order.DeliveryNotes,
		CancellationReason:      d.Order.CancellationReason,
		CancellationRequestedBy: d.Order.CancellationRequestedBy,
		Review:                  d.Review,
		CreatedAt:               d.Order.CreatedAt,
		UpdatedAt:               d.Order.UpdatedAt,
	}
}

func toOrderResponses(details []ports.OrderDetail) []orderResponse {
	out := make([]orderResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toOrderResponse(d))
	}
	return out
}

func toMessageResponse(d ports.MessageDetail) messageResponse {
	return messageResponse{
		ID:         d.Message.ID,
		OrderID:    d.Message.OrderID,
		SenderID:   d.Message.SenderID,
		SenderName: d.SenderName,
		Content:    d.Message.Content,
		IsRead:     d.Message.IsRead,
		CreatedAt:  d.Message.CreatedAt,
	}
}

func toReviewResponse(d ports.ReviewDetail) reviewResponse {
	return reviewResponse{
		ID:         d.Review.ID,
		OrderID:    d.Review.OrderID,
		Rating:     d.Review.Rating,
		Comment:    d.Review.Comment,
		ClientName: d.ClientName,
		GigTitle:   d.GigTitle,
		CreatedAt:  d.Review.CreatedAt,
	}
}

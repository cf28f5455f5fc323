package domain

import (
	"errors"
	"time"
)

var ErrDuplicateReview = errors.New("order has already been reviewed")
var ErrOrderNotCompleted = errors.New("order is not completed")
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// Review is the client's one-time rating of a completed order.
type Review struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	OrderID   string    `json:"order_id" bson:"order_id"`
	Rating    int       `json:"rating" bson:"rating"`
	Comment   string    `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

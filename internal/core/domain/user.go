package domain

import (
	"errors"
	"time"
)

const (
	RoleClient     = "client"
	RoleFreelancer = "freelancer"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("email is already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidAmount = errors.New("amount must be positive")

// ValidRole reports whether role is one of the two marketplace roles.
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleFreelancer
}

// User models a marketplace account. Balance is the escrow-style ledger
// value: it is mutated only through the Ledger port and never goes negative.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	Balance      float64   `json:"balance" bson:"balance"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

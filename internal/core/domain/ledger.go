package domain

import (
	"errors"
	"fmt"
)

// ErrInsufficientFunds is the sentinel matched by errors.Is for any failed
// debit. The concrete error carries the amounts involved.
var ErrInsufficientFunds = errors.New("insufficient balance")

// InsufficientFundsError reports a debit that would overdraw an account.
type InsufficientFundsError struct {
	Required float64
	Current  float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient balance: required %.2f, current %.2f", e.Required, e.Current)
}

func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

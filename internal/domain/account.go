package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account represents a user's cash account in the domain layer.
// One Account exists per user; it is created on the first deposit and is
// never deleted.
type Account struct {
	ID           uuid.UUID
	Balance      decimal.Decimal // Cash available for trading, never negative
	AccountValue decimal.Decimal // Cumulative cash moved into holdings (BOOK VALUE)
	UpdatedAt    time.Time
}

// NewAccount creates an empty account for the given user ID.
func NewAccount(id uuid.UUID) *Account {
	return &Account{
		ID:           id,
		Balance:      decimal.Zero,
		AccountValue: decimal.Zero,
	}
}

// Validate ensures the account adheres to domain rules
// Returns an error if validation fails
func (a *Account) Validate() error {
	if a.ID == uuid.Nil {
		return errors.New("account ID cannot be empty")
	}

	// No overdraft: the balance must never go below zero
	if a.Balance.IsNegative() {
		return errors.New("account balance cannot be negative")
	}

	return nil
}

// Clone returns a copy of the account that can be mutated independently.
func (a *Account) Clone() *Account {
	c := *a
	return &c
}

package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Holding is a user's position in one instrument.
// It exists only while Shares > 0; repeat buys merge into the same holding.
type Holding struct {
	AccountID      uuid.UUID
	InstrumentID   uuid.UUID
	InstrumentName string
	Shares         decimal.Decimal
	CurrentPrice   decimal.Decimal // Price snapshot used for valuation
	Owns           bool
}

// Value returns the market value of the holding at CurrentPrice.
func (h *Holding) Value() decimal.Decimal {
	return h.Shares.Mul(h.CurrentPrice)
}

// IsEmpty reports whether the holding has been sold down to exactly zero.
func (h *Holding) IsEmpty() bool {
	return h.Shares.IsZero()
}

// Validate ensures the holding adheres to domain rules
func (h *Holding) Validate() error {
	if h.AccountID == uuid.Nil || h.InstrumentID == uuid.Nil {
		return errors.New("holding must reference an account and an instrument")
	}
	if h.Shares.IsNegative() {
		return errors.New("holding shares cannot be negative")
	}
	if h.CurrentPrice.IsNegative() {
		return errors.New("holding price cannot be negative")
	}
	return nil
}

// Clone returns a copy of the holding that can be mutated independently.
func (h *Holding) Clone() *Holding {
	c := *h
	return &c
}

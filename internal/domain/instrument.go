package domain

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Instrument is a tradable simulated stock.
// Price, Change, PreviousPrice and MentionCount are only mutated by the
// price simulator.
type Instrument struct {
	ID            uuid.UUID
	Symbol        string
	Name          string
	Price         decimal.Decimal
	PreviousPrice decimal.Decimal
	Change        decimal.Decimal // Signed change from PreviousPrice
	MentionCount  int
}

// ChangeLabel renders the change from the previous price, e.g. "+3.00" or "-1.00".
func (i *Instrument) ChangeLabel() string {
	return ChangeLabel(i.Change)
}

// ChangeLabel renders a signed change with an explicit sign and two decimals.
func ChangeLabel(change decimal.Decimal) string {
	if change.IsNegative() {
		return "-" + change.Abs().StringFixed(CurrencyPlaces)
	}
	return "+" + change.StringFixed(CurrencyPlaces)
}

// Validate ensures the instrument adheres to domain rules
func (i *Instrument) Validate() error {
	if strings.TrimSpace(i.Symbol) == "" {
		return errors.New("instrument symbol cannot be empty")
	}
	if strings.TrimSpace(i.Name) == "" {
		return errors.New("instrument name cannot be empty")
	}
	if i.Price.IsNegative() {
		return errors.New("instrument price cannot be negative")
	}
	return nil
}

// Apply copies a price update onto the instrument.
func (i *Instrument) Apply(u PriceUpdate) {
	i.Price = u.NewPrice
	i.PreviousPrice = u.PreviousPrice
	i.Change = u.Change
	i.MentionCount = u.MentionCount
}

// Clone returns a copy of the instrument that can be mutated independently.
func (i *Instrument) Clone() *Instrument {
	c := *i
	return &c
}

// PriceUpdate is the outcome of one tick for one instrument.
type PriceUpdate struct {
	InstrumentID  uuid.UUID
	NewPrice      decimal.Decimal
	PreviousPrice decimal.Decimal
	Change        decimal.Decimal
	MentionCount  int
}

// ChangeLabel renders the signed change of the update.
func (u PriceUpdate) ChangeLabel() string {
	return ChangeLabel(u.Change)
}

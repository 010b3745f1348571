package simulator

import (
	"github.com/shopspring/decimal"
	"github.com/simaogato/tradesim-backend/internal/domain"
)

// Mode selects the step size of a tick
type Mode int

const (
	Intraday Mode = iota
	Overnight
)

func (m Mode) String() string {
	if m == Overnight {
		return "overnight"
	}
	return "intraday"
}

// Direction is the sign applied to a tick
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// Draw bounds, in whole currency units. Upper bounds are exclusive.
const (
	IntradayRange    = 10
	OvernightUpRange = 10
	NarrowRange      = 5
	MentionRange     = 100
)

// Step returns the new price after moving price by a delta drawn from src.
// Decreases never go below zero: a decrement larger than the price is redrawn
// from NarrowRange, and a redraw that still exceeds the price clamps at zero.
// The returned change is the signed amount actually applied.
func Step(price decimal.Decimal, mode Mode, dir Direction, src Source) (newPrice, change decimal.Decimal) {
	if dir == Up {
		bound := IntradayRange
		if mode == Overnight {
			bound = OvernightUpRange
		}
		delta := decimal.NewFromInt(int64(src.IntN(bound)))
		return price.Add(delta), delta
	}

	var delta decimal.Decimal
	if mode == Overnight {
		delta = decimal.NewFromInt(int64(src.IntN(NarrowRange)))
	} else {
		delta = decimal.NewFromInt(int64(src.IntN(IntradayRange)))
		if delta.GreaterThan(price) {
			delta = decimal.NewFromInt(int64(src.IntN(NarrowRange)))
		}
	}

	if delta.GreaterThan(price) {
		delta = price
	}
	return price.Sub(delta), delta.Neg()
}

// Tick computes one price update for an instrument. It does not write anything.
func Tick(instrument *domain.Instrument, mode Mode, dir Direction, src Source) domain.PriceUpdate {
	newPrice, change := Step(instrument.Price, mode, dir, src)
	return domain.PriceUpdate{
		InstrumentID:  instrument.ID,
		NewPrice:      domain.RoundCurrency(newPrice),
		PreviousPrice: instrument.Price,
		Change:        domain.RoundCurrency(change),
		MentionCount:  src.IntN(MentionRange),
	}
}

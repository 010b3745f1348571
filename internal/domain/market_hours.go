package domain

import (
	"fmt"
	"slices"
	"time"
)

// Layouts of the market hours fields
const (
	ClockLayout = "15:04"
	DayLayout   = "2006-01-02"
)

// MarketHours is the trading session of the simulated market.
// Open and Close are clock times; Open == Close means the market trades all
// day and Close before Open wraps past midnight. ClosedDays are whole dates
// without trading.
type MarketHours struct {
	Open       string
	Close      string
	ClosedDays []string
}

// AlwaysOpen is the session used until hours are configured
func AlwaysOpen() *MarketHours {
	return &MarketHours{Open: "00:00", Close: "00:00"}
}

// Validate ensures the market hours adhere to domain rules
func (h *MarketHours) Validate() error {
	if _, err := clockMinutes(h.Open); err != nil {
		return fmt.Errorf("%w: open time %q is not HH:MM", ErrInvalidMarketHours, h.Open)
	}
	if _, err := clockMinutes(h.Close); err != nil {
		return fmt.Errorf("%w: close time %q is not HH:MM", ErrInvalidMarketHours, h.Close)
	}
	for _, day := range h.ClosedDays {
		if _, err := time.Parse(DayLayout, day); err != nil {
			return fmt.Errorf("%w: closed day %q is not YYYY-MM-DD", ErrInvalidMarketHours, day)
		}
	}
	return nil
}

// IsOpen reports whether the market trades at t, read on t's own clock
func (h *MarketHours) IsOpen(t time.Time) bool {
	if slices.Contains(h.ClosedDays, t.Format(DayLayout)) {
		return false
	}

	open, err := clockMinutes(h.Open)
	if err != nil {
		return false
	}
	closeAt, err := clockMinutes(h.Close)
	if err != nil {
		return false
	}

	now := t.Hour()*60 + t.Minute()
	switch {
	case open == closeAt:
		return true
	case open < closeAt:
		return now >= open && now < closeAt
	default:
		return now >= open || now < closeAt
	}
}

// Clone returns a copy of the market hours that can be mutated independently.
func (h *MarketHours) Clone() *MarketHours {
	c := *h
	c.ClosedDays = slices.Clone(h.ClosedDays)
	return &c
}

func clockMinutes(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MarketValueSnapshot represents a point-in-time portfolio valuation.
// It tracks the market value of the holdings vs the account's BOOK VALUE
// (AccountValue) so the history can be charted.
type MarketValueSnapshot struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Time      time.Time
	Value     decimal.Decimal // Portfolio market value at Time
}

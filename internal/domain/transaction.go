package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind represents the kind of money movement recorded in the log
type TransactionKind string

const (
	TransactionKindDeposit  TransactionKind = "DEPOSIT"
	TransactionKindWithdraw TransactionKind = "WITHDRAW"
	TransactionKindBuy      TransactionKind = "BUY"
	TransactionKindSell     TransactionKind = "SELL"
)

// IsTrade reports whether the kind involves an instrument.
func (k TransactionKind) IsTrade() bool {
	return k == TransactionKindBuy || k == TransactionKindSell
}

// Valid reports whether k is one of the known kinds.
func (k TransactionKind) Valid() bool {
	switch k {
	case TransactionKindDeposit, TransactionKindWithdraw, TransactionKindBuy, TransactionKindSell:
		return true
	}
	return false
}

// Transaction is an immutable entry of the append-only transaction log.
// Rejected attempts are kept with Success=false for audit.
type Transaction struct {
	ID             uuid.UUID
	AccountID      uuid.UUID
	Kind           TransactionKind
	Amount         decimal.Decimal // ABSOLUTE VALUE, rounded to CurrencyPlaces
	Date           time.Time
	InstrumentID   *uuid.UUID      // NULL for DEPOSIT/WITHDRAW
	InstrumentName string          // Snapshot of the instrument name at trade time
	Shares         decimal.Decimal // Zero for DEPOSIT/WITHDRAW
	Owns           bool            // True when the trade left the user holding the instrument
	Success        bool
}

// NewCashTransaction builds a DEPOSIT or WITHDRAW log entry.
func NewCashTransaction(accountID uuid.UUID, kind TransactionKind, amount decimal.Decimal, success bool, date time.Time) *Transaction {
	return &Transaction{
		ID:        uuid.New(),
		AccountID: accountID,
		Kind:      kind,
		Amount:    RoundCurrency(amount),
		Date:      date,
		Shares:    decimal.Zero,
		Success:   success,
	}
}

// NewTradeTransaction builds a BUY or SELL log entry for the given instrument.
func NewTradeTransaction(accountID uuid.UUID, kind TransactionKind, instrument *Instrument, shares, amount decimal.Decimal, success bool, date time.Time) *Transaction {
	instrumentID := instrument.ID
	return &Transaction{
		ID:             uuid.New(),
		AccountID:      accountID,
		Kind:           kind,
		Amount:         RoundCurrency(amount),
		Date:           date,
		InstrumentID:   &instrumentID,
		InstrumentName: instrument.Name,
		Shares:         RoundShares(shares),
		Owns:           kind == TransactionKindBuy && success,
		Success:        success,
	}
}

// Validate ensures the transaction adheres to domain rules
// Returns an error if validation fails
func (t *Transaction) Validate() error {
	if t.AccountID == uuid.Nil {
		return errors.New("transaction must reference an account")
	}

	if !t.Kind.Valid() {
		return errors.New("transaction kind must be DEPOSIT, WITHDRAW, BUY or SELL")
	}

	// Trades at a zero price are possible once a price walks down to zero,
	// so only a negative amount is rejected here.
	if t.Amount.IsNegative() {
		return errors.New("transaction amount must not be negative (absolute value)")
	}

	if t.Kind.IsTrade() {
		if t.InstrumentID == nil {
			return errors.New("trade transaction must reference an instrument")
		}
		if !t.Shares.IsPositive() {
			return errors.New("trade transaction shares must be positive")
		}
	} else if t.InstrumentID != nil {
		return errors.New("cash transaction must not reference an instrument")
	}

	return nil
}

package domain

import "errors"

// Mutation is one logical unit of ledger state change.
// A LedgerWriter applies all of its parts or none of them.
//
// Holding semantics:
//   - nil: holdings are untouched
//   - Shares > 0: the holding is created or replaced
//   - Shares == 0: the holding is deleted
type Mutation struct {
	Account     *Account
	Holding     *Holding
	Transaction *Transaction
}

// Validate checks every part of the mutation before it is committed.
func (m *Mutation) Validate() error {
	if m.Transaction == nil {
		return errors.New("mutation must record a transaction")
	}
	if err := m.Transaction.Validate(); err != nil {
		return err
	}
	if m.Account != nil {
		if err := m.Account.Validate(); err != nil {
			return err
		}
		if m.Account.ID != m.Transaction.AccountID {
			return errors.New("mutation account and transaction account differ")
		}
	}
	if m.Holding != nil {
		if err := m.Holding.Validate(); err != nil {
			return err
		}
		if m.Holding.AccountID != m.Transaction.AccountID {
			return errors.New("mutation holding and transaction account differ")
		}
	}
	return nil
}

// Receipt is the outcome of a committed ledger mutation.
type Receipt struct {
	Account     *Account
	Holding     *Holding // nil for cash movements; Shares == 0 when the holding was closed
	Transaction *Transaction
}

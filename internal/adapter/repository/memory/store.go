// Package memory provides in-process implementations of the domain repositories.
//
// All repositories created from the same Store share one mutex, so a
// Commit is atomic with respect to every read.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/simaogato/tradesim-backend/internal/domain"
)

type holdingKey struct {
	accountID    uuid.UUID
	instrumentID uuid.UUID
}

// Store holds every entity in maps guarded by a single RWMutex
type Store struct {
	mu           sync.RWMutex
	accounts     map[uuid.UUID]domain.Account
	holdings     map[holdingKey]domain.Holding
	instruments  map[uuid.UUID]domain.Instrument
	transactions map[uuid.UUID][]domain.Transaction // accountID -> append-only log
	snapshots    map[uuid.UUID][]domain.MarketValueSnapshot
	hours        *domain.MarketHours // nil until configured
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		accounts:     make(map[uuid.UUID]domain.Account),
		holdings:     make(map[holdingKey]domain.Holding),
		instruments:  make(map[uuid.UUID]domain.Instrument),
		transactions: make(map[uuid.UUID][]domain.Transaction),
		snapshots:    make(map[uuid.UUID][]domain.MarketValueSnapshot),
	}
}

// Commit applies the account, holding and transaction of a mutation atomically
func (s *Store) Commit(ctx context.Context, m *domain.Mutation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("failed to commit mutation: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if m.Account != nil {
		s.accounts[m.Account.ID] = *m.Account
	}

	if m.Holding != nil {
		key := holdingKey{accountID: m.Holding.AccountID, instrumentID: m.Holding.InstrumentID}
		if m.Holding.IsEmpty() {
			delete(s.holdings, key)
		} else {
			s.holdings[key] = *m.Holding
		}
	}

	s.transactions[m.Transaction.AccountID] = append(s.transactions[m.Transaction.AccountID], *m.Transaction)

	return nil
}

package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/tradesim-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	s *Store
}

// NewTransactionRepository creates a new transaction repository backed by s
func NewTransactionRepository(s *Store) domain.TransactionRepository {
	return &transactionRepository{s: s}
}

// Create appends a transaction to the account's log
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.transactions[tx.AccountID] = append(r.s.transactions[tx.AccountID], *tx)
	return nil
}

// List retrieves a paginated list of transactions for an account, newest first
func (r *transactionRepository) List(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	log := r.s.transactions[accountID]
	result := make([]*domain.Transaction, 0)
	for i := len(log) - 1 - offset; i >= 0 && len(result) < limit; i-- {
		tx := log[i]
		if tx.InstrumentID != nil {
			id := *tx.InstrumentID
			tx.InstrumentID = &id
		}
		result = append(result, &tx)
	}
	return result, nil
}

// Count returns the total number of transactions of an account
func (r *transactionRepository) Count(ctx context.Context, accountID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.s.transactions[accountID]), nil
}

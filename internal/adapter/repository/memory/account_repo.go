package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/tradesim-backend/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	s *Store
}

// NewAccountRepository creates a new account repository backed by s
func NewAccountRepository(s *Store) domain.AccountRepository {
	return &accountRepository{s: s}
}

// GetByID retrieves an account by its ID
func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	account, ok := r.s.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	return &account, nil
}

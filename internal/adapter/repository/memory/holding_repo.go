package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/simaogato/tradesim-backend/internal/domain"
)

// holdingRepository implements domain.HoldingRepository
type holdingRepository struct {
	s *Store
}

// NewHoldingRepository creates a new holding repository backed by s
func NewHoldingRepository(s *Store) domain.HoldingRepository {
	return &holdingRepository{s: s}
}

// Get retrieves the holding of an account in one instrument
func (r *holdingRepository) Get(ctx context.Context, accountID, instrumentID uuid.UUID) (*domain.Holding, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	holding, ok := r.s.holdings[holdingKey{accountID: accountID, instrumentID: instrumentID}]
	if !ok {
		return nil, fmt.Errorf("holding of account %s in instrument %s: %w", accountID, instrumentID, domain.ErrNotFound)
	}
	return &holding, nil
}

// ListByAccount retrieves all holdings of an account ordered by instrument name
func (r *holdingRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Holding, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	holdings := make([]*domain.Holding, 0)
	for key, holding := range r.s.holdings {
		if key.accountID != accountID {
			continue
		}
		h := holding
		holdings = append(holdings, &h)
	}

	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].InstrumentName < holdings[j].InstrumentName
	})

	return holdings, nil
}

// UpdatePrice overwrites CurrentPrice on every holding of an instrument
func (r *holdingRepository) UpdatePrice(ctx context.Context, update domain.PriceUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for key, holding := range r.s.holdings {
		if key.instrumentID != update.InstrumentID {
			continue
		}
		holding.CurrentPrice = update.NewPrice
		r.s.holdings[key] = holding
	}
	return nil
}

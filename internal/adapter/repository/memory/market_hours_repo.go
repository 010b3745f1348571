package memory

import (
	"context"
	"fmt"

	"github.com/simaogato/tradesim-backend/internal/domain"
)

// marketHoursRepository implements domain.MarketHoursRepository
type marketHoursRepository struct {
	s *Store
}

// NewMarketHoursRepository creates a new market hours repository backed by s
func NewMarketHoursRepository(s *Store) domain.MarketHoursRepository {
	return &marketHoursRepository{s: s}
}

// Get returns the configured hours
func (r *marketHoursRepository) Get(ctx context.Context) (*domain.MarketHours, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if r.s.hours == nil {
		return nil, fmt.Errorf("market hours: %w", domain.ErrNotFound)
	}
	return r.s.hours.Clone(), nil
}

// Set replaces the configured hours
func (r *marketHoursRepository) Set(ctx context.Context, hours *domain.MarketHours) error {
	if err := hours.Validate(); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.hours = hours.Clone()
	return nil
}

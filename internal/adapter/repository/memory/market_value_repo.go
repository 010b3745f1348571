package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/simaogato/tradesim-backend/internal/domain"
)

// marketValueRepository implements domain.MarketValueRepository
type marketValueRepository struct {
	s *Store
}

// NewMarketValueRepository creates a new market value repository backed by s
func NewMarketValueRepository(s *Store) domain.MarketValueRepository {
	return &marketValueRepository{s: s}
}

// Add creates a new snapshot
func (r *marketValueRepository) Add(ctx context.Context, snapshot *domain.MarketValueSnapshot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.snapshots[snapshot.AccountID] = append(r.s.snapshots[snapshot.AccountID], *snapshot)
	return nil
}

// ListByAccount retrieves the snapshots of an account in chronological order
func (r *marketValueRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.MarketValueSnapshot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	snapshots := make([]*domain.MarketValueSnapshot, 0, len(r.s.snapshots[accountID]))
	for _, snapshot := range r.s.snapshots[accountID] {
		s := snapshot
		snapshots = append(snapshots, &s)
	}

	sort.SliceStable(snapshots, func(i, j int) bool {
		return snapshots[i].Time.Before(snapshots[j].Time)
	})

	return snapshots, nil
}

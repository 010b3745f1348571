package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/simaogato/tradesim-backend/internal/domain"
)

// instrumentRepository implements domain.InstrumentRepository
type instrumentRepository struct {
	s *Store
}

// NewInstrumentRepository creates a new instrument repository backed by s
func NewInstrumentRepository(s *Store) domain.InstrumentRepository {
	return &instrumentRepository{s: s}
}

// GetByID retrieves an instrument by its ID
func (r *instrumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Instrument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	instrument, ok := r.s.instruments[id]
	if !ok {
		return nil, fmt.Errorf("instrument %s: %w", id, domain.ErrNotFound)
	}
	return &instrument, nil
}

// GetBySymbol retrieves an instrument by its symbol
func (r *instrumentRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.Instrument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, instrument := range r.s.instruments {
		if strings.EqualFold(instrument.Symbol, symbol) {
			return &instrument, nil
		}
	}
	return nil, fmt.Errorf("instrument %q: %w", symbol, domain.ErrNotFound)
}

// List retrieves all instruments ordered by symbol
func (r *instrumentRepository) List(ctx context.Context) ([]*domain.Instrument, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	instruments := make([]*domain.Instrument, 0, len(r.s.instruments))
	for _, instrument := range r.s.instruments {
		i := instrument
		instruments = append(instruments, &i)
	}

	sort.Slice(instruments, func(i, j int) bool {
		return instruments[i].Symbol < instruments[j].Symbol
	})

	return instruments, nil
}

// Create creates a new instrument
func (r *instrumentRepository) Create(ctx context.Context, instrument *domain.Instrument) error {
	if err := instrument.Validate(); err != nil {
		return fmt.Errorf("failed to create instrument: %w", err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.instruments[instrument.ID]; ok {
		return fmt.Errorf("failed to create instrument: id %s already exists", instrument.ID)
	}
	for _, existing := range r.s.instruments {
		if strings.EqualFold(existing.Symbol, instrument.Symbol) {
			return fmt.Errorf("failed to create instrument %q: %w", instrument.Symbol, domain.ErrDuplicateSymbol)
		}
	}

	r.s.instruments[instrument.ID] = *instrument
	return nil
}

// UpdatePrice applies a price update; the last writer wins
func (r *instrumentRepository) UpdatePrice(ctx context.Context, update domain.PriceUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	instrument, ok := r.s.instruments[update.InstrumentID]
	if !ok {
		return fmt.Errorf("instrument %s: %w", update.InstrumentID, domain.ErrNotFound)
	}
	instrument.Apply(update)
	r.s.instruments[update.InstrumentID] = instrument
	return nil
}

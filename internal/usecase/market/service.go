package market

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/simaogato/tradesim-backend/internal/domain"
)

// DefaultTopN is the size of the trending and movers lists when none is given
const DefaultTopN = 5

// MarketService manages the instrument catalogue and the trading session
type MarketService struct {
	InstrumentRepo domain.InstrumentRepository
	HoursRepo      domain.MarketHoursRepository

	log zerolog.Logger
}

// NewMarketService creates a new MarketService instance
func NewMarketService(instrumentRepo domain.InstrumentRepository, hoursRepo domain.MarketHoursRepository, log zerolog.Logger) *MarketService {
	return &MarketService{
		InstrumentRepo: instrumentRepo,
		HoursRepo:      hoursRepo,
		log:            log.With().Str("component", "market").Logger(),
	}
}

// AddInstrument lists a new instrument
// Logic:
//  1. Normalise symbol (trimmed, upper case) and name (trimmed)
//  2. Price must be positive after rounding to cents
//  3. Symbol must be unique (case-insensitive)
func (s *MarketService) AddInstrument(ctx context.Context, symbol, name string, price decimal.Decimal) (*domain.Instrument, error) {
	price = domain.RoundCurrency(price)
	if !price.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	instrument := &domain.Instrument{
		ID:            uuid.New(),
		Symbol:        strings.ToUpper(strings.TrimSpace(symbol)),
		Name:          strings.TrimSpace(name),
		Price:         price,
		PreviousPrice: price,
		Change:        decimal.Zero,
	}

	if err := instrument.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInstrument, err)
	}

	_, err := s.InstrumentRepo.GetBySymbol(ctx, instrument.Symbol)
	if err == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateSymbol, instrument.Symbol)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	if err := s.InstrumentRepo.Create(ctx, instrument); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("symbol", instrument.Symbol).
		Str("price", price.StringFixed(domain.CurrencyPlaces)).
		Msg("Instrument added")

	return instrument, nil
}

// ListInstruments returns every instrument ordered by symbol
func (s *MarketService) ListInstruments(ctx context.Context) ([]*domain.Instrument, error) {
	return s.InstrumentRepo.List(ctx)
}

// GetInstrument returns one instrument
func (s *MarketService) GetInstrument(ctx context.Context, id uuid.UUID) (*domain.Instrument, error) {
	instrument, err := s.InstrumentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInstrumentNotFound, id)
		}
		return nil, err
	}
	return instrument, nil
}

// Trending returns the n most mentioned instruments
func (s *MarketService) Trending(ctx context.Context, n int) ([]*domain.Instrument, error) {
	return s.top(ctx, n, func(a, b *domain.Instrument) int {
		return cmp.Compare(b.MentionCount, a.MentionCount)
	})
}

// Movers returns the n instruments with the largest absolute change
func (s *MarketService) Movers(ctx context.Context, n int) ([]*domain.Instrument, error) {
	return s.top(ctx, n, func(a, b *domain.Instrument) int {
		return b.Change.Abs().Cmp(a.Change.Abs())
	})
}

// top sorts a copy of the catalogue with order, ties broken by symbol
func (s *MarketService) top(ctx context.Context, n int, order func(a, b *domain.Instrument) int) ([]*domain.Instrument, error) {
	if n <= 0 {
		n = DefaultTopN
	}

	instruments, err := s.InstrumentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list instruments: %w", err)
	}

	slices.SortStableFunc(instruments, func(a, b *domain.Instrument) int {
		if c := order(a, b); c != 0 {
			return c
		}
		return strings.Compare(a.Symbol, b.Symbol)
	})

	if len(instruments) > n {
		instruments = instruments[:n]
	}
	return instruments, nil
}

// SetHours configures the trading session.
// Closed days are trimmed, sorted and deduplicated before validation.
func (s *MarketService) SetHours(ctx context.Context, open, closeAt string, closedDays []string) (*domain.MarketHours, error) {
	days := make([]string, 0, len(closedDays))
	for _, day := range closedDays {
		if day = strings.TrimSpace(day); day != "" {
			days = append(days, day)
		}
	}
	slices.Sort(days)
	days = slices.Compact(days)
	if len(days) == 0 {
		days = nil
	}

	hours := &domain.MarketHours{
		Open:       strings.TrimSpace(open),
		Close:      strings.TrimSpace(closeAt),
		ClosedDays: days,
	}
	if err := hours.Validate(); err != nil {
		return nil, err
	}

	if err := s.HoursRepo.Set(ctx, hours); err != nil {
		return nil, fmt.Errorf("failed to save market hours: %w", err)
	}

	s.log.Info().
		Str("open", hours.Open).
		Str("close", hours.Close).
		Int("closed_days", len(hours.ClosedDays)).
		Msg("Market hours updated")

	return hours, nil
}

// GetHours returns the trading session, always open when none is configured
func (s *MarketService) GetHours(ctx context.Context) (*domain.MarketHours, error) {
	hours, err := s.HoursRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.AlwaysOpen(), nil
		}
		return nil, err
	}
	return hours, nil
}

// IsOpen reports whether the market trades at t
func (s *MarketService) IsOpen(ctx context.Context, t time.Time) (bool, error) {
	hours, err := s.GetHours(ctx)
	if err != nil {
		return false, err
	}
	return hours.IsOpen(t), nil
}

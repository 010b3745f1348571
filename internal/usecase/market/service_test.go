package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/simaogato/tradesim-backend/internal/adapter/repository/memory"
	"github.com/simaogato/tradesim-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *MarketService {
	store := memory.NewStore()
	return NewMarketService(memory.NewInstrumentRepository(store), memory.NewMarketHoursRepository(store), zerolog.Nop())
}

func TestAddInstrument(t *testing.T) {
	ctx := context.Background()
	service := newService()

	instrument, err := service.AddInstrument(ctx, "  acme ", " Acme Corp ", decimal.RequireFromString("12.345"))

	require.NoError(t, err)
	assert.Equal(t, "ACME", instrument.Symbol)
	assert.Equal(t, "Acme Corp", instrument.Name)
	assert.Equal(t, "12.35", instrument.Price.StringFixed(2))
	assert.Equal(t, "+0.00", instrument.ChangeLabel())

	stored, err := service.GetInstrument(ctx, instrument.ID)
	require.NoError(t, err)
	assert.Equal(t, instrument.Symbol, stored.Symbol)
}

func TestAddInstrument_Validation(t *testing.T) {
	tests := []struct {
		name    string
		symbol  string
		instr   string
		price   string
		wantErr error
		wantMsg string
	}{
		{name: "zero price", symbol: "A", instr: "A", price: "0", wantErr: domain.ErrInvalidAmount},
		{name: "negative price", symbol: "A", instr: "A", price: "-1", wantErr: domain.ErrInvalidAmount},
		{name: "price rounds to zero", symbol: "A", instr: "A", price: "0.004", wantErr: domain.ErrInvalidAmount},
		{name: "empty symbol", symbol: "  ", instr: "A", price: "1", wantErr: domain.ErrInvalidInstrument, wantMsg: "instrument symbol cannot be empty"},
		{name: "empty name", symbol: "A", instr: "", price: "1", wantErr: domain.ErrInvalidInstrument, wantMsg: "instrument name cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService().AddInstrument(context.Background(), tt.symbol, tt.instr, decimal.RequireFromString(tt.price))

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.ErrorContains(t, err, tt.wantMsg)
			}
		})
	}
}

func TestAddInstrument_DuplicateSymbol(t *testing.T) {
	ctx := context.Background()
	service := newService()

	_, err := service.AddInstrument(ctx, "ACME", "Acme Corp", decimal.NewFromInt(1))
	require.NoError(t, err)

	_, err = service.AddInstrument(ctx, "acme", "Another Acme", decimal.NewFromInt(2))
	assert.ErrorIs(t, err, domain.ErrDuplicateSymbol)
}

func TestGetInstrument_NotFound(t *testing.T) {
	_, err := newService().GetInstrument(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrInstrumentNotFound)
}

func seedCatalogue(t *testing.T, service *MarketService) {
	t.Helper()
	ctx := context.Background()
	rows := []struct {
		symbol   string
		change   int64
		mentions int
	}{
		{"AAA", 1, 10},
		{"BBB", -9, 90},
		{"CCC", 4, 90},
		{"DDD", 0, 5},
		{"EEE", -4, 50},
		{"FFF", 7, 0},
		{"GGG", 2, 70},
	}
	for _, row := range rows {
		instrument, err := service.AddInstrument(ctx, row.symbol, row.symbol+" Inc", decimal.NewFromInt(20))
		require.NoError(t, err)
		require.NoError(t, service.InstrumentRepo.UpdatePrice(ctx, domain.PriceUpdate{
			InstrumentID:  instrument.ID,
			NewPrice:      decimal.NewFromInt(20 + row.change),
			PreviousPrice: decimal.NewFromInt(20),
			Change:        decimal.NewFromInt(row.change),
			MentionCount:  row.mentions,
		}))
	}
}

func symbols(instruments []*domain.Instrument) []string {
	out := make([]string, len(instruments))
	for i, instrument := range instruments {
		out[i] = instrument.Symbol
	}
	return out
}

func TestTrending(t *testing.T) {
	service := newService()
	seedCatalogue(t, service)

	top, err := service.Trending(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, []string{"BBB", "CCC", "GGG"}, symbols(top))
}

func TestMovers_DefaultsToFive(t *testing.T) {
	service := newService()
	seedCatalogue(t, service)

	top, err := service.Movers(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, []string{"BBB", "FFF", "CCC", "EEE", "GGG"}, symbols(top))
}

func TestListInstruments_OrderedBySymbol(t *testing.T) {
	service := newService()
	seedCatalogue(t, service)

	all, err := service.ListInstruments(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"AAA", "BBB", "CCC", "DDD", "EEE", "FFF", "GGG"}, symbols(all))
}

type failingRepo struct {
	domain.InstrumentRepository
}

func (failingRepo) List(context.Context) ([]*domain.Instrument, error) {
	return nil, errors.New("offline")
}

func TestTrending_ListFailure(t *testing.T) {
	service := NewMarketService(failingRepo{}, nil, zerolog.Nop())

	_, err := service.Trending(context.Background(), 5)

	assert.ErrorContains(t, err, "failed to list instruments: offline")
}

func TestHours_DefaultAlwaysOpen(t *testing.T) {
	ctx := context.Background()
	service := newService()

	hours, err := service.GetHours(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.AlwaysOpen(), hours)

	open, err := service.IsOpen(ctx, time.Date(2026, 3, 10, 3, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, open)
}

func TestSetHours(t *testing.T) {
	ctx := context.Background()
	service := newService()

	hours, err := service.SetHours(ctx, " 09:30 ", "16:00", []string{"2026-12-25", " ", "2026-01-01", "2026-12-25"})
	require.NoError(t, err)
	assert.Equal(t, "09:30", hours.Open)
	assert.Equal(t, []string{"2026-01-01", "2026-12-25"}, hours.ClosedDays)

	stored, err := service.GetHours(ctx)
	require.NoError(t, err)
	assert.Equal(t, hours, stored)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{name: "before open", at: time.Date(2026, 3, 10, 9, 29, 0, 0, time.UTC), want: false},
		{name: "at open", at: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC), want: true},
		{name: "at close", at: time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC), want: false},
		{name: "closed day", at: time.Date(2026, 12, 25, 12, 0, 0, 0, time.UTC), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			open, err := service.IsOpen(ctx, tt.at)
			require.NoError(t, err)
			assert.Equal(t, tt.want, open)
		})
	}
}

func TestSetHours_Invalid(t *testing.T) {
	ctx := context.Background()
	service := newService()

	_, err := service.SetHours(ctx, "9am", "16:00", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidMarketHours)

	_, err = service.SetHours(ctx, "09:30", "16:00", []string{"25/12/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidMarketHours)

	// Nothing was stored
	hours, err := service.GetHours(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.AlwaysOpen(), hours)
}

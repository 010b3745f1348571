package seeder

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/simaogato/tradesim-backend/internal/domain"
)

// Fixed UUIDs for the default instrument universe, stable across restarts
var (
	INSTR_ACME = uuid.MustParse("00000000-0000-0000-0000-000000000101")
	INSTR_GLBX = uuid.MustParse("00000000-0000-0000-0000-000000000102")
	INSTR_INIT = uuid.MustParse("00000000-0000-0000-0000-000000000103")
	INSTR_UMBR = uuid.MustParse("00000000-0000-0000-0000-000000000104")
	INSTR_STRK = uuid.MustParse("00000000-0000-0000-0000-000000000105")
	INSTR_WAYN = uuid.MustParse("00000000-0000-0000-0000-000000000106")
	INSTR_CYBD = uuid.MustParse("00000000-0000-0000-0000-000000000107")
	INSTR_SOYL = uuid.MustParse("00000000-0000-0000-0000-000000000108")
	INSTR_TYRL = uuid.MustParse("00000000-0000-0000-0000-000000000109")
	INSTR_OCPR = uuid.MustParse("00000000-0000-0000-0000-000000000110")
)

// DefaultInstrument defines an instrument to be seeded
type DefaultInstrument struct {
	ID     uuid.UUID
	Symbol string
	Name   string
	Price  string
}

// DefaultUniverse is the catalogue a fresh market starts with
var DefaultUniverse = []DefaultInstrument{
	{ID: INSTR_ACME, Symbol: "ACME", Name: "Acme Corporation", Price: "42.00"},
	{ID: INSTR_GLBX, Symbol: "GLBX", Name: "Globex Industries", Price: "87.50"},
	{ID: INSTR_INIT, Symbol: "INIT", Name: "Initech", Price: "13.25"},
	{ID: INSTR_UMBR, Symbol: "UMBR", Name: "Umbrella Holdings", Price: "64.10"},
	{ID: INSTR_STRK, Symbol: "STRK", Name: "Stark Manufacturing", Price: "152.00"},
	{ID: INSTR_WAYN, Symbol: "WAYN", Name: "Wayne Enterprises", Price: "118.75"},
	{ID: INSTR_CYBD, Symbol: "CYBD", Name: "Cyberdyne Systems", Price: "29.90"},
	{ID: INSTR_SOYL, Symbol: "SOYL", Name: "Soylent Foods", Price: "8.40"},
	{ID: INSTR_TYRL, Symbol: "TYRL", Name: "Tyrell Biotech", Price: "71.30"},
	{ID: INSTR_OCPR, Symbol: "OCPR", Name: "Omni Consumer Products", Price: "36.65"},
}

// InstrumentSeeder handles seeding of the default instrument universe
type InstrumentSeeder struct {
	repo     domain.InstrumentRepository
	universe []DefaultInstrument
	log      zerolog.Logger
}

// NewInstrumentSeeder creates a new InstrumentSeeder seeding DefaultUniverse
func NewInstrumentSeeder(repo domain.InstrumentRepository, log zerolog.Logger) *InstrumentSeeder {
	return &InstrumentSeeder{
		repo:     repo,
		universe: DefaultUniverse,
		log:      log.With().Str("component", "seeder").Logger(),
	}
}

// Seed ensures all default instruments exist in the store
// If an instrument doesn't exist, it creates it; existing ones keep their simulated prices
func (s *InstrumentSeeder) Seed(ctx context.Context) error {
	created := 0
	for _, def := range s.universe {
		_, err := s.repo.GetByID(ctx, def.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		price := decimal.RequireFromString(def.Price)
		instrument := &domain.Instrument{
			ID:            def.ID,
			Symbol:        def.Symbol,
			Name:          def.Name,
			Price:         price,
			PreviousPrice: price,
		}

		// Validate before creating
		if err := instrument.Validate(); err != nil {
			return err
		}

		if err := s.repo.Create(ctx, instrument); err != nil {
			return err
		}
		created++
	}

	s.log.Info().Int("created", created).Int("universe", len(s.universe)).Msg("Instruments seeded")
	return nil
}

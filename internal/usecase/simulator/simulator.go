// Package simulator evolves instrument prices with a seeded random walk.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/simaogato/tradesim-backend/internal/domain"
	"github.com/simaogato/tradesim-backend/internal/scheduler"
)

// Config holds the simulator settings
type Config struct {
	IncreaseSchedule string
	DecreaseSchedule string
	Winners          int
	Losers           int
	OvernightOnStop  bool
	OvernightAtClose bool
}

// closeWatchSchedule is how often the session is checked for a close
const closeWatchSchedule = "@every 1m"

// DefaultConfig returns the stock schedules and batch sizes
func DefaultConfig() Config {
	return Config{
		IncreaseSchedule: "@every 90s",
		DecreaseSchedule: "@every 1000s",
		Winners:          5,
		Losers:           5,
	}
}

// UpdateHandler is notified after a price update has been written
type UpdateHandler func(ctx context.Context, update domain.PriceUpdate) error

// Simulator applies ticks to instruments on two intraday schedules and on demand
// for overnight passes. Writes are last-write-wins per instrument.
// Intraday ticks only move prices while the market is open.
type Simulator struct {
	InstrumentRepo domain.InstrumentRepository
	Hours          domain.MarketHoursRepository // nil means always open
	Now            func() time.Time

	src   Source
	cfg   Config
	sched *scheduler.Scheduler
	log   zerolog.Logger

	mu       sync.Mutex
	handlers []UpdateHandler
	running  bool
	entries  []cron.EntryID
	wasOpen  bool
}

// New creates a simulator that registers its jobs on sched
func New(instrumentRepo domain.InstrumentRepository, src Source, sched *scheduler.Scheduler, cfg Config, log zerolog.Logger) *Simulator {
	return &Simulator{
		InstrumentRepo: instrumentRepo,
		Now:            time.Now,
		src:            src,
		cfg:            cfg,
		sched:          sched,
		log:            log.With().Str("component", "simulator").Logger(),
	}
}

// OnUpdate registers a handler called for every written price update
func (s *Simulator) OnUpdate(h UpdateHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, h)
}

// TickIncrease picks one random instrument and moves its price up.
// Returns nil when there are no instruments.
func (s *Simulator) TickIncrease(ctx context.Context) (*domain.PriceUpdate, error) {
	return s.tickOne(ctx, Up)
}

// TickDecrease picks one random instrument and moves its price down
func (s *Simulator) TickDecrease(ctx context.Context) (*domain.PriceUpdate, error) {
	return s.tickOne(ctx, Down)
}

func (s *Simulator) tickOne(ctx context.Context, dir Direction) (*domain.PriceUpdate, error) {
	open, err := s.isOpen(ctx)
	if err != nil {
		return nil, err
	}
	if !open {
		s.log.Debug().Str("direction", dir.String()).Msg("Market closed, tick skipped")
		return nil, nil
	}

	instruments, err := s.InstrumentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list instruments: %w", err)
	}
	if len(instruments) == 0 {
		return nil, nil
	}

	instrument := instruments[s.src.IntN(len(instruments))]
	update := Tick(instrument, Intraday, dir, s.src)
	if err := s.apply(ctx, update); err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("symbol", instrument.Symbol).
		Str("direction", dir.String()).
		Str("price", update.NewPrice.StringFixed(domain.CurrencyPlaces)).
		Str("change", update.ChangeLabel()).
		Msg("Intraday tick")

	return &update, nil
}

// RunOvernight applies one overnight tick to Winners random instruments (up)
// and Losers random instruments (down) in a single pass. Picks are with
// replacement; an instrument picked twice is ticked from its updated price.
func (s *Simulator) RunOvernight(ctx context.Context) ([]domain.PriceUpdate, error) {
	instruments, err := s.InstrumentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list instruments: %w", err)
	}
	if len(instruments) == 0 {
		return nil, nil
	}

	current := make([]*domain.Instrument, len(instruments))
	for i, instrument := range instruments {
		current[i] = instrument.Clone()
	}

	updates := make([]domain.PriceUpdate, 0, s.cfg.Winners+s.cfg.Losers)
	pass := func(n int, dir Direction) error {
		for i := 0; i < n; i++ {
			instrument := current[s.src.IntN(len(current))]
			update := Tick(instrument, Overnight, dir, s.src)
			if err := s.apply(ctx, update); err != nil {
				return err
			}
			instrument.Apply(update)
			updates = append(updates, update)
		}
		return nil
	}

	if err := pass(s.cfg.Winners, Up); err != nil {
		return updates, err
	}
	if err := pass(s.cfg.Losers, Down); err != nil {
		return updates, err
	}

	s.log.Info().
		Int("winners", s.cfg.Winners).
		Int("losers", s.cfg.Losers).
		Int("updates", len(updates)).
		Msg("Overnight pass completed")

	return updates, nil
}

func (s *Simulator) apply(ctx context.Context, update domain.PriceUpdate) error {
	if err := s.InstrumentRepo.UpdatePrice(ctx, update); err != nil {
		return fmt.Errorf("failed to update price of %s: %w", update.InstrumentID, err)
	}

	s.mu.Lock()
	handlers := append([]UpdateHandler(nil), s.handlers...)
	s.mu.Unlock()

	var errs []error
	for _, h := range handlers {
		if err := h(ctx, update); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		// The price itself is written; handler failures are reported but do not roll it back
		s.log.Error().Err(errors.Join(errs...)).Str("instrument_id", update.InstrumentID.String()).Msg("Price update handler failed")
	}
	return nil
}

// isOpen reports whether the market trades now. Unconfigured hours are always open.
func (s *Simulator) isOpen(ctx context.Context) (bool, error) {
	if s.Hours == nil {
		return true, nil
	}
	hours, err := s.Hours.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return true, nil
		}
		return false, fmt.Errorf("failed to load market hours: %w", err)
	}
	return hours.IsOpen(s.Now()), nil
}

// checkClose runs the overnight pass when the market has closed since the
// previous check
func (s *Simulator) checkClose(ctx context.Context) ([]domain.PriceUpdate, error) {
	open, err := s.isOpen(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	closed := s.wasOpen && !open
	s.wasOpen = open
	s.mu.Unlock()

	if !closed {
		return nil, nil
	}
	s.log.Info().Msg("Market closed")
	return s.RunOvernight(ctx)
}

// Start registers both intraday jobs, plus the close watch when
// OvernightAtClose is set, and starts the scheduler. On error no job stays
// registered.
func (s *Simulator) Start(ctx context.Context) error {
	open, err := s.isOpen(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return errors.New("simulator already running")
	}

	jobs := []scheduledJob{
		{kind: "increase", schedule: s.cfg.IncreaseSchedule, job: &tickJob{ctx: ctx, name: "price_increase", tick: s.TickIncrease}},
		{kind: "decrease", schedule: s.cfg.DecreaseSchedule, job: &tickJob{ctx: ctx, name: "price_decrease", tick: s.TickDecrease}},
	}
	if s.cfg.OvernightAtClose {
		jobs = append(jobs, scheduledJob{kind: "close watch", schedule: closeWatchSchedule, job: &tickJob{ctx: ctx, name: "market_close", batch: s.checkClose}})
	}

	entries := make([]cron.EntryID, 0, len(jobs))
	for _, j := range jobs {
		id, err := s.sched.AddJob(j.schedule, j.job)
		if err != nil {
			for _, added := range entries {
				s.sched.Remove(added)
			}
			return fmt.Errorf("invalid %s schedule %q: %w", j.kind, j.schedule, err)
		}
		entries = append(entries, id)
	}

	s.entries = entries
	s.wasOpen = open
	s.sched.Start()
	s.running = true
	return nil
}

// Stop cancels the schedules, waits for running ticks, unregisters the jobs,
// then runs the overnight pass when configured
func (s *Simulator) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	entries := s.entries
	s.entries = nil
	s.mu.Unlock()

	s.sched.Stop()
	for _, id := range entries {
		s.sched.Remove(id)
	}

	if s.cfg.OvernightOnStop {
		if _, err := s.RunOvernight(ctx); err != nil {
			return err
		}
	}
	return nil
}

type scheduledJob struct {
	kind     string
	schedule string
	job      scheduler.Job
}

// tickJob adapts a tick or an overnight check to scheduler.Job
type tickJob struct {
	ctx   context.Context
	name  string
	tick  func(ctx context.Context) (*domain.PriceUpdate, error)
	batch func(ctx context.Context) ([]domain.PriceUpdate, error)
}

func (j *tickJob) Name() string { return j.name }

func (j *tickJob) Run() error {
	if j.batch != nil {
		_, err := j.batch(j.ctx)
		return err
	}
	_, err := j.tick(j.ctx)
	return err
}

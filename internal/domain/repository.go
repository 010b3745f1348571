package domain

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	// GetByID retrieves an account by its ID
	// Returns an error wrapping ErrNotFound if the account does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
}

// HoldingRepository defines the interface for holding persistence operations
type HoldingRepository interface {
	// Get retrieves the holding of an account in one instrument
	// Returns an error wrapping ErrNotFound if there is no holding
	Get(ctx context.Context, accountID, instrumentID uuid.UUID) (*Holding, error)

	// ListByAccount retrieves all holdings of an account
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*Holding, error)

	// UpdatePrice overwrites CurrentPrice on every holding of an instrument
	// Shares are never touched
	UpdatePrice(ctx context.Context, update PriceUpdate) error
}

// TransactionRepository defines the interface for the append-only transaction log
type TransactionRepository interface {
	// Create appends a transaction on its own (used for rejected attempts)
	Create(ctx context.Context, tx *Transaction) error

	// List retrieves a paginated list of transactions for an account, newest first
	// limit and offset are used for pagination
	List(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*Transaction, error)

	// Count returns the total number of transactions of an account
	Count(ctx context.Context, accountID uuid.UUID) (int, error)
}

// InstrumentRepository defines the interface for instrument persistence operations
type InstrumentRepository interface {
	// GetByID retrieves an instrument by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Instrument, error)

	// GetBySymbol retrieves an instrument by its (case-insensitive) symbol
	GetBySymbol(ctx context.Context, symbol string) (*Instrument, error)

	// List retrieves all instruments ordered by symbol
	List(ctx context.Context) ([]*Instrument, error)

	// Create creates a new instrument
	Create(ctx context.Context, instrument *Instrument) error

	// UpdatePrice applies a price update. Concurrent updates are last-write-wins.
	UpdatePrice(ctx context.Context, update PriceUpdate) error
}

// MarketValueRepository defines the interface for portfolio value history operations
type MarketValueRepository interface {
	// Add creates a new snapshot
	Add(ctx context.Context, snapshot *MarketValueSnapshot) error

	// ListByAccount retrieves the snapshots of an account in chronological order
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*MarketValueSnapshot, error)
}

// MarketHoursRepository stores the single market session configuration
type MarketHoursRepository interface {
	// Get returns the configured hours
	// Returns an error wrapping ErrNotFound if they were never set
	Get(ctx context.Context) (*MarketHours, error)

	// Set replaces the configured hours
	Set(ctx context.Context, hours *MarketHours) error
}

// LedgerWriter commits a Mutation atomically: account, holding and
// transaction are either all persisted or none of them is.
type LedgerWriter interface {
	Commit(ctx context.Context, m *Mutation) error
}

package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/tradesim-backend/internal/domain"
)

// instrumentRepository implements domain.InstrumentRepository
type instrumentRepository struct {
	db *DB
}

// NewInstrumentRepository creates a new instrument repository
func NewInstrumentRepository(db *DB) domain.InstrumentRepository {
	return &instrumentRepository{db: db}
}

const instrumentColumns = `id, symbol, name, price, previous_price, price_change, mention_count`

func scanInstrument(row rowScanner) (*domain.Instrument, error) {
	var instrument domain.Instrument
	var priceStr, previousStr, changeStr string

	if err := row.Scan(
		&instrument.ID,
		&instrument.Symbol,
		&instrument.Name,
		&priceStr,
		&previousStr,
		&changeStr,
		&instrument.MentionCount,
	); err != nil {
		return nil, err
	}

	var err error
	if instrument.Price, err = parseDecimal(priceStr, "price"); err != nil {
		return nil, err
	}
	if instrument.PreviousPrice, err = parseDecimal(previousStr, "previous_price"); err != nil {
		return nil, err
	}
	if instrument.Change, err = parseDecimal(changeStr, "price_change"); err != nil {
		return nil, err
	}
	return &instrument, nil
}

// GetByID retrieves an instrument by its ID
func (r *instrumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM instruments WHERE id = ?`

	instrument, err := scanInstrument(r.db.QueryRowContext(ctx, r.db.rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("instrument %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get instrument by ID: %w", err)
	}
	return instrument, nil
}

// GetBySymbol retrieves an instrument by its symbol, ignoring case
func (r *instrumentRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.Instrument, error) {
	return getInstrumentBySymbol(ctx, r.db, r.db, symbol)
}

func getInstrumentBySymbol(ctx context.Context, db *DB, q queryer, symbol string) (*domain.Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM instruments WHERE LOWER(symbol) = LOWER(CAST(? AS TEXT))`

	instrument, err := scanInstrument(q.QueryRowContext(ctx, db.rebind(query), symbol))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("instrument %q: %w", symbol, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get instrument by symbol: %w", err)
	}
	return instrument, nil
}

// List retrieves all instruments ordered by symbol
func (r *instrumentRepository) List(ctx context.Context) ([]*domain.Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM instruments ORDER BY symbol ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query instruments: %w", err)
	}
	defer rows.Close()

	instruments := make([]*domain.Instrument, 0)
	for rows.Next() {
		instrument, err := scanInstrument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan instrument: %w", err)
		}
		instruments = append(instruments, instrument)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instruments: %w", err)
	}

	return instruments, nil
}

// Create creates a new instrument; symbols are unique ignoring case
func (r *instrumentRepository) Create(ctx context.Context, instrument *domain.Instrument) error {
	if err := instrument.Validate(); err != nil {
		return fmt.Errorf("failed to create instrument: %w", err)
	}

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	_, err = getInstrumentBySymbol(ctx, r.db, dbTx, instrument.Symbol)
	if err == nil {
		return fmt.Errorf("failed to create instrument %q: %w", instrument.Symbol, domain.ErrDuplicateSymbol)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	query := `
		INSERT INTO instruments (` + instrumentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = dbTx.ExecContext(ctx, r.db.rebind(query),
		instrument.ID,
		instrument.Symbol,
		instrument.Name,
		instrument.Price.String(),
		instrument.PreviousPrice.String(),
		instrument.Change.String(),
		instrument.MentionCount,
	)
	if err != nil {
		return fmt.Errorf("failed to create instrument: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdatePrice applies a price update; the last writer wins
func (r *instrumentRepository) UpdatePrice(ctx context.Context, update domain.PriceUpdate) error {
	query := `
		UPDATE instruments
		SET price = ?, previous_price = ?, price_change = ?, mention_count = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, r.db.rebind(query),
		update.NewPrice.String(),
		update.PreviousPrice.String(),
		update.Change.String(),
		update.MentionCount,
		update.InstrumentID,
	)
	if err != nil {
		return fmt.Errorf("failed to update instrument price: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("instrument %s: %w", update.InstrumentID, domain.ErrNotFound)
	}
	return nil
}

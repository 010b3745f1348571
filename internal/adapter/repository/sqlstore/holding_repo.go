package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/tradesim-backend/internal/domain"
)

// holdingRepository implements domain.HoldingRepository
type holdingRepository struct {
	db *DB
}

// NewHoldingRepository creates a new holding repository
func NewHoldingRepository(db *DB) domain.HoldingRepository {
	return &holdingRepository{db: db}
}

const holdingColumns = `account_id, instrument_id, instrument_name, shares, current_price, owns`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHolding(row rowScanner) (*domain.Holding, error) {
	var holding domain.Holding
	var sharesStr, priceStr string

	if err := row.Scan(
		&holding.AccountID,
		&holding.InstrumentID,
		&holding.InstrumentName,
		&sharesStr,
		&priceStr,
		&holding.Owns,
	); err != nil {
		return nil, err
	}

	var err error
	if holding.Shares, err = parseDecimal(sharesStr, "shares"); err != nil {
		return nil, err
	}
	if holding.CurrentPrice, err = parseDecimal(priceStr, "current_price"); err != nil {
		return nil, err
	}
	return &holding, nil
}

// Get retrieves the holding of an account in one instrument
func (r *holdingRepository) Get(ctx context.Context, accountID, instrumentID uuid.UUID) (*domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE account_id = ? AND instrument_id = ?`

	holding, err := scanHolding(r.db.QueryRowContext(ctx, r.db.rebind(query), accountID, instrumentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("holding of account %s in instrument %s: %w", accountID, instrumentID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get holding: %w", err)
	}
	return holding, nil
}

// ListByAccount retrieves all holdings of an account ordered by instrument name
func (r *holdingRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE account_id = ? ORDER BY instrument_name ASC`

	rows, err := r.db.QueryContext(ctx, r.db.rebind(query), accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holdings: %w", err)
	}
	defer rows.Close()

	holdings := make([]*domain.Holding, 0)
	for rows.Next() {
		holding, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding: %w", err)
		}
		holdings = append(holdings, holding)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holdings: %w", err)
	}

	return holdings, nil
}

// UpdatePrice overwrites CurrentPrice on every holding of an instrument
func (r *holdingRepository) UpdatePrice(ctx context.Context, update domain.PriceUpdate) error {
	query := `UPDATE holdings SET current_price = ? WHERE instrument_id = ?`

	if _, err := r.db.ExecContext(ctx, r.db.rebind(query), update.NewPrice.String(), update.InstrumentID); err != nil {
		return fmt.Errorf("failed to update holding prices: %w", err)
	}
	return nil
}

func saveHolding(ctx context.Context, db *DB, q queryer, holding *domain.Holding) error {
	if holding.IsEmpty() {
		query := `DELETE FROM holdings WHERE account_id = ? AND instrument_id = ?`
		if _, err := q.ExecContext(ctx, db.rebind(query), holding.AccountID, holding.InstrumentID); err != nil {
			return fmt.Errorf("failed to delete holding: %w", err)
		}
		return nil
	}

	query := `
		INSERT INTO holdings (` + holdingColumns + `)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (account_id, instrument_id) DO UPDATE SET
			instrument_name = excluded.instrument_name,
			shares = excluded.shares,
			current_price = excluded.current_price,
			owns = excluded.owns
	`

	_, err := q.ExecContext(ctx, db.rebind(query),
		holding.AccountID,
		holding.InstrumentID,
		holding.InstrumentName,
		holding.Shares.String(),
		holding.CurrentPrice.String(),
		holding.Owns,
	)
	if err != nil {
		return fmt.Errorf("failed to save holding: %w", err)
	}
	return nil
}

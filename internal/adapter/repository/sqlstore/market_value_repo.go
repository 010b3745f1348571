package sqlstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/tradesim-backend/internal/domain"
)

// marketValueRepository implements domain.MarketValueRepository
type marketValueRepository struct {
	db *DB
}

// NewMarketValueRepository creates a new market value repository
func NewMarketValueRepository(db *DB) domain.MarketValueRepository {
	return &marketValueRepository{db: db}
}

// Add creates a new market value snapshot
func (r *marketValueRepository) Add(ctx context.Context, snapshot *domain.MarketValueSnapshot) error {
	query := `
		INSERT INTO market_values (id, account_id, recorded_at, value)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, r.db.rebind(query),
		snapshot.ID,
		snapshot.AccountID,
		formatTime(snapshot.Time),
		snapshot.Value.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert market value snapshot: %w", err)
	}

	return nil
}

// ListByAccount retrieves the snapshots of an account in chronological order
func (r *marketValueRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.MarketValueSnapshot, error) {
	query := `
		SELECT id, account_id, recorded_at, value
		FROM market_values
		WHERE account_id = ?
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, r.db.rebind(query), accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to query market values: %w", err)
	}
	defer rows.Close()

	snapshots := make([]*domain.MarketValueSnapshot, 0)
	for rows.Next() {
		var snapshot domain.MarketValueSnapshot
		var recordedAtStr, valueStr string

		if err := rows.Scan(&snapshot.ID, &snapshot.AccountID, &recordedAtStr, &valueStr); err != nil {
			return nil, fmt.Errorf("failed to scan market value: %w", err)
		}
		if snapshot.Time, err = parseTime(recordedAtStr, "recorded_at"); err != nil {
			return nil, err
		}
		if snapshot.Value, err = parseDecimal(valueStr, "value"); err != nil {
			return nil, err
		}

		snapshots = append(snapshots, &snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating market values: %w", err)
	}

	return snapshots, nil
}

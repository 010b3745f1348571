package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/simaogato/tradesim-backend/internal/domain"
)

// marketHoursRow is the key of the single market_hours row
const marketHoursRow = 1

// marketHoursRepository implements domain.MarketHoursRepository
type marketHoursRepository struct {
	db *DB
}

// NewMarketHoursRepository creates a new market hours repository
func NewMarketHoursRepository(db *DB) domain.MarketHoursRepository {
	return &marketHoursRepository{db: db}
}

// Get returns the configured hours
func (r *marketHoursRepository) Get(ctx context.Context) (*domain.MarketHours, error) {
	query := `
		SELECT open_time, close_time, closed_days
		FROM market_hours
		WHERE id = ?
	`

	var hours domain.MarketHours
	var closedDays string
	err := r.db.QueryRowContext(ctx, r.db.rebind(query), marketHoursRow).Scan(&hours.Open, &hours.Close, &closedDays)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("market hours: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get market hours: %w", err)
	}

	if closedDays != "" {
		hours.ClosedDays = strings.Split(closedDays, ",")
	}
	return &hours, nil
}

// Set replaces the configured hours
func (r *marketHoursRepository) Set(ctx context.Context, hours *domain.MarketHours) error {
	if err := hours.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO market_hours (id, open_time, close_time, closed_days)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			open_time = excluded.open_time,
			close_time = excluded.close_time,
			closed_days = excluded.closed_days
	`

	_, err := r.db.ExecContext(ctx, r.db.rebind(query),
		marketHoursRow,
		hours.Open,
		hours.Close,
		strings.Join(hours.ClosedDays, ","),
	)
	if err != nil {
		return fmt.Errorf("failed to save market hours: %w", err)
	}
	return nil
}

package sqlstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Times travel as RFC 3339 text. lib/pq hands TIMESTAMPTZ back as time.Time,
// which database/sql formats into a *string destination the same way.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return t, nil
}

func parseDecimal(s, column string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return d, nil
}

func nullDecimal(s sql.NullString, column string) (decimal.Decimal, error) {
	if !s.Valid {
		return decimal.Zero, nil
	}
	return parseDecimal(s.String, column)
}

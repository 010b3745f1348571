package sqlstore

import (
	"context"
	"fmt"

	"github.com/simaogato/tradesim-backend/internal/domain"
)

// LedgerWriter implements domain.LedgerWriter with one database transaction per mutation
type LedgerWriter struct {
	db *DB
}

// NewLedgerWriter creates a new ledger writer
func NewLedgerWriter(db *DB) *LedgerWriter {
	return &LedgerWriter{db: db}
}

// Commit writes the account, holding and transaction of a mutation atomically
func (w *LedgerWriter) Commit(ctx context.Context, m *domain.Mutation) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("failed to commit mutation: %w", err)
	}

	dbTx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	if m.Account != nil {
		if err := upsertAccount(ctx, w.db, dbTx, m.Account); err != nil {
			return err
		}
	}

	if m.Holding != nil {
		if err := saveHolding(ctx, w.db, dbTx, m.Holding); err != nil {
			return err
		}
	}

	if err := insertTransaction(ctx, w.db, dbTx, m.Transaction); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

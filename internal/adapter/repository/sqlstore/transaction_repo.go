package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/tradesim-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

// Create appends a transaction on its own
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	if err := tx.Validate(); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return insertTransaction(ctx, r.db, r.db, tx)
}

func insertTransaction(ctx context.Context, db *DB, q queryer, tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, account_id, kind, amount, date, instrument_id, instrument_name, shares, owns, success)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var instrumentID uuid.NullUUID
	if tx.InstrumentID != nil {
		instrumentID = uuid.NullUUID{UUID: *tx.InstrumentID, Valid: true}
	}

	var shares sql.NullString
	if tx.Kind.IsTrade() {
		shares = sql.NullString{String: tx.Shares.String(), Valid: true}
	}

	_, err := q.ExecContext(ctx, db.rebind(query),
		tx.ID,
		tx.AccountID,
		string(tx.Kind),
		tx.Amount.String(),
		formatTime(tx.Date),
		instrumentID,
		tx.InstrumentName,
		shares,
		tx.Owns,
		tx.Success,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}
	return nil
}

// List retrieves a paginated list of transactions for an account, newest first
func (r *transactionRepository) List(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT id, account_id, kind, amount, date, instrument_id, instrument_name, shares, owns, success
		FROM transactions
		WHERE account_id = ?
		ORDER BY seq DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, r.db.rebind(query), accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		var tx domain.Transaction
		var kind, amountStr, dateStr string
		var instrumentID uuid.NullUUID
		var shares sql.NullString

		err := rows.Scan(
			&tx.ID,
			&tx.AccountID,
			&kind,
			&amountStr,
			&dateStr,
			&instrumentID,
			&tx.InstrumentName,
			&shares,
			&tx.Owns,
			&tx.Success,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		tx.Kind = domain.TransactionKind(kind)
		if instrumentID.Valid {
			id := instrumentID.UUID
			tx.InstrumentID = &id
		}
		if tx.Amount, err = parseDecimal(amountStr, "amount"); err != nil {
			return nil, err
		}
		if tx.Shares, err = nullDecimal(shares, "shares"); err != nil {
			return nil, err
		}
		if tx.Date, err = parseTime(dateStr, "date"); err != nil {
			return nil, err
		}

		transactions = append(transactions, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// Count returns the total number of transactions of an account
func (r *transactionRepository) Count(ctx context.Context, accountID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE account_id = ?`

	var count int
	if err := r.db.QueryRowContext(ctx, r.db.rebind(query), accountID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

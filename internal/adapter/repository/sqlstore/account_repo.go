package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/simaogato/tradesim-backend/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

// GetByID retrieves an account by its ID
func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return getAccount(ctx, r.db, r.db, id)
}

func getAccount(ctx context.Context, db *DB, q queryer, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT id, balance, account_value, updated_at
		FROM accounts
		WHERE id = ?
	`

	var account domain.Account
	var balanceStr, accountValueStr, updatedAtStr string

	err := q.QueryRowContext(ctx, db.rebind(query), id).Scan(
		&account.ID,
		&balanceStr,
		&accountValueStr,
		&updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}

	if account.Balance, err = parseDecimal(balanceStr, "balance"); err != nil {
		return nil, err
	}
	if account.AccountValue, err = parseDecimal(accountValueStr, "account_value"); err != nil {
		return nil, err
	}
	if account.UpdatedAt, err = parseTime(updatedAtStr, "updated_at"); err != nil {
		return nil, err
	}

	return &account, nil
}

func upsertAccount(ctx context.Context, db *DB, q queryer, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, balance, account_value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			balance = excluded.balance,
			account_value = excluded.account_value,
			updated_at = excluded.updated_at
	`

	_, err := q.ExecContext(ctx, db.rebind(query),
		account.ID,
		account.Balance.String(),
		account.AccountValue.String(),
		formatTime(account.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}
	return nil
}

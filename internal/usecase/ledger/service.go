package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/simaogato/tradesim-backend/internal/domain"
	"github.com/simaogato/tradesim-backend/internal/usecase/accountlock"
)

// HistoryPage is one page of an account's transaction log
type HistoryPage struct {
	Transactions []*domain.Transaction
	TotalCount   int
}

// LedgerService handles validated money movement and the transaction log
type LedgerService struct {
	AccountRepo     domain.AccountRepository
	TransactionRepo domain.TransactionRepository
	Writer          domain.LedgerWriter
	Locker          *accountlock.Locker
	Now             func() time.Time

	log zerolog.Logger
}

// NewLedgerService creates a new LedgerService instance
func NewLedgerService(
	accountRepo domain.AccountRepository,
	transactionRepo domain.TransactionRepository,
	writer domain.LedgerWriter,
	locker *accountlock.Locker,
	log zerolog.Logger,
) *LedgerService {
	return &LedgerService{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
		Writer:          writer,
		Locker:          locker,
		Now:             time.Now,
		log:             log.With().Str("component", "ledger").Logger(),
	}
}

// Deposit adds cash to an account
// Logic:
//  1. Validate amount (> 0 after rounding to cents)
//  2. Fetch the account, or start a new one on the first deposit
//  3. Increment balance and commit it together with a DEPOSIT transaction
//
// Deposits are not idempotent: every call is a new deposit.
func (s *LedgerService) Deposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*domain.Receipt, error) {
	amount = domain.RoundCurrency(amount)
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	unlock := s.Locker.Lock(accountID)
	defer unlock()

	account, err := s.AccountRepo.GetByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		account = domain.NewAccount(accountID)
	}

	now := s.Now()
	account.Balance = domain.RoundCurrency(account.Balance.Add(amount))
	account.UpdatedAt = now
	tx := domain.NewCashTransaction(accountID, domain.TransactionKindDeposit, amount, true, now)

	if err := s.Writer.Commit(ctx, &domain.Mutation{Account: account, Transaction: tx}); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("account_id", accountID.String()).
		Str("amount", amount.StringFixed(domain.CurrencyPlaces)).
		Str("balance", account.Balance.StringFixed(domain.CurrencyPlaces)).
		Msg("Deposit recorded")

	return &domain.Receipt{Account: account, Transaction: tx}, nil
}

// Withdraw removes cash from an account
// Logic:
//  1. Validate amount (> 0 after rounding to cents)
//  2. If there is no account or the balance is too low, append a failed
//     WITHDRAW transaction and return ErrInsufficientFunds (balance untouched)
//  3. Otherwise decrement balance and commit it with a successful transaction
func (s *LedgerService) Withdraw(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*domain.Receipt, error) {
	amount = domain.RoundCurrency(amount)
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	unlock := s.Locker.Lock(accountID)
	defer unlock()

	account, err := s.AccountRepo.GetByID(ctx, accountID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := s.Now()
	if account == nil || account.Balance.LessThan(amount) {
		cause := fmt.Errorf("%w: cannot withdraw %s", domain.ErrInsufficientFunds, amount.StringFixed(domain.CurrencyPlaces))
		if err := s.recordRejected(ctx, domain.NewCashTransaction(accountID, domain.TransactionKindWithdraw, amount, false, now)); err != nil {
			return nil, errors.Join(cause, err)
		}
		return nil, cause
	}

	account.Balance = domain.RoundCurrency(account.Balance.Sub(amount))
	account.UpdatedAt = now
	tx := domain.NewCashTransaction(accountID, domain.TransactionKindWithdraw, amount, true, now)

	if err := s.Writer.Commit(ctx, &domain.Mutation{Account: account, Transaction: tx}); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("account_id", accountID.String()).
		Str("amount", amount.StringFixed(domain.CurrencyPlaces)).
		Str("balance", account.Balance.StringFixed(domain.CurrencyPlaces)).
		Msg("Withdrawal recorded")

	return &domain.Receipt{Account: account, Transaction: tx}, nil
}

// GetAccount returns the account, or ErrNoAccount if the user never deposited
func (s *LedgerService) GetAccount(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	account, err := s.AccountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoAccount
		}
		return nil, err
	}
	return account, nil
}

// History returns a page of the account's transaction log, newest first
func (s *LedgerService) History(ctx context.Context, accountID uuid.UUID, limit, offset int) (*HistoryPage, error) {
	if limit <= 0 {
		return nil, errors.New("limit must be positive")
	}
	if offset < 0 {
		return nil, errors.New("offset must be non-negative")
	}

	total, err := s.TransactionRepo.Count(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	transactions, err := s.TransactionRepo.List(ctx, accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &HistoryPage{Transactions: transactions, TotalCount: total}, nil
}

// recordRejected appends an unsuccessful transaction for audit
func (s *LedgerService) recordRejected(ctx context.Context, tx *domain.Transaction) error {
	if err := s.TransactionRepo.Create(ctx, tx); err != nil {
		return fmt.Errorf("failed to record rejected %s: %w", tx.Kind, err)
	}

	s.log.Warn().
		Str("account_id", tx.AccountID.String()).
		Str("kind", string(tx.Kind)).
		Str("amount", tx.Amount.StringFixed(domain.CurrencyPlaces)).
		Msg("Rejected attempt recorded")

	return nil
}

package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/simaogato/tradesim-backend/internal/adapter/repository/memory"
	"github.com/simaogato/tradesim-backend/internal/domain"
	"github.com/simaogato/tradesim-backend/internal/usecase/accountlock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAccountRepository is a mock implementation of AccountRepository for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository for testing
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) List(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]*domain.Transaction, error) {
	args := m.Called(ctx, accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Count(ctx context.Context, accountID uuid.UUID) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

// MockLedgerWriter is a mock implementation of LedgerWriter for testing
type MockLedgerWriter struct {
	mock.Mock
}

func (m *MockLedgerWriter) Commit(ctx context.Context, mutation *domain.Mutation) error {
	args := m.Called(ctx, mutation)
	return args.Error(0)
}

func newMockedService() (*LedgerService, *MockAccountRepository, *MockTransactionRepository, *MockLedgerWriter) {
	accounts := new(MockAccountRepository)
	transactions := new(MockTransactionRepository)
	writer := new(MockLedgerWriter)
	service := NewLedgerService(accounts, transactions, writer, accountlock.New(), zerolog.Nop())
	return service, accounts, transactions, writer
}

func newMemoryService() *LedgerService {
	store := memory.NewStore()
	return NewLedgerService(
		memory.NewAccountRepository(store),
		memory.NewTransactionRepository(store),
		store,
		accountlock.New(),
		zerolog.Nop(),
	)
}

func TestDeposit_CreatesAccountOnFirstDeposit(t *testing.T) {
	ctx := context.Background()
	service, accounts, _, writer := newMockedService()
	accountID := uuid.New()

	accounts.On("GetByID", ctx, accountID).Return(nil, fmt.Errorf("account %s: %w", accountID, domain.ErrNotFound))

	writer.On("Commit", ctx, mock.MatchedBy(func(m *domain.Mutation) bool {
		return m.Account.ID == accountID &&
			m.Account.Balance.Equal(decimal.NewFromInt(100)) &&
			m.Account.AccountValue.IsZero() &&
			m.Holding == nil &&
			m.Transaction.Kind == domain.TransactionKindDeposit &&
			m.Transaction.Amount.Equal(decimal.NewFromInt(100)) &&
			m.Transaction.Success
	})).Return(nil)

	receipt, err := service.Deposit(ctx, accountID, decimal.NewFromInt(100))

	require.NoError(t, err)
	assert.True(t, receipt.Account.Balance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, domain.TransactionKindDeposit, receipt.Transaction.Kind)
	accounts.AssertExpectations(t)
	writer.AssertExpectations(t)
}

func TestDeposit_IncrementsExistingBalance(t *testing.T) {
	ctx := context.Background()
	service, accounts, _, writer := newMockedService()
	accountID := uuid.New()

	accounts.On("GetByID", ctx, accountID).Return(&domain.Account{
		ID:           accountID,
		Balance:      decimal.RequireFromString("10.50"),
		AccountValue: decimal.NewFromInt(40),
	}, nil)
	writer.On("Commit", ctx, mock.Anything).Return(nil)

	receipt, err := service.Deposit(ctx, accountID, decimal.RequireFromString("0.255"))

	require.NoError(t, err)
	// 0.255 rounds half away from zero to 0.26
	assert.Equal(t, "10.76", receipt.Account.Balance.StringFixed(2))
	assert.Equal(t, "0.26", receipt.Transaction.Amount.StringFixed(2))
	assert.True(t, receipt.Account.AccountValue.Equal(decimal.NewFromInt(40)), "deposits never touch account value")
}

func TestDeposit_InvalidAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
	}{
		{"zero", decimal.Zero},
		{"negative", decimal.NewFromInt(-5)},
		{"rounds to zero", decimal.RequireFromString("0.004")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			service, accounts, transactions, writer := newMockedService()

			receipt, err := service.Deposit(ctx, uuid.New(), tt.amount)

			assert.Nil(t, receipt)
			assert.ErrorIs(t, err, domain.ErrInvalidAmount)
			accounts.AssertNotCalled(t, "GetByID")
			transactions.AssertNotCalled(t, "Create")
			writer.AssertNotCalled(t, "Commit")
		})
	}
}

func TestDeposit_RepositoryFailure(t *testing.T) {
	ctx := context.Background()
	service, accounts, _, writer := newMockedService()
	accountID := uuid.New()

	accounts.On("GetByID", ctx, accountID).Return(nil, errors.New("connection refused"))

	_, err := service.Deposit(ctx, accountID, decimal.NewFromInt(10))

	assert.EqualError(t, err, "connection refused")
	writer.AssertNotCalled(t, "Commit")
}

func TestWithdraw_Success(t *testing.T) {
	ctx := context.Background()
	service, accounts, transactions, writer := newMockedService()
	accountID := uuid.New()

	accounts.On("GetByID", ctx, accountID).Return(&domain.Account{ID: accountID, Balance: decimal.NewFromInt(100)}, nil)
	writer.On("Commit", ctx, mock.MatchedBy(func(m *domain.Mutation) bool {
		return m.Account.Balance.Equal(decimal.NewFromInt(60)) &&
			m.Transaction.Kind == domain.TransactionKindWithdraw &&
			m.Transaction.Success
	})).Return(nil)

	receipt, err := service.Withdraw(ctx, accountID, decimal.NewFromInt(40))

	require.NoError(t, err)
	assert.True(t, receipt.Account.Balance.Equal(decimal.NewFromInt(60)))
	transactions.AssertNotCalled(t, "Create")
	writer.AssertExpectations(t)
}

func TestWithdraw_InsufficientFundsRecordsFailedTransaction(t *testing.T) {
	ctx := context.Background()
	service, accounts, transactions, writer := newMockedService()
	accountID := uuid.New()

	accounts.On("GetByID", ctx, accountID).Return(&domain.Account{ID: accountID, Balance: decimal.NewFromInt(30)}, nil)
	transactions.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
		return tx.Kind == domain.TransactionKindWithdraw &&
			!tx.Success &&
			tx.Amount.Equal(decimal.NewFromInt(50)) &&
			tx.AccountID == accountID
	})).Return(nil)

	receipt, err := service.Withdraw(ctx, accountID, decimal.NewFromInt(50))

	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	writer.AssertNotCalled(t, "Commit")
	transactions.AssertExpectations(t)
}

func TestWithdraw_NoAccountRecordsFailedTransaction(t *testing.T) {
	ctx := context.Background()
	service, accounts, transactions, writer := newMockedService()
	accountID := uuid.New()

	accounts.On("GetByID", ctx, accountID).Return(nil, domain.ErrNotFound)
	transactions.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
		return tx.Kind == domain.TransactionKindWithdraw && !tx.Success
	})).Return(nil)

	_, err := service.Withdraw(ctx, accountID, decimal.NewFromInt(1))

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	writer.AssertNotCalled(t, "Commit")
	transactions.AssertExpectations(t)
}

func TestWithdraw_RecordFailureKeepsInsufficientFunds(t *testing.T) {
	ctx := context.Background()
	service, accounts, transactions, writer := newMockedService()
	accountID := uuid.New()
	dbErr := errors.New("disk full")

	accounts.On("GetByID", ctx, accountID).Return(&domain.Account{ID: accountID, Balance: decimal.NewFromInt(30)}, nil)
	transactions.On("Create", ctx, mock.Anything).Return(dbErr)

	receipt, err := service.Withdraw(ctx, accountID, decimal.NewFromInt(50))

	assert.Nil(t, receipt)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.ErrorIs(t, err, dbErr)
	writer.AssertNotCalled(t, "Commit")
}

func TestWithdraw_InvalidAmount(t *testing.T) {
	ctx := context.Background()
	service, accounts, transactions, _ := newMockedService()

	_, err := service.Withdraw(ctx, uuid.New(), decimal.NewFromInt(-1))

	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	accounts.AssertNotCalled(t, "GetByID")
	transactions.AssertNotCalled(t, "Create")
}

func TestGetAccount_NoAccount(t *testing.T) {
	ctx := context.Background()
	service, accounts, _, _ := newMockedService()
	accountID := uuid.New()

	accounts.On("GetByID", ctx, accountID).Return(nil, domain.ErrNotFound)

	_, err := service.GetAccount(ctx, accountID)
	assert.ErrorIs(t, err, domain.ErrNoAccount)
}

func TestHistory_Pagination(t *testing.T) {
	ctx := context.Background()
	service, _, transactions, _ := newMockedService()
	accountID := uuid.New()
	page := []*domain.Transaction{
		domain.NewCashTransaction(accountID, domain.TransactionKindDeposit, decimal.NewFromInt(1), true, time.Now()),
	}

	transactions.On("Count", ctx, accountID).Return(7, nil)
	transactions.On("List", ctx, accountID, 1, 2).Return(page, nil)

	result, err := service.History(ctx, accountID, 1, 2)

	require.NoError(t, err)
	assert.Equal(t, 7, result.TotalCount)
	assert.Len(t, result.Transactions, 1)

	_, err = service.History(ctx, accountID, 0, 0)
	assert.Error(t, err)
	_, err = service.History(ctx, accountID, 1, -1)
	assert.Error(t, err)
}

func TestLedger_ScenarioWithMemoryStore(t *testing.T) {
	ctx := context.Background()
	service := newMemoryService()
	accountID := uuid.New()

	_, err := service.GetAccount(ctx, accountID)
	assert.ErrorIs(t, err, domain.ErrNoAccount)

	receipt, err := service.Deposit(ctx, accountID, decimal.RequireFromString("100.00"))
	require.NoError(t, err)
	assert.Equal(t, "100.00", receipt.Account.Balance.StringFixed(2))

	// A withdrawal larger than the balance never changes it
	_, err = service.Withdraw(ctx, accountID, decimal.RequireFromString("100.01"))
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	account, err := service.GetAccount(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", account.Balance.StringFixed(2))

	history, err := service.History(ctx, accountID, 10, 0)
	require.NoError(t, err)
	require.Equal(t, 2, history.TotalCount)
	assert.Equal(t, domain.TransactionKindWithdraw, history.Transactions[0].Kind)
	assert.False(t, history.Transactions[0].Success)
	assert.Equal(t, domain.TransactionKindDeposit, history.Transactions[1].Kind)
	assert.True(t, history.Transactions[1].Success)
}

func TestLedger_BalanceNeverNegativeForRandomSequences(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewPCG(7, 11))

	for run := 0; run < 20; run++ {
		service := newMemoryService()
		accountID := uuid.New()
		operations := 0

		for i := 0; i < 50; i++ {
			amount := decimal.New(rng.Int64N(20000)+1, -2) // 0.01 .. 200.00
			if rng.IntN(2) == 0 {
				_, err := service.Deposit(ctx, accountID, amount)
				require.NoError(t, err)
			} else {
				_, err := service.Withdraw(ctx, accountID, amount)
				if err != nil {
					require.ErrorIs(t, err, domain.ErrInsufficientFunds)
				}
			}
			operations++

			account, err := service.GetAccount(ctx, accountID)
			if err == nil {
				assert.False(t, account.Balance.IsNegative())
			}
		}

		// Every operation produced exactly one transaction, including rejected ones
		history, err := service.History(ctx, accountID, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, operations, history.TotalCount)
	}
}

func TestLedger_ConcurrentDepositsAreNotLost(t *testing.T) {
	ctx := context.Background()
	service := newMemoryService()
	accountID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Deposit(ctx, accountID, decimal.NewFromInt(2))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	account, err := service.GetAccount(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", account.Balance.StringFixed(2))
}

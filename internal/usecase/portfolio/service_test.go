package portfolio

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/simaogato/tradesim-backend/internal/adapter/repository/memory"
	"github.com/simaogato/tradesim-backend/internal/domain"
	"github.com/simaogato/tradesim-backend/internal/usecase/accountlock"
	"github.com/simaogato/tradesim-backend/internal/usecase/ledger"
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

// MockHoldingRepository is a mock implementation of HoldingRepository for testing
type MockHoldingRepository struct {
	mock.Mock
}

func (m *MockHoldingRepository) Get(ctx context.Context, accountID, instrumentID uuid.UUID) (*domain.Holding, error) {
	args := m.Called(ctx, accountID, instrumentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*domain.Holding, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Holding), args.Error(1)
}

func (m *MockHoldingRepository) UpdatePrice(ctx context.Context, update domain.PriceUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

// MockInstrumentRepository is a mock implementation of InstrumentRepository for testing
type MockInstrumentRepository struct {
	mock.Mock
}

func (m *MockInstrumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Instrument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Instrument), args.Error(1)
}

func (m *MockInstrumentRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.Instrument, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Instrument), args.Error(1)
}

func (m *MockInstrumentRepository) List(ctx context.Context) ([]*domain.Instrument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Instrument), args.Error(1)
}

func (m *MockInstrumentRepository) Create(ctx context.Context, instrument *domain.Instrument) error {
	args := m.Called(ctx, instrument)
	return args.Error(0)
}

func (m *MockInstrumentRepository) UpdatePrice(ctx context.Context, update domain.PriceUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
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

type mocks struct {
	accounts     *MockAccountRepository
	holdings     *MockHoldingRepository
	instruments  *MockInstrumentRepository
	transactions *MockTransactionRepository
	writer       *MockLedgerWriter
}

func newMockedService() (*PortfolioService, *mocks) {
	m := &mocks{
		accounts:     new(MockAccountRepository),
		holdings:     new(MockHoldingRepository),
		instruments:  new(MockInstrumentRepository),
		transactions: new(MockTransactionRepository),
		writer:       new(MockLedgerWriter),
	}
	service := NewPortfolioService(m.accounts, m.holdings, m.instruments, m.transactions, m.writer, accountlock.New(), zerolog.Nop())
	return service, m
}

// fixture wires a portfolio and a ledger service over one memory store
type fixture struct {
	portfolio   *PortfolioService
	ledger      *ledger.LedgerService
	holdings    domain.HoldingRepository
	instruments domain.InstrumentRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	locker := accountlock.New()
	accounts := memory.NewAccountRepository(store)
	holdings := memory.NewHoldingRepository(store)
	instruments := memory.NewInstrumentRepository(store)
	transactions := memory.NewTransactionRepository(store)

	return &fixture{
		portfolio:   NewPortfolioService(accounts, holdings, instruments, transactions, store, locker, zerolog.Nop()),
		ledger:      ledger.NewLedgerService(accounts, transactions, store, locker, zerolog.Nop()),
		holdings:    holdings,
		instruments: instruments,
	}
}

func (f *fixture) addInstrument(t *testing.T, symbol, price string) *domain.Instrument {
	t.Helper()
	instrument := &domain.Instrument{
		ID:     uuid.New(),
		Symbol: symbol,
		Name:   symbol + " Corp",
		Price:  decimal.RequireFromString(price),
	}
	require.NoError(t, f.instruments.Create(context.Background(), instrument))
	return instrument
}

func testInstrument(price string) *domain.Instrument {
	return &domain.Instrument{
		ID:     uuid.New(),
		Symbol: "ACME",
		Name:   "Acme Corp",
		Price:  decimal.RequireFromString(price),
	}
}

func TestBuy_Success(t *testing.T) {
	ctx := context.Background()
	service, m := newMockedService()
	accountID := uuid.New()
	instrument := testInstrument("10.00")

	m.instruments.On("GetByID", ctx, instrument.ID).Return(instrument, nil)
	m.accounts.On("GetByID", ctx, accountID).Return(&domain.Account{ID: accountID, Balance: decimal.NewFromInt(100)}, nil)
	m.holdings.On("Get", ctx, accountID, instrument.ID).Return(nil, fmt.Errorf("holding: %w", domain.ErrNotFound))
	m.writer.On("Commit", ctx, mock.MatchedBy(func(mut *domain.Mutation) bool {
		return mut.Account.Balance.Equal(decimal.NewFromInt(50)) &&
			mut.Account.AccountValue.Equal(decimal.NewFromInt(50)) &&
			mut.Holding.Shares.Equal(decimal.NewFromInt(5)) &&
			mut.Holding.CurrentPrice.Equal(decimal.NewFromInt(10)) &&
			mut.Transaction.Kind == domain.TransactionKindBuy &&
			mut.Transaction.Amount.Equal(decimal.NewFromInt(50)) &&
			*mut.Transaction.InstrumentID == instrument.ID &&
			mut.Transaction.Owns &&
			mut.Transaction.Success
	})).Return(nil)

	receipt, err := service.Buy(ctx, TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.NewFromInt(5)})

	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", receipt.Holding.InstrumentName)
	m.writer.AssertExpectations(t)
	m.transactions.AssertNotCalled(t, "Create")
}

func TestBuy_MergesIntoExistingHolding(t *testing.T) {
	ctx := context.Background()
	service, m := newMockedService()
	accountID := uuid.New()
	instrument := testInstrument("12.00")

	m.instruments.On("GetByID", ctx, instrument.ID).Return(instrument, nil)
	m.accounts.On("GetByID", ctx, accountID).Return(&domain.Account{
		ID:           accountID,
		Balance:      decimal.NewFromInt(100),
		AccountValue: decimal.NewFromInt(30),
	}, nil)
	m.holdings.On("Get", ctx, accountID, instrument.ID).Return(&domain.Holding{
		AccountID:    accountID,
		InstrumentID: instrument.ID,
		Shares:       decimal.NewFromInt(3),
		CurrentPrice: decimal.NewFromInt(10),
		Owns:         true,
	}, nil)
	m.writer.On("Commit", ctx, mock.Anything).Return(nil)

	receipt, err := service.Buy(ctx, TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.NewFromInt(2)})

	require.NoError(t, err)
	assert.Equal(t, "5", receipt.Holding.Shares.String())
	assert.Equal(t, "12.00", receipt.Holding.CurrentPrice.StringFixed(2), "current price is overwritten with the trade snapshot")
	assert.Equal(t, "76.00", receipt.Account.Balance.StringFixed(2))
	assert.Equal(t, "54.00", receipt.Account.AccountValue.StringFixed(2))
}

func TestBuy_RoundsCostHalfAwayFromZero(t *testing.T) {
	ctx := context.Background()
	service, m := newMockedService()
	accountID := uuid.New()
	instrument := testInstrument("3.35")

	m.instruments.On("GetByID", ctx, instrument.ID).Return(instrument, nil)
	m.accounts.On("GetByID", ctx, accountID).Return(&domain.Account{ID: accountID, Balance: decimal.NewFromInt(10)}, nil)
	m.holdings.On("Get", ctx, accountID, instrument.ID).Return(nil, domain.ErrNotFound)
	m.writer.On("Commit", ctx, mock.Anything).Return(nil)

	// 1.5 * 3.35 = 5.025 -> 5.03
	receipt, err := service.Buy(ctx, TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.RequireFromString("1.5")})

	require.NoError(t, err)
	assert.Equal(t, "5.03", receipt.Transaction.Amount.StringFixed(2))
	assert.Equal(t, "4.97", receipt.Account.Balance.StringFixed(2))
}

func TestBuy_InvalidShareCount(t *testing.T) {
	tests := []struct {
		name   string
		shares decimal.Decimal
	}{
		{"zero", decimal.Zero},
		{"negative", decimal.NewFromInt(-1)},
		{"rounds to zero", decimal.RequireFromString("0.001")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newMockedService()

			_, err := service.Buy(context.Background(), TradeInput{AccountID: uuid.New(), InstrumentID: uuid.New(), Shares: tt.shares})

			assert.ErrorIs(t, err, domain.ErrInvalidShareCount)
			m.instruments.AssertNotCalled(t, "GetByID")
			m.transactions.AssertNotCalled(t, "Create")
			m.writer.AssertNotCalled(t, "Commit")
		})
	}
}

func TestBuy_UnknownInstrument(t *testing.T) {
	ctx := context.Background()
	service, m := newMockedService()
	instrumentID := uuid.New()

	m.instruments.On("GetByID", ctx, instrumentID).Return(nil, fmt.Errorf("instrument %s: %w", instrumentID, domain.ErrNotFound))

	_, err := service.Buy(ctx, TradeInput{AccountID: uuid.New(), InstrumentID: instrumentID, Shares: decimal.NewFromInt(1)})

	assert.ErrorIs(t, err, domain.ErrInstrumentNotFound)
	m.transactions.AssertNotCalled(t, "Create")
}

func TestBuy_NoAccountRecordsRejectedTransaction(t *testing.T) {
	ctx := context.Background()
	service, m := newMockedService()
	accountID := uuid.New()
	instrument := testInstrument("10.00")

	m.instruments.On("GetByID", ctx, instrument.ID).Return(instrument, nil)
	m.accounts.On("GetByID", ctx, accountID).Return(nil, domain.ErrNotFound)
	m.transactions.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
		return tx.Kind == domain.TransactionKindBuy && !tx.Success && !tx.Owns
	})).Return(nil)

	_, err := service.Buy(ctx, TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.NewFromInt(1)})

	assert.ErrorIs(t, err, domain.ErrNoAccount)
	m.transactions.AssertExpectations(t)
	m.writer.AssertNotCalled(t, "Commit")
}

func TestBuy_InsufficientFundsRecordsRejectedTransaction(t *testing.T) {
	ctx := context.Background()
	service, m := newMockedService()
	accountID := uuid.New()
	instrument := testInstrument("10.00")

	m.instruments.On("GetByID", ctx, instrument.ID).Return(instrument, nil)
	m.accounts.On("GetByID", ctx, accountID).Return(&domain.Account{ID: accountID, Balance: decimal.RequireFromString("49.99")}, nil)
	m.transactions.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
		return tx.Kind == domain.TransactionKindBuy && !tx.Success && tx.Amount.Equal(decimal.NewFromInt(50))
	})).Return(nil)

	_, err := service.Buy(ctx, TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.NewFromInt(5)})

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	m.transactions.AssertExpectations(t)
	m.holdings.AssertNotCalled(t, "Get")
	m.writer.AssertNotCalled(t, "Commit")
}

func TestBuy_RecordFailureIsJoined(t *testing.T) {
	ctx := context.Background()
	service, m := newMockedService()
	accountID := uuid.New()
	instrument := testInstrument("10.00")

	m.instruments.On("GetByID", ctx, instrument.ID).Return(instrument, nil)
	m.accounts.On("GetByID", ctx, accountID).Return(nil, domain.ErrNotFound)
	m.transactions.On("Create", ctx, mock.Anything).Return(errors.New("disk full"))

	_, err := service.Buy(ctx, TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.NewFromInt(1)})

	assert.ErrorIs(t, err, domain.ErrNoAccount)
	assert.ErrorContains(t, err, "disk full")
}

func TestSell_NoHoldingRecordsRejectedTransaction(t *testing.T) {
	ctx := context.Background()
	service, m := newMockedService()
	accountID := uuid.New()
	instrument := testInstrument("10.00")

	m.instruments.On("GetByID", ctx, instrument.ID).Return(instrument, nil)
	m.holdings.On("Get", ctx, accountID, instrument.ID).Return(nil, domain.ErrNotFound)
	m.transactions.On("Create", ctx, mock.MatchedBy(func(tx *domain.Transaction) bool {
		return tx.Kind == domain.TransactionKindSell && !tx.Success
	})).Return(nil)

	_, err := service.Sell(ctx, TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.NewFromInt(1)})

	assert.ErrorIs(t, err, domain.ErrNoHolding)
	m.transactions.AssertExpectations(t)
	m.writer.AssertNotCalled(t, "Commit")
}

func TestSell_HoldingLookupFailure(t *testing.T) {
	ctx := context.Background()
	service, m := newMockedService()
	accountID := uuid.New()
	instrument := testInstrument("10.00")

	m.instruments.On("GetByID", ctx, instrument.ID).Return(instrument, nil)
	m.holdings.On("Get", ctx, accountID, instrument.ID).Return(nil, errors.New("connection reset"))

	_, err := service.Sell(ctx, TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.NewFromInt(1)})

	assert.EqualError(t, err, "connection reset")
	m.transactions.AssertNotCalled(t, "Create")
}

func TestApplyPriceUpdate(t *testing.T) {
	ctx := context.Background()
	service, m := newMockedService()
	update := domain.PriceUpdate{InstrumentID: uuid.New(), NewPrice: decimal.NewFromInt(7)}

	m.holdings.On("UpdatePrice", ctx, update).Return(nil).Once()
	require.NoError(t, service.ApplyPriceUpdate(ctx, update))

	m.holdings.On("UpdatePrice", ctx, update).Return(errors.New("boom")).Once()
	assert.ErrorContains(t, service.ApplyPriceUpdate(ctx, update), "failed to reprice holdings")
}

func TestPortfolio_DepositBuySellScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	accountID := uuid.New()
	instrument := f.addInstrument(t, "TEN", "10.00")

	receipt, err := f.ledger.Deposit(ctx, accountID, decimal.RequireFromString("100.00"))
	require.NoError(t, err)
	assert.Equal(t, "100.00", receipt.Account.Balance.StringFixed(2))

	history, err := f.ledger.History(ctx, accountID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, history.TotalCount)

	buy, err := f.portfolio.Buy(ctx, TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.Equal(t, "50.00", buy.Transaction.Amount.StringFixed(2))
	assert.Equal(t, "50.00", buy.Account.Balance.StringFixed(2))
	assert.Equal(t, "50.00", buy.Account.AccountValue.StringFixed(2))

	holding, err := f.holdings.Get(ctx, accountID, instrument.ID)
	require.NoError(t, err)
	assert.Equal(t, "5", holding.Shares.String())
	assert.Equal(t, "10.00", holding.CurrentPrice.StringFixed(2))

	sell, err := f.portfolio.Sell(ctx, TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.NewFromInt(5)})
	require.NoError(t, err)
	assert.Equal(t, "50.00", sell.Transaction.Amount.StringFixed(2))
	assert.Equal(t, "100.00", sell.Account.Balance.StringFixed(2))
	assert.Equal(t, "0.00", sell.Account.AccountValue.StringFixed(2))
	assert.False(t, sell.Transaction.Owns)

	_, err = f.holdings.Get(ctx, accountID, instrument.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "a holding sold down to zero is removed")

	history, err = f.ledger.History(ctx, accountID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, history.TotalCount)
}

func TestPortfolio_RoundTripIsNoOp(t *testing.T) {
	ctx := context.Background()
	prices := []string{"0.01", "1.33", "9.99", "47.50", "123.45"}
	shareCounts := []string{"0.5", "1", "2.25", "7", "13.33"}

	for _, price := range prices {
		for _, shares := range shareCounts {
			t.Run(price+"x"+shares, func(t *testing.T) {
				f := newFixture(t)
				accountID := uuid.New()
				instrument := f.addInstrument(t, "RT", price)

				_, err := f.ledger.Deposit(ctx, accountID, decimal.NewFromInt(5000))
				require.NoError(t, err)

				input := TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.RequireFromString(shares)}
				_, err = f.portfolio.Buy(ctx, input)
				require.NoError(t, err)
				receipt, err := f.portfolio.Sell(ctx, input)
				require.NoError(t, err)

				assert.Equal(t, "5000.00", receipt.Account.Balance.StringFixed(2))
				assert.Equal(t, "0.00", receipt.Account.AccountValue.StringFixed(2))
			})
		}
	}
}

func TestPortfolio_SellMoreThanOwnedLeavesHoldingUnchanged(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	accountID := uuid.New()
	instrument := f.addInstrument(t, "HOLD", "4.00")

	_, err := f.ledger.Deposit(ctx, accountID, decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = f.portfolio.Buy(ctx, TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.NewFromInt(3)})
	require.NoError(t, err)

	_, err = f.portfolio.Sell(ctx, TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.RequireFromString("3.01")})
	assert.ErrorIs(t, err, domain.ErrInsufficientShares)

	holding, err := f.holdings.Get(ctx, accountID, instrument.ID)
	require.NoError(t, err)
	assert.Equal(t, "3", holding.Shares.String())

	history, err := f.ledger.History(ctx, accountID, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, history.TotalCount)
	assert.Equal(t, domain.TransactionKindSell, history.Transactions[0].Kind)
	assert.False(t, history.Transactions[0].Success)

	// Partial sell keeps the holding
	_, err = f.portfolio.Sell(ctx, TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.NewFromInt(1)})
	require.NoError(t, err)
	holding, err = f.holdings.Get(ctx, accountID, instrument.ID)
	require.NoError(t, err)
	assert.Equal(t, "2", holding.Shares.String())
}

func TestPortfolio_TradeUsesPriceAfterTick(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	accountID := uuid.New()
	instrument := f.addInstrument(t, "TICK", "10.00")

	_, err := f.ledger.Deposit(ctx, accountID, decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = f.portfolio.Buy(ctx, TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.NewFromInt(2)})
	require.NoError(t, err)

	update := domain.PriceUpdate{
		InstrumentID:  instrument.ID,
		NewPrice:      decimal.NewFromInt(15),
		PreviousPrice: decimal.NewFromInt(10),
		Change:        decimal.NewFromInt(5),
	}
	require.NoError(t, f.instruments.UpdatePrice(ctx, update))
	require.NoError(t, f.portfolio.ApplyPriceUpdate(ctx, update))

	holding, err := f.holdings.Get(ctx, accountID, instrument.ID)
	require.NoError(t, err)
	assert.Equal(t, "15.00", holding.CurrentPrice.StringFixed(2))

	receipt, err := f.portfolio.Sell(ctx, TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.NewFromInt(2)})
	require.NoError(t, err)
	assert.Equal(t, "30.00", receipt.Transaction.Amount.StringFixed(2))
	assert.Equal(t, "110.00", receipt.Account.Balance.StringFixed(2))
	// Account value tracks money moved, not price drift
	assert.Equal(t, "-10.00", receipt.Account.AccountValue.StringFixed(2))
}

func TestPortfolio_ConcurrentBuysNeverOverdraw(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	accountID := uuid.New()
	instrument := f.addInstrument(t, "RACE", "10.00")

	_, err := f.ledger.Deposit(ctx, accountID, decimal.NewFromInt(100))
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.portfolio.Buy(ctx, TradeInput{AccountID: accountID, InstrumentID: instrument.ID, Shares: decimal.NewFromInt(1)})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, succeeded)
	account, err := f.ledger.GetAccount(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, "0.00", account.Balance.StringFixed(2))

	holding, err := f.holdings.Get(ctx, accountID, instrument.ID)
	require.NoError(t, err)
	assert.Equal(t, "10", holding.Shares.String())
}

package portfolio

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

// TradeInput represents the input for a buy or sell order
type TradeInput struct {
	AccountID    uuid.UUID
	InstrumentID uuid.UUID
	Shares       decimal.Decimal
}

// PortfolioService executes buy and sell orders against the ledger and holdings
type PortfolioService struct {
	AccountRepo     domain.AccountRepository
	HoldingRepo     domain.HoldingRepository
	InstrumentRepo  domain.InstrumentRepository
	TransactionRepo domain.TransactionRepository
	Writer          domain.LedgerWriter
	Locker          *accountlock.Locker
	Now             func() time.Time

	log zerolog.Logger
}

// NewPortfolioService creates a new PortfolioService instance
func NewPortfolioService(
	accountRepo domain.AccountRepository,
	holdingRepo domain.HoldingRepository,
	instrumentRepo domain.InstrumentRepository,
	transactionRepo domain.TransactionRepository,
	writer domain.LedgerWriter,
	locker *accountlock.Locker,
	log zerolog.Logger,
) *PortfolioService {
	return &PortfolioService{
		AccountRepo:     accountRepo,
		HoldingRepo:     holdingRepo,
		InstrumentRepo:  instrumentRepo,
		TransactionRepo: transactionRepo,
		Writer:          writer,
		Locker:          locker,
		Now:             time.Now,
		log:             log.With().Str("component", "portfolio").Logger(),
	}
}

// Buy purchases shares of an instrument at its current price
// Logic:
//  1. Validate share count, resolve the instrument
//  2. Under the account lock: snapshot the price, cost = round2(shares * price)
//  3. Reject (and record) if there is no account or the balance is too low
//  4. Merge into the existing holding (sum shares, overwrite CurrentPrice) or create one
//  5. Commit balance -= cost, accountValue += cost, holding and BUY transaction as one unit
func (s *PortfolioService) Buy(ctx context.Context, input TradeInput) (*domain.Receipt, error) {
	shares, err := validateShares(input.Shares)
	if err != nil {
		return nil, err
	}

	unlock := s.Locker.Lock(input.AccountID)
	defer unlock()

	instrument, err := s.getInstrument(ctx, input.InstrumentID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	price := instrument.Price
	cost := domain.TradeValue(shares, price)

	account, err := s.AccountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, s.reject(ctx, input.AccountID, domain.TransactionKindBuy, instrument, shares, cost, now, domain.ErrNoAccount)
	}

	if account.Balance.LessThan(cost) {
		cause := fmt.Errorf("%w: need %s, have %s", domain.ErrInsufficientFunds,
			cost.StringFixed(domain.CurrencyPlaces), account.Balance.StringFixed(domain.CurrencyPlaces))
		return nil, s.reject(ctx, input.AccountID, domain.TransactionKindBuy, instrument, shares, cost, now, cause)
	}

	holding, err := s.HoldingRepo.Get(ctx, input.AccountID, instrument.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		holding = &domain.Holding{
			AccountID:    input.AccountID,
			InstrumentID: instrument.ID,
			Shares:       decimal.Zero,
		}
	}

	holding.Shares = domain.RoundShares(holding.Shares.Add(shares))
	holding.CurrentPrice = price
	holding.InstrumentName = instrument.Name
	holding.Owns = true

	account.Balance = domain.RoundCurrency(account.Balance.Sub(cost))
	account.AccountValue = domain.RoundCurrency(account.AccountValue.Add(cost))
	account.UpdatedAt = now

	tx := domain.NewTradeTransaction(input.AccountID, domain.TransactionKindBuy, instrument, shares, cost, true, now)

	if err := s.Writer.Commit(ctx, &domain.Mutation{Account: account, Holding: holding, Transaction: tx}); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("account_id", input.AccountID.String()).
		Str("symbol", instrument.Symbol).
		Str("shares", shares.String()).
		Str("price", price.StringFixed(domain.CurrencyPlaces)).
		Str("cost", cost.StringFixed(domain.CurrencyPlaces)).
		Msg("Buy executed")

	return &domain.Receipt{Account: account, Holding: holding, Transaction: tx}, nil
}

// Sell sells shares of an instrument at its current price
// Logic:
//  1. Validate share count, resolve the instrument
//  2. Under the account lock: reject (and record) if there is no holding or too few shares
//  3. proceeds = round2(shares * price)
//  4. Decrement shares; the holding is deleted when it reaches exactly zero
//  5. Commit balance += proceeds, accountValue -= proceeds, holding and SELL transaction as one unit
func (s *PortfolioService) Sell(ctx context.Context, input TradeInput) (*domain.Receipt, error) {
	shares, err := validateShares(input.Shares)
	if err != nil {
		return nil, err
	}

	unlock := s.Locker.Lock(input.AccountID)
	defer unlock()

	instrument, err := s.getInstrument(ctx, input.InstrumentID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	price := instrument.Price
	proceeds := domain.TradeValue(shares, price)

	holding, err := s.HoldingRepo.Get(ctx, input.AccountID, instrument.ID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, s.reject(ctx, input.AccountID, domain.TransactionKindSell, instrument, shares, proceeds, now, domain.ErrNoHolding)
	}

	if holding.Shares.LessThan(shares) {
		cause := fmt.Errorf("%w: own %s, selling %s", domain.ErrInsufficientShares, holding.Shares.String(), shares.String())
		return nil, s.reject(ctx, input.AccountID, domain.TransactionKindSell, instrument, shares, proceeds, now, cause)
	}

	account, err := s.AccountRepo.GetByID(ctx, input.AccountID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, s.reject(ctx, input.AccountID, domain.TransactionKindSell, instrument, shares, proceeds, now, domain.ErrNoAccount)
	}

	holding.Shares = domain.RoundShares(holding.Shares.Sub(shares))
	holding.Owns = !holding.IsEmpty()

	account.Balance = domain.RoundCurrency(account.Balance.Add(proceeds))
	account.AccountValue = domain.RoundCurrency(account.AccountValue.Sub(proceeds))
	account.UpdatedAt = now

	tx := domain.NewTradeTransaction(input.AccountID, domain.TransactionKindSell, instrument, shares, proceeds, true, now)

	if err := s.Writer.Commit(ctx, &domain.Mutation{Account: account, Holding: holding, Transaction: tx}); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("account_id", input.AccountID.String()).
		Str("symbol", instrument.Symbol).
		Str("shares", shares.String()).
		Str("price", price.StringFixed(domain.CurrencyPlaces)).
		Str("proceeds", proceeds.StringFixed(domain.CurrencyPlaces)).
		Bool("closed", holding.IsEmpty()).
		Msg("Sell executed")

	return &domain.Receipt{Account: account, Holding: holding, Transaction: tx}, nil
}

// ApplyPriceUpdate reprices every holding of the ticked instrument.
// Shares are untouched, so this never races with a trade's share count.
func (s *PortfolioService) ApplyPriceUpdate(ctx context.Context, update domain.PriceUpdate) error {
	if err := s.HoldingRepo.UpdatePrice(ctx, update); err != nil {
		return fmt.Errorf("failed to reprice holdings: %w", err)
	}
	return nil
}

func validateShares(shares decimal.Decimal) (decimal.Decimal, error) {
	shares = domain.RoundShares(shares)
	if !shares.IsPositive() {
		return decimal.Zero, domain.ErrInvalidShareCount
	}
	return shares, nil
}

func (s *PortfolioService) getInstrument(ctx context.Context, id uuid.UUID) (*domain.Instrument, error) {
	instrument, err := s.InstrumentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInstrumentNotFound, id)
		}
		return nil, err
	}
	return instrument, nil
}

// reject records a failed trade attempt and returns cause.
// Rejected trades are logged like rejected withdrawals so the audit trail is symmetric.
func (s *PortfolioService) reject(
	ctx context.Context,
	accountID uuid.UUID,
	kind domain.TransactionKind,
	instrument *domain.Instrument,
	shares, amount decimal.Decimal,
	now time.Time,
	cause error,
) error {
	tx := domain.NewTradeTransaction(accountID, kind, instrument, shares, amount, false, now)
	if err := s.TransactionRepo.Create(ctx, tx); err != nil {
		return errors.Join(cause, fmt.Errorf("failed to record rejected %s: %w", kind, err))
	}

	s.log.Warn().
		Err(cause).
		Str("account_id", accountID.String()).
		Str("kind", string(kind)).
		Str("symbol", instrument.Symbol).
		Str("shares", shares.String()).
		Msg("Trade rejected")

	return cause
}

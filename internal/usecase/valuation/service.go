package valuation

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/tradesim-backend/internal/domain"
	"github.com/simaogato/tradesim-backend/internal/usecase/accountlock"
)

// NetWorthResult represents the calculated net worth
type NetWorthResult struct {
	Total      decimal.Decimal
	Liquidity  decimal.Decimal // Cash balance
	Equity     decimal.Decimal // Market value of holdings
	ProfitLoss decimal.Decimal // Equity minus book value, rounded to cents
}

// HoldingLine is one row of a holdings report
type HoldingLine struct {
	InstrumentID   uuid.UUID
	InstrumentName string
	Shares         decimal.Decimal
	CurrentPrice   decimal.Decimal
	TotalValue     decimal.Decimal
}

// ValuationService is the read side over accounts and holdings. It never mutates state
// except for appending market value snapshots.
// Reads that combine the account and its holdings take the account lock shared
// with the ledger and portfolio services, so they see one committed state.
type ValuationService struct {
	AccountRepo     domain.AccountRepository
	HoldingRepo     domain.HoldingRepository
	MarketValueRepo domain.MarketValueRepository
	Locker          *accountlock.Locker
	Now             func() time.Time
}

// NewValuationService creates a new ValuationService instance
func NewValuationService(
	accountRepo domain.AccountRepository,
	holdingRepo domain.HoldingRepository,
	marketValueRepo domain.MarketValueRepository,
	locker *accountlock.Locker,
) *ValuationService {
	return &ValuationService{
		AccountRepo:     accountRepo,
		HoldingRepo:     holdingRepo,
		MarketValueRepo: marketValueRepo,
		Locker:          locker,
		Now:             time.Now,
	}
}

// GetNetWorth calculates the net worth of an account
// Logic:
//   - Liquidity: account balance
//   - Equity: sum of shares * currentPrice over all holdings
//   - Total: Liquidity + Equity
//   - ProfitLoss: Equity - account.AccountValue
func (s *ValuationService) GetNetWorth(ctx context.Context, accountID uuid.UUID) (*NetWorthResult, error) {
	account, equity, err := s.read(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &NetWorthResult{
		Total:      account.Balance.Add(equity),
		Liquidity:  account.Balance,
		Equity:     equity,
		ProfitLoss: domain.RoundCurrency(equity.Sub(account.AccountValue)),
	}, nil
}

// PortfolioValue returns the market value of all holdings of an account.
// An account without holdings is worth zero.
func (s *ValuationService) PortfolioValue(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	holdings, err := s.HoldingRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list holdings: %w", err)
	}

	total := decimal.Zero
	for _, holding := range holdings {
		total = total.Add(holding.Value())
	}
	return total, nil
}

// HoldingsReport returns a lazy sequence of holding lines.
// Each range over the sequence reads the holdings again, so it can be restarted
// and always reflects the latest prices. A read failure is yielded once as the error.
func (s *ValuationService) HoldingsReport(ctx context.Context, accountID uuid.UUID) iter.Seq2[HoldingLine, error] {
	return func(yield func(HoldingLine, error) bool) {
		holdings, err := s.HoldingRepo.ListByAccount(ctx, accountID)
		if err != nil {
			yield(HoldingLine{}, fmt.Errorf("failed to list holdings: %w", err))
			return
		}

		for _, holding := range holdings {
			line := HoldingLine{
				InstrumentID:   holding.InstrumentID,
				InstrumentName: holding.InstrumentName,
				Shares:         holding.Shares,
				CurrentPrice:   holding.CurrentPrice,
				TotalValue:     domain.RoundCurrency(holding.Value()),
			}
			if !yield(line, nil) {
				return
			}
		}
	}
}

// CalculateProfit calculates the unrealised profit/loss of an account
// Logic: Profit = MarketValue - BookValue
// BookValue = account.AccountValue (money moved into holdings)
// MarketValue = current portfolio value
func (s *ValuationService) CalculateProfit(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	account, marketValue, err := s.read(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}

	return domain.RoundCurrency(marketValue.Sub(account.AccountValue)), nil
}

// RecordSnapshot records the current portfolio value of an account in its history
// Logic: Insert a new market value point (does NOT create a transaction entry)
func (s *ValuationService) RecordSnapshot(ctx context.Context, accountID uuid.UUID) (*domain.MarketValueSnapshot, error) {
	_, value, err := s.read(ctx, accountID)
	if err != nil {
		return nil, err
	}

	snapshot := &domain.MarketValueSnapshot{
		ID:        uuid.New(),
		AccountID: accountID,
		Time:      s.Now(),
		Value:     domain.RoundCurrency(value),
	}

	if err := s.MarketValueRepo.Add(ctx, snapshot); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// SnapshotHistory returns the recorded portfolio values of an account, oldest first
func (s *ValuationService) SnapshotHistory(ctx context.Context, accountID uuid.UUID) ([]*domain.MarketValueSnapshot, error) {
	return s.MarketValueRepo.ListByAccount(ctx, accountID)
}

// read loads the account and the value of its holdings under the account lock
func (s *ValuationService) read(ctx context.Context, accountID uuid.UUID) (*domain.Account, decimal.Decimal, error) {
	if s.Locker != nil {
		unlock := s.Locker.Lock(accountID)
		defer unlock()
	}

	account, err := s.getAccount(ctx, accountID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	equity, err := s.PortfolioValue(ctx, accountID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return account, equity, nil
}

func (s *ValuationService) getAccount(ctx context.Context, accountID uuid.UUID) (*domain.Account, error) {
	account, err := s.AccountRepo.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNoAccount
		}
		return nil, err
	}
	return account, nil
}

package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/simaogato/tradesim-backend/internal/domain"
	"github.com/simaogato/tradesim-backend/internal/usecase/ledger"
	"github.com/simaogato/tradesim-backend/internal/usecase/market"
	"github.com/simaogato/tradesim-backend/internal/usecase/portfolio"
	"github.com/simaogato/tradesim-backend/internal/usecase/simulator"
	"github.com/simaogato/tradesim-backend/internal/usecase/valuation"
)

// defaultPageSize is used by ListTransactions when no limit is given
const defaultPageSize = 50

// Server implements the TradeSimService gRPC server
type Server struct {
	LedgerService    *ledger.LedgerService
	PortfolioService *portfolio.PortfolioService
	ValuationService *valuation.ValuationService
	MarketService    *market.MarketService
	Simulator        *simulator.Simulator // nil when the simulation is disabled
}

// NewServer creates a new gRPC server instance
func NewServer(
	ledgerService *ledger.LedgerService,
	portfolioService *portfolio.PortfolioService,
	valuationService *valuation.ValuationService,
	marketService *market.MarketService,
	sim *simulator.Simulator,
) *Server {
	return &Server{
		LedgerService:    ledgerService,
		PortfolioService: portfolioService,
		ValuationService: valuationService,
		MarketService:    marketService,
		Simulator:        sim,
	}
}

// Deposit handles the Deposit RPC
func (s *Server) Deposit(ctx context.Context, req *DepositRequest) (*ReceiptResponse, error) {
	accountID, err := parseID(req.AccountID, "account_id")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	receipt, err := s.LedgerService.Deposit(ctx, accountID, amount)
	if err != nil {
		return nil, mapError(err)
	}
	return receiptToProto(receipt), nil
}

// Withdraw handles the Withdraw RPC
func (s *Server) Withdraw(ctx context.Context, req *WithdrawRequest) (*ReceiptResponse, error) {
	accountID, err := parseID(req.AccountID, "account_id")
	if err != nil {
		return nil, err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return nil, err
	}

	receipt, err := s.LedgerService.Withdraw(ctx, accountID, amount)
	if err != nil {
		return nil, mapError(err)
	}
	return receiptToProto(receipt), nil
}

// Buy handles the Buy RPC
func (s *Server) Buy(ctx context.Context, req *TradeRequest) (*ReceiptResponse, error) {
	input, err := parseTrade(req)
	if err != nil {
		return nil, err
	}

	receipt, err := s.PortfolioService.Buy(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}
	return receiptToProto(receipt), nil
}

// Sell handles the Sell RPC
func (s *Server) Sell(ctx context.Context, req *TradeRequest) (*ReceiptResponse, error) {
	input, err := parseTrade(req)
	if err != nil {
		return nil, err
	}

	receipt, err := s.PortfolioService.Sell(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}
	return receiptToProto(receipt), nil
}

// GetAccount handles the GetAccount RPC
func (s *Server) GetAccount(ctx context.Context, req *GetAccountRequest) (*GetAccountResponse, error) {
	accountID, err := parseID(req.AccountID, "account_id")
	if err != nil {
		return nil, err
	}

	account, err := s.LedgerService.GetAccount(ctx, accountID)
	if err != nil {
		return nil, mapError(err)
	}
	return &GetAccountResponse{Account: accountToProto(account)}, nil
}

// ListTransactions handles the ListTransactions RPC
func (s *Server) ListTransactions(ctx context.Context, req *ListTransactionsRequest) (*ListTransactionsResponse, error) {
	accountID, err := parseID(req.AccountID, "account_id")
	if err != nil {
		return nil, err
	}

	if req.Limit < 0 || req.Offset < 0 {
		return nil, status.Error(codes.InvalidArgument, "limit and offset must be non-negative")
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultPageSize
	}

	page, err := s.LedgerService.History(ctx, accountID, limit, req.Offset)
	if err != nil {
		return nil, mapError(err)
	}

	transactions := make([]*Transaction, 0, len(page.Transactions))
	for _, tx := range page.Transactions {
		transactions = append(transactions, transactionToProto(tx))
	}

	return &ListTransactionsResponse{
		Transactions: transactions,
		TotalCount:   page.TotalCount,
	}, nil
}

// ListHoldings handles the ListHoldings RPC
func (s *Server) ListHoldings(ctx context.Context, req *ListHoldingsRequest) (*ListHoldingsResponse, error) {
	accountID, err := parseID(req.AccountID, "account_id")
	if err != nil {
		return nil, err
	}

	holdings := make([]*Holding, 0)
	total := decimal.Zero
	for line, err := range s.ValuationService.HoldingsReport(ctx, accountID) {
		if err != nil {
			return nil, mapError(err)
		}
		total = total.Add(line.Shares.Mul(line.CurrentPrice))
		holdings = append(holdings, &Holding{
			InstrumentID:   line.InstrumentID.String(),
			InstrumentName: line.InstrumentName,
			Shares:         line.Shares.String(),
			CurrentPrice:   formatMoney(line.CurrentPrice),
			TotalValue:     formatMoney(line.TotalValue),
		})
	}

	return &ListHoldingsResponse{
		Holdings:       holdings,
		PortfolioValue: formatMoney(domain.RoundCurrency(total)),
	}, nil
}

// GetNetWorth handles the GetNetWorth RPC
func (s *Server) GetNetWorth(ctx context.Context, req *GetNetWorthRequest) (*GetNetWorthResponse, error) {
	accountID, err := parseID(req.AccountID, "account_id")
	if err != nil {
		return nil, err
	}

	result, err := s.ValuationService.GetNetWorth(ctx, accountID)
	if err != nil {
		return nil, mapError(err)
	}

	return &GetNetWorthResponse{
		Total:      formatMoney(result.Total),
		Liquidity:  formatMoney(result.Liquidity),
		Equity:     formatMoney(result.Equity),
		ProfitLoss: formatMoney(result.ProfitLoss),
	}, nil
}

// ListInstruments handles the ListInstruments RPC
func (s *Server) ListInstruments(ctx context.Context, req *ListInstrumentsRequest) (*ListInstrumentsResponse, error) {
	var instruments []*domain.Instrument
	var err error

	switch req.Sort {
	case "", SortBySymbol:
		instruments, err = s.MarketService.ListInstruments(ctx)
		if err == nil && req.Limit > 0 && len(instruments) > req.Limit {
			instruments = instruments[:req.Limit]
		}
	case SortByTrending:
		instruments, err = s.MarketService.Trending(ctx, req.Limit)
	case SortByMovers:
		instruments, err = s.MarketService.Movers(ctx, req.Limit)
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown sort %q: want %s, %s or %s", req.Sort, SortBySymbol, SortByTrending, SortByMovers)
	}
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListInstrumentsResponse{Instruments: make([]*Instrument, 0, len(instruments))}
	for _, instrument := range instruments {
		resp.Instruments = append(resp.Instruments, instrumentToProto(instrument))
	}
	return resp, nil
}

// GetInstrument handles the GetInstrument RPC
func (s *Server) GetInstrument(ctx context.Context, req *GetInstrumentRequest) (*GetInstrumentResponse, error) {
	instrumentID, err := parseID(req.InstrumentID, "instrument_id")
	if err != nil {
		return nil, err
	}

	instrument, err := s.MarketService.GetInstrument(ctx, instrumentID)
	if err != nil {
		return nil, mapError(err)
	}
	return &GetInstrumentResponse{Instrument: instrumentToProto(instrument)}, nil
}

// AddInstrument handles the AddInstrument RPC
func (s *Server) AddInstrument(ctx context.Context, req *AddInstrumentRequest) (*AddInstrumentResponse, error) {
	price, err := parseDecimal(req.Price, "price")
	if err != nil {
		return nil, err
	}

	instrument, err := s.MarketService.AddInstrument(ctx, req.Symbol, req.Name, price)
	if err != nil {
		return nil, mapError(err)
	}
	return &AddInstrumentResponse{Instrument: instrumentToProto(instrument)}, nil
}

// RecordSnapshot handles the RecordSnapshot RPC
func (s *Server) RecordSnapshot(ctx context.Context, req *RecordSnapshotRequest) (*RecordSnapshotResponse, error) {
	accountID, err := parseID(req.AccountID, "account_id")
	if err != nil {
		return nil, err
	}

	snapshot, err := s.ValuationService.RecordSnapshot(ctx, accountID)
	if err != nil {
		return nil, mapError(err)
	}
	return &RecordSnapshotResponse{Snapshot: snapshotToProto(snapshot)}, nil
}

// ListSnapshots handles the ListSnapshots RPC
func (s *Server) ListSnapshots(ctx context.Context, req *ListSnapshotsRequest) (*ListSnapshotsResponse, error) {
	accountID, err := parseID(req.AccountID, "account_id")
	if err != nil {
		return nil, err
	}

	history, err := s.ValuationService.SnapshotHistory(ctx, accountID)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListSnapshotsResponse{Snapshots: make([]*Snapshot, 0, len(history))}
	for _, snapshot := range history {
		resp.Snapshots = append(resp.Snapshots, snapshotToProto(snapshot))
	}
	return resp, nil
}

// RunOvernight handles the RunOvernight RPC
func (s *Server) RunOvernight(ctx context.Context, _ *RunOvernightRequest) (*RunOvernightResponse, error) {
	if s.Simulator == nil {
		return nil, status.Error(codes.Unavailable, "price simulation is disabled")
	}

	updates, err := s.Simulator.RunOvernight(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &RunOvernightResponse{Updates: make([]*PriceUpdate, 0, len(updates))}
	for _, u := range updates {
		resp.Updates = append(resp.Updates, &PriceUpdate{
			InstrumentID:  u.InstrumentID.String(),
			NewPrice:      formatMoney(u.NewPrice),
			PreviousPrice: formatMoney(u.PreviousPrice),
			Change:        u.ChangeLabel(),
			MentionCount:  u.MentionCount,
		})
	}
	return resp, nil
}

// GetMarketHours handles the GetMarketHours RPC
func (s *Server) GetMarketHours(ctx context.Context, _ *GetMarketHoursRequest) (*MarketHoursResponse, error) {
	hours, err := s.MarketService.GetHours(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return &MarketHoursResponse{Hours: hoursToProto(hours, hours.IsOpen(time.Now()))}, nil
}

// SetMarketHours handles the SetMarketHours RPC
func (s *Server) SetMarketHours(ctx context.Context, req *SetMarketHoursRequest) (*MarketHoursResponse, error) {
	hours, err := s.MarketService.SetHours(ctx, req.Open, req.Close, req.ClosedDays)
	if err != nil {
		return nil, mapError(err)
	}
	return &MarketHoursResponse{Hours: hoursToProto(hours, hours.IsOpen(time.Now()))}, nil
}

func parseID(s, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", field, err)
	}
	return id, nil
}

func parseDecimal(s, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, status.Errorf(codes.InvalidArgument, "invalid %s format: %v", field, err)
	}
	return d, nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		// A non-numeric amount is the same user error as a non-positive one
		return decimal.Zero, status.Error(codes.InvalidArgument, domain.ErrInvalidAmount.Error())
	}
	return amount, nil
}

func parseTrade(req *TradeRequest) (portfolio.TradeInput, error) {
	accountID, err := parseID(req.AccountID, "account_id")
	if err != nil {
		return portfolio.TradeInput{}, err
	}
	instrumentID, err := parseID(req.InstrumentID, "instrument_id")
	if err != nil {
		return portfolio.TradeInput{}, err
	}
	shares, err := decimal.NewFromString(req.Shares)
	if err != nil {
		// A non-numeric share count is the same user error as a non-positive one
		return portfolio.TradeInput{}, status.Errorf(codes.InvalidArgument, "%v", domain.ErrInvalidShareCount)
	}
	return portfolio.TradeInput{AccountID: accountID, InstrumentID: instrumentID, Shares: shares}, nil
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(domain.CurrencyPlaces)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func accountToProto(account *domain.Account) *Account {
	return &Account{
		AccountID:    account.ID.String(),
		Balance:      formatMoney(account.Balance),
		AccountValue: formatMoney(account.AccountValue),
		UpdatedAt:    formatTime(account.UpdatedAt),
	}
}

func transactionToProto(tx *domain.Transaction) *Transaction {
	out := &Transaction{
		ID:      tx.ID.String(),
		Kind:    string(tx.Kind),
		Amount:  formatMoney(tx.Amount),
		Date:    formatTime(tx.Date),
		Owns:    tx.Owns,
		Success: tx.Success,
	}
	if tx.InstrumentID != nil {
		out.InstrumentID = tx.InstrumentID.String()
		out.InstrumentName = tx.InstrumentName
		out.Shares = tx.Shares.String()
	}
	return out
}

func holdingToProto(holding *domain.Holding) *Holding {
	return &Holding{
		InstrumentID:   holding.InstrumentID.String(),
		InstrumentName: holding.InstrumentName,
		Shares:         holding.Shares.String(),
		CurrentPrice:   formatMoney(holding.CurrentPrice),
		TotalValue:     formatMoney(holding.Value()),
	}
}

func instrumentToProto(instrument *domain.Instrument) *Instrument {
	return &Instrument{
		ID:            instrument.ID.String(),
		Symbol:        instrument.Symbol,
		Name:          instrument.Name,
		Price:         formatMoney(instrument.Price),
		PreviousPrice: formatMoney(instrument.PreviousPrice),
		Change:        instrument.ChangeLabel(),
		MentionCount:  instrument.MentionCount,
	}
}

func snapshotToProto(snapshot *domain.MarketValueSnapshot) *Snapshot {
	return &Snapshot{
		ID:    snapshot.ID.String(),
		Time:  formatTime(snapshot.Time),
		Value: formatMoney(snapshot.Value),
	}
}

func hoursToProto(hours *domain.MarketHours, open bool) *MarketHours {
	closedDays := hours.ClosedDays
	if closedDays == nil {
		closedDays = []string{}
	}
	return &MarketHours{
		Open:       hours.Open,
		Close:      hours.Close,
		ClosedDays: closedDays,
		IsOpen:     open,
	}
}

func receiptToProto(receipt *domain.Receipt) *ReceiptResponse {
	resp := &ReceiptResponse{
		Transaction: transactionToProto(receipt.Transaction),
	}
	if receipt.Account != nil {
		resp.Account = accountToProto(receipt.Account)
	}
	if receipt.Holding != nil {
		resp.Holding = holdingToProto(receipt.Holding)
	}
	return resp
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidShareCount),
		errors.Is(err, domain.ErrInvalidInstrument),
		errors.Is(err, domain.ErrInvalidMarketHours):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrInsufficientShares),
		errors.Is(err, domain.ErrNoHolding):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrNoAccount),
		errors.Is(err, domain.ErrInstrumentNotFound),
		errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrDuplicateSymbol):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	if _, ok := status.FromError(err); ok {
		return err
	}
	return status.Error(codes.Internal, err.Error())
}

package grpc

// Amounts, prices and share counts travel as decimal strings; IDs as UUID
// strings; times as RFC 3339 strings.

type Account struct {
	AccountID    string `json:"account_id"`
	Balance      string `json:"balance"`
	AccountValue string `json:"account_value"`
	UpdatedAt    string `json:"updated_at"`
}

type Transaction struct {
	ID             string `json:"id"`
	Kind           string `json:"kind"`
	Amount         string `json:"amount"`
	Date           string `json:"date"`
	InstrumentID   string `json:"instrument_id,omitempty"`
	InstrumentName string `json:"instrument_name,omitempty"`
	Shares         string `json:"shares,omitempty"`
	Owns           bool   `json:"owns"`
	Success        bool   `json:"success"`
}

type Holding struct {
	InstrumentID   string `json:"instrument_id"`
	InstrumentName string `json:"instrument_name"`
	Shares         string `json:"shares"`
	CurrentPrice   string `json:"current_price"`
	TotalValue     string `json:"total_value"`
}

type Instrument struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	PreviousPrice string `json:"previous_price"`
	Change        string `json:"change"`
	MentionCount  int    `json:"mention_count"`
}

type Snapshot struct {
	ID    string `json:"id"`
	Time  string `json:"time"`
	Value string `json:"value"`
}

type MarketHours struct {
	Open       string   `json:"open"`
	Close      string   `json:"close"`
	ClosedDays []string `json:"closed_days"`
	IsOpen     bool     `json:"is_open"`
}

type PriceUpdate struct {
	InstrumentID  string `json:"instrument_id"`
	NewPrice      string `json:"new_price"`
	PreviousPrice string `json:"previous_price"`
	Change        string `json:"change"`
	MentionCount  int    `json:"mention_count"`
}

type DepositRequest struct {
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
}

type WithdrawRequest struct {
	AccountID string `json:"account_id"`
	Amount    string `json:"amount"`
}

// TradeRequest is the request of both Buy and Sell
type TradeRequest struct {
	AccountID    string `json:"account_id"`
	InstrumentID string `json:"instrument_id"`
	Shares       string `json:"shares"`
}

// ReceiptResponse is returned by every mutating RPC
type ReceiptResponse struct {
	Account     *Account     `json:"account"`
	Holding     *Holding     `json:"holding,omitempty"`
	Transaction *Transaction `json:"transaction"`
}

type GetAccountRequest struct {
	AccountID string `json:"account_id"`
}

type GetAccountResponse struct {
	Account *Account `json:"account"`
}

type ListTransactionsRequest struct {
	AccountID string `json:"account_id"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
}

type ListTransactionsResponse struct {
	Transactions []*Transaction `json:"transactions"`
	TotalCount   int            `json:"total_count"`
}

type ListHoldingsRequest struct {
	AccountID string `json:"account_id"`
}

type ListHoldingsResponse struct {
	Holdings       []*Holding `json:"holdings"`
	PortfolioValue string     `json:"portfolio_value"`
}

type GetNetWorthRequest struct {
	AccountID string `json:"account_id"`
}

type GetNetWorthResponse struct {
	Total      string `json:"total"`
	Liquidity  string `json:"liquidity"`
	Equity     string `json:"equity"`
	ProfitLoss string `json:"profit_loss"`
}

// Instrument list orderings
const (
	SortBySymbol   = "symbol"
	SortByTrending = "trending"
	SortByMovers   = "movers"
)

type ListInstrumentsRequest struct {
	Sort  string `json:"sort,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

type ListInstrumentsResponse struct {
	Instruments []*Instrument `json:"instruments"`
}

type GetInstrumentRequest struct {
	InstrumentID string `json:"instrument_id"`
}

type GetInstrumentResponse struct {
	Instrument *Instrument `json:"instrument"`
}

type AddInstrumentRequest struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Price  string `json:"price"`
}

type AddInstrumentResponse struct {
	Instrument *Instrument `json:"instrument"`
}

type RecordSnapshotRequest struct {
	AccountID string `json:"account_id"`
}

type RecordSnapshotResponse struct {
	Snapshot *Snapshot `json:"snapshot"`
}

type ListSnapshotsRequest struct {
	AccountID string `json:"account_id"`
}

type ListSnapshotsResponse struct {
	Snapshots []*Snapshot `json:"snapshots"`
}

type RunOvernightRequest struct{}

type RunOvernightResponse struct {
	Updates []*PriceUpdate `json:"updates"`
}

type GetMarketHoursRequest struct{}

type SetMarketHoursRequest struct {
	Open       string   `json:"open"`
	Close      string   `json:"close"`
	ClosedDays []string `json:"closed_days"`
}

type MarketHoursResponse struct {
	Hours *MarketHours `json:"hours"`
}

package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "tradesim.v1.TradeSimService"

// TradeSimServiceServer is the server API for the TradeSim service
type TradeSimServiceServer interface {
	Deposit(context.Context, *DepositRequest) (*ReceiptResponse, error)
	Withdraw(context.Context, *WithdrawRequest) (*ReceiptResponse, error)
	Buy(context.Context, *TradeRequest) (*ReceiptResponse, error)
	Sell(context.Context, *TradeRequest) (*ReceiptResponse, error)
	GetAccount(context.Context, *GetAccountRequest) (*GetAccountResponse, error)
	ListTransactions(context.Context, *ListTransactionsRequest) (*ListTransactionsResponse, error)
	ListHoldings(context.Context, *ListHoldingsRequest) (*ListHoldingsResponse, error)
	GetNetWorth(context.Context, *GetNetWorthRequest) (*GetNetWorthResponse, error)
	ListInstruments(context.Context, *ListInstrumentsRequest) (*ListInstrumentsResponse, error)
	GetInstrument(context.Context, *GetInstrumentRequest) (*GetInstrumentResponse, error)
	AddInstrument(context.Context, *AddInstrumentRequest) (*AddInstrumentResponse, error)
	RecordSnapshot(context.Context, *RecordSnapshotRequest) (*RecordSnapshotResponse, error)
	ListSnapshots(context.Context, *ListSnapshotsRequest) (*ListSnapshotsResponse, error)
	RunOvernight(context.Context, *RunOvernightRequest) (*RunOvernightResponse, error)
	GetMarketHours(context.Context, *GetMarketHoursRequest) (*MarketHoursResponse, error)
	SetMarketHours(context.Context, *SetMarketHoursRequest) (*MarketHoursResponse, error)
}

// ServiceDesc describes the TradeSim service for grpc.Server.RegisterService
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TradeSimServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Deposit", TradeSimServiceServer.Deposit),
		unary("Withdraw", TradeSimServiceServer.Withdraw),
		unary("Buy", TradeSimServiceServer.Buy),
		unary("Sell", TradeSimServiceServer.Sell),
		unary("GetAccount", TradeSimServiceServer.GetAccount),
		unary("ListTransactions", TradeSimServiceServer.ListTransactions),
		unary("ListHoldings", TradeSimServiceServer.ListHoldings),
		unary("GetNetWorth", TradeSimServiceServer.GetNetWorth),
		unary("ListInstruments", TradeSimServiceServer.ListInstruments),
		unary("GetInstrument", TradeSimServiceServer.GetInstrument),
		unary("AddInstrument", TradeSimServiceServer.AddInstrument),
		unary("RecordSnapshot", TradeSimServiceServer.RecordSnapshot),
		unary("ListSnapshots", TradeSimServiceServer.ListSnapshots),
		unary("RunOvernight", TradeSimServiceServer.RunOvernight),
		unary("GetMarketHours", TradeSimServiceServer.GetMarketHours),
		unary("SetMarketHours", TradeSimServiceServer.SetMarketHours),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tradesim/v1/tradesim.proto",
}

// RegisterTradeSimServiceServer registers srv on s
func RegisterTradeSimServiceServer(s grpc.ServiceRegistrar, srv TradeSimServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// unary builds the method descriptor of a unary RPC from its interface method
func unary[Req, Resp any](method string, call func(TradeSimServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(TradeSimServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(TradeSimServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// Client is the client API for the TradeSim service
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient creates a client over an established connection
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Req, Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in *Req, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, fullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Deposit(ctx context.Context, in *DepositRequest, opts ...grpc.CallOption) (*ReceiptResponse, error) {
	return invoke[DepositRequest, ReceiptResponse](ctx, c.cc, "Deposit", in, opts)
}

func (c *Client) Withdraw(ctx context.Context, in *WithdrawRequest, opts ...grpc.CallOption) (*ReceiptResponse, error) {
	return invoke[WithdrawRequest, ReceiptResponse](ctx, c.cc, "Withdraw", in, opts)
}

func (c *Client) Buy(ctx context.Context, in *TradeRequest, opts ...grpc.CallOption) (*ReceiptResponse, error) {
	return invoke[TradeRequest, ReceiptResponse](ctx, c.cc, "Buy", in, opts)
}

func (c *Client) Sell(ctx context.Context, in *TradeRequest, opts ...grpc.CallOption) (*ReceiptResponse, error) {
	return invoke[TradeRequest, ReceiptResponse](ctx, c.cc, "Sell", in, opts)
}

func (c *Client) GetAccount(ctx context.Context, in *GetAccountRequest, opts ...grpc.CallOption) (*GetAccountResponse, error) {
	return invoke[GetAccountRequest, GetAccountResponse](ctx, c.cc, "GetAccount", in, opts)
}

func (c *Client) ListTransactions(ctx context.Context, in *ListTransactionsRequest, opts ...grpc.CallOption) (*ListTransactionsResponse, error) {
	return invoke[ListTransactionsRequest, ListTransactionsResponse](ctx, c.cc, "ListTransactions", in, opts)
}

func (c *Client) ListHoldings(ctx context.Context, in *ListHoldingsRequest, opts ...grpc.CallOption) (*ListHoldingsResponse, error) {
	return invoke[ListHoldingsRequest, ListHoldingsResponse](ctx, c.cc, "ListHoldings", in, opts)
}

func (c *Client) GetNetWorth(ctx context.Context, in *GetNetWorthRequest, opts ...grpc.CallOption) (*GetNetWorthResponse, error) {
	return invoke[GetNetWorthRequest, GetNetWorthResponse](ctx, c.cc, "GetNetWorth", in, opts)
}

func (c *Client) ListInstruments(ctx context.Context, in *ListInstrumentsRequest, opts ...grpc.CallOption) (*ListInstrumentsResponse, error) {
	return invoke[ListInstrumentsRequest, ListInstrumentsResponse](ctx, c.cc, "ListInstruments", in, opts)
}

func (c *Client) GetInstrument(ctx context.Context, in *GetInstrumentRequest, opts ...grpc.CallOption) (*GetInstrumentResponse, error) {
	return invoke[GetInstrumentRequest, GetInstrumentResponse](ctx, c.cc, "GetInstrument", in, opts)
}

func (c *Client) AddInstrument(ctx context.Context, in *AddInstrumentRequest, opts ...grpc.CallOption) (*AddInstrumentResponse, error) {
	return invoke[AddInstrumentRequest, AddInstrumentResponse](ctx, c.cc, "AddInstrument", in, opts)
}

func (c *Client) RecordSnapshot(ctx context.Context, in *RecordSnapshotRequest, opts ...grpc.CallOption) (*RecordSnapshotResponse, error) {
	return invoke[RecordSnapshotRequest, RecordSnapshotResponse](ctx, c.cc, "RecordSnapshot", in, opts)
}

func (c *Client) ListSnapshots(ctx context.Context, in *ListSnapshotsRequest, opts ...grpc.CallOption) (*ListSnapshotsResponse, error) {
	return invoke[ListSnapshotsRequest, ListSnapshotsResponse](ctx, c.cc, "ListSnapshots", in, opts)
}

func (c *Client) RunOvernight(ctx context.Context, in *RunOvernightRequest, opts ...grpc.CallOption) (*RunOvernightResponse, error) {
	return invoke[RunOvernightRequest, RunOvernightResponse](ctx, c.cc, "RunOvernight", in, opts)
}

func (c *Client) GetMarketHours(ctx context.Context, in *GetMarketHoursRequest, opts ...grpc.CallOption) (*MarketHoursResponse, error) {
	return invoke[GetMarketHoursRequest, MarketHoursResponse](ctx, c.cc, "GetMarketHours", in, opts)
}

func (c *Client) SetMarketHours(ctx context.Context, in *SetMarketHoursRequest, opts ...grpc.CallOption) (*MarketHoursResponse, error) {
	return invoke[SetMarketHoursRequest, MarketHoursResponse](ctx, c.cc, "SetMarketHours", in, opts)
}

package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	grpcadapter "github.com/simaogato/tradesim-backend/internal/adapter/grpc"
)

// tradeCmd implements both buy and sell
type tradeCmd struct {
	kind       string
	account    string
	instrument string
	shares     string
}

func (c *tradeCmd) Name() string { return c.kind }
func (c *tradeCmd) Synopsis() string {
	return fmt.Sprintf("%s shares of an instrument at the current price", c.kind)
}
func (c *tradeCmd) Usage() string {
	return fmt.Sprintf(`tradectl %s -account <uuid> -instrument <id|symbol> -shares <decimal>

  Trades at the instrument's current price. Shares keep two decimals.
`, c.kind)
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account ID (required)")
	f.StringVar(&c.instrument, "instrument", "", "Instrument ID or symbol (required)")
	f.StringVar(&c.shares, "shares", "", "Number of shares (required)")
}

func (c *tradeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !requireAccount(c.account) || c.instrument == "" || c.shares == "" {
		fmt.Fprintln(os.Stderr, "Error: -account, -instrument and -shares are required.")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, client *grpcadapter.Client) error {
		instrumentID, err := resolveInstrument(ctx, client, c.instrument)
		if err != nil {
			return err
		}
		req := &grpcadapter.TradeRequest{AccountID: c.account, InstrumentID: instrumentID, Shares: c.shares}

		var resp *grpcadapter.ReceiptResponse
		if c.kind == "buy" {
			resp, err = client.Buy(ctx, req)
		} else {
			resp, err = client.Sell(ctx, req)
		}
		if err != nil {
			return err
		}
		printReceipt(stdout, resp)
		return nil
	})
}

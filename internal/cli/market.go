package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	grpcadapter "github.com/simaogato/tradesim-backend/internal/adapter/grpc"
)

type marketCmd struct {
	sort  string
	limit int
}

func (*marketCmd) Name() string     { return "market" }
func (*marketCmd) Synopsis() string { return "list instruments with their prices" }
func (*marketCmd) Usage() string {
	return `tradectl market [-sort symbol|trending|movers] [-n <limit>]

  Lists instruments. "trending" orders by mention count, "movers" by the
  size of the last price change.
`
}

func (c *marketCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sort, "sort", grpcadapter.SortBySymbol, "Ordering: symbol, trending or movers")
	f.IntVar(&c.limit, "n", 0, "Maximum number of instruments (0 for the server default)")
}

func (c *marketCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, client *grpcadapter.Client) error {
		resp, err := client.ListInstruments(ctx, &grpcadapter.ListInstrumentsRequest{Sort: c.sort, Limit: c.limit})
		if err != nil {
			return err
		}
		printInstruments(stdout, resp.Instruments)
		return nil
	})
}

type addInstrumentCmd struct {
	symbol string
	name   string
	price  string
}

func (*addInstrumentCmd) Name() string     { return "add-instrument" }
func (*addInstrumentCmd) Synopsis() string { return "add a new instrument to the market" }
func (*addInstrumentCmd) Usage() string {
	return `tradectl add-instrument -symbol <symbol> -name <name> -price <decimal>

  Adds a tradable instrument. The symbol must be unique (case-insensitive).
`
}

func (c *addInstrumentCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Ticker symbol (required)")
	f.StringVar(&c.name, "name", "", "Display name (required)")
	f.StringVar(&c.price, "price", "", "Initial price (required)")
}

func (c *addInstrumentCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbol == "" || c.name == "" || c.price == "" {
		fmt.Fprintln(os.Stderr, "Error: -symbol, -name and -price are required.")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, client *grpcadapter.Client) error {
		resp, err := client.AddInstrument(ctx, &grpcadapter.AddInstrumentRequest{Symbol: c.symbol, Name: c.name, Price: c.price})
		if err != nil {
			return err
		}
		printInstruments(stdout, []*grpcadapter.Instrument{resp.Instrument})
		return nil
	})
}

type overnightCmd struct{}

func (*overnightCmd) Name() string     { return "overnight" }
func (*overnightCmd) Synopsis() string { return "run one overnight price pass" }
func (*overnightCmd) Usage() string {
	return `tradectl overnight

  Moves a random set of winners up and losers down in one pass.
`
}

func (*overnightCmd) SetFlags(*flag.FlagSet) {}

func (*overnightCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, client *grpcadapter.Client) error {
		resp, err := client.RunOvernight(ctx, &grpcadapter.RunOvernightRequest{})
		if err != nil {
			return err
		}
		printUpdates(stdout, resp.Updates)
		return nil
	})
}

type hoursCmd struct{}

func (*hoursCmd) Name() string     { return "hours" }
func (*hoursCmd) Synopsis() string { return "show the market session" }
func (*hoursCmd) Usage() string {
	return `tradectl hours

  Shows the trading hours, the closed days and whether the market is open now.
`
}

func (*hoursCmd) SetFlags(*flag.FlagSet) {}

func (*hoursCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(ctx context.Context, client *grpcadapter.Client) error {
		resp, err := client.GetMarketHours(ctx, &grpcadapter.GetMarketHoursRequest{})
		if err != nil {
			return err
		}
		printHours(stdout, resp.Hours)
		return nil
	})
}

type setHoursCmd struct {
	open   string
	close  string
	closed string
}

func (*setHoursCmd) Name() string     { return "set-hours" }
func (*setHoursCmd) Synopsis() string { return "configure the market session" }
func (*setHoursCmd) Usage() string {
	return `tradectl set-hours -open <HH:MM> -close <HH:MM> [-closed <YYYY-MM-DD,...>]

  Sets the trading hours on the server clock. Equal open and close times keep
  the market open all day; a close before the open wraps past midnight.
  Intraday price ticks are skipped while the market is closed.
`
}

func (c *setHoursCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.open, "open", "", "Opening time, HH:MM (required)")
	f.StringVar(&c.close, "close", "", "Closing time, HH:MM (required)")
	f.StringVar(&c.closed, "closed", "", "Comma separated dates without trading")
}

func (c *setHoursCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.open == "" || c.close == "" {
		fmt.Fprintln(os.Stderr, "Error: -open and -close are required.")
		return subcommands.ExitUsageError
	}

	var closedDays []string
	if c.closed != "" {
		closedDays = strings.Split(c.closed, ",")
	}

	return run(ctx, func(ctx context.Context, client *grpcadapter.Client) error {
		resp, err := client.SetMarketHours(ctx, &grpcadapter.SetMarketHoursRequest{Open: c.open, Close: c.close, ClosedDays: closedDays})
		if err != nil {
			return err
		}
		printHours(stdout, resp.Hours)
		return nil
	})
}

package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	grpcadapter "github.com/simaogato/tradesim-backend/internal/adapter/grpc"
)

type accountCmd struct {
	account string
}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "display the cash balance and book value of an account" }
func (*accountCmd) Usage() string {
	return `tradectl account -account <uuid>
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account ID (required)")
}

func (c *accountCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !requireAccount(c.account) {
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, client *grpcadapter.Client) error {
		resp, err := client.GetAccount(ctx, &grpcadapter.GetAccountRequest{AccountID: c.account})
		if err != nil {
			return err
		}
		printAccount(stdout, resp.Account)
		return nil
	})
}

type historyCmd struct {
	account string
	limit   int
	offset  int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the transaction log, newest first" }
func (*historyCmd) Usage() string {
	return `tradectl history -account <uuid> [-n <limit>] [-offset <n>]

  Lists deposits, withdrawals and trades, including rejected attempts.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account ID (required)")
	f.IntVar(&c.limit, "n", 20, "Maximum number of transactions")
	f.IntVar(&c.offset, "offset", 0, "Number of newest transactions to skip")
}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !requireAccount(c.account) {
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, client *grpcadapter.Client) error {
		resp, err := client.ListTransactions(ctx, &grpcadapter.ListTransactionsRequest{
			AccountID: c.account,
			Limit:     c.limit,
			Offset:    c.offset,
		})
		if err != nil {
			return err
		}
		printTransactions(stdout, resp)
		return nil
	})
}

type holdingsCmd struct {
	account string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the holdings of an account at current prices" }
func (*holdingsCmd) Usage() string {
	return `tradectl holdings -account <uuid>
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account ID (required)")
}

func (c *holdingsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !requireAccount(c.account) {
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, client *grpcadapter.Client) error {
		resp, err := client.ListHoldings(ctx, &grpcadapter.ListHoldingsRequest{AccountID: c.account})
		if err != nil {
			return err
		}
		printHoldings(stdout, resp)
		return nil
	})
}

type netWorthCmd struct {
	account string
}

func (*netWorthCmd) Name() string     { return "networth" }
func (*netWorthCmd) Synopsis() string { return "display net worth, liquidity, equity and profit" }
func (*netWorthCmd) Usage() string {
	return `tradectl networth -account <uuid>
`
}

func (c *netWorthCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account ID (required)")
}

func (c *netWorthCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !requireAccount(c.account) {
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, client *grpcadapter.Client) error {
		resp, err := client.GetNetWorth(ctx, &grpcadapter.GetNetWorthRequest{AccountID: c.account})
		if err != nil {
			return err
		}
		printNetWorth(stdout, resp)
		return nil
	})
}

type snapshotCmd struct {
	account string
	list    bool
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "record or list portfolio value snapshots" }
func (*snapshotCmd) Usage() string {
	return `tradectl snapshot -account <uuid> [-list]

  Records the current portfolio market value, or lists the recorded history with -list.
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account ID (required)")
	f.BoolVar(&c.list, "list", false, "List the snapshot history instead of recording one")
}

func (c *snapshotCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !requireAccount(c.account) {
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, client *grpcadapter.Client) error {
		if c.list {
			resp, err := client.ListSnapshots(ctx, &grpcadapter.ListSnapshotsRequest{AccountID: c.account})
			if err != nil {
				return err
			}
			printSnapshots(stdout, resp.Snapshots)
			return nil
		}

		resp, err := client.RecordSnapshot(ctx, &grpcadapter.RecordSnapshotRequest{AccountID: c.account})
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Recorded %s at %s\n", formatMoney(resp.Snapshot.Value), resp.Snapshot.Time)
		return nil
	})
}

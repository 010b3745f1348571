package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	grpcadapter "github.com/simaogato/tradesim-backend/internal/adapter/grpc"
)

type depositCmd struct {
	account string
	amount  string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "deposit cash into an account" }
func (*depositCmd) Usage() string {
	return `tradectl deposit -account <uuid> -amount <decimal>

  Deposits cash. The account is created on its first deposit.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account ID (required)")
	f.StringVar(&c.amount, "amount", "", "Amount to deposit, e.g. 100.50 (required)")
}

func (c *depositCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !requireAccount(c.account) || c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -account and -amount are required.")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, client *grpcadapter.Client) error {
		resp, err := client.Deposit(ctx, &grpcadapter.DepositRequest{AccountID: c.account, Amount: c.amount})
		if err != nil {
			return err
		}
		printReceipt(stdout, resp)
		return nil
	})
}

type withdrawCmd struct {
	account string
	amount  string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "withdraw cash from an account" }
func (*withdrawCmd) Usage() string {
	return `tradectl withdraw -account <uuid> -amount <decimal>

  Withdraws cash. A withdrawal beyond the balance is rejected and logged.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "account", "", "Account ID (required)")
	f.StringVar(&c.amount, "amount", "", "Amount to withdraw (required)")
}

func (c *withdrawCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !requireAccount(c.account) || c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -account and -amount are required.")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(ctx context.Context, client *grpcadapter.Client) error {
		resp, err := client.Withdraw(ctx, &grpcadapter.WithdrawRequest{AccountID: c.account, Amount: c.amount})
		if err != nil {
			return err
		}
		printReceipt(stdout, resp)
		return nil
	})
}

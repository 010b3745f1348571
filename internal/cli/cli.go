// Package cli implements the tradectl subcommands on top of the TradeSim gRPC client.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	grpcadapter "github.com/simaogato/tradesim-backend/internal/adapter/grpc"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&depositCmd{}, "cash")
	c.Register(&withdrawCmd{}, "cash")

	c.Register(&tradeCmd{kind: "buy"}, "trading")
	c.Register(&tradeCmd{kind: "sell"}, "trading")

	c.Register(&accountCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&holdingsCmd{}, "reports")
	c.Register(&netWorthCmd{}, "reports")
	c.Register(&snapshotCmd{}, "reports")

	c.Register(&marketCmd{}, "market")
	c.Register(&addInstrumentCmd{}, "market")
	c.Register(&overnightCmd{}, "market")
	c.Register(&hoursCmd{}, "market")
	c.Register(&setHoursCmd{}, "market")
}

var serverAddr = flag.String("addr", envOr("TRADESIM_ADDR", "localhost:8080"), "TradeSim gRPC server address")
var apiToken = flag.String("token", envOr("API_TOKEN", "dev-token"), "API token sent as authorization metadata")
var timeout = flag.Duration("timeout", 10*time.Second, "Timeout of one call")

// stdout is where commands print their results
var stdout io.Writer = os.Stdout

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// run dials the server and calls fn with an authorized context.
func run(ctx context.Context, fn func(ctx context.Context, client *grpcadapter.Client) error) subcommands.ExitStatus {
	conn, err := grpc.NewClient(*serverAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to %s: %v\n", *serverAddr, err)
		return subcommands.ExitFailure
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()
	ctx = metadata.AppendToOutgoingContext(ctx, "authorization", *apiToken)

	if err := fn(ctx, grpcadapter.NewClient(conn)); err != nil {
		if st, ok := status.FromError(err); ok {
			fmt.Fprintf(os.Stderr, "Error: %s (%s)\n", st.Message(), st.Code())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// requireAccount validates the -account flag shared by most commands
func requireAccount(account string) bool {
	if _, err := uuid.Parse(account); err != nil {
		fmt.Fprintln(os.Stderr, "Error: -account must be a valid UUID")
		return false
	}
	return true
}

// resolveInstrument accepts either an instrument ID or a symbol.
func resolveInstrument(ctx context.Context, client *grpcadapter.Client, ref string) (string, error) {
	if _, err := uuid.Parse(ref); err == nil {
		return ref, nil
	}

	resp, err := client.ListInstruments(ctx, &grpcadapter.ListInstrumentsRequest{})
	if err != nil {
		return "", err
	}
	for _, instrument := range resp.Instruments {
		if strings.EqualFold(instrument.Symbol, ref) {
			return instrument.ID, nil
		}
	}
	return "", fmt.Errorf("unknown instrument %q", ref)
}

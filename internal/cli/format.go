package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	grpcadapter "github.com/simaogato/tradesim-backend/internal/adapter/grpc"
)

// displayCurrency is the currency every amount is shown in
const displayCurrency = money.USD

// formatMoney renders a decimal amount string as currency, e.g. "$1,234.50".
// Values that are not decimals are returned unchanged.
func formatMoney(amount string) string {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return amount
	}

	cur := money.GetCurrency(displayCurrency)
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, displayCurrency).Display()
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func statusLabel(success bool) string {
	if success {
		return "ok"
	}
	return "rejected"
}

func printAccount(w io.Writer, account *grpcadapter.Account) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Account\t%s\n", account.AccountID)
	fmt.Fprintf(tw, "Balance\t%s\n", formatMoney(account.Balance))
	fmt.Fprintf(tw, "Book value\t%s\n", formatMoney(account.AccountValue))
	fmt.Fprintf(tw, "Updated\t%s\n", account.UpdatedAt)
	tw.Flush()
}

func printReceipt(w io.Writer, r *grpcadapter.ReceiptResponse) {
	tx := r.Transaction
	if tx.InstrumentID != "" {
		fmt.Fprintf(w, "%s %s %s for %s\n", tx.Kind, tx.Shares, tx.InstrumentName, formatMoney(tx.Amount))
	} else {
		fmt.Fprintf(w, "%s %s\n", tx.Kind, formatMoney(tx.Amount))
	}
	if r.Holding != nil {
		fmt.Fprintf(w, "Holding: %s shares at %s\n", r.Holding.Shares, formatMoney(r.Holding.CurrentPrice))
	}
	if r.Account != nil {
		printAccount(w, r.Account)
	}
}

func printTransactions(w io.Writer, resp *grpcadapter.ListTransactionsResponse) {
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tKIND\tINSTRUMENT\tSHARES\tAMOUNT\tSTATUS")
	for _, tx := range resp.Transactions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			tx.Date, tx.Kind, tx.InstrumentName, tx.Shares, formatMoney(tx.Amount), statusLabel(tx.Success))
	}
	tw.Flush()
	fmt.Fprintf(w, "%d of %d transactions\n", len(resp.Transactions), resp.TotalCount)
}

func printHoldings(w io.Writer, resp *grpcadapter.ListHoldingsResponse) {
	tw := newTable(w)
	fmt.Fprintln(tw, "INSTRUMENT\tSHARES\tPRICE\tVALUE")
	for _, h := range resp.Holdings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", h.InstrumentName, h.Shares, formatMoney(h.CurrentPrice), formatMoney(h.TotalValue))
	}
	fmt.Fprintf(tw, "Total\t\t\t%s\n", formatMoney(resp.PortfolioValue))
	tw.Flush()
}

func printNetWorth(w io.Writer, resp *grpcadapter.GetNetWorthResponse) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Net worth\t%s\n", formatMoney(resp.Total))
	fmt.Fprintf(tw, "Cash\t%s\n", formatMoney(resp.Liquidity))
	fmt.Fprintf(tw, "Holdings\t%s\n", formatMoney(resp.Equity))
	fmt.Fprintf(tw, "Profit/loss\t%s\n", formatMoney(resp.ProfitLoss))
	tw.Flush()
}

func printInstruments(w io.Writer, instruments []*grpcadapter.Instrument) {
	tw := newTable(w)
	fmt.Fprintln(tw, "SYMBOL\tNAME\tPRICE\tCHANGE\tMENTIONS\tID")
	for _, i := range instruments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", i.Symbol, i.Name, formatMoney(i.Price), i.Change, i.MentionCount, i.ID)
	}
	tw.Flush()
}

func printSnapshots(w io.Writer, snapshots []*grpcadapter.Snapshot) {
	tw := newTable(w)
	fmt.Fprintln(tw, "TIME\tVALUE")
	for _, s := range snapshots {
		fmt.Fprintf(tw, "%s\t%s\n", s.Time, formatMoney(s.Value))
	}
	tw.Flush()
}

func printUpdates(w io.Writer, updates []*grpcadapter.PriceUpdate) {
	if len(updates) == 0 {
		fmt.Fprintln(w, "No instruments to move")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "INSTRUMENT\tFROM\tTO\tCHANGE")
	for _, u := range updates {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", u.InstrumentID, formatMoney(u.PreviousPrice), formatMoney(u.NewPrice), u.Change)
	}
	tw.Flush()
}

func printHours(w io.Writer, hours *grpcadapter.MarketHours) {
	state := "closed"
	if hours.IsOpen {
		state = "open"
	}
	closed := "none"
	if len(hours.ClosedDays) > 0 {
		closed = strings.Join(hours.ClosedDays, ", ")
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "Session\t%s-%s\n", hours.Open, hours.Close)
	fmt.Fprintf(tw, "Closed days\t%s\n", closed)
	fmt.Fprintf(tw, "Market\t%s\n", state)
	tw.Flush()
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/yunzhu/licai"
	"github.com/yunzhu/licai/date"
	"github.com/yunzhu/licai/renderer"
)

type addCmd struct {
	id       string
	date     string
	typ      string
	amount   string
	currency string
	memo     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a deposit or an earning on an asset" }
func (*addCmd) Usage() string {
	return `zb add -id <asset-id> -t <deposit|earning> -a <amount> [-d <date>] [-c <currency>] [-m <memo>]

  Appends a transaction to an asset ledger and recomputes its derived state.
  A negative earning records a loss. When -c is omitted, the amount is in the
  asset's own currency.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Asset id (or unique prefix)")
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.typ, "t", "deposit", "Transaction type: deposit or earning")
	f.StringVar(&c.amount, "a", "", "Amount. Negative deposits withdraw, negative earnings are losses")
	f.StringVar(&c.currency, "c", "", "Currency of the amount. Defaults to the asset's currency")
	f.StringVar(&c.memo, "m", "", "An optional note for the transaction")
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" || c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -id and -a flags are required.")
		return subcommands.ExitUsageError
	}
	day, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	typ, err := licai.ParseTxType(c.typ)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
	}
	amount, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", c.amount, err)
		return subcommands.ExitUsageError
	}

	conv, err := Converter()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	assets, err := DecodeAssets(conv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	asset, err := findAsset(assets, c.id)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	tx := licai.NewTransaction(day, typ, amount, c.currency, c.memo)
	updated, err := licai.AddTransaction(asset, tx, conv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := SaveAssets(replaceAsset(assets, updated)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s: %s\n", updated.Name, renderer.Transaction(tx))
	return subcommands.ExitSuccess
}

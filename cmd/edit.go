package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/yunzhu/licai"
	"github.com/yunzhu/licai/date"
	"github.com/yunzhu/licai/renderer"
)

type editCmd struct {
	id       string
	txID     string
	date     string
	typ      string
	amount   string
	currency string
	memo     string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit a transaction in an asset ledger" }
func (*editCmd) Usage() string {
	return `zb edit -id <asset-id> -tx <transaction-id> [-d <date>] [-t <type>] [-a <amount>] [-c <currency>] [-m <memo>]

  Replaces a transaction with an edited copy under a fresh id, then
  recomputes the ledger's derived state. Omitted flags keep their
  current value.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Asset id (or unique prefix)")
	f.StringVar(&c.txID, "tx", "", "Transaction id (or unique prefix)")
	f.StringVar(&c.date, "d", "", "New transaction date (YYYY-MM-DD)")
	f.StringVar(&c.typ, "t", "", "New transaction type: deposit or earning")
	f.StringVar(&c.amount, "a", "", "New amount")
	f.StringVar(&c.currency, "c", "", "New currency of the amount")
	f.StringVar(&c.memo, "m", "", "New note for the transaction")
}

// findTransaction resolves a transaction by full ID or unique ID prefix.
func findTransaction(a *licai.Asset, id string) (licai.Transaction, error) {
	if id == "" {
		return licai.Transaction{}, fmt.Errorf("missing transaction id")
	}
	var found *licai.Transaction
	for i := range a.History {
		t := a.History[i]
		if t.ID == id {
			return t, nil
		}
		if strings.HasPrefix(t.ID, id) {
			if found != nil {
				return licai.Transaction{}, fmt.Errorf("transaction id prefix %q is ambiguous", id)
			}
			found = &t
		}
	}
	if found == nil {
		return licai.Transaction{}, fmt.Errorf("no transaction with id %q in %s", id, a.Name)
	}
	return *found, nil
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	tx, err := findTransaction(asset, c.txID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if c.date != "" {
		if tx.Date, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if c.typ != "" {
		if tx.Type, err = licai.ParseTxType(c.typ); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
	}
	if c.amount != "" {
		if tx.Amount, err = decimal.NewFromString(c.amount); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", c.amount, err)
			return subcommands.ExitUsageError
		}
	}
	if c.currency != "" {
		tx.Currency = c.currency
	}
	if c.memo != "" {
		tx.Description = c.memo
	}

	edited := licai.NewTransaction(tx.Date, tx.Type, tx.Amount, tx.Currency, tx.Description)
	updated, err := licai.ReplaceTransaction(asset, tx.ID, edited, conv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := SaveAssets(replaceAsset(assets, updated)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s: now %s\n", updated.Name, renderer.Transaction(edited))
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yunzhu/licai"
)

type setCmd struct {
	id               string
	institution      string
	product          string
	class            string
	currency         string
	earningsCurrency string
	remark           string
	sevenDay         float64
}

func (*setCmd) Name() string     { return "set" }
func (*setCmd) Synopsis() string { return "edit the metadata of an asset ledger" }
func (*setCmd) Usage() string {
	return `zb set -id <asset-id> [-institution <name>] [-product <name>] [-class <class>] [-c <currency>] [-ec <currency>] [-remark <text>] [-yield <percent>]

  Edits descriptive fields of an asset ledger. Metadata edits never touch the
  transaction history and never trigger a recompute: changing the currency
  relabels the ledger without converting past amounts.
`
}

func (c *setCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Asset id (or unique prefix)")
	f.StringVar(&c.institution, "institution", "", "Institution or channel name")
	f.StringVar(&c.product, "product", "", "Product name")
	f.StringVar(&c.class, "class", "", "Asset class (fund, stock, bond, gold, deposit, other)")
	f.StringVar(&c.currency, "c", "", "Principal currency")
	f.StringVar(&c.earningsCurrency, "ec", "", "Earnings currency, when it differs from the principal one")
	f.StringVar(&c.remark, "remark", "", "Free-form remark")
	f.Float64Var(&c.sevenDay, "yield", -1, "Declared seven-day annualized yield, in percent")
}

func (c *setCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	m := licai.Metadata{
		Institution:      asset.Institution,
		Name:             asset.Name,
		Class:            asset.Class,
		Currency:         asset.Currency,
		EarningsCurrency: asset.EarningsCurrency,
		Remark:           asset.Remark,
		SevenDayYield:    asset.SevenDayYield,
	}
	if c.institution != "" {
		m.Institution = c.institution
	}
	if c.product != "" {
		m.Name = c.product
	}
	if c.class != "" {
		m.Class = licai.ParseAssetClass(c.class)
	}
	if c.currency != "" {
		if !conv.Supports(c.currency) {
			fmt.Fprintf(os.Stderr, "Error: %v: %q\n", licai.ErrUnknownCurrency, c.currency)
			return subcommands.ExitUsageError
		}
		m.Currency = c.currency
	}
	if c.earningsCurrency != "" {
		if !conv.Supports(c.earningsCurrency) {
			fmt.Fprintf(os.Stderr, "Error: %v: %q\n", licai.ErrUnknownCurrency, c.earningsCurrency)
			return subcommands.ExitUsageError
		}
		m.EarningsCurrency = c.earningsCurrency
	}
	if c.remark != "" {
		m.Remark = c.remark
	}
	if c.sevenDay >= 0 {
		m.SevenDayYield = licai.Percent(c.sevenDay)
	}

	updated := asset.WithMetadata(m)
	if err := SaveAssets(replaceAsset(assets, updated)); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated %s (%s)\n", updated.Name, updated.ID)
	return subcommands.ExitSuccess
}

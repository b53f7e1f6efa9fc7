package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yunzhu/licai"
	"github.com/yunzhu/licai/renderer"
)

type txCmd struct {
	id   string
	head int
	tail int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the transactions of an asset ledger" }
func (*txCmd) Usage() string {
	return `zb tx -id <asset-id> [-head <n>] [-tail <n>]

  Lists an asset's transactions, most recent first, with options for
  limiting the output.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Asset id (or unique prefix)")
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.head > 0 && c.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
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

	if c.head > 0 && len(asset.History) > c.head {
		asset = trimHistory(asset, 0, c.head)
	}
	if c.tail > 0 && len(asset.History) > c.tail {
		asset = trimHistory(asset, len(asset.History)-c.tail, len(asset.History))
	}
	printMarkdown(renderer.TransactionsMarkdown(asset))
	return subcommands.ExitSuccess
}

// trimHistory narrows the rendered history without touching derived state.
func trimHistory(a *licai.Asset, from, to int) *licai.Asset {
	c := a.Clone()
	c.History = c.History[from:to]
	return c
}

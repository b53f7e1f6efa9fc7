package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yunzhu/licai"
)

type consolidateCmd struct{}

func (*consolidateCmd) Name() string     { return "consolidate" }
func (*consolidateCmd) Synopsis() string { return "merge ledgers that track the same product" }
func (*consolidateCmd) Usage() string {
	return `zb consolidate

  Merges ledgers whose product name and currency resolve to the same
  identity, typically twins created by ingesting screenshots from different
  institutions, then recomputes every ledger.
`
}

func (c *consolidateCmd) SetFlags(f *flag.FlagSet) {}

func (c *consolidateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	merged, err := licai.Consolidate(assets, conv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := SaveAssets(merged); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%d ledgers in, %d out (%d merged)\n", len(assets), len(merged), len(assets)-len(merged))
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/yunzhu/licai"
)

type delAssetCmd struct {
	id string
}

func (*delAssetCmd) Name() string     { return "del-asset" }
func (*delAssetCmd) Synopsis() string { return "delete an asset ledger and all its transactions" }
func (*delAssetCmd) Usage() string {
	return `zb del-asset -id <asset-id>

  Deletes an asset ledger entirely, history included. There is no undo beyond
  your own backups of the assets file.
`
}

func (c *delAssetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Asset id (or unique prefix)")
}

func (c *delAssetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	remaining, err := licai.DeleteAsset(assets, asset.ID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := SaveAssets(remaining); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted %s (%s), %d transactions gone\n", asset.Name, asset.ID, len(asset.History))
	return subcommands.ExitSuccess
}

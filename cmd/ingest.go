package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/yunzhu/licai"
	"github.com/yunzhu/licai/extract"
)

type ingestCmd struct {
	target   string
	currency string
	model    string
}

func (*ingestCmd) Name() string     { return "ingest" }
func (*ingestCmd) Synopsis() string { return "extract transactions from screenshots and absorb them" }
func (*ingestCmd) Usage() string {
	return `zb ingest [-target <asset-id>] [-c <currency>] [-model <model>] <image> [<image>...]

  Sends app screenshots to the extraction model, then routes each extracted
  record to the matching asset ledger, creating ledgers as needed. Records
  already present are skipped, so re-ingesting the same screenshot is safe.

  Requires GEMINI_API_KEY in the environment (a .env file is honored).
`
}

func (c *ingestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.target, "target", "", "Force every record into this asset id, bypassing matching")
	f.StringVar(&c.currency, "c", "", "Fallback currency for records that carry none (defaults to CNY)")
	f.StringVar(&c.model, "model", extract.DefaultModel, "Extraction model to use")
}

func (c *ingestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one image file is required.")
		return subcommands.ExitUsageError
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	client, err := extract.NewClient(ctx, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	client = client.WithModel(c.model)

	var records []licai.ExtractedRecord
	for _, path := range f.Args() {
		mime, err := extract.MIMEType(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitUsageError
		}
		img, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %q: %v\n", path, err)
			return subcommands.ExitFailure
		}
		recs, err := client.ExtractImage(ctx, img, mime)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error extracting %q: %v\n", path, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "%s: %d records extracted\n", path, len(recs))
		records = append(records, recs...)
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

	opts := licai.IngestOptions{DefaultCurrency: c.currency}
	if c.target != "" {
		asset, err := findAsset(assets, c.target)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		opts.TargetID = asset.ID
	}

	updated, summary, err := licai.Ingest(assets, records, conv, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	if err := SaveAssets(updated); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	fmt.Println(summary)
	return subcommands.ExitSuccess
}

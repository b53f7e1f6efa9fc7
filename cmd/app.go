// Package cmd implements the CLI application to manage the asset ledgers.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/yunzhu/licai"
)

// Commands is the list of subcommands a main package registers.
var Commands = []subcommands.Command{
	&addCmd{},
	&editCmd{},
	&rmCmd{},
	&setCmd{},
	&delAssetCmd{},
	&ingestCmd{},
	&assetsCmd{},
	&txCmd{},
	&summaryCmd{},
	&consolidateCmd{},
	&ratesCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var assetsFile = flag.String("file", "assets.jsonl", "Path to the asset ledgers file (JSONL format)")
var ratesFile = flag.String("rates", "", "Path to an exchange rates file (JSON). Defaults to the built-in table.")

// Converter builds the currency converter from the -rates flag, falling back
// to the built-in rate table.
func Converter() (*licai.Converter, error) {
	if *ratesFile == "" {
		return licai.NewDefaultConverter(), nil
	}
	f, err := os.Open(*ratesFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open rates file %q: %w", *ratesFile, err)
	}
	defer f.Close()

	rates, err := licai.DecodeRates(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read rates file %q: %w", *ratesFile, err)
	}
	return licai.NewConverter(licai.BaseCurrency, rates)
}

// DecodeAssets reads all asset ledgers from the app default file. A missing
// file is not an error: it decodes as an empty collection.
func DecodeAssets(conv *licai.Converter) ([]*licai.Asset, error) {
	f, err := os.Open(*assetsFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, assets file does not exist, starting from an empty one")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open assets file %q: %w", *assetsFile, err)
	}
	defer f.Close()

	return licai.DecodeAssets(f, conv)
}

// SaveAssets writes all asset ledgers back to the app default file.
func SaveAssets(assets []*licai.Asset) error {
	f, err := os.Create(*assetsFile)
	if err != nil {
		return fmt.Errorf("cannot write assets file %q: %w", *assetsFile, err)
	}
	defer f.Close()

	if err := licai.EncodeAssets(f, assets); err != nil {
		return fmt.Errorf("cannot encode assets file %q: %w", *assetsFile, err)
	}
	return f.Close()
}

// findAsset resolves an asset by full ID or by unique ID prefix.
func findAsset(assets []*licai.Asset, id string) (*licai.Asset, error) {
	if id == "" {
		return nil, errors.New("missing asset id")
	}
	var found *licai.Asset
	for _, a := range assets {
		if a.ID == id {
			return a, nil
		}
		if strings.HasPrefix(a.ID, id) {
			if found != nil {
				return nil, fmt.Errorf("asset id prefix %q is ambiguous", id)
			}
			found = a
		}
	}
	if found == nil {
		return nil, fmt.Errorf("no asset with id %q", id)
	}
	return found, nil
}

// replaceAsset swaps the asset with the same ID in the slice.
func replaceAsset(assets []*licai.Asset, a *licai.Asset) []*licai.Asset {
	out := make([]*licai.Asset, len(assets))
	for i, x := range assets {
		if x.ID == a.ID {
			out[i] = a
		} else {
			out[i] = x
		}
	}
	return out
}

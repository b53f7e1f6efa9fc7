package licai

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// Assets persist as JSONL: one asset object per line, human-readable and
// git-friendly. Derived fields are written for readability but treated as
// caches: DecodeAssets recomputes them, so a stale or hand-edited file
// self-heals on load.

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// EncodeAssets writes the snapshot as JSONL, one asset per line.
func EncodeAssets(w io.Writer, assets []*Asset) error {
	for _, a := range assets {
		line, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("encoding asset %q: %w", a.Name, err)
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// DecodeAssets reads a JSONL snapshot and recomputes every derived field.
func DecodeAssets(r io.Reader, conv *Converter) ([]*Asset, error) {
	var assets []*Asset
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	n := 0
	for scanner.Scan() {
		n++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		a := &Asset{}
		if err := json.Unmarshal(line, a); err != nil {
			return nil, fmt.Errorf("line %d: decoding asset: %w", n, err)
		}
		if err := a.Recompute(conv); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		assets = append(assets, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return assets, nil
}

// DecodeRates reads a rate table from JSON: an object mapping currency codes
// to the value of one unit in the base currency. The table is configuration;
// keeping it in a file means rates can be updated without touching the
// consolidation logic.
func DecodeRates(r io.Reader) (Rates, error) {
	var raw map[string]decimal.Decimal
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding rate table: %w", err)
	}
	return Rates(raw), nil
}

// EncodeRates writes a rate table as indented JSON.
func EncodeRates(w io.Writer, rates Rates) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]decimal.Decimal(rates))
}

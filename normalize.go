package licai

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yunzhu/licai/date"
)

// ExtractedRecord is a raw transaction candidate produced by the external
// OCR/AI collaborator from one screenshot. Every field except Amount and the
// type hint may be absent, and Product may carry a placeholder meaning
// "unknown". The engine tolerates any subset of optional fields; only
// records with no usable date or amount are dropped.
type ExtractedRecord struct {
	Date        string   `json:"date"`
	Amount      *float64 `json:"amount"`
	Type        string   `json:"type,omitempty"`
	Product     string   `json:"productName,omitempty"`
	Institution string   `json:"institution,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	Class       string   `json:"assetClass,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Record is a normalized extracted record: a complete Transaction plus the
// grouping context (product, institution, class) it arrived with.
type Record struct {
	Transaction
	Product     string
	Institution string
	Class       AssetClass
}

// Named reports whether the record carries a specific product name, as
// opposed to an empty or placeholder one.
func (r Record) Named() bool { return r.Product != UnnamedProduct }

// ErrMalformedRecord marks a record that is structurally unusable: it has no
// date or no numeric amount. Such records are dropped, never defaulted, and
// never abort the batch.
var ErrMalformedRecord = errors.New("malformed record")

// Normalize fills the structural gaps of one extracted record using explicit
// rules, in documented precedence order:
//
//  1. missing type defaults to earning;
//  2. missing currency defaults to the target asset's principal currency for
//     deposits and its earnings currency for earnings, when a target asset is
//     already known; otherwise to defaultCurrency;
//  3. an empty or placeholder product name becomes UnnamedProduct explicitly,
//     it is never silently guessed.
//
// Records with no date or amount are rejected with ErrMalformedRecord, and
// records with a currency outside the converter's set with
// ErrUnknownCurrency.
func Normalize(rec ExtractedRecord, target *Asset, defaultCurrency string, conv *Converter) (Record, error) {
	if rec.Amount == nil {
		return Record{}, fmt.Errorf("%w: no amount", ErrMalformedRecord)
	}
	if rec.Date == "" {
		return Record{}, fmt.Errorf("%w: no date", ErrMalformedRecord)
	}
	on, err := date.Parse(rec.Date)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	typ := Earning // rule 1
	if rec.Type != "" {
		typ, err = ParseTxType(rec.Type)
		if err != nil {
			return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
	}

	currency := rec.Currency
	if currency == "" { // rule 2
		switch {
		case target != nil && typ == Deposit:
			currency = target.Currency
		case target != nil && typ == Earning:
			currency = target.EarningsCurrency
		default:
			currency = defaultCurrency
		}
	}
	if !conv.Supports(currency) {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, currency)
	}

	product := rec.Product // rule 3
	if product == "" {
		product = UnnamedProduct
	}

	class := ClassifyProduct(rec.Class)
	if class == ClassOther && product != UnnamedProduct {
		class = ClassifyProduct(product)
	}

	return Record{
		Transaction: NewTransaction(on, typ, decimal.NewFromFloat(*rec.Amount), currency, rec.Description),
		Product:     product,
		Institution: rec.Institution,
		Class:       class,
	}, nil
}

package licai

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yunzhu/licai/date"
)

// Placeholder sentinels for fields the AI collaborator could not determine.
// They are explicit values, never silent guesses.
const (
	// UnnamedProduct marks a record or ledger whose product name is unknown.
	UnnamedProduct = "未知产品"
	// UnnamedChannel marks a ledger whose institution is unknown.
	UnnamedChannel = "未知渠道"
)

// Asset is a single trackable holding: one financial product at one
// institution, with a running history of transactions.
//
// Identity is conceptually (normalized product name, principal currency);
// the institution is informative metadata because the AI collaborator
// frequently cannot determine it reliably.
//
// CurrentAmount, TotalEarnings and DailyEarnings are caches: they are always
// re-derivable from History alone, and Recompute is the only writer. An asset
// with inconsistent caches is a bug, not a valid state.
type Asset struct {
	ID          string     `json:"id"`
	Institution string     `json:"institution"`
	Name        string     `json:"product"`
	Class       AssetClass `json:"class"`

	// Currency is the principal currency: deposits are expressed in it and
	// CurrentAmount is ultimately denominated in it. EarningsCurrency may
	// differ, e.g. a CNY fund paying USD gains.
	Currency         string `json:"currency"`
	EarningsCurrency string `json:"earningsCurrency"`

	Remark string `json:"remark,omitempty"`

	// SevenDayYield is declared by the user (as printed by the institution),
	// not derived from History.
	SevenDayYield Percent `json:"sevenDayYield,omitempty"`

	// History is ordered most recent first. This descending order is a
	// presentation contract; Recompute always folds in ascending order.
	History []Transaction `json:"history"`

	CurrentAmount decimal.Decimal               `json:"currentAmount"`
	TotalEarnings decimal.Decimal               `json:"totalEarnings"`
	DailyEarnings map[date.Date]decimal.Decimal `json:"dailyEarnings"`

	// fold intermediates kept for yield math, restored by Recompute
	principalBase decimal.Decimal
	earningsBase  decimal.Decimal
}

// NewAsset creates an empty asset ledger with a fresh ID. The currency is
// used for both principal and earnings until the user says otherwise.
func NewAsset(institution, name string, class AssetClass, currency string) *Asset {
	if institution == "" {
		institution = UnnamedChannel
	}
	if name == "" {
		name = UnnamedProduct
	}
	return &Asset{
		ID:               uuid.NewString(),
		Institution:      institution,
		Name:             name,
		Class:            class,
		Currency:         currency,
		EarningsCurrency: currency,
		History:          []Transaction{},
		DailyEarnings:    map[date.Date]decimal.Decimal{},
	}
}

// Clone returns a deep copy of the asset. Mutating the copy never touches
// the original; the engine only ever mutates clones.
func (a *Asset) Clone() *Asset {
	c := *a
	c.History = slices.Clone(a.History)
	c.DailyEarnings = maps.Clone(a.DailyEarnings)
	return &c
}

// Inception returns the date of the earliest transaction, or false when the
// history is empty.
func (a *Asset) Inception() (date.Date, bool) {
	if len(a.History) == 0 {
		return date.Date{}, false
	}
	// History is most recent first.
	return a.History[len(a.History)-1].Date, true
}

// PrincipalBase returns the accumulated deposits converted into the principal
// currency, as of the last Recompute.
func (a *Asset) PrincipalBase() decimal.Decimal { return a.principalBase }

// EarningsBase returns the accumulated earnings converted into the principal
// currency, as of the last Recompute.
func (a *Asset) EarningsBase() decimal.Decimal { return a.earningsBase }

// txCurrency resolves the effective currency of a transaction: an empty
// currency defaults to the principal currency for deposits and to the
// earnings currency for earnings.
func (a *Asset) txCurrency(t Transaction) string {
	if t.Currency != "" {
		return t.Currency
	}
	if t.Type == Earning {
		return a.EarningsCurrency
	}
	return a.Currency
}

// Recompute rebuilds every derived field from History alone.
//
// The history is sorted in canonical ascending order and folded: deposits
// accumulate into the principal (converted to the principal currency);
// earnings accumulate both a display total in the earnings currency and a
// principal-currency total, plus the per-day earnings map. The stored History
// is the same transactions most recent first.
//
// Recompute is idempotent: applying it twice to the same transaction set
// yields bit-identical derived fields.
func (a *Asset) Recompute(conv *Converter) error {
	if a.EarningsCurrency == "" {
		a.EarningsCurrency = a.Currency
	}

	txs := slices.Clone(a.History)
	slices.SortFunc(txs, Transaction.Compare)

	principal := decimal.Zero
	earningsDisplay := decimal.Zero
	earningsBase := decimal.Zero
	daily := make(map[date.Date]decimal.Decimal, len(a.DailyEarnings))

	for _, t := range txs {
		cur := a.txCurrency(t)
		switch t.Type {
		case Deposit:
			v, err := conv.Convert(t.Amount, cur, a.Currency)
			if err != nil {
				return fmt.Errorf("recompute asset %q: %w", a.Name, err)
			}
			principal = principal.Add(v)
		case Earning:
			display, err := conv.Convert(t.Amount, cur, a.EarningsCurrency)
			if err != nil {
				return fmt.Errorf("recompute asset %q: %w", a.Name, err)
			}
			base, err := conv.Convert(t.Amount, cur, a.Currency)
			if err != nil {
				return fmt.Errorf("recompute asset %q: %w", a.Name, err)
			}
			earningsDisplay = earningsDisplay.Add(display)
			earningsBase = earningsBase.Add(base)
			daily[t.Date] = daily[t.Date].Add(display)
		default:
			return fmt.Errorf("recompute asset %q: unknown transaction type %q", a.Name, t.Type)
		}
	}

	slices.Reverse(txs)
	a.History = txs
	a.principalBase = principal
	a.earningsBase = earningsBase
	a.CurrentAmount = principal.Add(earningsBase)
	a.TotalEarnings = earningsDisplay
	a.DailyEarnings = daily
	return nil
}

// AddTransaction returns a copy of the asset with the transaction appended
// and every derived field recomputed.
func AddTransaction(a *Asset, t Transaction, conv *Converter) (*Asset, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	c := a.Clone()
	c.History = append(c.History, t)
	if err := c.Recompute(conv); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveTransaction returns a copy of the asset without the identified
// transaction, recomputed.
func RemoveTransaction(a *Asset, txID string, conv *Converter) (*Asset, error) {
	c := a.Clone()
	n := len(c.History)
	c.History = slices.DeleteFunc(c.History, func(t Transaction) bool { return t.ID == txID })
	if len(c.History) == n {
		return nil, fmt.Errorf("asset %q has no transaction %q", a.Name, txID)
	}
	if err := c.Recompute(conv); err != nil {
		return nil, err
	}
	return c, nil
}

// ReplaceTransaction returns a copy of the asset where the identified
// transaction is replaced wholesale by the new one, recomputed. Transactions
// are never patched in place.
func ReplaceTransaction(a *Asset, txID string, t Transaction, conv *Converter) (*Asset, error) {
	c := a.Clone()
	i := slices.IndexFunc(c.History, func(t Transaction) bool { return t.ID == txID })
	if i < 0 {
		return nil, fmt.Errorf("asset %q has no transaction %q", a.Name, txID)
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	c.History[i] = t
	if err := c.Recompute(conv); err != nil {
		return nil, err
	}
	return c, nil
}

// Metadata is the user-editable description of an asset. Applying it never
// touches History and never triggers a recompute.
type Metadata struct {
	Institution      string
	Name             string
	Class            AssetClass
	Currency         string
	EarningsCurrency string
	Remark           string
	SevenDayYield    Percent
}

// WithMetadata returns a copy of the asset with the metadata applied.
func (a *Asset) WithMetadata(m Metadata) *Asset {
	c := a.Clone()
	c.Institution = m.Institution
	c.Name = m.Name
	c.Class = m.Class
	c.Currency = m.Currency
	c.EarningsCurrency = m.EarningsCurrency
	c.Remark = m.Remark
	c.SevenDayYield = m.SevenDayYield
	return c
}

// MarshalJSON implements json.Marshaler with a fixed field order, so the
// persisted form is stable and diffable.
func (a *Asset) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", a.ID)
	w.Append("institution", a.Institution)
	w.Append("product", a.Name)
	w.Append("class", a.Class)
	w.Append("currency", a.Currency)
	w.Append("earningsCurrency", a.EarningsCurrency)
	w.Optional("remark", a.Remark)
	w.Optional("sevenDayYield", a.SevenDayYield)
	w.Append("history", a.History)
	w.Append("currentAmount", a.CurrentAmount)
	w.Append("totalEarnings", a.TotalEarnings)
	w.Append("dailyEarnings", a.DailyEarnings)
	return w.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler. Callers are expected to
// Recompute afterwards: the derived fields on disk are caches and a stale
// file must self-heal on load.
func (a *Asset) UnmarshalJSON(b []byte) error {
	type plain Asset // avoid recursing into this method
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Class = ParseAssetClass(string(p.Class))
	*a = Asset(p)
	return nil
}

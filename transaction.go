package licai

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/yunzhu/licai/date"
)

// TxType identifies the kind of a ledger transaction.
type TxType string

const (
	// Deposit adds principal to the asset.
	Deposit TxType = "deposit"
	// Earning records a realized gain, or a loss when the amount is negative.
	Earning TxType = "earning"
)

// ParseTxType parses a string into a TxType.
func ParseTxType(s string) (TxType, error) {
	switch TxType(s) {
	case Deposit:
		return Deposit, nil
	case Earning:
		return Earning, nil
	default:
		return "", fmt.Errorf("unknown transaction type: %q", s)
	}
}

// Transaction is a single dated movement on an asset ledger.
//
// A Transaction is immutable once created: an edit replaces it wholesale
// (new ID included), it is never patched in place.
type Transaction struct {
	ID          string          `json:"id"`
	Date        date.Date       `json:"date"`
	Type        TxType          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency,omitempty"`
	Description string          `json:"description,omitempty"`
}

// NewTransaction creates a Transaction with a fresh ID.
func NewTransaction(on date.Date, typ TxType, amount decimal.Decimal, currency, description string) Transaction {
	return Transaction{
		ID:          uuid.NewString(),
		Date:        on,
		Type:        typ,
		Amount:      amount,
		Currency:    currency,
		Description: description,
	}
}

// Equal reports field equality, ignoring the ID.
func (t Transaction) Equal(o Transaction) bool {
	return t.Date == o.Date &&
		t.Type == o.Type &&
		t.Amount.Equal(o.Amount) &&
		t.Currency == o.Currency &&
		t.Description == o.Description
}

// dupTolerance is the amount tolerance under which two transactions on the
// same day with the same type are considered one real-world movement.
var dupTolerance = decimal.RequireFromString("0.01")

// Duplicates reports whether t and o describe the same movement: equal date,
// equal type, and amounts less than one cent apart. Currency is deliberately
// not part of the key; see the Deduplicator notes in DESIGN.md.
func (t Transaction) Duplicates(o Transaction) bool {
	return t.Date == o.Date &&
		t.Type == o.Type &&
		t.Amount.Sub(o.Amount).Abs().LessThan(dupTolerance)
}

// Signature returns the exact-duplicate key used when merging the histories
// of two ledgers that turned out to be the same asset.
func (t Transaction) Signature() string {
	return fmt.Sprintf("%s|%s|%s", t.Date, t.Type, t.Amount.StringFixed(2))
}

// Compare orders transactions by date, then by a stable tiebreak on type,
// amount and ID, so that sorting a history is canonical: recomputing a ledger
// any number of times yields bit-identical output.
func (t Transaction) Compare(o Transaction) int {
	if c := t.Date.Compare(o.Date); c != 0 {
		return c
	}
	if t.Type != o.Type {
		if t.Type == Deposit {
			return -1
		}
		return 1
	}
	if c := t.Amount.Cmp(o.Amount); c != 0 {
		return c
	}
	switch {
	case t.ID < o.ID:
		return -1
	case t.ID > o.ID:
		return 1
	}
	return 0
}

// MarshalJSON implements json.Marshaler with a fixed field order.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("date", t.Date)
	w.Append("type", t.Type)
	w.Append("amount", t.Amount)
	w.Optional("currency", t.Currency)
	w.Optional("description", t.Description)
	return w.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Transaction) UnmarshalJSON(b []byte) error {
	type plain Transaction // avoid recursing into this method
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	if _, err := ParseTxType(string(p.Type)); err != nil {
		return err
	}
	*t = Transaction(p)
	return nil
}

package licai

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Supported currency codes. The tracker works over a small closed set.
const (
	CNY = "CNY"
	USD = "USD"
	HKD = "HKD"
)

// BaseCurrency is the currency the rate table is expressed against.
const BaseCurrency = CNY

// ErrUnknownCurrency is returned when a currency code is outside the
// supported set. Records carrying one are rejected rather than silently
// converted at an arbitrary rate.
var ErrUnknownCurrency = errors.New("unknown currency")

// Rates maps a currency code to the value of one unit of that currency
// expressed in the base currency. It is configuration, not computed state:
// callers may load it from a file and swap it without touching the
// consolidation logic.
type Rates map[string]decimal.Decimal

// DefaultRates returns the built-in static rate table.
func DefaultRates() Rates {
	return Rates{
		CNY: decimal.NewFromInt(1),
		USD: decimal.RequireFromString("7.19"),
		HKD: decimal.RequireFromString("0.92"),
	}
}

// Converter converts amounts between currencies of the supported set using a
// fixed rate table. It holds no other state and never touches the network.
type Converter struct {
	base  string
	rates Rates
}

// NewConverter creates a Converter over the given rate table. The base
// currency must be present in the table with a rate of exactly 1.
func NewConverter(base string, rates Rates) (*Converter, error) {
	r, ok := rates[base]
	if !ok {
		return nil, fmt.Errorf("base currency %q missing from rate table", base)
	}
	if !r.Equal(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("base currency %q must have rate 1, got %s", base, r)
	}
	for code, rate := range rates {
		if !rate.IsPositive() {
			return nil, fmt.Errorf("rate for %q must be positive, got %s", code, rate)
		}
	}
	return &Converter{base: base, rates: rates}, nil
}

// NewDefaultConverter creates a Converter over the built-in rate table.
func NewDefaultConverter() *Converter {
	c, err := NewConverter(BaseCurrency, DefaultRates())
	if err != nil {
		panic(err) // the built-in table is known valid
	}
	return c
}

// Base returns the base currency of the rate table.
func (c *Converter) Base() string { return c.base }

// Supports reports whether the given currency code is in the rate table.
func (c *Converter) Supports(code string) bool {
	_, ok := c.rates[code]
	return ok
}

// Currencies returns the sorted list of supported currency codes.
func (c *Converter) Currencies() []string {
	codes := make([]string, 0, len(c.rates))
	for code := range c.rates {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Convert converts an amount from one currency to another through the base
// currency. Converting a currency to itself returns the amount unchanged,
// exactly.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	fromRate, ok := c.rates[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownCurrency, from)
	}
	toRate, ok := c.rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownCurrency, to)
	}
	return amount.Mul(fromRate).Div(toRate), nil
}

// ToBase converts an amount from the given currency into the base currency.
func (c *Converter) ToBase(amount decimal.Decimal, from string) (decimal.Decimal, error) {
	return c.Convert(amount, from, c.base)
}

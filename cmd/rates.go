package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

type ratesCmd struct{}

func (*ratesCmd) Name() string     { return "rates" }
func (*ratesCmd) Synopsis() string { return "show the exchange rates in effect" }
func (*ratesCmd) Usage() string {
	return `zb rates

  Shows the exchange rate table the engine converts with, either the built-in
  one or the file given with -rates. Rates are expressed in the base currency
  per one unit of the listed currency.
`
}

func (c *ratesCmd) SetFlags(f *flag.FlagSet) {}

func (c *ratesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	conv, err := Converter()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}
	for _, code := range conv.Currencies() {
		rate, err := conv.ToBase(one, code)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("1 %s = %s %s\n", code, rate, conv.Base())
	}
	return subcommands.ExitSuccess
}

package licai

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yunzhu/licai/date"
)

// Overview is the aggregated valuation of a snapshot in one display
// currency, the tracker's home screen.
type Overview struct {
	Date            date.Date
	DisplayCurrency string
	Total           Money
	TotalEarnings   Money
	Rows            []OverviewRow
}

// OverviewRow is one asset's line in the overview.
type OverviewRow struct {
	ID          string
	Institution string
	Product     string
	Class       AssetClass

	// Value and Earnings are converted into the display currency.
	Value    Money
	Earnings Money

	HoldingYield Percent
	SevenDay     Percent // trailing-7-day annualized
	Overall      Percent // overall annualized, 0 within the first week
	Declared     Percent // the user-declared 7-day yield, as printed by the institution
}

// NewOverview values every asset of the snapshot in the display currency on
// the given day. Assets are expected recomputed (every snapshot returned by
// this package is).
func NewOverview(assets []*Asset, on date.Date, display string, conv *Converter) (*Overview, error) {
	if !conv.Supports(display) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, display)
	}
	o := &Overview{Date: on, DisplayCurrency: display}

	total := decimal.Zero
	earnings := decimal.Zero
	for _, a := range assets {
		value, err := conv.Convert(a.CurrentAmount, a.Currency, display)
		if err != nil {
			return nil, fmt.Errorf("overview of %q: %w", a.Name, err)
		}
		earned, err := conv.Convert(a.EarningsBase(), a.Currency, display)
		if err != nil {
			return nil, fmt.Errorf("overview of %q: %w", a.Name, err)
		}
		sevenDay, err := a.SevenDayAnnualized(on, conv)
		if err != nil {
			return nil, fmt.Errorf("overview of %q: %w", a.Name, err)
		}

		total = total.Add(value)
		earnings = earnings.Add(earned)
		o.Rows = append(o.Rows, OverviewRow{
			ID:           a.ID,
			Institution:  a.Institution,
			Product:      a.Name,
			Class:        a.Class,
			Value:        M(value, display),
			Earnings:     M(earned, display),
			HoldingYield: a.HoldingYield(),
			SevenDay:     sevenDay,
			Overall:      a.OverallAnnualized(on),
			Declared:     a.SevenDayYield,
		})
	}
	o.Total = M(total, display)
	o.TotalEarnings = M(earnings, display)
	return o, nil
}

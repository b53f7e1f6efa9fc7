package licai

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/yunzhu/licai/date"
)

// Yield math operates on the fold intermediates cached by Recompute, so all
// methods here expect a recomputed asset.

// HoldingYield is the cumulative return to date as a percentage of principal:
// earnings over principal, both in the principal currency. It reports 0 when
// the principal is not positive (yield is undefined on an empty ledger).
func (a *Asset) HoldingYield() Percent {
	if !a.principalBase.IsPositive() {
		return 0
	}
	return Percent(a.earningsBase.Div(a.principalBase).InexactFloat64() * 100)
}

// SevenDayAnnualized extrapolates the earnings of the 7 most recent calendar
// days (ending on the given day, inclusive) to a 365-day basis, as a
// percentage of principal. Daily earnings are denominated in the earnings
// currency and converted to the principal currency before dividing.
func (a *Asset) SevenDayAnnualized(on date.Date, conv *Converter) (Percent, error) {
	if !a.principalBase.IsPositive() {
		return 0, nil
	}
	week := decimal.Zero
	for i := 0; i < 7; i++ {
		if v, ok := a.DailyEarnings[on.Add(-i)]; ok {
			week = week.Add(v)
		}
	}
	base, err := conv.Convert(week, a.EarningsCurrency, a.Currency)
	if err != nil {
		return 0, err
	}
	ratio := base.Div(a.principalBase).InexactFloat64()
	return Percent(ratio * 365 / 7 * 100), nil
}

// OverallAnnualized is the compound annual growth rate over the whole holding
// period: ((current/principal)^(365/daysHeld) - 1) * 100. It only means
// something once the ledger has been held more than 7 days; before that, and
// whenever the principal is not positive, it reports 0.
func (a *Asset) OverallAnnualized(on date.Date) Percent {
	inception, ok := a.Inception()
	if !ok || !a.principalBase.IsPositive() {
		return 0
	}
	daysHeld := on.Sub(inception)
	if daysHeld <= 7 {
		return 0
	}
	ratio := a.CurrentAmount.Div(a.principalBase).InexactFloat64()
	if ratio <= 0 {
		return 0
	}
	return Percent((math.Pow(ratio, 365/float64(daysHeld)) - 1) * 100)
}

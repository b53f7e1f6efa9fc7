package licai

import (
	"math"
	"testing"

	"github.com/yunzhu/licai/date"
)

func TestHoldingYield(t *testing.T) {
	conv := NewDefaultConverter()

	t.Run("plain CNY ledger", func(t *testing.T) {
		a := NewAsset("", "朝朝宝", ClassDeposit, CNY)
		a.History = []Transaction{
			tx("2024-03-01", Deposit, "1000", CNY),
			tx("2024-03-02", Earning, "8", CNY),
		}
		mustRecompute(t, a, conv)
		if got := a.HoldingYield(); !got.Equal(0.8) {
			t.Errorf("HoldingYield = %s, want 0.80%%", got)
		}
	})

	t.Run("USD earnings convert before dividing", func(t *testing.T) {
		a := NewAsset("", "标普基金", ClassFund, CNY)
		a.EarningsCurrency = USD
		a.History = []Transaction{
			tx("2024-03-01", Deposit, "1000", CNY),
			tx("2024-03-02", Earning, "10", USD),
		}
		mustRecompute(t, a, conv)
		// 10 USD = 71.9 CNY over a 1000 CNY principal: 7.19%, not 1%.
		if got := a.HoldingYield(); !got.Equal(7.19) {
			t.Errorf("HoldingYield = %s, want 7.19%%", got)
		}
	})

	t.Run("no principal reports zero", func(t *testing.T) {
		a := NewAsset("", "朝朝宝", ClassDeposit, CNY)
		a.History = []Transaction{tx("2024-03-02", Earning, "8", CNY)}
		mustRecompute(t, a, conv)
		if got := a.HoldingYield(); got != 0 {
			t.Errorf("HoldingYield = %s, want 0 when principal is not positive", got)
		}
	})
}

func TestSevenDayAnnualized(t *testing.T) {
	conv := NewDefaultConverter()
	a := NewAsset("", "朝朝宝", ClassDeposit, CNY)
	a.History = []Transaction{
		tx("2024-03-01", Deposit, "1000", CNY),
		tx("2024-03-02", Earning, "5", CNY),
		tx("2024-03-03", Earning, "3", CNY),
		tx("2024-02-20", Earning, "100", CNY), // outside the trailing week
	}
	mustRecompute(t, a, conv)

	got, err := a.SevenDayAnnualized(date.MustParse("2024-03-03"), conv)
	if err != nil {
		t.Fatal(err)
	}
	// (5+3)/1000 * 365/7 * 100
	want := Percent(8.0 / 1000 * 365 / 7 * 100)
	if !got.Equal(want) {
		t.Errorf("SevenDayAnnualized = %s, want %s", got, want)
	}

	// A week later the earnings have aged out.
	later, err := a.SevenDayAnnualized(date.MustParse("2024-03-15"), conv)
	if err != nil {
		t.Fatal(err)
	}
	if later != 0 {
		t.Errorf("SevenDayAnnualized after the window = %s, want 0", later)
	}
}

func TestSevenDayAnnualized_ConvertsEarningsCurrency(t *testing.T) {
	conv := NewDefaultConverter()
	a := NewAsset("", "标普基金", ClassFund, CNY)
	a.EarningsCurrency = USD
	a.History = []Transaction{
		tx("2024-03-01", Deposit, "1000", CNY),
		tx("2024-03-02", Earning, "1", USD),
	}
	mustRecompute(t, a, conv)
	got, err := a.SevenDayAnnualized(date.MustParse("2024-03-02"), conv)
	if err != nil {
		t.Fatal(err)
	}
	want := Percent(7.19 / 1000 * 365 / 7 * 100)
	if !got.Equal(want) {
		t.Errorf("SevenDayAnnualized = %s, want %s", got, want)
	}
}

func TestOverallAnnualized(t *testing.T) {
	conv := NewDefaultConverter()
	a := NewAsset("", "朝朝宝", ClassDeposit, CNY)
	a.History = []Transaction{
		tx("2024-01-01", Deposit, "1000", CNY),
		tx("2024-01-20", Earning, "8", CNY),
	}
	mustRecompute(t, a, conv)

	t.Run("held more than 7 days", func(t *testing.T) {
		on := date.MustParse("2024-02-01") // 31 days held
		want := Percent((math.Pow(1008.0/1000.0, 365.0/31.0) - 1) * 100)
		if got := a.OverallAnnualized(on); !got.Equal(want) {
			t.Errorf("OverallAnnualized = %s, want %s", got, want)
		}
	})

	t.Run("held 7 days or less reports zero", func(t *testing.T) {
		if got := a.OverallAnnualized(date.MustParse("2024-01-07")); got != 0 {
			t.Errorf("OverallAnnualized = %s, want 0 within the first week", got)
		}
	})

	t.Run("empty ledger reports zero", func(t *testing.T) {
		empty := NewAsset("", "新产品", ClassOther, CNY)
		mustRecompute(t, empty, conv)
		if got := empty.OverallAnnualized(date.MustParse("2024-02-01")); got != 0 {
			t.Errorf("OverallAnnualized = %s, want 0 for an empty ledger", got)
		}
	})
}

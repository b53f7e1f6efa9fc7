package licai

import (
	"errors"
	"testing"
)

func f(v float64) *float64 { return &v }

func TestNormalize_Defaults(t *testing.T) {
	conv := NewDefaultConverter()
	target := NewAsset("招商银行", "朝朝宝", ClassDeposit, CNY)
	target.EarningsCurrency = USD

	testCases := []struct {
		name         string
		rec          ExtractedRecord
		target       *Asset
		wantType     TxType
		wantCurrency string
		wantProduct  string
	}{
		{
			name:         "missing type defaults to earning",
			rec:          ExtractedRecord{Date: "2024-03-01", Amount: f(5)},
			wantType:     Earning,
			wantCurrency: CNY,
			wantProduct:  UnnamedProduct,
		},
		{
			name:         "missing currency with known target, deposit uses principal",
			rec:          ExtractedRecord{Date: "2024-03-01", Amount: f(1000), Type: "deposit"},
			target:       target,
			wantType:     Deposit,
			wantCurrency: CNY,
			wantProduct:  UnnamedProduct,
		},
		{
			name:         "missing currency with known target, earning uses earnings currency",
			rec:          ExtractedRecord{Date: "2024-03-01", Amount: f(5)},
			target:       target,
			wantType:     Earning,
			wantCurrency: USD,
			wantProduct:  UnnamedProduct,
		},
		{
			name:         "explicit currency wins over every default",
			rec:          ExtractedRecord{Date: "2024-03-01", Amount: f(5), Currency: HKD},
			target:       target,
			wantType:     Earning,
			wantCurrency: HKD,
			wantProduct:  UnnamedProduct,
		},
		{
			name:         "specific product name is kept",
			rec:          ExtractedRecord{Date: "2024-03-01", Amount: f(5), Product: "易方达蓝筹精选"},
			wantType:     Earning,
			wantCurrency: CNY,
			wantProduct:  "易方达蓝筹精选",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.rec, tc.target, CNY, conv)
			if err != nil {
				t.Fatalf("Normalize returned error: %v", err)
			}
			if got.Type != tc.wantType {
				t.Errorf("Type = %q, want %q", got.Type, tc.wantType)
			}
			if got.Currency != tc.wantCurrency {
				t.Errorf("Currency = %q, want %q", got.Currency, tc.wantCurrency)
			}
			if got.Product != tc.wantProduct {
				t.Errorf("Product = %q, want %q", got.Product, tc.wantProduct)
			}
		})
	}
}

func TestNormalize_Rejections(t *testing.T) {
	conv := NewDefaultConverter()

	testCases := []struct {
		name    string
		rec     ExtractedRecord
		wantErr error
	}{
		{name: "no amount", rec: ExtractedRecord{Date: "2024-03-01"}, wantErr: ErrMalformedRecord},
		{name: "no date", rec: ExtractedRecord{Amount: f(5)}, wantErr: ErrMalformedRecord},
		{name: "garbage date", rec: ExtractedRecord{Date: "soon", Amount: f(5)}, wantErr: ErrMalformedRecord},
		{name: "garbage type", rec: ExtractedRecord{Date: "2024-03-01", Amount: f(5), Type: "dividend"}, wantErr: ErrMalformedRecord},
		{name: "unsupported currency", rec: ExtractedRecord{Date: "2024-03-01", Amount: f(5), Currency: "EUR"}, wantErr: ErrUnknownCurrency},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(tc.rec, nil, CNY, conv)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Normalize error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestNormalize_ClassFromNameWhenNoHint(t *testing.T) {
	conv := NewDefaultConverter()
	got, err := Normalize(ExtractedRecord{Date: "2024-03-01", Amount: f(5), Product: "易方达蓝筹精选混合基金"}, nil, CNY, conv)
	if err != nil {
		t.Fatal(err)
	}
	if got.Class != ClassFund {
		t.Errorf("Class = %q, want %q", got.Class, ClassFund)
	}
}

package licai

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
)

func TestConsolidate_MergesSameIdentity(t *testing.T) {
	conv := NewDefaultConverter()

	a := NewAsset(UnnamedChannel, "易方达蓝筹精选", ClassFund, CNY)
	a.History = []Transaction{
		tx("2024-03-01", Deposit, "1000", CNY),
		tx("2024-03-02", Earning, "5", CNY),
	}
	// Created independently with a cosmetically different name that
	// normalizes to the same identity.
	b := NewAsset("天天基金", "易方达 蓝筹精选", ClassFund, CNY)
	b.History = []Transaction{
		tx("2024-03-02", Earning, "5", CNY), // exact duplicate of a's earning
		tx("2024-03-03", Earning, "3", CNY),
	}

	got, err := Consolidate([]*Asset{a, b}, conv)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d assets, want 1 merged", len(got))
	}
	merged := got[0]
	if len(merged.History) != 3 {
		t.Errorf("merged history has %d transactions, want 3", len(merged.History))
	}
	if !merged.CurrentAmount.Equal(decimal.RequireFromString("1008")) {
		t.Errorf("CurrentAmount = %s, want 1008", merged.CurrentAmount)
	}
	// The placeholder institution loses to the specific one.
	if merged.Institution != "天天基金" {
		t.Errorf("Institution = %q, want 天天基金", merged.Institution)
	}
}

func TestConsolidate_KeepsExistingSpecificInstitution(t *testing.T) {
	conv := NewDefaultConverter()
	a := NewAsset("招商银行", "朝朝宝", ClassDeposit, CNY)
	b := NewAsset("工商银行", "朝朝宝", ClassDeposit, CNY)
	got, err := Consolidate([]*Asset{a, b}, conv)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Institution != "招商银行" {
		t.Fatalf("want single asset keeping the existing institution, got %+v", got)
	}
}

func TestConsolidate_DoesNotMergeAcrossCurrencies(t *testing.T) {
	conv := NewDefaultConverter()
	a := NewAsset("", "货币基金", ClassFund, CNY)
	b := NewAsset("", "货币基金", ClassFund, USD)
	got, err := Consolidate([]*Asset{a, b}, conv)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("got %d assets, want 2: same name in different currencies is two ledgers", len(got))
	}
}

func TestConsolidate_Idempotent(t *testing.T) {
	conv := NewDefaultConverter()

	a := NewAsset("", "易方达蓝筹精选", ClassFund, CNY)
	a.History = []Transaction{
		tx("2024-03-02", Earning, "5", CNY),
		tx("2024-03-01", Deposit, "1000", CNY),
		tx("2024-03-02", Earning, "5", USD),
	}
	b := NewAsset("盈透", "标普基金", ClassFund, USD)
	b.EarningsCurrency = HKD
	b.History = []Transaction{
		tx("2024-02-01", Deposit, "500", USD),
		tx("2024-02-02", Earning, "3.33", HKD),
	}
	c := NewAsset("X", "易方达蓝筹精选", ClassFund, CNY)
	c.History = []Transaction{tx("2024-03-03", Earning, "3", CNY)}

	once, err := Consolidate([]*Asset{a, b, c}, conv)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := Consolidate(once, conv)
	if err != nil {
		t.Fatal(err)
	}

	var first, second bytes.Buffer
	if err := EncodeAssets(&first, once); err != nil {
		t.Fatal(err)
	}
	if err := EncodeAssets(&second, twice); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("consolidation is not idempotent:\nfirst:  %s\nsecond: %s", first.String(), second.String())
	}
}

// Fold correctness: CurrentAmount must equal principal plus earnings, both
// recomputed independently from History by the test.
func TestConsolidate_FoldCorrectness(t *testing.T) {
	conv := NewDefaultConverter()
	a := NewAsset("盈透", "标普基金", ClassFund, CNY)
	a.EarningsCurrency = USD
	a.History = []Transaction{
		tx("2024-01-01", Deposit, "1000", CNY),
		tx("2024-01-05", Deposit, "200", USD),
		tx("2024-01-10", Earning, "10", USD),
		tx("2024-01-11", Earning, "-2.5", USD),
		tx("2024-01-12", Earning, "7", CNY),
	}
	got, err := Consolidate([]*Asset{a}, conv)
	if err != nil {
		t.Fatal(err)
	}
	asset := got[0]

	principal := decimal.Zero
	earnings := decimal.Zero
	for _, tr := range asset.History {
		v, err := conv.Convert(tr.Amount, tr.Currency, asset.Currency)
		if err != nil {
			t.Fatal(err)
		}
		switch tr.Type {
		case Deposit:
			principal = principal.Add(v)
		case Earning:
			earnings = earnings.Add(v)
		}
	}
	if !asset.CurrentAmount.Equal(principal.Add(earnings)) {
		t.Errorf("CurrentAmount = %s, want principal %s + earnings %s", asset.CurrentAmount, principal, earnings)
	}
}

func TestIngest_CreatesAndUpdates(t *testing.T) {
	conv := NewDefaultConverter()
	existing := NewAsset("招商银行", "朝朝宝", ClassDeposit, CNY)
	existing.History = []Transaction{tx("2024-02-01", Deposit, "1000", CNY)}

	records := []ExtractedRecord{
		{Date: "2024-03-01", Amount: f(1.2), Product: "朝朝宝", Currency: "CNY"},
		{Date: "2024-03-01", Amount: f(500), Type: "deposit", Product: "易方达蓝筹精选", Currency: "CNY", Institution: "天天基金"},
		{Date: "2024-03-01", Amount: f(0.8)}, // weak: relabeled with the last strong CNY name
		{Amount: f(3)},                       // malformed: no date
	}
	got, summary, err := Ingest([]*Asset{existing}, records, conv, IngestOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Processed != 4 || summary.Dropped != 1 {
		t.Errorf("summary = %+v, want 4 processed / 1 dropped", summary)
	}
	if summary.Created != 1 || summary.Updated != 1 {
		t.Errorf("summary = %+v, want 1 created / 1 updated", summary)
	}
	if len(got) != 2 {
		t.Fatalf("got %d assets, want 2", len(got))
	}
}

func TestIngest_RepeatedScreenshotAddsNothing(t *testing.T) {
	conv := NewDefaultConverter()
	screenshot := []ExtractedRecord{
		{Date: "2024-03-01", Amount: f(12.50), Product: "朝朝宝", Institution: "招商银行", Currency: "CNY"},
	}

	first, summary1, err := Ingest(nil, screenshot, conv, IngestOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if summary1.Created != 1 || summary1.Added != 1 {
		t.Fatalf("first ingestion summary = %+v", summary1)
	}

	second, summary2, err := Ingest(first, screenshot, conv, IngestOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if summary2.Added != 0 {
		t.Errorf("second ingestion added %d records, want 0", summary2.Added)
	}
	if summary2.Duplicates != 1 {
		t.Errorf("second ingestion reported %d duplicates, want 1", summary2.Duplicates)
	}
	if len(second) != 1 || len(second[0].History) != 1 {
		t.Errorf("ledger grew on re-ingestion: %+v", second)
	}
}

func TestIngest_ForcedTarget(t *testing.T) {
	conv := NewDefaultConverter()
	target := NewAsset("招商银行", "朝朝宝", ClassDeposit, CNY)
	other := NewAsset("天天基金", "易方达蓝筹精选", ClassFund, CNY)

	records := []ExtractedRecord{
		// Despite naming another product, the forced target wins.
		{Date: "2024-03-01", Amount: f(5), Product: "易方达蓝筹精选", Currency: "CNY"},
		{Date: "2024-03-02", Amount: f(3)},
	}
	got, summary, err := Ingest([]*Asset{target, other}, records, conv, IngestOptions{TargetID: target.ID})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Added != 2 || summary.Created != 0 || summary.Updated != 1 {
		t.Errorf("summary = %+v, want 2 added into the forced target", summary)
	}
	for _, a := range got {
		switch a.ID {
		case target.ID:
			if len(a.History) != 2 {
				t.Errorf("target history has %d transactions, want 2", len(a.History))
			}
		case other.ID:
			if len(a.History) != 0 {
				t.Errorf("other ledger received transactions: %+v", a.History)
			}
		}
	}

	if _, _, err := Ingest(nil, records, conv, IngestOptions{TargetID: "missing"}); err == nil {
		t.Error("expected error for an unknown forced target")
	}
}

func TestIngest_AmbiguousMatchCreatesNewLedger(t *testing.T) {
	conv := NewDefaultConverter()
	a := NewAsset("", "易方达蓝筹精选", ClassFund, CNY)
	b := NewAsset("", "蓝筹增强", ClassFund, CNY)

	records := []ExtractedRecord{{Date: "2024-03-01", Amount: f(5), Product: "蓝筹", Currency: "CNY"}}
	got, summary, err := Ingest([]*Asset{a, b}, records, conv, IngestOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if summary.Ambiguous != 1 || summary.Created != 1 {
		t.Errorf("summary = %+v, want ambiguity resolved by creating a new ledger", summary)
	}
	if len(got) != 3 {
		t.Errorf("got %d assets, want 3", len(got))
	}
}

func TestIngest_DoesNotMutateInput(t *testing.T) {
	conv := NewDefaultConverter()
	existing := NewAsset("招商银行", "朝朝宝", ClassDeposit, CNY)
	existing.History = []Transaction{tx("2024-02-01", Deposit, "1000", CNY)}
	snapshot := []*Asset{existing}

	_, _, err := Ingest(snapshot, []ExtractedRecord{
		{Date: "2024-03-01", Amount: f(1.2), Product: "朝朝宝", Currency: "CNY"},
	}, conv, IngestOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(existing.History) != 1 {
		t.Errorf("Ingest mutated its input snapshot: %d transactions", len(existing.History))
	}
}

func TestDeleteAsset(t *testing.T) {
	a := NewAsset("", "朝朝宝", ClassDeposit, CNY)
	b := NewAsset("", "蓝筹", ClassFund, CNY)
	got, err := DeleteAsset([]*Asset{a, b}, a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != b.ID {
		t.Errorf("DeleteAsset result = %+v", got)
	}
	if _, err := DeleteAsset(got, "missing"); err == nil {
		t.Error("expected error deleting an unknown asset")
	}
}

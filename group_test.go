package licai

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/yunzhu/licai/date"
)

func rec(product, institution, currency string, amount float64) Record {
	return Record{
		Transaction: NewTransaction(date.MustParse("2024-03-01"), Earning, decimal.NewFromFloat(amount), currency, ""),
		Product:     product,
		Institution: institution,
		Class:       ClassOther,
	}
}

func TestGroupRecords_InfersWeakNames(t *testing.T) {
	records := []Record{
		rec("朝朝宝", "招商银行", CNY, 1.2),
		rec(UnnamedProduct, "", CNY, 0.8), // weak: inherits 朝朝宝
		rec(UnnamedProduct, "", USD, 0.5), // weak in USD: no strong USD record, stays unnamed
	}
	groups := GroupRecords(records)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Product != "朝朝宝" || groups[0].Currency != CNY {
		t.Errorf("group 0 = (%q, %q)", groups[0].Product, groups[0].Currency)
	}
	if len(groups[0].Records) != 2 {
		t.Errorf("group 0 has %d records, want 2", len(groups[0].Records))
	}
	if groups[1].Product != UnnamedProduct || groups[1].Currency != USD {
		t.Errorf("group 1 = (%q, %q), want unnamed USD", groups[1].Product, groups[1].Currency)
	}
}

func TestGroupRecords_LastStrongNameWins(t *testing.T) {
	// Two distinct CNY products in one batch: the inference map keeps the
	// last one. This is the documented simplification, not an accident.
	records := []Record{
		rec("易方达蓝筹精选", "", CNY, 1),
		rec("招商中证白酒", "", CNY, 2),
		rec(UnnamedProduct, "", CNY, 3),
	}
	groups := GroupRecords(records)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	last := groups[1]
	if last.Product != "招商中证白酒" {
		t.Fatalf("unexpected group order: %q", last.Product)
	}
	if len(last.Records) != 2 {
		t.Errorf("weak record attributed to %q, want 招商中证白酒", groups[0].Product)
	}
}

func TestGroupRecords_FirstInstitutionWins(t *testing.T) {
	records := []Record{
		rec("朝朝宝", "", CNY, 1),
		rec("朝朝宝", "招商银行", CNY, 2),
		rec("朝朝宝", "工商银行", CNY, 3),
	}
	groups := GroupRecords(records)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if groups[0].Institution != "招商银行" {
		t.Errorf("Institution = %q, want the first non-empty one", groups[0].Institution)
	}
}

func TestGroupRecords_Empty(t *testing.T) {
	if groups := GroupRecords(nil); len(groups) != 0 {
		t.Errorf("GroupRecords(nil) = %v, want none", groups)
	}
}

package licai

import "strings"

// AssetClass is the closed set of product categories the tracker knows about.
// Free-text labels from screenshots are folded into it exactly once, by
// ClassifyProduct, instead of scattering substring checks through display code.
type AssetClass string

const (
	ClassFund    AssetClass = "fund"
	ClassStock   AssetClass = "stock"
	ClassBond    AssetClass = "bond"
	ClassGold    AssetClass = "gold"
	ClassDeposit AssetClass = "deposit"
	ClassOther   AssetClass = "other"
)

// Label returns the display label for the class.
func (c AssetClass) Label() string {
	switch c {
	case ClassFund:
		return "基金"
	case ClassStock:
		return "股票"
	case ClassBond:
		return "债券"
	case ClassGold:
		return "贵金属"
	case ClassDeposit:
		return "存款"
	default:
		return "其他"
	}
}

// classKeywords maps keywords to a class, in priority order: the first rule
// whose keyword appears in the text wins.
var classKeywords = []struct {
	keyword string
	class   AssetClass
}{
	{"货币", ClassFund},
	{"基金", ClassFund},
	{"fund", ClassFund},
	{"黄金", ClassGold},
	{"股票", ClassStock},
	{"股", ClassStock},
	{"stock", ClassStock},
	{"债", ClassBond},
	{"bond", ClassBond},
	{"金", ClassGold},
	{"gold", ClassGold},
	{"etf", ClassFund},
	{"存款", ClassDeposit},
	{"存单", ClassDeposit},
	{"理财", ClassDeposit},
	{"宝", ClassDeposit},
	{"deposit", ClassDeposit},
}

// ClassifyProduct folds a free-text product label or class hint into an
// AssetClass using the prioritized keyword table.
func ClassifyProduct(text string) AssetClass {
	lower := strings.ToLower(text)
	for _, rule := range classKeywords {
		if strings.Contains(lower, rule.keyword) {
			return rule.class
		}
	}
	return ClassOther
}

// ParseAssetClass parses a stored class value, folding unknown values to
// ClassOther rather than failing.
func ParseAssetClass(s string) AssetClass {
	switch AssetClass(s) {
	case ClassFund, ClassStock, ClassBond, ClassGold, ClassDeposit:
		return AssetClass(s)
	default:
		return ClassOther
	}
}

package licai

// Group is a bucket of normalized records believed to belong to one asset:
// same product name, same currency. It carries the first non-empty
// institution seen among its members and a best-guess asset class.
type Group struct {
	Product     string
	Currency    string
	Institution string
	Class       AssetClass
	Records     []Record
}

// groupKey identifies a bucket.
type groupKey struct {
	product  string
	currency string
}

// GroupRecords buckets a batch of normalized records by (product, currency).
//
// Within one batch, a record is "strong" when it carries a specific, non
// placeholder product name, "weak" otherwise. For each currency present
// among strong records the batch yields a currency→product inference map,
// and weak records are re-labeled with the inferred name for their currency
// before bucketing. On conflict the last strong record wins: when a single
// batch mixes several products sharing a currency only one gets correct
// attribution. That tie-break is a known simplification, kept deliberately;
// see the open questions in DESIGN.md.
func GroupRecords(records []Record) []*Group {
	inferred := make(map[string]string)
	for _, r := range records {
		if r.Named() {
			inferred[r.Currency] = r.Product // last strong record wins
		}
	}

	var groups []*Group
	index := make(map[groupKey]*Group)
	for _, r := range records {
		if !r.Named() {
			if name, ok := inferred[r.Currency]; ok {
				r.Product = name
			}
		}
		key := groupKey{product: r.Product, currency: r.Currency}
		g, ok := index[key]
		if !ok {
			g = &Group{Product: r.Product, Currency: r.Currency, Class: r.Class}
			index[key] = g
			groups = append(groups, g)
		}
		if g.Institution == "" {
			g.Institution = r.Institution
		}
		if g.Class == ClassOther && r.Class != ClassOther {
			g.Class = r.Class
		}
		g.Records = append(g.Records, r)
	}
	return groups
}

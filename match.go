package licai

import (
	"errors"
	"strings"
	"unicode"
)

// ErrAmbiguousMatch marks a fuzzy match with more than one candidate.
// Ambiguity is never silently resolved: the caller creates a new ledger
// instead, favoring duplication over a mis-merge (a later consolidation pass
// can merge, an erroneous merge cannot be undone).
var ErrAmbiguousMatch = errors.New("ambiguous asset match")

// NormalizeProductName strips every character that is not a CJK ideograph,
// an ASCII letter or a digit, and lowercases the rest. Two product names are
// comparable once both are normalized.
func NormalizeProductName(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Han, r):
			b.WriteRune(r)
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Match resolves a group to an existing asset, in strict precedence order:
//
//  1. strict: identical (institution, product, currency);
//  2. fuzzy: normalized names contain one another, and the group's currency
//     equals the candidate's principal or earnings currency; accepted only
//     when exactly one candidate qualifies.
//
// It returns nil when no asset matches; a nil with ErrAmbiguousMatch when
// several do. A forced manual target is resolved by the caller before
// grouping even starts, so it does not appear here.
func Match(g *Group, assets []*Asset) (*Asset, error) {
	for _, a := range assets {
		if a.Institution == g.Institution && a.Name == g.Product && a.Currency == g.Currency {
			return a, nil
		}
	}

	name := NormalizeProductName(g.Product)
	if name == "" {
		return nil, nil
	}
	var candidates []*Asset
	for _, a := range assets {
		if g.Currency != a.Currency && g.Currency != a.EarningsCurrency {
			continue
		}
		candidate := NormalizeProductName(a.Name)
		if candidate == "" {
			continue
		}
		if strings.Contains(name, candidate) || strings.Contains(candidate, name) {
			candidates = append(candidates, a)
		}
	}
	switch len(candidates) {
	case 0:
		return nil, nil
	case 1:
		return candidates[0], nil
	default:
		return nil, ErrAmbiguousMatch
	}
}

// NewAssetForGroup creates the ledger a group falls back to when nothing
// matched, seeded with the group's institution (or the unnamed-channel
// placeholder), product name and currency.
func NewAssetForGroup(g *Group) *Asset {
	return NewAsset(g.Institution, g.Product, g.Class, g.Currency)
}

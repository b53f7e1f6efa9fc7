package licai

import (
	"errors"
	"fmt"
	"slices"
)

// identityKey is the conceptual identity of a ledger: normalized product
// name plus principal currency. Institution is metadata, not identity.
type identityKey struct {
	name     string
	currency string
}

func identity(a *Asset) identityKey {
	return identityKey{name: NormalizeProductName(a.Name), currency: a.Currency}
}

// Consolidate returns a new snapshot where ledgers sharing the same identity
// key are merged and every ledger's derived fields are recomputed from its
// history. The input snapshot is never mutated.
//
// Two ledgers with the same identity typically appear when two ingestions
// ran concurrently, or when two were created independently before a naming
// collision was noticed. Merging concatenates their histories and removes
// exact duplicates by (date, type, amount-to-cents) signature. The surviving
// institution is the more specific one: the unnamed-channel placeholder
// always loses, and when both are specific the existing one is kept.
//
// Consolidate is idempotent: consolidating a consolidated snapshot yields
// field-for-field identical output.
func Consolidate(assets []*Asset, conv *Converter) ([]*Asset, error) {
	result := make([]*Asset, 0, len(assets))
	index := make(map[identityKey]*Asset, len(assets))

	for _, a := range assets {
		key := identity(a)
		existing, ok := index[key]
		if !ok {
			c := a.Clone()
			index[key] = c
			result = append(result, c)
			continue
		}
		mergeInto(existing, a)
	}

	for _, a := range result {
		if err := a.Recompute(conv); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// mergeInto folds the duplicate ledger into the surviving one.
func mergeInto(dst *Asset, dup *Asset) {
	seen := make(map[string]bool, len(dst.History)+len(dup.History))
	merged := make([]Transaction, 0, len(dst.History)+len(dup.History))
	for _, t := range slices.Concat(dst.History, dup.History) {
		sig := t.Signature()
		if seen[sig] {
			continue
		}
		seen[sig] = true
		merged = append(merged, t)
	}
	dst.History = merged

	if dst.Institution == UnnamedChannel && dup.Institution != UnnamedChannel && dup.Institution != "" {
		dst.Institution = dup.Institution
	}
	if dst.Remark == "" {
		dst.Remark = dup.Remark
	}
}

// DeleteAsset returns a new snapshot without the identified ledger. The
// deletion cascades to the ledger's entire history and is irreversible.
func DeleteAsset(assets []*Asset, id string) ([]*Asset, error) {
	result := slices.Clone(assets)
	n := len(result)
	result = slices.DeleteFunc(result, func(a *Asset) bool { return a.ID == id })
	if len(result) == n {
		return nil, fmt.Errorf("no asset %q", id)
	}
	return result, nil
}

// IngestOptions tunes one ingestion batch.
type IngestOptions struct {
	// TargetID, when set, forces every record of the batch into that ledger
	// regardless of product name or currency.
	TargetID string
	// DefaultCurrency is the fallback currency for records that carry none
	// and resolve to no known ledger. Empty means the converter's base.
	DefaultCurrency string
}

// IngestSummary reports what one ingestion batch did. The engine never
// retries internally; everything is either absorbed or surfaced here.
type IngestSummary struct {
	Processed  int // records received from the collaborator
	Dropped    int // malformed or unknown-currency records, skipped
	Duplicates int // records already present, skipped
	Ambiguous  int // groups whose fuzzy match was ambiguous, sent to new ledgers
	Added      int // transactions actually inserted
	Created    int // ledgers created
	Updated    int // existing ledgers that received transactions
}

func (s IngestSummary) String() string {
	return fmt.Sprintf("%d records processed, %d dropped, %d duplicates skipped, %d added, %d ledgers created, %d ledgers updated",
		s.Processed, s.Dropped, s.Duplicates, s.Added, s.Created, s.Updated)
}

// Ingest runs one extraction batch through the whole pipeline:
// normalize → group → match-or-create → dedup → append → consolidate.
// It returns a new snapshot and a summary; the input snapshot is never
// mutated. Malformed records are dropped without aborting the batch.
//
// Ingest assumes serial, single-writer execution: two concurrent batches can
// each decide "no ledger matched" and create twins. Callers must serialize
// the whole call per user (see Repository.Update); twins that slip through
// are merged by the next Consolidate pass.
func Ingest(assets []*Asset, records []ExtractedRecord, conv *Converter, opts IngestOptions) ([]*Asset, IngestSummary, error) {
	summary := IngestSummary{Processed: len(records)}
	fallback := opts.DefaultCurrency
	if fallback == "" {
		fallback = conv.Base()
	}

	result := slices.Clone(assets)

	if opts.TargetID != "" {
		i := slices.IndexFunc(result, func(a *Asset) bool { return a.ID == opts.TargetID })
		if i < 0 {
			return nil, summary, fmt.Errorf("no asset %q to ingest into", opts.TargetID)
		}
		target := result[i].Clone()
		var candidates []Transaction
		for _, rec := range records {
			r, err := Normalize(rec, target, fallback, conv)
			if err != nil {
				summary.Dropped++
				continue
			}
			candidates = append(candidates, r.Transaction)
		}
		fresh := FilterNew(target.History, candidates)
		summary.Duplicates += len(candidates) - len(fresh)
		if len(fresh) > 0 {
			target.History = append(target.History, fresh...)
			summary.Added += len(fresh)
			summary.Updated++
		}
		result[i] = target
		consolidated, err := Consolidate(result, conv)
		return consolidated, summary, err
	}

	normalized := make([]Record, 0, len(records))
	for _, rec := range records {
		r, err := Normalize(rec, nil, fallback, conv)
		if err != nil {
			summary.Dropped++
			continue
		}
		normalized = append(normalized, r)
	}

	for _, g := range GroupRecords(normalized) {
		target, err := Match(g, result)
		if errors.Is(err, ErrAmbiguousMatch) {
			// Never guess: a duplicate ledger beats a mis-merge.
			summary.Ambiguous++
			target = nil
		} else if err != nil {
			return nil, summary, err
		}

		candidates := make([]Transaction, 0, len(g.Records))
		for _, r := range g.Records {
			candidates = append(candidates, r.Transaction)
		}

		if target == nil {
			created := NewAssetForGroup(g)
			fresh := FilterNew(nil, candidates)
			summary.Duplicates += len(candidates) - len(fresh)
			summary.Added += len(fresh)
			created.History = fresh
			result = append(result, created)
			summary.Created++
			continue
		}

		i := slices.Index(result, target)
		updated := target.Clone()
		fresh := FilterNew(updated.History, candidates)
		summary.Duplicates += len(candidates) - len(fresh)
		if len(fresh) > 0 {
			updated.History = append(updated.History, fresh...)
			summary.Added += len(fresh)
			summary.Updated++
		}
		result[i] = updated
	}

	consolidated, err := Consolidate(result, conv)
	return consolidated, summary, err
}

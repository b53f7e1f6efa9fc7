package licai

import "sync"

// Repository owns the only mutable reference to the asset list. The engine
// itself is pure: every operation takes a snapshot and returns a new one, and
// the repository is where the new snapshot replaces the old.
//
// Update serializes the whole read-transform-replace sequence under one
// lock. That is the single-writer rule the ingestion pipeline depends on:
// two concurrent batches that each decide "no ledger matched" would both
// create a ledger for the same product, so the match→mutate sequence must
// never interleave.
type Repository struct {
	mu     sync.Mutex
	assets []*Asset
}

// NewRepository creates a repository over an initial snapshot.
func NewRepository(assets []*Asset) *Repository {
	return &Repository{assets: cloneSnapshot(assets)}
}

// Get returns a deep copy of the current snapshot. Callers may mutate it
// freely; the repository's own state only changes through Replace or Update.
func (r *Repository) Get() []*Asset {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneSnapshot(r.assets)
}

// Replace swaps in a new snapshot wholesale.
func (r *Repository) Replace(assets []*Asset) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets = cloneSnapshot(assets)
}

// Update applies fn to the current snapshot and stores the result, all under
// the repository lock. When fn fails the snapshot is left untouched.
func (r *Repository) Update(fn func(assets []*Asset) ([]*Asset, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next, err := fn(cloneSnapshot(r.assets))
	if err != nil {
		return err
	}
	r.assets = cloneSnapshot(next)
	return nil
}

func cloneSnapshot(assets []*Asset) []*Asset {
	c := make([]*Asset, len(assets))
	for i, a := range assets {
		c[i] = a.Clone()
	}
	return c
}

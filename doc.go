// Package licai is the consolidation engine of a personal multi-institution
// investment tracker. Users log deposits and earnings per financial product,
// optionally extracted from account screenshots by an AI collaborator, and
// view aggregated valuations in a display currency of their choice.
//
// The core of the package is a pipeline of pure functions over immutable
// snapshots:
//   - Record normalization: filling structural gaps in raw extracted records
//     (missing currency, type or product name) with explicit, named defaults.
//   - Grouping: bucketing a batch of records by product and currency,
//     inferring missing product names from context within the batch.
//   - Matching: resolving each group to an existing asset ledger, strictly or
//     fuzzily, or signalling that a new ledger must be created.
//   - Deduplication: filtering records already present in a ledger's history,
//     so that re-ingesting the same screenshot never duplicates transactions.
//   - Consolidation: merging ledgers that share the same identity, and
//     recomputing every derived aggregate (current amount, total earnings,
//     per-day earnings) from the transaction history alone.
//   - Yield calculation: holding, trailing-7-day annualized and overall
//     annualized yields, with multi-currency principal/earnings splits
//     converted through a fixed, injectable rate table.
//
// Nothing in this package performs I/O. Persistence, extraction and rendering
// live in their own packages and exchange immutable snapshots with this one.
// This package serves as the foundational logic for the `zb` command-line
// tool.
package licai

package licai

// FilterNew returns the candidates that are not already present in the
// history, in their original order. A candidate is a duplicate when some
// existing transaction has the same date, the same type, and an amount less
// than one cent away: re-ingesting the same screenshot must never grow the
// ledger.
//
// Candidates are also deduplicated against the candidates accepted earlier
// in the same batch, so one upload cannot insert the same screenshot row
// twice either.
func FilterNew(history []Transaction, candidates []Transaction) []Transaction {
	accepted := make([]Transaction, 0, len(candidates))
	for _, c := range candidates {
		if isDuplicate(history, c) || isDuplicate(accepted, c) {
			continue
		}
		accepted = append(accepted, c)
	}
	return accepted
}

func isDuplicate(txs []Transaction, c Transaction) bool {
	for _, t := range txs {
		if t.Duplicates(c) {
			return true
		}
	}
	return false
}

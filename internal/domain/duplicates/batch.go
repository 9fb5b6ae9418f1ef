package duplicates

// markBatchDuplicates flags rows that repeat an earlier row of the same batch.
// Only the later row of a pair is changed, and rows already matched exactly
// against the ledger are left alone. The earlier row is treated as canonical.
func (d *Detector) markBatchDuplicates(incoming []IncomingTransaction, results []Result) {
	for i := 0; i < len(incoming); i++ {
		for j := i + 1; j < len(incoming); j++ {
			if results[j].Status == StatusExact {
				continue
			}

			first, later := incoming[i], incoming[j]
			if first.Date != later.Date || !d.amountsMatch(first.Amount, later.Amount) {
				continue
			}
			if Similarity(first.Description, later.Description) < d.config.ExactThreshold {
				continue
			}

			results[j] = Result{
				Index:            j,
				Status:           StatusPossible,
				MatchID:          nil,
				MatchDescription: first.Description,
				MatchDate:        first.Date,
				MatchAmount:      first.Amount,
			}
		}
	}
}

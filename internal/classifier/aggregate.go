package classifier

import (
	"time"

	"github.com/creditgauge/creditgauge/internal/model"
	"github.com/creditgauge/creditgauge/internal/service"
)

// Aggregate sums credit and debit amounts over the window ending at "until".
// Credits approximate observed income and debits observed expenses; callers
// report them separately from user-declared figures so large discrepancies
// stay visible.
func Aggregate(txns []model.Transaction, until time.Time, window time.Duration) service.TransactionTotals {
	start := until.Add(-window)

	var totals service.TransactionTotals
	for _, txn := range txns {
		if txn.Date.Before(start) || txn.Date.After(until) {
			continue
		}
		switch txn.Direction {
		case model.DirectionCredit:
			totals.Credits += txn.Amount
		case model.DirectionDebit:
			totals.Debits += txn.Amount
		}
		totals.Count++
	}

	return totals
}

package model

import "time"

// SavingsEntryType distinguishes ledger movements.
type SavingsEntryType string

// Savings entry type constants.
const (
	EntryDeposit    SavingsEntryType = "deposit"
	EntryWithdrawal SavingsEntryType = "withdrawal"
)

// SavingsEntry is one movement in the append-only savings ledger. Entries
// are never edited or deleted.
type SavingsEntry struct {
	CreatedAt time.Time
	ID        string
	// Reference is the caller-supplied idempotency and audit token. Two
	// deposits with the same reference resolve to a single applied entry.
	Reference string
	Type      SavingsEntryType
	Amount    int64
}

// Signed returns the amount with a sign reflecting its effect on balance.
func (e *SavingsEntry) Signed() int64 {
	if e.Type == EntryWithdrawal {
		return -e.Amount
	}
	return e.Amount
}

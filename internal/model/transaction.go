package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// TransactionDirection indicates whether money moved in or out.
type TransactionDirection string

// Transaction direction constants.
const (
	DirectionCredit TransactionDirection = "credit"
	DirectionDebit  TransactionDirection = "debit"
)

// Transaction represents a single financial event classified from an inbound
// bank alert message. Amounts are whole naira; there are no minor units.
type Transaction struct {
	Date        time.Time
	ID          string
	Source      string // Counterparty/sender label (bank or merchant), when detected
	Description string // Truncated message snippet, used only when Source is empty
	Sender      string // Raw sender identifier from the message inbox
	Hash        string
	Direction   TransactionDirection
	Amount      int64
}

// DisplayLabel returns whichever of Source or Description is populated.
// Exactly one of the two is non-empty for a classified transaction.
func (t *Transaction) DisplayLabel() string {
	if t.Source != "" {
		return t.Source
	}
	return t.Description
}

// GenerateHash creates a stable hash for duplicate detection, so the same
// alert scanned twice produces one stored transaction.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%d:%s:%s",
		t.Date.Format("2006-01-02T15:04:05"),
		t.Amount,
		t.Direction,
		t.DisplayLabel())
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/creditgauge/creditgauge/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
}

// TransactionTotals aggregates classified transactions for the scoring
// calculator. Credits approximate observed income, debits observed expenses;
// both are kept separate from user-declared figures.
type TransactionTotals struct {
	Credits int64
	Debits  int64
	Count   int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionTotals(ctx context.Context, start, end time.Time) (*TransactionTotals, error)

	// Savings ledger operations. AppendSavingsEntry reports false when an
	// entry with the same reference was already applied.
	AppendSavingsEntry(ctx context.Context, entry *model.SavingsEntry) (bool, error)
	GetSavingsEntries(ctx context.Context, limit int) ([]model.SavingsEntry, error)
	GetSavingsBalance(ctx context.Context) (int64, error)
	CountDepositSessions(ctx context.Context) (int, error)

	// User and profile operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context) (*model.User, error)
	SaveProfile(ctx context.Context, profile *model.FinancialProfile) error
	GetProfile(ctx context.Context) (*model.FinancialProfile, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Tx, error)
	Close() error
}

// Tx represents a database transaction. All Storage methods called through a
// Tx observe and join the same underlying transaction.
type Tx interface {
	Commit() error
	Rollback() error
	Storage
}

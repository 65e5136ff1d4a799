package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/creditgauge/creditgauge/internal/common"
	"github.com/creditgauge/creditgauge/internal/model"
	"github.com/creditgauge/creditgauge/internal/service"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) (*SQLiteStorage, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	ctx := context.Background()
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store, func() { _ = store.Close() }
}

// Helper function to create test transactions.
func createTestTransactions(count int) []model.Transaction {
	txns := make([]model.Transaction, count)
	baseTime := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		direction := model.DirectionCredit
		if i%2 == 1 {
			direction = model.DirectionDebit
		}
		txns[i] = model.Transaction{
			ID:        fmt.Sprintf("txn-%03d", i+1),
			Date:      baseTime.Add(time.Duration(i) * time.Hour),
			Source:    "GTBank",
			Sender:    "GTBank",
			Direction: direction,
			Amount:    int64(i+1) * 1000,
		}
		txns[i].Hash = txns[i].GenerateHash()
	}
	return txns
}

func TestSaveTransactions_DeduplicatesOnHash(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	txns := createTestTransactions(3)
	if err := store.SaveTransactions(ctx, txns); err != nil {
		t.Fatalf("Failed to save transactions: %v", err)
	}

	// Same content, fresh IDs: a re-scan of the same inbox.
	rescanned := createTestTransactions(3)
	for i := range rescanned {
		rescanned[i].ID = fmt.Sprintf("rescan-%03d", i+1)
	}
	if err := store.SaveTransactions(ctx, rescanned); err != nil {
		t.Fatalf("Failed to re-save transactions: %v", err)
	}

	got, err := store.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		t.Fatalf("Failed to get transactions: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Expected 3 transactions after re-scan, got %d", len(got))
	}
}

func TestGetTransactions_OrderAndLimit(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.SaveTransactions(ctx, createTestTransactions(5)); err != nil {
		t.Fatalf("Failed to save transactions: %v", err)
	}

	got, err := store.GetTransactions(ctx, service.TransactionFilter{Limit: 2})
	if err != nil {
		t.Fatalf("Failed to get transactions: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 transactions, got %d", len(got))
	}
	if got[0].Date.Before(got[1].Date) {
		t.Error("Expected reverse-chronological order")
	}
}

func TestGetTransactionTotals(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Amounts 1000..5000; odd indexes are debits (2000, 4000).
	if err := store.SaveTransactions(ctx, createTestTransactions(5)); err != nil {
		t.Fatalf("Failed to save transactions: %v", err)
	}

	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	totals, err := store.GetTransactionTotals(ctx, start, end)
	if err != nil {
		t.Fatalf("Failed to get totals: %v", err)
	}

	if totals.Credits != 9000 {
		t.Errorf("Expected credits 9000, got %d", totals.Credits)
	}
	if totals.Debits != 6000 {
		t.Errorf("Expected debits 6000, got %d", totals.Debits)
	}
	if totals.Count != 5 {
		t.Errorf("Expected count 5, got %d", totals.Count)
	}
}

func TestAppendSavingsEntry_Idempotent(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	entry := model.SavingsEntry{
		ID:        "entry-1",
		Reference: "ref-abc",
		Type:      model.EntryDeposit,
		Amount:    5000,
		CreatedAt: time.Now(),
	}

	inserted, err := store.AppendSavingsEntry(ctx, &entry)
	if err != nil {
		t.Fatalf("Failed to append entry: %v", err)
	}
	if !inserted {
		t.Fatal("Expected first append to insert")
	}

	replay := entry
	replay.ID = "entry-2"
	inserted, err = store.AppendSavingsEntry(ctx, &replay)
	if err != nil {
		t.Fatalf("Failed to replay entry: %v", err)
	}
	if inserted {
		t.Error("Expected replayed reference to be ignored")
	}

	balance, err := store.GetSavingsBalance(ctx)
	if err != nil {
		t.Fatalf("Failed to get balance: %v", err)
	}
	if balance != 5000 {
		t.Errorf("Expected balance 5000, got %d", balance)
	}
}

func TestSavingsBalanceAndSessions(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	entries := []model.SavingsEntry{
		{ID: "e1", Reference: "r1", Type: model.EntryDeposit, Amount: 5000, CreatedAt: time.Now()},
		{ID: "e2", Reference: "r2", Type: model.EntryDeposit, Amount: 3000, CreatedAt: time.Now()},
		{ID: "e3", Reference: "r3", Type: model.EntryWithdrawal, Amount: 2000, CreatedAt: time.Now()},
	}
	for i := range entries {
		if _, err := store.AppendSavingsEntry(ctx, &entries[i]); err != nil {
			t.Fatalf("Failed to append entry %d: %v", i, err)
		}
	}

	balance, err := store.GetSavingsBalance(ctx)
	if err != nil {
		t.Fatalf("Failed to get balance: %v", err)
	}
	if balance != 6000 {
		t.Errorf("Expected balance 6000, got %d", balance)
	}

	sessions, err := store.CountDepositSessions(ctx)
	if err != nil {
		t.Fatalf("Failed to count sessions: %v", err)
	}
	if sessions != 2 {
		t.Errorf("Expected 2 deposit sessions, got %d", sessions)
	}
}

func TestUserRoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := store.GetUser(ctx); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound before save, got %v", err)
	}

	user := &model.User{
		EmploymentType:  model.EmploymentSalaried,
		WorkEmail:       "ada@paystack.com",
		MonthlyIncome:   200000,
		MonthlyExpenses: 80000,
		OnboardedAt:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Employment: model.VerificationOutcome{
			IsValid:       true,
			MatchedEntity: "Paystack",
			Kind:          model.EntityCorporate,
			IsPreVerified: true,
		},
		IdentityVerified: true,
	}
	if err := store.SaveUser(ctx, user); err != nil {
		t.Fatalf("Failed to save user: %v", err)
	}

	got, err := store.GetUser(ctx)
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if got.WorkEmail != user.WorkEmail {
		t.Errorf("Expected email %q, got %q", user.WorkEmail, got.WorkEmail)
	}
	if !got.Employment.IsPreVerified {
		t.Error("Expected pre-verified employment to survive round trip")
	}
	if !got.IdentityVerified {
		t.Error("Expected identity flag to survive round trip")
	}

	// Upsert keeps a single row.
	user.MonthlyIncome = 250000
	if err := store.SaveUser(ctx, user); err != nil {
		t.Fatalf("Failed to update user: %v", err)
	}
	got, err = store.GetUser(ctx)
	if err != nil {
		t.Fatalf("Failed to get updated user: %v", err)
	}
	if got.MonthlyIncome != 250000 {
		t.Errorf("Expected updated income 250000, got %d", got.MonthlyIncome)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if _, err := store.GetProfile(ctx); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound before save, got %v", err)
	}

	profile := &model.FinancialProfile{
		CreditScore:          71,
		SafeMonthlyRepayment: 40000,
		Badges:               []string{model.BadgeIdentityVerified, model.BadgeFirstDeposit},
		UpdatedAt:            time.Now(),
	}
	if err := store.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}

	got, err := store.GetProfile(ctx)
	if err != nil {
		t.Fatalf("Failed to get profile: %v", err)
	}
	if got.CreditScore != 71 {
		t.Errorf("Expected score 71, got %d", got.CreditScore)
	}
	if got.SafeMonthlyRepayment != 40000 {
		t.Errorf("Expected repayment 40000, got %d", got.SafeMonthlyRepayment)
	}
	if len(got.Badges) != 2 {
		t.Errorf("Expected 2 badges, got %d", len(got.Badges))
	}
}

func TestBeginTx_RollbackDiscardsWrites(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	if err != nil {
		t.Fatalf("Failed to begin tx: %v", err)
	}

	entry := model.SavingsEntry{
		ID: "e1", Reference: "r1", Type: model.EntryDeposit, Amount: 5000, CreatedAt: time.Now(),
	}
	if _, err := tx.AppendSavingsEntry(ctx, &entry); err != nil {
		t.Fatalf("Failed to append in tx: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Failed to rollback: %v", err)
	}

	balance, err := store.GetSavingsBalance(ctx)
	if err != nil {
		t.Fatalf("Failed to get balance: %v", err)
	}
	if balance != 0 {
		t.Errorf("Expected rolled-back balance 0, got %d", balance)
	}
}

func TestBeginTx_CommitPersistsWrites(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	if err != nil {
		t.Fatalf("Failed to begin tx: %v", err)
	}

	entry := model.SavingsEntry{
		ID: "e1", Reference: "r1", Type: model.EntryDeposit, Amount: 5000, CreatedAt: time.Now(),
	}
	if _, err := tx.AppendSavingsEntry(ctx, &entry); err != nil {
		t.Fatalf("Failed to append in tx: %v", err)
	}

	profile := &model.FinancialProfile{CreditScore: 50, SafeMonthlyRepayment: 30000, UpdatedAt: time.Now()}
	if err := tx.SaveProfile(ctx, profile); err != nil {
		t.Fatalf("Failed to save profile in tx: %v", err)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit: %v", err)
	}

	balance, err := store.GetSavingsBalance(ctx)
	if err != nil {
		t.Fatalf("Failed to get balance: %v", err)
	}
	if balance != 5000 {
		t.Errorf("Expected committed balance 5000, got %d", balance)
	}

	got, err := store.GetProfile(ctx)
	if err != nil {
		t.Fatalf("Failed to get profile: %v", err)
	}
	if got.CreditScore != 50 {
		t.Errorf("Expected committed score 50, got %d", got.CreditScore)
	}
}

package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/creditgauge/creditgauge/internal/common"
	"github.com/creditgauge/creditgauge/internal/model"
	"github.com/creditgauge/creditgauge/internal/service"
	"github.com/creditgauge/creditgauge/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) service.Storage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := storage.NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

// seedProfile stores a computed profile so deposits have a score to grow and
// a ceiling to respect.
func seedProfile(t *testing.T, store service.Storage, score int, ceiling int64) {
	t.Helper()
	require.NoError(t, store.SaveProfile(context.Background(), &model.FinancialProfile{
		CreditScore:          score,
		SafeMonthlyRepayment: ceiling,
		UpdatedAt:            time.Now(),
	}))
}

func profileCeiling(store service.Storage) CeilingFunc {
	return func(ctx context.Context) (int64, error) {
		profile, err := store.GetProfile(ctx)
		if err != nil {
			return 0, err
		}
		return profile.SafeMonthlyRepayment, nil
	}
}

func TestAddDeposit(t *testing.T) {
	store := newTestStore(t)
	seedProfile(t, store, 61, 36_000)
	svc := New(store, profileCeiling(store))
	ctx := context.Background()

	result, err := svc.AddDeposit(ctx, 5000, "ref-1")
	require.NoError(t, err)

	assert.False(t, result.Duplicate)
	assert.Equal(t, int64(5000), result.Balance)
	assert.Equal(t, 66, result.Score)
	assert.Equal(t, 5, result.ScoreDelta)
	assert.Equal(t, 1, result.Sessions)

	// The score update committed together with the entry.
	profile, err := store.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 66, profile.CreditScore)
	assert.Contains(t, profile.Badges, model.BadgeFirstDeposit)
}

func TestAddDeposit_BelowMinimum(t *testing.T) {
	store := newTestStore(t)
	seedProfile(t, store, 61, 36_000)
	svc := New(store, profileCeiling(store))
	ctx := context.Background()

	_, err := svc.AddDeposit(ctx, 500, "ref-1")
	assert.ErrorIs(t, err, common.ErrBelowMinimumDeposit)

	balance, err := store.GetSavingsBalance(ctx)
	require.NoError(t, err)
	assert.Zero(t, balance)
}

func TestAddDeposit_ExceedsSafeLimit(t *testing.T) {
	store := newTestStore(t)
	seedProfile(t, store, 61, 36_000)
	svc := New(store, profileCeiling(store))
	ctx := context.Background()

	_, err := svc.AddDeposit(ctx, 36_001, "ref-1")
	assert.ErrorIs(t, err, common.ErrExceedsSafeLimit)

	// Exactly the ceiling is allowed.
	result, err := svc.AddDeposit(ctx, 36_000, "ref-2")
	require.NoError(t, err)
	assert.Equal(t, int64(36_000), result.Balance)
}

func TestAddDeposit_DuplicateReferenceIsNoOp(t *testing.T) {
	store := newTestStore(t)
	seedProfile(t, store, 61, 36_000)
	svc := New(store, profileCeiling(store))
	ctx := context.Background()

	first, err := svc.AddDeposit(ctx, 5000, "ref-1")
	require.NoError(t, err)

	replay, err := svc.AddDeposit(ctx, 5000, "ref-1")
	require.NoError(t, err)

	assert.True(t, replay.Duplicate)
	assert.Equal(t, first.Balance, replay.Balance)
	assert.Equal(t, first.Score, replay.Score)
	assert.Equal(t, first.Sessions, replay.Sessions)

	sessions, err := svc.TotalSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sessions)
}

func TestAddDeposit_ConsistentSaverBadge(t *testing.T) {
	store := newTestStore(t)
	seedProfile(t, store, 10, 100_000)
	svc := New(store, profileCeiling(store))
	ctx := context.Background()

	refs := []string{"r1", "r2", "r3", "r4", "r5"}
	for _, ref := range refs {
		_, err := svc.AddDeposit(ctx, 1000, ref)
		require.NoError(t, err)
	}

	profile, err := store.GetProfile(ctx)
	require.NoError(t, err)
	assert.Contains(t, profile.Badges, model.BadgeConsistentSaver)
}

func TestWithdraw(t *testing.T) {
	store := newTestStore(t)
	seedProfile(t, store, 61, 36_000)
	svc := New(store, profileCeiling(store))
	ctx := context.Background()

	_, err := svc.AddDeposit(ctx, 10_000, "dep-1")
	require.NoError(t, err)

	result, err := svc.Withdraw(ctx, 4000, "wd-1")
	require.NoError(t, err)
	assert.Equal(t, int64(6000), result.Balance)

	// Withdrawals never move the score.
	profile, err := store.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 71, profile.CreditScore)

	// Or count as sessions.
	sessions, err := svc.TotalSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sessions)
}

func TestWithdraw_InsufficientBalance(t *testing.T) {
	store := newTestStore(t)
	seedProfile(t, store, 61, 36_000)
	svc := New(store, profileCeiling(store))
	ctx := context.Background()

	_, err := svc.AddDeposit(ctx, 5000, "dep-1")
	require.NoError(t, err)

	_, err = svc.Withdraw(ctx, 5001, "wd-1")
	assert.ErrorIs(t, err, common.ErrInsufficientBalance)

	// Exactly the balance drains it to zero.
	result, err := svc.Withdraw(ctx, 5000, "wd-2")
	require.NoError(t, err)
	assert.Zero(t, result.Balance)
}

func TestWithdraw_DuplicateReferenceIsNoOp(t *testing.T) {
	store := newTestStore(t)
	seedProfile(t, store, 61, 36_000)
	svc := New(store, profileCeiling(store))
	ctx := context.Background()

	_, err := svc.AddDeposit(ctx, 10_000, "dep-1")
	require.NoError(t, err)

	_, err = svc.Withdraw(ctx, 4000, "wd-1")
	require.NoError(t, err)

	replay, err := svc.Withdraw(ctx, 4000, "wd-1")
	require.NoError(t, err)
	assert.True(t, replay.Duplicate)

	balance, err := svc.Balance(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), balance)
}

func TestHistory_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	seedProfile(t, store, 61, 36_000)

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	clock := base
	svc := New(store, profileCeiling(store), WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}))
	ctx := context.Background()

	_, err := svc.AddDeposit(ctx, 2000, "r1")
	require.NoError(t, err)
	_, err = svc.AddDeposit(ctx, 3000, "r2")
	require.NoError(t, err)
	_, err = svc.Withdraw(ctx, 1000, "r3")
	require.NoError(t, err)

	entries, err := svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, model.EntryWithdrawal, entries[0].Type)
	assert.Equal(t, int64(-1000), entries[0].Signed())
	assert.Equal(t, int64(3000), entries[1].Amount)
	assert.Equal(t, int64(2000), entries[2].Amount)
}

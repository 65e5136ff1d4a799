// Package ledger owns the append-only savings record and its gamification
// counters. Every mutation is atomic: the entry append and the score update
// commit together or not at all.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/creditgauge/creditgauge/internal/common"
	"github.com/creditgauge/creditgauge/internal/model"
	"github.com/creditgauge/creditgauge/internal/score"
	"github.com/creditgauge/creditgauge/internal/service"
	"github.com/google/uuid"
)

// MinimumDeposit is the smallest accepted deposit, in whole naira.
const MinimumDeposit = 1000

// CeilingFunc returns the current safe monthly repayment. It is re-read on
// every deposit so a stale ceiling never silently allows an over-limit
// deposit.
type CeilingFunc func(ctx context.Context) (int64, error)

// Service mediates ledger mutations over the storage layer.
type Service struct {
	store   service.Storage
	ceiling CeilingFunc
	now     func() time.Time
	newID   func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock injects the entry timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDGenerator injects the entry ID source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// New creates a ledger Service.
func New(store service.Storage, ceiling CeilingFunc, opts ...Option) *Service {
	s := &Service{
		store:   store,
		ceiling: ceiling,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DepositResult reports the state after a deposit attempt.
type DepositResult struct {
	Entry      model.SavingsEntry
	Balance    int64
	Score      int
	ScoreDelta int
	Sessions   int
	// Duplicate marks a replayed reference: nothing changed and the call
	// succeeded as a no-op.
	Duplicate bool
}

// AddDeposit validates a deposit against the minimum and the freshly read
// safe limit, then atomically appends the entry and applies the
// savings-driven score increment. A duplicate reference is a successful
// no-op, never an error.
func (s *Service) AddDeposit(ctx context.Context, amount int64, reference string) (*DepositResult, error) {
	if amount < MinimumDeposit {
		return nil, common.NewUserError(
			fmt.Sprintf("minimum deposit is %d", int64(MinimumDeposit)),
			common.ErrBelowMinimumDeposit,
		)
	}

	ceiling, err := s.ceiling(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read safe limit: %w", err)
	}
	if amount > ceiling {
		return nil, common.NewUserError(
			fmt.Sprintf("your safe monthly limit is %d", ceiling),
			common.ErrExceedsSafeLimit,
		)
	}

	entry := model.SavingsEntry{
		ID:        s.newID(),
		Reference: reference,
		Type:      model.EntryDeposit,
		Amount:    amount,
		CreatedAt: s.now(),
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	inserted, err := tx.AppendSavingsEntry(ctx, &entry)
	if err != nil {
		return nil, err
	}

	if !inserted {
		// Replayed reference: report current state without mutating it.
		result, stateErr := s.snapshot(ctx, tx)
		if stateErr != nil {
			return nil, stateErr
		}
		result.Duplicate = true
		return result, nil
	}

	balance, err := tx.GetSavingsBalance(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := tx.CountDepositSessions(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := tx.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	previous := profile.CreditScore
	profile.CreditScore = score.ApplyDeposit(previous, amount)
	profile.Badges = depositBadges(profile, sessions)
	profile.UpdatedAt = s.now()

	if err := tx.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit deposit: %w", err)
	}

	return &DepositResult{
		Entry:      entry,
		Balance:    balance,
		Score:      profile.CreditScore,
		ScoreDelta: profile.CreditScore - previous,
		Sessions:   sessions,
	}, nil
}

// snapshot reads the current ledger state without mutating it.
func (s *Service) snapshot(ctx context.Context, tx service.Tx) (*DepositResult, error) {
	balance, err := tx.GetSavingsBalance(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := tx.CountDepositSessions(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := tx.GetProfile(ctx)
	if err != nil {
		return nil, err
	}
	return &DepositResult{
		Balance:  balance,
		Score:    profile.CreditScore,
		Sessions: sessions,
	}, nil
}

// depositBadges appends badges newly earned by saving. Badge state only
// grows.
func depositBadges(profile *model.FinancialProfile, sessions int) []string {
	badges := profile.Badges
	if sessions >= 1 && !profile.HasBadge(model.BadgeFirstDeposit) {
		badges = append(badges, model.BadgeFirstDeposit)
	}
	if sessions >= 5 && !profile.HasBadge(model.BadgeConsistentSaver) {
		badges = append(badges, model.BadgeConsistentSaver)
	}
	return badges
}

// WithdrawResult reports the state after a withdrawal attempt.
type WithdrawResult struct {
	Entry     model.SavingsEntry
	Balance   int64
	Duplicate bool
}

// Withdraw appends a withdrawal after re-validating that the balance covers
// it. A withdrawal that would push the balance negative is rejected, not
// clamped.
func (s *Service) Withdraw(ctx context.Context, amount int64, reference string) (*WithdrawResult, error) {
	if amount <= 0 {
		return nil, common.NewUserError("withdrawal amount must be positive", common.ErrInsufficientBalance)
	}

	entry := model.SavingsEntry{
		ID:        s.newID(),
		Reference: reference,
		Type:      model.EntryWithdrawal,
		Amount:    amount,
		CreatedAt: s.now(),
	}

	tx, err := s.store.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	balance, err := tx.GetSavingsBalance(ctx)
	if err != nil {
		return nil, err
	}
	if balance-amount < 0 {
		return nil, common.NewUserError(
			fmt.Sprintf("savings balance is %d", balance),
			common.ErrInsufficientBalance,
		)
	}

	inserted, err := tx.AppendSavingsEntry(ctx, &entry)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return &WithdrawResult{Balance: balance, Duplicate: true}, nil
	}

	newBalance, err := tx.GetSavingsBalance(ctx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit withdrawal: %w", err)
	}

	return &WithdrawResult{Entry: entry, Balance: newBalance}, nil
}

// Balance returns the current savings balance.
func (s *Service) Balance(ctx context.Context) (int64, error) {
	return s.store.GetSavingsBalance(ctx)
}

// History returns ledger entries newest first, for display.
func (s *Service) History(ctx context.Context, limit int) ([]model.SavingsEntry, error) {
	return s.store.GetSavingsEntries(ctx, limit)
}

// TotalSessions counts completed deposit sessions; withdrawals do not count.
func (s *Service) TotalSessions(ctx context.Context) (int, error) {
	return s.store.CountDepositSessions(ctx)
}

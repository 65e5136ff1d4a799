package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/creditgauge/creditgauge/internal/common"
	"github.com/creditgauge/creditgauge/internal/config"
	"github.com/creditgauge/creditgauge/internal/ledger"
	"github.com/creditgauge/creditgauge/internal/model"
	"github.com/creditgauge/creditgauge/internal/score"
	"github.com/creditgauge/creditgauge/internal/service"
	"github.com/creditgauge/creditgauge/internal/storage"
	"github.com/spf13/viper"
)

// observedWindow is how far back transaction totals feed the calculator.
const observedWindow = 30 * 24 * time.Hour

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/cg/cg.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// buildInputs assembles the calculator snapshot from stored state.
func buildInputs(ctx context.Context, store service.Storage) (score.Inputs, error) {
	user, err := store.GetUser(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return score.Inputs{}, common.NewUserError(
				"run 'cg onboard' first", common.ErrProfileIncomplete)
		}
		return score.Inputs{}, err
	}

	end := time.Now()
	totals, err := store.GetTransactionTotals(ctx, end.Add(-observedWindow), end)
	if err != nil {
		return score.Inputs{}, err
	}

	sessions, err := store.CountDepositSessions(ctx)
	if err != nil {
		return score.Inputs{}, err
	}

	var badges []string
	profile, err := store.GetProfile(ctx)
	switch {
	case err == nil:
		badges = profile.Badges
	case errors.Is(err, common.ErrNotFound):
		// First computation; no badge state yet.
	default:
		return score.Inputs{}, err
	}

	return score.Inputs{
		Employment:        user.Employment,
		EmploymentType:    user.EmploymentType,
		BusinessName:      user.BusinessName,
		Observed:          *totals,
		ExistingBadges:    badges,
		MonthlyIncome:     user.MonthlyIncome,
		MonthlyExpenses:   user.MonthlyExpenses,
		SavingsSessions:   sessions,
		IncomeDeclared:    user.MonthlyIncome > 0,
		ExpensesDeclared:  user.MonthlyExpenses > 0,
		IdentityVerified:  user.IdentityVerified,
		EmploymentChecked: user.Employment.Kind != "",
	}, nil
}

// recomputeProfile recomputes the profile from current state and persists it
// when complete. An incomplete result is returned without persisting; an
// absent profile stays absent.
func recomputeProfile(ctx context.Context, store service.Storage) (*score.Result, error) {
	inputs, err := buildInputs(ctx, store)
	if err != nil {
		return nil, err
	}

	result := score.Compute(inputs, score.DefaultPolicy())
	if result.Incomplete {
		return &result, nil
	}

	result.Profile.UpdatedAt = time.Now()
	if err := store.SaveProfile(ctx, &result.Profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	return &result, nil
}

// profileCeiling reads the safe monthly repayment fresh from storage so the
// ledger always validates against the latest computed limit.
func profileCeiling(store service.Storage) ledger.CeilingFunc {
	return func(ctx context.Context) (int64, error) {
		profile, err := store.GetProfile(ctx)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return 0, common.NewUserError(
					"complete onboarding and verification before saving",
					common.ErrProfileIncomplete)
			}
			return 0, err
		}
		return profile.SafeMonthlyRepayment, nil
	}
}

// parseAmount reads a whole-naira amount, tolerating a currency prefix and
// thousands separators.
func parseAmount(raw string) (int64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "₦")
	cleaned = strings.TrimPrefix(cleaned, "NGN")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	amount, err := strconv.ParseInt(cleaned, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: expected whole naira", raw)
	}
	return amount, nil
}

// loadUser fetches the onboarded user or a friendly error.
func loadUser(ctx context.Context, store service.Storage) (*model.User, error) {
	user, err := store.GetUser(ctx)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewUserError(
				"run 'cg onboard' first", common.ErrProfileIncomplete)
		}
		return nil, err
	}
	return user, nil
}

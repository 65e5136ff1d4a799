package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/creditgauge/creditgauge/internal/common"
	"github.com/creditgauge/creditgauge/internal/model"
)

// SaveUser upserts the declared user facts.
func (s *SQLiteStorage) SaveUser(ctx context.Context, user *model.User) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateUser(user); err != nil {
		return err
	}
	return s.saveUser(ctx, s.db, user)
}

func (s *SQLiteStorage) saveUser(ctx context.Context, q querier, user *model.User) error {
	const query = `
		INSERT INTO users (
			id, monthly_income, monthly_expenses, employment_type,
			work_email, profile_link, business_name, institution_name,
			identity_verified, employment_valid, employment_entity,
			employment_kind, employment_pre_verified, employment_confirmed,
			onboarded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			monthly_income = excluded.monthly_income,
			monthly_expenses = excluded.monthly_expenses,
			employment_type = excluded.employment_type,
			work_email = excluded.work_email,
			profile_link = excluded.profile_link,
			business_name = excluded.business_name,
			institution_name = excluded.institution_name,
			identity_verified = excluded.identity_verified,
			employment_valid = excluded.employment_valid,
			employment_entity = excluded.employment_entity,
			employment_kind = excluded.employment_kind,
			employment_pre_verified = excluded.employment_pre_verified,
			employment_confirmed = excluded.employment_confirmed,
			onboarded_at = excluded.onboarded_at`

	id := user.ID
	if id == "" {
		id = DefaultUserID
	}

	var onboardedAt any
	if !user.OnboardedAt.IsZero() {
		onboardedAt = user.OnboardedAt
	}

	_, err := q.ExecContext(ctx, query,
		id,
		user.MonthlyIncome,
		user.MonthlyExpenses,
		string(user.EmploymentType),
		user.WorkEmail,
		user.ProfileLink,
		user.BusinessName,
		user.InstitutionName,
		user.IdentityVerified,
		user.Employment.IsValid,
		user.Employment.MatchedEntity,
		string(user.Employment.Kind),
		user.Employment.IsPreVerified,
		user.Employment.UserConfirmed,
		onboardedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// GetUser loads the declared user facts. Returns common.ErrNotFound when
// onboarding has not started.
func (s *SQLiteStorage) GetUser(ctx context.Context) (*model.User, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getUser(ctx, s.db)
}

func (s *SQLiteStorage) getUser(ctx context.Context, q querier) (*model.User, error) {
	const query = `
		SELECT id, monthly_income, monthly_expenses, employment_type,
			work_email, profile_link, business_name, institution_name,
			identity_verified, employment_valid, employment_entity,
			employment_kind, employment_pre_verified, employment_confirmed,
			onboarded_at
		FROM users WHERE id = ?`

	var user model.User
	var employmentType, employmentKind string
	var onboardedAt sql.NullTime

	err := q.QueryRowContext(ctx, query, DefaultUserID).Scan(
		&user.ID,
		&user.MonthlyIncome,
		&user.MonthlyExpenses,
		&employmentType,
		&user.WorkEmail,
		&user.ProfileLink,
		&user.BusinessName,
		&user.InstitutionName,
		&user.IdentityVerified,
		&user.Employment.IsValid,
		&user.Employment.MatchedEntity,
		&employmentKind,
		&user.Employment.IsPreVerified,
		&user.Employment.UserConfirmed,
		&onboardedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	user.EmploymentType = model.EmploymentType(employmentType)
	user.Employment.Kind = model.EntityKind(employmentKind)
	if onboardedAt.Valid {
		user.OnboardedAt = onboardedAt.Time
	}

	return &user, nil
}

// SaveProfile upserts the derived financial profile.
func (s *SQLiteStorage) SaveProfile(ctx context.Context, profile *model.FinancialProfile) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProfile(profile); err != nil {
		return err
	}
	return s.saveProfile(ctx, s.db, profile)
}

func (s *SQLiteStorage) saveProfile(ctx context.Context, q querier, profile *model.FinancialProfile) error {
	badges := profile.Badges
	if badges == nil {
		badges = []string{}
	}
	badgesJSON, err := json.Marshal(badges)
	if err != nil {
		return fmt.Errorf("failed to encode badges: %w", err)
	}

	const query = `
		INSERT INTO profiles (user_id, credit_score, safe_repayment, badges, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			credit_score = excluded.credit_score,
			safe_repayment = excluded.safe_repayment,
			badges = excluded.badges,
			updated_at = excluded.updated_at`

	_, err = q.ExecContext(ctx, query,
		DefaultUserID,
		profile.CreditScore,
		profile.SafeMonthlyRepayment,
		string(badgesJSON),
		profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// GetProfile loads the derived financial profile. Returns common.ErrNotFound
// when it has not been computed yet; callers treat that as "onboarding
// incomplete", never as a partial profile.
func (s *SQLiteStorage) GetProfile(ctx context.Context) (*model.FinancialProfile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getProfile(ctx, s.db)
}

func (s *SQLiteStorage) getProfile(ctx context.Context, q querier) (*model.FinancialProfile, error) {
	const query = `
		SELECT credit_score, safe_repayment, badges, updated_at
		FROM profiles WHERE user_id = ?`

	var profile model.FinancialProfile
	var badgesJSON string

	err := q.QueryRowContext(ctx, query, DefaultUserID).Scan(
		&profile.CreditScore,
		&profile.SafeMonthlyRepayment,
		&badgesJSON,
		&profile.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if err := json.Unmarshal([]byte(badgesJSON), &profile.Badges); err != nil {
		return nil, fmt.Errorf("failed to decode badges: %w", err)
	}

	return &profile, nil
}

// Package storage provides the data persistence layer for the application.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/creditgauge/creditgauge/internal/model"
)

// Validation errors.
var (
	ErrNilContext         = errors.New("context cannot be nil")
	ErrEmptyString        = errors.New("string parameter cannot be empty")
	ErrNilParameter       = errors.New("parameter cannot be nil")
	ErrEmptySlice         = errors.New("slice cannot be empty")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrInvalidEntry       = errors.New("invalid savings entry")
	ErrInvalidUser        = errors.New("invalid user")
	ErrInvalidProfile     = errors.New("invalid profile")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i, txn := range transactions {
		if err := validateTransaction(&txn); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction validates a single transaction.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidTransaction)
	}
	if txn.Date.IsZero() {
		return fmt.Errorf("%w: missing date", ErrInvalidTransaction)
	}
	if txn.Amount < 0 {
		return fmt.Errorf("%w: negative amount", ErrInvalidTransaction)
	}
	switch txn.Direction {
	case model.DirectionCredit, model.DirectionDebit:
	default:
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidTransaction, txn.Direction)
	}
	if txn.Source == "" && txn.Description == "" {
		return fmt.Errorf("%w: missing source and description", ErrInvalidTransaction)
	}
	return nil
}

// validateSavingsEntry validates a ledger entry before it is appended.
func validateSavingsEntry(entry *model.SavingsEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry", ErrNilParameter)
	}
	if entry.ID == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidEntry)
	}
	if strings.TrimSpace(entry.Reference) == "" {
		return fmt.Errorf("%w: missing reference", ErrInvalidEntry)
	}
	if entry.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidEntry)
	}
	if entry.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing creation time", ErrInvalidEntry)
	}
	switch entry.Type {
	case model.EntryDeposit, model.EntryWithdrawal:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEntry, entry.Type)
	}
	return nil
}

// validateUser validates declared user facts.
func validateUser(user *model.User) error {
	if user == nil {
		return fmt.Errorf("%w: user", ErrNilParameter)
	}
	if user.MonthlyIncome < 0 || user.MonthlyExpenses < 0 {
		return fmt.Errorf("%w: negative declared amount", ErrInvalidUser)
	}
	if user.EmploymentType != "" && !model.ValidEmploymentType(user.EmploymentType) {
		return fmt.Errorf("%w: unknown employment type %q", ErrInvalidUser, user.EmploymentType)
	}
	return nil
}

// validateProfile validates a derived financial profile.
func validateProfile(profile *model.FinancialProfile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile", ErrNilParameter)
	}
	if profile.CreditScore < 0 || profile.CreditScore > 100 {
		return fmt.Errorf("%w: score must be between 0 and 100", ErrInvalidProfile)
	}
	if profile.SafeMonthlyRepayment < 0 {
		return fmt.Errorf("%w: negative safe repayment", ErrInvalidProfile)
	}
	return nil
}

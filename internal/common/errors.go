// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Verification errors.
	ErrEmptyEmail      = errors.New("email address is empty")
	ErrMissingAt       = errors.New("email address is missing @")
	ErrInvalidDomain   = errors.New("email domain is invalid")
	ErrUnknownPlatform = errors.New("profile link is not from a recognized platform")

	// Ledger errors.
	ErrBelowMinimumDeposit = errors.New("amount is below the minimum deposit")
	ErrExceedsSafeLimit    = errors.New("amount exceeds the monthly safe limit")
	ErrInsufficientBalance = errors.New("insufficient savings balance")

	// Profile errors.
	ErrProfileIncomplete = errors.New("onboarding incomplete")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage extracts the user-facing message from an error, falling back
// to the plain error text.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}

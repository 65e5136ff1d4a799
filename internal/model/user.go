// Package model defines the core domain models used throughout the application.
package model

import "time"

// EmploymentType describes how a user earns their income.
type EmploymentType string

// Employment type constants.
const (
	EmploymentSalaried   EmploymentType = "salaried"
	EmploymentFreelancer EmploymentType = "freelancer"
	EmploymentBusiness   EmploymentType = "business"
)

// ValidEmploymentType reports whether t is one of the known employment types.
func ValidEmploymentType(t EmploymentType) bool {
	switch t {
	case EmploymentSalaried, EmploymentFreelancer, EmploymentBusiness:
		return true
	}
	return false
}

// User holds the facts a user declares during onboarding. Once onboarding
// completes these are immutable; only savings-driven score updates touch the
// derived profile afterwards.
type User struct {
	OnboardedAt      time.Time
	ID               string
	EmploymentType   EmploymentType
	WorkEmail        string
	ProfileLink      string
	BusinessName     string
	InstitutionName  string
	Employment       VerificationOutcome
	MonthlyIncome    int64
	MonthlyExpenses  int64
	IdentityVerified bool
}

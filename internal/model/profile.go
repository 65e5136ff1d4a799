package model

import "time"

// Badge identifiers. Badges are awarded once and never removed.
const (
	BadgeIdentityVerified   = "identity_verified"
	BadgeEmploymentVerified = "employment_verified"
	BadgeFirstDeposit       = "first_deposit"
	BadgeConsistentSaver    = "consistent_saver"
	BadgeLowSpender         = "low_spender"
)

// FinancialProfile is the derived creditworthiness signal. It is computed
// once all required onboarding inputs exist and is never partially valid;
// an absent profile means onboarding is incomplete.
type FinancialProfile struct {
	UpdatedAt            time.Time
	Badges               []string
	CreditScore          int
	SafeMonthlyRepayment int64
}

// HasBadge reports whether the profile already carries the given badge.
func (p *FinancialProfile) HasBadge(badge string) bool {
	for _, b := range p.Badges {
		if b == badge {
			return true
		}
	}
	return false
}

// Tier is a credit tier derived from the score via fixed thresholds.
type Tier struct {
	Name     string
	Benefits []string // Ordered; Benefits[0] is the headline benefit
	MinScore int
}

// Tier table, highest first. Lower bounds are inclusive.
var tiers = []Tier{
	{
		Name:     "Platinum",
		MinScore: 85,
		Benefits: []string{"Up to 20% higher limits", "Priority support", "Zero late fees once per year"},
	},
	{
		Name:     "Gold",
		MinScore: 70,
		Benefits: []string{"Higher savings limits", "Faster limit reviews"},
	},
	{
		Name:     "Silver",
		MinScore: 55,
		Benefits: []string{"Standard savings limits", "Monthly score insights"},
	},
	{
		Name:     "Bronze",
		MinScore: 0,
		Benefits: []string{"Entry savings limits", "Build your score by saving"},
	},
}

// TierForScore maps a credit score to its tier. Scores outside [0,100] are
// treated as their clamped value.
func TierForScore(score int) Tier {
	for _, t := range tiers {
		if score >= t.MinScore {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// TierRank returns the ordinal position of a tier name in the
// Bronze < Silver < Gold < Platinum order. Unknown names rank below Bronze.
func TierRank(name string) int {
	for i, t := range tiers {
		if t.Name == name {
			return len(tiers) - 1 - i
		}
	}
	return -1
}

package score

import "github.com/creditgauge/creditgauge/internal/model"

// badgeRule pairs a badge with its qualifying milestone.
type badgeRule struct {
	badge     string
	qualifies func(in Inputs, p Policy) bool
}

var badgeRules = []badgeRule{
	{model.BadgeIdentityVerified, func(in Inputs, _ Policy) bool {
		return in.IdentityVerified
	}},
	{model.BadgeEmploymentVerified, func(in Inputs, p Policy) bool {
		return employmentVerified(in, p)
	}},
	{model.BadgeFirstDeposit, func(in Inputs, _ Policy) bool {
		return in.SavingsSessions >= 1
	}},
	{model.BadgeConsistentSaver, func(in Inputs, _ Policy) bool {
		return in.SavingsSessions >= 5
	}},
	{model.BadgeLowSpender, func(in Inputs, p Policy) bool {
		return in.MonthlyIncome > 0 && 1-expenseRatio(in, p) >= 0.40
	}},
}

// AwardBadges appends any newly crossed milestones to the existing badge
// set. Badges are never removed, so the set is monotone non-decreasing over
// the profile's lifetime.
func AwardBadges(existing []string, in Inputs, p Policy) []string {
	have := make(map[string]bool, len(existing))
	badges := make([]string, 0, len(existing)+len(badgeRules))
	for _, b := range existing {
		if !have[b] {
			badges = append(badges, b)
			have[b] = true
		}
	}

	for _, rule := range badgeRules {
		if have[rule.badge] || !rule.qualifies(in, p) {
			continue
		}
		badges = append(badges, rule.badge)
		have[rule.badge] = true
	}

	return badges
}

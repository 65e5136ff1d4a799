// Package score fuses declared income and expenses, verification outcomes,
// and observed transaction history into a credit score, tier, and safe
// monthly repayment amount. Compute is a pure function: same inputs, same
// result, no hidden state.
package score

import (
	"math"

	"github.com/creditgauge/creditgauge/internal/model"
	"github.com/creditgauge/creditgauge/internal/service"
)

// Inputs is the full snapshot the calculator operates on.
type Inputs struct {
	Employment     model.VerificationOutcome
	EmploymentType model.EmploymentType
	BusinessName   string
	Observed       service.TransactionTotals
	// ExistingBadges carries the previously awarded set so badge state stays
	// monotone across recomputations.
	ExistingBadges   []string
	MonthlyIncome    int64
	MonthlyExpenses  int64
	SavingsSessions  int
	IncomeDeclared   bool
	ExpensesDeclared bool
	IdentityVerified bool
	// EmploymentChecked marks that an employment verification was attempted,
	// whatever its outcome. A failed check still satisfies the "at least one
	// verification outcome" precondition.
	EmploymentChecked bool
}

// hasVerification reports whether at least one verification outcome exists.
func (in Inputs) hasVerification() bool {
	return in.IdentityVerified || in.EmploymentChecked || in.Employment.IsValid
}

// Result is the calculator's output. When Incomplete is set no profile was
// produced and Missing names what onboarding still needs; callers branch on
// this instead of treating it as a failure.
type Result struct {
	Profile    model.FinancialProfile
	Tier       model.Tier
	Missing    []string
	Incomplete bool
}

// Policy holds the tunable weighting behind the score and repayment
// formulas. The stated bounds are hard contracts: scores stay in [0,100] and
// the repayment ratio stays inside [BaseRatio, MaxRatio].
type Policy struct {
	// Repayment ratio band and modulation
	BaseRatio             float64
	MaxRatio              float64
	IdentityRatioBonus    float64
	EmploymentRatioBonus  float64
	PreVerifiedRatioBonus float64
	HighExpenseBurden     float64
	SevereExpenseBurden   float64
	BurdenPenalty         float64
	SolvencyBufferRatio   float64
	// DefaultExpenseRatio short-circuits the expense ratio when income is
	// zero, so the calculation never divides by zero.
	DefaultExpenseRatio float64
	// Business verification precondition: declared business name plus this
	// much observed transaction activity counts as employment-verified.
	BusinessActivityMin int
	// Sub-score caps
	IncomeCap       int
	VerificationCap int
	BehaviorCap     int
	// Verification sub-score weights; allow-listed matches rank above
	// confirmed-but-unlisted ones.
	IdentityPoints            int
	PreVerifiedEntityPoints   int
	ConfirmedEmploymentPoints int
	// Savings gamification
	SessionPoints    int
	SessionPointsCap int
}

// DefaultPolicy returns the production weighting.
func DefaultPolicy() Policy {
	return Policy{
		BaseRatio:             0.15,
		MaxRatio:              0.20,
		IdentityRatioBonus:    0.02,
		EmploymentRatioBonus:  0.02,
		PreVerifiedRatioBonus: 0.01,
		HighExpenseBurden:     0.60,
		SevereExpenseBurden:   0.80,
		BurdenPenalty:         0.02,
		SolvencyBufferRatio:   0.10,
		DefaultExpenseRatio:   0.50,
		BusinessActivityMin:   5,

		IncomeCap:       40,
		VerificationCap: 35,
		BehaviorCap:     25,

		IdentityPoints:            10,
		PreVerifiedEntityPoints:   25,
		ConfirmedEmploymentPoints: 18,

		SessionPoints:    3,
		SessionPointsCap: 15,
	}
}

// incomeBand maps an income floor to magnitude points.
type incomeBand struct {
	floor  int64
	points int
}

var incomeBands = []incomeBand{
	{500_000, 20},
	{200_000, 16},
	{100_000, 12},
	{50_000, 8},
	{1, 4},
}

// disposableBand maps a disposable-income ratio floor to stability points.
type disposableBand struct {
	floor  float64
	points int
}

var disposableBands = []disposableBand{
	{0.60, 20},
	{0.40, 15},
	{0.25, 10},
	{0.10, 5},
	{0.00, 2},
}

// activityBand maps an observed transaction count floor to regularity points.
type activityBand struct {
	floor  int
	points int
}

var activityBands = []activityBand{
	{20, 10},
	{10, 8},
	{5, 5},
	{1, 3},
}

// Compute derives the financial profile from a snapshot of inputs. It never
// faults: missing income produces a zero repayment and a zero income
// sub-score, and invoking it before any verification outcome exists yields
// an incomplete result rather than an error.
func Compute(in Inputs, p Policy) Result {
	var missing []string
	if !in.IncomeDeclared {
		missing = append(missing, "income")
	}
	if !in.ExpensesDeclared {
		missing = append(missing, "expenses")
	}
	// The business path has no synchronous check; its standing precondition
	// satisfies the verification gate too.
	verified := in.hasVerification() || employmentVerified(in, p)
	if !verified {
		missing = append(missing, "verification")
		return Result{Incomplete: true, Missing: missing}
	}

	income := incomeSubScore(in, p)
	verification := verificationSubScore(in, p)
	behavior := behaviorSubScore(in, p)

	total := clampInt(income+verification+behavior, 0, 100)

	profile := model.FinancialProfile{
		CreditScore:          total,
		SafeMonthlyRepayment: safeRepayment(in, p),
		Badges:               AwardBadges(in.ExistingBadges, in, p),
	}

	return Result{
		Profile: profile,
		Tier:    model.TierForScore(total),
		Missing: missing,
	}
}

// safeRepayment computes the affordability ceiling: income times a ratio in
// the policy band, modulated up by verification strength and down by expense
// burden, never exceeding income minus expenses minus a solvency buffer.
func safeRepayment(in Inputs, p Policy) int64 {
	if in.MonthlyIncome <= 0 {
		return 0
	}

	ratio := p.BaseRatio
	if in.IdentityVerified {
		ratio += p.IdentityRatioBonus
	}
	if employmentVerified(in, p) {
		ratio += p.EmploymentRatioBonus
	}
	if in.Employment.IsPreVerified {
		ratio += p.PreVerifiedRatioBonus
	}

	burden := expenseRatio(in, p)
	switch {
	case burden >= p.SevereExpenseBurden:
		ratio -= 2 * p.BurdenPenalty
	case burden >= p.HighExpenseBurden:
		ratio -= p.BurdenPenalty
	}

	ratio = math.Min(math.Max(ratio, p.BaseRatio), p.MaxRatio)

	safe := int64(math.Round(float64(in.MonthlyIncome) * ratio))
	ceiling := int64(math.Round(float64(in.MonthlyIncome) * p.MaxRatio))
	if safe > ceiling {
		safe = ceiling
	}

	buffer := int64(math.Round(float64(in.MonthlyIncome) * p.SolvencyBufferRatio))
	disposable := in.MonthlyIncome - in.MonthlyExpenses - buffer
	if disposable < 0 {
		disposable = 0
	}
	if safe > disposable {
		safe = disposable
	}

	if safe < 0 {
		safe = 0
	}
	return safe
}

// expenseRatio returns expenses over income, short-circuiting to the policy
// default when income is zero.
func expenseRatio(in Inputs, p Policy) float64 {
	if in.MonthlyIncome <= 0 {
		return p.DefaultExpenseRatio
	}
	return float64(in.MonthlyExpenses) / float64(in.MonthlyIncome)
}

// employmentVerified folds in the business-path standing precondition: a
// declared business name plus enough observed transaction activity stands in
// for a synchronous verification outcome.
func employmentVerified(in Inputs, p Policy) bool {
	if in.Employment.IsValid {
		return true
	}
	return in.EmploymentType == model.EmploymentBusiness &&
		in.BusinessName != "" &&
		in.Observed.Count >= p.BusinessActivityMin
}

func incomeSubScore(in Inputs, p Policy) int {
	if in.MonthlyIncome <= 0 {
		return 0
	}

	points := 0
	for _, band := range incomeBands {
		if in.MonthlyIncome >= band.floor {
			points += band.points
			break
		}
	}

	disposable := 1 - expenseRatio(in, p)
	for _, band := range disposableBands {
		if disposable >= band.floor {
			points += band.points
			break
		}
	}

	return clampInt(points, 0, p.IncomeCap)
}

func verificationSubScore(in Inputs, p Policy) int {
	points := 0
	if in.IdentityVerified {
		points += p.IdentityPoints
	}
	if employmentVerified(in, p) {
		if in.Employment.IsPreVerified {
			points += p.PreVerifiedEntityPoints
		} else {
			points += p.ConfirmedEmploymentPoints
		}
	}
	return clampInt(points, 0, p.VerificationCap)
}

func behaviorSubScore(in Inputs, p Policy) int {
	points := 0
	for _, band := range activityBands {
		if in.Observed.Count >= band.floor {
			points += band.points
			break
		}
	}

	sessionPoints := in.SavingsSessions * p.SessionPoints
	if sessionPoints > p.SessionPointsCap {
		sessionPoints = p.SessionPointsCap
	}
	points += sessionPoints

	return clampInt(points, 0, p.BehaviorCap)
}

// ApplyDeposit returns the score after a deposit-driven increment: a deposit
// of amount A adds max(1, A/1000) points, re-clamped to 100. Idempotency per
// deposit is enforced by the ledger via the deposit reference.
func ApplyDeposit(score int, amount int64) int {
	inc := amount / 1000
	if inc < 1 {
		inc = 1
	}
	return clampInt(score+int(inc), 0, 100)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package verify evaluates user-supplied email addresses and profile links
// against known-organization and known-platform rule tables. Verification
// here is deterministic rule evaluation over text, not proof of identity.
package verify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/creditgauge/creditgauge/internal/common"
	"github.com/creditgauge/creditgauge/internal/model"
)

// Verifier runs the employment verification paths. The processing latency
// stands in for a real verification call and is injected so tests run
// synchronously.
type Verifier struct {
	sleep   func(ctx context.Context, d time.Duration) error
	latency time.Duration
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithLatency sets the simulated processing delay.
func WithLatency(d time.Duration) Option {
	return func(v *Verifier) {
		v.latency = d
	}
}

// WithSleeper replaces the delay implementation, letting tests skip waiting.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(v *Verifier) {
		v.sleep = sleep
	}
}

// New creates a Verifier.
func New(opts ...Option) *Verifier {
	v := &Verifier{
		latency: 1200 * time.Millisecond,
		sleep:   sleepCtx,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// ValidateEmailFormat performs the synchronous, side-effect-free shape check.
// The returned error distinguishes an empty address, a missing @, and an
// invalid domain so callers can surface actionable feedback.
func ValidateEmailFormat(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return common.ErrEmptyEmail
	}

	at := strings.LastIndex(email, "@")
	if at < 0 {
		return common.ErrMissingAt
	}

	local, domain := email[:at], email[at+1:]
	if local == "" || strings.ContainsAny(local, " @") {
		return fmt.Errorf("%w: nothing before the @", common.ErrInvalidDomain)
	}
	if domain == "" || !strings.Contains(domain, ".") ||
		strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") ||
		strings.ContainsAny(domain, " @") {
		return fmt.Errorf("%w: %q", common.ErrInvalidDomain, domain)
	}

	return nil
}

// emailDomain extracts the lowercase domain. Callers must have validated the
// format first.
func emailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(email[at+1:]))
}

// VerifyWorkEmail runs the corporate/institution email path. The outcome is
// never an error: an unrecognized address is accepted as entered with
// IsValid false. A non-nil Institution is a detection the caller may offer
// for explicit confirmation.
func (v *Verifier) VerifyWorkEmail(ctx context.Context, email string) (model.VerificationOutcome, *model.Institution, error) {
	if err := ValidateEmailFormat(email); err != nil {
		return model.VerificationOutcome{Kind: model.EntityNone}, nil, err
	}

	if err := v.sleep(ctx, v.latency); err != nil {
		return model.VerificationOutcome{Kind: model.EntityNone}, nil, err
	}

	domain := emailDomain(email)

	if company, ok := corporateDomains[domain]; ok {
		return model.VerificationOutcome{
			IsValid:       true,
			MatchedEntity: company,
			Kind:          model.EntityCorporate,
			IsPreVerified: true,
		}, DetectInstitution(email), nil
	}

	// Accepted as entered; a detected institution still needs the user's
	// explicit confirmation before it counts as verified.
	return model.VerificationOutcome{Kind: model.EntityNone}, DetectInstitution(email), nil
}

// DetectInstitution heuristically classifies an email domain as an academic
// or organizational namespace, independent of allow-list membership. Returns
// nil for free-mail and unclassifiable domains.
func DetectInstitution(email string) *model.Institution {
	domain := emailDomain(email)
	if domain == "" || freeMailDomains[domain] {
		return nil
	}

	if strings.HasSuffix(domain, institutionSuffix) {
		inst := &model.Institution{
			Name: domain,
			Kind: model.EntityInstitution,
		}
		if display, ok := verifiedInstitutions[domain]; ok {
			inst.DisplayName = display
			inst.IsVerified = true
		} else {
			inst.DisplayName = displayNameFromDomain(domain)
		}
		return inst
	}

	if company, ok := corporateDomains[domain]; ok {
		return &model.Institution{
			Name:        domain,
			DisplayName: company,
			Kind:        model.EntityCorporate,
			IsVerified:  true,
		}
	}

	// Weaker shape heuristic: a non-freemail domain with a meaningful label
	// resembles an organization. Surfaced as a soft suggestion only.
	label := domain[:strings.IndexByte(domain, '.')]
	if len(label) < 3 {
		return nil
	}
	return &model.Institution{
		Name:        domain,
		DisplayName: displayNameFromDomain(domain),
		Kind:        model.EntityCorporate,
		IsVerified:  false,
	}
}

// ConfirmInstitution records the explicit user confirmation of a detected
// institution. This is a distinct state transition from automatic
// verification and is marked as such on the outcome.
func ConfirmInstitution(inst *model.Institution) model.VerificationOutcome {
	return model.VerificationOutcome{
		IsValid:       true,
		MatchedEntity: inst.DisplayName,
		Kind:          inst.Kind,
		IsPreVerified: inst.IsVerified,
		UserConfirmed: true,
	}
}

// displayNameFromDomain derives a readable label from a domain: short labels
// become acronyms, longer ones are title-cased.
func displayNameFromDomain(domain string) string {
	label := domain
	if idx := strings.IndexByte(domain, '.'); idx > 0 {
		label = domain[:idx]
	}
	if len(label) <= 4 {
		return strings.ToUpper(label)
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

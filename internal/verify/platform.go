package verify

import (
	"context"
	"net/url"
	"strings"

	"github.com/creditgauge/creditgauge/internal/model"
)

// VerifyProfileLink runs the freelance/profile-link path: a case-insensitive
// host match against the recognized-platform allow-list. There is no format
// pre-check distinct from matching; a malformed URL simply fails to match.
func (v *Verifier) VerifyProfileLink(ctx context.Context, link string) (model.VerificationOutcome, error) {
	if err := v.sleep(ctx, v.latency); err != nil {
		return model.VerificationOutcome{Kind: model.EntityNone}, err
	}

	if name, ok := MatchPlatform(link); ok {
		return model.VerificationOutcome{
			IsValid:       true,
			MatchedEntity: name,
			Kind:          model.EntityPlatform,
			IsPreVerified: true,
		}, nil
	}

	return model.VerificationOutcome{Kind: model.EntityNone}, nil
}

// MatchPlatform resolves the platform name for a profile link, tolerating a
// missing scheme and subdomains such as www or country prefixes.
func MatchPlatform(link string) (string, bool) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", false
	}
	if !strings.Contains(link, "://") {
		link = "https://" + link
	}

	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return "", false
	}

	host := strings.ToLower(parsed.Hostname())
	for _, p := range platformHosts {
		if host == p.host || strings.HasSuffix(host, "."+p.host) {
			return p.name, true
		}
	}

	return "", false
}

// PlatformGuidance is the failure message listing accepted platforms.
func PlatformGuidance() string {
	return "Please provide a link from " + strings.Join(AcceptedPlatforms(), ", ") + "."
}

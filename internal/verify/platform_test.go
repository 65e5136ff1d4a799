package verify

import (
	"context"
	"testing"

	"github.com/creditgauge/creditgauge/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPlatform(t *testing.T) {
	tests := []struct {
		name     string
		link     string
		wantName string
		wantOK   bool
	}{
		{name: "linkedin with scheme", link: "https://www.linkedin.com/in/ada", wantName: "LinkedIn", wantOK: true},
		{name: "linkedin without scheme", link: "linkedin.com/in/ada", wantName: "LinkedIn", wantOK: true},
		{name: "country subdomain", link: "https://ng.linkedin.com/in/ada", wantName: "LinkedIn", wantOK: true},
		{name: "upwork freelancer profile", link: "https://www.upwork.com/freelancers/~ada", wantName: "Upwork", wantOK: true},
		{name: "github profile", link: "github.com/ada", wantName: "GitHub", wantOK: true},
		{name: "behance uses net TLD", link: "https://behance.net/ada", wantName: "Behance", wantOK: true},
		{name: "mixed case host", link: "HTTPS://WWW.FIVERR.COM/ada", wantName: "Fiverr", wantOK: true},
		{name: "lookalike domain", link: "https://linkedin.com.evil.io/in/ada", wantOK: false},
		{name: "embedded platform name only", link: "https://notlinkedin.com/in/ada", wantOK: false},
		{name: "unrecognized platform", link: "https://facebook.com/ada", wantOK: false},
		{name: "empty", link: "", wantOK: false},
		{name: "whitespace", link: "   ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, ok := MatchPlatform(tt.link)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)
		})
	}
}

func TestVerifyProfileLink(t *testing.T) {
	v := New(WithLatency(0))

	outcome, err := v.VerifyProfileLink(context.Background(), "https://www.toptal.com/resume/ada")
	require.NoError(t, err)
	assert.True(t, outcome.IsValid)
	assert.True(t, outcome.IsPreVerified)
	assert.Equal(t, "Toptal", outcome.MatchedEntity)
	assert.Equal(t, model.EntityPlatform, outcome.Kind)
}

func TestVerifyProfileLink_UnknownPlatform(t *testing.T) {
	v := New(WithLatency(0))

	// An unmatched link is a negative outcome, not an error.
	outcome, err := v.VerifyProfileLink(context.Background(), "https://myportfolio.example")
	require.NoError(t, err)
	assert.False(t, outcome.IsValid)
	assert.Equal(t, model.EntityNone, outcome.Kind)
}

func TestPlatformGuidance(t *testing.T) {
	guidance := PlatformGuidance()
	for _, name := range AcceptedPlatforms() {
		assert.Contains(t, guidance, name)
	}
}

package verify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityChecker_Check(t *testing.T) {
	tests := []struct {
		name   string
		random float64
		want   bool
	}{
		{name: "below threshold passes", random: 0.1, want: true},
		{name: "just under threshold passes", random: 0.89, want: true},
		{name: "at threshold fails", random: 0.9, want: false},
		{name: "above threshold fails", random: 0.99, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewIdentityChecker(
				WithIdentityLatency(0),
				WithRandFloat(func() float64 { return tt.random }),
			)

			ok, err := c.Check(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestIdentityChecker_ContextCancelled(t *testing.T) {
	c := NewIdentityChecker(WithIdentityLatency(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := c.Check(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
}

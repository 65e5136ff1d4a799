package verify

import (
	"context"
	"math/rand"
	"time"
)

// IdentityChecker simulates the selfie-capture identity step: a probabilistic
// boolean behind a fixed latency. There is no biometric matching; the result
// feeds the scoring calculator as an identity-verified flag.
type IdentityChecker struct {
	sleep       func(ctx context.Context, d time.Duration) error
	randFloat   func() float64
	latency     time.Duration
	successRate float64
}

// IdentityOption configures an IdentityChecker.
type IdentityOption func(*IdentityChecker)

// WithIdentityLatency sets the simulated capture/processing delay.
func WithIdentityLatency(d time.Duration) IdentityOption {
	return func(c *IdentityChecker) {
		c.latency = d
	}
}

// WithIdentitySleeper replaces the delay implementation for tests.
func WithIdentitySleeper(sleep func(ctx context.Context, d time.Duration) error) IdentityOption {
	return func(c *IdentityChecker) {
		c.sleep = sleep
	}
}

// WithRandFloat injects the random source so outcomes are deterministic in
// tests.
func WithRandFloat(f func() float64) IdentityOption {
	return func(c *IdentityChecker) {
		c.randFloat = f
	}
}

// NewIdentityChecker creates an IdentityChecker with default simulation
// parameters.
func NewIdentityChecker(opts ...IdentityOption) *IdentityChecker {
	c := &IdentityChecker{
		latency:     2 * time.Second,
		successRate: 0.9,
		sleep:       sleepCtx,
		randFloat:   rand.Float64,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check runs the simulated identity verification. Cancelling the context
// abandons the check with no side effects.
func (c *IdentityChecker) Check(ctx context.Context) (bool, error) {
	if err := c.sleep(ctx, c.latency); err != nil {
		return false, err
	}
	return c.randFloat() < c.successRate, nil
}

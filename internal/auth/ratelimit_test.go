package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(maxAttempts int) *RateLimiter {
	return NewRateLimiter(RateLimitConfig{
		MaxAttempts:     maxAttempts,
		WindowDuration:  time.Minute,
		LockoutDuration: time.Minute,
		CleanupInterval: time.Hour,
	})
}

func TestRateLimiter_AllowsUnderLimit(t *testing.T) {
	rl := newTestLimiter(3)
	defer rl.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := rl.Allow("1.2.3.4", "+15550001111")
		assert.True(t, allowed)
		rl.RecordFailure("1.2.3.4", "+15550001111")
	}

	allowed, _ := rl.Allow("1.2.3.4", "+15550001111")
	assert.True(t, allowed)
}

func TestRateLimiter_LocksAfterMaxFailures(t *testing.T) {
	rl := newTestLimiter(3)
	defer rl.Stop()

	var locked bool
	for i := 0; i < 3; i++ {
		locked, _ = rl.RecordFailure("1.2.3.4", "+15550001111")
	}
	assert.True(t, locked)

	allowed, retryAfter := rl.Allow("1.2.3.4", "+15550001111")
	assert.False(t, allowed)
	assert.Greater(t, retryAfter, time.Duration(0))
}

func TestRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := newTestLimiter(2)
	defer rl.Stop()

	rl.RecordFailure("1.2.3.4", "+15550001111")
	rl.RecordFailure("1.2.3.4", "+15550001111")

	allowed, _ := rl.Allow("1.2.3.4", "+15550001111")
	assert.False(t, allowed)

	// Different phone from the same IP is unaffected.
	allowed, _ = rl.Allow("1.2.3.4", "+15550002222")
	assert.True(t, allowed)

	// Same phone from a different IP is unaffected.
	allowed, _ = rl.Allow("5.6.7.8", "+15550001111")
	assert.True(t, allowed)
}

func TestRateLimiter_SuccessClearsFailures(t *testing.T) {
	rl := newTestLimiter(2)
	defer rl.Stop()

	rl.RecordFailure("1.2.3.4", "+15550001111")
	rl.RecordSuccess("1.2.3.4", "+15550001111")
	rl.RecordFailure("1.2.3.4", "+15550001111")

	allowed, _ := rl.Allow("1.2.3.4", "+15550001111")
	assert.True(t, allowed)
}

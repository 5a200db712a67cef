package natsutil

import (
	rand "math/rand/v2"
	"time"
)

// Backoff parameters for stream provisioning retries.
const (
	retryBase       = 10 * time.Millisecond
	retryMultiplier = 2.0
	retryCap        = 500 * time.Millisecond
)

// jitterBackoff computes a decorrelated jitter delay with a cap.
//
// Given the previous delay, the next delay is:
//
//	next = min(cap, base + rand(prev*multiplier - base))
//
// Behavior:
//   - If prev <= 0, start from base
//   - Multiplier < 1.0 falls back to 1.0 (no growth)
//   - Cap < base returns cap
func jitterBackoff(prev, base time.Duration, mult float64, capDur time.Duration, rng *rand.Rand) time.Duration {
	if base <= 0 {
		base = retryBase
	}
	if mult < 1.0 {
		mult = 1.0
	}
	if capDur > 0 && capDur < base {
		return capDur
	}
	if prev <= 0 {
		return base
	}

	spread := time.Duration(float64(prev)*mult) - base
	if spread <= 0 {
		spread = base
	}
	var jitter int64
	if rng != nil {
		jitter = rng.Int64N(int64(spread))
	} else {
		jitter = rand.Int64N(int64(spread)) //nolint:gosec // non-crypto backoff jitter
	}
	next := base + time.Duration(jitter)
	if capDur > 0 && next > capDur {
		return capDur
	}

	return next
}

// newRetryRNG returns a deterministic RNG only when a non-zero seed is provided.
// When seed == 0 it returns nil so callers use the package-level PRNG.
//
//nolint:gosec
func newRetryRNG(seed uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}

	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

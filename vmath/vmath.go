package vmath

import "math"

// --- Scalar helpers ---

// Clamp limits v to [lo, hi]; lo wins when the range is inverted
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// ClampAbs limits v to [-limit, limit]
func ClampAbs(v, limit float64) float64 {
	return Clamp(v, -limit, limit)
}

// Approach moves current toward target by factor of the remaining distance
// Exponential approach: never overshoots for factor in (0, 1]
func Approach(current, target, factor float64) float64 {
	return current + (target-current)*factor
}

// Settle snaps current to target once within epsilon
// Keeps exponential approaches from producing denormal tails
func Settle(current, target, epsilon float64) float64 {
	if math.Abs(target-current) <= epsilon {
		return target
	}
	return current
}

// --- Randomness ---

// FastRand is a xorshift64 generator
// Deterministic for a given seed, used for reproducible runs
type FastRand struct {
	state uint64
}

// NewFastRand creates a generator; zero seed is remapped since xorshift sticks at 0
func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

// Next returns the next raw 64-bit value
func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a value in [0, n), 0 for n <= 0
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	// 53 significant bits
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a value in [lo, hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}

// Chance reports true with probability p
func (r *FastRand) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.Float64() < p
}

// State returns the internal state for snapshotting
func (r *FastRand) State() uint64 {
	return r.state
}

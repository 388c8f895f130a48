// Package vmath holds the float vector helpers and the deterministic random source used by the simulation
package vmath

import "math"

// --- Randomness ---

// FastRand is a xorshift64 generator
// The simulation owns exactly one instance so runs are reproducible from a seed
type FastRand struct {
	state uint64
	calls uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	r.calls++
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Chance returns true with probability p
func (r *FastRand) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.Float64() < p
}

// Range returns a value in [lo, hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// UnitVector returns a random direction of length 1
func (r *FastRand) UnitVector() Vec2 {
	angle := r.Float64() * 2 * math.Pi
	sin, cos := math.Sincos(angle)
	return Vec2{X: cos, Y: sin}
}

// Calls returns how many values were drawn, used by determinism checks
func (r *FastRand) Calls() uint64 {
	return r.calls
}

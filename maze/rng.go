// SPDX-License-Identifier: MIT

// Package maze - RNG utilities shared by the generators.
//
// Goals:
//   - Determinism: same seed ⇒ identical placements across platforms.
//   - Encapsulation: a single RNG factory; no time-based sources hidden here.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Do not share a *rand.Rand across goroutines.
package maze

import "math/rand"

// defaultRNGSeed is the fixed seed used when callers pass seed==0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}
	return rand.New(rand.NewSource(s))
}

// coin returns true or false with equal probability.
func coin(rng *rand.Rand) bool {
	return rng.Intn(2) == 0
}

// pickStep returns a uniformly random value lo, lo+2, lo+4, … that is ≤ hi.
// Requires lo ≤ hi.
//
// Complexity: O(1).
func pickStep(rng *rand.Rand, lo, hi int) int {
	n := (hi-lo)/2 + 1
	return lo + 2*rng.Intn(n)
}

// SPDX-License-Identifier: MIT

package maze

import (
	"fmt"
	"math/rand"
)

// Options configures a generation run.
//
// Fields:
//   - rng:     randomness source; nil resolves to rngFromSeed(0).
//   - density: wall probability for Buildings.
type Options struct {
	rng     *rand.Rand
	density float64
}

// Option mutates Options.
type Option func(*Options)

// WithSeed uses a deterministic source seeded with seed (0 maps to the
// package default seed).
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.rng = rngFromSeed(seed)
	}
}

// WithRand uses r as the randomness source. r is not goroutine-safe; do not
// share it across concurrent generations. Panics if r is nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("maze: WithRand(nil)")
	}
	return func(o *Options) {
		o.rng = r
	}
}

// WithDensity sets the Buildings wall probability. Panics outside [0, 1].
func WithDensity(d float64) Option {
	if d < 0 || d > 1 {
		panic(fmt.Sprintf("maze: WithDensity(%v): %v", d, ErrBadDensity))
	}
	return func(o *Options) {
		o.density = d
	}
}

// newOptions applies opts over the defaults.
func newOptions(opts ...Option) Options {
	o := Options{density: DefaultDensity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rngFromSeed(0)
	}
	return o
}

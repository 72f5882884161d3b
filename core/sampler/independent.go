// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package sampler

import "math/rand"

// Independent is a Sampler backed by a per-instance math/rand source:
// every dimension of every sample is drawn independently, with no
// stratification across pixels or across the spp samples within a
// pixel. It is the simplest possible Sampler and the natural default
// for a PRNG-driven renderer, mirroring how the source's per-tile
// worker each owned a private *rand.Rand.
type Independent struct {
	rng  *rand.Rand
	seed int64
}

var _ Sampler = (*Independent)(nil)

// NewIndependent creates an Independent sampler seeded with seed.
func NewIndependent(seed int64) *Independent {
	return &Independent{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// SamplesPerPixel draws spp independent Samples. PFilm is jittered
// within the pixel's unit square (pixel (x, y) covers [x, x+1) x
// [y, y+1) in continuous film space) so that multiple samples per
// pixel antialias instead of repeating a single ray.
func (s *Independent) SamplesPerPixel(x, y, spp int) []Sample {
	out := make([]Sample, spp)
	for i := range out {
		out[i] = Sample{
			PFilm:    [2]float64{float64(x) + s.rng.Float64(), float64(y) + s.rng.Float64()},
			PLens:    [2]float64{s.rng.Float64(), s.rng.Float64()},
			U2Dbsdf:  [2]float64{s.rng.Float64(), s.rng.Float64()},
			U1Dlight: s.rng.Float64(),
			U2Dlight: [2]float64{s.rng.Float64(), s.rng.Float64()},
			U1Drr:    s.rng.Float64(),
		}
	}
	return out
}

// Clone returns a fresh Independent sampler seeded independently of
// the receiver, suitable for handing to another bucket worker.
func (s *Independent) Clone(seed int64) Sampler {
	return NewIndependent(seed)
}

// Float64 exposes the underlying generator for callers (such as the
// integrator's Russian roulette and BSDF sampling) that need a single
// scalar outside of a pre-built Sample, matching the
// integrator.RNG contract.
func (s *Independent) Float64() float64 {
	return s.rng.Float64()
}

// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package sampler

import (
	"math"
	"math/rand"
)

// Stratified is a Sampler that divides the unit square of film samples
// into an approximately sqrt(spp) x sqrt(spp) grid of strata and jitters
// one sample within each stratum, reducing clumping relative to
// Independent for the same sample count. The remaining dimensions
// (lens, bsdf, light) are drawn independently per stratum; only the
// film position is explicitly stratified, since that is the dimension
// antialiasing is most sensitive to.
type Stratified struct {
	rng  *rand.Rand
	seed int64
}

var _ Sampler = (*Stratified)(nil)

// NewStratified creates a Stratified sampler seeded with seed.
func NewStratified(seed int64) *Stratified {
	return &Stratified{rng: rand.New(rand.NewSource(seed)), seed: seed}
}

// SamplesPerPixel draws spp stratified Samples for pixel (x, y).
func (s *Stratified) SamplesPerPixel(x, y, spp int) []Sample {
	nx, ny := stratumGrid(spp)
	cellW := 1.0 / float64(nx)
	cellH := 1.0 / float64(ny)

	out := make([]Sample, 0, nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			u := (float64(i) + s.rng.Float64()) * cellW
			v := (float64(j) + s.rng.Float64()) * cellH
			out = append(out, Sample{
				PFilm:    [2]float64{float64(x) + u, float64(y) + v},
				PLens:    [2]float64{s.rng.Float64(), s.rng.Float64()},
				U2Dbsdf:  [2]float64{s.rng.Float64(), s.rng.Float64()},
				U1Dlight: s.rng.Float64(),
				U2Dlight: [2]float64{s.rng.Float64(), s.rng.Float64()},
				U1Drr:    s.rng.Float64(),
			})
		}
	}
	// Pad or trim to exactly spp: nx*ny only equals spp when spp is a
	// perfect square, so top up with independent samples or truncate.
	for len(out) < spp {
		out = append(out, Sample{
			PFilm:    [2]float64{float64(x) + s.rng.Float64(), float64(y) + s.rng.Float64()},
			PLens:    [2]float64{s.rng.Float64(), s.rng.Float64()},
			U2Dbsdf:  [2]float64{s.rng.Float64(), s.rng.Float64()},
			U1Dlight: s.rng.Float64(),
			U2Dlight: [2]float64{s.rng.Float64(), s.rng.Float64()},
			U1Drr:    s.rng.Float64(),
		})
	}
	return out[:spp]
}

// Clone returns a fresh Stratified sampler seeded independently of the
// receiver.
func (s *Stratified) Clone(seed int64) Sampler {
	return NewStratified(seed)
}

// Float64 exposes the underlying generator, matching the
// integrator.RNG contract.
func (s *Stratified) Float64() float64 {
	return s.rng.Float64()
}

// stratumGrid picks an nx * ny grid whose product is as close to spp as
// possible without exceeding it, biasing toward a square grid.
func stratumGrid(spp int) (int, int) {
	if spp <= 1 {
		return 1, 1
	}
	root := int(math.Sqrt(float64(spp)))
	if root < 1 {
		root = 1
	}
	nx := root
	ny := spp / nx
	if nx*ny < 1 {
		return 1, 1
	}
	return nx, ny
}

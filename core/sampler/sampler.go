// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Package sampler produces the per-pixel sequence of camera and BSDF
// samples the integrator consumes. Stratification (or, for a
// quasi-random sequence, dimension assignment) is entirely the
// sampler's concern; callers only ask for the next sample.
package sampler

// Sample bundles every random dimension a single path needs up front:
// film/lens position for ray generation, a 2D dimension for BSDF/light
// direction sampling, a 1D dimension for light selection, and a 1D
// dimension for Russian roulette. Requesting all of them together (even
// though a given path may not consume every dimension every bounce)
// keeps dimension assignment well defined for samplers where that
// matters, such as a Sobol sequence.
type Sample struct {
	PFilm    [2]float64
	PLens    [2]float64
	U2Dbsdf  [2]float64
	U1Dlight float64
	U2Dlight [2]float64
	U1Drr    float64
}

// Sampler generates, for a given pixel, a finite and restartable
// sequence of Samples.
type Sampler interface {
	// SamplesPerPixel returns the spp Samples for pixel (x, y). The
	// samples are drawn from the Sampler's own random stream, so they
	// depend on its seed and on every earlier call, not on (x, y) alone.
	SamplesPerPixel(x, y, spp int) []Sample

	// Clone returns an independent Sampler with the same
	// configuration, used so that each bucket worker owns its own
	// generator state.
	Clone(seed int64) Sampler
}

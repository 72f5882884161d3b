// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Package light implements the Light capability consumed by the
// integrator's direct-lighting estimator: Point, Area, Distant, and
// InfiniteArea variants, all sharing the same sample/pdf/emission
// contract so the integrator never branches on which kind of light it
// is dealing with.
package light

import "github.com/scottlawson/pathtracer/r3"

// Sample is the result of sampling a direction toward a light from a
// shading point: radiance along wi, the point sampled on the light (used
// by the integrator only for visibility-ray construction), the sampled
// direction, and its pdf in solid-angle measure at the shading point.
type Sample struct {
	Li       r3.Vec
	POnLight r3.Point
	Wi       r3.Vec
	Pdf      float64
}

// Light is the capability every light variant implements.
type Light interface {
	// IsDelta reports whether the light has a singular, zero-measure
	// distribution (Point, Distant) as opposed to an extended one that
	// can be hit by a scattered ray (Area, InfiniteArea).
	IsDelta() bool
	// SampleLi samples an incident direction toward the light from
	// interactionPoint using the 2D sample u, returning radiance, the
	// sampled point, direction, and pdf.
	SampleLi(interactionPoint r3.Point, u [2]float64) Sample
	// Le returns the environment radiance along a ray that escaped the
	// scene without hitting anything. It is the zero vector for every
	// light except InfiniteArea.
	Le(rayDirection r3.Vec) r3.Vec
	// Power returns an estimate of the light's total emitted power,
	// used only by power-weighted light-selection heuristics (the
	// selection strategy actually used here is uniform over count).
	Power() r3.Vec
}

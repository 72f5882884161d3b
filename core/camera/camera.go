// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Package camera implements ray generation from normalized film/lens
// samples: the black-box projection contract the integrator drives
// without needing to know whether the underlying model is a pinhole or
// a thin lens.
package camera

import "github.com/scottlawson/pathtracer/core/shape"

// Sample is the pair of 2D samples a Sampler produces for one camera
// ray: PFilm in [0,1]^2 locates the point on the image plane, PLens in
// [0,1]^2 (ignored by a zero-aperture camera) locates the point on the
// lens aperture for depth-of-field.
type Sample struct {
	PFilm [2]float64
	PLens [2]float64
}

// Camera is the capability every camera model implements.
type Camera interface {
	GenerateRay(s Sample) shape.Ray
	Validate() error
}

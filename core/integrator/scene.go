// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Package integrator implements the path-tracing estimator: the bounce
// loop with one-sample multiple importance sampling for direct
// lighting, Russian roulette path termination, and the AOV capture the
// film pipeline needs for its albedo/normal buffers.
package integrator

import (
	"fmt"

	"github.com/scottlawson/pathtracer/core/light"
	"github.com/scottlawson/pathtracer/core/material"
	"github.com/scottlawson/pathtracer/core/shape"
	"github.com/scottlawson/pathtracer/internal/accel"
)

// Primitive pairs a Shape with the Material that scatters light at it,
// and optionally the Area light it backs (nil for non-emissive
// geometry). This mirrors the teacher's Scene.Node{Shape, Material}
// pairing, adapted so the BSDF-sampling MIS leg can ask "did this ray
// hit the light I chose" without a back-pointer from Shape to Light.
type Primitive struct {
	Shape     shape.Shape
	Material  material.Material
	AreaLight *light.Area
}

// Scene is the flattened, render-ready scene graph: an Accelerator over
// every primitive's Shape, the Primitives themselves for material/light
// lookup by hit Shape, and the flat light list the direct-lighting
// estimator samples uniformly from.
type Scene struct {
	Accelerator accel.Accelerator
	Primitives  []Primitive
	Lights      []light.Light

	byShape map[shape.Shape]*Primitive
}

// NewScene builds the Accelerator from primitives' shapes and indexes
// primitives by Shape for hit lookups.
func NewScene(primitives []Primitive, lights []light.Light) (*Scene, error) {
	if len(primitives) == 0 {
		return nil, fmt.Errorf("integrator: scene must contain at least one primitive")
	}
	shapes := make([]shape.Shape, len(primitives))
	byShape := make(map[shape.Shape]*Primitive, len(primitives))
	for i := range primitives {
		shapes[i] = primitives[i].Shape
		byShape[primitives[i].Shape] = &primitives[i]
	}
	bvh, err := accel.Build(shapes)
	if err != nil {
		return nil, fmt.Errorf("integrator: building accelerator: %w", err)
	}
	return &Scene{
		Accelerator: bvh,
		Primitives:  primitives,
		Lights:      lights,
		byShape:     byShape,
	}, nil
}

// primitiveFor looks up the Primitive a Nearest/AnyHit query returned the
// Shape for.
func (s *Scene) primitiveFor(hit shape.Shape) (*Primitive, bool) {
	p, ok := s.byShape[hit]
	return p, ok
}

// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package light

import (
	"fmt"
	"math"

	"github.com/scottlawson/pathtracer/core/sceneio"
	"github.com/scottlawson/pathtracer/core/shape"
	"github.com/scottlawson/pathtracer/r3"
)

func init() { sceneio.Register(Area{}) }

// Area is a one-sided diffuse area light backed by a Shape: it emits
// Intensity uniformly from the side its geometric normal faces, and
// nothing from the back.
type Area struct {
	Shape     shape.Shape
	Intensity r3.Vec
}

var _ Light = Area{}

func (a Area) Validate() error {
	if a.Shape == nil {
		return fmt.Errorf("invalid Area light: Shape must not be nil")
	}
	if a.Intensity.X < 0 || a.Intensity.Y < 0 || a.Intensity.Z < 0 {
		return fmt.Errorf("invalid Area Intensity: %v (should be non-negative)", a.Intensity)
	}
	return a.Shape.Validate()
}

func (a Area) IsDelta() bool { return false }

// EmittedAt returns the radiance emitted toward wo from a point on the
// light with geometric normal n: Intensity if wo lies on the normal's
// side, else zero.
func (a Area) EmittedAt(n, wo r3.Vec) r3.Vec {
	if n.Dot(wo) > 0 {
		return a.Intensity
	}
	return r3.Vec{}
}

// SampleLi samples a point on the backing shape and converts its
// area-measure sampling pdf (1/Area) to the solid-angle measure at
// interactionPoint by delegating to the shape's own Pdf, so MIS weights
// computed independently from the BSDF-sampling leg stay consistent.
func (a Area) SampleLi(interactionPoint r3.Point, u [2]float64) Sample {
	pLight, nLight := a.Shape.SamplePoint(u)
	toLight := pLight.Sub(interactionPoint)
	dist := toLight.Length()
	if dist <= 0 {
		return Sample{}
	}
	wi := toLight.Divs(dist)

	le := a.EmittedAt(nLight, wi.Muls(-1))
	if le.IsZero() {
		return Sample{}
	}

	pdf := a.Shape.Pdf(interactionPoint, wi)
	if pdf <= 0 {
		return Sample{}
	}

	return Sample{Li: le, POnLight: pLight, Wi: wi, Pdf: pdf}
}

func (a Area) Le(rayDirection r3.Vec) r3.Vec { return r3.Vec{} }

func (a Area) Power() r3.Vec {
	return a.Intensity.Muls(math.Pi * a.Shape.Area())
}

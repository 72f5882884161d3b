// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package light

import (
	"fmt"
	"math"

	"github.com/scottlawson/pathtracer/core/sceneio"
	"github.com/scottlawson/pathtracer/r3"
)

func init() { sceneio.Register(Point{}) }

// Point is an isotropic point light with the given radiant intensity
// (W/sr). SampleLi applies the inverse-square falloff directly,
// returning Li = RadiantIntensity / d^2 with a pdf of 1.
type Point struct {
	Position         r3.Point
	RadiantIntensity r3.Vec
}

var _ Light = Point{}

func (p Point) Validate() error {
	if p.RadiantIntensity.X < 0 || p.RadiantIntensity.Y < 0 || p.RadiantIntensity.Z < 0 {
		return fmt.Errorf("invalid Point RadiantIntensity: %v (should be non-negative)", p.RadiantIntensity)
	}
	return nil
}

func (p Point) IsDelta() bool { return true }

func (p Point) SampleLi(interactionPoint r3.Point, u [2]float64) Sample {
	toLight := p.Position.Sub(interactionPoint)
	distSquared := toLight.Dot(toLight)
	wi := toLight.Unit()
	if distSquared <= 0 {
		return Sample{}
	}
	return Sample{
		Li:       p.RadiantIntensity.Divs(distSquared),
		POnLight: p.Position,
		Wi:       wi,
		Pdf:      1,
	}
}

func (p Point) Le(rayDirection r3.Vec) r3.Vec { return r3.Vec{} }

func (p Point) Power() r3.Vec {
	return p.RadiantIntensity.Muls(4 * math.Pi)
}

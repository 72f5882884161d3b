// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package light

import (
	"fmt"
	"math"

	"github.com/scottlawson/pathtracer/core/sceneio"
	"github.com/scottlawson/pathtracer/r3"
)

func init() { sceneio.Register(Distant{}) }

// Distant is a directional light, like the sun: all incident radiance
// arrives from a single fixed direction regardless of the shading
// point. WorldRadius bounds the finite scene so the light's virtual
// origin point can be placed far enough outside it for shadow-ray
// construction.
type Distant struct {
	Direction   r3.Vec // points from the light toward the scene
	Radiance    r3.Vec
	WorldRadius float64
}

var _ Light = Distant{}

func (d Distant) Validate() error {
	if d.Direction.IsZero() {
		return fmt.Errorf("invalid Distant Direction: %v (has it been set?)", d.Direction)
	}
	if d.WorldRadius <= 0 {
		return fmt.Errorf("invalid Distant WorldRadius: %v (has it been set?)", d.WorldRadius)
	}
	return nil
}

func (d Distant) IsDelta() bool { return true }

func (d Distant) SampleLi(interactionPoint r3.Point, u [2]float64) Sample {
	wi := d.Direction.Unit().Muls(-1)
	pOnLight := interactionPoint.Add(wi.Muls(2 * d.WorldRadius))
	return Sample{
		Li:       d.Radiance,
		POnLight: pOnLight,
		Wi:       wi,
		Pdf:      1,
	}
}

func (d Distant) Le(rayDirection r3.Vec) r3.Vec { return r3.Vec{} }

func (d Distant) Power() r3.Vec {
	return d.Radiance.Muls(math.Pi * d.WorldRadius * d.WorldRadius)
}

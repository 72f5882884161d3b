// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

package light

import (
	"fmt"
	"math"

	"github.com/scottlawson/pathtracer/r3"
)

// InfiniteArea is an environment light backed by a lat-long radiance
// map: the row-major (r, g, b) image passed to NewInfiniteArea, with x
// spanning longitude [0, 2*pi) and y spanning colatitude [0, pi], held
// in a mip pyramid. LightToWorld rotates the
// map's +Y pole into world space; WorldRadius must bound the finite
// scene so sampled directions can be turned into a point far outside
// it for shadow-ray construction.
type InfiniteArea struct {
	pyramid      *mipPyramid
	Intensity    r3.Vec
	LightToWorld func(r3.Vec) r3.Vec
	WorldToLight func(r3.Vec) r3.Vec
	WorldRadius  float64
}

var _ Light = (*InfiniteArea)(nil)

// NewInfiniteArea builds the mip pyramid from a lat-long environment
// image given as row-major (r, g, b) triples, width x height.
func NewInfiniteArea(width, height int, rgb []float64, intensity r3.Vec, lightToWorld, worldToLight func(r3.Vec) r3.Vec, worldRadius float64) (*InfiniteArea, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid InfiniteArea image dimensions: %dx%d", width, height)
	}
	if len(rgb) != width*height*3 {
		return nil, fmt.Errorf("invalid InfiniteArea image data length: got %d, want %d", len(rgb), width*height*3)
	}
	if worldRadius <= 0 {
		return nil, fmt.Errorf("invalid InfiniteArea WorldRadius: %v", worldRadius)
	}
	if lightToWorld == nil || worldToLight == nil {
		return nil, fmt.Errorf("InfiniteArea requires both LightToWorld and WorldToLight transforms")
	}
	return &InfiniteArea{
		pyramid:      newMipPyramid(width, height, rgb),
		Intensity:    intensity,
		LightToWorld: lightToWorld,
		WorldToLight: worldToLight,
		WorldRadius:  worldRadius,
	}, nil
}

func (il *InfiniteArea) IsDelta() bool { return false }

// equirectLookup converts a unit direction (in light space) into
// (u, v) texture coordinates under the standard spherical
// parameterization theta in [0, pi] from the +Y pole, phi in [0, 2*pi).
func equirectLookup(wLight r3.Vec) (u, v, theta float64) {
	theta = math.Acos(clampUnit(wLight.Y))
	phi := math.Atan2(wLight.Z, wLight.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return phi / (2 * math.Pi), theta / math.Pi, theta
}

func clampUnit(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}

// emission looks up radiance at mip level for a given world-space
// direction, applying the Intensity scale after lookup. Level 0 holds
// the input values as given; the coarser levels hold values clipped to
// [0,1].
func (il *InfiniteArea) emission(wWorld r3.Vec, level int) r3.Vec {
	wLight := il.WorldToLight(wWorld).Unit()
	u, v, _ := equirectLookup(wLight)
	r, g, b := il.pyramid.lookup(u, v, level)
	return r3.Vec{X: r, Y: g, Z: b}.Mul(il.Intensity)
}

// Le implements the environment lookup for a ray that escaped the
// scene, at full resolution: camera/BSDF-sampled rays carry no a
// priori footprint estimate, so they use the finest level.
func (il *InfiniteArea) Le(rayDirection r3.Vec) r3.Vec {
	return il.emission(rayDirection, 0)
}

// SampleLi draws a direction uniformly over the sphere (theta in
// [0, pi], phi in [0, 2*pi)) in light space, following spec.md section
// 4.7's parameterization, then converts to world space and computes the
// plain pdf 1/(2*pi^2*sin(theta)) (the Open Question decision: not the
// luminance-weighted variant, so the pdf never requires its own texture
// lookup).
func (il *InfiniteArea) SampleLi(interactionPoint r3.Point, u [2]float64) Sample {
	theta := u[1] * math.Pi
	phi := u[0] * 2 * math.Pi
	sinTheta := math.Sin(theta)
	cosTheta := math.Cos(theta)

	wLight := r3.Vec{
		X: sinTheta * math.Cos(phi),
		Y: cosTheta,
		Z: sinTheta * math.Sin(phi),
	}
	wi := il.LightToWorld(wLight).Unit()

	if sinTheta == 0 {
		return Sample{}
	}
	pdf := 1 / (2 * math.Pi * math.Pi * sinTheta)

	pOnLight := interactionPoint.Add(wi.Muls(2 * il.WorldRadius))
	solidAngleFootprint := 1 / pdf
	level := il.pyramid.levelForFootprint(solidAngleFootprint)

	return Sample{
		Li:       il.emission(wi, level),
		POnLight: pOnLight,
		Wi:       wi,
		Pdf:      pdf,
	}
}

func (il *InfiniteArea) Power() r3.Vec {
	r, g, b := il.pyramid.lookup(0.5, 0.5, len(il.pyramid.levels)-1)
	avg := r3.Vec{X: r, Y: g, Z: b}.Mul(il.Intensity)
	return avg.Muls(math.Pi * il.WorldRadius * il.WorldRadius)
}

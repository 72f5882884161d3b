// Copyright 2024 Scott Lawson scottlawsonbc@gmail.com. All rights reserved.

// Package bsdf composes a fixed-capacity bag of bxdf.BxDF components into
// the per-intersection shading model: a local<->world frame transform, a
// component-mixture f/pdf evaluation, and a mixture sample_f.
package bsdf

import (
	"fmt"
	"math"

	"github.com/scottlawson/pathtracer/core/bxdf"
	"github.com/scottlawson/pathtracer/core/geometry"
	"github.com/scottlawson/pathtracer/r3"
)

// maxComponents is the fixed capacity of a BSDF's BxDF bag. Five lobes
// covers every material variant in this package (at most diffuse +
// specular-or-glossy), so no per-hit heap allocation is required.
const maxComponents = 5

// BSDF is the per-hit composition of scattering lobes attached to a
// surface interaction. The zero value has zero components and is ready
// for Add calls.
type BSDF struct {
	bxdfs [maxComponents]bxdf.BxDF
	n     int

	GeometryNormal r3.Vec
	ShadingNormal  r3.Vec
	Ss, Ts         r3.Vec
	Eta            float64

	rng func() float64
}

// New builds a BSDF for a surface interaction with the given
// local-frame basis. rng supplies uniform [0,1) samples used only for the
// single discrete choice of which matching component to sample in
// SampleF; the 2D continuous sample used by the chosen component's own
// SampleF is always the caller-supplied u, never drawn internally (see
// package-level note in SampleF).
func New(geometryNormal, shadingNormal, ss, ts r3.Vec, eta float64, rng func() float64) *BSDF {
	return &BSDF{
		GeometryNormal: geometryNormal,
		ShadingNormal:  shadingNormal,
		Ss:             ss,
		Ts:             ts,
		Eta:            eta,
		rng:            rng,
	}
}

// Add appends bx into the next empty slot. It panics if the BSDF is
// already at capacity: exceeding the fixed component budget is a
// programming error in material construction, not a runtime condition to
// recover from.
func (b *BSDF) Add(bx bxdf.BxDF) {
	if b.n >= maxComponents {
		panic(fmt.Sprintf("bsdf: cannot add component, already at capacity %d", maxComponents))
	}
	b.bxdfs[b.n] = bx
	b.n++
}

// NumComponents reports how many BxDFs this BSDF currently holds.
func (b *BSDF) NumComponents() int { return b.n }

// Has reports whether any component's flags intersect flags.
func (b *BSDF) Has(flags bxdf.Type) bool {
	for i := 0; i < b.n; i++ {
		if b.bxdfs[i].Flags().Matches(flags) {
			return true
		}
	}
	return false
}

// WorldToLocal transforms a world-space direction into this BSDF's local
// shading frame.
func (b *BSDF) WorldToLocal(v r3.Vec) r3.Vec {
	return geometry.WorldToLocal(v, b.Ss, b.Ts, b.ShadingNormal)
}

// LocalToWorld transforms a local-frame direction into world space.
func (b *BSDF) LocalToWorld(v r3.Vec) r3.Vec {
	return geometry.LocalToWorld(v, b.Ss, b.Ts, b.ShadingNormal)
}

// shiftCosIn softens the shadow terminator artifact that appears when the
// shading normal diverges from the geometry normal, by slightly widening
// the cosine falloff near the horizon. freq=1.002 matches the mild
// correction used across the rest of this core.
func shiftCosIn(cosIn float64) float64 {
	if cosIn <= 0 {
		return 0
	}
	const freq = 1.002
	angle := math.Acos(clamp(cosIn, -1, 1))
	adjusted := math.Max(0, math.Cos(angle*freq))
	return adjusted / cosIn
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// reflectOrTransmit decides, using world-space geometry-normal dot
// products (not the shading normal, which can disagree with the geometry
// normal enough to flip reflect/transmit classification near grazing
// angles), whether the pair (woWorld, wiWorld) represents a reflection or
// a transmission.
func (b *BSDF) reflectOrTransmit(woWorld, wiWorld r3.Vec) bool {
	return woWorld.Dot(b.GeometryNormal)*wiWorld.Dot(b.GeometryNormal) > 0
}

// F evaluates the sum of f over every component whose flags intersect
// flags and whose reflection/transmission classification (decided in
// world space via the geometry normal) matches the pair (woWorld,
// wiWorld).
func (b *BSDF) F(woWorld, wiWorld r3.Vec, flags bxdf.Type) r3.Vec {
	wo := b.WorldToLocal(woWorld)
	wi := b.WorldToLocal(wiWorld)
	if wo.Z == 0 {
		return r3.Vec{}
	}
	reflect := b.reflectOrTransmit(woWorld, wiWorld)

	var sum r3.Vec
	for i := 0; i < b.n; i++ {
		c := b.bxdfs[i]
		if !c.Flags().Matches(flags) {
			continue
		}
		isReflect := c.Flags().Has(bxdf.Reflection)
		if (reflect && isReflect) || (!reflect && c.Flags().Has(bxdf.Transmission)) {
			sum = sum.Add(c.F(wo, wi))
		}
	}
	cosIn := b.ShadingNormal.Dot(wiWorld)
	return sum.Muls(shiftCosIn(cosIn))
}

// Pdf returns the average pdf over every component whose flags intersect
// flags, 0 if none match.
func (b *BSDF) Pdf(woWorld, wiWorld r3.Vec, flags bxdf.Type) float64 {
	wo := b.WorldToLocal(woWorld)
	wi := b.WorldToLocal(wiWorld)
	if wo.Z == 0 {
		return 0
	}

	var sum float64
	var count int
	for i := 0; i < b.n; i++ {
		c := b.bxdfs[i]
		if !c.Flags().Matches(flags) {
			continue
		}
		sum += c.Pdf(wo, wi)
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Sample is the result of SampleF.
type Sample struct {
	Wi    r3.Vec
	Pdf   float64
	F     r3.Vec
	Flags bxdf.Type
	Valid bool
}

// SampleF samples an incoming direction from the mixture of components
// whose flags intersect flags.
//
// The caller-supplied u is the authoritative 2D sample passed to the
// chosen component's own SampleF: the BSDF never substitutes a
// thread-local random draw for u, so a stratified or Sobol sampler can
// assign BSDF dimensions deterministically. The *only* randomness this
// method draws internally is the single discrete choice of which
// component to sample among the matching set, via b.rng(); that choice
// does not need to consume one of the sampler's structured dimensions
// because it affects which lobe is sampled, not its shape.
//
// When the chosen component is not specular and more than one component
// matches, the returned pdf is the average of every matching component's
// pdf(wo, wi) (including the chosen one) and f is recomputed as the sum
// of every matching component's f(wo, wi) whose reflect/transmit
// classification agrees with the geometry-normal test — this mixture
// step is what makes multi-lobe materials (e.g. Plastic) produce correct
// MIS weights; a specular component is never re-evaluated this way,
// since its f and pdf are only meaningful at the single sampled
// direction.
func (b *BSDF) SampleF(woWorld r3.Vec, flags bxdf.Type, u r3.Point2) Sample {
	var matching []int
	for i := 0; i < b.n; i++ {
		if b.bxdfs[i].Flags().Matches(flags) {
			matching = append(matching, i)
		}
	}
	if len(matching) == 0 {
		return Sample{}
	}

	wo := b.WorldToLocal(woWorld)
	if wo.Z == 0 {
		return Sample{}
	}

	idx := matching[int(b.rng()*float64(len(matching)))%len(matching)]
	chosen := b.bxdfs[idx]

	wi, pdf, f := chosen.SampleF(wo, u)
	if pdf == 0 {
		return Sample{}
	}

	sampledFlags := chosen.Flags()
	if !sampledFlags.Has(bxdf.Specular) && len(matching) > 1 {
		for _, j := range matching {
			if j == idx {
				continue
			}
			pdf += b.bxdfs[j].Pdf(wo, wi)
		}
		pdf /= float64(len(matching))

		reflect := b.reflectOrTransmit(woWorld, b.LocalToWorld(wi))
		var sum r3.Vec
		for _, j := range matching {
			c := b.bxdfs[j]
			isReflect := c.Flags().Has(bxdf.Reflection)
			if (reflect && isReflect) || (!reflect && c.Flags().Has(bxdf.Transmission)) {
				sum = sum.Add(c.F(wo, wi))
			}
		}
		f = sum
	}

	wiWorld := b.LocalToWorld(wi)
	return Sample{Wi: wiWorld, Pdf: pdf, F: f, Flags: sampledFlags, Valid: true}
}
